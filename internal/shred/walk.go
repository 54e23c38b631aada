package shred

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// candidate is a regular file discovered during a directory walk
type candidate struct {
	name string
	path string
	size int64
}

func (c candidate) GetName() string { return c.name }
func (c candidate) GetPath() string { return c.path }
func (c candidate) GetSize() int64  { return c.size }

// ShredDir shreds every regular file directly inside dir, or every nested
// regular file when recursive is true. Symlinks and other non-regular entries
// are skipped and never followed. One failing file does not stop the rest;
// the caller gets one Result per processed file plus one per walk error.
func (s *Shredder) ShredDir(dir string, recursive bool) []Result {
	fi, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Result{{Path: dir, Err: NewShredError("shred", dir, ErrNotFound)}}
		}
		return []Result{{Path: dir, Err: NewShredError("stat", dir, err)}}
	}
	if !fi.IsDir() {
		return []Result{{Path: dir, Err: NewShredError("shred", dir, ErrNotDirectory)}}
	}

	targets, walkFailures := s.collect(dir, recursive)
	targets = Filter(targets, s.config.Exclude)

	results := walkFailures
	for _, target := range targets {
		results = append(results, s.ShredFile(target.path))
	}
	return results
}

// collect enumerates shred candidates. Walk errors are recovered into failure
// Results so a unreadable subtree does not abort the rest of the walk.
func (s *Shredder) collect(dir string, recursive bool) ([]candidate, []Result) {
	var targets []candidate
	var failures []Result

	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, []Result{{Path: dir, Err: NewShredError("walk", dir, err)}}
		}
		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				failures = append(failures, Result{
					Path: filepath.Join(dir, entry.Name()),
					Err:  NewShredError("walk", filepath.Join(dir, entry.Name()), err),
				})
				continue
			}
			targets = append(targets, candidate{
				name: entry.Name(),
				path: filepath.Join(dir, entry.Name()),
				size: info.Size(),
			})
		}
		return targets, failures
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			failures = append(failures, Result{Path: path, Err: NewShredError("walk", path, err)})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			failures = append(failures, Result{Path: path, Err: NewShredError("walk", path, err)})
			return nil
		}
		targets = append(targets, candidate{name: d.Name(), path: path, size: info.Size()})
		return nil
	})
	if err != nil {
		// WalkDir itself only fails on the root; per-entry errors are
		// recovered in the callback above.
		failures = append(failures, Result{Path: dir, Err: NewShredError("walk", dir, err)})
	}

	slog.Debug("directory walk finished", "dir", dir, "recursive", recursive,
		"targets", len(targets), "walk_errors", len(failures))
	return targets, failures
}
