// Package shred implements multi-pass destructive file removal. A file is
// overwritten in place with a fixed-then-random pattern schedule, each pass
// forced to durable storage, then renamed to an obscured name and deleted.
//
// This deliberately assumes that overwriting bytes at their current logical
// offsets is the entire threat model. Copy-on-write filesystems, journaling,
// SSD wear-leveling and snapshots can all retain copies elsewhere; none of
// them are handled here.
package shred

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/docker/go-units"
)

// obscurePrefix is the literal prefix used for the rename that precedes
// deletion. Best-effort obfuscation of the original name, not a security
// property.
const obscurePrefix = "temp_shred_"

// Config holds the shredder settings. Immutable after construction.
type Config struct {
	// Passes is the number of overwrite passes. Zero means "delete without
	// overwrite"; negative values are rejected by Validate.
	Passes int

	// Verbose enables per-pass and per-file progress output
	Verbose bool

	// Exclude controls which files are skipped during directory shreds
	Exclude ExcludeOptions
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if c.Passes < 0 {
		return fmt.Errorf("passes must not be negative: %d", c.Passes)
	}
	return nil
}

// Shredder overwrites and removes files according to its Config. It holds no
// state across files; each ShredFile call owns its file handle exclusively
// for its duration.
type Shredder struct {
	config Config
	random io.Reader
	out    io.Writer
}

// Option configures a Shredder
type Option func(*Shredder)

// WithRandomSource replaces the random-byte generator used for random passes
// and for the obscuring rename suffix. Substituting a deterministic reader
// makes shredding reproducible in tests.
func WithRandomSource(r io.Reader) Option {
	return func(s *Shredder) {
		s.random = r
	}
}

// WithOutput redirects progress output, which defaults to stdout
func WithOutput(w io.Writer) Option {
	return func(s *Shredder) {
		s.out = w
	}
}

// New creates a Shredder with the given configuration
func New(cfg Config, opts ...Option) (*Shredder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	s := &Shredder{
		config: cfg,
		random: rand.Reader,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ShredFile overwrites the file at path for the configured number of passes,
// renames it to an obscured name and removes it. All errors are recovered
// into the returned Result; nothing panics and nothing is retried.
func (s *Shredder) ShredFile(path string) Result {
	res := Result{Path: path}

	fi, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			res.Err = NewShredError("shred", path, ErrNotFound)
		} else {
			res.Err = NewShredError("stat", path, err)
		}
		s.logFailure(res)
		return res
	}
	if !fi.Mode().IsRegular() {
		res.Err = NewShredError("shred", path, ErrNotRegular)
		s.logFailure(res)
		return res
	}

	// The size measured here is the byte length used for every pass. A file
	// whose size changes concurrently is not a supported scenario.
	size := fi.Size()

	if err := s.overwrite(path, size); err != nil {
		res.Err = err
		s.logFailure(res)
		return res
	}

	if err := s.destroy(path); err != nil {
		res.Err = err
		s.logFailure(res)
		return res
	}

	slog.Debug("file shredded", "path", path, "size", size, "passes", s.config.Passes)
	if s.config.Verbose {
		fmt.Fprintf(s.out, "Successfully shredded: %s (%s)\n", path, units.HumanSize(float64(size)))
	}
	return res
}

// overwrite runs the pass loop. Each pass seeks to the start, writes the full
// payload and syncs before the next pass begins; skipping the sync would
// silently weaken the anti-recovery guarantee.
func (s *Shredder) overwrite(path string, size int64) error {
	if s.config.Passes == 0 {
		// Delete-only mode: no handle is opened at all.
		return nil
	}

	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return NewShredError("open", path, err)
	}
	defer file.Close()

	for pass := 1; pass <= s.config.Passes; pass++ {
		data, err := s.payload(pass, size)
		if err != nil {
			return NewShredError("generate", path, err)
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return NewShredError("seek", path, err)
		}
		if _, err := file.Write(data); err != nil {
			return NewShredError("write", path, err)
		}
		if err := file.Sync(); err != nil {
			return NewShredError("sync", path, err)
		}
		slog.Debug("pass completed", "path", path, "pass", pass, "total", s.config.Passes)
		if s.config.Verbose {
			fmt.Fprintf(s.out, "Pass %d/%d completed for %s\n", pass, s.config.Passes, path)
		}
	}

	return nil
}

// destroy renames the file within its directory to an obscured name, then
// removes the renamed entry. The random numeric suffix carries a negligible
// collision risk against an existing entry; a collision surfaces as a rename
// error and fails the shred.
func (s *Shredder) destroy(path string) error {
	suffix, err := s.randomSuffix()
	if err != nil {
		return NewShredError("rename", path, err)
	}
	obscured := filepath.Join(filepath.Dir(path), fmt.Sprintf("%s%d", obscurePrefix, suffix))

	if err := os.Rename(path, obscured); err != nil {
		return NewShredError("rename", path, err)
	}
	if err := os.Remove(obscured); err != nil {
		return NewShredError("remove", obscured, err)
	}
	return nil
}

// randomSuffix draws a numeric suffix in [0, 10^7) from the random source
func (s *Shredder) randomSuffix() (uint32, error) {
	var raw [4]byte
	if _, err := io.ReadFull(s.random, raw[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(raw[:]) % 10000000, nil
}

func (s *Shredder) logFailure(res Result) {
	slog.Error("shred failed", "path", res.Path, "error", res.Err)
	if s.config.Verbose {
		fmt.Fprintf(s.out, "Error shredding %s: %s\n", res.Path, res.Reason())
	}
}
