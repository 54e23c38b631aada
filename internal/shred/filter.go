package shred

import (
	"log/slog"
	"regexp"

	"github.com/docker/go-units"
	"github.com/gobwas/glob"
	"github.com/samber/lo"
)

// ExcludeOptions controls which files a directory shred skips. Skipped files
// are left untouched; they are neither failures nor successes.
type ExcludeOptions struct {
	// Files is a list of exact base names to skip
	Files []string

	// Patterns is a list of regular expressions matched against base names
	Patterns []string

	// Globs is a list of glob patterns matched against base names
	Globs []string

	// MinSize and MaxSize bound the file sizes eligible for shredding,
	// in human-readable form ("10KB", "1GB"). Empty means unbounded.
	MinSize string
	MaxSize string
}

// Filterable defines the interface shred candidates must implement to be
// filtered against ExcludeOptions
type Filterable interface {
	// GetName returns the base name of the candidate
	GetName() string
	// GetPath returns the full path of the candidate
	GetPath() string
	// GetSize returns the candidate size in bytes
	GetSize() int64
}

// Filter applies the exclusion rules to a slice of candidates
func Filter[T Filterable](items []T, opts ExcludeOptions) []T {
	items = rejectByNames(items, opts.Files)
	items = rejectByPatterns(items, opts.Patterns)
	items = rejectByGlobs(items, opts.Globs)
	items = rejectBySize(items, opts.MinSize, opts.MaxSize)
	return items
}

func rejectByNames[T Filterable](items []T, excludeFiles []string) []T {
	if len(excludeFiles) == 0 {
		return items
	}
	return lo.Reject(items, func(item T, _ int) bool {
		return lo.Contains(excludeFiles, item.GetName())
	})
}

func rejectByPatterns[T Filterable](items []T, patterns []string) []T {
	if len(patterns) == 0 {
		return items
	}
	return lo.Reject(items, func(item T, _ int) bool {
		for _, pattern := range patterns {
			if matched, err := regexp.MatchString(pattern, item.GetName()); err == nil && matched {
				return true
			}
		}
		return false
	})
}

func rejectByGlobs[T Filterable](items []T, globs []string) []T {
	if len(globs) == 0 {
		return items
	}
	return lo.Reject(items, func(item T, _ int) bool {
		for _, g := range globs {
			matcher, err := glob.Compile(g)
			if err != nil {
				slog.Error("invalid glob", "glob", g, "error", err)
				continue
			}
			if matcher.Match(item.GetName()) {
				return true
			}
		}
		return false
	})
}

func rejectBySize[T Filterable](items []T, minSize, maxSize string) []T {
	if minSize == "" && maxSize == "" {
		return items
	}
	return lo.Reject(items, func(item T, _ int) bool {
		size := item.GetSize()
		if minSize != "" {
			if min, err := units.FromHumanSize(minSize); err == nil && size <= min {
				return true
			}
		}
		if maxSize != "" {
			if max, err := units.FromHumanSize(maxSize); err == nil && max <= size {
				return true
			}
		}
		return false
	})
}
