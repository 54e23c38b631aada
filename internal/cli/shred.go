package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/babarot/hakai/internal/fs"
	"github.com/babarot/hakai/internal/shred"
	"github.com/samber/lo"
)

// Shred processes each target path in order. One failing target never stops
// the remaining ones; the process exit status is non-zero if any target
// failed or did not exist.
func (c *CLI) Shred(args []string) error {
	slog.Debug("cli.shred started")
	defer slog.Debug("cli.shred finished")

	if len(args) == 0 {
		return errors.New("too few arguments")
	}

	var results []shred.Result
	for _, arg := range args {
		results = append(results, c.shredPath(arg)...)
	}

	failed := lo.CountBy(results, func(r shred.Result) bool {
		return !r.Success()
	})
	for _, r := range results {
		if !r.Success() {
			fmt.Fprintf(os.Stderr, "Error: %s\n", r.Reason())
		}
	}

	if failed > 0 {
		fmt.Println("File shredding completed with some errors.")
		return fmt.Errorf("%d of %d targets failed", failed, len(results))
	}
	fmt.Println("File shredding completed successfully.")
	return nil
}

func (c *CLI) shredPath(path string) []shred.Result {
	if err := c.validatePath(path); err != nil {
		return []shred.Result{{Path: path, Err: err}}
	}

	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []shred.Result{{Path: path, Err: shred.NewShredError("shred", path, shred.ErrNotFound)}}
		}
		return []shred.Result{{Path: path, Err: shred.NewShredError("stat", path, err)}}
	}

	if info.IsDir() {
		return c.shredder.ShredDir(path, c.option.Recurse)
	}
	return []shred.Result{c.shredder.ShredFile(path)}
}

// validatePath checks if path is valid for shredding
func (c *CLI) validatePath(path string) error {
	if unsafe, err := fs.IsUnsafePath(path); err != nil {
		return err
	} else if unsafe {
		return shred.NewShredError("shred", path, shred.ErrProtectedPath)
	}

	// Common paths that should never be shredded
	protected := []string{
		"/",
		"/home",
		"/usr",
		"/etc",
		"/var",
		"/tmp",
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	for _, p := range protected {
		if absPath == p {
			return shred.NewShredError("shred", path, shred.ErrProtectedPath)
		}
	}

	return nil
}
