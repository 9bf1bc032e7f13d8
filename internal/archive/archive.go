// Package archive adapts external image readers to a single walking
// interface: a pre-order, depth-first stream of entries per image index.
package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	fsutil "github.com/kk-code-lab/rwim/internal/fs"
)

// ErrUnsupported is returned when no walker recognises an image file.
var ErrUnsupported = errors.New("unsupported image format")

// ErrNoSuchImage is returned for an image index the file does not contain.
var ErrNoSuchImage = errors.New("no such image index")

// ErrNotRegular is returned for image paths that are not regular files.
var ErrNotRegular = errors.New("not a regular file")

// ImageInfo describes one image stored in a container file.
type ImageInfo struct {
	Index       int
	Name        string
	Description string
}

// Label renders the index the way the selector shows it: "1 (Name)".
func (i ImageInfo) Label() string {
	if i.Name == "" {
		return fmt.Sprintf("%d", i.Index)
	}
	return fmt.Sprintf("%d (%s)", i.Index, i.Name)
}

// IterationError reports a walk that ended with a non-zero status.
type IterationError struct {
	Code int
	Err  error
}

func (e *IterationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to iterate directory tree (code %d): %v", e.Code, e.Err)
	}
	return fmt.Sprintf("failed to iterate directory tree (code %d)", e.Code)
}

func (e *IterationError) Unwrap() error {
	return e.Err
}

// WalkFunc receives entries in pre-order. Returning an error stops the walk.
type WalkFunc func(entry fsutil.Entry) error

// Walker is the external iteration capability.
type Walker interface {
	// ListImages enumerates the images stored in file.
	ListImages(ctx context.Context, file string) ([]ImageInfo, error)
	// Walk emits the entries of image index below root. Entries are
	// pre-order and depth-first; depths are relative to the image root.
	Walk(ctx context.Context, file string, index int, root string, recursive bool, fn WalkFunc) error
}

// scope filters a pre-order stream down to root (and optionally its direct
// children only), keeping archive-absolute depths.
type scope struct {
	root      string
	depth     int
	recursive bool
}

func newScope(root string, recursive bool) scope {
	clean := fsutil.CleanDir(root)
	return scope{root: clean, depth: len(fsutil.Components(clean)), recursive: recursive}
}

func (s scope) includes(e fsutil.Entry) bool {
	if s.depth == 0 {
		return s.recursive || e.Depth <= 1
	}
	if e.Depth < s.depth {
		return false
	}
	if e.Depth == s.depth {
		return fsutil.CleanDir(e.FullPath) == s.root
	}
	if !strings.HasPrefix(e.FullPath, s.root) {
		return false
	}
	return s.recursive || e.Depth == s.depth+1
}

// checkIndex rejects indexes outside 1..count.
func checkIndex(index, count int) error {
	if index < 1 || index > count {
		return fmt.Errorf("%w: %d", ErrNoSuchImage, index)
	}
	return nil
}

// CheckImageFile verifies that path names an existing regular file.
func CheckImageFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", path, ErrNotRegular)
	}
	return nil
}
