package archive

import (
	"context"
	"fmt"
	"os"
	"strings"

	fsutil "github.com/kk-code-lab/rwim/internal/fs"
	gofs "github.com/mitchellh/go-fs"
	"github.com/mitchellh/go-fs/fat"
)

// FATWalker lists FAT12/16 floppy and disk images. A FAT image holds a
// single volume, exposed as image index 1.
type FATWalker struct{}

// NewFATWalker returns a FAT walker.
func NewFATWalker() *FATWalker {
	return &FATWalker{}
}

// ListImages implements Walker.
func (w *FATWalker) ListImages(_ context.Context, file string) ([]ImageInfo, error) {
	return []ImageInfo{{Index: 1, Name: "Volume"}}, nil
}

// Walk implements Walker. Directories are read recursively, which yields
// pre-order naturally.
func (w *FATWalker) Walk(ctx context.Context, file string, index int, root string, recursive bool, fn WalkFunc) error {
	if err := checkIndex(index, 1); err != nil {
		return err
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", file, err)
	}
	defer func() {
		_ = f.Close()
	}()

	disk, err := gofs.NewFileDisk(f)
	if err != nil {
		return fmt.Errorf("cannot open %s as a disk: %w", file, err)
	}
	filesystem, err := fat.New(disk)
	if err != nil {
		return &IterationError{Code: 1, Err: fmt.Errorf("failed to decode FAT filesystem: %w", err)}
	}
	rootDir, err := filesystem.RootDir()
	if err != nil {
		return &IterationError{Code: 1, Err: fmt.Errorf("failed to read root directory: %w", err)}
	}

	sc := newScope(root, recursive)
	emit := func(e fsutil.Entry) error {
		if !sc.includes(e) {
			return nil
		}
		return fn(e)
	}

	if err := emit(fsutil.NewEntry(fsutil.RootPath, fsutil.AttrDirectory)); err != nil {
		return err
	}
	return walkFATDir(ctx, rootDir, fsutil.RootPath, emit)
}

func walkFATDir(ctx context.Context, dir gofs.Directory, dirPath string, emit func(fsutil.Entry) error) error {
	for _, child := range dir.Entries() {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := cleanFATName(child.Name())
		if name == "" || name == "." || name == ".." {
			continue
		}

		var attrs uint32
		if child.IsDir() {
			attrs = fsutil.AttrDirectory
		}
		entry := fsutil.NewEntry(fsutil.JoinFile(dirPath, name), attrs)
		if err := emit(entry); err != nil {
			return err
		}
		if !child.IsDir() {
			continue
		}

		sub, err := child.Dir()
		if err != nil {
			return &IterationError{Code: 1, Err: fmt.Errorf("failed to read %s: %w", entry.FullPath, err)}
		}
		if err := walkFATDir(ctx, sub, fsutil.JoinDir(dirPath, name), emit); err != nil {
			return err
		}
	}
	return nil
}

// cleanFATName drops the NUL and 0xFFFF fill that long file name slots pad
// unused characters with.
func cleanFATName(name string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 || r == 0xFFFF {
			return -1
		}
		return r
	}, name)
}
