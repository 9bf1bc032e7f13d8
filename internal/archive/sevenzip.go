package archive

import (
	"context"
	"fmt"
	"os"

	"github.com/javi11/sevenzip"
	fsutil "github.com/kk-code-lab/rwim/internal/fs"
)

// SevenZipWalker lists 7z archives. A 7z file holds exactly one image.
type SevenZipWalker struct{}

// NewSevenZipWalker returns a 7z walker.
func NewSevenZipWalker() *SevenZipWalker {
	return &SevenZipWalker{}
}

// ListImages implements Walker.
func (w *SevenZipWalker) ListImages(_ context.Context, file string) ([]ImageInfo, error) {
	return []ImageInfo{{Index: 1, Name: "Archive"}}, nil
}

// Walk implements Walker.
func (w *SevenZipWalker) Walk(ctx context.Context, file string, index int, root string, recursive bool, fn WalkFunc) error {
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
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("cannot stat %s: %w", file, err)
	}

	r, err := sevenzip.NewReader(f, info.Size())
	if err != nil {
		return &IterationError{Code: 1, Err: fmt.Errorf("failed to open 7z archive: %w", err)}
	}

	ordered := newOrderedTree()
	for _, zf := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		mode := zf.FileInfo().Mode()
		attrs := zf.Attributes & 0xFFFF
		if mode.IsDir() {
			attrs |= fsutil.AttrDirectory
		}
		entry := fsutil.NewEntry(zf.Name, attrs)
		entry.Size = int64(zf.UncompressedSize)
		entry.Created = zf.Created
		entry.Modified = zf.Modified
		entry.Accessed = zf.Accessed
		ordered.add(entry)
	}

	sc := newScope(root, recursive)
	return ordered.walk(func(e fsutil.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !sc.includes(e) {
			return nil
		}
		return fn(e)
	})
}
