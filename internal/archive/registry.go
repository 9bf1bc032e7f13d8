package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format names a supported container kind.
type Format string

const (
	FormatUnknown Format = ""
	FormatWIM     Format = "wim"
	FormatSevenZ  Format = "7z"
	FormatFAT     Format = "fat"
)

var extensionFormats = map[string]Format{
	".wim": FormatWIM,
	".esd": FormatWIM,
	".swm": FormatWIM,
	".7z":  FormatSevenZ,
	".img": FormatFAT,
	".ima": FormatFAT,
	".vfd": FormatFAT,
	".flp": FormatFAT,
}

var (
	wimMagic    = []byte("MSWIM\x00\x00\x00")
	sevenZMagic = []byte{'7', 'z', 0xBC, 0xAF, 0x27, 0x1C}
)

// DetectFormat picks a format from the extension, falling back to sniffing
// the file header.
func DetectFormat(file string) (Format, error) {
	if f, ok := extensionFormats[strings.ToLower(filepath.Ext(file))]; ok {
		return f, nil
	}

	fh, err := os.Open(file)
	if err != nil {
		return FormatUnknown, err
	}
	defer func() {
		_ = fh.Close()
	}()

	header := make([]byte, 512)
	n, err := io.ReadFull(fh, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		return FormatUnknown, err
	}
	return sniffFormat(header[:n]), nil
}

func sniffFormat(header []byte) Format {
	switch {
	case bytes.HasPrefix(header, wimMagic):
		return FormatWIM
	case bytes.HasPrefix(header, sevenZMagic):
		return FormatSevenZ
	case len(header) >= 512 && header[510] == 0x55 && header[511] == 0xAA:
		return FormatFAT
	default:
		return FormatUnknown
	}
}

// Registry dispatches to the walker matching each file's format.
type Registry struct {
	walkers map[Format]Walker
}

// NewRegistry wires the built-in walkers. wimlibCommand overrides the
// wimlib-imagex binary.
func NewRegistry(wimlibCommand string) *Registry {
	return &Registry{walkers: map[Format]Walker{
		FormatWIM:    NewWimlibWalker(wimlibCommand),
		FormatSevenZ: NewSevenZipWalker(),
		FormatFAT:    NewFATWalker(),
	}}
}

// Register replaces the walker for a format.
func (r *Registry) Register(format Format, w Walker) {
	if r.walkers == nil {
		r.walkers = map[Format]Walker{}
	}
	r.walkers[format] = w
}

func (r *Registry) walkerFor(file string) (Walker, error) {
	format, err := DetectFormat(file)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", file, err)
	}
	w, ok := r.walkers[format]
	if !ok || w == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Base(file))
	}
	return w, nil
}

// ListImages implements Walker.
func (r *Registry) ListImages(ctx context.Context, file string) ([]ImageInfo, error) {
	w, err := r.walkerFor(file)
	if err != nil {
		return nil, err
	}
	return w.ListImages(ctx, file)
}

// Walk implements Walker.
func (r *Registry) Walk(ctx context.Context, file string, index int, root string, recursive bool, fn WalkFunc) error {
	w, err := r.walkerFor(file)
	if err != nil {
		return err
	}
	return w.Walk(ctx, file, index, root, recursive, fn)
}
