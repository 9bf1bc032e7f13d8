package fs

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Entry represents a single file or directory stored inside an image.
type Entry struct {
	FullPath   string // archive-relative, backslash separated, starts at RootPath
	Name       string // empty for the synthetic root entry
	Depth      int    // 0 for the root, 1 for its children
	IsDir      bool
	Attributes uint32
	Size       int64
	Created    time.Time
	Modified   time.Time
	Accessed   time.Time
}

// NewEntry builds an entry from a path as reported by an archive walker.
// The path may use either separator; depth is derived from its components.
func NewEntry(fullPath string, attrs uint32) Entry {
	clean := CleanPath(fullPath)
	parts := Components(clean)
	name := ""
	if len(parts) > 0 {
		name = parts[len(parts)-1]
	}
	return Entry{
		FullPath:   clean,
		Name:       name,
		Depth:      len(parts),
		IsDir:      attrs&AttrDirectory != 0,
		Attributes: attrs,
	}
}

// IsRoot reports whether the entry is the image root itself.
func (e Entry) IsRoot() bool {
	return e.Name == "" || e.Depth == 0
}

// IsHidden reports whether the entry carries the hidden attribute bit.
func (e Entry) IsHidden() bool {
	return e.Attributes&AttrHidden != 0
}

// IsSystem reports whether the entry carries the system attribute bit.
func (e Entry) IsSystem() bool {
	return e.Attributes&AttrSystem != 0
}

// Extension returns the upper-case extension without the dot.
// Directories never have one.
func (e Entry) Extension() string {
	if e.IsDir {
		return ""
	}
	idx := strings.LastIndexByte(e.Name, '.')
	if idx <= 0 || idx == len(e.Name)-1 {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(e.Name[idx+1:]))
}

// DirPath returns the directory form of the entry path (trailing separator).
// Only meaningful for directories.
func (e Entry) DirPath() string {
	return CleanDir(e.FullPath)
}

// NormalizeName applies NFC so names decoded from different archive formats
// compare equal.
func NormalizeName(name string) string {
	return norm.NFC.String(name)
}
