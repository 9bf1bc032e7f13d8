package fs

import "strings"

const (
	// Separator is the path separator used inside images.
	Separator = '\\'
	// RootPath denotes the image root.
	RootPath = `\`
)

// Components splits an archive path into its non-empty components.
// Both separators are accepted.
func Components(p string) []string {
	fields := strings.FieldsFunc(p, func(r rune) bool {
		return r == '\\' || r == '/'
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func resolve(p string) []string {
	parts := Components(p)
	out := parts[:0]
	for _, part := range parts {
		switch part {
		case ".":
			continue
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, NormalizeName(part))
		}
	}
	return out
}

// CleanPath returns the canonical form of p without a trailing separator,
// except for the root which is always RootPath.
func CleanPath(p string) string {
	parts := resolve(p)
	if len(parts) == 0 {
		return RootPath
	}
	return RootPath + strings.Join(parts, RootPath)
}

// CleanDir returns the canonical directory form of p: leading and trailing
// separator, "." and ".." resolved (never above the root).
func CleanDir(p string) string {
	parts := resolve(p)
	if len(parts) == 0 {
		return RootPath
	}
	return RootPath + strings.Join(parts, RootPath) + RootPath
}

// IsRoot reports whether p denotes the image root.
func IsRoot(p string) bool {
	return len(Components(p)) == 0
}

// Parent returns the directory containing dir, or RootPath for the root.
func Parent(dir string) string {
	parts := resolve(dir)
	if len(parts) <= 1 {
		return RootPath
	}
	return RootPath + strings.Join(parts[:len(parts)-1], RootPath) + RootPath
}

// Base returns the last component of p, or "" for the root.
func Base(p string) string {
	parts := Components(p)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// JoinDir appends a child directory name to dir.
func JoinDir(dir, name string) string {
	return CleanDir(dir + RootPath + name)
}

// JoinFile appends a file name to dir without a trailing separator.
func JoinFile(dir, name string) string {
	return CleanPath(dir + RootPath + name)
}

// ChildDepth is the entry depth of the immediate children of dir.
func ChildDepth(dir string) int {
	return len(Components(dir)) + 1
}
