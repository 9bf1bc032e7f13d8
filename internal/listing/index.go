// Package listing answers "what are the immediate children of directory P"
// against the flat entry sequence of an image session.
package listing

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	fsutil "github.com/kk-code-lab/rwim/internal/fs"
)

// DefaultCacheSize is the number of memoised listings kept once sealed.
const DefaultCacheSize = 64

// Index owns the write-once entry sequence of one session.
type Index struct {
	entries []fsutil.Entry
	sealed  bool
	cache   *lru.Cache[string, []int]
}

// New returns an empty index. cacheSize <= 0 disables memoisation.
func New(cacheSize int) *Index {
	idx := &Index{}
	if cacheSize > 0 {
		if cache, err := lru.New[string, []int](cacheSize); err == nil {
			idx.cache = cache
		}
	}
	return idx
}

// Append adds entries in arrival order. It is a no-op once sealed.
func (x *Index) Append(entries ...fsutil.Entry) {
	if x.sealed {
		return
	}
	x.entries = append(x.entries, entries...)
}

// Seal freezes the sequence and enables the listing cache.
func (x *Index) Seal() {
	x.sealed = true
}

// Sealed reports whether ingestion has finished.
func (x *Index) Sealed() bool {
	return x.sealed
}

// Len returns the number of entries ingested so far.
func (x *Index) Len() int {
	return len(x.entries)
}

// Entry returns the entry at position i.
func (x *Index) Entry(i int) (fsutil.Entry, bool) {
	if i < 0 || i >= len(x.entries) {
		return fsutil.Entry{}, false
	}
	return x.entries[i], true
}

// Entries exposes the sequence read-only.
func (x *Index) Entries() []fsutil.Entry {
	return x.entries
}

// List returns the immediate children of dir in archive order.
func (x *Index) List(dir string) Listing {
	dir = fsutil.CleanDir(dir)
	listing := Listing{Path: dir, HasParent: !fsutil.IsRoot(dir)}

	if x.sealed && x.cache != nil {
		if positions, ok := x.cache.Get(dir); ok {
			listing.Entries = x.collect(positions)
			return listing
		}
	}

	positions := x.scan(dir)
	if x.sealed && x.cache != nil {
		x.cache.Add(dir, positions)
	}
	listing.Entries = x.collect(positions)
	return listing
}

func (x *Index) scan(dir string) []int {
	target := fsutil.ChildDepth(dir)
	var positions []int
	for i := range x.entries {
		e := &x.entries[i]
		if e.IsRoot() || e.Depth != target {
			continue
		}
		if !strings.HasPrefix(e.FullPath, dir) {
			continue
		}
		positions = append(positions, i)
	}
	return positions
}

func (x *Index) collect(positions []int) []fsutil.Entry {
	if len(positions) == 0 {
		return nil
	}
	out := make([]fsutil.Entry, len(positions))
	for i, pos := range positions {
		out[i] = x.entries[pos]
	}
	return out
}
