package tree

import (
	"errors"

	fsutil "github.com/kk-code-lab/rwim/internal/fs"
)

// ErrFrozen is returned when entries are pushed after Freeze.
var ErrFrozen = errors.New("tree is fully built")

// AddResult describes what Builder.Add did with an entry.
type AddResult int

const (
	// Skipped entries are files or the root entry.
	Skipped AddResult = iota
	// Attached entries became a new directory node.
	Attached
	// Orphaned entries had no node recorded at depth-1 and were dropped.
	Orphaned
)

// Builder materialises directory nodes from a pre-order entry stream.
//
// cursor[d] is the most recently created node at depth d. Because the walker
// emits a directory immediately before its first descendant, the parent of a
// directory at depth d is always cursor[d-1]. Overwriting a slot does not
// detach anything: nodes already hanging under the previous occupant stay
// reachable through it.
type Builder struct {
	tree     *Tree
	cursor   []NodeID
	frozen   bool
	orphans  int
	OnOrphan func(entry fsutil.Entry)
}

// NewBuilder returns a builder feeding t.
func NewBuilder(t *Tree) *Builder {
	return &Builder{
		tree:   t,
		cursor: []NodeID{RootID},
	}
}

// Tree returns the tree under construction.
func (b *Builder) Tree() *Tree {
	return b.tree
}

// Add consumes the entry at position index of the session sequence.
func (b *Builder) Add(entry fsutil.Entry, index int) (NodeID, AddResult, error) {
	if b.frozen {
		return NoNode, Skipped, ErrFrozen
	}
	if !entry.IsDir || entry.IsRoot() {
		return NoNode, Skipped, nil
	}

	parent := RootID
	if entry.Depth > 1 {
		parent = b.at(entry.Depth - 1)
		if parent == NoNode {
			b.orphans++
			if b.OnOrphan != nil {
				b.OnOrphan(entry)
			}
			return NoNode, Orphaned, nil
		}
	}

	id := b.tree.attach(parent, entry.Name, index)
	b.set(entry.Depth, id)
	return id, Attached, nil
}

func (b *Builder) at(depth int) NodeID {
	if depth < 0 || depth >= len(b.cursor) {
		return NoNode
	}
	return b.cursor[depth]
}

func (b *Builder) set(depth int, id NodeID) {
	for len(b.cursor) <= depth {
		b.cursor = append(b.cursor, NoNode)
	}
	b.cursor[depth] = id
}

// Freeze marks the tree fully built; later Add calls fail with ErrFrozen.
func (b *Builder) Freeze() {
	b.frozen = true
	b.cursor = nil
}

// Frozen reports whether Freeze has been called.
func (b *Builder) Frozen() bool {
	return b.frozen
}

// Orphans returns how many directory entries were dropped.
func (b *Builder) Orphans() int {
	return b.orphans
}
