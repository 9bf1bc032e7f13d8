// Package tree reconstructs the directory hierarchy of an image from the flat,
// depth-annotated entry stream produced by an archive walker.
package tree

import (
	"strings"

	fsutil "github.com/kk-code-lab/rwim/internal/fs"
)

// NodeID indexes a node inside a Tree. Parent links are NodeIDs so a node
// never owns its parent; the tree owns every node.
type NodeID int

const (
	// NoNode marks an absent node (the root's parent, empty cursor slots).
	NoNode NodeID = -1
	// RootID is the synthetic image root.
	RootID NodeID = 0
)

// Node is a materialised directory.
type Node struct {
	Name     string
	Depth    int
	Parent   NodeID
	Children []NodeID
	Entry    int // index into the session entry sequence, -1 for the root
}

// Tree is an arena of directory nodes rooted at RootID.
type Tree struct {
	nodes    []Node
	rootName string
}

// New returns a tree holding only the synthetic root.
func New(rootName string) *Tree {
	return &Tree{
		nodes:    []Node{{Name: "", Depth: 0, Parent: NoNode, Entry: -1}},
		rootName: rootName,
	}
}

// RootName is the display label of the root node.
func (t *Tree) RootName() string {
	return t.rootName
}

// Len returns the number of nodes including the root.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Node returns a copy of the node with the given id.
func (t *Tree) Node(id NodeID) (Node, bool) {
	if !t.valid(id) {
		return Node{}, false
	}
	return t.nodes[id], true
}

// Children returns the child ids of id in discovery order.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	return t.nodes[id].Children
}

// Parent returns the parent of id; the root has none.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	if !t.valid(id) || t.nodes[id].Parent == NoNode {
		return NoNode, false
	}
	return t.nodes[id].Parent, true
}

// Label returns the display name of a node.
func (t *Tree) Label(id NodeID) string {
	if id == RootID {
		return t.rootName
	}
	if !t.valid(id) {
		return ""
	}
	return t.nodes[id].Name
}

func (t *Tree) attach(parent NodeID, name string, entry int) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		Name:   name,
		Depth:  t.nodes[parent].Depth + 1,
		Parent: parent,
		Entry:  entry,
	})
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id
}

// Ancestors returns the chain from the root down to (excluding) id.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	var chain []NodeID
	for p := t.nodes[id].Parent; p != NoNode; p = t.nodes[p].Parent {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Path returns the directory path of id with a trailing separator.
func (t *Tree) Path(id NodeID) string {
	if !t.valid(id) || id == RootID {
		return fsutil.RootPath
	}
	names := make([]string, 0, t.nodes[id].Depth)
	for cur := id; cur != RootID && cur != NoNode; cur = t.nodes[cur].Parent {
		names = append(names, t.nodes[cur].Name)
	}
	var b strings.Builder
	b.WriteString(fsutil.RootPath)
	for i := len(names) - 1; i >= 0; i-- {
		b.WriteString(names[i])
		b.WriteString(fsutil.RootPath)
	}
	return b.String()
}

// Lookup resolves a directory path to a node. Each component is matched
// exactly first and case-insensitively as a fallback.
func (t *Tree) Lookup(path string) (NodeID, bool) {
	cur := RootID
	for _, part := range fsutil.Components(fsutil.CleanDir(path)) {
		next := t.child(cur, part)
		if next == NoNode {
			return NoNode, false
		}
		cur = next
	}
	return cur, true
}

func (t *Tree) child(parent NodeID, name string) NodeID {
	fold := NoNode
	for _, id := range t.nodes[parent].Children {
		childName := t.nodes[id].Name
		if childName == name {
			return id
		}
		if fold == NoNode && strings.EqualFold(childName, name) {
			fold = id
		}
	}
	return fold
}

// Row is one visible line of the tree pane.
type Row struct {
	ID          NodeID
	Depth       int
	HasChildren bool
	Expanded    bool
}

// Visible flattens the tree in pre-order, descending only into nodes for
// which expanded returns true. The root is always the first row.
func (t *Tree) Visible(expanded func(NodeID) bool) []Row {
	rows := make([]Row, 0, 64)
	var walk func(id NodeID)
	walk = func(id NodeID) {
		node := t.nodes[id]
		open := expanded != nil && expanded(id)
		rows = append(rows, Row{
			ID:          id,
			Depth:       node.Depth,
			HasChildren: len(node.Children) > 0,
			Expanded:    open,
		})
		if !open {
			return
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(RootID)
	return rows
}

// Walk visits every node in pre-order.
func (t *Tree) Walk(fn func(id NodeID, node Node) bool) {
	var walk func(id NodeID) bool
	walk = func(id NodeID) bool {
		if !fn(id, t.nodes[id]) {
			return false
		}
		for _, child := range t.nodes[id].Children {
			if !walk(child) {
				return false
			}
		}
		return true
	}
	walk(RootID)
}
