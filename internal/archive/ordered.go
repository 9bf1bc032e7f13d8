package archive

import (
	"strings"

	fsutil "github.com/kk-code-lab/rwim/internal/fs"
)

// orderedTree re-threads entries listed in arbitrary archive order into the
// pre-order stream Walk promises. Siblings keep first-seen order; directories
// that only appear as a prefix of a file path are synthesised.
type orderedTree struct {
	root *orderedNode
}

type orderedNode struct {
	entry    fsutil.Entry
	explicit bool
	children []*orderedNode
	byName   map[string]*orderedNode
}

func newOrderedTree() *orderedTree {
	root := fsutil.NewEntry(fsutil.RootPath, fsutil.AttrDirectory)
	return &orderedTree{root: &orderedNode{entry: root, explicit: true, byName: map[string]*orderedNode{}}}
}

// add places entry in the trie. Names are matched exactly, since 7z keeps
// case-sensitive names. A node that gains children is promoted to a
// directory so emitted depths always follow containment.
func (t *orderedTree) add(entry fsutil.Entry) {
	parts := fsutil.Components(entry.FullPath)
	if len(parts) == 0 {
		return
	}
	node := t.root
	for i, part := range parts {
		key := fsutil.NormalizeName(part)
		child, ok := node.byName[key]
		if !ok {
			synth := fsutil.NewEntry(fsutil.RootPath+strings.Join(parts[:i+1], fsutil.RootPath), fsutil.AttrDirectory)
			child = &orderedNode{entry: synth, byName: map[string]*orderedNode{}}
			node.byName[key] = child
			node.children = append(node.children, child)
		}
		if i < len(parts)-1 {
			child.promote()
		}
		node = child
	}
	if !node.explicit {
		node.entry = entry
		node.explicit = true
		if len(node.children) > 0 {
			node.promote()
		}
	}
}

func (n *orderedNode) promote() {
	n.entry.IsDir = true
	n.entry.Attributes |= fsutil.AttrDirectory
	n.entry.Size = 0
}

func (t *orderedTree) walk(fn func(fsutil.Entry) error) error {
	var visit func(n *orderedNode) error
	visit = func(n *orderedNode) error {
		if err := fn(n.entry); err != nil {
			return err
		}
		for _, c := range n.children {
			if err := visit(c); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(t.root)
}
