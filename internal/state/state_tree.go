package state

import (
	fsutil "github.com/kk-code-lab/rwim/internal/fs"
	"github.com/kk-code-lab/rwim/internal/tree"
)

// TreeRows flattens the directory tree as currently expanded.
func (s *AppState) TreeRows() []tree.Row {
	if s.Session == nil {
		return nil
	}
	return s.Session.Tree().Visible(func(id tree.NodeID) bool {
		return s.TreeExpanded[id]
	})
}

// TreeCursorRow returns the visible row index of the tree cursor, or -1.
func (s *AppState) TreeCursorRow() int {
	for i, row := range s.TreeRows() {
		if row.ID == s.TreeCursor {
			return i
		}
	}
	return -1
}

// SelectedTreeNode resolves SelectedNodePath against the tree.
func (s *AppState) SelectedTreeNode() (tree.NodeID, bool) {
	if s.Session == nil {
		return tree.NoNode, false
	}
	return s.Session.Tree().Lookup(s.SelectedNodePath)
}

// revealNode expands every ancestor of id and puts the cursor on it.
func (s *AppState) revealNode(id tree.NodeID) {
	t := s.Session.Tree()
	if s.TreeExpanded == nil {
		s.TreeExpanded = map[tree.NodeID]bool{}
	}
	for _, anc := range t.Ancestors(id) {
		s.TreeExpanded[anc] = true
	}
	s.TreeCursor = id
	s.updateTreeScroll()
}

func (s *AppState) moveTreeCursor(delta int) bool {
	rows := s.TreeRows()
	if len(rows) == 0 {
		return false
	}
	cur := s.TreeCursorRow()
	if cur < 0 {
		cur = 0
	}
	next := cur + delta
	if next < 0 {
		next = 0
	}
	if next >= len(rows) {
		next = len(rows) - 1
	}
	if next == cur && rows[cur].ID == s.TreeCursor {
		return false
	}
	s.TreeCursor = rows[next].ID
	s.updateTreeScroll()
	return true
}

func (s *AppState) expandTreeCursor() bool {
	t := s.Session.Tree()
	children := t.Children(s.TreeCursor)
	if len(children) == 0 {
		return false
	}
	if !s.TreeExpanded[s.TreeCursor] {
		s.TreeExpanded[s.TreeCursor] = true
		return true
	}
	s.TreeCursor = children[0]
	s.updateTreeScroll()
	return true
}

func (s *AppState) collapseTreeCursor() bool {
	if s.TreeCursor != tree.RootID && s.TreeExpanded[s.TreeCursor] {
		delete(s.TreeExpanded, s.TreeCursor)
		return true
	}
	parent, ok := s.Session.Tree().Parent(s.TreeCursor)
	if !ok || parent == tree.NoNode {
		return false
	}
	s.TreeCursor = parent
	s.updateTreeScroll()
	return true
}

// TreeCursorPath is the archive path of the node under the tree cursor.
func (s *AppState) TreeCursorPath() string {
	if s.Session == nil {
		return fsutil.RootPath
	}
	return s.Session.Tree().Path(s.TreeCursor)
}

func (s *AppState) updateTreeScroll() {
	row := s.TreeCursorRow()
	if row < 0 {
		return
	}
	visible := s.visibleLines()
	if row < s.TreeScroll {
		s.TreeScroll = row
	} else if row >= s.TreeScroll+visible {
		s.TreeScroll = row - visible + 1
	}
	if s.TreeScroll < 0 {
		s.TreeScroll = 0
	}
}
