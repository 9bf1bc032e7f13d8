package state

import (
	fsutil "github.com/kk-code-lab/rwim/internal/fs"
	"github.com/kk-code-lab/rwim/internal/listing"
)

// DisplayRows returns the contents pane rows after hidden filtering. The
// ".." row is never filtered.
func (s *AppState) DisplayRows() []listing.Row {
	rows := s.Listing.Rows()
	if !s.HideHiddenFiles {
		return rows
	}
	visible := rows[:0]
	for _, row := range rows {
		if !row.Parent && (row.Entry.IsHidden() || row.Entry.IsSystem()) {
			continue
		}
		visible = append(visible, row)
	}
	return visible
}

// SelectedRow returns the selected contents row.
func (s *AppState) SelectedRow() (listing.Row, bool) {
	rows := s.DisplayRows()
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(rows) {
		return listing.Row{}, false
	}
	return rows[s.SelectedIndex], true
}

// SelectedEntry returns the entry under the list cursor, if it is a real
// entry rather than the ".." row.
func (s *AppState) SelectedEntry() (fsutil.Entry, bool) {
	row, ok := s.SelectedRow()
	if !ok || row.Parent {
		return fsutil.Entry{}, false
	}
	return row.Entry, true
}

// selectedName identifies the selection across listing refreshes.
func (s *AppState) selectedName() (string, bool) {
	row, ok := s.SelectedRow()
	if !ok {
		return "", false
	}
	return row.Name(), true
}

// selectByName moves the list cursor to name, reporting whether it was found.
func (s *AppState) selectByName(name string) bool {
	for i, row := range s.DisplayRows() {
		if row.Name() == name {
			s.SelectedIndex = i
			return true
		}
	}
	return false
}

func (s *AppState) clampSelection() {
	n := len(s.DisplayRows())
	if n == 0 {
		s.SelectedIndex = 0
		s.ScrollOffset = 0
		return
	}
	if s.SelectedIndex >= n {
		s.SelectedIndex = n - 1
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
}

func (s *AppState) updateScrollVisibility() {
	visibleLines := s.visibleLines()
	rows := len(s.DisplayRows())

	if s.SelectedIndex < s.ScrollOffset {
		s.ScrollOffset = s.SelectedIndex
	} else if s.SelectedIndex >= s.ScrollOffset+visibleLines {
		s.ScrollOffset = s.SelectedIndex - visibleLines + 1
	}

	maxOffset := rows - visibleLines
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ScrollOffset > maxOffset {
		s.ScrollOffset = maxOffset
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}

func (s *AppState) centerScrollOnSelection() {
	visibleLines := s.visibleLines()
	s.ScrollOffset = s.SelectedIndex - visibleLines/2

	maxOffset := len(s.DisplayRows()) - visibleLines
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ScrollOffset > maxOffset {
		s.ScrollOffset = maxOffset
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}

// refreshListing re-queries the current directory, keeping the selection on
// the same name when it is still listed.
func (s *AppState) refreshListing() {
	name, hadSelection := s.selectedName()
	s.Listing = s.Session.List(s.CurrentPath)
	if !hadSelection || !s.selectByName(name) {
		s.clampSelection()
	}
	s.updateScrollVisibility()
}
