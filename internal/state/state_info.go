package state

import (
	"fmt"
	"strings"
	"time"

	fsutil "github.com/kk-code-lab/rwim/internal/fs"
	"github.com/kk-code-lab/rwim/internal/session"
)

const entryTimeLayout = "2006-01-02 15:04:05"

func formatEntryTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format(entryTimeLayout)
}

// FormatEntryInfo renders the one-line description of a selected entry.
func FormatEntryInfo(e fsutil.Entry) string {
	times := fmt.Sprintf("Created at %s, last modified at %s, last accessed at %s",
		formatEntryTime(e.Created), formatEntryTime(e.Modified), formatEntryTime(e.Accessed))
	if e.IsDir {
		return times
	}
	kind := "File."
	if ext := e.Extension(); ext != "" {
		kind = ext + " file."
	}
	return kind + " " + times
}

// SelectionInfo describes the selected row for the status line.
func (s *AppState) SelectionInfo() string {
	row, ok := s.SelectedRow()
	if !ok {
		return ""
	}
	if row.Parent {
		return s.Listing.ParentHint()
	}
	return FormatEntryInfo(row.Entry)
}

// CountLabel is the "N item(s)" tally of the current listing.
func (s *AppState) CountLabel() string {
	return s.Listing.CountLabel()
}

// YankTarget is the archive path copied by YankPathAction: the selected
// entry, or the current directory when ".." or nothing is selected.
func (s *AppState) YankTarget() string {
	if e, ok := s.SelectedEntry(); ok {
		return e.FullPath
	}
	return s.CurrentPath
}

// ProgressLabel summarises ingestion for the status line.
func (s *AppState) ProgressLabel() string {
	sess := s.Session
	if sess == nil || !sess.HasImage() {
		return ""
	}
	var parts []string
	switch sess.Status() {
	case session.StatusIngesting:
		parts = append(parts, fmt.Sprintf("reading… %d entries", sess.EntryCount()))
	case session.StatusFailed:
		parts = append(parts, "failed")
	default:
		parts = append(parts, fmt.Sprintf("%d entries", sess.EntryCount()))
	}
	if n := sess.Orphans(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d orphaned", n))
	}
	return strings.Join(parts, ", ")
}
