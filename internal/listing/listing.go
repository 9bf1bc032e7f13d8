package listing

import (
	"fmt"

	fsutil "github.com/kk-code-lab/rwim/internal/fs"
)

// ParentName is the label of the pseudo-entry that leads one level up.
const ParentName = ".."

// Listing is the content of one directory.
type Listing struct {
	Path      string
	Entries   []fsutil.Entry
	HasParent bool // a ".." pseudo-entry precedes Entries
}

// Row is one line of the contents pane. Parent rows carry no entry.
type Row struct {
	Parent bool
	Entry  fsutil.Entry
}

// Name is the label shown for the row.
func (r Row) Name() string {
	if r.Parent {
		return ParentName
	}
	return r.Entry.Name
}

// IsDir reports whether activating the row changes directory.
func (r Row) IsDir() bool {
	return r.Parent || r.Entry.IsDir
}

// Count is the number of real entries; the pseudo-entry is never counted.
func (l Listing) Count() int {
	return len(l.Entries)
}

// Rows returns the pane rows with the optional pseudo-entry first.
func (l Listing) Rows() []Row {
	rows := make([]Row, 0, len(l.Entries)+1)
	if l.HasParent {
		rows = append(rows, Row{Parent: true})
	}
	for _, e := range l.Entries {
		rows = append(rows, Row{Entry: e})
	}
	return rows
}

// Find returns the entry with the given name, if listed.
func (l Listing) Find(name string) (fsutil.Entry, bool) {
	for _, e := range l.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return fsutil.Entry{}, false
}

// ParentHint describes where the pseudo-entry leads.
func (l Listing) ParentHint() string {
	if !l.HasParent {
		return ""
	}
	parent := fsutil.Parent(l.Path)
	if fsutil.IsRoot(parent) {
		return "Go to the image root"
	}
	return fmt.Sprintf("Go to the parent directory (%s)", fsutil.Base(parent))
}

// CountLabel renders the item tally shown in the status line.
func (l Listing) CountLabel() string {
	return fmt.Sprintf("%d item(s)", l.Count())
}
