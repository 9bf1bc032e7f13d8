package render

// Screen rows: header, pane titles, pane contents, status line, footer.
const (
	headerRow      = 0
	paneTitleRow   = 1
	contentTopRow  = 2
	bottomReserved = 2
)

const (
	minListPanelWidth = 24
	sizeColumnWidth   = 9
	attrColumnWidth   = 6
	timeColumnWidth   = 16
	columnGap         = 2
)

// Layout describes where the panes were drawn. It is exported so mouse
// handling can map clicks back to rows.
type Layout struct {
	Width, Height int
	TreeWidth     int
	ListStart     int
	ListWidth     int
	ContentTop    int
	ContentBottom int // exclusive

	showSize  bool
	showAttrs bool
	showTime  bool
}

// Region identifies the area under a screen position.
type Region int

const (
	RegionNone Region = iota
	RegionHeader
	RegionTree
	RegionList
	RegionStatus
)

// ComputeLayout splits a w×h screen into the tree and contents panes.
func ComputeLayout(w, h int) Layout {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	l := Layout{Width: w, Height: h, ContentTop: contentTopRow}
	l.ContentBottom = h - bottomReserved
	if l.ContentBottom < l.ContentTop {
		l.ContentBottom = l.ContentTop
	}

	l.TreeWidth = treeWidthForWidth(w)
	if l.TreeWidth > 0 && w-l.TreeWidth-1 < minListPanelWidth {
		l.TreeWidth = 0
	}
	if l.TreeWidth > 0 {
		l.ListStart = l.TreeWidth + 1
	}
	l.ListWidth = w - l.ListStart
	if l.ListWidth < 0 {
		l.ListWidth = 0
	}

	l.showSize = l.ListWidth >= 30
	l.showAttrs = l.ListWidth >= 44
	l.showTime = l.ListWidth >= 64
	return l
}

func treeWidthForWidth(w int) int {
	switch {
	case w >= 150:
		return 40
	case w >= 120:
		return 34
	case w >= 100:
		return 28
	case w >= 80:
		return 24
	case w >= 64:
		return 20
	case w >= 50:
		return 16
	default:
		return 0
	}
}

// Hit resolves a screen position. Row is the pane-relative content row, or
// -1 when the position is outside the pane contents.
func (l Layout) Hit(x, y int) (Region, int) {
	switch {
	case y < 0 || x < 0 || y >= l.Height || x >= l.Width:
		return RegionNone, -1
	case y == headerRow:
		return RegionHeader, -1
	case y >= l.ContentBottom:
		return RegionStatus, -1
	}

	row := y - l.ContentTop
	if row < 0 {
		row = -1
	}
	if l.TreeWidth > 0 && x < l.TreeWidth {
		return RegionTree, row
	}
	if x >= l.ListStart {
		return RegionList, row
	}
	return RegionNone, -1
}

func (l Layout) contentRows() int {
	return l.ContentBottom - l.ContentTop
}

// nameColumnWidth is what remains of the list pane after the right-hand
// columns and the icon prefix.
func (l Layout) nameColumnWidth() int {
	width := l.ListWidth - 3
	if l.showSize {
		width -= sizeColumnWidth + columnGap
	}
	if l.showAttrs {
		width -= attrColumnWidth + columnGap
	}
	if l.showTime {
		width -= timeColumnWidth + columnGap
	}
	if width < 0 {
		width = 0
	}
	return width
}
