package render

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/rwim/internal/fs"
	"github.com/kk-code-lab/rwim/internal/listing"
	statepkg "github.com/kk-code-lab/rwim/internal/state"
	"github.com/kk-code-lab/rwim/internal/textutil"
	"github.com/kk-code-lab/rwim/internal/tree"
)

const yankFlashDuration = 100 * time.Millisecond

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes

	lastLayout    Layout
	hasLastLayout bool
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// LastLayout returns the layout of the most recent frame.
func (r *Renderer) LastLayout() (Layout, bool) {
	return r.lastLayout, r.hasLastLayout
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()
	w, h := r.screen.Size()

	if state.HelpVisible {
		r.drawHelpOverlay(state, w, h)
		r.screen.Show()
		return
	}

	layout := ComputeLayout(w, h)
	r.lastLayout = layout
	r.hasLastLayout = true

	r.drawHeader(state, w)
	if layout.TreeWidth > 0 {
		r.drawTreePane(state, layout)
		sepStyle := tcell.StyleDefault.Foreground(r.theme.ColumnFg)
		for y := paneTitleRow; y < layout.ContentBottom; y++ {
			r.screen.SetContent(layout.TreeWidth, y, '│', nil, sepStyle)
		}
	}
	r.drawListPane(state, layout)
	r.drawStatusLine(state, w, h)
	r.drawFooter(state, w, h)

	r.screen.Show()
}

// drawHeader renders the top bar: program name, image label and either the
// path bar or the active prompt.
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)

	x := r.drawTextLine(0, headerRow, w, "rwim ", headerStyle.Bold(true))
	label := textutil.SanitizeTerminalText(imageLabel(state, filepath.Base)) + " "
	x = r.drawTextLine(x, headerRow, w-x, label, headerStyle.Foreground(r.theme.ColumnFg))

	if state.PromptActive {
		r.drawPrompt(state, x, w)
		return
	}

	if x < w {
		path := r.truncateLeft(textutil.SanitizeTerminalText(state.CurrentPath), w-x)
		x = r.drawTextLine(x, headerRow, w-x, path, headerStyle.Bold(true))
	}
	r.fillRow(x, w, headerRow, headerStyle)
}

func (r *Renderer) drawPrompt(state *statepkg.AppState, startX, w int) {
	style := tcell.StyleDefault.Background(r.theme.PromptBg).Foreground(r.theme.PromptFg)
	cursorStyle := style.Reverse(true)

	label := "Go to: "
	if state.PromptKind == statepkg.PromptOpen {
		label = "Open: "
	}
	x := r.drawTextLine(startX, headerRow, w-startX, label, style.Bold(true))

	// Keep the end of the input and the cursor visible.
	input := textutil.SanitizeTerminalText(state.PromptText())
	input = r.truncateLeft(input, w-x-1)
	x = r.drawTextLine(x, headerRow, w-x, input, style)
	x = r.drawStyledRune(x, headerRow, w, ' ', cursorStyle)
	r.fillRow(x, w, headerRow, style)
}

func (r *Renderer) drawTreePane(state *statepkg.AppState, layout Layout) {
	width := layout.TreeWidth
	baseStyle := tcell.StyleDefault.Background(r.theme.TreeBg).Foreground(r.theme.TreeFg)

	titleStyle := baseStyle.Foreground(r.theme.ColumnFg)
	if state.Focus == statepkg.PaneTree {
		titleStyle = titleStyle.Bold(true)
	}
	end := r.drawTextLine(0, paneTitleRow, width, " Folders", titleStyle)
	r.fillRow(end, width, paneTitleRow, baseStyle)

	y := layout.ContentTop
	if state.Session != nil {
		t := state.Session.Tree()
		current, _ := state.SelectedTreeNode()
		rows := state.TreeRows()
		for i := state.TreeScroll; i < len(rows) && y < layout.ContentBottom; i++ {
			row := rows[i]
			style := r.treeRowStyle(state, t, row.ID, current, baseStyle)
			text := r.formatTreeRow(t, row, width)
			end := r.drawTextLine(0, y, width, text, style)
			r.fillRow(end, width, y, style)
			y++
		}
	}
	for ; y < layout.ContentBottom; y++ {
		r.fillRow(0, width, y, baseStyle)
	}
}

func (r *Renderer) treeRowStyle(state *statepkg.AppState, t *tree.Tree, id, current tree.NodeID, base tcell.Style) tcell.Style {
	switch {
	case id == state.TreeCursor && state.Focus == statepkg.PaneTree:
		return tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	case id == current:
		return base.Foreground(r.theme.TreeCurrentFg).Bold(true)
	}
	if node, ok := t.Node(id); ok && node.Entry >= 0 {
		if e, ok := state.Session.Index().Entry(node.Entry); ok && (e.IsHidden() || e.IsSystem()) {
			return base.Foreground(r.theme.HiddenFg)
		}
	}
	return base
}

func (r *Renderer) formatTreeRow(t *tree.Tree, row tree.Row, width int) string {
	indent := make([]rune, 0, row.Depth*2+3)
	indent = append(indent, ' ')
	for i := 0; i < row.Depth; i++ {
		indent = append(indent, ' ', ' ')
	}
	switch {
	case !row.HasChildren:
		indent = append(indent, ' ')
	case row.Expanded:
		indent = append(indent, '▾')
	default:
		indent = append(indent, '▸')
	}
	indent = append(indent, ' ')

	prefix := string(indent)
	nameWidth := width - r.measureTextWidth(prefix)
	name := textutil.SanitizeTerminalText(t.Label(row.ID))
	if nameWidth <= 0 {
		return r.truncateTextToWidth(prefix, width)
	}
	return prefix + r.truncateTextToWidth(name, nameWidth)
}

func (r *Renderer) drawListPane(state *statepkg.AppState, layout Layout) {
	startX := layout.ListStart
	endX := startX + layout.ListWidth
	baseStyle := tcell.StyleDefault.Background(r.theme.Background)

	r.drawColumnTitles(state, layout)

	rows := state.DisplayRows()
	y := layout.ContentTop
	if len(rows) == 0 && y < layout.ContentBottom {
		placeholder := " (empty)"
		if state.Session == nil || !state.Session.HasImage() {
			placeholder = " No image open. Press o to open one."
		} else if !state.Session.TreeFullyBuilt() {
			placeholder = " reading image…"
		}
		dim := baseStyle.Foreground(r.theme.ColumnFg)
		end := r.drawTextLine(startX, y, layout.ListWidth, placeholder, dim)
		r.fillRow(end, endX, y, baseStyle)
		y++
	}

	for i := state.ScrollOffset; i < len(rows) && y < layout.ContentBottom; i++ {
		style := r.listRowStyle(state, rows[i], i == state.SelectedIndex, baseStyle)
		r.drawListRow(rows[i], layout, y, style)
		y++
	}
	for ; y < layout.ContentBottom; y++ {
		r.fillRow(startX, endX, y, baseStyle)
	}
}

func (r *Renderer) drawColumnTitles(state *statepkg.AppState, layout Layout) {
	startX := layout.ListStart
	endX := startX + layout.ListWidth
	style := tcell.StyleDefault.Foreground(r.theme.ColumnFg)
	if state.Focus == statepkg.PaneList {
		style = style.Bold(true)
	}
	r.fillRow(startX, endX, paneTitleRow, style)
	r.drawTextLine(startX, paneTitleRow, layout.ListWidth, "   Name", style)
	r.drawColumns(layout, paneTitleRow, "Size", "Attrs", "Modified", style)
}

func (r *Renderer) listRowStyle(state *statepkg.AppState, row listing.Row, selected bool, base tcell.Style) tcell.Style {
	if selected {
		if state.Focus == statepkg.PaneList {
			return tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
		}
		return tcell.StyleDefault.Background(r.theme.InactiveSelectBg).Foreground(r.theme.InactiveSelectFg)
	}
	style := base.Foreground(r.theme.FileFg)
	if row.IsDir() {
		style = base.Foreground(r.theme.DirectoryFg)
	}
	if !row.Parent && (row.Entry.IsHidden() || row.Entry.IsSystem()) {
		style = style.Foreground(r.theme.HiddenFg)
	}
	return style
}

func (r *Renderer) drawListRow(row listing.Row, layout Layout, y int, style tcell.Style) {
	startX := layout.ListStart
	r.fillRow(startX, startX+layout.ListWidth, y, style)

	icon := " "
	if row.IsDir() {
		icon = "/"
	}
	name := textutil.SanitizeTerminalText(row.Name())
	text := " " + icon + " " + r.truncateTextToWidth(name, layout.nameColumnWidth())
	r.drawTextLine(startX, y, layout.ListWidth, text, style)

	if row.Parent {
		return
	}
	size := ""
	if !row.Entry.IsDir {
		size = formatSize(row.Entry.Size)
	}
	r.drawColumns(layout, y, size, fsutil.FormatAttributes(row.Entry.Attributes), formatColumnTime(row.Entry.Modified), style)
}

// drawColumns right-aligns the optional size, attribute and time columns.
func (r *Renderer) drawColumns(layout Layout, y int, size, attrs, modified string, style tcell.Style) {
	x := layout.ListStart + layout.ListWidth - 1
	if layout.showTime {
		r.drawRightAligned(x, y, x-timeColumnWidth, modified, style)
		x -= timeColumnWidth + columnGap
	}
	if layout.showAttrs {
		r.drawRightAligned(x, y, x-attrColumnWidth, attrs, style)
		x -= attrColumnWidth + columnGap
	}
	if layout.showSize {
		r.drawRightAligned(x, y, x-sizeColumnWidth, size, style)
	}
}

// drawStatusLine renders the selection info (or the last error) on the left
// and counts and progress on the right.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	y := h - 2
	if y < 0 {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	if !state.LastYankTime.IsZero() && time.Since(state.LastYankTime) < yankFlashDuration {
		style = tcell.StyleDefault.Background(r.theme.YankFlashBg).Foreground(r.theme.YankFlashFg)
	}
	r.fillRow(0, w, y, style)

	right := textutil.SanitizeTerminalText(statusRightText(state))
	rightStart := w
	if right != "" {
		rightStart = r.drawRightAligned(w-1, y, w/3, right, style)
	}

	left, isErr := statusLeftText(state)
	leftStyle := style
	if isErr {
		leftStyle = style.Foreground(r.theme.ErrorFg)
	}
	left = r.truncateTextToWidth(" "+textutil.SanitizeTerminalText(left), rightStart-1)
	r.drawTextLine(0, y, rightStart-1, left, leftStyle)
}

func (r *Renderer) drawFooter(state *statepkg.AppState, w, h int) {
	y := h - 1
	if y < 0 {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Dim(true)
	r.fillRow(0, w, y, style)
	help := textutil.SanitizeTerminalText(buildFooterHelpText(state))
	r.drawTextLine(0, y, w, r.truncateTextToWidth(help, w), style)
}
