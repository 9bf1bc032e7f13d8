package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/rwim/internal/fs"
	"github.com/kk-code-lab/rwim/internal/session"
	statepkg "github.com/kk-code-lab/rwim/internal/state"
)

func TestTruncateTextToWidth(t *testing.T) {
	r := NewRenderer(nil)

	tests := []struct {
		name   string
		text   string
		width  int
		expect string
	}{
		{
			name:   "fits without truncation",
			text:   "win.ini",
			width:  20,
			expect: "win.ini",
		},
		{
			name:   "adds ellipsis when needed",
			text:   "verylongname",
			width:  6,
			expect: "veryl…",
		},
		{
			name:   "only ellipsis when width too small",
			text:   "example",
			width:  1,
			expect: "…",
		},
		{
			name:   "multi-byte characters respected",
			text:   "你好世界",
			width:  5,
			expect: "你好…",
		},
		{
			name:   "returns empty when width is zero",
			text:   "anything",
			width:  0,
			expect: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := r.truncateTextToWidth(tt.text, tt.width)
			if actual != tt.expect {
				t.Fatalf("expected %q, got %q (width %d)", tt.expect, actual, tt.width)
			}
		})
	}
}

func TestTruncateLeftKeepsPathTail(t *testing.T) {
	r := NewRenderer(nil)

	if got := r.truncateLeft(`\Windows\System32\drivers\`, 12); got != `…32\drivers\` {
		t.Fatalf("truncateLeft = %q", got)
	}
	if got := r.truncateLeft(`\docs\`, 12); got != `\docs\` {
		t.Fatalf("short path should be untouched, got %q", got)
	}
}

func TestMeasureTextWidth(t *testing.T) {
	r := NewRenderer(nil)

	if got := r.measureTextWidth("abc"); got != 3 {
		t.Fatalf("expected ASCII width 3, got %d", got)
	}

	if got := r.measureTextWidth("你好"); got != 4 {
		t.Fatalf("expected wide rune width 4, got %d", got)
	}
}

func TestComputeLayout(t *testing.T) {
	wide := ComputeLayout(120, 30)
	if wide.TreeWidth != 34 || wide.ListStart != 35 || wide.ListWidth != 85 {
		t.Fatalf("wide layout = %+v", wide)
	}
	if !wide.showSize || !wide.showAttrs || !wide.showTime {
		t.Fatal("wide layout should show every column")
	}
	if wide.ContentTop != 2 || wide.ContentBottom != 28 {
		t.Fatalf("content rows = [%d,%d)", wide.ContentTop, wide.ContentBottom)
	}

	narrow := ComputeLayout(40, 10)
	if narrow.TreeWidth != 0 || narrow.ListStart != 0 || narrow.ListWidth != 40 {
		t.Fatalf("narrow layout = %+v", narrow)
	}
	if narrow.showTime {
		t.Fatal("narrow layout should drop the time column")
	}
}

func TestLayoutHit(t *testing.T) {
	l := ComputeLayout(100, 30)

	cases := []struct {
		x, y   int
		region Region
		row    int
	}{
		{5, 4, RegionTree, 2},
		{50, 2, RegionList, 0},
		{50, 1, RegionList, -1},
		{50, 0, RegionHeader, -1},
		{50, 28, RegionStatus, -1},
		{l.TreeWidth, 5, RegionNone, -1},
		{200, 5, RegionNone, -1},
	}
	for _, tc := range cases {
		region, row := l.Hit(tc.x, tc.y)
		if region != tc.region || row != tc.row {
			t.Fatalf("Hit(%d,%d) = %v,%d want %v,%d", tc.x, tc.y, region, row, tc.region, tc.row)
		}
	}
}

func TestFormatSize(t *testing.T) {
	cases := map[int64]string{
		0:               "0 B",
		1023:            "1023 B",
		1024:            "1 KiB",
		1536:            "1.5 KiB",
		413738:          "404 KiB",
		5 * 1024 * 1024: "5 MiB",
	}
	for n, want := range cases {
		if got := formatSize(n); got != want {
			t.Fatalf("formatSize(%d) = %q, want %q", n, got, want)
		}
	}
}

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(scr.Fini)
	scr.SetSize(w, h)
	return scr
}

func screenRow(scr tcell.SimulationScreen, y int) string {
	_, w, _ := scr.GetContents()
	return screenSpan(scr, y, 0, w)
}

// screenSpan reads the cells [from, to) of row y.
func screenSpan(scr tcell.SimulationScreen, y, from, to int) string {
	cells, w, _ := scr.GetContents()
	var b strings.Builder
	for x := from; x < to && x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(string(c.Runes))
	}
	return b.String()
}

func loadedState(t *testing.T, w, h int) *statepkg.AppState {
	t.Helper()
	state := statepkg.NewAppState(8)
	state.ScreenWidth, state.ScreenHeight = w, h
	reducer := statepkg.NewStateReducer(nil, 8)

	readme := fsutil.NewEntry(`\docs\readme.txt`, fsutil.AttrArchive)
	readme.Size = 1536
	entries := []fsutil.Entry{
		fsutil.NewEntry(`\`, fsutil.AttrDirectory),
		fsutil.NewEntry(`\docs`, fsutil.AttrDirectory),
		readme,
		fsutil.NewEntry(`\bin`, fsutil.AttrDirectory),
	}

	reduce := func(a statepkg.Action) {
		if _, err := reducer.Reduce(state, a); err != nil {
			t.Fatalf("Reduce(%T): %v", a, err)
		}
	}
	reduce(statepkg.SwitchImageAction{File: "/images/install.wim", Index: 1})
	gen := state.Generation()
	reduce(statepkg.EntriesAppendedAction{Batch: session.Batch{Generation: gen, Entries: entries}})
	reduce(statepkg.IngestionDoneAction{Done: session.Done{Generation: gen, Total: len(entries), Batches: 1}})
	reduce(statepkg.EnterAction{Name: "docs"})
	reduce(statepkg.NavigateDownAction{})
	return state
}

func TestRenderDrawsHeaderPanesAndStatus(t *testing.T) {
	scr := newSimScreen(t, 100, 12)
	state := loadedState(t, 100, 12)
	r := NewRenderer(scr)
	r.Render(state)

	header := screenRow(scr, 0)
	for _, want := range []string{"rwim", "install.wim [1]", `\docs\`} {
		if !strings.Contains(header, want) {
			t.Fatalf("header %q missing %q", header, want)
		}
	}

	layout, ok := r.LastLayout()
	if !ok {
		t.Fatal("expected a layout after render")
	}
	treeRoot := screenSpan(scr, layout.ContentTop, 0, layout.TreeWidth)
	if !strings.Contains(treeRoot, "Image Root") {
		t.Fatalf("tree root row = %q", treeRoot)
	}

	parentRow := screenSpan(scr, layout.ContentTop, layout.ListStart, layout.Width)
	if !strings.HasPrefix(parentRow, " / ..") {
		t.Fatalf("first list row = %q", parentRow)
	}
	fileRow := screenRow(scr, layout.ContentTop+1)
	if !strings.Contains(fileRow, "readme.txt") || !strings.Contains(fileRow, "1.5 KiB") || !strings.Contains(fileRow, "----A-") {
		t.Fatalf("file row = %q", fileRow)
	}

	status := screenRow(scr, 10)
	if !strings.Contains(status, "TXT file.") || !strings.Contains(status, "1 item(s)") {
		t.Fatalf("status row = %q", status)
	}
}

func TestRenderShowsPromptAndErrors(t *testing.T) {
	scr := newSimScreen(t, 100, 12)
	state := loadedState(t, 100, 12)
	state.PromptActive = true
	state.PromptInput = []rune(`\Windows`)
	state.LastError = errors.New("path not found: \\Windows\\")

	NewRenderer(scr).Render(state)

	if header := screenRow(scr, 0); !strings.Contains(header, `Go to: \Windows`) {
		t.Fatalf("prompt header = %q", header)
	}
	if status := screenRow(scr, 10); !strings.Contains(status, "path not found") {
		t.Fatalf("status row = %q", status)
	}
}

func TestRenderEmptyState(t *testing.T) {
	scr := newSimScreen(t, 80, 10)
	state := statepkg.NewAppState(8)
	r := NewRenderer(scr)
	r.Render(state)

	layout, _ := r.LastLayout()
	if row := screenRow(scr, layout.ContentTop); !strings.Contains(row, "No image open") {
		t.Fatalf("placeholder row = %q", row)
	}
	if header := screenRow(scr, 0); !strings.Contains(header, "no image") {
		t.Fatalf("header = %q", header)
	}
}

func TestRenderHelpOverlay(t *testing.T) {
	scr := newSimScreen(t, 80, 40)
	state := statepkg.NewAppState(8)
	state.HelpVisible = true
	NewRenderer(scr).Render(state)

	if title := screenRow(scr, 0); !strings.Contains(title, "Help") {
		t.Fatalf("title row = %q", title)
	}
	if row := screenRow(scr, 2); !strings.Contains(row, "Navigation") {
		t.Fatalf("first section = %q", row)
	}
}
