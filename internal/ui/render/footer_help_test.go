package render

import (
	"slices"
	"strings"
	"testing"

	"github.com/kk-code-lab/rwim/internal/archive"
	statepkg "github.com/kk-code-lab/rwim/internal/state"
)

func TestBuildFooterHelpSegments_DefaultMode(t *testing.T) {
	state := &statepkg.AppState{
		HideHiddenFiles:    true,
		ClipboardAvailable: true,
		Images:             []archive.ImageInfo{{Index: 1}, {Index: 2}},
	}

	got := buildFooterHelpSegments(state)
	want := []string{
		"↑/↓/↵/→/←: navigate",
		"[]: history",
		"Tab: tree",
		":: go to",
		"o: open image",
		"<>: image",
		".: toggle hidden",
		"y: yank path",
		"?: help",
		"q: quit",
	}

	if !slices.Equal(got, want) {
		t.Fatalf("default help mismatch\nwant: %#v\n got: %#v", want, got)
	}
}

func TestBuildFooterHelpSegments_PromptMode(t *testing.T) {
	state := &statepkg.AppState{
		PromptActive: true,
		PromptKind:   statepkg.PromptPath,
	}

	got := buildFooterHelpSegments(state)
	want := []string{
		"type: path",
		"↵: go",
		"Esc: cancel",
		"^W: delete word",
	}

	if !slices.Equal(got, want) {
		t.Fatalf("prompt help should only include contextual hints\nwant: %#v\n got: %#v", want, got)
	}
}

func TestBuildFooterHelpSegments_TreeFocus(t *testing.T) {
	state := &statepkg.AppState{Focus: statepkg.PaneTree}

	got := buildFooterHelpSegments(state)
	if got[0] != "↑/↓: move" || !slices.Contains(got, "Tab: contents") {
		t.Fatalf("tree help = %#v", got)
	}
	if slices.Contains(got, "<>: image") {
		t.Fatal("image cycling hint needs more than one image")
	}
}

func TestBuildFooterHelpTextPadding(t *testing.T) {
	state := &statepkg.AppState{}
	text := buildFooterHelpText(state)
	if !strings.HasPrefix(text, " ") || !strings.HasSuffix(text, " ") {
		t.Fatalf("footer text should be padded, got %q", text)
	}
	if buildFooterHelpText(nil) != "" {
		t.Fatal("nil state has no help")
	}
}

func TestHelpOverlayLinesReflectHiddenToggle(t *testing.T) {
	lines := buildHelpOverlayLines(&statepkg.AppState{HideHiddenFiles: true})
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"Navigation", "Tree", "Image", "Show hidden and system entries", "Previous/next image index"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("help overlay missing %q:\n%s", want, joined)
		}
	}

	lines = buildHelpOverlayLines(&statepkg.AppState{})
	if !strings.Contains(strings.Join(lines, "\n"), "Hide hidden and system entries") {
		t.Fatal("visible entries should offer hiding them")
	}
}

func TestFormatHelpOverlayEntryAligns(t *testing.T) {
	got := formatHelpOverlayEntry(helpOverlayEntry{keys: "q", desc: "Quit"})
	if got != "  q              Quit" {
		t.Fatalf("entry = %q", got)
	}
}
