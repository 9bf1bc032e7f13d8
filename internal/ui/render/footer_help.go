package render

import (
	"fmt"
	"strings"

	statepkg "github.com/kk-code-lab/rwim/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	segments := contextualHelpSegments(state)
	segments = append(segments, persistentHelpSegments(state)...)

	return segments
}

func contextualHelpSegments(state *statepkg.AppState) []string {
	switch {
	case state.PromptActive && state.PromptKind == statepkg.PromptOpen:
		return []string{
			"type: image file",
			"↵: open",
			"Esc: cancel",
			"^W: delete word",
		}
	case state.PromptActive:
		return []string{
			"type: path",
			"↵: go",
			"Esc: cancel",
			"^W: delete word",
		}
	case state.Focus == statepkg.PaneTree:
		return []string{
			"↑/↓: move",
			"→/←: expand/collapse",
			"↵: open folder",
			"Tab: contents",
		}
	default:
		return []string{
			"↑/↓/↵/→/←: navigate",
			"[]: history",
			"Tab: tree",
			":: go to",
			"o: open image",
		}
	}
}

func persistentHelpSegments(state *statepkg.AppState) []string {
	if state == nil || state.PromptActive {
		return nil
	}

	hiddenStatus := "visible"
	if state.HideHiddenFiles {
		hiddenStatus = "hidden"
	}

	segments := []string{}
	if len(state.Images) > 1 {
		segments = append(segments, "<>: image")
	}
	segments = append(segments, fmt.Sprintf(".: toggle %s", hiddenStatus))

	if state.ClipboardAvailable {
		segments = append(segments, "y: yank path")
	}

	segments = append(segments, "?: help", "q: quit")
	return segments
}
