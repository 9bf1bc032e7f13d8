package render

import (
	"fmt"
	"strings"
	"time"

	statepkg "github.com/kk-code-lab/rwim/internal/state"
)

const columnTimeLayout = "2006-01-02 15:04"

// formatSize renders a byte count with binary units: "512 B", "1.5 KiB".
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	value := trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/float64(div)))
	return value + " " + string("KMGTPE"[exp]) + "iB"
}

func trimTrailingZero(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	return strings.TrimSuffix(strings.TrimSuffix(s, "0"), ".")
}

func formatColumnTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(columnTimeLayout)
}

// statusLeftText is the error when there is one, otherwise the selection
// description.
func statusLeftText(state *statepkg.AppState) (string, bool) {
	if state.LastError != nil {
		return state.LastError.Error(), true
	}
	return state.SelectionInfo(), false
}

// statusRightText joins the item count, ingestion progress and the last
// status message.
func statusRightText(state *statepkg.AppState) string {
	var parts []string
	if state.Session != nil && state.Session.HasImage() {
		parts = append(parts, state.CountLabel())
	}
	if progress := state.ProgressLabel(); progress != "" {
		parts = append(parts, progress)
	}
	if state.StatusMessage != "" {
		parts = append(parts, state.StatusMessage)
	}
	return strings.Join(parts, " · ")
}

// imageLabel names the open image for the header: "install.wim [1 (Home)]".
func imageLabel(state *statepkg.AppState, base func(string) string) string {
	if state.Session == nil || !state.Session.HasImage() {
		return "no image"
	}
	label := fmt.Sprintf("%d", state.Session.ImageIndex)
	if img, ok := state.CurrentImage(); ok {
		label = img.Label()
	}
	if n := len(state.Images); n > 1 {
		label = fmt.Sprintf("%s of %d", label, n)
	}
	return fmt.Sprintf("%s [%s]", base(state.Session.ImageFile), label)
}
