package textutil

import (
	"strings"
	"testing"
)

func TestSanitizeTerminalTextLeavesSafeInput(t *testing.T) {
	for _, input := range []string{"win.ini", `\Windows\System32\`, "Résumé 你好.txt"} {
		if got := SanitizeTerminalText(input); got != input {
			t.Fatalf("expected %q to remain untouched, got %q", input, got)
		}
	}
}

func TestSanitizeTerminalTextReplacesControlSequences(t *testing.T) {
	input := "bad\x1b[31m\npath\u009b"
	got := SanitizeTerminalText(input)
	if got != "bad?[31m path?" {
		t.Fatalf("expected sanitized string \"bad?[31m path?\", got %q", got)
	}
	for _, r := range got {
		if r < 0x20 || r == 0x7f {
			t.Fatalf("sanitized text should not contain control characters: %q", got)
		}
	}
}

func TestSanitizeTerminalTextLabelsInvisibleRunes(t *testing.T) {
	input := "a" + string(rune(0x202E)) + "b" + string(rune(0x200B)) + "c" + string(rune(0x00AD))
	got := SanitizeTerminalText(input)
	if strings.ContainsRune(got, 0x202E) || strings.ContainsRune(got, 0x200B) {
		t.Fatalf("sanitize left formatting runes in output: %q", got)
	}
	if got != "a⟪RLO⟫b⟪ZWSP⟫c⟪SHY⟫" {
		t.Fatalf("expected formatting runes to be labeled, got %q", got)
	}
}

func TestSanitizeTerminalTextRepairsInvalidUTF8(t *testing.T) {
	got := SanitizeTerminalText("KERNEL\xffSYS")
	if got != "KERNEL�SYS" {
		t.Fatalf("invalid byte should become U+FFFD, got %q", got)
	}
}
