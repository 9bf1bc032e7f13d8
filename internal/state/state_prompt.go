package state

import (
	"strings"
	"unicode"

	"github.com/kk-code-lab/rwim/internal/archive"
)

func (s *AppState) startPrompt(kind PromptKind) {
	s.PromptActive = true
	s.PromptKind = kind
	switch kind {
	case PromptOpen:
		s.PromptInput = []rune(s.Session.ImageFile)
	default:
		s.PromptInput = []rune(s.CurrentPath)
	}
}

func (s *AppState) cancelPrompt() {
	s.PromptActive = false
	s.PromptInput = nil
}

func isPromptWordBreak(r rune) bool {
	return r == '\\' || r == '/' || unicode.IsSpace(r)
}

// deletePromptWord removes trailing separators and then the word before
// them, like Ctrl-W in a shell.
func (s *AppState) deletePromptWord() {
	in := s.PromptInput
	i := len(in)
	for i > 0 && isPromptWordBreak(in[i-1]) {
		i--
	}
	for i > 0 && !isPromptWordBreak(in[i-1]) {
		i--
	}
	s.PromptInput = in[:i]
}

func (r *StateReducer) submitPrompt(state *AppState) error {
	text := strings.TrimSpace(state.PromptText())
	kind := state.PromptKind
	state.cancelPrompt()
	if text == "" {
		return nil
	}

	switch kind {
	case PromptOpen:
		if err := archive.CheckImageFile(text); err != nil {
			return err
		}
		return r.switchImage(state, text, 1)
	default:
		return r.jumpTo(state, text)
	}
}
