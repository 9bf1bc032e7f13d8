package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rwim/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the event asks the application to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) emit(action statepkg.Action) bool {
	ih.actionChan <- action
	return true
}

func (ih *InputHandler) quit() bool {
	ih.actionChan <- statepkg.QuitAction{}
	return false
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return ih.quit()
	}

	if ih.state != nil && ih.state.HelpVisible {
		return ih.processHelpKey(ev)
	}
	if ih.state != nil && ih.state.PromptActive {
		return ih.processPromptKey(ev)
	}

	treeFocused := ih.state != nil && ih.state.Focus == statepkg.PaneTree
	alt := ev.Modifiers()&tcell.ModAlt != 0

	switch ev.Key() {
	case tcell.KeyCtrlZ:
		return ih.emit(statepkg.SuspendAction{})

	case tcell.KeyUp:
		return ih.emit(statepkg.NavigateUpAction{})

	case tcell.KeyDown:
		return ih.emit(statepkg.NavigateDownAction{})

	case tcell.KeyPgUp:
		return ih.emit(statepkg.ScrollPageUpAction{})

	case tcell.KeyPgDn:
		return ih.emit(statepkg.ScrollPageDownAction{})

	case tcell.KeyHome:
		return ih.emit(statepkg.ScrollToStartAction{})

	case tcell.KeyEnd:
		return ih.emit(statepkg.ScrollToEndAction{})

	case tcell.KeyEnter:
		return ih.emit(statepkg.ActivateAction{})

	case tcell.KeyTab, tcell.KeyBacktab:
		return ih.emit(statepkg.FocusToggleAction{})

	case tcell.KeyRight:
		switch {
		case alt:
			return ih.emit(statepkg.GoForwardAction{})
		case treeFocused:
			return ih.emit(statepkg.TreeExpandAction{})
		default:
			return ih.emit(statepkg.ActivateAction{})
		}

	case tcell.KeyLeft:
		switch {
		case alt:
			return ih.emit(statepkg.GoBackAction{})
		case treeFocused:
			return ih.emit(statepkg.TreeCollapseAction{})
		default:
			return ih.emit(statepkg.GoUpAction{})
		}

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ih.emit(statepkg.GoUpAction{})

	case tcell.KeyRune:
		return ih.processNormalRune(ev.Rune())
	}

	return true
}

func (ih *InputHandler) processHelpKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		return ih.emit(statepkg.HelpHideAction{})
	case tcell.KeyRune:
		switch ev.Rune() {
		case '?', 'q', 'Q':
			return ih.emit(statepkg.HelpHideAction{})
		}
	}
	return true
}

// processPromptKey edits the path bar; every printable rune is input,
// including the ones bound to commands in normal mode.
func (ih *InputHandler) processPromptKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		return ih.emit(statepkg.PromptCancelAction{})
	case tcell.KeyEnter:
		return ih.emit(statepkg.PromptSubmitAction{})
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ih.emit(statepkg.PromptBackspaceAction{})
	case tcell.KeyCtrlW:
		return ih.emit(statepkg.PromptDeleteWordAction{})
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			switch ev.Rune() {
			case 'w', 'W':
				return ih.emit(statepkg.PromptDeleteWordAction{})
			case 'h', 'H':
				return ih.emit(statepkg.PromptBackspaceAction{})
			}
			return true
		}
		return ih.emit(statepkg.PromptCharAction{Char: ev.Rune()})
	}
	return true
}

func (ih *InputHandler) processNormalRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		return ih.quit()
	case '?':
		return ih.emit(statepkg.HelpToggleAction{})
	case '.':
		return ih.emit(statepkg.ToggleHiddenAction{})
	case '[':
		return ih.emit(statepkg.GoBackAction{})
	case ']':
		return ih.emit(statepkg.GoForwardAction{})
	case '~':
		return ih.emit(statepkg.GoRootAction{})
	case 'y':
		return ih.emit(statepkg.YankPathAction{})
	case ':':
		return ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptPath})
	case 'o':
		return ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptOpen})
	case '<', ',':
		return ih.emit(statepkg.CycleImageAction{Delta: -1})
	case '>':
		return ih.emit(statepkg.CycleImageAction{Delta: 1})
	case 'r', 'R':
		return ih.emit(statepkg.ReloadAction{})
	}
	return true
}
