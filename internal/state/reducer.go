package state

import (
	"github.com/kk-code-lab/rwim/internal/listing"
	"github.com/kk-code-lab/rwim/internal/session"
	"github.com/kk-code-lab/rwim/internal/tree"
)

// ===== REDUCER =====

// StateReducer applies actions to state
type StateReducer struct {
	ingestor         session.Ingestor
	listeners        Listeners
	cacheSize        int
	selectionHistory map[string]string // path -> selected row name
}

// NewStateReducer creates a new reducer. ingestor may be nil in tests that
// feed ingestion actions by hand.
func NewStateReducer(ingestor session.Ingestor, cacheSize int) *StateReducer {
	if cacheSize <= 0 {
		cacheSize = listing.DefaultCacheSize
	}
	return &StateReducer{
		ingestor:         ingestor,
		cacheSize:        cacheSize,
		selectionHistory: make(map[string]string),
	}
}

// AddListener registers a notification sink.
func (r *StateReducer) AddListener(l Listener) {
	if l != nil {
		r.listeners = append(r.listeners, l)
	}
}

// Reduce applies one action. Navigation failures leave the state untouched
// and are returned as errors.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== NAVIGATION =====

	case EnterAction:
		return state, r.enter(state, a.Name)

	case GoUpAction:
		return state, r.goUp(state)

	case GoBackAction:
		return state, r.goBack(state)

	case GoForwardAction:
		return state, r.goForward(state)

	case GoRootAction:
		return state, r.jumpTo(state, `\`)

	case JumpToAction:
		return state, r.jumpTo(state, a.Path)

	case SwitchImageAction:
		return state, r.switchImage(state, a.File, a.Index)

	case CycleImageAction:
		return state, r.cycleImage(state, a.Delta)

	case ReloadAction:
		return state, r.reload(state)

	// ===== LIST / TREE =====

	case NavigateDownAction:
		if state.Focus == PaneTree {
			state.moveTreeCursor(1)
			return state, nil
		}
		rows := state.DisplayRows()
		if state.SelectedIndex >= len(rows)-1 {
			return state, nil
		}
		state.SelectedIndex++
		state.updateScrollVisibility()
		return state, nil

	case NavigateUpAction:
		if state.Focus == PaneTree {
			state.moveTreeCursor(-1)
			return state, nil
		}
		if state.SelectedIndex <= 0 {
			return state, nil
		}
		state.SelectedIndex--
		state.updateScrollVisibility()
		return state, nil

	case ScrollPageUpAction:
		if state.Focus == PaneTree {
			state.moveTreeCursor(-state.visibleLines())
			return state, nil
		}
		state.SelectedIndex -= state.visibleLines()
		state.clampSelection()
		state.updateScrollVisibility()
		return state, nil

	case ScrollPageDownAction:
		if state.Focus == PaneTree {
			state.moveTreeCursor(state.visibleLines())
			return state, nil
		}
		state.SelectedIndex += state.visibleLines()
		state.clampSelection()
		state.updateScrollVisibility()
		return state, nil

	case ScrollToStartAction:
		if state.Focus == PaneTree {
			state.TreeCursor = tree.RootID
			state.updateTreeScroll()
			return state, nil
		}
		state.SelectedIndex = 0
		state.updateScrollVisibility()
		return state, nil

	case ScrollToEndAction:
		if state.Focus == PaneTree {
			rows := state.TreeRows()
			state.TreeCursor = rows[len(rows)-1].ID
			state.updateTreeScroll()
			return state, nil
		}
		state.SelectedIndex = len(state.DisplayRows()) - 1
		state.clampSelection()
		state.updateScrollVisibility()
		return state, nil

	case MouseSelectAction:
		state.Focus = PaneList
		if a.DisplayIndex < 0 || a.DisplayIndex >= len(state.DisplayRows()) {
			return state, nil
		}
		state.SelectedIndex = a.DisplayIndex
		state.updateScrollVisibility()
		return state, nil

	case TreeMouseSelectAction:
		rows := state.TreeRows()
		state.Focus = PaneTree
		if a.Row < 0 || a.Row >= len(rows) {
			return state, nil
		}
		state.TreeCursor = rows[a.Row].ID
		state.updateTreeScroll()
		return state, nil

	case ActivateAction:
		if state.Focus == PaneTree {
			return state, r.jumpTo(state, state.TreeCursorPath())
		}
		row, ok := state.SelectedRow()
		if !ok {
			return state, nil
		}
		if row.Parent {
			return state, r.goUp(state)
		}
		if row.Entry.IsDir {
			return state, r.enter(state, row.Entry.Name)
		}
		return state, nil

	case TreeActivateAction:
		return state, r.jumpTo(state, state.TreeCursorPath())

	case TreeExpandAction:
		state.expandTreeCursor()
		return state, nil

	case TreeCollapseAction:
		state.collapseTreeCursor()
		return state, nil

	case FocusToggleAction:
		if state.Focus == PaneTree {
			state.Focus = PaneList
			return state, nil
		}
		state.Focus = PaneTree
		if id, ok := state.SelectedTreeNode(); ok {
			state.revealNode(id)
		}
		return state, nil

	// ===== PROMPT =====

	case PromptStartAction:
		state.startPrompt(a.Kind)
		return state, nil

	case PromptCharAction:
		if state.PromptActive {
			state.PromptInput = append(state.PromptInput, a.Char)
		}
		return state, nil

	case PromptBackspaceAction:
		if state.PromptActive && len(state.PromptInput) > 0 {
			state.PromptInput = state.PromptInput[:len(state.PromptInput)-1]
		}
		return state, nil

	case PromptDeleteWordAction:
		if state.PromptActive {
			state.deletePromptWord()
		}
		return state, nil

	case PromptCancelAction:
		state.cancelPrompt()
		return state, nil

	case PromptSubmitAction:
		if !state.PromptActive {
			return state, nil
		}
		return state, r.submitPrompt(state)

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.updateScrollVisibility()
		state.updateTreeScroll()
		return state, nil

	case ToggleHiddenAction:
		name, hadSelection := state.selectedName()
		state.HideHiddenFiles = !state.HideHiddenFiles
		if !hadSelection || !state.selectByName(name) {
			state.clampSelection()
		}
		state.updateScrollVisibility()
		return state, nil

	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
		return state, nil

	case HelpHideAction:
		state.HelpVisible = false
		return state, nil

	// ===== INGESTION =====

	case EntriesAppendedAction:
		r.entriesAppended(state, a.Batch)
		return state, nil

	case IngestionDoneAction:
		r.ingestionDone(state, a.Done)
		return state, nil

	case ImageIndexesAction:
		r.imageIndexes(state, a.Result)
		return state, nil
	}

	return state, nil
}
