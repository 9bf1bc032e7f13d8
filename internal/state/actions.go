package state

import "github.com/kk-code-lab/rwim/internal/session"

// Action is the base interface for all state mutations
type Action interface{}

// ===== NAVIGATION ACTIONS =====

// EnterAction descends into a child directory of the current path.
type EnterAction struct {
	Name string
}
type GoUpAction struct{}
type GoBackAction struct{}
type GoForwardAction struct{}
type GoRootAction struct{}

// JumpToAction navigates to a typed or clicked archive path.
type JumpToAction struct {
	Path string
}

// SwitchImageAction opens File at image Index. An empty File keeps the
// current image file.
type SwitchImageAction struct {
	File  string
	Index int
}

// CycleImageAction moves Delta positions through the image index list.
type CycleImageAction struct {
	Delta int
}

// ReloadAction re-reads the current image.
type ReloadAction struct{}

// ===== LIST / TREE ACTIONS =====

type NavigateUpAction struct{}
type NavigateDownAction struct{}
type ScrollPageUpAction struct{}
type ScrollPageDownAction struct{}
type ScrollToStartAction struct{}
type ScrollToEndAction struct{}

// ActivateAction opens the selected row of the focused pane.
type ActivateAction struct{}
type FocusToggleAction struct{}

// MouseSelectAction selects a list row by display index.
type MouseSelectAction struct {
	DisplayIndex int
}

// TreeMouseSelectAction moves the tree cursor to a visible row.
type TreeMouseSelectAction struct {
	Row int
}

type TreeExpandAction struct{}
type TreeCollapseAction struct{}
type TreeActivateAction struct{}

// ===== PROMPT ACTIONS =====

// PromptStartAction opens the path bar for editing.
type PromptStartAction struct {
	Kind PromptKind
}
type PromptCharAction struct {
	Char rune
}
type PromptBackspaceAction struct{}
type PromptDeleteWordAction struct{}
type PromptCancelAction struct{}
type PromptSubmitAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type YankPathAction struct{}
type ToggleHiddenAction struct{}
type HelpToggleAction struct{}
type HelpHideAction struct{}

// ===== INGESTION ACTIONS =====

// EntriesAppendedAction delivers one batch from the ingestor.
type EntriesAppendedAction struct {
	Batch session.Batch
}

// IngestionDoneAction closes an ingestion.
type IngestionDoneAction struct {
	Done session.Done
}

// ImageIndexesAction delivers the image list of a file.
type ImageIndexesAction struct {
	Result session.ProbeResult
}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
type SuspendAction struct{}
