package state

import (
	"time"

	"github.com/kk-code-lab/rwim/internal/archive"
	fsutil "github.com/kk-code-lab/rwim/internal/fs"
	"github.com/kk-code-lab/rwim/internal/listing"
	"github.com/kk-code-lab/rwim/internal/session"
	"github.com/kk-code-lab/rwim/internal/tree"
)

// Pane identifies which half of the screen receives cursor keys.
type Pane int

const (
	PaneList Pane = iota
	PaneTree
)

// PromptKind selects what a submitted prompt does.
type PromptKind int

const (
	// PromptPath jumps to an archive path.
	PromptPath PromptKind = iota
	// PromptOpen opens another image file from the host filesystem.
	PromptOpen
)

// ===== STATE DEFINITIONS =====

// AppState is the single source of truth
type AppState struct {
	// Navigation
	CurrentPath      string // always ends in `\`
	BackHistory      []string
	ForwardHistory   []string
	SelectedNodePath string // tree highlight, independent of focus

	// Image session
	Session    *session.Session
	Images     []archive.ImageInfo
	ImagesFile string // file Images were listed from

	// Contents pane
	Listing       listing.Listing
	SelectedIndex int // index into DisplayRows
	ScrollOffset  int

	// Tree pane
	Focus        Pane
	TreeCursor   tree.NodeID
	TreeExpanded map[tree.NodeID]bool
	TreeScroll   int

	// Path bar prompt
	PromptActive bool
	PromptKind   PromptKind
	PromptInput  []rune

	// Hidden and system entries
	HideHiddenFiles bool

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Status line
	ClipboardAvailable bool
	LastYankTime       time.Time
	HelpVisible        bool
	StatusMessage      string

	// Error state
	LastError error

	dispatchAction func(Action)
}

// NewAppState returns the state shown before any image is opened.
func NewAppState(cacheSize int) *AppState {
	s := &AppState{Session: session.Empty(cacheSize)}
	s.resetNavigation()
	return s
}

func (s *AppState) resetNavigation() {
	s.CurrentPath = fsutil.RootPath
	s.SelectedNodePath = fsutil.RootPath
	s.BackHistory = nil
	s.ForwardHistory = nil
	s.SelectedIndex = 0
	s.ScrollOffset = 0
	s.TreeCursor = tree.RootID
	s.TreeExpanded = map[tree.NodeID]bool{tree.RootID: true}
	s.TreeScroll = 0
	s.Listing = s.Session.List(fsutil.RootPath)
}

// ===== HELPER METHODS =====

func (s *AppState) setDispatch(fn func(Action)) {
	s.dispatchAction = fn
}

func (s *AppState) getDispatch() func(Action) {
	return s.dispatchAction
}

// SetDispatch exposes the reducer dispatch hook to other packages.
func (s *AppState) SetDispatch(fn func(Action)) {
	s.setDispatch(fn)
}

// Generation is the generation of the live session.
func (s *AppState) Generation() int {
	if s.Session == nil {
		return 0
	}
	return s.Session.Generation
}

// CanGoBack reports whether GoBackAction would do anything.
func (s *AppState) CanGoBack() bool {
	return len(s.BackHistory) > 0
}

// CanGoForward reports whether GoForwardAction would do anything.
func (s *AppState) CanGoForward() bool {
	return len(s.ForwardHistory) > 0
}

// CurrentImage returns the image info of the open index, if listed.
func (s *AppState) CurrentImage() (archive.ImageInfo, bool) {
	if s.Session == nil {
		return archive.ImageInfo{}, false
	}
	for _, img := range s.Images {
		if img.Index == s.Session.ImageIndex {
			return img, true
		}
	}
	return archive.ImageInfo{}, false
}

// PromptText returns the prompt contents as a string.
func (s *AppState) PromptText() string {
	return string(s.PromptInput)
}

func (s *AppState) visibleLines() int {
	lines := s.ScreenHeight - 4
	if lines < 1 {
		lines = 1
	}
	return lines
}
