package state

import (
	"errors"
	"fmt"
	"strings"

	fsutil "github.com/kk-code-lab/rwim/internal/fs"
	"github.com/kk-code-lab/rwim/internal/logging"
)

// ErrPathNotFound is returned when a navigation target does not resolve to a
// directory of the current image.
var ErrPathNotFound = errors.New("path not found")

func (r *StateReducer) pathNotFound(path string) error {
	err := fmt.Errorf("%w: %s", ErrPathNotFound, path)
	logging.L().Debug("navigation failed", logging.String("path", path), logging.Err(err))
	r.listeners.NavigationFailed(path, err)
	return err
}

func (r *StateReducer) pushBack(state *AppState) {
	state.BackHistory = append(state.BackHistory, state.CurrentPath)
	state.ForwardHistory = nil
}

func pop(stack []string) ([]string, string) {
	last := stack[len(stack)-1]
	return stack[:len(stack)-1], last
}

// enter descends into the directory name listed under the current path.
func (r *StateReducer) enter(state *AppState, name string) error {
	target := fsutil.JoinDir(state.CurrentPath, name)
	entry, ok := state.Session.List(state.CurrentPath).Find(name)
	if !ok || !entry.IsDir {
		return r.pathNotFound(target)
	}
	id, ok := state.Session.Tree().Lookup(target)
	if !ok {
		return r.pathNotFound(target)
	}

	r.pushBack(state)
	r.moveTo(state, state.Session.Tree().Path(id), "")
	return nil
}

// goUp moves to the parent and selects the directory we came from.
func (r *StateReducer) goUp(state *AppState) error {
	if fsutil.IsRoot(state.CurrentPath) {
		return nil
	}
	from := fsutil.Base(state.CurrentPath)
	r.pushBack(state)
	r.moveTo(state, fsutil.Parent(state.CurrentPath), from)
	return nil
}

func (r *StateReducer) goBack(state *AppState) error {
	if len(state.BackHistory) == 0 {
		return nil
	}
	var target string
	state.BackHistory, target = pop(state.BackHistory)
	state.ForwardHistory = append(state.ForwardHistory, state.CurrentPath)
	r.moveTo(state, target, "")
	return nil
}

func (r *StateReducer) goForward(state *AppState) error {
	if len(state.ForwardHistory) == 0 {
		return nil
	}
	var target string
	state.ForwardHistory, target = pop(state.ForwardHistory)
	state.BackHistory = append(state.BackHistory, state.CurrentPath)
	r.moveTo(state, target, "")
	return nil
}

// jumpTo resolves a typed path against the tree. The canonical casing of the
// node replaces whatever the user typed.
func (r *StateReducer) jumpTo(state *AppState, path string) error {
	clean := fsutil.CleanDir(strings.TrimSpace(path))
	id, ok := state.Session.Tree().Lookup(clean)
	if !ok {
		return r.pathNotFound(clean)
	}
	target := state.Session.Tree().Path(id)
	if target == state.CurrentPath {
		r.moveTo(state, target, "")
		return nil
	}
	r.pushBack(state)
	r.moveTo(state, target, "")
	return nil
}

// moveTo applies a resolved transition: listing, tree selection and
// notification. History stacks are handled by the caller. The list cursor
// lands on selectName, else on the row last selected in target, else on the
// directory just left.
func (r *StateReducer) moveTo(state *AppState, target string, selectName string) {
	if name, ok := state.selectedName(); ok {
		r.selectionHistory[state.CurrentPath] = name
	}

	previous := state.CurrentPath
	state.CurrentPath = target
	state.SelectedNodePath = target
	state.Listing = state.Session.List(target)
	state.SelectedIndex = 0
	state.ScrollOffset = 0

	if selectName == "" {
		selectName = r.selectionHistory[target]
	}
	if selectName == "" {
		selectName = childToward(target, previous)
	}
	if selectName != "" {
		state.selectByName(selectName)
	}
	state.centerScrollOnSelection()

	if id, ok := state.Session.Tree().Lookup(target); ok {
		state.revealNode(id)
	}
	if errors.Is(state.LastError, ErrPathNotFound) {
		state.LastError = nil
	}
	r.notifyNavigation(state)
}

func (r *StateReducer) notifyNavigation(state *AppState) {
	r.listeners.NavigationChanged(NavigationChange{
		CurrentPath:      state.CurrentPath,
		Listing:          state.Listing,
		SelectedTreePath: state.SelectedNodePath,
		CanGoBack:        state.CanGoBack(),
		CanGoForward:     state.CanGoForward(),
	})
}

// childToward returns the component of from directly below dir, when from
// lies inside dir. It lets Back and Up land on the directory just left.
func childToward(dir, from string) string {
	dirParts := fsutil.Components(dir)
	fromParts := fsutil.Components(from)
	if len(fromParts) <= len(dirParts) {
		return ""
	}
	for i, part := range dirParts {
		if fromParts[i] != part {
			return ""
		}
	}
	return fromParts[len(dirParts)]
}
