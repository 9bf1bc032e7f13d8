package state

import (
	fsutil "github.com/kk-code-lab/rwim/internal/fs"
	"github.com/kk-code-lab/rwim/internal/listing"
)

// NavigationChange is published after every successful transition.
type NavigationChange struct {
	CurrentPath      string
	Listing          listing.Listing
	SelectedTreePath string
	CanGoBack        bool
	CanGoForward     bool
}

// Listener receives the notifications the presentation layer binds to.
// Calls happen on the goroutine running Reduce.
type Listener interface {
	EntriesAppended(generation int, entries []fsutil.Entry)
	NavigationChanged(change NavigationChange)
	NavigationFailed(path string, err error)
	IngestionFailed(generation int, err error)
}

// ListenerFuncs adapts optional functions to Listener.
type ListenerFuncs struct {
	OnEntriesAppended   func(generation int, entries []fsutil.Entry)
	OnNavigationChanged func(change NavigationChange)
	OnNavigationFailed  func(path string, err error)
	OnIngestionFailed   func(generation int, err error)
}

func (f ListenerFuncs) EntriesAppended(generation int, entries []fsutil.Entry) {
	if f.OnEntriesAppended != nil {
		f.OnEntriesAppended(generation, entries)
	}
}

func (f ListenerFuncs) NavigationChanged(change NavigationChange) {
	if f.OnNavigationChanged != nil {
		f.OnNavigationChanged(change)
	}
}

func (f ListenerFuncs) NavigationFailed(path string, err error) {
	if f.OnNavigationFailed != nil {
		f.OnNavigationFailed(path, err)
	}
}

func (f ListenerFuncs) IngestionFailed(generation int, err error) {
	if f.OnIngestionFailed != nil {
		f.OnIngestionFailed(generation, err)
	}
}

// Listeners fans notifications out in registration order.
type Listeners []Listener

func (ls Listeners) EntriesAppended(generation int, entries []fsutil.Entry) {
	for _, l := range ls {
		l.EntriesAppended(generation, entries)
	}
}

func (ls Listeners) NavigationChanged(change NavigationChange) {
	for _, l := range ls {
		l.NavigationChanged(change)
	}
}

func (ls Listeners) NavigationFailed(path string, err error) {
	for _, l := range ls {
		l.NavigationFailed(path, err)
	}
}

func (ls Listeners) IngestionFailed(generation int, err error) {
	for _, l := range ls {
		l.IngestionFailed(generation, err)
	}
}
