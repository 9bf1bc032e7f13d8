package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/kk-code-lab/rwim/internal/logging"
	"github.com/kk-code-lab/rwim/internal/session"
	"go.uber.org/zap"
)

// ErrNoImage is returned by image actions when nothing is open.
var ErrNoImage = errors.New("no image open")

// switchImage discards the live session and starts ingesting file/index
// under a fresh generation.
func (r *StateReducer) switchImage(state *AppState, file string, index int) error {
	if file == "" && state.Session != nil {
		file = state.Session.ImageFile
	}
	if file == "" {
		return ErrNoImage
	}
	if index <= 0 {
		index = 1
	}

	gen := state.Generation() + 1
	newFile := file != state.ImagesFile

	state.Session = session.New(gen, file, index, r.cacheSize)
	r.selectionHistory = make(map[string]string)
	state.resetNavigation()
	state.LastError = nil
	state.StatusMessage = ""
	state.PromptActive = false

	logging.L().Info("switching image",
		logging.Generation(gen),
		logging.String("file", file),
		zap.Int("index", index),
	)

	dispatch := state.getDispatch()
	if newFile {
		state.Images = nil
		state.ImagesFile = file
		if r.ingestor != nil {
			r.ingestor.Probe(session.ProbeRequest{
				Generation: gen,
				File:       file,
				Callback: func(res session.ProbeResult) {
					if dispatch != nil {
						dispatch(ImageIndexesAction{Result: res})
					}
				},
			})
		}
	}

	if r.ingestor != nil {
		r.ingestor.Start(session.Request{
			Generation: gen,
			File:       file,
			Index:      index,
			OnBatch: func(b session.Batch) {
				if dispatch != nil {
					dispatch(EntriesAppendedAction{Batch: b})
				}
			},
			OnDone: func(d session.Done) {
				if dispatch != nil {
					dispatch(IngestionDoneAction{Done: d})
				}
			},
		})
	}

	r.notifyNavigation(state)
	return nil
}

func (r *StateReducer) cycleImage(state *AppState, delta int) error {
	if len(state.Images) == 0 || !state.Session.HasImage() {
		return nil
	}
	pos := 0
	for i, img := range state.Images {
		if img.Index == state.Session.ImageIndex {
			pos = i
			break
		}
	}
	next := pos + delta
	if next < 0 {
		next = 0
	}
	if next >= len(state.Images) {
		next = len(state.Images) - 1
	}
	if state.Images[next].Index == state.Session.ImageIndex {
		return nil
	}
	return r.switchImage(state, "", state.Images[next].Index)
}

func (r *StateReducer) reload(state *AppState) error {
	if !state.Session.HasImage() {
		return nil
	}
	return r.switchImage(state, state.Session.ImageFile, state.Session.ImageIndex)
}

func isStale(state *AppState, generation int, kind string) bool {
	if generation == state.Generation() {
		return false
	}
	logging.L().Debug("dropping stale ingestion result",
		logging.String("kind", kind),
		logging.Generation(generation),
		zap.Int("current_generation", state.Generation()),
	)
	return true
}

func (r *StateReducer) entriesAppended(state *AppState, batch session.Batch) {
	if isStale(state, batch.Generation, "batch") {
		return
	}
	applied, completed := state.Session.ApplyBatch(batch)
	if len(applied) > 0 {
		state.refreshListing()
		r.listeners.EntriesAppended(batch.Generation, applied)
	}
	if completed {
		r.ingestionCompleted(state)
	}
}

func (r *StateReducer) ingestionDone(state *AppState, done session.Done) {
	if isStale(state, done.Generation, "done") {
		return
	}
	if state.Session.Finish(done) {
		r.ingestionCompleted(state)
	}
}

func (r *StateReducer) ingestionCompleted(state *AppState) {
	s := state.Session
	if s.Status() == session.StatusFailed {
		state.resetNavigation()
		r.selectionHistory = make(map[string]string)
		state.LastError = s.Err()
		r.listeners.IngestionFailed(s.Generation, s.Err())
		r.notifyNavigation(state)
		return
	}

	state.refreshListing()
	state.StatusMessage = fmt.Sprintf("Read %d entries in %s", s.EntryCount(), s.Duration().Round(time.Millisecond))
	logging.L().Info("image ready",
		logging.Generation(s.Generation),
		zap.Int("entries", s.EntryCount()),
		zap.Int("directories", s.Tree().Len()-1),
		zap.Int("orphans", s.Orphans()),
	)
}

func (r *StateReducer) imageIndexes(state *AppState, res session.ProbeResult) {
	if res.File != state.ImagesFile || res.Generation > state.Generation() {
		logging.L().Debug("dropping stale image list", logging.String("file", res.File), logging.Generation(res.Generation))
		return
	}
	if res.Err != nil {
		state.StatusMessage = fmt.Sprintf("failed to list images: %v", res.Err)
		return
	}
	state.Images = res.Images
}
