// Package session owns one opened (image file, index) pair: the entry
// sequence, the directory tree built from it and the ingestion progress.
package session

import (
	"errors"
	"fmt"
	"time"

	fsutil "github.com/kk-code-lab/rwim/internal/fs"
	"github.com/kk-code-lab/rwim/internal/listing"
	"github.com/kk-code-lab/rwim/internal/logging"
	"github.com/kk-code-lab/rwim/internal/tree"
	"go.uber.org/zap"
)

// RootLabel is the display name of the tree root.
const RootLabel = "Image Root"

// ErrIngestionFailed wraps walker errors that ended an ingestion.
var ErrIngestionFailed = errors.New("failed to read image")

// Status is the ingestion state of a session.
type Status int

const (
	// StatusIdle means no image is open.
	StatusIdle Status = iota
	StatusIngesting
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIngesting:
		return "ingesting"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Session is the in-memory model of one image. It is not safe for
// concurrent use; the UI loop owns it and feeds it batches.
type Session struct {
	Generation int
	ImageFile  string
	ImageIndex int
	StartedAt  time.Time
	FinishedAt time.Time

	cacheSize int
	tree      *tree.Tree
	builder   *tree.Builder
	index     *listing.Index
	status    Status
	err       error

	nextSeq int
	pending map[int][]fsutil.Entry
	done    *Done
}

// New starts an empty session for file/index in the ingesting state.
func New(generation int, file string, index int, cacheSize int) *Session {
	s := &Session{
		Generation: generation,
		ImageFile:  file,
		ImageIndex: index,
		StartedAt:  time.Now(),
		cacheSize:  cacheSize,
		status:     StatusIngesting,
		pending:    make(map[int][]fsutil.Entry),
	}
	s.reset()
	return s
}

// Empty returns an idle session with no image, used before anything is
// opened.
func Empty(cacheSize int) *Session {
	s := New(0, "", 0, cacheSize)
	s.status = StatusIdle
	s.builder.Freeze()
	s.index.Seal()
	return s
}

func (s *Session) reset() {
	s.tree = tree.New(RootLabel)
	s.builder = tree.NewBuilder(s.tree)
	s.builder.OnOrphan = s.logOrphan
	s.index = listing.New(s.cacheSize)
}

func (s *Session) logOrphan(e fsutil.Entry) {
	logging.L().Warn("orphaned directory entry",
		logging.Generation(s.Generation),
		logging.String("path", e.FullPath),
		zap.Int("depth", e.Depth),
	)
}

// Tree returns the directory tree (possibly still growing).
func (s *Session) Tree() *tree.Tree {
	return s.tree
}

// Index returns the content index.
func (s *Session) Index() *listing.Index {
	return s.index
}

// List returns the contents of dir as known so far.
func (s *Session) List(dir string) listing.Listing {
	return s.index.List(dir)
}

// Status reports the ingestion state.
func (s *Session) Status() Status {
	return s.status
}

// Err is the ingestion failure, if any.
func (s *Session) Err() error {
	return s.err
}

// TreeFullyBuilt reports whether the tree stopped accepting entries.
func (s *Session) TreeFullyBuilt() bool {
	return s.builder.Frozen()
}

// EntryCount is the number of entries ingested so far.
func (s *Session) EntryCount() int {
	return s.index.Len()
}

// Orphans is the number of directory entries dropped for lack of a parent.
func (s *Session) Orphans() int {
	return s.builder.Orphans()
}

// HasImage reports whether the session belongs to an opened image.
func (s *Session) HasImage() bool {
	return s.ImageFile != ""
}

// ApplyBatch adds a batch to the session. Batches are applied strictly in
// sequence order; an early batch is held until the gap before it fills.
// It returns the entries that became visible and whether the session
// completed as a result.
func (s *Session) ApplyBatch(b Batch) ([]fsutil.Entry, bool) {
	if b.Generation != s.Generation || s.status != StatusIngesting || b.Seq < s.nextSeq {
		return nil, false
	}
	s.pending[b.Seq] = b.Entries

	var applied []fsutil.Entry
	for {
		entries, ok := s.pending[s.nextSeq]
		if !ok {
			break
		}
		delete(s.pending, s.nextSeq)
		s.nextSeq++
		s.push(entries)
		applied = append(applied, entries...)
	}
	return applied, s.tryComplete()
}

func (s *Session) push(entries []fsutil.Entry) {
	for _, e := range entries {
		pos := s.index.Len()
		s.index.Append(e)
		if _, _, err := s.builder.Add(e, pos); err != nil {
			logging.L().Debug("entry after tree freeze", logging.Generation(s.Generation), logging.Err(err))
		}
	}
}

// Finish records the end of ingestion. A failure clears the session
// immediately; success waits for every batch announced by d.Batches.
// It reports whether the session completed.
func (s *Session) Finish(d Done) bool {
	if d.Generation != s.Generation || s.status != StatusIngesting {
		return false
	}
	if d.Err != nil {
		s.fail(d.Err)
		return true
	}
	s.done = &d
	return s.tryComplete()
}

func (s *Session) tryComplete() bool {
	if s.done == nil || s.nextSeq < s.done.Batches {
		return false
	}
	s.builder.Freeze()
	s.index.Seal()
	s.status = StatusReady
	s.FinishedAt = time.Now()
	s.pending = nil
	return true
}

func (s *Session) fail(err error) {
	s.err = fmt.Errorf("%w: %w", ErrIngestionFailed, err)
	s.reset()
	s.builder.Freeze()
	s.index.Seal()
	s.status = StatusFailed
	s.FinishedAt = time.Now()
	s.pending = nil
}

// Duration is the ingestion wall time, or the time elapsed so far.
func (s *Session) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return time.Since(s.StartedAt)
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
