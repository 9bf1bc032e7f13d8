package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kk-code-lab/rwim/internal/archive"
	fsutil "github.com/kk-code-lab/rwim/internal/fs"
)

type fakeWalker struct {
	entries []fsutil.Entry
	err     error
	images  []archive.ImageInfo
}

func (f *fakeWalker) ListImages(context.Context, string) ([]archive.ImageInfo, error) {
	return f.images, f.err
}

func (f *fakeWalker) Walk(ctx context.Context, _ string, _ int, _ string, _ bool, fn archive.WalkFunc) error {
	for _, e := range f.entries {
		if err := fn(e); err != nil {
			return err
		}
	}
	return f.err
}

type recorder struct {
	batches chan Batch
	done    chan Done
}

func newRecorder() *recorder {
	return &recorder{batches: make(chan Batch, 64), done: make(chan Done, 1)}
}

func (r *recorder) request(gen int) Request {
	return Request{
		Generation: gen,
		File:       "install.wim",
		Index:      1,
		OnBatch:    func(b Batch) { r.batches <- b },
		OnDone:     func(d Done) { r.done <- d },
	}
}

func (r *recorder) wait(t *testing.T) Done {
	t.Helper()
	select {
	case d := <-r.done:
		return d
	case <-time.After(2 * time.Second):
		t.Fatal("ingestion did not finish")
	}
	return Done{}
}

func manyEntries(n int) []fsutil.Entry {
	out := []fsutil.Entry{dir(`\`)}
	for i := 1; i < n; i++ {
		out = append(out, file(`\f`+string(rune('a'+i%26))))
	}
	return out
}

func TestIngestorBatches(t *testing.T) {
	walker := &fakeWalker{entries: manyEntries(10)}
	ing := NewAsyncIngestor(context.Background(), walker, 4, time.Hour)
	rec := newRecorder()
	ing.Start(rec.request(7))

	done := rec.wait(t)
	if done.Err != nil || done.Total != 10 || done.Batches != 3 || done.Generation != 7 {
		t.Fatalf("done = %+v", done)
	}
	close(rec.batches)
	seq := 0
	total := 0
	for b := range rec.batches {
		if b.Seq != seq || b.Generation != 7 {
			t.Fatalf("batch %d has seq %d gen %d", seq, b.Seq, b.Generation)
		}
		if len(b.Entries) > 4 {
			t.Fatalf("batch larger than limit: %d", len(b.Entries))
		}
		seq++
		total += len(b.Entries)
	}
	if total != 10 {
		t.Fatalf("entries delivered = %d", total)
	}
}

// stallingWalker emits its entries, then blocks until release is closed.
type stallingWalker struct {
	entries []fsutil.Entry
	release chan struct{}
}

func (w *stallingWalker) ListImages(context.Context, string) ([]archive.ImageInfo, error) {
	return nil, nil
}

func (w *stallingWalker) Walk(ctx context.Context, _ string, _ int, _ string, _ bool, fn archive.WalkFunc) error {
	for _, e := range w.entries {
		if err := fn(e); err != nil {
			return err
		}
	}
	select {
	case <-w.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestIngestorFlushesWhileWalkerStalls(t *testing.T) {
	walker := &stallingWalker{entries: manyEntries(3), release: make(chan struct{})}
	ing := NewAsyncIngestor(context.Background(), walker, 100, 5*time.Millisecond)
	rec := newRecorder()
	ing.Start(rec.request(1))

	var got int
	deadline := time.After(2 * time.Second)
	for got < 3 {
		select {
		case b := <-rec.batches:
			got += len(b.Entries)
		case <-rec.done:
			t.Fatal("ingestion finished before the walker was released")
		case <-deadline:
			t.Fatalf("only %d of 3 entries flushed while the walker stalled", got)
		}
	}

	close(walker.release)
	done := rec.wait(t)
	if done.Err != nil || done.Total != 3 {
		t.Fatalf("done = %+v", done)
	}
	if done.Batches < 1 {
		t.Fatalf("batches = %d", done.Batches)
	}
}

func TestIngestorReportsFailure(t *testing.T) {
	cause := &archive.IterationError{Code: 2}
	walker := &fakeWalker{entries: manyEntries(2), err: cause}
	ing := NewAsyncIngestor(context.Background(), walker, 512, time.Hour)
	rec := newRecorder()
	ing.Start(rec.request(1))

	done := rec.wait(t)
	if !errors.Is(done.Err, cause) {
		t.Fatalf("err = %v", done.Err)
	}
	if done.Total != 2 || done.Batches != 1 {
		t.Fatalf("done = %+v", done)
	}
}

func TestIngestorFeedsSession(t *testing.T) {
	walker := &fakeWalker{entries: exampleEntries()}
	ing := NewAsyncIngestor(context.Background(), walker, 1, time.Hour)
	rec := newRecorder()
	ing.Start(rec.request(5))
	done := rec.wait(t)
	close(rec.batches)

	var batches []Batch
	for b := range rec.batches {
		batches = append(batches, b)
	}
	s := New(5, "install.wim", 1, 8)
	for i := len(batches) - 1; i >= 0; i-- {
		s.ApplyBatch(batches[i])
	}
	if !s.Finish(done) {
		t.Fatal("session should complete")
	}
	if s.EntryCount() != 4 || s.Orphans() != 0 {
		t.Fatalf("entries=%d orphans=%d", s.EntryCount(), s.Orphans())
	}
}

func TestProbe(t *testing.T) {
	walker := &fakeWalker{images: []archive.ImageInfo{{Index: 1, Name: "Setup"}, {Index: 2, Name: "PE"}}}
	ing := NewAsyncIngestor(context.Background(), walker, 0, 0)
	results := make(chan ProbeResult, 1)
	ing.Probe(ProbeRequest{Generation: 4, File: "boot.wim", Callback: func(r ProbeResult) { results <- r }})

	select {
	case r := <-results:
		if r.Err != nil || len(r.Images) != 2 || r.Generation != 4 {
			t.Fatalf("probe = %+v", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("probe did not report")
	}
}

func TestStartIgnoresIncompleteRequests(t *testing.T) {
	ing := NewAsyncIngestor(context.Background(), &fakeWalker{}, 1, time.Hour)
	ing.Start(Request{Generation: 1})
	ing.Probe(ProbeRequest{File: "x.wim"})
}
