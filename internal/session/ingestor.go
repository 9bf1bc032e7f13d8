package session

import (
	"context"
	"time"

	"github.com/kk-code-lab/rwim/internal/archive"
	fsutil "github.com/kk-code-lab/rwim/internal/fs"
	"github.com/kk-code-lab/rwim/internal/logging"
	"go.uber.org/zap"
)

// Ingestor reads images asynchronously.
type Ingestor interface {
	// Start walks one image and reports batches followed by a single Done.
	Start(req Request)
	// Probe lists the images stored in a file.
	Probe(req ProbeRequest)
}

// Request describes one ingestion.
type Request struct {
	Generation int
	File       string
	Index      int
	OnBatch    func(Batch)
	OnDone     func(Done)
}

// Batch is a run of consecutive entries. Seq starts at 0 per generation.
type Batch struct {
	Generation int
	Seq        int
	Entries    []fsutil.Entry
}

// Done closes an ingestion. Batches is the number of batches emitted before
// it, so the receiver can tell when every batch has been applied.
type Done struct {
	Generation int
	Total      int
	Batches    int
	Duration   time.Duration
	Err        error
}

// ProbeRequest asks for the image list of File.
type ProbeRequest struct {
	Generation int
	File       string
	Callback   func(ProbeResult)
}

// ProbeResult carries the outcome of a probe.
type ProbeResult struct {
	Generation int
	File       string
	Images     []archive.ImageInfo
	Err        error
}

// NewAsyncIngestor constructs the default goroutine-based ingestor. ctx is
// the application lifetime; individual ingestions are never cancelled.
func NewAsyncIngestor(ctx context.Context, walker archive.Walker, batchSize int, flushInterval time.Duration) Ingestor {
	if batchSize <= 0 {
		batchSize = 512
	}
	if flushInterval <= 0 {
		flushInterval = 50 * time.Millisecond
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &asyncIngestor{
		ctx:           ctx,
		walker:        walker,
		batchSize:     batchSize,
		flushInterval: flushInterval,
		now:           time.Now,
	}
}

type asyncIngestor struct {
	ctx           context.Context
	walker        archive.Walker
	batchSize     int
	flushInterval time.Duration
	now           func() time.Time
}

func (g *asyncIngestor) Start(req Request) {
	if req.File == "" || req.OnBatch == nil || req.OnDone == nil {
		return
	}
	go g.run(req)
}

// run walks on a separate goroutine and batches here, so the flush ticker
// still fires while the walker is stalled between entries.
func (g *asyncIngestor) run(req Request) {
	log := logging.L().With(logging.Generation(req.Generation), logging.String("file", req.File), zap.Int("index", req.Index))
	log.Info("ingestion started")

	started := g.now()
	var (
		buf   = make([]fsutil.Entry, 0, g.batchSize)
		seq   int
		total int
	)
	flush := func() {
		if len(buf) == 0 {
			return
		}
		req.OnBatch(Batch{Generation: req.Generation, Seq: seq, Entries: buf})
		seq++
		buf = make([]fsutil.Entry, 0, g.batchSize)
	}

	entries := make(chan fsutil.Entry, g.batchSize)
	walkErr := make(chan error, 1)
	go func() {
		defer close(entries)
		walkErr <- g.walker.Walk(g.ctx, req.File, req.Index, fsutil.RootPath, true, func(e fsutil.Entry) error {
			select {
			case entries <- e:
				return nil
			case <-g.ctx.Done():
				return g.ctx.Err()
			}
		})
	}()

	ticker := time.NewTicker(g.flushInterval)
	defer ticker.Stop()
	for open := true; open; {
		select {
		case e, ok := <-entries:
			if !ok {
				open = false
				break
			}
			buf = append(buf, e)
			total++
			if len(buf) >= g.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
	flush()
	err := <-walkErr

	done := Done{
		Generation: req.Generation,
		Total:      total,
		Batches:    seq,
		Duration:   g.now().Sub(started),
		Err:        err,
	}
	if err != nil {
		log.Error("ingestion failed", logging.Err(err), zap.Int("entries", total))
	} else {
		log.Info("ingestion finished", zap.Int("entries", total), zap.Int("batches", seq), logging.Duration("duration", done.Duration))
	}
	req.OnDone(done)
}

func (g *asyncIngestor) Probe(req ProbeRequest) {
	if req.File == "" || req.Callback == nil {
		return
	}
	go func() {
		images, err := g.walker.ListImages(g.ctx, req.File)
		if err != nil {
			logging.L().Warn("failed to list images", logging.Generation(req.Generation), logging.String("file", req.File), logging.Err(err))
		}
		req.Callback(ProbeResult{
			Generation: req.Generation,
			File:       req.File,
			Images:     images,
			Err:        err,
		})
	}()
}
