package embedder

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"go.uber.org/atomic"

	"github.com/anchoring-ai/docsnippets/components/chunker"
)

// DocumentEmbedder turns an arbitrary-length document into a single
// embedding vector: split into budget-conformant chunks, embed every
// chunk concurrently, and mean-pool the per-chunk vectors. Embedding
// failures are isolated per chunk and replaced by zero vectors so a
// single bad call never fails the whole document.
type DocumentEmbedder struct {
	embedder Embedder
	splitter *chunker.Splitter
	logger   *log.Logger
	failures atomic.Int64
}

// NewDocumentEmbedder wires an embedding provider and a splitter
// together. A nil logger falls back to the package default.
func NewDocumentEmbedder(e Embedder, s *chunker.Splitter, logger *log.Logger) *DocumentEmbedder {
	if logger == nil {
		logger = log.Default()
	}
	return &DocumentEmbedder{
		embedder: e,
		splitter: s,
		logger:   logger,
	}
}

// Failures reports how many chunk embedding calls have been replaced by
// zero vectors since construction.
func (d *DocumentEmbedder) Failures() int64 {
	return d.failures.Load()
}

// EmbedDocument produces one vector of dimension D for the document.
// Per-chunk embedding calls fan out concurrently and the method joins on
// all of them; a failed or misshapen response contributes a zero vector
// of dimension D instead of an error. Documents that chunk to nothing
// still yield a single zero vector so the mean is always defined. The
// only error returned is chunker.ErrBudgetExceeded.
func (d *DocumentEmbedder) EmbedDocument(ctx context.Context, docID, text string) ([]float64, error) {
	chunks, err := d.splitter.Split(text)
	if err != nil {
		return nil, err
	}
	dim := d.embedder.Dimensions()
	if len(chunks) == 0 {
		d.logger.Debug("document produced no chunks, using zero vector", "doc", docID)
		return MeanPool([][]float64{make([]float64, dim)})
	}
	return MeanPool(d.embedAll(ctx, docID, chunks, dim))
}

// embedAll fans out one embedding call per chunk and joins on all of
// them, preserving chunk order in the returned vectors. It never returns
// fewer vectors than chunks.
func (d *DocumentEmbedder) embedAll(ctx context.Context, docID string, chunks []string, dim int) [][]float64 {
	vectors := make([][]float64, len(chunks))
	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk string) {
			defer wg.Done()
			vectors[i] = d.embedChunk(ctx, docID, i, chunk, dim)
		}(i, chunk)
	}
	wg.Wait()
	return vectors
}

// embedChunk performs one provider call, substituting a zero vector on
// any failure. The failure is logged with the document identity and
// chunk index for offline investigation.
func (d *DocumentEmbedder) embedChunk(ctx context.Context, docID string, index int, chunk string, dim int) []float64 {
	var emb Embedding
	var usage Usage
	if err := d.embedder.Embed(ctx, chunk, &emb, &usage); err != nil {
		d.failures.Inc()
		d.logger.Warn("embedding call failed, substituting zero vector",
			"doc", docID, "chunk", index, "err", err)
		return make([]float64, dim)
	}
	if len(emb.Embedding) != dim {
		d.failures.Inc()
		d.logger.Warn("embedding has unexpected dimension, substituting zero vector",
			"doc", docID, "chunk", index, "got", len(emb.Embedding), "want", dim)
		return make([]float64, dim)
	}
	return emb.Embedding
}

// Chunks exposes the underlying splitter output, letting callers store
// chunk-level records alongside the document embedding.
func (d *DocumentEmbedder) Chunks(text string) ([]string, error) {
	return d.splitter.Split(text)
}
