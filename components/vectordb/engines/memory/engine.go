package memory

import (
	"context"
	"math"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/anchoring-ai/docsnippets/components/vectordb"
)

// Engine implements the vectordb.Engine interface using in-memory
// storage. It provides thread-safe operations without external database
// systems and is the default for tests and local development.
type Engine struct {
	// collections stores all vector collections in memory
	collections *sync.Map
	vectordb.Options
}

var _ vectordb.Engine = (*Engine)(nil)

// Collection represents a named set of records. It's the basic unit of
// organization in the memory database.
type Collection struct {
	records []vectordb.Record
	mu      sync.RWMutex
}

func (c *Collection) AddRecords(records ...vectordb.Record) {
	c.mu.Lock()
	c.records = append(c.records, records...)
	c.mu.Unlock()
}

func (c *Collection) Records() []vectordb.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]vectordb.Record, len(c.records))
	copy(out, c.records)
	return out
}

// New creates a new in-memory vector database instance.
func New(opts ...vectordb.Option) (*Engine, error) {
	ret := &Engine{
		collections: new(sync.Map),
	}
	vectordb.WithEngine(vectordb.Memory)(&ret.Options)
	for _, opt := range opts {
		opt(&ret.Options)
	}
	return ret, nil
}

// HasCollection checks if a collection with the given name exists.
func (e *Engine) HasCollection(name string) (bool, error) {
	_, exists := e.collections.Load(name)
	return exists, nil
}

// DropCollection removes a collection and all its data.
func (e *Engine) DropCollection(name string) error {
	e.collections.Delete(name)
	return nil
}

// Collection returns the named collection, creating it when absent.
func (e *Engine) Collection(_ context.Context, name string) (*Collection, error) {
	col, _ := e.collections.LoadOrStore(name, new(Collection))
	return col.(*Collection), nil
}

func (e *Engine) Insert(ctx context.Context, collectionName string, records ...vectordb.Record) error {
	col, err := e.Collection(ctx, collectionName)
	if err != nil {
		return err
	}
	docs := make([]vectordb.Record, 0, len(records))
	for _, record := range records {
		if record.ID == "" {
			record.ID = record.Embedding.UUID()
		}
		docs = append(docs, record)
	}
	col.AddRecords(docs...)
	return nil
}

func (e *Engine) Search(ctx context.Context, vector []float64, opts ...vectordb.SearchOption) ([]vectordb.Record, error) {
	var option vectordb.SearchOptions
	for _, opt := range opts {
		opt(&option)
	}
	col, err := e.Collection(ctx, option.Collection)
	if err != nil {
		return nil, err
	}
	records := filterRecords(col.Records(), &option)
	scored := records[:0]
	for _, record := range records {
		record.Score = cosineSimilarity(vector, record.Embedding.Embedding)
		if record.Score < e.MinScore {
			continue
		}
		scored = append(scored, record)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	topK := option.TopK
	if topK == 0 {
		topK = e.TopK
	}
	if topK > 0 && topK < len(scored) {
		scored = scored[:topK]
	}
	return scored, nil
}

func (e *Engine) Get(ctx context.Context, opts ...vectordb.SearchOption) ([]vectordb.Record, error) {
	var option vectordb.SearchOptions
	for _, opt := range opts {
		opt(&option)
	}
	col, err := e.Collection(ctx, option.Collection)
	if err != nil {
		return nil, err
	}
	return filterRecords(col.Records(), &option), nil
}

// filterRecords filters records by metadata and content. It does this
// concurrently; result order is re-established by the callers' scoring.
func filterRecords(docs []vectordb.Record, opts *vectordb.SearchOptions) []vectordb.Record {
	filteredDocs := make([]vectordb.Record, 0, len(docs))
	filteredDocsLock := sync.Mutex{}

	// Use number of docs or CPUs, whichever is smaller.
	concurrency := min(runtime.NumCPU(), len(docs))

	docChan := make(chan vectordb.Record, concurrency*2)

	wg := sync.WaitGroup{}
	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range docChan {
				if recordMatchesFilters(&doc, opts) {
					filteredDocsLock.Lock()
					filteredDocs = append(filteredDocs, doc)
					filteredDocsLock.Unlock()
				}
			}
		}()
	}

	for _, doc := range docs {
		docChan <- doc
	}
	close(docChan)

	wg.Wait()

	if len(filteredDocs) == 0 {
		return nil
	}
	return filteredDocs
}

// recordMatchesFilters checks if a record matches the metadata filter
// and the content include/exclude constraints.
func recordMatchesFilters(record *vectordb.Record, opts *vectordb.SearchOptions) bool {
	if !opts.Filter.Matches(record.Embedding.Meta) {
		return false
	}
	if opts.Include != "" && !strings.Contains(record.Embedding.Object, opts.Include) {
		return false
	}
	if opts.Exclude != "" && strings.Contains(record.Embedding.Object, opts.Exclude) {
		return false
	}
	return true
}

// cosineSimilarity scores two vectors in [-1, 1], higher meaning more
// similar. Zero-magnitude vectors score zero against everything.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
