package chromem

import (
	"context"
	"sort"

	chromem "github.com/philippgille/chromem-go"

	"github.com/anchoring-ai/docsnippets/components/vectordb"
)

// Engine adapts chromem, an embedded ChromaDB-like store, to the
// vectordb.Engine interface. Embeddings are always supplied by the
// caller, so collections are created without an embedding function.
type Engine struct {
	db *chromem.DB
	vectordb.Options
}

var _ vectordb.Engine = (*Engine)(nil)

func New(db *chromem.DB, opts ...vectordb.Option) *Engine {
	ret := &Engine{
		db: db,
	}
	vectordb.WithEngine(vectordb.Chromem)(&ret.Options)
	for _, opt := range opts {
		opt(&ret.Options)
	}
	return ret
}

func (e *Engine) Collection(_ context.Context, name string) (*chromem.Collection, error) {
	return e.db.GetOrCreateCollection(name, nil, nil)
}

func (e *Engine) Insert(ctx context.Context, collectionName string, records ...vectordb.Record) error {
	col, err := e.Collection(ctx, collectionName)
	if err != nil {
		return err
	}
	docs := make([]chromem.Document, 0, len(records))
	for _, record := range records {
		var doc chromem.Document
		recordToDocument(&record, &doc)
		docs = append(docs, doc)
	}
	// Insert documents in batches to avoid memory issues
	batchSize := 100
	for i := 0; i < len(docs); i += batchSize {
		end := min(i+batchSize, len(docs))
		for _, doc := range docs[i:end] {
			if err := col.AddDocument(ctx, doc); err != nil {
				return err
			}
		}
	}
	return nil
}

// Search performs vector similarity search on a collection. chromem
// supports a single conjunctive where-clause per query, so a disjunctive
// filter runs one query per clause and the merged results are re-ranked
// by score.
func (e *Engine) Search(ctx context.Context, vector []float64, opts ...vectordb.SearchOption) ([]vectordb.Record, error) {
	var option vectordb.SearchOptions
	for _, opt := range opts {
		opt(&option)
	}
	col, err := e.Collection(ctx, option.Collection)
	if err != nil {
		return nil, err
	}
	topK := option.TopK
	if topK == 0 {
		topK = e.TopK
	}
	query := vectordb.Float32s(vector)
	results, err := e.queryClauses(ctx, col, query, topK, &option)
	if err != nil {
		return nil, err
	}
	if topK > 0 && topK < len(results) {
		results = results[:topK]
	}
	return results, nil
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
	// chromem has no listing primitive; probe with a constant unit
	// vector and request every stored document, then keep the filter
	// matches. Ranking is irrelevant for a metadata listing.
	probe := make([]float32, e.Dimension)
	if e.Dimension > 0 {
		probe[0] = 1
	}
	return e.queryClauses(ctx, col, probe, col.Count(), &option)
}

// queryClauses runs one chromem query per filter clause (or a single
// unfiltered query) and merges the results, deduplicating by ID and
// keeping each record's best score.
func (e *Engine) queryClauses(ctx context.Context, col *chromem.Collection, query []float32, nResults int, option *vectordb.SearchOptions) ([]vectordb.Record, error) {
	count := col.Count()
	if count == 0 || nResults <= 0 {
		return nil, nil
	}
	nResults = min(nResults, count)

	whereDocument := make(map[string]string, 2)
	if option.Include != "" {
		whereDocument["$contains"] = option.Include
	}
	if option.Exclude != "" {
		whereDocument["$not_contains"] = option.Exclude
	}

	clauses := []vectordb.Clause{nil}
	if !option.Filter.IsEmpty() {
		clauses = option.Filter.Clauses
	}

	best := make(map[string]vectordb.Record)
	for _, clause := range clauses {
		results, err := col.QueryEmbedding(ctx, query, nResults, clause, whereDocument)
		if err != nil {
			return nil, err
		}
		for i := range results {
			var rec vectordb.Record
			resultToRecord(&results[i], &rec)
			if prev, ok := best[rec.ID]; !ok || rec.Score > prev.Score {
				best[rec.ID] = rec
			}
		}
	}
	merged := make([]vectordb.Record, 0, len(best))
	for _, rec := range best {
		if rec.Score < e.MinScore {
			continue
		}
		merged = append(merged, rec)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	return merged, nil
}

func resultToRecord(res *chromem.Result, record *vectordb.Record) {
	record.ID = res.ID
	record.Score = float64(res.Similarity)
	record.Embedding.Object = res.Content
	record.Embedding.Meta = res.Metadata
	record.Embedding.Embedding = vectordb.Float64s(res.Embedding)
}

func recordToDocument(record *vectordb.Record, doc *chromem.Document) {
	if record.ID == "" {
		record.ID = record.Embedding.UUID()
	}
	doc.ID = record.ID
	doc.Content = record.Embedding.Object
	doc.Metadata = record.Embedding.Meta
	doc.Embedding = vectordb.Float32s(record.Embedding.Embedding)
}
