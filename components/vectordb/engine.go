package vectordb

import (
	"context"
)

type EngineType string

const (
	Memory  EngineType = "memory"
	Chromem EngineType = "chromem"
	Milvus  EngineType = "milvus"
)

// Engine is the vector store collaborator: it persists (id, content,
// metadata, embedding) tuples and answers filtered similarity queries.
// Metadata is a flat mapping of string keys to string values.
type Engine interface {
	// Insert stores records in the named collection, assigning
	// deterministic content-derived IDs to records that lack one.
	Insert(ctx context.Context, collection string, records ...Record) error
	// Search returns the records most similar to the query vector,
	// ranked by descending score and restricted by any filter in opts.
	Search(ctx context.Context, vector []float64, opts ...SearchOption) ([]Record, error)
	// Get returns all records whose metadata matches the filter in
	// opts, regardless of vector similarity. Used for metadata listings.
	Get(ctx context.Context, opts ...SearchOption) ([]Record, error)
}
