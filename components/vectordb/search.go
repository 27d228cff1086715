package vectordb

import "github.com/anchoring-ai/docsnippets/components/embedder"

type SearchOptions struct {
	Collection string
	TopK       int
	Filter     *Filter
	Include    string
	Exclude    string
}

type SearchOption func(*SearchOptions)

func SearchWithCollection(name string) SearchOption {
	return func(r *SearchOptions) {
		r.Collection = name
	}
}

func SearchWithTopK(topK int) SearchOption {
	return func(r *SearchOptions) {
		r.TopK = topK
	}
}

func SearchWithFilter(filter *Filter) SearchOption {
	return func(r *SearchOptions) {
		r.Filter = filter
	}
}

func SearchWithInclude(v string) SearchOption {
	return func(r *SearchOptions) {
		r.Include = v
	}
}

func SearchWithExclude(v string) SearchOption {
	return func(r *SearchOptions) {
		r.Exclude = v
	}
}

// Record represents a single result from a vector similarity search.
type Record struct {
	// ID is the identifier for the result
	ID string
	// Score is the similarity score for the result, higher is closer
	Score float64
	// Embedding carries the stored content, vector and metadata
	Embedding embedder.Embedding
}
