package embedder

import (
	"bytes"
	"context"

	"github.com/google/uuid"
)

// Embedding is an information dense representation of the semantic
// meaning of a piece of text: a vector of floating point numbers such
// that the distance between two embeddings in the vector space is
// correlated with semantic similarity between the two inputs.
type Embedding struct {
	// Object is the original text that was embedded
	Object string `json:"object"`
	// Embedding is the vector representation, dimension fixed per model
	Embedding []float64 `json:"embedding"`
	// Index is the position of the source chunk within its document
	Index int `json:"index"`
	// Meta is flat string metadata attached to the embedded content
	Meta map[string]string `json:"meta,omitempty"`
}

// UUID derives a stable identifier from the embedded content and its
// metadata, so re-ingesting the same snippet overwrites rather than
// duplicates.
func (e Embedding) UUID() string {
	sb := new(bytes.Buffer)
	sb.WriteString(e.Object)
	for k, v := range e.Meta {
		sb.WriteString(k + ":" + v)
		sb.WriteByte('\n')
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, sb.Bytes()).String()
}

// Usage accumulates provider-reported token consumption.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Embedder is the embedding provider collaborator. Implementations wrap
// a third-party SDK and may fail per call; callers decide the fallback
// policy.
type Embedder interface {
	Provider() Provider
	Model() string
	// Dimensions returns the fixed output vector dimension D. Every
	// vector produced or substituted on behalf of this embedder must
	// have exactly D entries.
	Dimensions() int
	Embed(ctx context.Context, text string, embedding *Embedding, usage *Usage) error
	BatchEmbed(ctx context.Context, parts []string, usage *Usage) ([]Embedding, error)
}
