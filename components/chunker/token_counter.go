package chunker

import (
	"fmt"
	"strings"

	"github.com/clipperhouse/uax29/graphemes"
	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter is the tokenizer oracle used to measure text against a
// token budget. Implementations are model-specific and injected into the
// Splitter; they are never reimplemented here.
type TokenCounter interface {
	// Count returns the number of tokens in text. An error signals that
	// the oracle itself failed on otherwise valid input, in which case
	// the Splitter falls back to a fixed character-window strategy.
	Count(text string) (int, error)
}

// WordTokenCounter approximates tokens by whitespace-separated words.
// Suitable for tests and offline use; real deployments should use
// TikTokenCounter with the embedding model's encoding.
type WordTokenCounter struct{}

func (WordTokenCounter) Count(text string) (int, error) {
	return len(strings.Fields(text)), nil
}

// GraphemeTokenCounter counts grapheme clusters. It over-counts relative
// to subword tokenizers and is therefore a safe budget approximation.
type GraphemeTokenCounter struct{}

func (GraphemeTokenCounter) Count(text string) (int, error) {
	return len(graphemes.SegmentAll([]byte(text))), nil
}

// TikTokenCounter provides exact token counting using the tiktoken
// library, which implements the tokenization schemes used by OpenAI
// embedding models.
type TikTokenCounter struct {
	tke *tiktoken.Tiktoken
}

// NewTikTokenCounter creates a TikTokenCounter for a named encoding,
// e.g. "cl100k_base".
func NewTikTokenCounter(encoding string) (*TikTokenCounter, error) {
	tke, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding: %w", err)
	}
	return &TikTokenCounter{tke: tke}, nil
}

// NewTikTokenCounterForModel creates a TikTokenCounter keyed by model
// name, e.g. "text-embedding-3-large".
func NewTikTokenCounterForModel(model string) (*TikTokenCounter, error) {
	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding for model %s: %w", model, err)
	}
	return &TikTokenCounter{tke: tke}, nil
}

func (c *TikTokenCounter) Count(text string) (int, error) {
	return len(c.tke.Encode(text, nil, nil)), nil
}
