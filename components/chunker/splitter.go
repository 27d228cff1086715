package chunker

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultSeparators is the fallback hierarchy used when none is
// configured: paragraph break, line break, sentence end, word boundary,
// and finally grapheme granularity. The empty string terminator
// guarantees any text can be split.
var DefaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// ErrBudgetExceeded reports a chunk that still exceeds the token budget
// after the coalescing pass. This indicates a defect in the splitting
// algorithm or a budget no separator level can satisfy, and is raised
// loudly rather than silently truncated.
var ErrBudgetExceeded = errors.New("chunker: chunk exceeds token budget after coalescing")

// Splitter splits arbitrary-length text into an ordered sequence of
// chunks, each within a fixed token budget, by recursive descent through
// a prioritized separator hierarchy. Token counting is delegated to the
// injected TokenCounter oracle.
type Splitter struct {
	counter    TokenCounter
	maxTokens  int
	separators []string
}

// Option configures a Splitter. This follows the functional options
// pattern for clean and flexible configuration.
type Option func(*Splitter)

// WithMaxTokens sets the token budget every produced chunk must satisfy.
func WithMaxTokens(n int) Option {
	return func(s *Splitter) {
		s.maxTokens = n
	}
}

// WithSeparators overrides the separator hierarchy. The list is ordered
// coarse to fine and must end with the empty string.
func WithSeparators(separators []string) Option {
	return func(s *Splitter) {
		s.separators = separators
	}
}

// New creates a Splitter around the given token counter. Defaults:
// 512 token budget, DefaultSeparators hierarchy.
func New(counter TokenCounter, opts ...Option) (*Splitter, error) {
	s := &Splitter{
		counter:    counter,
		maxTokens:  512,
		separators: DefaultSeparators,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.counter == nil {
		return nil, errors.New("chunker: token counter is required")
	}
	if s.maxTokens <= 0 {
		return nil, fmt.Errorf("chunker: max tokens must be positive, got %d", s.maxTokens)
	}
	if len(s.separators) == 0 || s.separators[len(s.separators)-1] != "" {
		return nil, errors.New(`chunker: separators must be non-empty and end with ""`)
	}
	return s, nil
}

// MaxTokens returns the configured token budget.
func (s *Splitter) MaxTokens() int {
	return s.maxTokens
}

// Split divides text into ordered chunks, each counting at most the
// configured token budget. Text already within the budget is returned
// as a single chunk; empty text yields no chunks. Concatenating the
// result reproduces the input. If the token counter fails, a
// deterministic grapheme-window fallback is used instead of surfacing
// the error. The only error returned is ErrBudgetExceeded.
func (s *Splitter) Split(text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}
	chunks, err := s.split(text, s.separators)
	if err != nil {
		return s.windowSplit(text), nil
	}
	if chunks, err = s.verify(chunks); err != nil {
		return s.windowSplit(text), nil
	}
	merged, err := s.coalesce(chunks)
	if err != nil {
		return s.windowSplit(text), nil
	}
	for i, chunk := range merged {
		n, err := s.counter.Count(chunk)
		if err != nil {
			return s.windowSplit(text), nil
		}
		if n > s.maxTokens {
			return nil, fmt.Errorf("%w: chunk %d counts %d tokens, budget %d", ErrBudgetExceeded, i, n, s.maxTokens)
		}
	}
	return merged, nil
}

// split performs one level of recursive descent: text that fits the
// budget is returned whole, otherwise it is divided at the first
// separator in seps that actually occurs and packed greedily.
func (s *Splitter) split(text string, seps []string) ([]string, error) {
	n, err := s.counter.Count(text)
	if err != nil {
		return nil, err
	}
	if n <= s.maxTokens {
		if text == "" {
			return nil, nil
		}
		return []string{text}, nil
	}
	idx := -1
	for i, sep := range seps {
		if sep == "" || strings.Contains(text, sep) {
			idx = i
			break
		}
	}
	if idx == -1 {
		// No separator level applies; return as-is and let the
		// verification pass decide.
		return []string{text}, nil
	}
	return s.pack(splitPairs(text, seps[idx]), seps[idx+1:])
}

// verify re-chunks any chunk that slipped past the budget. The
// recursive descent should never produce one; this is a safety net, not
// a normal code path.
func (s *Splitter) verify(chunks []string) ([]string, error) {
	out := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		n, err := s.counter.Count(chunk)
		if err != nil {
			return nil, err
		}
		if n <= s.maxTokens {
			out = append(out, chunk)
			continue
		}
		sub, err := s.split(chunk, s.separators)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

// coalesce greedily merges adjacent chunks while the merge stays within
// the budget, minimizing the final chunk count without violating it.
// Concatenation order and content are preserved exactly.
func (s *Splitter) coalesce(chunks []string) ([]string, error) {
	if len(chunks) < 2 {
		return chunks, nil
	}
	out := make([]string, 0, len(chunks))
	buf := chunks[0]
	for _, chunk := range chunks[1:] {
		merged := buf + chunk
		n, err := s.counter.Count(merged)
		if err != nil {
			return nil, err
		}
		if n <= s.maxTokens {
			buf = merged
		} else {
			out = append(out, buf)
			buf = chunk
		}
	}
	return append(out, buf), nil
}
