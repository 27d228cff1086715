package chunker

import (
	"strings"

	"github.com/clipperhouse/uax29/graphemes"
)

// pair is one content item together with the separator that followed it
// in the original text. The final pair of a split carries no separator.
type pair struct {
	content string
	sep     string
}

// splitPairs divides text into content/separator pairs at every
// occurrence of sep, keeping the separator attached to the preceding
// content item. The empty separator means grapheme granularity.
// Joining content+sep over all pairs reproduces text exactly.
func splitPairs(text, sep string) []pair {
	if sep == "" {
		segs := graphemes.SegmentAll([]byte(text))
		pairs := make([]pair, 0, len(segs))
		for _, seg := range segs {
			pairs = append(pairs, pair{content: string(seg)})
		}
		return pairs
	}
	pieces := strings.Split(text, sep)
	pairs := make([]pair, 0, len(pieces))
	for i, piece := range pieces {
		p := pair{content: piece}
		if i < len(pieces)-1 {
			p.sep = sep
		}
		pairs = append(pairs, p)
	}
	return pairs
}

// pack fills a running accumulator pair by pair, flushing a finished
// chunk whenever appending the next unit would push the accumulator over
// the token budget. Units that exceed the budget on their own are split
// recursively with the remaining separator levels.
func (s *Splitter) pack(pairs []pair, rest []string) ([]string, error) {
	var out []string
	var acc string
	flush := func() {
		if acc != "" {
			out = append(out, acc)
			acc = ""
		}
	}
	for _, p := range pairs {
		unit := p.content + p.sep
		if unit == "" {
			continue
		}
		unitTokens, err := s.counter.Count(unit)
		if err != nil {
			return nil, err
		}
		if unitTokens > s.maxTokens {
			flush()
			if len(rest) == 0 {
				// No finer level left; the verification pass flags this.
				out = append(out, unit)
				continue
			}
			sub, err := s.split(p.content, rest)
			if err != nil {
				return nil, err
			}
			if p.sep != "" {
				if sub, err = s.attachSep(sub, p.sep, rest); err != nil {
					return nil, err
				}
			}
			out = append(out, sub...)
			continue
		}
		merged := acc + unit
		if acc == "" {
			acc = merged
			continue
		}
		mergedTokens, err := s.counter.Count(merged)
		if err != nil {
			return nil, err
		}
		if mergedTokens <= s.maxTokens {
			acc = merged
		} else {
			flush()
			acc = unit
		}
	}
	flush()
	return out, nil
}

// attachSep reattaches a trailing separator to the last sub-chunk when
// that still fits the budget, and otherwise emits the separator as its
// own chunk, splitting it further if even the bare separator overflows.
func (s *Splitter) attachSep(sub []string, sep string, rest []string) ([]string, error) {
	if len(sub) == 0 {
		return s.split(sep, rest)
	}
	joined := sub[len(sub)-1] + sep
	n, err := s.counter.Count(joined)
	if err != nil {
		return nil, err
	}
	if n <= s.maxTokens {
		sub[len(sub)-1] = joined
		return sub, nil
	}
	sepChunks, err := s.split(sep, rest)
	if err != nil {
		return nil, err
	}
	return append(sub, sepChunks...), nil
}
