package chunker

import "github.com/clipperhouse/uax29/graphemes"

// fallbackCharsPerToken is the conservative characters-per-token ratio
// assumed when the tokenizer oracle is unavailable. Subword tokenizers
// average around four characters per token on prose; two keeps the
// window well under the budget for code and non-Latin scripts.
const fallbackCharsPerToken = 2

// windowSplit is the deterministic fallback used when the token counter
// fails: fixed-size windows of grapheme clusters sized by a conservative
// characters-per-token ratio. The caller always receives some valid
// chunking instead of an error.
func (s *Splitter) windowSplit(text string) []string {
	if text == "" {
		return nil
	}
	window := s.maxTokens * fallbackCharsPerToken
	segs := graphemes.SegmentAll([]byte(text))
	var out []string
	var buf []byte
	var size int
	for _, seg := range segs {
		if size+len(seg) > window && size > 0 {
			out = append(out, string(buf))
			buf = buf[:0]
			size = 0
		}
		buf = append(buf, seg...)
		size += len(seg)
	}
	if size > 0 {
		out = append(out, string(buf))
	}
	return out
}
