package chunker

import (
	"strings"
	"testing"
)

func TestSplitPairs(t *testing.T) {
	tests := []struct {
		name string
		text string
		sep  string
		want []pair
	}{
		{
			name: "paragraphs",
			text: "one\n\ntwo\n\nthree",
			sep:  "\n\n",
			want: []pair{
				{content: "one", sep: "\n\n"},
				{content: "two", sep: "\n\n"},
				{content: "three"},
			},
		},
		{
			name: "trailing separator",
			text: "one\ntwo\n",
			sep:  "\n",
			want: []pair{
				{content: "one", sep: "\n"},
				{content: "two", sep: "\n"},
				{content: ""},
			},
		},
		{
			name: "separator absent",
			text: "one two",
			sep:  "\n",
			want: []pair{{content: "one two"}},
		},
		{
			name: "consecutive separators",
			text: "a  b",
			sep:  " ",
			want: []pair{
				{content: "a", sep: " "},
				{content: "", sep: " "},
				{content: "b"},
			},
		},
		{
			name: "grapheme granularity",
			text: "héé",
			sep:  "",
			want: []pair{{content: "h"}, {content: "é"}, {content: "é"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitPairs(tt.text, tt.sep)
			if len(got) != len(tt.want) {
				t.Fatalf("invalid pairs, want %d, got %d (%v)", len(tt.want), len(got), got)
			}
			var joined strings.Builder
			for i, p := range got {
				if p != tt.want[i] {
					t.Errorf("pair %d: want %+v, got %+v", i, tt.want[i], p)
				}
				joined.WriteString(p.content)
				joined.WriteString(p.sep)
			}
			if joined.String() != tt.text {
				t.Errorf("pairs do not reconstruct text: want %q, got %q", tt.text, joined.String())
			}
		})
	}
}

func TestPackBudget(t *testing.T) {
	s, err := New(WordTokenCounter{}, WithMaxTokens(3), WithSeparators([]string{" ", ""}))
	if err != nil {
		t.Fatal(err)
	}
	pairs := splitPairs("one two three four five six seven", " ")
	chunks, err := s.pack(pairs, []string{""})
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	for i, c := range chunks {
		n, _ := s.counter.Count(c)
		if n > 3 {
			t.Errorf("chunk %d over budget: %q counts %d", i, c, n)
		}
	}
	if joined := strings.Join(chunks, ""); joined != "one two three four five six seven" {
		t.Errorf("packing lost content: %q", joined)
	}
}
