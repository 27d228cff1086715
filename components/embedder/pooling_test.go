package embedder

import (
	"errors"
	"testing"
)

func TestMeanPool(t *testing.T) {
	tests := []struct {
		name    string
		vectors [][]float64
		want    []float64
	}{
		{
			name:    "single vector is itself",
			vectors: [][]float64{{0.25, -1, 3}},
			want:    []float64{0.25, -1, 3},
		},
		{
			name:    "identical vectors unchanged",
			vectors: [][]float64{{1, 2}, {1, 2}},
			want:    []float64{1, 2},
		},
		{
			name:    "element-wise mean",
			vectors: [][]float64{{1, 0}, {0, 1}},
			want:    []float64{0.5, 0.5},
		},
		{
			name:    "zero vectors average to zero",
			vectors: [][]float64{{0, 0, 0}, {0, 0, 0}},
			want:    []float64{0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MeanPool(tt.vectors)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("dimension mismatch: want %d, got %d", len(tt.want), len(got))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("element %d: want %v, got %v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestMeanPoolEmpty(t *testing.T) {
	if _, err := MeanPool(nil); !errors.Is(err, ErrNoVectors) {
		t.Errorf("want ErrNoVectors, got %v", err)
	}
}

func TestMeanPoolDimensionMismatch(t *testing.T) {
	if _, err := MeanPool([][]float64{{1, 2}, {1}}); err == nil {
		t.Error("expected error for mismatched dimensions")
	}
}
