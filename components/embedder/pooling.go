package embedder

import (
	"errors"
	"fmt"
)

// ErrNoVectors reports MeanPool invoked with an empty vector list. The
// document embedding pipeline guarantees at least one vector per
// document, so hitting this indicates a caller bug.
var ErrNoVectors = errors.New("embedder: no vectors to aggregate")

// MeanPool aggregates same-dimension vectors into their element-wise
// arithmetic mean. It is a pure function: the mean of a single vector is
// that vector, and identical inputs average to themselves.
func MeanPool(vectors [][]float64) ([]float64, error) {
	if len(vectors) == 0 {
		return nil, ErrNoVectors
	}
	dim := len(vectors[0])
	mean := make([]float64, dim)
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("embedder: vector %d has dimension %d, want %d", i, len(v), dim)
		}
		for j, x := range v {
			mean[j] += x
		}
	}
	count := float64(len(vectors))
	for j := range mean {
		mean[j] /= count
	}
	return mean, nil
}
