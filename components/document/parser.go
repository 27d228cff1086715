package document

import (
	"bytes"
	"context"
	"io"
)

// Parser converts a raw document into text suitable for chunking and
// embedding.
type Parser interface {
	Parse(context.Context, *bytes.Reader, io.Writer) error
}
