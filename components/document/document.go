package document

import (
	"bytes"
)

// Document is a document container with metadata
type Document struct {
	buffer bytes.Buffer
	Meta   map[string]string
}

func (d *Document) Reader() *bytes.Reader {
	return bytes.NewReader(d.buffer.Bytes())
}

func (d *Document) Write(p []byte) (int, error) {
	return d.buffer.Write(p)
}

func (d *Document) String() string {
	return d.buffer.String()
}
