package document

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestHTML2MDParser(t *testing.T) {
	html := `<html><body><h1>Routing</h1><p>Declare routes with <code>router.GET</code>.</p></body></html>`
	parser := NewHTML2MDParser()
	var doc Document
	if err := parser.Parse(context.Background(), bytes.NewReader([]byte(html)), &doc); err != nil {
		t.Fatal(err)
	}
	md := doc.String()
	if !strings.Contains(md, "# Routing") {
		t.Errorf("missing heading in %q", md)
	}
	if !strings.Contains(md, "`router.GET`") {
		t.Errorf("missing inline code in %q", md)
	}
	if strings.Contains(md, "<p>") {
		t.Errorf("html leaked through: %q", md)
	}
}
