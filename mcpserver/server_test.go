package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anchoring-ai/docsnippets/components/chunker"
	"github.com/anchoring-ai/docsnippets/components/docs"
	"github.com/anchoring-ai/docsnippets/components/embedder"
	"github.com/anchoring-ai/docsnippets/components/vectordb/engines/memory"
)

type constEmbedder struct{}

func (constEmbedder) Provider() embedder.Provider { return "fake" }
func (constEmbedder) Model() string               { return "const" }
func (constEmbedder) Dimensions() int             { return 2 }

func (constEmbedder) Embed(_ context.Context, text string, emb *embedder.Embedding, _ *embedder.Usage) error {
	emb.Object = text
	emb.Embedding = []float64{1, 0}
	return nil
}

func (e constEmbedder) BatchEmbed(ctx context.Context, parts []string, usage *embedder.Usage) ([]embedder.Embedding, error) {
	out := make([]embedder.Embedding, len(parts))
	for i, part := range parts {
		if err := e.Embed(ctx, part, &out[i], usage); err != nil {
			return nil, err
		}
		out[i].Index = i
	}
	return out, nil
}

func newTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()
	splitter, err := chunker.New(chunker.WordTokenCounter{}, chunker.WithMaxTokens(64))
	if err != nil {
		t.Fatal(err)
	}
	engine, err := memory.New()
	if err != nil {
		t.Fatal(err)
	}
	svc, err := docs.NewService(engine, embedder.NewDocumentEmbedder(constEmbedder{}, splitter, nil))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := svc.Ingest(ctx, &docs.Documentation{
		Category:         docs.CategoryFramework,
		Language:         "python",
		Framework:        "django",
		FrameworkVersion: "5.0",
		SnippetID:        "django-routing",
		SourceURL:        "https://docs.djangoproject.com/en/5.0/topics/http/urls/",
		Title:            "URL routing",
		Description:      "Declaring URL patterns",
		Content:          "Routing in Django maps URLs to views.",
	}); err != nil {
		t.Fatal(err)
	}

	server := New(svc, nil)
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		serverSession.Close()
	})

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		clientSession.Close()
	})
	return clientSession
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", res.Content[0])
	}
	return text.Text
}

func TestToolsAreRegistered(t *testing.T) {
	session := newTestSession(t)
	res, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	names := make(map[string]bool)
	for _, tool := range res.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"query-documentation-snippets", "list-documentation-components"} {
		if !names[want] {
			t.Errorf("tool %s not registered", want)
		}
	}
}

func TestQueryDocumentationTool(t *testing.T) {
	session := newTestSession(t)
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "query-documentation-snippets",
		Arguments: map[string]any{
			"query":      "url routing",
			"category":   "framework",
			"frameworks": []map[string]any{{"name": "django", "version": "5.0"}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "URL routing") {
		t.Errorf("expected snippet title in result:\n%s", text)
	}
	if !strings.Contains(text, "Framework: django 5.0") {
		t.Errorf("expected tech stack line in result:\n%s", text)
	}
}

func TestQueryDocumentationToolInvalidRequest(t *testing.T) {
	session := newTestSession(t)
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "query-documentation-snippets",
		Arguments: map[string]any{
			"query":    "routing",
			"category": "tooling",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if text := resultText(t, res); !strings.Contains(text, "Error executing query") {
		t.Errorf("expected error message, got:\n%s", text)
	}
}

func TestListComponentsTool(t *testing.T) {
	session := newTestSession(t)
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "list-documentation-components",
		Arguments: map[string]any{"category": "framework"},
	})
	if err != nil {
		t.Fatal(err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "- django (Version: 5.0)") {
		t.Errorf("expected django listed, got:\n%s", text)
	}

	res, err = session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "list-documentation-components",
		Arguments: map[string]any{"category": "tooling"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if text := resultText(t, res); !strings.Contains(text, "Invalid category") {
		t.Errorf("expected invalid category message, got:\n%s", text)
	}
}
