package mcpserver

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/xid"

	"github.com/anchoring-ai/docsnippets/components/docs"
)

const (
	// Name and Version identify this server to MCP clients.
	Name    = "docsnippets"
	Version = "v1.0.0"

	instructions = `This MCP server provides version-pinned documentation snippets for
programming languages, frameworks, and libraries. Snippets are embedded
into a vector store and retrieved by semantic similarity, filtered by
the exact technology versions you name.

Use this server to:
- Look up how an API works in a specific version of a language, framework, or library.
- Generate version-accurate code when multiple technologies interact.
- Discover which languages, frameworks, and libraries have indexed documentation.

The server only returns indexed documentation; it does not execute code
or browse the web.`
)

// Server exposes the documentation service over the Model Context
// Protocol.
type Server struct {
	docs   *docs.Service
	server *mcp.Server
	logger *log.Logger
}

func New(service *docs.Service, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		docs:   service,
		logger: logger,
		server: mcp.NewServer(&mcp.Implementation{Name: Name, Version: Version}, &mcp.ServerOptions{
			Instructions: instructions,
		}),
	}
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "query-documentation-snippets",
		Description: `Search for documentation snippets across multiple languages, frameworks, and libraries.

This tool finds relevant documentation when working with multiple technologies simultaneously,
for example how a specific version of a library is used with a specific web framework.
Results carry source attribution and exact version pins.`,
	}, s.queryDocumentation)
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "list-documentation-components",
		Description: `Retrieve all available documentation components for a category.

The category must be one of "language", "framework", or "library".`,
	}, s.listComponents)
	return s
}

// Run serves MCP requests over stdio until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("serving", "name", Name, "version", Version, "transport", "stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Connect attaches the server to an arbitrary transport. Used by tests
// and embedding hosts.
func (s *Server) Connect(ctx context.Context, transport mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, transport, nil)
}

// QueryInput is the argument schema of query-documentation-snippets.
type QueryInput struct {
	Query       string               `json:"query" jsonschema:"The search query describing what you're looking for"`
	Category    string               `json:"category" jsonschema:"The category to search in (language, framework, library)"`
	CodeContext []string             `json:"code_context,omitempty" jsonschema:"Optional code snippets to improve search relevance"`
	Languages   []docs.TechComponent `json:"languages,omitempty" jsonschema:"Programming languages and their versions to search documentation for"`
	Frameworks  []docs.TechComponent `json:"frameworks,omitempty" jsonschema:"Frameworks and their versions to search documentation for"`
	Libraries   []docs.TechComponent `json:"libraries,omitempty" jsonschema:"Libraries/packages and their versions to search documentation for"`
	NResults    int                  `json:"n_results,omitempty" jsonschema:"Number of results to return"`
}

// ListInput is the argument schema of list-documentation-components.
type ListInput struct {
	Category string `json:"category" jsonschema:"The category to list components for (language, framework, library)"`
}

func (s *Server) queryDocumentation(ctx context.Context, _ *mcp.CallToolRequest, in QueryInput) (*mcp.CallToolResult, any, error) {
	logger := s.logger.With("request_id", xid.New().String(), "tool", "query-documentation-snippets")
	logger.Info("query received", "category", in.Category, "n_results", in.NResults)

	records, err := s.docs.Query(ctx, &docs.QueryRequest{
		Query:       in.Query,
		Category:    docs.Category(in.Category),
		CodeContext: in.CodeContext,
		Languages:   in.Languages,
		Frameworks:  in.Frameworks,
		Libraries:   in.Libraries,
		NResults:    in.NResults,
	})
	if err != nil {
		logger.Error("query failed", "err", err)
		return textResult(fmt.Sprintf("Error executing query: %s", err)), nil, nil
	}
	logger.Info("query completed", "results", len(records))
	return textResult(docs.FormatResults(records)), nil, nil
}

func (s *Server) listComponents(ctx context.Context, _ *mcp.CallToolRequest, in ListInput) (*mcp.CallToolResult, any, error) {
	logger := s.logger.With("request_id", xid.New().String(), "tool", "list-documentation-components")

	category := docs.Category(in.Category)
	if !category.Valid() {
		return textResult("Invalid category. Must be one of: language, framework, library."), nil, nil
	}
	items, err := s.docs.ListComponents(ctx, category)
	if err != nil {
		logger.Error("listing failed", "err", err)
		return textResult(fmt.Sprintf("Error listing components: %s", err)), nil, nil
	}
	logger.Info("listing completed", "category", category, "components", len(items))
	return textResult(docs.FormatComponents(items, category)), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
