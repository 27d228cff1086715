package docs

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/anchoring-ai/docsnippets/components/document"
	"github.com/anchoring-ai/docsnippets/components/embedder"
	"github.com/anchoring-ai/docsnippets/components/vectordb"
)

const (
	// DefaultCollection is the vector store collection holding snippets.
	DefaultCollection = "documentation_snippets"
	// DefaultNResults applies when a query does not set n_results.
	DefaultNResults = 5
)

// Service queries and ingests version-pinned documentation snippets.
type Service struct {
	engine     vectordb.Engine
	embedder   *embedder.DocumentEmbedder
	parser     document.Parser
	validate   *validator.Validate
	logger     *log.Logger
	collection string
}

// Option configures a Service.
type Option func(*Service)

func WithCollection(name string) Option {
	return func(s *Service) {
		s.collection = name
	}
}

func WithParser(parser document.Parser) Option {
	return func(s *Service) {
		s.parser = parser
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(engine vectordb.Engine, docEmbedder *embedder.DocumentEmbedder, opts ...Option) (*Service, error) {
	if engine == nil {
		return nil, fmt.Errorf("docs: engine is required")
	}
	if docEmbedder == nil {
		return nil, fmt.Errorf("docs: embedder is required")
	}
	ret := &Service{
		engine:     engine,
		embedder:   docEmbedder,
		parser:     document.NewHTML2MDParser(),
		validate:   validator.New(),
		logger:     log.Default(),
		collection: DefaultCollection,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret, nil
}

// Query searches the collection for snippets matching the request's
// query text and component filters, ranked by similarity.
func (s *Service) Query(ctx context.Context, req *QueryRequest) ([]vectordb.Record, error) {
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, fmt.Errorf("docs: invalid query request: %w", err)
	}
	nResults := req.NResults
	if nResults == 0 {
		nResults = DefaultNResults
	}
	filter := BuildFilter(req)
	s.logger.Debug("querying documentation", "category", req.Category, "clauses", len(filter.Clauses), "n_results", nResults)

	vector, err := s.embedder.EmbedDocument(ctx, "query", req.EmbeddingText())
	if err != nil {
		return nil, err
	}
	return s.engine.Search(ctx, vector,
		vectordb.SearchWithCollection(s.collection),
		vectordb.SearchWithTopK(nResults),
		vectordb.SearchWithFilter(filter),
	)
}

// ListComponents returns the distinct name/version pairs stored for a
// category, sorted by name then version.
func (s *Service) ListComponents(ctx context.Context, category Category) ([]TechComponent, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("docs: invalid category %q", category)
	}
	filter := new(vectordb.Filter).Or(vectordb.Clause{"category": string(category)})
	records, err := s.engine.Get(ctx,
		vectordb.SearchWithCollection(s.collection),
		vectordb.SearchWithFilter(filter),
	)
	if err != nil {
		return nil, err
	}
	nameKey := string(category)
	versionKey := nameKey + "_version"
	seen := make(map[TechComponent]struct{})
	for _, record := range records {
		name := record.Embedding.Meta[nameKey]
		if name == "" {
			continue
		}
		seen[TechComponent{Name: name, Version: record.Embedding.Meta[versionKey]}] = struct{}{}
	}
	items := make([]TechComponent, 0, len(seen))
	for item := range seen {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].Version < items[j].Version
	})
	return items, nil
}

// Ingest embeds a snippet's content and stores it as a single record
// keyed by its snippet ID.
func (s *Service) Ingest(ctx context.Context, doc *Documentation) error {
	if err := s.validate.StructCtx(ctx, doc); err != nil {
		return fmt.Errorf("docs: invalid documentation: %w", err)
	}
	vector, err := s.embedder.EmbedDocument(ctx, doc.SnippetID, doc.Content)
	if err != nil {
		return err
	}
	record := vectordb.Record{
		ID: doc.SnippetID,
		Embedding: embedder.Embedding{
			Object:    doc.Content,
			Embedding: vector,
			Meta:      doc.Meta(),
		},
	}
	s.logger.Info("ingesting snippet", "snippet_id", doc.SnippetID, "category", doc.Category)
	return s.engine.Insert(ctx, s.collection, record)
}

// IngestHTML converts raw html to markdown before ingesting it as the
// snippet's content.
func (s *Service) IngestHTML(ctx context.Context, doc *Documentation, html []byte) error {
	var parsed document.Document
	if err := s.parser.Parse(ctx, bytes.NewReader(html), &parsed); err != nil {
		return fmt.Errorf("docs: parsing html: %w", err)
	}
	doc.Content = parsed.String()
	return s.Ingest(ctx, doc)
}
