package docs

import "strings"

// Category classifies a documentation snippet by the kind of technology
// it documents.
type Category string

const (
	CategoryLanguage  Category = "language"
	CategoryFramework Category = "framework"
	CategoryLibrary   Category = "library"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryLanguage, CategoryFramework, CategoryLibrary:
		return true
	}
	return false
}

// TechComponent names a technology with an optional version pin.
type TechComponent struct {
	Name    string `json:"name" validate:"required"`
	Version string `json:"version,omitempty"`
}

// Documentation is a version-pinned documentation snippet.
type Documentation struct {
	Category         Category `json:"category" validate:"required,oneof=language framework library"`
	Language         string   `json:"language" validate:"required"`
	LanguageVersion  string   `json:"language_version,omitempty"`
	Framework        string   `json:"framework,omitempty"`
	FrameworkVersion string   `json:"framework_version,omitempty"`
	Library          string   `json:"library,omitempty"`
	LibraryVersion   string   `json:"library_version,omitempty"`
	SnippetID        string   `json:"snippet_id" validate:"required"`
	SourceURL        string   `json:"source_url" validate:"required,url"`
	Title            string   `json:"title" validate:"required"`
	Description      string   `json:"description" validate:"required"`
	Content          string   `json:"content" validate:"required"`
	Concepts         []string `json:"concepts,omitempty"`
}

// Meta flattens the snippet's descriptive fields into the metadata map
// stored alongside its vector. Empty fields are omitted.
func (d *Documentation) Meta() map[string]string {
	meta := map[string]string{
		"category":    string(d.Category),
		"language":    d.Language,
		"title":       d.Title,
		"description": d.Description,
		"source_url":  d.SourceURL,
	}
	set := func(k, v string) {
		if v != "" {
			meta[k] = v
		}
	}
	set("language_version", d.LanguageVersion)
	set("framework", d.Framework)
	set("framework_version", d.FrameworkVersion)
	set("library", d.Library)
	set("library_version", d.LibraryVersion)
	if len(d.Concepts) > 0 {
		set("concepts", strings.Join(d.Concepts, ","))
	}
	return meta
}

// QueryRequest describes a documentation search.
type QueryRequest struct {
	Query       string          `json:"query" validate:"required"`
	Category    Category        `json:"category" validate:"required,oneof=language framework library"`
	CodeContext []string        `json:"code_context,omitempty"`
	Languages   []TechComponent `json:"languages,omitempty" validate:"omitempty,dive"`
	Frameworks  []TechComponent `json:"frameworks,omitempty" validate:"omitempty,dive"`
	Libraries   []TechComponent `json:"libraries,omitempty" validate:"omitempty,dive"`
	NResults    int             `json:"n_results,omitempty" validate:"omitempty,min=1"`
}

// EmbeddingText returns the text embedded for the search, prefixing the
// query with any code context supplied by the caller.
func (r *QueryRequest) EmbeddingText() string {
	if len(r.CodeContext) == 0 {
		return r.Query
	}
	var sb strings.Builder
	sb.WriteString("Code context: ")
	sb.WriteString(strings.Join(r.CodeContext, "\n"))
	sb.WriteString("\n\nQuery: ")
	sb.WriteString(r.Query)
	return sb.String()
}
