package docs

import (
	"strings"
	"testing"

	"github.com/anchoring-ai/docsnippets/components/embedder"
	"github.com/anchoring-ai/docsnippets/components/vectordb"
)

func TestFormatResults(t *testing.T) {
	records := []vectordb.Record{
		{
			ID:    "django-routing",
			Score: 0.91,
			Embedding: embedder.Embedding{
				Object: "Routing in Django maps URLs to views.",
				Meta: map[string]string{
					"category":          "framework",
					"framework":         "django",
					"framework_version": "5.0",
					"language":          "python",
					"title":             "URL routing",
					"description":       "Declaring URL patterns",
					"source_url":        "https://docs.djangoproject.com/en/5.0/topics/http/urls/",
				},
			},
		},
		{
			ID:    "py-async",
			Score: 0.42,
			Embedding: embedder.Embedding{
				Object: "Async functions are declared with async def.",
				Meta: map[string]string{
					"category": "language",
					"language": "python",
				},
			},
		},
	}
	got := FormatResults(records)

	for _, want := range []string{
		"# Documentation Snippets",
		"## 1. URL routing",
		"*Declaring URL patterns*",
		"**Tech Stack**: Framework: django 5.0 | Language: python",
		"**Source**: [https://docs.djangoproject.com/en/5.0/topics/http/urls/](https://docs.djangoproject.com/en/5.0/topics/http/urls/)",
		"```\nRouting in Django maps URLs to views.\n```",
		"---",
		"## 2. Documentation Snippet",
		"*No description available*",
		"**Tech Stack**: Language: python",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	if strings.HasSuffix(strings.TrimSpace(got), "---") {
		t.Error("separator after last snippet")
	}
}

func TestFormatResultsEmpty(t *testing.T) {
	got := FormatResults(nil)
	if got != "No documentation snippets found matching your query." {
		t.Errorf("unexpected empty message: %q", got)
	}
}

func TestFormatComponents(t *testing.T) {
	items := []TechComponent{
		{Name: "django", Version: "5.0"},
		{Name: "gin"},
	}
	got := FormatComponents(items, CategoryFramework)
	for _, want := range []string{
		"Available Framework Components:",
		"- django (Version: 5.0)",
		"- gin\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}

	empty := FormatComponents(nil, CategoryLibrary)
	if empty != "No documentation components found for category: library." {
		t.Errorf("unexpected empty message: %q", empty)
	}
}
