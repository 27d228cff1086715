package docs

import (
	"reflect"
	"sort"
	"testing"

	"github.com/anchoring-ai/docsnippets/components/vectordb"
)

func clauseKey(c vectordb.Clause) string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for _, k := range keys {
		out += k + "=" + c[k] + ";"
	}
	return out
}

func sortedClauses(f *vectordb.Filter) []string {
	out := make([]string, 0, len(f.Clauses))
	for _, c := range f.Clauses {
		out = append(out, clauseKey(c))
	}
	sort.Strings(out)
	return out
}

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name string
		req  QueryRequest
		want []vectordb.Clause
	}{
		{
			name: "language category without components",
			req:  QueryRequest{Category: CategoryLanguage},
			want: []vectordb.Clause{{"category": "language"}},
		},
		{
			name: "language with version pin",
			req: QueryRequest{
				Category:  CategoryLanguage,
				Languages: []TechComponent{{Name: "python", Version: "3.12"}},
			},
			want: []vectordb.Clause{
				{"category": "language", "language": "python", "language_version": "3.12"},
			},
		},
		{
			name: "multiple languages form a disjunction",
			req: QueryRequest{
				Category:  CategoryLanguage,
				Languages: []TechComponent{{Name: "python"}, {Name: "go", Version: "1.22"}},
			},
			want: []vectordb.Clause{
				{"category": "language", "language": "python"},
				{"category": "language", "language": "go", "language_version": "1.22"},
			},
		},
		{
			name: "framework scoped to language",
			req: QueryRequest{
				Category:   CategoryFramework,
				Frameworks: []TechComponent{{Name: "django", Version: "5.0"}},
				Languages:  []TechComponent{{Name: "python"}},
			},
			want: []vectordb.Clause{
				{"category": "framework", "framework": "django", "framework_version": "5.0", "language": "python"},
			},
		},
		{
			name: "library with language and framework cross product",
			req: QueryRequest{
				Category:   CategoryLibrary,
				Libraries:  []TechComponent{{Name: "celery"}},
				Languages:  []TechComponent{{Name: "python"}, {Name: "pypy"}},
				Frameworks: []TechComponent{{Name: "django"}},
			},
			want: []vectordb.Clause{
				{"category": "library", "library": "celery", "language": "python", "framework": "django"},
				{"category": "library", "library": "celery", "language": "pypy", "framework": "django"},
			},
		},
		{
			name: "library without context",
			req: QueryRequest{
				Category:  CategoryLibrary,
				Libraries: []TechComponent{{Name: "requests", Version: "2.31"}},
			},
			want: []vectordb.Clause{
				{"category": "library", "library": "requests", "library_version": "2.31"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildFilter(&tt.req)
			want := new(vectordb.Filter)
			for _, c := range tt.want {
				want.Or(c)
			}
			if !reflect.DeepEqual(sortedClauses(got), sortedClauses(want)) {
				t.Errorf("want clauses %v, got %v", sortedClauses(want), sortedClauses(got))
			}
		})
	}
}

func TestBuildFilterIgnoresUnrelatedComponents(t *testing.T) {
	req := QueryRequest{
		Category:  CategoryLanguage,
		Languages: []TechComponent{{Name: "go"}},
		Libraries: []TechComponent{{Name: "celery"}},
	}
	got := BuildFilter(&req)
	if len(got.Clauses) != 1 {
		t.Fatalf("want 1 clause, got %d", len(got.Clauses))
	}
	if _, ok := got.Clauses[0]["library"]; ok {
		t.Error("library constraint leaked into a language query")
	}
}
