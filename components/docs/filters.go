package docs

import (
	"github.com/anchoring-ai/docsnippets/components/vectordb"
)

// BuildFilter translates a query request into a metadata filter. Each
// requested component becomes one conjunctive clause scoped to the
// request's category; multiple components form a disjunction. When both
// languages and frameworks constrain a library search, the clauses are
// the cross product of the two lists.
func BuildFilter(req *QueryRequest) *vectordb.Filter {
	filter := new(vectordb.Filter)
	base := vectordb.Clause{"category": string(req.Category)}

	switch req.Category {
	case CategoryLanguage:
		if len(req.Languages) == 0 {
			return filter.Or(base)
		}
		for _, lang := range req.Languages {
			filter.Or(merge(base, componentClause("language", lang)))
		}
	case CategoryFramework:
		if len(req.Frameworks) == 0 {
			return filter.Or(base)
		}
		for _, fw := range req.Frameworks {
			fwClause := componentClause("framework", fw)
			if len(req.Languages) == 0 {
				filter.Or(merge(base, fwClause))
				continue
			}
			for _, lang := range req.Languages {
				filter.Or(merge(base, fwClause, componentClause("language", lang)))
			}
		}
	case CategoryLibrary:
		if len(req.Libraries) == 0 {
			return filter.Or(base)
		}
		for _, lib := range req.Libraries {
			libClause := componentClause("library", lib)
			switch {
			case len(req.Languages) > 0 && len(req.Frameworks) > 0:
				for _, lang := range req.Languages {
					for _, fw := range req.Frameworks {
						filter.Or(merge(base, libClause,
							componentClause("language", lang),
							componentClause("framework", fw)))
					}
				}
			case len(req.Languages) > 0:
				for _, lang := range req.Languages {
					filter.Or(merge(base, libClause, componentClause("language", lang)))
				}
			case len(req.Frameworks) > 0:
				for _, fw := range req.Frameworks {
					filter.Or(merge(base, libClause, componentClause("framework", fw)))
				}
			default:
				filter.Or(merge(base, libClause))
			}
		}
	}
	return filter
}

// componentClause builds the equality conditions for one component, e.g.
// {"language": "python", "language_version": "3.12"}. The version key is
// omitted when the component is not pinned.
func componentClause(key string, c TechComponent) vectordb.Clause {
	clause := vectordb.Clause{key: c.Name}
	if c.Version != "" {
		clause[key+"_version"] = c.Version
	}
	return clause
}

func merge(clauses ...vectordb.Clause) vectordb.Clause {
	out := vectordb.Clause{}
	for _, clause := range clauses {
		for k, v := range clause {
			out[k] = v
		}
	}
	return out
}
