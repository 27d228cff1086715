package vectordb

// Clause is a conjunction of exact-match conditions over flat string
// metadata: every key must be present with exactly the given value.
type Clause map[string]string

// Matches reports whether meta satisfies every condition in the clause.
func (c Clause) Matches(meta map[string]string) bool {
	for k, v := range c {
		if meta[k] != v {
			return false
		}
	}
	return true
}

// Filter is a disjunction of clauses: a record matches when any single
// clause matches its metadata. A nil or empty filter matches everything.
type Filter struct {
	Clauses []Clause
}

// Or appends a clause to the disjunction. Empty clauses are dropped.
func (f *Filter) Or(c Clause) *Filter {
	if len(c) > 0 {
		f.Clauses = append(f.Clauses, c)
	}
	return f
}

// IsEmpty reports whether the filter imposes no restriction.
func (f *Filter) IsEmpty() bool {
	return f == nil || len(f.Clauses) == 0
}

// Matches reports whether meta satisfies the filter.
func (f *Filter) Matches(meta map[string]string) bool {
	if f.IsEmpty() {
		return true
	}
	for _, c := range f.Clauses {
		if c.Matches(meta) {
			return true
		}
	}
	return false
}
