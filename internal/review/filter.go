package review

import "strings"

// FilterAll is the wildcard criteria value that matches every document.
const FilterAll = "all"

// Criteria is one dashboard query: a conjunction of four predicates.
// Empty values behave like FilterAll.
type Criteria struct {
	Status        string `json:"status" query:"status"`
	LegalCategory string `json:"legal_category" query:"legal_category"`
	InsertionType string `json:"insertion_type" query:"insertion_type"`
	SearchTerm    string `json:"search_term" query:"search"`
}

// Matches reports whether the document satisfies every predicate in c.
// The title search is a case-insensitive substring match.
func (c Criteria) Matches(doc *LegalDocument) bool {
	if !matchesExact(c.Status, string(doc.Status)) {
		return false
	}
	if !matchesExact(c.LegalCategory, string(doc.LegalCategory)) {
		return false
	}
	if !matchesExact(c.InsertionType, string(doc.InsertionType)) {
		return false
	}
	if c.SearchTerm != "" && !strings.Contains(strings.ToLower(doc.Title), strings.ToLower(c.SearchTerm)) {
		return false
	}
	return true
}

func matchesExact(want, got string) bool {
	return want == "" || want == FilterAll || want == got
}

// Filter returns the documents matching c, preserving input order. It never
// mutates its input and is idempotent for identical criteria.
func Filter(docs []*LegalDocument, c Criteria) []*LegalDocument {
	out := make([]*LegalDocument, 0, len(docs))
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if c.Matches(doc) {
			out = append(out, doc)
		}
	}
	return out
}
