package review

// Statistics is the dashboard summary: total always equals the sum of the
// five per-status counts.
type Statistics struct {
	Total         int `json:"total"`
	Pending       int `json:"pending"`
	UnderReview   int `json:"under_review"`
	Approved      int `json:"approved"`
	Rejected      int `json:"rejected"`
	NeedsRevision int `json:"needs_revision"`
}

// Aggregate computes per-status counts in a single pass.
func Aggregate(docs []*LegalDocument) Statistics {
	var stats Statistics
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		stats.Total++
		switch doc.Status {
		case StatusPending:
			stats.Pending++
		case StatusUnderReview:
			stats.UnderReview++
		case StatusApproved:
			stats.Approved++
		case StatusRejected:
			stats.Rejected++
		case StatusNeedsRevision:
			stats.NeedsRevision++
		}
	}
	return stats
}
