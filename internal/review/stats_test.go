package review

import "testing"

func TestAggregateCounts(t *testing.T) {
	docs := []*LegalDocument{
		{ID: "1", Status: StatusPending},
		{ID: "2", Status: StatusPending},
		{ID: "3", Status: StatusUnderReview},
		{ID: "4", Status: StatusApproved},
		{ID: "5", Status: StatusRejected},
	}

	stats := Aggregate(docs)
	if stats.Total != 5 {
		t.Fatalf("total: got %d, want 5", stats.Total)
	}
	if stats.Pending != 2 || stats.UnderReview != 1 || stats.Approved != 1 || stats.Rejected != 1 || stats.NeedsRevision != 0 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
}

func TestAggregateTotalEqualsSum(t *testing.T) {
	sets := [][]*LegalDocument{
		nil,
		{},
		{{Status: StatusNeedsRevision}},
		{
			{Status: StatusPending}, {Status: StatusApproved}, {Status: StatusApproved},
			{Status: StatusRejected}, {Status: StatusUnderReview}, {Status: StatusNeedsRevision},
		},
	}
	for i, docs := range sets {
		stats := Aggregate(docs)
		sum := stats.Pending + stats.UnderReview + stats.Approved + stats.Rejected + stats.NeedsRevision
		if stats.Total != sum {
			t.Fatalf("set %d: total %d != sum of per-status counts %d", i, stats.Total, sum)
		}
	}
}
