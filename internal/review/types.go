package review

import "time"

type Status string

const (
	StatusPending       Status = "pending"
	StatusUnderReview   Status = "under_review"
	StatusApproved      Status = "approved"
	StatusRejected      Status = "rejected"
	StatusNeedsRevision Status = "needs_revision"
)

// Terminal reports whether no further lifecycle transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected, StatusNeedsRevision:
		return true
	}
	return false
}

type LegalCategory string

const (
	CategoryLaw       LegalCategory = "law"
	CategoryDecree    LegalCategory = "decree"
	CategoryOrder     LegalCategory = "order"
	CategoryOrdinance LegalCategory = "ordinance"
	CategoryCode      LegalCategory = "code"
)

func (c LegalCategory) Valid() bool {
	switch c {
	case CategoryLaw, CategoryDecree, CategoryOrder, CategoryOrdinance, CategoryCode:
		return true
	}
	return false
}

type InsertionType string

const (
	InsertionManual InsertionType = "manual"
	InsertionOCR    InsertionType = "ocr"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type CommentType string

const (
	CommentNote            CommentType = "comment"
	CommentApproval        CommentType = "approval"
	CommentRejection       CommentType = "rejection"
	CommentRevisionRequest CommentType = "revision_request"
)

func (t CommentType) Valid() bool {
	switch t {
	case CommentNote, CommentApproval, CommentRejection, CommentRevisionRequest:
		return true
	}
	return false
}

// Comment is one entry in a document's thread. Entries are immutable once
// appended and the thread keeps arrival order.
type Comment struct {
	ID        string      `json:"id"`
	Author    string      `json:"author"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	Type      CommentType `json:"type"`
}

// LegalDocument is one reviewable unit. Provenance and classification fields
// are set at ingestion and never change; status is owned by the workflow
// transition table, and the thread is append-only.
type LegalDocument struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Type            string         `json:"type"`
	LegalCategory   LegalCategory  `json:"legal_category"`
	InsertionType   InsertionType  `json:"insertion_type"`
	SubmittedBy     string         `json:"submitted_by"`
	SubmissionDate  time.Time      `json:"submission_date"`
	Status          Status         `json:"status"`
	Confidence      float64        `json:"confidence"`
	Priority        Priority       `json:"priority"`
	AssignedTo      string         `json:"assigned_to,omitempty"`
	Comments        []Comment      `json:"comments"`
	ExtractedFields map[string]any `json:"extracted_fields,omitempty"`
}

func cloneDocument(d *LegalDocument) *LegalDocument {
	if d == nil {
		return nil
	}
	cp := *d
	if d.Comments != nil {
		cp.Comments = append([]Comment(nil), d.Comments...)
	}
	if d.ExtractedFields != nil {
		fields := make(map[string]any, len(d.ExtractedFields))
		for k, v := range d.ExtractedFields {
			fields[k] = v
		}
		cp.ExtractedFields = fields
	}
	return &cp
}
