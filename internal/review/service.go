package review

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service is the reviewer-facing facade over a Store. Every mutation routes
// through Store.Apply so per-document atomicity holds regardless of backend.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Ingest registers a fully-formed document produced by manual entry or the
// OCR pipeline. An empty id gets a fresh UUID. Manual entries always carry
// full provenance trust (confidence 100). When no status is supplied the
// document starts pending, or under_review if already assigned.
func (s *Service) Ingest(ctx context.Context, doc *LegalDocument) (*LegalDocument, error) {
	if doc == nil {
		return nil, &InvalidInputError{Field: "document", Reason: "must not be nil"}
	}
	in := cloneDocument(doc)
	if strings.TrimSpace(in.Title) == "" {
		return nil, &InvalidInputError{Field: "title", Reason: "must not be empty"}
	}
	if !in.LegalCategory.Valid() {
		return nil, &InvalidInputError{Field: "legal_category", Reason: "unknown category " + string(in.LegalCategory)}
	}
	switch in.InsertionType {
	case InsertionManual:
		in.Confidence = 100
	case InsertionOCR:
		if in.Confidence < 0 || in.Confidence > 100 {
			return nil, &InvalidInputError{Field: "confidence", Reason: "must be within [0,100]"}
		}
	default:
		return nil, &InvalidInputError{Field: "insertion_type", Reason: "must be manual or ocr"}
	}
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.Status == "" {
		if in.AssignedTo != "" {
			in.Status = StatusUnderReview
		} else {
			in.Status = StatusPending
		}
	} else if !in.Status.Valid() {
		return nil, &InvalidInputError{Field: "status", Reason: "unknown status " + string(in.Status)}
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	} else if !in.Priority.Valid() {
		return nil, &InvalidInputError{Field: "priority", Reason: "unknown priority " + string(in.Priority)}
	}
	if in.SubmissionDate.IsZero() {
		in.SubmissionDate = s.now()
	}
	if in.Comments == nil {
		in.Comments = []Comment{}
	}
	if err := s.store.Insert(ctx, in); err != nil {
		return nil, err
	}
	log.Info().
		Str("document_id", in.ID).
		Str("insertion_type", string(in.InsertionType)).
		Str("status", string(in.Status)).
		Msg("Document ingested")
	return in, nil
}

func (s *Service) Get(ctx context.Context, id string) (*LegalDocument, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*LegalDocument, error) {
	return s.store.List(ctx)
}

// Filter applies criteria to the current registry contents.
func (s *Service) Filter(ctx context.Context, c Criteria) ([]*LegalDocument, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(docs, c), nil
}

// Statistics recomputes per-status counts from the current registry contents.
func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return Statistics{}, err
	}
	return Aggregate(docs), nil
}

// Approve moves the document to its terminal approved status. A non-empty
// note is recorded as an approval comment in the same atomic mutation.
func (s *Service) Approve(ctx context.Context, id, reviewer, note string) (*LegalDocument, error) {
	return s.transition(ctx, id, OpApprove, reviewer, note)
}

// Reject moves the document to its terminal rejected status. A non-empty
// note is recorded as a rejection comment in the same atomic mutation.
func (s *Service) Reject(ctx context.Context, id, reviewer, note string) (*LegalDocument, error) {
	return s.transition(ctx, id, OpReject, reviewer, note)
}

// RequestRevision sends an under_review document back for changes.
func (s *Service) RequestRevision(ctx context.Context, id, reviewer, note string) (*LegalDocument, error) {
	return s.transition(ctx, id, OpRequestRevision, reviewer, note)
}

// Resubmit returns a needs_revision document to the pending queue.
func (s *Service) Resubmit(ctx context.Context, id string) (*LegalDocument, error) {
	return s.transition(ctx, id, OpResubmit, "", "")
}

// Assign puts a pending document under review by the given reviewer.
func (s *Service) Assign(ctx context.Context, id, reviewer string) (*LegalDocument, error) {
	if strings.TrimSpace(reviewer) == "" {
		return nil, &InvalidInputError{Field: "reviewer", Reason: "must not be empty"}
	}
	doc, err := s.store.Apply(ctx, id, func(doc *LegalDocument) error {
		next, err := Next(doc.Status, OpAssign)
		if err != nil {
			return err
		}
		doc.Status = next
		doc.AssignedTo = reviewer
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("document_id", id).Str("reviewer", reviewer).Msg("Document assigned")
	return doc, nil
}

func (s *Service) transition(ctx context.Context, id string, op Operation, reviewer, note string) (*LegalDocument, error) {
	note = strings.TrimSpace(note)
	if note != "" && strings.TrimSpace(reviewer) == "" {
		return nil, &InvalidInputError{Field: "reviewer", Reason: "must not be empty when a note is supplied"}
	}
	doc, err := s.store.Apply(ctx, id, func(doc *LegalDocument) error {
		next, err := Next(doc.Status, op)
		if err != nil {
			return err
		}
		doc.Status = next
		if note != "" {
			if ct, ok := noteCommentType(op); ok {
				doc.Comments = append(doc.Comments, Comment{
					ID:        uuid.NewString(),
					Author:    reviewer,
					Content:   note,
					Timestamp: s.now(),
					Type:      ct,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("document_id", id).
		Str("operation", string(op)).
		Str("status", string(doc.Status)).
		Msg("Document transitioned")
	return doc, nil
}

// AddComment appends a comment to the document's thread. Content must be
// non-empty after trimming but is stored verbatim. The thread accepts
// comments in any lifecycle status, including terminal ones, so review
// history stays auditable after approval or rejection.
func (s *Service) AddComment(ctx context.Context, id, author, content string, ct CommentType) (*LegalDocument, error) {
	if strings.TrimSpace(author) == "" {
		return nil, &InvalidInputError{Field: "author", Reason: "must not be empty"}
	}
	if strings.TrimSpace(content) == "" {
		return nil, &InvalidInputError{Field: "content", Reason: "must not be empty"}
	}
	if ct == "" {
		ct = CommentNote
	}
	if !ct.Valid() {
		return nil, &InvalidInputError{Field: "type", Reason: "unknown comment type " + string(ct)}
	}
	return s.store.Apply(ctx, id, func(doc *LegalDocument) error {
		doc.Comments = append(doc.Comments, Comment{
			ID:        uuid.NewString(),
			Author:    author,
			Content:   content,
			Timestamp: s.now(),
			Type:      ct,
		})
		return nil
	})
}

// SetPriority updates the priority attribute. Priority sits outside the
// transition graph, so terminal documents may still be reprioritized.
func (s *Service) SetPriority(ctx context.Context, id string, p Priority) (*LegalDocument, error) {
	if !p.Valid() {
		return nil, &InvalidInputError{Field: "priority", Reason: "unknown priority " + string(p)}
	}
	return s.store.Apply(ctx, id, func(doc *LegalDocument) error {
		doc.Priority = p
		return nil
	})
}
