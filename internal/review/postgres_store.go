package review

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
)

// PostgresStore keeps each document in one row, with the comment thread and
// extracted fields as JSONB so a document commits atomically.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore { return &PostgresStore{db: db} }

const schema = `
CREATE TABLE IF NOT EXISTS legal_documents (
    id               TEXT PRIMARY KEY,
    title            TEXT NOT NULL,
    doc_type         TEXT NOT NULL DEFAULT '',
    legal_category   TEXT NOT NULL,
    insertion_type   TEXT NOT NULL,
    submitted_by     TEXT NOT NULL DEFAULT '',
    submission_date  TIMESTAMPTZ NOT NULL,
    status           TEXT NOT NULL,
    confidence       DOUBLE PRECISION NOT NULL DEFAULT 100,
    priority         TEXT NOT NULL DEFAULT 'medium',
    assigned_to      TEXT,
    comments         JSONB NOT NULL DEFAULT '[]',
    extracted_fields JSONB,
    position         BIGSERIAL
)`

// EnsureSchema creates the documents table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

const docColumns = `id, title, doc_type, legal_category, insertion_type, submitted_by,
    submission_date, status, confidence, priority, coalesce(assigned_to,''), comments, extracted_fields`

func (s *PostgresStore) Insert(ctx context.Context, doc *LegalDocument) error {
	commentsJSON, fieldsJSON, err := encodeDocJSON(doc)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO legal_documents (id, title, doc_type, legal_category, insertion_type, submitted_by, submission_date, status, confidence, priority, assigned_to, comments, extracted_fields)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
    `, doc.ID, doc.Title, doc.Type, string(doc.LegalCategory), string(doc.InsertionType), doc.SubmittedBy,
		doc.SubmissionDate, string(doc.Status), doc.Confidence, string(doc.Priority), nullIfEmpty(doc.AssignedTo), commentsJSON, fieldsJSON)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return ErrConflict
	}
	return err
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*LegalDocument, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+docColumns+` FROM legal_documents WHERE id=$1`, id)
	return scanDocument(row)
}

func (s *PostgresStore) List(ctx context.Context) ([]*LegalDocument, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+docColumns+` FROM legal_documents ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	// Always return a non-nil slice so JSON encodes as [] instead of null
	out := make([]*LegalDocument, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Apply locks the row for the duration of the transaction, runs fn against
// the scanned snapshot, and writes the result back. A failed mutation rolls
// the transaction back with the row untouched.
func (s *PostgresStore) Apply(ctx context.Context, id string, fn Mutation) (*LegalDocument, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+docColumns+` FROM legal_documents WHERE id=$1 FOR UPDATE`, id)
	doc, err := scanDocument(row)
	if err != nil {
		return nil, err
	}
	if err := fn(doc); err != nil {
		return nil, err
	}

	commentsJSON, fieldsJSON, err := encodeDocJSON(doc)
	if err != nil {
		return nil, err
	}
	_, err = tx.ExecContext(ctx, `
        UPDATE legal_documents
        SET status=$1, priority=$2, assigned_to=$3, comments=$4, extracted_fields=$5
        WHERE id=$6
    `, string(doc.Status), string(doc.Priority), nullIfEmpty(doc.AssignedTo), commentsJSON, fieldsJSON, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return doc, nil
}

func encodeDocJSON(doc *LegalDocument) (comments, fields []byte, err error) {
	thread := doc.Comments
	if thread == nil {
		thread = []Comment{}
	}
	comments, err = json.Marshal(thread)
	if err != nil {
		return nil, nil, err
	}
	if doc.ExtractedFields != nil {
		fields, err = json.Marshal(doc.ExtractedFields)
		if err != nil {
			return nil, nil, err
		}
	}
	return comments, fields, nil
}

func scanDocument(scanner interface{ Scan(dest ...any) error }) (*LegalDocument, error) {
	var (
		doc                               LegalDocument
		category, insertion, status, prio string
		submissionDate                    time.Time
		commentsJSON                      []byte
		fieldsJSON                        sql.NullString
	)
	err := scanner.Scan(&doc.ID, &doc.Title, &doc.Type, &category, &insertion, &doc.SubmittedBy,
		&submissionDate, &status, &doc.Confidence, &prio, &doc.AssignedTo, &commentsJSON, &fieldsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	doc.LegalCategory = LegalCategory(category)
	doc.InsertionType = InsertionType(insertion)
	doc.Status = Status(status)
	doc.Priority = Priority(prio)
	doc.SubmissionDate = submissionDate
	doc.Comments = []Comment{}
	if len(commentsJSON) > 0 {
		if err := json.Unmarshal(commentsJSON, &doc.Comments); err != nil {
			return nil, err
		}
	}
	if fieldsJSON.Valid && fieldsJSON.String != "" {
		if err := json.Unmarshal([]byte(fieldsJSON.String), &doc.ExtractedFields); err != nil {
			return nil, err
		}
	}
	return &doc, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
