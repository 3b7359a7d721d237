package review

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingDoc(id, title string) *LegalDocument {
	return &LegalDocument{
		ID:            id,
		Title:         title,
		LegalCategory: CategoryLaw,
		InsertionType: InsertionManual,
		Status:        StatusPending,
		Confidence:    100,
		Priority:      PriorityMedium,
		Comments:      []Comment{},
	}
}

func TestInsertAndGet(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, pendingDoc("d1", "Judicial Reform Law")))

	got, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "Judicial Reform Law", got.Title)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsertDuplicateIDConflicts(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, pendingDoc("d1", "first")))
	err := store.Insert(ctx, pendingDoc("d1", "second"))
	assert.ErrorIs(t, err, ErrConflict)

	// the original must be untouched
	got, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)
}

func TestListPreservesInsertionOrder(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Insert(ctx, pendingDoc(id, "doc "+id)))
	}

	docs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)
	assert.Equal(t, "c", docs[2].ID)
}

func TestReturnedDocumentsAreCopies(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	doc := pendingDoc("d1", "original")
	doc.ExtractedFields = map[string]any{"numero": "25-01"}
	require.NoError(t, store.Insert(ctx, doc))

	// mutating the ingested value or a read result must not leak into the store
	doc.Title = "mutated after insert"
	got, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "original", got.Title)

	got.Status = StatusApproved
	got.Comments = append(got.Comments, Comment{ID: "x", Author: "a", Content: "b", Type: CommentNote})
	got.ExtractedFields["numero"] = "overwritten"

	again, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, again.Status)
	assert.Empty(t, again.Comments)
	assert.Equal(t, "25-01", again.ExtractedFields["numero"])
}

func TestApplyCommitsOnlyOnSuccess(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Insert(ctx, pendingDoc("d1", "doc")))

	boom := errors.New("mutation failed")
	_, err := store.Apply(ctx, "d1", func(doc *LegalDocument) error {
		doc.Status = StatusApproved
		doc.Comments = append(doc.Comments, Comment{ID: "c1"})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)
	assert.Empty(t, got.Comments)

	_, err = store.Apply(ctx, "missing", func(doc *LegalDocument) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplySerializesPerDocument(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Insert(ctx, pendingDoc("d1", "contested")))

	// Many concurrent approvals: exactly one may observe pending and win.
	var wg sync.WaitGroup
	wins := make(chan struct{}, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Apply(ctx, "d1", func(doc *LegalDocument) error {
				next, err := Next(doc.Status, OpApprove)
				if err != nil {
					return err
				}
				doc.Status = next
				return nil
			})
			if err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	assert.Equal(t, 1, count, "only one concurrent approval may succeed")

	got, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, got.Status)
}

func TestConcurrentReadsDoNotBlockDistinctWrites(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Insert(ctx, pendingDoc("d1", "one")))
	require.NoError(t, store.Insert(ctx, pendingDoc("d2", "two")))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := "d1"
			if i%2 == 0 {
				id = "d2"
			}
			_, _ = store.Apply(ctx, id, func(doc *LegalDocument) error {
				doc.Priority = PriorityHigh
				return nil
			})
			_, _ = store.List(ctx)
			_, _ = store.Get(ctx, id)
		}(i)
	}
	wg.Wait()

	for _, id := range []string{"d1", "d2"} {
		got, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, PriorityHigh, got.Priority)
	}
}
