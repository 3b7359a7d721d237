package review

import (
	"context"
	"sync"
)

// Mutation operates on a private snapshot of one document. The store commits
// the snapshot only when the mutation returns nil; on error nothing changes.
type Mutation func(doc *LegalDocument) error

// Store is the document registry. Apply is atomic per document id: two
// concurrent mutations of the same id never both observe the same prior
// state. Documents returned by Get and List are copies.
type Store interface {
	Insert(ctx context.Context, doc *LegalDocument) error
	Get(ctx context.Context, id string) (*LegalDocument, error)
	List(ctx context.Context) ([]*LegalDocument, error)
	Apply(ctx context.Context, id string, fn Mutation) (*LegalDocument, error)
}

// InMemoryStore is a threadsafe in-memory registry. Enumeration order is
// insertion order.
type InMemoryStore struct {
	mu    sync.RWMutex
	byID  map[string]*LegalDocument
	order []string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byID: make(map[string]*LegalDocument)}
}

func (s *InMemoryStore) Insert(ctx context.Context, doc *LegalDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[doc.ID]; ok {
		return ErrConflict
	}
	s.byID[doc.ID] = cloneDocument(doc)
	s.order = append(s.order, doc.ID)
	return nil
}

func (s *InMemoryStore) Get(ctx context.Context, id string) (*LegalDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneDocument(doc), nil
}

func (s *InMemoryStore) List(ctx context.Context) ([]*LegalDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*LegalDocument, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneDocument(s.byID[id]))
	}
	return out, nil
}

// Apply runs fn against a snapshot of the document and commits the result.
// The write lock is held for the whole read-mutate-commit section, so a
// failed mutation leaves the registry untouched and concurrent mutations of
// one id are serialized. Mutations must not block on external I/O.
func (s *InMemoryStore) Apply(ctx context.Context, id string, fn Mutation) (*LegalDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	snapshot := cloneDocument(current)
	if err := fn(snapshot); err != nil {
		return nil, err
	}
	s.byID[id] = snapshot
	return cloneDocument(snapshot), nil
}
