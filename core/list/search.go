package list

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/sisacad/academico/core"
)

// GetFunc fetches a single record by id; it rejects with a not-found
// *core.APIError when no record exists.
type GetFunc[T any] func(ctx context.Context, id int) (T, error)

// Search owns the search-by-id state for one entity. A not-found result
// is kept distinct from a transport error so the UI can say "no record
// with that id" rather than "something went wrong".
type Search[T any] struct {
	mu  sync.Mutex
	get GetFunc[T]

	record   *T
	loading  bool
	err      string
	notFound bool
	searched bool
}

func NewSearch[T any](get GetFunc[T]) *Search[T] {
	return &Search[T]{get: get}
}

// SearchByID looks up one record, clearing any prior result or error
// first and marking that a search was attempted.
func (s *Search[T]) SearchByID(ctx context.Context, id int) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.record = nil
	s.err = ""
	s.notFound = false
	s.searched = true
	s.mu.Unlock()

	rec, err := s.get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		var apiErr *core.APIError
		if errors.As(err, &apiErr) && apiErr.NotFound() {
			s.notFound = true
		}
		s.err = core.ErrorMessage(err, "failed to fetch record")
		return
	}
	s.record = &rec
}

// Clear resets record, error and the searched flag together.
func (s *Search[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = nil
	s.err = ""
	s.notFound = false
	s.searched = false
}

// ClearError dismisses the error banner without losing the fact that a
// search was attempted.
func (s *Search[T]) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
	s.notFound = false
}

func (s *Search[T]) Record() *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}

func (s *Search[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Search[T]) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Search[T]) NotFound() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notFound
}

func (s *Search[T]) Searched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searched
}
