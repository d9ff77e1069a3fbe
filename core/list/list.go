package list

import (
	"context"
	"sync"

	"github.com/sisacad/academico/core"
)

type (
	// LoadFunc fetches one page from the entity's remote service.
	LoadFunc[T any] func(ctx context.Context, page, size int, sort string) (Page[T], error)

	// DeleteFunc deletes one record remotely.
	DeleteFunc func(ctx context.Context, id int) error
)

// List owns the paginated listing and delete state for one entity. Each
// instance owns its state exclusively; there is no shared entity cache.
type List[T any] struct {
	mu       sync.Mutex
	load     LoadFunc[T]
	del      DeleteFunc
	pageSize int

	items         []T
	currentPage   int
	totalPages    int
	totalElements int
	loading       bool
	err           string
}

func New[T any](load LoadFunc[T], del DeleteFunc, pageSize int) *List[T] {
	return &List[T]{load: load, del: del, pageSize: pageSize}
}

// Load fetches one page, replacing items and pagination counters. A
// failed load sets the error banner but preserves the previously loaded
// items, so a transient blip never flashes an empty list.
func (l *List[T]) Load(ctx context.Context, page int, sort string) error {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return nil
	}
	l.loading = true
	l.err = ""
	size := l.pageSize
	l.mu.Unlock()

	res, err := l.load(ctx, page, size, sort)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	if err != nil {
		l.err = core.ErrorMessage(err, "failed to load records")
		return err
	}
	l.items = res.Content
	l.currentPage = res.Pageable.PageNumber
	l.totalPages = res.TotalPages
	l.totalElements = res.TotalElements
	return nil
}

// DeleteByID deletes the record then reloads the current page. Deleting
// the last item of the last page can legitimately shrink totalPages;
// callers re-read CurrentPage/TotalPages afterwards.
func (l *List[T]) DeleteByID(ctx context.Context, id int) bool {
	if err := l.del(ctx, id); err != nil {
		l.mu.Lock()
		l.err = core.ErrorMessage(err, "failed to delete record")
		l.mu.Unlock()
		return false
	}
	_ = l.Load(ctx, l.CurrentPage(), "")
	return true
}

// ChangePage loads page n; a no-op outside [0, totalPages).
func (l *List[T]) ChangePage(ctx context.Context, n int) {
	l.mu.Lock()
	total := l.totalPages
	l.mu.Unlock()
	if n < 0 || n >= total {
		return
	}
	_ = l.Load(ctx, n, "")
}

// Refresh reloads the current page.
func (l *List[T]) Refresh(ctx context.Context) {
	_ = l.Load(ctx, l.CurrentPage(), "")
}

func (l *List[T]) ClearError() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = ""
}

// Items returns the last successfully loaded page content.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List[T]) CurrentPage() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.currentPage
}

func (l *List[T]) TotalPages() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalPages
}

func (l *List[T]) TotalElements() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalElements
}

func (l *List[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

func (l *List[T]) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}
