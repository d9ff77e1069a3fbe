// Package inmemdb is the in-memory storage behind the development API
// server: four mutex-guarded tables with the pagination and sorting the
// real API exposes.
package inmemdb

import (
	"sort"
	"sync"

	"github.com/sisacad/academico/core/list"
)

type DB struct {
	mu sync.RWMutex

	students      map[int]*studentRow
	teachers      map[int]*teacherRow
	disciplines   map[int]*disciplineRow
	registrations map[int]*registrationRow

	pkCount int
}

func Open() (*DB, error) {
	return &DB{
		students:      make(map[int]*studentRow),
		teachers:      make(map[int]*teacherRow),
		disciplines:   make(map[int]*disciplineRow),
		registrations: make(map[int]*registrationRow),
	}, nil
}

func (db *DB) nextPK() int {
	db.pkCount++
	return db.pkCount
}

// paginate slices rows into the API's page envelope. rows must already
// be sorted.
func paginate[T any](rows []T, page, size int) list.Page[T] {
	if size <= 0 {
		size = 10
	}
	if page < 0 {
		page = 0
	}
	total := len(rows)
	totalPages := (total + size - 1) / size

	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	content := make([]T, end-start)
	copy(content, rows[start:end])

	return list.Page[T]{
		Content:       content,
		Pageable:      list.Pageable{PageNumber: page, PageSize: size},
		TotalElements: total,
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          totalPages == 0 || page >= totalPages-1,
		Empty:         len(content) == 0,
	}
}

func sortRows[T any](rows []T, less func(a, b T) bool, descending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		if descending {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}
