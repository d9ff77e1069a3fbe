package inmemdb

import (
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/sisacad/academico/core"
	"github.com/sisacad/academico/core/list"
	"github.com/sisacad/academico/core/registration"
)

// passingScore is the average below which an enrollment with both
// scores recorded fails.
const passingScore = 7.0

type registrationRow struct {
	ID           int
	StudentID    int
	DisciplineID int
	Score1       null.Float64
	Score2       null.Float64
	EnrolledAt   time.Time
}

// status derives from the recorded scores: pending until both are in,
// then approved or failed on the average.
func (row *registrationRow) status() string {
	if !row.Score1.Valid || !row.Score2.Valid {
		return registration.StatusPending
	}
	if (row.Score1.Float64+row.Score2.Float64)/2 >= passingScore {
		return registration.StatusApproved
	}
	return registration.StatusFailed
}

func (db *DB) expandRegistration(row *registrationRow) registration.Registration {
	r := registration.Registration{
		ID:         row.ID,
		Score1:     row.Score1,
		Score2:     row.Score2,
		Status:     row.status(),
		EnrolledAt: row.EnrolledAt,
	}
	if s, ok := db.students[row.StudentID]; ok {
		r.Student = registration.StudentRef{
			ID:                 s.ID,
			Name:               s.Name,
			Email:              s.Email,
			RegistrationNumber: s.RegistrationNumber,
		}
	}
	if d, ok := db.disciplines[row.DisciplineID]; ok {
		r.Discipline = registration.DisciplineRef{ID: d.ID, Name: d.Name, Workload: d.Workload}
	}
	return r
}

func (db *DB) CreateRegistration(nr registration.NewRegistration) (registration.Registration, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.students[nr.StudentID]; !ok {
		return registration.Registration{}, core.NewValidationError(nil, core.FieldError{Field: "alunoId", Error: "student not found"})
	}
	if _, ok := db.disciplines[nr.DisciplineID]; !ok {
		return registration.Registration{}, core.NewValidationError(nil, core.FieldError{Field: "disciplinaId", Error: "discipline not found"})
	}
	for _, row := range db.registrations {
		if row.StudentID == nr.StudentID && row.DisciplineID == nr.DisciplineID {
			return registration.Registration{}, core.NewValidationError(nil, core.FieldError{Field: "disciplinaId", Error: "student is already enrolled in this discipline"})
		}
	}

	row := &registrationRow{
		ID:           db.nextPK(),
		StudentID:    nr.StudentID,
		DisciplineID: nr.DisciplineID,
		EnrolledAt:   time.Now().UTC(),
	}
	db.registrations[row.ID] = row
	return db.expandRegistration(row), nil
}

func (db *DB) ListRegistrations(page, size int, sortField, direction string) list.Page[registration.Registration] {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows := make([]registration.Registration, 0, len(db.registrations))
	for _, row := range db.registrations {
		rows = append(rows, db.expandRegistration(row))
	}
	less := func(a, b registration.Registration) bool { return a.EnrolledAt.Before(b.EnrolledAt) }
	switch sortField {
	case "status":
		less = func(a, b registration.Registration) bool { return a.Status < b.Status }
	case "id":
		less = func(a, b registration.Registration) bool { return a.ID < b.ID }
	}
	sortRows(rows, less, direction == "desc")
	return paginate(rows, page, size)
}

func (db *DB) GetRegistration(id int) (registration.Registration, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	row, ok := db.registrations[id]
	if !ok {
		return registration.Registration{}, errors.Wrapf(ErrNotFound, "registration %d", id)
	}
	return db.expandRegistration(row), nil
}

func (db *DB) UpdateRegistrationNotes(id int, notes registration.Notes) (registration.Registration, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	row, ok := db.registrations[id]
	if !ok {
		return registration.Registration{}, errors.Wrapf(ErrNotFound, "registration %d", id)
	}
	if notes.Score1.Valid {
		row.Score1 = notes.Score1
	}
	if notes.Score2.Valid {
		row.Score2 = notes.Score2
	}
	return db.expandRegistration(row), nil
}

func (db *DB) DeleteRegistration(id int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.registrations[id]; !ok {
		return errors.Wrapf(ErrNotFound, "registration %d", id)
	}
	delete(db.registrations, id)
	return nil
}
