package inmemdb

import (
	"github.com/pkg/errors"

	"github.com/sisacad/academico/core"
	"github.com/sisacad/academico/core/discipline"
	"github.com/sisacad/academico/core/list"
)

type disciplineRow struct {
	ID        int
	Name      string
	Code      string
	Workload  int
	TeacherID int // 0 when unassigned
}

func (db *DB) expandDiscipline(row *disciplineRow) discipline.Discipline {
	d := discipline.Discipline{
		ID:       row.ID,
		Name:     row.Name,
		Code:     row.Code,
		Workload: row.Workload,
	}
	if t, ok := db.teachers[row.TeacherID]; ok {
		d.Teacher = &discipline.TeacherRef{ID: t.ID, Name: t.Name, Email: t.Email}
	}
	return d
}

func (db *DB) CreateDiscipline(nd discipline.NewDiscipline) (discipline.Discipline, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, row := range db.disciplines {
		if row.Code == nd.Code {
			return discipline.Discipline{}, core.NewValidationError(nil, core.FieldError{Field: "codigo", Error: "a discipline with this code already exists"})
		}
	}
	if nd.TeacherID.Valid {
		if _, ok := db.teachers[int(nd.TeacherID.Int)]; !ok {
			return discipline.Discipline{}, core.NewValidationError(nil, core.FieldError{Field: "professorId", Error: "professor not found"})
		}
	}

	row := &disciplineRow{
		ID:        db.nextPK(),
		Name:      nd.Name,
		Code:      nd.Code,
		Workload:  nd.Workload,
		TeacherID: int(nd.TeacherID.Int),
	}
	db.disciplines[row.ID] = row
	return db.expandDiscipline(row), nil
}

func (db *DB) ListDisciplines(page, size int, sortField, direction string) list.Page[discipline.Discipline] {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows := make([]discipline.Discipline, 0, len(db.disciplines))
	for _, row := range db.disciplines {
		rows = append(rows, db.expandDiscipline(row))
	}
	less := func(a, b discipline.Discipline) bool { return a.Name < b.Name }
	switch sortField {
	case "codigo":
		less = func(a, b discipline.Discipline) bool { return a.Code < b.Code }
	case "cargaHoraria":
		less = func(a, b discipline.Discipline) bool { return a.Workload < b.Workload }
	case "id":
		less = func(a, b discipline.Discipline) bool { return a.ID < b.ID }
	}
	sortRows(rows, less, direction == "desc")
	return paginate(rows, page, size)
}

func (db *DB) GetDiscipline(id int) (discipline.Discipline, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	row, ok := db.disciplines[id]
	if !ok {
		return discipline.Discipline{}, errors.Wrapf(ErrNotFound, "discipline %d", id)
	}
	return db.expandDiscipline(row), nil
}

func (db *DB) UpdateDiscipline(id int, nd discipline.NewDiscipline) (discipline.Discipline, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	row, ok := db.disciplines[id]
	if !ok {
		return discipline.Discipline{}, errors.Wrapf(ErrNotFound, "discipline %d", id)
	}
	for _, other := range db.disciplines {
		if other.ID != id && other.Code == nd.Code {
			return discipline.Discipline{}, core.NewValidationError(nil, core.FieldError{Field: "codigo", Error: "a discipline with this code already exists"})
		}
	}
	if nd.TeacherID.Valid {
		if _, ok := db.teachers[int(nd.TeacherID.Int)]; !ok {
			return discipline.Discipline{}, core.NewValidationError(nil, core.FieldError{Field: "professorId", Error: "professor not found"})
		}
	}

	row.Name = nd.Name
	row.Code = nd.Code
	row.Workload = nd.Workload
	row.TeacherID = int(nd.TeacherID.Int)
	return db.expandDiscipline(row), nil
}

func (db *DB) DeleteDiscipline(id int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.disciplines[id]; !ok {
		return errors.Wrapf(ErrNotFound, "discipline %d", id)
	}
	for rid, reg := range db.registrations {
		if reg.DisciplineID == id {
			delete(db.registrations, rid)
		}
	}
	delete(db.disciplines, id)
	return nil
}
