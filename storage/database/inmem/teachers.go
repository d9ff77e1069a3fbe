package inmemdb

import (
	"github.com/pkg/errors"

	"github.com/sisacad/academico/core"
	"github.com/sisacad/academico/core/list"
	"github.com/sisacad/academico/core/teacher"
)

type teacherRow struct {
	teacher.Teacher
	PasswordHash []byte
}

func (db *DB) CreateTeacher(nt teacher.NewTeacher, hash []byte) (teacher.Teacher, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, row := range db.teachers {
		if row.Email == nt.Email {
			return teacher.Teacher{}, core.NewValidationError(nil, core.FieldError{Field: "email", Error: "a teacher with this email already exists"})
		}
	}

	row := &teacherRow{
		Teacher: teacher.Teacher{
			ID:    db.nextPK(),
			Name:  nt.Name,
			Email: nt.Email,
		},
		PasswordHash: hash,
	}
	db.teachers[row.ID] = row
	return row.Teacher, nil
}

func (db *DB) ListTeachers(page, size int, sortField, direction string) list.Page[teacher.Teacher] {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows := make([]teacher.Teacher, 0, len(db.teachers))
	for _, row := range db.teachers {
		rows = append(rows, row.Teacher)
	}
	less := func(a, b teacher.Teacher) bool { return a.Name < b.Name }
	switch sortField {
	case "email":
		less = func(a, b teacher.Teacher) bool { return a.Email < b.Email }
	case "id":
		less = func(a, b teacher.Teacher) bool { return a.ID < b.ID }
	}
	sortRows(rows, less, direction == "desc")
	return paginate(rows, page, size)
}

func (db *DB) GetTeacher(id int) (teacher.Teacher, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	row, ok := db.teachers[id]
	if !ok {
		return teacher.Teacher{}, errors.Wrapf(ErrNotFound, "teacher %d", id)
	}
	return row.Teacher, nil
}

func (db *DB) GetTeacherByEmail(email string) (teacher.Teacher, []byte, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, row := range db.teachers {
		if row.Email == email {
			return row.Teacher, row.PasswordHash, nil
		}
	}
	return teacher.Teacher{}, nil, errors.Wrapf(ErrNotFound, "teacher %s", email)
}

func (db *DB) UpdateTeacher(id int, nt teacher.NewTeacher, hash []byte) (teacher.Teacher, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	row, ok := db.teachers[id]
	if !ok {
		return teacher.Teacher{}, errors.Wrapf(ErrNotFound, "teacher %d", id)
	}
	for _, other := range db.teachers {
		if other.ID != id && other.Email == nt.Email {
			return teacher.Teacher{}, core.NewValidationError(nil, core.FieldError{Field: "email", Error: "a teacher with this email already exists"})
		}
	}

	row.Name = nt.Name
	row.Email = nt.Email
	if len(hash) > 0 {
		row.PasswordHash = hash
	}
	return row.Teacher, nil
}

func (db *DB) DeleteTeacher(id int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.teachers[id]; !ok {
		return errors.Wrapf(ErrNotFound, "teacher %d", id)
	}
	for _, disc := range db.disciplines {
		if disc.TeacherID == id {
			disc.TeacherID = 0
		}
	}
	delete(db.teachers, id)
	return nil
}
