package inmemdb

import (
	"github.com/pkg/errors"

	"github.com/sisacad/academico/core"
	"github.com/sisacad/academico/core/list"
	"github.com/sisacad/academico/core/student"
)

var ErrNotFound = errors.New("resource not found")

type studentRow struct {
	student.Student
	PasswordHash []byte
}

func (db *DB) CreateStudent(ns student.NewStudent, hash []byte) (student.Student, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, row := range db.students {
		if row.Email == ns.Email {
			return student.Student{}, core.NewValidationError(nil, core.FieldError{Field: "email", Error: "a student with this email already exists"})
		}
		if row.RegistrationNumber == ns.RegistrationNumber {
			return student.Student{}, core.NewValidationError(nil, core.FieldError{Field: "registrationNumber", Error: "a student with this registration number already exists"})
		}
	}

	row := &studentRow{
		Student: student.Student{
			ID:                 db.nextPK(),
			Name:               ns.Name,
			Email:              ns.Email,
			RegistrationNumber: ns.RegistrationNumber,
		},
		PasswordHash: hash,
	}
	db.students[row.ID] = row
	return row.Student, nil
}

func (db *DB) ListStudents(page, size int, sortField, direction string) list.Page[student.Student] {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows := make([]student.Student, 0, len(db.students))
	for _, row := range db.students {
		rows = append(rows, row.Student)
	}
	less := func(a, b student.Student) bool { return a.Name < b.Name }
	switch sortField {
	case "email":
		less = func(a, b student.Student) bool { return a.Email < b.Email }
	case "registrationNumber":
		less = func(a, b student.Student) bool { return a.RegistrationNumber < b.RegistrationNumber }
	case "id":
		less = func(a, b student.Student) bool { return a.ID < b.ID }
	}
	sortRows(rows, less, direction == "desc")
	return paginate(rows, page, size)
}

func (db *DB) GetStudent(id int) (student.Student, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	row, ok := db.students[id]
	if !ok {
		return student.Student{}, errors.Wrapf(ErrNotFound, "student %d", id)
	}
	return row.Student, nil
}

func (db *DB) GetStudentByEmail(email string) (student.Student, []byte, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, row := range db.students {
		if row.Email == email {
			return row.Student, row.PasswordHash, nil
		}
	}
	return student.Student{}, nil, errors.Wrapf(ErrNotFound, "student %s", email)
}

func (db *DB) UpdateStudent(id int, ns student.NewStudent, hash []byte) (student.Student, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	row, ok := db.students[id]
	if !ok {
		return student.Student{}, errors.Wrapf(ErrNotFound, "student %d", id)
	}
	for _, other := range db.students {
		if other.ID == id {
			continue
		}
		if other.Email == ns.Email {
			return student.Student{}, core.NewValidationError(nil, core.FieldError{Field: "email", Error: "a student with this email already exists"})
		}
		if other.RegistrationNumber == ns.RegistrationNumber {
			return student.Student{}, core.NewValidationError(nil, core.FieldError{Field: "registrationNumber", Error: "a student with this registration number already exists"})
		}
	}

	row.Name = ns.Name
	row.Email = ns.Email
	row.RegistrationNumber = ns.RegistrationNumber
	if len(hash) > 0 {
		row.PasswordHash = hash
	}
	return row.Student, nil
}

func (db *DB) DeleteStudent(id int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.students[id]; !ok {
		return errors.Wrapf(ErrNotFound, "student %d", id)
	}
	for rid, reg := range db.registrations {
		if reg.StudentID == id {
			delete(db.registrations, rid)
		}
	}
	delete(db.students, id)
	return nil
}
