package discipline

import "github.com/volatiletech/null/v8"

// Discipline is a course record as returned by the API; the assigned
// professor comes back expanded.
type Discipline struct {
	ID       int        `json:"id"`
	Name     string     `json:"nome"`
	Code     string     `json:"codigo"`
	Workload int        `json:"cargaHoraria"`
	Teacher  *TeacherRef `json:"professor,omitempty"`
}

type TeacherRef struct {
	ID    int    `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
}

// NewDiscipline contains information needed to create or update a
// Discipline; the professor assignment is optional.
type NewDiscipline struct {
	Name      string   `json:"nome" validate:"required"`
	Code      string   `json:"codigo" validate:"required"`
	Workload  int      `json:"cargaHoraria,omitempty"`
	TeacherID null.Int `json:"professorId,omitempty"`
}

const DefaultSort = "nome,asc"
