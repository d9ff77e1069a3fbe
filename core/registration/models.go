package registration

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Statuses derived by the API from the recorded scores.
const (
	StatusApproved = "APROVADA"
	StatusFailed   = "REPROVADA"
	StatusPending  = "PENDENTE"
)

// Registration is an enrollment record as returned by the API, with the
// student and discipline references expanded.
type Registration struct {
	ID         int           `json:"id"`
	Student    StudentRef    `json:"aluno"`
	Discipline DisciplineRef `json:"disciplina"`
	Score1     null.Float64  `json:"nota1,omitempty"`
	Score2     null.Float64  `json:"nota2,omitempty"`
	Status     string        `json:"status"`
	EnrolledAt time.Time     `json:"dataMatricula"`
}

type StudentRef struct {
	ID                 int    `json:"id"`
	Name               string `json:"nome"`
	Email              string `json:"email"`
	RegistrationNumber string `json:"matricula"`
}

type DisciplineRef struct {
	ID       int    `json:"id"`
	Name     string `json:"nome"`
	Workload int    `json:"cargaHoraria"`
}

// NewRegistration contains the two foreign references needed to enroll
// a student in a discipline.
type NewRegistration struct {
	StudentID    int `json:"alunoId" validate:"required"`
	DisciplineID int `json:"disciplinaId" validate:"required"`
}

// Notes carries the optional score updates for PUT /matriculas/{id}/notas.
type Notes struct {
	Score1 null.Float64 `json:"nota1,omitempty"`
	Score2 null.Float64 `json:"nota2,omitempty"`
}

// Registrations list newest first by default.
const DefaultSort = "dataMatricula,desc"
