package registration

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/sisacad/academico/core/discipline"
	"github.com/sisacad/academico/core/form"
	"github.com/sisacad/academico/core/student"
)

const rosterPageSize = 1000

func Fields() []form.Field {
	return []form.Field{
		{Name: "alunoId", Label: "Student", Type: form.Select},
		{Name: "disciplinaId", Label: "Discipline", Type: form.Select},
	}
}

func rules() form.Rules {
	return form.Rules{
		"alunoId":      {form.Required("Selection of a student is required")},
		"disciplinaId": {form.Required("Selection of a discipline is required")},
	}
}

// Form is the enrollment form: two required selects fed by live student
// and discipline rosters. Enrollments are create-only.
type Form struct {
	*form.State

	studentSvc    student.Service
	disciplineSvc discipline.Service

	mu          sync.Mutex
	students    []form.Option
	disciplines []form.Option
	loading     bool
}

var _ form.Renderer = (*Form)(nil)

func NewForm(svc Service, students student.Service, disciplines discipline.Service) *Form {
	f := &Form{studentSvc: students, disciplineSvc: disciplines}
	f.State = form.NewState(form.Config{
		Fields:  Fields(),
		Rules:   rules(),
		Initial: form.Values{"alunoId": "", "disciplinaId": ""},
		Submit: func(ctx context.Context, _ form.RecordID, values form.Values) error {
			studentID, err := strconv.Atoi(values.String("alunoId"))
			if err != nil {
				return err
			}
			disciplineID, err := strconv.Atoi(values.String("disciplinaId"))
			if err != nil {
				return err
			}
			_, err = svc.Create(ctx, NewRegistration{
				StudentID:    studentID,
				DisciplineID: disciplineID,
			})
			return err
		},
		SubmitLabel:    form.SubmitLabel{Idle: "Create registration", Submitting: "Creating..."},
		FailureMessage: "Error creating registration. Please try again.",
		ResetValues:    true,
	})
	return f
}

// LoadOptions fetches both rosters behind the select fields; the form
// cannot be submitted meaningfully until they are in.
func (f *Form) LoadOptions(ctx context.Context) error {
	f.mu.Lock()
	f.loading = true
	f.mu.Unlock()

	studentsPage, sErr := f.studentSvc.List(ctx, 0, rosterPageSize, "")
	disciplinesPage, dErr := f.disciplineSvc.List(ctx, 0, rosterPageSize, "")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if sErr != nil || dErr != nil {
		f.SetFormError("Failed to load required data")
		if sErr != nil {
			return sErr
		}
		return dErr
	}

	f.students = f.students[:0]
	for _, s := range studentsPage.Content {
		f.students = append(f.students, form.Option{
			Value: strconv.Itoa(s.ID),
			Label: fmt.Sprintf("%s - %s", s.Name, s.RegistrationNumber),
		})
	}
	f.disciplines = f.disciplines[:0]
	for _, d := range disciplinesPage.Content {
		f.disciplines = append(f.disciplines, form.Option{
			Value: strconv.Itoa(d.ID),
			Label: d.Name,
		})
	}
	return nil
}

func (f *Form) LoadingOptions() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

func (f *Form) RenderForm(w io.Writer, st *form.State) {
	f.mu.Lock()
	students := make([]form.Option, len(f.students))
	copy(students, f.students)
	disciplines := make([]form.Option, len(f.disciplines))
	copy(disciplines, f.disciplines)
	f.mu.Unlock()

	fields := Fields()
	for i := range fields {
		switch fields[i].Name {
		case "alunoId":
			fields[i].Options = students
		case "disciplinaId":
			fields[i].Options = disciplines
		}
	}
	form.RenderFields(w, fields, st.Values(), st.Errors(), st.IsSubmitting(), st.SubmitLabel())
}
