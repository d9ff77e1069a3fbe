package discipline

import (
	"context"
	"io"
	"strconv"
	"sync"

	"github.com/volatiletech/null/v8"

	"github.com/sisacad/academico/core"
	"github.com/sisacad/academico/core/form"
	"github.com/sisacad/academico/core/teacher"
)

// rosterPageSize is large enough to fetch the whole roster in one page.
const rosterPageSize = 1000

func Fields() []form.Field {
	return []form.Field{
		{Name: "nome", Label: "Name", Type: form.Text},
		{Name: "codigo", Label: "Code", Type: form.Text},
		{Name: "cargaHoraria", Label: "Workload", Type: form.Number, Help: "hours"},
		{Name: "professorId", Label: "Professor", Type: form.Select},
	}
}

func rules() form.Rules {
	return form.Rules{
		"nome":   {form.Required("Name is required")},
		"codigo": {form.Required("Code is required")},
	}
}

// Form is the discipline form: the generic state machine plus a live
// professor roster feeding the select field's options.
type Form struct {
	*form.State

	teacherSvc teacher.Service

	mu       sync.Mutex
	teachers []form.Option
	loading  bool
}

var _ form.Renderer = (*Form)(nil)

func NewForm(svc Service, teachers teacher.Service) *Form {
	f := &Form{teacherSvc: teachers}
	f.State = form.NewState(form.Config{
		Fields:  Fields(),
		Rules:   rules(),
		Initial: form.Values{"nome": "", "codigo": "", "cargaHoraria": "", "professorId": ""},
		Submit: func(ctx context.Context, target form.RecordID, values form.Values) error {
			data := NewDiscipline{
				Name: core.CleanString(values.String("nome")),
				Code: core.CleanString(values.String("codigo")),
			}
			if n, ok := values["cargaHoraria"].(float64); ok {
				data.Workload = int(n)
			}
			if raw := values.String("professorId"); raw != "" {
				id, err := strconv.Atoi(raw)
				if err != nil {
					return core.NewValidationError(nil,
						core.FieldError{Field: "professorId", Error: "Invalid professor selection"})
				}
				data.TeacherID = null.IntFrom(id)
			}
			if id, ok := target.Existing(); ok {
				_, err := svc.Update(ctx, id, data)
				return err
			}
			_, err := svc.Create(ctx, data)
			return err
		},
		SubmitLabel:    form.SubmitLabel{Idle: "Create discipline", Submitting: "Creating..."},
		FailureMessage: "Error saving discipline. Please try again.",
		ResetValues:    true,
	})
	return f
}

// LoadOptions fetches the professor roster behind the select field. A
// failure lands in the whole-form error; the form stays usable without
// an assignment.
func (f *Form) LoadOptions(ctx context.Context) error {
	f.mu.Lock()
	f.loading = true
	f.mu.Unlock()

	page, err := f.teacherSvc.List(ctx, 0, rosterPageSize, "")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if err != nil {
		f.SetFormError("Failed to load required data")
		return err
	}
	f.teachers = f.teachers[:0]
	for _, t := range page.Content {
		f.teachers = append(f.teachers, form.Option{
			Value: strconv.Itoa(t.ID),
			Label: t.Name,
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
	opts := make([]form.Option, len(f.teachers))
	copy(opts, f.teachers)
	f.mu.Unlock()

	fields := Fields()
	for i := range fields {
		if fields[i].Name == "professorId" {
			fields[i].Options = opts
		}
	}
	form.RenderFields(w, fields, st.Values(), st.Errors(), st.IsSubmitting(), st.SubmitLabel())
}

// EditValues converts an existing record into form values.
func EditValues(d Discipline) form.Values {
	v := form.Values{
		"nome":         d.Name,
		"codigo":       d.Code,
		"cargaHoraria": float64(d.Workload),
		"professorId":  "",
	}
	if d.Teacher != nil {
		v["professorId"] = strconv.Itoa(d.Teacher.ID)
	}
	return v
}
