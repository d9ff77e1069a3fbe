package teacher

import (
	"context"
	"io"

	"github.com/sisacad/academico/core"
	"github.com/sisacad/academico/core/form"
)

func Fields() []form.Field {
	return []form.Field{
		{Name: "nome", Label: "Name", Type: form.Text},
		{Name: "email", Label: "Email", Type: form.Email},
		{Name: "senha", Label: "Password", Type: form.Password},
	}
}

func rules() form.Rules {
	return form.Rules{
		"nome": {form.Required("Name is required")},
		"email": {
			form.Required("Email is required"),
			form.Pattern(form.EmailRegex, "Invalid email format"),
		},
		"senha": {
			form.Required("Password is required"),
			form.MinLength(3, "Password must be at least 3 characters"),
		},
	}
}

func NewForm(svc Service) *form.State {
	return form.NewState(form.Config{
		Fields:  Fields(),
		Rules:   rules(),
		Initial: form.Values{"nome": "", "email": "", "senha": ""},
		Submit: func(ctx context.Context, target form.RecordID, values form.Values) error {
			data := NewTeacher{
				Name:     core.CleanString(values.String("nome")),
				Email:    core.CleanString(values.String("email"), true /* lower */),
				Password: values.String("senha"),
			}
			if id, ok := target.Existing(); ok {
				_, err := svc.Update(ctx, id, data)
				return err
			}
			_, err := svc.Create(ctx, data)
			return err
		},
		SubmitLabel:    form.SubmitLabel{Idle: "Create teacher", Submitting: "Creating..."},
		FailureMessage: "Error saving teacher. Please try again.",
		ResetValues:    true,
	})
}

// EditValues converts an existing record into form values; the
// write-only password field comes back blank.
func EditValues(t Teacher) form.Values {
	return form.Values{"nome": t.Name, "email": t.Email, "senha": ""}
}

// FormView renders the teacher form through the generic engine.
type FormView struct{}

var _ form.Renderer = FormView{}

func (FormView) RenderForm(w io.Writer, st *form.State) {
	form.RenderFields(w, st.Fields(), st.Values(), st.Errors(), st.IsSubmitting(), st.SubmitLabel())
}
