package student

import (
	"context"
	"io"

	"github.com/sisacad/academico/core"
	"github.com/sisacad/academico/core/form"
)

func Fields() []form.Field {
	return []form.Field{
		{Name: "name", Label: "Name", Type: form.Text},
		{Name: "email", Label: "Email", Type: form.Text},
		{Name: "registrationNumber", Label: "Registration number", Type: form.Text},
		{Name: "password", Label: "Password", Type: form.Password},
	}
}

func rules() form.Rules {
	return form.Rules{
		"name": {form.Required("Name is required")},
		"email": {
			form.Required("Email is required"),
			form.Pattern(form.EmailRegex, "Invalid email format"),
		},
		"registrationNumber": {form.Required("Registration number is required")},
		"password": {
			form.Required("Password is required"),
			form.MinLength(6, "Password must be at least 6 characters"),
		},
	}
}

// NewForm builds the student form state: field values, validation rules
// and the create-or-update submit wiring against svc.
func NewForm(svc Service) *form.State {
	return form.NewState(form.Config{
		Fields:  Fields(),
		Rules:   rules(),
		Initial: form.Values{"name": "", "email": "", "registrationNumber": "", "password": ""},
		Submit: func(ctx context.Context, target form.RecordID, values form.Values) error {
			data := NewStudent{
				Name:               core.CleanString(values.String("name")),
				Email:              core.CleanString(values.String("email"), true /* lower */),
				RegistrationNumber: core.CleanString(values.String("registrationNumber")),
				Password:           values.String("password"),
			}
			if id, ok := target.Existing(); ok {
				_, err := svc.Update(ctx, id, data)
				return err
			}
			_, err := svc.Create(ctx, data)
			return err
		},
		SubmitLabel:    form.SubmitLabel{Idle: "Create student", Submitting: "Creating..."},
		FailureMessage: "Error saving student. Please try again.",
		ResetValues:    true,
	})
}

// EditValues converts an existing record into form values; the
// write-only password field comes back blank.
func EditValues(s Student) form.Values {
	return form.Values{
		"name":               s.Name,
		"email":              s.Email,
		"registrationNumber": s.RegistrationNumber,
		"password":           "",
	}
}

// FormView renders the student form through the generic engine.
type FormView struct{}

var _ form.Renderer = FormView{}

func (FormView) RenderForm(w io.Writer, st *form.State) {
	form.RenderFields(w, st.Fields(), st.Values(), st.Errors(), st.IsSubmitting(), st.SubmitLabel())
}
