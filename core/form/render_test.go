package form

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_RenderFields(t *testing.T) {
	fields := []Field{
		{Name: "nome", Label: "Name", Type: Text},
		{Name: "senha", Label: "Password", Type: Password},
		{Name: "professorId", Label: "Professor", Type: Select, Options: []Option{
			{Value: "3", Label: "Grace Hopper"},
		}},
	}
	label := SubmitLabel{Idle: "Create", Submitting: "Creating..."}

	t.Run("idle with values and an error", func(t *testing.T) {
		var buf bytes.Buffer
		RenderFields(&buf, fields,
			Values{"nome": "Calculus", "senha": "hunter22", "professorId": "3"},
			map[string]string{"nome": "Name is required"},
			false, label,
		)
		want := "Name*: Calculus\n" +
			"  ! Name is required\n" +
			"Password*: ********\n" +
			"Professor*: <Grace Hopper>\n" +
			"[Create]\n"
		assert.Equal(t, want, buf.String())
	})

	t.Run("submitting disables everything", func(t *testing.T) {
		var buf bytes.Buffer
		RenderFields(&buf, fields,
			Values{"nome": "", "senha": "", "professorId": ""},
			nil, true, label,
		)
		want := "Name*:  [disabled]\n" +
			"Password*:  [disabled]\n" +
			"Professor*: <Select> [disabled]\n" +
			"[Creating...] [disabled]\n"
		assert.Equal(t, want, buf.String())
	})
}

func Test_Editor_Render(t *testing.T) {
	st := NewState(Config{
		Fields:      []Field{{Name: "nome", Label: "Name", Type: Text}},
		Initial:     Values{"nome": ""},
		Submit:      func(ctx context.Context, target RecordID, values Values) error { return nil },
		SubmitLabel: SubmitLabel{Idle: "Save", Submitting: "Saving..."},
	})
	defer st.Close()

	renderer := rendererFunc(func(w io.Writer, st *State) {
		RenderFields(w, st.Fields(), st.Values(), st.Errors(), st.IsSubmitting(), st.SubmitLabel())
	})

	t.Run("plain", func(t *testing.T) {
		var buf bytes.Buffer
		ed := &Editor{Title: "New Discipline", State: st, Form: renderer}
		ed.Render(&buf)
		assert.Contains(t, buf.String(), "== New Discipline ==")
		assert.NotContains(t, buf.String(), SuccessBanner)
	})

	t.Run("form error banner", func(t *testing.T) {
		st.SetFormError("Failed to load required data")
		var buf bytes.Buffer
		ed := &Editor{Title: "New Discipline", State: st, Form: renderer}
		ed.Render(&buf)
		assert.Contains(t, buf.String(), "error: Failed to load required data")
	})
}

type rendererFunc func(w io.Writer, st *State)

func (f rendererFunc) RenderForm(w io.Writer, st *State) { f(w, st) }
