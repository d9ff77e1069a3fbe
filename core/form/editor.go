package form

import (
	"fmt"
	"io"
)

// SuccessBanner is shown transiently after a successful submit.
const SuccessBanner = "Saved successfully."

// Renderer is implemented by one concrete form type per entity; each
// supplies its own field schema (possibly with live option rosters) and
// delegates the actual rendering to RenderFields.
type Renderer interface {
	RenderForm(w io.Writer, st *State)
}

// Editor is the entity-agnostic create/edit orchestrator: title,
// success/error banners, then the entity's form. The Renderer
// indirection is what lets four entity forms share this one composition.
type Editor struct {
	Title string
	State *State
	Form  Renderer
}

func (e *Editor) Render(w io.Writer) {
	fmt.Fprintf(w, "== %s ==\n", e.Title)
	if e.State.IsSubmitted() {
		fmt.Fprintf(w, "%s\n", SuccessBanner)
	}
	if msg := e.State.FormError(); msg != "" {
		fmt.Fprintf(w, "error: %s\n", msg)
	}
	e.Form.RenderForm(w, e.State)
}
