package form

import (
	"fmt"
	"io"
)

// RenderFields renders the schema-driven form: one line per field bound
// to its current value, its error beneath it when present, and the
// submit button last. The engine owns no validation or persistence; it
// is a pure renderer over the schema and externally-owned state.
func RenderFields(
	w io.Writer,
	fields []Field,
	values Values,
	errs map[string]string,
	submitting bool,
	label SubmitLabel,
) {
	for _, f := range fields {
		renderField(w, f, values, submitting)
		if msg := errs[f.Name]; msg != "" {
			fmt.Fprintf(w, "  ! %s\n", msg)
		}
		if f.Help != "" {
			fmt.Fprintf(w, "  (%s)\n", f.Help)
		}
	}

	btn := label.Idle
	if submitting {
		btn = label.Submitting
	}
	fmt.Fprintf(w, "[%s]%s\n", btn, disabledSuffix(submitting))
}

func renderField(w io.Writer, f Field, values Values, submitting bool) {
	suffix := disabledSuffix(submitting)
	switch f.Type {
	case Select:
		fmt.Fprintf(w, "%s*: <%s>%s\n", f.Label, selectedLabel(f, values), suffix)
	case Password:
		masked := ""
		if values.String(f.Name) != "" {
			masked = "********"
		}
		fmt.Fprintf(w, "%s*: %s%s\n", f.Label, masked, suffix)
	default:
		fmt.Fprintf(w, "%s*: %s%s\n", f.Label, values.String(f.Name), suffix)
	}
}

// selectedLabel resolves the chosen option's label; an unset select
// shows the locale-neutral placeholder that always precedes the
// schema-supplied options.
func selectedLabel(f Field, values Values) string {
	v := values.String(f.Name)
	if v == "" {
		return "Select"
	}
	for _, opt := range f.Options {
		if opt.Value == v {
			return opt.Label
		}
	}
	return v
}

func disabledSuffix(submitting bool) string {
	if submitting {
		return " [disabled]"
	}
	return ""
}
