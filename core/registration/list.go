package registration

import (
	"context"
	"strconv"

	"github.com/volatiletech/null/v8"

	"github.com/sisacad/academico/core"
	"github.com/sisacad/academico/core/list"
)

// ScoreInput is a raw user-entered score; empty means "leave unset".
type ScoreInput string

// List extends the generic paginated list with score recording.
type List struct {
	*list.List[Registration]
	svc Service
}

func NewList(svc Service, pageSize int) *List {
	return &List{
		List: list.New[Registration](svc.List, svc.Delete, pageSize),
		svc:  svc,
	}
}

// UpdateNotes validates both scores locally and, only when both are
// in range, pushes them to the API and reloads the current page. An
// out-of-range or non-numeric score fails with a field-specific message
// and never reaches the network.
func (l *List) UpdateNotes(ctx context.Context, id int, score1, score2 ScoreInput) error {
	var notes Notes
	if err := parseScore(score1, "Score 1", &notes.Score1); err != nil {
		return err
	}
	if err := parseScore(score2, "Score 2", &notes.Score2); err != nil {
		return err
	}

	if _, err := l.svc.UpdateNotes(ctx, id, notes); err != nil {
		return err
	}
	l.Refresh(ctx)
	return nil
}

func parseScore(in ScoreInput, label string, out *null.Float64) error {
	if in == "" {
		return nil
	}
	n, err := strconv.ParseFloat(string(in), 64)
	if err != nil || n < 0 || n > 10 {
		return core.NewValidationError(nil, core.FieldError{
			Field: label,
			Error: label + " must be a number between 0 and 10",
		})
	}
	*out = null.Float64From(n)
	return nil
}
