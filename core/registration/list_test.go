package registration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/sisacad/academico/core"
	"github.com/sisacad/academico/core/list"
)

type notesCall struct {
	id    int
	notes Notes
}

type fakeService struct {
	calls     []notesCall
	loadCalls int
	updateErr error
}

func (f *fakeService) Create(ctx context.Context, data NewRegistration) (Registration, error) {
	return Registration{}, nil
}

func (f *fakeService) List(ctx context.Context, page, size int, sort string) (list.Page[Registration], error) {
	f.loadCalls++
	return list.Page[Registration]{Pageable: list.Pageable{PageNumber: page}}, nil
}

func (f *fakeService) GetByID(ctx context.Context, id int) (Registration, error) {
	return Registration{ID: id}, nil
}

func (f *fakeService) UpdateNotes(ctx context.Context, id int, notes Notes) (Registration, error) {
	f.calls = append(f.calls, notesCall{id: id, notes: notes})
	if f.updateErr != nil {
		return Registration{}, f.updateErr
	}
	return Registration{ID: id, Score1: notes.Score1, Score2: notes.Score2}, nil
}

func (f *fakeService) Delete(ctx context.Context, id int) error { return nil }

func Test_List_UpdateNotes(t *testing.T) {
	ctx := context.Background()
	svc := &fakeService{}
	l := NewList(svc, 10)

	err := l.UpdateNotes(ctx, 5, "8.5", "6")

	assert.NoError(t, err)
	if assert.Len(t, svc.calls, 1) {
		assert.Equal(t, 5, svc.calls[0].id)
		assert.Equal(t, null.Float64From(8.5), svc.calls[0].notes.Score1)
		assert.Equal(t, null.Float64From(6), svc.calls[0].notes.Score2)
	}
	assert.Equal(t, 1, svc.loadCalls, "a successful update reloads the current page")
}

func Test_List_UpdateNotes_partial(t *testing.T) {
	ctx := context.Background()
	svc := &fakeService{}
	l := NewList(svc, 10)

	assert.NoError(t, l.UpdateNotes(ctx, 5, "7", ""))

	if assert.Len(t, svc.calls, 1) {
		assert.True(t, svc.calls[0].notes.Score1.Valid)
		assert.False(t, svc.calls[0].notes.Score2.Valid, "an empty score stays unset")
	}
}

func Test_List_UpdateNotes_rejectsBadScores(t *testing.T) {
	tests := []struct {
		name      string
		s1, s2    ScoreInput
		wantField string
	}{
		{name: "score 1 above range", s1: "10.5", s2: "5", wantField: "Score 1"},
		{name: "score 1 negative", s1: "-1", s2: "5", wantField: "Score 1"},
		{name: "score 1 not a number", s1: "abc", s2: "5", wantField: "Score 1"},
		{name: "score 2 above range", s1: "5", s2: "11", wantField: "Score 2"},
		{name: "score 2 not a number", s1: "", s2: "x", wantField: "Score 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			l := NewList(svc, 10)

			err := l.UpdateNotes(context.Background(), 1, tt.s1, tt.s2)

			var vErr *core.ValidationError
			if assert.ErrorAs(t, err, &vErr) {
				assert.Equal(t, tt.wantField, vErr.Fields[0].Field)
				assert.Equal(t, tt.wantField+" must be a number between 0 and 10", vErr.Fields[0].Error)
			}
			assert.Empty(t, svc.calls, "invalid scores never reach the network")
		})
	}
}

func Test_List_UpdateNotes_remoteFailure(t *testing.T) {
	svc := &fakeService{updateErr: core.NewAPIError(403, "permission denied")}
	l := NewList(svc, 10)

	err := l.UpdateNotes(context.Background(), 1, "5", "5")

	assert.Error(t, err)
	assert.Equal(t, "permission denied", core.ErrorMessage(err, ""))
	assert.Equal(t, 0, svc.loadCalls, "no reload after a failed update")
}
