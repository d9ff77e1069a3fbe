package list

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/sisacad/academico/core"
)

func Test_Search_SearchByID(t *testing.T) {
	ctx := context.Background()
	records := map[int]item{7: {ID: 7, Name: "found"}}
	s := NewSearch[item](func(ctx context.Context, id int) (item, error) {
		rec, ok := records[id]
		if !ok {
			return item{}, core.NewAPIError(404, "not found")
		}
		return rec, nil
	})

	assert.False(t, s.Searched())

	s.SearchByID(ctx, 7)
	assert.True(t, s.Searched())
	assert.False(t, s.NotFound())
	if assert.NotNil(t, s.Record()) {
		assert.Equal(t, 7, s.Record().ID)
	}

	// a miss is a distinct outcome, not a generic failure
	s.SearchByID(ctx, 8)
	assert.True(t, s.NotFound())
	assert.Nil(t, s.Record(), "prior hit cleared before the new search")
	assert.Equal(t, "not found", s.Err())
}

func Test_Search_transportFailure(t *testing.T) {
	ctx := context.Background()
	s := NewSearch[item](func(ctx context.Context, id int) (item, error) {
		return item{}, errors.New("dial tcp: connection refused")
	})

	s.SearchByID(ctx, 1)
	assert.False(t, s.NotFound(), "transport errors are not a not-found result")
	assert.Equal(t, "failed to fetch record", s.Err())
}

func Test_Search_Clear(t *testing.T) {
	ctx := context.Background()
	s := NewSearch[item](func(ctx context.Context, id int) (item, error) {
		return item{ID: id}, nil
	})
	s.SearchByID(ctx, 3)

	s.Clear()
	assert.Nil(t, s.Record())
	assert.False(t, s.Searched())
	assert.Empty(t, s.Err())
}

func Test_Search_ClearError_keepsSearched(t *testing.T) {
	ctx := context.Background()
	s := NewSearch[item](func(ctx context.Context, id int) (item, error) {
		return item{}, core.NewAPIError(404, "not found")
	})
	s.SearchByID(ctx, 1)

	s.ClearError()
	assert.Empty(t, s.Err())
	assert.False(t, s.NotFound())
	assert.True(t, s.Searched(), "dismissing the banner keeps the attempted-search state")
}
