package restapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sisacad/academico/core/discipline"
	"github.com/sisacad/academico/core/list"
)

// DisciplineService implements discipline.Service against /disciplinas.
type DisciplineService struct {
	c *Client
}

var _ discipline.Service = (*DisciplineService)(nil)

func (s *DisciplineService) Create(ctx context.Context, data discipline.NewDiscipline) (discipline.Discipline, error) {
	var out discipline.Discipline
	err := s.c.do(ctx, http.MethodPost, "/disciplinas", nil, data, &out)
	return out, err
}

func (s *DisciplineService) List(ctx context.Context, page, size int, sort string) (list.Page[discipline.Discipline], error) {
	var out list.Page[discipline.Discipline]
	q := pageQuery(page, size, sort, discipline.DefaultSort)
	err := s.c.do(ctx, http.MethodGet, "/disciplinas", q, nil, &out)
	return out, err
}

func (s *DisciplineService) GetByID(ctx context.Context, id int) (discipline.Discipline, error) {
	var out discipline.Discipline
	err := s.c.do(ctx, http.MethodGet, fmt.Sprintf("/disciplinas/%d", id), nil, nil, &out)
	return out, err
}

func (s *DisciplineService) Update(ctx context.Context, id int, data discipline.NewDiscipline) (discipline.Discipline, error) {
	var out discipline.Discipline
	err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("/disciplinas/%d", id), nil, data, &out)
	return out, err
}

func (s *DisciplineService) Delete(ctx context.Context, id int) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/disciplinas/%d", id), nil, nil, nil)
}
