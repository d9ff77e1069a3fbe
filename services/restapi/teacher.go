package restapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sisacad/academico/core/list"
	"github.com/sisacad/academico/core/teacher"
)

// TeacherService implements teacher.Service against /professores.
type TeacherService struct {
	c *Client
}

var _ teacher.Service = (*TeacherService)(nil)

func (s *TeacherService) Create(ctx context.Context, data teacher.NewTeacher) (teacher.Teacher, error) {
	var out teacher.Teacher
	err := s.c.do(ctx, http.MethodPost, "/professores", nil, data, &out)
	return out, err
}

func (s *TeacherService) List(ctx context.Context, page, size int, sort string) (list.Page[teacher.Teacher], error) {
	var out list.Page[teacher.Teacher]
	q := pageQuery(page, size, sort, teacher.DefaultSort)
	err := s.c.do(ctx, http.MethodGet, "/professores", q, nil, &out)
	return out, err
}

func (s *TeacherService) GetByID(ctx context.Context, id int) (teacher.Teacher, error) {
	var out teacher.Teacher
	err := s.c.do(ctx, http.MethodGet, fmt.Sprintf("/professores/%d", id), nil, nil, &out)
	return out, err
}

func (s *TeacherService) Update(ctx context.Context, id int, data teacher.NewTeacher) (teacher.Teacher, error) {
	var out teacher.Teacher
	err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("/professores/%d", id), nil, data, &out)
	return out, err
}

func (s *TeacherService) Delete(ctx context.Context, id int) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/professores/%d", id), nil, nil, nil)
}

func (s *TeacherService) Me(ctx context.Context) (teacher.Teacher, error) {
	var out teacher.Teacher
	err := s.c.do(ctx, http.MethodGet, "/professores/me", nil, nil, &out)
	return out, err
}
