package restapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sisacad/academico/core/list"
	"github.com/sisacad/academico/core/student"
)

// StudentService implements student.Service against /alunos.
type StudentService struct {
	c *Client
}

var _ student.Service = (*StudentService)(nil)

func (s *StudentService) Create(ctx context.Context, data student.NewStudent) (student.Student, error) {
	var out student.Student
	err := s.c.do(ctx, http.MethodPost, "/alunos", nil, data, &out)
	return out, err
}

func (s *StudentService) List(ctx context.Context, page, size int, sort string) (list.Page[student.Student], error) {
	var out list.Page[student.Student]
	q := pageQuery(page, size, sort, student.DefaultSort)
	err := s.c.do(ctx, http.MethodGet, "/alunos", q, nil, &out)
	return out, err
}

func (s *StudentService) GetByID(ctx context.Context, id int) (student.Student, error) {
	var out student.Student
	err := s.c.do(ctx, http.MethodGet, fmt.Sprintf("/alunos/%d", id), nil, nil, &out)
	return out, err
}

func (s *StudentService) Update(ctx context.Context, id int, data student.NewStudent) (student.Student, error) {
	var out student.Student
	err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("/alunos/%d", id), nil, data, &out)
	return out, err
}

func (s *StudentService) Delete(ctx context.Context, id int) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/alunos/%d", id), nil, nil, nil)
}

func (s *StudentService) Me(ctx context.Context) (student.Student, error) {
	var out student.Student
	err := s.c.do(ctx, http.MethodGet, "/alunos/me", nil, nil, &out)
	return out, err
}
