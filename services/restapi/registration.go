package restapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sisacad/academico/core/list"
	"github.com/sisacad/academico/core/registration"
)

// RegistrationService implements registration.Service against /matriculas.
type RegistrationService struct {
	c *Client
}

var _ registration.Service = (*RegistrationService)(nil)

func (s *RegistrationService) Create(ctx context.Context, data registration.NewRegistration) (registration.Registration, error) {
	var out registration.Registration
	err := s.c.do(ctx, http.MethodPost, "/matriculas", nil, data, &out)
	return out, err
}

func (s *RegistrationService) List(ctx context.Context, page, size int, sort string) (list.Page[registration.Registration], error) {
	var out list.Page[registration.Registration]
	q := pageQuery(page, size, sort, registration.DefaultSort)
	err := s.c.do(ctx, http.MethodGet, "/matriculas", q, nil, &out)
	return out, err
}

func (s *RegistrationService) GetByID(ctx context.Context, id int) (registration.Registration, error) {
	var out registration.Registration
	err := s.c.do(ctx, http.MethodGet, fmt.Sprintf("/matriculas/%d", id), nil, nil, &out)
	return out, err
}

func (s *RegistrationService) UpdateNotes(ctx context.Context, id int, notes registration.Notes) (registration.Registration, error) {
	var out registration.Registration
	err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("/matriculas/%d/notas", id), nil, notes, &out)
	return out, err
}

func (s *RegistrationService) Delete(ctx context.Context, id int) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/matriculas/%d", id), nil, nil, nil)
}
