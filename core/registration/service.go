package registration

import (
	"context"

	"github.com/sisacad/academico/core/list"
)

// Service is the remote registration service boundary; implemented by
// services/restapi against the /matriculas endpoints.
type Service interface {
	Create(ctx context.Context, data NewRegistration) (Registration, error)
	List(ctx context.Context, page, size int, sort string) (list.Page[Registration], error)
	GetByID(ctx context.Context, id int) (Registration, error)
	UpdateNotes(ctx context.Context, id int, notes Notes) (Registration, error)
	Delete(ctx context.Context, id int) error
}

func NewSearch(svc Service) *list.Search[Registration] {
	return list.NewSearch[Registration](svc.GetByID)
}
