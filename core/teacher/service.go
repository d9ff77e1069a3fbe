package teacher

import (
	"context"

	"github.com/sisacad/academico/core/list"
)

// Service is the remote teacher service boundary; implemented by
// services/restapi against the /professores endpoints.
type Service interface {
	Create(ctx context.Context, data NewTeacher) (Teacher, error)
	List(ctx context.Context, page, size int, sort string) (list.Page[Teacher], error)
	GetByID(ctx context.Context, id int) (Teacher, error)
	Update(ctx context.Context, id int, data NewTeacher) (Teacher, error)
	Delete(ctx context.Context, id int) error
	// Me returns the caller's own record using the current credential.
	Me(ctx context.Context) (Teacher, error)
}

func NewList(svc Service, pageSize int) *list.List[Teacher] {
	return list.New[Teacher](svc.List, svc.Delete, pageSize)
}

func NewSearch(svc Service) *list.Search[Teacher] {
	return list.NewSearch[Teacher](svc.GetByID)
}
