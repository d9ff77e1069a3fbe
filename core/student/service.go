package student

import (
	"context"

	"github.com/sisacad/academico/core/list"
)

// Service is the remote student service boundary; implemented by
// services/restapi against the /alunos endpoints.
type Service interface {
	Create(ctx context.Context, data NewStudent) (Student, error)
	List(ctx context.Context, page, size int, sort string) (list.Page[Student], error)
	GetByID(ctx context.Context, id int) (Student, error)
	Update(ctx context.Context, id int, data NewStudent) (Student, error)
	Delete(ctx context.Context, id int) error
	// Me returns the caller's own record using the current credential.
	Me(ctx context.Context) (Student, error)
}

func NewList(svc Service, pageSize int) *list.List[Student] {
	return list.New[Student](svc.List, svc.Delete, pageSize)
}

func NewSearch(svc Service) *list.Search[Student] {
	return list.NewSearch[Student](svc.GetByID)
}
