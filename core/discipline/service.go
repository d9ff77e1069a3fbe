package discipline

import (
	"context"

	"github.com/sisacad/academico/core/list"
)

// Service is the remote discipline service boundary; implemented by
// services/restapi against the /disciplinas endpoints.
type Service interface {
	Create(ctx context.Context, data NewDiscipline) (Discipline, error)
	List(ctx context.Context, page, size int, sort string) (list.Page[Discipline], error)
	GetByID(ctx context.Context, id int) (Discipline, error)
	Update(ctx context.Context, id int, data NewDiscipline) (Discipline, error)
	Delete(ctx context.Context, id int) error
}

func NewList(svc Service, pageSize int) *list.List[Discipline] {
	return list.New[Discipline](svc.List, svc.Delete, pageSize)
}

func NewSearch(svc Service) *list.Search[Discipline] {
	return list.NewSearch[Discipline](svc.GetByID)
}
