package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sisacad/academico/core"
	"github.com/sisacad/academico/core/discipline"
)

type disciplineAPI struct {
	opts *Options
}

func registerDisciplineAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := disciplineAPI{opts: opts}

	dg := g.Group("/disciplinas", jwt)
	dg.GET("", api.list)
	dg.POST("", api.create, userTypeMiddleware(userTypeAdmin))
	dg.GET("/:id", api.retrieve)
	dg.PUT("/:id", api.update, userTypeMiddleware(userTypeAdmin))
	dg.DELETE("/:id", api.destroy, userTypeMiddleware(userTypeAdmin))
}

func (api *disciplineAPI) bindAndValidate(ctx echo.Context) (*discipline.NewDiscipline, error) {
	data := new(discipline.NewDiscipline)
	if err := ctx.Bind(data); err != nil {
		return nil, err
	}
	data.Name = core.CleanString(data.Name)
	data.Code = core.CleanString(data.Code)
	if err := api.opts.Validate.Struct(data); err != nil {
		return nil, err
	}
	return data, nil
}

func (api *disciplineAPI) create(ctx echo.Context) error {
	data, err := api.bindAndValidate(ctx)
	if err != nil {
		return err
	}
	d, err := api.opts.DB.CreateDiscipline(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, d)
}

func (api *disciplineAPI) list(ctx echo.Context) error {
	params := bindPageParams(ctx, "nome", "asc")
	page := api.opts.DB.ListDisciplines(params.Page, params.Size, params.Sort, params.Direction)
	return ctx.JSON(http.StatusOK, page)
}

func (api *disciplineAPI) retrieve(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	d, err := api.opts.DB.GetDiscipline(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *disciplineAPI) update(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	data, err := api.bindAndValidate(ctx)
	if err != nil {
		return err
	}
	d, err := api.opts.DB.UpdateDiscipline(id, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *disciplineAPI) destroy(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	if err := api.opts.DB.DeleteDiscipline(id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
