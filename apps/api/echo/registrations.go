package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sisacad/academico/core"
	"github.com/sisacad/academico/core/registration"
)

type registrationAPI struct {
	opts *Options
}

func registerRegistrationAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := registrationAPI{opts: opts}

	rg := g.Group("/matriculas", jwt)
	rg.GET("", api.list, userTypeMiddleware(userTypeAdmin, userTypeTeacher))
	rg.POST("", api.create, userTypeMiddleware(userTypeAdmin))
	rg.GET("/:id", api.retrieve, userTypeMiddleware(userTypeAdmin, userTypeTeacher))
	rg.PUT("/:id/notas", api.updateNotes, userTypeMiddleware(userTypeAdmin, userTypeTeacher))
	rg.DELETE("/:id", api.destroy, userTypeMiddleware(userTypeAdmin))
}

func (api *registrationAPI) create(ctx echo.Context) error {
	data := new(registration.NewRegistration)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := api.opts.Validate.Struct(data); err != nil {
		return err
	}
	r, err := api.opts.DB.CreateRegistration(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, r)
}

func (api *registrationAPI) list(ctx echo.Context) error {
	params := bindPageParams(ctx, "dataMatricula", "desc")
	page := api.opts.DB.ListRegistrations(params.Page, params.Size, params.Sort, params.Direction)
	return ctx.JSON(http.StatusOK, page)
}

func (api *registrationAPI) retrieve(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	r, err := api.opts.DB.GetRegistration(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *registrationAPI) updateNotes(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	data := new(registration.Notes)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := validateNotes(data); err != nil {
		return err
	}
	r, err := api.opts.DB.UpdateRegistrationNotes(id, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *registrationAPI) destroy(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	if err := api.opts.DB.DeleteRegistration(id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// validateNotes keeps recorded scores inside the 0 to 10 grading scale.
func validateNotes(notes *registration.Notes) error {
	var fldErrs []core.FieldError
	if notes.Score1.Valid && (notes.Score1.Float64 < 0 || notes.Score1.Float64 > 10) {
		fldErrs = append(fldErrs, core.FieldError{Field: "nota1", Error: "score must be between 0 and 10"})
	}
	if notes.Score2.Valid && (notes.Score2.Float64 < 0 || notes.Score2.Float64 > 10) {
		fldErrs = append(fldErrs, core.FieldError{Field: "nota2", Error: "score must be between 0 and 10"})
	}
	if len(fldErrs) > 0 {
		return core.NewValidationError(nil, fldErrs...)
	}
	return nil
}
