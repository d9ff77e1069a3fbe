package echoapi

import (
	"fmt"
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/sisacad/academico/core"
	"github.com/sisacad/academico/core/teacher"
)

type teacherAPI struct {
	opts *Options
}

func registerTeacherAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := teacherAPI{opts: opts}

	tg := g.Group("/professores", jwt)
	tg.GET("", api.list, userTypeMiddleware(userTypeAdmin))
	tg.POST("", api.create, userTypeMiddleware(userTypeAdmin))
	tg.GET("/me", api.me, userTypeMiddleware(userTypeTeacher))
	tg.GET("/:id", api.retrieve, userTypeMiddleware(userTypeAdmin))
	tg.PUT("/:id", api.update, userTypeMiddleware(userTypeAdmin))
	tg.DELETE("/:id", api.destroy, userTypeMiddleware(userTypeAdmin))
}

func (api *teacherAPI) bindAndValidate(ctx echo.Context) (*teacher.NewTeacher, error) {
	data := new(teacher.NewTeacher)
	if err := ctx.Bind(data); err != nil {
		return nil, err
	}
	data.Name = core.CleanString(data.Name)
	data.Email = core.CleanString(data.Email, true)
	if err := api.opts.Validate.Struct(data); err != nil {
		return nil, err
	}
	if err := validatePassword(data.Password, "senha", data.Name, data.Email); err != nil {
		return nil, err
	}
	return data, nil
}

func (api *teacherAPI) create(ctx echo.Context) error {
	data, err := api.bindAndValidate(ctx)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	t, err := api.opts.DB.CreateTeacher(*data, hash)
	if err != nil {
		return err
	}
	api.sendWelcomeEmail(t)
	return ctx.JSON(http.StatusCreated, t)
}

func (api *teacherAPI) list(ctx echo.Context) error {
	params := bindPageParams(ctx, "nome", "asc")
	page := api.opts.DB.ListTeachers(params.Page, params.Size, params.Sort, params.Direction)
	return ctx.JSON(http.StatusOK, page)
}

func (api *teacherAPI) retrieve(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	t, err := api.opts.DB.GetTeacher(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *teacherAPI) update(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	data, err := api.bindAndValidate(ctx)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	t, err := api.opts.DB.UpdateTeacher(id, *data, hash)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *teacherAPI) destroy(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	if err := api.opts.DB.DeleteTeacher(id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *teacherAPI) me(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	t, err := api.opts.DB.GetTeacher(uid)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *teacherAPI) sendWelcomeEmail(t teacher.Teacher) {
	api.opts.Email.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: t.Name, Address: t.Email}},
		Subject: fmt.Sprintf("Welcome to %s", api.opts.Conf.AppName),
		Body: fmt.Sprintf(
			"Hello %s,\n\nYour teacher account has been created. Use %s to sign in.\n",
			t.Name, t.Email,
		),
	})
}
