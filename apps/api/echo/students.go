package echoapi

import (
	"fmt"
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/sisacad/academico/core"
	"github.com/sisacad/academico/core/student"
)

type studentAPI struct {
	opts *Options
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := studentAPI{opts: opts}

	sg := g.Group("/alunos", jwt)
	sg.GET("", api.list, userTypeMiddleware(userTypeAdmin, userTypeTeacher))
	sg.POST("", api.create, userTypeMiddleware(userTypeAdmin))
	sg.GET("/me", api.me, userTypeMiddleware(userTypeStudent))
	sg.GET("/:id", api.retrieve, userTypeMiddleware(userTypeAdmin, userTypeTeacher))
	sg.PUT("/:id", api.update, userTypeMiddleware(userTypeAdmin))
	sg.DELETE("/:id", api.destroy, userTypeMiddleware(userTypeAdmin))
}

func (api *studentAPI) bindAndValidate(ctx echo.Context) (*student.NewStudent, error) {
	data := new(student.NewStudent)
	if err := ctx.Bind(data); err != nil {
		return nil, err
	}
	data.Name = core.CleanString(data.Name)
	data.Email = core.CleanString(data.Email, true)
	data.RegistrationNumber = core.CleanString(data.RegistrationNumber)
	if err := api.opts.Validate.Struct(data); err != nil {
		return nil, err
	}
	if err := validatePassword(data.Password, "password", data.Name, data.Email, data.RegistrationNumber); err != nil {
		return nil, err
	}
	return data, nil
}

func (api *studentAPI) create(ctx echo.Context) error {
	data, err := api.bindAndValidate(ctx)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s, err := api.opts.DB.CreateStudent(*data, hash)
	if err != nil {
		return err
	}
	api.sendWelcomeEmail(s)
	return ctx.JSON(http.StatusCreated, s)
}

func (api *studentAPI) list(ctx echo.Context) error {
	params := bindPageParams(ctx, "name", "asc")
	page := api.opts.DB.ListStudents(params.Page, params.Size, params.Sort, params.Direction)
	return ctx.JSON(http.StatusOK, page)
}

func (api *studentAPI) retrieve(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	s, err := api.opts.DB.GetStudent(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentAPI) update(ctx echo.Context) error {
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
	s, err := api.opts.DB.UpdateStudent(id, *data, hash)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentAPI) destroy(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	if err := api.opts.DB.DeleteStudent(id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentAPI) me(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	s, err := api.opts.DB.GetStudent(uid)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentAPI) sendWelcomeEmail(s student.Student) {
	api.opts.Email.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: s.Name, Address: s.Email}},
		Subject: fmt.Sprintf("Welcome to %s", api.opts.Conf.AppName),
		Body: fmt.Sprintf(
			"Hello %s,\n\nYour student account has been created. Use %s to sign in.\n",
			s.Name, s.Email,
		),
	})
}
