// Package echoapi is the development stand-in for the academic REST
// API. It serves the same wire contract the production backend does so
// the client packages can run against something real.
package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/sisacad/academico/core"
	inmemdb "github.com/sisacad/academico/storage/database/inmem"
)

type (
	Options struct {
		Conf           *core.Config
		DisableReqLogs bool
		Logger         core.Logger
		Email          core.EmailService
		DB             *inmemdb.DB
		Validate       *validator.Validate
		Translator     ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	debug := s.opts.Conf.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	if !debug {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = appHTTPErrorHandler(s.opts.Translator)
	s.app.Debug = debug

	s.app.GET("/", home)

	v1 := s.app.Group("/api/v1")
	auth := newAuthAPI(s.opts)
	jwt := middleware.JWTWithConfig(auth.jwtConfig())
	auth.register(v1, jwt)

	registerStudentAPI(v1, jwt, s.opts)
	registerTeacherAPI(v1, jwt, s.opts)
	registerDisciplineAPI(v1, jwt, s.opts)
	registerRegistrationAPI(v1, jwt, s.opts)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Conf.Server.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Academico API")
}
