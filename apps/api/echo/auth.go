package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/sisacad/academico/core"
)

const (
	userTypeAdmin   = "ADMIN"
	userTypeTeacher = "PROFESSOR"
	userTypeStudent = "ALUNO"

	tokenContextKey = "userToken"

	// The admin seed lives outside the database; its id only has to be
	// stable and nonzero.
	adminSubjectID = 1000000
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Name     string `json:"nome,omitempty"`
	Email    string `json:"email,omitempty"`
	UserType string `json:"tipo,omitempty"`
}

type authAPI struct {
	opts      *Options
	adminHash []byte
}

func newAuthAPI(opts *Options) *authAPI {
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Conf.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		opts.Logger.Fatal("hashing admin password", err)
	}
	return &authAPI{opts: opts, adminHash: hash}
}

func (api *authAPI) jwtConfig() middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(api.opts.Conf.Server.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    tokenContextKey,
		Claims:        new(Claims),
	}
}

func (api *authAPI) register(g *echo.Group, jwt echo.MiddlewareFunc) {
	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/logout", api.logout, jwt)
}

type (
	loginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"senha" validate:"required"`
	}

	loginUser struct {
		ID    int    `json:"id"`
		Name  string `json:"nome"`
		Email string `json:"email"`
		Type  string `json:"tipo"`
	}

	loginResponse struct {
		AccessToken string    `json:"accessToken"`
		TokenType   string    `json:"tipo"`
		ExpiresIn   int64     `json:"expiresIn"`
		User        loginUser `json:"usuario"`
	}
)

func (api *authAPI) login(ctx echo.Context) error {
	data := new(loginRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	data.Email = core.CleanString(data.Email, true)
	if err := api.opts.Validate.Struct(data); err != nil {
		return err
	}

	usr, err := api.authenticate(data.Email, data.Password)
	if err != nil {
		return err
	}
	token, err := api.generateToken(usr)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(api.opts.Conf.Server.JWTExpirationDelta / time.Second),
		User:        usr,
	})
}

func (api *authAPI) logout(ctx echo.Context) error {
	// tokens are stateless; logout just acknowledges
	return ctx.NoContent(http.StatusNoContent)
}

// authenticate checks the admin seed first, then students and teachers.
func (api *authAPI) authenticate(email, pwd string) (loginUser, error) {
	if email == core.CleanString(api.opts.Conf.Admin.Email, true) {
		if bcrypt.CompareHashAndPassword(api.adminHash, []byte(pwd)) == nil {
			return loginUser{
				ID:    adminSubjectID,
				Name:  api.opts.Conf.Admin.Name,
				Email: email,
				Type:  userTypeAdmin,
			}, nil
		}
		return loginUser{}, errAuthenticationFailed
	}
	if s, hash, err := api.opts.DB.GetStudentByEmail(email); err == nil {
		if bcrypt.CompareHashAndPassword(hash, []byte(pwd)) == nil {
			return loginUser{ID: s.ID, Name: s.Name, Email: s.Email, Type: userTypeStudent}, nil
		}
		return loginUser{}, errAuthenticationFailed
	}
	if t, hash, err := api.opts.DB.GetTeacherByEmail(email); err == nil {
		if bcrypt.CompareHashAndPassword(hash, []byte(pwd)) == nil {
			return loginUser{ID: t.ID, Name: t.Name, Email: t.Email, Type: userTypeTeacher}, nil
		}
	}
	return loginUser{}, errAuthenticationFailed
}

// generateToken generates a signed JWT token string representing the user Claims.
func (api *authAPI) generateToken(usr loginUser) (string, error) {
	now := time.Now()
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    api.opts.Conf.AppName,
			Subject:   strconv.Itoa(usr.ID),
			ExpiresAt: now.Add(api.opts.Conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Name:     usr.Name,
		Email:    usr.Email,
		UserType: usr.Type,
	}
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)
	ss, err := token.SignedString([]byte(api.opts.Conf.Server.SecretKey))
	if err != nil {
		return "", errTokenSigningFailed
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(tokenContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// userTypeMiddleware restricts an endpoint to the given user types.
func userTypeMiddleware(types ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			for _, t := range types {
				if claims.UserType == t {
					return next(ctx)
				}
			}
			return errHTTPForbidden
		}
	}
}

func contextUserID(ctx echo.Context) (int, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(claims.Subject)
}
