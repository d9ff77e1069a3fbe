package echoapi_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	echoapi "github.com/sisacad/academico/apps/api/echo"
	"github.com/sisacad/academico/core"
	"github.com/sisacad/academico/core/discipline"
	"github.com/sisacad/academico/core/registration"
	"github.com/sisacad/academico/core/session"
	"github.com/sisacad/academico/core/student"
	"github.com/sisacad/academico/core/teacher"
	emailsvc "github.com/sisacad/academico/services/email"
	"github.com/sisacad/academico/services/restapi"
	inmemdb "github.com/sisacad/academico/storage/database/inmem"
	sessionstore "github.com/sisacad/academico/storage/session"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

type testEnv struct {
	client *restapi.Client
	store  *session.Store
}

type tokenFunc func() string

func (f tokenFunc) Token() string { return f() }

func setup(t *testing.T) *testEnv {
	t.Helper()

	conf := &core.Config{
		AppName:          "Academico",
		Env:              "TEST",
		Debug:            true,
		DefaultPageSize:  10,
		RequestTimeout:   5 * time.Second,
		DefaultFromEmail: "noreply@localhost",
		Server: core.ServerConfig{
			SecretKey:          "test-secret",
			JWTExpirationDelta: time.Hour,
		},
		Admin: core.AdminSeedConfig{Name: "Admin", Email: "admin@academico.dev", Password: "sup3rsecret"},
	}

	db, err := inmemdb.Open()
	require.NoError(t, err)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	srv := echoapi.NewServer(&echoapi.Options{
		Conf:           conf,
		DisableReqLogs: true,
		Logger:         nopLogger{},
		Email:          emailsvc.NewConsoleServiceDisabledOutput(conf),
		DB:             db,
		Validate:       validate,
		Translator:     translator,
	})

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	conf.APIBaseURL = ts.URL + "/api/v1"

	var store *session.Store
	client := restapi.NewClient(conf, tokenFunc(func() string {
		if store == nil {
			return ""
		}
		return store.Token()
	}))
	store = session.NewStore(client.Auth(), sessionstore.OpenMem(), nopLogger{})

	return &testEnv{client: client, store: store}
}

func (env *testEnv) loginAdmin(t *testing.T) {
	t.Helper()
	require.NoError(t, env.store.Login(context.Background(), "admin@academico.dev", "sup3rsecret"))
}

func (env *testEnv) createTeacher(t *testing.T, name, email string) teacher.Teacher {
	t.Helper()
	out, err := env.client.Teachers().Create(context.Background(), teacher.NewTeacher{
		Name: name, Email: email, Password: "unguessable-9",
	})
	require.NoError(t, err)
	return out
}

func (env *testEnv) createStudent(t *testing.T, name, email, number string) student.Student {
	t.Helper()
	out, err := env.client.Students().Create(context.Background(), student.NewStudent{
		Name: name, Email: email, RegistrationNumber: number, Password: "unguessable-9",
	})
	require.NoError(t, err)
	return out
}

func Test_login(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	t.Run("admin seed", func(t *testing.T) {
		require.NoError(t, env.store.Login(ctx, "Admin@Academico.dev", "sup3rsecret"))
		p := env.store.Principal()
		require.NotNil(t, p)
		assert.Equal(t, session.RoleAdmin, p.Role)
		assert.Equal(t, "Admin", p.Name)
		env.store.Logout(ctx)
	})

	t.Run("wrong password", func(t *testing.T) {
		err := env.store.Login(ctx, "admin@academico.dev", "nope")
		var authErr *session.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "invalid credentials", authErr.Message)
		assert.False(t, env.store.IsAuthenticated())
	})

	t.Run("unknown account", func(t *testing.T) {
		err := env.store.Login(ctx, "ghost@academico.dev", "whatever")
		var authErr *session.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "invalid credentials", authErr.Message)
	})
}

func Test_studentLifecycle(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	env.loginAdmin(t)

	created := env.createStudent(t, "Ada Lovelace", "ada@example.com", "RA100")
	assert.NotZero(t, created.ID)
	assert.Equal(t, "ada@example.com", created.Email)

	t.Run("duplicate email is a field error", func(t *testing.T) {
		_, err := env.client.Students().Create(ctx, student.NewStudent{
			Name: "Other", Email: "ada@example.com", RegistrationNumber: "RA101", Password: "unguessable-9",
		})
		var apiErr *core.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.StatusCode)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		_, err := env.client.Students().Create(ctx, student.NewStudent{Name: "No Email"})
		var apiErr *core.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.StatusCode)
	})

	t.Run("password too close to identity is rejected", func(t *testing.T) {
		_, err := env.client.Students().Create(ctx, student.NewStudent{
			Name: "Grace Hopper", Email: "grace@example.com", RegistrationNumber: "RA102",
			Password: "grace@example.com",
		})
		var apiErr *core.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.StatusCode)
	})

	t.Run("update and retrieve", func(t *testing.T) {
		updated, err := env.client.Students().Update(ctx, created.ID, student.NewStudent{
			Name: "Ada King", Email: "ada@example.com", RegistrationNumber: "RA100", Password: "unguessable-9",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ada King", updated.Name)

		got, err := env.client.Students().GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("retrieve missing is 404", func(t *testing.T) {
		_, err := env.client.Students().GetByID(ctx, 9999)
		var apiErr *core.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.True(t, apiErr.NotFound())
	})

	t.Run("list pages and sorts", func(t *testing.T) {
		env.createStudent(t, "Zoe Last", "zoe@example.com", "RA200")
		page, err := env.client.Students().List(ctx, 0, 10, "")
		require.NoError(t, err)
		assert.Equal(t, 2, page.TotalElements)
		assert.Equal(t, "Ada King", page.Content[0].Name, "default order is name,asc")

		page, err = env.client.Students().List(ctx, 0, 10, "name,desc")
		require.NoError(t, err)
		assert.Equal(t, "Zoe Last", page.Content[0].Name)

		page, err = env.client.Students().List(ctx, 0, 1, "")
		require.NoError(t, err)
		assert.Len(t, page.Content, 1)
		assert.Equal(t, 2, page.TotalPages)
		assert.False(t, page.Last)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, env.client.Students().Delete(ctx, created.ID))
		_, err := env.client.Students().GetByID(ctx, created.ID)
		var apiErr *core.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.True(t, apiErr.NotFound())
	})
}

func Test_roleEnforcement(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	env.loginAdmin(t)

	tch := env.createTeacher(t, "Grace Hopper", "grace@example.com")
	std := env.createStudent(t, "Ada Lovelace", "ada@example.com", "RA100")
	_, err := env.client.Disciplines().Create(ctx, discipline.NewDiscipline{Name: "Compilers", Code: "CC101"})
	require.NoError(t, err)
	env.store.Logout(ctx)

	t.Run("unauthenticated requests are rejected", func(t *testing.T) {
		_, err := env.client.Students().List(ctx, 0, 10, "")
		var apiErr *core.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 401, apiErr.StatusCode)
	})

	t.Run("student", func(t *testing.T) {
		require.NoError(t, env.store.Login(ctx, "ada@example.com", "unguessable-9"))
		defer env.store.Logout(ctx)
		assert.Equal(t, session.RoleStudent, env.store.Principal().Role)

		// can see their own record and the course catalog
		me, err := env.client.Students().Me(ctx)
		require.NoError(t, err)
		assert.Equal(t, std.ID, me.ID)
		_, err = env.client.Disciplines().List(ctx, 0, 10, "")
		assert.NoError(t, err)

		// everything staff-only is forbidden
		_, err = env.client.Students().List(ctx, 0, 10, "")
		var apiErr *core.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 403, apiErr.StatusCode)
		assert.Equal(t, "permission denied", apiErr.Message)

		_, err = env.client.Teachers().Me(ctx)
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 403, apiErr.StatusCode)
	})

	t.Run("teacher", func(t *testing.T) {
		require.NoError(t, env.store.Login(ctx, "grace@example.com", "unguessable-9"))
		defer env.store.Logout(ctx)
		assert.Equal(t, session.RoleTeacher, env.store.Principal().Role)

		me, err := env.client.Teachers().Me(ctx)
		require.NoError(t, err)
		assert.Equal(t, tch.ID, me.ID)

		// teachers browse students but cannot manage them
		_, err = env.client.Students().List(ctx, 0, 10, "")
		assert.NoError(t, err)
		var apiErr *core.APIError
		_, err = env.client.Students().Create(ctx, student.NewStudent{
			Name: "X", Email: "x@example.com", RegistrationNumber: "RA999", Password: "unguessable-9",
		})
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 403, apiErr.StatusCode)

		// and teacher administration is admin-only
		_, err = env.client.Teachers().List(ctx, 0, 10, "")
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 403, apiErr.StatusCode)
	})
}

func Test_disciplines(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	env.loginAdmin(t)

	tch := env.createTeacher(t, "Grace Hopper", "grace@example.com")

	created, err := env.client.Disciplines().Create(ctx, discipline.NewDiscipline{
		Name: "Compilers", Code: "CC101", Workload: 60, TeacherID: null.IntFrom(tch.ID),
	})
	require.NoError(t, err)
	require.NotNil(t, created.Teacher, "the professor comes back expanded")
	assert.Equal(t, "Grace Hopper", created.Teacher.Name)

	t.Run("duplicate code rejected", func(t *testing.T) {
		_, err := env.client.Disciplines().Create(ctx, discipline.NewDiscipline{Name: "Other", Code: "CC101"})
		var apiErr *core.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.StatusCode)
	})

	t.Run("unknown professor rejected", func(t *testing.T) {
		_, err := env.client.Disciplines().Create(ctx, discipline.NewDiscipline{
			Name: "Ghost", Code: "GH101", TeacherID: null.IntFrom(9999),
		})
		var apiErr *core.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.StatusCode)
	})

	t.Run("clearing the assignment", func(t *testing.T) {
		updated, err := env.client.Disciplines().Update(ctx, created.ID, discipline.NewDiscipline{
			Name: "Compilers", Code: "CC101", Workload: 60,
		})
		require.NoError(t, err)
		assert.Nil(t, updated.Teacher)
	})

	t.Run("deleting the professor unassigns", func(t *testing.T) {
		d2, err := env.client.Disciplines().Update(ctx, created.ID, discipline.NewDiscipline{
			Name: "Compilers", Code: "CC101", Workload: 60, TeacherID: null.IntFrom(tch.ID),
		})
		require.NoError(t, err)
		require.NotNil(t, d2.Teacher)

		require.NoError(t, env.client.Teachers().Delete(ctx, tch.ID))
		got, err := env.client.Disciplines().GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Teacher)
	})
}

func Test_registrations(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	env.loginAdmin(t)

	std := env.createStudent(t, "Ada Lovelace", "ada@example.com", "RA100")
	d, err := env.client.Disciplines().Create(ctx, discipline.NewDiscipline{Name: "Compilers", Code: "CC101", Workload: 60})
	require.NoError(t, err)

	reg, err := env.client.Registrations().Create(ctx, registration.NewRegistration{
		StudentID: std.ID, DisciplineID: d.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, registration.StatusPending, reg.Status)
	assert.Equal(t, std.ID, reg.Student.ID)
	assert.Equal(t, "RA100", reg.Student.RegistrationNumber)
	assert.Equal(t, d.ID, reg.Discipline.ID)
	assert.False(t, reg.EnrolledAt.IsZero())

	t.Run("duplicate enrollment rejected", func(t *testing.T) {
		_, err := env.client.Registrations().Create(ctx, registration.NewRegistration{
			StudentID: std.ID, DisciplineID: d.ID,
		})
		var apiErr *core.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.StatusCode)
	})

	t.Run("status derives from the scores", func(t *testing.T) {
		got, err := env.client.Registrations().UpdateNotes(ctx, reg.ID, registration.Notes{Score1: null.Float64From(8)})
		require.NoError(t, err)
		assert.Equal(t, registration.StatusPending, got.Status, "one score is not enough to decide")

		got, err = env.client.Registrations().UpdateNotes(ctx, reg.ID, registration.Notes{Score2: null.Float64From(6)})
		require.NoError(t, err)
		assert.Equal(t, registration.StatusApproved, got.Status, "average 7.0 passes")

		got, err = env.client.Registrations().UpdateNotes(ctx, reg.ID, registration.Notes{
			Score1: null.Float64From(4), Score2: null.Float64From(5),
		})
		require.NoError(t, err)
		assert.Equal(t, registration.StatusFailed, got.Status)
	})

	t.Run("out-of-range score rejected", func(t *testing.T) {
		_, err := env.client.Registrations().UpdateNotes(ctx, reg.ID, registration.Notes{Score1: null.Float64From(11)})
		var apiErr *core.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.StatusCode)
	})

	t.Run("deleting the student cascades", func(t *testing.T) {
		require.NoError(t, env.client.Students().Delete(ctx, std.ID))
		_, err := env.client.Registrations().GetByID(ctx, reg.ID)
		var apiErr *core.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.True(t, apiErr.NotFound())
	})
}
