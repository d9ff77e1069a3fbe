package restapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/sisacad/academico/core"
	"github.com/sisacad/academico/core/registration"
	"github.com/sisacad/academico/core/session"
	"github.com/sisacad/academico/core/student"
)

func notesFrom(n1, n2 float64) registration.Notes {
	return registration.Notes{Score1: null.Float64From(n1), Score2: null.Float64From(n2)}
}

type staticToken string

func (t staticToken) Token() string { return string(t) }

func testClient(t *testing.T, handler http.HandlerFunc, token string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	conf := &core.Config{APIBaseURL: srv.URL, RequestTimeout: 5 * time.Second}
	return NewClient(conf, staticToken(token)), srv
}

func Test_Client_requestHeaders(t *testing.T) {
	var got http.Header
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"id":1,"name":"Ada","email":"a@b.co","registrationNumber":"R1"}`))
	}, "tok-abc")

	_, err := c.Students().GetByID(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "Bearer tok-abc", got.Get("Authorization"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
}

func Test_Client_noAuthHeaderWhenSignedOut(t *testing.T) {
	var got string
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}, "")

	_, _ = c.Students().GetByID(context.Background(), 1)

	assert.Empty(t, got)
}

func Test_Client_errorNormalization(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "message field", status: 400, body: `{"message":"Email already in use"}`, wantMsg: "Email already in use"},
		{name: "error field", status: 401, body: `{"error":"invalid credentials"}`, wantMsg: "invalid credentials"},
		{name: "erro field", status: 400, body: `{"erro":"dados invalidos"}`, wantMsg: "dados invalidos"},
		{name: "detail field", status: 404, body: `{"detail":"record not found"}`, wantMsg: "record not found"},
		{name: "errors array", status: 400, body: `{"errors":[{"message":"first"},{"message":"second"}]}`, wantMsg: "first"},
		{name: "plain json string", status: 500, body: `"upstream exploded"`, wantMsg: "upstream exploded"},
		{name: "empty body", status: 502, body: ``, wantMsg: "request failed"},
		{name: "unrecognized shape", status: 500, body: `{"trace":"..."}`, wantMsg: "request failed"},
		{name: "non-json body", status: 500, body: `<html>oops</html>`, wantMsg: "request failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}, "")

			_, err := c.Students().GetByID(context.Background(), 1)

			var apiErr *core.APIError
			if assert.ErrorAs(t, err, &apiErr) {
				assert.Equal(t, tt.status, apiErr.StatusCode)
				assert.Equal(t, tt.wantMsg, apiErr.Message)
			}
		})
	}
}

func Test_Client_pageQuery(t *testing.T) {
	tests := []struct {
		name          string
		sort          string
		wantSort      string
		wantDirection string
	}{
		{name: "default sort", sort: "", wantSort: "name", wantDirection: "asc"},
		{name: "explicit field and direction", sort: "email,desc", wantSort: "email", wantDirection: "desc"},
		{name: "field only", sort: "registrationNumber", wantSort: "registrationNumber", wantDirection: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string][]string
			c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				got = r.URL.Query()
				json.NewEncoder(w).Encode(map[string]interface{}{"content": []interface{}{}})
			}, "")

			_, err := c.Students().List(context.Background(), 2, 20, tt.sort)

			assert.NoError(t, err)
			assert.Equal(t, "2", got["page"][0])
			assert.Equal(t, "20", got["size"][0])
			assert.Equal(t, tt.wantSort, got["sort"][0])
			if tt.wantDirection == "" {
				assert.NotContains(t, got, "direction")
			} else {
				assert.Equal(t, tt.wantDirection, got["direction"][0])
			}
		})
	}
}

func Test_Client_pageEnvelope(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{
			"content":[{"id":1,"name":"Ada","email":"a@b.co","registrationNumber":"R1"}],
			"pageable":{"pageNumber":1,"pageSize":10},
			"totalElements":11,"totalPages":2,
			"first":false,"last":true,"empty":false
		}`)
	}, "")

	page, err := c.Students().List(context.Background(), 1, 10, "")

	assert.NoError(t, err)
	assert.Len(t, page.Content, 1)
	assert.Equal(t, student.Student{ID: 1, Name: "Ada", Email: "a@b.co", RegistrationNumber: "R1"}, page.Content[0])
	assert.Equal(t, 1, page.Pageable.PageNumber)
	assert.Equal(t, 11, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.Last)
}

func Test_AuthClient_Login(t *testing.T) {
	t.Run("maps the full response", func(t *testing.T) {
		var gotBody map[string]string
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/login", r.URL.Path)
			json.NewDecoder(r.Body).Decode(&gotBody)
			io.WriteString(w, `{
				"accessToken":"tok-1","refreshToken":"ref-1","tipo":"Bearer","expiresIn":3600,
				"usuario":{"id":9,"nome":"Ada","email":"ada@b.co","tipo":"PROFESSOR"}
			}`)
		}, "")

		res, err := c.Auth().Login(context.Background(), "ada@b.co", "pwd")

		assert.NoError(t, err)
		assert.Equal(t, map[string]string{"email": "ada@b.co", "senha": "pwd"}, gotBody)
		assert.Equal(t, "tok-1", res.AccessToken)
		assert.Equal(t, session.RoleTeacher, res.Principal.Role)
		assert.Equal(t, 9, res.Principal.ID)
	})

	t.Run("defaults and name fallback", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"accessToken":"tok-1","usuario":{"id":9,"email":"ada@b.co","tipo":"ALUNO"}}`)
		}, "")

		res, err := c.Auth().Login(context.Background(), "ada@b.co", "pwd")

		assert.NoError(t, err)
		assert.Equal(t, "Bearer", res.TokenType)
		assert.EqualValues(t, 86400, res.ExpiresIn)
		assert.Equal(t, "ada", res.Principal.Name)
	})

	t.Run("missing token is an invalid response", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"usuario":{"id":9,"tipo":"ALUNO"}}`)
		}, "")

		_, err := c.Auth().Login(context.Background(), "a@b.co", "pwd")

		var apiErr *core.APIError
		if assert.ErrorAs(t, err, &apiErr) {
			assert.Equal(t, "invalid server response", apiErr.Message)
		}
	})

	t.Run("unknown user type is rejected", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"accessToken":"tok-1","usuario":{"id":9,"tipo":"ROOT"}}`)
		}, "")

		_, err := c.Auth().Login(context.Background(), "a@b.co", "pwd")

		assert.Error(t, err)
		var apiErr *core.APIError
		assert.False(t, errors.As(err, &apiErr), "a role-mapping failure is not an API error")
	})
}

func Test_RegistrationService_UpdateNotes(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody map[string]interface{}
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, `{"id":4,"status":"APROVADA"}`)
	}, "tok")

	reg, err := c.Registrations().UpdateNotes(context.Background(), 4, notesFrom(8.5, 7))

	assert.NoError(t, err)
	assert.Equal(t, "/matriculas/4/notas", gotPath)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, 8.5, gotBody["nota1"])
	assert.Equal(t, 7.0, gotBody["nota2"])
	assert.Equal(t, "APROVADA", reg.Status)
}
