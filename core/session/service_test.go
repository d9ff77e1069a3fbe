package session

import (
	"context"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/sisacad/academico/core"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

type memStorage map[string]string

func (s memStorage) Get(key string) (string, bool) { v, ok := s[key]; return v, ok }
func (s memStorage) Set(key, value string) error   { s[key] = value; return nil }
func (s memStorage) Delete(keys ...string) error {
	for _, k := range keys {
		delete(s, k)
	}
	return nil
}

type fakeAuthClient struct {
	result     LoginResult
	loginErr   error
	logoutErr  error
	gotEmail   string
	gotPwd     string
	logoutTok  string
	logoutHits int
}

func (f *fakeAuthClient) Login(ctx context.Context, email, senha string) (LoginResult, error) {
	f.gotEmail, f.gotPwd = email, senha
	if f.loginErr != nil {
		return LoginResult{}, f.loginErr
	}
	return f.result, nil
}

func (f *fakeAuthClient) Logout(ctx context.Context, accessToken string) error {
	f.logoutHits++
	f.logoutTok = accessToken
	return f.logoutErr
}

func validResult() LoginResult {
	return LoginResult{
		AccessToken: "tok-123",
		TokenType:   "Bearer",
		ExpiresIn:   86400,
		Principal:   Principal{ID: 7, Name: "Ada", Email: "ada@example.com", Role: RoleAdmin},
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()})
	ss, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signedToken() failed: %v", err)
	}
	return ss
}

func Test_Store_Login(t *testing.T) {
	client := &fakeAuthClient{result: validResult()}
	storage := memStorage{}
	s := NewStore(client, storage, nopLogger{})

	err := s.Login(context.Background(), "  Ada@Example.COM ", "hunter22")

	assert.NoError(t, err)
	assert.Equal(t, "ada@example.com", client.gotEmail, "email is trimmed and lowered before it leaves")
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "tok-123", s.Token())
	if p := s.Principal(); assert.NotNil(t, p) {
		assert.Equal(t, RoleAdmin, p.Role)
	}

	// the session survives in storage for the next process
	tok, ok := storage.Get("accessToken")
	assert.True(t, ok)
	assert.Equal(t, "tok-123", tok)
	_, ok = storage.Get("userInfo")
	assert.True(t, ok)
}

func Test_Store_Login_failures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{name: "bad credentials", err: core.NewAPIError(401, "unauthorized"), wantMsg: "invalid credentials"},
		{name: "endpoint missing", err: core.NewAPIError(404, "not found"), wantMsg: "service not found"},
		{name: "server blew up", err: core.NewAPIError(500, "oops"), wantMsg: "server error"},
		{name: "other status", err: core.NewAPIError(418, "teapot"), wantMsg: "login failed"},
		{name: "transport error", err: errors.New("dial tcp: connection refused"), wantMsg: "login failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeAuthClient{loginErr: tt.err}
			s := NewStore(client, memStorage{}, nopLogger{})

			err := s.Login(context.Background(), "a@b.co", "pwd")

			var authErr *AuthError
			if assert.ErrorAs(t, err, &authErr) {
				assert.Equal(t, tt.wantMsg, authErr.Message)
			}
			assert.False(t, s.IsAuthenticated())
		})
	}
}

func Test_Store_Login_rejectsBadServerResponse(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LoginResult)
	}{
		{name: "zero principal id", mutate: func(r *LoginResult) { r.Principal.ID = 0 }},
		{name: "invalid role", mutate: func(r *LoginResult) { r.Principal.Role = "ROLE_NOPE" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validResult()
			tt.mutate(&res)
			s := NewStore(&fakeAuthClient{result: res}, memStorage{}, nopLogger{})

			err := s.Login(context.Background(), "a@b.co", "pwd")

			var authErr *AuthError
			if assert.ErrorAs(t, err, &authErr) {
				assert.Equal(t, "invalid server response", authErr.Message)
			}
			assert.False(t, s.IsAuthenticated())
		})
	}
}

func Test_Store_Logout(t *testing.T) {
	t.Run("notifies server and clears", func(t *testing.T) {
		client := &fakeAuthClient{result: validResult()}
		storage := memStorage{}
		s := NewStore(client, storage, nopLogger{})
		assert.NoError(t, s.Login(context.Background(), "a@b.co", "pwd"))

		s.Logout(context.Background())

		assert.Equal(t, 1, client.logoutHits)
		assert.Equal(t, "tok-123", client.logoutTok)
		assert.False(t, s.IsAuthenticated())
		_, ok := storage.Get("accessToken")
		assert.False(t, ok)
	})

	t.Run("server failure still clears locally", func(t *testing.T) {
		client := &fakeAuthClient{result: validResult(), logoutErr: errors.New("boom")}
		s := NewStore(client, memStorage{}, nopLogger{})
		assert.NoError(t, s.Login(context.Background(), "a@b.co", "pwd"))

		s.Logout(context.Background())

		assert.False(t, s.IsAuthenticated())
	})

	t.Run("logout when signed out skips the server", func(t *testing.T) {
		client := &fakeAuthClient{}
		s := NewStore(client, memStorage{}, nopLogger{})

		s.Logout(context.Background())

		assert.Equal(t, 0, client.logoutHits)
	})
}

func Test_Store_restore(t *testing.T) {
	goodToken := func(t *testing.T) string { return signedToken(t, time.Now().Add(time.Hour)) }

	tests := []struct {
		name     string
		storage  func(t *testing.T) memStorage
		wantAuth bool
	}{
		{
			name: "full session restores",
			storage: func(t *testing.T) memStorage {
				return memStorage{
					"accessToken": goodToken(t),
					"userInfo":    `{"id":7,"nome":"Ada","email":"ada@example.com","role":"ROLE_ADMIN"}`,
				}
			},
			wantAuth: true,
		},
		{
			name:     "nothing persisted",
			storage:  func(t *testing.T) memStorage { return memStorage{} },
			wantAuth: false,
		},
		{
			name: "token without user info",
			storage: func(t *testing.T) memStorage {
				return memStorage{"accessToken": goodToken(t)}
			},
			wantAuth: false,
		},
		{
			name: "user info without token",
			storage: func(t *testing.T) memStorage {
				return memStorage{"userInfo": `{"id":7,"role":"ROLE_ADMIN"}`}
			},
			wantAuth: false,
		},
		{
			name: "corrupted user info",
			storage: func(t *testing.T) memStorage {
				return memStorage{"accessToken": goodToken(t), "userInfo": `{not json`}
			},
			wantAuth: false,
		},
		{
			name: "zero principal id",
			storage: func(t *testing.T) memStorage {
				return memStorage{"accessToken": goodToken(t), "userInfo": `{"id":0,"role":"ROLE_ADMIN"}`}
			},
			wantAuth: false,
		},
		{
			name: "invalid role",
			storage: func(t *testing.T) memStorage {
				return memStorage{"accessToken": goodToken(t), "userInfo": `{"id":7,"role":"ADMIN"}`}
			},
			wantAuth: false,
		},
		{
			name: "expired token",
			storage: func(t *testing.T) memStorage {
				return memStorage{
					"accessToken": signedToken(t, time.Now().Add(-time.Hour)),
					"userInfo":    `{"id":7,"role":"ROLE_ADMIN"}`,
				}
			},
			wantAuth: false,
		},
		{
			name: "opaque token without exp claim is kept",
			storage: func(t *testing.T) memStorage {
				return memStorage{
					"accessToken": "opaque-token",
					"userInfo":    `{"id":7,"role":"ROLE_ADMIN"}`,
				}
			},
			wantAuth: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := tt.storage(t)
			s := NewStore(&fakeAuthClient{}, storage, nopLogger{})

			assert.Equal(t, tt.wantAuth, s.IsAuthenticated())
			if !tt.wantAuth {
				// a bad persisted session is force-cleared
				_, ok := storage.Get("accessToken")
				assert.False(t, ok)
				_, ok = storage.Get("userInfo")
				assert.False(t, ok)
			}
		})
	}
}
