package session

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/sisacad/academico/core"
)

// storage keys
const (
	accessTokenKey  = "accessToken"
	refreshTokenKey = "refreshToken"
	userInfoKey     = "userInfo"
)

var nowFunc = time.Now // mockable

// Store owns the Principal and Credentials for the lifetime of the
// authenticated session. It is constructed once at startup and injected
// into whatever needs it; restoring any previously persisted session
// happens at construction time.
type Store struct {
	mu      sync.Mutex
	client  AuthClient
	storage Storage
	logger  core.Logger

	principal *Principal
	creds     *Credentials
}

func NewStore(client AuthClient, storage Storage, logger core.Logger) *Store {
	s := &Store{
		client:  client,
		storage: storage,
		logger:  logger,
	}
	s.restore()
	return s
}

// Login authenticates against the API and persists the resulting session.
// Failures surface as *AuthError with a status-coded message; session
// state is left untouched on failure.
func (s *Store) Login(ctx context.Context, email, senha string) error {
	res, err := s.client.Login(ctx, core.CleanString(email, true /* lower */), senha)
	if err != nil {
		return s.loginError(err)
	}
	if !res.Principal.Role.Valid() || res.Principal.ID == 0 {
		return &AuthError{Message: "invalid server response"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.principal = &res.Principal
	s.creds = &Credentials{AccessToken: res.AccessToken, RefreshToken: res.RefreshToken}
	s.persist()
	return nil
}

func (s *Store) loginError(err error) error {
	var apiErr *core.APIError
	if !errors.As(err, &apiErr) {
		return &AuthError{Message: "login failed"}
	}
	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		return &AuthError{StatusCode: apiErr.StatusCode, Message: "invalid credentials"}
	case http.StatusNotFound:
		return &AuthError{StatusCode: apiErr.StatusCode, Message: "service not found"}
	case http.StatusInternalServerError:
		return &AuthError{StatusCode: apiErr.StatusCode, Message: "server error"}
	}
	return &AuthError{StatusCode: apiErr.StatusCode, Message: "login failed"}
}

// Logout notifies the server best-effort (failures are logged and
// swallowed), then unconditionally clears the local session.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	creds := s.creds
	s.mu.Unlock()

	if creds != nil {
		if err := s.client.Logout(ctx, creds.AccessToken); err != nil {
			s.logger.Warn("server logout failed", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds != nil && s.principal != nil
}

// Principal returns a copy of the authenticated principal, or nil.
func (s *Store) Principal() *Principal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.principal == nil {
		return nil
	}
	p := *s.principal
	return &p
}

// Token returns the current bearer token; empty when unauthenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds == nil {
		return ""
	}
	return s.creds.AccessToken
}

// restore reads back any persisted session. A partial or corrupted
// persisted state ("half logged in": principal without token, malformed
// JSON, unparseable id, expired token) is force-cleared.
func (s *Store) restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, tokOK := s.storage.Get(accessTokenKey)
	rawUser, usrOK := s.storage.Get(userInfoKey)
	if !tokOK || !usrOK || token == "" {
		s.clear()
		return
	}

	var p Principal
	if err := json.Unmarshal([]byte(rawUser), &p); err != nil || p.ID == 0 || !p.Role.Valid() {
		s.clear()
		return
	}
	if tokenExpired(token) {
		s.clear()
		return
	}

	refresh, _ := s.storage.Get(refreshTokenKey)
	s.principal = &p
	s.creds = &Credentials{AccessToken: token, RefreshToken: refresh}
}

// tokenExpired peeks at the token's exp claim without verifying the
// signature; only the server can verify, but a locally expired token is
// not worth restoring. Tokens without a readable exp claim are kept.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return nowFunc().After(time.Unix(int64(exp), 0))
}

func (s *Store) persist() {
	if err := s.storage.Set(accessTokenKey, s.creds.AccessToken); err != nil {
		s.logger.Error("persisting access token", err)
		return
	}
	if s.creds.RefreshToken != "" {
		if err := s.storage.Set(refreshTokenKey, s.creds.RefreshToken); err != nil {
			s.logger.Error("persisting refresh token", err)
		}
	}
	data, err := json.Marshal(s.principal)
	if err != nil {
		s.logger.Error("serializing principal", err)
		return
	}
	if err := s.storage.Set(userInfoKey, string(data)); err != nil {
		s.logger.Error("persisting principal", err)
	}
}

func (s *Store) clear() {
	s.principal = nil
	s.creds = nil
	if err := s.storage.Delete(accessTokenKey, refreshTokenKey, userInfoKey); err != nil {
		s.logger.Warn("clearing persisted session", err)
	}
}
