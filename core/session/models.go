package session

import (
	"context"

	"github.com/pkg/errors"
)

// Roles, as prefixed by the API ("ADMIN" user type -> "ROLE_ADMIN").
const (
	RoleAdmin   Role = "ROLE_ADMIN"
	RoleTeacher Role = "ROLE_PROFESSOR"
	RoleStudent Role = "ROLE_ALUNO"
)

type Role string

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// RoleFromUserType maps the raw user type returned by the API to a Role.
// Unrecognized types are an error, never a silently prefixed string.
func RoleFromUserType(userType string) (Role, error) {
	switch userType {
	case "ADMIN":
		return RoleAdmin, nil
	case "PROFESSOR":
		return RoleTeacher, nil
	case "ALUNO":
		return RoleStudent, nil
	}
	return "", errors.Errorf("unknown user type %q", userType)
}

// Principal is the authenticated user's identity, held client-side after login.
type Principal struct {
	ID    int    `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Credentials is the opaque bearer credential tied 1:1 to a Principal.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult is what the auth endpoint yields on a successful login.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int64
	Principal    Principal
}

// AuthClient is the transport half of authentication; implemented by
// services/restapi. Non-2xx responses surface as *core.APIError.
type AuthClient interface {
	Login(ctx context.Context, email, senha string) (LoginResult, error)
	Logout(ctx context.Context, accessToken string) error
}

// Storage is a durable client-side key/value store; implemented by
// storage/session. Absent or malformed values read back as not-present.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(keys ...string) error
}

// AuthError is a login failure with a status-coded, user-facing message.
type AuthError struct {
	StatusCode int
	Message    string
}

func (err *AuthError) Error() string { return err.Message }
