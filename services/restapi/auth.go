package restapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/sisacad/academico/core"
	"github.com/sisacad/academico/core/session"
)

// AuthClient implements session.AuthClient against /auth.
type AuthClient struct {
	c *Client
}

var _ session.AuthClient = (*AuthClient)(nil)

type (
	loginRequest struct {
		Email string `json:"email"`
		Senha string `json:"senha"`
	}

	loginResponse struct {
		AccessToken  string    `json:"accessToken"`
		RefreshToken string    `json:"refreshToken"`
		TokenType    string    `json:"tipo"`
		ExpiresIn    int64     `json:"expiresIn"`
		User         loginUser `json:"usuario"`
	}

	loginUser struct {
		ID    int    `json:"id"`
		Name  string `json:"nome"`
		Email string `json:"email"`
		Type  string `json:"tipo"`
	}
)

func (a *AuthClient) Login(ctx context.Context, email, senha string) (session.LoginResult, error) {
	var res loginResponse
	err := a.c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Senha: senha}, &res)
	if err != nil {
		return session.LoginResult{}, err
	}
	if res.AccessToken == "" || res.User.ID == 0 {
		return session.LoginResult{}, core.NewAPIError(http.StatusBadGateway, "invalid server response")
	}

	role, err := session.RoleFromUserType(res.User.Type)
	if err != nil {
		return session.LoginResult{}, err
	}

	name := res.User.Name
	if name == "" {
		// servers may omit the display name; fall back to the email local part
		name = strings.SplitN(res.User.Email, "@", 2)[0]
	}

	tokenType := res.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	expiresIn := res.ExpiresIn
	if expiresIn == 0 {
		expiresIn = 86400
	}

	return session.LoginResult{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		TokenType:    tokenType,
		ExpiresIn:    expiresIn,
		Principal: session.Principal{
			ID:    res.User.ID,
			Name:  name,
			Email: res.User.Email,
			Role:  role,
		},
	}, nil
}

func (a *AuthClient) Logout(ctx context.Context, accessToken string) error {
	// the store passes the token it is about to discard; the shared
	// transport already attaches it while it is still current
	_ = accessToken
	return a.c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}
