// Package restapi implements the remote service boundaries (auth plus
// the four entity services) over the Academico REST API. The only
// contract the hooks depend on is that every non-2xx response comes back
// as a single-message *core.APIError.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/sisacad/academico/core"
)

const fallbackErrorMessage = "request failed"

// TokenSource yields the current bearer token; empty means
// unauthenticated. The session store is the canonical implementation.
type TokenSource interface {
	Token() string
}

type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
}

func NewClient(conf *core.Config, tokens TokenSource) *Client {
	return &Client{
		base:   strings.TrimRight(conf.APIBaseURL, "/"),
		http:   &http.Client{Timeout: conf.RequestTimeout},
		tokens: tokens,
	}
}

// Typed entity clients sharing this transport.

func (c *Client) Auth() *AuthClient { return &AuthClient{c} }

func (c *Client) Students() *StudentService { return &StudentService{c} }

func (c *Client) Teachers() *TeacherService { return &TeacherService{c} }

func (c *Client) Disciplines() *DisciplineService { return &DisciplineService{c} }

func (c *Client) Registrations() *RegistrationService { return &RegistrationService{c} }

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "sending request")
	}
	defer func() { _ = res.Body.Close() }()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "reading response body")
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return core.NewAPIError(res.StatusCode, normalizeError(data))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.Wrap(err, "decoding response body")
		}
	}
	return nil
}

// normalizeError reduces any error body to one human-readable message:
// a server-supplied message/error/erro/detail field, the first entry of
// an errors[] array, a plain string body, or the generic fallback.
func normalizeError(data []byte) string {
	if len(data) == 0 {
		return fallbackErrorMessage
	}

	var structured struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Erro    string `json:"erro"`
		Detail  string `json:"detail"`
		Errors  []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(data, &structured); err == nil {
		for _, msg := range []string{structured.Message, structured.Error, structured.Erro, structured.Detail} {
			if msg != "" {
				return msg
			}
		}
		if len(structured.Errors) > 0 && structured.Errors[0].Message != "" {
			return structured.Errors[0].Message
		}
		return fallbackErrorMessage
	}

	var plain string
	if err := json.Unmarshal(data, &plain); err == nil && plain != "" {
		return plain
	}
	return fallbackErrorMessage
}

// pageQuery builds the page/size/sort parameters. The sort spec is
// "field" or "field,direction"; an empty spec falls back to the
// entity's default ordering.
func pageQuery(page, size int, sort, defaultSort string) url.Values {
	if sort == "" {
		sort = defaultSort
	}
	q := make(url.Values)
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if sort != "" {
		parts := strings.SplitN(sort, ",", 2)
		q.Set("sort", strings.TrimSpace(parts[0]))
		if len(parts) > 1 {
			q.Set("direction", strings.TrimSpace(parts[1]))
		}
	}
	return q
}
