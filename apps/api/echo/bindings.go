package echoapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/sisacad/academico/core"
)

// pwdMaxSim is the similarity ratio above which a password is
// considered too close to another user attribute.
const pwdMaxSim = 0.7

type pageParams struct {
	Page      int
	Size      int
	Sort      string
	Direction string
}

func bindPageParams(ctx echo.Context, defaultSort, defaultDirection string) pageParams {
	params := pageParams{
		Size:      10,
		Sort:      defaultSort,
		Direction: defaultDirection,
	}
	if v, err := strconv.Atoi(ctx.QueryParam("page")); err == nil && v >= 0 {
		params.Page = v
	}
	if v, err := strconv.Atoi(ctx.QueryParam("size")); err == nil && v > 0 {
		params.Size = v
	}
	if v := ctx.QueryParam("sort"); v != "" {
		params.Sort = v
	}
	if v := strings.ToLower(ctx.QueryParam("direction")); v == "asc" || v == "desc" {
		params.Direction = v
	}
	return params
}

func bindID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return 0, errHTTPNotFound
	}
	return id, nil
}

// validatePassword rejects passwords too similar to the user's own
// attributes (name, email and so on).
func validatePassword(pwd string, field string, userAttrs ...string) error {
	p := strings.ToLower(pwd)
	for _, attr := range userAttrs {
		attr = core.CleanString(attr, true)
		if attr == "" {
			continue
		}
		matcher := difflib.NewMatcher(strings.Split(p, ""), strings.Split(attr, ""))
		if matcher.QuickRatio() >= pwdMaxSim {
			return core.NewValidationError(nil, core.FieldError{
				Field: field,
				Error: "password cannot be similar to name, email or registration number",
			})
		}
	}
	return nil
}
