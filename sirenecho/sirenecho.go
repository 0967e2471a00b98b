// Package sirenecho writes Siren responses from echo handlers.
package sirenecho

import (
	"net/http"

	"github.com/labstack/echo/v4"

	siren "github.com/ccbrown/siren-fu"
	"github.com/ccbrown/siren-fu/sirenhttp"
)

// Render encodes r and writes it as the response. If r cannot be encoded, nothing is written and a
// 500 *echo.HTTPError wrapping the failure is returned for echo's error handler.
func Render(c echo.Context, r siren.ResponseEncoder) error {
	resp, err := r.EncodeResponse()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
	sirenhttp.ApplyHeaders(c.Response().Header(), resp)
	return c.Blob(resp.StatusCode, siren.MediaType, resp.Body)
}

// Handler returns an echo handler that renders the result of f. If f returns nil, echo.ErrNotFound
// is returned instead.
func Handler(f func(c echo.Context) (siren.ResponseEncoder, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		r, err := f(c)
		if err != nil {
			return err
		} else if r == nil {
			return echo.ErrNotFound
		}
		return Render(c, r)
	}
}
