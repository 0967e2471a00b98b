// Package sirengin writes Siren responses from gin handlers.
package sirengin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	siren "github.com/ccbrown/siren-fu"
	"github.com/ccbrown/siren-fu/sirenhttp"
)

// Render encodes r and writes it as the response. If r cannot be encoded, the error is attached to
// the context and the request is aborted with a 500.
func Render(c *gin.Context, r siren.ResponseEncoder) {
	resp, err := r.EncodeResponse()
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	// gin only writes a content type if there isn't one already, so this has to be set first.
	sirenhttp.ApplyHeaders(c.Writer.Header(), resp)
	c.Data(resp.StatusCode, siren.MediaType, resp.Body)
}

// Handler returns a gin handler that renders the result of f. If f returns nil, a 404 is written
// instead.
func Handler(f func(c *gin.Context) siren.ResponseEncoder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if r := f(c); r != nil {
			Render(c, r)
		} else {
			c.AbortWithStatus(http.StatusNotFound)
		}
	}
}
