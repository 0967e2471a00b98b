// Package sirenhttp writes Siren responses using net/http.
package sirenhttp

import (
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	siren "github.com/ccbrown/siren-fu"
)

// ApplyHeaders adds the response's headers to h, then sets the Content-Type to siren.MediaType
// regardless of what's already there.
func ApplyHeaders(h http.Header, resp *siren.EncodedResponse) {
	for _, header := range resp.Headers {
		h.Add(header.Name, header.Value)
	}
	h.Set("Content-Type", siren.MediaType)
}

// Write encodes r and writes it to w. If r cannot be encoded, nothing is written and the error is
// returned.
func Write(w http.ResponseWriter, r siren.ResponseEncoder) error {
	resp, err := r.EncodeResponse()
	if err != nil {
		return err
	}
	return WriteEncoded(w, resp)
}

// WriteEncoded writes an already encoded response to w.
func WriteEncoded(w http.ResponseWriter, resp *siren.EncodedResponse) error {
	ApplyHeaders(w.Header(), resp)
	w.Header().Set("Content-Length", strconv.Itoa(len(resp.Body)))
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write(resp.Body); err != nil {
		return errors.Wrap(err, "error writing siren response")
	}
	return nil
}

// Handler serves Siren responses produced by a function.
type Handler struct {
	// If nil, logrus.StandardLogger() is used.
	Logger logrus.FieldLogger

	// Resolve produces the response for a request. If it returns nil, a 404 is written instead.
	Resolve func(r *http.Request) siren.ResponseEncoder
}

// HandlerFunc returns a handler for f that logs to the standard logger.
func HandlerFunc(f func(r *http.Request) siren.ResponseEncoder) *Handler {
	return &Handler{
		Resolve: f,
	}
}

func (h *Handler) logger() logrus.FieldLogger {
	if h.Logger == nil {
		return logrus.StandardLogger()
	}
	return h.Logger
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := h.Resolve(r)
	if resp == nil {
		http.NotFound(w, r)
		return
	}

	encoded, err := resp.EncodeResponse()
	if err != nil {
		h.logger().WithError(err).WithField("path", r.URL.Path).Error("unable to encode siren response")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if err := WriteEncoded(w, encoded); err != nil {
		// the client is most likely gone
		h.logger().WithError(err).WithField("path", r.URL.Path).Debug("unable to write siren response")
	}
}
