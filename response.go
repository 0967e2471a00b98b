package siren

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/http/httpguts"
)

// Header is a single header name/value pair. A name may appear more than once in a response.
type Header struct {
	Name  string
	Value string
}

// Response wraps a document with the status code and headers that should accompany it.
type Response[T any] struct {
	// The status code of the response. If zero, http.StatusOK is used.
	StatusCode int

	// Headers to attach to the response, in order. Any Content-Type header is replaced with
	// MediaType when the response is encoded.
	Headers []Header

	Document Document[T]

	err error
}

// NewResponse creates a successful response for the given document.
func NewResponse[T any](document Document[T]) Response[T] {
	return Response[T]{
		StatusCode: http.StatusOK,
		Document:   document,
	}
}

// WithStatusCode sets the status code of the response.
func (r Response[T]) WithStatusCode(code int) Response[T] {
	r.StatusCode = code
	return r
}

// WithHeader appends a header to the response. If the name or value cannot be written to an HTTP
// response, the failure is available via Err and the response can no longer be encoded.
func (r Response[T]) WithHeader(name, value string) Response[T] {
	if r.err == nil {
		if !httpguts.ValidHeaderFieldName(name) {
			r.err = errors.Wrapf(ErrInvalidHeader, "invalid header name %q", name)
		} else if !httpguts.ValidHeaderFieldValue(value) {
			r.err = errors.Wrapf(ErrInvalidHeader, "invalid value for header %v", name)
		}
	}
	r.Headers = appendOne(r.Headers, Header{
		Name:  name,
		Value: value,
	})
	return r
}

// Err returns the first failure encountered while building the response or its document.
func (r Response[T]) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.Document.Err()
}

// EncodedResponse is a fully encoded response, ready to be copied to a transport.
type EncodedResponse struct {
	StatusCode int

	// The headers to write, in order. The last header is always the Content-Type.
	Headers []Header

	Body []byte
}

// ResponseEncoder is implemented by Document and Response, and is what transport adapters
// consume.
type ResponseEncoder interface {
	EncodeResponse() (*EncodedResponse, error)
}

var (
	_ ResponseEncoder = Response[struct{}]{}
	_ ResponseEncoder = Document[struct{}]{}
)

// EncodeResponse encodes the response. If any part of the response failed to build, an error is
// returned and nothing is produced.
func (r Response[T]) EncodeResponse() (*EncodedResponse, error) {
	if r.err != nil {
		return nil, r.err
	}

	body, err := r.Document.MarshalSiren()
	if err != nil {
		return nil, err
	}

	status := r.StatusCode
	if status == 0 {
		status = http.StatusOK
	}

	headers := make([]Header, 0, len(r.Headers)+1)
	for _, h := range r.Headers {
		if !strings.EqualFold(h.Name, "Content-Type") {
			headers = append(headers, h)
		}
	}
	headers = append(headers, Header{
		Name:  "Content-Type",
		Value: MediaType,
	})

	return &EncodedResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       body,
	}, nil
}
