package siren

import (
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	// ErrUnrepresentableValue is returned when a field value or payload cannot be represented
	// as JSON, e.g. because it contains NaN or a map with unsupported key types.
	ErrUnrepresentableValue = errors.New("value cannot be represented as json")

	// ErrInvalidHeader is returned when a response header name or value cannot be written to
	// an HTTP response.
	ErrInvalidHeader = errors.New("invalid header")
)

// toValue converts v to its structured JSON form.
func toValue(v interface{}) (json.RawMessage, error) {
	buf, err := codec.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(ErrUnrepresentableValue, err.Error())
	}
	return buf, nil
}

// firstErr returns the first failure captured anywhere within the given entities and actions,
// depth-first in document order.
func firstErr(entities []Entity, actions []Action) error {
	for _, e := range entities {
		if r, ok := e.(EmbeddedRepresentation); ok {
			if err := r.Err(); err != nil {
				return err
			}
		}
	}
	for _, a := range actions {
		if err := a.Err(); err != nil {
			return err
		}
	}
	return nil
}
