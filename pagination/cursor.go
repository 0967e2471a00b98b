package pagination

import (
	"encoding/base64"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack"
)

// ErrInvalidCursor is returned when a cursor string can't be decoded.
var ErrInvalidCursor = errors.New("invalid cursor")

// SerializeCursor encodes a cursor as an opaque, URL-safe string. The cursor must be able to be
// marshaled by msgpack.
func SerializeCursor(cursor interface{}) (string, error) {
	b, err := msgpack.Marshal(cursor)
	if err != nil {
		return "", errors.Wrap(err, "unable to serialize cursor")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DeserializeCursor is the inverse of SerializeCursor.
func DeserializeCursor[C any](s string) (*C, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidCursor, err.Error())
	}
	var ret C
	if err := msgpack.Unmarshal(b, &ret); err != nil {
		return nil, errors.Wrap(ErrInvalidCursor, err.Error())
	}
	return &ret, nil
}
