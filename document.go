package siren

import (
	"github.com/pkg/errors"
)

// Document is the root of a Siren response. T is the type of the resource's properties.
type Document[T any] struct {
	// Describes the nature of the entity's content based on the current representation.
	Class []string `json:"class,omitempty"`

	// The state of the entity. This is always serialized, even if it's empty.
	Properties T `json:"properties"`

	// Related sub-entities, each either an embedded link or an embedded representation.
	Entities []Entity `json:"entities,omitempty"`

	// Navigational links that communicate ways to navigate outside the entity graph.
	Links []Link `json:"links,omitempty"`

	// Behaviors the entity exposes.
	Actions []Action `json:"actions,omitempty"`

	// Descriptive text about the entity.
	Title *string `json:"title,omitempty"`
}

// NewDocument creates a document with the given properties.
func NewDocument[T any](properties T) Document[T] {
	return Document[T]{
		Properties: properties,
	}
}

// With applies f to the document.
func (d Document[T]) With(f func(Document[T]) Document[T]) Document[T] {
	return f(d)
}

// WithClass appends a class to the document.
func (d Document[T]) WithClass(class string) Document[T] {
	d.Class = appendOne(d.Class, class)
	return d
}

// WithEmbeddedLink appends a link sub-entity to the document.
func (d Document[T]) WithEmbeddedLink(link Link) Document[T] {
	d.Entities = appendOne[Entity](d.Entities, link)
	return d
}

// WithEmbeddedRepresentation appends a representation sub-entity to the document.
func (d Document[T]) WithEmbeddedRepresentation(representation EmbeddedRepresentation) Document[T] {
	d.Entities = appendOne[Entity](d.Entities, representation)
	return d
}

// WithLink appends a navigational link to the document.
func (d Document[T]) WithLink(link Link) Document[T] {
	d.Links = appendOne(d.Links, link)
	return d
}

// WithAction appends an action to the document.
func (d Document[T]) WithAction(action Action) Document[T] {
	d.Actions = appendOne(d.Actions, action)
	return d
}

// WithTitle sets the title of the document.
func (d Document[T]) WithTitle(title string) Document[T] {
	d.Title = stringPtr(title)
	return d
}

// Err returns the first failure encountered while building any of the document's sub-entities or
// actions.
func (d Document[T]) Err() error {
	return firstErr(d.Entities, d.Actions)
}

// MarshalSiren returns the document's JSON encoding. If any part of the document failed to build,
// or the properties cannot be represented as JSON, an error is returned and no output is produced.
func (d Document[T]) MarshalSiren() ([]byte, error) {
	if err := d.Err(); err != nil {
		return nil, err
	}
	buf, err := codec.Marshal(d)
	if err != nil {
		if errors.Is(err, ErrUnrepresentableValue) {
			return nil, err
		}
		return nil, errors.Wrap(ErrUnrepresentableValue, err.Error())
	}
	return buf, nil
}

// Response wraps the document in a response with the default status code.
func (d Document[T]) Response() Response[T] {
	return NewResponse(d)
}

// EncodeResponse encodes the document as a response with the default status code.
func (d Document[T]) EncodeResponse() (*EncodedResponse, error) {
	return d.Response().EncodeResponse()
}

// Marshaler is implemented by values that encode to a complete Siren document.
type Marshaler interface {
	MarshalSiren() ([]byte, error)
}

var _ Marshaler = Document[struct{}]{}
