package siren

import (
	"encoding/json"
)

// EmbeddedRepresentation is a full representation of a sub-entity. Unlike Document, its payload is
// converted to JSON when it's constructed, which lets representations with different payload
// types share one entities list.
type EmbeddedRepresentation struct {
	// Describes the relationship of the sub-entity to its parent.
	Rel []string `json:"rel,omitempty"`

	// Describes the nature of the entity's content based on the current representation.
	Class []string `json:"class,omitempty"`

	// The converted payload. This is always present, even if the payload was empty.
	Properties json.RawMessage `json:"properties"`

	Entities []Entity `json:"entities,omitempty"`

	Links []Link `json:"links,omitempty"`

	Actions []Action `json:"actions,omitempty"`

	// Descriptive text about the entity.
	Title *string `json:"title,omitempty"`

	err error
}

// NewEmbeddedRepresentation creates a representation with the given payload. The payload is
// converted to JSON immediately. If it cannot be represented, the failure is available via Err and
// the representation can no longer be serialized.
func NewEmbeddedRepresentation(payload interface{}) EmbeddedRepresentation {
	properties, err := toValue(payload)
	return EmbeddedRepresentation{
		Properties: properties,
		err:        err,
	}
}

func (EmbeddedRepresentation) isEntity() {}

// With applies f to the representation.
func (r EmbeddedRepresentation) With(f func(EmbeddedRepresentation) EmbeddedRepresentation) EmbeddedRepresentation {
	return f(r)
}

// WithRel appends a link relation to the representation.
func (r EmbeddedRepresentation) WithRel(rel string) EmbeddedRepresentation {
	r.Rel = appendOne(r.Rel, rel)
	return r
}

// WithClass appends a class to the representation.
func (r EmbeddedRepresentation) WithClass(class string) EmbeddedRepresentation {
	r.Class = appendOne(r.Class, class)
	return r
}

// WithEmbeddedLink appends a link sub-entity to the representation.
func (r EmbeddedRepresentation) WithEmbeddedLink(link Link) EmbeddedRepresentation {
	r.Entities = appendOne[Entity](r.Entities, link)
	return r
}

// WithEmbeddedRepresentation appends a representation sub-entity to the representation.
func (r EmbeddedRepresentation) WithEmbeddedRepresentation(representation EmbeddedRepresentation) EmbeddedRepresentation {
	r.Entities = appendOne[Entity](r.Entities, representation)
	return r
}

// WithLink appends a navigational link to the representation.
func (r EmbeddedRepresentation) WithLink(link Link) EmbeddedRepresentation {
	r.Links = appendOne(r.Links, link)
	return r
}

// WithAction appends an action to the representation.
func (r EmbeddedRepresentation) WithAction(action Action) EmbeddedRepresentation {
	r.Actions = appendOne(r.Actions, action)
	return r
}

// WithTitle sets the title of the representation.
func (r EmbeddedRepresentation) WithTitle(title string) EmbeddedRepresentation {
	r.Title = stringPtr(title)
	return r
}

// Err returns the first failure encountered while building the representation or any of its
// sub-entities and actions.
func (r EmbeddedRepresentation) Err() error {
	if r.err != nil {
		return r.err
	}
	return firstErr(r.Entities, r.Actions)
}

func (r EmbeddedRepresentation) MarshalJSON() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	type plain EmbeddedRepresentation
	return codec.Marshal(plain(r))
}
