package siren

import (
	"encoding/json"
)

// Fields represent controls inside of actions.
type Field struct {
	// A name describing the control. Field names should be unique within the set of fields for
	// an action.
	Name string `json:"name"`

	// Describes aspects of the field based on the current representation.
	Class []string `json:"class,omitempty"`

	// The input type of the field. This may include any of the input types specified in HTML5.
	InputType *string `json:"type,omitempty"`

	// A value assigned to the field. It's converted to JSON when assigned via WithValue.
	Value json.RawMessage `json:"value,omitempty"`

	// Textual annotation of the field.
	Title *string `json:"title,omitempty"`

	err error
}

// NewField creates a field with the given name.
func NewField(name string) Field {
	return Field{
		Name: name,
	}
}

// With applies f to the field.
func (f Field) With(fn func(Field) Field) Field {
	return fn(f)
}

// WithClass appends a class to the field.
func (f Field) WithClass(class string) Field {
	f.Class = appendOne(f.Class, class)
	return f
}

// WithType sets the input type of the field.
func (f Field) WithType(inputType string) Field {
	f.InputType = stringPtr(inputType)
	return f
}

// WithValue sets the value of the field. The value is converted to JSON immediately. If it
// cannot be represented, the failure is available via Err and the field can no longer be
// serialized.
func (f Field) WithValue(value interface{}) Field {
	v, err := toValue(value)
	if err != nil {
		if f.err == nil {
			f.err = err
		}
		f.Value = nil
		return f
	}
	f.Value = v
	return f
}

// WithTitle sets the title of the field.
func (f Field) WithTitle(title string) Field {
	f.Title = stringPtr(title)
	return f
}

// Err returns the first failure encountered while building the field.
func (f Field) Err() error {
	return f.err
}

func (f Field) MarshalJSON() ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	type plain Field
	return codec.Marshal(plain(f))
}
