package siren

// Actions show available behaviors an entity exposes.
type Action struct {
	// A string that identifies the action to be performed. Action names must be unique within
	// the set of actions for an entity.
	Name string `json:"name"`

	// Describes the nature of the action based on the current representation.
	Class []string `json:"class,omitempty"`

	// An enumerated attribute mapping to a protocol method. When missing, clients should assume
	// GET.
	Method *string `json:"method,omitempty"`

	// The URI of the action.
	Href string `json:"href"`

	// Descriptive text about the action.
	Title *string `json:"title,omitempty"`

	// The encoding type for the request. When omitted and the fields attribute exists, clients
	// should assume application/x-www-form-urlencoded.
	MediaType *string `json:"type,omitempty"`

	// The input controls of the action.
	Fields []Field `json:"fields,omitempty"`
}

// NewAction creates an action with the given name and target.
func NewAction(name, href string) Action {
	return Action{
		Name: name,
		Href: href,
	}
}

// With applies f to the action. For example, fields can be added from a slice:
//
//	action.With(func(a siren.Action) siren.Action {
//	    for _, name := range names {
//	        a = a.WithField(siren.NewField(name))
//	    }
//	    return a
//	})
func (a Action) With(f func(Action) Action) Action {
	return f(a)
}

// WithClass appends a class to the action.
func (a Action) WithClass(class string) Action {
	a.Class = appendOne(a.Class, class)
	return a
}

// WithType sets the encoding type of the action's request.
func (a Action) WithType(mediaType string) Action {
	a.MediaType = stringPtr(mediaType)
	return a
}

// WithTitle sets the title of the action.
func (a Action) WithTitle(title string) Action {
	a.Title = stringPtr(title)
	return a
}

// WithMethod sets the protocol method of the action.
func (a Action) WithMethod(method string) Action {
	a.Method = stringPtr(method)
	return a
}

// WithField appends a field to the action.
func (a Action) WithField(field Field) Action {
	a.Fields = appendOne(a.Fields, field)
	return a
}

// Err returns the first failure encountered while building the action's fields.
func (a Action) Err() error {
	for _, f := range a.Fields {
		if err := f.Err(); err != nil {
			return err
		}
	}
	return nil
}
