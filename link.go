package siren

// Links represent navigational transitions. A Link can also be embedded as a sub-entity of a
// document or representation, in which case it's serialized without properties.
type Link struct {
	// Describes the nature of the link relative to the current entity.
	Rel []string `json:"rel,omitempty"`

	// Describes aspects of the link based on the current representation.
	Class []string `json:"class,omitempty"`

	// The URI of the linked resource.
	Href string `json:"href"`

	// Text describing the nature of the link.
	Title *string `json:"title,omitempty"`

	// The media type of the linked resource.
	MediaType *string `json:"type,omitempty"`
}

// NewLink creates a link to the given href.
func NewLink(href string) Link {
	return Link{
		Href: href,
	}
}

func (Link) isEntity() {}

// With applies f to the link. This can be used to build links conditionally or in loops without
// breaking a chain.
func (l Link) With(f func(Link) Link) Link {
	return f(l)
}

// WithClass appends a class to the link.
func (l Link) WithClass(class string) Link {
	l.Class = appendOne(l.Class, class)
	return l
}

// WithRel appends a link relation to the link.
func (l Link) WithRel(rel string) Link {
	l.Rel = appendOne(l.Rel, rel)
	return l
}

// WithType sets the media type of the linked resource.
func (l Link) WithType(mediaType string) Link {
	l.MediaType = stringPtr(mediaType)
	return l
}

// WithTitle sets the title of the link.
func (l Link) WithTitle(title string) Link {
	l.Title = stringPtr(title)
	return l
}
