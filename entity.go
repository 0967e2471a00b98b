package siren

// Entity is a sub-entity of a document or representation: either a Link or an
// EmbeddedRepresentation.
//
// Entities carry no discriminator. Each is serialized as its own fields, and readers tell them
// apart by shape: an embedded representation always has "properties", an embedded link never
// does.
type Entity interface {
	isEntity()
}

var (
	_ Entity = Link{}
	_ Entity = EmbeddedRepresentation{}
)
