package model

import "github.com/google/uuid"

// Handle is the opaque, stable identity of an entity.
type Handle = uuid.UUID

// NilHandle is the zero handle; it never identifies an entity.
var NilHandle = uuid.Nil

// Entity is a node in the source graph. The set of implementations is closed
// to this package.
type Entity interface {
	ID() Handle
	Kind() Kind
	Name() string
	SetName(name string)
	// Owner returns the handle of the entity that structurally owns this one,
	// or NilHandle.
	Owner() Handle

	base() *Base
	cloneEntity() Entity
}

// Base carries the identity and name shared by every entity.
type Base struct {
	id   Handle
	name string
}

// ID returns the entity handle.
func (b *Base) ID() Handle { return b.id }

// Name returns the entity name.
func (b *Base) Name() string { return b.name }

// SetName renames the entity.
func (b *Base) SetName(name string) { b.name = name }

func (b *Base) base() *Base { return b }

// Ref is a reference to an entity whose Go type is T. The handle is checked
// against T once, when the reference is resolved.
type Ref[T Entity] struct {
	id Handle
}

// RefTo returns a reference to e.
func RefTo[T Entity](e T) Ref[T] {
	return Ref[T]{id: e.ID()}
}

// RefID returns a reference to the entity with the given handle.
func RefID[T Entity](id Handle) Ref[T] {
	return Ref[T]{id: id}
}

// ID returns the referenced handle.
func (r Ref[T]) ID() Handle { return r.id }

// IsSet reports whether the reference points anywhere.
func (r Ref[T]) IsSet() bool { return r.id != NilHandle }

// Resolve returns the entity r points to. It fails when the reference is
// unset, dangling, or points to an entity of another type.
func Resolve[T Entity](g *Graph, r Ref[T]) (T, bool) {
	var zero T
	if !r.IsSet() {
		return zero, false
	}

	e, ok := g.entities[r.id]
	if !ok {
		return zero, false
	}

	t, ok := e.(T)

	return t, ok
}

// Add names e, assigns it a fresh handle and inserts it into g.
func Add[T Entity](g *Graph, name string, e T) T {
	b := e.base()
	b.name = name
	b.id = uuid.New()
	g.insert(e)

	return e
}
