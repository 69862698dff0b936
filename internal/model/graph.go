package model

import (
	"slices"

	"github.com/google/uuid"

	"model-lowering/internal/common"
)

// slot is one insertion of a handle. It is live while the handle is still
// present under the same sequence number.
type slot struct {
	id  Handle
	seq int
}

// Graph is a mutable, handle-addressed collection of entities. Iteration
// follows insertion order.
type Graph struct {
	entities map[Handle]Entity
	seq      map[Handle]int
	order    []slot
	byKind   map[Kind][]slot
	// dead counts removed slots not yet compacted away.
	dead int
	next int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		entities: make(map[Handle]Entity),
		seq:      make(map[Handle]int),
		byKind:   make(map[Kind][]slot),
	}
}

func (g *Graph) insert(e Entity) {
	id := e.ID()
	if _, exists := g.entities[id]; exists {
		panic("model: duplicate handle " + id.String())
	}

	s := slot{id: id, seq: g.next}

	g.entities[id] = e
	g.seq[id] = s.seq
	g.order = append(g.order, s)
	g.byKind[e.Kind()] = append(g.byKind[e.Kind()], s)
	g.next++
}

func (g *Graph) live(s slot) bool {
	n, ok := g.seq[s.id]
	return ok && n == s.seq
}

// compact drops dead slots once they outnumber live entities.
func (g *Graph) compact() {
	if g.dead <= len(g.entities) {
		return
	}

	dead := func(s slot) bool { return !g.live(s) }

	g.order = slices.DeleteFunc(g.order, dead)
	for kind, slots := range g.byKind {
		g.byKind[kind] = slices.DeleteFunc(slots, dead)
	}

	g.dead = 0
}

// Insert adds an entity that already has a handle, such as one returned by
// Clone. Inserting a handle twice panics.
func (g *Graph) Insert(e Entity) {
	if e.ID() == NilHandle {
		panic("model: inserting entity without handle")
	}

	g.insert(e)
}

// Len returns the number of live entities.
func (g *Graph) Len() int {
	return len(g.entities)
}

// Get returns the entity with the given handle.
func (g *Graph) Get(id Handle) (Entity, bool) {
	e, ok := g.entities[id]
	return e, ok
}

// Contains reports whether e is still part of the graph.
func (g *Graph) Contains(e Entity) bool {
	_, ok := g.entities[e.ID()]
	return ok
}

// Sequence returns the insertion position of e. It is used as the final
// tie-break when ordering entities with equal names.
func (g *Graph) Sequence(e Entity) int {
	return g.seq[e.ID()]
}

// Entities returns all live entities in insertion order.
func (g *Graph) Entities() []Entity {
	out := make([]Entity, 0, len(g.entities))
	for _, s := range g.order {
		if g.live(s) {
			out = append(out, g.entities[s.id])
		}
	}

	return out
}

// EntitiesByKind returns the live entities of one kind in insertion order.
func (g *Graph) EntitiesByKind(kind Kind) []Entity {
	var out []Entity

	for _, s := range g.byKind[kind] {
		if g.live(s) {
			out = append(out, g.entities[s.id])
		}
	}

	return out
}

// OfKind returns the live entities of one kind as their concrete type.
// Entities of that kind which are not a T are skipped.
func OfKind[T Entity](g *Graph, kind Kind) []T {
	var out []T

	for _, e := range g.EntitiesByKind(kind) {
		if t, ok := e.(T); ok {
			out = append(out, t)
		}
	}

	return out
}

// Unique returns the single entity of a singleton kind, creating it with
// create when absent. The boolean reports whether it was created.
func Unique[T Entity](g *Graph, kind Kind, name string, create func() T) (T, bool) {
	if existing := OfKind[T](g, kind); len(existing) > 0 {
		return existing[0], false
	}

	return Add(g, name, create()), true
}

// Clone returns a shallow copy of e with a fresh handle. The copy is not part
// of the graph until it is inserted.
func Clone[T Entity](e T) T {
	c, ok := e.cloneEntity().(T)
	if !ok {
		panic("model: clone changed entity type")
	}

	c.base().id = uuid.New()

	return c
}

// Remove deletes e from the graph. References to it become dangling.
func (g *Graph) Remove(e Entity) {
	id := e.ID()
	if _, ok := g.entities[id]; !ok {
		return
	}

	delete(g.entities, id)
	delete(g.seq, id)

	g.dead++
	g.compact()
}

// Copy returns a deep copy of the graph that preserves handles and
// insertion order.
func (g *Graph) Copy() *Graph {
	out := NewGraph()

	for _, e := range g.Entities() {
		c := e.cloneEntity()
		c.base().id = e.ID()
		out.insert(c)
	}

	return out
}

// ChildIndex maps every owner handle to the entities it owns, in insertion
// order. The index is a snapshot; later mutations are not reflected.
func (g *Graph) ChildIndex() map[Handle][]Entity {
	idx := make(map[Handle][]Entity)

	for _, e := range g.Entities() {
		if owner := e.Owner(); owner != NilHandle {
			idx[owner] = append(idx[owner], e)
		}
	}

	return idx
}

// SortByName orders entities case-insensitively by name, falling back to
// insertion order.
func SortByName[T Entity](g *Graph, list []T) {
	slices.SortStableFunc(list, func(a, b T) int {
		if c := common.CompareFold(a.Name(), b.Name()); c != 0 {
			return c
		}

		return g.seq[a.ID()] - g.seq[b.ID()]
	})
}
