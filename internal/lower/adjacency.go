package lower

import (
	"slices"
	"strings"

	"model-lowering/internal/common"
	"model-lowering/internal/model"
)

// Search distances of the default construction hierarchy. Lower is more
// specific.
const (
	distanceExplicit  = 0
	distanceSpace     = 1
	distanceSpaceType = 2
	distanceStory     = 3
	distanceBuilding  = 4
)

// side is one half of an adjacency pair together with its resolved
// construction.
type side struct {
	entity       model.Entity
	construction *model.Construction
	distance     int
	assign       func(c *model.Construction)
}

func (s side) has() bool {
	return s.construction != nil
}

// resolveAdjacency visits every surface pair, then every subsurface pair, and
// writes an explicit construction to both sides.
func (r *run) resolveAdjacency() {
	surfaces := model.OfKind[*model.Surface](r.graph, model.KindSurface)
	model.SortByName(r.graph, surfaces)

	visited := make(map[model.Handle]bool)

	for _, s := range surfaces {
		back := func(o *model.Surface) model.Handle { return o.Adjacent.ID() }
		if other, ok := counterpart(r, visited, s, s.Adjacent, back); ok {
			r.resolvePair(r.surfaceSide(s), r.surfaceSide(other))
		}
	}

	subSurfaces := model.OfKind[*model.SubSurface](r.graph, model.KindSubSurface)
	model.SortByName(r.graph, subSurfaces)

	for _, s := range subSurfaces {
		back := func(o *model.SubSurface) model.Handle { return o.Adjacent.ID() }
		if other, ok := counterpart(r, visited, s, s.Adjacent, back); ok {
			r.resolvePair(r.subSurfaceSide(s), r.subSurfaceSide(other))
		}
	}
}

// counterpart returns the entity s forms an unvisited pair with. A target
// whose own adjacency points elsewhere is no counterpart; it stays free for
// the pair it does belong to.
func counterpart[T model.Entity](r *run, visited map[model.Handle]bool, s model.Entity, ref model.Ref[T], back func(T) model.Handle) (T, bool) {
	var zero T

	if visited[s.ID()] {
		return zero, false
	}

	visited[s.ID()] = true

	other, ok := model.Resolve(r.graph, ref)
	if !ok {
		return zero, false
	}

	if back(other) != s.ID() {
		r.warnf(s, "one_sided_adjacency", "counterpart %q is adjacent to another object; construction not matched",
			other.Name())
		return zero, false
	}

	if visited[other.ID()] {
		return zero, false
	}

	visited[other.ID()] = true

	return other, true
}

func (r *run) surfaceSide(s *model.Surface) side {
	c, d := r.surfaceConstruction(s)

	return side{
		entity:       s,
		construction: c,
		distance:     d,
		assign:       func(c *model.Construction) { s.Construction = model.RefTo(c) },
	}
}

func (r *run) subSurfaceSide(s *model.SubSurface) side {
	c, d := r.subSurfaceConstruction(s)

	return side{
		entity:       s,
		construction: c,
		distance:     d,
		assign:       func(c *model.Construction) { s.Construction = model.RefTo(c) },
	}
}

// resolvePair settles the constructions of two counterparts.
func (r *run) resolvePair(a, b side) {
	if r.lessByName(b.entity, a.entity) {
		a, b = b, a
	}

	switch {
	case !a.has() && !b.has():
		r.errorf(a.entity, "no_construction", "neither %q nor its counterpart %q has a construction",
			a.entity.Name(), b.entity.Name())

	case a.has() != b.has():
		from, to := a, b
		if !a.has() {
			from, to = b, a
		}

		rev := r.reverseOf(from.construction)
		from.assign(from.construction)
		to.assign(rev)
		r.infof(to.entity, "assigned_reverse", "construction %q taken from counterpart %q",
			rev.Name(), from.entity.Name())

	case a.construction.ID() == b.construction.ID():
		c := a.construction
		a.assign(c)

		if isSymmetric(c) {
			b.assign(c)
			return
		}

		b.assign(r.reverseOf(c))
		r.warnf(b.entity, "reversed_shared_construction",
			"counterpart %q uses the same construction %q; reversed for this side", a.entity.Name(), c.Name())

	case a.distance != b.distance:
		win, lose := a, b
		if b.distance < a.distance {
			win, lose = b, a
		}

		rev := r.reverseOf(win.construction)
		win.assign(win.construction)
		lose.assign(rev)
		r.infof(lose.entity, "assigned_reverse", "construction %q replaced by %q from the more specific counterpart %q",
			lose.construction.Name(), rev.Name(), win.entity.Name())

	default:
		a.assign(a.construction)
		b.assign(b.construction)

		if isReverse(a.construction, b.construction) {
			return
		}

		r.errorf(a.entity, "construction_conflict",
			"constructions %q and %q of counterpart %q are equally specific and not reverses; both kept",
			a.construction.Name(), b.construction.Name(), b.entity.Name())
	}
}

func (r *run) lessByName(a, b model.Entity) bool {
	if c := common.CompareFold(a.Name(), b.Name()); c != 0 {
		return c < 0
	}

	return r.graph.Sequence(a) < r.graph.Sequence(b)
}

// isSymmetric reports whether c reads the same from both sides. Constructions
// with fewer than two layers are symmetric.
func isSymmetric(c *model.Construction) bool {
	return len(c.Layers) < 2 || common.IsPalindrome(c.LayerIDs())
}

// isReverse reports whether b's layers are a's layers in reverse order.
func isReverse(a, b *model.Construction) bool {
	return len(a.Layers) == len(b.Layers) && slices.Equal(a.LayerIDs(), common.Reversed(b.LayerIDs()))
}

// reverseOf returns the physical reverse of c, reusing a cached or existing
// construction before cloning a new one.
func (r *run) reverseOf(c *model.Construction) *model.Construction {
	if isSymmetric(c) {
		return c
	}

	if id, ok := r.reversals[c.ID()]; ok {
		if rev, ok := model.Resolve(r.graph, model.RefID[*model.Construction](id)); ok {
			return rev
		}
	}

	for _, candidate := range r.constructionsWithLayers(common.Reversed(c.LayerIDs())) {
		if candidate.ID() != c.ID() {
			r.cacheReverse(c, candidate)
			return candidate
		}
	}

	rev := model.Clone(c)
	rev.SetName(r.uniqueName(model.KindConstruction, c.Name()+" Reversed"))
	rev.Layers = common.Reversed(c.Layers)
	r.graph.Insert(rev)
	r.byLayers[layerKey(rev.LayerIDs())] = append(r.byLayers[layerKey(rev.LayerIDs())], rev)
	r.cacheReverse(c, rev)
	r.infof(c, "created_reverse", "created reversed construction %q", rev.Name())

	return rev
}

// constructionsWithLayers returns the constructions whose layers are exactly
// layers, sorted by name.
func (r *run) constructionsWithLayers(layers []model.Handle) []*model.Construction {
	if r.byLayers == nil {
		r.byLayers = make(map[string][]*model.Construction)

		all := model.OfKind[*model.Construction](r.graph, model.KindConstruction)
		model.SortByName(r.graph, all)

		for _, c := range all {
			key := layerKey(c.LayerIDs())
			r.byLayers[key] = append(r.byLayers[key], c)
		}
	}

	return r.byLayers[layerKey(layers)]
}

func layerKey(layers []model.Handle) string {
	parts := make([]string, len(layers))
	for i, id := range layers {
		parts[i] = id.String()
	}

	return strings.Join(parts, ",")
}

func (r *run) cacheReverse(a, b *model.Construction) {
	r.reversals[a.ID()] = b.ID()
	r.reversals[b.ID()] = a.ID()
}

// surfaceConstruction resolves the construction of s and its search distance.
func (r *run) surfaceConstruction(s *model.Surface) (*model.Construction, int) {
	if c, ok := model.Resolve(r.graph, s.Construction); ok {
		return c, r.explicitDistance(s)
	}

	space, ok := model.Resolve(r.graph, s.Space)
	if !ok {
		return nil, 0
	}

	return r.searchDefaults(space, func(set *model.DefaultConstructionSet) model.Ref[*model.Construction] {
		return surfaceSlot(set, s.Type, s.Boundary)
	})
}

// subSurfaceConstruction resolves the construction of s through its parent
// surface's space.
func (r *run) subSurfaceConstruction(s *model.SubSurface) (*model.Construction, int) {
	if c, ok := model.Resolve(r.graph, s.Construction); ok {
		return c, r.explicitDistance(s)
	}

	surface, ok := model.Resolve(r.graph, s.Surface)
	if !ok {
		return nil, 0
	}

	space, ok := model.Resolve(r.graph, surface.Space)
	if !ok {
		return nil, 0
	}

	return r.searchDefaults(space, func(set *model.DefaultConstructionSet) model.Ref[*model.Construction] {
		return subSurfaceSlot(set, s.Type, surface.Boundary)
	})
}

// explicitDistance is zero unless the construction was hard-assigned during
// normalization, in which case the distance it was found at is kept.
func (r *run) explicitDistance(e model.Entity) int {
	if d, ok := r.distances[e.ID()]; ok {
		return d
	}

	return distanceExplicit
}

// searchDefaults walks the default construction sets of space, its space
// type, its story and the building, returning the first filled slot.
func (r *run) searchDefaults(space *model.Space, slot func(*model.DefaultConstructionSet) model.Ref[*model.Construction]) (*model.Construction, int) {
	type level struct {
		set      model.Ref[*model.DefaultConstructionSet]
		distance int
	}

	levels := []level{{space.DefaultConstructionSet, distanceSpace}}

	if st, ok := model.Resolve(r.graph, space.SpaceType); ok {
		levels = append(levels, level{st.DefaultConstructionSet, distanceSpaceType})
	}

	if story, ok := model.Resolve(r.graph, space.Story); ok {
		levels = append(levels, level{story.DefaultConstructionSet, distanceStory})
	}

	if b := r.buildingOf(); b != nil {
		levels = append(levels, level{b.DefaultConstructionSet, distanceBuilding})
	}

	for _, l := range levels {
		set, ok := model.Resolve(r.graph, l.set)
		if !ok {
			continue
		}

		if c, ok := model.Resolve(r.graph, slot(set)); ok {
			return c, l.distance
		}
	}

	return nil, 0
}

// buildingOf returns the building singleton, or nil when the model has none.
func (r *run) buildingOf() *model.Building {
	if r.building == nil {
		if buildings := model.OfKind[*model.Building](r.graph, model.KindBuilding); len(buildings) > 0 {
			r.building = buildings[0]
		}
	}

	return r.building
}

func surfaceSlot(set *model.DefaultConstructionSet, t model.SurfaceType, b model.Boundary) model.Ref[*model.Construction] {
	switch b {
	case model.BoundaryOutdoors:
		switch t {
		case model.SurfaceFloor:
			return set.ExteriorFloor
		case model.SurfaceRoofCeiling:
			return set.ExteriorRoof
		default:
			return set.ExteriorWall
		}
	case model.BoundaryGround:
		if t == model.SurfaceWall {
			return set.GroundWall
		}

		return set.GroundFloor
	default:
		switch t {
		case model.SurfaceFloor:
			return set.InteriorFloor
		case model.SurfaceRoofCeiling:
			return set.InteriorCeiling
		default:
			return set.InteriorWall
		}
	}
}

func subSurfaceSlot(set *model.DefaultConstructionSet, t model.SubSurfaceType, parent model.Boundary) model.Ref[*model.Construction] {
	interior := parent == model.BoundarySurface || parent == model.BoundaryAdiabatic

	switch {
	case t.IsWindow() && interior:
		return set.InteriorWindow
	case t.IsWindow():
		return set.ExteriorWindow
	case interior:
		return set.InteriorDoor
	default:
		return set.ExteriorDoor
	}
}
