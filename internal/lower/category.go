package lower

import (
	"fmt"
	"slices"

	"model-lowering/internal/common"
	"model-lowering/internal/diagnostic"
	"model-lowering/internal/model"
	"model-lowering/internal/target"
)

type parentStatus int

const (
	// parentResolved means a parent record was found.
	parentResolved parentStatus = iota
	// parentNone means the entity is unassigned and its kind tolerates that.
	parentNone
	// parentFailed means resolution failed and a diagnostic was reported.
	parentFailed
)

// parentRequired is the fixed table of load kinds that must be bound to a
// space or a space type.
func parentRequired(k model.Kind) bool {
	switch k {
	case model.KindExteriorLights:
		return false
	default:
		return true
	}
}

// collectionAllowed reports whether the target record of a load kind may
// name a zone list or space list as its parent.
func collectionAllowed(k model.Kind) bool {
	switch k {
	case model.KindInfiltrationLeakageArea:
		return false
	default:
		return true
	}
}

// namesCollection reports whether the record of l may name the zone list or
// space list of its space type.
func namesCollection(l *model.Load) bool {
	return hasParentField(l.Kind()) && collectionAllowed(l.Kind())
}

// resolveParent returns the record a load attaches to. subject is the entity
// on whose behalf resolution happens and receives the diagnostics; it is the
// load itself or a control referencing it.
func (r *run) resolveParent(subject model.Entity, l *model.Load, allowCategory bool) (*target.Record, parentStatus) {
	switch {
	case l.Space.IsSet() && l.SpaceType.IsSet():
		r.errorf(subject, "conflicting_parent", "load %q is attached to both a space and a space type", l.Name())
		return nil, parentFailed

	case l.Space.IsSet():
		space, ok := model.Resolve(r.graph, l.Space)
		if !ok {
			r.errorf(subject, "missing_parent", "space of load %q cannot be resolved", l.Name())
			return nil, parentFailed
		}

		return r.attachToSpace(subject, space)

	case l.SpaceType.IsSet():
		spaceType, ok := model.Resolve(r.graph, l.SpaceType)
		if !ok {
			r.errorf(subject, "missing_parent", "space type of load %q cannot be resolved", l.Name())
			return nil, parentFailed
		}

		if allowCategory {
			rec, ok := r.translate(spaceType)
			if !ok {
				r.errorf(subject, "empty_category", "space type %q reaches no translatable %s", spaceType.Name(), r.unitName())
				return nil, parentFailed
			}

			return rec, parentResolved
		}

		_, isLoad := subject.(*model.Load)

		return r.representative(subject, spaceType, !isLoad)

	default:
		if parentRequired(l.Kind()) {
			r.errorf(subject, "missing_parent", "load %q is not assigned to a space or space type", l.Name())
			return nil, parentFailed
		}

		return nil, parentNone
	}
}

// attachToSpace returns the record of space, or of its zone in zone mode.
func (r *run) attachToSpace(subject model.Entity, space *model.Space) (*target.Record, parentStatus) {
	var (
		rec *target.Record
		ok  bool
	)

	if r.opts.FlattenCategoriesToZones {
		zone, found := r.graph.ZoneOf(space)
		if !found {
			r.errorf(subject, "missing_zone", "space %q has no thermal zone", space.Name())
			return nil, parentFailed
		}

		rec, ok = r.translate(zone)
	} else {
		rec, ok = r.translate(space)
	}

	if !ok {
		r.warnf(subject, "parent_not_translated", "parent of %q produced no record", subject.Name())
		return nil, parentFailed
	}

	return rec, parentResolved
}

func (r *run) unitName() string {
	if r.opts.FlattenCategoriesToZones {
		return "zone"
	}

	return "space"
}

// categoryMembers returns the distinct zones (zone mode) or spaces (space
// mode) reachable through spaceType, sorted case-insensitively by name.
func (r *run) categoryMembers(spaceType *model.SpaceType) []model.Entity {
	var (
		members []model.Entity
		seen    = make(map[model.Handle]bool)
	)

	for _, space := range r.index.SpacesOfType(spaceType) {
		var member model.Entity = space

		if r.opts.FlattenCategoriesToZones {
			zone, ok := r.graph.ZoneOf(space)
			if !ok {
				continue
			}

			member = zone
		}

		if seen[member.ID()] {
			continue
		}

		seen[member.ID()] = true
		members = append(members, member)
	}

	slices.SortStableFunc(members, func(a, b model.Entity) int {
		if c := common.CompareFold(a.Name(), b.Name()); c != 0 {
			return c
		}

		return r.graph.Sequence(a) - r.graph.Sequence(b)
	})

	return members
}

// representative picks the smallest-named member of spaceType for a target
// record that cannot name a collection. Discarded alternatives are reported,
// at error severity for controls.
func (r *run) representative(subject model.Entity, spaceType *model.SpaceType, isControl bool) (*target.Record, parentStatus) {
	members := r.categoryMembers(spaceType)
	if len(members) == 0 {
		r.errorf(subject, "empty_category", "space type %q reaches no %s", spaceType.Name(), r.unitName())
		return nil, parentFailed
	}

	pick := members[0]

	if len(members) > 1 {
		alternatives := make([]string, 0, len(members)-1)
		for _, m := range members[1:] {
			alternatives = append(alternatives, m.Name())
		}

		severity := diagnostic.DiagnosticWarning
		if isControl {
			severity = diagnostic.DiagnosticError
		}

		r.diags.Add(diagnostic.Diagnostic{
			Severity: severity,
			Code:     "ambiguous_parent",
			Message: fmt.Sprintf("space type %q spans %d %ss; using %q",
				spaceType.Name(), len(members), r.unitName(), pick.Name()),
			EntityKind:   subject.Kind().String(),
			Entity:       subject.Name(),
			Alternatives: alternatives,
		})
	}

	rec, ok := r.translate(pick)
	if !ok {
		r.warnf(subject, "parent_not_translated", "%s %q produced no record", r.unitName(), pick.Name())
		return nil, parentFailed
	}

	return rec, parentResolved
}

// translateSpaceType emits the collection record standing for a space type:
// a zone list in zone mode, a space list otherwise. Space types no load
// record can refer to produce no record.
func (r *run) translateSpaceType(st *model.SpaceType) *target.Record {
	if !slices.ContainsFunc(r.index.LoadsOf(st.ID()), namesCollection) {
		return nil
	}

	var names []string

	for _, m := range r.categoryMembers(st) {
		if name := r.nameOf(m); name != "" {
			names = append(names, name)
		}
	}

	if len(names) == 0 {
		r.warnf(st, "empty_category", "space type reaches no translatable %s", r.unitName())
		return nil
	}

	kind, label := target.KindSpaceList, "Space"
	if r.opts.FlattenCategoriesToZones {
		kind, label = target.KindZoneList, "Zone"
	}

	fields := []target.Field{target.F("Name", target.S(st.Name()))}
	for i, name := range names {
		fields = append(fields, target.F(fmt.Sprintf("%s %d Name", label, i+1), target.R(name)))
	}

	return r.emit(st, kind, st.Name(), fields...)
}

// materializeCategoryLoads rewrites space-type loads whose target record
// cannot name a collection into one space-level load per member space. The
// original entity is kept for the first space so references to it survive.
func (r *run) materializeCategoryLoads() {
	for _, l := range r.graph.Loads() {
		if collectionAllowed(l.Kind()) || l.Space.IsSet() || !l.SpaceType.IsSet() {
			continue
		}

		spaceType, ok := model.Resolve(r.graph, l.SpaceType)
		if !ok {
			continue
		}

		spaces := r.index.SpacesOfType(spaceType)
		if len(spaces) == 0 {
			continue
		}

		baseName := l.Name()

		var pending []*model.Load

		for _, space := range spaces[1:] {
			c := model.Clone(l)
			c.SetName(r.uniqueName(l.Kind(), space.Name()+" "+baseName))
			c.Space = model.RefTo(space)
			c.SpaceType = model.Ref[*model.SpaceType]{}
			pending = append(pending, c)
		}

		l.SetName(r.uniqueName(l.Kind(), spaces[0].Name()+" "+baseName))
		l.Space = model.RefTo(spaces[0])
		l.SpaceType = model.Ref[*model.SpaceType]{}

		for _, c := range pending {
			r.graph.Insert(c)
		}

		r.infof(l, "materialized_load", "space type load %q materialized for %d spaces", baseName, len(spaces))
	}
}

// hardApplySpaceType copies the loads of space's space type onto space and
// returns the copies.
func (r *run) hardApplySpaceType(space *model.Space) []*model.Load {
	spaceType, ok := model.Resolve(r.graph, space.SpaceType)
	if !ok {
		return nil
	}

	var pending []*model.Load

	for _, l := range r.index.LoadsOf(spaceType.ID()) {
		c := model.Clone(l)
		c.SetName(r.uniqueName(l.Kind(), space.Name()+" "+l.Name()))
		c.Space = model.RefTo(space)
		c.SpaceType = model.Ref[*model.SpaceType]{}
		pending = append(pending, c)
	}

	for _, c := range pending {
		r.graph.Insert(c)
	}

	space.SpaceType = model.Ref[*model.SpaceType]{}

	return pending
}
