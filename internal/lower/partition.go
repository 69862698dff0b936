package lower

import (
	"fmt"

	"model-lowering/internal/model"
)

// zoneGroup is the set of subsurfaces of one control that share a zone.
type zoneGroup struct {
	zone    *model.ThermalZone
	members []model.Ref[*model.SubSurface]
}

// partitionControls splits every shading control whose subsurfaces span
// several zones into one control per zone.
func (r *run) partitionControls() {
	controls := model.OfKind[*model.ShadingControl](r.graph, model.KindShadingControl)
	model.SortByName(r.graph, controls)

	for _, c := range controls {
		r.partition(c)
	}
}

// partition groups the subsurfaces of c by zone in declaration order. The
// first group stays on c with sequence number 1; every further group moves
// to a clone numbered 2..K. Clones join the graph once all groups are built.
func (r *run) partition(c *model.ShadingControl) {
	var (
		groups   []*zoneGroup
		byZone   = make(map[model.Handle]*zoneGroup)
		resolved int
	)

	for _, ref := range c.SubSurfaces {
		sub, ok := model.Resolve(r.graph, ref)
		if !ok {
			r.warnf(c, "missing_child", "subsurface reference %s cannot be resolved", ref.ID())
			continue
		}

		zone, ok := r.zoneOfSubSurface(sub)
		if !ok {
			r.warnf(c, "zone_unresolved", "subsurface %q has no resolvable zone and is dropped", sub.Name())
			continue
		}

		resolved++

		g, ok := byZone[zone.ID()]
		if !ok {
			g = &zoneGroup{zone: zone}
			byZone[zone.ID()] = g
			groups = append(groups, g)
		}

		g.members = append(g.members, ref)
	}

	if resolved > 0 && len(groups) == 0 {
		panic(fmt.Sprintf("lower: control %q resolved %d children into zero groups", c.Name(), resolved))
	}

	if len(groups) == 0 {
		c.SubSurfaces = nil
		return
	}

	var pending []*model.ShadingControl

	for i, g := range groups[1:] {
		clone := model.Clone(c)
		clone.SetName(r.uniqueName(model.KindShadingControl, c.Name()+" "+g.zone.Name()))
		clone.SubSurfaces = g.members
		r.sequence[clone.ID()] = i + 2
		r.controlZone[clone.ID()] = g.zone.ID()
		pending = append(pending, clone)
	}

	c.SubSurfaces = groups[0].members
	r.sequence[c.ID()] = 1
	r.controlZone[c.ID()] = groups[0].zone.ID()

	for _, clone := range pending {
		r.graph.Insert(clone)
	}

	if len(groups) > 1 {
		r.infof(c, "partitioned_control", "control spans %d zones; %d clones created", len(groups), len(pending))
	}
}

// zoneOfSubSurface follows subsurface, surface, space and zone references.
// Successful lookups are memoized for the run.
func (r *run) zoneOfSubSurface(sub *model.SubSurface) (*model.ThermalZone, bool) {
	if id, ok := r.zoneMemo.Get(sub.ID()); ok {
		if zone, ok := model.Resolve(r.graph, model.RefID[*model.ThermalZone](id)); ok {
			return zone, true
		}

		r.zoneMemo.Remove(sub.ID())
	}

	surface, ok := model.Resolve(r.graph, sub.Surface)
	if !ok {
		return nil, false
	}

	space, ok := model.Resolve(r.graph, surface.Space)
	if !ok {
		return nil, false
	}

	zone, ok := r.graph.ZoneOf(space)
	if !ok {
		return nil, false
	}

	r.zoneMemo.Add(sub.ID(), zone.ID())

	return zone, true
}
