package lower

import (
	"slices"

	"model-lowering/internal/model"
)

// Defaults of the singletons created when the source model lacks them.
const (
	defaultVersion         = "24.1"
	defaultTimestepPerHour = 6
	defaultTerrain         = "Suburbs"
)

// normalize rewrites the graph into the shape the translators expect. The
// steps run in a fixed order; later steps rely on earlier ones.
func (r *run) normalize() {
	r.ensureSingletons()
	r.removeOrphans()
	r.index = model.NewIndex(r.graph)

	if r.opts.FlattenCategoriesToZones {
		r.combineSpaces()
		r.index = model.NewIndex(r.graph)
	}

	r.collapseCategories()
	r.materializeCategoryLoads()
	r.partitionControls()
	r.resolveAdjacency()
	r.index = model.NewIndex(r.graph)
}

// ensureSingletons creates the globally required administrative entities.
func (r *run) ensureSingletons() {
	created := func(e model.Entity, ok bool) {
		if ok {
			r.infof(e, "created_default", "no %s in model; default created", e.Kind())
		}
	}

	created(model.Unique(r.graph, model.KindVersion, "Version", func() *model.Version {
		return &model.Version{Identifier: defaultVersion}
	}))
	created(model.Unique(r.graph, model.KindSimulationControl, "Simulation Control", func() *model.SimulationControl {
		return &model.SimulationControl{RunForWeatherFile: true}
	}))
	created(model.Unique(r.graph, model.KindTimestep, "Timestep", func() *model.Timestep {
		return &model.Timestep{PerHour: defaultTimestepPerHour}
	}))
	created(model.Unique(r.graph, model.KindRunPeriod, "Run Period 1", func() *model.RunPeriod {
		return &model.RunPeriod{BeginMonth: 1, BeginDay: 1, EndMonth: 12, EndDay: 31}
	}))
	building, ok := model.Unique(r.graph, model.KindBuilding, "Building", func() *model.Building {
		return &model.Building{Terrain: defaultTerrain}
	})
	created(building, ok)
	r.building = building

	created(model.Unique(r.graph, model.KindSite, "Site", func() *model.Site {
		return &model.Site{}
	}))
}

// removeOrphans drops geometry and thermostats whose owner is gone.
// Surfaces go first so their subsurfaces are caught in the same pass.
func (r *run) removeOrphans() {
	for _, s := range model.OfKind[*model.Surface](r.graph, model.KindSurface) {
		if _, ok := model.Resolve(r.graph, s.Space); !ok {
			r.warnf(s, "orphan_removed", "surface has no space and is removed")
			r.graph.Remove(s)
		}
	}

	for _, s := range model.OfKind[*model.SubSurface](r.graph, model.KindSubSurface) {
		if _, ok := model.Resolve(r.graph, s.Surface); !ok {
			r.warnf(s, "orphan_removed", "subsurface has no surface and is removed")
			r.graph.Remove(s)
		}
	}

	for _, t := range model.OfKind[*model.Thermostat](r.graph, model.KindThermostat) {
		if _, ok := model.Resolve(r.graph, t.Zone); !ok {
			r.warnf(t, "orphan_removed", "thermostat has no zone and is removed")
			r.graph.Remove(t)
		}
	}
}

// combineSpaces merges the spaces of every multi-space zone into the first
// one by name. Everything that depended on the removed spaces is made
// explicit beforehand: constructions, space type loads and relative load
// quantities.
func (r *run) combineSpaces() {
	zones := model.OfKind[*model.ThermalZone](r.graph, model.KindThermalZone)
	model.SortByName(r.graph, zones)

	for _, zone := range zones {
		spaces := r.index.SpacesOf(zone)
		if len(spaces) < 2 {
			continue
		}

		for _, space := range spaces {
			r.hardAssignConstructions(space)
		}

		loads := make([][]*model.Load, len(spaces))

		for i, space := range spaces {
			loads[i] = append(slices.Clone(r.index.LoadsOf(space.ID())), r.hardApplySpaceType(space)...)

			for _, l := range loads[i] {
				r.hardSize(l, space)
			}
		}

		primary := spaces[0]

		for i, space := range spaces[1:] {
			for _, l := range loads[i+1] {
				l.Space = model.RefTo(primary)
			}

			for _, s := range r.index.SurfacesOf(space) {
				s.Space = model.RefTo(primary)
			}

			primary.FloorArea += space.FloorArea
			primary.Volume += space.Volume
			r.graph.Remove(space)
		}

		r.infof(zone, "combined_spaces", "%d spaces combined into %q", len(spaces), primary.Name())
	}
}

// hardAssignConstructions writes the resolved construction of every surface
// and subsurface of space back as an explicit reference, remembering the
// distance it was found at.
func (r *run) hardAssignConstructions(space *model.Space) {
	for _, s := range r.index.SurfacesOf(space) {
		if !s.Construction.IsSet() {
			if c, d := r.surfaceConstruction(s); c != nil {
				s.Construction = model.RefTo(c)
				r.distances[s.ID()] = d
			}
		}

		for _, sub := range r.index.SubSurfacesOf(s) {
			if sub.Construction.IsSet() {
				continue
			}

			if c, d := r.subSurfaceConstruction(sub); c != nil {
				sub.Construction = model.RefTo(c)
				r.distances[sub.ID()] = d
			}
		}
	}
}

// hardSize converts a relative load quantity of space to an absolute one.
// Per-person quantities scale with occupancy, not geometry, and are kept.
func (r *run) hardSize(l *model.Load, space *model.Space) {
	switch l.Method {
	case model.MethodPerFloorArea:
		l.Value *= r.graph.FloorArea(space)
	case model.MethodAirChanges:
		l.Value = l.Value * r.graph.Volume(space) / 3600
	case model.MethodPerExterior:
		l.Value *= r.index.ExteriorArea(space)
	default:
		return
	}

	l.Method = model.MethodAbsolute
}

// collapseCategories removes space types no space references, along with
// the loads attached to them.
func (r *run) collapseCategories() {
	used := make(map[model.Handle]bool)
	for _, s := range model.OfKind[*model.Space](r.graph, model.KindSpace) {
		used[s.SpaceType.ID()] = true
	}

	for _, st := range model.OfKind[*model.SpaceType](r.graph, model.KindSpaceType) {
		if used[st.ID()] {
			continue
		}

		loads := r.index.LoadsOf(st.ID())
		for _, l := range loads {
			r.graph.Remove(l)
		}

		r.graph.Remove(st)
		r.infof(st, "collapsed_category", "space type is unused; removed with %d loads", len(loads))
	}
}
