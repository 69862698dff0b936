package model

// Index is a snapshot of the ownership relations of a graph, built in one
// pass over its entities. Every list is sorted by name. Mutations made after
// NewIndex are not reflected; build a new index instead. Returned slices are
// shared and must not be modified.
type Index struct {
	g *Graph

	spacesOfZone  map[Handle][]*Space
	spacesOfType  map[Handle][]*Space
	loadsOf       map[Handle][]*Load
	surfacesOf    map[Handle][]*Surface
	subSurfacesOf map[Handle][]*SubSurface
	thermostatsOf map[Handle][]*Thermostat
}

// NewIndex indexes the current contents of g.
func NewIndex(g *Graph) *Index {
	idx := &Index{
		g:             g,
		spacesOfZone:  make(map[Handle][]*Space),
		spacesOfType:  make(map[Handle][]*Space),
		loadsOf:       make(map[Handle][]*Load),
		surfacesOf:    make(map[Handle][]*Surface),
		subSurfacesOf: make(map[Handle][]*SubSurface),
		thermostatsOf: make(map[Handle][]*Thermostat),
	}

	for _, e := range g.Entities() {
		switch e := e.(type) {
		case *Space:
			group(idx.spacesOfZone, e.Zone.ID(), e)
			group(idx.spacesOfType, e.SpaceType.ID(), e)
		case *Load:
			group(idx.loadsOf, e.Owner(), e)
		case *Surface:
			group(idx.surfacesOf, e.Space.ID(), e)
		case *SubSurface:
			group(idx.subSurfacesOf, e.Surface.ID(), e)
		case *Thermostat:
			group(idx.thermostatsOf, e.Zone.ID(), e)
		}
	}

	sortGroups(g, idx.spacesOfZone)
	sortGroups(g, idx.spacesOfType)
	sortGroups(g, idx.loadsOf)
	sortGroups(g, idx.surfacesOf)
	sortGroups(g, idx.subSurfacesOf)
	sortGroups(g, idx.thermostatsOf)

	return idx
}

func group[T Entity](m map[Handle][]T, owner Handle, e T) {
	if owner == NilHandle {
		return
	}

	m[owner] = append(m[owner], e)
}

func sortGroups[T Entity](g *Graph, m map[Handle][]T) {
	for _, list := range m {
		SortByName(g, list)
	}
}

// SpacesOf returns the spaces contained in zone.
func (idx *Index) SpacesOf(zone *ThermalZone) []*Space {
	return idx.spacesOfZone[zone.ID()]
}

// SpacesOfType returns the spaces referencing spaceType.
func (idx *Index) SpacesOfType(spaceType *SpaceType) []*Space {
	return idx.spacesOfType[spaceType.ID()]
}

// LoadsOf returns the loads directly owned by the entity with handle owner.
func (idx *Index) LoadsOf(owner Handle) []*Load {
	return idx.loadsOf[owner]
}

// SurfacesOf returns the surfaces of space.
func (idx *Index) SurfacesOf(space *Space) []*Surface {
	return idx.surfacesOf[space.ID()]
}

// SubSurfacesOf returns the subsurfaces of surface.
func (idx *Index) SubSurfacesOf(surface *Surface) []*SubSurface {
	return idx.subSurfacesOf[surface.ID()]
}

// ThermostatsOf returns the thermostats controlling zone.
func (idx *Index) ThermostatsOf(zone *ThermalZone) []*Thermostat {
	return idx.thermostatsOf[zone.ID()]
}

// ExteriorArea returns the area of the surfaces of space exposed to the
// outdoors, in m².
func (idx *Index) ExteriorArea(space *Space) float64 {
	var total float64

	for _, s := range idx.SurfacesOf(space) {
		if s.Boundary == BoundaryOutdoors {
			total += s.Area()
		}
	}

	return total
}
