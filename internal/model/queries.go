package model

import (
	"math"
	"slices"
)

// ZoneOf returns the thermal zone containing space.
func (g *Graph) ZoneOf(space *Space) (*ThermalZone, bool) {
	return Resolve(g, space.Zone)
}

// Loads returns every Load entity in insertion order.
func (g *Graph) Loads() []*Load {
	var out []*Load

	for _, k := range LoadKinds() {
		out = append(out, OfKind[*Load](g, k)...)
	}

	slices.SortFunc(out, func(a, b *Load) int {
		return g.seq[a.ID()] - g.seq[b.ID()]
	})

	return out
}

// FloorArea returns the floor area of space in m².
func (g *Graph) FloorArea(space *Space) float64 {
	return space.FloorArea
}

// Volume returns the air volume of space in m³.
func (g *Graph) Volume(space *Space) float64 {
	return space.Volume
}

// polygonArea computes the area of a planar polygon with Newell's method.
func polygonArea(vs []Vertex) float64 {
	if len(vs) < 3 {
		return 0
	}

	var nx, ny, nz float64

	for i := range vs {
		a, b := vs[i], vs[(i+1)%len(vs)]
		nx += (a.Y - b.Y) * (a.Z + b.Z)
		ny += (a.Z - b.Z) * (a.X + b.X)
		nz += (a.X - b.X) * (a.Y + b.Y)
	}

	return 0.5 * math.Sqrt(nx*nx+ny*ny+nz*nz)
}
