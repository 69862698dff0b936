package modelio

import (
	"strings"

	"model-lowering/internal/model"
)

func parseSurfaceType(b *builder, owner, s string) model.SurfaceType {
	for _, t := range []model.SurfaceType{model.SurfaceWall, model.SurfaceFloor, model.SurfaceRoofCeiling} {
		if strings.EqualFold(string(t), s) {
			return t
		}
	}

	b.errorf("%w: surface %q has type %q", ErrInvalidValue, owner, s)

	return ""
}

func parseBoundary(b *builder, owner, s string) model.Boundary {
	for _, v := range []model.Boundary{
		model.BoundaryOutdoors, model.BoundaryGround, model.BoundarySurface, model.BoundaryAdiabatic,
	} {
		if strings.EqualFold(string(v), s) {
			return v
		}
	}

	b.errorf("%w: surface %q has boundary %q", ErrInvalidValue, owner, s)

	return ""
}

func parseSubSurfaceType(b *builder, owner, s string) model.SubSurfaceType {
	for _, t := range []model.SubSurfaceType{
		model.SubSurfaceFixedWindow, model.SubSurfaceOperableWindow, model.SubSurfaceDoor,
		model.SubSurfaceGlassDoor, model.SubSurfaceSkylight,
	} {
		if strings.EqualFold(string(t), s) {
			return t
		}
	}

	b.errorf("%w: subsurface %q has type %q", ErrInvalidValue, owner, s)

	return ""
}

// parseMethod accepts the method names case-insensitively; empty means
// absolute.
func parseMethod(s string) (model.LoadMethod, bool) {
	if s == "" {
		return model.MethodAbsolute, true
	}

	for _, m := range []model.LoadMethod{
		model.MethodAbsolute, model.MethodPerFloorArea, model.MethodPerPerson,
		model.MethodPerExterior, model.MethodAirChanges,
	} {
		if strings.EqualFold(string(m), s) {
			return m, true
		}
	}

	return "", false
}

func vertices(b *builder, owner string, docs []VertexDoc) []model.Vertex {
	out := make([]model.Vertex, 0, len(docs))

	for i, d := range docs {
		if len(d) != 3 {
			b.errorf("%w: vertex %d of %q has %d coordinates", ErrInvalidValue, i+1, owner, len(d))
			continue
		}

		out = append(out, model.Vertex{X: d[0], Y: d[1], Z: d[2]})
	}

	return out
}
