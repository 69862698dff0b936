package lower

import (
	"fmt"

	"model-lowering/internal/model"
	"model-lowering/internal/target"
)

// Thermostat control type that selects a dual setpoint.
const dualSetpointControlType = 4

// translateZone emits the zone and the thermostat objects it owns.
func (r *run) translateZone(z *model.ThermalZone) *target.Record {
	var area, volume float64
	for _, s := range r.index.SpacesOf(z) {
		if !s.ExcludeFromFloorArea {
			area += r.graph.FloorArea(s)
		}

		volume += r.graph.Volume(s)
	}

	multiplier := z.Multiplier
	if multiplier == 0 {
		multiplier = 1
	}

	rec := r.emit(z, target.KindZone, z.Name(),
		target.F("Name", target.S(z.Name())),
		target.F("Multiplier", target.I(multiplier)),
		target.F("Ceiling Height", nonZero(z.CeilingHeight)),
		target.F("Volume", nonZero(volume)),
		target.F("Floor Area", nonZero(area)))
	if rec == nil {
		return nil
	}

	// A zone takes one thermostat; the first by name wins.
	if thermostats := r.index.ThermostatsOf(z); len(thermostats) > 0 {
		r.emitThermostat(z, thermostats[0])

		for _, t := range thermostats[1:] {
			r.warnf(t, "ignored_thermostat", "zone %q is already controlled by %q; thermostat ignored",
				z.Name(), thermostats[0].Name())
		}
	}

	return rec
}

// nonZero leaves a quantity blank so the consumer computes it.
func nonZero(v float64) target.Value {
	if v == 0 {
		return target.Empty
	}

	return target.N(v)
}

func (r *run) emitThermostat(z *model.ThermalZone, t *model.Thermostat) {
	heating := refName(r, t.Heating)
	cooling := refName(r, t.Cooling)

	if heating == "" || cooling == "" {
		r.warnf(t, "missing_setpoint", "thermostat needs both a heating and a cooling schedule")
		return
	}

	controlSchedule := r.emit(t, target.KindScheduleConstant, z.Name()+" Thermostat Schedule",
		target.F("Name", target.S(z.Name()+" Thermostat Schedule")),
		target.F("Schedule Type Limits Name", target.Empty),
		target.F("Hourly Value", target.I(dualSetpointControlType)))
	if controlSchedule == nil {
		return
	}

	r.emit(t, target.KindZoneControlThermostat, z.Name()+" Thermostat",
		target.F("Name", target.S(z.Name()+" Thermostat")),
		target.F("Zone or ZoneList Name", target.R(z.Name())),
		target.F("Control Type Schedule Name", target.R(controlSchedule.Name)),
		target.F("Control 1 Object Type", target.S(target.KindDualSetpoint.String())),
		target.F("Control 1 Name", target.R(t.Name())))

	r.emit(t, target.KindDualSetpoint, t.Name(),
		target.F("Name", target.S(t.Name())),
		target.F("Heating Setpoint Temperature Schedule Name", target.R(heating)),
		target.F("Cooling Setpoint Temperature Schedule Name", target.R(cooling)))
}

// translateSpace emits a space in space mode. In zone mode the zone stands
// for its only space.
func (r *run) translateSpace(s *model.Space) *target.Record {
	if r.opts.FlattenCategoriesToZones {
		return nil
	}

	zone, ok := r.graph.ZoneOf(s)
	if !ok {
		r.errorf(s, "missing_zone", "space has no thermal zone")
		return nil
	}

	zoneName := r.nameOf(zone)
	if zoneName == "" {
		r.warnf(s, "parent_not_translated", "zone %q produced no record", zone.Name())
		return nil
	}

	floorArea := target.N(r.graph.FloorArea(s))
	if s.ExcludeFromFloorArea {
		floorArea = target.N(0)
	}

	return r.emit(s, target.KindSpace, s.Name(),
		target.F("Name", target.S(s.Name())),
		target.F("Zone Name", target.R(zoneName)),
		target.F("Ceiling Height", nonZero(s.CeilingHeight)),
		target.F("Volume", nonZero(r.graph.Volume(s))),
		target.F("Floor Area", floorArea))
}

// surfaceHost returns the zone record name and, in space mode, the space
// record name a surface belongs to.
func (r *run) surfaceHost(e model.Entity, space *model.Space) (zoneName, spaceName string, ok bool) {
	zone, found := r.graph.ZoneOf(space)
	if !found {
		r.errorf(e, "missing_zone", "space %q has no thermal zone", space.Name())
		return "", "", false
	}

	if zoneName = r.nameOf(zone); zoneName == "" {
		r.warnf(e, "parent_not_translated", "zone %q produced no record", zone.Name())
		return "", "", false
	}

	if !r.opts.FlattenCategoriesToZones {
		spaceName = r.nameOf(space)
	}

	return zoneName, spaceName, true
}

func (r *run) translateSurface(s *model.Surface) *target.Record {
	space, ok := model.Resolve(r.graph, s.Space)
	if !ok {
		r.errorf(s, "missing_parent", "space cannot be resolved")
		return nil
	}

	zoneName, spaceName, ok := r.surfaceHost(s, space)
	if !ok {
		return nil
	}

	var outsideObject string
	if adjacent, ok := model.Resolve(r.graph, s.Adjacent); ok {
		outsideObject = adjacent.Name()
	}

	sun, wind := "NoSun", "NoWind"
	if s.Boundary == model.BoundaryOutdoors {
		sun, wind = "SunExposed", "WindExposed"
	}

	fields := []target.Field{
		target.F("Name", target.S(s.Name())),
		target.F("Surface Type", target.S(string(s.Type))),
		target.F("Construction Name", target.R(refName(r, s.Construction))),
		target.F("Zone Name", target.R(zoneName)),
		target.F("Space Name", target.R(spaceName)),
		target.F("Outside Boundary Condition", target.S(string(s.Boundary))),
		target.F("Outside Boundary Condition Object", target.R(outsideObject)),
		target.F("Sun Exposure", target.S(sun)),
		target.F("Wind Exposure", target.S(wind)),
	}
	fields = append(fields, vertexFields(s.Vertices)...)

	return r.emit(s, target.KindBuildingSurface, s.Name(), fields...)
}

func (r *run) translateSubSurface(s *model.SubSurface) *target.Record {
	surface, ok := model.Resolve(r.graph, s.Surface)
	if !ok {
		r.errorf(s, "missing_parent", "surface cannot be resolved")
		return nil
	}

	surfaceName := r.nameOf(surface)
	if surfaceName == "" {
		r.warnf(s, "parent_not_translated", "surface %q produced no record", surface.Name())
		return nil
	}

	var outsideObject string
	if adjacent, ok := model.Resolve(r.graph, s.Adjacent); ok {
		outsideObject = adjacent.Name()
	}

	multiplier := s.Multiplier
	if multiplier == 0 {
		multiplier = 1
	}

	fields := []target.Field{
		target.F("Name", target.S(s.Name())),
		target.F("Surface Type", target.S(string(s.Type))),
		target.F("Construction Name", target.R(refName(r, s.Construction))),
		target.F("Building Surface Name", target.R(surfaceName)),
		target.F("Outside Boundary Condition Object", target.R(outsideObject)),
		target.F("Multiplier", target.I(multiplier)),
	}
	fields = append(fields, vertexFields(s.Vertices)...)

	return r.emit(s, target.KindFenestrationSurface, s.Name(), fields...)
}

func vertexFields(vs []model.Vertex) []target.Field {
	fields := make([]target.Field, 0, 1+3*len(vs))
	fields = append(fields, target.F("Number of Vertices", target.I(len(vs))))

	for i, v := range vs {
		fields = append(fields,
			target.F(fmt.Sprintf("Vertex %d X-coordinate", i+1), target.N(v.X)),
			target.F(fmt.Sprintf("Vertex %d Y-coordinate", i+1), target.N(v.Y)),
			target.F(fmt.Sprintf("Vertex %d Z-coordinate", i+1), target.N(v.Z)))
	}

	return fields
}

// translateShadingControl emits one control whose subsurfaces all lie in one
// zone. Partitioning has already split multi-zone controls.
func (r *run) translateShadingControl(c *model.ShadingControl) *target.Record {
	zoneID, ok := r.controlZone[c.ID()]
	if !ok || len(c.SubSurfaces) == 0 {
		r.warnf(c, "no_subsurfaces", "control has no subsurface with a resolvable zone")
		return nil
	}

	zone, ok := model.Resolve(r.graph, model.RefID[*model.ThermalZone](zoneID))
	if !ok {
		r.errorf(c, "missing_zone", "zone of control is gone")
		return nil
	}

	zoneName := r.nameOf(zone)
	if zoneName == "" {
		r.warnf(c, "parent_not_translated", "zone %q produced no record", zone.Name())
		return nil
	}

	fields := []target.Field{
		target.F("Name", target.S(c.Name())),
		target.F("Zone Name", target.R(zoneName)),
		target.F("Shading Control Sequence Number", target.I(r.sequence[c.ID()])),
		target.F("Shading Type", target.S(c.ShadingType)),
		target.F("Construction with Shading Name", target.R(refName(r, c.ConstructionWithShading))),
		target.F("Shading Control Type", target.S(c.ControlType)),
		target.F("Schedule Name", target.R(refName(r, c.Schedule))),
		target.F("Setpoint", target.N(c.Setpoint)),
	}

	n := 0

	for _, ref := range c.SubSurfaces {
		name := refName(r, ref)
		if name == "" {
			continue
		}

		n++
		fields = append(fields, target.F(fmt.Sprintf("Fenestration Surface %d Name", n), target.R(name)))
	}

	if n == 0 {
		r.warnf(c, "no_subsurfaces", "no subsurface of the control produced a record")
		return nil
	}

	return r.emit(c, target.KindWindowShadingControl, c.Name(), fields...)
}
