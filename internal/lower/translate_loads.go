package lower

import (
	"model-lowering/internal/model"
	"model-lowering/internal/target"
)

// loadTargets maps each load kind to its record kind.
var loadTargets = map[model.Kind]target.Kind{
	model.KindPeople:                     target.KindPeople,
	model.KindLights:                     target.KindLights,
	model.KindElectricEquipment:          target.KindElectricEquipment,
	model.KindInfiltrationDesignFlowRate: target.KindInfiltrationDesignFlowRate,
	model.KindInfiltrationLeakageArea:    target.KindInfiltrationLeakageArea,
	model.KindExteriorLights:             target.KindExteriorLights,
}

// quantity describes how a load method is written: the calculation method
// keyword (empty when the record has none) and the field carrying the value.
type quantity struct {
	method string
	field  string
}

// loadQuantity returns the encoding of method for kind.
func loadQuantity(kind model.Kind, method model.LoadMethod) (quantity, bool) {
	if method == "" {
		method = model.MethodAbsolute
	}

	switch kind {
	case model.KindPeople:
		switch method {
		case model.MethodAbsolute:
			return quantity{"People", "Number of People"}, true
		case model.MethodPerFloorArea:
			return quantity{"People/Area", "People per Floor Area"}, true
		}
	case model.KindLights:
		switch method {
		case model.MethodAbsolute:
			return quantity{"LightingLevel", "Lighting Level"}, true
		case model.MethodPerFloorArea:
			return quantity{"Watts/Area", "Watts per Floor Area"}, true
		case model.MethodPerPerson:
			return quantity{"Watts/Person", "Watts per Person"}, true
		}
	case model.KindElectricEquipment:
		switch method {
		case model.MethodAbsolute:
			return quantity{"EquipmentLevel", "Design Level"}, true
		case model.MethodPerFloorArea:
			return quantity{"Watts/Area", "Watts per Floor Area"}, true
		case model.MethodPerPerson:
			return quantity{"Watts/Person", "Watts per Person"}, true
		}
	case model.KindInfiltrationDesignFlowRate:
		switch method {
		case model.MethodAbsolute:
			return quantity{"Flow/Zone", "Design Flow Rate"}, true
		case model.MethodPerFloorArea:
			return quantity{"Flow/Area", "Flow Rate per Floor Area"}, true
		case model.MethodPerExterior:
			return quantity{"Flow/ExteriorArea", "Flow Rate per Exterior Surface Area"}, true
		case model.MethodAirChanges:
			return quantity{"AirChanges/Hour", "Air Changes per Hour"}, true
		}
	case model.KindInfiltrationLeakageArea:
		if method == model.MethodAbsolute {
			return quantity{"", "Effective Air Leakage Area"}, true
		}
	case model.KindExteriorLights:
		if method == model.MethodAbsolute {
			return quantity{"", "Design Level"}, true
		}
	}

	return quantity{}, false
}

// hasParentField reports whether the record of a load kind names a zone or
// space at all.
func hasParentField(kind model.Kind) bool {
	return kind != model.KindExteriorLights
}

// parentField names the field that points at the load's zone or space.
func parentField(kind model.Kind) string {
	if collectionAllowed(kind) {
		return "Zone or ZoneList or Space or SpaceList Name"
	}

	return "Zone or Space Name"
}

func (r *run) translateLoad(l *model.Load) *target.Record {
	kind, ok := loadTargets[l.Kind()]
	if !ok {
		r.errorf(l, "unsupported_kind", "%s is not a load kind", l.Kind())
		return nil
	}

	q, ok := loadQuantity(l.Kind(), l.Method)
	if !ok {
		r.errorf(l, "unsupported_method", "method %q is not supported for %s", l.Method, l.Kind())
		return nil
	}

	fields := []target.Field{target.F("Name", target.S(l.Name()))}

	switch {
	case hasParentField(l.Kind()):
		parent, status := r.resolveParent(l, l, collectionAllowed(l.Kind()))
		if status == parentFailed {
			return nil
		}

		if parent == nil {
			r.errorf(l, "missing_parent", "load %q has no parent record", l.Name())
			return nil
		}

		fields = append(fields, target.F(parentField(l.Kind()), target.R(parent.Name)))

	case l.Owner() != model.NilHandle:
		r.infof(l, "parent_ignored", "%s records name no zone or space; assignment dropped", l.Kind())
	}

	fields = append(fields, target.F("Schedule Name", target.R(refName(r, l.Schedule))))

	if q.method != "" {
		fields = append(fields, target.F("Design Level Calculation Method", target.S(q.method)))
	}

	fields = append(fields, target.F(q.field, target.N(l.Value*l.EffectiveMultiplier())))

	if l.Kind() == model.KindInfiltrationLeakageArea {
		fields = append(fields,
			target.F("Stack Coefficient", target.N(l.StackCoefficient)),
			target.F("Wind Coefficient", target.N(l.WindCoefficient)))
	}

	return r.emit(l, kind, l.Name(), fields...)
}

// translateActuator emits a control actuator for a load. A load attached to a
// space type is expanded per zone by the consumer, so the actuator names the
// instance in one representative zone.
func (r *run) translateActuator(a *model.EMSActuator) *target.Record {
	load, ok := model.Resolve(r.graph, a.Component)
	if !ok {
		r.errorf(a, "missing_component", "actuated component cannot be resolved")
		return nil
	}

	loadRec, ok := r.translate(load)
	if !ok {
		r.warnf(a, "component_not_translated", "load %q produced no record", load.Name())
		return nil
	}

	uniqueName := loadRec.Name

	if load.SpaceType.IsSet() && !load.Space.IsSet() {
		rep, status := r.resolveParent(a, load, false)
		if status != parentResolved {
			return nil
		}

		uniqueName = rep.Name + " " + loadRec.Name
	}

	componentType := a.ComponentType
	if componentType == "" {
		componentType = loadTargets[load.Kind()].String()
	}

	return r.emit(a, target.KindEMSActuator, a.Name(),
		target.F("Name", target.S(a.Name())),
		target.F("Actuated Component Unique Name", target.S(uniqueName)),
		target.F("Actuated Component Type", target.S(componentType)),
		target.F("Actuated Component Control Type", target.S(a.ControlType)))
}
