package lower

import (
	"model-lowering/internal/model"
	"model-lowering/internal/target"
)

func (r *run) translateAirflowNetworkControl(c *model.AirflowNetworkControl) *target.Record {
	controlType := c.ControlType
	if controlType == "" {
		controlType = "MultizoneWithoutDistribution"
	}

	return r.emit(c, target.KindAirflowNetworkControl, c.Name(),
		target.F("Name", target.S(c.Name())),
		target.F("AirflowNetwork Control", target.S(controlType)))
}

// airflowNetworkEnabled reports whether the model carries the network
// singleton. Network zones and surfaces mean nothing without it.
func (r *run) airflowNetworkEnabled(e model.Entity) bool {
	if len(model.OfKind[*model.AirflowNetworkControl](r.graph, model.KindAirflowNetworkControl)) > 0 {
		return true
	}

	r.warnf(e, "no_airflow_network", "model has no airflow network control")

	return false
}

func (r *run) translateAirflowNetworkZone(z *model.AirflowNetworkZone) *target.Record {
	if !r.airflowNetworkEnabled(z) {
		return nil
	}

	zoneName := refName(r, z.Zone)
	if zoneName == "" {
		r.errorf(z, "missing_parent", "zone cannot be resolved")
		return nil
	}

	mode := z.VentilationControlMode
	if mode == "" {
		mode = "NoVent"
	}

	return r.emit(z, target.KindAirflowNetworkZone, z.Name(),
		target.F("Zone Name", target.R(zoneName)),
		target.F("Ventilation Control Mode", target.S(mode)))
}

func (r *run) translateAirflowNetworkSurface(s *model.AirflowNetworkSurface) *target.Record {
	if !r.airflowNetworkEnabled(s) {
		return nil
	}

	surfaceName := refName(r, s.Surface)
	if surfaceName == "" {
		r.errorf(s, "missing_parent", "surface cannot be resolved")
		return nil
	}

	return r.emit(s, target.KindAirflowNetworkSurface, s.Name(),
		target.F("Surface Name", target.R(surfaceName)),
		target.F("Leakage Component Name", target.S(s.Component)),
		target.F("Window/Door Opening Factor", target.N(s.OpeningFactor)))
}
