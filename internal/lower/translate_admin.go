package lower

import (
	"fmt"

	"model-lowering/internal/config"
	"model-lowering/internal/model"
	"model-lowering/internal/target"
)

func (r *run) translateVersion(v *model.Version) *target.Record {
	return r.emit(v, target.KindVersion, v.Name(),
		target.F("Version Identifier", target.S(v.Identifier)))
}

func (r *run) translateSimulationControl(s *model.SimulationControl) *target.Record {
	return r.emit(s, target.KindSimulationControl, s.Name(),
		target.F("Do Zone Sizing Calculation", target.B(s.DoZoneSizing)),
		target.F("Do System Sizing Calculation", target.B(s.DoSystemSizing)),
		target.F("Do Plant Sizing Calculation", target.B(s.DoPlantSizing)),
		target.F("Run Simulation for Sizing Periods", target.B(s.RunForSizingPeriods)),
		target.F("Run Simulation for Weather File Run Periods", target.B(s.RunForWeatherFile)))
}

func (r *run) translateTimestep(t *model.Timestep) *target.Record {
	return r.emit(t, target.KindTimestep, t.Name(),
		target.F("Number of Timesteps per Hour", target.I(t.PerHour)))
}

func (r *run) translateRunPeriod(p *model.RunPeriod) *target.Record {
	return r.emit(p, target.KindRunPeriod, p.Name(),
		target.F("Name", target.S(p.Name())),
		target.F("Begin Month", target.I(p.BeginMonth)),
		target.F("Begin Day of Month", target.I(p.BeginDay)),
		target.F("End Month", target.I(p.EndMonth)),
		target.F("End Day of Month", target.I(p.EndDay)))
}

// translateSpecialDays emits calendar overrides only when they are asked for.
func (r *run) translateSpecialDays(d *model.SpecialDays) *target.Record {
	if !r.opts.KeepSecondaryCalendarOverrides {
		r.infof(d, "skipped_special_days", "secondary calendar overrides are not kept")
		return nil
	}

	return r.emit(d, target.KindSpecialDays, d.Name(),
		target.F("Name", target.S(d.Name())),
		target.F("Start Date", target.S(d.StartDate)),
		target.F("Duration", target.I(d.Duration)),
		target.F("Special Day Type", target.S(d.DayType)))
}

func (r *run) translateSite(s *model.Site) *target.Record {
	return r.emit(s, target.KindSiteLocation, s.Name(),
		target.F("Name", target.S(s.Name())),
		target.F("Latitude", target.N(s.Latitude)),
		target.F("Longitude", target.N(s.Longitude)),
		target.F("Time Zone", target.N(s.TimeZone)),
		target.F("Elevation", target.N(s.Elevation)))
}

func (r *run) translateBuilding(b *model.Building) *target.Record {
	return r.emit(b, target.KindBuilding, b.Name(),
		target.F("Name", target.S(b.Name())),
		target.F("North Axis", target.N(b.NorthAxis)),
		target.F("Terrain", target.S(b.Terrain)))
}

func (r *run) translateLifeCycleCost(p *model.LifeCycleCostParameters) *target.Record {
	if r.opts.Excludes(config.ReportLifeCycleCost) {
		r.infof(p, "skipped_report", "report category %s is excluded", config.ReportLifeCycleCost)
		return nil
	}

	return r.emit(p, target.KindLifeCycleCostParameters, p.Name(),
		target.F("Name", target.S(p.Name())),
		target.F("Discounting Convention", target.S(p.DiscountingConvention)),
		target.F("Inflation Approach", target.S(p.InflationApproach)),
		target.F("Length of Study Period in Years", target.I(p.LengthOfStudyYears)))
}

func (r *run) translateOutputVariable(o *model.OutputVariable) *target.Record {
	key := o.Key
	if key == "" {
		key = "*"
	}

	return r.emit(o, target.KindOutputVariable, o.Name(),
		target.F("Key Value", target.S(key)),
		target.F("Variable Name", target.S(o.Variable)),
		target.F("Reporting Frequency", target.S(o.Frequency)))
}

// emitRequiredOutputs appends the output control records every run carries
// unless their report category is excluded.
func (r *run) emitRequiredOutputs() {
	outputs := []struct {
		category config.ReportCategory
		kind     target.Kind
		fields   []target.Field
	}{
		{config.ReportSQLite, target.KindOutputSQLite, []target.Field{
			target.F("Option Type", target.S("SimpleAndTabular")),
		}},
		{config.ReportHTML, target.KindOutputSummaryReports, []target.Field{
			target.F("Report 1 Name", target.S("AllSummary")),
		}},
		{config.ReportDictionary, target.KindOutputVariableDictionary, []target.Field{
			target.F("Key Field", target.S("IDF")),
		}},
	}

	for _, o := range outputs {
		if r.opts.Excludes(o.category) || len(r.store.ByKind(o.kind)) > 0 {
			continue
		}

		r.store.Append(o.kind, o.kind.String(), o.fields...)
	}
}

func (r *run) translateScheduleTypeLimits(l *model.ScheduleTypeLimits) *target.Record {
	return r.emit(l, target.KindScheduleTypeLimits, l.Name(),
		target.F("Name", target.S(l.Name())),
		target.F("Lower Limit Value", optional(l.Lower)),
		target.F("Upper Limit Value", optional(l.Upper)),
		target.F("Numeric Type", target.S(l.NumericType)),
		target.F("Unit Type", target.S(l.UnitType)))
}

func optional(v *float64) target.Value {
	if v == nil {
		return target.Empty
	}

	return target.N(*v)
}

func (r *run) translateSchedule(s *model.Schedule) *target.Record {
	return r.emit(s, target.KindScheduleConstant, s.Name(),
		target.F("Name", target.S(s.Name())),
		target.F("Schedule Type Limits Name", target.R(refName(r, s.TypeLimits))),
		target.F("Hourly Value", target.N(s.Value)))
}

func (r *run) translateMaterial(m *model.Material) *target.Record {
	return r.emit(m, target.KindMaterial, m.Name(),
		target.F("Name", target.S(m.Name())),
		target.F("Roughness", target.S(m.Roughness)),
		target.F("Thickness", target.N(m.Thickness)),
		target.F("Conductivity", target.N(m.Conductivity)),
		target.F("Density", target.N(m.Density)),
		target.F("Specific Heat", target.N(m.SpecificHeat)))
}

func (r *run) translateConstruction(c *model.Construction) *target.Record {
	fields := []target.Field{target.F("Name", target.S(c.Name()))}

	for i, layer := range c.Layers {
		name := refName(r, layer)
		if name == "" {
			r.errorf(c, "missing_layer", "layer %d cannot be resolved", i+1)
			return nil
		}

		label := "Outside Layer"
		if i > 0 {
			label = fmt.Sprintf("Layer %d", i+1)
		}

		fields = append(fields, target.F(label, target.R(name)))
	}

	if len(fields) == 1 {
		r.warnf(c, "empty_construction", "construction has no layers")
		return nil
	}

	return r.emit(c, target.KindConstruction, c.Name(), fields...)
}
