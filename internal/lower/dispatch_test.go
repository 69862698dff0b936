package lower

import (
	"context"
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-lowering/internal/config"
	"model-lowering/internal/diagnostic"
	"model-lowering/internal/model"
	"model-lowering/internal/target"
)

func TestTranslateIsIdempotent(t *testing.T) {
	g := oneOfEachKind()
	r := newRun(g, zoneMode(), diagnostic.New(nil))
	r.normalize()
	r.children = g.ChildIndex()

	zone := model.OfKind[*model.ThermalZone](g, model.KindThermalZone)[0]

	first, ok := r.translate(zone)
	require.True(t, ok)

	size := r.store.Len()

	second, ok := r.translate(zone)
	require.True(t, ok)
	assert.Same(t, first, second)
	assert.Equal(t, size, r.store.Len())
	assert.Len(t, r.store.ByKind(target.KindZone), 1)
}

func TestDeclinedEntityIsNotRetried(t *testing.T) {
	g := model.NewGraph()
	days := model.Add(g, "Christmas", &model.SpecialDays{StartDate: "12/25"})

	r := newRun(g, zoneMode(), diagnostic.New(nil))
	r.children = g.ChildIndex()

	_, ok := r.translate(days)
	assert.False(t, ok)

	_, ok = r.translate(days)
	assert.False(t, ok)
	assert.Len(t, r.diags.WithCode("skipped_special_days"), 1)
}

func TestDispatchTableIsExhaustive(t *testing.T) {
	order := dispatchOrder()

	for _, k := range model.AllKinds() {
		_, class := translatorFor(k)
		assert.NotEqual(t, ClassUnknown, class, "kind %s has no dispatch entry", k)
		assert.Contains(t, order, k, "kind %s is not in the dispatch order", k)
	}

	assert.Len(t, order, len(model.AllKinds()))
}

func TestEveryKindIsCovered(t *testing.T) {
	for name, opts := range map[string]config.Options{"zones": zoneMode(), "spaces": spaceMode()} {
		t.Run(name, func(t *testing.T) {
			res := runLowering(t, oneOfEachKind(), opts)

			for _, k := range model.AllKinds() {
				_, covered := res.Coverage[k]
				assert.True(t, covered, "kind %s was never dispatched", k)
			}

			assert.Empty(t, res.Diagnostics.WithCode("unsupported_kind"))
			assert.False(t, res.Diagnostics.HasErrors(), spew.Sdump(res.Diagnostics.Errors()))
		})
	}
}

func TestUnknownKindIsReported(t *testing.T) {
	_, class := translatorFor(model.KindUnknown)
	assert.Equal(t, ClassUnknown, class)

	g := model.NewGraph()
	odd := model.Add(g, "Odd", &model.Load{LoadKind: model.KindUnknown})

	r := newRun(g, zoneMode(), diagnostic.New(nil))
	r.children = g.ChildIndex()

	_, ok := r.translate(odd)
	assert.False(t, ok)
	assert.Equal(t, ClassUnknown, r.coverage[model.KindUnknown])
	assert.Len(t, r.diags.WithCode("unsupported_kind"), 1)
}

func TestChildrenFollowParent(t *testing.T) {
	res := runLowering(t, oneOfEachKind(), spaceMode())

	space, ok := res.Store.Find(target.KindSpace, "Space 1")
	require.True(t, ok)

	wall, ok := res.Store.Find(target.KindBuildingSurface, "Wall 1")
	require.True(t, ok)

	window, ok := res.Store.Find(target.KindFenestrationSurface, "Window 1")
	require.True(t, ok)

	lights, ok := res.Store.Find(target.KindLights, "Space 1 Lights")
	require.True(t, ok)

	assert.Less(t, space.Index(), wall.Index())
	assert.Less(t, wall.Index(), window.Index())
	assert.Less(t, window.Index(), lights.Index())
	assert.Equal(t, "Space 1", wall.Str("Space Name"))
}

func TestAdministrativeRecordsComeFirst(t *testing.T) {
	res := runLowering(t, oneOfEachKind(), zoneMode())

	all := res.Store.All()
	require.NotEmpty(t, all)
	assert.Equal(t, target.KindVersion, all[0].Kind)

	schedule, ok := res.Store.Find(target.KindScheduleConstant, "Always On")
	require.True(t, ok)

	zone, ok := res.Store.Find(target.KindZone, "Zone 1")
	require.True(t, ok)
	assert.Less(t, schedule.Index(), zone.Index())

	last := all[len(all)-1]
	assert.Equal(t, target.KindOutputVariableDictionary, last.Kind)
}

func TestTranslateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewTranslator(zoneMode()).Translate(ctx, oneOfEachKind())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, res)
}

func TestDeterminism(t *testing.T) {
	for name, opts := range map[string]config.Options{"zones": zoneMode(), "spaces": spaceMode()} {
		t.Run(name, func(t *testing.T) {
			g := newSeedFixture().withFlowRate().withLeakageArea().g
			addAdjacentWalls(g)

			first := runLowering(t, g.Copy(), opts)
			second := runLowering(t, g.Copy(), opts)

			assert.Equal(t, renderStore(first.Store), renderStore(second.Store))
			assert.Equal(t, first.Diagnostics.Entries(), second.Diagnostics.Entries())
		})
	}
}

// addAdjacentWalls adds a pair of walls sharing one non-symmetric
// construction.
func addAdjacentWalls(g *model.Graph) {
	spaces := model.OfKind[*model.Space](g, model.KindSpace)
	inside := model.Add(g, "Gypsum", &model.Material{})
	core := model.Add(g, "Insulation", &model.Material{})
	c := model.Add(g, "Partition", &model.Construction{
		Layers: []model.Ref[*model.Material]{model.RefTo(inside), model.RefTo(core)},
	})

	a := model.Add(g, "Wall A", &model.Surface{Space: model.RefTo(spaces[0]), Boundary: model.BoundarySurface, Construction: model.RefTo(c)})
	b := model.Add(g, "Wall B", &model.Surface{Space: model.RefTo(spaces[1]), Boundary: model.BoundarySurface, Construction: model.RefTo(c)})
	a.Adjacent = model.RefTo(b)
	b.Adjacent = model.RefTo(a)
}

func renderStore(s *target.Store) []string {
	var out []string

	for _, r := range s.All() {
		line := r.Kind.String() + "|" + r.Name
		for _, f := range r.Fields {
			line += "|" + f.Name + "=" + f.Value.String()
		}

		out = append(out, line)
	}

	return out
}

func TestRequiredOutputsFollowOptions(t *testing.T) {
	res := runLowering(t, oneOfEachKind(), zoneMode())
	assert.Len(t, res.Store.ByKind(target.KindOutputSQLite), 1)
	assert.Len(t, res.Store.ByKind(target.KindOutputSummaryReports), 1)
	assert.Len(t, res.Store.ByKind(target.KindOutputVariableDictionary), 1)
	assert.Len(t, res.Store.ByKind(target.KindLifeCycleCostParameters), 1)

	opts := zoneMode()
	opts.ExcludeOptionalReportCategories = []config.ReportCategory{config.ReportSQLite, config.ReportLifeCycleCost}

	res = runLowering(t, oneOfEachKind(), opts)
	assert.Empty(t, res.Store.ByKind(target.KindOutputSQLite))
	assert.Empty(t, res.Store.ByKind(target.KindLifeCycleCostParameters))
	assert.Len(t, res.Store.ByKind(target.KindOutputSummaryReports), 1)
	assert.Len(t, res.Diagnostics.WithCode("skipped_report"), 1)
}

func TestSpecialDaysFollowOptions(t *testing.T) {
	res := runLowering(t, oneOfEachKind(), zoneMode())
	assert.Empty(t, res.Store.ByKind(target.KindSpecialDays))

	opts := zoneMode()
	opts.KeepSecondaryCalendarOverrides = true

	res = runLowering(t, oneOfEachKind(), opts)
	days, ok := res.Store.Find(target.KindSpecialDays, "Christmas")
	require.True(t, ok)
	assert.Equal(t, "12/25", days.Str("Start Date"))
}

func TestMissingSingletonsAreCreated(t *testing.T) {
	res := runLowering(t, model.NewGraph(), zoneMode())

	for _, kind := range []target.Kind{
		target.KindVersion, target.KindSimulationControl, target.KindTimestep,
		target.KindRunPeriod, target.KindBuilding, target.KindSiteLocation,
	} {
		assert.Len(t, res.Store.ByKind(kind), 1, "kind %s", kind)
	}

	assert.Len(t, res.Diagnostics.WithCode("created_default"), 6)
	assert.False(t, res.Diagnostics.HasErrors())
}

func TestZoneEmitsThermostat(t *testing.T) {
	res := runLowering(t, oneOfEachKind(), zoneMode())

	control, ok := res.Store.Find(target.KindZoneControlThermostat, "Zone 1 Thermostat")
	require.True(t, ok)
	assert.Equal(t, "Zone 1", control.Str("Zone or ZoneList Name"))

	setpoint, ok := res.Store.Find(target.KindDualSetpoint, "Zone 1 Thermostat")
	require.True(t, ok)
	assert.Equal(t, "Heating Setpoint", setpoint.Str("Heating Setpoint Temperature Schedule Name"))

	schedule, ok := res.Store.Find(target.KindScheduleConstant, control.Str("Control Type Schedule Name"))
	require.True(t, ok)
	assert.InDelta(t, 4, schedule.Num("Hourly Value"), 1e-12)
}

func TestSecondThermostatIsReported(t *testing.T) {
	g := oneOfEachKind()
	zone := model.OfKind[*model.ThermalZone](g, model.KindThermalZone)[0]
	schedule := model.OfKind[*model.Schedule](g, model.KindSchedule)[0]
	model.Add(g, "Zone 1 Thermostat 2", &model.Thermostat{
		Zone:    model.RefTo(zone),
		Heating: model.RefTo(schedule),
		Cooling: model.RefTo(schedule),
	})

	res := runLowering(t, g, zoneMode())

	assert.Len(t, res.Store.ByKind(target.KindZoneControlThermostat), 1)
	_, ok := res.Store.Find(target.KindDualSetpoint, "Zone 1 Thermostat")
	assert.True(t, ok)
	_, ok = res.Store.Find(target.KindDualSetpoint, "Zone 1 Thermostat 2")
	assert.False(t, ok)

	ignored := res.Diagnostics.WithCode("ignored_thermostat")
	require.Len(t, ignored, 1)
	assert.Equal(t, "Zone 1 Thermostat 2", ignored[0].Entity)
	assert.Contains(t, ignored[0].Message, `"Zone 1 Thermostat"`)
}
