package lower

import (
	"context"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"model-lowering/internal/config"
	"model-lowering/internal/model"
	"model-lowering/internal/target"
)

func zoneMode() config.Options {
	return config.Default()
}

func spaceMode() config.Options {
	opts := config.Default()
	opts.FlattenCategoriesToZones = false

	return opts
}

func runLowering(t *testing.T, g *model.Graph, opts config.Options) *Result {
	t.Helper()

	res, err := NewTranslator(opts).Translate(context.Background(), g)
	require.NoError(t, err)

	return res
}

// seedFixture is four 100 m² spaces in one zone; Space 3 and Space 4 belong
// to the Office category.
type seedFixture struct {
	g      *model.Graph
	zone   *model.ThermalZone
	office *model.SpaceType
	spaces []*model.Space
}

func newSeedFixture() *seedFixture {
	g := model.NewGraph()
	f := &seedFixture{g: g}
	f.zone = model.Add(g, "Zone 1", &model.ThermalZone{})
	f.office = model.Add(g, "Office", &model.SpaceType{})

	for i, name := range []string{"Space 1", "Space 2", "Space 3", "Space 4"} {
		space := &model.Space{Zone: model.RefTo(f.zone), FloorArea: 100, Volume: 300}
		if i >= 2 {
			space.SpaceType = model.RefTo(f.office)
		}

		f.spaces = append(f.spaces, model.Add(g, name, space))
	}

	return f
}

// withFlowRate attaches 0.0003 m³/s·m² to Office, 0.3 m³/s to Space 1 and
// 0.327 m³/s to Space 2.
func (f *seedFixture) withFlowRate() *seedFixture {
	model.Add(f.g, "Office Infiltration", &model.Load{
		LoadKind:  model.KindInfiltrationDesignFlowRate,
		SpaceType: model.RefTo(f.office),
		Method:    model.MethodPerFloorArea,
		Value:     0.0003,
	})
	model.Add(f.g, "Space 1 Infiltration", &model.Load{
		LoadKind: model.KindInfiltrationDesignFlowRate,
		Space:    model.RefTo(f.spaces[0]),
		Method:   model.MethodAbsolute,
		Value:    0.3,
	})
	model.Add(f.g, "Space 2 Infiltration", &model.Load{
		LoadKind: model.KindInfiltrationDesignFlowRate,
		Space:    model.RefTo(f.spaces[1]),
		Method:   model.MethodAbsolute,
		Value:    0.327,
	})

	return f
}

// withLeakageArea attaches 0.4 cm² to Office, 0.5 cm² to Space 1 and 0.4 cm²
// to Space 2.
func (f *seedFixture) withLeakageArea() *seedFixture {
	for _, l := range []struct {
		name  string
		space *model.Space
		value float64
	}{
		{"Office Leakage", nil, 0.4},
		{"Space 1 Leakage", f.spaces[0], 0.5},
		{"Space 2 Leakage", f.spaces[1], 0.4},
	} {
		load := &model.Load{
			LoadKind:         model.KindInfiltrationLeakageArea,
			Method:           model.MethodAbsolute,
			Value:            l.value,
			StackCoefficient: 0.000145,
			WindCoefficient:  0.000174,
		}
		if l.space != nil {
			load.Space = model.RefTo(l.space)
		} else {
			load.SpaceType = model.RefTo(f.office)
		}

		model.Add(f.g, l.name, load)
	}

	return f
}

// totalFlow sums the design flow rate of every infiltration record, expanding
// per-area rates over the floor area of the spaces or zones they name.
func totalFlow(t *testing.T, s *target.Store) float64 {
	t.Helper()

	var total float64

	for _, r := range s.ByKind(target.KindInfiltrationDesignFlowRate) {
		parent := r.Str("Zone or ZoneList or Space or SpaceList Name")

		switch method := r.Str("Design Level Calculation Method"); method {
		case "Flow/Zone":
			total += r.Num("Design Flow Rate")
		case "Flow/Area":
			total += r.Num("Flow Rate per Floor Area") * floorAreaOf(t, s, parent)
		default:
			t.Fatalf("unexpected method %q in %s", method, spew.Sdump(r))
		}
	}

	return total
}

func floorAreaOf(t *testing.T, s *target.Store, name string) float64 {
	t.Helper()

	if r, ok := s.Find(target.KindSpace, name); ok {
		return r.Num("Floor Area")
	}

	if r, ok := s.Find(target.KindZone, name); ok {
		return r.Num("Floor Area")
	}

	for _, kind := range []target.Kind{target.KindSpaceList, target.KindZoneList} {
		if r, ok := s.Find(kind, name); ok {
			var area float64
			for _, member := range r.Refs("") {
				area += floorAreaOf(t, s, member)
			}

			return area
		}
	}

	t.Fatalf("no record named %q", name)

	return 0
}

func totalLeakage(s *target.Store) float64 {
	var total float64
	for _, r := range s.ByKind(target.KindInfiltrationLeakageArea) {
		total += r.Num("Effective Air Leakage Area")
	}

	return total
}

// oneOfEachKind builds a consistent model holding at least one entity of
// every kind.
func oneOfEachKind() *model.Graph {
	g := model.NewGraph()

	model.Add(g, "Version", &model.Version{Identifier: "24.1"})
	model.Add(g, "Simulation Control", &model.SimulationControl{RunForWeatherFile: true})
	model.Add(g, "Timestep", &model.Timestep{PerHour: 4})
	model.Add(g, "Annual", &model.RunPeriod{BeginMonth: 1, BeginDay: 1, EndMonth: 12, EndDay: 31})
	model.Add(g, "Christmas", &model.SpecialDays{StartDate: "12/25", Duration: 1, DayType: "Holiday"})
	model.Add(g, "Site", &model.Site{Latitude: 47.6, Longitude: -122.3, TimeZone: -8})
	model.Add(g, "Building", &model.Building{Terrain: "City"})
	model.Add(g, "LCC", &model.LifeCycleCostParameters{LengthOfStudyYears: 25})
	model.Add(g, "Zone Temperature", &model.OutputVariable{Variable: "Zone Mean Air Temperature", Frequency: "Hourly"})

	limits := model.Add(g, "Fraction", &model.ScheduleTypeLimits{NumericType: "Continuous"})
	always := model.Add(g, "Always On", &model.Schedule{TypeLimits: model.RefTo(limits), Value: 1})
	heating := model.Add(g, "Heating Setpoint", &model.Schedule{Value: 21})
	cooling := model.Add(g, "Cooling Setpoint", &model.Schedule{Value: 24})

	concrete := model.Add(g, "Concrete", &model.Material{Roughness: "MediumRough", Thickness: 0.2, Conductivity: 1.7})
	slab := model.Add(g, "Slab", &model.Construction{Layers: []model.Ref[*model.Material]{model.RefTo(concrete)}})
	set := model.Add(g, "Defaults", &model.DefaultConstructionSet{ExteriorWall: model.RefTo(slab)})
	story := model.Add(g, "Story 1", &model.BuildingStory{DefaultConstructionSet: model.RefTo(set)})

	zone := model.Add(g, "Zone 1", &model.ThermalZone{Multiplier: 1})
	model.Add(g, "Zone 1 Thermostat", &model.Thermostat{
		Zone:    model.RefTo(zone),
		Heating: model.RefTo(heating),
		Cooling: model.RefTo(cooling),
	})

	office := model.Add(g, "Office", &model.SpaceType{})
	space := model.Add(g, "Space 1", &model.Space{
		Zone:      model.RefTo(zone),
		SpaceType: model.RefTo(office),
		Story:     model.RefTo(story),
		FloorArea: 100,
		Volume:    300,
	})

	wall := model.Add(g, "Wall 1", &model.Surface{
		Space:        model.RefTo(space),
		Type:         model.SurfaceWall,
		Boundary:     model.BoundaryOutdoors,
		Construction: model.RefTo(slab),
		Vertices:     []model.Vertex{{X: 0, Y: 0, Z: 3}, {X: 0, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 3}},
	})
	window := model.Add(g, "Window 1", &model.SubSurface{
		Surface:      model.RefTo(wall),
		Type:         model.SubSurfaceFixedWindow,
		Construction: model.RefTo(slab),
		Vertices:     []model.Vertex{{X: 1, Y: 0, Z: 2}, {X: 1, Y: 0, Z: 1}, {X: 2, Y: 0, Z: 1}, {X: 2, Y: 0, Z: 2}},
	})
	model.Add(g, "Blinds", &model.ShadingControl{
		ShadingType: "InteriorBlind",
		ControlType: "OnIfHighSolarOnWindow",
		Schedule:    model.RefTo(always),
		SubSurfaces: []model.Ref[*model.SubSurface]{model.RefTo(window)},
	})

	model.Add(g, "Office People", &model.Load{
		LoadKind:  model.KindPeople,
		SpaceType: model.RefTo(office),
		Method:    model.MethodPerFloorArea,
		Value:     0.05,
		Schedule:  model.RefTo(always),
	})
	lights := model.Add(g, "Space 1 Lights", &model.Load{
		LoadKind: model.KindLights,
		Space:    model.RefTo(space),
		Method:   model.MethodPerFloorArea,
		Value:    8,
		Schedule: model.RefTo(always),
	})
	model.Add(g, "Space 1 Equipment", &model.Load{
		LoadKind: model.KindElectricEquipment,
		Space:    model.RefTo(space),
		Method:   model.MethodAbsolute,
		Value:    500,
	})
	model.Add(g, "Space 1 Infiltration", &model.Load{
		LoadKind: model.KindInfiltrationDesignFlowRate,
		Space:    model.RefTo(space),
		Method:   model.MethodAirChanges,
		Value:    0.5,
	})
	model.Add(g, "Space 1 Leakage", &model.Load{
		LoadKind: model.KindInfiltrationLeakageArea,
		Space:    model.RefTo(space),
		Value:    0.4,
	})
	model.Add(g, "Facade Lights", &model.Load{
		LoadKind: model.KindExteriorLights,
		Value:    1200,
	})
	model.Add(g, "Dimmer", &model.EMSActuator{Component: model.RefTo(lights), ControlType: "Electricity Rate"})

	model.Add(g, "Airflow Network", &model.AirflowNetworkControl{})
	model.Add(g, "Zone 1 Airflow", &model.AirflowNetworkZone{Zone: model.RefTo(zone)})
	model.Add(g, "Wall 1 Airflow", &model.AirflowNetworkSurface{Surface: model.RefTo(wall), Component: "Crack 1", OpeningFactor: 1})

	return g
}
