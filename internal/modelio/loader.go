package modelio

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"model-lowering/internal/match"
	"model-lowering/internal/model"
)

var (
	// ErrUnknownReference is returned when an entity names another entity
	// that the file does not define.
	ErrUnknownReference = errors.New("unknown reference")
	// ErrDuplicateName is returned when two entities of one kind share a name.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrInvalidValue is returned for malformed enumerations and vertices.
	ErrInvalidValue = errors.New("invalid value")
)

// LoadFile loads and parses a YAML model file from the given path.
func LoadFile(path string) (*model.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a source graph.
func Parse(data []byte) (*model.Graph, error) {
	var mf ModelFile

	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("failed to parse model YAML: %w", err)
	}

	return Build(&mf)
}

// Build turns a decoded model file into a graph. All reference and value
// problems are collected and returned together.
func Build(mf *ModelFile) (*model.Graph, error) {
	b := newBuilder()
	b.declare(mf)

	if len(b.errs) == 0 {
		b.link()
	}

	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	return b.g, nil
}

// builder creates entities in a first pass and wires references in a second.
type builder struct {
	g       *model.Graph
	byName  map[model.Kind]map[string]model.Entity
	loads   map[string]*model.Load
	pending []func()
	errs    []error
}

func newBuilder() *builder {
	return &builder{
		g:      model.NewGraph(),
		byName: make(map[model.Kind]map[string]model.Entity),
		loads:  make(map[string]*model.Load),
	}
}

func (b *builder) errorf(format string, args ...any) {
	b.errs = append(b.errs, fmt.Errorf(format, args...))
}

// add inserts e under name, defaulting the name of singletons.
func add[T model.Entity](b *builder, name, fallback string, e T) T {
	if name == "" {
		name = fallback
	}

	kind := e.Kind()
	if name == "" {
		b.errorf("%w: %s without a name", ErrInvalidValue, kind)
	}

	if b.byName[kind] == nil {
		b.byName[kind] = make(map[string]model.Entity)
	}

	if _, dup := b.byName[kind][name]; dup {
		b.errorf("%w: %s %q", ErrDuplicateName, kind, name)
	}

	e = model.Add(b.g, name, e)
	b.byName[kind][name] = e

	return e
}

// ref resolves name to an entity of kind. An empty name is an unset
// reference.
func ref[T model.Entity](b *builder, owner model.Entity, kind model.Kind, name string) model.Ref[T] {
	if name == "" {
		return model.Ref[T]{}
	}

	e, ok := b.byName[kind][name]
	if !ok {
		b.unknown(owner, kind.String(), name, slices.Collect(maps.Keys(b.byName[kind])))
		return model.Ref[T]{}
	}

	t, ok := e.(T)
	if !ok {
		b.errorf("%w: %s %q has unexpected type %T", ErrInvalidValue, kind, name, e)
		return model.Ref[T]{}
	}

	return model.RefTo(t)
}

// unknown records a dangling reference, with the closest known name as a
// hint when there is one.
func (b *builder) unknown(owner model.Entity, what, name string, known []string) {
	if hint, ok := match.Suggest(name, known); ok {
		b.errorf("%w: %s %q referenced by %s %q (did you mean %q?)",
			ErrUnknownReference, what, name, owner.Kind(), owner.Name(), hint)

		return
	}

	b.errorf("%w: %s %q referenced by %s %q", ErrUnknownReference, what, name, owner.Kind(), owner.Name())
}

// later queues a linking step to run once every entity exists.
func (b *builder) later(fn func()) {
	b.pending = append(b.pending, fn)
}

func (b *builder) link() {
	for _, fn := range b.pending {
		fn()
	}
}

func (b *builder) declare(mf *ModelFile) {
	b.declareAdministrative(mf)
	b.declareConstructions(mf)
	b.declareGeometry(mf)
	b.declareLoads(mf)
	b.declareAirflowNetwork(mf)
}

func (b *builder) declareAdministrative(mf *ModelFile) {
	if d := mf.Version; d != nil {
		add(b, d.Name, "Version", &model.Version{Identifier: d.Identifier})
	}

	if d := mf.SimulationControl; d != nil {
		add(b, d.Name, "Simulation Control", &model.SimulationControl{
			DoZoneSizing:        d.DoZoneSizing,
			DoSystemSizing:      d.DoSystemSizing,
			DoPlantSizing:       d.DoPlantSizing,
			RunForSizingPeriods: d.RunForSizingPeriods,
			RunForWeatherFile:   d.RunForWeatherFile,
		})
	}

	if d := mf.Timestep; d != nil {
		add(b, d.Name, "Timestep", &model.Timestep{PerHour: d.PerHour})
	}

	for _, d := range mf.RunPeriods {
		add(b, d.Name, "Run Period", &model.RunPeriod{
			BeginMonth: d.BeginMonth, BeginDay: d.BeginDay,
			EndMonth: d.EndMonth, EndDay: d.EndDay,
		})
	}

	for _, d := range mf.SpecialDays {
		add(b, d.Name, "Special Days", &model.SpecialDays{StartDate: d.StartDate, Duration: d.Duration, DayType: d.DayType})
	}

	if d := mf.Site; d != nil {
		add(b, d.Name, "Site", &model.Site{
			Latitude:  d.Latitude,
			Longitude: d.Longitude,
			TimeZone:  d.TimeZone,
			Elevation: d.Elevation,
		})
	}

	if d := mf.Building; d != nil {
		e := add(b, d.Name, "Building", &model.Building{NorthAxis: d.NorthAxis, Terrain: d.Terrain})
		b.later(func() {
			e.DefaultConstructionSet = ref[*model.DefaultConstructionSet](b, e, model.KindDefaultConstructionSet, d.DefaultConstructionSet)
		})
	}

	for _, d := range mf.Stories {
		e := add(b, d.Name, "", &model.BuildingStory{NominalZ: d.NominalZ})
		b.later(func() {
			e.DefaultConstructionSet = ref[*model.DefaultConstructionSet](b, e, model.KindDefaultConstructionSet, d.DefaultConstructionSet)
		})
	}

	if d := mf.LifeCycleCost; d != nil {
		add(b, d.Name, "Life Cycle Cost Parameters", &model.LifeCycleCostParameters{
			DiscountingConvention: d.DiscountingConvention,
			InflationApproach:     d.InflationApproach,
			LengthOfStudyYears:    d.LengthOfStudyYears,
		})
	}

	for _, d := range mf.OutputVariables {
		add(b, d.Name, d.Variable, &model.OutputVariable{Key: d.Key, Variable: d.Variable, Frequency: d.Frequency})
	}

	for _, d := range mf.ScheduleTypeLimits {
		add(b, d.Name, "", &model.ScheduleTypeLimits{
			Lower:       d.Lower,
			Upper:       d.Upper,
			NumericType: d.NumericType,
			UnitType:    d.UnitType,
		})
	}

	for _, d := range mf.Schedules {
		e := add(b, d.Name, "", &model.Schedule{Value: d.Value})
		b.later(func() {
			e.TypeLimits = ref[*model.ScheduleTypeLimits](b, e, model.KindScheduleTypeLimits, d.TypeLimits)
		})
	}
}

func (b *builder) declareConstructions(mf *ModelFile) {
	for _, d := range mf.Materials {
		add(b, d.Name, "", &model.Material{
			Roughness:    d.Roughness,
			Thickness:    d.Thickness,
			Conductivity: d.Conductivity,
			Density:      d.Density,
			SpecificHeat: d.SpecificHeat,
		})
	}

	for _, d := range mf.Constructions {
		e := add(b, d.Name, "", &model.Construction{})
		b.later(func() {
			for _, layer := range d.Layers {
				e.Layers = append(e.Layers, ref[*model.Material](b, e, model.KindMaterial, layer))
			}
		})
	}

	for _, d := range mf.ConstructionSets {
		e := add(b, d.Name, "", &model.DefaultConstructionSet{})
		b.later(func() {
			c := func(name string) model.Ref[*model.Construction] {
				return ref[*model.Construction](b, e, model.KindConstruction, name)
			}

			e.ExteriorWall = c(d.ExteriorWall)
			e.ExteriorFloor = c(d.ExteriorFloor)
			e.ExteriorRoof = c(d.ExteriorRoof)
			e.InteriorWall = c(d.InteriorWall)
			e.InteriorFloor = c(d.InteriorFloor)
			e.InteriorCeiling = c(d.InteriorCeiling)
			e.GroundWall = c(d.GroundWall)
			e.GroundFloor = c(d.GroundFloor)
			e.ExteriorWindow = c(d.ExteriorWindow)
			e.InteriorWindow = c(d.InteriorWindow)
			e.ExteriorDoor = c(d.ExteriorDoor)
			e.InteriorDoor = c(d.InteriorDoor)
		})
	}
}

func (b *builder) declareGeometry(mf *ModelFile) {
	for _, d := range mf.Zones {
		add(b, d.Name, "", &model.ThermalZone{Multiplier: d.Multiplier, CeilingHeight: d.CeilingHeight})
	}

	for _, d := range mf.Thermostats {
		e := add(b, d.Name, "", &model.Thermostat{})
		b.later(func() {
			e.Zone = ref[*model.ThermalZone](b, e, model.KindThermalZone, d.Zone)
			e.Heating = ref[*model.Schedule](b, e, model.KindSchedule, d.Heating)
			e.Cooling = ref[*model.Schedule](b, e, model.KindSchedule, d.Cooling)
		})
	}

	for _, d := range mf.SpaceTypes {
		e := add(b, d.Name, "", &model.SpaceType{})
		b.later(func() {
			e.DefaultConstructionSet = ref[*model.DefaultConstructionSet](b, e, model.KindDefaultConstructionSet, d.DefaultConstructionSet)
		})
	}

	for _, d := range mf.Spaces {
		e := add(b, d.Name, "", &model.Space{
			FloorArea:            d.FloorArea,
			Volume:               d.Volume,
			CeilingHeight:        d.CeilingHeight,
			ExcludeFromFloorArea: d.ExcludeFromFloorArea,
		})
		b.later(func() {
			e.Zone = ref[*model.ThermalZone](b, e, model.KindThermalZone, d.Zone)
			e.SpaceType = ref[*model.SpaceType](b, e, model.KindSpaceType, d.SpaceType)
			e.Story = ref[*model.BuildingStory](b, e, model.KindBuildingStory, d.Story)
			e.DefaultConstructionSet = ref[*model.DefaultConstructionSet](b, e, model.KindDefaultConstructionSet, d.DefaultConstructionSet)
		})
	}

	for _, d := range mf.Surfaces {
		e := add(b, d.Name, "", &model.Surface{
			Type:     parseSurfaceType(b, d.Name, d.Type),
			Boundary: parseBoundary(b, d.Name, d.Boundary),
			Vertices: vertices(b, d.Name, d.Vertices),
		})
		b.later(func() {
			e.Space = ref[*model.Space](b, e, model.KindSpace, d.Space)
			e.Adjacent = ref[*model.Surface](b, e, model.KindSurface, d.Adjacent)
			e.Construction = ref[*model.Construction](b, e, model.KindConstruction, d.Construction)
		})
	}

	for _, d := range mf.SubSurfaces {
		e := add(b, d.Name, "", &model.SubSurface{
			Type:       parseSubSurfaceType(b, d.Name, d.Type),
			Multiplier: d.Multiplier,
			Vertices:   vertices(b, d.Name, d.Vertices),
		})
		b.later(func() {
			e.Surface = ref[*model.Surface](b, e, model.KindSurface, d.Surface)
			e.Adjacent = ref[*model.SubSurface](b, e, model.KindSubSurface, d.Adjacent)
			e.Construction = ref[*model.Construction](b, e, model.KindConstruction, d.Construction)
		})
	}

	for _, d := range mf.ShadingControls {
		e := add(b, d.Name, "", &model.ShadingControl{
			ShadingType: d.ShadingType,
			ControlType: d.ControlType,
			Setpoint:    d.Setpoint,
		})
		b.later(func() {
			e.Schedule = ref[*model.Schedule](b, e, model.KindSchedule, d.Schedule)
			e.ConstructionWithShading = ref[*model.Construction](b, e, model.KindConstruction, d.ConstructionWithShading)

			for _, name := range d.SubSurfaces {
				e.SubSurfaces = append(e.SubSurfaces, ref[*model.SubSurface](b, e, model.KindSubSurface, name))
			}
		})
	}
}

func (b *builder) declareLoads(mf *ModelFile) {
	for _, d := range mf.Loads {
		kind, err := model.ParseKind(d.Kind)
		if err != nil || !kind.IsLoad() {
			b.errorf("%w: load %q has kind %q", ErrInvalidValue, d.Name, d.Kind)
			continue
		}

		method, ok := parseMethod(d.Method)
		if !ok {
			b.errorf("%w: load %q has method %q", ErrInvalidValue, d.Name, d.Method)
			continue
		}

		e := add(b, d.Name, "", &model.Load{
			LoadKind:         kind,
			Method:           method,
			Value:            d.Value,
			Multiplier:       d.Multiplier,
			StackCoefficient: d.StackCoefficient,
			WindCoefficient:  d.WindCoefficient,
		})

		if prev, dup := b.loads[d.Name]; dup && prev.LoadKind != kind {
			b.errorf("%w: load %q is both %s and %s", ErrDuplicateName, d.Name, prev.LoadKind, kind)
		}

		b.loads[d.Name] = e
		b.later(func() {
			e.Space = ref[*model.Space](b, e, model.KindSpace, d.Space)
			e.SpaceType = ref[*model.SpaceType](b, e, model.KindSpaceType, d.SpaceType)
			e.Schedule = ref[*model.Schedule](b, e, model.KindSchedule, d.Schedule)
		})
	}

	for _, d := range mf.EMSActuators {
		e := add(b, d.Name, "", &model.EMSActuator{ComponentType: d.ComponentType, ControlType: d.ControlType})
		b.later(func() {
			load, ok := b.loads[d.Component]
			if !ok {
				b.unknown(e, "load", d.Component, slices.Collect(maps.Keys(b.loads)))
				return
			}

			e.Component = model.RefTo(load)
		})
	}
}

func (b *builder) declareAirflowNetwork(mf *ModelFile) {
	if d := mf.AirflowNetwork; d != nil {
		add(b, d.Name, "Airflow Network", &model.AirflowNetworkControl{ControlType: d.ControlType})
	}

	for _, d := range mf.AirflowNetworkZones {
		e := add(b, d.Name, d.Zone, &model.AirflowNetworkZone{VentilationControlMode: d.VentilationControlMode})
		b.later(func() {
			e.Zone = ref[*model.ThermalZone](b, e, model.KindThermalZone, d.Zone)
		})
	}

	for _, d := range mf.AirflowNetworkSurfaces {
		e := add(b, d.Name, d.Surface, &model.AirflowNetworkSurface{Component: d.Component, OpeningFactor: d.OpeningFactor})
		b.later(func() {
			e.Surface = ref[*model.Surface](b, e, model.KindSurface, d.Surface)
		})
	}
}
