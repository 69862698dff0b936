package model

import "slices"

// Version records the target schema version the model is written for.
type Version struct {
	Base
	Identifier string
}

func (*Version) Kind() Kind { return KindVersion }
func (*Version) Owner() Handle { return NilHandle }
func (v *Version) cloneEntity() Entity {
	c := *v

	return &c
}

// SimulationControl selects which sizing and simulation passes run.
type SimulationControl struct {
	Base
	DoZoneSizing        bool
	DoSystemSizing      bool
	DoPlantSizing       bool
	RunForSizingPeriods bool
	RunForWeatherFile   bool
}

func (*SimulationControl) Kind() Kind { return KindSimulationControl }
func (*SimulationControl) Owner() Handle { return NilHandle }
func (s *SimulationControl) cloneEntity() Entity {
	c := *s

	return &c
}

// Timestep is the number of zone time steps per hour.
type Timestep struct {
	Base
	PerHour int
}

func (*Timestep) Kind() Kind { return KindTimestep }
func (*Timestep) Owner() Handle { return NilHandle }
func (t *Timestep) cloneEntity() Entity {
	c := *t

	return &c
}

// RunPeriod is the simulated calendar window.
type RunPeriod struct {
	Base
	BeginMonth, BeginDay int
	EndMonth, EndDay     int
}

func (*RunPeriod) Kind() Kind { return KindRunPeriod }
func (*RunPeriod) Owner() Handle { return NilHandle }
func (r *RunPeriod) cloneEntity() Entity {
	c := *r

	return &c
}

// SpecialDays is a secondary calendar override such as a holiday.
type SpecialDays struct {
	Base
	StartDate string
	Duration  int
	DayType   string
}

func (*SpecialDays) Kind() Kind { return KindSpecialDays }
func (*SpecialDays) Owner() Handle { return NilHandle }
func (s *SpecialDays) cloneEntity() Entity {
	c := *s

	return &c
}

// Site is the geographic location of the building.
type Site struct {
	Base
	Latitude, Longitude float64
	TimeZone            float64
	Elevation           float64
}

func (*Site) Kind() Kind { return KindSite }
func (*Site) Owner() Handle { return NilHandle }
func (s *Site) cloneEntity() Entity {
	c := *s

	return &c
}

// Building is the model-wide singleton.
type Building struct {
	Base
	NorthAxis              float64
	Terrain                string
	DefaultConstructionSet Ref[*DefaultConstructionSet]
}

func (*Building) Kind() Kind { return KindBuilding }
func (*Building) Owner() Handle { return NilHandle }
func (b *Building) cloneEntity() Entity {
	c := *b

	return &c
}

// BuildingStory groups spaces by floor and may supply default constructions.
type BuildingStory struct {
	Base
	NominalZ               float64
	DefaultConstructionSet Ref[*DefaultConstructionSet]
}

func (*BuildingStory) Kind() Kind { return KindBuildingStory }
func (*BuildingStory) Owner() Handle { return NilHandle }
func (b *BuildingStory) cloneEntity() Entity {
	c := *b

	return &c
}

// LifeCycleCostParameters configures the optional life-cycle cost report.
type LifeCycleCostParameters struct {
	Base
	DiscountingConvention string
	InflationApproach     string
	LengthOfStudyYears    int
}

func (*LifeCycleCostParameters) Kind() Kind { return KindLifeCycleCostParameters }
func (*LifeCycleCostParameters) Owner() Handle { return NilHandle }
func (l *LifeCycleCostParameters) cloneEntity() Entity {
	c := *l

	return &c
}

// OutputVariable requests a report variable.
type OutputVariable struct {
	Base
	Key       string
	Variable  string
	Frequency string
}

func (*OutputVariable) Kind() Kind { return KindOutputVariable }
func (*OutputVariable) Owner() Handle { return NilHandle }
func (o *OutputVariable) cloneEntity() Entity {
	c := *o

	return &c
}

// ScheduleTypeLimits bounds the values of a schedule.
type ScheduleTypeLimits struct {
	Base
	Lower, Upper *float64
	NumericType  string
	UnitType     string
}

func (*ScheduleTypeLimits) Kind() Kind { return KindScheduleTypeLimits }
func (*ScheduleTypeLimits) Owner() Handle { return NilHandle }
func (s *ScheduleTypeLimits) cloneEntity() Entity {
	c := *s

	return &c
}

// Schedule is a constant-valued schedule.
type Schedule struct {
	Base
	TypeLimits Ref[*ScheduleTypeLimits]
	Value      float64
}

func (*Schedule) Kind() Kind { return KindSchedule }
func (*Schedule) Owner() Handle { return NilHandle }
func (s *Schedule) cloneEntity() Entity {
	c := *s

	return &c
}

// Material is one opaque layer of a construction.
type Material struct {
	Base
	Roughness    string
	Thickness    float64
	Conductivity float64
	Density      float64
	SpecificHeat float64
}

func (*Material) Kind() Kind { return KindMaterial }
func (*Material) Owner() Handle { return NilHandle }
func (m *Material) cloneEntity() Entity {
	c := *m

	return &c
}

// Construction is an ordered list of material layers, outside first.
type Construction struct {
	Base
	Layers []Ref[*Material]
}

func (*Construction) Kind() Kind { return KindConstruction }
func (*Construction) Owner() Handle { return NilHandle }
func (c *Construction) cloneEntity() Entity {
	cp := *c
	cp.Layers = slices.Clone(c.Layers)

	return &cp
}

// LayerIDs returns the handles of the layers, outside first.
func (c *Construction) LayerIDs() []Handle {
	ids := make([]Handle, len(c.Layers))
	for i, l := range c.Layers {
		ids[i] = l.ID()
	}

	return ids
}

// DefaultConstructionSet supplies constructions to surfaces that do not name
// one explicitly.
type DefaultConstructionSet struct {
	Base
	ExteriorWall    Ref[*Construction]
	ExteriorFloor   Ref[*Construction]
	ExteriorRoof    Ref[*Construction]
	InteriorWall    Ref[*Construction]
	InteriorFloor   Ref[*Construction]
	InteriorCeiling Ref[*Construction]
	GroundWall      Ref[*Construction]
	GroundFloor     Ref[*Construction]
	ExteriorWindow  Ref[*Construction]
	InteriorWindow  Ref[*Construction]
	ExteriorDoor    Ref[*Construction]
	InteriorDoor    Ref[*Construction]
}

func (*DefaultConstructionSet) Kind() Kind { return KindDefaultConstructionSet }
func (*DefaultConstructionSet) Owner() Handle { return NilHandle }
func (d *DefaultConstructionSet) cloneEntity() Entity {
	c := *d

	return &c
}

// ThermalZone is the thermal simulation unit.
type ThermalZone struct {
	Base
	Multiplier    int
	CeilingHeight float64
}

func (*ThermalZone) Kind() Kind { return KindThermalZone }
func (*ThermalZone) Owner() Handle { return NilHandle }
func (z *ThermalZone) cloneEntity() Entity {
	c := *z

	return &c
}

// Thermostat is a dual setpoint thermostat owned by a zone.
type Thermostat struct {
	Base
	Zone    Ref[*ThermalZone]
	Heating Ref[*Schedule]
	Cooling Ref[*Schedule]
}

func (*Thermostat) Kind() Kind { return KindThermostat }
func (t *Thermostat) Owner() Handle { return t.Zone.ID() }
func (t *Thermostat) cloneEntity() Entity {
	c := *t

	return &c
}

// SpaceType is the category shared by many spaces.
type SpaceType struct {
	Base
	DefaultConstructionSet Ref[*DefaultConstructionSet]
}

func (*SpaceType) Kind() Kind { return KindSpaceType }
func (*SpaceType) Owner() Handle { return NilHandle }
func (s *SpaceType) cloneEntity() Entity {
	c := *s

	return &c
}

// Space is a physical subdivision belonging to at most one zone.
type Space struct {
	Base
	Zone                   Ref[*ThermalZone]
	SpaceType              Ref[*SpaceType]
	Story                  Ref[*BuildingStory]
	DefaultConstructionSet Ref[*DefaultConstructionSet]
	FloorArea              float64
	Volume                 float64
	CeilingHeight          float64
	ExcludeFromFloorArea   bool
}

func (*Space) Kind() Kind { return KindSpace }
func (*Space) Owner() Handle { return NilHandle }
func (s *Space) cloneEntity() Entity {
	c := *s

	return &c
}

// SurfaceType classifies a planar surface.
type SurfaceType string

const (
	SurfaceWall        SurfaceType = "Wall"
	SurfaceFloor       SurfaceType = "Floor"
	SurfaceRoofCeiling SurfaceType = "RoofCeiling"
)

// Boundary is the outside boundary condition of a surface.
type Boundary string

const (
	BoundaryOutdoors  Boundary = "Outdoors"
	BoundaryGround    Boundary = "Ground"
	BoundarySurface   Boundary = "Surface"
	BoundaryAdiabatic Boundary = "Adiabatic"
)

// Vertex is a point in building coordinates, meters.
type Vertex struct {
	X, Y, Z float64
}

// Surface is a heat transfer surface of a space.
type Surface struct {
	Base
	Space        Ref[*Space]
	Type         SurfaceType
	Boundary     Boundary
	Adjacent     Ref[*Surface]
	Construction Ref[*Construction]
	Vertices     []Vertex
}

func (*Surface) Kind() Kind { return KindSurface }
func (s *Surface) Owner() Handle { return s.Space.ID() }
func (s *Surface) cloneEntity() Entity {
	c := *s
	c.Vertices = slices.Clone(s.Vertices)

	return &c
}

// Area returns the surface area computed from its vertices.
func (s *Surface) Area() float64 {
	return polygonArea(s.Vertices)
}

// SubSurfaceType classifies a fenestration or door.
type SubSurfaceType string

const (
	SubSurfaceFixedWindow    SubSurfaceType = "FixedWindow"
	SubSurfaceOperableWindow SubSurfaceType = "OperableWindow"
	SubSurfaceDoor           SubSurfaceType = "Door"
	SubSurfaceGlassDoor      SubSurfaceType = "GlassDoor"
	SubSurfaceSkylight       SubSurfaceType = "Skylight"
)

// IsWindow reports whether the subsurface is glazed.
func (t SubSurfaceType) IsWindow() bool {
	return t != SubSurfaceDoor
}

// SubSurface is a window or door cut into a surface.
type SubSurface struct {
	Base
	Surface      Ref[*Surface]
	Type         SubSurfaceType
	Adjacent     Ref[*SubSurface]
	Construction Ref[*Construction]
	Multiplier   int
	Vertices     []Vertex
}

func (*SubSurface) Kind() Kind { return KindSubSurface }
func (s *SubSurface) Owner() Handle { return s.Surface.ID() }
func (s *SubSurface) cloneEntity() Entity {
	c := *s
	c.Vertices = slices.Clone(s.Vertices)

	return &c
}

// ShadingControl controls shading devices on a set of subsurfaces. The target
// schema restricts each control to a single zone.
type ShadingControl struct {
	Base
	ShadingType             string
	ControlType             string
	Setpoint                float64
	Schedule                Ref[*Schedule]
	ConstructionWithShading Ref[*Construction]
	SubSurfaces             []Ref[*SubSurface]
}

func (*ShadingControl) Kind() Kind { return KindShadingControl }
func (*ShadingControl) Owner() Handle { return NilHandle }
func (s *ShadingControl) cloneEntity() Entity {
	c := *s
	c.SubSurfaces = slices.Clone(s.SubSurfaces)

	return &c
}

// LoadMethod describes how a load's Value is to be interpreted.
type LoadMethod string

const (
	MethodAbsolute     LoadMethod = "Absolute"
	MethodPerFloorArea LoadMethod = "PerFloorArea"
	MethodPerPerson    LoadMethod = "PerPerson"
	MethodPerExterior  LoadMethod = "PerExteriorArea"
	MethodAirChanges   LoadMethod = "AirChangesPerHour"
)

// Load is an internal gain or infiltration attached to a space, to a space
// type, or to nothing. LoadKind selects which of the load kinds it is.
type Load struct {
	Base
	LoadKind  Kind
	Space     Ref[*Space]
	SpaceType Ref[*SpaceType]
	Schedule  Ref[*Schedule]
	Method    LoadMethod
	Value     float64
	// Multiplier scales the emitted quantity; zero is treated as one.
	Multiplier       float64
	StackCoefficient float64
	WindCoefficient  float64
}

func (l *Load) Kind() Kind { return l.LoadKind }

func (l *Load) Owner() Handle {
	if l.Space.IsSet() {
		return l.Space.ID()
	}

	return l.SpaceType.ID()
}

func (l *Load) cloneEntity() Entity {
	c := *l

	return &c
}

// EffectiveMultiplier returns the multiplier with zero meaning one.
func (l *Load) EffectiveMultiplier() float64 {
	if l.Multiplier == 0 {
		return 1
	}

	return l.Multiplier
}

// EMSActuator exposes a load to runtime control scripts.
type EMSActuator struct {
	Base
	Component     Ref[*Load]
	ComponentType string
	ControlType   string
}

func (*EMSActuator) Kind() Kind { return KindEMSActuator }
func (*EMSActuator) Owner() Handle { return NilHandle }
func (a *EMSActuator) cloneEntity() Entity {
	c := *a

	return &c
}

// AirflowNetworkControl is the airflow network singleton.
type AirflowNetworkControl struct {
	Base
	ControlType string
}

func (*AirflowNetworkControl) Kind() Kind { return KindAirflowNetworkControl }
func (*AirflowNetworkControl) Owner() Handle { return NilHandle }
func (a *AirflowNetworkControl) cloneEntity() Entity {
	c := *a

	return &c
}

// AirflowNetworkZone attaches a zone to the airflow network.
type AirflowNetworkZone struct {
	Base
	Zone                   Ref[*ThermalZone]
	VentilationControlMode string
}

func (*AirflowNetworkZone) Kind() Kind { return KindAirflowNetworkZone }
func (*AirflowNetworkZone) Owner() Handle { return NilHandle }
func (a *AirflowNetworkZone) cloneEntity() Entity {
	c := *a

	return &c
}

// AirflowNetworkSurface attaches a surface to the airflow network.
type AirflowNetworkSurface struct {
	Base
	Surface       Ref[*Surface]
	Component     string
	OpeningFactor float64
}

func (*AirflowNetworkSurface) Kind() Kind { return KindAirflowNetworkSurface }
func (*AirflowNetworkSurface) Owner() Handle { return NilHandle }
func (a *AirflowNetworkSurface) cloneEntity() Entity {
	c := *a

	return &c
}
