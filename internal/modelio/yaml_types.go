package modelio

// ModelFile is the YAML form of a source model.
type ModelFile struct {
	Version                *VersionDoc                `yaml:"version,omitempty"`
	SimulationControl      *SimulationControlDoc      `yaml:"simulation_control,omitempty"`
	Timestep               *TimestepDoc               `yaml:"timestep,omitempty"`
	RunPeriods             []RunPeriodDoc             `yaml:"run_periods,omitempty"`
	SpecialDays            []SpecialDaysDoc           `yaml:"special_days,omitempty"`
	Site                   *SiteDoc                   `yaml:"site,omitempty"`
	Building               *BuildingDoc               `yaml:"building,omitempty"`
	Stories                []StoryDoc                 `yaml:"stories,omitempty"`
	LifeCycleCost          *LifeCycleCostDoc          `yaml:"life_cycle_cost,omitempty"`
	OutputVariables        []OutputVariableDoc        `yaml:"output_variables,omitempty"`
	ScheduleTypeLimits     []ScheduleTypeLimitsDoc    `yaml:"schedule_type_limits,omitempty"`
	Schedules              []ScheduleDoc              `yaml:"schedules,omitempty"`
	Materials              []MaterialDoc              `yaml:"materials,omitempty"`
	Constructions          []ConstructionDoc          `yaml:"constructions,omitempty"`
	ConstructionSets       []ConstructionSetDoc       `yaml:"default_construction_sets,omitempty"`
	Zones                  []ZoneDoc                  `yaml:"zones,omitempty"`
	Thermostats            []ThermostatDoc            `yaml:"thermostats,omitempty"`
	SpaceTypes             []SpaceTypeDoc             `yaml:"space_types,omitempty"`
	Spaces                 []SpaceDoc                 `yaml:"spaces,omitempty"`
	Surfaces               []SurfaceDoc               `yaml:"surfaces,omitempty"`
	SubSurfaces            []SubSurfaceDoc            `yaml:"sub_surfaces,omitempty"`
	ShadingControls        []ShadingControlDoc        `yaml:"shading_controls,omitempty"`
	Loads                  []LoadDoc                  `yaml:"loads,omitempty"`
	EMSActuators           []EMSActuatorDoc           `yaml:"ems_actuators,omitempty"`
	AirflowNetwork         *AirflowNetworkDoc         `yaml:"airflow_network,omitempty"`
	AirflowNetworkZones    []AirflowNetworkZoneDoc    `yaml:"airflow_network_zones,omitempty"`
	AirflowNetworkSurfaces []AirflowNetworkSurfaceDoc `yaml:"airflow_network_surfaces,omitempty"`
}

type VersionDoc struct {
	Name       string `yaml:"name,omitempty"`
	Identifier string `yaml:"identifier"`
}

type SimulationControlDoc struct {
	Name                string `yaml:"name,omitempty"`
	DoZoneSizing        bool   `yaml:"do_zone_sizing,omitempty"`
	DoSystemSizing      bool   `yaml:"do_system_sizing,omitempty"`
	DoPlantSizing       bool   `yaml:"do_plant_sizing,omitempty"`
	RunForSizingPeriods bool   `yaml:"run_for_sizing_periods,omitempty"`
	RunForWeatherFile   bool   `yaml:"run_for_weather_file,omitempty"`
}

type TimestepDoc struct {
	Name    string `yaml:"name,omitempty"`
	PerHour int    `yaml:"per_hour"`
}

type RunPeriodDoc struct {
	Name       string `yaml:"name"`
	BeginMonth int    `yaml:"begin_month"`
	BeginDay   int    `yaml:"begin_day"`
	EndMonth   int    `yaml:"end_month"`
	EndDay     int    `yaml:"end_day"`
}

type SpecialDaysDoc struct {
	Name      string `yaml:"name"`
	StartDate string `yaml:"start_date"`
	Duration  int    `yaml:"duration,omitempty"`
	DayType   string `yaml:"day_type"`
}

type SiteDoc struct {
	Name      string  `yaml:"name,omitempty"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	TimeZone  float64 `yaml:"time_zone"`
	Elevation float64 `yaml:"elevation,omitempty"`
}

type BuildingDoc struct {
	Name                   string  `yaml:"name,omitempty"`
	NorthAxis              float64 `yaml:"north_axis,omitempty"`
	Terrain                string  `yaml:"terrain,omitempty"`
	DefaultConstructionSet string  `yaml:"default_construction_set,omitempty"`
}

type StoryDoc struct {
	Name                   string  `yaml:"name"`
	NominalZ               float64 `yaml:"nominal_z,omitempty"`
	DefaultConstructionSet string  `yaml:"default_construction_set,omitempty"`
}

type LifeCycleCostDoc struct {
	Name                  string `yaml:"name,omitempty"`
	DiscountingConvention string `yaml:"discounting_convention,omitempty"`
	InflationApproach     string `yaml:"inflation_approach,omitempty"`
	LengthOfStudyYears    int    `yaml:"length_of_study_years,omitempty"`
}

type OutputVariableDoc struct {
	Name      string `yaml:"name"`
	Key       string `yaml:"key,omitempty"`
	Variable  string `yaml:"variable"`
	Frequency string `yaml:"frequency,omitempty"`
}

type ScheduleTypeLimitsDoc struct {
	Name        string   `yaml:"name"`
	Lower       *float64 `yaml:"lower,omitempty"`
	Upper       *float64 `yaml:"upper,omitempty"`
	NumericType string   `yaml:"numeric_type,omitempty"`
	UnitType    string   `yaml:"unit_type,omitempty"`
}

type ScheduleDoc struct {
	Name       string  `yaml:"name"`
	TypeLimits string  `yaml:"type_limits,omitempty"`
	Value      float64 `yaml:"value"`
}

type MaterialDoc struct {
	Name         string  `yaml:"name"`
	Roughness    string  `yaml:"roughness,omitempty"`
	Thickness    float64 `yaml:"thickness,omitempty"`
	Conductivity float64 `yaml:"conductivity,omitempty"`
	Density      float64 `yaml:"density,omitempty"`
	SpecificHeat float64 `yaml:"specific_heat,omitempty"`
}

type ConstructionDoc struct {
	Name   string   `yaml:"name"`
	Layers []string `yaml:"layers"`
}

type ConstructionSetDoc struct {
	Name            string `yaml:"name"`
	ExteriorWall    string `yaml:"exterior_wall,omitempty"`
	ExteriorFloor   string `yaml:"exterior_floor,omitempty"`
	ExteriorRoof    string `yaml:"exterior_roof,omitempty"`
	InteriorWall    string `yaml:"interior_wall,omitempty"`
	InteriorFloor   string `yaml:"interior_floor,omitempty"`
	InteriorCeiling string `yaml:"interior_ceiling,omitempty"`
	GroundWall      string `yaml:"ground_wall,omitempty"`
	GroundFloor     string `yaml:"ground_floor,omitempty"`
	ExteriorWindow  string `yaml:"exterior_window,omitempty"`
	InteriorWindow  string `yaml:"interior_window,omitempty"`
	ExteriorDoor    string `yaml:"exterior_door,omitempty"`
	InteriorDoor    string `yaml:"interior_door,omitempty"`
}

type ZoneDoc struct {
	Name          string  `yaml:"name"`
	Multiplier    int     `yaml:"multiplier,omitempty"`
	CeilingHeight float64 `yaml:"ceiling_height,omitempty"`
}

type ThermostatDoc struct {
	Name    string `yaml:"name"`
	Zone    string `yaml:"zone"`
	Heating string `yaml:"heating"`
	Cooling string `yaml:"cooling"`
}

type SpaceTypeDoc struct {
	Name                   string `yaml:"name"`
	DefaultConstructionSet string `yaml:"default_construction_set,omitempty"`
}

type SpaceDoc struct {
	Name                   string  `yaml:"name"`
	Zone                   string  `yaml:"zone,omitempty"`
	SpaceType              string  `yaml:"space_type,omitempty"`
	Story                  string  `yaml:"story,omitempty"`
	DefaultConstructionSet string  `yaml:"default_construction_set,omitempty"`
	FloorArea              float64 `yaml:"floor_area,omitempty"`
	Volume                 float64 `yaml:"volume,omitempty"`
	CeilingHeight          float64 `yaml:"ceiling_height,omitempty"`
	ExcludeFromFloorArea   bool    `yaml:"exclude_from_floor_area,omitempty"`
}

// VertexDoc is a point written as [x, y, z].
type VertexDoc []float64

type SurfaceDoc struct {
	Name         string      `yaml:"name"`
	Space        string      `yaml:"space"`
	Type         string      `yaml:"type"`
	Boundary     string      `yaml:"boundary"`
	Adjacent     string      `yaml:"adjacent,omitempty"`
	Construction string      `yaml:"construction,omitempty"`
	Vertices     []VertexDoc `yaml:"vertices,omitempty"`
}

type SubSurfaceDoc struct {
	Name         string      `yaml:"name"`
	Surface      string      `yaml:"surface"`
	Type         string      `yaml:"type"`
	Adjacent     string      `yaml:"adjacent,omitempty"`
	Construction string      `yaml:"construction,omitempty"`
	Multiplier   int         `yaml:"multiplier,omitempty"`
	Vertices     []VertexDoc `yaml:"vertices,omitempty"`
}

type ShadingControlDoc struct {
	Name                    string   `yaml:"name"`
	ShadingType             string   `yaml:"shading_type"`
	ControlType             string   `yaml:"control_type"`
	Setpoint                float64  `yaml:"setpoint,omitempty"`
	Schedule                string   `yaml:"schedule,omitempty"`
	ConstructionWithShading string   `yaml:"construction_with_shading,omitempty"`
	SubSurfaces             []string `yaml:"sub_surfaces"`
}

type LoadDoc struct {
	Name             string  `yaml:"name"`
	Kind             string  `yaml:"kind"`
	Space            string  `yaml:"space,omitempty"`
	SpaceType        string  `yaml:"space_type,omitempty"`
	Schedule         string  `yaml:"schedule,omitempty"`
	Method           string  `yaml:"method,omitempty"`
	Value            float64 `yaml:"value"`
	Multiplier       float64 `yaml:"multiplier,omitempty"`
	StackCoefficient float64 `yaml:"stack_coefficient,omitempty"`
	WindCoefficient  float64 `yaml:"wind_coefficient,omitempty"`
}

type EMSActuatorDoc struct {
	Name          string `yaml:"name"`
	Component     string `yaml:"component"`
	ComponentType string `yaml:"component_type,omitempty"`
	ControlType   string `yaml:"control_type"`
}

type AirflowNetworkDoc struct {
	Name        string `yaml:"name,omitempty"`
	ControlType string `yaml:"control_type,omitempty"`
}

type AirflowNetworkZoneDoc struct {
	Name                   string `yaml:"name"`
	Zone                   string `yaml:"zone"`
	VentilationControlMode string `yaml:"ventilation_control_mode,omitempty"`
}

type AirflowNetworkSurfaceDoc struct {
	Name          string  `yaml:"name"`
	Surface       string  `yaml:"surface"`
	Component     string  `yaml:"component"`
	OpeningFactor float64 `yaml:"opening_factor,omitempty"`
}
