package target

import "model-lowering/internal/common"

// Kind is the closed enumeration of target record kinds.
type Kind int

const (
	KindUnknown Kind = iota

	KindVersion
	KindSimulationControl
	KindTimestep
	KindRunPeriod
	KindSpecialDays
	KindSiteLocation
	KindBuilding
	KindLifeCycleCostParameters
	KindScheduleTypeLimits
	KindScheduleConstant
	KindMaterial
	KindConstruction
	KindZone
	KindZoneList
	KindSpace
	KindSpaceList
	KindZoneControlThermostat
	KindDualSetpoint
	KindBuildingSurface
	KindFenestrationSurface
	KindWindowShadingControl
	KindPeople
	KindLights
	KindElectricEquipment
	KindInfiltrationDesignFlowRate
	KindInfiltrationLeakageArea
	KindExteriorLights
	KindEMSActuator
	KindOutputVariable
	KindAirflowNetworkControl
	KindAirflowNetworkZone
	KindAirflowNetworkSurface
	KindOutputSQLite
	KindOutputSummaryReports
	KindOutputVariableDictionary

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

var kindNames = [...]string{
	KindUnknown:                    common.UnknownStr,
	KindVersion:                    "Version",
	KindSimulationControl:          "SimulationControl",
	KindTimestep:                   "Timestep",
	KindRunPeriod:                  "RunPeriod",
	KindSpecialDays:                "RunPeriodControl:SpecialDays",
	KindSiteLocation:               "Site:Location",
	KindBuilding:                   "Building",
	KindLifeCycleCostParameters:    "LifeCycleCost:Parameters",
	KindScheduleTypeLimits:         "ScheduleTypeLimits",
	KindScheduleConstant:           "Schedule:Constant",
	KindMaterial:                   "Material",
	KindConstruction:               "Construction",
	KindZone:                       "Zone",
	KindZoneList:                   "ZoneList",
	KindSpace:                      "Space",
	KindSpaceList:                  "SpaceList",
	KindZoneControlThermostat:      "ZoneControl:Thermostat",
	KindDualSetpoint:               "ThermostatSetpoint:DualSetpoint",
	KindBuildingSurface:            "BuildingSurface:Detailed",
	KindFenestrationSurface:        "FenestrationSurface:Detailed",
	KindWindowShadingControl:       "WindowShadingControl",
	KindPeople:                     "People",
	KindLights:                     "Lights",
	KindElectricEquipment:          "ElectricEquipment",
	KindInfiltrationDesignFlowRate: "ZoneInfiltration:DesignFlowRate",
	KindInfiltrationLeakageArea:    "ZoneInfiltration:EffectiveLeakageArea",
	KindExteriorLights:             "Exterior:Lights",
	KindEMSActuator:                "EnergyManagementSystem:Actuator",
	KindOutputVariable:             "Output:Variable",
	KindAirflowNetworkControl:      "AirflowNetwork:SimulationControl",
	KindAirflowNetworkZone:         "AirflowNetwork:MultiZone:Zone",
	KindAirflowNetworkSurface:      "AirflowNetwork:MultiZone:Surface",
	KindOutputSQLite:               "Output:SQLite",
	KindOutputSummaryReports:       "Output:Table:SummaryReports",
	KindOutputVariableDictionary:   "Output:VariableDictionary",
}

// String returns the schema name of the record kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return common.UnknownStr
	}

	return kindNames[k]
}

// IsUnique reports whether the schema allows at most one record of this kind.
func (k Kind) IsUnique() bool {
	switch k {
	case KindVersion, KindSimulationControl, KindTimestep, KindSiteLocation, KindBuilding,
		KindLifeCycleCostParameters, KindAirflowNetworkControl, KindOutputSQLite,
		KindOutputSummaryReports, KindOutputVariableDictionary:
		return true
	default:
		return false
	}
}
