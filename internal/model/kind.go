package model

import (
	"fmt"
	"strings"

	"model-lowering/internal/common"
)

// Kind is the closed enumeration of source entity kinds.
type Kind int

const (
	KindUnknown Kind = iota // zero value, never assigned to a live entity

	KindVersion
	KindSimulationControl
	KindTimestep
	KindRunPeriod
	KindSpecialDays
	KindSite
	KindBuilding
	KindBuildingStory
	KindLifeCycleCostParameters
	KindOutputVariable
	KindScheduleTypeLimits
	KindSchedule
	KindMaterial
	KindConstruction
	KindDefaultConstructionSet
	KindThermalZone
	KindThermostat
	KindSpaceType
	KindSpace
	KindSurface
	KindSubSurface
	KindShadingControl
	KindPeople
	KindLights
	KindElectricEquipment
	KindInfiltrationDesignFlowRate
	KindInfiltrationLeakageArea
	KindExteriorLights
	KindEMSActuator
	KindAirflowNetworkControl
	KindAirflowNetworkZone
	KindAirflowNetworkSurface

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

var kindNames = [...]string{
	KindUnknown:                    common.UnknownStr,
	KindVersion:                    "Version",
	KindSimulationControl:          "SimulationControl",
	KindTimestep:                   "Timestep",
	KindRunPeriod:                  "RunPeriod",
	KindSpecialDays:                "SpecialDays",
	KindSite:                       "Site",
	KindBuilding:                   "Building",
	KindBuildingStory:              "BuildingStory",
	KindLifeCycleCostParameters:    "LifeCycleCostParameters",
	KindOutputVariable:             "OutputVariable",
	KindScheduleTypeLimits:         "ScheduleTypeLimits",
	KindSchedule:                   "Schedule",
	KindMaterial:                   "Material",
	KindConstruction:               "Construction",
	KindDefaultConstructionSet:     "DefaultConstructionSet",
	KindThermalZone:                "ThermalZone",
	KindThermostat:                 "Thermostat",
	KindSpaceType:                  "SpaceType",
	KindSpace:                      "Space",
	KindSurface:                    "Surface",
	KindSubSurface:                 "SubSurface",
	KindShadingControl:             "ShadingControl",
	KindPeople:                     "People",
	KindLights:                     "Lights",
	KindElectricEquipment:          "ElectricEquipment",
	KindInfiltrationDesignFlowRate: "InfiltrationDesignFlowRate",
	KindInfiltrationLeakageArea:    "InfiltrationLeakageArea",
	KindExteriorLights:             "ExteriorLights",
	KindEMSActuator:                "EMSActuator",
	KindAirflowNetworkControl:      "AirflowNetworkControl",
	KindAirflowNetworkZone:         "AirflowNetworkZone",
	KindAirflowNetworkSurface:      "AirflowNetworkSurface",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return common.UnknownStr
	}

	return kindNames[k]
}

// ParseKind resolves a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if i == int(KindUnknown) {
			continue
		}

		if strings.EqualFold(name, s) {
			return Kind(i), nil
		}
	}

	return KindUnknown, fmt.Errorf("unknown entity kind %q", s)
}

// IsLoad reports whether the kind is carried by a Load entity.
func (k Kind) IsLoad() bool {
	switch k {
	case KindPeople, KindLights, KindElectricEquipment,
		KindInfiltrationDesignFlowRate, KindInfiltrationLeakageArea, KindExteriorLights:
		return true
	default:
		return false
	}
}

// AllKinds returns every valid kind in declaration order.
func AllKinds() []Kind {
	out := make([]Kind, 0, KindTotal-1)
	for k := KindUnknown + 1; int(k) < KindTotal; k++ {
		out = append(out, k)
	}

	return out
}

// LoadKinds returns the kinds carried by Load entities.
func LoadKinds() []Kind {
	var out []Kind

	for _, k := range AllKinds() {
		if k.IsLoad() {
			out = append(out, k)
		}
	}

	return out
}
