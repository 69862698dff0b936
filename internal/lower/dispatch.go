package lower

import (
	"context"
	"fmt"
	"slices"

	"model-lowering/internal/common"
	"model-lowering/internal/model"
	"model-lowering/internal/target"
)

// DispatchClass is how the dispatcher treats a kind.
type DispatchClass int

const (
	// ClassUnknown kinds have no translator; they are logged and skipped.
	ClassUnknown DispatchClass = iota
	// ClassTranslate kinds have a one-entity translator.
	ClassTranslate
	// ClassNoOp kinds are structural and produce nothing on their own.
	ClassNoOp
)

// String returns a human-readable class name.
func (c DispatchClass) String() string {
	switch c {
	case ClassUnknown:
		return "unknown"
	case ClassTranslate:
		return "translate"
	case ClassNoOp:
		return "noop"
	default:
		return common.UnknownStr
	}
}

type translateFunc func(r *run, e model.Entity) *target.Record

// typed adapts a translator for a concrete entity type. An entity whose Go
// type does not match its kind is reported as unsupported.
func typed[T model.Entity](fn func(*run, T) *target.Record) translateFunc {
	return func(r *run, e model.Entity) *target.Record {
		t, ok := e.(T)
		if !ok {
			r.errorf(e, "unsupported_kind", "entity of kind %s has unexpected type %T", e.Kind(), e)
			return nil
		}

		return fn(r, t)
	}
}

// translatorFor is the dispatch table. Every model.Kind must appear here as
// either a translator or an explicit no-op.
func translatorFor(k model.Kind) (translateFunc, DispatchClass) {
	switch k {
	case model.KindVersion:
		return typed((*run).translateVersion), ClassTranslate
	case model.KindSimulationControl:
		return typed((*run).translateSimulationControl), ClassTranslate
	case model.KindTimestep:
		return typed((*run).translateTimestep), ClassTranslate
	case model.KindRunPeriod:
		return typed((*run).translateRunPeriod), ClassTranslate
	case model.KindSpecialDays:
		return typed((*run).translateSpecialDays), ClassTranslate
	case model.KindSite:
		return typed((*run).translateSite), ClassTranslate
	case model.KindBuilding:
		return typed((*run).translateBuilding), ClassTranslate
	case model.KindLifeCycleCostParameters:
		return typed((*run).translateLifeCycleCost), ClassTranslate
	case model.KindOutputVariable:
		return typed((*run).translateOutputVariable), ClassTranslate
	case model.KindScheduleTypeLimits:
		return typed((*run).translateScheduleTypeLimits), ClassTranslate
	case model.KindSchedule:
		return typed((*run).translateSchedule), ClassTranslate
	case model.KindMaterial:
		return typed((*run).translateMaterial), ClassTranslate
	case model.KindConstruction:
		return typed((*run).translateConstruction), ClassTranslate
	case model.KindThermalZone:
		return typed((*run).translateZone), ClassTranslate
	case model.KindSpaceType:
		return typed((*run).translateSpaceType), ClassTranslate
	case model.KindSpace:
		return typed((*run).translateSpace), ClassTranslate
	case model.KindSurface:
		return typed((*run).translateSurface), ClassTranslate
	case model.KindSubSurface:
		return typed((*run).translateSubSurface), ClassTranslate
	case model.KindShadingControl:
		return typed((*run).translateShadingControl), ClassTranslate
	case model.KindPeople, model.KindLights, model.KindElectricEquipment,
		model.KindInfiltrationDesignFlowRate, model.KindInfiltrationLeakageArea,
		model.KindExteriorLights:
		return typed((*run).translateLoad), ClassTranslate
	case model.KindEMSActuator:
		return typed((*run).translateActuator), ClassTranslate
	case model.KindAirflowNetworkControl:
		return typed((*run).translateAirflowNetworkControl), ClassTranslate
	case model.KindAirflowNetworkZone:
		return typed((*run).translateAirflowNetworkZone), ClassTranslate
	case model.KindAirflowNetworkSurface:
		return typed((*run).translateAirflowNetworkSurface), ClassTranslate

	// Consumed by other translators: construction sets and stories during
	// construction resolution, thermostats by their zone.
	case model.KindDefaultConstructionSet, model.KindBuildingStory, model.KindThermostat:
		return nil, ClassNoOp

	default:
		return nil, ClassUnknown
	}
}

// dispatchPhases is the hand-maintained top-level order. Administrative
// singletons, schedules and constructions come first because later
// translators reference them; airflow network objects come last because
// they reference zones and surfaces.
var dispatchPhases = [][]model.Kind{
	{
		model.KindVersion,
		model.KindSimulationControl,
		model.KindTimestep,
		model.KindRunPeriod,
		model.KindSpecialDays,
		model.KindSite,
		model.KindBuilding,
		model.KindLifeCycleCostParameters,
		model.KindAirflowNetworkControl,
	},
	{
		model.KindScheduleTypeLimits,
		model.KindSchedule,
	},
	{
		model.KindMaterial,
		model.KindConstruction,
	},
	{
		model.KindDefaultConstructionSet,
		model.KindBuildingStory,
		model.KindThermalZone,
		model.KindThermostat,
		model.KindSpaceType,
		model.KindSpace,
		model.KindSurface,
		model.KindSubSurface,
		model.KindShadingControl,
		model.KindPeople,
		model.KindLights,
		model.KindElectricEquipment,
		model.KindInfiltrationDesignFlowRate,
		model.KindInfiltrationLeakageArea,
		model.KindExteriorLights,
		model.KindEMSActuator,
		model.KindOutputVariable,
	},
	{
		model.KindAirflowNetworkZone,
		model.KindAirflowNetworkSurface,
	},
}

// dispatchOrder flattens dispatchPhases.
func dispatchOrder() []model.Kind {
	var out []model.Kind
	for _, phase := range dispatchPhases {
		out = append(out, phase...)
	}

	return out
}

// kindRank is the position of every ordered kind; unlisted kinds sort last.
var kindRank = func() map[model.Kind]int {
	rank := make(map[model.Kind]int)
	for i, k := range dispatchOrder() {
		rank[k] = i
	}

	return rank
}()

func rankOf(k model.Kind) int {
	if r, ok := kindRank[k]; ok {
		return r
	}

	return len(kindRank)
}

// dispatchAll walks the graph in dispatch order and finally sweeps any
// entity whose kind is not part of the order.
func (r *run) dispatchAll(ctx context.Context) error {
	r.children = r.graph.ChildIndex()

	for _, kind := range dispatchOrder() {
		if err := ctx.Err(); err != nil {
			return err
		}

		entities := r.graph.EntitiesByKind(kind)
		model.SortByName(r.graph, entities)

		for _, e := range entities {
			r.translate(e)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	for _, e := range r.graph.Entities() {
		if _, listed := kindRank[e.Kind()]; !listed {
			r.translate(e)
		}
	}

	r.emitRequiredOutputs()

	return nil
}

// translate returns the record of e, producing it on first use. The second
// result is false when e produces no record; that is a terminal state, not a
// failure to retry.
func (r *run) translate(e model.Entity) (*target.Record, bool) {
	id := e.ID()
	if rec, ok := r.translated[id]; ok {
		return rec, true
	}

	if _, ok := r.declined[id]; ok {
		return nil, false
	}

	// The outer frame will finish this entity.
	if _, ok := r.active[id]; ok {
		return nil, false
	}

	fn, class := translatorFor(e.Kind())
	r.coverage[e.Kind()] = class

	switch class {
	case ClassNoOp:
		r.declined[id] = struct{}{}
		return nil, false
	case ClassUnknown:
		r.errorf(e, "unsupported_kind", "no translator for kind %s", e.Kind())
		r.declined[id] = struct{}{}

		return nil, false
	}

	r.active[id] = struct{}{}
	rec := fn(r, e)
	delete(r.active, id)

	if rec == nil {
		r.declined[id] = struct{}{}
		return nil, false
	}

	r.remember(id, rec)
	r.translateChildren(e)

	return rec, true
}

func (r *run) remember(id model.Handle, rec *target.Record) {
	if _, dup := r.translated[id]; dup {
		panic(fmt.Sprintf("lower: entity %s translated twice", id))
	}

	r.translated[id] = rec
}

// translateChildren dispatches the entities owned by e, ordered by kind rank,
// then name, then insertion order.
func (r *run) translateChildren(e model.Entity) {
	kids := slices.Clone(r.children[e.ID()])
	slices.SortStableFunc(kids, func(a, b model.Entity) int {
		if ra, rb := rankOf(a.Kind()), rankOf(b.Kind()); ra != rb {
			return ra - rb
		}

		if c := common.CompareFold(a.Name(), b.Name()); c != 0 {
			return c
		}

		return r.graph.Sequence(a) - r.graph.Sequence(b)
	})

	for _, kid := range kids {
		if r.graph.Contains(kid) {
			r.translate(kid)
		}
	}
}

// emit appends a record on behalf of e. Name clashes and repeated singletons
// are entity-level problems: they are logged and nothing is emitted.
func (r *run) emit(e model.Entity, kind target.Kind, name string, fields ...target.Field) *target.Record {
	if kind.IsUnique() && len(r.store.ByKind(kind)) > 0 {
		r.warnf(e, "duplicate_singleton", "only one %s record is allowed; %q ignored", kind, name)
		return nil
	}

	if _, exists := r.store.Find(kind, name); exists {
		r.errorf(e, "duplicate_name", "a %s record named %q already exists", kind, name)
		return nil
	}

	return r.store.Append(kind, name, fields...)
}

// nameOf translates e and returns its record name, or "" when e produced no
// record.
func (r *run) nameOf(e model.Entity) string {
	rec, ok := r.translate(e)
	if !ok {
		return ""
	}

	return rec.Name
}

// refName resolves ref, translates the target and returns its record name.
func refName[T model.Entity](r *run, ref model.Ref[T]) string {
	t, ok := model.Resolve(r.graph, ref)
	if !ok {
		return ""
	}

	return r.nameOf(t)
}
