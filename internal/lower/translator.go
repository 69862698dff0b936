package lower

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"model-lowering/internal/config"
	"model-lowering/internal/ctxlog"
	"model-lowering/internal/diagnostic"
	"model-lowering/internal/model"
	"model-lowering/internal/target"
)

// zoneMemoSize bounds the zone-resolution memo. Entries are recomputable.
const zoneMemoSize = 4096

// Translator lowers source graphs with a fixed set of options. It holds no
// per-run state and may be reused.
type Translator struct {
	opts config.Options
}

// NewTranslator creates a Translator.
func NewTranslator(opts config.Options) *Translator {
	return &Translator{opts: opts}
}

// Result is the outcome of one run.
type Result struct {
	// Store holds the emitted records in emission order.
	Store *target.Store
	// Diagnostics contains every info, warning and error of the run.
	Diagnostics *diagnostic.Diagnostics
	// Coverage records how each dispatched kind was classified.
	Coverage map[model.Kind]DispatchClass
	// SequenceNumbers holds the per-zone sequence number assigned to each
	// partitioned control, keyed by control handle.
	SequenceNumbers map[model.Handle]int
}

// run owns every cache of a single translation. It is discarded afterwards.
type run struct {
	graph *model.Graph
	opts  config.Options
	store *target.Store
	diags *diagnostic.Diagnostics

	// index is rebuilt whenever normalization changes ownership.
	index    *model.Index
	building *model.Building

	// translated is the translation map: one record per source handle.
	translated map[model.Handle]*target.Record
	// declined holds entities that legitimately produced no record.
	declined map[model.Handle]struct{}
	// active holds entities whose translator is on the stack.
	active   map[model.Handle]struct{}
	children map[model.Handle][]model.Entity
	coverage map[model.Kind]DispatchClass

	// reversals maps a construction to its physical reverse, both ways.
	reversals map[model.Handle]model.Handle
	// byLayers groups constructions by layer sequence. Built on first use.
	byLayers map[string][]*model.Construction
	// distances keeps the search distance of constructions hard-assigned
	// during normalization.
	distances map[model.Handle]int
	zoneMemo  *lru.Cache[model.Handle, model.Handle]
	// sequence and controlZone are side-channel attributes of partitioned
	// controls, keyed by control handle.
	sequence    map[model.Handle]int
	controlZone map[model.Handle]model.Handle
	// names holds the lowercased names in use per kind, including names
	// handed out for entities not yet in the graph.
	names map[model.Kind]map[string]struct{}
}

func newRun(g *model.Graph, opts config.Options, diags *diagnostic.Diagnostics) *run {
	memo, err := lru.New[model.Handle, model.Handle](zoneMemoSize)
	if err != nil {
		panic(fmt.Sprintf("lower: zone memo: %v", err))
	}

	return &run{
		graph:       g,
		opts:        opts,
		index:       model.NewIndex(g),
		store:       target.NewStore(),
		diags:       diags,
		translated:  make(map[model.Handle]*target.Record),
		declined:    make(map[model.Handle]struct{}),
		active:      make(map[model.Handle]struct{}),
		coverage:    make(map[model.Kind]DispatchClass),
		reversals:   make(map[model.Handle]model.Handle),
		distances:   make(map[model.Handle]int),
		zoneMemo:    memo,
		sequence:    make(map[model.Handle]int),
		controlZone: make(map[model.Handle]model.Handle),
		names:       make(map[model.Kind]map[string]struct{}),
	}
}

// Translate normalizes g in place and lowers it into a new record store.
// Callers that need the untouched graph must pass g.Copy().
//
// A cancelled context is honoured between kind batches; the partial result
// is discarded and ctx.Err() returned.
func (t *Translator) Translate(ctx context.Context, g *model.Graph) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	var diags *diagnostic.Diagnostics
	if ctxlog.Attached(ctx) {
		diags = diagnostic.New(logger)
	} else {
		diags = diagnostic.New(nil)
	}

	r := newRun(g, t.opts, diags)

	logger.Debug("Translate: starting normalization.", "entities", g.Len())
	r.normalize()
	logger.Debug("Translate: normalization complete.", "entities", g.Len())

	if err := r.dispatchAll(ctx); err != nil {
		return nil, fmt.Errorf("translation cancelled: %w", err)
	}

	logger.Debug("Translate: dispatch complete.",
		"records", r.store.Len(),
		"errors", len(diags.Errors()),
		"warnings", len(diags.Warnings()))

	return &Result{
		Store:           r.store,
		Diagnostics:     diags,
		Coverage:        r.coverage,
		SequenceNumbers: r.sequence,
	}, nil
}

func (r *run) errorf(e model.Entity, code, format string, args ...any) {
	r.diags.AddError(code, fmt.Sprintf(format, args...), e.Kind().String(), e.Name())
}

func (r *run) warnf(e model.Entity, code, format string, args ...any) {
	r.diags.AddWarning(code, fmt.Sprintf(format, args...), e.Kind().String(), e.Name())
}

func (r *run) infof(e model.Entity, code, format string, args ...any) {
	r.diags.AddInfo(code, fmt.Sprintf(format, args...), e.Kind().String(), e.Name())
}

// uniqueName returns base, or base with the smallest numeric suffix that no
// entity of kind uses yet. Names compare case-insensitively, like record
// names. The returned name is reserved for the caller.
func (r *run) uniqueName(kind model.Kind, base string) string {
	taken := r.namesOf(kind)

	name := base
	for i := 1; ; i++ {
		if _, ok := taken[strings.ToLower(name)]; !ok {
			break
		}

		name = fmt.Sprintf("%s %d", base, i)
	}

	taken[strings.ToLower(name)] = struct{}{}

	return name
}

// namesOf returns the names in use for kind, seeded from the graph on first
// use. Names given up by renamed or removed entities stay taken.
func (r *run) namesOf(kind model.Kind) map[string]struct{} {
	if taken, ok := r.names[kind]; ok {
		return taken
	}

	taken := make(map[string]struct{})
	for _, e := range r.graph.EntitiesByKind(kind) {
		taken[strings.ToLower(e.Name())] = struct{}{}
	}

	r.names[kind] = taken

	return taken
}
