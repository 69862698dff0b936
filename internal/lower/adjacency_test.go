package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-lowering/internal/diagnostic"
	"model-lowering/internal/model"
	"model-lowering/internal/target"
)

// adjacencyFixture is two spaces in separate zones with three materials to
// build constructions from.
type adjacencyFixture struct {
	g              *model.Graph
	space1, space2 *model.Space
	a, b, c        *model.Material
}

func newAdjacencyFixture() *adjacencyFixture {
	g := model.NewGraph()
	f := &adjacencyFixture{g: g}

	zone1 := model.Add(g, "Zone 1", &model.ThermalZone{})
	zone2 := model.Add(g, "Zone 2", &model.ThermalZone{})
	f.space1 = model.Add(g, "Space 1", &model.Space{Zone: model.RefTo(zone1)})
	f.space2 = model.Add(g, "Space 2", &model.Space{Zone: model.RefTo(zone2)})
	f.a = model.Add(g, "Gypsum", &model.Material{})
	f.b = model.Add(g, "Insulation", &model.Material{})
	f.c = model.Add(g, "Brick", &model.Material{})

	return f
}

func (f *adjacencyFixture) construction(name string, layers ...*model.Material) *model.Construction {
	refs := make([]model.Ref[*model.Material], len(layers))
	for i, m := range layers {
		refs[i] = model.RefTo(m)
	}

	return model.Add(f.g, name, &model.Construction{Layers: refs})
}

// pair adds two adjacent interior walls. A nil construction leaves the wall
// to the default sets.
func (f *adjacencyFixture) pair(name1 string, c1 *model.Construction, name2 string, c2 *model.Construction) (*model.Surface, *model.Surface) {
	w1 := &model.Surface{Space: model.RefTo(f.space1), Type: model.SurfaceWall, Boundary: model.BoundarySurface}
	w2 := &model.Surface{Space: model.RefTo(f.space2), Type: model.SurfaceWall, Boundary: model.BoundarySurface}

	if c1 != nil {
		w1.Construction = model.RefTo(c1)
	}

	if c2 != nil {
		w2.Construction = model.RefTo(c2)
	}

	model.Add(f.g, name1, w1)
	model.Add(f.g, name2, w2)
	w1.Adjacent = model.RefTo(w2)
	w2.Adjacent = model.RefTo(w1)

	return w1, w2
}

func constructionOf(t *testing.T, res *Result, surface string) string {
	t.Helper()

	r, ok := res.Store.Find(target.KindBuildingSurface, surface)
	require.True(t, ok, "no surface record %q", surface)

	return r.Str("Construction Name")
}

func TestReversePairIsKeptRegardlessOfNameOrder(t *testing.T) {
	for _, swap := range []bool{false, true} {
		f := newAdjacencyFixture()
		fwd := f.construction("Forward", f.a, f.b)
		rev := f.construction("Backward", f.b, f.a)

		first, second := fwd, rev
		if swap {
			first, second = rev, fwd
		}

		f.pair("Wall 1", first, "Wall 2", second)

		res := runLowering(t, f.g, spaceMode())
		assert.Equal(t, first.Name(), constructionOf(t, res, "Wall 1"))
		assert.Equal(t, second.Name(), constructionOf(t, res, "Wall 2"))
		assert.False(t, res.Diagnostics.HasErrors())
		assert.Len(t, res.Store.ByKind(target.KindConstruction), 2)
	}
}

func TestSharedConstructionGoesToSmallerName(t *testing.T) {
	f := newAdjacencyFixture()
	c := f.construction("Partition", f.a, f.b)

	// Insertion order is the opposite of name order.
	w2 := &model.Surface{Space: model.RefTo(f.space2), Boundary: model.BoundarySurface, Construction: model.RefTo(c)}
	w1 := &model.Surface{Space: model.RefTo(f.space1), Boundary: model.BoundarySurface, Construction: model.RefTo(c)}
	model.Add(f.g, "wall b", w2)
	model.Add(f.g, "Wall A", w1)
	w1.Adjacent = model.RefTo(w2)
	w2.Adjacent = model.RefTo(w1)

	res := runLowering(t, f.g, spaceMode())
	assert.Equal(t, "Partition", constructionOf(t, res, "Wall A"))
	assert.Equal(t, "Partition Reversed", constructionOf(t, res, "wall b"))

	reversed, ok := res.Store.Find(target.KindConstruction, "Partition Reversed")
	require.True(t, ok)
	assert.Equal(t, []string{"Insulation", "Gypsum"}, reversed.Refs(""))

	warnings := res.Diagnostics.WithCode("reversed_shared_construction")
	require.Len(t, warnings, 1)
	assert.Equal(t, "wall b", warnings[0].Entity)
}

func TestSymmetricSharedConstructionIsKept(t *testing.T) {
	f := newAdjacencyFixture()
	c := f.construction("Sandwich", f.a, f.b, f.a)
	f.pair("Wall 1", c, "Wall 2", c)

	res := runLowering(t, f.g, spaceMode())
	assert.Equal(t, "Sandwich", constructionOf(t, res, "Wall 1"))
	assert.Equal(t, "Sandwich", constructionOf(t, res, "Wall 2"))
	assert.Empty(t, res.Diagnostics.Warnings())
	assert.Len(t, res.Store.ByKind(target.KindConstruction), 1)
}

func TestOneSidedConstructionReusesExistingReverse(t *testing.T) {
	f := newAdjacencyFixture()
	fwd := f.construction("Forward", f.a, f.b)
	f.construction("Backward", f.b, f.a)
	f.pair("Wall 1", nil, "Wall 2", fwd)

	res := runLowering(t, f.g, spaceMode())
	assert.Equal(t, "Backward", constructionOf(t, res, "Wall 1"))
	assert.Equal(t, "Forward", constructionOf(t, res, "Wall 2"))
	assert.Len(t, res.Diagnostics.WithCode("assigned_reverse"), 1)
	assert.Empty(t, res.Diagnostics.WithCode("created_reverse"))
}

func TestMoreSpecificConstructionWins(t *testing.T) {
	f := newAdjacencyFixture()
	explicit := f.construction("Explicit", f.a, f.b)
	inherited := f.construction("Inherited", f.c, f.b)
	set := model.Add(f.g, "Space Defaults", &model.DefaultConstructionSet{InteriorWall: model.RefTo(inherited)})
	f.space1.DefaultConstructionSet = model.RefTo(set)

	f.pair("Wall 1", nil, "Wall 2", explicit)

	res := runLowering(t, f.g, spaceMode())
	assert.Equal(t, "Explicit Reversed", constructionOf(t, res, "Wall 1"))
	assert.Equal(t, "Explicit", constructionOf(t, res, "Wall 2"))
	assert.False(t, res.Diagnostics.HasErrors())
}

func TestSearchDistanceFollowsDefaultHierarchy(t *testing.T) {
	f := newAdjacencyFixture()
	byLevel := make(map[int]*model.Construction)
	for level, name := range map[int]string{1: "L1", 2: "L2", 3: "L3", 4: "L4"} {
		byLevel[level] = f.construction(name, f.a)
	}

	setFor := func(level int) model.Ref[*model.DefaultConstructionSet] {
		set := model.Add(f.g, byLevel[level].Name()+" Set", &model.DefaultConstructionSet{ExteriorWall: model.RefTo(byLevel[level])})
		return model.RefTo(set)
	}

	spaceType := model.Add(f.g, "Office", &model.SpaceType{DefaultConstructionSet: setFor(2)})
	story := model.Add(f.g, "Story", &model.BuildingStory{DefaultConstructionSet: setFor(3)})
	model.Add(f.g, "Building", &model.Building{DefaultConstructionSet: setFor(4)})
	wall := model.Add(f.g, "Wall", &model.Surface{Space: model.RefTo(f.space1), Type: model.SurfaceWall, Boundary: model.BoundaryOutdoors})

	r := newRun(f.g, spaceMode(), diagnostic.New(nil))

	c, d := r.surfaceConstruction(wall)
	assert.Equal(t, "L4", c.Name())
	assert.Equal(t, distanceBuilding, d)

	f.space1.Story = model.RefTo(story)
	c, d = r.surfaceConstruction(wall)
	assert.Equal(t, "L3", c.Name())
	assert.Equal(t, distanceStory, d)

	f.space1.SpaceType = model.RefTo(spaceType)
	c, d = r.surfaceConstruction(wall)
	assert.Equal(t, "L2", c.Name())
	assert.Equal(t, distanceSpaceType, d)

	f.space1.DefaultConstructionSet = setFor(1)
	c, d = r.surfaceConstruction(wall)
	assert.Equal(t, "L1", c.Name())
	assert.Equal(t, distanceSpace, d)

	wall.Construction = model.RefTo(byLevel[4])
	_, d = r.surfaceConstruction(wall)
	assert.Equal(t, distanceExplicit, d)

	// Interior walls use a different slot.
	wall.Construction = model.Ref[*model.Construction]{}
	wall.Boundary = model.BoundarySurface
	c, _ = r.surfaceConstruction(wall)
	assert.Nil(t, c)
}

func TestEqualDistanceConflictKeepsBoth(t *testing.T) {
	f := newAdjacencyFixture()
	x := f.construction("X", f.a, f.b)
	y := f.construction("Y", f.c, f.b)
	f.pair("Wall 1", x, "Wall 2", y)

	res := runLowering(t, f.g, spaceMode())
	assert.Equal(t, "X", constructionOf(t, res, "Wall 1"))
	assert.Equal(t, "Y", constructionOf(t, res, "Wall 2"))

	errs := res.Diagnostics.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "construction_conflict", errs[0].Code)
}

func TestPairWithoutConstructionIsError(t *testing.T) {
	f := newAdjacencyFixture()
	f.pair("Wall 1", nil, "Wall 2", nil)

	res := runLowering(t, f.g, spaceMode())

	errs := res.Diagnostics.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "no_construction", errs[0].Code)
	assert.Equal(t, "Wall 1", errs[0].Entity)
}

func TestReverseIsCachedAcrossPairs(t *testing.T) {
	f := newAdjacencyFixture()
	c := f.construction("Partition", f.a, f.b)
	f.pair("Wall 1", c, "Wall 2", nil)
	f.pair("Wall 3", c, "Wall 4", nil)

	res := runLowering(t, f.g, spaceMode())
	assert.Equal(t, "Partition Reversed", constructionOf(t, res, "Wall 2"))
	assert.Equal(t, "Partition Reversed", constructionOf(t, res, "Wall 4"))
	assert.Len(t, res.Diagnostics.WithCode("created_reverse"), 1)
	assert.Len(t, res.Store.ByKind(target.KindConstruction), 2)
}

func TestOneSidedAdjacencyLeavesMutualPairIntact(t *testing.T) {
	f := newAdjacencyFixture()
	xx := f.construction("XX", f.c)
	ab := f.construction("AB", f.a, f.b)

	wall := func(name string, space *model.Space, c *model.Construction) *model.Surface {
		s := &model.Surface{Space: model.RefTo(space), Type: model.SurfaceWall, Boundary: model.BoundarySurface}
		if c != nil {
			s.Construction = model.RefTo(c)
		}

		return model.Add(f.g, name, s)
	}

	a := wall("A Wall", f.space1, xx)
	b := wall("B Wall", f.space2, ab)
	c := wall("C Wall", f.space1, nil)
	a.Adjacent = model.RefTo(b)
	b.Adjacent = model.RefTo(c)
	c.Adjacent = model.RefTo(b)

	res := runLowering(t, f.g, spaceMode())
	assert.Equal(t, "XX", constructionOf(t, res, "A Wall"))
	assert.Equal(t, "AB", constructionOf(t, res, "B Wall"))
	assert.Equal(t, "AB Reversed", constructionOf(t, res, "C Wall"))

	warnings := res.Diagnostics.WithCode("one_sided_adjacency")
	require.Len(t, warnings, 1)
	assert.Equal(t, "A Wall", warnings[0].Entity)
	assert.False(t, res.Diagnostics.HasErrors())
}

func TestSubSurfacePairsAreResolved(t *testing.T) {
	f := newAdjacencyFixture()
	wallC := f.construction("Wall", f.a)
	door := f.construction("Door", f.c, f.b)
	w1, w2 := f.pair("Wall 1", wallC, "Wall 2", wallC)

	d1 := model.Add(f.g, "Door 1", &model.SubSurface{Surface: model.RefTo(w1), Type: model.SubSurfaceDoor, Construction: model.RefTo(door)})
	d2 := model.Add(f.g, "Door 2", &model.SubSurface{Surface: model.RefTo(w2), Type: model.SubSurfaceDoor})
	d1.Adjacent = model.RefTo(d2)
	d2.Adjacent = model.RefTo(d1)

	res := runLowering(t, f.g, spaceMode())

	r, ok := res.Store.Find(target.KindFenestrationSurface, "Door 2")
	require.True(t, ok)
	assert.Equal(t, "Door Reversed", r.Str("Construction Name"))
	assert.Equal(t, "Door 1", r.Str("Outside Boundary Condition Object"))
}

func TestIsSymmetric(t *testing.T) {
	f := newAdjacencyFixture()
	assert.True(t, isSymmetric(f.construction("Empty")))
	assert.True(t, isSymmetric(f.construction("Single", f.a)))
	assert.True(t, isSymmetric(f.construction("Palindrome", f.a, f.b, f.a)))
	assert.False(t, isSymmetric(f.construction("Layered", f.a, f.b)))
}
