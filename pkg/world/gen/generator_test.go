package gen

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/OCharnyshevich/voxel-world/pkg/world/block"
	"github.com/OCharnyshevich/voxel-world/pkg/world/overlay"
	"github.com/OCharnyshevich/voxel-world/pkg/world/voxel"
)

const (
	testWidth  = 24
	testHeight = 32
)

func newGenerator(t *testing.T, p Params, opts ...Option) *Generator {
	t.Helper()
	g, err := New(p, block.Default(), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func generate(t *testing.T, g *Generator, cx, cz int, ov *overlay.Store) *voxel.Grid {
	t.Helper()
	grid, err := voxel.NewGrid(testWidth, testHeight)
	if err != nil {
		t.Fatalf("NewGrid error = %v", err)
	}
	g.Generate(grid, cx, cz, ov)
	return grid
}

func stockParams() Params {
	p := DefaultParams()
	p.Seed = 0
	p.Terrain.Offset = 5
	p.Terrain.Magnitude = 10
	p.Terrain.Scale = 80
	return p
}

func TestGenerateDeterministic(t *testing.T) {
	g := newGenerator(t, stockParams())

	a := generate(t, g, 0, 0, overlay.New())
	b := generate(t, g, 0, 0, overlay.New())
	if !a.Equal(b) || a.Digest() != b.Digest() {
		t.Fatal("regenerating chunk (0,0) produced a different grid")
	}

	// A second generator built from the same inputs agrees too.
	c := generate(t, newGenerator(t, stockParams()), 0, 0, nil)
	if !a.Equal(c) {
		t.Fatal("independent generators disagree")
	}
}

func TestGenerateDeterministicAcrossChunks(t *testing.T) {
	p := stockParams()
	p.Trees.Frequency = 0.2
	p.Clouds.Density = 0.4
	g1 := newGenerator(t, p)
	g2 := newGenerator(t, p)

	for cx := -2; cx <= 2; cx++ {
		for cz := -2; cz <= 2; cz++ {
			if !generate(t, g1, cx, cz, nil).Equal(generate(t, g2, cx, cz, nil)) {
				t.Errorf("chunk (%d,%d) differs between runs", cx, cz)
			}
		}
	}
}

func TestOverlayTakesPrecedence(t *testing.T) {
	g := newGenerator(t, stockParams())
	ov := overlay.New()
	ov.Set(overlay.Key{ChunkX: 0, ChunkZ: 0, X: 5, Y: 10, Z: 5}, block.Stone)
	ov.Set(overlay.Key{ChunkX: 0, ChunkZ: 0, X: 1, Y: 0, Z: 1}, block.Empty)
	ov.Set(overlay.Key{ChunkX: 1, ChunkZ: 0, X: 6, Y: 6, Z: 6}, block.Snow)

	grid := generate(t, g, 0, 0, ov)
	if v, _ := grid.Get(5, 10, 5); v.ID != block.Stone {
		t.Errorf("(5,10,5) = %d, want stone", v.ID)
	}
	if v, _ := grid.Get(1, 0, 1); v.ID != block.Empty {
		t.Errorf("(1,0,1) = %d, want recorded removal", v.ID)
	}
	if v, _ := grid.Get(6, 6, 6); v.ID == block.Snow {
		t.Error("edit of chunk (1,0) leaked into chunk (0,0)")
	}
}

func TestSurfaceRules(t *testing.T) {
	p := stockParams()
	p.Trees.Frequency = 0
	g := newGenerator(t, p)
	water := p.Terrain.WaterOffset

	for _, c := range [][2]int{{0, 0}, {3, -2}, {-5, 4}} {
		grid := generate(t, g, c[0], c[1], nil)
		for x := 0; x < testWidth; x++ {
			for z := 0; z < testWidth; z++ {
				wx, wz := c[0]*testWidth+x, c[1]*testWidth+z
				h := min(g.Height(wx, wz), testHeight-1)

				v, _ := grid.Get(x, h, z)
				want := g.surfaceBlock(g.Biome(wx, wz))
				if h <= water {
					want = block.Sand
				}
				if v.ID != want {
					t.Fatalf("chunk %v column (%d,%d): surface %d, want %d", c, x, z, v.ID, want)
				}
				for y := 0; y < h; y++ {
					v, _ := grid.Get(x, y, z)
					switch v.ID {
					case block.Dirt, block.Stone, block.CoalOre, block.IronOre:
					default:
						t.Fatalf("chunk %v (%d,%d,%d) = %d below surface", c, x, y, z, v.ID)
					}
				}
				for y := h + 1; y < testHeight; y++ {
					if v, _ := grid.Get(x, y, z); !v.IsEmpty() {
						t.Fatalf("chunk %v (%d,%d,%d) = %d above surface without trees", c, x, y, z, v.ID)
					}
				}
			}
		}
	}
}

func TestTreesSpawnOnDrySurface(t *testing.T) {
	p := DefaultParams()
	p.Terrain.Offset = 20
	p.Terrain.Magnitude = 2
	p.Trees.Frequency = 1
	g := newGenerator(t, p)

	grid := generate(t, g, 0, 0, nil)
	for x := 0; x < testWidth; x++ {
		for z := 0; z < testWidth; z++ {
			h := g.Height(x, z)
			trunk := g.trunkBlock(g.Biome(x, z))
			if v, _ := grid.Get(x, h+1, z); v.ID != trunk {
				t.Fatalf("column (%d,%d): block above surface = %d, want trunk %d", x, z, v.ID, trunk)
			}
		}
	}
}

func TestTreesSkipWater(t *testing.T) {
	p := DefaultParams()
	p.Terrain.Offset = 1
	p.Terrain.Magnitude = 0
	p.Trees.Frequency = 1
	grid := generate(t, newGenerator(t, p), 0, 0, nil)

	if n := grid.Count(block.Sand); n != testWidth*testWidth {
		t.Errorf("sand count = %d, want a full water floor", n)
	}
	for _, id := range []block.ID{block.Tree, block.JungleTree, block.Cactus, block.Leaves} {
		if n := grid.Count(id); n != 0 {
			t.Errorf("%d blocks of %d under water", n, id)
		}
	}
}

func TestCloudsCoverTopLayer(t *testing.T) {
	p := stockParams()
	p.Clouds.Density = 1
	grid := generate(t, newGenerator(t, p), 0, 0, nil)

	for x := 0; x < testWidth; x++ {
		for z := 0; z < testWidth; z++ {
			if v, _ := grid.Get(x, testHeight-1, z); v.ID != block.Cloud {
				t.Fatalf("top layer (%d,%d) = %d, want cloud", x, z, v.ID)
			}
		}
	}

	p.Clouds.Density = 0
	if n := generate(t, newGenerator(t, p), 0, 0, nil).Count(block.Cloud); n != 0 {
		t.Errorf("density 0 produced %d clouds", n)
	}
}

func TestLastMatchingResourceWins(t *testing.T) {
	types := block.DefaultTypes()
	for i := range types {
		if types[i].Resource {
			types[i].Scale = mgl64.Vec3{10, 10, 10}
			types[i].Scarcity = 0
		}
	}
	reg, err := block.NewRegistry(types...)
	if err != nil {
		t.Fatalf("NewRegistry error = %v", err)
	}
	g, err := New(DefaultParams(), reg)
	if err != nil {
		t.Fatalf("New error = %v", err)
	}

	hits := 0
	for x := 0; x < 40; x++ {
		for y := 0; y < 20; y++ {
			switch id := g.resourceAt(x, y, x*3); id {
			case block.IronOre:
				hits++
			case block.Dirt:
			default:
				t.Fatalf("resourceAt = %d; identical veins must resolve to the last resource", id)
			}
		}
	}
	if hits == 0 {
		t.Error("no voxel passed the zero threshold")
	}
}

func TestHeightOnlyPipeline(t *testing.T) {
	p := stockParams()
	p.Trees.Frequency = 1
	p.Clouds.Density = 1
	grid := generate(t, newGenerator(t, p, WithPipeline(PipelineHeightOnly)), 0, 0, nil)

	grid.Each(func(x, y, z int, v voxel.Voxel) {
		switch v.ID {
		case block.Empty, block.Dirt, block.Grass, block.Sand:
		default:
			t.Fatalf("(%d,%d,%d) = %d in height-only pipeline", x, y, z, v.ID)
		}
	})
}

func TestOpenSimplexGenerator(t *testing.T) {
	p := stockParams()
	g := newGenerator(t, p, WithNoise(AlgorithmOpenSimplex))
	if g.Algorithm() != AlgorithmOpenSimplex {
		t.Fatalf("Algorithm() = %q", g.Algorithm())
	}
	a := generate(t, g, 2, 2, nil)
	b := generate(t, newGenerator(t, p, WithNoise(AlgorithmOpenSimplex)), 2, 2, nil)
	if !a.Equal(b) {
		t.Error("opensimplex generation is not deterministic")
	}
	if a.Equal(generate(t, newGenerator(t, p), 2, 2, nil)) {
		t.Error("noise algorithms produced identical chunks")
	}
}

func TestDifferentSeedsDifferentTerrain(t *testing.T) {
	p1, p2 := stockParams(), stockParams()
	p2.Seed = 99
	a := generate(t, newGenerator(t, p1), 0, 0, nil)
	b := generate(t, newGenerator(t, p2), 0, 0, nil)
	if a.Equal(b) {
		t.Error("different seeds should produce different terrain")
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	bad := DefaultParams()
	bad.Terrain.Scale = 0
	if _, err := New(bad, block.Default()); err == nil {
		t.Error("New accepted invalid params")
	}
	if _, err := New(DefaultParams(), nil); err == nil {
		t.Error("New accepted a nil registry")
	}
	if _, err := New(DefaultParams(), block.Default(), WithNoise("perlin")); err == nil {
		t.Error("New accepted an unknown noise algorithm")
	}

	reg, err := block.NewRegistry(block.Type{ID: 0, Name: "empty"}, block.Type{ID: 1, Name: "dirt"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(DefaultParams(), reg); err == nil {
		t.Error("New accepted a registry without surface blocks")
	}
}

func TestBiomeClassification(t *testing.T) {
	b := DefaultParams().Biomes
	tests := []struct {
		n    float64
		want Biome
	}{
		{-0.2, BiomeTundra},
		{0.09, BiomeTundra},
		{0.1, BiomeTemperate},
		{0.49, BiomeTemperate},
		{0.5, BiomeJungle},
		{0.9, BiomeDesert},
		{1.3, BiomeDesert},
	}
	for _, tt := range tests {
		if got := classifyBiome(tt.n, b); got != tt.want {
			t.Errorf("classifyBiome(%v) = %s, want %s", tt.n, got, tt.want)
		}
	}
}

func TestParsePipeline(t *testing.T) {
	tests := []struct {
		in      string
		want    Pipeline
		wantErr bool
	}{
		{"", PipelineFull, false},
		{"full", PipelineFull, false},
		{"height", PipelineHeightOnly, false},
		{"caves", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePipeline(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePipeline(%q) = %v, %v", tt.in, got, err)
		}
		if err == nil && tt.in != "" && got.String() != tt.in {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), tt.in)
		}
	}
}
