// Package gen fills voxel grids with procedural terrain.
//
// Generation of a chunk is a pure function of the world parameters, the block
// registry, the chunk coordinates and the edit overlay. The noise fields are
// derived from the world seed alone, the vegetation sequence from the seed
// mixed with the chunk coordinates.
package gen

import (
	"fmt"
	"math"

	"github.com/OCharnyshevich/voxel-world/pkg/world/block"
	"github.com/OCharnyshevich/voxel-world/pkg/world/overlay"
	"github.com/OCharnyshevich/voxel-world/pkg/world/voxel"
)

// Pipeline selects the set of generation stages.
type Pipeline uint8

const (
	// PipelineFull runs biomes, terrain, resources, vegetation and clouds.
	PipelineFull Pipeline = iota
	// PipelineHeightOnly fills the height field with dirt and a grass or
	// sand cap, without biomes, resources, vegetation or clouds.
	PipelineHeightOnly
)

func (p Pipeline) String() string {
	switch p {
	case PipelineFull:
		return "full"
	case PipelineHeightOnly:
		return "height"
	default:
		return fmt.Sprintf("pipeline(%d)", uint8(p))
	}
}

// ParsePipeline maps "full" (or "") and "height" to a Pipeline.
func ParsePipeline(s string) (Pipeline, error) {
	switch s {
	case "", "full":
		return PipelineFull, nil
	case "height":
		return PipelineHeightOnly, nil
	default:
		return 0, fmt.Errorf("unknown pipeline %q", s)
	}
}

// Option configures a Generator.
type Option func(*options)

type options struct {
	noise    Algorithm
	pipeline Pipeline
}

// WithNoise selects the noise implementation.
func WithNoise(a Algorithm) Option {
	return func(o *options) { o.noise = a }
}

// WithPipeline selects the generation stages.
func WithPipeline(p Pipeline) Option {
	return func(o *options) { o.pipeline = p }
}

// palette holds the well-known block ids the pipeline writes.
type palette struct {
	fill         block.ID
	grass        block.ID
	sand         block.ID
	snow         block.ID
	cloud        block.ID
	tree         block.ID
	jungleTree   block.ID
	cactus       block.ID
	leaves       block.ID
	jungleLeaves block.ID
}

// Generator produces chunk contents. It holds no mutable state, so one
// Generator may fill distinct grids from several goroutines.
type Generator struct {
	params    Params
	reg       *block.Registry
	terrain   Field
	clouds    Field
	resources []block.Type
	ids       palette
	pipeline  Pipeline
	algorithm Algorithm
}

// New validates params and resolves the blocks the pipeline needs from reg.
func New(params Params, reg *block.Registry, opts ...Option) (*Generator, error) {
	o := options{noise: AlgorithmSimplex, pipeline: PipelineFull}
	for _, opt := range opts {
		opt(&o)
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid world parameters: %w", err)
	}
	if reg == nil {
		return nil, fmt.Errorf("nil block registry")
	}

	ids, err := resolvePalette(reg)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		params:    params,
		reg:       reg,
		resources: reg.Resources(),
		ids:       ids,
		pipeline:  o.pipeline,
		algorithm: o.noise,
	}

	switch o.noise {
	case AlgorithmSimplex, "":
		base := NewRNG(params.Seed)
		g.terrain = NewSimplex(base)
		g.clouds = NewSimplex(base)
		g.algorithm = AlgorithmSimplex
	case AlgorithmOpenSimplex:
		g.terrain = NewOpenSimplex(params.Seed)
		g.clouds = NewOpenSimplex(params.Seed + 1)
	default:
		return nil, fmt.Errorf("unknown noise algorithm %q", o.noise)
	}
	return g, nil
}

func resolvePalette(reg *block.Registry) (palette, error) {
	var p palette
	for _, e := range []struct {
		name string
		dst  *block.ID
	}{
		{"dirt", &p.fill},
		{"grass", &p.grass},
		{"sand", &p.sand},
		{"snow", &p.snow},
		{"cloud", &p.cloud},
		{"tree", &p.tree},
		{"jungle_tree", &p.jungleTree},
		{"cactus", &p.cactus},
		{"leaves", &p.leaves},
		{"jungle_leaves", &p.jungleLeaves},
	} {
		t, ok := reg.ByName(e.name)
		if !ok {
			return palette{}, fmt.Errorf("block registry lacks %q", e.name)
		}
		*e.dst = t.ID
	}
	return p, nil
}

// Params returns the parameters the generator was built with.
func (g *Generator) Params() Params { return g.params }

// Registry returns the block registry.
func (g *Generator) Registry() *block.Registry { return g.reg }

// Algorithm returns the noise implementation in use.
func (g *Generator) Algorithm() Algorithm { return g.algorithm }

// Height returns the surface height of world column (x, z), floored at zero.
// Generation additionally clamps it to the grid height.
func (g *Generator) Height(x, z int) int {
	t := g.params.Terrain
	v := g.terrain.Noise2D(float64(x)/t.Scale, float64(z)/t.Scale)
	h := int(math.Floor(t.Offset + t.Magnitude*v))
	return max(h, 0)
}

// Generate overwrites grid with the contents of chunk (cx, cz). Edits recorded
// in ov for that chunk are applied last. ov may be nil.
func (g *Generator) Generate(grid *voxel.Grid, cx, cz int, ov *overlay.Store) {
	grid.Fill(block.Empty)
	ox, oz := cx*grid.Width(), cz*grid.Width()

	switch g.pipeline {
	case PipelineHeightOnly:
		g.fillHeights(grid, ox, oz)
	default:
		rng := NewRNG(ChunkSeed(g.params.Seed, cx, cz))
		g.generateTerrain(grid, ox, oz, rng)
		g.generateClouds(grid, ox, oz)
	}

	if ov != nil {
		ov.ForChunk(cx, cz, func(x, y, z int, id block.ID) {
			grid.SetID(x, y, z, id)
		})
	}
}
