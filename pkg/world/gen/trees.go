package gen

import (
	"github.com/OCharnyshevich/voxel-world/pkg/world/block"
	"github.com/OCharnyshevich/voxel-world/pkg/world/voxel"
)

// generateTree places a trunk on the surface voxel at (x, surface, z) and,
// in temperate and jungle biomes, a canopy around the trunk top. Blocks that
// would land outside the grid are dropped.
func (g *Generator) generateTree(grid *voxel.Grid, rng *RNG, biome Biome, x, surface, z int) {
	t := g.params.Trees
	h := rng.Range(t.Trunk.MinHeight, t.Trunk.MaxHeight)

	trunk := g.trunkBlock(biome)
	for y := surface + 1; y <= surface+h; y++ {
		grid.SetID(x, y, z, trunk)
	}

	if leaf, ok := g.leafBlock(biome); ok {
		g.generateCanopy(grid, rng, leaf, x, surface+h, z)
	}
}

// generateCanopy scatters leaves in a sphere centred on (cx, cy, cz). Every
// candidate that is empty or outside the grid costs one draw.
func (g *Generator) generateCanopy(grid *voxel.Grid, rng *RNG, leaf block.ID, cx, cy, cz int) {
	c := g.params.Trees.Canopy
	r := rng.Range(c.MinRadius, c.MaxRadius)

	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			for dz := -r; dz <= r; dz++ {
				if dx*dx+dy*dy+dz*dz > r*r {
					continue
				}
				x, y, z := cx+dx, cy+dy, cz+dz
				if v, ok := grid.Get(x, y, z); ok && !v.IsEmpty() {
					continue
				}
				if rng.Next() < c.Density {
					grid.SetID(x, y, z, leaf)
				}
			}
		}
	}
}

func (g *Generator) trunkBlock(b Biome) block.ID {
	switch b {
	case BiomeJungle:
		return g.ids.jungleTree
	case BiomeDesert:
		return g.ids.cactus
	default:
		return g.ids.tree
	}
}

func (g *Generator) leafBlock(b Biome) (block.ID, bool) {
	switch b {
	case BiomeTemperate:
		return g.ids.leaves, true
	case BiomeJungle:
		return g.ids.jungleLeaves, true
	default:
		return block.Empty, false
	}
}
