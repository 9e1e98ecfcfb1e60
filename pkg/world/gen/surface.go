package gen

import (
	"github.com/OCharnyshevich/voxel-world/pkg/world/block"
	"github.com/OCharnyshevich/voxel-world/pkg/world/voxel"
)

// generateTerrain fills every column top-down: surface block at the height,
// resources in the still-empty voxels below it. Trees may spawn on dry surface.
func (g *Generator) generateTerrain(grid *voxel.Grid, ox, oz int, rng *RNG) {
	top := grid.Height() - 1
	water := g.params.Terrain.WaterOffset

	for x := 0; x < grid.Width(); x++ {
		for z := 0; z < grid.Width(); z++ {
			wx, wz := ox+x, oz+z
			biome := g.Biome(wx, wz)
			h := min(g.Height(wx, wz), top)

			for y := h; y >= 0; y-- {
				switch {
				case y == h && y <= water:
					grid.SetID(x, y, z, g.ids.sand)
				case y == h:
					grid.SetID(x, y, z, g.surfaceBlock(biome))
					if rng.Next() < g.params.Trees.Frequency {
						g.generateTree(grid, rng, biome, x, h, z)
					}
				default:
					if v, _ := grid.Get(x, y, z); v.IsEmpty() {
						grid.SetID(x, y, z, g.resourceAt(wx, y, wz))
					}
				}
			}
		}
	}
}

// surfaceBlock picks the dry surface block for a biome.
func (g *Generator) surfaceBlock(b Biome) block.ID {
	switch b {
	case BiomeDesert:
		return g.ids.sand
	case BiomeTundra:
		return g.ids.snow
	default:
		return g.ids.grass
	}
}
