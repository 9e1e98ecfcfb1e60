package gen

import "github.com/OCharnyshevich/voxel-world/pkg/world/voxel"

// fillHeights is the reduced pipeline: each column is dirt up to the surface,
// capped with sand at or below the water level and grass above it.
func (g *Generator) fillHeights(grid *voxel.Grid, ox, oz int) {
	top := grid.Height() - 1
	water := g.params.Terrain.WaterOffset

	for x := 0; x < grid.Width(); x++ {
		for z := 0; z < grid.Width(); z++ {
			h := min(g.Height(ox+x, oz+z), top)
			for y := 0; y < h; y++ {
				grid.SetID(x, y, z, g.ids.fill)
			}
			if h <= water {
				grid.SetID(x, h, z, g.ids.sand)
			} else {
				grid.SetID(x, h, z, g.ids.grass)
			}
		}
	}
}
