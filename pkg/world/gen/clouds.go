package gen

import "github.com/OCharnyshevich/voxel-world/pkg/world/voxel"

// generateClouds puts cloud blocks on the top layer where the normalized cloud
// noise falls below the configured density.
func (g *Generator) generateClouds(grid *voxel.Grid, ox, oz int) {
	c := g.params.Clouds
	if c.Density <= 0 {
		return
	}
	top := grid.Height() - 1
	for x := 0; x < grid.Width(); x++ {
		for z := 0; z < grid.Width(); z++ {
			v := (g.clouds.Noise2D(float64(ox+x)/c.Scale, float64(oz+z)/c.Scale) + 1) * 0.5
			if v < c.Density {
				grid.SetID(x, top, z, g.ids.cloud)
			}
		}
	}
}
