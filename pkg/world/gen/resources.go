package gen

import "github.com/OCharnyshevich/voxel-world/pkg/world/block"

// resourceAt returns the block for an underground voxel at world (x, y, z).
// Each resource is tested in registry order and every hit overwrites the
// previous one, so when veins overlap the last registered resource wins.
func (g *Generator) resourceAt(x, y, z int) block.ID {
	id := g.ids.fill
	fx, fy, fz := float64(x), float64(y), float64(z)
	for _, r := range g.resources {
		v := g.terrain.Noise3D(fx/r.Scale.X(), fy/r.Scale.Y(), fz/r.Scale.Z())
		if v > r.Scarcity {
			id = r.ID
		}
	}
	return id
}
