package voxel

import "github.com/OCharnyshevich/voxel-world/pkg/world/block"

// Source resolves block ids by coordinate. ok is false when nothing is known
// about the position; such neighbours count as empty.
type Source interface {
	BlockAt(x, y, z int) (id block.ID, ok bool)
}

// Sides is a bitmask of voxel faces.
type Sides uint8

const (
	SideUp Sides = 1 << iota
	SideDown
	SideEast  // +x
	SideWest  // -x
	SideSouth // +z
	SideNorth // -z

	AllSides = SideUp | SideDown | SideEast | SideWest | SideSouth | SideNorth
)

// Offset is a face-adjacent neighbour direction.
type Offset struct {
	DX, DY, DZ int
	Side       Sides
}

// Neighbours lists the six face-adjacent offsets.
var Neighbours = [6]Offset{
	{0, 1, 0, SideUp},
	{0, -1, 0, SideDown},
	{1, 0, 0, SideEast},
	{-1, 0, 0, SideWest},
	{0, 0, 1, SideSouth},
	{0, 0, -1, SideNorth},
}

// Has reports whether s contains side.
func (s Sides) Has(side Sides) bool { return s&side != 0 }

// VisibleSides returns the faces of (x, y, z) whose neighbour is empty or unknown.
func VisibleSides(src Source, x, y, z int) Sides {
	var s Sides
	for _, n := range Neighbours {
		id, ok := src.BlockAt(x+n.DX, y+n.DY, z+n.DZ)
		if !ok || id == block.Empty {
			s |= n.Side
		}
	}
	return s
}

// Obscured reports whether all six neighbours of (x, y, z) are non-empty.
func Obscured(src Source, x, y, z int) bool {
	for _, n := range Neighbours {
		id, ok := src.BlockAt(x+n.DX, y+n.DY, z+n.DZ)
		if !ok || id == block.Empty {
			return false
		}
	}
	return true
}

// IsObscured is Obscured with chunk-local neighbours only.
func (g *Grid) IsObscured(x, y, z int) bool {
	return Obscured(g, x, y, z)
}
