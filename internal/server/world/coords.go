package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ChunkPos identifies a chunk column by its chunk-grid coordinates.
type ChunkPos struct{ X, Z int }

// BlockPos is a position in world block coordinates.
type BlockPos struct{ X, Y, Z int }

// LocalPos is a position inside a chunk grid.
type LocalPos struct{ X, Y, Z int }

// InDrawDistance checks if two chunk positions are within draw distance
// using Chebyshev (chessboard) distance.
func InDrawDistance(a, b ChunkPos, dist int) bool {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dz := a.Z - b.Z
	if dz < 0 {
		dz = -dz
	}
	return dx <= dist && dz <= dist
}

// floorDiv divides rounding towards negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// WorldToChunkCoords splits a world position into the owning chunk and the
// position inside it. Chunks are not split vertically, so Y passes through.
func (w *World) WorldToChunkCoords(x, y, z int) (ChunkPos, LocalPos) {
	width := w.cfg.Width
	cp := ChunkPos{X: floorDiv(x, width), Z: floorDiv(z, width)}
	return cp, LocalPos{X: x - cp.X*width, Y: y, Z: z - cp.Z*width}
}

// BlockAtVec floors a continuous position to the block containing it.
func BlockAtVec(v mgl64.Vec3) BlockPos {
	return BlockPos{
		X: int(math.Floor(v.X())),
		Y: int(math.Floor(v.Y())),
		Z: int(math.Floor(v.Z())),
	}
}

// origin returns the world-space corner of chunk p.
func (p ChunkPos) origin(width int) mgl64.Vec3 {
	return mgl64.Vec3{float64(p.X * width), 0, float64(p.Z * width)}
}
