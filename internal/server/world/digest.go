package world

import (
	"encoding/binary"
	"runtime"
	"sort"

	"github.com/alitto/pond/v2"
	"github.com/cespare/xxhash/v2"

	"github.com/OCharnyshevich/voxel-world/pkg/world/voxel"
)

// ChunkDigest is the content hash of one generated chunk.
type ChunkDigest struct {
	Pos    ChunkPos
	Digest uint64
}

// DigestRegion generates every chunk within radius of center off to the side
// and hashes it, using up to workers goroutines (<= 0 means one per CPU).
// Resident chunks are neither read nor changed, so the result reflects the
// parameters and recorded edits only. Results are ordered by X then Z.
// A negative radius yields nil.
//
// The overlay is only read while workers run; the caller must not edit the
// world until DigestRegion returns.
func (w *World) DigestRegion(center ChunkPos, radius, workers int) []ChunkDigest {
	if radius < 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	side := 2*radius + 1
	out := make([]ChunkDigest, side*side)

	pool := pond.NewPool(workers)
	i := 0
	for cx := center.X - radius; cx <= center.X+radius; cx++ {
		for cz := center.Z - radius; cz <= center.Z+radius; cz++ {
			idx, pos := i, ChunkPos{cx, cz}
			i++
			pool.Submit(func() {
				grid, _ := voxel.NewGrid(w.cfg.Width, w.cfg.Height)
				w.gen.Generate(grid, pos.X, pos.Z, w.overlay)
				out[idx] = ChunkDigest{Pos: pos, Digest: grid.Digest()}
			})
		}
	}
	pool.StopAndWait()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Pos.X != out[j].Pos.X {
			return out[i].Pos.X < out[j].Pos.X
		}
		return out[i].Pos.Z < out[j].Pos.Z
	})
	w.log.Debug("region digested", "center", center, "radius", radius, "chunks", len(out), "workers", workers)
	return out
}

// CombineDigests folds ordered chunk digests into one region digest.
func CombineDigests(ds []ChunkDigest) uint64 {
	h := xxhash.New()
	var buf [24]byte
	for _, d := range ds {
		binary.LittleEndian.PutUint64(buf[0:], uint64(int64(d.Pos.X)))
		binary.LittleEndian.PutUint64(buf[8:], uint64(int64(d.Pos.Z)))
		binary.LittleEndian.PutUint64(buf[16:], d.Digest)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
