package gen

import "math"

// RNG is a multiply-with-carry generator over two 32-bit words.
// Equal seeds always yield equal sequences, on every platform.
type RNG struct {
	w, z int32
}

// NewRNG seeds a generator. Only the low 32 bits of seed are significant.
func NewRNG(seed int64) *RNG {
	s := int32(seed)
	return &RNG{
		w: 123456789 + s,
		z: 987654321 - s,
	}
}

// Next returns the next value in [0, 1).
func (r *RNG) Next() float64 {
	r.z = int32(36969*(r.z&0xffff) + (r.z >> 16))
	r.w = int32(18000*(r.w&0xffff) + (r.w >> 16))
	out := uint32(r.z)<<16 + uint32(r.w)&0xffff
	return float64(out) / 4294967296
}

// Range returns round(lerp(lo, hi, Next())).
func (r *RNG) Range(lo, hi int) int {
	return int(math.Round(Lerp(float64(lo), float64(hi), r.Next())))
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ChunkSeed mixes the world seed with chunk coordinates so every chunk gets
// its own vegetation sequence.
func ChunkSeed(seed int64, cx, cz int) int64 {
	return seed ^ (int64(cx)*341873128712 + int64(cz)*132897987541)
}
