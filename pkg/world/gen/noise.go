package gen

import (
	"fmt"

	"github.com/ojrac/opensimplex-go"
)

// Field is a coherent noise source. Values lie roughly in [-1, 1].
type Field interface {
	Noise2D(x, y float64) float64
	Noise3D(x, y, z float64) float64
}

// Algorithm selects the noise implementation backing a generator.
type Algorithm string

const (
	AlgorithmSimplex     Algorithm = "simplex"
	AlgorithmOpenSimplex Algorithm = "opensimplex"
)

// ParseAlgorithm maps a configuration value to an Algorithm. The empty string
// selects the default simplex implementation.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case "", AlgorithmSimplex:
		return AlgorithmSimplex, nil
	case AlgorithmOpenSimplex:
		return AlgorithmOpenSimplex, nil
	default:
		return "", fmt.Errorf("unknown noise algorithm %q", s)
	}
}

// grad3 are gradient vectors for 3D simplex noise.
var grad3 = [12][3]float64{
	{1, 1, 0},
	{-1, 1, 0},
	{1, -1, 0},
	{-1, -1, 0},
	{1, 0, 1},
	{-1, 0, 1},
	{1, 0, -1},
	{-1, 0, -1},
	{0, 1, 1},
	{0, -1, 1},
	{0, 1, -1},
	{0, -1, -1},
}

// Simplex is Perlin's simplex noise over a permutation table shuffled by an RNG.
type Simplex struct {
	perm [512]int
}

// NewSimplex consumes 255 values from r to build the permutation table.
func NewSimplex(r *RNG) *Simplex {
	s := &Simplex{}

	var p [256]int
	for i := range p {
		p[i] = i
	}
	for i := 255; i > 0; i-- {
		j := int(r.Next() * float64(i+1))
		p[i], p[j] = p[j], p[i]
	}

	// Double the table so lookups can wrap without masking.
	for i := 0; i < 512; i++ {
		s.perm[i] = p[i&255]
	}
	return s
}

// Noise2D returns 2D simplex noise in [-1, 1].
func (s *Simplex) Noise2D(x, y float64) float64 {
	const (
		f2 = 0.36602540378443864676 // (sqrt(3) - 1) / 2
		g2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	)

	sk := (x + y) * f2
	i := fastFloor(x + sk)
	j := fastFloor(y + sk)

	t := float64(i+j) * g2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	var i1, j1 int
	if x0 > y0 {
		i1 = 1
	} else {
		j1 = 1
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1.0 + 2.0*g2
	y2 := y0 - 1.0 + 2.0*g2

	ii := i & 255
	jj := j & 255
	gi0 := s.perm[ii+s.perm[jj]] % 12
	gi1 := s.perm[ii+i1+s.perm[jj+j1]] % 12
	gi2 := s.perm[ii+1+s.perm[jj+1]] % 12

	n0 := corner2(0.5-x0*x0-y0*y0, gi0, x0, y0)
	n1 := corner2(0.5-x1*x1-y1*y1, gi1, x1, y1)
	n2 := corner2(0.5-x2*x2-y2*y2, gi2, x2, y2)

	return 70.0 * (n0 + n1 + n2)
}

// Noise3D returns 3D simplex noise in [-1, 1].
func (s *Simplex) Noise3D(x, y, z float64) float64 {
	const (
		f3 = 1.0 / 3.0
		g3 = 1.0 / 6.0
	)

	sk := (x + y + z) * f3
	i := fastFloor(x + sk)
	j := fastFloor(y + sk)
	k := fastFloor(z + sk)

	t := float64(i+j+k) * g3
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)
	z0 := z - (float64(k) - t)

	var i1, j1, k1, i2, j2, k2 int
	switch {
	case x0 >= y0 && y0 >= z0:
		i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
	case x0 >= y0 && x0 >= z0:
		i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
	case x0 >= y0:
		i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
	case y0 < z0:
		i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
	case x0 < z0:
		i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
	default:
		i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
	}

	x1 := x0 - float64(i1) + g3
	y1 := y0 - float64(j1) + g3
	z1 := z0 - float64(k1) + g3
	x2 := x0 - float64(i2) + 2.0*g3
	y2 := y0 - float64(j2) + 2.0*g3
	z2 := z0 - float64(k2) + 2.0*g3
	x3 := x0 - 1.0 + 3.0*g3
	y3 := y0 - 1.0 + 3.0*g3
	z3 := z0 - 1.0 + 3.0*g3

	ii := i & 255
	jj := j & 255
	kk := k & 255
	gi0 := s.perm[ii+s.perm[jj+s.perm[kk]]] % 12
	gi1 := s.perm[ii+i1+s.perm[jj+j1+s.perm[kk+k1]]] % 12
	gi2 := s.perm[ii+i2+s.perm[jj+j2+s.perm[kk+k2]]] % 12
	gi3 := s.perm[ii+1+s.perm[jj+1+s.perm[kk+1]]] % 12

	n0 := corner3(0.6-x0*x0-y0*y0-z0*z0, gi0, x0, y0, z0)
	n1 := corner3(0.6-x1*x1-y1*y1-z1*z1, gi1, x1, y1, z1)
	n2 := corner3(0.6-x2*x2-y2*y2-z2*z2, gi2, x2, y2, z2)
	n3 := corner3(0.6-x3*x3-y3*y3-z3*z3, gi3, x3, y3, z3)

	return 32.0 * (n0 + n1 + n2 + n3)
}

func corner2(t float64, gi int, x, y float64) float64 {
	if t < 0 {
		return 0
	}
	t *= t
	g := grad3[gi]
	return t * t * (g[0]*x + g[1]*y)
}

func corner3(t float64, gi int, x, y, z float64) float64 {
	if t < 0 {
		return 0
	}
	t *= t
	g := grad3[gi]
	return t * t * (g[0]*x + g[1]*y + g[2]*z)
}

func fastFloor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}

// OpenSimplex adapts github.com/ojrac/opensimplex-go to Field.
type OpenSimplex struct {
	n opensimplex.Noise
}

// NewOpenSimplex returns an OpenSimplex field. The library's normalized
// variant maps to [0, 1]; values are rescaled to [-1, 1].
func NewOpenSimplex(seed int64) *OpenSimplex {
	return &OpenSimplex{n: opensimplex.NewNormalized(seed)}
}

func (o *OpenSimplex) Noise2D(x, y float64) float64 {
	return o.n.Eval2(x, y)*2 - 1
}

func (o *OpenSimplex) Noise3D(x, y, z float64) float64 {
	return o.n.Eval3(x, y, z)*2 - 1
}
