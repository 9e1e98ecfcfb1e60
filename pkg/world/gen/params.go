package gen

import (
	"errors"
	"fmt"
)

// Params are the world generation parameters. They are immutable while a
// chunk is being generated.
type Params struct {
	Seed    int64         `json:"seed" yaml:"seed" toml:"seed"`
	Terrain TerrainParams `json:"terrain" yaml:"terrain" toml:"terrain"`
	Biomes  BiomeParams   `json:"biomes" yaml:"biomes" toml:"biomes"`
	Trees   TreeParams    `json:"trees" yaml:"trees" toml:"trees"`
	Clouds  CloudParams   `json:"clouds" yaml:"clouds" toml:"clouds"`
}

type TerrainParams struct {
	Scale       float64 `json:"scale" yaml:"scale" toml:"scale"`
	Magnitude   float64 `json:"magnitude" yaml:"magnitude" toml:"magnitude"`
	Offset      float64 `json:"offset" yaml:"offset" toml:"offset"`
	WaterOffset int     `json:"waterOffset" yaml:"waterOffset" toml:"waterOffset"`
}

type BiomeParams struct {
	Scale             float64         `json:"scale" yaml:"scale" toml:"scale"`
	Variation         VariationParams `json:"variation" yaml:"variation" toml:"variation"`
	TundraToTemperate float64         `json:"tundraToTemperate" yaml:"tundraToTemperate" toml:"tundraToTemperate"`
	TemperateToJungle float64         `json:"temperateToJungle" yaml:"temperateToJungle" toml:"temperateToJungle"`
	JungleToDesert    float64         `json:"jungleToDesert" yaml:"jungleToDesert" toml:"jungleToDesert"`
}

type VariationParams struct {
	Amplitude float64 `json:"amplitude" yaml:"amplitude" toml:"amplitude"`
	Scale     float64 `json:"scale" yaml:"scale" toml:"scale"`
}

type TreeParams struct {
	Frequency float64      `json:"frequency" yaml:"frequency" toml:"frequency"`
	Trunk     TrunkParams  `json:"trunk" yaml:"trunk" toml:"trunk"`
	Canopy    CanopyParams `json:"canopy" yaml:"canopy" toml:"canopy"`
}

type TrunkParams struct {
	MinHeight int `json:"minHeight" yaml:"minHeight" toml:"minHeight"`
	MaxHeight int `json:"maxHeight" yaml:"maxHeight" toml:"maxHeight"`
}

type CanopyParams struct {
	MinRadius int     `json:"minRadius" yaml:"minRadius" toml:"minRadius"`
	MaxRadius int     `json:"maxRadius" yaml:"maxRadius" toml:"maxRadius"`
	Density   float64 `json:"density" yaml:"density" toml:"density"`
}

type CloudParams struct {
	Scale   float64 `json:"scale" yaml:"scale" toml:"scale"`
	Density float64 `json:"density" yaml:"density" toml:"density"`
}

// DefaultParams returns the stock world parameters.
func DefaultParams() Params {
	return Params{
		Seed: 0,
		Terrain: TerrainParams{
			Scale:       80,
			Magnitude:   10,
			Offset:      5,
			WaterOffset: 3,
		},
		Biomes: BiomeParams{
			Scale: 200,
			Variation: VariationParams{
				Amplitude: 0.2,
				Scale:     50,
			},
			TundraToTemperate: 0.1,
			TemperateToJungle: 0.5,
			JungleToDesert:    0.9,
		},
		Trees: TreeParams{
			Frequency: 0.01,
			Trunk:     TrunkParams{MinHeight: 5, MaxHeight: 7},
			Canopy:    CanopyParams{MinRadius: 2, MaxRadius: 3, Density: 0.5},
		},
		Clouds: CloudParams{
			Scale:   20,
			Density: 0,
		},
	}
}

// Validate rejects parameter sets that generation is not defined for.
// All problems are reported together.
func (p Params) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	unit := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0,1], got %v", name, v))
		}
	}
	span := func(name string, lo, hi int) {
		if lo < 0 || lo > hi {
			errs = append(errs, fmt.Errorf("%s range [%d,%d] is invalid", name, lo, hi))
		}
	}

	positive("terrain.scale", p.Terrain.Scale)
	if p.Terrain.Magnitude < 0 {
		errs = append(errs, fmt.Errorf("terrain.magnitude must not be negative, got %v", p.Terrain.Magnitude))
	}
	positive("biomes.scale", p.Biomes.Scale)
	positive("biomes.variation.scale", p.Biomes.Variation.Scale)
	if p.Biomes.Variation.Amplitude < 0 {
		errs = append(errs, fmt.Errorf("biomes.variation.amplitude must not be negative, got %v", p.Biomes.Variation.Amplitude))
	}
	b := p.Biomes
	if !(b.TundraToTemperate < b.TemperateToJungle && b.TemperateToJungle < b.JungleToDesert) {
		errs = append(errs, fmt.Errorf("biome thresholds must ascend, got %v, %v, %v",
			b.TundraToTemperate, b.TemperateToJungle, b.JungleToDesert))
	}
	unit("trees.frequency", p.Trees.Frequency)
	span("trees.trunk", p.Trees.Trunk.MinHeight, p.Trees.Trunk.MaxHeight)
	span("trees.canopy", p.Trees.Canopy.MinRadius, p.Trees.Canopy.MaxRadius)
	unit("trees.canopy.density", p.Trees.Canopy.Density)
	positive("clouds.scale", p.Clouds.Scale)
	unit("clouds.density", p.Clouds.Density)

	return errors.Join(errs...)
}
