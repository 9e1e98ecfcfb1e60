package gen

// Biome is a climate band, ordered coldest to warmest.
type Biome uint8

const (
	BiomeTundra Biome = iota
	BiomeTemperate
	BiomeJungle
	BiomeDesert
)

func (b Biome) String() string {
	switch b {
	case BiomeTundra:
		return "tundra"
	case BiomeTemperate:
		return "temperate"
	case BiomeJungle:
		return "jungle"
	case BiomeDesert:
		return "desert"
	default:
		return "unknown"
	}
}

// biomeValue samples the climate noise at world column (x, z). The base
// sample is normalized to [0,1] before the variation is added on top.
func (g *Generator) biomeValue(x, z int) float64 {
	b := g.params.Biomes
	fx, fz := float64(x), float64(z)
	n := 0.5*g.terrain.Noise2D(fx/b.Scale, fz/b.Scale) + 0.5
	n += b.Variation.Amplitude * g.terrain.Noise2D(fx/b.Variation.Scale, fz/b.Variation.Scale)
	return n
}

// Biome classifies world column (x, z).
func (g *Generator) Biome(x, z int) Biome {
	return classifyBiome(g.biomeValue(x, z), g.params.Biomes)
}

func classifyBiome(n float64, b BiomeParams) Biome {
	switch {
	case n < b.TundraToTemperate:
		return BiomeTundra
	case n < b.TemperateToJungle:
		return BiomeTemperate
	case n < b.JungleToDesert:
		return BiomeJungle
	default:
		return BiomeDesert
	}
}
