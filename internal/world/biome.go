package world

// Biome представляет климатическую классификацию колонны мира.
// Биом не хранит состояния и вычисляется по полям тепла и влажности
// по требованию.
type Biome int

const (
	BiomePlains Biome = iota
	BiomeForest
	BiomeDesert
	BiomeSnow
	BiomeMountains
	BiomeSwamp
)

// String возвращает читаемое имя биома.
func (b Biome) String() string {
	switch b {
	case BiomePlains:
		return "Plains"
	case BiomeForest:
		return "Forest"
	case BiomeDesert:
		return "Desert"
	case BiomeSnow:
		return "Snow"
	case BiomeMountains:
		return "Mountains"
	case BiomeSwamp:
		return "Swamp"
	default:
		return "Unknown"
	}
}

// classifyBiome определяет биом по значениям тепла и влажности,
// нормированным в диапазон от 0 до 1. Холодные и сухие области дают
// горы, холодные влажные — снег, жаркие сухие — пустыню, жаркие
// влажные — болото; умеренный пояс делится между равнинами и лесом.
func classifyBiome(heat, moisture float64) Biome {
	switch {
	case heat < 0.35:
		if moisture < 0.35 {
			return BiomeMountains
		}
		return BiomeSnow
	case heat > 0.65:
		if moisture < 0.40 {
			return BiomeDesert
		}
		if moisture > 0.70 {
			return BiomeSwamp
		}
		return BiomePlains
	default:
		if moisture > 0.60 {
			return BiomeForest
		}
		if moisture < 0.25 {
			return BiomeMountains
		}
		return BiomePlains
	}
}
