package block

// Каталог блоков регистрируется при импорте пакета.
func init() {
	Register(Air, Properties{Name: "Air", Passable: true})

	// Почвенные блоки
	Register(Grass, Properties{Name: "Grass", Color: [3]float32{0.33, 0.63, 0.22}})
	Register(Dirt, Properties{Name: "Dirt", Color: [3]float32{0.45, 0.32, 0.20}})
	Register(Sand, Properties{Name: "Sand", Color: [3]float32{0.86, 0.80, 0.55}})
	Register(Gravel, Properties{Name: "Gravel", Color: [3]float32{0.52, 0.50, 0.48}})
	Register(SwampGrass, Properties{Name: "SwampGrass", Color: [3]float32{0.28, 0.42, 0.20}})
	Register(SnowGrass, Properties{Name: "SnowGrass", Color: [3]float32{0.78, 0.82, 0.80}})

	// Каменные блоки
	Register(Stone, Properties{Name: "Stone", Color: [3]float32{0.50, 0.50, 0.52}})
	Register(Cobblestone, Properties{Name: "Cobblestone", Color: [3]float32{0.42, 0.42, 0.44}})
	Register(Sandstone, Properties{Name: "Sandstone", Color: [3]float32{0.78, 0.70, 0.48}})
	Register(Bedrock, Properties{Name: "Bedrock", Color: [3]float32{0.15, 0.15, 0.17}})

	// Руды
	Register(CoalOre, Properties{Name: "CoalOre", Color: [3]float32{0.28, 0.28, 0.30}})
	Register(IronOre, Properties{Name: "IronOre", Color: [3]float32{0.62, 0.52, 0.45}})
	Register(GoldOre, Properties{Name: "GoldOre", Color: [3]float32{0.72, 0.62, 0.25}})
	Register(DiamondOre, Properties{Name: "DiamondOre", Color: [3]float32{0.40, 0.72, 0.78}})

	// Древесина и растения
	Register(OakLog, Properties{Name: "OakLog", Color: [3]float32{0.40, 0.28, 0.15}})
	Register(OakLeaves, Properties{Name: "OakLeaves", Color: [3]float32{0.22, 0.48, 0.15}})
	Register(OakPlanks, Properties{Name: "OakPlanks", Color: [3]float32{0.62, 0.48, 0.28}})
	Register(Cactus, Properties{Name: "Cactus", Color: [3]float32{0.22, 0.52, 0.25}})

	// Строительные блоки
	Register(Glass, Properties{Name: "Glass", Color: [3]float32{0.75, 0.85, 0.90}})
	Register(Brick, Properties{Name: "Brick", Color: [3]float32{0.62, 0.30, 0.24}})
	Register(RoofTile, Properties{Name: "RoofTile", Color: [3]float32{0.55, 0.22, 0.18}})

	// Покровные блоки
	Register(Snow, Properties{Name: "Snow", Color: [3]float32{0.92, 0.94, 0.96}})
	Register(Ice, Properties{Name: "Ice", Color: [3]float32{0.62, 0.78, 0.92}})

	// Жидкости
	Register(Water, Properties{Name: "Water", Color: [3]float32{0.20, 0.38, 0.70}, Liquid: true})

	// Специальные блоки
	Register(Target, Properties{Name: "Target", Color: [3]float32{0.85, 0.12, 0.12}})
}
