package world

import (
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/aquilax/go-perlin"

	"github.com/takinashida/voxelcore/internal/vec"
	"github.com/takinashida/voxelcore/internal/world/block"
)

// Константы профиля поверхности.
const (
	surfaceMarginBottom = 8  // Минимальная высота поверхности над основанием мира
	surfaceMarginTop    = 24 // Резерв до потолка мира под постройки и кроны деревьев
)

// Generator генерирует ландшафт мира: профиль поверхности, биомы,
// материалы по глубине и дискретные структуры. Все решения
// детерминированы сидом и мировыми координатами, поэтому генератор
// одновременно служит процедурным fallback для чтений за пределами
// массива чанка.
type Generator struct {
	Seed int64 // Сид всех полей шума

	SeaLevel     int     // Мировая высота уровня моря
	SnowLine     int     // Высота, с которой горные вершины покрыты снегом
	HeightScale  float64 // Масштаб низкочастотного рельефа
	DetailScale  float64 // Масштаб высокочастотных деталей рельефа
	ClimateScale float64 // Масштаб полей тепла и влажности

	origin vec.Vec3 // Мировые координаты ячейки (0, 0, 0)
	width  int      // Протяженность мира по X
	height int      // Вертикальная протяженность мира
	depth  int      // Протяженность мира по Z

	heightNoise   *perlin.Perlin // Поле рельефа (сид)
	heatNoise     *perlin.Perlin // Поле тепла (сид + 1)
	moistureNoise *perlin.Perlin // Поле влажности (сид + 2)
}

// NewGenerator создает генератор для объема указанного размера со
// смещением origin. Поля шума Перлина инициализируются производными
// сидами: рельеф — сидом, тепло — сид + 1, влажность — сид + 2.
func NewGenerator(seed int64, origin vec.Vec3, width, height, depth int) *Generator {
	const (
		alpha = 2.0 // Сглаживание шума
		beta  = 2.0 // Частота шума
		n     = 3   // Количество октав
	)
	return &Generator{
		Seed:          seed,
		SeaLevel:      origin.Y + 26,
		SnowLine:      origin.Y + 56,
		HeightScale:   0.012,
		DetailScale:   0.05,
		ClimateScale:  0.004,
		origin:        origin,
		width:         width,
		height:        height,
		depth:         depth,
		heightNoise:   perlin.NewPerlin(alpha, beta, n, seed),
		heatNoise:     perlin.NewPerlin(alpha, beta, n, seed+1),
		moistureNoise: perlin.NewPerlin(alpha, beta, n, seed+2),
	}
}

// sampleNoise возвращает значение шума, нормированное в диапазон от 0 до 1.
func sampleNoise(p *perlin.Perlin, x, y float64) float64 {
	return (p.Noise2D(x, y) + 1.0) / 2.0
}

// ColumnProfile детерминированно вычисляет биом и высоту поверхности
// колонны (wx, wz). Высота складывается из низкочастотного рельефа,
// высокочастотных деталей и тригонометрической ряби, модулируется
// биомом и обрезается до безопасного поддиапазона вертикальной
// протяженности.
func (g *Generator) ColumnProfile(wx, wz int) (Biome, int) {
	fx, fz := float64(wx), float64(wz)

	heat := sampleNoise(g.heatNoise, fx*g.ClimateScale, fz*g.ClimateScale)
	moisture := sampleNoise(g.moistureNoise, fx*g.ClimateScale, fz*g.ClimateScale)
	biome := classifyBiome(heat, moisture)

	base := sampleNoise(g.heightNoise, fx*g.HeightScale, fz*g.HeightScale)
	detail := sampleNoise(g.heightNoise, fx*g.DetailScale, fz*g.DetailScale)
	ripple := math.Sin(fx*0.05) * math.Cos(fz*0.05)

	amp, lift := 16.0, 0.0
	switch biome {
	case BiomeMountains:
		amp, lift = 38.0, 6.0
	case BiomeDesert:
		amp = 12.0
	case BiomeSwamp:
		amp = 10.0
	}

	h := float64(g.origin.Y) + 34.0 + lift + amp*(base*2-1) + 5.0*(detail*2-1) + 2.0*ripple
	if biome == BiomeSwamp {
		// Болота прижаты к уровню моря
		sea := float64(g.SeaLevel)
		h = sea + (h-sea)*0.2
	}

	surface := int(math.Floor(h))
	lo := g.origin.Y + surfaceMarginBottom
	hi := g.origin.Y + g.height - surfaceMarginTop
	if hi < lo {
		hi = lo
	}
	if surface < lo {
		surface = lo
	}
	if surface > hi {
		surface = hi
	}
	return biome, surface
}

// BiomeAt возвращает биом колонны (wx, wz).
func (g *Generator) BiomeAt(wx, wz int) Biome {
	biome, _ := g.ColumnProfile(wx, wz)
	return biome
}

// SurfaceHeight возвращает высоту поверхности колонны (wx, wz).
func (g *Generator) SurfaceHeight(wx, wz int) int {
	_, surface := g.ColumnProfile(wx, wz)
	return surface
}

// BlockAtColumn детерминированно вычисляет базовый блок ячейки
// (wx, wy, wz) без учета структур. Функция тотальна для любых
// координат: выше вертикальной протяженности возвращается пустой
// блок. Именно она подключается как fallback чанка, поэтому массовая
// генерация обязана давать в точности те же ячейки.
func (g *Generator) BlockAtColumn(wx, wy, wz int) block.ID {
	relY := wy - g.origin.Y
	if relY < 0 || relY >= g.height {
		return block.Air
	}
	biome, surface := g.ColumnProfile(wx, wz)
	return g.blockFor(biome, surface, wx, wy, wz)
}

// blockFor возвращает блок ячейки по уже вычисленному профилю колонны.
func (g *Generator) blockFor(biome Biome, surface, wx, wy, wz int) block.ID {
	switch {
	case wy == g.origin.Y:
		// Неразрушаемое основание мира
		return block.Bedrock

	case wy > surface:
		if wy <= g.SeaLevel {
			if biome == BiomeSnow && wy == g.SeaLevel {
				return block.Ice
			}
			return block.Water
		}
		return block.Air

	case wy == surface:
		return g.surfaceBlock(biome, surface)

	case surface-wy <= 3:
		return g.subSurfaceBlock(biome)

	default:
		return g.deepBlock(wx, wy, wz)
	}
}

// surfaceBlock возвращает покровный блок поверхности для биома.
func (g *Generator) surfaceBlock(biome Biome, surface int) block.ID {
	if surface <= g.SeaLevel {
		// Дно водоемов
		if biome == BiomeDesert || biome == BiomePlains {
			return block.Sand
		}
		return block.Gravel
	}
	switch biome {
	case BiomeDesert:
		return block.Sand
	case BiomeSnow:
		return block.SnowGrass
	case BiomeSwamp:
		return block.SwampGrass
	case BiomeMountains:
		if surface >= g.SnowLine {
			return block.Snow
		}
		return block.Stone
	default:
		return block.Grass
	}
}

// subSurfaceBlock возвращает блок неглубокой подповерхностной полосы
// (один-три блока под поверхностью).
func (g *Generator) subSurfaceBlock(biome Biome) block.ID {
	switch biome {
	case BiomeDesert:
		return block.Sandstone
	case BiomeMountains:
		return block.Stone
	default:
		return block.Dirt
	}
}

// deepBlock возвращает блок глубинного слоя: камень с вкраплениями
// руд. Руда выбирается полосами глубины и позиционным хешем, поэтому
// размещение воспроизводимо без хранения состояния.
func (g *Generator) deepBlock(wx, wy, wz int) block.ID {
	roll := hash3(g.Seed, wx, wy, wz) % 1000
	relY := wy - g.origin.Y
	switch {
	case relY <= 12 && roll < 6:
		return block.DiamondOre
	case relY <= 20 && roll >= 10 && roll < 20:
		return block.GoldOre
	case relY <= 34 && roll >= 30 && roll < 60:
		return block.IronOre
	case roll >= 100 && roll < 140:
		return block.CoalOre
	default:
		return block.Stone
	}
}

// fillColumn заполняет буфер колонны (wx, wz) снизу вверх. Профиль
// колонны вычисляется один раз, ячейки — тем же правилом, что и
// BlockAtColumn.
func (g *Generator) fillColumn(buf []block.ID, wx, wz int) {
	biome, surface := g.ColumnProfile(wx, wz)
	for ly := 0; ly < g.height; ly++ {
		buf[ly] = g.blockFor(biome, surface, wx, g.origin.Y+ly, wz)
	}
}

// Generate выполняет полный проход генерации и возвращает готовый
// чанк с подключенным процедурным fallback. Колонны независимы,
// поэтому проход распараллелен: воркеры разбирают индексы колонн из
// общего атомарного счетчика, заполняют персональный буфер и копируют
// его в массив чанка. Никакие две горутины не пишут одну колонну;
// проход полностью завершается до возврата. После базового прохода
// выполняется проход структур.
func (g *Generator) Generate() *Chunk {
	c := NewChunkAt(g.origin, g.width, g.height, g.depth)

	total := g.width * g.depth
	workers := runtime.NumCPU()
	if workers > total {
		workers = total
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]block.ID, g.height)
			for {
				i := int(next.Add(1)) - 1
				if i >= total {
					return
				}
				lx, lz := i/g.depth, i%g.depth
				g.fillColumn(buf, g.origin.X+lx, g.origin.Z+lz)
				start := c.index(lx, 0, lz)
				copy(c.blocks[start:start+g.height], buf)
			}
		}()
	}
	wg.Wait()

	g.placeStructures(c)
	c.SetFallback(g.BlockAtColumn)
	return c
}
