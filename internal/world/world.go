package world

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/takinashida/voxelcore/internal/eventbus"
	"github.com/takinashida/voxelcore/internal/logging"
	"github.com/takinashida/voxelcore/internal/metrics"
	"github.com/takinashida/voxelcore/internal/physics"
	"github.com/takinashida/voxelcore/internal/vec"
	"github.com/takinashida/voxelcore/internal/world/block"
)

// Размеры мира по умолчанию.
const (
	DefaultWidth  = 320
	DefaultHeight = 96
	DefaultDepth  = 320
)

// Шаги лучевых операций.
const (
	rayStepInteract = 0.05 // ломание и установка блоков
	rayStepTarget   = 0.1  // проверка попадания в мишень
)

// Стартовое население: доли протяжённости мира по X и Z.
var initialMobSpots = [][2]float64{
	{0.50, 0.44},
	{0.66, 0.63},
	{0.88, 0.81},
}

// Params задаёт параметры создания мира.
type Params struct {
	Seed          int64
	Origin        vec.Vec3 // Мировые координаты ячейки (0, 0, 0)
	Width         int
	Height        int
	Depth         int
	MaxMobs       int // Потолок населения мобов
	SpawnInterval int // Тиков между попытками спавна мобов
}

// DefaultParams возвращает параметры мира по умолчанию с указанным сидом.
func DefaultParams(seed int64) Params {
	return Params{
		Seed:          seed,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Depth:         DefaultDepth,
		MaxMobs:       DefaultMaxMobs,
		SpawnInterval: DefaultSpawnIntervalTicks,
	}
}

// World владеет воксельным объёмом и всеми подвижными сущностями и
// предоставляет тиковый API внешнему циклу кадров: заспавнить, сломать,
// поставить, продвинуть симуляцию на тик, опросить изменения.
//
// Все операции, кроме генерации, выполняются последовательно, один раз
// за тик; мир не защищён мьютексом и требует одного вызывающего потока.
type World struct {
	chunk       *Chunk
	generator   *Generator
	genDuration time.Duration

	bullets    []Bullet
	explosives []Explosive
	particles  []Particle
	mobs       []Mob

	spawnTimer    float64
	spawnInterval float64
	maxMobs       int
	nextMobID     uint64
	currentTick   uint64

	bus     eventbus.EventBus     // Опциональная шина событий
	metrics *metrics.WorldMetrics // Опциональные Prometheus-метрики
}

// New генерирует мир с нуля и заселяет стартовых мобов.
func New(p Params) *World {
	if p.Width <= 0 || p.Height <= 0 || p.Depth <= 0 {
		p.Width, p.Height, p.Depth = DefaultWidth, DefaultHeight, DefaultDepth
	}
	if p.MaxMobs <= 0 {
		p.MaxMobs = DefaultMaxMobs
	}
	if p.SpawnInterval <= 0 {
		p.SpawnInterval = DefaultSpawnIntervalTicks
	}

	gen := NewGenerator(p.Seed, p.Origin, p.Width, p.Height, p.Depth)

	started := time.Now()
	chunk := gen.Generate()
	genDuration := time.Since(started)
	logging.Info("🌍 Мир %d×%d×%d сгенерирован за %s (сид %d)",
		p.Width, p.Height, p.Depth, genDuration.Round(time.Millisecond), p.Seed)

	w := &World{
		chunk:         chunk,
		generator:     gen,
		genDuration:   genDuration,
		spawnInterval: float64(p.SpawnInterval),
		maxMobs:       p.MaxMobs,
	}

	for _, spot := range initialMobSpots {
		x := float64(p.Origin.X) + float64(p.Width)*spot[0] + 0.5
		z := float64(p.Origin.Z) + float64(p.Depth)*spot[1] + 0.5
		w.SpawnMobAt(x, z)
	}

	return w
}

// SetEventBus подключает шину событий. Мир работоспособен и без неё.
func (w *World) SetEventBus(bus eventbus.EventBus) {
	w.bus = bus
}

// SetMetrics подключает Prometheus-метрики мира.
func (w *World) SetMetrics(m *metrics.WorldMetrics) {
	w.metrics = m
	if m != nil && w.genDuration > 0 {
		m.GenerationSeconds.Set(w.genDuration.Seconds())
	}
}

// Chunk возвращает воксельный объём мира.
func (w *World) Chunk() *Chunk {
	return w.chunk
}

// Generator возвращает генератор ландшафта (биомы, высоты, мишень).
func (w *World) Generator() *Generator {
	return w.generator
}

// GetBlock возвращает блок в мировых координатах. Чтение тотально:
// за пределами массива отвечает процедурный fallback.
func (w *World) GetBlock(x, y, z int) block.ID {
	return w.chunk.GetBlock(x, y, z)
}

// Bullets возвращает живые пули. Срезом владеет мир: он валиден только
// до следующего тика и предназначен для построения draw-list.
func (w *World) Bullets() []Bullet {
	return w.bullets
}

// Explosives возвращает живую взрывчатку (см. Bullets про владение).
func (w *World) Explosives() []Explosive {
	return w.explosives
}

// Particles возвращает живые частицы (см. Bullets про владение).
func (w *World) Particles() []Particle {
	return w.particles
}

// Mobs возвращает живых мобов (см. Bullets про владение).
func (w *World) Mobs() []Mob {
	return w.mobs
}

// CurrentTick возвращает номер последнего завершённого тика.
func (w *World) CurrentTick() uint64 {
	return w.currentTick
}

// HasDirtyRegions сообщает, накопились ли изменённые регионы.
func (w *World) HasDirtyRegions() bool {
	return w.chunk.HasDirtyRegions()
}

// TakeDirtyRegions забирает и сбрасывает перечень изменённых регионов
// для инкрементального ремеша.
func (w *World) TakeDirtyRegions() []vec.Vec3 {
	regions := w.chunk.TakeDirtyRegions()
	if w.metrics != nil && len(regions) > 0 {
		w.metrics.RegionsDrained.Add(float64(len(regions)))
	}
	return regions
}

// HighestSolidBelow сканирует колонку (x, z) вниз от maxY и возвращает
// высоту опоры — y на единицу выше первой непустой клетки.
func (w *World) HighestSolidBelow(x, z, maxY float64) (float64, bool) {
	y, ok := w.chunk.HighestSolidBelow(int(math.Floor(x)), int(math.Floor(z)), int(math.Floor(maxY)))
	if !ok {
		return 0, false
	}
	return float64(y), true
}

// BreakBlock очищает клетку по мировым координатам.
// Возвращает true, если клетка изменилась.
func (w *World) BreakBlock(x, y, z int) bool {
	old := w.chunk.GetBlock(x, y, z)
	if !w.chunk.SetBlock(x, y, z, block.Air) {
		return false
	}
	w.emitBlockBroken(vec.V3(x, y, z), old)
	return true
}

// PlaceBlock ставит блок по мировым координатам.
// Возвращает true, если клетка изменилась.
func (w *World) PlaceBlock(x, y, z int, id block.ID) bool {
	if !w.chunk.SetBlock(x, y, z, id) {
		return false
	}
	w.emitBlockPlaced(vec.V3(x, y, z), id)
	return true
}

// BreakBlockFromRay ломает первый непустой блок вдоль луча и поднимает
// облачко пыли на месте разлома. Блок за пределами массива сломать
// нельзя: луч, упёршийся в fallback-ландшафт, возвращает false.
func (w *World) BreakBlockFromRay(origin, direction mgl64.Vec3, maxDistance float64) bool {
	cell, ok := physics.Raycast(w.chunk, origin, direction, maxDistance, rayStepInteract)
	if !ok {
		return false
	}
	if !w.BreakBlock(cell.X, cell.Y, cell.Z) {
		return false
	}
	center := mgl64.Vec3{float64(cell.X) + 0.5, float64(cell.Y) + 0.5, float64(cell.Z) + 0.5}
	w.burstParticles(center, 12, [3]float32{0.8, 0.75, 0.65}, 0.1, 25, 0.12)
	return true
}

// PlaceBlockFromRay ставит блок в последнюю пустую клетку перед первым
// непустым вдоль луча. Если перед первым непустым блоком пустой клетки
// не было (луч начался внутри стены), установка не происходит.
func (w *World) PlaceBlockFromRay(origin, direction mgl64.Vec3, maxDistance float64, id block.ID) bool {
	if id.IsAir() {
		return false
	}
	if direction.Dot(direction) <= 0 {
		return false
	}
	dir := direction.Normalize()

	var lastAir vec.Vec3
	haveAir := false
	for distance := 0.0; distance <= maxDistance; distance += rayStepInteract {
		cell := physics.Cell(origin.Add(dir.Mul(distance)))
		if w.chunk.GetBlock(cell.X, cell.Y, cell.Z).IsAir() {
			lastAir = cell
			haveAir = true
			continue
		}
		if !haveAir {
			return false
		}
		return w.PlaceBlock(lastAir.X, lastAir.Y, lastAir.Z, id)
	}
	return false
}

// CheckTargetHit проверяет попадание луча в блок-мишень: выстрел
// засчитывается, только если первый непустой блок вдоль луча — мишень.
// Возвращает координаты мишени при попадании.
func (w *World) CheckTargetHit(origin, direction mgl64.Vec3, maxDistance float64) (vec.Vec3, bool) {
	cell, ok := physics.RaycastFilter(w.chunk, origin, direction, maxDistance, rayStepTarget, func(id block.ID) bool {
		return id == block.Target
	})
	if !ok {
		return vec.Vec3{}, false
	}
	w.emitTargetHit(cell)
	return cell, true
}

// TickResult агрегирует результат одного тика симуляции.
type TickResult struct {
	WorldChanged bool    // Геометрия или население изменились — нужен ремеш
	PlayerDamage float64 // Суммарный урон игроку за тик
}

// Step продвигает симуляцию на один тик в фиксированном порядке:
// пули, взрывчатка, частицы, мобы.
func (w *World) Step(player mgl64.Vec3) TickResult {
	started := time.Now()

	var res TickResult
	if w.UpdateBullets() {
		res.WorldChanged = true
	}
	if w.UpdateExplosives() {
		res.WorldChanged = true
	}
	w.UpdateParticles()
	mobsChanged, damage := w.UpdateMobs(player)
	if mobsChanged {
		res.WorldChanged = true
	}
	res.PlayerDamage = damage

	w.currentTick++

	if w.metrics != nil {
		w.metrics.Ticks.Inc()
		w.metrics.TickDuration.Observe(time.Since(started).Seconds())
		w.metrics.Bullets.Set(float64(len(w.bullets)))
		w.metrics.Explosives.Set(float64(len(w.explosives)))
		w.metrics.Particles.Set(float64(len(w.particles)))
		w.metrics.Mobs.Set(float64(len(w.mobs)))
	}

	return res
}
