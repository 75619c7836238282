package world

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/takinashida/voxelcore/internal/physics"
)

const (
	explosiveGravity   = 0.004
	explosiveSpeed     = 0.34
	explosiveLift      = 0.14 // стартовый подброс вверх
	explosiveThrowGap  = 0.8
	explosiveFuseTicks = 120.0
	explosiveRadius    = 30.0
)

// Explosive — брошенный снаряд с таймером. Детонирует при контакте
// с блоком или по истечении таймера.
type Explosive struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Timer    float64
	Radius   float64
}

// SpawnExplosive бросает взрывчатку из точки origin в направлении direction.
// Нулевое направление игнорируется.
func (w *World) SpawnExplosive(origin, direction mgl64.Vec3) {
	if direction.Dot(direction) <= 0 {
		return
	}
	dir := direction.Normalize()
	w.explosives = append(w.explosives, Explosive{
		Position: origin.Add(dir.Mul(explosiveThrowGap)),
		Velocity: dir.Mul(explosiveSpeed).Add(mgl64.Vec3{0, explosiveLift, 0}),
		Timer:    explosiveFuseTicks,
		Radius:   explosiveRadius,
	})
}

// UpdateExplosives продвигает взрывчатку на один тик и детонирует её
// при контакте с блоком или по истечении таймера. Возвращает true,
// если детонация изменила геометрию.
func (w *World) UpdateExplosives() bool {
	worldChanged := false
	kept := w.explosives[:0]
	for _, e := range w.explosives {
		e.Velocity[1] -= explosiveGravity
		e.Position = e.Position.Add(e.Velocity)
		e.Timer--

		cell := physics.Cell(e.Position)
		if w.chunk.GetBlock(cell.X, cell.Y, cell.Z).IsSolid() || e.Timer <= 0 {
			if w.ExplodeAt(e.Position, e.Radius) {
				worldChanged = true
			}
			continue
		}
		kept = append(kept, e)
	}
	w.explosives = kept
	return worldChanged
}

// ExplodeAt очищает все непустые клетки, центры которых лежат в радиусе
// radius от center, и всегда испускает огненную вспышку из 45 частиц.
// Возвращает true, если хотя бы одна клетка изменилась.
func (w *World) ExplodeAt(center mgl64.Vec3, radius float64) bool {
	changed := physics.Explode(w.chunk, center, radius)
	w.burstParticles(center, 45, [3]float32{1.0, 0.6, 0.2}, 0.36, 70, 0.34)
	w.emitExplosion(center, radius, changed)
	return changed
}
