package world

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/takinashida/voxelcore/internal/physics"
)

const (
	bulletGravity     = 0.002
	bulletSpeed       = 0.2
	bulletDamage      = 34.0
	bulletMaxDistance = 100.0
	bulletMuzzleGap   = 0.5 // вылет смещён от origin вдоль направления
)

// Bullet — снаряд с баллистической траекторией. Живёт до попадания
// в блок, в моба или до исчерпания дальности полёта.
type Bullet struct {
	Position    mgl64.Vec3
	Velocity    mgl64.Vec3
	Damage      float64
	MaxDistance float64
	Traveled    float64
}

// SpawnBullet выпускает пулю из точки origin в направлении direction.
// Нулевое направление игнорируется.
func (w *World) SpawnBullet(origin, direction mgl64.Vec3) {
	if direction.Dot(direction) <= 0 {
		return
	}
	dir := direction.Normalize()
	w.bullets = append(w.bullets, Bullet{
		Position:    origin.Add(dir.Mul(bulletMuzzleGap)),
		Velocity:    dir.Mul(bulletSpeed),
		Damage:      bulletDamage,
		MaxDistance: bulletMaxDistance,
	})
}

// UpdateBullets продвигает пули на один тик: гравитация, интеграция позиции,
// проверка попадания в блок, затем в мобов. Пуля снимается при любом
// попадании или при исчерпании дальности. Мобы, чьё здоровье упало до нуля,
// убираются из симуляции в этом же вызове. Возвращает true, если результат
// тика виден снаружи (урон мобу или смерть моба).
func (w *World) UpdateBullets() bool {
	worldChanged := false

	kept := w.bullets[:0]
	for _, b := range w.bullets {
		prev := b.Position
		b.Velocity[1] -= bulletGravity
		b.Position = b.Position.Add(b.Velocity)
		b.Traveled += b.Velocity.Len()

		cell := physics.Cell(b.Position)
		if w.chunk.GetBlock(cell.X, cell.Y, cell.Z).IsSolid() {
			// Пуля застряла в блоке: урона нет, геометрия не менялась.
			continue
		}

		hit := false
		for i := range w.mobs {
			mob := &w.mobs[i]
			if !physics.SegmentHitsCylinder(prev, b.Position, mob.Position, mob.Radius, mob.Height) {
				continue
			}
			mob.Health -= b.Damage
			hit = true
			worldChanged = true
			w.burstParticles(b.Position, 10, [3]float32{1.0, 0.2, 0.2}, 0.12, 30, 0.18)
			if mob.Health <= 0 {
				w.burstParticles(mob.Position, 26, [3]float32{1.0, 0.55, 0.15}, 0.22, 55, 0.28)
			}
			break
		}

		if hit || b.Traveled >= b.MaxDistance {
			continue
		}
		kept = append(kept, b)
	}
	w.bullets = kept

	liveMobs := w.mobs[:0]
	for _, m := range w.mobs {
		if m.Health > 0 {
			liveMobs = append(liveMobs, m)
			continue
		}
		w.emitMobDied(m)
		worldChanged = true
	}
	w.mobs = liveMobs

	return worldChanged
}
