package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const particleGravity = 0.0015 // замедление вертикальной скорости за тик

// Particle — декоративная частица (пыль, искры, дым взрыва).
// С геометрией не сталкивается и живёт фиксированное число тиков.
type Particle struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Life     float64    // оставшиеся тики жизни
	Color    [3]float32 // RGB для отрисовки
	Size     float64
}

// burstParticles испускает count частиц из точки origin веером направлений.
// Углы направлений шагают по золотому (0.618...) и серебряному (0.414...)
// сечениям: распределение равномерное и полностью детерминированное,
// без генератора случайных чисел.
func (w *World) burstParticles(origin mgl64.Vec3, count int, color [3]float32, speed, life, size float64) {
	for i := 0; i < count; i++ {
		a := float64(i) * 0.61803395
		b := float64(i) * 0.41421357
		dir := mgl64.Vec3{
			math.Cos(a) * math.Sin(b),
			math.Abs(math.Cos(b * 1.3)),
			math.Sin(a) * math.Cos(b),
		}.Normalize()
		w.particles = append(w.particles, Particle{
			Position: origin,
			Velocity: dir.Mul(speed),
			Life:     life,
			Color:    color,
			Size:     size,
		})
	}
}

// UpdateParticles продвигает все частицы на один тик и удаляет погасшие.
func (w *World) UpdateParticles() {
	kept := w.particles[:0]
	for _, p := range w.particles {
		p.Velocity[1] -= particleGravity
		p.Position = p.Position.Add(p.Velocity)
		p.Life--
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	w.particles = kept
}
