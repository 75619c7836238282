package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/takinashida/voxelcore/internal/physics"
)

const (
	mobMaxHealth           = 100.0
	mobRadius              = 0.4
	mobHeight              = 1.8
	mobGravity             = 0.003
	mobJumpVelocity        = 0.06
	mobJumpCooldownTicks   = 20.0
	mobAttackDamage        = 8.0
	mobAttackCooldownTicks = 45.0
	mobTouchPad            = 0.35 // добавка к радиусу для дистанции атаки
	mobChaseSpeed          = 0.04
	mobCreepSpeed          = 0.02
	mobCreepRange          = 1.4 // ближе этой дистанции моб замедляется
	mobSpawnHeight         = 2.0 // спавн чуть выше земли, досаживается гравитацией
	mobSpawnMargin         = 2.5 // отступ точек спавна от границ мира

	// Значения по умолчанию, переопределяются через Params.
	DefaultMaxMobs            = 20
	DefaultSpawnIntervalTicks = 120
)

// Mob — враждебное существо с простым ИИ: преследует игрока по горизонтали,
// прыгает, когда упёрся в препятствие, и бьёт в ближнем бою.
// Вертикаль моба — цилиндр: Position лежит в основании, Height — рост.
type Mob struct {
	ID             uint64
	Position       mgl64.Vec3
	Health         float64
	Radius         float64
	Height         float64
	VelocityY      float64
	Grounded       bool
	JumpCooldown   float64
	AttackCooldown float64
}

// SpawnMobAt создаёт моба над точкой (x, z), если население ниже лимита
// и под точкой есть опора в пределах вертикали мира.
func (w *World) SpawnMobAt(x, z float64) bool {
	if len(w.mobs) >= w.maxMobs {
		return false
	}

	_, height, _ := w.chunk.Extents()
	top := float64(w.chunk.Origin().Y + height - 1)
	ground, ok := w.HighestSolidBelow(x, z, top)
	if !ok {
		return false
	}

	w.nextMobID++
	mob := Mob{
		ID:       w.nextMobID,
		Position: mgl64.Vec3{x, ground + mobSpawnHeight, z},
		Health:   mobMaxHealth,
		Radius:   mobRadius,
		Height:   mobHeight,
	}
	w.mobs = append(w.mobs, mob)
	w.emitMobSpawned(mob)
	return true
}

// trySpawnMobNear пробует подселить моба рядом с игроком: перебирает
// несколько смещённых точек и берёт первую, под которой есть опора.
func (w *World) trySpawnMobNear(player mgl64.Vec3) bool {
	if len(w.mobs) >= w.maxMobs {
		return false
	}

	origin := w.chunk.Origin()
	width, height, depth := w.chunk.Extents()
	minX := float64(origin.X) + mobSpawnMargin
	maxX := float64(origin.X+width) - mobSpawnMargin
	minZ := float64(origin.Z) + mobSpawnMargin
	maxZ := float64(origin.Z+depth) - mobSpawnMargin
	top := float64(origin.Y+height) - 1

	candidates := [][2]float64{
		{player[0] + 22.0, player[2]},
		{player[0] - 22.0, player[2]},
		{player[0], player[2] + 22.0},
		{player[0], player[2] - 22.0},
		{player[0] + 16.0, player[2] + 16.0},
	}

	for _, c := range candidates {
		x := clampFloat(c[0], minX, maxX)
		z := clampFloat(c[1], minZ, maxZ)
		if _, ok := w.HighestSolidBelow(x, z, top); ok {
			return w.SpawnMobAt(x, z)
		}
	}

	return false
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// UpdateMobs продвигает всех мобов на один тик и возвращает признак
// видимых изменений и суммарный урон игроку. Порядок шага для каждого
// моба: горизонтальное преследование (оси x и z независимо), прыжок
// при полном блоке, гравитация с посадкой на опору, перезарядки, атака.
// Исключение пересечений мобов порядковое: моб с меньшим индексом ходит
// раньше, поэтому видит уже сдвинутых предшественников и ещё не
// сдвинутых последователей.
func (w *World) UpdateMobs(player mgl64.Vec3) (bool, float64) {
	worldChanged := false
	playerDamage := 0.0

	w.spawnTimer++
	if w.spawnTimer >= w.spawnInterval {
		w.spawnTimer = 0
		if w.trySpawnMobNear(player) {
			worldChanged = true
		}
	}

	for i := range w.mobs {
		mob := &w.mobs[i]
		moved := false

		toward := mgl64.Vec3{player[0] - mob.Position[0], 0, player[2] - mob.Position[2]}
		distance := toward.Len()

		if distance > 0.01 {
			speed := mobChaseSpeed
			if distance <= mobCreepRange {
				speed = mobCreepSpeed
			}
			dir := toward.Mul(1 / distance)

			proposedX := mob.Position[0] + dir[0]*speed
			canMoveX := !physics.Collides(w.chunk, proposedX, mob.Position[1], mob.Position[2], mob.Radius, mob.Height) &&
				!w.mobOverlapsOthers(i, proposedX, mob.Position[2], mob.Radius)
			if canMoveX {
				mob.Position[0] = proposedX
				moved = true
			}

			proposedZ := mob.Position[2] + dir[2]*speed
			canMoveZ := !physics.Collides(w.chunk, mob.Position[0], mob.Position[1], proposedZ, mob.Radius, mob.Height) &&
				!w.mobOverlapsOthers(i, mob.Position[0], proposedZ, mob.Radius)
			if canMoveZ {
				mob.Position[2] = proposedZ
				moved = true
			}

			if mob.Grounded && !canMoveX && !canMoveZ && mob.JumpCooldown <= 0 {
				mob.VelocityY = mobJumpVelocity
				mob.Grounded = false
				mob.JumpCooldown = mobJumpCooldownTicks
				moved = true
			}
			if moved {
				worldChanged = true
			}
		}

		mob.VelocityY -= mobGravity
		proposedY := mob.Position[1] + mob.VelocityY
		if !physics.Collides(w.chunk, mob.Position[0], proposedY, mob.Position[2], mob.Radius, mob.Height) {
			mob.Position[1] = proposedY
			mob.Grounded = false
		} else {
			if mob.VelocityY < 0 {
				if ground, ok := w.HighestSolidBelow(mob.Position[0], mob.Position[2], mob.Position[1]+0.5); ok {
					mob.Position[1] = ground
				}
				mob.Grounded = true
			}
			mob.VelocityY = 0
		}

		if mob.JumpCooldown > 0 {
			mob.JumpCooldown--
		}
		if mob.AttackCooldown > 0 {
			mob.AttackCooldown--
		}

		dx := player[0] - mob.Position[0]
		dz := player[2] - mob.Position[2]
		verticalClose := math.Abs(player[1]-mob.Position[1]) <= mob.Height
		touch := mob.Radius + mobTouchPad
		if dx*dx+dz*dz <= touch*touch && verticalClose && mob.AttackCooldown <= 0 {
			playerDamage += mobAttackDamage
			mob.AttackCooldown = mobAttackCooldownTicks
			w.emitMobAttack(*mob)
		}
	}

	return worldChanged, playerDamage
}

// mobOverlapsOthers проверяет пересечение горизонтального диска (x, z, radius)
// с дисками всех мобов, кроме моба с индексом self.
func (w *World) mobOverlapsOthers(self int, x, z, radius float64) bool {
	for j := range w.mobs {
		if j == self {
			continue
		}
		other := &w.mobs[j]
		if physics.DisksOverlap(x, z, radius, other.Position[0], other.Position[2], other.Radius) {
			return true
		}
	}
	return false
}
