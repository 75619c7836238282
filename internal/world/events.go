package world

import (
	"context"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/takinashida/voxelcore/internal/eventbus"
	"github.com/takinashida/voxelcore/internal/logging"
	"github.com/takinashida/voxelcore/internal/vec"
	"github.com/takinashida/voxelcore/internal/world/block"
)

// Типы событий, публикуемых миром в шину.
const (
	EventBlockBroken = "world.block_broken"
	EventBlockPlaced = "world.block_placed"
	EventExplosion   = "world.explosion"
	EventMobSpawned  = "world.mob_spawned"
	EventMobDied     = "world.mob_died"
	EventMobAttack   = "world.mob_attack"
	EventTargetHit   = "world.target_hit"
)

const eventSource = "world"

// BlockBrokenEvent — разрушение блока (вручную, лучом или взрывом).
type BlockBrokenEvent struct {
	Pos   vec.Vec3 // Мировые координаты клетки
	Block block.ID // Какой блок стоял до разрушения
}

// BlockPlacedEvent — установка блока игроком.
type BlockPlacedEvent struct {
	Pos   vec.Vec3
	Block block.ID
}

// ExplosionEvent — детонация взрывчатки или прямой вызов ExplodeAt.
type ExplosionEvent struct {
	Center  mgl64.Vec3
	Radius  float64
	Changed bool // Изменилась ли геометрия
}

// MobSpawnedEvent — появление моба.
type MobSpawnedEvent struct {
	ID       uint64
	Position mgl64.Vec3
}

// MobDiedEvent — смерть моба (здоровье упало до нуля).
type MobDiedEvent struct {
	ID       uint64
	Position mgl64.Vec3
}

// MobAttackEvent — моб дотянулся до игрока и нанёс урон.
type MobAttackEvent struct {
	ID     uint64
	Damage float64
}

// TargetHitEvent — попадание по блоку-мишени.
type TargetHitEvent struct {
	Pos vec.Vec3
}

// publish отправляет событие в шину, если она подключена.
// Мир полностью работоспособен и без шины.
func (w *World) publish(eventType string, priority int, payload any) {
	if w.bus == nil {
		return
	}
	ev := &eventbus.Envelope{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		EventType: eventType,
		Priority:  priority,
		Payload:   payload,
	}
	if err := w.bus.Publish(context.Background(), ev); err != nil {
		logging.Warn("EventBus: событие %s не опубликовано: %v", eventType, err)
	}
}

func (w *World) emitBlockBroken(pos vec.Vec3, old block.ID) {
	if w.metrics != nil {
		w.metrics.BlocksBroken.Inc()
	}
	w.publish(EventBlockBroken, 3, BlockBrokenEvent{Pos: pos, Block: old})
}

func (w *World) emitBlockPlaced(pos vec.Vec3, id block.ID) {
	if w.metrics != nil {
		w.metrics.BlocksPlaced.Inc()
	}
	w.publish(EventBlockPlaced, 3, BlockPlacedEvent{Pos: pos, Block: id})
}

func (w *World) emitExplosion(center mgl64.Vec3, radius float64, changed bool) {
	if w.metrics != nil {
		w.metrics.Explosions.Inc()
	}
	w.publish(EventExplosion, 5, ExplosionEvent{Center: center, Radius: radius, Changed: changed})
}

func (w *World) emitMobSpawned(mob Mob) {
	if w.metrics != nil {
		w.metrics.MobsSpawned.Inc()
	}
	w.publish(EventMobSpawned, 3, MobSpawnedEvent{ID: mob.ID, Position: mob.Position})
}

func (w *World) emitMobDied(mob Mob) {
	if w.metrics != nil {
		w.metrics.MobsDied.Inc()
	}
	w.publish(EventMobDied, 5, MobDiedEvent{ID: mob.ID, Position: mob.Position})
}

func (w *World) emitMobAttack(mob Mob) {
	if w.metrics != nil {
		w.metrics.PlayerDamage.Add(mobAttackDamage)
	}
	w.publish(EventMobAttack, 3, MobAttackEvent{ID: mob.ID, Damage: mobAttackDamage})
}

func (w *World) emitTargetHit(pos vec.Vec3) {
	if w.metrics != nil {
		w.metrics.TargetHits.Inc()
	}
	w.publish(EventTargetHit, 5, TargetHitEvent{Pos: pos})
}
