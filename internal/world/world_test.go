package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/takinashida/voxelcore/internal/vec"
	"github.com/takinashida/voxelcore/internal/world/block"
)

// newFlatWorld строит пустой мир 32×32×32 с каменным полом на высоте floorY.
// Ландшафт не генерируется: тесты управляют геометрией вручную.
func newFlatWorld(tb testing.TB, floorY int) *World {
	tb.Helper()
	c := NewChunk(32, 32, 32)
	for x := 0; x < 32; x++ {
		for z := 0; z < 32; z++ {
			c.SetBlock(x, floorY, z, block.Stone)
		}
	}
	c.TakeDirtyRegions() // сбрасываем полную перестройку после заливки

	return &World{
		chunk:         c,
		maxMobs:       DefaultMaxMobs,
		spawnInterval: 1 << 30, // периодический спавн в тестах не участвует
	}
}

func TestWorld_NewGeneratesAndPopulates(t *testing.T) {
	w := New(Params{Seed: 7, Width: 64, Height: 64, Depth: 64, MaxMobs: 10, SpawnInterval: 120})

	assert.NotNil(t, w.Chunk(), "Мир должен владеть чанком")
	assert.NotNil(t, w.Generator(), "Мир должен владеть генератором")
	assert.Len(t, w.Mobs(), len(initialMobSpots), "Стартовое население должно быть заселено")
	assert.Equal(t, uint64(1), w.Mobs()[0].ID, "Идентификаторы мобов выдаются последовательно")

	// Мишень стрельбища стоит в мире
	target := w.Generator().TargetPosition()
	assert.Equal(t, block.Target, w.GetBlock(target.X, target.Y, target.Z), "Мишень должна присутствовать в мире")

	// Первый дренаж — полная перестройка
	assert.True(t, w.HasDirtyRegions(), "Новый мир должен требовать полную перестройку")
	regions := w.TakeDirtyRegions()
	assert.Len(t, regions, 4*4*4, "Первый дренаж должен отдать все регионы")
	assert.False(t, w.HasDirtyRegions(), "После дренажа грязных регионов быть не должно")
}

func TestWorld_SpawnMobAt(t *testing.T) {
	w := newFlatWorld(t, 10)

	ok := w.SpawnMobAt(16.5, 16.5)
	assert.True(t, ok, "Спавн над ровным полом должен удаться")
	assert.Len(t, w.Mobs(), 1, "Моб должен попасть в симуляцию")

	mob := w.Mobs()[0]
	assert.Equal(t, uint64(1), mob.ID, "Первый моб получает ID 1")
	assert.Equal(t, float64(mobMaxHealth), mob.Health, "Моб появляется с полным здоровьем")
	assert.InDelta(t, 13.0, mob.Position.Y(), 1e-9, "Моб появляется на два блока выше опоры")

	// Вне горизонтальной протяжённости мира опоры нет
	assert.False(t, w.SpawnMobAt(100.5, 100.5), "Спавн вне мира должен быть отклонён")

	// Потолок населения
	w.maxMobs = 1
	assert.False(t, w.SpawnMobAt(20.5, 20.5), "Спавн сверх потолка населения должен быть отклонён")
}

func TestWorld_BulletDamagesAndKillsMob(t *testing.T) {
	w := newFlatWorld(t, 10)
	w.SpawnMobAt(16.5, 16.5)

	fire := func() {
		w.SpawnBullet(mgl64.Vec3{14.0, 13.9, 16.5}, mgl64.Vec3{1, 0, 0})
		for i := 0; i < 60 && len(w.Bullets()) > 0; i++ {
			w.UpdateBullets()
		}
		assert.Empty(t, w.Bullets(), "Пуля должна сняться после попадания")
	}

	fire()
	assert.Len(t, w.Mobs(), 1, "Моб должен пережить первое попадание")
	assert.InDelta(t, 66.0, w.Mobs()[0].Health, 1e-9, "Попадание снимает ровно урон пули")

	fire()
	assert.InDelta(t, 32.0, w.Mobs()[0].Health, 1e-9, "Урон попаданий складывается")

	fire()
	assert.Empty(t, w.Mobs(), "Смертельное попадание снимает моба в том же вызове")
	assert.Len(t, w.Particles(), 56, "Три вспышки попаданий и вспышка гибели дают 56 частиц")
}

func TestWorld_BulletStopsInBlock(t *testing.T) {
	w := newFlatWorld(t, 10)
	w.SpawnMobAt(16.5, 16.5)
	for y := 11; y <= 15; y++ {
		w.Chunk().SetBlock(15, y, 16, block.Brick) // стена между стрелком и мобом
	}

	w.SpawnBullet(mgl64.Vec3{13.0, 13.5, 16.5}, mgl64.Vec3{1, 0, 0})
	changed := false
	for i := 0; i < 30 && len(w.Bullets()) > 0; i++ {
		if w.UpdateBullets() {
			changed = true
		}
	}

	assert.Empty(t, w.Bullets(), "Пуля должна застрять в стене")
	assert.False(t, changed, "Застрявшая пуля не меняет мир")
	assert.InDelta(t, mobMaxHealth, w.Mobs()[0].Health, 1e-9, "Моб за стеной не получает урона")
	assert.Empty(t, w.Particles(), "Застрявшая пуля не оставляет частиц")
	assert.Equal(t, block.Brick, w.GetBlock(15, 13, 16), "Стена должна уцелеть")
}

func TestWorld_ExplosiveDetonatesOnContact(t *testing.T) {
	w := newFlatWorld(t, 10)

	w.SpawnExplosive(mgl64.Vec3{16.5, 14.0, 16.5}, mgl64.Vec3{0, -1, 0})
	assert.Len(t, w.Explosives(), 1, "Взрывчатка должна попасть в симуляцию")

	changed := false
	for i := 0; i < 30 && len(w.Explosives()) > 0; i++ {
		if w.UpdateExplosives() {
			changed = true
		}
	}

	assert.Empty(t, w.Explosives(), "Взрывчатка детонирует при контакте с полом")
	assert.True(t, changed, "Детонация должна изменить геометрию")
	assert.Equal(t, block.Air, w.GetBlock(16, 10, 16), "Пол в эпицентре должен быть выбит")
	assert.Len(t, w.Particles(), 45, "Детонация даёт огненную вспышку из 45 частиц")
}

func TestWorld_ExplosiveFuseExpires(t *testing.T) {
	w := &World{
		chunk:         NewChunk(32, 32, 32),
		maxMobs:       DefaultMaxMobs,
		spawnInterval: 1 << 30,
	}

	w.SpawnExplosive(mgl64.Vec3{16.5, 200.0, 16.5}, mgl64.Vec3{0, 1, 0})

	for i := 0; i < 119; i++ {
		w.UpdateExplosives()
	}
	assert.Len(t, w.Explosives(), 1, "До истечения таймера взрывчатка живёт")

	changed := w.UpdateExplosives()
	assert.Empty(t, w.Explosives(), "По истечении таймера взрывчатка детонирует")
	assert.False(t, changed, "Детонация в пустоте не меняет геометрию")
	assert.Len(t, w.Particles(), 45, "Вспышка поднимается даже без разрушений")
}

func TestWorld_ExplodeAtBoundaryInclusive(t *testing.T) {
	w := newFlatWorld(t, 10)

	changed := w.ExplodeAt(mgl64.Vec3{16.5, 10.5, 16.5}, 2.0)
	assert.True(t, changed, "Взрыв над полом должен выбить блоки")

	assert.Equal(t, block.Air, w.GetBlock(16, 10, 16), "Эпицентр должен быть выбит")
	assert.Equal(t, block.Air, w.GetBlock(18, 10, 16), "Клетка на границе радиуса включается")
	assert.Equal(t, block.Stone, w.GetBlock(19, 10, 16), "Клетка за границей радиуса сохраняется")
}

func TestWorld_BreakAndPlaceBlock(t *testing.T) {
	w := newFlatWorld(t, 10)

	assert.True(t, w.BreakBlock(16, 10, 16), "Разрушение блока пола должно удаться")
	assert.Equal(t, block.Air, w.GetBlock(16, 10, 16), "Клетка должна опустеть")
	assert.False(t, w.BreakBlock(16, 10, 16), "Повторное разрушение пустой клетки — не изменение")

	assert.True(t, w.PlaceBlock(16, 10, 16, block.OakPlanks), "Установка в пустую клетку должна удаться")
	assert.Equal(t, block.OakPlanks, w.GetBlock(16, 10, 16), "Установленный блок должен читаться")
	assert.False(t, w.PlaceBlock(16, 10, 16, block.OakPlanks), "Повторная установка того же блока — не изменение")

	assert.False(t, w.PlaceBlock(-5, 10, 16, block.OakPlanks), "Запись вне массива отклоняется")
}

func TestWorld_BreakBlockFromRay(t *testing.T) {
	w := newFlatWorld(t, 10)

	ok := w.BreakBlockFromRay(mgl64.Vec3{16.5, 13.5, 16.5}, mgl64.Vec3{0, -1, 0}, 10)
	assert.True(t, ok, "Луч вниз должен сломать блок пола")
	assert.Equal(t, block.Air, w.GetBlock(16, 10, 16), "Блок под лучом должен опустеть")
	assert.Len(t, w.Particles(), 12, "Разлом поднимает облачко пыли")

	// Лучу вверх ломать нечего
	assert.False(t, w.BreakBlockFromRay(mgl64.Vec3{16.5, 13.5, 16.5}, mgl64.Vec3{0, 1, 0}, 10), "Луч в пустоту не ломает ничего")
}

func TestWorld_PlaceBlockFromRay(t *testing.T) {
	w := newFlatWorld(t, 10)

	// Блок встаёт в последнюю пустую клетку перед препятствием
	ok := w.PlaceBlockFromRay(mgl64.Vec3{16.5, 13.5, 16.5}, mgl64.Vec3{0, -1, 0}, 10, block.Brick)
	assert.True(t, ok, "Установка перед полом должна удаться")
	assert.Equal(t, block.Brick, w.GetBlock(16, 11, 16), "Блок должен встать вплотную к полу")

	// Луч, начавшийся внутри стены, не ставит ничего
	assert.False(t, w.PlaceBlockFromRay(mgl64.Vec3{16.5, 10.5, 16.5}, mgl64.Vec3{0, -1, 0}, 10, block.Brick),
		"Перед первым непустым блоком не было пустой клетки")

	// Пустой блок и нулевое направление отклоняются
	assert.False(t, w.PlaceBlockFromRay(mgl64.Vec3{16.5, 13.5, 16.5}, mgl64.Vec3{0, -1, 0}, 10, block.Air), "Установка пустоты отклоняется")
	assert.False(t, w.PlaceBlockFromRay(mgl64.Vec3{16.5, 13.5, 16.5}, mgl64.Vec3{}, 10, block.Brick), "Нулевое направление отклоняется")
}

func TestWorld_CheckTargetHit(t *testing.T) {
	w := newFlatWorld(t, 10)
	w.Chunk().SetBlock(20, 13, 16, block.Target)

	pos, ok := w.CheckTargetHit(mgl64.Vec3{16.5, 13.5, 16.5}, mgl64.Vec3{1, 0, 0}, 30)
	assert.True(t, ok, "Первый непустой блок вдоль луча — мишень")
	assert.Equal(t, vec.V3(20, 13, 16), pos, "Координаты попадания должны указывать на мишень")

	// Исчерпание дистанции
	_, ok = w.CheckTargetHit(mgl64.Vec3{16.5, 13.5, 16.5}, mgl64.Vec3{1, 0, 0}, 2)
	assert.False(t, ok, "Луч короче дистанции до мишени не попадает")

	// Выстрел сквозь препятствие не засчитывается
	w.Chunk().SetBlock(18, 13, 16, block.Brick)
	_, ok = w.CheckTargetHit(mgl64.Vec3{16.5, 13.5, 16.5}, mgl64.Vec3{1, 0, 0}, 30)
	assert.False(t, ok, "Перекрытый луч не засчитывает попадание")
}

func TestWorld_MobChasesPlayer(t *testing.T) {
	w := newFlatWorld(t, 10)
	w.SpawnMobAt(16.5, 16.5)

	player := mgl64.Vec3{26.5, 11.0, 16.5}
	changed, damage := w.UpdateMobs(player)

	assert.True(t, changed, "Шаг преследования должен быть виден снаружи")
	assert.Zero(t, damage, "Далёкий моб не достаёт до игрока")
	assert.InDelta(t, 16.54, w.Mobs()[0].Position.X(), 1e-9, "Моб шагает к игроку на скорость преследования")
	assert.InDelta(t, 16.5, w.Mobs()[0].Position.Z(), 1e-9, "Поперечного сноса быть не должно")

	// За десятки тиков моб оседает на опору
	for i := 0; i < 80; i++ {
		w.UpdateMobs(player)
	}
	mob := w.Mobs()[0]
	assert.True(t, mob.Grounded, "Моб должен осесть на пол")
	assert.InDelta(t, 11.0, mob.Position.Y(), 1e-9, "Опора на единицу выше пола")
}

func TestWorld_MobAttacksWithCooldown(t *testing.T) {
	w := newFlatWorld(t, 10)
	w.SpawnMobAt(16.5, 16.5)

	// Осаживаем моба на пол вдали от игрока
	far := mgl64.Vec3{30.5, 11.0, 30.5}
	for i := 0; i < 80; i++ {
		w.UpdateMobs(far)
	}

	player := w.Mobs()[0].Position
	_, damage := w.UpdateMobs(player)
	assert.InDelta(t, mobAttackDamage, damage, 1e-9, "Моб в упор должен ударить")

	_, damage = w.UpdateMobs(player)
	assert.Zero(t, damage, "Удар на перезарядке невозможен")
	assert.Greater(t, w.Mobs()[0].AttackCooldown, 0.0, "Перезарядка должна тикать")
}

func TestWorld_MobJumpsAtCorner(t *testing.T) {
	w := newFlatWorld(t, 10)
	// Угловая стена на плоскостях x=17 и z=17 вокруг точки (16.5, 16.5)
	for y := 11; y <= 14; y++ {
		for i := 14; i <= 18; i++ {
			w.Chunk().SetBlock(17, y, i, block.Brick)
			w.Chunk().SetBlock(i, y, 17, block.Brick)
		}
	}
	w.mobs = append(w.mobs, Mob{
		ID:       1,
		Position: mgl64.Vec3{16.5, 11.0, 16.5},
		Health:   mobMaxHealth,
		Radius:   mobRadius,
		Height:   mobHeight,
		Grounded: true,
	})

	player := mgl64.Vec3{22.5, 11.0, 22.5}
	jumped := false
	for i := 0; i < 10 && !jumped; i++ {
		w.UpdateMobs(player)
		jumped = w.Mobs()[0].Position.Y() > 11.0
	}

	assert.True(t, jumped, "Упёршийся в угол моб должен подпрыгнуть")
	assert.Greater(t, w.Mobs()[0].JumpCooldown, 0.0, "Прыжок взводит перезарядку")
}

func TestWorld_MobsDoNotOverlap(t *testing.T) {
	w := newFlatWorld(t, 10)
	// Два моба друг за другом на одной линии к игроку
	w.mobs = append(w.mobs,
		Mob{ID: 1, Position: mgl64.Vec3{16.5, 11.0, 16.5}, Health: mobMaxHealth, Radius: mobRadius, Height: mobHeight, Grounded: true},
		Mob{ID: 2, Position: mgl64.Vec3{17.35, 11.0, 16.5}, Health: mobMaxHealth, Radius: mobRadius, Height: mobHeight, Grounded: true},
	)

	assert.True(t, w.mobOverlapsOthers(0, 17.0, 16.5, mobRadius), "Сближение дисков должно фиксироваться")
	assert.False(t, w.mobOverlapsOthers(0, 10.5, 16.5, mobRadius), "Далёкие диски не пересекаются")

	player := mgl64.Vec3{26.5, 11.0, 16.5}
	w.UpdateMobs(player)

	assert.InDelta(t, 16.54, w.Mobs()[0].Position.X(), 1e-9, "Задний моб идёт следом без пересечения")
	assert.InDelta(t, 17.39, w.Mobs()[1].Position.X(), 1e-9, "Передний моб свободно идёт к игроку")
}

func TestWorld_SpawnTimerRepopulates(t *testing.T) {
	w := newFlatWorld(t, 10)
	w.spawnInterval = 3

	player := mgl64.Vec3{16.5, 11.0, 16.5}
	w.UpdateMobs(player)
	w.UpdateMobs(player)
	assert.Empty(t, w.Mobs(), "До истечения интервала мобов ещё нет")

	changed, _ := w.UpdateMobs(player)
	assert.True(t, changed, "Подселение моба должно быть видно снаружи")
	assert.Len(t, w.Mobs(), 1, "По таймеру подселяется моб")

	// Таймер перезапускается
	w.UpdateMobs(player)
	w.UpdateMobs(player)
	assert.Len(t, w.Mobs(), 1, "До следующего интервала новых мобов нет")
	w.UpdateMobs(player)
	assert.Len(t, w.Mobs(), 2, "Очередной интервал подселяет следующего моба")
}

func TestWorld_StepAggregatesTick(t *testing.T) {
	w := newFlatWorld(t, 10)
	w.SpawnMobAt(16.5, 16.5)

	// Осаживаем моба на пол вдали от игрока
	far := mgl64.Vec3{30.5, 11.0, 30.5}
	for i := 0; i < 80; i++ {
		w.UpdateMobs(far)
	}

	player := w.Mobs()[0].Position
	res := w.Step(player)
	assert.InDelta(t, mobAttackDamage, res.PlayerDamage, 1e-9, "Удар моба должен попасть в итог тика")
	assert.Equal(t, uint64(1), w.CurrentTick(), "Счётчик тиков должен увеличиться")

	res = w.Step(player)
	assert.Zero(t, res.PlayerDamage, "Во время перезарядки урона нет")
	assert.Equal(t, uint64(2), w.CurrentTick(), "Счётчик тиков растёт монотонно")

	// Детонация внутри шага помечает мир изменённым
	w.SpawnExplosive(mgl64.Vec3{5.5, 14.0, 5.5}, mgl64.Vec3{0, -1, 0})
	exploded := false
	for i := 0; i < 30 && !exploded; i++ {
		exploded = w.Step(player).WorldChanged
	}
	assert.True(t, exploded, "Детонация должна пометить мир изменённым")
}

func TestWorld_ParticleLifecycle(t *testing.T) {
	w := newFlatWorld(t, 10)

	w.burstParticles(mgl64.Vec3{16.5, 14.0, 16.5}, 5, [3]float32{1, 0, 0}, 0.1, 2, 0.1)
	assert.Len(t, w.Particles(), 5, "Вспышка порождает ровно count частиц")

	first := w.Particles()[0]
	assert.InDelta(t, 0.1, first.Velocity.Len(), 1e-9, "Скорость частицы нормирована на speed")

	w.UpdateParticles()
	assert.Len(t, w.Particles(), 5, "Частицы живут до исчерпания жизни")
	assert.NotEqual(t, first.Position, w.Particles()[0].Position, "Частица должна двигаться")

	w.UpdateParticles()
	assert.Empty(t, w.Particles(), "Погасшие частицы удаляются")
}

// Benchmarks

func BenchmarkWorld_Step(b *testing.B) {
	w := newFlatWorld(b, 10)
	for i := 0; i < 5; i++ {
		w.SpawnMobAt(8.5+float64(i*3), 8.5)
	}
	player := mgl64.Vec3{16.5, 11.0, 16.5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Step(player)
	}
}

func BenchmarkChunk_SetBlock(b *testing.B) {
	chunk := NewChunk(64, 64, 64)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x := i % 64
		z := (i / 64) % 64
		chunk.SetBlock(x, 32, z, block.ID(1+i%2))
	}
}

func BenchmarkGenerator_Generate(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen := NewGenerator(int64(i), vec.Vec3{}, 64, 48, 64)
		gen.Generate()
	}
}
