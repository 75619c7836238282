package world

import (
	"testing"

	"github.com/takinashida/voxelcore/internal/vec"
	"github.com/takinashida/voxelcore/internal/world/block"
)

func TestGeneratorDeterminism(t *testing.T) {
	g1 := NewGenerator(42, vec.V3(-32, 0, -32), 64, 64, 64)
	g2 := NewGenerator(42, vec.V3(-32, 0, -32), 64, 64, 64)

	// Профили колонн совпадают для одного сида
	for wx := -32; wx < 32; wx += 7 {
		for wz := -32; wz < 32; wz += 7 {
			b1, s1 := g1.ColumnProfile(wx, wz)
			b2, s2 := g2.ColumnProfile(wx, wz)
			if b1 != b2 || s1 != s2 {
				t.Fatalf("Профиль колонны (%d, %d) не детерминирован: (%v, %d) против (%v, %d)", wx, wz, b1, s1, b2, s2)
			}
		}
	}

	// Полные проходы генерации дают идентичные массивы
	c1 := g1.Generate()
	c2 := g2.Generate()
	mismatches := 0
	for x := -32; x < 32; x++ {
		for z := -32; z < 32; z++ {
			for y := 0; y < 64; y++ {
				if c1.GetBlock(x, y, z) != c2.GetBlock(x, y, z) {
					mismatches++
				}
			}
		}
	}
	if mismatches != 0 {
		t.Errorf("Ожидались идентичные миры для одного сида, различий: %d", mismatches)
	}
}

func TestGeneratorSeedChangesTerrain(t *testing.T) {
	g1 := NewGenerator(1, vec.Vec3{}, 64, 64, 64)
	g2 := NewGenerator(2, vec.Vec3{}, 64, 64, 64)

	diffs := 0
	for wx := 0; wx < 64; wx += 3 {
		for wz := 0; wz < 64; wz += 3 {
			_, s1 := g1.ColumnProfile(wx, wz)
			_, s2 := g2.ColumnProfile(wx, wz)
			if s1 != s2 {
				diffs++
			}
		}
	}
	if diffs == 0 {
		t.Error("Разные сиды должны давать разный рельеф")
	}
}

func TestGeneratorSurfaceWithinMargins(t *testing.T) {
	g := NewGenerator(7, vec.V3(0, -20, 0), 96, 80, 96)

	lo := -20 + surfaceMarginBottom
	hi := -20 + 80 - surfaceMarginTop
	for wx := 0; wx < 96; wx += 5 {
		for wz := 0; wz < 96; wz += 5 {
			_, surface := g.ColumnProfile(wx, wz)
			if surface < lo || surface > hi {
				t.Errorf("Высота поверхности колонны (%d, %d) вне диапазона [%d, %d]: %d", wx, wz, lo, hi, surface)
			}
		}
	}
}

func TestGeneratorColumnLayers(t *testing.T) {
	g := NewGenerator(99, vec.Vec3{}, 64, 64, 64)

	for wx := 0; wx < 64; wx += 9 {
		for wz := 0; wz < 64; wz += 9 {
			_, surface := g.ColumnProfile(wx, wz)

			// Основание мира неразрушаемо
			if id := g.BlockAtColumn(wx, 0, wz); id != block.Bedrock {
				t.Errorf("Ожидался Bedrock в основании колонны (%d, %d), получен %v", wx, wz, id)
			}

			// Поверхность — непустой блок
			if id := g.BlockAtColumn(wx, surface, wz); id.IsAir() {
				t.Errorf("Поверхность колонны (%d, %d) на высоте %d пуста", wx, wz, surface)
			}

			// Выше поверхности — воздух на суше, вода до уровня моря
			above := g.BlockAtColumn(wx, surface+1, wz)
			if surface >= g.SeaLevel {
				if above != block.Air {
					t.Errorf("Ожидался Air над сушей (%d, %d), получен %v", wx, wz, above)
				}
			} else if above != block.Water && above != block.Ice {
				t.Errorf("Ожидалась вода над дном (%d, %d), получен %v", wx, wz, above)
			}

			// Вне вертикальной протяжённости — воздух
			if id := g.BlockAtColumn(wx, -1, wz); id != block.Air {
				t.Errorf("Ожидался Air ниже мира, получен %v", id)
			}
			if id := g.BlockAtColumn(wx, 64, wz); id != block.Air {
				t.Errorf("Ожидался Air выше мира, получен %v", id)
			}
		}
	}
}

func TestGeneratorFallbackMatchesBulk(t *testing.T) {
	g := NewGenerator(5, vec.V3(-16, 0, -16), 48, 48, 48)
	c := g.Generate()

	// Чтения за пределами массива детерминированно продолжают ландшафт
	for _, p := range []vec.Vec3{
		{X: -17, Y: 10, Z: 0},
		{X: 200, Y: 30, Z: 200},
		{X: 0, Y: 10, Z: 999},
	} {
		got := c.GetBlock(p.X, p.Y, p.Z)
		want := g.BlockAtColumn(p.X, p.Y, p.Z)
		if got != want {
			t.Errorf("Чтение вне массива %v: ожидался %v, получен %v", p, want, got)
		}
		if again := c.GetBlock(p.X, p.Y, p.Z); again != got {
			t.Errorf("Повторное чтение вне массива %v должно совпадать: %v против %v", p, got, again)
		}
	}
}

func TestGeneratorTargetRange(t *testing.T) {
	g := NewGenerator(11, vec.Vec3{}, 96, 64, 96)
	c := g.Generate()

	pos := g.TargetPosition()
	if id := c.GetBlock(pos.X, pos.Y, pos.Z); id != block.Target {
		t.Errorf("Ожидалась мишень в %v, получен %v", pos, id)
	}

	// Колонна и помост под мишенью
	if id := c.GetBlock(pos.X, pos.Y-1, pos.Z); id != block.Cobblestone {
		t.Errorf("Ожидалась колонна из булыжника под мишенью, получен %v", id)
	}
	if id := c.GetBlock(pos.X-1, pos.Y-3, pos.Z+1); id != block.Cobblestone {
		t.Errorf("Ожидался помост из булыжника, получен %v", id)
	}

	// Позиция мишени детерминирована
	if again := g.TargetPosition(); !again.Equals(pos) {
		t.Errorf("Позиция мишени должна быть детерминированной: %v против %v", pos, again)
	}
}

func TestClassifyBiome(t *testing.T) {
	cases := []struct {
		heat, moisture float64
		want           Biome
	}{
		{0.2, 0.2, BiomeMountains},
		{0.2, 0.6, BiomeSnow},
		{0.8, 0.3, BiomeDesert},
		{0.8, 0.8, BiomeSwamp},
		{0.8, 0.5, BiomePlains},
		{0.5, 0.7, BiomeForest},
		{0.5, 0.2, BiomeMountains},
		{0.5, 0.4, BiomePlains},
	}
	for _, c := range cases {
		if got := classifyBiome(c.heat, c.moisture); got != c.want {
			t.Errorf("classifyBiome(%.2f, %.2f): ожидался %v, получен %v", c.heat, c.moisture, c.want, got)
		}
	}
}
