package world

import (
	"github.com/takinashida/voxelcore/internal/vec"
	"github.com/takinashida/voxelcore/internal/world/block"
)

// Параметры прохода структур.
const (
	structureCell   = 24 // Шаг решетки якорей структур в блоках
	structureJitter = 16 // Разброс якоря внутри ячейки решетки
)

// floorDiv делит с округлением к минус бесконечности.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// placeStructures выполняет проход структур по готовому базовому
// ландшафту: деревья, дома, кактусы и стрельбище. Якоря лежат на
// разреженной решетке с хеш-разбросом, поэтому структуры размещаются
// детерминированно и не пересекаются. Записи идут через SetBlock —
// за пределами массива они молча отбрасываются.
func (g *Generator) placeStructures(c *Chunk) {
	gx0 := floorDiv(g.origin.X, structureCell)
	gx1 := floorDiv(g.origin.X+g.width-1, structureCell)
	gz0 := floorDiv(g.origin.Z, structureCell)
	gz1 := floorDiv(g.origin.Z+g.depth-1, structureCell)

	for gx := gx0; gx <= gx1; gx++ {
		for gz := gz0; gz <= gz1; gz++ {
			h := hash2(g.Seed+7, gx, gz)
			wx := gx*structureCell + int(h%structureJitter)
			wz := gz*structureCell + int((h>>8)%structureJitter)

			biome, surface := g.ColumnProfile(wx, wz)
			if surface <= g.SeaLevel {
				continue
			}

			roll := (h >> 16) % 100
			switch biome {
			case BiomeForest:
				if roll < 55 {
					g.placeTree(c, wx, wz, surface)
				} else if roll >= 92 {
					g.placeHouse(c, wx, wz, surface)
				}
			case BiomePlains:
				if roll < 12 {
					g.placeTree(c, wx, wz, surface)
				} else if roll >= 88 {
					g.placeHouse(c, wx, wz, surface)
				}
			case BiomeDesert:
				if roll < 25 {
					g.placeCactus(c, wx, wz, surface)
				}
			case BiomeSwamp:
				if roll < 10 {
					g.placeTree(c, wx, wz, surface)
				}
			}
		}
	}

	g.placeTargetRange(c)
}

// placeLeaf ставит листву только в пустые ячейки, не задевая ствол.
func (g *Generator) placeLeaf(c *Chunk, x, y, z int) {
	if c.GetBlock(x, y, z).IsAir() {
		c.SetBlock(x, y, z, block.OakLeaves)
	}
}

// placeTree строит дерево: ствол высотой четыре-шесть блоков и крону
// из двух колец 5x5 без углов, кольца 3x3 и крестовой шапки.
func (g *Generator) placeTree(c *Chunk, wx, wz, surface int) {
	trunkH := 4 + int(hash2(g.Seed+11, wx, wz)%3)
	top := surface + trunkH
	for y := surface + 1; y <= top; y++ {
		c.SetBlock(wx, y, wz, block.OakLog)
	}

	for dy := -1; dy <= 0; dy++ {
		for dx := -2; dx <= 2; dx++ {
			for dz := -2; dz <= 2; dz++ {
				if (dx == -2 || dx == 2) && (dz == -2 || dz == 2) {
					continue
				}
				g.placeLeaf(c, wx+dx, top+dy, wz+dz)
			}
		}
	}
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			g.placeLeaf(c, wx+dx, top+1, wz+dz)
		}
	}
	for _, d := range [...][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		g.placeLeaf(c, wx+d[0], top+2, wz+d[1])
	}
}

// placeCactus строит кактус высотой один-три блока.
func (g *Generator) placeCactus(c *Chunk, wx, wz, surface int) {
	n := 1 + int(hash2(g.Seed+13, wx, wz)%3)
	for i := 1; i <= n; i++ {
		c.SetBlock(wx, surface+i, wz, block.Cactus)
	}
}

// Габариты дома.
const (
	houseWidth = 7 // Протяженность по X
	houseDepth = 6 // Протяженность по Z
	houseWallH = 3 // Высота стен над полом
)

// placeHouse строит прямоугольный дом: дощатый пол, кирпичные стены с
// дверным проемом и окнами, плоская крыша из черепицы. Площадка
// обязана быть ровной (перепад углов не больше одного блока) и выше
// уровня моря, иначе дом не ставится.
func (g *Generator) placeHouse(c *Chunk, wx, wz, surface int) {
	if !c.InBounds(wx, surface, wz) ||
		!c.InBounds(wx+houseWidth-1, surface+houseWallH+1, wz+houseDepth-1) {
		return
	}
	for _, corner := range [...][2]int{{0, 0}, {houseWidth - 1, 0}, {0, houseDepth - 1}, {houseWidth - 1, houseDepth - 1}} {
		_, s := g.ColumnProfile(wx+corner[0], wz+corner[1])
		if s > surface+1 || s < surface-1 || s <= g.SeaLevel {
			return
		}
	}

	// Пол
	for dx := 0; dx < houseWidth; dx++ {
		for dz := 0; dz < houseDepth; dz++ {
			c.SetBlock(wx+dx, surface, wz+dz, block.OakPlanks)
		}
	}

	// Стены с проемами
	for y := surface + 1; y <= surface+houseWallH; y++ {
		for dx := 0; dx < houseWidth; dx++ {
			for dz := 0; dz < houseDepth; dz++ {
				edge := dx == 0 || dx == houseWidth-1 || dz == 0 || dz == houseDepth-1
				if !edge {
					// Внутренность дома очищается от ландшафта
					c.SetBlock(wx+dx, y, wz+dz, block.Air)
					continue
				}
				if dz == 0 && dx == houseWidth/2 && y <= surface+2 {
					// Дверной проем высотой два блока
					c.SetBlock(wx+dx, y, wz+dz, block.Air)
					continue
				}
				if y == surface+2 && houseWindowAt(dx, dz) {
					c.SetBlock(wx+dx, y, wz+dz, block.Glass)
					continue
				}
				c.SetBlock(wx+dx, y, wz+dz, block.Brick)
			}
		}
	}

	// Плоская крыша
	for dx := 0; dx < houseWidth; dx++ {
		for dz := 0; dz < houseDepth; dz++ {
			c.SetBlock(wx+dx, surface+houseWallH+1, wz+dz, block.RoofTile)
		}
	}
}

// houseWindowAt сообщает, приходится ли ячейка стены на оконный проем.
func houseWindowAt(dx, dz int) bool {
	if dz == 0 || dz == houseDepth-1 {
		return dx == 2 || dx == houseWidth-3
	}
	if dx == 0 || dx == houseWidth-1 {
		return dz == houseDepth/2
	}
	return false
}

// TargetPosition возвращает мировые координаты блока-мишени
// стрельбища. Позиция детерминирована сидом и размерами мира.
func (g *Generator) TargetPosition() vec.Vec3 {
	cx := g.origin.X + g.width/2 + 12
	cz := g.origin.Z + g.depth/2
	_, surface := g.ColumnProfile(cx, cz)
	return vec.Vec3{X: cx, Y: surface + 3, Z: cz}
}

// placeTargetRange строит стрельбище: помост 3x3 из булыжника,
// колонну и блок-мишень на ее вершине.
func (g *Generator) placeTargetRange(c *Chunk) {
	pos := g.TargetPosition()
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			c.SetBlock(pos.X+dx, pos.Y-3, pos.Z+dz, block.Cobblestone)
		}
	}
	c.SetBlock(pos.X, pos.Y-2, pos.Z, block.Cobblestone)
	c.SetBlock(pos.X, pos.Y-1, pos.Z, block.Cobblestone)
	c.SetBlock(pos.X, pos.Y, pos.Z, block.Target)
}
