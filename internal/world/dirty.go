package world

import (
	"github.com/takinashida/voxelcore/internal/vec"
)

// RegionSize — ребро кубического региона грязных отметок в блоках.
// Регион является единицей инкрементальной перестройки мешей.
const RegionSize = 16

// dirtyRegions отслеживает регионы чанка, изменившиеся с момента
// последнего дренажа. Запись всегда помечает регион ячейки и все его
// 26 соседей: видимость граней на границе зависит и от содержимого
// соседнего региона.
//
// Доступ не синхронизирован: один писатель (тик симуляции), один
// читатель-дренажер (отрисовщик), строго последовательно.
type dirtyRegions struct {
	nx, ny, nz int    // Количество регионов по осям
	marks      []bool // Отметки регионов, индекс (rx*nz + rz)*ny + ry
	marked     int    // Текущее число помеченных регионов
}

// newDirtyRegions создает трекер для объема width x height x depth блоков.
// Все регионы изначально помечены: первый дренаж дает полную перестройку.
func newDirtyRegions(width, height, depth int) *dirtyRegions {
	d := &dirtyRegions{
		nx: (width + RegionSize - 1) / RegionSize,
		ny: (height + RegionSize - 1) / RegionSize,
		nz: (depth + RegionSize - 1) / RegionSize,
	}
	d.marks = make([]bool, d.nx*d.ny*d.nz)
	for i := range d.marks {
		d.marks[i] = true
	}
	d.marked = len(d.marks)
	return d
}

// index возвращает линейный индекс региона. Координаты обязаны быть
// в пределах сетки регионов.
func (d *dirtyRegions) index(rx, ry, rz int) int {
	return (rx*d.nz+rz)*d.ny + ry
}

// mark помечает один регион, если он существует.
func (d *dirtyRegions) mark(rx, ry, rz int) {
	if rx < 0 || rx >= d.nx || ry < 0 || ry >= d.ny || rz < 0 || rz >= d.nz {
		return
	}
	idx := d.index(rx, ry, rz)
	if !d.marks[idx] {
		d.marks[idx] = true
		d.marked++
	}
}

// markAround помечает регион, содержащий ячейку (cx, cy, cz), и все его
// 26 соседей. Соседи за пределами сетки регионов отбрасываются.
func (d *dirtyRegions) markAround(cx, cy, cz int) {
	rx := cx / RegionSize
	ry := cy / RegionSize
	rz := cz / RegionSize
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				d.mark(rx+dx, ry+dy, rz+dz)
			}
		}
	}
}

// hasAny сообщает, есть ли помеченные регионы.
func (d *dirtyRegions) hasAny() bool {
	return d.marked > 0
}

// take возвращает индексы всех помеченных регионов и снимает отметки.
// Возвращаемые тройки — индексы регионов по осям, не блочные координаты.
func (d *dirtyRegions) take() []vec.Vec3 {
	if d.marked == 0 {
		return nil
	}
	out := make([]vec.Vec3, 0, d.marked)
	for rx := 0; rx < d.nx; rx++ {
		for rz := 0; rz < d.nz; rz++ {
			for ry := 0; ry < d.ny; ry++ {
				idx := d.index(rx, ry, rz)
				if d.marks[idx] {
					d.marks[idx] = false
					out = append(out, vec.Vec3{X: rx, Y: ry, Z: rz})
				}
			}
		}
	}
	d.marked = 0
	return out
}
