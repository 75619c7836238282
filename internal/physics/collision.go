package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/takinashida/voxelcore/internal/vec"
	"github.com/takinashida/voxelcore/internal/world/block"
)

// BlockSource предоставляет пространственным запросам доступ к блокам
// мира. Контракт тотальный: реализация возвращает блок для любых
// координат и никогда не завершается ошибкой.
type BlockSource interface {
	GetBlock(x, y, z int) block.ID
}

// BlockStore расширяет BlockSource операцией записи. Запись за
// пределами адресуемого объема отклоняется с результатом false;
// результат true означает, что хранимое значение изменилось.
type BlockStore interface {
	BlockSource
	SetBlock(x, y, z int, id block.ID) bool
}

// Cell возвращает координаты ячейки, содержащей точку.
func Cell(p mgl64.Vec3) vec.Vec3 {
	return vec.Vec3{
		X: int(math.Floor(p.X())),
		Y: int(math.Floor(p.Y())),
		Z: int(math.Floor(p.Z())),
	}
}

// Collides проверяет пересечение вертикального цилиндра, приближенного
// коробкой, с твердыми блоками. Горизонтальный квадрат берется от
// floor(центр - радиус) до floor(центр + радиус), вертикальный
// диапазон — от floor(y) до ceil(y + высота). Используется одинаково
// для игрока и мобов с их радиусом и высотой.
func Collides(src BlockSource, x, y, z, radius, height float64) bool {
	minX := int(math.Floor(x - radius))
	maxX := int(math.Floor(x + radius))
	minZ := int(math.Floor(z - radius))
	maxZ := int(math.Floor(z + radius))
	minY := int(math.Floor(y))
	maxY := int(math.Ceil(y + height))

	for bx := minX; bx <= maxX; bx++ {
		for by := minY; by <= maxY; by++ {
			for bz := minZ; bz <= maxZ; bz++ {
				if src.GetBlock(bx, by, bz).IsSolid() {
					return true
				}
			}
		}
	}
	return false
}

// DisksOverlap проверяет перекрытие двух горизонтальных дисков.
// Используется для взаимного исключения мобов при движении; сравнение
// строгое, касание не считается перекрытием.
func DisksOverlap(x1, z1, r1, x2, z2, r2 float64) bool {
	dx := x1 - x2
	dz := z1 - z2
	minDist := r1 + r2
	return dx*dx+dz*dz < minDist*minDist
}

// SegmentHitsCylinder проверяет, задевает ли отрезок вертикальный
// цилиндр с основанием base, радиусом radius и высотой height.
// Горизонтально берется ближайшая к оси цилиндра точка проекции
// отрезка на плоскость XZ, вертикально — перекрытие диапазона высот
// отрезка с диапазоном цилиндра. Граница попадания включительная.
func SegmentHitsCylinder(start, end, base mgl64.Vec3, radius, height float64) bool {
	segDX := end.X() - start.X()
	segDZ := end.Z() - start.Z()
	segLenSq := segDX*segDX + segDZ*segDZ

	t := 0.0
	if segLenSq > 0.0001 {
		t = ((base.X()-start.X())*segDX + (base.Z()-start.Z())*segDZ) / segLenSq
	}
	t = math.Max(0.0, math.Min(1.0, t))

	closestX := start.X() + segDX*t
	closestZ := start.Z() + segDZ*t
	dx := closestX - base.X()
	dz := closestZ - base.Z()
	inRadius := dx*dx+dz*dz <= radius*radius

	segMinY := math.Min(start.Y(), end.Y())
	segMaxY := math.Max(start.Y(), end.Y())
	inHeight := segMaxY >= base.Y() && segMinY <= base.Y()+height

	return inRadius && inHeight
}
