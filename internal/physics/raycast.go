package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/takinashida/voxelcore/internal/vec"
	"github.com/takinashida/voxelcore/internal/world/block"
)

// Raycast продвигает точку вдоль нормированного направления с
// фиксированным шагом и возвращает координаты первой непустой ячейки.
// Нулевое направление дает отсутствие попадания без продвижения;
// исчерпание дистанции — отсутствие попадания. Шаг — компромисс между
// точностью (пропуск тонкой геометрии) и стоимостью.
func Raycast(src BlockSource, origin, direction mgl64.Vec3, maxDistance, step float64) (vec.Vec3, bool) {
	return RaycastFilter(src, origin, direction, maxDistance, step, nil)
}

// RaycastFilter выполняет тот же марш, но решение принимает первая
// непустая ячейка: если ее блок проходит предикат accept, это
// попадание, иначе луч перекрыт и попадания нет. Нулевой accept
// принимает любой непустой блок. Все взаимодействия
// «сломать/поставить/выстрелить» используют этот примитив с разными
// шагами и предикатами.
func RaycastFilter(src BlockSource, origin, direction mgl64.Vec3, maxDistance, step float64, accept func(block.ID) bool) (vec.Vec3, bool) {
	if direction.Dot(direction) <= 0.0 {
		return vec.Vec3{}, false
	}
	dir := direction.Normalize()

	for distance := 0.0; distance <= maxDistance; distance += step {
		cell := Cell(origin.Add(dir.Mul(distance)))
		id := src.GetBlock(cell.X, cell.Y, cell.Z)
		if id.IsAir() {
			continue
		}
		if accept == nil || accept(id) {
			return cell, true
		}
		return vec.Vec3{}, false
	}
	return vec.Vec3{}, false
}
