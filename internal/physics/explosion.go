package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/takinashida/voxelcore/internal/world/block"
)

// Explode очищает все непустые ячейки, центры которых лежат в пределах
// радиуса от center, и сообщает, изменилась ли хоть одна ячейка.
// Сферический тест сравнивает центры ячеек с радиусом включительно.
// Очистка идет через SetBlock хранилища, поэтому грязные регионы
// обновляются штатно, а записи за пределами объема отклоняются.
func Explode(store BlockStore, center mgl64.Vec3, radius float64) bool {
	changed := false
	r2 := radius * radius
	minX := int(math.Floor(center.X() - radius))
	maxX := int(math.Ceil(center.X() + radius))
	minY := int(math.Floor(center.Y() - radius))
	maxY := int(math.Ceil(center.Y() + radius))
	minZ := int(math.Floor(center.Z() - radius))
	maxZ := int(math.Ceil(center.Z() + radius))

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				dx := float64(x) + 0.5 - center.X()
				dy := float64(y) + 0.5 - center.Y()
				dz := float64(z) + 0.5 - center.Z()
				if dx*dx+dy*dy+dz*dz > r2 {
					continue
				}
				if store.GetBlock(x, y, z).IsAir() {
					continue
				}
				if store.SetBlock(x, y, z, block.Air) {
					changed = true
				}
			}
		}
	}
	return changed
}
