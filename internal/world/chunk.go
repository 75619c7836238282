package world

import (
	"github.com/takinashida/voxelcore/internal/vec"
	"github.com/takinashida/voxelcore/internal/world/block"
)

// FallbackFunc синтезирует блок для мировых координат за пределами
// массива чанка. Функция обязана быть детерминированной: повторный
// вызов с теми же координатами возвращает тот же блок.
type FallbackFunc func(wx, wy, wz int) block.ID

// Chunk представляет плотный трехмерный массив блоков фиксированного
// размера — единственный объем мира. Локальные индексы отображаются в
// мировые координаты через смещение origin.
//
// Все операции чтения тотальны: выход за пределы массива возвращает
// пустой блок либо, при подключенном fallback, детерминированно
// восстановленный процедурный блок. Запись за пределами массива не
// выполняется.
//
// Чанк не синхронизирован: вызовы выполняются последовательно из
// потока симуляции, параллелен только проход генерации, который
// завершается до возврата чанка.
type Chunk struct {
	width  int // Размер по X
	height int // Размер по Y
	depth  int // Размер по Z

	origin   vec.Vec3      // Мировые координаты ячейки (0, 0, 0)
	blocks   []block.ID    // Ячейки, линейный индекс (x*depth + z)*height + y
	dirty    *dirtyRegions // Регионы, затронутые с последнего дренажа
	fallback FallbackFunc  // Необязательный синтез блоков вне массива
}

// NewChunk создает чанк указанного размера с нулевым смещением.
// Все ячейки инициализированы пустым блоком.
func NewChunk(width, height, depth int) *Chunk {
	return NewChunkAt(vec.Vec3{}, width, height, depth)
}

// NewChunkAt создает чанк указанного размера со смещением origin.
// Неположительные размеры — ошибка программирования.
func NewChunkAt(origin vec.Vec3, width, height, depth int) *Chunk {
	if width <= 0 || height <= 0 || depth <= 0 {
		panic("world: размеры чанка должны быть положительными")
	}
	return &Chunk{
		width:  width,
		height: height,
		depth:  depth,
		origin: origin,
		blocks: make([]block.ID, width*height*depth),
		dirty:  newDirtyRegions(width, height, depth),
	}
}

// index возвращает линейный индекс ячейки по локальным координатам.
// Координаты обязаны быть в пределах массива: нарушение формулы
// индексации приводит к панике среза, что считается дефектом.
func (c *Chunk) index(lx, ly, lz int) int {
	return (lx*c.depth+lz)*c.height + ly
}

// Extents возвращает размеры чанка по осям.
func (c *Chunk) Extents() (width, height, depth int) {
	return c.width, c.height, c.depth
}

// Origin возвращает мировые координаты ячейки (0, 0, 0).
func (c *Chunk) Origin() vec.Vec3 {
	return c.origin
}

// SetFallback подключает процедурный синтез блоков за пределами
// массива. Передача nil отключает синтез: чтения вне массива снова
// возвращают пустой блок.
func (c *Chunk) SetFallback(fn FallbackFunc) {
	c.fallback = fn
}

// InBounds сообщает, попадают ли мировые координаты в массив чанка.
func (c *Chunk) InBounds(wx, wy, wz int) bool {
	lx, ly, lz := wx-c.origin.X, wy-c.origin.Y, wz-c.origin.Z
	return lx >= 0 && lx < c.width &&
		ly >= 0 && ly < c.height &&
		lz >= 0 && lz < c.depth
}

// GetBlock возвращает блок по мировым координатам. Никогда не
// завершается ошибкой: вне массива возвращается пустой блок или
// результат fallback.
func (c *Chunk) GetBlock(wx, wy, wz int) block.ID {
	lx, ly, lz := wx-c.origin.X, wy-c.origin.Y, wz-c.origin.Z
	if lx < 0 || lx >= c.width || ly < 0 || ly >= c.height || lz < 0 || lz >= c.depth {
		if c.fallback != nil {
			return c.fallback(wx, wy, wz)
		}
		return block.Air
	}
	return c.blocks[c.index(lx, ly, lz)]
}

// SetBlock устанавливает блок по мировым координатам. Вне массива
// запись не выполняется. Регионы помечаются грязными только если
// хранимое значение действительно изменилось; возвращается признак
// изменения.
func (c *Chunk) SetBlock(wx, wy, wz int, id block.ID) bool {
	lx, ly, lz := wx-c.origin.X, wy-c.origin.Y, wz-c.origin.Z
	if lx < 0 || lx >= c.width || ly < 0 || ly >= c.height || lz < 0 || lz >= c.depth {
		return false
	}
	idx := c.index(lx, ly, lz)
	if c.blocks[idx] == id {
		return false
	}
	c.blocks[idx] = id
	c.dirty.markAround(lx, ly, lz)
	return true
}

// HasDirtyRegions сообщает, есть ли регионы, ожидающие перестройки.
func (c *Chunk) HasDirtyRegions() bool {
	return c.dirty.hasAny()
}

// TakeDirtyRegions возвращает индексы регионов, затронутых с
// последнего дренажа, и атомарно снимает отметки. Единственная точка
// передачи изменений отрисовщику; вызывается ровно один раз за кадр.
// Новый чанк отдает все регионы: первый дренаж — полная перестройка.
func (c *Chunk) TakeDirtyRegions() []vec.Vec3 {
	return c.dirty.take()
}

// RegionCounts возвращает количество регионов по осям.
func (c *Chunk) RegionCounts() (nx, ny, nz int) {
	return c.dirty.nx, c.dirty.ny, c.dirty.nz
}

// RegionBounds возвращает мировой диапазон ячеек региона:
// минимальную ячейку включительно и максимальную включительно,
// обрезанные по размерам чанка.
func (c *Chunk) RegionBounds(region vec.Vec3) (min, max vec.Vec3) {
	min = vec.Vec3{
		X: c.origin.X + region.X*RegionSize,
		Y: c.origin.Y + region.Y*RegionSize,
		Z: c.origin.Z + region.Z*RegionSize,
	}
	max = vec.Vec3{
		X: min.X + RegionSize - 1,
		Y: min.Y + RegionSize - 1,
		Z: min.Z + RegionSize - 1,
	}
	top := c.origin.Add(vec.Vec3{X: c.width - 1, Y: c.height - 1, Z: c.depth - 1})
	if max.X > top.X {
		max.X = top.X
	}
	if max.Y > top.Y {
		max.Y = top.Y
	}
	if max.Z > top.Z {
		max.Z = top.Z
	}
	return min, max
}

// HighestSolidBelow сканирует колонну (wx, wz) вниз от maxY и
// возвращает высоту ровно над первым твердым блоком. Пустая до дна
// колонна дает уровень основания мира. Для колонн вне горизонтальной
// протяженности массива без подключенного fallback результата нет;
// с fallback ответ восстанавливается процедурно.
func (c *Chunk) HighestSolidBelow(wx, wz, maxY int) (int, bool) {
	lx, lz := wx-c.origin.X, wz-c.origin.Z
	outside := lx < 0 || lx >= c.width || lz < 0 || lz >= c.depth
	if outside && c.fallback == nil {
		return 0, false
	}
	y := maxY
	if top := c.origin.Y + c.height - 1; y > top {
		y = top
	}
	for ; y >= c.origin.Y; y-- {
		if c.GetBlock(wx, y, wz).IsSolid() {
			return y + 1, true
		}
	}
	return c.origin.Y, true
}
