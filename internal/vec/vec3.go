package vec

import "fmt"

// Vec3 представляет трехмерный вектор с целочисленными координатами.
// Используется для адресации блоков и регионов мира: X и Z — горизонтальная
// плоскость, Y — высота.
type Vec3 struct {
	X int
	Y int
	Z int
}

// V3 создает Vec3 из трех координат.
func V3(x, y, z int) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add складывает два вектора.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub вычитает другой вектор.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Equals проверяет равенство векторов.
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// String возвращает строковое представление вида (x, y, z).
func (v Vec3) String() string {
	return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z)
}
