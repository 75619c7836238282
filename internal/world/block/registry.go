package block

// Properties описывает статические свойства типа блока.
type Properties struct {
	Name     string     // Читаемое имя блока
	Color    [3]float32 // Базовый цвет RGB для отрисовки (0..1)
	Passable bool       // Можно ли пройти сквозь блок
	Liquid   bool       // Является ли блок жидкостью
}

var registry = make(map[ID]Properties)

// Register добавляет свойства блока в регистр. Повторная регистрация
// того же ID перезаписывает предыдущие свойства.
func Register(id ID, props Properties) {
	registry[id] = props
}

// Get возвращает свойства для указанного ID.
func Get(id ID) (Properties, bool) {
	props, exists := registry[id]
	return props, exists
}

// IsValid проверяет, является ли ID зарегистрированным типом блока.
func IsValid(id ID) bool {
	_, exists := registry[id]
	return exists
}

// All возвращает копию регистра. Используется отладочными
// инструментами и статистикой.
func All() map[ID]Properties {
	out := make(map[ID]Properties, len(registry))
	for id, props := range registry {
		out[id] = props
	}
	return out
}
