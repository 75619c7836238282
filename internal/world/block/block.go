package block

// ID представляет идентификатор типа блока.
type ID uint16

// Константы ID блоков. Промежутки между категориями оставлены
// для возможности расширения без перенумерации.
const (
	// Пустота
	Air ID = 0

	// Почвенные блоки (начиная с 1)
	Grass      ID = 1 // Трава равнин и лесов
	Dirt       ID = 2 // Земля под травой
	Sand       ID = 3 // Песок пустынь и берегов
	Gravel     ID = 4 // Гравий
	SwampGrass ID = 5 // Болотная трава
	SnowGrass  ID = 6 // Заснеженная трава

	// Каменные блоки (начиная с 20)
	Stone       ID = 20 // Камень глубинных слоев
	Cobblestone ID = 21 // Булыжник
	Sandstone   ID = 22 // Песчаник под пустыней
	Bedrock     ID = 23 // Неразрушаемое основание мира

	// Руды (начиная с 40)
	CoalOre    ID = 40 // Угольная руда
	IronOre    ID = 41 // Железная руда
	GoldOre    ID = 42 // Золотая руда
	DiamondOre ID = 43 // Алмазная руда

	// Древесина и растения (начиная с 60)
	OakLog    ID = 60 // Ствол дуба
	OakLeaves ID = 61 // Листва дуба
	OakPlanks ID = 62 // Доски
	Cactus    ID = 63 // Кактус

	// Строительные блоки (начиная с 80)
	Glass    ID = 80 // Стекло, окна построек
	Brick    ID = 81 // Кирпич, стены построек
	RoofTile ID = 82 // Черепица, крыши построек

	// Покровные блоки (начиная с 100)
	Snow ID = 100 // Снежный покров
	Ice  ID = 101 // Лед на поверхности воды

	// Жидкости (начиная с 120)
	Water ID = 120 // Вода до уровня моря

	// Специальные блоки (начиная с 200)
	Target ID = 200 // Мишень стрельбища
)

// IsAir сообщает, является ли блок пустотой.
func (id ID) IsAir() bool {
	return id == Air
}

// IsSolid сообщает, участвует ли блок в коллизиях.
// Твердым считается любой непустой блок, включая жидкости:
// сущности не проходят сквозь воду, а лучи останавливаются на ней.
func (id ID) IsSolid() bool {
	return id != Air
}

// IsLiquid сообщает, является ли блок жидкостью.
func (id ID) IsLiquid() bool {
	return id == Water
}

// String возвращает читаемое имя блока из каталога.
func (id ID) String() string {
	if props, ok := Get(id); ok {
		return props.Name
	}
	return "Unknown"
}
