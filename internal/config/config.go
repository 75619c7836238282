package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации симуляции мира.
// Нулевые значения означают «взять значение по умолчанию».
type Config struct {
	World    WorldConfig    `yaml:"world"`
	Mobs     MobsConfig     `yaml:"mobs"`
	Sim      SimConfig      `yaml:"sim"`
	Server   ServerConfig   `yaml:"server"`
	EventBus EventBusConfig `yaml:"eventbus"`
}

// WorldConfig задаёт сид, размеры и мировое смещение объёма.
type WorldConfig struct {
	Seed    int64 `yaml:"seed"`
	Width   int   `yaml:"width"`
	Height  int   `yaml:"height"`
	Depth   int   `yaml:"depth"`
	OriginX int   `yaml:"origin_x"`
	OriginY int   `yaml:"origin_y"`
	OriginZ int   `yaml:"origin_z"`
}

// MobsConfig управляет населением мобов.
type MobsConfig struct {
	Max                int `yaml:"max"`
	SpawnIntervalTicks int `yaml:"spawn_interval_ticks"`
}

// SimConfig управляет циклом симуляции.
type SimConfig struct {
	TicksPerSecond int `yaml:"ticks_per_second"`
}

// ServerConfig задаёт порт вспомогательного HTTP-сервера.
type ServerConfig struct {
	HTTPPort int `yaml:"http_port"`
}

// EventBusConfig задаёт параметры внутренней шины событий.
type EventBusConfig struct {
	Buffer int `yaml:"buffer"`
}

// GetTicksPerSecond возвращает частоту тиков с fallback на 60
func (s *SimConfig) GetTicksPerSecond() int {
	if s.TicksPerSecond > 0 {
		return s.TicksPerSecond
	}
	return 60
}

// GetHTTPPort возвращает HTTP порт с поддержкой fallback значений
func (s *ServerConfig) GetHTTPPort() int {
	return getPortWithEnvFallback(s.HTTPPort, "VOXELCORE_HTTP_PORT", 8088)
}

// GetBuffer возвращает ёмкость буфера шины с fallback на 1024
func (e *EventBusConfig) GetBuffer() int {
	if e.Buffer > 0 {
		return e.Buffer
	}
	return 1024
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	// Если порт задан в конфиге и больше 0, используем его
	if configPort > 0 {
		return configPort
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	// Используем дефолтное значение
	return defaultPort
}

// Validate проверяет согласованность значений.
func (c *Config) Validate() error {
	w := c.World
	if w.Width < 0 || w.Height < 0 || w.Depth < 0 {
		return fmt.Errorf("config: размеры мира не могут быть отрицательными (%d×%d×%d)", w.Width, w.Height, w.Depth)
	}
	if c.Mobs.Max < 0 {
		return fmt.Errorf("config: потолок населения мобов не может быть отрицательным (%d)", c.Mobs.Max)
	}
	if c.Mobs.SpawnIntervalTicks < 0 {
		return fmt.Errorf("config: интервал спавна не может быть отрицательным (%d)", c.Mobs.SpawnIntervalTicks)
	}
	if c.Sim.TicksPerSecond < 0 {
		return fmt.Errorf("config: частота тиков не может быть отрицательной (%d)", c.Sim.TicksPerSecond)
	}
	return nil
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV VOXELCORE_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("VOXELCORE_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
