package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// WorldMetrics — Prometheus-метрики симуляции мира. Счётчики инкрементирует
// сам мир по ходу тика, датчики населения обновляются в конце каждого тика.
type WorldMetrics struct {
	Ticks        prometheus.Counter
	TickDuration prometheus.Histogram

	BlocksBroken   prometheus.Counter
	BlocksPlaced   prometheus.Counter
	Explosions     prometheus.Counter
	MobsSpawned    prometheus.Counter
	MobsDied       prometheus.Counter
	PlayerDamage   prometheus.Counter
	TargetHits     prometheus.Counter
	RegionsDrained prometheus.Counter

	Bullets    prometheus.Gauge
	Explosives prometheus.Gauge
	Particles  prometheus.Gauge
	Mobs       prometheus.Gauge

	GenerationSeconds prometheus.Gauge
}

// NewWorldMetrics создаёт метрики и регистрирует их в глобальном регистре.
func NewWorldMetrics() *WorldMetrics {
	wm := &WorldMetrics{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "ticks_total",
			Help:      "Число выполненных тиков симуляции.",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "world",
			Name:      "tick_duration_seconds",
			Help:      "Длительность одного тика симуляции.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		BlocksBroken: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "blocks_broken_total",
			Help:      "Разрушено блоков (вручную, лучом и взрывами).",
		}),
		BlocksPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "blocks_placed_total",
			Help:      "Установлено блоков.",
		}),
		Explosions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "explosions_total",
			Help:      "Число детонаций.",
		}),
		MobsSpawned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "mobs_spawned_total",
			Help:      "Появилось мобов.",
		}),
		MobsDied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "mobs_died_total",
			Help:      "Погибло мобов.",
		}),
		PlayerDamage: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "player_damage_total",
			Help:      "Суммарный урон, нанесённый игроку мобами.",
		}),
		TargetHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "target_hits_total",
			Help:      "Попаданий по блоку-мишени.",
		}),
		RegionsDrained: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "world",
			Name:      "regions_drained_total",
			Help:      "Грязных регионов, выданных на перестройку меша.",
		}),
		Bullets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "world",
			Name:      "bullets",
			Help:      "Живых пуль в симуляции.",
		}),
		Explosives: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "world",
			Name:      "explosives",
			Help:      "Живой взрывчатки в симуляции.",
		}),
		Particles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "world",
			Name:      "particles",
			Help:      "Живых частиц в симуляции.",
		}),
		Mobs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "world",
			Name:      "mobs",
			Help:      "Живых мобов в симуляции.",
		}),
		GenerationSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "world",
			Name:      "generation_seconds",
			Help:      "Длительность генерации мира при старте.",
		}),
	}

	prometheus.MustRegister(
		wm.Ticks, wm.TickDuration,
		wm.BlocksBroken, wm.BlocksPlaced, wm.Explosions,
		wm.MobsSpawned, wm.MobsDied, wm.PlayerDamage, wm.TargetHits,
		wm.RegionsDrained,
		wm.Bullets, wm.Explosives, wm.Particles, wm.Mobs,
		wm.GenerationSeconds,
	)
	return wm
}
