package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/takinashida/voxelcore/internal/config"
	"github.com/takinashida/voxelcore/internal/eventbus"
	"github.com/takinashida/voxelcore/internal/logging"
	"github.com/takinashida/voxelcore/internal/metrics"
	"github.com/takinashida/voxelcore/internal/middleware"
	"github.com/takinashida/voxelcore/internal/vec"
	"github.com/takinashida/voxelcore/internal/world"
	"github.com/takinashida/voxelcore/internal/world/block"
)

// simSnapshot — показания симуляции для HTTP-эндпоинтов. Мир не защищён
// мьютексом, поэтому цикл тиков публикует снимок атомарно, а HTTP-сервер
// читает только снимок.
type simSnapshot struct {
	Tick        uint64
	Bullets     int
	Explosives  int
	Particles   int
	Mobs        int
	TotalDamage float64
}

var lastSnapshot atomic.Pointer[simSnapshot]

func main() {
	configPath := flag.String("config", "", "путь к YAML-конфигурации")
	seed := flag.Int64("seed", 0, "сид мира (перекрывает конфигурацию)")
	maxTicks := flag.Uint64("ticks", 0, "остановиться после N тиков (0 — без ограничения)")
	tpsOverride := flag.Int("tps", 0, "тиков в секунду (перекрывает конфигурацию)")
	httpOverride := flag.Int("http", 0, "порт HTTP-сервера (перекрывает конфигурацию)")
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.Init("worldsim"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.Close()
	defer logging.GetLoggerManager().CloseAll()

	logging.Info("🧊 Запуск симуляции воксельного мира...")
	logging.Info("🧱 Каталог блоков: %d видов", len(block.All()))

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка чтения конфигурации: %v", err)
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
		logging.Info("📄 Конфигурация не задана — используются значения по умолчанию")
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}
	if *tpsOverride > 0 {
		cfg.Sim.TicksPerSecond = *tpsOverride
	}
	if *httpOverride > 0 {
		cfg.Server.HTTPPort = *httpOverride
	}

	// === ШИНА СОБЫТИЙ И МЕТРИКИ ===
	bus := eventbus.NewMemoryBus(cfg.EventBus.GetBuffer())
	if err := eventbus.StartLoggingListener(bus); err != nil {
		logging.Warn("Шина: не удалось подписать лог-слушатель: %v", err)
	}
	busExporter := eventbus.NewMetricsExporter(bus)
	busExporter.Start()
	defer busExporter.Stop()

	worldMetrics := metrics.NewWorldMetrics()

	// === МИР ===
	w := world.New(world.Params{
		Seed:          cfg.World.Seed,
		Origin:        vec.V3(cfg.World.OriginX, cfg.World.OriginY, cfg.World.OriginZ),
		Width:         cfg.World.Width,
		Height:        cfg.World.Height,
		Depth:         cfg.World.Depth,
		MaxMobs:       cfg.Mobs.Max,
		SpawnInterval: cfg.Mobs.SpawnIntervalTicks,
	})
	w.SetEventBus(bus)
	w.SetMetrics(worldMetrics)

	// === HTTP-СЕРВЕР НАБЛЮДЕНИЯ ===
	sysStats := metrics.NewSystemStats()
	sysExporter := metrics.NewSystemExporter(sysStats)
	sysExporter.Start()
	defer sysExporter.Stop()

	httpAddr := fmt.Sprintf(":%d", cfg.Server.GetHTTPPort())
	go serveHTTP(httpAddr, sysStats)

	target := w.Generator().TargetPosition()
	tps := cfg.Sim.GetTicksPerSecond()

	logging.Info("✅ Симуляция запущена: %d тиков/с, мишень на %s", tps, target)
	logging.Info("   🌐 Наблюдение: http://localhost%s/healthz /stats /metrics", httpAddr)

	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var totalDamage float64
	var rebuilds int

	running := true
	for running {
		select {
		case <-ticker.C:
			tick := w.CurrentTick()
			player := orbitingPlayer(target, tick)
			aim := aimAt(target, player)

			// Демонстрационный игрок: облетает мишень, стреляет по ней,
			// изредка бросает взрывчатку и ломает блок под собой.
			if tick%180 == 0 {
				w.SpawnBullet(player, aim)
				if cell, ok := w.CheckTargetHit(player, aim, 120); ok {
					logging.Info("🎯 Попадание по мишени %s (тик %d)", cell, tick)
				}
			}
			if tick%1800 == 900 {
				w.SpawnExplosive(player, aim)
			}
			if tick%600 == 300 {
				w.BreakBlockFromRay(player, mgl64.Vec3{0, -1, 0}, 30)
			}

			res := w.Step(player)
			totalDamage += res.PlayerDamage

			if res.WorldChanged || w.HasDirtyRegions() {
				if regions := w.TakeDirtyRegions(); len(regions) > 0 {
					rebuilds++
					logging.Debug("Ремеш: %d регионов (тик %d)", len(regions), tick)
				}
			}

			lastSnapshot.Store(&simSnapshot{
				Tick:        w.CurrentTick(),
				Bullets:     len(w.Bullets()),
				Explosives:  len(w.Explosives()),
				Particles:   len(w.Particles()),
				Mobs:        len(w.Mobs()),
				TotalDamage: totalDamage,
			})

			if *maxTicks > 0 && w.CurrentTick() >= *maxTicks {
				logging.Info("⏱ Достигнут лимит %d тиков", *maxTicks)
				running = false
			}
		case sig := <-sigCh:
			logging.Info("📡 Получен сигнал %v, завершение работы...", sig)
			running = false
		}
	}

	logging.Info("📊 Итоги: %d тиков, %d ремешей, урон игроку %.0f, мобов живо %d",
		w.CurrentTick(), rebuilds, totalDamage, len(w.Mobs()))
	logging.Info("👋 Симуляция успешно остановлена")
}

// orbitingPlayer водит демонстрационного игрока по кругу над мишенью.
func orbitingPlayer(target vec.Vec3, tick uint64) mgl64.Vec3 {
	const orbitRadius = 24.0
	angle := float64(tick) * 0.005
	return mgl64.Vec3{
		float64(target.X) + orbitRadius*math.Cos(angle),
		float64(target.Y) + 6,
		float64(target.Z) + orbitRadius*math.Sin(angle),
	}
}

// aimAt возвращает направление от игрока к центру клетки мишени.
func aimAt(target vec.Vec3, player mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		float64(target.X) + 0.5 - player[0],
		float64(target.Y) + 0.5 - player[1],
		float64(target.Z) + 0.5 - player[2],
	}
}

// serveHTTP поднимает вспомогательный сервер наблюдения: /healthz, /stats
// и Prometheus /metrics.
func serveHTTP(addr string, sysStats *metrics.SystemStats) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery
	router.Use(middleware.NewRequestLogger().Handler())

	promMw := middleware.NewPrometheusMiddleware("worldsim")
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": sysStats.GetUptime(),
		})
	})

	router.GET("/stats", func(c *gin.Context) {
		memMB, _ := sysStats.GetMemoryUsage()
		cpuPct, _ := sysStats.GetCPUUsage()

		payload := gin.H{
			"uptime":    sysStats.GetUptime(),
			"memory_mb": memMB,
			"cpu_pct":   cpuPct,
			"memory":    sysStats.GetDetailedMemoryStats(),
		}
		if snap := lastSnapshot.Load(); snap != nil {
			payload["tick"] = snap.Tick
			payload["bullets"] = snap.Bullets
			payload["explosives"] = snap.Explosives
			payload["particles"] = snap.Particles
			payload["mobs"] = snap.Mobs
			payload["player_damage"] = snap.TotalDamage
		}
		c.JSON(http.StatusOK, payload)
	})

	logging.Info("🌐 HTTP-сервер наблюдения на %s", addr)
	if err := router.Run(addr); err != nil {
		logging.Error("Ошибка HTTP-сервера: %v", err)
	}
}
