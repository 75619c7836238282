package metrics

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// SystemStats отдаёт показатели процесса симуляции для эндпоинта /stats.
type SystemStats struct {
	StartTime time.Time
}

// NewSystemStats создает новый экземпляр метрик процесса
func NewSystemStats() *SystemStats {
	return &SystemStats{
		StartTime: time.Now(),
	}
}

// GetUptime возвращает время работы процесса
func (ss *SystemStats) GetUptime() string {
	uptime := time.Since(ss.StartTime)

	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	} else if hours > 0 {
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	} else {
		return fmt.Sprintf("%dс", seconds)
	}
}

// GetMemoryUsage возвращает использование памяти в MB
func (ss *SystemStats) GetMemoryUsage() (float64, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	// Преобразуем байты в мегабайты
	memoryMB := float64(m.Alloc) / 1024 / 1024
	return memoryMB, nil
}

// GetCPUUsage возвращает использование CPU процессом в процентах
func (ss *SystemStats) GetCPUUsage() (float64, error) {
	pid := int32(os.Getpid())
	proc, err := process.NewProcess(pid)
	if err != nil {
		return 0, err
	}

	// Получаем процент использования CPU за последний интервал
	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		// Если не удалось получить метрику процесса, попробуем системную
		cpuPercents, err := cpu.Percent(100*time.Millisecond, false)
		if err != nil || len(cpuPercents) == 0 {
			return 0, err
		}
		return cpuPercents[0], nil
	}

	return cpuPercent, nil
}

// GetDetailedMemoryStats возвращает детальную статистику памяти
func (ss *SystemStats) GetDetailedMemoryStats() map[string]interface{} {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return map[string]interface{}{
		"alloc_mb":       float64(m.Alloc) / 1024 / 1024,
		"total_alloc_mb": float64(m.TotalAlloc) / 1024 / 1024,
		"sys_mb":         float64(m.Sys) / 1024 / 1024,
		"heap_alloc_mb":  float64(m.HeapAlloc) / 1024 / 1024,
		"num_gc":         m.NumGC,
		"goroutines":     runtime.NumGoroutine(),
	}
}

// SystemExporter периодически снимает показатели процесса через SystemStats
// и публикует их как Prometheus-гейджи. Дополняет стандартные коллекторы
// client_golang агрегатами, которые показывает /stats.
type SystemExporter struct {
	stats *SystemStats
	quit  chan struct{}
	done  chan struct{}

	cpuPercent prometheus.Gauge
	memoryMB   prometheus.Gauge
	goroutines prometheus.Gauge
}

// NewSystemExporter создаёт экспортер и регистрирует метрики.
func NewSystemExporter(stats *SystemStats) *SystemExporter {
	se := &SystemExporter{
		stats: stats,
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
		cpuPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "system",
			Name:      "cpu_percent",
			Help:      "Загрузка CPU процессом симуляции, в процентах.",
		}),
		memoryMB: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "system",
			Name:      "memory_alloc_mb",
			Help:      "Память, занятая кучей Go, в мегабайтах.",
		}),
		goroutines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "system",
			Name:      "goroutines",
			Help:      "Количество активных горутин.",
		}),
	}

	prometheus.MustRegister(se.cpuPercent, se.memoryMB, se.goroutines)
	return se
}

// Start запускает периодический опрос показателей.
func (se *SystemExporter) Start() {
	go se.loop()
}

// Stop останавливает опрос.
func (se *SystemExporter) Stop() {
	close(se.quit)
	<-se.done
}

func (se *SystemExporter) loop() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	defer close(se.done)

	for {
		select {
		case <-ticker.C:
			if cpuPct, err := se.stats.GetCPUUsage(); err == nil {
				se.cpuPercent.Set(cpuPct)
			}
			if memMB, err := se.stats.GetMemoryUsage(); err == nil {
				se.memoryMB.Set(memMB)
			}
			se.goroutines.Set(float64(runtime.NumGoroutine()))
		case <-se.quit:
			return
		}
	}
}
