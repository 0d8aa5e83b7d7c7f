// Package resmon samples host CPU and memory utilisation and mirrors every
// sample onto the global otel meter.
package resmon

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"go.opentelemetry.io/otel"
)

var meter = otel.Meter("brewmine/resmon")
var cpuGauge, _ = meter.Float64Gauge("cpu_usage_percent")
var ramGauge, _ = meter.Float64Gauge("ram_usage_percent")
var allocGauge, _ = meter.Int64Gauge("allocated_mb")
var goroutineGauge, _ = meter.Int64Gauge("goroutine_count")

type Sample struct {
	CPUPercent float64
	RAMPercent float64
	AllocMB    int64
	Goroutines int
}

type Sampler interface {
	Sample(ctx context.Context) (Sample, error)
}

// SystemSampler measures CPU usage over Interval (one second when zero).
type SystemSampler struct {
	Interval time.Duration
}

func (s SystemSampler) Sample(ctx context.Context) (Sample, error) {
	interval := s.Interval
	if interval <= 0 {
		interval = time.Second
	}

	cpuUsage, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		return Sample{}, fmt.Errorf("read cpu usage: %w", err)
	}
	if len(cpuUsage) == 0 {
		return Sample{}, fmt.Errorf("read cpu usage: no samples returned")
	}
	vmem, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Sample{}, fmt.Errorf("read memory usage: %w", err)
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	sample := Sample{
		CPUPercent: cpuUsage[0],
		RAMPercent: vmem.UsedPercent,
		AllocMB:    int64(memStats.Alloc / 1_000_000),
		Goroutines: runtime.NumGoroutine(),
	}
	Record(ctx, sample)
	return sample, nil
}

// Record writes a sample to the resource gauges.
func Record(ctx context.Context, s Sample) {
	cpuGauge.Record(ctx, s.CPUPercent)
	ramGauge.Record(ctx, s.RAMPercent)
	allocGauge.Record(ctx, s.AllocMB)
	goroutineGauge.Record(ctx, int64(s.Goroutines))
}

// Watch samples in the background every `every` until ctx is done.
func Watch(ctx context.Context, sampler Sampler, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s, err := sampler.Sample(ctx)
				if err != nil {
					if ctx.Err() == nil {
						slog.WarnContext(ctx, "failed to sample resources", "err", err)
					}
					continue
				}
				slog.DebugContext(
					ctx, "resource sample",
					"cpu_percent", s.CPUPercent,
					"ram_percent", s.RAMPercent,
					"allocated_mb", s.AllocMB,
				)
			case <-ctx.Done():
				return
			}
		}
	}()
}
