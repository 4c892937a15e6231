// Package sysmon reads host cpu, memory and disk utilisation for the
// maintenance endpoint.
package sysmon

import (
	"context"
	"math"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

const (
	StatusNormal  = "normal"
	StatusWarning = "warning"
	StatusError   = "error"

	warningThreshold = 80
	errorThreshold   = 90

	cpuSampleInterval = time.Second
)

// Snapshot is the utilisation report returned by the maintenance endpoint.
type Snapshot struct {
	Status    string  `json:"status"`
	Details   Details `json:"details"`
	Timestamp string  `json:"timestamp"`
}

// Details holds utilisation percentages, rounded to two decimals.
type Details struct {
	CPU    float64 `json:"cpu"`
	Memory float64 `json:"memory"`
	Disk   float64 `json:"disk"`
}

// Monitor samples host metrics for a configured disk path.
type Monitor struct {
	diskPath string
}

func NewMonitor(diskPath string) *Monitor {
	if diskPath == "" {
		diskPath = "/"
	}
	return &Monitor{diskPath: diskPath}
}

// Collect samples cpu (over a one second window), virtual memory and disk
// usage, and grades the result: warning above 80%, error above 90%.
func (m *Monitor) Collect(ctx context.Context) (Snapshot, error) {
	cpuPercents, err := cpu.PercentWithContext(ctx, cpuSampleInterval, false)
	if err != nil {
		return Snapshot{}, err
	}
	var cpuPercent float64
	if len(cpuPercents) > 0 {
		cpuPercent = cpuPercents[0]
	}

	memInfo, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	diskInfo, err := disk.UsageWithContext(ctx, m.diskPath)
	if err != nil {
		return Snapshot{}, err
	}

	details := Details{
		CPU:    round2(cpuPercent),
		Memory: round2(memInfo.UsedPercent),
		Disk:   round2(diskInfo.UsedPercent),
	}

	return Snapshot{
		Status:    statusLevel(details),
		Details:   details,
		Timestamp: time.Now().Format(time.RFC3339),
	}, nil
}

func statusLevel(details Details) string {
	status := StatusNormal
	for _, value := range []float64{details.CPU, details.Memory, details.Disk} {
		if value > errorThreshold {
			return StatusError
		}
		if value > warningThreshold {
			status = StatusWarning
		}
	}
	return status
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
