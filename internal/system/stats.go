package system

import (
	"fmt"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemStats represents host resource statistics for the dashboard
type SystemStats struct {
	CPU       CPUStats    `json:"cpu"`
	Memory    MemoryStats `json:"memory"`
	Disk      DiskStats   `json:"disk"`
	Timestamp time.Time   `json:"timestamp"`
}

// CPUStats represents CPU usage statistics
type CPUStats struct {
	UsagePercent float64 `json:"usage_percent"`
	Cores        int     `json:"cores"`
}

// MemoryStats represents memory usage statistics
type MemoryStats struct {
	Total        uint64  `json:"total_bytes"`
	Used         uint64  `json:"used_bytes"`
	Free         uint64  `json:"free_bytes"`
	Available    uint64  `json:"available_bytes"`
	UsagePercent float64 `json:"usage_percent"`
}

// DiskStats represents disk usage statistics for the media directory
type DiskStats struct {
	Total        uint64  `json:"total_bytes"`
	Used         uint64  `json:"used_bytes"`
	Free         uint64  `json:"free_bytes"`
	UsagePercent float64 `json:"usage_percent"`
	Path         string  `json:"path"`
}

// Collector gathers host statistics
type Collector struct {
	diskPath string
}

// NewCollector creates a collector that reports disk usage for diskPath
func NewCollector(diskPath string) *Collector {
	if diskPath == "" {
		diskPath = "/"
	}
	return &Collector{diskPath: diskPath}
}

// Collect gathers CPU, memory and disk statistics
func (c *Collector) Collect() (*SystemStats, error) {
	stats := &SystemStats{
		Timestamp: time.Now(),
	}

	// CPU usage averaged over a short interval
	percentages, err := cpu.Percent(200*time.Millisecond, false)
	if err != nil {
		return nil, fmt.Errorf("failed to collect CPU stats: %w", err)
	}
	if len(percentages) > 0 {
		stats.CPU.UsagePercent = percentages[0]
	}
	stats.CPU.Cores = runtime.NumCPU()

	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to collect memory stats: %w", err)
	}
	stats.Memory = MemoryStats{
		Total:        vm.Total,
		Used:         vm.Used,
		Free:         vm.Free,
		Available:    vm.Available,
		UsagePercent: vm.UsedPercent,
	}

	usage, err := disk.Usage(c.diskPath)
	if err != nil {
		// Media dir may not exist yet; fall back to root
		usage, err = disk.Usage("/")
		if err != nil {
			return nil, fmt.Errorf("failed to collect disk stats: %w", err)
		}
	}
	stats.Disk = DiskStats{
		Total:        usage.Total,
		Used:         usage.Used,
		Free:         usage.Free,
		UsagePercent: usage.UsedPercent,
		Path:         usage.Path,
	}

	return stats, nil
}
