package monitor

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

// HostStats is the live host telemetry shown alongside the firewall
// statistics. Unlike Statistics.SystemUptime this is measured, not simulated.
type HostStats struct {
	Hostname      string  `json:"hostname"`
	Platform      string  `json:"platform"`
	UptimeSeconds uint64  `json:"uptime_seconds"`
	CPUPercent    float64 `json:"cpu_percent"`
	CPUCores      int     `json:"cpu_cores"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryTotal   uint64  `json:"memory_total"`
	BytesSent     uint64  `json:"bytes_sent"`
	BytesRecv     uint64  `json:"bytes_recv"`
}

// GetHostStats samples the host. Individual probe failures leave that field
// zeroed rather than failing the whole snapshot, so a snapshot is always
// returned.
func GetHostStats() *HostStats {
	stats := &HostStats{CPUCores: runtime.NumCPU()}

	if percent, err := cpu.Percent(200*time.Millisecond, false); err == nil && len(percent) > 0 {
		stats.CPUPercent = percent[0]
	}

	if memInfo, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = memInfo.UsedPercent
		stats.MemoryTotal = memInfo.Total
	}

	if netIO, err := net.IOCounters(false); err == nil && len(netIO) > 0 {
		stats.BytesSent = netIO[0].BytesSent
		stats.BytesRecv = netIO[0].BytesRecv
	}

	if hostInfo, err := host.Info(); err == nil {
		stats.Hostname = hostInfo.Hostname
		stats.Platform = hostInfo.Platform
		stats.UptimeSeconds = hostInfo.Uptime
	}

	return stats
}
