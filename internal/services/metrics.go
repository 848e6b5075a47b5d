package services

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"goaltracker-backend-go/internal/sheets"
)

type MetricSample struct {
	CapturedAt        time.Time `json:"capturedAt"`
	ProcessRSSBytes   int64     `json:"processRssBytes"`
	SystemMemoryTotal int64     `json:"systemMemoryTotalBytes"`
	SystemMemoryUsed  int64     `json:"systemMemoryUsedBytes"`
	DiskTotalBytes    int64     `json:"diskTotalBytes"`
	DiskUsedBytes     int64     `json:"diskUsedBytes"`
	ProcessCpuLoad    float64   `json:"processCpuLoad"`
	SystemCpuLoad     float64   `json:"systemCpuLoad"`
	RowsScanned       int64     `json:"rowsScanned"`
	RowsSkipped       int64     `json:"rowsSkipped"`
}

// CaptureMetrics samples process and host load plus the store's
// scanned/skipped row counters.
func CaptureMetrics(stats *sheets.Stats, diskPath string) MetricSample {
	proc, _ := process.NewProcess(int32(os.Getpid()))
	memStat, _ := mem.VirtualMemory()
	diskStat, err := disk.Usage(diskPath)
	if err != nil {
		diskStat, _ = disk.Usage("/")
	}
	processRSS := int64(0)
	processCPU := float64(0)
	if proc != nil {
		rss, _ := proc.MemoryInfo()
		if rss != nil {
			processRSS = int64(rss.RSS)
		}
		cpuPerc, _ := proc.CPUPercent()
		processCPU = cpuPerc / 100.0
	}
	sysCPU, _ := cpu.Percent(0, false)
	sysCPUValue := 0.0
	if len(sysCPU) > 0 {
		sysCPUValue = sysCPU[0] / 100.0
	}
	scanned, skipped := stats.Snapshot()

	sample := MetricSample{
		CapturedAt:      time.Now().UTC(),
		ProcessRSSBytes: processRSS,
		ProcessCpuLoad:  processCPU,
		SystemCpuLoad:   sysCPUValue,
		RowsScanned:     scanned,
		RowsSkipped:     skipped,
	}
	if memStat != nil {
		sample.SystemMemoryTotal = int64(memStat.Total)
		sample.SystemMemoryUsed = int64(memStat.Total - memStat.Available)
	}
	if diskStat != nil {
		sample.DiskTotalBytes = int64(diskStat.Total)
		sample.DiskUsedBytes = int64(diskStat.Used)
	}
	return sample
}

const metricsHistorySize = 500

// MetricsHub keeps a bounded in-process sample history and fans fresh
// samples out to connected websocket clients.
type MetricsHub struct {
	mu      sync.Mutex
	history []MetricSample
	clients map[*websocket.Conn]bool
	ch      chan MetricSample
}

func NewMetricsHub() *MetricsHub {
	return &MetricsHub{
		clients: map[*websocket.Conn]bool{},
		ch:      make(chan MetricSample, 16),
	}
}

func (h *MetricsHub) Run(ctx context.Context) {
	for {
		select {
		case sample := <-h.ch:
			h.mu.Lock()
			h.history = append(h.history, sample)
			if len(h.history) > metricsHistorySize {
				h.history = h.history[len(h.history)-metricsHistorySize:]
			}
			for conn := range h.clients {
				_ = conn.WriteJSON(sample)
			}
			h.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

func (h *MetricsHub) Broadcast(sample MetricSample) {
	select {
	case h.ch <- sample:
	default:
	}
}

// History returns up to limit of the most recent samples, oldest first.
func (h *MetricsHub) History(limit int) []MetricSample {
	h.mu.Lock()
	defer h.mu.Unlock()
	items := h.history
	if limit > 0 && len(items) > limit {
		items = items[len(items)-limit:]
	}
	out := make([]MetricSample, len(items))
	copy(out, items)
	return out
}

func (h *MetricsHub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *MetricsHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}
