package crc

import (
	"sync/atomic"
	"time"
)

// Metrics 计算过程的运行指标
// 所有字段通过atomic访问，可被多个计算器并发更新
type Metrics struct {
	TotalChecksums int64
	TotalBytes     int64
	VerifyHits     int64
	VerifyMisses   int64
	TableBuilds    int64
	StartTime      time.Time
}

// NewMetrics 创建新的指标收集器
func NewMetrics() *Metrics {
	return &Metrics{StartTime: time.Now()}
}

// GlobalMetrics 全局指标收集器
var GlobalMetrics = NewMetrics()

func (m *Metrics) recordChecksum(bytes int64) {
	atomic.AddInt64(&m.TotalChecksums, 1)
	atomic.AddInt64(&m.TotalBytes, bytes)
}

func (m *Metrics) recordVerify(ok bool) {
	if ok {
		atomic.AddInt64(&m.VerifyHits, 1)
	} else {
		atomic.AddInt64(&m.VerifyMisses, 1)
	}
}

func (m *Metrics) recordTableBuild() {
	atomic.AddInt64(&m.TableBuilds, 1)
}

// Snapshot 返回当前指标的一致性快照
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		TotalChecksums: atomic.LoadInt64(&m.TotalChecksums),
		TotalBytes:     atomic.LoadInt64(&m.TotalBytes),
		VerifyHits:     atomic.LoadInt64(&m.VerifyHits),
		VerifyMisses:   atomic.LoadInt64(&m.VerifyMisses),
		TableBuilds:    atomic.LoadInt64(&m.TableBuilds),
		Uptime:         time.Since(m.StartTime),
	}
}

// MetricsSnapshot 指标快照，纯数据
type MetricsSnapshot struct {
	TotalChecksums int64
	TotalBytes     int64
	VerifyHits     int64
	VerifyMisses   int64
	TableBuilds    int64
	Uptime         time.Duration
}
