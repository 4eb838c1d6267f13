// Package metrics tracks counters and sizes of a partition run.
package metrics

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Kush-Singh-26/postsplit/builder/utils"
)

// RunMetrics is safe for concurrent use by fan-out workers.
type RunMetrics struct {
	mu sync.Mutex

	// Timing
	StartTime time.Time
	EndTime   time.Time
	ReadTime  time.Duration
	WriteTime time.Duration

	// Counters
	PostsProcessed int
	FilesWritten   int
	FilesSkipped   int
	FilesPruned    int

	// Sizes
	InputBytes   int64
	IndexBytes   int64
	ContentBytes int64
}

func NewRunMetrics() *RunMetrics {
	return &RunMetrics{
		StartTime: time.Now(),
	}
}

// RecordEnd marks the end of the run.
func (m *RunMetrics) RecordEnd() {
	m.mu.Lock()
	m.EndTime = time.Now()
	m.mu.Unlock()
}

// TotalDuration returns the run duration, or the elapsed time while running.
func (m *RunMetrics) TotalDuration() time.Duration {
	if m.EndTime.IsZero() {
		return time.Since(m.StartTime)
	}
	return m.EndTime.Sub(m.StartTime)
}

// RecordContent counts one content file; written is false when the file on
// disk was already byte-identical.
func (m *RunMetrics) RecordContent(size int64, written bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ContentBytes += size
	if written {
		m.FilesWritten++
	} else {
		m.FilesSkipped++
	}
}

// RecordIndex counts the index document.
func (m *RunMetrics) RecordIndex(size int64, written bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IndexBytes = size
	if written {
		m.FilesWritten++
	} else {
		m.FilesSkipped++
	}
}

// AddPruned counts removed stale content files.
func (m *RunMetrics) AddPruned(n int) {
	m.mu.Lock()
	m.FilesPruned += n
	m.mu.Unlock()
}

// SavingsPercent is how much smaller the index is than the input.
func (m *RunMetrics) SavingsPercent() float64 {
	return utils.SavingsPercent(m.InputBytes, m.IndexBytes)
}

// String returns a single-line summary.
func (m *RunMetrics) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return fmt.Sprintf("📊 Split %d posts in %v (files: %d written, %d unchanged, %d pruned)\n",
		m.PostsProcessed,
		m.TotalDuration().Round(time.Millisecond),
		m.FilesWritten,
		m.FilesSkipped,
		m.FilesPruned,
	)
}

// Report returns the size breakdown printed after a run.
func (m *RunMetrics) Report() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "   📦 Input:   %s\n", utils.FormatBytes(m.InputBytes))
	fmt.Fprintf(&b, "   🗂️  Index:   %s\n", utils.FormatBytes(m.IndexBytes))
	fmt.Fprintf(&b, "   📝 Content: %s across %s files\n", utils.FormatBytes(m.ContentBytes), utils.FormatCount(m.PostsProcessed))
	fmt.Fprintf(&b, "   ⚡ Initial payload reduced by %.1f%%\n", utils.SavingsPercent(m.InputBytes, m.IndexBytes))
	return b.String()
}

// Print outputs the summary and size report to stdout.
func (m *RunMetrics) Print() {
	fmt.Print(m.String())
	fmt.Print(m.Report())
}
