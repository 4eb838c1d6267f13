package metrics

import (
	"math"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNewRunMetrics(t *testing.T) {
	m := NewRunMetrics()

	if m.StartTime.IsZero() {
		t.Error("StartTime should be set")
	}
	if !m.EndTime.IsZero() {
		t.Error("EndTime should be zero initially")
	}
	if m.PostsProcessed != 0 || m.FilesWritten != 0 || m.FilesSkipped != 0 {
		t.Errorf("counters should start at 0, got %+v", m)
	}
}

func TestRecordEnd(t *testing.T) {
	m := NewRunMetrics()
	before := time.Now()
	m.RecordEnd()
	after := time.Now()

	if m.EndTime.Before(before) || m.EndTime.After(after) {
		t.Error("EndTime should be set to current time")
	}
}

func TestTotalDuration(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*RunMetrics)
		expected func(time.Duration) bool
	}{
		{
			name: "returns elapsed time when end not set",
			setup: func(m *RunMetrics) {
				m.StartTime = time.Now().Add(-time.Second)
			},
			expected: func(d time.Duration) bool {
				return d >= time.Second
			},
		},
		{
			name: "returns total duration when end is set",
			setup: func(m *RunMetrics) {
				m.StartTime = time.Now().Add(-5 * time.Second)
				m.EndTime = time.Now()
			},
			expected: func(d time.Duration) bool {
				return d >= 5*time.Second && d < 6*time.Second
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewRunMetrics()
			tt.setup(m)
			if d := m.TotalDuration(); !tt.expected(d) {
				t.Errorf("TotalDuration() = %v, unexpected value", d)
			}
		})
	}
}

func TestRecordContent_Concurrent(t *testing.T) {
	m := NewRunMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.RecordContent(10, i%2 == 0)
		}(i)
	}
	wg.Wait()

	if m.FilesWritten != 25 || m.FilesSkipped != 25 {
		t.Errorf("written/skipped = %d/%d, want 25/25", m.FilesWritten, m.FilesSkipped)
	}
	if m.ContentBytes != 500 {
		t.Errorf("ContentBytes = %d, want 500", m.ContentBytes)
	}
}

func TestRecordIndex(t *testing.T) {
	m := NewRunMetrics()
	m.RecordIndex(300, true)
	m.AddPruned(2)

	if m.IndexBytes != 300 || m.FilesWritten != 1 || m.FilesPruned != 2 {
		t.Errorf("unexpected metrics %+v", m)
	}
}

func TestSavingsPercent(t *testing.T) {
	m := NewRunMetrics()
	m.InputBytes = 1000
	m.IndexBytes = 100

	if got := m.SavingsPercent(); math.Abs(got-90) > 1e-9 {
		t.Errorf("SavingsPercent() = %v, want 90", got)
	}
}

func TestString(t *testing.T) {
	m := NewRunMetrics()
	m.PostsProcessed = 27
	m.FilesWritten = 20
	m.FilesSkipped = 8
	m.FilesPruned = 1
	m.StartTime = time.Now().Add(-time.Second)

	result := m.String()

	if !strings.HasPrefix(result, "📊 Split 27 posts") {
		t.Errorf("String() = %q, should start with emoji and post count", result)
	}
	for _, expected := range []string{"20 written", "8 unchanged", "1 pruned"} {
		if !strings.Contains(result, expected) {
			t.Errorf("String() = %q, should contain %q", result, expected)
		}
	}
	if !strings.HasSuffix(result, ")\n") {
		t.Error("String() should end with ')\\n'")
	}
}

func TestReport(t *testing.T) {
	m := NewRunMetrics()
	m.PostsProcessed = 1200
	m.InputBytes = 4096
	m.IndexBytes = 1024
	m.ContentBytes = 3000

	report := m.Report()
	for _, expected := range []string{"4,096 bytes (4.0 KB)", "1,200 files", "75.0%"} {
		if !strings.Contains(report, expected) {
			t.Errorf("Report() = %q, should contain %q", report, expected)
		}
	}
}
