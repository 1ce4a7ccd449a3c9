/*
 * MIT License
 *
 * Copyright (c) 2026 Nguyen Thanh Phuong
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package metrics

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func cpuSamples(values ...float32) []Sample {
	out := make([]Sample, len(values))
	for i, v := range values {
		out[i] = Sample{CPUUsage: v, MemPercent: float64(v), MemUsedMB: uint64(i)}
	}
	return out
}

func TestHistoryTracker_Eviction(t *testing.T) {
	h := NewHistoryTracker(3, DefaultTrendDeadband)

	for i, s := range cpuSamples(1, 2, 3, 4, 5) {
		h.Add(s)
		if h.Len() > h.Cap() {
			t.Fatalf("after %d adds Len() = %d exceeds Cap() = %d", i+1, h.Len(), h.Cap())
		}
	}

	want := cpuSamples(1, 2, 3, 4, 5)[2:]
	if diff := cmp.Diff(want, h.Samples()); diff != "" {
		t.Errorf("Samples() mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryTracker_EvictionManyWraps(t *testing.T) {
	const size = 10
	h := NewHistoryTracker(size, DefaultTrendDeadband)

	var all []Sample
	for i := 0; i < size*3+7; i++ {
		s := Sample{CPUUsage: float32(i), MemPercent: float64(i) / 2, MemUsedMB: uint64(i)}
		all = append(all, s)
		h.Add(s)
	}

	if diff := cmp.Diff(all[len(all)-size:], h.Samples()); diff != "" {
		t.Errorf("Samples() mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryTracker_ZeroCapacity(t *testing.T) {
	for _, size := range []int{0, -3} {
		h := NewHistoryTracker(size, DefaultTrendDeadband)
		h.Add(Sample{CPUUsage: 50})
		h.Add(Sample{CPUUsage: 60})

		if h.HasData() {
			t.Errorf("size %d: HasData() = true, want false", size)
		}
		if _, ok := h.CPUAvg(); ok {
			t.Errorf("size %d: CPUAvg() reported a value", size)
		}
		if got := h.CPUTrend(); got != TrendUndetermined {
			t.Errorf("size %d: CPUTrend() = %v, want undetermined", size, got)
		}
	}
}

func TestHistoryTracker_Averages(t *testing.T) {
	h := NewHistoryTracker(10, DefaultTrendDeadband)

	if _, ok := h.CPUAvg(); ok {
		t.Error("CPUAvg() on empty tracker reported a value")
	}
	if _, ok := h.MemAvg(); ok {
		t.Error("MemAvg() on empty tracker reported a value")
	}
	if h.HasData() {
		t.Error("HasData() on empty tracker = true")
	}

	h.Add(Sample{CPUUsage: 42.5, MemPercent: 63.25})
	if got, ok := h.CPUAvg(); !ok || got != 42.5 {
		t.Errorf("CPUAvg() = %v, %v; want 42.5, true", got, ok)
	}
	if got, ok := h.MemAvg(); !ok || got != 63.25 {
		t.Errorf("MemAvg() = %v, %v; want 63.25, true", got, ok)
	}

	h.Add(Sample{CPUUsage: 10, MemPercent: 10})
	h.Add(Sample{CPUUsage: 90, MemPercent: 90})
	got, _ := h.MemAvg()
	if want := (63.25 + 10 + 90) / 3; math.Abs(got-want) > 1e-9 {
		t.Errorf("MemAvg() = %v, want %v", got, want)
	}
}

func TestHistoryTracker_AverageOfIdenticalValues(t *testing.T) {
	h := NewHistoryTracker(10, DefaultTrendDeadband)
	for i := 0; i < 25; i++ {
		h.Add(Sample{CPUUsage: 33.3, MemPercent: 0.1})
	}

	if got, _ := h.CPUAvg(); got != float32(33.3) {
		t.Errorf("CPUAvg() = %v, want exactly 33.3", got)
	}
	if got, _ := h.MemAvg(); got != 0.1 {
		t.Errorf("MemAvg() = %v, want exactly 0.1", got)
	}
}

func TestHistoryTracker_Max(t *testing.T) {
	h := NewHistoryTracker(10, DefaultTrendDeadband)

	if _, ok := h.CPUMax(); ok {
		t.Error("CPUMax() on empty tracker reported a value")
	}
	if _, ok := h.MemMax(); ok {
		t.Error("MemMax() on empty tracker reported a value")
	}

	for _, s := range cpuSamples(10, 90, 30) {
		h.Add(s)
	}

	if got, ok := h.CPUMax(); !ok || got != 90 {
		t.Errorf("CPUMax() = %v, %v; want 90, true", got, ok)
	}
	if got, ok := h.MemMax(); !ok || got != 90 {
		t.Errorf("MemMax() = %v, %v; want 90, true", got, ok)
	}
}

func TestHistoryTracker_MaxWithNaN(t *testing.T) {
	nan := math.NaN()

	h := NewHistoryTracker(5, DefaultTrendDeadband)
	h.Add(Sample{MemPercent: nan})
	h.Add(Sample{MemPercent: 12})
	h.Add(Sample{MemPercent: nan})

	if got, ok := h.MemMax(); !ok || got != 12 {
		t.Errorf("MemMax() = %v, %v; want 12, true", got, ok)
	}

	only := NewHistoryTracker(2, DefaultTrendDeadband)
	only.Add(Sample{MemPercent: nan})
	if got, ok := only.MemMax(); !ok || !math.IsNaN(got) {
		t.Errorf("MemMax() over NaN-only window = %v, %v; want NaN, true", got, ok)
	}
}

func TestHistoryTracker_Trend(t *testing.T) {
	tests := []struct {
		name    string
		samples []float32
		want    Trend
	}{
		{"Empty", nil, TrendUndetermined},
		{"Single sample", []float32{50}, TrendUndetermined},
		{"Rising", []float32{50, 52}, TrendRising},
		{"Falling", []float32{50, 48.5}, TrendFalling},
		{"Flat within deadband", []float32{50, 50.5}, TrendFlat},
		{"Exactly deadband up is flat", []float32{50, 51}, TrendFlat},
		{"Exactly deadband down is flat", []float32{50, 49}, TrendFlat},
		{"Only last two count", []float32{0, 100, 99.5}, TrendFlat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistoryTracker(10, DefaultTrendDeadband)
			for _, s := range cpuSamples(tt.samples...) {
				h.Add(s)
			}
			if got := h.CPUTrend(); got != tt.want {
				t.Errorf("CPUTrend() = %q, want %q", got, tt.want)
			}
			if got := h.MemTrend(); got != tt.want {
				t.Errorf("MemTrend() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHistoryTracker_CustomDeadband(t *testing.T) {
	h := NewHistoryTracker(4, 5.0)
	h.Add(Sample{CPUUsage: 50})
	h.Add(Sample{CPUUsage: 54})

	if got := h.CPUTrend(); got != TrendFlat {
		t.Errorf("CPUTrend() = %q, want flat with deadband 5", got)
	}

	h.Add(Sample{CPUUsage: 60})
	if got := h.CPUTrend(); got != TrendRising {
		t.Errorf("CPUTrend() = %q, want rising", got)
	}
}

func TestTrend_String(t *testing.T) {
	tests := map[Trend]string{
		TrendUndetermined: "",
		TrendFlat:         "→",
		TrendRising:       "↗",
		TrendFalling:      "↘",
	}
	for trend, want := range tests {
		if got := trend.String(); got != want {
			t.Errorf("Trend(%d).String() = %q, want %q", trend, got, want)
		}
	}
}

func TestSnapshot_Sample(t *testing.T) {
	s := &Snapshot{CPU: 12.5, MemPercent: 40, MemUsedMB: 2048}
	want := Sample{CPUUsage: 12.5, MemPercent: 40, MemUsedMB: 2048}
	if diff := cmp.Diff(want, s.Sample()); diff != "" {
		t.Errorf("Sample() mismatch (-want +got):\n%s", diff)
	}
}
