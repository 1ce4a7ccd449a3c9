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

import "math"

// DefaultTrendDeadband is the minimum change, in percentage points, between
// the two latest samples before a trend is reported as rising or falling.
const DefaultTrendDeadband = 1.0

// HistoryTracker keeps the most recent samples in a fixed-size ring buffer
// and derives averages, peaks and trends from them.
//
// It is not safe for concurrent use; the dashboard owns one instance and
// feeds it from a single goroutine.
type HistoryTracker struct {
	buf      []Sample
	head     int // index of the oldest sample
	count    int
	deadband float64
}

// NewHistoryTracker creates a tracker holding at most maxSize samples.
// A maxSize of zero or less yields a tracker that never holds data.
func NewHistoryTracker(maxSize int, deadband float64) *HistoryTracker {
	if maxSize < 0 {
		maxSize = 0
	}
	return &HistoryTracker{
		buf:      make([]Sample, maxSize),
		deadband: deadband,
	}
}

// Add appends a sample, evicting the oldest one when the window is full.
func (h *HistoryTracker) Add(s Sample) {
	size := len(h.buf)
	if size == 0 {
		return
	}

	if h.count < size {
		h.buf[(h.head+h.count)%size] = s
		h.count++
		return
	}

	// Full: overwrite the oldest slot and advance the head.
	h.buf[h.head] = s
	h.head = (h.head + 1) % size
}

// Len returns the number of samples currently in the window.
func (h *HistoryTracker) Len() int {
	return h.count
}

// Cap returns the window size given at construction.
func (h *HistoryTracker) Cap() int {
	return len(h.buf)
}

// HasData reports whether at least one sample has been recorded.
func (h *HistoryTracker) HasData() bool {
	return h.count > 0
}

// at returns the i-th sample counting from the oldest.
func (h *HistoryTracker) at(i int) Sample {
	return h.buf[(h.head+i)%len(h.buf)]
}

// Samples returns a copy of the window, oldest first.
func (h *HistoryTracker) Samples() []Sample {
	out := make([]Sample, h.count)
	for i := range out {
		out[i] = h.at(i)
	}
	return out
}

// CPUAvg returns the mean CPU usage over the window.
// The boolean is false when the window is empty.
func (h *HistoryTracker) CPUAvg() (float32, bool) {
	avg, ok := h.mean(cpuOf)
	return float32(avg), ok
}

// MemAvg returns the mean memory usage over the window.
// The boolean is false when the window is empty.
func (h *HistoryTracker) MemAvg() (float64, bool) {
	return h.mean(memOf)
}

// CPUMax returns the peak CPU usage over the window.
func (h *HistoryTracker) CPUMax() (float32, bool) {
	peak, ok := h.max(cpuOf)
	return float32(peak), ok
}

// MemMax returns the peak memory usage over the window.
func (h *HistoryTracker) MemMax() (float64, bool) {
	return h.max(memOf)
}

// CPUTrend compares the latest CPU sample with the previous one.
func (h *HistoryTracker) CPUTrend() Trend {
	return h.trend(cpuOf)
}

// MemTrend compares the latest memory sample with the previous one.
func (h *HistoryTracker) MemTrend() Trend {
	return h.trend(memOf)
}

func cpuOf(s Sample) float64 { return float64(s.CPUUsage) }
func memOf(s Sample) float64 { return s.MemPercent }

// mean uses a running average so that a window of identical values
// averages to exactly that value.
func (h *HistoryTracker) mean(field func(Sample) float64) (float64, bool) {
	if h.count == 0 {
		return 0, false
	}

	var avg float64
	for i := 0; i < h.count; i++ {
		avg += (field(h.at(i)) - avg) / float64(i+1)
	}
	return avg, true
}

func (h *HistoryTracker) max(field func(Sample) float64) (float64, bool) {
	if h.count == 0 {
		return 0, false
	}

	peak := field(h.at(0))
	for i := 1; i < h.count; i++ {
		if v := field(h.at(i)); totalLess(peak, v) {
			peak = v
		}
	}
	return peak, true
}

func (h *HistoryTracker) trend(field func(Sample) float64) Trend {
	if h.count < 2 {
		return TrendUndetermined
	}

	cur := field(h.at(h.count - 1))
	prev := field(h.at(h.count - 2))

	switch {
	case cur > prev+h.deadband:
		return TrendRising
	case cur < prev-h.deadband:
		return TrendFalling
	default:
		return TrendFlat
	}
}

// totalLess orders floats with NaN below every other value, so a window
// containing NaN still has a well-defined peak.
func totalLess(a, b float64) bool {
	if math.IsNaN(a) {
		return !math.IsNaN(b)
	}
	if math.IsNaN(b) {
		return false
	}
	return a < b
}
