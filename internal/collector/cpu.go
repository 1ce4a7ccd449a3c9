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

package collector

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/phuonguno98/unotop/pkg/metrics"
	"github.com/shirou/gopsutil/v3/cpu"
)

// Dependency injection point for testing
var cpuTimes = cpu.Times

var errNoCPUTimes = errors.New("no CPU time stats available")

// CPUReading is the share of CPU time spent between two consecutive calls.
type CPUReading struct {
	Usage  float64 // Busy percentage [0, 100]
	IOWait float64 // Waiting-on-I/O percentage, -1 if the platform has no such counter
}

// CPUCollector derives CPU usage from the aggregated time counters.
// Usage is a delta, so the first call only stores a baseline.
type CPUCollector struct {
	goos     string
	baseline *metrics.CPUTimeStats
}

// NewCPUCollector creates a new CPU collector instance.
func NewCPUCollector() *CPUCollector {
	return &CPUCollector{goos: runtime.GOOS}
}

// Collect returns usage since the previous call. Until a baseline exists
// it returns a zero reading with IOWait -1.
func (c *CPUCollector) Collect() (CPUReading, error) {
	times, err := cpuTimes(false)
	if err != nil {
		return CPUReading{IOWait: -1}, fmt.Errorf("failed to get CPU stats: %w", err)
	}
	if len(times) == 0 {
		return CPUReading{IOWait: -1}, errNoCPUTimes
	}

	current := toTimeStats(&times[0], c.goos, time.Now())
	prev := c.baseline
	c.baseline = &current

	if prev == nil {
		return CPUReading{IOWait: -1}, nil
	}

	return CPUReading{
		Usage:  metrics.CalculateCPUUtilization(prev, &current),
		IOWait: metrics.CalculateCPUIOWait(prev, &current),
	}, nil
}

// toTimeStats converts gopsutil counters, marking iowait as unavailable (-1)
// where the platform does not measure it. macOS reports a constant 0.
func toTimeStats(t *cpu.TimesStat, goos string, at time.Time) metrics.CPUTimeStats {
	iowait := -1.0
	switch {
	case goos == "linux":
		iowait = t.Iowait
	case goos == "darwin" && t.Iowait != 0:
		iowait = t.Iowait
	}

	return metrics.CPUTimeStats{
		User:      t.User,
		System:    t.System,
		Idle:      t.Idle,
		IOWait:    iowait,
		Irq:       t.Irq,
		SoftIrq:   t.Softirq,
		Steal:     t.Steal,
		Guest:     t.Guest,
		GuestNice: t.GuestNice,
		Timestamp: at,
	}
}

// Name returns the collector name for logging purposes.
func (c *CPUCollector) Name() string {
	return "CPU"
}
