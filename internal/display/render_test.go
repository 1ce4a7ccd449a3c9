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

package display

import (
	"strings"
	"testing"

	"github.com/phuonguno98/unotop/internal/config"
	"github.com/phuonguno98/unotop/pkg/metrics"
)

func testFrame() Frame {
	h := metrics.NewHistoryTracker(10, metrics.DefaultTrendDeadband)
	h.Add(metrics.Sample{CPUUsage: 10, MemPercent: 25})
	h.Add(metrics.Sample{CPUUsage: 30, MemPercent: 26})

	return Frame{
		Snapshot: &metrics.Snapshot{
			CPU:        30,
			CPUWait:    -1,
			MemUsedMB:  2048,
			MemTotalMB: 8192,
			MemPercent: 26,
			DiskSpace: []metrics.DiskSpace{
				{Device: "/dev/sda1", Mountpoint: "/", Total: 100 << 30, Used: 25 << 30, Percent: 25},
			},
			Processes: []metrics.ProcessInfo{
				{PID: 1, Name: "a-really-long-process-name-for-testing", CPU: 12.5, MemoryRSS: 64 << 20},
				{PID: 2, Name: "bash", CPU: 0.3, MemoryRSS: 4 << 20},
			},
		},
		History:       h,
		NetRates:      []metrics.Rate{{Name: "eth0", In: 4000, Out: 0}},
		DiskRates:     nil,
		ShowNetwork:   true,
		ShowDisk:      true,
		ShowProcesses: true,
	}
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer(config.DefaultThresholds(), false, 0)
	out := r.Render(testFrame())

	wants := []string{
		"CPU Usage:        30.0% ↗",
		"avg: 20.0%, peak: 30.0%",
		"2048 MB /   8192 MB ( 26.0%) →",
		"avg: 25.5%, peak: 26.0%",
		"Network Usage:",
		"eth0",
		"3.9 KiB/s",
		"0 B/s",
		"Disk I/O:",
		calculatingString,
		"Disk Usage:",
		"25 GiB",
		"100 GiB",
		"a-really-long-process-...",
		"12.5%",
		"64 MB",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q\n%s", want, out)
		}
	}

	if strings.Contains(out, "iowait") {
		t.Error("Render() shows iowait although it is unavailable")
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("Render() without color emitted escape sequences")
	}
}

func TestRenderer_FirstTick(t *testing.T) {
	f := testFrame()
	f.History = metrics.NewHistoryTracker(10, metrics.DefaultTrendDeadband)
	f.History.Add(metrics.Sample{CPUUsage: 30, MemPercent: 26})
	f.NetRates = nil
	f.Snapshot.CPUWait = 1.5

	out := NewRenderer(config.DefaultThresholds(), false, 0).Render(f)

	for _, arrow := range []string{"↗", "↘", "→"} {
		if strings.Contains(out, arrow) {
			t.Errorf("Render() on first tick shows trend %q", arrow)
		}
	}
	if strings.Count(out, calculatingString) != 2 {
		t.Errorf("expected both rate tables to be calculating\n%s", out)
	}
	if !strings.Contains(out, "iowait 1.5%") {
		t.Errorf("Render() missing iowait\n%s", out)
	}
}

func TestRenderer_HiddenSections(t *testing.T) {
	f := testFrame()
	f.ShowNetwork = false
	f.ShowDisk = false
	f.ShowProcesses = false

	out := NewRenderer(config.DefaultThresholds(), false, 0).Render(f)
	for _, section := range []string{"Network Usage:", "Disk I/O:", "Disk Usage:", "Most Used (CPU):"} {
		if strings.Contains(out, section) {
			t.Errorf("Render() shows hidden section %q", section)
		}
	}
}

func TestRenderer_Clip(t *testing.T) {
	out := NewRenderer(config.DefaultThresholds(), false, 20).Render(testFrame())
	for _, line := range strings.Split(out, "\n") {
		if n := len([]rune(line)); n > 20 {
			t.Errorf("line %q is %d cells, want <= 20", line, n)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		value float64
		want  severity
	}{
		{10, severityOK},
		{49.9, severityOK},
		{50, severityWarning},
		{79.9, severityWarning},
		{80, severityCritical},
		{100, severityCritical},
	}
	for _, tt := range tests {
		if got := classify(tt.value, 50, 80); got != tt.want {
			t.Errorf("classify(%v) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestRenderer_SeverityFor(t *testing.T) {
	r := NewRenderer(config.DefaultThresholds(), true, 0)

	tests := []struct {
		name  string
		gauge gauge
		value float64
		want  severity
	}{
		{"CPU Warning", gaugeCPU, 60, severityWarning},
		{"CPU Critical", gaugeCPU, 85, severityCritical},
		{"Memory Critical", gaugeMemory, 92, severityCritical},
		{"Disk Uses Own Bands", gaugeDisk, 92, severityWarning},
		{"Disk OK", gaugeDisk, 75, severityOK},
		{"Disk Critical", gaugeDisk, 95, severityCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.severityFor(tt.gauge, tt.value); got != tt.want {
				t.Errorf("severityFor(%d, %v) = %d, want %d", tt.gauge, tt.value, got, tt.want)
			}
		})
	}
}

func TestRenderer_Color(t *testing.T) {
	out := NewRenderer(config.DefaultThresholds(), true, 0).Render(testFrame())
	if !strings.Contains(out, "30.0%") {
		t.Errorf("colored Render() lost the CPU value\n%s", out)
	}
}

func TestFormatRate(t *testing.T) {
	tests := map[float64]string{
		0:       "0 B/s",
		-5:      "0 B/s",
		512:     "512 B/s",
		1 << 20: "1.0 MiB/s",
	}
	for in, want := range tests {
		if got := formatRate(in); got != want {
			t.Errorf("formatRate(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"Empty", nil, ""},
		{"Bounds", []float64{0, 100}, "▁█"},
		{"Clamped", []float64{-10, 150}, "▁█"},
		{"Midpoint", []float64{50}, "▅"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sparkline(tt.values, 0, 100); got != tt.want {
				t.Errorf("sparkline(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}
