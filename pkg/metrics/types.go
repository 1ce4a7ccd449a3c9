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

// Package metrics is the aggregation engine behind the dashboard: a sliding
// window of CPU/memory samples and a converter from cumulative byte counters
// to per-second rates.
package metrics

import (
	"maps"
	"time"
)

// Sample is one history entry. Values are expected to be finite; producing
// them is the collector's job.
type Sample struct {
	CPUUsage   float32 // CPU utilization percentage [0, 100]
	MemPercent float64 // Memory utilization percentage [0, 100]
	MemUsedMB  uint64
}

// Counters is a pair of cumulative byte counters for one device.
// For network interfaces In/Out are bytes received/sent, for disks they are
// bytes read/written.
type Counters struct {
	In  uint64
	Out uint64
}

// CounterSnapshot maps a device or interface name to its counters.
type CounterSnapshot map[string]Counters

// Clone returns an independent copy of the snapshot.
func (s CounterSnapshot) Clone() CounterSnapshot {
	if s == nil {
		return CounterSnapshot{}
	}
	return maps.Clone(s)
}

// Rate is the derived throughput for one device, in bytes per second.
type Rate struct {
	Name string
	In   float64
	Out  float64
}

// Trend is the direction of the two most recent samples.
type Trend int

const (
	TrendUndetermined Trend = iota
	TrendFlat
	TrendRising
	TrendFalling
)

// String returns the arrow glyph shown next to a metric.
func (t Trend) String() string {
	switch t {
	case TrendRising:
		return "↗"
	case TrendFalling:
		return "↘"
	case TrendFlat:
		return "→"
	default:
		return ""
	}
}

// Snapshot is everything the collector gathered during one tick.
type Snapshot struct {
	Timestamp  time.Time
	CPU        float64 // CPU utilization percentage
	CPUWait    float64 // CPU iowait percentage (-1 if N/A)
	MemUsedMB  uint64
	MemTotalMB uint64
	MemPercent float64         // Memory utilization percentage
	Disks      CounterSnapshot // Key: device name, bytes read/written
	Networks   CounterSnapshot // Key: interface name, bytes received/sent
	DiskSpace  []DiskSpace
	Processes  []ProcessInfo // Sorted by CPU, highest first
}

// Sample extracts the history entry for this snapshot.
func (s *Snapshot) Sample() Sample {
	return Sample{
		CPUUsage:   float32(s.CPU),
		MemPercent: s.MemPercent,
		MemUsedMB:  s.MemUsedMB,
	}
}

// DiskSpace represents space usage of one mounted filesystem.
type DiskSpace struct {
	Device     string
	Mountpoint string
	Total      uint64 // Bytes
	Used       uint64 // Bytes
	Percent    float64
}

// ProcessInfo represents a single entry of the process table.
type ProcessInfo struct {
	PID       int32
	Name      string
	CPU       float64 // Percentage of one core
	MemoryRSS uint64  // Bytes
}

// CPUTimeStats represents CPU time statistics for delta calculations.
type CPUTimeStats struct {
	User      float64
	System    float64
	Idle      float64
	IOWait    float64
	Irq       float64
	SoftIrq   float64
	Steal     float64
	Guest     float64
	GuestNice float64
	Timestamp time.Time
}
