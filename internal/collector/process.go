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
	"fmt"
	"sort"
	"time"

	"github.com/phuonguno98/unotop/pkg/metrics"
	"github.com/shirou/gopsutil/v3/process"
)

// procHandle is the subset of *process.Process used by ProcessCollector.
type procHandle interface {
	Percent(interval time.Duration) (float64, error)
	Name() (string, error)
	MemoryInfo() (*process.MemoryInfoStat, error)
}

// Dependency injection points for testing
var (
	listPids    = process.Pids
	openProcess = func(pid int32) (procHandle, error) { return process.NewProcess(pid) }
)

// ProcessCollector reports the processes using the most CPU.
// CPU percentages are measured between consecutive calls, so handles are
// kept across ticks and a process shows 0% on the first tick it is seen.
type ProcessCollector struct {
	limit   int
	handles map[int32]procHandle
}

// NewProcessCollector creates a collector returning at most limit processes.
func NewProcessCollector(limit int) *ProcessCollector {
	return &ProcessCollector{
		limit:   limit,
		handles: make(map[int32]procHandle),
	}
}

// Collect returns the top processes by CPU, highest first.
// Processes that exit or deny access while being read are skipped.
func (p *ProcessCollector) Collect() ([]metrics.ProcessInfo, error) {
	pids, err := listPids()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	alive := make(map[int32]procHandle, len(pids))
	infos := make([]metrics.ProcessInfo, 0, len(pids))

	for _, pid := range pids {
		h, ok := p.handles[pid]
		if !ok {
			if h, err = openProcess(pid); err != nil {
				continue
			}
		}
		alive[pid] = h

		cpuPct, err := h.Percent(0)
		if err != nil {
			continue
		}
		name, err := h.Name()
		if err != nil {
			continue
		}

		var rss uint64
		if memInfo, err := h.MemoryInfo(); err == nil && memInfo != nil {
			rss = memInfo.RSS
		}

		infos = append(infos, metrics.ProcessInfo{
			PID:       pid,
			Name:      name,
			CPU:       cpuPct,
			MemoryRSS: rss,
		})
	}

	// Drop handles of processes that are gone.
	p.handles = alive

	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].CPU != infos[j].CPU {
			return infos[i].CPU > infos[j].CPU
		}
		return infos[i].PID < infos[j].PID
	})

	if len(infos) > p.limit {
		infos = infos[:p.limit]
	}

	return infos, nil
}

// Name returns the collector name for logging purposes.
func (p *ProcessCollector) Name() string {
	return "Process"
}
