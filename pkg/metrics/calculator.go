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

// cpuTotal sums the time fields that make up a full CPU accounting period.
// Guest time is already included in User on Linux and is not added again.
func cpuTotal(s *CPUTimeStats) float64 {
	return s.User + s.System + s.Idle + s.IOWait + s.Irq + s.SoftIrq + s.Steal
}

// CalculateCPUUtilization calculates CPU utilization percentage from two CPU time snapshots.
// Formula: 100 * (1 - ΔIdle / ΔTotal)
func CalculateCPUUtilization(prev, current *CPUTimeStats) float64 {
	if prev.Timestamp.IsZero() {
		return 0.0
	}

	// A platform without iowait reports it as -1; keep it out of the totals.
	p, c := *prev, *current
	if p.IOWait < 0 || c.IOWait < 0 {
		p.IOWait, c.IOWait = 0, 0
	}

	deltaTotal := cpuTotal(&c) - cpuTotal(&p)
	if deltaTotal <= 0 {
		return 0.0
	}

	deltaIdle := c.Idle - p.Idle
	util := 100.0 * (1.0 - deltaIdle/deltaTotal)

	switch {
	case util < 0:
		return 0.0
	case util > 100:
		return 100.0
	}
	return util
}

// CalculateCPUIOWait calculates CPU iowait percentage from two CPU time snapshots.
// Formula: 100 * (ΔIOWait / ΔTotal)
// Returns -1.0 if iowait is not available on the platform.
func CalculateCPUIOWait(prev, current *CPUTimeStats) float64 {
	if prev.Timestamp.IsZero() {
		return -1.0
	}

	if current.IOWait < 0 || prev.IOWait < 0 {
		return -1.0
	}

	deltaTotal := cpuTotal(current) - cpuTotal(prev)
	if deltaTotal <= 0 {
		return 0.0
	}

	return 100.0 * ((current.IOWait - prev.IOWait) / deltaTotal)
}
