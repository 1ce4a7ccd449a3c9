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
	"sort"
	"time"
)

// rateSeries converts one family of cumulative counters into rates.
type rateSeries struct {
	prev       CounterSnapshot
	lastUpdate time.Time
}

func (s *rateSeries) update(current CounterSnapshot, now time.Time) []Rate {
	elapsed := now.Sub(s.lastUpdate).Seconds()
	rates := make([]Rate, 0, len(current))

	// Same clock tick: keep the old baseline so its delta is not lost.
	if elapsed <= 0 {
		return rates
	}

	for name, cur := range current {
		prev, ok := s.prev[name]
		if !ok {
			continue
		}
		rates = append(rates, Rate{
			Name: name,
			In:   float64(saturatingSub(cur.In, prev.In)) / elapsed,
			Out:  float64(saturatingSub(cur.Out, prev.Out)) / elapsed,
		})
	}

	sort.Slice(rates, func(i, j int) bool {
		return rates[i].Name < rates[j].Name
	})

	s.prev = current.Clone()
	s.lastUpdate = now

	return rates
}

// saturatingSub returns a-b, or 0 when the counter went backwards after a
// device reset or wraparound.
func saturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}

// RateTracker turns network and disk byte counters into bytes per second.
// Each family keeps its own baseline timestamp, so updating both within one
// tick yields correct rates for both.
//
// It is not safe for concurrent use.
type RateTracker struct {
	now     func() time.Time
	network rateSeries
	disk    rateSeries
}

// NewRateTracker creates a tracker driven by the wall clock.
func NewRateTracker() *RateTracker {
	return NewRateTrackerWithClock(time.Now)
}

// NewRateTrackerWithClock creates a tracker that reads time from now.
func NewRateTrackerWithClock(now func() time.Time) *RateTracker {
	start := now()
	return &RateTracker{
		now:     now,
		network: rateSeries{prev: CounterSnapshot{}, lastUpdate: start},
		disk:    rateSeries{prev: CounterSnapshot{}, lastUpdate: start},
	}
}

// UpdateNetworkRates returns receive/send rates for every interface seen in
// both this and the previous call. Results are sorted by name and empty on
// the first call or when no time has passed.
func (r *RateTracker) UpdateNetworkRates(current CounterSnapshot) []Rate {
	return r.UpdateNetworkRatesAt(current, r.now())
}

// UpdateNetworkRatesAt is UpdateNetworkRates for counters read at time at.
// Callers that buffer snapshots pass the collection time so that a backlog
// drained in one burst still divides by the real sampling interval.
func (r *RateTracker) UpdateNetworkRatesAt(current CounterSnapshot, at time.Time) []Rate {
	return r.network.update(current, at)
}

// UpdateDiskRates returns read/write rates for every device seen in both
// this and the previous call, with the same rules as UpdateNetworkRates.
func (r *RateTracker) UpdateDiskRates(current CounterSnapshot) []Rate {
	return r.UpdateDiskRatesAt(current, r.now())
}

// UpdateDiskRatesAt is UpdateDiskRates for counters read at time at.
func (r *RateTracker) UpdateDiskRatesAt(current CounterSnapshot, at time.Time) []Rate {
	return r.disk.update(current, at)
}
