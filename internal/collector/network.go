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

	"github.com/phuonguno98/unotop/pkg/metrics"
	"github.com/shirou/gopsutil/v3/net"
)

// Dependency injection point for testing
var netIOCounters = net.IOCounters

// Common loopback interface names
var loopbacks = map[string]bool{"lo": true, "lo0": true, "Loopback": true}

// NetworkCollector collects cumulative network byte counters.
type NetworkCollector struct {
	filter deviceFilter
}

// NewNetworkCollector creates a new network collector instance.
// includeInterfaces: list of interface names to monitor (empty = all available)
// excludeInterfaces: list of interface names to exclude
func NewNetworkCollector(includeInterfaces, excludeInterfaces []string) *NetworkCollector {
	return &NetworkCollector{
		filter: deviceFilter{include: includeInterfaces, exclude: excludeInterfaces},
	}
}

// Collect returns bytes received (In) and sent (Out) since boot for every
// monitored interface. Loopback interfaces are skipped unless explicitly included.
func (n *NetworkCollector) Collect() (metrics.CounterSnapshot, error) {
	ioCounters, err := netIOCounters(true)
	if err != nil {
		return nil, fmt.Errorf("failed to get network I/O counters: %w", err)
	}

	result := make(metrics.CounterSnapshot, len(ioCounters))
	for i := range ioCounters {
		counter := &ioCounters[i]

		if n.isLoopback(counter.Name) || !n.shouldMonitor(counter.Name) {
			continue
		}

		result[counter.Name] = metrics.Counters{
			In:  counter.BytesRecv,
			Out: counter.BytesSent,
		}
	}

	return result, nil
}

// isLoopback reports whether a loopback interface should be hidden.
func (n *NetworkCollector) isLoopback(interfaceName string) bool {
	if !loopbacks[interfaceName] {
		return false
	}
	for _, included := range n.filter.include {
		if included == interfaceName {
			return false
		}
	}
	return true
}

// shouldMonitor checks if an interface should be monitored based on include/exclude filters.
func (n *NetworkCollector) shouldMonitor(interfaceName string) bool {
	return n.filter.allows(interfaceName)
}

// Name returns the collector name for logging purposes.
func (n *NetworkCollector) Name() string {
	return "Network"
}
