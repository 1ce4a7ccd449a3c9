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

	"github.com/phuonguno98/unotop/pkg/metrics"
	"github.com/shirou/gopsutil/v3/disk"
)

// Dependency injection points for testing
var (
	diskIOCounters = disk.IOCounters
	diskPartitions = disk.Partitions
	diskUsage      = disk.Usage
)

// DiskCollector collects cumulative disk I/O counters and filesystem usage.
type DiskCollector struct {
	filter deviceFilter
}

// NewDiskCollector creates a new disk collector instance.
// includeDevices: list of device names to monitor (empty = all available)
// excludeDevices: list of device names to exclude
// Device names can be specified with or without /dev/ prefix (e.g., "sdd" or "/dev/sdd")
func NewDiskCollector(includeDevices, excludeDevices []string) *DiskCollector {
	return &DiskCollector{
		filter: newDeviceFilter(includeDevices, excludeDevices),
	}
}

// Collect returns bytes read (In) and written (Out) since boot for every
// monitored device.
func (d *DiskCollector) Collect() (metrics.CounterSnapshot, error) {
	ioCounters, err := diskIOCounters()
	if err != nil {
		return nil, fmt.Errorf("failed to get disk I/O counters: %w", err)
	}

	result := make(metrics.CounterSnapshot, len(ioCounters))
	for deviceName := range ioCounters {
		if !d.shouldMonitor(deviceName) {
			continue
		}
		counter := ioCounters[deviceName]
		result[deviceName] = metrics.Counters{
			In:  counter.ReadBytes,
			Out: counter.WriteBytes,
		}
	}

	return result, nil
}

// CollectSpace returns space usage for every monitored, mounted device,
// sorted by mountpoint. A partition follows the filter of its disk, so
// including "sda" also reports "sda1". Mounts whose usage cannot be read
// are skipped.
func (d *DiskCollector) CollectSpace() ([]metrics.DiskSpace, error) {
	partitions, err := diskPartitions(false)
	if err != nil {
		return nil, fmt.Errorf("failed to get disk partitions: %w", err)
	}

	spaces := make([]metrics.DiskSpace, 0, len(partitions))
	seen := make(map[string]bool)

	for _, partition := range partitions {
		if seen[partition.Device] || !d.filter.allowsPartition(partition.Device) {
			continue
		}
		seen[partition.Device] = true

		usage, err := diskUsage(partition.Mountpoint)
		if err != nil || usage.Total == 0 {
			continue
		}

		spaces = append(spaces, metrics.DiskSpace{
			Device:     partition.Device,
			Mountpoint: partition.Mountpoint,
			Total:      usage.Total,
			Used:       usage.Used,
			Percent:    usage.UsedPercent,
		})
	}

	sort.Slice(spaces, func(i, j int) bool {
		return spaces[i].Mountpoint < spaces[j].Mountpoint
	})

	return spaces, nil
}

// shouldMonitor checks if a device should be monitored based on include/exclude filters.
func (d *DiskCollector) shouldMonitor(deviceName string) bool {
	return d.filter.allows(deviceName)
}

// Name returns the collector name for logging purposes.
func (d *DiskCollector) Name() string {
	return "Disk"
}
