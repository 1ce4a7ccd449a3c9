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

package devices

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/net"
)

// Dependency injection points for testing
var (
	diskIOCounters = disk.IOCounters
	diskPartitions = disk.Partitions
	diskUsage      = disk.Usage
	netInterfaces  = net.Interfaces
)

// DiskInfo describes a block device as seen by the disk I/O counters.
// Name is the key used by the --include-disks/--exclude-disks filters.
type DiskInfo struct {
	Name        string
	Mountpoints []string
	Filesystem  string
	Total       uint64 // Bytes of the first mounted filesystem, 0 if unmounted
}

// NetworkInfo represents network interface information.
type NetworkInfo struct {
	Name       string
	MacAddress string
	Addresses  []string
	Loopback   bool
}

// ListDisks returns every device reporting I/O counters, enriched with the
// filesystems mounted from it.
func ListDisks() ([]DiskInfo, error) {
	counters, err := diskIOCounters()
	if err != nil {
		return nil, fmt.Errorf("failed to get disk I/O counters: %w", err)
	}

	byName := make(map[string]*DiskInfo, len(counters))
	for name := range counters {
		byName[name] = &DiskInfo{Name: name}
	}

	// Mount information is best effort; the counters are the source of truth.
	partitions, err := diskPartitions(false)
	if err == nil {
		for _, partition := range partitions {
			info, ok := byName[strings.TrimPrefix(partition.Device, "/dev/")]
			if !ok {
				continue
			}
			info.Mountpoints = append(info.Mountpoints, partition.Mountpoint)
			if info.Filesystem != "" {
				continue
			}
			info.Filesystem = partition.Fstype
			if usage, err := diskUsage(partition.Mountpoint); err == nil {
				info.Total = usage.Total
			}
		}
	}

	disks := make([]DiskInfo, 0, len(byName))
	for _, info := range byName {
		disks = append(disks, *info)
	}

	sort.Slice(disks, func(i, j int) bool {
		return disks[i].Name < disks[j].Name
	})

	return disks, nil
}

// ListNetworkInterfaces returns a list of available network interfaces.
func ListNetworkInterfaces() ([]NetworkInfo, error) {
	interfaces, err := netInterfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to get network interfaces: %w", err)
	}

	networks := make([]NetworkInfo, 0, len(interfaces))

	for _, iface := range interfaces {
		addresses := make([]string, 0, len(iface.Addrs))
		for _, addr := range iface.Addrs {
			addresses = append(addresses, addr.Addr)
		}

		loopback := false
		for _, flag := range iface.Flags {
			if flag == "loopback" {
				loopback = true
				break
			}
		}

		networks = append(networks, NetworkInfo{
			Name:       iface.Name,
			MacAddress: iface.HardwareAddr,
			Addresses:  addresses,
			Loopback:   loopback,
		})
	}

	sort.Slice(networks, func(i, j int) bool {
		return networks[i].Name < networks[j].Name
	})

	return networks, nil
}

// FormatDisksTable formats disk information as a table.
func FormatDisksTable(disks []DiskInfo) string {
	var sb strings.Builder

	sb.WriteString("\nDisk Devices (I/O counters):\n")
	sb.WriteString(strings.Repeat("=", 80))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-20s %-30s %-12s %s\n", "DEVICE", "MOUNTPOINT", "FILESYSTEM", "SIZE"))
	sb.WriteString(strings.Repeat("-", 80))
	sb.WriteString("\n")

	for _, d := range disks {
		mount, fs, size := "-", "-", "-"
		if len(d.Mountpoints) > 0 {
			mount = truncate(d.Mountpoints[0], 30)
		}
		if d.Filesystem != "" {
			fs = d.Filesystem
		}
		if d.Total > 0 {
			size = humanize.IBytes(d.Total)
		}
		sb.WriteString(fmt.Sprintf("%-20s %-30s %-12s %s\n", d.Name, mount, fs, size))

		for i := 1; i < len(d.Mountpoints); i++ {
			sb.WriteString(fmt.Sprintf("%-20s %s\n", "", truncate(d.Mountpoints[i], 30)))
		}
	}

	sb.WriteString(strings.Repeat("=", 80))
	sb.WriteString("\n")

	return sb.String()
}

// FormatNetworksTable formats network interface information as a table.
func FormatNetworksTable(networks []NetworkInfo) string {
	var sb strings.Builder

	sb.WriteString("\nNetwork Interfaces:\n")
	sb.WriteString(strings.Repeat("=", 80))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-30s %-17s %s\n", "INTERFACE", "MAC ADDRESS", "IP ADDRESSES"))
	sb.WriteString(strings.Repeat("-", 80))
	sb.WriteString("\n")

	for _, n := range networks {
		name := n.Name
		if n.Loopback {
			name += " (loopback)"
		}

		mac := n.MacAddress
		if mac == "" {
			mac = "N/A"
		}

		firstIP := "N/A"
		if len(n.Addresses) > 0 {
			firstIP = n.Addresses[0]
		}

		sb.WriteString(fmt.Sprintf("%-30s %-17s %s\n", name, mac, firstIP))

		for i := 1; i < len(n.Addresses); i++ {
			sb.WriteString(fmt.Sprintf("%-30s %-17s %s\n", "", "", n.Addresses[i]))
		}
	}

	sb.WriteString(strings.Repeat("=", 80))
	sb.WriteString("\n")

	return sb.String()
}

// truncate truncates a string to maxLen characters.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
