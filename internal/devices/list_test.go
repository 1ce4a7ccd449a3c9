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
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/net"
)

func mockDiskFuncs(
	t *testing.T,
	counters func(...string) (map[string]disk.IOCountersStat, error),
	partitions func(bool) ([]disk.PartitionStat, error),
	usage func(string) (*disk.UsageStat, error),
) {
	t.Helper()
	origCounters, origPartitions, origUsage := diskIOCounters, diskPartitions, diskUsage
	t.Cleanup(func() {
		diskIOCounters, diskPartitions, diskUsage = origCounters, origPartitions, origUsage
	})
	diskIOCounters, diskPartitions, diskUsage = counters, partitions, usage
}

func TestListDisks(t *testing.T) {
	counters := func(...string) (map[string]disk.IOCountersStat, error) {
		return map[string]disk.IOCountersStat{
			"sdb":  {Name: "sdb"},
			"sda1": {Name: "sda1"},
			"sda":  {Name: "sda"},
		}, nil
	}
	usageOK := func(string) (*disk.UsageStat, error) {
		return &disk.UsageStat{Total: 1000}, nil
	}

	tests := []struct {
		name       string
		counters   func(...string) (map[string]disk.IOCountersStat, error)
		partitions func(bool) ([]disk.PartitionStat, error)
		usage      func(string) (*disk.UsageStat, error)
		want       []DiskInfo
		wantErr    bool
	}{
		{
			name:     "Success",
			counters: counters,
			partitions: func(bool) ([]disk.PartitionStat, error) {
				return []disk.PartitionStat{
					{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
					{Device: "/dev/sda1", Mountpoint: "/mnt", Fstype: "ext4"},
					{Device: "tmpfs", Mountpoint: "/run", Fstype: "tmpfs"},
				}, nil
			},
			usage: usageOK,
			want: []DiskInfo{
				{Name: "sda"},
				{Name: "sda1", Mountpoints: []string{"/", "/mnt"}, Filesystem: "ext4", Total: 1000},
				{Name: "sdb"},
			},
		},
		{
			name: "Counters Error",
			counters: func(...string) (map[string]disk.IOCountersStat, error) {
				return nil, errors.New("counters failed")
			},
			wantErr: true,
		},
		{
			name:     "Partitions Error Still Lists Devices",
			counters: counters,
			partitions: func(bool) ([]disk.PartitionStat, error) {
				return nil, errors.New("partitions failed")
			},
			want: []DiskInfo{{Name: "sda"}, {Name: "sda1"}, {Name: "sdb"}},
		},
		{
			name:     "Usage Error Leaves Total Zero",
			counters: counters,
			partitions: func(bool) ([]disk.PartitionStat, error) {
				return []disk.PartitionStat{{Device: "/dev/sdb", Mountpoint: "/data", Fstype: "xfs"}}, nil
			},
			usage: func(string) (*disk.UsageStat, error) {
				return nil, errors.New("usage failed")
			},
			want: []DiskInfo{
				{Name: "sda"},
				{Name: "sda1"},
				{Name: "sdb", Mountpoints: []string{"/data"}, Filesystem: "xfs"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDiskFuncs(t, tt.counters, tt.partitions, tt.usage)

			got, err := ListDisks()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ListDisks() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ListDisks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListNetworkInterfaces(t *testing.T) {
	origInterfaces := netInterfaces
	defer func() { netInterfaces = origInterfaces }()

	tests := []struct {
		name           string
		mockInterfaces func() (net.InterfaceStatList, error)
		want           []NetworkInfo
		wantErr        bool
	}{
		{
			name: "Success Sorted",
			mockInterfaces: func() (net.InterfaceStatList, error) {
				return net.InterfaceStatList{
					{Name: "eth1", Addrs: []net.InterfaceAddr{{Addr: "10.0.0.1"}}},
					{Name: "eth0", HardwareAddr: "aa:bb", Addrs: []net.InterfaceAddr{{Addr: "192.168.1.1"}}},
					{Name: "lo", Flags: []string{"up", "loopback"}, Addrs: []net.InterfaceAddr{{Addr: "127.0.0.1/8"}}},
				}, nil
			},
			want: []NetworkInfo{
				{Name: "eth0", MacAddress: "aa:bb", Addresses: []string{"192.168.1.1"}},
				{Name: "eth1", Addresses: []string{"10.0.0.1"}},
				{Name: "lo", Addresses: []string{"127.0.0.1/8"}, Loopback: true},
			},
		},
		{
			name: "Error",
			mockInterfaces: func() (net.InterfaceStatList, error) {
				return nil, errors.New("net failed")
			},
			wantErr: true,
		},
		{
			name: "Interfaces Without Addresses Are Kept",
			mockInterfaces: func() (net.InterfaceStatList, error) {
				return net.InterfaceStatList{{Name: "wg0"}}, nil
			},
			want: []NetworkInfo{{Name: "wg0", Addresses: []string{}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			netInterfaces = tt.mockInterfaces
			got, err := ListNetworkInterfaces()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ListNetworkInterfaces() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ListNetworkInterfaces() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatDisksTable(t *testing.T) {
	disks := []DiskInfo{
		{
			Name:        "sda1",
			Mountpoints: []string{"/mnt/data", "/srv"},
			Filesystem:  "ext4",
			Total:       100 * 1024 * 1024 * 1024,
		},
		{
			Name:        "sdb",
			Mountpoints: []string{"/very/long/path/name/that/exceeds/limit"},
			Filesystem:  "ntfs",
		},
		{Name: "loop0"},
	}

	out := FormatDisksTable(disks)

	for _, want := range []string{"sda1", "/srv", "100 GiB", "...", "loop0"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatDisksTable() output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatNetworksTable(t *testing.T) {
	networks := []NetworkInfo{
		{
			Name:       "eth0",
			MacAddress: "AA:BB:CC:DD:EE:FF",
			Addresses:  []string{"192.168.1.1", "fe80::1"},
		},
		{
			Name:      "lo",
			Addresses: []string{},
			Loopback:  true,
		},
	}

	out := FormatNetworksTable(networks)

	for _, want := range []string{"eth0", "AA:BB:CC:DD:EE:FF", "192.168.1.1", "fe80::1", "N/A", "lo (loopback)"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatNetworksTable() output missing %q:\n%s", want, out)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"Short", 10, "Short"},
		{"ExactLength", 11, "ExactLength"},
		{"TooLongString", 10, "TooLong..."},
	}

	for _, tt := range tests {
		got := truncate(tt.input, tt.maxLen)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}
