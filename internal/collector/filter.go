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
	"strings"
	"unicode"
)

// deviceFilter decides which disks or interfaces are sampled.
// Exclusions win over inclusions; an empty include list means everything.
type deviceFilter struct {
	include []string
	exclude []string
}

func newDeviceFilter(include, exclude []string) deviceFilter {
	return deviceFilter{
		include: normalizeDeviceList(include),
		exclude: normalizeDeviceList(exclude),
	}
}

// normalizeDeviceName strips the /dev/ prefix so that names shown by
// list-devices (/dev/sdd) match IO counter keys (sdd).
func normalizeDeviceName(name string) string {
	return strings.TrimPrefix(name, "/dev/")
}

func normalizeDeviceList(devices []string) []string {
	if len(devices) == 0 {
		return nil
	}
	normalized := make([]string, len(devices))
	for i, device := range devices {
		normalized[i] = normalizeDeviceName(device)
	}
	return normalized
}

func (f deviceFilter) allows(name string) bool {
	name = normalizeDeviceName(name)

	for _, excluded := range f.exclude {
		if excluded == name {
			return false
		}
	}

	if len(f.include) == 0 {
		return true
	}

	for _, included := range f.include {
		if included == name {
			return true
		}
	}

	return false
}

// parentDevice returns the whole-disk name of a partition: sda1 -> sda,
// nvme0n1p2 -> nvme0n1, mmcblk0p1 -> mmcblk0. Names without a partition
// number are returned as is.
func parentDevice(name string) string {
	name = normalizeDeviceName(name)

	trimmed := strings.TrimRightFunc(name, unicode.IsDigit)
	n := len(trimmed)
	if n == len(name) || n < 2 {
		return name
	}

	switch prev := rune(trimmed[n-2]); {
	case trimmed[n-1] == 'p' && unicode.IsDigit(prev):
		// nvme0n1p2, mmcblk0p1
		return trimmed[:n-1]
	case trimmed[n-1] == 'n' && unicode.IsDigit(prev):
		// nvme0n1 is a namespace, i.e. a whole disk
		return name
	}
	return trimmed
}

// allowsPartition applies the filter to a partition, matching either its
// own name or the name of the disk it lives on. Excluding a disk excludes
// all its partitions.
func (f deviceFilter) allowsPartition(name string) bool {
	name = normalizeDeviceName(name)
	parent := parentDevice(name)
	if parent == name {
		return f.allows(name)
	}

	for _, excluded := range f.exclude {
		if excluded == name || excluded == parent {
			return false
		}
	}

	if len(f.include) == 0 {
		return true
	}

	for _, included := range f.include {
		if included == name || included == parent {
			return true
		}
	}

	return false
}
