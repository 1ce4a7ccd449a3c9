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

package commands

import (
	"fmt"
	"io"

	"github.com/phuonguno98/unotop/internal/devices"
	"github.com/spf13/cobra"
)

var listDevicesCmd = &cobra.Command{
	Use:   "list-devices",
	Short: "List available disk devices and network interfaces",
	Long: `List the disk devices reporting I/O counters and the network interfaces
on this system. These are the names matched by the include/exclude filters.

Examples:
  # List all available devices
  unotop list-devices

  # Use the output to configure filters
  unotop --include-disks="sda" --exclude-networks="docker0"`,
	Args: cobra.NoArgs,
	RunE: runListDevices,
}

func init() {
	rootCmd.AddCommand(listDevicesCmd)
}

func runListDevices(cmd *cobra.Command, args []string) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	fmt.Fprintln(out, "\n========================================")
	fmt.Fprintln(out, "   unotop - Available Devices")
	fmt.Fprintln(out, "========================================")

	// List disk devices
	disks, err := devices.ListDisks()
	switch {
	case err != nil:
		fmt.Fprintf(errOut, "Error listing disks: %v\n", err)
	case len(disks) == 0:
		fmt.Fprintln(out, "\nNo disk devices found.")
	default:
		fmt.Fprint(out, devices.FormatDisksTable(disks))
		names := make([]string, 0, 2)
		for i := 0; i < len(disks) && i < 2; i++ {
			names = append(names, disks[i].Name)
		}
		printFilterExamples(out, "disks", names)
	}

	// List network interfaces
	networks, err := devices.ListNetworkInterfaces()
	switch {
	case err != nil:
		fmt.Fprintf(errOut, "Error listing network interfaces: %v\n", err)
	case len(networks) == 0:
		fmt.Fprintln(out, "\nNo network interfaces found.")
	default:
		fmt.Fprint(out, devices.FormatNetworksTable(networks))
		names := make([]string, 0, 2)
		for i := 0; i < len(networks) && i < 2; i++ {
			names = append(names, networks[i].Name)
		}
		printFilterExamples(out, "networks", names)
	}

	fmt.Fprintln(out, "\nNotes:")
	fmt.Fprintln(out, "  - Use comma to separate multiple devices: --exclude-disks=\"dev1,dev2\"")
	fmt.Fprintln(out, "  - Exclude filters take priority over include filters")
	fmt.Fprintln(out, "  - Empty include list means monitor all devices (except excluded)")
	fmt.Fprintln(out, "  - Loopback interfaces are hidden unless listed in --include-networks")
	fmt.Fprintln(out)

	return nil
}

func printFilterExamples(out io.Writer, kind string, names []string) {
	fmt.Fprintln(out, "\nExample usage:")
	if len(names) > 0 {
		fmt.Fprintf(out, "  unotop --include-%s=\"%s\"\n", kind, names[0])
	}
	if len(names) > 1 {
		fmt.Fprintf(out, "  unotop --exclude-%s=\"%s\"\n", kind, names[1])
	}
}
