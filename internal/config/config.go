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

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents application configuration.
type Config struct {
	SamplingInterval time.Duration `yaml:"interval"`       // Interval between ticks
	HistorySize      int           `yaml:"history_size"`   // Samples kept for avg/peak/trend
	TopProcesses     int           `yaml:"top_processes"`  // Rows in the process table
	ShowNetwork      bool          `yaml:"show_network"`   // Render network rates
	ShowDisk         bool          `yaml:"show_disk"`      // Render disk rates and space
	ShowProcesses    bool          `yaml:"show_processes"` // Render the process table
	Color            bool          `yaml:"color"`          // Colorize values by threshold

	Filters    Filters    `yaml:"filters"`
	Thresholds Thresholds `yaml:"thresholds"`

	// Logging
	LogLevel string `yaml:"log_level"` // Log level: debug, info, warn, error
	LogFile  string `yaml:"log_file"`  // Log file path (empty = stderr)
}

// Filters selects which devices are sampled.
type Filters struct {
	IncludeDisks    []string `yaml:"include_disks"`    // Disk devices to monitor (empty = all)
	ExcludeDisks    []string `yaml:"exclude_disks"`    // Disk devices to exclude
	IncludeNetworks []string `yaml:"include_networks"` // Network interfaces to monitor (empty = all)
	ExcludeNetworks []string `yaml:"exclude_networks"` // Network interfaces to exclude
}

// Thresholds holds the tunables used when deriving trends and colors.
type Thresholds struct {
	TrendDeadband float64 `yaml:"trend_deadband"` // Percentage points
	CPUWarning    float64 `yaml:"cpu_warning"`
	CPUCritical   float64 `yaml:"cpu_critical"`
	MemWarning    float64 `yaml:"mem_warning"`
	MemCritical   float64 `yaml:"mem_critical"`
	DiskWarning   float64 `yaml:"disk_warning"` // Filesystem usage
	DiskCritical  float64 `yaml:"disk_critical"`
}

// Default configuration values.
const (
	DefaultSamplingInterval = 1 * time.Second
	MinSamplingInterval     = 100 * time.Millisecond
	MaxSamplingInterval     = 1 * time.Hour
	DefaultHistorySize      = 10
	MaxHistorySize          = 3600
	DefaultTopProcesses     = 5
	MaxTopProcesses         = 50
	DefaultLogLevel         = "info"

	DefaultTrendDeadband = 1.0
	DefaultCPUWarning    = 50.0
	DefaultCPUCritical   = 80.0
	DefaultMemWarning    = 70.0
	DefaultMemCritical   = 90.0
	DefaultDiskWarning   = 80.0
	DefaultDiskCritical  = 95.0
)

// DefaultThresholds returns the built-in trend and color thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TrendDeadband: DefaultTrendDeadband,
		CPUWarning:    DefaultCPUWarning,
		CPUCritical:   DefaultCPUCritical,
		MemWarning:    DefaultMemWarning,
		MemCritical:   DefaultMemCritical,
		DiskWarning:   DefaultDiskWarning,
		DiskCritical:  DefaultDiskCritical,
	}
}

// Default returns a configuration populated with default values.
func Default() *Config {
	return &Config{
		SamplingInterval: DefaultSamplingInterval,
		HistorySize:      DefaultHistorySize,
		TopProcesses:     DefaultTopProcesses,
		ShowNetwork:      true,
		ShowDisk:         true,
		ShowProcesses:    true,
		Color:            true,
		Thresholds:       DefaultThresholds(),
		LogLevel:         DefaultLogLevel,
	}
}

// LoadFile overlays the YAML file at path onto c.
// Keys missing from the file keep their current values; unknown keys are an error.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		// An empty file decodes to io.EOF and leaves the defaults alone.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// parseCommaSeparated parses a comma-separated string into a slice of trimmed strings.
func parseCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// ParseCommaSeparated is the exported version of parseCommaSeparated.
func ParseCommaSeparated(s string) []string {
	return parseCommaSeparated(s)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SamplingInterval < MinSamplingInterval {
		return fmt.Errorf("sampling interval must be at least %v", MinSamplingInterval)
	}

	if c.SamplingInterval > MaxSamplingInterval {
		return errors.New("sampling interval must not exceed 1 hour")
	}

	if c.HistorySize < 1 || c.HistorySize > MaxHistorySize {
		return fmt.Errorf("history size must be between 1 and %d", MaxHistorySize)
	}

	if c.TopProcesses < 0 || c.TopProcesses > MaxTopProcesses {
		return fmt.Errorf("top processes must be between 0 and %d", MaxTopProcesses)
	}

	if err := c.Thresholds.Validate(); err != nil {
		return err
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.LogFile != "" {
		if err := ensureParentDir(c.LogFile); err != nil {
			return fmt.Errorf("log directory check failed: %w", err)
		}
	}

	return nil
}

// Validate checks that every band is ordered and within [0, 100].
func (t Thresholds) Validate() error {
	if t.TrendDeadband < 0 {
		return errors.New("trend deadband must not be negative")
	}

	bands := []struct {
		name              string
		warning, critical float64
	}{
		{"cpu", t.CPUWarning, t.CPUCritical},
		{"memory", t.MemWarning, t.MemCritical},
		{"disk", t.DiskWarning, t.DiskCritical},
	}
	for _, b := range bands {
		if b.warning < 0 || b.critical > 100 {
			return fmt.Errorf("%s thresholds must be within 0-100", b.name)
		}
		if b.warning >= b.critical {
			return fmt.Errorf("%s warning threshold (%.1f) must be below critical (%.1f)",
				b.name, b.warning, b.critical)
		}
	}

	return nil
}

// ensureParentDir checks that the directory holding path exists.
func ensureParentDir(path string) error {
	dir := filepath.Dir(path)

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("parent is not a directory: %s", dir)
	}

	return nil
}

// String returns a human-readable representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Interval=%v, History=%d, Top=%d, Network=%t, Disk=%t, Processes=%t, Deadband=%.2f}",
		c.SamplingInterval, c.HistorySize, c.TopProcesses,
		c.ShowNetwork, c.ShowDisk, c.ShowProcesses, c.Thresholds.TrendDeadband)
}
