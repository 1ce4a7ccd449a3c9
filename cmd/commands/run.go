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
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/phuonguno98/unotop/internal/collector"
	"github.com/phuonguno98/unotop/internal/config"
	"github.com/phuonguno98/unotop/internal/display"
	"github.com/phuonguno98/unotop/pkg/metrics"
	"github.com/phuonguno98/unotop/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// metricsBufferSize is the capacity of the collector-to-dashboard channel.
const metricsBufferSize = 10

// runOptions holds the dashboard flags. Only flags the user actually set
// override the configuration file.
type runOptions struct {
	samplingInterval time.Duration
	historySize      int
	topProcesses     int
	noNetwork        bool
	noDisk           bool
	noProcesses      bool
	noColor          bool
	includeDisks     string
	excludeDisks     string
	includeNetworks  string
	excludeNetworks  string
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the live dashboard",
	Long: `Start the live dashboard. The screen is redrawn once per interval with
CPU, memory, disk and network usage, their rolling averages, peaks and trends.
When stdout is not a terminal, frames are appended as plain text instead.

Examples:
  # Run with default settings
  unotop run

  # Faster refresh with a longer history window
  unotop run --interval 500ms --history-size 60

  # Load settings from a file, overriding one of them
  unotop run --config unotop.yaml --no-processes`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd, &runOpts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runOpts.addFlags(runCmd.Flags())
}

func (o *runOptions) addFlags(fs *pflag.FlagSet) {
	fs.DurationVarP(&o.samplingInterval, "interval", "i", config.DefaultSamplingInterval,
		"Sampling interval (e.g., 500ms, 1s, 5s)")
	fs.IntVar(&o.historySize, "history-size", config.DefaultHistorySize,
		"Number of samples used for averages, peaks and the sparkline")
	fs.IntVar(&o.topProcesses, "top", config.DefaultTopProcesses,
		"Number of processes shown in the process table")
	fs.BoolVar(&o.noNetwork, "no-network", false, "Hide network throughput")
	fs.BoolVar(&o.noDisk, "no-disk", false, "Hide disk throughput and usage")
	fs.BoolVar(&o.noProcesses, "no-processes", false, "Hide the process table")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored output")

	// Filter flags
	fs.StringVar(&o.includeDisks, "include-disks", "",
		"Comma-separated list of disk devices to monitor (empty = all)")
	fs.StringVar(&o.excludeDisks, "exclude-disks", "",
		"Comma-separated list of disk devices to exclude")
	fs.StringVar(&o.includeNetworks, "include-networks", "",
		"Comma-separated list of network interfaces to monitor (empty = all)")
	fs.StringVar(&o.excludeNetworks, "exclude-networks", "",
		"Comma-separated list of network interfaces to exclude")
}

// buildConfig layers defaults, the optional config file and explicitly set
// flags, in that order, then validates the result.
func (o *runOptions) buildConfig(fs *pflag.FlagSet, g *globalOptions) (*config.Config, error) {
	cfg := config.Default()

	if g.configPath != "" {
		if err := cfg.LoadFile(g.configPath); err != nil {
			return nil, err
		}
	}

	if fs.Changed("interval") {
		cfg.SamplingInterval = o.samplingInterval
	}
	if fs.Changed("history-size") {
		cfg.HistorySize = o.historySize
	}
	if fs.Changed("top") {
		cfg.TopProcesses = o.topProcesses
	}
	if fs.Changed("no-network") {
		cfg.ShowNetwork = !o.noNetwork
	}
	if fs.Changed("no-disk") {
		cfg.ShowDisk = !o.noDisk
	}
	if fs.Changed("no-processes") {
		cfg.ShowProcesses = !o.noProcesses
	}
	if fs.Changed("no-color") {
		cfg.Color = !o.noColor
	}

	// Parse filter lists
	if fs.Changed("include-disks") {
		cfg.Filters.IncludeDisks = config.ParseCommaSeparated(o.includeDisks)
	}
	if fs.Changed("exclude-disks") {
		cfg.Filters.ExcludeDisks = config.ParseCommaSeparated(o.excludeDisks)
	}
	if fs.Changed("include-networks") {
		cfg.Filters.IncludeNetworks = config.ParseCommaSeparated(o.includeNetworks)
	}
	if fs.Changed("exclude-networks") {
		cfg.Filters.ExcludeNetworks = config.ParseCommaSeparated(o.excludeNetworks)
	}

	if fs.Changed("log-level") {
		cfg.LogLevel = g.logLevel
	}
	if fs.Changed("log-file") {
		cfg.LogFile = g.logFile
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// runDashboard is the main monitoring entry point.
func runDashboard(cmd *cobra.Command, opts *runOptions) error {
	cfg, err := opts.buildConfig(cmd.Flags(), &globals)
	if err != nil {
		return err
	}

	fd := int(os.Stdout.Fd())
	interactive := term.IsTerminal(fd)

	// Initialize logger
	logger, closeLog, err := InitLogger(cfg.LogLevel, cfg.LogFile, interactive)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close log file: %v\n", err)
		}
	}()
	logger = logger.With("run_id", uuid.NewString())

	logger.Info("Starting unotop",
		"version", version.Info(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
	)
	logger.Info("Configuration loaded", "config", cfg.String())

	// Check platform capabilities
	checkPlatformCapabilities(logger)

	width := 0
	if interactive {
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		} else {
			logger.Debug("Could not read terminal size", "error", err)
		}
	}

	// Create metrics channel (buffered to avoid blocking collectors)
	metricsChan := make(chan *metrics.Snapshot, metricsBufferSize)

	collectorMgr := collector.NewManager(cfg, metricsChan, logger)
	renderer := display.NewRenderer(cfg.Thresholds, cfg.Color && interactive, width)
	dashboard := display.NewDashboard(cfg, metricsChan, os.Stdout, renderer, interactive, logger)

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, initiating shutdown", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// The manager is the only sender; closing lets the dashboard drain and exit.
		defer close(metricsChan)
		if err := collectorMgr.Start(gctx); err != nil {
			return fmt.Errorf("collector manager: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := dashboard.Start(gctx); err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		return nil
	})

	err = g.Wait()
	if err != nil {
		logger.Error("unotop stopped with error", "error", err)
	}

	logger.Info("Shutdown complete")

	return err
}

// checkPlatformCapabilities logs platform-specific capability warnings.
func checkPlatformCapabilities(logger *slog.Logger) {
	switch runtime.GOOS {
	case osWindows:
		logger.Warn("Running on Windows: CPU iowait metric is not available")
	case osDarwin:
		logger.Info("Running on macOS: CPU iowait may be unavailable")
		logger.Info("Running on macOS: Disk metrics may require Full Disk Access or sudo")
	case osLinux:
		logger.Info("Running on Linux: All metrics available")
	default:
		logger.Warn("Running on unsupported platform, some metrics may not work", "os", runtime.GOOS)
	}
}
