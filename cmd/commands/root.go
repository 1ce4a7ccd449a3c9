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
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	logLevel   string
	logFile    string
}

var globals globalOptions

const (
	osWindows = "windows"
	osLinux   = "linux"
	osDarwin  = "darwin"
)

// rootCmd represents the base command when called without any subcommands.
// On its own it behaves like 'unotop run'.
var rootCmd = &cobra.Command{
	Use:   "unotop",
	Short: "unotop - Live terminal dashboard for system metrics",
	Long: `unotop is a lightweight, cross-platform system monitor for the terminal.
It samples CPU, memory, disk and network usage on a fixed interval and shows
rolling averages, peaks, trend arrows and per-second throughput.

Run 'unotop' or 'unotop run' to start the dashboard.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd, &rootRunOpts)
	},
}

var rootRunOpts runOptions

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	globals.addFlags(rootCmd.PersistentFlags())
	rootRunOpts.addFlags(rootCmd.Flags())
}

func (g *globalOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&g.configPath, "config", "c", "",
		"Path to a YAML configuration file")
	fs.StringVar(&g.logLevel, "log-level", "info",
		"Log level (debug, info, warn, error)")
	fs.StringVar(&g.logFile, "log-file", "",
		"Log file path (empty = stderr, silent while drawing to a terminal unless --log-level=debug)")
}

// InitLogger initializes and returns a slog.Logger based on the provided settings.
// Stdout belongs to the dashboard, so console logs go to stderr. A log file
// receives JSON records. When the dashboard redraws a terminal and no file
// is given, stderr shares that screen, so records are dropped unless the
// level is debug. The returned func releases the file, if any.
func InitLogger(levelStr, fileStr string, interactive bool) (*slog.Logger, func() error, error) {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if fileStr == "" {
		if interactive && level > slog.LevelDebug {
			return slog.New(slog.DiscardHandler), func() error { return nil }, nil
		}
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() error { return nil }, nil
	}

	f, err := os.OpenFile(fileStr, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return slog.New(slog.NewJSONHandler(f, opts)), f.Close, nil
}
