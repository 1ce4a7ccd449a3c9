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

package display

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/phuonguno98/unotop/internal/config"
	"github.com/phuonguno98/unotop/pkg/metrics"
)

// Dashboard consumes snapshots, feeds them through the history and rate
// trackers and paints the result. It is the only owner of the trackers, so
// every update happens on the goroutine running Start.
type Dashboard struct {
	config      *config.Config
	history     *metrics.HistoryTracker
	rates       *metrics.RateTracker
	renderer    *Renderer
	out         io.Writer
	interactive bool // out is a terminal: redraw in place and hide the cursor
	metricsChan <-chan *metrics.Snapshot
	logger      *slog.Logger
	frameCount  int
}

// NewDashboard creates a dashboard writing frames to out.
func NewDashboard(cfg *config.Config, metricsChan <-chan *metrics.Snapshot, out io.Writer, renderer *Renderer, interactive bool, logger *slog.Logger) *Dashboard {
	return &Dashboard{
		config:      cfg,
		history:     metrics.NewHistoryTracker(cfg.HistorySize, cfg.Thresholds.TrendDeadband),
		rates:       metrics.NewRateTracker(),
		renderer:    renderer,
		out:         out,
		interactive: interactive,
		metricsChan: metricsChan,
		logger:      logger,
	}
}

// Start draws a frame for every snapshot until ctx is cancelled or the
// channel is closed. The cursor is restored before returning.
func (d *Dashboard) Start(ctx context.Context) error {
	d.logger.Info("Starting dashboard", "interactive", d.interactive, "history_size", d.config.HistorySize)

	if d.interactive {
		if _, err := io.WriteString(d.out, ansi.HideCursor); err != nil {
			return fmt.Errorf("failed to hide cursor: %w", err)
		}
	}
	defer func() {
		if err := d.Close(); err != nil {
			d.logger.Error("Failed to restore terminal", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Dashboard stopping...", "frames", d.frameCount)
			return nil

		case snapshot, ok := <-d.metricsChan:
			if !ok {
				d.logger.Info("Metrics channel closed", "frames", d.frameCount)
				return nil
			}

			if err := d.draw(d.Update(snapshot)); err != nil {
				return err
			}
		}
	}
}

// Update applies one snapshot to the trackers and returns the frame to draw.
func (d *Dashboard) Update(snapshot *metrics.Snapshot) Frame {
	d.history.Add(snapshot.Sample())

	frame := Frame{
		Snapshot:      snapshot,
		History:       d.history,
		ShowNetwork:   d.config.ShowNetwork,
		ShowDisk:      d.config.ShowDisk,
		ShowProcesses: d.config.ShowProcesses && d.config.TopProcesses > 0,
	}

	// Rates are timed by collection, not arrival: snapshots queued behind a
	// slow terminal are drained back-to-back.
	readAt := snapshot.Timestamp
	if readAt.IsZero() {
		readAt = time.Now()
	}
	if frame.ShowNetwork {
		frame.NetRates = d.rates.UpdateNetworkRatesAt(snapshot.Networks, readAt)
	}
	if frame.ShowDisk {
		frame.DiskRates = d.rates.UpdateDiskRatesAt(snapshot.Disks, readAt)
	}

	d.logger.Debug("Frame updated",
		"cpu_trend", d.history.CPUTrend().String(),
		"mem_trend", d.history.MemTrend().String(),
		"net_rates", len(frame.NetRates),
		"disk_rates", len(frame.DiskRates),
	)

	return frame
}

func (d *Dashboard) draw(frame Frame) error {
	text := d.renderer.Render(frame)

	if d.interactive {
		text = ansi.EraseEntireScreen + ansi.CursorHomePosition + text
	} else if d.frameCount > 0 {
		text = "\n" + text
	}

	if _, err := io.WriteString(d.out, text); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	d.frameCount++
	return nil
}

// Close restores terminal state. It is safe to call more than once.
func (d *Dashboard) Close() error {
	if !d.interactive {
		return nil
	}
	if _, err := io.WriteString(d.out, ansi.ShowCursor); err != nil {
		return fmt.Errorf("failed to show cursor: %w", err)
	}
	return nil
}
