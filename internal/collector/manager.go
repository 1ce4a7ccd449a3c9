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
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/phuonguno98/unotop/internal/config"
	"github.com/phuonguno98/unotop/pkg/metrics"
)

// startUpDelay separates the warm-up reading from the first real tick so
// that CPU and process percentages have a meaningful delta.
var startUpDelay = 200 * time.Millisecond

// errChannelFull is returned when the consumer has not drained the previous
// snapshots and this one is dropped.
var errChannelFull = errors.New("metrics channel full, dropping snapshot")

// Manager orchestrates all metric collectors.
type Manager struct {
	config      *config.Config
	cpu         *CPUCollector
	memory      *MemoryCollector
	disk        *DiskCollector
	network     *NetworkCollector
	processes   *ProcessCollector
	metricsChan chan<- *metrics.Snapshot
	logger      *slog.Logger
}

// NewManager creates a new collector manager instance.
func NewManager(cfg *config.Config, metricsChan chan<- *metrics.Snapshot, logger *slog.Logger) *Manager {
	return &Manager{
		config:      cfg,
		cpu:         NewCPUCollector(),
		memory:      NewMemoryCollector(),
		disk:        NewDiskCollector(cfg.Filters.IncludeDisks, cfg.Filters.ExcludeDisks),
		network:     NewNetworkCollector(cfg.Filters.IncludeNetworks, cfg.Filters.ExcludeNetworks),
		processes:   NewProcessCollector(cfg.TopProcesses),
		metricsChan: metricsChan,
		logger:      logger,
	}
}

// Start begins the collection loop.
// It primes the delta-based collectors, then sends one snapshot per interval
// until ctx is cancelled.
func (m *Manager) Start(ctx context.Context) error {
	m.logger.Info("Starting collector manager",
		"interval", m.config.SamplingInterval,
	)

	m.warmUp()

	select {
	case <-time.After(startUpDelay):
	case <-ctx.Done():
		return nil
	}

	if err := m.collectOnce(); err != nil {
		m.logger.Warn("Initial collection failed", "error", err)
	}

	ticker := time.NewTicker(m.config.SamplingInterval)
	defer ticker.Stop()

	m.logger.Info("Collector manager started")

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Collector manager stopping...")
			return nil

		case <-ticker.C:
			if err := m.collectOnce(); err != nil {
				m.logger.Warn("Collection failed", "error", err)
			}
		}
	}
}

// warmUp records the first CPU and process readings without emitting them.
func (m *Manager) warmUp() {
	m.logger.Debug("Performing baseline collection...")
	if _, err := m.cpu.Collect(); err != nil {
		m.logger.Warn("Baseline CPU collection failed", "error", err)
	}
	if m.config.ShowProcesses && m.config.TopProcesses > 0 {
		if _, err := m.processes.Collect(); err != nil {
			m.logger.Warn("Baseline process collection failed", "error", err)
		}
	}
}

// collectOnce performs a single collection cycle concurrently.
// A failing collector leaves its part of the snapshot empty.
func (m *Manager) collectOnce() error {
	snapshot := m.gather()

	// Send snapshot to channel (non-blocking)
	select {
	case m.metricsChan <- snapshot:
		m.logger.Debug("Snapshot sent",
			"cpu", snapshot.CPU,
			"memory", snapshot.MemPercent,
			"disks", len(snapshot.Disks),
			"networks", len(snapshot.Networks),
			"processes", len(snapshot.Processes),
		)
	default:
		return errChannelFull
	}

	return nil
}

// gather runs every enabled collector in parallel and merges the results.
func (m *Manager) gather() *metrics.Snapshot {
	snapshot := &metrics.Snapshot{
		Timestamp: time.Now(),
		CPUWait:   -1,
		Disks:     make(metrics.CounterSnapshot),
		Networks:  make(metrics.CounterSnapshot),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex // Protects snapshot updates
	)

	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				m.logger.Warn("Failed to collect metrics", "collector", name, "error", err)
			}
		}()
	}

	run(m.cpu.Name(), func() error {
		reading, err := m.cpu.Collect()
		if err != nil {
			return err
		}
		mu.Lock()
		snapshot.CPU = reading.Usage
		snapshot.CPUWait = reading.IOWait
		mu.Unlock()
		return nil
	})

	run(m.memory.Name(), func() error {
		memStats, err := m.memory.Collect()
		if err != nil {
			return err
		}
		mu.Lock()
		snapshot.MemUsedMB = memStats.UsedMB
		snapshot.MemTotalMB = memStats.TotalMB
		snapshot.MemPercent = memStats.Percent
		mu.Unlock()
		return nil
	})

	if m.config.ShowDisk {
		run(m.disk.Name(), func() error {
			counters, err := m.disk.Collect()
			if err != nil {
				return err
			}
			spaces, spaceErr := m.disk.CollectSpace()
			mu.Lock()
			snapshot.Disks = counters
			snapshot.DiskSpace = spaces
			mu.Unlock()
			return spaceErr
		})
	}

	if m.config.ShowNetwork {
		run(m.network.Name(), func() error {
			counters, err := m.network.Collect()
			if err != nil {
				return err
			}
			mu.Lock()
			snapshot.Networks = counters
			mu.Unlock()
			return nil
		})
	}

	if m.config.ShowProcesses && m.config.TopProcesses > 0 {
		run(m.processes.Name(), func() error {
			procs, err := m.processes.Collect()
			if err != nil {
				return err
			}
			mu.Lock()
			snapshot.Processes = procs
			mu.Unlock()
			return nil
		})
	}

	wg.Wait()

	return snapshot
}
