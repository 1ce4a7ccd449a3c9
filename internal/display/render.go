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
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/phuonguno98/unotop/internal/config"
	"github.com/phuonguno98/unotop/pkg/metrics"
)

const (
	naString          = "N/A"
	calculatingString = "(still calculating…)"
	maxProcessName    = 25
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#60A5FA"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EAB308"))
	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// Frame holds everything drawn in one refresh.
type Frame struct {
	Snapshot  *metrics.Snapshot
	History   *metrics.HistoryTracker
	NetRates  []metrics.Rate
	DiskRates []metrics.Rate

	ShowNetwork   bool
	ShowDisk      bool
	ShowProcesses bool
}

// Renderer turns a Frame into terminal text.
type Renderer struct {
	thresholds config.Thresholds
	color      bool
	width      int // 0 = no limit
}

// NewRenderer creates a renderer. Values are colored against thresholds
// when color is true; lines are cut to width cells when width > 0.
func NewRenderer(thresholds config.Thresholds, color bool, width int) *Renderer {
	return &Renderer{
		thresholds: thresholds,
		color:      color,
		width:      width,
	}
}

func (r *Renderer) paint(style lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return style.Render(text)
}

type severity int

const (
	severityOK severity = iota
	severityWarning
	severityCritical
)

var severityStyles = [...]lipgloss.Style{
	severityOK:       okStyle,
	severityWarning:  warningStyle,
	severityCritical: criticalStyle,
}

// classify places value in a warning/critical band.
func classify(value, warning, critical float64) severity {
	switch {
	case value >= critical:
		return severityCritical
	case value >= warning:
		return severityWarning
	default:
		return severityOK
	}
}

// gauge selects which warning/critical band applies to a value.
type gauge int

const (
	gaugeCPU gauge = iota
	gaugeMemory
	gaugeDisk
)

func (r *Renderer) severityFor(g gauge, value float64) severity {
	t := r.thresholds
	switch g {
	case gaugeCPU:
		return classify(value, t.CPUWarning, t.CPUCritical)
	case gaugeMemory:
		return classify(value, t.MemWarning, t.MemCritical)
	default:
		return classify(value, t.DiskWarning, t.DiskCritical)
	}
}

func (r *Renderer) level(g gauge, value float64) lipgloss.Style {
	return severityStyles[r.severityFor(g, value)]
}

// Render builds the full dashboard text for f.
func (r *Renderer) Render(f Frame) string {
	var sb strings.Builder

	sb.WriteString(r.paint(titleStyle, "--- SYSTEM MONITOR RUNNING ---"))
	sb.WriteString("\n\n")

	r.writeCPU(&sb, f)
	r.writeMemory(&sb, f)

	if f.ShowDisk {
		r.writeRates(&sb, "Disk I/O:", "Device", "Read", "Write", f.DiskRates)
		r.writeDiskSpace(&sb, f.Snapshot.DiskSpace)
	}

	if f.ShowNetwork {
		r.writeRates(&sb, "Network Usage:", "Interface", "Received", "Sent", f.NetRates)
	}

	if f.ShowProcesses {
		r.writeProcesses(&sb, f.Snapshot.Processes)
	}

	return r.clip(sb.String())
}

func (r *Renderer) writeCPU(sb *strings.Builder, f Frame) {
	cpu := f.Snapshot.CPU

	value := r.paint(r.level(gaugeCPU, cpu), fmt.Sprintf("%6.1f%%", cpu))
	line := fmt.Sprintf("  CPU Usage:      %s", value)
	if trend := f.History.CPUTrend(); trend != metrics.TrendUndetermined {
		line += " " + trend.String()
	}
	if f.Snapshot.CPUWait >= 0 {
		line += r.paint(dimStyle, fmt.Sprintf("  iowait %.1f%%", f.Snapshot.CPUWait))
	}
	sb.WriteString(line + "\n")

	if !f.History.HasData() {
		return
	}
	avg, _ := f.History.CPUAvg()
	peak, _ := f.History.CPUMax()
	samples := f.History.Samples()
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = float64(s.CPUUsage)
	}
	sb.WriteString(fmt.Sprintf("    avg: %.1f%%, peak: %.1f%%  %s\n",
		avg, peak, r.paint(dimStyle, sparkline(values, 0, 100))))
}

func (r *Renderer) writeMemory(sb *strings.Builder, f Frame) {
	s := f.Snapshot

	pct := r.paint(r.level(gaugeMemory, s.MemPercent), fmt.Sprintf("%5.1f%%", s.MemPercent))
	line := fmt.Sprintf("  Memory Usage:   %6d MB / %6d MB (%s)", s.MemUsedMB, s.MemTotalMB, pct)
	if trend := f.History.MemTrend(); trend != metrics.TrendUndetermined {
		line += " " + trend.String()
	}
	sb.WriteString(line + "\n")

	if !f.History.HasData() {
		return
	}
	avg, _ := f.History.MemAvg()
	peak, _ := f.History.MemMax()
	sb.WriteString(fmt.Sprintf("    avg: %.1f%%, peak: %.1f%%\n", avg, peak))
}

func (r *Renderer) writeRates(sb *strings.Builder, title, nameCol, inCol, outCol string, rates []metrics.Rate) {
	sb.WriteString("\n" + r.paint(headerStyle, title) + "\n")
	sb.WriteString(fmt.Sprintf("  %-15s %14s %14s\n", nameCol, inCol+"/s", outCol+"/s"))
	sb.WriteString(fmt.Sprintf("  %-15s %14s %14s\n",
		strings.Repeat("-", len(nameCol)), strings.Repeat("-", len(inCol)+2), strings.Repeat("-", len(outCol)+2)))

	if len(rates) == 0 {
		sb.WriteString("  " + r.paint(dimStyle, calculatingString) + "\n")
		return
	}

	for _, rate := range rates {
		sb.WriteString(fmt.Sprintf("  %-15s %14s %14s\n",
			ansi.Truncate(rate.Name, 15, "…"), formatRate(rate.In), formatRate(rate.Out)))
	}
}

func (r *Renderer) writeDiskSpace(sb *strings.Builder, spaces []metrics.DiskSpace) {
	if len(spaces) == 0 {
		return
	}

	sb.WriteString("\n" + r.paint(headerStyle, "Disk Usage:") + "\n")
	sb.WriteString(fmt.Sprintf("  %-20s %10s %10s %8s\n", "Mount", "Used", "Total", "Usage"))
	sb.WriteString(fmt.Sprintf("  %-20s %10s %10s %8s\n", "-----", "----", "-----", "-----"))

	for _, s := range spaces {
		usage := fmt.Sprintf("%7.1f%%", s.Percent)
		sb.WriteString(fmt.Sprintf("  %-20s %10s %10s %s\n",
			ansi.Truncate(s.Mountpoint, 20, "…"),
			humanize.IBytes(s.Used),
			humanize.IBytes(s.Total),
			r.paint(r.level(gaugeDisk, s.Percent), usage)))
	}
}

func (r *Renderer) writeProcesses(sb *strings.Builder, procs []metrics.ProcessInfo) {
	sb.WriteString("\n" + r.paint(headerStyle, "Most Used (CPU):") + "\n")
	sb.WriteString(fmt.Sprintf("  %-25s %8s %10s\n", "Process", "CPU", "Memory"))
	sb.WriteString(fmt.Sprintf("  %-25s %8s %10s\n", "-------", "---", "------"))

	if len(procs) == 0 {
		sb.WriteString("  " + r.paint(dimStyle, naString) + "\n")
		return
	}

	for _, p := range procs {
		sb.WriteString(fmt.Sprintf("  %-25s %7.1f%% %7d MB\n",
			ansi.Truncate(p.Name, maxProcessName, "..."),
			p.CPU,
			p.MemoryRSS/(1024*1024)))
	}
}

// clip cuts every line to the terminal width without breaking escape sequences.
func (r *Renderer) clip(text string) string {
	if r.width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if ansi.StringWidth(line) > r.width {
			lines[i] = ansi.Truncate(line, r.width, "")
		}
	}
	return strings.Join(lines, "\n")
}

// formatRate renders bytes per second in binary units.
func formatRate(bytesPerSec float64) string {
	if bytesPerSec < 0 {
		bytesPerSec = 0
	}
	return humanize.IBytes(uint64(bytesPerSec)) + "/s"
}
