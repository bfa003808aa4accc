// Package metrics supplies the footer's system summary. It is an external
// collaborator from the menu's point of view: polled through a narrow
// interface, never allowed to block navigation.
package metrics

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Placeholder is shown when the provider cannot produce a reading.
const Placeholder = "--"

// Provider yields one short footer segment per call.
type Provider interface {
	FooterText() string
}

// SystemProvider reads load and memory figures from /proc. Each call is two
// small file reads, fast enough to run inline between frames.
type SystemProvider struct {
	loadavgPath string
	meminfoPath string
}

// NewSystemProvider targets the live /proc filesystem.
func NewSystemProvider() *SystemProvider {
	return &SystemProvider{
		loadavgPath: "/proc/loadavg",
		meminfoPath: "/proc/meminfo",
	}
}

// FooterText renders "load 0.42 · mem 63%", degrading to the placeholder on
// any read or parse failure.
func (p *SystemProvider) FooterText() string {
	load, lerr := p.loadAverage()
	mem, merr := p.memoryUsedPercent()
	switch {
	case lerr == nil && merr == nil:
		return fmt.Sprintf("load %s · mem %d%%", load, mem)
	case lerr == nil:
		return "load " + load
	case merr == nil:
		return fmt.Sprintf("mem %d%%", mem)
	default:
		return Placeholder
	}
}

func (p *SystemProvider) loadAverage() (string, error) {
	data, err := os.ReadFile(p.loadavgPath)
	if err != nil {
		return "", err
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return "", fmt.Errorf("empty loadavg")
	}
	return fields[0], nil
}

func (p *SystemProvider) memoryUsedPercent() (int, error) {
	data, err := os.ReadFile(p.meminfoPath)
	if err != nil {
		return 0, err
	}
	var total, available int64
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "MemTotal:":
			total, _ = strconv.ParseInt(fields[1], 10, 64)
		case "MemAvailable:":
			available, _ = strconv.ParseInt(fields[1], 10, 64)
		}
	}
	if total <= 0 || available < 0 || available > total {
		return 0, fmt.Errorf("implausible meminfo values")
	}
	return int((total - available) * 100 / total), nil
}

// Static always returns the same text; used as the fallback provider and in
// tests.
type Static string

func (s Static) FooterText() string {
	return string(s)
}
