// Package memreporter reports process memory usage through gopsutil.
package memreporter

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/user/vidutil/pkg/ports"
)

// Reporter implements ports.MemoryReporter for the current process.
type Reporter struct {
	pid int32
}

// New creates a Reporter for the current process.
func New() *Reporter {
	return &Reporter{pid: int32(os.Getpid())}
}

// ResidentSetSize returns the resident set size in bytes.
func (r *Reporter) ResidentSetSize() (uint64, error) {
	p, err := process.NewProcess(r.pid)
	if err != nil {
		return 0, fmt.Errorf("find process %d: %w", r.pid, err)
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return 0, fmt.Errorf("memory info: %w", err)
	}
	return mem.RSS, nil
}

// Format renders a byte count as megabytes with four decimals, e.g. "12.3456MB".
func Format(bytes uint64) string {
	return fmt.Sprintf("%.4fMB", float64(bytes)/(1024*1024))
}

var _ ports.MemoryReporter = (*Reporter)(nil)
