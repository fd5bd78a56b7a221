// Package volume reports capacity of the filesystem holding a path.
package volume

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
)

// Stats describes the filesystem a scanned root lives on.
type Stats struct {
	// Path is the path the usage was queried for.
	Path string `json:"path"`
	// Fstype is the filesystem type, when known.
	Fstype string `json:"fstype"`
	// Total is the filesystem capacity in bytes.
	Total uint64 `json:"total"`
	// Used is the number of bytes in use.
	Used uint64 `json:"used"`
	// Free is the number of bytes available.
	Free uint64 `json:"free"`
	// UsedPercent is Used relative to Total.
	UsedPercent float64 `json:"used_percent"`
}

// Usage queries the filesystem holding path.
func Usage(ctx context.Context, path string) (*Stats, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("querying filesystem usage of %q: %w", path, err)
	}

	return &Stats{
		Path:        path,
		Fstype:      usage.Fstype,
		Total:       usage.Total,
		Used:        usage.Used,
		Free:        usage.Free,
		UsedPercent: usage.UsedPercent,
	}, nil
}

// Share returns size as a percentage of the used space, or 0 when unknown.
func (s *Stats) Share(size uint64) float64 {
	if s == nil || s.Used == 0 {
		return 0
	}

	return 100.0 * float64(size) / float64(s.Used)
}
