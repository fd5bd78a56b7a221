package dirrank

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrRootNotFound is returned when the scan root does not exist or is not a directory.
	ErrRootNotFound = errors.New("root not found")
	// ErrRootAccessDenied is returned when the scan root cannot be listed.
	ErrRootAccessDenied = errors.New("root access denied")
	// ErrEmptyRoot is returned when no root specifier was given.
	ErrEmptyRoot = errors.New("empty root specifier")
)

// FolderSize represents a top-level folder and the size of everything below it.
type FolderSize struct {
	// Path is the absolute path of the folder.
	Path string `json:"path"`
	// Size is the sum of regular file sizes in bytes, symlinks excluded.
	Size uint64 `json:"size_bytes"`
}

// Result holds the ranked folders of a single scan.
type Result struct {
	// Root is the absolute root directory that was scanned.
	Root string `json:"root"`
	// Folders is sorted by Size descending, ties in enumeration order.
	Folders []FolderSize `json:"folders"`
	// TotalBytes is the sum of all folder sizes.
	TotalBytes uint64 `json:"total_bytes"`
	// FileCount is the number of regular files counted.
	FileCount int64 `json:"file_count"`
	// ErrorCount is the number of entries skipped because of errors.
	ErrorCount int64 `json:"error_count"`
	// Elapsed is the total time taken by the scan.
	Elapsed time.Duration `json:"elapsed"`
}

// Top returns at most n of the largest folders.
func (r *Result) Top(n int) []FolderSize {
	if n <= 0 || n >= len(r.Folders) {
		return r.Folders
	}

	return r.Folders[:n]
}

// Progress describes the folder about to be measured.
type Progress struct {
	// Index is the 1-based position of the folder among the started ones.
	Index int
	// Total is the number of folders to measure.
	Total int
	// Path is the folder being measured.
	Path string
}

// Options configures a scan.
type Options struct {
	// Root is the resolved root directory.
	Root string
	// Jobs is the number of folders measured concurrently (<=1 = sequential).
	Jobs int
	// OnFolder is called once per folder before it is measured.
	OnFolder func(Progress)
	// OnTick receives running file and byte counts every ProgressInterval.
	OnTick func(files int64, bytes uint64)
	// ProgressInterval controls OnTick cadence.
	ProgressInterval time.Duration
	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
}
