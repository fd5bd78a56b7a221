package dirrank

import (
	"context"
	"io/fs"
	"os"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"
)

// Accumulator sums regular file sizes below a directory.
// It is safe for concurrent use and keeps running totals across calls.
type Accumulator struct {
	log    *zap.Logger
	files  atomic.Int64
	bytes  atomic.Uint64
	errors atomic.Int64
}

// NewAccumulator creates an Accumulator logging skipped entries to log.
func NewAccumulator(log *zap.Logger) *Accumulator {
	if log == nil {
		log = zap.NewNop()
	}

	return &Accumulator{log: log.With(zap.String("component", "dirrank.accumulator"))}
}

// ComputeSize returns the total size of the regular files below path.
func ComputeSize(path string) uint64 {
	return NewAccumulator(nil).Size(context.Background(), path)
}

// Files returns the number of regular files counted so far.
func (a *Accumulator) Files() int64 { return a.files.Load() }

// Bytes returns the number of bytes counted so far.
func (a *Accumulator) Bytes() uint64 { return a.bytes.Load() }

// Errors returns the number of entries skipped so far.
func (a *Accumulator) Errors() int64 { return a.errors.Load() }

// Size walks the tree rooted at path and returns the sum of the sizes of all
// regular files in it. Symbolic links are neither counted nor followed.
// Entries that cannot be read are skipped; if path itself cannot be read the
// result is 0. Size never fails: a cancelled ctx stops the walk early and the
// partial sum is returned.
func (a *Accumulator) Size(ctx context.Context, path string) uint64 {
	info, err := os.Lstat(path)
	if err != nil {
		a.skip(path, err)

		return 0
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		return 0
	case info.Mode().IsRegular():
		a.add(info.Size())

		return uint64(info.Size()) //nolint:gosec // Regular file sizes are never negative
	case !info.IsDir():
		return 0
	}

	var total atomic.Uint64

	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			a.skip(p, err)

			return nil // Silently skip errors
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if d.Type()&fs.ModeSymlink != 0 || !d.Type().IsRegular() {
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			a.skip(p, err)

			return nil //nolint:nilerr // Intentionally skip errors during walk
		}

		total.Add(uint64(fileInfo.Size())) //nolint:gosec // Regular file sizes are never negative
		a.add(fileInfo.Size())

		return nil
	})
	if walkErr != nil && ctx.Err() == nil {
		a.skip(path, walkErr)
	}

	return total.Load()
}

func (a *Accumulator) add(size int64) {
	a.files.Add(1)
	a.bytes.Add(uint64(size)) //nolint:gosec // Regular file sizes are never negative
}

func (a *Accumulator) skip(path string, err error) {
	a.errors.Add(1)
	a.log.Debug("skipping entry", zap.String("path", path), zap.Error(err))
}
