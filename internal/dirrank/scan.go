package dirrank

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"
)

// Scan measures every immediate subdirectory of opt.Root and returns them
// ranked by size, largest first. Folders of equal size keep the order in
// which they were listed.
//
// Scan fails with ErrRootNotFound if the root is missing or not a directory,
// and with ErrRootAccessDenied if it cannot be listed. In both cases the
// returned Result is empty. Errors below the root never fail the scan; they
// are counted in Result.ErrorCount.
//
// Up to opt.Jobs folders are measured concurrently. Cancelling ctx aborts the
// scan with ctx.Err().
func Scan(ctx context.Context, opt Options) (*Result, error) {
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}

	log = log.With(zap.String("component", "dirrank.scan"))

	root, err := resolve(opt.Root)
	if err != nil {
		log.Debug("resolving root failed", zap.String("root", opt.Root), zap.Error(err))

		return &Result{Root: root, Folders: []FolderSize{}}, err
	}

	candidates, err := enumerate(root)
	if err != nil {
		log.Debug("listing root failed", zap.String("root", root), zap.Error(err))

		return &Result{Root: root, Folders: []FolderSize{}}, err
	}

	log.Debug("root enumerated", zap.String("root", root), zap.Int("folders", len(candidates)))

	start := time.Now()
	acc := NewAccumulator(opt.Logger)

	// Create child context to ensure progress reporter cleanup
	tickCtx, cancel := context.WithCancel(ctx)
	wait := startProgressReporter(tickCtx, acc, opt.OnTick, opt.ProgressInterval)

	sizes, err := aggregate(ctx, acc, candidates, opt)

	cancel()
	wait()

	if err != nil {
		return &Result{Root: root, Folders: []FolderSize{}}, err
	}

	folders := make([]FolderSize, len(candidates))

	var total uint64

	for i, path := range candidates {
		folders[i] = FolderSize{Path: path, Size: sizes[i]}
		total += sizes[i]
	}

	slices.SortStableFunc(folders, func(a, b FolderSize) int {
		return cmp.Compare(b.Size, a.Size)
	})

	res := &Result{
		Root:       root,
		Folders:    folders,
		TotalBytes: total,
		FileCount:  acc.Files(),
		ErrorCount: acc.Errors(),
		Elapsed:    time.Since(start),
	}

	log.Debug("scan complete",
		zap.Int("folders", len(folders)),
		zap.Uint64("total_bytes", total),
		zap.Int64("errors", res.ErrorCount),
		zap.Duration("elapsed", res.Elapsed),
	)

	return res, nil
}

// resolve normalizes root to an absolute directory path.
func resolve(root string) (string, error) {
	if root == "" {
		return "", ErrEmptyRoot
	}

	// Normalize to native format to handle both C:/Path and C:\Path inputs
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return root, fmt.Errorf("resolving absolute path %q: %w: %w", root, ErrRootNotFound, err)
	}

	info, err := os.Stat(abs)

	switch {
	case errors.Is(err, fs.ErrPermission):
		return abs, fmt.Errorf("accessing root %q: %w: %w", abs, ErrRootAccessDenied, err)
	case err != nil:
		return abs, fmt.Errorf("accessing root %q: %w: %w", abs, ErrRootNotFound, err)
	case !info.IsDir():
		return abs, fmt.Errorf("root %q is not a directory: %w", abs, ErrRootNotFound)
	}

	return abs, nil
}

// enumerate lists the directories directly below root in lexical order.
// Symbolic links are excluded, including links to directories.
func enumerate(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("listing root %q: %w: %w", root, ErrRootNotFound, err)
		}

		return nil, fmt.Errorf("listing root %q: %w: %w", root, ErrRootAccessDenied, err)
	}

	dirs := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.Type()&fs.ModeSymlink != 0 || !entry.IsDir() {
			continue
		}

		dirs = append(dirs, filepath.Join(root, entry.Name()))
	}

	return dirs, nil
}

// aggregate measures each folder on a pool of opt.Jobs workers.
// Sizes are returned in the order of folders regardless of completion order.
func aggregate(ctx context.Context, acc *Accumulator, folders []string, opt Options) ([]uint64, error) {
	if len(folders) == 0 {
		return []uint64{}, ctx.Err()
	}

	jobs := max(opt.Jobs, 1)

	pool := pond.NewResultPool[uint64](jobs, pond.WithContext(ctx))
	defer pool.StopAndWait()

	reporter := &folderReporter{hook: opt.OnFolder, total: len(folders)}
	group := pool.NewGroup()

	for _, path := range folders {
		path := path // per-iteration copy; go directive predates Go 1.22 loopvar semantics

		group.Submit(func() uint64 {
			reporter.report(path)

			return acc.Size(ctx, path)
		})
	}

	sizes, err := group.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	if err != nil {
		return nil, fmt.Errorf("measuring folders: %w", err)
	}

	return sizes, nil
}
