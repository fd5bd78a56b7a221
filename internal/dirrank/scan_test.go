package dirrank

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paths(folders []FolderSize) []string {
	out := make([]string, len(folders))
	for i, f := range folders {
		out[i] = filepath.Base(f.Path)
	}

	return out
}

func TestScan_RanksBySizeWithStableTies(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "X", "data"), 300)
	writeFile(t, filepath.Join(root, "Y", "data"), 100)
	writeFile(t, filepath.Join(root, "Z", "a"), 200)
	writeFile(t, filepath.Join(root, "Z", "nested", "b"), 100)

	res, err := Scan(context.Background(), Options{Root: root})
	require.NoError(t, err)

	assert.Equal(t, []string{"X", "Z", "Y"}, paths(res.Folders))
	assert.Equal(t, []uint64{300, 300, 100}, []uint64{res.Folders[0].Size, res.Folders[1].Size, res.Folders[2].Size})
	assert.Equal(t, uint64(700), res.TotalBytes)
	assert.Equal(t, int64(4), res.FileCount)
	assert.Equal(t, filepath.Join(root, "X"), res.Folders[0].Path)
}

func TestScan_EqualSizesKeepEnumerationOrder(t *testing.T) {
	root := t.TempDir()

	for _, name := range []string{"d", "b", "e", "a", "c"} {
		writeFile(t, filepath.Join(root, name, "f"), 10)
	}

	writeFile(t, filepath.Join(root, "big", "f"), 11)

	res, err := Scan(context.Background(), Options{Root: root})
	require.NoError(t, err)

	assert.Equal(t, []string{"big", "a", "b", "c", "d", "e"}, paths(res.Folders))
}

func TestScan_MissingRoot(t *testing.T) {
	res, err := Scan(context.Background(), Options{Root: filepath.Join(t.TempDir(), "missing")})

	require.ErrorIs(t, err, ErrRootNotFound)
	require.NotNil(t, res)
	assert.Empty(t, res.Folders)
}

func TestScan_RootIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	writeFile(t, file, 1)

	res, err := Scan(context.Background(), Options{Root: file})

	require.ErrorIs(t, err, ErrRootNotFound)
	assert.Empty(t, res.Folders)
}

func TestScan_EmptyRootSpecifier(t *testing.T) {
	_, err := Scan(context.Background(), Options{})

	require.ErrorIs(t, err, ErrEmptyRoot)
}

func TestScan_RootAccessDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks are bypassed for root")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "f"), 1)

	require.NoError(t, os.Chmod(root, 0o300))
	t.Cleanup(func() { _ = os.Chmod(root, 0o755) })

	res, err := Scan(context.Background(), Options{Root: root})

	require.ErrorIs(t, err, ErrRootAccessDenied)
	assert.Empty(t, res.Folders)
}

func TestScan_NoSubdirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "loose-file"), 50)

	res, err := Scan(context.Background(), Options{Root: root})
	require.NoError(t, err)

	assert.Empty(t, res.Folders)
	assert.Zero(t, res.TotalBytes)
}

func TestScan_ExcludesTopLevelSymlinks(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()

	writeFile(t, filepath.Join(root, "real", "f"), 5)
	writeFile(t, filepath.Join(outside, "f"), 500)
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "linked")))
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "self")))

	res, err := Scan(context.Background(), Options{Root: root})
	require.NoError(t, err)

	assert.Equal(t, []string{"real"}, paths(res.Folders))
}

func TestScan_RelativeRootBecomesAbsolute(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "f"), 1)

	chdir(t, root)

	res, err := Scan(context.Background(), Options{Root: "."})
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(res.Root))
	require.Len(t, res.Folders, 1)
	assert.True(t, filepath.IsAbs(res.Folders[0].Path))
}

func TestScan_IsDeterministic(t *testing.T) {
	root := t.TempDir()

	sizes := map[string]int{"p": 7, "q": 70, "r": 7, "s": 0, "t": 700, "u": 70}
	for name, size := range sizes {
		writeFile(t, filepath.Join(root, name, "f"), size)
	}

	first, err := Scan(context.Background(), Options{Root: root})
	require.NoError(t, err)

	second, err := Scan(context.Background(), Options{Root: root})
	require.NoError(t, err)

	assert.Equal(t, first.Folders, second.Folders)
	assert.Equal(t, []string{"t", "q", "u", "p", "r", "s"}, paths(first.Folders))
}

func TestScan_ParallelMatchesSequential(t *testing.T) {
	root := t.TempDir()

	for i, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		writeFile(t, filepath.Join(root, name, "x", "f"), (i%3)*100)
		writeFile(t, filepath.Join(root, name, "g"), 1)
	}

	sequential, err := Scan(context.Background(), Options{Root: root, Jobs: 1})
	require.NoError(t, err)

	parallel, err := Scan(context.Background(), Options{Root: root, Jobs: 4})
	require.NoError(t, err)

	assert.Equal(t, sequential.Folders, parallel.Folders)
	assert.Equal(t, sequential.TotalBytes, parallel.TotalBytes)
	assert.Equal(t, sequential.FileCount, parallel.FileCount)
}

func TestScan_ReportsEveryFolder(t *testing.T) {
	root := t.TempDir()

	for _, name := range []string{"a", "b", "c"} {
		writeFile(t, filepath.Join(root, name, "f"), 1)
	}

	for _, jobs := range []int{1, 3} {
		var (
			mu   sync.Mutex
			seen []Progress
		)

		_, err := Scan(context.Background(), Options{
			Root: root,
			Jobs: jobs,
			OnFolder: func(p Progress) {
				mu.Lock()
				defer mu.Unlock()

				seen = append(seen, p)
			},
		})
		require.NoError(t, err)

		require.Len(t, seen, 3)

		for i, p := range seen {
			assert.Equal(t, i+1, p.Index)
			assert.Equal(t, 3, p.Total)
		}

		if jobs == 1 {
			assert.Equal(t, filepath.Join(root, "a"), seen[0].Path)
			assert.Equal(t, filepath.Join(root, "c"), seen[2].Path)
		}
	}
}

func TestScan_TickerStopsAfterScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "f"), 1)

	var (
		mu    sync.Mutex
		ticks int
	)

	_, err := Scan(context.Background(), Options{
		Root:             root,
		ProgressInterval: time.Millisecond,
		OnTick: func(int64, uint64) {
			mu.Lock()
			defer mu.Unlock()

			ticks++
		},
	})
	require.NoError(t, err)

	mu.Lock()
	after := ticks
	mu.Unlock()

	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	assert.Equal(t, after, ticks)
}

func TestScan_CancelledContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "f"), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Scan(ctx, Options{Root: root})

	require.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, res.Folders)
}

func TestResult_Top(t *testing.T) {
	res := &Result{Folders: []FolderSize{{Path: "a", Size: 3}, {Path: "b", Size: 2}, {Path: "c", Size: 1}}}

	assert.Len(t, res.Top(2), 2)
	assert.Len(t, res.Top(10), 3)
	assert.Len(t, res.Top(0), 3)
}
