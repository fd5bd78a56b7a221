package dirrank

import (
	"context"
	"sync"
	"time"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
// The returned function blocks until the reporter goroutine has exited.
func startProgressReporter(
	ctx context.Context,
	acc *Accumulator,
	hook func(int64, uint64),
	interval time.Duration,
) func() {
	if hook == nil {
		return func() {}
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(acc.Files(), acc.Bytes())
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() { <-done }
}

// folderReporter serializes OnFolder calls so hooks never run concurrently
// and observe strictly increasing indices.
type folderReporter struct {
	mu    sync.Mutex
	hook  func(Progress)
	next  int
	total int
}

func (r *folderReporter) report(path string) {
	if r.hook == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	r.hook(Progress{Index: r.next, Total: r.total, Path: path})
}
