package market

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// runPool drains ids with min(concurrency, len(ids)) workers sharing one
// queue. A failing item is logged and skipped; it never aborts siblings.
// runPool returns once every item has been taken and processed.
func runPool(ctx context.Context, logger *zap.Logger, ids []string, concurrency int, fn func(context.Context, string) error) {
	if len(ids) == 0 {
		return
	}

	if concurrency > len(ids) {
		concurrency = len(ids)
	}
	if concurrency < 1 {
		concurrency = 1
	}

	var mu sync.Mutex
	next := 0
	pop := func() (string, bool) {
		mu.Lock()
		defer mu.Unlock()
		if next >= len(ids) {
			return "", false
		}
		id := ids[next]
		next++
		return id, true
	}

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				id, ok := pop()
				if !ok {
					return
				}

				if err := fn(ctx, id); err != nil {
					logger.Debug("work item failed",
						zap.String("id", id),
						zap.Error(err),
					)
				}
			}
		}()
	}
	wg.Wait()
}
