package market

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRunPoolProcessesEveryItemExactlyOnce(t *testing.T) {
	ids := make([]string, 50)
	for i := range ids {
		ids[i] = fmt.Sprintf("id-%d", i)
	}

	var mu sync.Mutex
	seen := make(map[string]int)

	runPool(context.Background(), zap.NewNop(), ids, 4, func(_ context.Context, id string) error {
		mu.Lock()
		seen[id]++
		mu.Unlock()
		return nil
	})

	assert.Len(t, seen, len(ids))
	for id, count := range seen {
		assert.Equal(t, 1, count, "item %s", id)
	}
}

func TestRunPoolIsolatesFailures(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}

	var mu sync.Mutex
	var done []string

	runPool(context.Background(), zap.NewNop(), ids, 2, func(_ context.Context, id string) error {
		if id == "c" {
			return fmt.Errorf("boom")
		}
		mu.Lock()
		done = append(done, id)
		mu.Unlock()
		return nil
	})

	assert.Len(t, done, len(ids)-1)
	assert.NotContains(t, done, "c")
}

func TestRunPoolBoundsConcurrency(t *testing.T) {
	const workers = 3

	ids := make([]string, 30)
	for i := range ids {
		ids[i] = fmt.Sprintf("%d", i)
	}

	var mu sync.Mutex
	active, peak := 0, 0

	// Hold the first wave of items in flight until `workers` callbacks run
	// simultaneously, so the observed peak is meaningful.
	started := make(chan struct{}, len(ids))
	release := make(chan struct{})
	go func() {
		for i := 0; i < workers; i++ {
			<-started
		}
		close(release)
	}()

	runPool(context.Background(), zap.NewNop(), ids, workers, func(_ context.Context, _ string) error {
		mu.Lock()
		active++
		if active > peak {
			peak = active
		}
		mu.Unlock()

		started <- struct{}{}
		<-release

		mu.Lock()
		active--
		mu.Unlock()
		return nil
	})

	assert.Equal(t, workers, peak)
}

func TestRunPoolStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processed := 0
	runPool(ctx, zap.NewNop(), []string{"a", "b"}, 2, func(_ context.Context, _ string) error {
		processed++
		return nil
	})

	assert.Zero(t, processed)
}

func TestRunPoolEmptyQueue(t *testing.T) {
	runPool(context.Background(), zap.NewNop(), nil, 4, func(_ context.Context, _ string) error {
		t.Fatalf("should not be called")
		return nil
	})
}
