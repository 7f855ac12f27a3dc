package async_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/turnoapp/turnos-importer/internal/async"
)

func TestImportQueue_ProcessesAllJobs(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	seen := map[string]int{}
	q := async.NewImportQueue(func(_ context.Context, path string) error {
		mu.Lock()
		seen[path]++
		mu.Unlock()
		return nil
	}, nil, async.WithWorkers(3), async.WithQueueSize(16))

	paths := []string{"/inbox/a.jpg", "/inbox/b.jpg", "/inbox/c.jpg", "/inbox/a.jpg"}
	for _, p := range paths {
		require.NoError(t, q.Enqueue(context.Background(), async.Job{Path: p, SubmittedAt: time.Now()}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 2, seen["/inbox/a.jpg"])
	require.Equal(t, 1, seen["/inbox/b.jpg"])
	require.Equal(t, 1, seen["/inbox/c.jpg"])
}

func TestImportQueue_EnqueueAfterShutdownIsNoop(t *testing.T) {
	t.Parallel()

	q := async.NewImportQueue(func(_ context.Context, _ string) error { return nil }, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	require.NoError(t, q.Enqueue(context.Background(), async.Job{Path: "/inbox/late.jpg"}))
	q.Shutdown(ctx) // second shutdown is safe
}
