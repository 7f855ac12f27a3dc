// Package async runs schedule imports on a bounded in-process worker pool.
package async

import (
	"context"
	"time"
)

// Job is one schedule photo waiting to be imported.
type Job struct {
	Path        string
	SubmittedAt time.Time
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
