// Package entity holds the transfer structs passed between layers.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Worker is the person whose shifts are being imported.
type Worker struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Aliases   []string  `json:"aliases"`
	CreatedAt time.Time `json:"created_at"`
}

// Turn is one stored shift entry. (WorkerID, Date, StartTime) is unique.
type Turn struct {
	ID         uuid.UUID `json:"id"`
	WorkerID   uuid.UUID `json:"worker_id"`
	JobID      uuid.UUID `json:"job_id"`
	Date       string    `json:"date"`       // YYYY-MM-DD
	StartTime  string    `json:"start_time"` // HH:MM
	SourcePath string    `json:"source_path,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ImportJob tracks one schedule import from arrival to turns.
type ImportJob struct {
	ID           uuid.UUID  `json:"id"`
	WorkerID     uuid.UUID  `json:"worker_id"`
	SourcePath   string     `json:"source_path"`
	ContentHash  string     `json:"content_hash"`
	Format       string     `json:"format"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	OCRText      string     `json:"ocr_text,omitempty"`
	Confidence   float32    `json:"confidence,omitempty"`
	Method       string     `json:"method,omitempty"`
	TurnsFound   int        `json:"turns_found"`
}
