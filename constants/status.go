package constants

// JobStatus is the canonical status for rows in import_jobs.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusQueued  JobStatus = "QUEUED"   // waiting for a worker
	JobStatusRunning JobStatus = "RUNNING"  // in progress
	JobStatusOCROK   JobStatus = "OCR_OK"   // stage 1 completed (text + words extracted)
	JobStatusParseOK JobStatus = "PARSE_OK" // stage 2 completed (turns recovered)
	JobStatusFailed  JobStatus = "FAILED"   // terminal failure
)
