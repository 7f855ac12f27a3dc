package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/turnoapp/turnos-importer/constants"
	"github.com/turnoapp/turnos-importer/internal/entity"
	"github.com/turnoapp/turnos-importer/internal/ocr"
	"github.com/turnoapp/turnos-importer/internal/pipeline"
	"github.com/turnoapp/turnos-importer/internal/schedule"
)

type stubExtractor struct {
	res ocr.Result
	err error
}

func (s *stubExtractor) Extract(_ context.Context, _ string) (ocr.Result, error) {
	return s.res, s.err
}

type jobRecorder struct {
	started    int
	format     string
	ocrText    string
	method     string
	confidence float32
	status     constants.JobStatus
	statusLog  []constants.JobStatus
	turnsFound int
	failureMsg string
}

func (r *jobRecorder) setStatus(s constants.JobStatus) {
	r.status = s
	r.statusLog = append(r.statusLog, s)
}

func (r *jobRecorder) Start(_ context.Context, workerID uuid.UUID, sourcePath, contentHash, format string) (*entity.ImportJob, error) {
	r.started++
	r.format = format
	r.setStatus(constants.JobStatusQueued)
	return &entity.ImportJob{
		ID: uuid.New(), WorkerID: workerID,
		SourcePath: sourcePath, ContentHash: contentHash,
		Format: format, Status: string(constants.JobStatusQueued),
		StartedAt: time.Now().UTC(),
	}, nil
}

func (r *jobRecorder) MarkRunning(_ context.Context, _ uuid.UUID) error {
	r.setStatus(constants.JobStatusRunning)
	return nil
}

func (r *jobRecorder) FinishOCR(_ context.Context, _ uuid.UUID, ocrText string, confidence float32, method string) error {
	r.setStatus(constants.JobStatusOCROK)
	r.ocrText = ocrText
	r.method = method
	r.confidence = confidence
	return nil
}

func (r *jobRecorder) FinishSuccess(_ context.Context, _ uuid.UUID, turnsFound int) error {
	r.setStatus(constants.JobStatusParseOK)
	r.turnsFound = turnsFound
	return nil
}

func (r *jobRecorder) FinishFailure(_ context.Context, _ uuid.UUID, message string) error {
	r.setStatus(constants.JobStatusFailed)
	r.failureMsg = message
	return nil
}

type turnRecorder struct {
	stored []schedule.Turn
}

func (r *turnRecorder) UpsertTurns(_ context.Context, _, _ uuid.UUID, _ string, turns []schedule.Turn) (int, error) {
	r.stored = append(r.stored, turns...)
	return len(turns), nil
}

func (r *turnRecorder) ListTurns(_ context.Context, _ uuid.UUID, _, _ *time.Time) ([]*entity.Turn, error) {
	return nil, nil
}

func writePhoto(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "horario.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not really a jpeg"), 0o600))
	return path
}

func word(text string, x, y float64) schedule.Word {
	return schedule.Word{Text: text, BBox: schedule.BBox{X0: x, Y0: y, X1: x + 60, Y1: y + 20}}
}

func testWorker() *entity.Worker {
	return &entity.Worker{ID: uuid.New(), Name: "miguel", Aliases: []string{"MIGUEL"}}
}

func TestRun_WordGeometryPath(t *testing.T) {
	t.Parallel()

	ext := &stubExtractor{res: ocr.Result{
		Text:   "LUNES 6\nMIGUEL 09:30",
		Method: "image-ocr",
		Words: []schedule.Word{
			word("LUNES", 200, 40),
			word("6", 260, 40),
			word("MIGUEL", 200, 90),
			word("09:30", 280, 90),
		},
		Confidence: 0.9,
	}}
	jobs := &jobRecorder{}
	turns := &turnRecorder{}
	p := pipeline.New(testWorker(), ext, jobs, turns, nil).
		WithReferenceDate(time.Date(2026, 4, 8, 0, 0, 0, 0, time.UTC))

	jobID, got, err := p.Run(context.Background(), writePhoto(t))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, jobID)
	require.Equal(t, []schedule.Turn{{Date: "2026-04-06", StartTime: "09:30"}}, got)
	require.Equal(t, got, turns.stored)
	require.Equal(t, []constants.JobStatus{
		constants.JobStatusQueued,
		constants.JobStatusRunning,
		constants.JobStatusOCROK,
		constants.JobStatusParseOK,
	}, jobs.statusLog)
	require.Equal(t, 1, jobs.turnsFound)
	require.Equal(t, float32(0.9), jobs.confidence)
}

func TestRun_TextFileSkipsOCR(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "horario.txt")
	require.NoError(t, os.WriteFile(path, []byte("LUNES 6\nMIGUEL 09:30\n"), 0o600))

	ext := &stubExtractor{err: errors.New("tesseract must not run for text files")}
	jobs := &jobRecorder{}
	turns := &turnRecorder{}
	p := pipeline.New(testWorker(), ext, jobs, turns, nil).
		WithReferenceDate(time.Date(2026, 4, 8, 0, 0, 0, 0, time.UTC))

	_, got, err := p.Run(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, []schedule.Turn{{Date: "2026-04-06", StartTime: "09:30"}}, got)
	require.Equal(t, constants.FormatText, jobs.format)
	require.Equal(t, "text-file", jobs.method)
	require.Equal(t, constants.JobStatusParseOK, jobs.status)
}

func TestRun_TextFallbackWhenNoWords(t *testing.T) {
	t.Parallel()

	ext := &stubExtractor{res: ocr.Result{
		Text:   "LUNES 6\nMIGUEL 09:30\nMARTES 7\nMIGUEL 16:00",
		Method: "image-ocr",
	}}
	jobs := &jobRecorder{}
	turns := &turnRecorder{}
	p := pipeline.New(testWorker(), ext, jobs, turns, nil).
		WithReferenceDate(time.Date(2026, 4, 8, 0, 0, 0, 0, time.UTC))

	_, got, err := p.Run(context.Background(), writePhoto(t))
	require.NoError(t, err)
	require.Equal(t, []schedule.Turn{
		{Date: "2026-04-06", StartTime: "09:30"},
		{Date: "2026-04-07", StartTime: "16:00"},
	}, got)
	require.Equal(t, constants.JobStatusParseOK, jobs.status)
}

func TestRun_OCRFailureMarksJobFailed(t *testing.T) {
	t.Parallel()

	ext := &stubExtractor{err: errors.New("tesseract: exit status 1")}
	jobs := &jobRecorder{}
	turns := &turnRecorder{}
	p := pipeline.New(testWorker(), ext, jobs, turns, nil)

	_, _, err := p.Run(context.Background(), writePhoto(t))
	require.Error(t, err)
	require.Equal(t, constants.JobStatusFailed, jobs.status)
	require.Contains(t, jobs.failureMsg, "tesseract")
	require.Empty(t, turns.stored)
}

func TestRun_MissingFileFailsBeforeJobStart(t *testing.T) {
	t.Parallel()

	jobs := &jobRecorder{}
	p := pipeline.New(testWorker(), &stubExtractor{}, jobs, &turnRecorder{}, nil)

	_, _, err := p.Run(context.Background(), "/does/not/exist.jpg")
	require.Error(t, err)
	require.Zero(t, jobs.started)
}
