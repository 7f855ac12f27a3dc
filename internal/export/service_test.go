package export_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/turnoapp/turnos-importer/internal/entity"
	"github.com/turnoapp/turnos-importer/internal/export"
	"github.com/turnoapp/turnos-importer/internal/schedule"
)

type stubTurns struct {
	turns []*entity.Turn
	from  *time.Time
	to    *time.Time
}

func (s *stubTurns) UpsertTurns(_ context.Context, _, _ uuid.UUID, _ string, turns []schedule.Turn) (int, error) {
	return len(turns), nil
}

func (s *stubTurns) ListTurns(_ context.Context, _ uuid.UUID, from, to *time.Time) ([]*entity.Turn, error) {
	s.from = from
	s.to = to
	return s.turns, nil
}

func TestExportTurnsXLSX(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 4, 8, 12, 30, 0, 0, time.UTC)
	repo := &stubTurns{turns: []*entity.Turn{
		{Date: "2026-04-06", StartTime: "09:30", SourcePath: "/inbox/horario.jpg", CreatedAt: created},
		{Date: "2026-04-07", StartTime: "16:00", SourcePath: "/inbox/horario.jpg", CreatedAt: created},
	}}
	svc := export.NewService(repo, nil)

	data, err := svc.ExportTurnsXLSX(context.Background(), uuid.New(), nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Turns")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"Date", "Weekday", "Start Time", "Imported At", "Source"}, rows[0])
	require.Equal(t, "2026-04-06", rows[1][0])
	require.Equal(t, "Monday", rows[1][1])
	require.Equal(t, "09:30", rows[1][2])
	require.Equal(t, "2026-04-07", rows[2][0])
	require.Equal(t, "Tuesday", rows[2][1])
	require.Equal(t, "16:00", rows[2][2])
}

func TestExportTurnsXLSX_FromWithoutToDefaultsToToday(t *testing.T) {
	t.Parallel()

	repo := &stubTurns{}
	svc := export.NewService(repo, nil)

	from := time.Date(2026, 4, 1, 17, 45, 0, 0, time.UTC)
	_, err := svc.ExportTurnsXLSX(context.Background(), uuid.New(), &from, nil)
	require.NoError(t, err)

	require.NotNil(t, repo.from)
	require.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), *repo.from)
	require.NotNil(t, repo.to)
	require.Equal(t, 0, repo.to.Hour())
}
