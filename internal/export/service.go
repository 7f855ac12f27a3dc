// Package export produces XLSX workbooks from stored turns.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/turnoapp/turnos-importer/internal/repository"
)

// Service is a tiny façade over the turn repository that produces XLSX bytes.
type Service struct {
	turnsRepo repository.TurnRepository
	logger    *slog.Logger
}

func NewService(turnsRepo repository.TurnRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{turnsRepo: turnsRepo, logger: logger}
}

// ExportTurnsXLSX returns an XLSX workbook (as bytes) for the worker and date
// window. If only from is provided -> from..today (inclusive). If only to is
// provided -> beginning..to (inclusive). If neither, all turns.
func (s *Service) ExportTurnsXLSX(ctx context.Context, workerID uuid.UUID, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	var fromDate, toDate *time.Time
	if from != nil {
		f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		fromDate = &f
	}
	if to != nil {
		t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		today := time.Now().UTC()
		t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}

	turns, err := s.turnsRepo.ListTurns(ctx, workerID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Turns"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Date",
		"Weekday",
		"Start Time",
		"Imported At",
		"Source",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, t := range turns {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, t.Date)

		weekday := ""
		if d, err := time.Parse("2006-01-02", t.Date); err == nil {
			weekday = d.Weekday().String()
		}
		write(2, weekday)

		write(3, t.StartTime)

		if !t.CreatedAt.IsZero() {
			write(4, t.CreatedAt.UTC().Format("2006-01-02 15:04"))
		} else {
			write(4, "")
		}

		write(5, t.SourcePath)

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 12) // date
	_ = f.SetColWidth(sheet, "B", "B", 12) // weekday
	_ = f.SetColWidth(sheet, "C", "C", 10) // start time
	_ = f.SetColWidth(sheet, "D", "D", 18) // imported at
	_ = f.SetColWidth(sheet, "E", "E", 60) // source path

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"worker_id", workerID.String(),
		"rows", len(turns),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
