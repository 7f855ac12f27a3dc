package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/turnoapp/turnos-importer/internal/schedule"
)

func TestExtractDayAnchors_HeaderBandOnly(t *testing.T) {
	t.Parallel()

	words := []schedule.Word{
		word("LUNES", 70, 0),
		word("6", 130, 0),
		word("MARTES", 470, 0),
		word("7", 530, 0),
		// a weekday/number pair deep in the schedule body is not a header
		word("JUEVES", 70, 300),
		word("12", 130, 300),
	}

	lines, tolerance := schedule.GroupWords(words)
	anchors := schedule.ExtractDayAnchors(lines, tolerance)

	require.Len(t, anchors, 2)
	require.Equal(t, 6, anchors[0].DayNum)
	require.Equal(t, "LUNES", anchors[0].Weekday)
	require.Equal(t, 7, anchors[1].DayNum)
	require.Equal(t, "MARTES", anchors[1].Weekday)
	require.Less(t, anchors[0].X, anchors[1].X)
}

func TestExtractDayAnchors_NumberTooFarRight(t *testing.T) {
	t.Parallel()

	// day number sits 220px right of the weekday, outside [-5, 200]
	words := []schedule.Word{
		word("LUNES", 70, 0),
		word("6", 290, 0),
	}

	lines, tolerance := schedule.GroupWords(words)
	require.Empty(t, schedule.ExtractDayAnchors(lines, tolerance))
}

func TestExtractDayAnchors_ImplausibleDayNumber(t *testing.T) {
	t.Parallel()

	words := []schedule.Word{
		word("LUNES", 70, 0),
		word("45", 130, 0),
	}

	lines, tolerance := schedule.GroupWords(words)
	require.Empty(t, schedule.ExtractDayAnchors(lines, tolerance))
}
