package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/turnoapp/turnos-importer/internal/schedule"
)

func TestParseText_HeadersAndAliasLines(t *testing.T) {
	t.Parallel()

	text := "LUNES 6\n" +
		"MIGUEL 09:00\n" +
		"OTRO 10:00\n" +
		"MIÉRCOLES 8\n" +
		"miguel 12:00\n" +
		"MIGUEL 12:00\n"

	days := schedule.ParseText(text, []string{"Miguel"})
	require.Equal(t, []schedule.ParsedDay{
		{Weekday: "LUNES", DayOfMonth: 6, Times: []string{"09:00"}},
		{Weekday: "MIERCOLES", DayOfMonth: 8, Times: []string{"12:00"}},
	}, days)
}

func TestParseText_EmptyInputs(t *testing.T) {
	t.Parallel()

	require.Empty(t, schedule.ParseText("", []string{"Miguel"}))
	require.Empty(t, schedule.ParseText("LUNES 6\nMIGUEL 09:00\n", nil))
	require.Empty(t, schedule.ParseText("LUNES 6\nMIGUEL 09:00\n", []string{" ", "!!"}))
}

func TestParseText_TimesBeforeFirstHeaderIgnored(t *testing.T) {
	t.Parallel()

	text := "MIGUEL 08:00\nLUNES 6\nMIGUEL 09:00\n"
	days := schedule.ParseText(text, []string{"Miguel"})
	require.Equal(t, []schedule.ParsedDay{
		{Weekday: "LUNES", DayOfMonth: 6, Times: []string{"09:00"}},
	}, days)
}

func TestParseText_RepeatedHeaderMerges(t *testing.T) {
	t.Parallel()

	text := "LUNES 6\nMIGUEL 09:00\nLUNES 6\nMIGUEL 14:00\n"
	days := schedule.ParseText(text, []string{"Miguel"})
	require.Equal(t, []schedule.ParsedDay{
		{Weekday: "LUNES", DayOfMonth: 6, Times: []string{"09:00", "14:00"}},
	}, days)
}

func TestBuildTurns_VerifiedResolution(t *testing.T) {
	t.Parallel()

	ref := time.Date(2026, time.April, 8, 0, 0, 0, 0, time.UTC)

	days := []schedule.ParsedDay{
		{Weekday: "MIERCOLES", DayOfMonth: 8, Times: []string{"12:00"}},
		{Weekday: "LUNES", DayOfMonth: 6, Times: []string{"9:00", "09:00", "bogus"}},
	}

	turns := schedule.BuildTurns(days, ref)
	require.Equal(t, []schedule.Turn{
		{Date: "2026-04-06", StartTime: "09:00"}, // zero-padded, deduplicated
		{Date: "2026-04-08", StartTime: "12:00"},
	}, turns)
}

func TestBuildTurns_UnresolvableDayDropped(t *testing.T) {
	t.Parallel()

	ref := time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)

	// No Monday the 31st exists in the three candidate months around April
	// 2026, and April 31 is not a date at all: drop, never clamp.
	days := []schedule.ParsedDay{
		{Weekday: "LUNES", DayOfMonth: 31, Times: []string{"09:00"}},
	}
	require.Empty(t, schedule.BuildTurns(days, ref))
}
