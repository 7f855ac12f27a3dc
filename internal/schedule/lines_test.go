package schedule_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/turnoapp/turnos-importer/internal/schedule"
)

// word builds a 60x20 box whose top-left corner is at (x, y); the center is
// therefore (x+30, y+10).
func word(text string, x, y float64) schedule.Word {
	return schedule.Word{
		Text: text,
		BBox: schedule.BBox{X0: x, Y0: y, X1: x + 60, Y1: y + 20},
	}
}

func TestGroupWords_Empty(t *testing.T) {
	t.Parallel()

	lines, tolerance := schedule.GroupWords(nil)
	require.Empty(t, lines)
	require.Equal(t, float64(20), tolerance)
}

func TestGroupWords_TwoRowsLeftToRight(t *testing.T) {
	t.Parallel()

	words := []schedule.Word{
		word("B", 200, 0),
		word("A", 100, 2),
		word("C", 100, 100),
	}

	lines, tolerance := schedule.GroupWords(words)
	// all heights are 20 -> tolerance = max(10, round(0.6*20)) = 12
	require.Equal(t, float64(12), tolerance)
	require.Len(t, lines, 2)

	require.Len(t, lines[0].Words, 2)
	require.Equal(t, "A", lines[0].Words[0].Text)
	require.Equal(t, "B", lines[0].Words[1].Text)

	require.Len(t, lines[1].Words, 1)
	require.Equal(t, "C", lines[1].Words[0].Text)
}

func TestGroupWords_PermutationInvariant(t *testing.T) {
	t.Parallel()

	words := []schedule.Word{
		word("LUNES", 70, 0),
		word("6", 130, 0),
		word("MIGUEL", 90, 90),
		word("09:00", 170, 90),
		word("ANA", 90, 180),
	}

	want, wantTol := schedule.GroupWords(words)

	shuffled := make([]schedule.Word, len(words))
	copy(shuffled, words)
	rand.New(rand.NewSource(7)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	got, gotTol := schedule.GroupWords(shuffled)
	require.Equal(t, wantTol, gotTol)
	require.Equal(t, want, got)
}
