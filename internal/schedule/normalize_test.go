package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/turnoapp/turnos-importer/internal/schedule"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "lowercase", input: "lunes", expected: "LUNES"},
		{name: "diacritics stripped", input: "miércoles", expected: "MIERCOLES"},
		{name: "enye stripped", input: "mañana", expected: "MANANA"},
		{name: "surrounding space trimmed", input: "  Sábado ", expected: "SABADO"},
		{name: "punctuation kept", input: "09:00", expected: "09:00"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.expected, schedule.Normalize(tc.input))
		})
	}
}

func TestCleanToken(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "plain name", input: "Miguel", expected: "MIGUEL"},
		{name: "punctuation removed", input: "Miguel-L.", expected: "MIGUELL"},
		{name: "time digits survive", input: "09:00", expected: "0900"},
		{name: "diacritics and case", input: "José", expected: "JOSE"},
		{name: "only punctuation", input: "—*!", expected: ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.expected, schedule.CleanToken(tc.input))
		})
	}
}
