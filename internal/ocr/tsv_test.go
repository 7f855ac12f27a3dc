package ocr_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/turnoapp/turnos-importer/internal/ocr"
	"github.com/turnoapp/turnos-importer/internal/schedule"
)

const sampleTSV = "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n" +
	"1\t1\t0\t0\t0\t0\t0\t0\t600\t400\t-1\t\n" +
	"5\t1\t1\t1\t1\t1\t70\t0\t60\t20\t91\tLUNES\n" +
	"5\t1\t1\t1\t1\t2\t130\t0\t60\t20\t88\t6\n" +
	"5\t1\t1\t1\t2\t1\t90\t90\t60\t20\t73\tMIGUEL\n"

func TestParseTSVWords(t *testing.T) {
	t.Parallel()

	words := ocr.ParseTSVWords(sampleTSV)
	require.Equal(t, []schedule.Word{
		{Text: "LUNES", BBox: schedule.BBox{X0: 70, Y0: 0, X1: 130, Y1: 20}},
		{Text: "6", BBox: schedule.BBox{X0: 130, Y0: 0, X1: 190, Y1: 20}},
		{Text: "MIGUEL", BBox: schedule.BBox{X0: 90, Y0: 90, X1: 150, Y1: 110}},
	}, words)
}

func TestParseTSVWords_Degenerate(t *testing.T) {
	t.Parallel()

	require.Empty(t, ocr.ParseTSVWords(""))
	require.Empty(t, ocr.ParseTSVWords("level\tpage_num\n"))
	// short rows and blank text are skipped
	require.Empty(t, ocr.ParseTSVWords("level\ta\tb\n5\t1\t1\n"))
}

func TestParseTSVWords_CRLF(t *testing.T) {
	t.Parallel()

	words := ocr.ParseTSVWords(strings.ReplaceAll(sampleTSV, "\n", "\r\n"))
	require.Len(t, words, 3)
	require.Equal(t, "MIGUEL", words[2].Text)
}
