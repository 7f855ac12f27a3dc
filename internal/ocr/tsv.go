package ocr

import (
	"strconv"
	"strings"

	"github.com/turnoapp/turnos-importer/internal/schedule"
)

// Tesseract TSV columns:
// level page_num block_num par_num line_num word_num left top width height conf text
const (
	tsvColWordNum = 5
	tsvColLeft    = 6
	tsvColTop     = 7
	tsvColWidth   = 8
	tsvColHeight  = 9
	tsvColConf    = 10
	tsvColText    = 11
)

// ParseTSVWords converts tesseract TSV output into positioned words. Header,
// short and structural (word_num 0) rows are skipped; rows with unparsable
// geometry or empty text are dropped rather than guessed at.
func ParseTSVWords(tsv string) []schedule.Word {
	if tsv == "" {
		return nil
	}
	var words []schedule.Word
	for i, line := range strings.Split(tsv, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if i == 0 && strings.HasPrefix(line, "level") {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 12 {
			continue
		}
		if n, err := strconv.Atoi(cols[tsvColWordNum]); err == nil && n == 0 {
			continue
		}

		left, err1 := strconv.Atoi(cols[tsvColLeft])
		top, err2 := strconv.Atoi(cols[tsvColTop])
		width, err3 := strconv.Atoi(cols[tsvColWidth])
		height, err4 := strconv.Atoi(cols[tsvColHeight])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}

		text := strings.TrimSpace(strings.Join(cols[tsvColText:], "\t"))
		if text == "" {
			continue
		}

		words = append(words, schedule.Word{
			Text: text,
			BBox: schedule.BBox{
				X0: float64(left),
				Y0: float64(top),
				X1: float64(left + width),
				Y1: float64(top + height),
			},
		})
	}
	return words
}

// meanTSVConfidence averages the conf column (0..100, -1 for structural rows)
// into 0..1. Returns 0 when no word rows carry a confidence.
func meanTSVConfidence(tsv string) float32 {
	var sum, n float64
	for i, line := range strings.Split(tsv, "\n") {
		if i == 0 || line == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 12 {
			continue
		}
		conf := cols[tsvColConf]
		if conf == "" || conf == "-1" {
			continue
		}
		if v, err := strconv.ParseFloat(conf, 64); err == nil {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float32(sum / n / 100.0)
}
