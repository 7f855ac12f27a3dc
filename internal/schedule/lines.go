package schedule

import (
	"math"
	"sort"
)

// LineGroup is an ordered run of words believed to share one visual row.
// Y is the running mean of the members' vertical centers.
type LineGroup struct {
	Y     float64
	Words []Word
}

// defaultTolerance is used when there are no words to derive one from.
const defaultTolerance = 20

// GroupWords clusters words into visual rows. Words are sorted by vertical
// center and joined to the previous row while within tolerance of its running
// mean; the tolerance adapts to the median word height so dense handwriting
// and sparse print both cluster sensibly. Rows come out ordered top-to-bottom
// with members ordered left-to-right. The tolerance is returned because the
// header-band height downstream is derived from it.
func GroupWords(words []Word) ([]LineGroup, float64) {
	if len(words) == 0 {
		return nil, defaultTolerance
	}

	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CenterY() < sorted[j].CenterY()
	})

	heights := make([]float64, len(sorted))
	for i, w := range sorted {
		h := w.BBox.Y1 - w.BBox.Y0
		if h < 1 {
			h = 1
		}
		heights[i] = h
	}
	sort.Float64s(heights)
	median := heights[len(heights)/2]
	tolerance := math.Max(10, math.Round(median*0.6))

	var lines []LineGroup
	for _, w := range sorted {
		y := w.CenterY()
		if n := len(lines); n > 0 && math.Abs(lines[n-1].Y-y) <= tolerance {
			last := &lines[n-1]
			last.Words = append(last.Words, w)
			last.Y = (last.Y*float64(len(last.Words)-1) + y) / float64(len(last.Words))
		} else {
			lines = append(lines, LineGroup{Y: y, Words: []Word{w}})
		}
	}

	for i := range lines {
		ws := lines[i].Words
		sort.SliceStable(ws, func(a, b int) bool { return ws[a].CenterX() < ws[b].CenterX() })
	}
	return lines, tolerance
}
