package schedule

import (
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/turnoapp/turnos-importer/constants"
)

// DayAnchor is a detected weekday-name/day-number header pair. X and Y are
// the day-number token's position; Weekday is the cleaned weekday token that
// produced it, kept so dates can be weekday-verified later.
type DayAnchor struct {
	DayNum  int
	Weekday string
	X       float64
	Y       float64
}

var reDayNum = regexp.MustCompile(`^\d{1,2}$`)

// ExtractDayAnchors scans rows for weekday tokens with a plausible day number
// to their right, then keeps only the topmost band of hits: day numbers lower
// in the image are schedule-body cells, not headers. Result is sorted by x.
// An empty result means the whole parse cannot place any date.
func ExtractDayAnchors(lines []LineGroup, tolerance float64) []DayAnchor {
	var anchors []DayAnchor
	for _, line := range lines {
		tokens := tokenize(line)
		for i, tok := range tokens {
			if !constants.IsWeekday(tok.token) {
				continue
			}
			if num, ok := dayNumberRight(tokens, i); ok {
				anchors = append(anchors, DayAnchor{
					DayNum:  num.day,
					Weekday: tok.token,
					X:       num.x,
					Y:       line.Y,
				})
			}
		}
	}
	if len(anchors) == 0 {
		return nil
	}

	minY := anchors[0].Y
	for _, a := range anchors[1:] {
		if a.Y < minY {
			minY = a.Y
		}
	}
	band := math.Max(30, tolerance*2)

	header := anchors[:0:0]
	for _, a := range anchors {
		if a.Y <= minY+band {
			header = append(header, a)
		}
	}
	sort.SliceStable(header, func(i, j int) bool { return header[i].X < header[j].X })
	return header
}

type dayNumToken struct {
	day int
	x   float64
}

// dayNumberRight finds the day-number partner for the weekday at idx: a 1-2
// digit token in 1..31 whose horizontal offset lies in [-5, 200] pixels.
// Smallest signed offset wins.
func dayNumberRight(tokens []lineWord, idx int) (dayNumToken, bool) {
	baseX := tokens[idx].x
	var best dayNumToken
	bestDx := math.Inf(1)
	found := false

	for i := idx + 1; i < len(tokens); i++ {
		t := tokens[i]
		if !reDayNum.MatchString(t.token) {
			continue
		}
		dx := t.x - baseX
		if dx < -5 || dx > 200 {
			continue
		}
		day, err := strconv.Atoi(t.token)
		if err != nil || day < 1 || day > 31 {
			continue
		}
		if !found || dx < bestDx {
			best = dayNumToken{day: day, x: t.x}
			bestDx = dx
			found = true
		}
	}
	return best, found
}
