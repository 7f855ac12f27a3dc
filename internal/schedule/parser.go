package schedule

import (
	"math"
	"sort"
	"time"
)

// Turn is one recovered shift entry. (Date, StartTime) is the uniqueness key.
type Turn struct {
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
}

// Options tunes a parse invocation.
type Options struct {
	// ReferenceDate disambiguates which month a day-of-month belongs to.
	// Zero means time.Now().
	ReferenceDate time.Time
}

// Horizontal windows, in pixels, for pairing a time with an alias. Times are
// expected to the right of (or very near) the name.
const (
	timeWindowLeft  = -60
	timeWindowRight = 400
)

// ParseWords recovers the worker's shift entries from positioned OCR words.
// Rows are reconstructed from word geometry; the header band yields one day
// anchor per weekday/day-number pair; within each remaining row every alias
// occurrence is paired with its nearest time candidate, and the time's x
// position decides which day column it belongs to. All failure modes produce
// fewer results, never errors: noisy input and partial recovery are the
// steady state.
func ParseWords(words []Word, aliases []string, opts Options) []Turn {
	ref := opts.ReferenceDate
	if ref.IsZero() {
		ref = time.Now()
	}

	aliasSets := NormalizeAliases(aliases)
	if len(aliasSets) == 0 {
		return nil
	}

	lines, tolerance := GroupWords(words)
	anchors := ExtractDayAnchors(lines, tolerance)
	if len(anchors) == 0 {
		return nil
	}

	var turns []Turn
	for _, line := range lines {
		tokens := tokenize(line)

		var times []timeCandidate
		for _, t := range tokens {
			if v, ok := extractTime(t.raw); ok {
				times = append(times, timeCandidate{value: v, x: t.x})
			}
		}
		if len(times) == 0 {
			continue
		}

		matches := findAliasMatches(tokens, aliasSets)
		for _, m := range matches {
			best, ok := nearestTime(times, m.X)
			if !ok {
				continue
			}
			anchor := nearestAnchor(anchors, best.x)
			date, ok := ResolveDate(anchor.Weekday, anchor.DayNum, ref)
			if !ok {
				continue
			}
			turns = append(turns, Turn{Date: date.Format(isoDate), StartTime: best.value})
		}
	}
	return dedupSort(turns)
}

// nearestTime picks the candidate minimizing |dx| with dx in the pairing
// window. ok is false when no candidate qualifies.
func nearestTime(times []timeCandidate, x float64) (timeCandidate, bool) {
	var best timeCandidate
	bestScore := math.Inf(1)
	found := false
	for _, c := range times {
		dx := c.x - x
		if dx < timeWindowLeft || dx > timeWindowRight {
			continue
		}
		if score := math.Abs(dx); score < bestScore {
			best = c
			bestScore = score
			found = true
		}
	}
	return best, found
}

// nearestAnchor maps an x position to the closest header anchor. Anchors is
// never empty here; ParseWords bails out earlier otherwise.
func nearestAnchor(anchors []DayAnchor, x float64) DayAnchor {
	best := anchors[0]
	bestD := math.Abs(x - best.X)
	for _, a := range anchors[1:] {
		if d := math.Abs(x - a.X); d < bestD {
			best = a
			bestD = d
		}
	}
	return best
}

// dedupSort drops duplicate (date, startTime) pairs (first occurrence wins)
// and orders ascending by date then time. Lexicographic compare is correct
// for zero-padded ISO strings.
func dedupSort(turns []Turn) []Turn {
	seen := make(map[Turn]struct{}, len(turns))
	out := turns[:0:0]
	for _, t := range turns {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}
