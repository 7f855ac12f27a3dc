package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParsedDay is the intermediate per-day structure of the textual fallback:
// a weekday header with the times collected from alias rows beneath it.
type ParsedDay struct {
	Weekday    string   `json:"weekday"`
	DayOfMonth int      `json:"day_of_month"`
	Times      []string `json:"times"`
}

var (
	reHeader   = regexp.MustCompile(`(LUNES|MARTES|MIERCOLES|JUEVES|VIERNES|SABADO|DOMINGO)\s+(\d{1,2})`)
	reLineTime = regexp.MustCompile(`\b(\d{1,2}:\d{2})\b`)
)

// ParseText is the coordinate-free fallback over raw OCR full text. Weekday
// headers anchor a current day; subsequent lines mentioning any alias
// contribute their times to it. Alias matching here is substring-based over
// the cleaned line, deliberately looser than the geometry pipeline's
// token-exact matching.
func ParseText(text string, aliases []string) []ParsedDay {
	if text == "" {
		return nil
	}
	aliasKeys := make([]string, 0, len(aliases))
	for _, a := range aliases {
		if k := CleanToken(a); k != "" {
			aliasKeys = append(aliasKeys, k)
		}
	}
	if len(aliasKeys) == 0 {
		return nil
	}

	byKey := make(map[string]*ParsedDay)
	var order []string
	var current *ParsedDay

	for _, rawLine := range strings.Split(text, "\n") {
		line := Normalize(strings.TrimSuffix(rawLine, "\r"))

		if m := reHeader.FindStringSubmatch(line); m != nil {
			day, _ := strconv.Atoi(m[2])
			key := m[1] + "-" + m[2]
			if _, ok := byKey[key]; !ok {
				byKey[key] = &ParsedDay{Weekday: m[1], DayOfMonth: day}
				order = append(order, key)
			}
			current = byKey[key]
			continue
		}
		if current == nil {
			continue
		}
		if !lineHasAlias(line, aliasKeys) {
			continue
		}
		current.Times = append(current.Times, reLineTime.FindAllString(line, -1)...)
	}

	days := make([]ParsedDay, 0, len(order))
	for _, key := range order {
		d := *byKey[key]
		d.Times = dedupStrings(d.Times)
		days = append(days, d)
	}
	return days
}

// BuildTurns resolves parsed days into concrete dated turns using the
// weekday-verified resolver. Days that cannot be placed on the calendar are
// dropped entirely rather than clamped or guessed.
func BuildTurns(days []ParsedDay, ref time.Time) []Turn {
	if ref.IsZero() {
		ref = time.Now()
	}
	var turns []Turn
	for _, day := range days {
		date, ok := ResolveDate(day.Weekday, day.DayOfMonth, ref)
		if !ok {
			continue
		}
		for _, t := range day.Times {
			v, ok := normalizeClock(t)
			if !ok {
				continue
			}
			turns = append(turns, Turn{Date: date.Format(isoDate), StartTime: v})
		}
	}
	return dedupSort(turns)
}

func lineHasAlias(line string, aliasKeys []string) bool {
	lineKey := CleanToken(line)
	for _, k := range aliasKeys {
		if strings.Contains(lineKey, k) {
			return true
		}
	}
	return false
}

func dedupStrings(in []string) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := in[:0:0]
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
