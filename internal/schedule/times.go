package schedule

import (
	"fmt"
	"regexp"
	"strconv"
)

// '.' is accepted as separator since OCR commonly misreads the colon.
var reTime = regexp.MustCompile(`(\d{1,2})[:.](\d{2})`)

// timeCandidate is an HH:MM value found in a row, with its x position.
type timeCandidate struct {
	value string
	x     float64
}

// extractTime pulls an HH:MM-looking substring out of a raw token and
// normalizes it to zero-padded form. Out-of-range hours or minutes are
// rejected, not corrected.
func extractTime(raw string) (string, bool) {
	m := reTime.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	hh, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if hh > 23 || mm > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hh, mm), true
}

var reClock = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// normalizeClock validates a whole token as a clock time (colon only, no
// substring scan) and zero-pads it. Used by the textual fallback.
func normalizeClock(raw string) (string, bool) {
	m := reClock.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	hh, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if hh > 23 || mm > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hh, mm), true
}
