// Package schedule recovers (date, start-time) shift entries for one worker
// from noisy OCR output of a photographed weekly schedule.
//
// The input is either a list of recognized words with pixel bounding boxes
// (ParseWords, the geometry pipeline) or the plain multi-line OCR text
// (ParseText + BuildTurns, a lower-fidelity fallback). Both paths are pure
// functions of (input, aliases, reference date): they share no state and are
// safe for concurrent use.
package schedule

// Word is one OCR-recognized token with its pixel bounding box
// (y grows downward).
type Word struct {
	Text string `json:"text"`
	BBox BBox   `json:"bbox"`
}

// BBox is an axis-aligned rectangle in image pixel space.
type BBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// CenterX returns the horizontal center of the word's box.
func (w Word) CenterX() float64 { return (w.BBox.X0 + w.BBox.X1) / 2 }

// CenterY returns the vertical center of the word's box.
func (w Word) CenterY() float64 { return (w.BBox.Y0 + w.BBox.Y1) / 2 }

// lineWord is a word prepared for row-level matching: raw text for time
// extraction, cleaned token for name/weekday comparison, center coordinates.
type lineWord struct {
	raw   string
	token string
	x     float64
	y     float64
}

func tokenize(line LineGroup) []lineWord {
	out := make([]lineWord, 0, len(line.Words))
	for _, w := range line.Words {
		out = append(out, lineWord{
			raw:   w.Text,
			token: CleanToken(w.Text),
			x:     w.CenterX(),
			y:     w.CenterY(),
		})
	}
	return out
}
