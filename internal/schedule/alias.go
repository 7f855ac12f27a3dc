package schedule

import (
	"sort"
	"strings"
)

// AliasSet is the ordered, normalized token sequence of one alias
// (e.g. "Miguel L" -> ["MIGUEL","L"]).
type AliasSet []string

// NormalizeAliases cleans the caller-supplied alias strings into token sets,
// dropping aliases that normalize to nothing. Longer aliases sort first so
// they claim row tokens before a shorter alias that is their prefix can.
func NormalizeAliases(aliases []string) []AliasSet {
	out := make([]AliasSet, 0, len(aliases))
	for _, a := range aliases {
		fields := strings.Fields(Normalize(a))
		set := make(AliasSet, 0, len(fields))
		for _, f := range fields {
			if tok := CleanToken(f); tok != "" {
				set = append(set, tok)
			}
		}
		if len(set) > 0 {
			out = append(out, set)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

// AliasMatch is the centroid of one matched alias occurrence in a row.
type AliasMatch struct {
	X float64
	Y float64
}

// findAliasMatches slides each alias window over the row's non-empty tokens.
// Every window position must equal the alias token exactly; positions already
// consumed by an earlier (longer) match are off-limits, so MIGUEL cannot
// re-match inside an already-claimed MIGUEL L.
func findAliasMatches(tokens []lineWord, aliases []AliasSet) []AliasMatch {
	valid := tokens[:0:0]
	for _, t := range tokens {
		if t.token != "" {
			valid = append(valid, t)
		}
	}

	var matches []AliasMatch
	used := make(map[int]struct{})

	for _, alias := range aliases {
		for i := 0; i+len(alias) <= len(valid); i++ {
			if windowConsumed(used, i, len(alias)) {
				continue
			}
			if !windowEquals(valid, i, alias) {
				continue
			}
			var sx, sy float64
			for k := i; k < i+len(alias); k++ {
				sx += valid[k].x
				sy += valid[k].y
				used[k] = struct{}{}
			}
			n := float64(len(alias))
			matches = append(matches, AliasMatch{X: sx / n, Y: sy / n})
		}
	}
	return matches
}

func windowConsumed(used map[int]struct{}, start, length int) bool {
	for k := start; k < start+length; k++ {
		if _, ok := used[k]; ok {
			return true
		}
	}
	return false
}

func windowEquals(tokens []lineWord, start int, alias AliasSet) bool {
	for j, want := range alias {
		if tokens[start+j].token != want {
			return false
		}
	}
	return true
}
