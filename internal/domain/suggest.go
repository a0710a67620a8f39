package domain

import (
	"fmt"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance is the largest edit distance still offered as a hint.
const maxSuggestDistance = 2

// Suggest returns the candidate closest to s, or "" when none is close enough.
func Suggest(s string, candidates []string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(s, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// UnknownCollection describes a collection name that failed to parse.
func UnknownCollection(s string) string {
	names := make([]string, len(collections))
	for i, c := range collections {
		names[i] = string(c)
	}
	return withHint(fmt.Sprintf("unknown collection %q", s), Suggest(s, names))
}

// UnknownColumn describes a column key c does not have.
func UnknownColumn(c Collection, key string) string {
	specs := Columns(c)
	keys := make([]string, len(specs))
	for i, spec := range specs {
		keys[i] = spec.Key
	}
	return withHint(fmt.Sprintf("unknown column %q for %s", key, c), Suggest(key, keys))
}

func withHint(msg, hint string) string {
	if hint == "" {
		return msg
	}
	return fmt.Sprintf("%s (did you mean %q?)", msg, hint)
}
