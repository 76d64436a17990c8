package reason

import "strings"

// directPrefixes are matched as substrings of the lower-cased query, so
// "how's the weather in paris" splits on "weather in " just as well.
var directPrefixes = []string{
	"weather in ",
	"weather for ",
	"weather at ",
}

// DirectExtract pulls a location out of a query by fixed pattern matching.
// When no pattern matches, the whole cleaned query stands in as the location,
// which is noisy for prefix-less queries but never empty for non-empty input.
func DirectExtract(query string) string {
	q := strings.TrimRight(strings.ToLower(strings.TrimSpace(query)), locationCutset)

	for _, prefix := range directPrefixes {
		if idx := strings.Index(q, prefix); idx >= 0 {
			return cleanLocation(q[idx+len(prefix):])
		}
	}
	return cleanLocation(q)
}
