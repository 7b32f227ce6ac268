package enrich

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxFeatures = 5

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// ExtractFeatures pulls up to five feature sentences out of free text:
// sentences longer than 20 characters that mention the screen, the battery,
// or a bundled game library. Keyword checks are case-sensitive on purpose
// ("mAh" is how the listings spell it); only categorization lowercases.
func ExtractFeatures(text string) []string {
	var features []string
	for _, sentence := range sentenceSplitRe.Split(text, -1) {
		trimmed := strings.TrimSpace(sentence)
		if utf8.RuneCountInString(trimmed) <= 20 {
			continue
		}
		switch {
		case strings.Contains(sentence, "inch") || strings.Contains(sentence, "screen") || strings.Contains(sentence, "display"):
			features = append(features, trimmed)
		case strings.Contains(sentence, "battery") || strings.Contains(sentence, "mAh"):
			features = append(features, trimmed)
		case strings.Contains(sentence, "game") &&
			(strings.Contains(sentence, "preload") || strings.Contains(sentence, "built-in") || strings.Contains(sentence, "included")):
			features = append(features, trimmed)
		}
	}
	if len(features) > maxFeatures {
		features = features[:maxFeatures]
	}
	return features
}
