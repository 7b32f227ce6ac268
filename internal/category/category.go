package category

import (
	"strings"

	"rhcatalog/internal/model"
)

// primaryRule maps a keyword set to a primary category. Rules are evaluated
// in order and the first hit wins, so a listing mentioning both "cloud" and
// "retro" lands in cloud-gaming.
type primaryRule struct {
	category string
	keywords []string
}

var primaryRules = []primaryRule{
	{model.CategoryCloud, []string{"cloud", "streaming", "xbox cloud", "geforce now"}},
	{model.CategoryAndroid, []string{"android", "android 12", "android 13", "android 14"}},
	{model.CategoryLinux, []string{"linux", "emuelec"}},
	{model.CategoryKids, []string{"kids", "children", "toy"}},
	{model.CategoryRetro, []string{"retro", "classic", "emulator"}},
}

// Primary classifies a product from its combined free text.
func Primary(title, description, about string) string {
	text := strings.ToLower(title + " " + description + " " + about)
	for _, rule := range primaryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.category
			}
		}
	}
	return model.CategoryHandheld
}

// Bonus tag pools and the minimum-count fallback pool. Selection within each
// pool is hash-driven so the same ASIN always lands on the same tag.
var (
	portableTags = []string{"portable-handheld", "portable-handheld-games"}
	gameTags     = []string{"handheld-games", "retro-handheld-games", "handheld-retro-games"}
	fallbackTags = []string{"retro-handheld-game-console", "handheld-retro-game-console", "retro-game-handheld"}
)

// SEOTags assigns 2-5 secondary categories, deterministically derived from
// the ASIN. The arithmetic below (char-code sum, the 13/17 probe multipliers,
// vocabulary index order) is a frozen contract: category page membership, and
// with it every generated category URL, depends on reproducing it exactly.
func SEOTags(title, description, about, asin string) []string {
	text := strings.ToLower(title + " " + description + " " + about)
	vocab := model.SEOTagVocabulary
	hash := model.CharSum(asin)

	count := 2 + hash%3
	selected := make(map[int]bool, count)
	tags := make([]string, 0, count)
	for i := 0; i < count; i++ {
		attempts := 0
		var idx int
		for {
			idx = (hash + i*13 + attempts*17) % len(vocab)
			attempts++
			if !selected[idx] || attempts >= 20 {
				break
			}
		}
		selected[idx] = true
		tags = append(tags, vocab[idx])
	}

	// At most one bonus tag from keyword signals.
	switch {
	case strings.Contains(text, "portable") || strings.Contains(text, "compact") || strings.Contains(text, "mini"):
		tags = appendTag(tags, portableTags[hash%len(portableTags)])
	case strings.Contains(text, "game console") || strings.Contains(text, "game consoles"):
		tags = appendTag(tags, "game-console")
	case strings.Contains(text, "handheld game") || strings.Contains(text, "handheld games"):
		tags = appendTag(tags, gameTags[hash%len(gameTags)])
	}

	if len(tags) < 2 {
		fb := fallbackTags[hash%len(fallbackTags)]
		if !containsTag(tags, fb) {
			tags = append(tags, fb)
		}
	}

	if len(tags) > 5 {
		tags = tags[:5]
	}
	return tags
}

func appendTag(tags []string, tag string) []string {
	if !containsTag(tags, tag) && len(tags) < 5 {
		return append(tags, tag)
	}
	return tags
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
