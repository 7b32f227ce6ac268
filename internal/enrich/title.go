package enrich

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// titleSuffix closes every synthesized display title.
const titleSuffix = "Retro Game Handheld"

// knownBrands is searched case-insensitively in the combined text when the
// exported brand column is unusable. First match wins.
var knownBrands = []string{
	"Anbernic", "Kinhank", "Retroid", "Miyoo", "Steam", "Nintendo", "Sony", "Valve",
	"AYANEO", "GPD", "Lenovo", "ASUS", "Logitech", "Razer", "ASUS ROG", "OnePro",
	"My Arcade", "Saker", "RegiisJoy", "Doriteney", "Actualia", "OYDL", "ConsoleXpress",
	"INLAND", "Epic Games", "EraVortx", "GiipGoop", "Thumbs Up", "abxylute", "Aivuidbs",
	"Forlarme", "TaddToy", "LUHYAUAN", "SNONBROS", "Cheffun",
}

var (
	visitPrefixRe = regexp.MustCompile(`(?i)^Visit the `)
	storeSuffixRe = regexp.MustCompile(`(?i) Store$`)
	numericLeadRe = regexp.MustCompile(`^\d+\.?\d*`)
	leadingCapsRe = regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)
)

// modelRule pairs a pattern with a formatter for the matched token. Rules
// are evaluated in order; the first match wins.
type modelRule struct {
	re     *regexp.Regexp
	format func(m []string) string
}

var modelRules = []modelRule{
	{regexp.MustCompile(`(?i)RG\s*(\d+[A-Z]*)`), func(m []string) string { return "RG" + m[1] }},
	{regexp.MustCompile(`(?i)K\s*(\d+)`), wholeMatch},
	{regexp.MustCompile(`(?i)R\s*(\d+[A-Z]*)`), wholeMatch},
	{regexp.MustCompile(`(?i)\bR(\d+[A-Z]*)\b`), func(m []string) string { return "R" + m[1] }},
	{regexp.MustCompile(`(?i)(\d+)\s*Bit`), wholeMatch},
	{regexp.MustCompile(`(?i)Pocket\s*(\d+)`), wholeMatch},
	{regexp.MustCompile(`(?i)Odin\s*(\d+)`), wholeMatch},
	{regexp.MustCompile(`(?i)WIN\s*(\d+)`), wholeMatch},
	{regexp.MustCompile(`(?i)PSP`), wholeMatch},
	{regexp.MustCompile(`(?i)Switch`), wholeMatch},
	{regexp.MustCompile(`(?i)3DS`), wholeMatch},
	{regexp.MustCompile(`(?i)2DS`), wholeMatch},
}

func wholeMatch(m []string) string { return m[0] }

var (
	screenFullRe = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*inch\s*(?:IPS|OLED|LCD|AM\s*OLED)?\s*(?:Touch\s*)?Screen`)
	screenTypeRe = regexp.MustCompile(`(?i)(IPS|OLED|LCD|AM\s*OLED|Touch)`)
	inchOnlyRe   = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*inch`)
	androidVerRe = regexp.MustCompile(`(?i)Android\s*(\d+\.?\d*)`)
	gameCountRe  = regexp.MustCompile(`(?i)(\d{4,})\+?\s*Games`)
	storageRe    = regexp.MustCompile(`(?i)(\d+)\s*GB\s*(?:RAM|ROM|Storage|TF|Card)?`)
	batteryRe    = regexp.MustCompile(`(?i)(\d{4,})\s*mAh`)
)

// SynthesizeTitle builds the display title from the cleaned brand and the
// combined free text: brand, model token if found, one leading feature if
// found, fixed suffix. Always non-empty; the worst case is
// "Generic Retro Game Handheld".
func SynthesizeTitle(rawTitle, brand, description, about string) string {
	fullText := rawTitle + " " + description + " " + about
	resolved := resolveBrand(brand, fullText)

	parts := []string{resolved}
	if m := extractModelToken(fullText); m != "" {
		parts = append(parts, m)
	}
	if f := extractLeadingFeature(fullText); f != "" {
		parts = append(parts, f)
	}
	parts = append(parts, titleSuffix)
	return strings.Join(parts, " ")
}

// resolveBrand keeps a usable brand as-is; otherwise it scans the text for a
// known brand name, then falls back to a leading capitalized-words guess,
// then to Generic.
func resolveBrand(brand, fullText string) string {
	b := strings.TrimSpace(storeSuffixRe.ReplaceAllString(visitPrefixRe.ReplaceAllString(brand, ""), ""))
	if !brandLooksInvalid(b) {
		return b
	}

	lowerText := strings.ToLower(fullText)
	for _, known := range knownBrands {
		if strings.Contains(lowerText, strings.ToLower(known)) {
			return known
		}
	}

	if b == "" || utf8.RuneCountInString(b) > 50 {
		if m := leadingCapsRe.FindStringSubmatch(fullText); m != nil && utf8.RuneCountInString(m[1]) < 30 {
			return m[1]
		}
		return "Generic"
	}
	// Suspicious but present and short enough: keep it rather than invent one.
	return b
}

func brandLooksInvalid(b string) bool {
	if b == "" || utf8.RuneCountInString(b) > 50 {
		return true
	}
	if numericLeadRe.MatchString(b) {
		return true
	}
	lower := strings.ToLower(b)
	return strings.Contains(lower, "hours") || strings.Contains(lower, "charged")
}

func extractModelToken(fullText string) string {
	for _, rule := range modelRules {
		if m := rule.re.FindStringSubmatch(fullText); m != nil {
			return rule.format(m)
		}
	}
	return ""
}

// extractLeadingFeature picks at most one headline feature, in strict
// priority order: screen, Android version, game count, storage, battery.
func extractLeadingFeature(fullText string) string {
	if m := screenFullRe.FindStringSubmatch(fullText); m != nil {
		screenType := ""
		if t := screenTypeRe.FindStringSubmatch(fullText); t != nil {
			screenType = t[1] + " "
		}
		return m[1] + " Inch " + screenType + "Screen"
	}
	if m := inchOnlyRe.FindStringSubmatch(fullText); m != nil {
		return m[1] + " Inch Screen"
	}
	if m := androidVerRe.FindStringSubmatch(fullText); m != nil {
		return "Android " + m[1]
	}
	if m := gameCountRe.FindStringSubmatch(fullText); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1000 {
			return m[1] + "+ Games"
		}
	}
	if m := storageRe.FindStringSubmatch(fullText); m != nil {
		return m[1] + "GB"
	}
	if m := batteryRe.FindStringSubmatch(fullText); m != nil {
		return m[1] + "mAh Battery"
	}
	return ""
}
