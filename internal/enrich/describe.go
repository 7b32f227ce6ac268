package enrich

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"rhcatalog/internal/model"
)

// Listings exported with an empty, placeholder, or stub description get a
// synthesized one so the category pages have something to render.
const minDescriptionLen = 100

var categoryStories = map[string]string{
	model.CategoryRetro:    "Step back in time and relive the golden age of gaming",
	model.CategoryLinux:    "Experience the power of open-source gaming",
	model.CategoryAndroid:  "Modern Android gaming meets classic retro nostalgia",
	model.CategoryCloud:    "Stream your favorite games anywhere, anytime",
	model.CategoryKids:     "Perfect for young gamers discovering classic games",
	model.CategoryHandheld: "Portable gaming at its finest",
}

var (
	descScreenRe  = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*inch`)
	descGamesRe   = regexp.MustCompile(`(?i)(\d{3,})\+?\s*games?`)
	descBatteryRe = regexp.MustCompile(`(?i)(\d{4,})\s*mAh`)
)

// NeedsDescription reports whether a record's description should be
// replaced by a synthesized one.
func NeedsDescription(desc string) bool {
	return desc == "" || desc == "N/A" || len(desc) < minDescriptionLen
}

// Describe synthesizes a three-paragraph marketing description from the
// record's category, headline features, and price tier.
func Describe(p *model.ProductRecord) string {
	story, ok := categoryStories[p.Category]
	if !ok {
		story = "Discover the perfect retro gaming companion"
	}

	priceNum := model.PriceValue(p.Price)
	featureText := strings.Join(p.Features, " ")
	screenSize := firstGroup(descScreenRe, p.Title)
	gamesCount := firstGroup(descGamesRe, featureText)
	battery := firstGroup(descBatteryRe, featureText)

	var paragraphs []string

	paragraphs = append(paragraphs, fmt.Sprintf(
		"%s with the %s. This %s retro handheld game console brings together the best of classic gaming and modern technology, "+
			"allowing you to enjoy thousands of beloved retro games wherever you go. Whether you're a seasoned gamer looking to "+
			"revisit childhood favorites or a newcomer eager to experience gaming history, this portable console delivers an "+
			"authentic retro gaming experience.",
		story, p.Title, p.Brand))

	var sb strings.Builder
	if screenSize != "" {
		fmt.Fprintf(&sb, "The %s-inch IPS screen provides crisp, vibrant visuals that bring classic games to life. ", screenSize)
	}
	if gamesCount != "" {
		fmt.Fprintf(&sb, "With over %s preloaded games, you'll have access to an extensive library of retro classics from the 8-bit and 16-bit eras. ", gamesCount)
	}
	if battery != "" {
		fmt.Fprintf(&sb, "The powerful %smAh battery ensures hours of uninterrupted gaming sessions, perfect for long commutes or travel. ", battery)
	}
	if sb.Len() > 0 {
		paragraphs = append(paragraphs, sb.String()+
			"The console features ergonomic design and intuitive controls that make it easy to jump into your favorite games. "+
			"Built with quality materials, this handheld device is designed to withstand regular use while maintaining its sleek, portable form factor.")
	} else {
		paragraphs = append(paragraphs,
			"This handheld console features an intuitive design with responsive controls that make gaming enjoyable for players of all skill levels. "+
				"The device is built with durability in mind, ensuring it can handle regular use while maintaining its compact, portable design.")
	}

	var valueText string
	switch {
	case priceNum < 80:
		valueText = fmt.Sprintf("At just $%s, this console offers exceptional value for retro gaming enthusiasts. ", formatNumber(priceNum))
	case priceNum >= 200:
		valueText = "As a premium handheld console, this device represents the pinnacle of retro gaming technology. "
	default:
		valueText = fmt.Sprintf("Priced at $%s, this console offers an excellent balance of features and affordability. ", formatNumber(priceNum))
	}
	paragraphs = append(paragraphs, valueText+fmt.Sprintf(
		"With a %.1f-star rating from %s satisfied customers, this %s handheld console has proven itself as a reliable choice for retro gaming. "+
			"Whether you're looking to relive classic arcade moments, explore retro RPG adventures, or enjoy timeless platformers, this console "+
			"provides the perfect gateway to gaming nostalgia. Don't miss out on the opportunity to own a piece of gaming history - order your "+
			"%s today and start your retro gaming journey!",
		p.Rating, groupThousands(p.ReviewCount), p.Brand, p.Title))

	return strings.TrimSpace(strings.Join(paragraphs, " "))
}

func firstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return strings.Join(append([]string{s}, parts...), ",")
}
