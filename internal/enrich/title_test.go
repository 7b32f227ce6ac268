package enrich

import "testing"

func TestSynthesizeTitle_BrandModelScreen(t *testing.T) {
	got := SynthesizeTitle(
		"RG35XX Handheld Game Console 3.5 inch IPS Screen",
		"Anbernic",
		"Runs Android 13 with a 3500mAh battery.",
		"",
	)
	want := "Anbernic RG35XX 3.5 Inch IPS Screen Retro Game Handheld"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSynthesizeTitle_ScreenBeatsAndroidAndBattery(t *testing.T) {
	got := SynthesizeTitle(
		"Handheld with 4.0 inch screen, Android 13, 5000mAh",
		"Retroid",
		"", "",
	)
	if got != "Retroid 4.0 Inch Screen Retro Game Handheld" {
		t.Fatalf("got %q", got)
	}
}

func TestSynthesizeTitle_WorstCaseGeneric(t *testing.T) {
	got := SynthesizeTitle("handheld console", "", "", "")
	if got != "Generic Retro Game Handheld" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveBrand_KnownBrandFromText(t *testing.T) {
	got := resolveBrand("", "the anbernic rg35xx is great")
	if got != "Anbernic" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveBrand_SuspiciousButShortKept(t *testing.T) {
	// A brand with a numeric lead is suspicious, but with no better candidate
	// in the text it is kept rather than replaced.
	got := resolveBrand("24 Hour Play", "some handheld thing")
	if got != "24 Hour Play" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveBrand_StripsStorefrontDecoration(t *testing.T) {
	got := resolveBrand("Visit the Miyoo Store", "")
	if got != "Miyoo" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractModelToken_RuleOrder(t *testing.T) {
	cases := map[string]string{
		"Anbernic RG 405M handheld":  "RG405M",
		"Powkiddy K36 mini console":  "K36",
		"Retroid Pocket 3 android":   "Pocket 3",
		"GPD WIN 4 gaming handheld":  "WIN 4",
		"PSP style emulator machine": "PSP",
		// K and R tokens pass through verbatim, spacing and casing included.
		"Powkiddy K 36 mini build": "K 36",
		"Handheld r36s for travel": "r36s",
	}
	for in, want := range cases {
		if got := extractModelToken(in); got != want {
			t.Fatalf("text %q: got %q want %q", in, got, want)
		}
	}
}
