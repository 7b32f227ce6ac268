package model

import (
	"math"
	"testing"
)

func TestCharSum_PinnedValues(t *testing.T) {
	cases := map[string]int{
		"AB12345678": 551,
		"B0TESTASIN": 733,
		"":           0,
	}
	for in, want := range cases {
		if got := CharSum(in); got != want {
			t.Fatalf("CharSum(%q) = %d want %d", in, got, want)
		}
	}
}

func TestPriceValue(t *testing.T) {
	cases := map[string]float64{
		"49.99":          49.99,
		"$1,299.00":      1299,
		PriceUnavailable: 0,
		"":               0,
	}
	for in, want := range cases {
		if got := PriceValue(in); got != want {
			t.Fatalf("PriceValue(%q) = %v want %v", in, got, want)
		}
	}
}

func TestWeightedScore(t *testing.T) {
	p := &ProductRecord{Rating: 4.0, ReviewCount: 99}
	want := 4.0 * math.Log(100)
	if got := WeightedScore(p); math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v want %v", got, want)
	}
	zero := &ProductRecord{Rating: 5.0, ReviewCount: 0}
	if got := WeightedScore(zero); got != 0 {
		t.Fatalf("zero reviews should score 0, got %v", got)
	}
}
