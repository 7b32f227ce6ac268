package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"
)

// Generates a synthetic marketplace CSV export with the column layout the
// builder ingests, for local runs and load testing.

var header = []string{
	"Asin", "Title", "Price", "Rating", "Total Review",
	"Brand", "Manufacturer", "Description", "About",
	"Product Image Url", "Product Url",
	"Long Dimension", "Width Dimension", "Height Dimension", "Weight",
}

var brands = []string{"Anbernic", "Retroid", "Miyoo", "Powkiddy", "Ayaneo", "Trimui", "Generic"}

var models = []string{"RG35XX", "RG405M", "Pocket 3", "Mini Plus", "RGB30", "K36", "Odin 2"}

var blurbs = []string{
	"Built-in 10000 classic games covering over 20 emulators so you can replay childhood favorites anywhere.",
	"4.0 inch IPS screen with crisp colors and a 3500mAh battery that lasts 6 hours of continuous play.",
	"Runs Android 13 with WiFi and bluetooth support, streaming and downloads work out of the box.",
	"Open source Linux system, supports moonlight streaming and external controllers for two player games.",
	"Great gift for kids and adults alike, lightweight compact design fits in your pocket.",
}

func main() {
	var count int
	var outputFile string
	var seed int64
	flag.IntVar(&count, "count", 50, "number of rows to generate")
	flag.StringVar(&outputFile, "output", "products.csv", "output csv file")
	flag.Int64Var(&seed, "seed", 0, "rng seed, 0 means time-based")
	flag.Parse()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if err := generate(count, outputFile, rand.New(rand.NewSource(seed))); err != nil {
		log.Fatalf("generation failed: %v", err)
	}
}

func generate(count int, outputFile string, rng *rand.Rand) error {
	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, strings.Join(header, ",")); err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		asin := fmt.Sprintf("B0%08d", rng.Intn(100000000))
		brand := brands[rng.Intn(len(brands))]
		model := models[rng.Intn(len(models))]
		price := fmt.Sprintf("$%d.%02d", 30+rng.Intn(300), rng.Intn(100))
		rating := fmt.Sprintf("%.1f", 3.0+rng.Float64()*2.0)
		reviews := fmt.Sprintf("%d", rng.Intn(5000))
		about := blurbs[rng.Intn(len(blurbs))] + " " + blurbs[rng.Intn(len(blurbs))]

		row := []string{
			asin,
			quote(fmt.Sprintf("%s %s Handheld Game Console, %s", brand, model, blurbs[rng.Intn(len(blurbs))])),
			price,
			rating,
			reviews,
			brand,
			brand,
			quote(about),
			quote(about),
			fmt.Sprintf("https://images.example.com/%s.jpg", asin),
			fmt.Sprintf("https://www.amazon.com/dp/%s", asin),
			fmt.Sprintf("%.1f inches", 3+rng.Float64()*4),
			fmt.Sprintf("%.1f inches", 2+rng.Float64()*2),
			fmt.Sprintf("%.1f inches", 0.5+rng.Float64()),
			fmt.Sprintf("%.1f ounces", 5+rng.Float64()*10),
		}
		if _, err := fmt.Fprintln(file, strings.Join(row, ",")); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	log.Printf("generated %d rows to %s", count, outputFile)
	return nil
}

// quote wraps a field so embedded commas survive the round trip. Quotes
// inside the value are dropped rather than escaped.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "") + `"`
}
