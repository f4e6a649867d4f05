package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mxwllalpha/kodepos-worker/pkg/geocode"
	"github.com/mxwllalpha/kodepos-worker/pkg/kodepos"
	"github.com/mxwllalpha/kodepos-worker/pkg/report"
)

// prompter reads stdin on its own goroutine so that a menu waiting for input
// can still react to an interrupt.
type prompter struct {
	lines chan string
}

func newPrompter() *prompter {
	lines := make(chan string)
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	return &prompter{lines: lines}
}

// ask prints the prompt and waits for a line of input. It returns false on
// EOF, and ctx.Err() when the wait is interrupted.
func (p *prompter) ask(ctx context.Context, prompt string) (string, bool, error) {
	fmt.Print(prompt)

	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case line, ok := <-p.lines:
		return strings.TrimSpace(line), ok, nil
	}
}

func runInteractive(ctx context.Context, client kodepos.Client, geocoder geocode.Client) error {
	fmt.Println("🇮🇩 Kodepos Indonesia - Interactive Lookup")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("Choose an option:")
	fmt.Println("1. Search postal codes")
	fmt.Println("2. Detect location by coordinates")
	fmt.Println("3. Locate a place by name")
	fmt.Println("4. Quick demo")
	fmt.Println("5. Exit")

	p := newPrompter()
	for {
		choice, ok, err := p.ask(ctx, "\nEnter your choice (1-5): ")
		if err != nil {
			return err
		}

		if !ok {
			fmt.Println("\n👋 Goodbye!")
			return nil
		}

		switch choice {
		case "1":
			if err := searchLoop(ctx, p, client); err != nil {
				return err
			}
			return nil
		case "2":
			if err := detectLoop(ctx, p, client); err != nil {
				return err
			}
			return nil
		case "3":
			if err := locateLoop(ctx, p, client, geocoder); err != nil {
				return err
			}
			return nil
		case "4":
			if err := quickDemo(ctx, client); err != nil {
				return err
			}
			return nil
		case "5":
			fmt.Println("\n👋 Goodbye!")
			return nil
		default:
			fmt.Println("⚠️ Invalid choice. Please enter 1-5.")
		}
	}
}

func searchLoop(ctx context.Context, p *prompter, client kodepos.Client) error {
	fmt.Println("\nEnter location names, postal codes, or administrative areas")
	fmt.Println("Examples: 'Jakarta', 'Menteng', '10110', 'DKI Jakarta'")
	fmt.Println("Commands: 'exit' to quit, 'help' for assistance")

	for {
		query, ok, err := p.ask(ctx, "\n🔍 Search (or 'exit'): ")
		if err != nil {
			return err
		}

		if !ok || strings.EqualFold(query, "exit") {
			fmt.Println("\n👋 Goodbye!")
			return nil
		}

		switch {
		case strings.EqualFold(query, "help"):
			fmt.Println("\n📖 Help:")
			fmt.Println("- Search by village name: 'Menteng'")
			fmt.Println("- Search by district: 'Gambir'")
			fmt.Println("- Search by city: 'Jakarta Pusat'")
			fmt.Println("- Search by postal code: '10110'")
			fmt.Println("- Type 'exit' to quit")
			continue
		case query == "":
			fmt.Println("⚠️ Please enter a search term")
			continue
		case queryTooShort(query):
			fmt.Printf("⚠️ Query must be at least %d characters long\n", kodepos.MinQueryLength)
			continue
		}

		fmt.Printf("\n🔍 Searching for: '%s'...\n", query)

		envelope, err := client.SearchByText(ctx, query)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			printLookupError(err)
			continue
		}

		if envelope.StatusCode != 200 {
			fmt.Printf("❌ Search failed: %s\n", envelopeError(envelope))
			continue
		}

		fmt.Println(report.Render(envelope.Records))
	}
}

func detectLoop(ctx context.Context, p *prompter, client kodepos.Client) error {
	fmt.Println("\nEnter coordinates to find postal codes")
	fmt.Println("Format: latitude,longitude (e.g., -6.2088,106.8456)")
	fmt.Println("Commands: 'exit' to quit")

	for {
		input, ok, err := p.ask(ctx, "\n📍 Coordinates (or 'exit'): ")
		if err != nil {
			return err
		}

		if !ok || strings.EqualFold(input, "exit") {
			fmt.Println("\n👋 Goodbye!")
			return nil
		}

		if input == "" {
			fmt.Println("⚠️ Please enter coordinates")
			continue
		}

		lat, lng, err := parseCoordinates(input)
		if err != nil {
			fmt.Printf("⚠️ Invalid coordinates: %s\n", err)
			continue
		}

		fmt.Printf("\n🔍 Detecting postal code for: %v, %v\n", lat, lng)

		envelope, err := client.DetectByCoordinates(ctx, lat, lng)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			printLookupError(err)
			continue
		}

		if envelope.StatusCode != 200 {
			fmt.Printf("❌ Detection failed: %s\n", envelopeError(envelope))
			continue
		}

		fmt.Println(report.Render(envelope.Records))
	}
}

func locateLoop(ctx context.Context, p *prompter, client kodepos.Client, geocoder geocode.Client) error {
	fmt.Println("\nEnter a place name and I'll resolve it to coordinates first")
	fmt.Println("Examples: 'Monas Jakarta', 'Bandung Institute of Technology'")
	fmt.Println("Commands: 'exit' to quit")

	for {
		place, ok, err := p.ask(ctx, "\n🗺️ Place (or 'exit'): ")
		if err != nil {
			return err
		}

		if !ok || strings.EqualFold(place, "exit") {
			fmt.Println("\n👋 Goodbye!")
			return nil
		}

		if place == "" {
			fmt.Println("⚠️ Please enter a place name")
			continue
		}

		location, err := geocoder.Geocode(place)
		if err != nil {
			fmt.Printf("❌ Could not resolve '%s': %s\n", place, err)
			continue
		}

		fmt.Printf("\n🧭 Resolved '%s' to %.6f, %.6f\n", place, location.Latitude, location.Longitude)

		envelope, err := client.DetectByCoordinates(ctx, location.Latitude, location.Longitude)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			printLookupError(err)
			continue
		}

		if envelope.StatusCode != 200 {
			fmt.Printf("❌ Detection failed: %s\n", envelopeError(envelope))
			continue
		}

		fmt.Println(report.Render(envelope.Records))
	}
}

func quickDemo(ctx context.Context, client kodepos.Client) error {
	demoQueries := []struct {
		query       string
		description string
	}{
		{"Jakarta", "Search by city name"},
		{"Menteng", "Search by village name"},
		{"10110", "Search by postal code"},
		{"DKI Jakarta", "Search by province"},
	}

	fmt.Println("\n🚀 Quick Demo")
	fmt.Println(strings.Repeat("=", 30))

	for _, demo := range demoQueries {
		fmt.Printf("\n%s: '%s'\n", demo.description, demo.query)
		fmt.Println(strings.Repeat("-", 40))

		envelope, err := client.SearchByText(ctx, demo.query)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			printLookupError(err)
			continue
		}

		if envelope.StatusCode != 200 {
			fmt.Printf("❌ Error: %s\n", envelopeError(envelope))
			continue
		}

		if len(envelope.Records) == 0 {
			fmt.Println("❌ No results found")
			continue
		}

		first := envelope.Records[0]
		fmt.Printf("✅ Found %d results\n", len(envelope.Records))
		fmt.Printf("   Example: %s - %s\n", first.Village, first.Code)
		fmt.Printf("   Location: %s, %s\n", first.District, first.Regency)
	}

	// Jakarta city centre.
	fmt.Println("\nLocation Detection Demo")
	fmt.Println(strings.Repeat("-", 40))

	envelope, err := client.DetectByCoordinates(ctx, -6.2088, 106.8456)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		printLookupError(err)
		return nil
	}

	if envelope.StatusCode != 200 || len(envelope.Records) == 0 {
		fmt.Println("❌ Location detection failed")
		return nil
	}

	fmt.Println(report.Render(envelope.Records))
	fmt.Println("\n✨ Demo complete! Try the interactive modes for more exploration.")
	return nil
}

// queryTooShort mirrors the client's validation rule, counting runes rather
// than bytes, so the friendly re-prompt and the client agree on what's short.
func queryTooShort(query string) bool {
	return utf8.RuneCountInString(query) < kodepos.MinQueryLength
}

func parseCoordinates(input string) (float64, float64, error) {
	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("format should be: latitude,longitude")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("latitude %q is not a number", strings.TrimSpace(parts[0]))
	}

	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("longitude %q is not a number", strings.TrimSpace(parts[1]))
	}

	return lat, lng, nil
}

func printLookupError(err error) {
	switch kodepos.KindOf(err) {
	case kodepos.KindValidation:
		fmt.Printf("⚠️ Invalid input: %s\n", err)
	default:
		fmt.Printf("❌ Network error: %s\n", err)
	}
}
