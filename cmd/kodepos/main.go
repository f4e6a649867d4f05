package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mxwllalpha/kodepos-worker/pkg/env"
	"github.com/mxwllalpha/kodepos-worker/pkg/geocode"
	"github.com/mxwllalpha/kodepos-worker/pkg/kodepos"
	"github.com/mxwllalpha/kodepos-worker/pkg/report"
)

const usage = "usage: kodepos [<query> | <latitude> <longitude>]"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		// An interrupt mid-wait is a normal exit, not a failure.
		if errors.Is(err, context.Canceled) {
			fmt.Println("\n👋 Goodbye!")
			return
		}

		fmt.Fprintf(os.Stderr, "❌ %s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	client, err := env.NewKodeposClient()
	if err != nil {
		return err
	}

	switch len(args) {
	case 0:
		return runInteractive(ctx, client, geocode.NewOpenstreetmapClient())
	case 1:
		return runSearch(ctx, client, args[0])
	case 2:
		lat, latErr := strconv.ParseFloat(args[0], 64)
		lng, lngErr := strconv.ParseFloat(args[1], 64)
		if latErr != nil || lngErr != nil {
			return fmt.Errorf("invalid coordinates %q, %q\n%s", args[0], args[1], usage)
		}

		return runDetect(ctx, client, lat, lng)
	default:
		return errors.New(usage)
	}
}

func runSearch(ctx context.Context, client kodepos.Client, query string) error {
	fmt.Printf("🔍 Searching for: %s\n", query)

	envelope, err := client.SearchByText(ctx, query)
	if err != nil {
		return err
	}

	if envelope.StatusCode != 200 {
		fmt.Printf("❌ Search failed: %s\n", envelopeError(envelope))
		return nil
	}

	fmt.Println(report.Render(envelope.Records))
	return nil
}

func runDetect(ctx context.Context, client kodepos.Client, lat, lng float64) error {
	fmt.Printf("📍 Detecting location: %v, %v\n", lat, lng)

	envelope, err := client.DetectByCoordinates(ctx, lat, lng)
	if err != nil {
		return err
	}

	if envelope.StatusCode != 200 {
		fmt.Printf("❌ Detection failed: %s\n", envelopeError(envelope))
		return nil
	}

	fmt.Println(report.Render(envelope.Records))
	return nil
}

func envelopeError(e *kodepos.Envelope) string {
	if e.Error != "" {
		return e.Error
	}

	return fmt.Sprintf("upstream responded %d", e.StatusCode)
}
