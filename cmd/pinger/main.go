package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"log/slog"

	"github.com/joho/godotenv"

	"github.com/mxwllalpha/kodepos-worker/pkg/alert"
	"github.com/mxwllalpha/kodepos-worker/pkg/env"
	"github.com/mxwllalpha/kodepos-worker/pkg/logger"
	"github.com/mxwllalpha/kodepos-worker/pkg/pings"
)

const ServiceName = "pinger"

func init() {
	logger.InitGlobalSlog(ServiceName)
}

func main() {
	_ = godotenv.Load()

	slog.Info("starting pinger")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("pinger shutdown abruptly", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("pinger shutdown gracefully")
}

func run(ctx context.Context) error {
	client, err := env.NewLoggingKodeposClient()
	if err != nil {
		return fmt.Errorf("create kodepos client: %w", err)
	}

	notifier := alert.NewSlogNotifier()

	pinger := pings.NewBackgroundPinger(client, notifier, pingInterval())
	if err := pinger.MonitorUpstream(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("monitor upstream: %w", err)
	}

	return nil
}

func pingInterval() time.Duration {
	raw := os.Getenv("PING_INTERVAL_SECONDS")
	if raw == "" {
		return time.Minute
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return time.Minute
	}

	return time.Duration(seconds) * time.Second
}
