package pings

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mxwllalpha/kodepos-worker/pkg/alert"
	"github.com/mxwllalpha/kodepos-worker/pkg/kodepos"
)

// canaryQuery is a search every deployment is expected to answer; if this one
// fails, the upstream is down.
const canaryQuery = "Jakarta"

type Pinger interface {
	MonitorUpstream(context.Context) error
}

func NewBackgroundPinger(k kodepos.Client, n alert.Notifier, interval time.Duration) *backgroundPinger {
	return &backgroundPinger{k: k, n: n, interval: interval}
}

type backgroundPinger struct {
	k        kodepos.Client
	n        alert.Notifier
	interval time.Duration
}

func (p *backgroundPinger) MonitorUpstream(ctx context.Context) error {
	interval := p.interval
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := p.PingUpstream(ctx); err != nil {
				if nerr := p.n.Msg(ctx, "upstream check failed: %s", err.Error()); nerr != nil {
					slog.Error("notify upstream failure", "error", nerr.Error())
				}
			}
		}
	}
}

// PingUpstream issues the canary search and reports anything short of a
// healthy 200 envelope as an error.
func (p *backgroundPinger) PingUpstream(ctx context.Context) error {
	envelope, err := p.k.SearchByText(ctx, canaryQuery)
	if err != nil {
		return fmt.Errorf("search %q: %w", canaryQuery, err)
	}

	if envelope.StatusCode != 200 {
		return fmt.Errorf("upstream responded %d: %s", envelope.StatusCode, envelope.Error)
	}

	slog.InfoContext(ctx, "upstream healthy", "results", len(envelope.Records))
	return nil
}
