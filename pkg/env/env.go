// package env contains simple getters for the environment variables shared
// across the binaries, plus constructors for the clients built from them.
package env

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mxwllalpha/kodepos-worker/pkg/kodepos"
	"github.com/mxwllalpha/kodepos-worker/pkg/whttp"
)

// KodeposBaseURL is the base URL of the upstream postal-code API, e.g. the
// workers.dev deployment. There is no default: every environment points at
// its own deployment.
func KodeposBaseURL() (string, error) {
	var baseURL string
	if baseURL = os.Getenv("KODEPOS_BASE_URL"); baseURL == "" {
		return "", fmt.Errorf("missing KODEPOS_BASE_URL environment variable. Please check your environment.")
	}

	return baseURL, nil
}

// RequestTimeout reads KODEPOS_TIMEOUT_SECONDS, falling back to the default
// 10s on absent or unparseable values.
func RequestTimeout() time.Duration {
	raw := os.Getenv("KODEPOS_TIMEOUT_SECONDS")
	if raw == "" {
		return whttp.DefaultTimeout
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return whttp.DefaultTimeout
	}

	return time.Duration(seconds) * time.Second
}

func Port() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}

	return "8080"
}

// DatabaseURL is optional: when empty, the relay runs without lookup history.
func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// NewKodeposClient builds a client for the interactive CLI: identifying
// headers, no request logging.
func NewKodeposClient() (kodepos.Client, error) {
	baseURL, err := KodeposBaseURL()
	if err != nil {
		return nil, err
	}

	return kodepos.NewClient(whttp.NewClient(RequestTimeout()), baseURL), nil
}

// NewLoggingKodeposClient builds a client for the services, with outbound
// request logging.
func NewLoggingKodeposClient() (kodepos.Client, error) {
	baseURL, err := KodeposBaseURL()
	if err != nil {
		return nil, err
	}

	return kodepos.NewClient(whttp.NewLoggingClient(RequestTimeout()), baseURL), nil
}
