package alert

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

type Notifier interface {
	Msg(ctx context.Context, msg string, args ...interface{}) error
	Recover(ctx context.Context)
}

// NewSlogNotifier reports through the process logger. The services use it to
// surface upstream failures and recovered panics without tearing down.
func NewSlogNotifier() *slogNotifier {
	return &slogNotifier{}
}

type slogNotifier struct{}

var _ Notifier = (*slogNotifier)(nil)

func (n *slogNotifier) Msg(ctx context.Context, msg string, args ...interface{}) error {
	slog.ErrorContext(ctx, fmt.Sprintf(msg, args...))
	return nil
}

func (n *slogNotifier) Recover(ctx context.Context) {
	if r := recover(); r != nil {
		slog.ErrorContext(ctx, fmt.Sprintf("recovered from panic: %v", r), "callstack", getCallstack())
	}
}

func getCallstack() string {
	pcs := make([]uintptr, 20)
	depth := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:depth])

	var sb strings.Builder
	for f, more := frames.Next(); more; f, more = frames.Next() {
		sb.WriteString(fmt.Sprintf("%s: %d\n", f.Function, f.Line))
	}

	return sb.String()
}
