package notify

import (
	"context"
	"log/slog"
)

// Notification is a user-facing alert emitted by the timer engine and the
// focus-violation guard. Delivery is fire-and-forget; no receipt is tracked.
type Notification struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority int    `json:"priority"`
}

// Notifier delivers notifications to whatever chrome the host provides.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// LogNotifier writes notifications to the structured log. It is the default
// collaborator when no desktop notification bridge is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier backed by the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, note Notification) {
	n.logger.Info("notification",
		"title", note.Title,
		"message", note.Message,
		"priority", note.Priority,
	)
}
