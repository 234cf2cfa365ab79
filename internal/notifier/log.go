package notifier

import (
	"context"

	"github.com/Alceujrab/sisloc-sub000/internal/logger"
)

// LogNotifier writes events to the application log. Used in development and
// as the fallback when no delivery channel is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(ctx context.Context, event string, payload map[string]any) error {
	args := make([]any, 0, len(payload)*2+2)
	args = append(args, "event", event)
	for k, v := range payload {
		args = append(args, k, v)
	}
	logger.InfoContext(ctx, "Notification event", args...)
	return nil
}
