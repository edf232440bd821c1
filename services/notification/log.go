package notification

import (
	"context"

	"resonance/config"

	"go.uber.org/zap"
)

// LogNotifier writes messages to the log instead of sending them.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Send(_ context.Context, msg Message) error {
	if msg.To == "" {
		n.Logger.Warn("Notification has no recipient, dropping", zap.String("kind", string(msg.Kind)))
		return nil
	}
	fields := []zap.Field{
		zap.String("kind", string(msg.Kind)),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	}
	// One-time codes stay out of production logs.
	if !config.IsProduction() {
		fields = append(fields, zap.String("body", msg.Body))
	}
	n.Logger.Info("Notification delivered", fields...)
	return nil
}
