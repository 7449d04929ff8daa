package notification

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier records pushes instead of sending them. Used when no Firebase
// credentials are configured.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Send(_ context.Context, token, title, body string, data map[string]string) error {
	n.Logger.Info("push notification",
		zap.String("token", token),
		zap.String("title", title),
		zap.String("body", body),
		zap.Any("data", data))
	return nil
}
