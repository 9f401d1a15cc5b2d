package notify

import (
	"context"

	"github.com/dtroode/paperdesk/internal/logger"
	"github.com/dtroode/paperdesk/internal/model"
)

// LogDeliverer writes messages to the log instead of sending them.
// It is used when no mail server is configured.
type LogDeliverer struct {
	logger *logger.Logger
}

func NewLogDeliverer(logger *logger.Logger) *LogDeliverer {
	return &LogDeliverer{logger: logger}
}

func (l *LogDeliverer) Deliver(_ context.Context, msg model.Message) error {
	l.logger.Info("Notify: message",
		"from", msg.From,
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body)
	return nil
}
