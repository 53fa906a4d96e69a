package reminder

import (
	"context"
	"log/slog"

	"github.com/mmynk/splitledger/internal/amqp"
)

// LogPublisher writes reminders to the log instead of a broker. The worker
// uses it when no AMQP URL is configured.
type LogPublisher struct{}

// PublishDebtReminder logs the reminder at info level and never fails.
func (LogPublisher) PublishDebtReminder(ctx context.Context, msg *amqp.DebtReminder) error {
	slog.InfoContext(ctx, "Debt reminder (dry run)",
		"user_id", msg.UserID,
		"email", msg.Email,
		"debts", len(msg.Debts),
		"total", msg.Total().StringFixed(2),
	)
	return nil
}
