// Package reminder periodically finds users with unpaid personal debt and
// publishes one reminder per user.
package reminder

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmynk/splitledger/internal/amqp"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/metrics"
)

// DebtSource lists every user who still owes money.
type DebtSource interface {
	GetOutstandingDebts(ctx context.Context) ([]ledger.Debtor, error)
}

// Publisher delivers a reminder to whoever sends the mail.
type Publisher interface {
	PublishDebtReminder(ctx context.Context, msg *amqp.DebtReminder) error
}

// Result summarizes one run.
type Result struct {
	Debtors int
	Sent    int
	Failed  int
}

// Job sends one reminder per user with outstanding debts.
type Job struct {
	debts     DebtSource
	publisher Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

// Option configures a Job.
type Option func(*Job)

// WithMetrics reports each run to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(j *Job) { j.metrics = m }
}

// WithClock overrides the time stamped on reminders.
func WithClock(now func() time.Time) Option {
	return func(j *Job) { j.now = now }
}

// NewJob creates a Job that reads debts from debts and sends them through publisher.
func NewJob(debts DebtSource, publisher Publisher, opts ...Option) *Job {
	j := &Job{debts: debts, publisher: publisher, now: time.Now}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// RunOnce publishes a reminder for every current debtor. A failed publish is
// logged and counted but does not stop the run; only failing to load the
// debts is returned as an error.
func (j *Job) RunOnce(ctx context.Context) (Result, error) {
	debtors, err := j.debts.GetOutstandingDebts(ctx)
	if err != nil {
		return Result{}, err
	}

	res := Result{Debtors: len(debtors)}
	generatedAt := j.now().UTC()
	for _, d := range debtors {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := j.publisher.PublishDebtReminder(ctx, toMessage(d, generatedAt)); err != nil {
			slog.Error("Failed to publish debt reminder", "user_id", d.User.ID, "error", err)
			res.Failed++
			continue
		}
		res.Sent++
	}

	if j.metrics != nil {
		j.metrics.ObserveReminderRun(res.Debtors, res.Sent, res.Failed)
	}
	return res, nil
}

// Run executes the job immediately and then every interval until ctx is done.
// A failed run is logged and retried on the next tick.
func (j *Job) Run(ctx context.Context, interval time.Duration) error {
	j.runLogged(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			j.runLogged(ctx)
		}
	}
}

func (j *Job) runLogged(ctx context.Context) {
	start := time.Now()
	res, err := j.RunOnce(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("Reminder run failed", "error", err)
		}
		return
	}
	slog.Info("Reminder run complete",
		"debtors", res.Debtors,
		"sent", res.Sent,
		"failed", res.Failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func toMessage(d ledger.Debtor, generatedAt time.Time) *amqp.DebtReminder {
	msg := &amqp.DebtReminder{
		UserID:      d.User.ID,
		Name:        d.User.Name,
		Email:       d.User.Email,
		Debts:       make([]amqp.ReminderDebt, len(d.Debts)),
		GeneratedAt: generatedAt,
	}
	for i, debt := range d.Debts {
		msg.Debts[i] = amqp.ReminderDebt{
			CounterpartyID:   debt.Counterparty.ID,
			CounterpartyName: debt.Counterparty.Name,
			Amount:           debt.Amount.Decimal(),
			Since:            debt.Since.UTC(),
		}
	}
	return msg
}
