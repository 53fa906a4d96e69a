package reminder

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/amqp"
	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
)

var runAt = time.Date(2025, time.July, 1, 8, 0, 0, 0, time.UTC)

type staticDebts struct {
	debtors []ledger.Debtor
	err     error
	calls   int
	mu      sync.Mutex
}

func (s *staticDebts) GetOutstandingDebts(context.Context) ([]ledger.Debtor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.debtors, s.err
}

func (s *staticDebts) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type recordingPublisher struct {
	mu     sync.Mutex
	sent   []*amqp.DebtReminder
	failed map[string]bool
}

func (p *recordingPublisher) PublishDebtReminder(_ context.Context, msg *amqp.DebtReminder) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failed[msg.UserID] {
		return errors.New("broker unavailable")
	}
	p.sent = append(p.sent, msg)
	return nil
}

func user(id, name string) *models.User {
	return &models.User{ID: id, Name: name, Email: name + "@example.com"}
}

func TestRunOnce(t *testing.T) {
	alice, bob, carol := user("a", "alice"), user("b", "bob"), user("c", "carol")
	since := time.Date(2025, time.May, 3, 12, 0, 0, 0, time.UTC)
	source := &staticDebts{debtors: []ledger.Debtor{
		{User: bob, Debts: []ledger.Debt{
			{Counterparty: alice, Amount: 1500, Since: since},
			{Counterparty: carol, Amount: 205, Since: since.AddDate(0, 0, 1)},
		}},
		{User: carol, Debts: []ledger.Debt{{Counterparty: alice, Amount: 99, Since: since}}},
	}}
	pub := &recordingPublisher{failed: map[string]bool{"c": true}}
	m := metrics.New()

	job := NewJob(source, pub, WithMetrics(m), WithClock(func() time.Time { return runAt }))
	res, err := job.RunOnce(context.Background())

	require.NoError(t, err)
	require.Equal(t, Result{Debtors: 2, Sent: 1, Failed: 1}, res)

	require.Len(t, pub.sent, 1)
	msg := pub.sent[0]
	require.Equal(t, "b", msg.UserID)
	require.Equal(t, "bob@example.com", msg.Email)
	require.Equal(t, runAt, msg.GeneratedAt)
	require.Len(t, msg.Debts, 2)
	require.Equal(t, "alice", msg.Debts[0].CounterpartyName)
	require.True(t, msg.Debts[0].Amount.Equal(decimal.RequireFromString("15")))
	require.True(t, msg.Debts[1].Amount.Equal(decimal.RequireFromString("2.05")))
	require.True(t, msg.Total().Equal(decimal.RequireFromString("17.05")))

	require.Equal(t, 1.0, testutil.ToFloat64(m.RemindersSent()))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ReminderFailures()))
}

func TestRunOnce_SourceError(t *testing.T) {
	source := &staticDebts{err: errors.New("database is locked")}
	pub := &recordingPublisher{}

	_, err := NewJob(source, pub).RunOnce(context.Background())

	require.ErrorContains(t, err, "database is locked")
	require.Empty(t, pub.sent)
}

func TestRunOnce_NoDebtors(t *testing.T) {
	res, err := NewJob(&staticDebts{}, &recordingPublisher{}).RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, Result{}, res)
}

func TestRun_RunsImmediatelyAndStopsOnCancel(t *testing.T) {
	source := &staticDebts{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- NewJob(source, &recordingPublisher{}).Run(ctx, time.Hour) }()

	require.Eventually(t, func() bool { return source.Calls() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_Ticks(t *testing.T) {
	source := &staticDebts{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go NewJob(source, &recordingPublisher{}).Run(ctx, 10*time.Millisecond)

	require.Eventually(t, func() bool { return source.Calls() >= 3 }, 2*time.Second, 5*time.Millisecond)
}

func TestRunOnce_AgainstLedger(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	alice := models.NewUser("alice@example.com", "Alice", "hash")
	bob := models.NewUser("bob@example.com", "Bob", "hash")
	for _, u := range []*models.User{alice, bob} {
		require.NoError(t, store.CreateUser(ctx, u))
	}

	svc := ledger.New(store)
	_, err = svc.CreateExpense(ctx, alice.ID, ledger.ExpenseInput{
		Description:  "Dinner",
		Amount:       money.Cents(4000),
		Date:         runAt.AddDate(0, 0, -10),
		PaidByUserID: alice.ID,
		SplitType:    models.SplitEqual,
		Shares:       []calculator.Share{{UserID: alice.ID}, {UserID: bob.ID}},
	})
	require.NoError(t, err)

	pub := &recordingPublisher{}
	res, err := NewJob(svc, pub).RunOnce(ctx)

	require.NoError(t, err)
	require.Equal(t, Result{Debtors: 1, Sent: 1}, res)
	require.Equal(t, bob.ID, pub.sent[0].UserID)
	require.Equal(t, alice.ID, pub.sent[0].Debts[0].CounterpartyID)
	require.True(t, pub.sent[0].Debts[0].Amount.Equal(decimal.NewFromInt(20)))
}

func TestLogPublisher(t *testing.T) {
	require.NoError(t, LogPublisher{}.PublishDebtReminder(context.Background(), &amqp.DebtReminder{UserID: "u"}))
}
