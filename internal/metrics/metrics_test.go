package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveRPC(t *testing.T) {
	m := New()
	m.ObserveRPC("/splitledger.v1.GroupService/GetGroup", "ok", 20*time.Millisecond)
	m.ObserveRPC("/splitledger.v1.GroupService/GetGroup", "ok", 10*time.Millisecond)
	m.ObserveRPC("/splitledger.v1.GroupService/GetGroup", "not_found", time.Millisecond)

	require.Equal(t, 2.0, testutil.ToFloat64(m.rpcRequests.WithLabelValues("/splitledger.v1.GroupService/GetGroup", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.rpcRequests.WithLabelValues("/splitledger.v1.GroupService/GetGroup", "not_found")))
}

func TestObserveReminderRun(t *testing.T) {
	m := New()
	m.ObserveReminderRun(3, 2, 1)
	m.ObserveReminderRun(1, 1, 0)

	require.Equal(t, 2.0, testutil.ToFloat64(m.reminderRuns))
	require.Equal(t, 3.0, testutil.ToFloat64(m.remindersSent))
	require.Equal(t, 1.0, testutil.ToFloat64(m.reminderFailures))
	require.Equal(t, 1.0, testutil.ToFloat64(m.debtorsOutstanding))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRPC("/splitledger.v1.BalanceService/GetContacts", "ok", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), "splitledger_rpc_requests_total"))
	require.True(t, strings.Contains(string(body), "go_goroutines"))
}

func TestServe(t *testing.T) {
	m := New()
	m.ObserveReminderRun(2, 2, 0)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "splitledger_reminder_published_total 2")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
