package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

const testPassword = "correct-horse"

// testServer runs every service over HTTP against a temp database.
type testServer struct {
	url     string
	metrics *metrics.Metrics
	auth    apiconnect.AuthServiceClient
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "rpc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	m := metrics.New()
	mux := http.NewServeMux()
	Routes{
		Ledger:        ledger.New(store),
		Users:         store,
		Authenticator: auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost),
		JWT:           auth.NewJWTManager("rpc-test-secret-0123456789", time.Hour),
		Metrics:       m,
		Logger:        slog.New(slog.DiscardHandler),
	}.Mount(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &testServer{
		url:     srv.URL,
		metrics: m,
		auth:    apiconnect.NewAuthServiceClient(http.DefaultClient, srv.URL),
	}
}

// session is a registered user with clients that send their token.
type session struct {
	user       api.User
	token      string
	expenses   apiconnect.ExpenseServiceClient
	settlement apiconnect.SettlementServiceClient
	groups     apiconnect.GroupServiceClient
	balances   apiconnect.BalanceServiceClient
	auth       apiconnect.AuthServiceClient
}

func (ts *testServer) register(t *testing.T, name string) *session {
	t.Helper()
	resp, err := ts.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:    strings.ToLower(name) + "@example.com",
		Name:     name,
		Password: testPassword,
	}))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Msg.Token)
	return ts.session(resp.Msg.User, resp.Msg.Token)
}

func (ts *testServer) session(user api.User, token string) *session {
	opt := connect.WithInterceptors(bearer(token))
	return &session{
		user:       user,
		token:      token,
		expenses:   apiconnect.NewExpenseServiceClient(http.DefaultClient, ts.url, opt),
		settlement: apiconnect.NewSettlementServiceClient(http.DefaultClient, ts.url, opt),
		groups:     apiconnect.NewGroupServiceClient(http.DefaultClient, ts.url, opt),
		balances:   apiconnect.NewBalanceServiceClient(http.DefaultClient, ts.url, opt),
		auth:       apiconnect.NewAuthServiceClient(http.DefaultClient, ts.url, opt),
	}
}

func bearer(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if token != "" {
				req.Header().Set("Authorization", "Bearer "+token)
			}
			return next(ctx, req)
		}
	}
}

func requireCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, want, connect.CodeOf(err), "error: %v", err)
}
