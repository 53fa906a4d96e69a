package service

import (
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// Routes holds what the RPC services need. Metrics may be nil.
type Routes struct {
	Ledger        *ledger.Service
	Users         storage.UserStore
	Authenticator auth.Authenticator
	JWT           *auth.JWTManager
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
}

// Mount registers every Connect service on mux. The auth service accepts
// anonymous calls; all others require a bearer token.
func (r Routes) Mount(mux *http.ServeMux) {
	var base []connect.Interceptor
	if r.Metrics != nil {
		base = append(base, middleware.MetricsInterceptor(r.Metrics))
	}
	public := connect.WithInterceptors(append(base[:len(base):len(base)],
		middleware.OptionalAuth(r.JWT),
		middleware.LoggingInterceptor(),
	)...)
	protected := connect.WithInterceptors(append(base[:len(base):len(base)],
		middleware.RequireAuth(r.JWT),
		middleware.LoggingInterceptor(),
	)...)

	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(r.Authenticator, r.JWT, r.Users, logger), public))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(r.Ledger), protected))
	mux.Handle(apiconnect.NewSettlementServiceHandler(NewSettlementService(r.Ledger), protected))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(r.Ledger), protected))
	mux.Handle(apiconnect.NewBalanceServiceHandler(NewBalanceService(r.Ledger), protected))
}
