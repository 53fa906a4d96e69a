package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/errs"
)

var errInternal = errors.New("internal error")

// toConnectError maps a ledger error kind to its RPC code. Errors of no
// known kind are logged and hidden behind CodeInternal.
func toConnectError(op string, err error) error {
	var code connect.Code
	switch {
	case errors.Is(err, errs.ErrValidation):
		code = connect.CodeInvalidArgument
	case errors.Is(err, errs.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, errs.ErrForbidden):
		code = connect.CodePermissionDenied
	case errors.Is(err, errs.ErrNotAuthenticated):
		code = connect.CodeUnauthenticated
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	default:
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, errInternal)
	}

	slog.Warn(op+" rejected", "code", code.String(), "error", err)
	return connect.NewError(code, err)
}
