package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

// BalanceServiceName is the fully-qualified name of the BalanceService.
const BalanceServiceName = "splitledger.v1.BalanceService"

// Procedure paths of the BalanceService.
const (
	BalanceServiceGetPairwiseBalanceProcedure = "/splitledger.v1.BalanceService/GetPairwiseBalance"
	BalanceServiceGetPersonalBalanceProcedure = "/splitledger.v1.BalanceService/GetPersonalBalance"
	BalanceServiceGetContactsProcedure        = "/splitledger.v1.BalanceService/GetContacts"
	BalanceServiceGetMonthlySpendProcedure    = "/splitledger.v1.BalanceService/GetMonthlySpend"
	BalanceServiceGetTotalSpendProcedure      = "/splitledger.v1.BalanceService/GetTotalSpend"
	BalanceServiceSearchUsersProcedure        = "/splitledger.v1.BalanceService/SearchUsers"
)

// BalanceServiceHandler serves personal balances and spend summaries.
type BalanceServiceHandler interface {
	GetPairwiseBalance(context.Context, *connect.Request[api.GetPairwiseBalanceRequest]) (*connect.Response[api.GetPairwiseBalanceResponse], error)
	GetPersonalBalance(context.Context, *connect.Request[api.GetPersonalBalanceRequest]) (*connect.Response[api.GetPersonalBalanceResponse], error)
	GetContacts(context.Context, *connect.Request[api.GetContactsRequest]) (*connect.Response[api.GetContactsResponse], error)
	GetMonthlySpend(context.Context, *connect.Request[api.GetMonthlySpendRequest]) (*connect.Response[api.GetMonthlySpendResponse], error)
	GetTotalSpend(context.Context, *connect.Request[api.GetTotalSpendRequest]) (*connect.Response[api.GetTotalSpendResponse], error)
	SearchUsers(context.Context, *connect.Request[api.SearchUsersRequest]) (*connect.Response[api.SearchUsersResponse], error)
}

// NewBalanceServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewBalanceServiceHandler(svc BalanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	getPairwiseBalanceHandler := connect.NewUnaryHandler(BalanceServiceGetPairwiseBalanceProcedure, svc.GetPairwiseBalance, opts...)
	getPersonalBalanceHandler := connect.NewUnaryHandler(BalanceServiceGetPersonalBalanceProcedure, svc.GetPersonalBalance, opts...)
	getContactsHandler := connect.NewUnaryHandler(BalanceServiceGetContactsProcedure, svc.GetContacts, opts...)
	getMonthlySpendHandler := connect.NewUnaryHandler(BalanceServiceGetMonthlySpendProcedure, svc.GetMonthlySpend, opts...)
	getTotalSpendHandler := connect.NewUnaryHandler(BalanceServiceGetTotalSpendProcedure, svc.GetTotalSpend, opts...)
	searchUsersHandler := connect.NewUnaryHandler(BalanceServiceSearchUsersProcedure, svc.SearchUsers, opts...)
	return "/" + BalanceServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BalanceServiceGetPairwiseBalanceProcedure:
			getPairwiseBalanceHandler.ServeHTTP(w, r)
		case BalanceServiceGetPersonalBalanceProcedure:
			getPersonalBalanceHandler.ServeHTTP(w, r)
		case BalanceServiceGetContactsProcedure:
			getContactsHandler.ServeHTTP(w, r)
		case BalanceServiceGetMonthlySpendProcedure:
			getMonthlySpendHandler.ServeHTTP(w, r)
		case BalanceServiceGetTotalSpendProcedure:
			getTotalSpendHandler.ServeHTTP(w, r)
		case BalanceServiceSearchUsersProcedure:
			searchUsersHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedBalanceServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBalanceServiceHandler struct{}

func (UnimplementedBalanceServiceHandler) GetPairwiseBalance(context.Context, *connect.Request[api.GetPairwiseBalanceRequest]) (*connect.Response[api.GetPairwiseBalanceResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(BalanceServiceGetPairwiseBalanceProcedure))
}

func (UnimplementedBalanceServiceHandler) GetPersonalBalance(context.Context, *connect.Request[api.GetPersonalBalanceRequest]) (*connect.Response[api.GetPersonalBalanceResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(BalanceServiceGetPersonalBalanceProcedure))
}

func (UnimplementedBalanceServiceHandler) GetContacts(context.Context, *connect.Request[api.GetContactsRequest]) (*connect.Response[api.GetContactsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(BalanceServiceGetContactsProcedure))
}

func (UnimplementedBalanceServiceHandler) GetMonthlySpend(context.Context, *connect.Request[api.GetMonthlySpendRequest]) (*connect.Response[api.GetMonthlySpendResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(BalanceServiceGetMonthlySpendProcedure))
}

func (UnimplementedBalanceServiceHandler) GetTotalSpend(context.Context, *connect.Request[api.GetTotalSpendRequest]) (*connect.Response[api.GetTotalSpendResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(BalanceServiceGetTotalSpendProcedure))
}

func (UnimplementedBalanceServiceHandler) SearchUsers(context.Context, *connect.Request[api.SearchUsersRequest]) (*connect.Response[api.SearchUsersResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(BalanceServiceSearchUsersProcedure))
}

// BalanceServiceClient is a client for the BalanceService.
type BalanceServiceClient interface {
	GetPairwiseBalance(context.Context, *connect.Request[api.GetPairwiseBalanceRequest]) (*connect.Response[api.GetPairwiseBalanceResponse], error)
	GetPersonalBalance(context.Context, *connect.Request[api.GetPersonalBalanceRequest]) (*connect.Response[api.GetPersonalBalanceResponse], error)
	GetContacts(context.Context, *connect.Request[api.GetContactsRequest]) (*connect.Response[api.GetContactsResponse], error)
	GetMonthlySpend(context.Context, *connect.Request[api.GetMonthlySpendRequest]) (*connect.Response[api.GetMonthlySpendResponse], error)
	GetTotalSpend(context.Context, *connect.Request[api.GetTotalSpendRequest]) (*connect.Response[api.GetTotalSpendResponse], error)
	SearchUsers(context.Context, *connect.Request[api.SearchUsersRequest]) (*connect.Response[api.SearchUsersResponse], error)
}

// NewBalanceServiceClient constructs a client for the BalanceService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewBalanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BalanceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &balanceServiceClient{
		getPairwiseBalance: connect.NewClient[api.GetPairwiseBalanceRequest, api.GetPairwiseBalanceResponse](httpClient, baseURL+BalanceServiceGetPairwiseBalanceProcedure, opts...),
		getPersonalBalance: connect.NewClient[api.GetPersonalBalanceRequest, api.GetPersonalBalanceResponse](httpClient, baseURL+BalanceServiceGetPersonalBalanceProcedure, opts...),
		getContacts:        connect.NewClient[api.GetContactsRequest, api.GetContactsResponse](httpClient, baseURL+BalanceServiceGetContactsProcedure, opts...),
		getMonthlySpend:    connect.NewClient[api.GetMonthlySpendRequest, api.GetMonthlySpendResponse](httpClient, baseURL+BalanceServiceGetMonthlySpendProcedure, opts...),
		getTotalSpend:      connect.NewClient[api.GetTotalSpendRequest, api.GetTotalSpendResponse](httpClient, baseURL+BalanceServiceGetTotalSpendProcedure, opts...),
		searchUsers:        connect.NewClient[api.SearchUsersRequest, api.SearchUsersResponse](httpClient, baseURL+BalanceServiceSearchUsersProcedure, opts...),
	}
}

type balanceServiceClient struct {
	getPairwiseBalance *connect.Client[api.GetPairwiseBalanceRequest, api.GetPairwiseBalanceResponse]
	getPersonalBalance *connect.Client[api.GetPersonalBalanceRequest, api.GetPersonalBalanceResponse]
	getContacts        *connect.Client[api.GetContactsRequest, api.GetContactsResponse]
	getMonthlySpend    *connect.Client[api.GetMonthlySpendRequest, api.GetMonthlySpendResponse]
	getTotalSpend      *connect.Client[api.GetTotalSpendRequest, api.GetTotalSpendResponse]
	searchUsers        *connect.Client[api.SearchUsersRequest, api.SearchUsersResponse]
}

func (c *balanceServiceClient) GetPairwiseBalance(ctx context.Context, req *connect.Request[api.GetPairwiseBalanceRequest]) (*connect.Response[api.GetPairwiseBalanceResponse], error) {
	return c.getPairwiseBalance.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetPersonalBalance(ctx context.Context, req *connect.Request[api.GetPersonalBalanceRequest]) (*connect.Response[api.GetPersonalBalanceResponse], error) {
	return c.getPersonalBalance.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetContacts(ctx context.Context, req *connect.Request[api.GetContactsRequest]) (*connect.Response[api.GetContactsResponse], error) {
	return c.getContacts.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetMonthlySpend(ctx context.Context, req *connect.Request[api.GetMonthlySpendRequest]) (*connect.Response[api.GetMonthlySpendResponse], error) {
	return c.getMonthlySpend.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetTotalSpend(ctx context.Context, req *connect.Request[api.GetTotalSpendRequest]) (*connect.Response[api.GetTotalSpendResponse], error) {
	return c.getTotalSpend.CallUnary(ctx, req)
}

func (c *balanceServiceClient) SearchUsers(ctx context.Context, req *connect.Request[api.SearchUsersRequest]) (*connect.Response[api.SearchUsersResponse], error) {
	return c.searchUsers.CallUnary(ctx, req)
}
