package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

// SettlementServiceName is the fully-qualified name of the SettlementService.
const SettlementServiceName = "splitledger.v1.SettlementService"

// Procedure paths of the SettlementService.
const (
	SettlementServiceCreateSettlementProcedure     = "/splitledger.v1.SettlementService/CreateSettlement"
	SettlementServiceListGroupSettlementsProcedure = "/splitledger.v1.SettlementService/ListGroupSettlements"
)

// SettlementServiceHandler records direct payments between users.
type SettlementServiceHandler interface {
	CreateSettlement(context.Context, *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error)
	ListGroupSettlements(context.Context, *connect.Request[api.ListGroupSettlementsRequest]) (*connect.Response[api.ListGroupSettlementsResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	createSettlementHandler := connect.NewUnaryHandler(SettlementServiceCreateSettlementProcedure, svc.CreateSettlement, opts...)
	listGroupSettlementsHandler := connect.NewUnaryHandler(SettlementServiceListGroupSettlementsProcedure, svc.ListGroupSettlements, opts...)
	return "/" + SettlementServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SettlementServiceCreateSettlementProcedure:
			createSettlementHandler.ServeHTTP(w, r)
		case SettlementServiceListGroupSettlementsProcedure:
			listGroupSettlementsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedSettlementServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSettlementServiceHandler struct{}

func (UnimplementedSettlementServiceHandler) CreateSettlement(context.Context, *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(SettlementServiceCreateSettlementProcedure))
}

func (UnimplementedSettlementServiceHandler) ListGroupSettlements(context.Context, *connect.Request[api.ListGroupSettlementsRequest]) (*connect.Response[api.ListGroupSettlementsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(SettlementServiceListGroupSettlementsProcedure))
}

// SettlementServiceClient is a client for the SettlementService.
type SettlementServiceClient interface {
	CreateSettlement(context.Context, *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error)
	ListGroupSettlements(context.Context, *connect.Request[api.ListGroupSettlementsRequest]) (*connect.Response[api.ListGroupSettlementsResponse], error)
}

// NewSettlementServiceClient constructs a client for the SettlementService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &settlementServiceClient{
		createSettlement:     connect.NewClient[api.CreateSettlementRequest, api.CreateSettlementResponse](httpClient, baseURL+SettlementServiceCreateSettlementProcedure, opts...),
		listGroupSettlements: connect.NewClient[api.ListGroupSettlementsRequest, api.ListGroupSettlementsResponse](httpClient, baseURL+SettlementServiceListGroupSettlementsProcedure, opts...),
	}
}

type settlementServiceClient struct {
	createSettlement     *connect.Client[api.CreateSettlementRequest, api.CreateSettlementResponse]
	listGroupSettlements *connect.Client[api.ListGroupSettlementsRequest, api.ListGroupSettlementsResponse]
}

func (c *settlementServiceClient) CreateSettlement(ctx context.Context, req *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	return c.createSettlement.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ListGroupSettlements(ctx context.Context, req *connect.Request[api.ListGroupSettlementsRequest]) (*connect.Response[api.ListGroupSettlementsResponse], error) {
	return c.listGroupSettlements.CallUnary(ctx, req)
}
