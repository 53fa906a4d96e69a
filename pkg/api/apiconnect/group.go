package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

// GroupServiceName is the fully-qualified name of the GroupService.
const GroupServiceName = "splitledger.v1.GroupService"

// Procedure paths of the GroupService.
const (
	GroupServiceCreateGroupProcedure                = "/splitledger.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure                   = "/splitledger.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure                 = "/splitledger.v1.GroupService/ListGroups"
	GroupServiceGetGroupBalancesProcedure           = "/splitledger.v1.GroupService/GetGroupBalances"
	GroupServiceGetGroupSettlementBalancesProcedure = "/splitledger.v1.GroupService/GetGroupSettlementBalances"
)

// GroupServiceHandler manages groups and their netted balances.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
	GetGroupSettlementBalances(context.Context, *connect.Request[api.GetGroupSettlementBalancesRequest]) (*connect.Response[api.GetGroupSettlementBalancesResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	createGroupHandler := connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...)
	getGroupHandler := connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...)
	listGroupsHandler := connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...)
	getGroupBalancesHandler := connect.NewUnaryHandler(GroupServiceGetGroupBalancesProcedure, svc.GetGroupBalances, opts...)
	getGroupSettlementBalancesHandler := connect.NewUnaryHandler(GroupServiceGetGroupSettlementBalancesProcedure, svc.GetGroupSettlementBalances, opts...)
	return "/" + GroupServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case GroupServiceCreateGroupProcedure:
			createGroupHandler.ServeHTTP(w, r)
		case GroupServiceGetGroupProcedure:
			getGroupHandler.ServeHTTP(w, r)
		case GroupServiceListGroupsProcedure:
			listGroupsHandler.ServeHTTP(w, r)
		case GroupServiceGetGroupBalancesProcedure:
			getGroupBalancesHandler.ServeHTTP(w, r)
		case GroupServiceGetGroupSettlementBalancesProcedure:
			getGroupSettlementBalancesHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedGroupServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedGroupServiceHandler struct{}

func (UnimplementedGroupServiceHandler) CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(GroupServiceCreateGroupProcedure))
}

func (UnimplementedGroupServiceHandler) GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(GroupServiceGetGroupProcedure))
}

func (UnimplementedGroupServiceHandler) ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(GroupServiceListGroupsProcedure))
}

func (UnimplementedGroupServiceHandler) GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(GroupServiceGetGroupBalancesProcedure))
}

func (UnimplementedGroupServiceHandler) GetGroupSettlementBalances(context.Context, *connect.Request[api.GetGroupSettlementBalancesRequest]) (*connect.Response[api.GetGroupSettlementBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented(GroupServiceGetGroupSettlementBalancesProcedure))
}

// GroupServiceClient is a client for the GroupService.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
	GetGroupSettlementBalances(context.Context, *connect.Request[api.GetGroupSettlementBalancesRequest]) (*connect.Response[api.GetGroupSettlementBalancesResponse], error)
}

// NewGroupServiceClient constructs a client for the GroupService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &groupServiceClient{
		createGroup:                connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:                   connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:                 connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		getGroupBalances:           connect.NewClient[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse](httpClient, baseURL+GroupServiceGetGroupBalancesProcedure, opts...),
		getGroupSettlementBalances: connect.NewClient[api.GetGroupSettlementBalancesRequest, api.GetGroupSettlementBalancesResponse](httpClient, baseURL+GroupServiceGetGroupSettlementBalancesProcedure, opts...),
	}
}

type groupServiceClient struct {
	createGroup                *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup                   *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listGroups                 *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	getGroupBalances           *connect.Client[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse]
	getGroupSettlementBalances *connect.Client[api.GetGroupSettlementBalancesRequest, api.GetGroupSettlementBalancesResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return c.getGroupBalances.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroupSettlementBalances(ctx context.Context, req *connect.Request[api.GetGroupSettlementBalancesRequest]) (*connect.Response[api.GetGroupSettlementBalancesResponse], error) {
	return c.getGroupSettlementBalances.CallUnary(ctx, req)
}
