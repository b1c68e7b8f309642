package commands

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/buildgrid/buildgrid/internal/authz"
	"github.com/buildgrid/buildgrid/pkg/connection"
	"github.com/buildgrid/buildgrid/pkg/encoder"
	"github.com/buildgrid/buildgrid/pkg/logger"
	"github.com/buildgrid/buildgrid/pkg/pagination"
	"github.com/buildgrid/buildgrid/pkg/storage"
	"github.com/buildgrid/buildgrid/pkg/types"
)

var tracer trace.Tracer = otel.Tracer("buildgrid/pkg/server/commands")

type ListAgentsRequest struct {
	PoolID         string
	OnlyAuthorized bool
	Page           pagination.Arguments
}

type ListAgentsResponse struct {
	// Connection stays available for composed sub-views; its edges are
	// already resolved.
	Connection connection.Connection[storage.Agent, types.AgentNode, types.AgentEnvironment]

	Nodes      []types.AgentNode
	Errors     []connection.EdgeError
	NextCursor string
}

type ListAgentsQuery struct {
	backend    storage.AgentsBackend
	authFilter authz.Filter
	codec      *encoder.CursorCodec
	logger     logger.Logger
}

type ListAgentsQueryOption func(*ListAgentsQuery)

func WithListAgentsQueryLogger(l logger.Logger) ListAgentsQueryOption {
	return func(q *ListAgentsQuery) {
		q.logger = l
	}
}

func WithListAgentsQueryAuthFilter(f authz.Filter) ListAgentsQueryOption {
	return func(q *ListAgentsQuery) {
		q.authFilter = f
	}
}

func NewListAgentsQuery(backend storage.AgentsBackend, codec *encoder.CursorCodec, opts ...ListAgentsQueryOption) *ListAgentsQuery {
	q := &ListAgentsQuery{
		backend:    backend,
		authFilter: authz.NewAllowAll(),
		codec:      codec,
		logger:     logger.NewNoopLogger(),
	}

	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *ListAgentsQuery) Execute(ctx context.Context, req *ListAgentsRequest) (*ListAgentsResponse, error) {
	ctx, span := tracer.Start(ctx, "ListAgentsQuery.Execute")
	defer span.End()

	requestID := uuid.NewString()

	agents, err := q.backend.ListAgents(ctx, storage.ListAgentsFilter{
		PoolID:         req.PoolID,
		OnlyAuthorized: req.OnlyAuthorized,
	})
	if err != nil {
		return nil, backendError("list agents", err)
	}

	candidates := make([]storage.Agent, 0, len(agents))
	for _, agent := range agents {
		visible, err := q.authFilter.CanView(ctx, authz.ResourceAgent, agent.ID)
		if err != nil || !visible {
			continue
		}
		candidates = append(candidates, agent)
	}

	conn := connection.NewPaginating(candidates, agentNode, agentEnvironment, boundPage(req.Page), q.codec)
	result := conn.Edges()

	observePage("agents", result.Window, len(result.Errors))
	q.logger.DebugWithContext(ctx, "served agents page",
		zap.String("request_id", requestID),
		zap.Int("candidates", len(candidates)),
		zap.Int("window", result.Window.Len()),
		zap.Int("edge_failures", len(result.Errors)),
	)

	return &ListAgentsResponse{
		Connection: conn,
		Nodes:      result.Nodes,
		Errors:     result.Errors,
		NextCursor: nextCursor(q.codec, result.Window, len(candidates)),
	}, nil
}

func agentNode(a storage.Agent) (types.AgentNode, error) {
	return types.AgentNode{
		ID:         a.ID,
		Name:       a.Name,
		OS:         a.OS,
		Enabled:    a.Enabled,
		Authorized: a.Authorized,
		Pool:       &types.PoolRef{ID: a.PoolID},
	}, nil
}

func agentEnvironment(a storage.Agent) types.AgentEnvironment {
	return types.AgentEnvironment{PoolID: a.PoolID, OS: a.OS}
}
