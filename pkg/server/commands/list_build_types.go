package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/buildgrid/buildgrid/internal/authz"
	"github.com/buildgrid/buildgrid/pkg/connection"
	"github.com/buildgrid/buildgrid/pkg/encoder"
	"github.com/buildgrid/buildgrid/pkg/logger"
	"github.com/buildgrid/buildgrid/pkg/pagination"
	"github.com/buildgrid/buildgrid/pkg/storage"
	"github.com/buildgrid/buildgrid/pkg/types"
)

type ListBuildTypesRequest struct {
	ProjectID string
	Page      pagination.Arguments
}

type ListBuildTypesResponse struct {
	Connection connection.Connection[storage.BuildType, types.BuildTypeNode, types.ProjectRef]

	Nodes      []types.BuildTypeNode
	Errors     []connection.EdgeError
	NextCursor string
}

type ListBuildTypesQuery struct {
	backend    storage.BuildTypesBackend
	authFilter authz.Filter
	codec      *encoder.CursorCodec
	logger     logger.Logger
}

type ListBuildTypesQueryOption func(*ListBuildTypesQuery)

func WithListBuildTypesQueryLogger(l logger.Logger) ListBuildTypesQueryOption {
	return func(q *ListBuildTypesQuery) {
		q.logger = l
	}
}

func WithListBuildTypesQueryAuthFilter(f authz.Filter) ListBuildTypesQueryOption {
	return func(q *ListBuildTypesQuery) {
		q.authFilter = f
	}
}

func NewListBuildTypesQuery(backend storage.BuildTypesBackend, codec *encoder.CursorCodec, opts ...ListBuildTypesQueryOption) *ListBuildTypesQuery {
	q := &ListBuildTypesQuery{
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

func (q *ListBuildTypesQuery) Execute(ctx context.Context, req *ListBuildTypesRequest) (*ListBuildTypesResponse, error) {
	ctx, span := tracer.Start(ctx, "ListBuildTypesQuery.Execute")
	defer span.End()

	buildTypes, err := q.backend.ListBuildTypes(ctx, req.ProjectID)
	if err != nil {
		return nil, backendError("list build types", err)
	}

	candidates := make([]storage.BuildType, 0, len(buildTypes))
	for _, bt := range buildTypes {
		visible, err := q.authFilter.CanView(ctx, authz.ResourceBuildType, bt.ID)
		if err != nil || !visible {
			continue
		}
		candidates = append(candidates, bt)
	}

	conn := connection.NewPaginating(candidates, buildTypeNode, buildTypeProjectRef, boundPage(req.Page), q.codec)
	result := conn.Edges()

	observePage("buildTypes", result.Window, len(result.Errors))
	q.logger.DebugWithContext(ctx, "served build types page",
		zap.String("project_id", req.ProjectID),
		zap.Int("candidates", len(candidates)),
		zap.Int("window", result.Window.Len()),
	)

	return &ListBuildTypesResponse{
		Connection: conn,
		Nodes:      result.Nodes,
		Errors:     result.Errors,
		NextCursor: nextCursor(q.codec, result.Window, len(candidates)),
	}, nil
}

func buildTypeNode(bt storage.BuildType) (types.BuildTypeNode, error) {
	return types.BuildTypeNode{
		ID:      bt.ID,
		Name:    bt.Name,
		Project: &types.ProjectRef{ID: bt.ProjectID},
		Paused:  bt.Paused,
	}, nil
}

func buildTypeProjectRef(bt storage.BuildType) types.ProjectRef {
	return types.ProjectRef{ID: bt.ProjectID}
}
