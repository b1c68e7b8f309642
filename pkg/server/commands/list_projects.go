package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/buildgrid/buildgrid/internal/authz"
	"github.com/buildgrid/buildgrid/pkg/connection"
	"github.com/buildgrid/buildgrid/pkg/encoder"
	"github.com/buildgrid/buildgrid/pkg/holder"
	"github.com/buildgrid/buildgrid/pkg/logger"
	"github.com/buildgrid/buildgrid/pkg/pagination"
	"github.com/buildgrid/buildgrid/pkg/storage"
	"github.com/buildgrid/buildgrid/pkg/types"
)

type ListProjectsRequest struct {
	// IncludeArchived keeps archived projects in the listing.
	IncludeArchived bool
	Page            pagination.Arguments
}

type ListProjectsResponse struct {
	Connection connection.Connection[storage.Project, types.ProjectNode, types.ProjectRef]

	Nodes      []types.ProjectNode
	Errors     []connection.EdgeError
	NextCursor string
}

// ListProjectsQuery lists the projects visible to the caller. Visibility
// grants are expanded through the ancestor chain, which produces the same
// project several times; the stream is deduplicated before pagination so
// repeats never eat into the requested window.
type ListProjectsQuery struct {
	backend    storage.ProjectsBackend
	authFilter authz.Filter
	codec      *encoder.CursorCodec
	logger     logger.Logger
}

type ListProjectsQueryOption func(*ListProjectsQuery)

func WithListProjectsQueryLogger(l logger.Logger) ListProjectsQueryOption {
	return func(q *ListProjectsQuery) {
		q.logger = l
	}
}

func WithListProjectsQueryAuthFilter(f authz.Filter) ListProjectsQueryOption {
	return func(q *ListProjectsQuery) {
		q.authFilter = f
	}
}

func NewListProjectsQuery(backend storage.ProjectsBackend, codec *encoder.CursorCodec, opts ...ListProjectsQueryOption) *ListProjectsQuery {
	q := &ListProjectsQuery{
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

func (q *ListProjectsQuery) Execute(ctx context.Context, req *ListProjectsRequest) (*ListProjectsResponse, error) {
	ctx, span := tracer.Start(ctx, "ListProjectsQuery.Execute")
	defer span.End()

	candidates, err := q.visibleProjects(ctx, req)
	if err != nil {
		return nil, err
	}

	conn := connection.NewPaginating(candidates, projectNode, projectRef, boundPage(req.Page), q.codec)
	result := conn.Edges()

	observePage("projects", result.Window, len(result.Errors))
	q.logger.DebugWithContext(ctx, "served projects page",
		zap.Int("candidates", len(candidates)),
		zap.Int("window", result.Window.Len()),
	)

	return &ListProjectsResponse{
		Connection: conn,
		Nodes:      result.Nodes,
		Errors:     result.Errors,
		NextCursor: nextCursor(q.codec, result.Window, len(candidates)),
	}, nil
}

// visibleProjects assembles the candidate sequence in first-seen order.
func (q *ListProjectsQuery) visibleProjects(ctx context.Context, req *ListProjectsRequest) ([]storage.Project, error) {
	grantedIDs, err := q.authFilter.VisibleProjectIDs(ctx)
	if err != nil {
		return nil, backendError("resolve visible projects", err)
	}

	if grantedIDs == nil {
		// No grant constraints: everything, already ordered and distinct.
		projects, err := q.backend.ListProjects(ctx)
		if err != nil {
			return nil, backendError("list projects", err)
		}
		return filterArchived(projects, req.IncludeArchived), nil
	}

	// Granted projects plus their ancestors; overlapping chains repeat IDs.
	var stream []string
	for _, id := range grantedIDs {
		chain, err := q.backend.AncestorIDs(ctx, id)
		if err != nil {
			if err == storage.ErrNotFound {
				continue
			}
			return nil, backendError("expand project ancestors", err)
		}
		stream = append(stream, chain...)
	}

	checker := withDuplicateMetric(holder.NewDuplicateChecker[string](), "projects")
	deduped := holder.NewDeduplicating(holder.FromSlice(stream), checker)

	var candidates []storage.Project
	err = deduped.Process(ctx, func(id string) bool {
		project, err := q.backend.GetProject(ctx, id)
		if err != nil {
			return true // a stale grant is not fatal to the listing
		}
		if project.Archived && !req.IncludeArchived {
			return true
		}
		candidates = append(candidates, project)
		return true
	})
	if err != nil {
		return nil, backendError("stream visible projects", err)
	}
	return candidates, nil
}

func filterArchived(projects []storage.Project, includeArchived bool) []storage.Project {
	if includeArchived {
		return projects
	}
	kept := make([]storage.Project, 0, len(projects))
	for _, p := range projects {
		if !p.Archived {
			kept = append(kept, p)
		}
	}
	return kept
}

func projectNode(p storage.Project) (types.ProjectNode, error) {
	return types.ProjectNode{
		ID:       p.ID,
		ParentID: p.ParentID,
		Name:     p.Name,
		Archived: p.Archived,
	}, nil
}

func projectRef(p storage.Project) types.ProjectRef {
	return types.ProjectRef{ID: p.ID}
}
