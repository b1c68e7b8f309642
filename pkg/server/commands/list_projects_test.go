package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/buildgrid/buildgrid/pkg/pagination"
	"github.com/buildgrid/buildgrid/pkg/storage"
	"github.com/buildgrid/buildgrid/pkg/storage/memory"
)

func seededProjects() *memory.Datastore {
	return memory.New(memory.WithProjects(
		storage.Project{ID: "p-root", Name: "Root"},
		storage.Project{ID: "p-a", ParentID: "p-root", Name: "Alpha"},
		storage.Project{ID: "p-a-1", ParentID: "p-a", Name: "Alpha Archived", Archived: true},
		storage.Project{ID: "p-b", ParentID: "p-root", Name: "Beta"},
	))
}

func nodeIDs(resp *ListProjectsResponse) []string {
	ids := make([]string, 0, len(resp.Nodes))
	for _, n := range resp.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestListProjectsQuery(t *testing.T) {
	ds := seededProjects()
	defer ds.Close()

	t.Run("unconstrained_listing_excludes_archived", func(t *testing.T) {
		q := NewListProjectsQuery(ds, testCodec())
		resp, err := q.Execute(context.Background(), &ListProjectsRequest{Page: pagination.Everything()})
		require.NoError(t, err)
		require.Equal(t, []string{"p-a", "p-b", "p-root"}, nodeIDs(resp))
	})

	t.Run("include_archived", func(t *testing.T) {
		q := NewListProjectsQuery(ds, testCodec())
		resp, err := q.Execute(context.Background(), &ListProjectsRequest{
			IncludeArchived: true,
			Page:            pagination.Everything(),
		})
		require.NoError(t, err)
		require.Len(t, resp.Nodes, 4)
	})

	t.Run("grants_expand_through_ancestors_without_repeats", func(t *testing.T) {
		q := NewListProjectsQuery(ds, testCodec(),
			WithListProjectsQueryAuthFilter(&stubFilter{grants: []string{"p-a-1", "p-b"}}),
		)
		resp, err := q.Execute(context.Background(), &ListProjectsRequest{
			IncludeArchived: true,
			Page:            pagination.Everything(),
		})
		require.NoError(t, err)

		// p-root appears in both ancestor chains; first-seen order wins.
		require.Equal(t, []string{"p-a-1", "p-a", "p-root", "p-b"}, nodeIDs(resp))
	})

	t.Run("stale_grant_is_skipped", func(t *testing.T) {
		q := NewListProjectsQuery(ds, testCodec(),
			WithListProjectsQueryAuthFilter(&stubFilter{grants: []string{"gone", "p-b"}}),
		)
		resp, err := q.Execute(context.Background(), &ListProjectsRequest{Page: pagination.Everything()})
		require.NoError(t, err)
		require.Equal(t, []string{"p-b", "p-root"}, nodeIDs(resp))
	})

	t.Run("duplicates_do_not_consume_the_window", func(t *testing.T) {
		q := NewListProjectsQuery(ds, testCodec(),
			WithListProjectsQueryAuthFilter(&stubFilter{grants: []string{"p-a", "p-b"}}),
		)

		// Both chains contain p-root; a window of three must still hold
		// three distinct projects.
		resp, err := q.Execute(context.Background(), &ListProjectsRequest{
			Page: pagination.CursorRange("", "", 3, pagination.Unbounded),
		})
		require.NoError(t, err)
		require.Equal(t, []string{"p-a", "p-root", "p-b"}, nodeIDs(resp))
	})
}
