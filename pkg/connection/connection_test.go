package connection

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/buildgrid/buildgrid/pkg/encoder"
	"github.com/buildgrid/buildgrid/pkg/pagination"
)

func upperNode(s string) (string, error) {
	return strings.ToUpper(s), nil
}

func firstRune(s string) string {
	if s == "" {
		return ""
	}
	return s[:1]
}

func candidates(n int) []string {
	items := make([]string, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, fmt.Sprintf("item-%02d", i))
	}
	return items
}

func TestEverythingReturnsAllInOrder(t *testing.T) {
	items := candidates(12)
	conn := NewPaginating(items, upperNode, firstRune, pagination.Everything(), nil)

	result := conn.Edges()
	require.Len(t, result.Edges, 12)
	require.Empty(t, result.Errors)

	want := make([]string, 0, len(items))
	for _, item := range items {
		want = append(want, strings.ToUpper(item))
	}
	require.Empty(t, cmp.Diff(want, result.Nodes))
}

func TestOffsetCountWindowing(t *testing.T) {
	items := candidates(10)
	conn := NewPaginating(items, upperNode, firstRune, pagination.OffsetCount(3, 4), nil)

	result := conn.Edges()
	require.Equal(t, pagination.Window{Start: 3, End: 7}, result.Window)
	require.Equal(t, []string{"ITEM-03", "ITEM-04", "ITEM-05", "ITEM-06"}, result.Nodes)

	for i, edge := range result.Edges {
		require.Equal(t, 3+i, edge.Ordinal())
	}
}

func TestWindowCountMatchesResolvedRange(t *testing.T) {
	codec := encoder.NewCursorCodec(encoder.NewBase64Encoder())

	for _, test := range []struct {
		name string
		n    int
		args pagination.Arguments
	}{
		{name: "everything_empty", n: 0, args: pagination.Everything()},
		{name: "offset_clamped", n: 5, args: pagination.OffsetCount(3, 100)},
		{name: "offset_past_end", n: 5, args: pagination.OffsetCount(50, 10)},
		{name: "cursor_first", n: 20, args: pagination.CursorRange("", "", 7, pagination.Unbounded)},
	} {
		t.Run(test.name, func(t *testing.T) {
			items := candidates(test.n)
			conn := NewPaginating(items, upperNode, firstRune, test.args, codec)
			result := conn.Edges()
			require.Len(t, result.Edges, result.Window.Len())
			require.GreaterOrEqual(t, result.Window.Start, 0)
			require.LessOrEqual(t, result.Window.End, test.n)
		})
	}
}

func TestTransformsRunAtMostOncePerEdge(t *testing.T) {
	items := candidates(10)
	calls := map[string]int{}
	counting := func(s string) (string, error) {
		calls[s]++
		return strings.ToUpper(s), nil
	}

	conn := NewPaginating(items, counting, firstRune, pagination.OffsetCount(2, 5), nil)

	first := conn.Edges()
	second := conn.Edges()

	require.Len(t, calls, 5, "out-of-window candidates must never be transformed")
	for item, count := range calls {
		require.Equal(t, 1, count, "transform for %s ran more than once", item)
	}

	// Same edge instances on both reads.
	for i := range first.Edges {
		require.Same(t, first.Edges[i], second.Edges[i])
	}
}

func TestOneBadEdgeDoesNotFailThePage(t *testing.T) {
	items := candidates(8)
	errBoom := errors.New("provider unavailable")
	flaky := func(s string) (string, error) {
		if s == "item-04" {
			return "", errBoom
		}
		return strings.ToUpper(s), nil
	}

	conn := NewPaginating(items, flaky, firstRune, pagination.OffsetCount(2, 5), nil)
	result := conn.Edges()

	require.Equal(t, []string{"ITEM-02", "ITEM-03", "ITEM-05", "ITEM-06"}, result.Nodes)
	require.Len(t, result.Errors, 1)
	require.Equal(t, 4, result.Errors[0].CandidateIndex)
	require.Equal(t, 2, result.Errors[0].WindowIndex)
	require.ErrorIs(t, result.Errors[0], errBoom)

	// Re-reading neither clears the failure nor re-runs the transform.
	again := conn.Edges()
	require.Len(t, again.Errors, 1)
	require.True(t, again.Edges[2].Failed())
}

func TestFailedTransformRunsOnlyOnce(t *testing.T) {
	calls := 0
	failing := func(s string) (string, error) {
		calls++
		return "", errors.New("always fails")
	}

	edge := NewLazyEdge("a", failing, firstRune)

	_, err1 := edge.Node()
	_, err2 := edge.Node()
	require.Error(t, err1)
	require.Equal(t, err1, err2)
	require.Equal(t, 1, calls)
}

func TestLocalContextIndependentOfNodeFailure(t *testing.T) {
	failing := func(s string) (string, error) {
		return "", errors.New("no node for you")
	}
	ctxCalls := 0
	ctxFn := func(s string) string {
		ctxCalls++
		return s[:1]
	}

	edge := NewLazyEdge("zebra", failing, ctxFn)

	_, err := edge.Node()
	require.Error(t, err)

	require.Equal(t, "z", edge.LocalContext())
	require.Equal(t, "z", edge.LocalContext())
	require.Equal(t, 1, ctxCalls)
	require.Equal(t, "zebra", edge.Source())
}

func TestReentrantLocalContextAccess(t *testing.T) {
	// Resolving one edge may read a sibling's local context, the shortcut a
	// nested resolver takes to avoid a redundant lookup.
	sibling := NewLazyEdge("item-00", upperNode, firstRune)
	edge := NewLazyEdge("item-02", func(s string) (string, error) {
		return strings.ToUpper(s) + "+" + sibling.LocalContext(), nil
	}, firstRune)

	node, err := edge.Node()
	require.NoError(t, err)
	require.Equal(t, "ITEM-02+i", node)
}

func TestInvalidCursorYieldsEmptyPage(t *testing.T) {
	codec := encoder.NewCursorCodec(encoder.NewBase64Encoder())
	items := candidates(10)

	args := pagination.CursorRange("definitely-not-a-cursor", "", 5, pagination.Unbounded)
	conn := NewPaginating(items, upperNode, firstRune, args, codec)

	result := conn.Edges()
	require.Empty(t, result.Edges)
	require.Empty(t, result.Nodes)
	require.Empty(t, result.Errors)
}

func TestFilteredReusesEdges(t *testing.T) {
	items := candidates(10)
	calls := 0
	counting := func(s string) (string, error) {
		calls++
		return strings.ToUpper(s), nil
	}

	base := NewPaginating(items, counting, firstRune, pagination.OffsetCount(0, 6), nil)
	baseResult := base.Edges()
	require.Equal(t, 6, calls)

	sub := Filtered(base, func(e *LazyEdge[string, string, string]) bool {
		return e.Ordinal()%2 == 0
	})
	subResult := sub.Edges()

	require.Equal(t, 6, calls, "filtered view must not re-run transforms")
	require.Len(t, subResult.Edges, 3)
	require.Equal(t, []string{"ITEM-00", "ITEM-02", "ITEM-04"}, subResult.Nodes)
	require.Same(t, baseResult.Edges[0], subResult.Edges[0])
	require.Same(t, baseResult.Edges[2], subResult.Edges[1])
	require.Same(t, baseResult.Edges[4], subResult.Edges[2])
}
