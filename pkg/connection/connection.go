// Package connection builds paginated, lazily materialized views over ordered
// candidate sequences. A connection computes its window eagerly but touches
// only in-window candidates, and one failing node never fails the page.
package connection

import (
	"fmt"

	"github.com/buildgrid/buildgrid/pkg/pagination"
)

// EdgeError records a node transform failure for a single edge.
type EdgeError struct {
	// CandidateIndex is the failing item's position in the full candidate
	// sequence, WindowIndex its position within the returned page.
	CandidateIndex int
	WindowIndex    int
	Err            error
}

func (e EdgeError) Error() string {
	return fmt.Sprintf("edge at candidate %d: %s", e.CandidateIndex, e.Err)
}

func (e EdgeError) Unwrap() error {
	return e.Err
}

// Result bundles one page: every in-window edge in candidate order, the nodes
// that resolved, and the per-edge failures. len(Nodes)+len(Errors) ==
// len(Edges).
type Result[S, T, C any] struct {
	Edges  []*LazyEdge[S, T, C]
	Nodes  []T
	Errors []EdgeError
	Window pagination.Window
}

// Connection is the externally visible contract for paginated views. Further
// views can be composed on top of an existing connection without re-fetching
// or re-resolving, see Filtered.
type Connection[S, T, C any] interface {
	Edges() *Result[S, T, C]
}

// Paginating is a Connection over a materialized candidate sequence.
// Construction only resolves the window; edges are built and their nodes
// resolved on the first Edges call and memoized for the connection's
// lifetime. Candidates outside the window are never touched.
type Paginating[S, T, C any] struct {
	candidates []S
	nodeFn     NodeFunc[S, T]
	ctxFn      LocalContextFunc[S, C]
	window     pagination.Window

	edges []*LazyEdge[S, T, C]
	built bool
}

var _ Connection[any, any, any] = (*Paginating[any, any, any])(nil)

// NewPaginating computes the page window for candidates under args. The
// candidate slice is owned by the caller and never mutated; dec resolves
// opaque cursors and may be nil when args carries no cursors.
func NewPaginating[S, T, C any](
	candidates []S,
	nodeFn NodeFunc[S, T],
	ctxFn LocalContextFunc[S, C],
	args pagination.Arguments,
	dec pagination.CursorDecoder,
) *Paginating[S, T, C] {
	return &Paginating[S, T, C]{
		candidates: candidates,
		nodeFn:     nodeFn,
		ctxFn:      ctxFn,
		window:     args.Window(len(candidates), dec),
	}
}

// Window returns the resolved page range.
func (c *Paginating[S, T, C]) Window() pagination.Window {
	return c.window
}

// Edges materializes the page. Repeated calls return the same edge instances
// and never re-run node transforms.
func (c *Paginating[S, T, C]) Edges() *Result[S, T, C] {
	if !c.built {
		c.edges = make([]*LazyEdge[S, T, C], 0, c.window.Len())
		for i := c.window.Start; i < c.window.End; i++ {
			edge := NewLazyEdge(c.candidates[i], c.nodeFn, c.ctxFn)
			edge.ordinal = i
			c.edges = append(c.edges, edge)
		}
		c.built = true
	}

	result := &Result[S, T, C]{
		Edges:  c.edges,
		Window: c.window,
	}
	collect(result, c.edges)
	return result
}

// collect resolves each edge's node, splitting successes from failures while
// preserving order.
func collect[S, T, C any](result *Result[S, T, C], edges []*LazyEdge[S, T, C]) {
	for i, edge := range edges {
		node, err := edge.Node()
		if err != nil {
			result.Errors = append(result.Errors, EdgeError{
				CandidateIndex: edge.ordinal,
				WindowIndex:    i,
				Err:            err,
			})
			continue
		}
		result.Nodes = append(result.Nodes, node)
	}
}
