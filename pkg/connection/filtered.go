package connection

import "github.com/buildgrid/buildgrid/pkg/pagination"

type filtered[S, T, C any] struct {
	inner Connection[S, T, C]
	pred  func(*LazyEdge[S, T, C]) bool
}

var _ Connection[any, any, any] = (*filtered[any, any, any])(nil)

// Filtered composes a sub-connection that exposes only the edges passing
// pred. The underlying edges are reused as-is, so nodes resolved by the inner
// connection are not resolved again.
func Filtered[S, T, C any](inner Connection[S, T, C], pred func(*LazyEdge[S, T, C]) bool) Connection[S, T, C] {
	return &filtered[S, T, C]{inner: inner, pred: pred}
}

func (f *filtered[S, T, C]) Edges() *Result[S, T, C] {
	innerResult := f.inner.Edges()

	kept := make([]*LazyEdge[S, T, C], 0, len(innerResult.Edges))
	for _, edge := range innerResult.Edges {
		if f.pred(edge) {
			kept = append(kept, edge)
		}
	}

	result := &Result[S, T, C]{
		Edges:  kept,
		Window: pagination.Window{Start: 0, End: len(kept)},
	}
	collect(result, kept)
	return result
}
