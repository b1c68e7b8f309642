package connection

// NodeFunc materializes the externally shaped node for one raw candidate.
// It may perform live lookups and is therefore allowed to fail.
type NodeFunc[S, T any] func(S) (T, error)

// LocalContextFunc derives the auxiliary context attached to an edge. It is
// expected to be a cheap projection of the source and must not fail.
type LocalContextFunc[S, C any] func(S) C

type edgeState int

const (
	edgeUnresolved edgeState = iota
	edgeResolved
	edgeFailed
)

// LazyEdge correlates one raw candidate with its externally shaped node and
// an auxiliary local context. Both are computed on first access and memoized;
// the node transform runs at most once per edge even when it fails.
//
// An edge is used by a single request and tolerates reentrant access from the
// same goroutine (resolving one node may read a sibling edge's local
// context). It is not safe for concurrent use.
type LazyEdge[S, T, C any] struct {
	source  S
	nodeFn  NodeFunc[S, T]
	ctxFn   LocalContextFunc[S, C]
	ordinal int

	state edgeState
	node  T
	err   error

	localContext    C
	localContextSet bool
}

// NewLazyEdge wraps source without computing anything.
func NewLazyEdge[S, T, C any](source S, nodeFn NodeFunc[S, T], ctxFn LocalContextFunc[S, C]) *LazyEdge[S, T, C] {
	return &LazyEdge[S, T, C]{
		source:  source,
		nodeFn:  nodeFn,
		ctxFn:   ctxFn,
		ordinal: -1,
	}
}

// Source returns the raw candidate; always available.
func (e *LazyEdge[S, T, C]) Source() S {
	return e.source
}

// Ordinal is the edge's position in the candidate sequence, or -1 when the
// edge was built outside a connection.
func (e *LazyEdge[S, T, C]) Ordinal() int {
	return e.ordinal
}

// Node returns the materialized node, running the transform on first call.
// A failed transform moves the edge into a terminal failed state: subsequent
// calls return the same error without re-running the transform.
func (e *LazyEdge[S, T, C]) Node() (T, error) {
	switch e.state {
	case edgeResolved:
		return e.node, nil
	case edgeFailed:
		var zero T
		return zero, e.err
	}

	node, err := e.nodeFn(e.source)
	if err != nil {
		e.state = edgeFailed
		e.err = err
		var zero T
		return zero, err
	}

	e.state = edgeResolved
	e.node = node
	return node, nil
}

// Failed reports whether the node transform has run and failed.
func (e *LazyEdge[S, T, C]) Failed() bool {
	return e.state == edgeFailed
}

// LocalContext returns the auxiliary context, computing it on first call.
// Availability is independent of node resolution outcome.
func (e *LazyEdge[S, T, C]) LocalContext() C {
	if !e.localContextSet {
		e.localContext = e.ctxFn(e.source)
		e.localContextSet = true
	}
	return e.localContext
}
