// Package holder provides a push-style, resumable iteration protocol: a
// source drives a caller-supplied processor item by item, and the processor's
// boolean verdict is the sole cancellation mechanism. Decorators such as
// Deduplicating compose over any Holder without buffering.
package holder

import (
	"context"

	"github.com/buildgrid/buildgrid/pkg/storage"
)

// Processor consumes one item and reports whether the holder should keep
// producing. Returning false stops iteration; it is not an error.
type Processor[P any] func(item P) bool

// Holder is a source of items that can be driven exactly once. Process
// returns a non-nil error only when the source itself fails; a processor
// stopping early is a normal outcome.
type Holder[P any] interface {
	Process(ctx context.Context, proc Processor[P]) error
}

type sliceHolder[P any] struct {
	items []P
}

// FromSlice wraps a materialized sequence as a Holder.
func FromSlice[P any](items []P) Holder[P] {
	return &sliceHolder[P]{items: items}
}

func (s *sliceHolder[P]) Process(ctx context.Context, proc Processor[P]) error {
	for _, item := range s.items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !proc(item) {
			return nil
		}
	}
	return nil
}

type iteratorHolder[P any] struct {
	iter storage.Iterator[P]
}

// FromIterator bridges a pull-style storage iterator into a Holder. The
// iterator is stopped when processing finishes, whatever the reason.
func FromIterator[P any](iter storage.Iterator[P]) Holder[P] {
	return &iteratorHolder[P]{iter: iter}
}

func (h *iteratorHolder[P]) Process(ctx context.Context, proc Processor[P]) error {
	defer h.iter.Stop()

	for {
		item, err := h.iter.Next(ctx)
		if err != nil {
			if err == storage.ErrIteratorDone {
				return nil
			}
			return err
		}
		if !proc(item) {
			return nil
		}
	}
}
