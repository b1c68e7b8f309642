package storage

import (
	"context"
	"errors"
)

var ErrIteratorDone = errors.New("iterator done")

type Iterator[T any] interface {
	// Next will return the next available item, or ErrIteratorDone when the
	// sequence is exhausted. If the context is cancelled or times out, it
	// returns ErrCancelled.
	Next(ctx context.Context) (T, error)
	// Stop terminates iteration over the underlying iterator.
	Stop()
}

type staticIterator[T any] struct {
	items []T
}

func (s *staticIterator[T]) Next(ctx context.Context) (T, error) {
	var val T
	select {
	case <-ctx.Done():
		return val, ErrCancelled
	default:
		if len(s.items) == 0 {
			return val, ErrIteratorDone
		}

		next, rest := s.items[0], s.items[1:]
		s.items = rest

		return next, nil
	}
}

func (s *staticIterator[T]) Stop() {}

// NewStaticIterator returns an Iterator that yields the provided slice. The
// slice is consumed in place; callers keep ownership of the backing array.
func NewStaticIterator[T any](items []T) Iterator[T] {
	return &staticIterator[T]{items: items}
}

type combinedIterator[T any] struct {
	iter1, iter2 Iterator[T]
}

func (c *combinedIterator[T]) Next(ctx context.Context) (T, error) {
	val, err := c.iter1.Next(ctx)
	if err != nil {
		if !errors.Is(err, ErrIteratorDone) {
			return val, err
		}
	} else {
		return val, nil
	}

	val, err = c.iter2.Next(ctx)
	if err != nil {
		if !errors.Is(err, ErrIteratorDone) {
			return val, err
		}
	}

	return val, err
}

func (c *combinedIterator[T]) Stop() {
	c.iter1.Stop()
	c.iter2.Stop()
}

// NewCombinedIterator yields all values of iter1 followed by all values of
// iter2. If both yield the same value the duplicate is returned; compose with
// NewUniqueIterator when distinctness matters.
func NewCombinedIterator[T any](iter1, iter2 Iterator[T]) Iterator[T] {
	return &combinedIterator[T]{iter1, iter2}
}

type uniqueIterator[T any] struct {
	iter Iterator[T]
	key  func(T) string
	seen map[string]struct{}
}

func (u *uniqueIterator[T]) Next(ctx context.Context) (T, error) {
	for {
		val, err := u.iter.Next(ctx)
		if err != nil {
			return val, err
		}

		k := u.key(val)
		if _, ok := u.seen[k]; ok {
			continue
		}
		u.seen[k] = struct{}{}
		return val, nil
	}
}

func (u *uniqueIterator[T]) Stop() {
	u.iter.Stop()
}

// NewUniqueIterator yields only the first occurrence of each value, where
// identity is the provided key derivation. Duplicates are still consumed from
// the inner iterator.
func NewUniqueIterator[T any](iter Iterator[T], key func(T) string) Iterator[T] {
	return &uniqueIterator[T]{
		iter: iter,
		key:  key,
		seen: make(map[string]struct{}),
	}
}

// FilterFunc reports whether an item should be yielded. Implementations
// return true to keep the item.
type FilterFunc[T any] func(T) bool

type filteredIterator[T any] struct {
	iter   Iterator[T]
	filter FilterFunc[T]
}

// Next returns the next item in the underlying iterator that meets the filter
// function this iterator was constructed with.
func (f *filteredIterator[T]) Next(ctx context.Context) (T, error) {
	for {
		val, err := f.iter.Next(ctx)
		if err != nil {
			return val, err
		}

		if f.filter(val) {
			return val, nil
		}
	}
}

func (f *filteredIterator[T]) Stop() {
	f.iter.Stop()
}

// NewFilteredIterator returns an iterator that drops all items that don't
// meet the conditions of the provided FilterFunc.
func NewFilteredIterator[T any](iter Iterator[T], filter FilterFunc[T]) Iterator[T] {
	return &filteredIterator[T]{iter, filter}
}
