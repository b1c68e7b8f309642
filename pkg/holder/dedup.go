package holder

import (
	"context"

	"github.com/cespare/xxhash/v2"
)

// DuplicateChecker is a stateful predicate over one traversal: it reports
// whether an item was already seen and remembers it either way. Construct a
// fresh checker per traversal; sharing one across traversals links their
// dedup state.
//
// The item's identity (or derived key) must have a consistent equality
// contract for the lifetime of the traversal; this is a caller obligation,
// not a runtime check.
type DuplicateChecker[P any] interface {
	// CheckDuplicateAndRemember returns true iff item was seen before.
	CheckDuplicateAndRemember(item P) bool
}

type mapChecker[P comparable] struct {
	seen map[P]struct{}
}

// NewDuplicateChecker tracks seen items by their own equality.
func NewDuplicateChecker[P comparable]() DuplicateChecker[P] {
	return &mapChecker[P]{seen: make(map[P]struct{})}
}

func (c *mapChecker[P]) CheckDuplicateAndRemember(item P) bool {
	if _, ok := c.seen[item]; ok {
		return true
	}
	c.seen[item] = struct{}{}
	return false
}

type keyedChecker[P any] struct {
	key  func(P) string
	seen map[uint64]struct{}
}

// NewKeyedDuplicateChecker tracks seen items by a derived string key. Keys
// are folded through xxhash so long composite keys don't pin their full text
// in memory for the whole traversal.
func NewKeyedDuplicateChecker[P any](key func(P) string) DuplicateChecker[P] {
	return &keyedChecker[P]{
		key:  key,
		seen: make(map[uint64]struct{}),
	}
}

func (c *keyedChecker[P]) CheckDuplicateAndRemember(item P) bool {
	sum := xxhash.Sum64String(c.key(item))
	if _, ok := c.seen[sum]; ok {
		return true
	}
	c.seen[sum] = struct{}{}
	return false
}

type deduplicating[P any] struct {
	inner   Holder[P]
	checker DuplicateChecker[P]
}

// NewDeduplicating decorates a Holder so the processor sees each distinct
// item at most once, in first-seen order. A skipped duplicate instructs the
// inner holder to keep producing: dedup is transparent and never counts
// against whatever quota the processor enforces. The processor's stop verdict
// passes through unchanged.
func NewDeduplicating[P any](inner Holder[P], checker DuplicateChecker[P]) Holder[P] {
	return &deduplicating[P]{inner: inner, checker: checker}
}

func (d *deduplicating[P]) Process(ctx context.Context, proc Processor[P]) error {
	return d.inner.Process(ctx, func(item P) bool {
		if d.checker.CheckDuplicateAndRemember(item) {
			return true
		}
		return proc(item)
	})
}
