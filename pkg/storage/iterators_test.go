package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func drain[T any](t *testing.T, iter Iterator[T]) []T {
	t.Helper()

	var actual []T
	for {
		val, err := iter.Next(context.Background())
		if err != nil {
			if errors.Is(err, ErrIteratorDone) {
				break
			}
			require.Fail(t, "no error was expected")
		}

		actual = append(actual, val)
	}
	return actual
}

func TestStaticIterator(t *testing.T) {
	expected := []string{"agent-1", "agent-2", "agent-3"}

	iter := NewStaticIterator(expected)
	defer iter.Stop()

	require.Equal(t, expected, drain(t, iter))

	_, err := iter.Next(context.Background())
	require.ErrorIs(t, err, ErrIteratorDone)
}

func TestStaticIteratorContextCancelled(t *testing.T) {
	iter := NewStaticIterator([]string{"agent-1"})
	defer iter.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := iter.Next(ctx)
	require.ErrorIs(t, err, ErrCancelled)
}

func TestCombinedIterator(t *testing.T) {
	iter1 := NewStaticIterator([]int{1, 2})
	iter2 := NewStaticIterator([]int{3, 4})
	iter := NewCombinedIterator(iter1, iter2)
	defer iter.Stop()

	require.Equal(t, []int{1, 2, 3, 4}, drain(t, iter))
}

func TestUniqueIterator(t *testing.T) {
	t.Run("removes_repeats_in_first_seen_order", func(t *testing.T) {
		iter := NewUniqueIterator(
			NewStaticIterator([]string{"a", "b", "a", "c", "b", "a"}),
			func(s string) string { return s },
		)
		defer iter.Stop()

		require.Equal(t, []string{"a", "b", "c"}, drain(t, iter))
	})

	t.Run("across_combined_sources", func(t *testing.T) {
		iter1 := NewStaticIterator([]string{"img-a", "img-b"})
		iter2 := NewStaticIterator([]string{"img-b", "img-c"})
		iter := NewUniqueIterator(NewCombinedIterator(iter1, iter2), func(s string) string { return s })
		defer iter.Stop()

		require.Equal(t, []string{"img-a", "img-b", "img-c"}, drain(t, iter))
	})
}

func TestFilteredIterator(t *testing.T) {
	iter := NewFilteredIterator(
		NewStaticIterator([]int{1, 2, 3, 4, 5, 6}),
		func(v int) bool { return v%2 == 0 },
	)
	defer iter.Stop()

	require.Equal(t, []int{2, 4, 6}, drain(t, iter))
}
