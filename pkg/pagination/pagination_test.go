package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/buildgrid/buildgrid/pkg/encoder"
)

func cursorFor(t *testing.T, codec *encoder.CursorCodec, index int) string {
	t.Helper()
	token, err := codec.EncodeCursor(index)
	require.NoError(t, err)
	return token
}

func TestEverythingWindow(t *testing.T) {
	for _, n := range []int{0, 1, 10, 5000} {
		window := Everything().Window(n, nil)
		require.Equal(t, Window{Start: 0, End: n}, window)
		require.Equal(t, n, window.Len())
	}
}

func TestOffsetCountWindow(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		count  int
		n      int
		want   Window
	}{
		{name: "middle_slice", offset: 3, count: 4, n: 10, want: Window{Start: 3, End: 7}},
		{name: "count_past_end", offset: 8, count: 10, n: 10, want: Window{Start: 8, End: 10}},
		{name: "offset_past_end", offset: 20, count: 5, n: 10, want: Window{Start: 10, End: 10}},
		{name: "zero_count", offset: 2, count: 0, n: 10, want: Window{Start: 2, End: 2}},
		{name: "negative_offset", offset: -1, count: 3, n: 10, want: Window{Start: 0, End: 3}},
		{name: "negative_count", offset: 2, count: -5, n: 10, want: Window{Start: 2, End: 2}},
		{name: "empty_sequence", offset: 0, count: 5, n: 0, want: Window{Start: 0, End: 0}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := OffsetCount(test.offset, test.count).Window(test.n, nil)
			require.Equal(t, test.want, got)
			require.GreaterOrEqual(t, got.Start, 0)
			require.LessOrEqual(t, got.End, test.n)
			require.LessOrEqual(t, got.Start, got.End)
		})
	}
}

func TestCursorWindow(t *testing.T) {
	codec := encoder.NewCursorCodec(encoder.NewBase64Encoder())

	t.Run("after_with_first", func(t *testing.T) {
		args := CursorRange(cursorFor(t, codec, 2), "", 3, Unbounded)
		require.Equal(t, Window{Start: 3, End: 6}, args.Window(10, codec))
	})

	t.Run("before_with_last", func(t *testing.T) {
		args := CursorRange("", cursorFor(t, codec, 8), Unbounded, 3)
		require.Equal(t, Window{Start: 5, End: 8}, args.Window(10, codec))
	})

	t.Run("after_and_before", func(t *testing.T) {
		args := CursorRange(cursorFor(t, codec, 1), cursorFor(t, codec, 7), Unbounded, Unbounded)
		require.Equal(t, Window{Start: 2, End: 7}, args.Window(10, codec))
	})

	t.Run("first_larger_than_remainder", func(t *testing.T) {
		args := CursorRange(cursorFor(t, codec, 6), "", 100, Unbounded)
		require.Equal(t, Window{Start: 7, End: 10}, args.Window(10, codec))
	})

	t.Run("no_cursors_first_only", func(t *testing.T) {
		args := CursorRange("", "", 4, Unbounded)
		require.Equal(t, Window{Start: 0, End: 4}, args.Window(10, codec))
	})

	t.Run("no_cursors_last_only", func(t *testing.T) {
		args := CursorRange("", "", Unbounded, 4)
		require.Equal(t, Window{Start: 6, End: 10}, args.Window(10, codec))
	})

	t.Run("crossing_bounds_empty", func(t *testing.T) {
		args := CursorRange(cursorFor(t, codec, 7), cursorFor(t, codec, 2), Unbounded, Unbounded)
		require.Equal(t, Window{}, args.Window(10, codec))
	})
}

func TestCursorWindowDegradesToEmpty(t *testing.T) {
	codec := encoder.NewCursorCodec(encoder.NewBase64Encoder())

	t.Run("malformed_after", func(t *testing.T) {
		args := CursorRange("not-a-cursor", "", 5, Unbounded)
		require.Equal(t, Window{}, args.Window(10, codec))
	})

	t.Run("out_of_range_after", func(t *testing.T) {
		args := CursorRange(cursorFor(t, codec, 42), "", 5, Unbounded)
		require.Equal(t, Window{}, args.Window(10, codec))
	})

	t.Run("malformed_before", func(t *testing.T) {
		args := CursorRange("", "###", Unbounded, 5)
		require.Equal(t, Window{}, args.Window(10, codec))
	})

	t.Run("nil_decoder", func(t *testing.T) {
		args := CursorRange(cursorFor(t, codec, 1), "", Unbounded, Unbounded)
		require.Equal(t, Window{}, args.Window(10, nil))
	})
}

func TestWithMaxCount(t *testing.T) {
	t.Run("offset_count_capped", func(t *testing.T) {
		args := OffsetCount(0, 500).WithMaxCount(100)
		require.Equal(t, Window{Start: 0, End: 100}, args.Window(1000, nil))
	})

	t.Run("first_and_last_capped", func(t *testing.T) {
		args := CursorRange("", "", 500, Unbounded).WithMaxCount(100)
		require.Equal(t, Window{Start: 0, End: 100}, args.Window(1000, nil))

		args = CursorRange("", "", Unbounded, 500).WithMaxCount(100)
		require.Equal(t, Window{Start: 900, End: 1000}, args.Window(1000, nil))
	})

	t.Run("everything_unaffected", func(t *testing.T) {
		args := Everything().WithMaxCount(100)
		require.Equal(t, Window{Start: 0, End: 1000}, args.Window(1000, nil))
	})

	t.Run("non_positive_max_is_ignored", func(t *testing.T) {
		args := OffsetCount(0, 500).WithMaxCount(0)
		require.Equal(t, Window{Start: 0, End: 500}, args.Window(1000, nil))
	})
}
