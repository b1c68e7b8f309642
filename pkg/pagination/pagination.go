// Package pagination models the window a caller requests over an ordered
// candidate sequence. Arguments are resolved against the sequence length into
// a concrete half-open range; out-of-range and malformed input clamps or
// degrades to an empty window instead of failing the request.
package pagination

// CursorDecoder resolves an opaque cursor token into a candidate index.
// Implementations must return an error for malformed tokens; they never need
// to bounds-check against the candidate sequence.
type CursorDecoder interface {
	DecodeCursor(cursor string) (int, error)
}

// Unbounded marks first/last as not supplied in cursor-style Arguments.
const Unbounded = -1

type style int

const (
	styleEverything style = iota
	styleOffsetCount
	styleCursor
)

// Arguments is an immutable description of the requested page window. It is
// constructed once per request from transport query parameters and carries
// exactly one pagination style.
type Arguments struct {
	style style

	offset int
	count  int

	after  string
	before string
	first  int
	last   int
}

// Everything requests the whole candidate sequence, untruncated.
func Everything() Arguments {
	return Arguments{style: styleEverything}
}

// OffsetCount requests count items starting at offset. Negative values are
// not an error; they resolve to an empty window.
func OffsetCount(offset, count int) Arguments {
	return Arguments{style: styleOffsetCount, offset: offset, count: count}
}

// CursorRange requests items relative to opaque cursors. Empty cursors leave
// the respective bound open; pass Unbounded for first/last that were not
// supplied.
func CursorRange(after, before string, first, last int) Arguments {
	return Arguments{style: styleCursor, after: after, before: before, first: first, last: last}
}

// WithMaxCount returns a copy whose count, first, and last are capped at
// max. Everything-style arguments are unaffected; non-positive max leaves the
// arguments unchanged.
func (a Arguments) WithMaxCount(max int) Arguments {
	if max <= 0 {
		return a
	}
	switch a.style {
	case styleOffsetCount:
		if a.count > max {
			a.count = max
		}
	case styleCursor:
		if a.first > max {
			a.first = max
		}
		if a.last > max {
			a.last = max
		}
	}
	return a
}

// Window is a half-open [Start, End) index range into the candidate sequence.
type Window struct {
	Start int
	End   int
}

func (w Window) Len() int {
	return w.End - w.Start
}

func emptyWindow() Window {
	return Window{}
}

// Window resolves the arguments against a candidate sequence of length n.
// The result always satisfies 0 <= Start <= End <= n. Cursor decode failures
// and out-of-range positions yield an empty window, never an error.
func (a Arguments) Window(n int, dec CursorDecoder) Window {
	if n < 0 {
		n = 0
	}

	switch a.style {
	case styleOffsetCount:
		return offsetCountWindow(a.offset, a.count, n)
	case styleCursor:
		return a.cursorWindow(n, dec)
	default:
		return Window{Start: 0, End: n}
	}
}

func offsetCountWindow(offset, count, n int) Window {
	if offset < 0 {
		offset = 0
	}
	if count < 0 {
		count = 0
	}
	start := min(offset, n)
	end := min(offset+count, n)
	if end < start {
		end = start
	}
	return Window{Start: start, End: end}
}

func (a Arguments) cursorWindow(n int, dec CursorDecoder) Window {
	start := 0
	end := n

	if a.after != "" {
		index, err := decodeInRange(a.after, n, dec)
		if err != nil {
			return emptyWindow()
		}
		start = index + 1
	}

	if a.before != "" {
		index, err := decodeInRange(a.before, n, dec)
		if err != nil {
			return emptyWindow()
		}
		end = index
	}

	if end < start {
		return emptyWindow()
	}

	if a.first != Unbounded && a.first >= 0 && start+a.first < end {
		end = start + a.first
	}
	if a.last != Unbounded && a.last >= 0 && end-a.last > start {
		start = end - a.last
	}

	return Window{Start: start, End: end}
}

func decodeInRange(cursor string, n int, dec CursorDecoder) (int, error) {
	if dec == nil {
		return 0, errNoDecoder
	}
	index, err := dec.DecodeCursor(cursor)
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= n {
		return 0, errCursorOutOfRange
	}
	return index, nil
}
