package pagination

import "errors"

// These never escape Window; a cursor problem degrades to an empty window.
var (
	errNoDecoder        = errors.New("no cursor decoder configured")
	errCursorOutOfRange = errors.New("cursor position out of range")
)
