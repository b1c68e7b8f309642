package encoder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidCursor is returned when a cursor token cannot be deserialized
// into a candidate position. Callers are expected to degrade gracefully
// rather than fail the request.
var ErrInvalidCursor = errors.New("invalid cursor")

const cursorVersionPrefix = "v1"

// CursorCodec turns candidate positions into opaque cursor tokens and back.
// The token layout is "v1|<index>" passed through the configured Encoder, so
// transports only ever see an opaque string.
type CursorCodec struct {
	encoder Encoder
}

func NewCursorCodec(encoder Encoder) *CursorCodec {
	return &CursorCodec{encoder: encoder}
}

func (c *CursorCodec) EncodeCursor(index int) (string, error) {
	if index < 0 {
		return "", fmt.Errorf("%w: negative position %d", ErrInvalidCursor, index)
	}
	return c.encoder.Encode([]byte(fmt.Sprintf("%s|%d", cursorVersionPrefix, index)))
}

// DecodeCursor yields the candidate index a cursor points at, or
// ErrInvalidCursor when the token is malformed.
func (c *CursorCodec) DecodeCursor(cursor string) (int, error) {
	raw, err := c.encoder.Decode(cursor)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidCursor, err)
	}

	version, position, found := strings.Cut(string(raw), "|")
	if !found || version != cursorVersionPrefix {
		return 0, ErrInvalidCursor
	}

	index, err := strconv.Atoi(position)
	if err != nil || index < 0 {
		return 0, ErrInvalidCursor
	}
	return index, nil
}
