package encoder

// Noop passes payloads through unchanged. Useful in tests that want to
// inspect cursor contents without decoding.
type Noop struct{}

var _ Encoder = (*Noop)(nil)

func NewNoopEncoder() *Noop {
	return &Noop{}
}

func (n Noop) Decode(s string) ([]byte, error) {
	return []byte(s), nil
}

func (n Noop) Encode(data []byte) (string, error) {
	return string(data), nil
}
