package encoder

import "encoding/base64"

// Base64Encoder produces URL-safe base64 tokens, the transport-facing form of
// cursor payloads.
type Base64Encoder struct{}

var _ Encoder = (*Base64Encoder)(nil)

func NewBase64Encoder() *Base64Encoder {
	return &Base64Encoder{}
}

func (e *Base64Encoder) Decode(s string) ([]byte, error) {
	return base64.URLEncoding.DecodeString(s)
}

func (e *Base64Encoder) Encode(data []byte) (string, error) {
	return base64.URLEncoding.EncodeToString(data), nil
}
