// Package encoder contains data encoding and opaque cursor encoding implementations.
package encoder

type Encoder interface {
	Decode(string) ([]byte, error)
	Encode([]byte) (string, error)
}
