package attachment

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrTooLarge is returned when a decoded payload would exceed the configured
// per-file cap.
var ErrTooLarge = errors.New("attachment exceeds maximum allowed size")

// DecodeError wraps a base64 decoding failure so callers can turn it into a
// client-visible 400 instead of a server fault.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed base64 payload: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Codec converts between the wire format (base64 text) and the storage-native
// binary payload. Decoding happens exactly once, at write time; the payload is
// fully materialized in memory.
type Codec struct {
	maxSize int64
}

func NewCodec(maxSize int64) *Codec {
	return &Codec{maxSize: maxSize}
}

// Decode interprets base64 wire text as raw bytes. The size check runs on the
// declared (encoded) length before any allocation, so an oversized payload is
// rejected without buffering it.
func (c *Codec) Decode(wire string) ([]byte, error) {
	if c.maxSize > 0 && int64(base64.StdEncoding.DecodedLen(len(wire))) > c.maxSize {
		return nil, ErrTooLarge
	}

	payload, err := base64.StdEncoding.DecodeString(wire)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return payload, nil
}

// Encode is the reverse direction, back to wire text.
func (c *Codec) Encode(payload []byte) string {
	return base64.StdEncoding.EncodeToString(payload)
}
