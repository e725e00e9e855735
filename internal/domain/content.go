package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Content is raw file content. It crosses the UI boundary as a JSON array
// of byte values, the shape a Uint8Array becomes after Array.from. Decoding
// also accepts the base64 string encoding/json uses for []byte.
type Content []byte

// MarshalJSON encodes c as an array of numbers. Nil content encodes as [].
func (c Content) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 2+len(c)*4)
	buf = append(buf, '[')
	for i, b := range c {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendUint(buf, uint64(b), 10)
	}
	buf = append(buf, ']')
	return buf, nil
}

// UnmarshalJSON accepts null, a base64 string or an array of integers in 0..255.
func (c *Content) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*c = nil
		return nil
	case data[0] == '"':
		var raw []byte
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("content: %w", err)
		}
		*c = raw
		return nil
	case data[0] == '[':
		var values []int
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("content: %w", err)
		}
		out := make([]byte, len(values))
		for i, v := range values {
			if v < 0 || v > 255 {
				return fmt.Errorf("content: byte %d out of range: %d", i, v)
			}
			out[i] = byte(v)
		}
		*c = out
		return nil
	default:
		return fmt.Errorf("content: unsupported JSON value %q", truncate(data, 16))
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
