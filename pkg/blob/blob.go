// Package blob converts binary payloads between their base64 wire form and
// the raw bytes kept in the store.
package blob

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidEncoding = errors.New("payload is not valid base64")

// Decode accepts plain base64 or a data URI ("data:image/png;base64,...").
// An empty input decodes to nil.
func Decode(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, nil
	}
	if strings.HasPrefix(encoded, "data:") {
		idx := strings.Index(encoded, ";base64,")
		if idx < 0 {
			return nil, ErrInvalidEncoding
		}
		encoded = encoded[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// Some clients drop the padding.
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
		if err != nil {
			return nil, ErrInvalidEncoding
		}
	}
	return data, nil
}

// Encode returns nil for empty data so JSON renders null instead of "".
func Encode(data []byte) *string {
	if len(data) == 0 {
		return nil
	}
	s := base64.StdEncoding.EncodeToString(data)
	return &s
}
