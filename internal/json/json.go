// Package json decodes request bodies and encodes responses.
package json

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// ErrTrailingData is returned when a body holds more than one JSON value.
var ErrTrailingData = errors.New("unexpected data after JSON value")

// DecodeJSON decodes exactly one JSON value from r into dst.
func DecodeJSON(r io.Reader, dst any) error {
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decoding json: %w", err)
	}

	// Ensure no extra tokens after decoding
	if decoder.More() {
		return ErrTrailingData
	}
	return nil
}

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// Marshal is a passthrough to the package's encoder.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal is a passthrough to the package's decoder.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
