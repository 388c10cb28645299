package json

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    payload
		wantErr bool
	}{
		{name: "object", body: `{"name":"salt","amount":3}`, want: payload{Name: "salt", Amount: 3}},
		{name: "trailing whitespace", body: "{\"name\":\"salt\"}\n", want: payload{Name: "salt"}},
		{name: "two objects", body: `{"name":"a"}{"name":"b"}`, wantErr: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
		{name: "wrong type", body: `{"amount":"three"}`, wantErr: true},
		{name: "empty", body: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got payload
			err := DecodeJSON(strings.NewReader(tt.body), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeJSON_TrailingData(t *testing.T) {
	var got payload
	err := DecodeJSON(strings.NewReader(`{} []`), &got)
	assert.True(t, errors.Is(err, ErrTrailingData))
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, http.StatusCreated, payload{Name: "salt", Amount: 1}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"name":"salt","amount":1}`, rec.Body.String())
}
