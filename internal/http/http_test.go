package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-dz/foodgram/internal/log"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.csv":
			_, _ = io.WriteString(w, "name,unit\nsalt,g\n")
		default:
			http.Error(w, "missing", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := DefaultConfig(log.NullLogger())
	client.RetryMax = 0
	h := New(client)

	body, err := h.Fetch(context.Background(), srv.URL+"/ok.csv")
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	_ = body.Close()
	assert.Equal(t, "name,unit\nsalt,g\n", string(data))

	_, err = h.Fetch(context.Background(), srv.URL+"/missing.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}
