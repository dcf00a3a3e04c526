package httpc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/status":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"frame": 12}`))
		case "/broken":
			w.Write([]byte(`{`))
		default:
			http.Error(w, "nope", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)

	var status struct {
		Frame int `json:"frame"`
	}
	require.NoError(t, c.GetJSON(context.Background(), "/api/status", &status))
	assert.Equal(t, 12, status.Frame)

	err := c.GetJSON(context.Background(), "/missing", &status)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Status)

	assert.Error(t, c.GetJSON(context.Background(), "/broken", &status))
}

func TestGetJSON_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var v any
	err := New(srv.URL, time.Second).GetJSON(ctx, "/", &v)
	assert.ErrorIs(t, err, context.Canceled)
}
