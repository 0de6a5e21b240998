package netx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func TestDoJSON(t *testing.T) {
	ctx := context.Background()

	t.Run("sends body and headers, decodes response", func(t *testing.T) {
		var gotMethod, gotCT, gotAccept, gotReqID string
		var gotBody payload

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotCT = r.Header.Get("Content-Type")
			gotAccept = r.Header.Get("Accept")
			gotReqID = r.Header.Get("X-Request-ID")
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"name":"echo"}`)
		}))
		defer ts.Close()

		var out payload
		h := http.Header{}
		h.Set("X-Request-ID", "req-1")
		err := DoJSON(ctx, ts.Client(), http.MethodPost, ts.URL+"/users", h, payload{Name: "alice"}, &out)
		require.NoError(t, err)
		require.Equal(t, http.MethodPost, gotMethod)
		require.Equal(t, "application/json", gotCT)
		require.Equal(t, "application/json", gotAccept)
		require.Equal(t, "req-1", gotReqID)
		require.Equal(t, "alice", gotBody.Name)
		require.Equal(t, "echo", out.Name)
	})

	t.Run("no content with out set", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer ts.Close()

		var out payload
		require.NoError(t, DoJSON(ctx, ts.Client(), http.MethodDelete, ts.URL, nil, nil, &out))
	})

	t.Run("error body with message", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"user not found"}`)
		}))
		defer ts.Close()

		err := DoJSON(ctx, ts.Client(), http.MethodGet, ts.URL, nil, nil, nil)
		var se *StatusError
		require.ErrorAs(t, err, &se)
		require.Equal(t, http.StatusNotFound, se.StatusCode)
		require.Equal(t, "user not found", se.Message)
	})

	t.Run("plain error body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer ts.Close()

		err := DoJSON(ctx, ts.Client(), http.MethodGet, ts.URL, nil, nil, nil)
		var se *StatusError
		require.ErrorAs(t, err, &se)
		require.Equal(t, "boom", se.Message)
		require.Contains(t, err.Error(), "500")
	})

	t.Run("empty error body falls back to status text", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer ts.Close()

		err := DoJSON(ctx, ts.Client(), http.MethodGet, ts.URL, nil, nil, nil)
		var se *StatusError
		require.ErrorAs(t, err, &se)
		require.Equal(t, "Bad Gateway", se.Message)
	})

	t.Run("malformed response body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{not json`)
		}))
		defer ts.Close()

		var out payload
		err := DoJSON(ctx, ts.Client(), http.MethodGet, ts.URL, nil, nil, &out)
		require.ErrorContains(t, err, "decode response")
		var de *DecodeError
		require.ErrorAs(t, err, &de)
		require.Equal(t, http.StatusOK, de.StatusCode)
	})

	t.Run("network error is not a StatusError", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		url := ts.URL
		ts.Close()

		err := DoJSON(ctx, http.DefaultClient, http.MethodGet, url, nil, nil, nil)
		require.Error(t, err)
		var se *StatusError
		require.False(t, errors.As(err, &se))
	})
}
