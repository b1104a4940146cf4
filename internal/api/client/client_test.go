package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/card-price-watcher/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.ListWatches(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListWatches(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (HTTP 500)")
}

func TestClient_ListWatches(t *testing.T) {
	t.Parallel()

	statuses := []domain.WatchStatus{
		{Target: domain.WatchTarget{BlueprintID: 1234, PriceLimit: 500}},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/watches", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(statuses)
	}))
	defer srv.Close()

	result, err := New(srv.URL + "/").ListWatches(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, int64(1234), result[0].Target.BlueprintID)
}

func TestClient_GetWatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/watches/42", r.URL.Path)
		_ = json.NewEncoder(w).Encode(domain.WatchStatus{
			Target: domain.WatchTarget{BlueprintID: 42},
			Best:   &domain.Listing{ID: 1, Price: domain.Price{Cents: 99, Currency: "EUR"}},
		})
	}))
	defer srv.Close()

	st, err := New(srv.URL).GetWatch(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, st.Best)
	assert.Equal(t, int64(99), st.Best.Price.Cents)
}

func TestClient_TriggerCycle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		wantErr error
		errText string
	}{
		{name: "accepted", status: http.StatusAccepted},
		{name: "already running", status: http.StatusConflict, wantErr: ErrCycleRunning},
		{name: "server error", status: http.StatusInternalServerError, errText: "HTTP 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/v1/cycles", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"status":"x"}`))
			}))
			defer srv.Close()

			err := New(srv.URL).TriggerCycle(context.Background())
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			default:
				require.NoError(t, err)
			}
		})
	}
}
