package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/card-price-watcher/internal/api/handlers"
	domain "github.com/donaldgifford/card-price-watcher/pkg/types"
)

type fakeSnapshot []domain.WatchStatus

func (f fakeSnapshot) Snapshot() []domain.WatchStatus { return f }

func sampleStatuses() fakeSnapshot {
	polled := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	return fakeSnapshot{
		{
			Target: domain.WatchTarget{BlueprintID: 1234, PriceLimit: 500},
			Best: &domain.Listing{
				ID:          99,
				BlueprintID: 1234,
				Name:        "Lightning Bolt",
				Price:       domain.Price{Cents: 450, Currency: "EUR"},
				Seller:      domain.Seller{Username: "shop", CountryCode: "DE"},
			},
			LastPolledAt: &polled,
		},
		{
			Target:    domain.WatchTarget{BlueprintID: 5678, PriceLimit: 100},
			LastError: "unexpected status (status 503): down",
		},
	}
}

func TestWatchHandler_List(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   fakeSnapshot
		wantLen  int
		wantBody string
	}{
		{
			name:     "returns statuses",
			source:   sampleStatuses(),
			wantLen:  2,
			wantBody: `"Lightning Bolt"`,
		},
		{
			name:     "empty snapshot renders empty array",
			source:   nil,
			wantLen:  0,
			wantBody: `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			handlers.RegisterWatchRoutes(api, handlers.NewWatchHandler(tt.source))

			resp := api.Get("/api/v1/watches")
			require.Equal(t, http.StatusOK, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)

			var got []domain.WatchStatus
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestWatchHandler_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "found with best listing",
			path:       "/api/v1/watches/1234",
			wantStatus: http.StatusOK,
			wantBody:   `"cents":450`,
		},
		{
			name:       "found with last error",
			path:       "/api/v1/watches/5678",
			wantStatus: http.StatusOK,
			wantBody:   `status 503`,
		},
		{
			name:       "not watched",
			path:       "/api/v1/watches/1",
			wantStatus: http.StatusNotFound,
			wantBody:   `blueprint 1 is not watched`,
		},
		{
			name:       "invalid id",
			path:       "/api/v1/watches/abc",
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			handlers.RegisterWatchRoutes(api, handlers.NewWatchHandler(sampleStatuses()))

			resp := api.Get(tt.path)
			require.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
		})
	}
}
