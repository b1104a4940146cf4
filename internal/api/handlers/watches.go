package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/card-price-watcher/pkg/types"
)

// SnapshotProvider returns the most recently published watch statuses.
type SnapshotProvider interface {
	Snapshot() []domain.WatchStatus
}

// WatchHandler serves the current state of every watched blueprint.
type WatchHandler struct {
	source SnapshotProvider
}

// NewWatchHandler creates a new WatchHandler.
func NewWatchHandler(s SnapshotProvider) *WatchHandler {
	return &WatchHandler{source: s}
}

// ListWatchesOutput is the response for GET /api/v1/watches.
type ListWatchesOutput struct {
	Body []domain.WatchStatus
}

// List returns every watch in configuration order.
func (h *WatchHandler) List(_ context.Context, _ *struct{}) (*ListWatchesOutput, error) {
	statuses := h.source.Snapshot()
	if statuses == nil {
		statuses = []domain.WatchStatus{}
	}
	return &ListWatchesOutput{Body: statuses}, nil
}

// GetWatchInput identifies a watch by blueprint.
type GetWatchInput struct {
	BlueprintID int64 `path:"blueprint_id" minimum:"1" doc:"CardTrader blueprint id"`
}

// GetWatchOutput is the response for GET /api/v1/watches/{blueprint_id}.
type GetWatchOutput struct {
	Body domain.WatchStatus
}

// Get returns the status of a single blueprint.
func (h *WatchHandler) Get(_ context.Context, in *GetWatchInput) (*GetWatchOutput, error) {
	for _, st := range h.source.Snapshot() {
		if st.Target.BlueprintID == in.BlueprintID {
			return &GetWatchOutput{Body: st}, nil
		}
	}
	return nil, huma.Error404NotFound("blueprint " + strconv.FormatInt(in.BlueprintID, 10) + " is not watched")
}

// RegisterWatchRoutes registers the watch status routes on the Huma API.
func RegisterWatchRoutes(api huma.API, h *WatchHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-watches",
		Method:      http.MethodGet,
		Path:        "/api/v1/watches",
		Summary:     "List watches",
		Description: "Returns every watched blueprint with its current best listing.",
		Tags:        []string{"watches"},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "get-watch",
		Method:      http.MethodGet,
		Path:        "/api/v1/watches/{blueprint_id}",
		Summary:     "Get a watch",
		Description: "Returns the current best listing of one blueprint.",
		Tags:        []string{"watches"},
		Errors:      []int{http.StatusNotFound},
	}, h.Get)
}
