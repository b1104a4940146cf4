package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// CycleTrigger starts an out-of-schedule watch cycle.
type CycleTrigger interface {
	Trigger() bool
}

// CycleHandler handles manual cycle trigger requests.
type CycleHandler struct {
	trigger CycleTrigger
}

// NewCycleHandler creates a new CycleHandler.
func NewCycleHandler(t CycleTrigger) *CycleHandler {
	return &CycleHandler{trigger: t}
}

// TriggerOutput is the response body for the trigger endpoint.
type TriggerOutput struct {
	Body struct {
		Status string `json:"status" example:"cycle started" doc:"Trigger status"`
	}
}

// Trigger starts a cycle unless one is already running.
func (h *CycleHandler) Trigger(_ context.Context, _ *struct{}) (*TriggerOutput, error) {
	if !h.trigger.Trigger() {
		return nil, huma.Error409Conflict("a watch cycle is already running")
	}

	resp := &TriggerOutput{}
	resp.Body.Status = "cycle started"
	return resp, nil
}

// RegisterTriggerRoutes registers the trigger endpoint with the Huma API.
func RegisterTriggerRoutes(api huma.API, h *CycleHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "trigger-cycle",
		Method:        http.MethodPost,
		Path:          "/api/v1/cycles",
		Summary:       "Trigger a watch cycle",
		Description:   "Polls every watched blueprint now, outside the regular interval.",
		Tags:          []string{"cycles"},
		DefaultStatus: http.StatusAccepted,
		Errors:        []int{http.StatusConflict},
	}, h.Trigger)
}
