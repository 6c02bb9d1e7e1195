package handlers

import (
	"net/http"
	"time"

	"github.com/cloudmesh-io/skymeta/pkg/metadata/service"
)

// MetricsHandler serves the metrics sink endpoints (§4.7, §6).
type MetricsHandler struct {
	svc *service.Service
}

func NewMetricsHandler(svc *service.Service) *MetricsHandler {
	return &MetricsHandler{svc: svc}
}

type recordMetricsRequest struct {
	RequestedRegion string    `json:"requested_region" validate:"required"`
	ClientRegion    string    `json:"client_region" validate:"required"`
	Operation       string    `json:"operation" validate:"required"`
	Latency         float64   `json:"latency" validate:"min=0"`
	Timestamp       time.Time `json:"timestamp" validate:"required"`
	ObjectSize      int64     `json:"object_size" validate:"min=0"`
}

// RecordMetrics handles POST /record_metrics.
func (h *MetricsHandler) RecordMetrics(w http.ResponseWriter, r *http.Request) {
	var req recordMetricsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.RecordMetrics(r.Context(), service.RecordMetricsRequest{
		RequestedRegion: req.RequestedRegion,
		ClientRegion:    req.ClientRegion,
		Operation:       req.Operation,
		Latency:         req.Latency,
		Timestamp:       req.Timestamp,
		ObjectSize:      req.ObjectSize,
	}); err != nil {
		HandleServiceError(w, err)
		return
	}
	WriteJSONOK(w, map[string]string{"status": "ok"})
}

type listMetricsRequest struct {
	ClientRegion string `json:"client_region" validate:"required"`
}

// ListMetrics handles POST /list_metrics.
func (h *MetricsHandler) ListMetrics(w http.ResponseWriter, r *http.Request) {
	var req listMetricsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.svc.ListMetrics(r.Context(), service.ListMetricsRequest{ClientRegion: req.ClientRegion})
	if err != nil {
		HandleServiceError(w, err)
		return
	}
	WriteJSONOK(w, resp)
}
