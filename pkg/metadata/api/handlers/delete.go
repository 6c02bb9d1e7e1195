package handlers

import (
	"net/http"

	"github.com/cloudmesh-io/skymeta/pkg/metadata/models"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/service"
)

// DeleteHandler serves the delete state machine endpoints (§4.5, §6).
type DeleteHandler struct {
	svc *service.Service
}

func NewDeleteHandler(svc *service.Service) *DeleteHandler {
	return &DeleteHandler{svc: svc}
}

type startDeleteObjectsRequest struct {
	Bucket             string              `json:"bucket" validate:"required"`
	ObjectIdentifiers  map[string][]string `json:"object_identifiers" validate:"required"`
	MultipartUploadIDs map[string]string   `json:"multipart_upload_ids"`
}

// StartDeleteObjects handles POST /start_delete_objects.
func (h *DeleteHandler) StartDeleteObjects(w http.ResponseWriter, r *http.Request) {
	var req startDeleteObjectsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.svc.StartDeleteObjects(r.Context(), service.StartDeleteObjectsRequest{
		Bucket:             req.Bucket,
		ObjectIdentifiers:  req.ObjectIdentifiers,
		MultipartUploadIDs: req.MultipartUploadIDs,
	})
	if err != nil {
		HandleServiceError(w, err)
		return
	}
	WriteJSONOK(w, resp)
}

type completeDeleteObjectsRequest struct {
	IDs                []uint64 `json:"ids" validate:"required"`
	MultipartUploadIDs []string `json:"multipart_upload_ids"`
	OpType             []string `json:"op_type" validate:"required"`
}

// CompleteDeleteObjects handles PATCH /complete_delete_objects.
func (h *DeleteHandler) CompleteDeleteObjects(w http.ResponseWriter, r *http.Request) {
	var req completeDeleteObjectsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ops := make([]models.OpType, 0, len(req.OpType))
	for _, o := range req.OpType {
		ops = append(ops, models.OpType(o))
	}

	if err := h.svc.CompleteDeleteObjects(r.Context(), service.CompleteDeleteObjectsRequest{
		IDs:                req.IDs,
		MultipartUploadIDs: req.MultipartUploadIDs,
		OpType:             ops,
	}); err != nil {
		HandleServiceError(w, err)
		return
	}
	WriteJSONOK(w, map[string]string{"status": "ok"})
}
