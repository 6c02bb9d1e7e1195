package handlers

import (
	"net/http"

	"github.com/cloudmesh-io/skymeta/pkg/metadata/service"
)

// LocateHandler serves the read/locate endpoints (§4.6, §6).
type LocateHandler struct {
	svc *service.Service
}

func NewLocateHandler(svc *service.Service) *LocateHandler {
	return &LocateHandler{svc: svc}
}

type locateObjectRequest struct {
	Bucket           string `json:"bucket" validate:"required"`
	Key              string `json:"key" validate:"required"`
	ClientFromRegion string `json:"client_from_region" validate:"required"`
	VersionID        string `json:"version_id"`
}

// LocateObject handles POST /locate_object.
func (h *LocateHandler) LocateObject(w http.ResponseWriter, r *http.Request) {
	var req locateObjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.svc.LocateObject(r.Context(), service.LocateObjectRequest{
		Bucket: req.Bucket, Key: req.Key, ClientFromRegion: req.ClientFromRegion, VersionID: req.VersionID,
	})
	if err != nil {
		HandleServiceError(w, err)
		return
	}
	WriteJSONOK(w, resp)
}

// HeadObject handles POST /head_object.
func (h *LocateHandler) HeadObject(w http.ResponseWriter, r *http.Request) {
	var req locateObjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.svc.HeadObject(r.Context(), service.LocateObjectRequest{
		Bucket: req.Bucket, Key: req.Key, ClientFromRegion: req.ClientFromRegion, VersionID: req.VersionID,
	})
	if err != nil {
		HandleServiceError(w, err)
		return
	}
	WriteJSONOK(w, resp)
}

type startWarmupRequest struct {
	Bucket        string   `json:"bucket" validate:"required"`
	Key           string   `json:"key" validate:"required"`
	WarmupRegions []string `json:"warmup_regions" validate:"required,min=1"`
	VersionID     string   `json:"version_id"`
}

// StartWarmup handles POST /start_warmup.
func (h *LocateHandler) StartWarmup(w http.ResponseWriter, r *http.Request) {
	var req startWarmupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.svc.StartWarmup(r.Context(), service.StartWarmupRequest{
		Bucket: req.Bucket, Key: req.Key, WarmupRegions: req.WarmupRegions, VersionID: req.VersionID,
	})
	if err != nil {
		HandleServiceError(w, err)
		return
	}
	WriteJSONOK(w, resp)
}

type listObjectsRequest struct {
	Bucket     string `json:"bucket" validate:"required"`
	Prefix     string `json:"prefix"`
	StartAfter string `json:"start_after"`
	MaxKeys    int    `json:"max_keys"`
}

// ListObjects handles POST /list_objects.
func (h *LocateHandler) ListObjects(w http.ResponseWriter, r *http.Request) {
	var req listObjectsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.svc.ListObjects(r.Context(), service.ListObjectsRequest{
		Bucket: req.Bucket, Prefix: req.Prefix, StartAfter: req.StartAfter, MaxKeys: req.MaxKeys,
	})
	if err != nil {
		HandleServiceError(w, err)
		return
	}
	WriteJSONOK(w, resp)
}

// ListObjectsVersioning handles POST /list_objects_versioning.
func (h *LocateHandler) ListObjectsVersioning(w http.ResponseWriter, r *http.Request) {
	var req listObjectsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.svc.ListObjectsVersioning(r.Context(), service.ListObjectsRequest{
		Bucket: req.Bucket, Prefix: req.Prefix, StartAfter: req.StartAfter, MaxKeys: req.MaxKeys,
	})
	if err != nil {
		HandleServiceError(w, err)
		return
	}
	WriteJSONOK(w, resp)
}

type listMultipartUploadsRequest struct {
	Bucket string `json:"bucket" validate:"required"`
	Prefix string `json:"prefix"`
}

// ListMultipartUploads handles POST /list_multipart_uploads.
func (h *LocateHandler) ListMultipartUploads(w http.ResponseWriter, r *http.Request) {
	var req listMultipartUploadsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.svc.ListMultipartUploads(r.Context(), service.ListMultipartUploadsRequest{
		Bucket: req.Bucket, Prefix: req.Prefix,
	})
	if err != nil {
		HandleServiceError(w, err)
		return
	}
	WriteJSONOK(w, resp)
}

type listPartsRequest struct {
	Bucket     string `json:"bucket" validate:"required"`
	Key        string `json:"key" validate:"required"`
	UploadID   string `json:"upload_id" validate:"required"`
	PartNumber *int   `json:"part_number"`
}

// ListParts handles POST /list_parts.
func (h *LocateHandler) ListParts(w http.ResponseWriter, r *http.Request) {
	var req listPartsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.svc.ListParts(r.Context(), service.ListPartsRequest{
		Bucket: req.Bucket, Key: req.Key, UploadID: req.UploadID, PartNumber: req.PartNumber,
	})
	if err != nil {
		HandleServiceError(w, err)
		return
	}
	WriteJSONOK(w, resp)
}

// LocateObjectStatus handles POST /locate_object_status.
func (h *LocateHandler) LocateObjectStatus(w http.ResponseWriter, r *http.Request) {
	var req locateObjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.svc.LocateObjectStatus(r.Context(), service.LocateObjectStatusRequest{
		Bucket: req.Bucket, Key: req.Key, ClientFromRegion: req.ClientFromRegion, VersionID: req.VersionID,
	})
	if err != nil {
		HandleServiceError(w, err)
		return
	}
	WriteJSONOK(w, resp)
}
