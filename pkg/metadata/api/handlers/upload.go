package handlers

import (
	"net/http"
	"time"

	"github.com/cloudmesh-io/skymeta/pkg/metadata/models"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/service"
)

// UploadHandler serves the upload state machine endpoints (§4.4, §6).
type UploadHandler struct {
	svc *service.Service
}

func NewUploadHandler(svc *service.Service) *UploadHandler {
	return &UploadHandler{svc: svc}
}

type startUploadRequest struct {
	Bucket           string `json:"bucket" validate:"required"`
	Key              string `json:"key" validate:"required"`
	ClientFromRegion string `json:"client_from_region" validate:"required"`
	Policy           string `json:"policy" validate:"required,oneof=push write_local copy_on_read"`
	IsMultipart      bool   `json:"is_multipart"`
	VersionID        string `json:"version_id"`
	CopySrcBucket    string `json:"copy_src_bucket"`
	CopySrcKey       string `json:"copy_src_key"`
}

// StartUpload handles POST /start_upload.
func (h *UploadHandler) StartUpload(w http.ResponseWriter, r *http.Request) {
	var req startUploadRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.svc.StartUpload(r.Context(), service.StartUploadRequest{
		Bucket:           req.Bucket,
		Key:              req.Key,
		ClientFromRegion: req.ClientFromRegion,
		Policy:           models.Policy(req.Policy),
		IsMultipart:      req.IsMultipart,
		VersionID:        req.VersionID,
		CopySrcBucket:    req.CopySrcBucket,
		CopySrcKey:       req.CopySrcKey,
	})
	if err != nil {
		HandleServiceError(w, err)
		return
	}
	WriteJSONOK(w, resp)
}

type completeUploadRequest struct {
	ID           uint64    `json:"id" validate:"required"`
	VersionID    string    `json:"version_id" validate:"required"`
	Size         int64     `json:"size" validate:"min=0"`
	ETag         string    `json:"etag" validate:"required"`
	LastModified time.Time `json:"last_modified" validate:"required"`
	Policy       string    `json:"policy" validate:"required,oneof=push write_local copy_on_read"`
}

// CompleteUpload handles PATCH /complete_upload.
func (h *UploadHandler) CompleteUpload(w http.ResponseWriter, r *http.Request) {
	var req completeUploadRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.svc.CompleteUpload(r.Context(), service.CompleteUploadRequest{
		ID:           req.ID,
		VersionID:    req.VersionID,
		Size:         req.Size,
		ETag:         req.ETag,
		LastModified: req.LastModified,
		Policy:       models.Policy(req.Policy),
	})
	if err != nil {
		HandleServiceError(w, err)
		return
	}
	WriteJSONOK(w, map[string]string{"status": "ok"})
}

type setMultipartIDRequest struct {
	ID                uint64 `json:"id" validate:"required"`
	MultipartUploadID string `json:"multipart_upload_id" validate:"required"`
}

// SetMultipartID handles PATCH /set_multipart_id.
func (h *UploadHandler) SetMultipartID(w http.ResponseWriter, r *http.Request) {
	var req setMultipartIDRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.SetMultipartID(r.Context(), service.SetMultipartIDRequest{
		ID:                req.ID,
		MultipartUploadID: req.MultipartUploadID,
	}); err != nil {
		HandleServiceError(w, err)
		return
	}
	WriteJSONOK(w, map[string]string{"status": "ok"})
}

type appendPartRequest struct {
	ID         uint64 `json:"id" validate:"required"`
	PartNumber int    `json:"part_number" validate:"required,min=1"`
	ETag       string `json:"etag" validate:"required"`
	Size       int64  `json:"size" validate:"min=0"`
}

// AppendPart handles PATCH /append_part.
func (h *UploadHandler) AppendPart(w http.ResponseWriter, r *http.Request) {
	var req appendPartRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.AppendPart(r.Context(), service.AppendPartRequest{
		ID:         req.ID,
		PartNumber: req.PartNumber,
		ETag:       req.ETag,
		Size:       req.Size,
	}); err != nil {
		HandleServiceError(w, err)
		return
	}
	WriteJSONOK(w, map[string]string{"status": "ok"})
}

type continueUploadRequest struct {
	Bucket            string `json:"bucket" validate:"required"`
	Key               string `json:"key" validate:"required"`
	MultipartUploadID string `json:"multipart_upload_id" validate:"required"`
	DoListParts       bool   `json:"do_list_parts"`
	CopySrcBucket     string `json:"copy_src_bucket"`
	CopySrcKey        string `json:"copy_src_key"`
	VersionID         string `json:"version_id"`
}

// ContinueUpload handles POST /continue_upload.
func (h *UploadHandler) ContinueUpload(w http.ResponseWriter, r *http.Request) {
	var req continueUploadRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.svc.ContinueUpload(r.Context(), service.ContinueUploadRequest{
		Bucket:            req.Bucket,
		Key:               req.Key,
		MultipartUploadID: req.MultipartUploadID,
		DoListParts:       req.DoListParts,
		CopySrcBucket:     req.CopySrcBucket,
		CopySrcKey:        req.CopySrcKey,
		VersionID:         req.VersionID,
	})
	if err != nil {
		HandleServiceError(w, err)
		return
	}
	WriteJSONOK(w, resp)
}
