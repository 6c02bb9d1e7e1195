// Package service implements the component-level operations of the metadata
// control plane (§4.4-§4.7): the upload and delete state machines, the
// read/locate paths, and the metrics sink. Each exported method runs inside
// one store transaction, except StartDeleteObjects, which commits and opens
// a new one after each key that receives a new delete marker. Each emits at
// most one of the §7 error kinds.
package service

import (
	"time"

	"github.com/cloudmesh-io/skymeta/pkg/metadata/models"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/store"
)

// Service wires the pure policy functions to the entity store and exposes
// the HTTP façade's component-call surface (§6).
type Service struct {
	store *store.GORMStore
}

// New constructs a Service bound to the given metadata store.
func New(s *store.GORMStore) *Service {
	return &Service{store: s}
}

// LocatorRef is the wire representation of a PhysicalObjectLocator.
type LocatorRef struct {
	ID          uint64  `json:"id"`
	LocationTag string  `json:"location_tag"`
	Cloud       string  `json:"cloud"`
	Region      string  `json:"region"`
	Bucket      string  `json:"bucket"`
	Key         string  `json:"key"`
	VersionID   *string `json:"version_id,omitempty"`
	IsPrimary   bool    `json:"is_primary"`
}

func locatorRef(l *models.PhysicalObjectLocator) LocatorRef {
	return LocatorRef{
		ID:          l.ID,
		LocationTag: l.LocationTag,
		Cloud:       l.Cloud,
		Region:      l.Region,
		Bucket:      l.Bucket,
		Key:         l.Key,
		VersionID:   l.VersionID,
		IsPrimary:   l.IsPrimary,
	}
}

// StartUploadRequest is the request body for POST /start_upload.
type StartUploadRequest struct {
	Bucket           string
	Key              string
	ClientFromRegion string
	Policy           models.Policy
	IsMultipart      bool
	VersionID        string
	CopySrcBucket    string
	CopySrcKey       string
}

// StartUploadResponse is the response body for POST /start_upload.
type StartUploadResponse struct {
	MultipartUploadID *string      `json:"multipart_upload_id,omitempty"`
	Locators          []LocatorRef `json:"locators"`
	CopySrcBuckets    []string     `json:"copy_src_buckets"`
	CopySrcKeys       []string     `json:"copy_src_keys"`
}

// CompleteUploadRequest is the request body for PATCH /complete_upload.
type CompleteUploadRequest struct {
	ID           uint64
	VersionID    string
	Size         int64
	ETag         string
	LastModified time.Time
	Policy       models.Policy
}

// SetMultipartIDRequest is the request body for PATCH /set_multipart_id.
type SetMultipartIDRequest struct {
	ID                uint64
	MultipartUploadID string
}

// AppendPartRequest is the request body for PATCH /append_part.
type AppendPartRequest struct {
	ID         uint64
	PartNumber int
	ETag       string
	Size       int64
}

// ContinueUploadRequest is the request body for POST /continue_upload.
type ContinueUploadRequest struct {
	Bucket            string
	Key               string
	MultipartUploadID string
	DoListParts       bool
	CopySrcBucket     string
	CopySrcKey        string
	VersionID         string
}

// PartResponse is one multipart part in a ContinueUploadResponse or ListParts result.
type PartResponse struct {
	PartNumber int    `json:"part_number"`
	ETag       string `json:"etag"`
	Size       int64  `json:"size"`
}

// ContinueUploadResponse describes one sibling locator of a pending multipart upload.
type ContinueUploadResponse struct {
	LocatorID         uint64         `json:"locator_id"`
	LocationTag       string         `json:"location_tag"`
	Cloud             string         `json:"cloud"`
	Region            string         `json:"region"`
	Bucket            string         `json:"bucket"`
	Key               string         `json:"key"`
	MultipartUploadID *string        `json:"multipart_upload_id,omitempty"`
	Parts             []PartResponse `json:"parts,omitempty"`
}

// StartDeleteObjectsRequest is the request body for POST /start_delete_objects.
type StartDeleteObjectsRequest struct {
	Bucket             string
	ObjectIdentifiers  map[string][]string
	MultipartUploadIDs map[string]string
}

// DeleteMarkerInfo is one entry of StartDeleteObjectsResponse.DeleteMarkers.
// ObjectID is the affected LogicalObject's ID and is always populated,
// independent of VersionID (which is only set when the bucket's versioning
// is not unset and the affected object is not version-suspended);
// CompleteDeleteObjects for OpTypeAdd and OpTypeReplace keys on this ID.
type DeleteMarkerInfo struct {
	DeleteMarker bool    `json:"delete_marker"`
	VersionID    *string `json:"version_id"`
	ObjectID     uint64  `json:"object_id"`
}

// StartDeleteObjectsResponse is the response body for POST /start_delete_objects.
type StartDeleteObjectsResponse struct {
	Locators      map[string][]LocatorRef     `json:"locators"`
	DeleteMarkers map[string]DeleteMarkerInfo `json:"delete_markers"`
	OpType        map[string]models.OpType    `json:"op_type"`
}

// CompleteDeleteObjectsRequest is the request body for PATCH /complete_delete_objects.
type CompleteDeleteObjectsRequest struct {
	IDs                []uint64
	MultipartUploadIDs []string
	OpType             []models.OpType
}

// LocateObjectRequest is the request body for POST /locate_object and /head_object.
type LocateObjectRequest struct {
	Bucket           string
	Key              string
	ClientFromRegion string
	VersionID        string
}

// LocateObjectResponse is the response body for POST /locate_object.
type LocateObjectResponse struct {
	LogicalObjectID uint64     `json:"logical_object_id"`
	VersionID       *string    `json:"version_id,omitempty"`
	Locator         LocatorRef `json:"locator"`
}

// HeadObjectResponse is the response body for POST /head_object.
type HeadObjectResponse struct {
	LogicalObjectID uint64     `json:"logical_object_id"`
	VersionID       *string    `json:"version_id,omitempty"`
	Size            *int64     `json:"size,omitempty"`
	ETag            *string    `json:"etag,omitempty"`
	LastModified    *time.Time `json:"last_modified,omitempty"`
	DeleteMarker    bool       `json:"delete_marker"`
}

// StartWarmupRequest is the request body for POST /start_warmup.
type StartWarmupRequest struct {
	Bucket        string
	Key           string
	WarmupRegions []string
	VersionID     string
}

// StartWarmupResponse is the response body for POST /start_warmup.
type StartWarmupResponse struct {
	SrcLocator  LocatorRef   `json:"src_locator"`
	DstLocators []LocatorRef `json:"dst_locators"`
}

// ListObjectsRequest is the request body for POST /list_objects and /list_objects_versioning.
type ListObjectsRequest struct {
	Bucket     string
	Prefix     string
	StartAfter string
	MaxKeys    int
}

// ObjectResponse is one entry of a list_objects(_versioning) response.
type ObjectResponse struct {
	Key          string     `json:"key"`
	VersionID    *string    `json:"version_id,omitempty"`
	Size         *int64     `json:"size,omitempty"`
	ETag         *string    `json:"etag,omitempty"`
	LastModified *time.Time `json:"last_modified,omitempty"`
}

// ListMultipartUploadsRequest is the request body for POST /list_multipart_uploads.
type ListMultipartUploadsRequest struct {
	Bucket string
	Prefix string
}

// MultipartResponse is one entry of a list_multipart_uploads response.
type MultipartResponse struct {
	Key      string `json:"key"`
	UploadID string `json:"upload_id"`
}

// ListPartsRequest is the request body for POST /list_parts.
type ListPartsRequest struct {
	Bucket     string
	Key        string
	UploadID   string
	PartNumber *int
}

// LocateObjectStatusRequest is the request body for POST /locate_object_status.
type LocateObjectStatusRequest struct {
	Bucket           string
	Key              string
	ClientFromRegion string
	VersionID        string
}

// ObjectStatus is one entry of a locate_object_status response.
type ObjectStatus struct {
	LocationTag string        `json:"location_tag"`
	Status      models.Status `json:"status"`
}

// RecordMetricsRequest is the request body for POST /record_metrics.
type RecordMetricsRequest struct {
	RequestedRegion string
	ClientRegion    string
	Operation       string
	Latency         float64
	Timestamp       time.Time
	ObjectSize      int64
}

// ListMetricsRequest is the request body for POST /list_metrics.
type ListMetricsRequest struct {
	ClientRegion string
}

// ListMetricsResponse is the response body for POST /list_metrics.
type ListMetricsResponse struct {
	Count   int                      `json:"count"`
	Metrics []models.StatisticsObject `json:"metrics"`
}
