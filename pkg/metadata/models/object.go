package models

import "time"

// Status is the closed lifecycle enum shared by LogicalObject and
// PhysicalObjectLocator. Any value other than StatusReady is treated as the
// failure/not-ready branch (§9: the source's `status not in Status.ready`
// membership test is almost certainly a bug; equality is what's preserved here).
type Status string

const (
	StatusPending         Status = "pending"
	StatusReady           Status = "ready"
	StatusPendingDeletion Status = "pending_deletion"
)

// LogicalObject is the versioned, cloud-agnostic identity of an object.
// Multiple LogicalObjects may share (bucket, key); the one with the greatest
// ID is latest. ID is store-assigned and monotonically increasing, and also
// serves as the version id exposed once versioning has ever been touched.
type LogicalObject struct {
	ID                uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Bucket            string     `gorm:"size:255;not null;index:idx_logical_bucket_key" json:"bucket"`
	Key               string     `gorm:"size:1024;not null;index:idx_logical_bucket_key" json:"key"`
	Size              *int64     `json:"size,omitempty"`
	LastModified      *time.Time `json:"last_modified,omitempty"`
	ETag              *string    `gorm:"size:255" json:"etag,omitempty"`
	Status            Status     `gorm:"size:20;not null;default:pending" json:"status"`
	MultipartUploadID *string    `gorm:"size:255;index" json:"multipart_upload_id,omitempty"`
	DeleteMarker      bool       `gorm:"not null;default:false" json:"delete_marker"`
	VersionSuspended  bool       `gorm:"not null;default:false" json:"version_suspended"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	PhysicalLocators []PhysicalObjectLocator       `gorm:"foreignKey:LogicalObjectID" json:"physical_object_locators,omitempty"`
	MultipartParts   []LogicalMultipartUploadPart  `gorm:"foreignKey:LogicalObjectID" json:"multipart_upload_parts,omitempty"`
}

// TableName returns the table name for LogicalObject.
func (LogicalObject) TableName() string {
	return "logical_objects"
}

// IsReady reports whether the object's status is ready. It checks neither
// that size, etag and last_modified are set nor that a ready physical
// locator exists; callers that need the full I4 invariant should check those
// themselves.
func (o *LogicalObject) IsReady() bool {
	return o.Status == StatusReady
}

// PhysicalObjectLocator is one region/cloud replica of a LogicalObject,
// including that cloud's opaque version identifier. At most one locator per
// logical object is primary; LocationTag is unique per logical object.
type PhysicalObjectLocator struct {
	ID                uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	LogicalObjectID   uint64     `gorm:"not null;index:idx_physical_logical_tag" json:"logical_object_id"`
	LocationTag       string     `gorm:"size:100;not null;index:idx_physical_logical_tag" json:"location_tag"`
	Cloud             string     `gorm:"size:50;not null" json:"cloud"`
	Region            string     `gorm:"size:100;not null" json:"region"`
	Bucket            string     `gorm:"size:255;not null" json:"bucket"`
	Key               string     `gorm:"size:1024;not null" json:"key"`
	VersionID         *string    `gorm:"size:255" json:"version_id,omitempty"`
	Status            Status     `gorm:"size:20;not null;default:pending" json:"status"`
	IsPrimary         bool       `gorm:"not null;default:false" json:"is_primary"`
	LockAcquiredTS    *time.Time `json:"lock_acquired_ts,omitempty"`
	MultipartUploadID *string    `gorm:"size:255" json:"multipart_upload_id,omitempty"`

	MultipartParts []PhysicalMultipartUploadPart `gorm:"foreignKey:PhysicalObjectLocatorID" json:"multipart_upload_parts,omitempty"`
}

// TableName returns the table name for PhysicalObjectLocator.
func (PhysicalObjectLocator) TableName() string {
	return "physical_object_locators"
}

// LogicalMultipartUploadPart is maintained only on the primary locator's commits.
type LogicalMultipartUploadPart struct {
	ID              uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	LogicalObjectID uint64 `gorm:"not null;uniqueIndex:idx_logical_part" json:"logical_object_id"`
	PartNumber      int    `gorm:"not null;uniqueIndex:idx_logical_part" json:"part_number"`
	ETag            string `gorm:"size:255;not null" json:"etag"`
	Size            int64  `gorm:"not null" json:"size"`
}

// TableName returns the table name for LogicalMultipartUploadPart.
func (LogicalMultipartUploadPart) TableName() string {
	return "logical_multipart_upload_parts"
}

// PhysicalMultipartUploadPart mirrors LogicalMultipartUploadPart on a single
// physical locator. AppendPart upserts by (PhysicalObjectLocatorID, PartNumber).
type PhysicalMultipartUploadPart struct {
	ID                      uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	PhysicalObjectLocatorID uint64 `gorm:"not null;uniqueIndex:idx_physical_part" json:"physical_object_locator_id"`
	PartNumber              int    `gorm:"not null;uniqueIndex:idx_physical_part" json:"part_number"`
	ETag                    string `gorm:"size:255;not null" json:"etag"`
	Size                    int64  `gorm:"not null" json:"size"`
}

// TableName returns the table name for PhysicalMultipartUploadPart.
func (PhysicalMultipartUploadPart) TableName() string {
	return "physical_multipart_upload_parts"
}
