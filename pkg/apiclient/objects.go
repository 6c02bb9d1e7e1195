package apiclient

import "time"

// LocatorRef mirrors service.LocatorRef.
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

// LocateObjectRequest mirrors service.LocateObjectRequest.
type LocateObjectRequest struct {
	Bucket           string `json:"bucket"`
	Key              string `json:"key"`
	ClientFromRegion string `json:"client_from_region"`
	VersionID        string `json:"version_id,omitempty"`
}

// LocateObjectResponse mirrors service.LocateObjectResponse.
type LocateObjectResponse struct {
	LogicalObjectID uint64     `json:"logical_object_id"`
	VersionID       *string    `json:"version_id,omitempty"`
	Locator         LocatorRef `json:"locator"`
}

// LocateObject calls POST /locate_object.
func (c *Client) LocateObject(req LocateObjectRequest) (*LocateObjectResponse, error) {
	var resp LocateObjectResponse
	if err := c.post("/locate_object", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HeadObjectResponse mirrors service.HeadObjectResponse.
type HeadObjectResponse struct {
	LogicalObjectID uint64     `json:"logical_object_id"`
	VersionID       *string    `json:"version_id,omitempty"`
	Size            *int64     `json:"size,omitempty"`
	ETag            *string    `json:"etag,omitempty"`
	LastModified    *time.Time `json:"last_modified,omitempty"`
	DeleteMarker    bool       `json:"delete_marker"`
}

// HeadObject calls POST /head_object.
func (c *Client) HeadObject(req LocateObjectRequest) (*HeadObjectResponse, error) {
	var resp HeadObjectResponse
	if err := c.post("/head_object", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListObjectsRequest mirrors service.ListObjectsRequest.
type ListObjectsRequest struct {
	Bucket     string `json:"bucket"`
	Prefix     string `json:"prefix,omitempty"`
	StartAfter string `json:"start_after,omitempty"`
	MaxKeys    int    `json:"max_keys,omitempty"`
}

// ObjectResponse mirrors service.ObjectResponse.
type ObjectResponse struct {
	Key          string     `json:"key"`
	VersionID    *string    `json:"version_id,omitempty"`
	Size         *int64     `json:"size,omitempty"`
	ETag         *string    `json:"etag,omitempty"`
	LastModified *time.Time `json:"last_modified,omitempty"`
}

// ListObjects calls POST /list_objects.
func (c *Client) ListObjects(req ListObjectsRequest) ([]ObjectResponse, error) {
	var resp []ObjectResponse
	if err := c.post("/list_objects", req, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ListObjectsVersioning calls POST /list_objects_versioning.
func (c *Client) ListObjectsVersioning(req ListObjectsRequest) ([]ObjectResponse, error) {
	var resp []ObjectResponse
	if err := c.post("/list_objects_versioning", req, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ObjectStatus mirrors service.ObjectStatus.
type ObjectStatus struct {
	LocationTag string `json:"location_tag"`
	Status      string `json:"status"`
}

// LocateObjectStatus calls POST /locate_object_status.
func (c *Client) LocateObjectStatus(req LocateObjectRequest) ([]ObjectStatus, error) {
	var resp []ObjectStatus
	if err := c.post("/locate_object_status", req, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
