package apiclient

import "github.com/cloudmesh-io/skymeta/pkg/metadata/models"

// StartDeleteObjectsRequest mirrors service.StartDeleteObjectsRequest.
type StartDeleteObjectsRequest struct {
	Bucket             string              `json:"bucket"`
	ObjectIdentifiers  map[string][]string `json:"object_identifiers"`
	MultipartUploadIDs map[string]string   `json:"multipart_upload_ids,omitempty"`
}

// DeleteMarkerInfo mirrors service.DeleteMarkerInfo.
type DeleteMarkerInfo struct {
	DeleteMarker bool    `json:"delete_marker"`
	VersionID    *string `json:"version_id"`
	ObjectID     uint64  `json:"object_id"`
}

// StartDeleteObjectsResponse mirrors service.StartDeleteObjectsResponse.
type StartDeleteObjectsResponse struct {
	Locators      map[string][]LocatorRef     `json:"locators"`
	DeleteMarkers map[string]DeleteMarkerInfo `json:"delete_markers"`
	OpType        map[string]models.OpType    `json:"op_type"`
}

// StartDeleteObjects calls POST /start_delete_objects.
func (c *Client) StartDeleteObjects(req StartDeleteObjectsRequest) (*StartDeleteObjectsResponse, error) {
	var resp StartDeleteObjectsResponse
	if err := c.post("/start_delete_objects", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CompleteDeleteObjectsRequest mirrors service.CompleteDeleteObjectsRequest.
type CompleteDeleteObjectsRequest struct {
	IDs                []uint64        `json:"ids"`
	MultipartUploadIDs []string        `json:"multipart_upload_ids,omitempty"`
	OpType             []models.OpType `json:"op_type"`
}

// CompleteDeleteObjects calls PATCH /complete_delete_objects.
func (c *Client) CompleteDeleteObjects(req CompleteDeleteObjectsRequest) error {
	return c.patch("/complete_delete_objects", req, nil)
}
