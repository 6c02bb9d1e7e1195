package apiclient

import "time"

// RecordMetricsRequest mirrors service.RecordMetricsRequest.
type RecordMetricsRequest struct {
	RequestedRegion string    `json:"requested_region"`
	ClientRegion    string    `json:"client_region"`
	Operation       string    `json:"operation"`
	Latency         float64   `json:"latency"`
	Timestamp       time.Time `json:"timestamp"`
	ObjectSize      int64     `json:"object_size"`
}

// RecordMetrics calls POST /record_metrics.
func (c *Client) RecordMetrics(req RecordMetricsRequest) error {
	return c.post("/record_metrics", req, nil)
}

// StatisticsObject mirrors models.StatisticsObject for CLI display purposes.
type StatisticsObject struct {
	RequestedRegion string    `json:"requested_region"`
	ClientRegion    string    `json:"client_region"`
	Operation       string    `json:"operation"`
	LatencyMs       float64   `json:"latency"`
	Timestamp       time.Time `json:"timestamp"`
	ObjectSize      int64     `json:"object_size"`
}

// ListMetricsResponse mirrors service.ListMetricsResponse.
type ListMetricsResponse struct {
	Count   int                `json:"count"`
	Metrics []StatisticsObject `json:"metrics"`
}

// ListMetrics calls POST /list_metrics.
func (c *Client) ListMetrics(clientRegion string) (*ListMetricsResponse, error) {
	var resp ListMetricsResponse
	if err := c.post("/list_metrics", map[string]string{"client_region": clientRegion}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
