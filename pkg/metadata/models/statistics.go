package models

import "time"

// StatisticsObject is an append-only record of one client-observed operation,
// ingested by record_metrics and queried back by client region.
type StatisticsObject struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	RequestedRegion string    `gorm:"size:100;not null" json:"requested_region"`
	ClientRegion    string    `gorm:"size:100;not null;index" json:"client_region"`
	Operation       string    `gorm:"size:100;not null" json:"operation"`
	LatencyMs       float64   `gorm:"not null" json:"latency"`
	Timestamp       time.Time `gorm:"not null;index" json:"timestamp"`
	ObjectSize      int64     `json:"object_size"`
}

// TableName returns the table name for StatisticsObject.
func (StatisticsObject) TableName() string {
	return "statistics_objects"
}
