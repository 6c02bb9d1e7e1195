package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/cloudmesh-io/skymeta/pkg/metadata/models"
)

// RecordMetrics inserts one append-only statistics row (§4.7).
func RecordMetrics(ctx context.Context, tx *Tx, stat *models.StatisticsObject) error {
	return tx.Add(ctx, stat)
}

// ListMetrics returns every statistics row for a given client region.
func ListMetrics(ctx context.Context, tx *Tx, clientRegion string) ([]*models.StatisticsObject, error) {
	apply := func(q *gorm.DB) *gorm.DB {
		return q.Where("client_region = ?", clientRegion).Order("timestamp ASC")
	}
	return listAll[models.StatisticsObject](tx.DB(), ctx, apply)
}
