package store

import (
	"context"

	"github.com/cloudmesh-io/skymeta/pkg/metadata/models"
)

// GetBucket fetches a bucket with its physical locators eager-loaded.
func GetBucket(ctx context.Context, tx *Tx, bucket string) (*models.LogicalBucket, error) {
	return getByField[models.LogicalBucket](tx.DB(), ctx, "bucket", bucket, models.ErrNotFound, "Locators")
}

// CreateBucket inserts a new logical bucket with its physical locators.
func CreateBucket(ctx context.Context, tx *Tx, bucket *models.LogicalBucket) error {
	return tx.Add(ctx, bucket)
}

// SetVersioning updates a bucket's versioning state. Once moved away from
// Unset it can only toggle between Enabled and Suspended (§3): callers must
// enforce that at the policy layer before calling this.
func SetVersioning(ctx context.Context, tx *Tx, bucket string, state models.VersioningState) error {
	return tx.DB().WithContext(ctx).
		Model(&models.LogicalBucket{}).
		Where("bucket = ?", bucket).
		Update("version_enabled", state).Error
}
