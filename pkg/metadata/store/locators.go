package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cloudmesh-io/skymeta/pkg/metadata/models"
)

// GetLocator fetches a single physical object locator by id.
func GetLocator(ctx context.Context, tx *Tx, id uint64) (*models.PhysicalObjectLocator, error) {
	return getByField[models.PhysicalObjectLocator](tx.DB(), ctx, "id", id, models.ErrNotFound, "MultipartParts")
}

// LocatorByTag returns the locator for a logical object at a given location tag.
func LocatorByTag(ctx context.Context, tx *Tx, logicalObjectID uint64, tag string) (*models.PhysicalObjectLocator, error) {
	var loc models.PhysicalObjectLocator
	err := tx.DB().WithContext(ctx).
		Where("logical_object_id = ? AND location_tag = ?", logicalObjectID, tag).
		First(&loc).Error
	if err != nil {
		return nil, convertNotFoundError(err, models.ErrNotFound)
	}
	return &loc, nil
}

// LocatorsForObject returns every physical locator attached to a logical object.
func LocatorsForObject(ctx context.Context, tx *Tx, logicalObjectID uint64) ([]*models.PhysicalObjectLocator, error) {
	apply := func(q *gorm.DB) *gorm.DB {
		return q.Where("logical_object_id = ?", logicalObjectID)
	}
	return listAll[models.PhysicalObjectLocator](tx.DB(), ctx, apply, "MultipartParts")
}

// SetMultipartID records the cloud-native upload id on a specific physical
// locator (§4.4 SetMultipartId).
func SetMultipartID(ctx context.Context, tx *Tx, locatorID uint64, uploadID string) error {
	result := tx.DB().WithContext(ctx).
		Model(&models.PhysicalObjectLocator{}).
		Where("id = ?", locatorID).
		Update("multipart_upload_id", uploadID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// CompleteLocator transitions a physical locator to ready, clears its lock,
// and stores the cloud-returned version id (§4.4 CompleteUpload).
func CompleteLocator(ctx context.Context, tx *Tx, locatorID uint64, versionID string) error {
	result := tx.DB().WithContext(ctx).
		Model(&models.PhysicalObjectLocator{}).
		Where("id = ?", locatorID).
		Updates(map[string]any{
			"status":           models.StatusReady,
			"lock_acquired_ts": nil,
			"version_id":       versionID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// MarkLocatorPendingDeletion flips a locator to pending_deletion, stamping
// lock_acquired_ts, and returns models.ErrConflict if it was not ready
// (§4.5 delete classification), unless allowPending is set for a
// multipart-scoped delete which also accepts pending locators.
func MarkLocatorPendingDeletion(ctx context.Context, tx *Tx, locatorID uint64, now any, allowPending bool) error {
	allowed := []models.Status{models.StatusReady}
	if allowPending {
		allowed = append(allowed, models.StatusPending)
	}
	result := tx.DB().WithContext(ctx).
		Model(&models.PhysicalObjectLocator{}).
		Where("id = ? AND status IN ?", locatorID, allowed).
		Updates(map[string]any{
			"status":           models.StatusPendingDeletion,
			"lock_acquired_ts": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrConflict
	}
	return nil
}

// DeleteReadyLocator removes a locator that is in pending_deletion
// (§4.5 CompleteDeleteObjects op=delete). Returns models.ErrConflict if the
// locator is not in that state.
func DeleteReadyLocator(ctx context.Context, tx *Tx, locatorID uint64) error {
	var loc models.PhysicalObjectLocator
	if err := tx.DB().WithContext(ctx).Where("id = ?", locatorID).First(&loc).Error; err != nil {
		return convertNotFoundError(err, models.ErrNotFound)
	}
	if loc.Status != models.StatusPendingDeletion {
		return models.ErrConflict
	}
	return tx.Delete(ctx, &loc)
}

// PromoteLocatorToReady flips a pending locator to ready and clears its lock
// (§4.5 CompleteDeleteObjects op=add). Returns models.ErrConflict if it was
// not pending.
func PromoteLocatorToReady(ctx context.Context, tx *Tx, locatorID uint64) error {
	result := tx.DB().WithContext(ctx).
		Model(&models.PhysicalObjectLocator{}).
		Where("id = ? AND status = ?", locatorID, models.StatusPending).
		Updates(map[string]any{
			"status":           models.StatusReady,
			"lock_acquired_ts": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrConflict
	}
	return nil
}

// UpsertMultipartPart upserts a PhysicalMultipartUploadPart on (locatorID,
// partNumber), and if primary is true also upserts the mirroring
// LogicalMultipartUploadPart (§4.4 AppendPart, P7).
func UpsertMultipartPart(ctx context.Context, tx *Tx, locatorID, logicalObjectID uint64, partNumber int, etag string, size int64, primary bool) error {
	physical := models.PhysicalMultipartUploadPart{
		PhysicalObjectLocatorID: locatorID,
		PartNumber:              partNumber,
		ETag:                    etag,
		Size:                    size,
	}
	err := tx.DB().WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "physical_object_locator_id"}, {Name: "part_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"etag", "size"}),
	}).Create(&physical).Error
	if err != nil {
		return err
	}

	if !primary {
		return nil
	}

	logical := models.LogicalMultipartUploadPart{
		LogicalObjectID: logicalObjectID,
		PartNumber:      partNumber,
		ETag:            etag,
		Size:            size,
	}
	return tx.DB().WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "logical_object_id"}, {Name: "part_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"etag", "size"}),
	}).Create(&logical).Error
}
