package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudmesh-io/skymeta/internal/telemetry"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/models"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/store"
)

// StartDeleteObjects reproduces S3 delete semantics across the three bucket
// versioning modes (§4.5). Each key is classified independently as add,
// replace, or delete; the add branch commits once mid-traversal so its newly
// inserted rows are visible to the rest of the loop (§9 notes this as a
// deliberate non-atomicity, not an oversight).
func (s *Service) StartDeleteObjects(ctx context.Context, req StartDeleteObjectsRequest) (resp *StartDeleteObjectsResponse, err error) {
	ctx, span := telemetry.StartOperationSpan(ctx, telemetry.SpanStartDeleteObjects, req.Bucket, "")
	defer func() {
		telemetry.RecordError(ctx, err)
		span.End()
	}()

	tx, err := s.store.BeginImmediate(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}
	defer tx.Rollback(ctx)

	resp = &StartDeleteObjectsResponse{
		Locators:      make(map[string][]LocatorRef),
		DeleteMarkers: make(map[string]DeleteMarkerInfo),
		OpType:        make(map[string]models.OpType),
	}

	bucket, err := store.GetBucket(ctx, tx, req.Bucket)
	if err != nil {
		return nil, err
	}

	for key, ids := range req.ObjectIdentifiers {
		var multipartID *string
		if mid, ok := req.MultipartUploadIDs[key]; ok {
			multipartID = &mid
		}

		candidates, err := store.DeleteCandidates(ctx, tx, req.Bucket, key, multipartID)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			return nil, models.ErrNotFound
		}
		latest := candidates[0]
		telemetry.AddEvent(ctx, "start_delete_objects.key", telemetry.StorageKey(key), telemetry.LogicalID(latest.ID))

		switch {
		case len(ids) == 0 && (bucket.VersionEnabled != models.VersioningSuspended || !latest.VersionSuspended):
			locs, markerInfo, err := s.addDeleteMarker(ctx, tx, bucket, key, latest)
			if err != nil {
				return nil, err
			}
			// Intra-loop commit: makes the newly inserted marker and its
			// pending locators visible to the rest of this key's traversal
			// and to subsequent keys, at the cost of all-or-nothing
			// semantics across the whole request (§4.5 step 2, §9).
			if err := tx.Commit(ctx); err != nil {
				return nil, err
			}
			tx, err = s.store.BeginImmediate(ctx)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
			}
			defer tx.Rollback(ctx)

			resp.Locators[key] = locs
			resp.DeleteMarkers[key] = markerInfo
			resp.OpType[key] = models.OpTypeAdd

		case len(ids) == 0:
			if err := tx.DB().WithContext(ctx).Model(&models.LogicalObject{}).
				Where("id = ?", latest.ID).Update("delete_marker", true).Error; err != nil {
				return nil, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
			}
			resp.Locators[key] = nil
			resp.DeleteMarkers[key] = DeleteMarkerInfo{DeleteMarker: true, VersionID: nil, ObjectID: latest.ID}
			resp.OpType[key] = models.OpTypeReplace

		default:
			locs, err := s.markVersionsForDeletion(ctx, tx, candidates, ids, multipartID != nil)
			if err != nil {
				return nil, err
			}
			resp.Locators[key] = locs
			resp.OpType[key] = models.OpTypeDelete
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return resp, nil
}

// addDeleteMarker inserts a new delete-marker LogicalObject cloning the
// previous physical-locator shape into new pending locators, and reports
// each new locator against the previous locator's cloud-native version id.
func (s *Service) addDeleteMarker(ctx context.Context, tx *store.Tx, bucket *models.LogicalBucket, key string, latest *models.LogicalObject) ([]LocatorRef, DeleteMarkerInfo, error) {
	marker := &models.LogicalObject{
		Bucket:           bucket.Bucket,
		Key:              key,
		Status:           models.StatusPending,
		DeleteMarker:     true,
		VersionSuspended: latest.VersionSuspended,
	}
	if err := tx.Add(ctx, marker); err != nil {
		return nil, DeleteMarkerInfo{}, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}

	now := time.Now().UTC()
	locs := make([]LocatorRef, 0, len(latest.PhysicalLocators))
	for _, prev := range latest.PhysicalLocators {
		newLoc := &models.PhysicalObjectLocator{
			LogicalObjectID: marker.ID,
			LocationTag:     prev.LocationTag,
			Cloud:           prev.Cloud,
			Region:          prev.Region,
			Bucket:          prev.Bucket,
			Key:             prev.Key,
			Status:          models.StatusPending,
			IsPrimary:       prev.IsPrimary,
			LockAcquiredTS:  &now,
		}
		if err := tx.Add(ctx, newLoc); err != nil {
			return nil, DeleteMarkerInfo{}, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
		}
		ref := locatorRef(newLoc)
		ref.VersionID = prev.VersionID
		locs = append(locs, ref)
	}

	var versionID *string
	if bucket.VersionEnabled != models.VersioningUnset && !marker.VersionSuspended {
		v := fmt.Sprintf("%d", marker.ID)
		versionID = &v
	}

	return locs, DeleteMarkerInfo{DeleteMarker: true, VersionID: versionID, ObjectID: marker.ID}, nil
}

// markVersionsForDeletion handles the `ids non-empty` delete classification:
// every matching logical object's physical locators are flipped to
// pending_deletion and the logical object itself is flagged pending_deletion.
func (s *Service) markVersionsForDeletion(ctx context.Context, tx *store.Tx, candidates []*models.LogicalObject, ids []string, multipartScoped bool) ([]LocatorRef, error) {
	byID := make(map[string]*models.LogicalObject, len(candidates))
	for _, c := range candidates {
		byID[fmt.Sprintf("%d", c.ID)] = c
	}

	var locs []LocatorRef
	now := time.Now().UTC()
	for _, id := range ids {
		obj, ok := byID[id]
		if !ok {
			return nil, models.ErrNotFound
		}

		for _, l := range obj.PhysicalLocators {
			if err := store.MarkLocatorPendingDeletion(ctx, tx, l.ID, now, multipartScoped); err != nil {
				return nil, err
			}
			ref := locatorRef(&l)
			locs = append(locs, ref)
		}

		if err := tx.DB().WithContext(ctx).Model(&models.LogicalObject{}).
			Where("id = ?", obj.ID).Update("status", models.StatusPendingDeletion).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
		}
	}

	return locs, nil
}

// CompleteDeleteObjects finalizes each delete-state-machine classification
// from StartDeleteObjects (§4.5 CompleteDeleteObjects). All entries run in
// one transaction: an error mid-batch rolls back every entry of the request.
func (s *Service) CompleteDeleteObjects(ctx context.Context, req CompleteDeleteObjectsRequest) (err error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanCompleteDeleteObjects)
	defer func() {
		telemetry.RecordError(ctx, err)
		span.End()
	}()

	if len(req.IDs) != len(req.OpType) {
		return models.ErrLengthMismatch
	}
	if req.MultipartUploadIDs != nil && len(req.MultipartUploadIDs) != len(req.IDs) {
		return models.ErrLengthMismatch
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}
	defer tx.Rollback(ctx)

	for idx, id := range req.IDs {
		telemetry.AddEvent(ctx, "complete_delete_objects.entry",
			telemetry.LogicalID(id), telemetry.OpType(string(req.OpType[idx])))

		switch req.OpType[idx] {
		case models.OpTypeDelete:
			obj, err := store.GetObjectByID(ctx, tx, id)
			if err != nil {
				return err
			}
			for _, l := range obj.PhysicalLocators {
				if l.Status == models.StatusPendingDeletion {
					if err := store.DeleteReadyLocator(ctx, tx, l.ID); err != nil {
						return err
					}
				}
			}
			remaining, err := store.LocatorsForObject(ctx, tx, id)
			if err != nil {
				return err
			}
			if len(remaining) == 0 {
				if err := tx.DB().WithContext(ctx).Where("id = ?", id).Delete(&models.LogicalObject{}).Error; err != nil {
					return fmt.Errorf("%w: %v", models.ErrTransientStore, err)
				}
			}

		case models.OpTypeReplace:
			// No-op: the state was already flipped in StartDeleteObjects.

		case models.OpTypeAdd:
			obj, err := store.GetObjectByID(ctx, tx, id)
			if err != nil {
				return err
			}
			for _, l := range obj.PhysicalLocators {
				if l.Status == models.StatusPending {
					if err := store.PromoteLocatorToReady(ctx, tx, l.ID); err != nil {
						return err
					}
				}
			}
			if idx == 0 {
				if err := tx.DB().WithContext(ctx).Model(&models.LogicalObject{}).
					Where("id = ?", id).Update("status", models.StatusReady).Error; err != nil {
					return fmt.Errorf("%w: %v", models.ErrTransientStore, err)
				}
			}

		default:
			return models.ErrConflict
		}
	}

	return tx.Commit(ctx)
}
