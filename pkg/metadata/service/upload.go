package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cloudmesh-io/skymeta/internal/logger"
	"github.com/cloudmesh-io/skymeta/internal/telemetry"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/models"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/policy"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/store"
)

// StartUpload runs the version-policy and placement decisions and commits
// the resulting pending rows in a single BEGIN IMMEDIATE transaction
// (§4.4 StartUpload).
func (s *Service) StartUpload(ctx context.Context, req StartUploadRequest) (resp *StartUploadResponse, err error) {
	ctx, span := telemetry.StartOperationSpan(ctx, telemetry.SpanStartUpload, req.Bucket, req.Key,
		telemetry.Policy(string(req.Policy)))
	defer func() {
		telemetry.RecordError(ctx, err)
		span.End()
	}()

	tx, err := s.store.BeginImmediate(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}
	defer tx.Rollback(ctx)

	bucket, err := store.GetBucket(ctx, tx, req.Bucket)
	if err != nil {
		return nil, err
	}

	existing, err := store.LatestObject(ctx, tx, req.Bucket, req.Key)
	if err != nil && err != models.ErrNotFound {
		return nil, err
	}
	if err == models.ErrNotFound {
		existing = nil
	}

	decision, err := policy.DecideVersion(bucket.VersionEnabled, existing, req.Policy, req.VersionID)
	if err != nil {
		return nil, err
	}

	var copySources []policy.CopySource
	isCopy := req.CopySrcBucket != "" && req.CopySrcKey != ""
	if isCopy {
		srcObj, err := store.LatestObject(ctx, tx, req.CopySrcBucket, req.CopySrcKey)
		if err != nil {
			return nil, models.ErrNotFound
		}
		for _, l := range srcObj.PhysicalLocators {
			if l.Status == models.StatusReady {
				copySources = append(copySources, policy.CopySource{LocationTag: l.LocationTag, Bucket: l.Bucket, Key: l.Key})
			}
		}
	}

	existingPrimaryRegion := ""
	if decision.Action == policy.ActionReuse && existing != nil {
		if p, ok := primaryLocator(existing); ok {
			existingPrimaryRegion = p.Region
		}
	}

	placement, err := policy.PlanPlacement(bucket, req.Policy, req.ClientFromRegion, existingPrimaryRegion, copySources)
	if err != nil {
		return nil, err
	}

	var uploadID string
	if req.IsMultipart {
		uploadID = uuid.New().String()
	}

	var obj *models.LogicalObject
	if decision.Action == policy.ActionCreateNew {
		obj = &models.LogicalObject{
			Bucket:           req.Bucket,
			Key:              req.Key,
			Status:           models.StatusPending,
			VersionSuspended: decision.VersionSuspended,
		}
		if req.IsMultipart {
			obj.MultipartUploadID = &uploadID
		}
		if err := tx.Add(ctx, obj); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
		}
	} else {
		obj = existing
		if obj == nil {
			return nil, models.ErrConfigurationError
		}
		obj.VersionSuspended = decision.VersionSuspended
		if err := tx.Save(ctx, obj); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
		}
	}

	now := time.Now().UTC()
	locators := make([]LocatorRef, 0, len(placement.UploadToRegionTags))
	for _, tag := range placement.UploadToRegionTags {
		pbl, ok := bucket.LocatorByTag(tag)
		if !ok {
			return nil, models.ErrConfigurationError
		}

		if decision.Action == policy.ActionReuse && bucket.VersionEnabled == models.VersioningUnset {
			if _, ok := findLocatorByTag(existing, tag); ok {
				return nil, models.ErrConflict
			}
		}

		if decision.Action == policy.ActionReuse && decision.VersionSuspended && existing != nil {
			if existingLoc, ok := findLocatorByTag(existing, tag); ok {
				locators = append(locators, locatorRef(existingLoc))
				continue
			}
		}

		loc := &models.PhysicalObjectLocator{
			LogicalObjectID: obj.ID,
			LocationTag:     tag,
			Cloud:           pbl.Cloud,
			Region:          pbl.Region,
			Bucket:          pbl.PhysicalBucket,
			Key:             req.Key,
			Status:          models.StatusPending,
			IsPrimary:       tag == placement.PrimaryWriteRegion,
			LockAcquiredTS:  &now,
		}
		if err := tx.Add(ctx, loc); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
		}
		locators = append(locators, locatorRef(loc))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "start_upload committed",
		logger.Bucket(req.Bucket), logger.ObjectKey(req.Key), logger.Policy(string(req.Policy)),
		logger.LogicalID(obj.ID))
	telemetry.SetAttributes(ctx, telemetry.LogicalID(obj.ID))

	var multipartID *string
	if req.IsMultipart {
		multipartID = &uploadID
	}

	return &StartUploadResponse{
		MultipartUploadID: multipartID,
		Locators:          locators,
		CopySrcBuckets:    placement.CopySrcBuckets,
		CopySrcKeys:       placement.CopySrcKeys,
	}, nil
}

func primaryLocator(obj *models.LogicalObject) (*models.PhysicalObjectLocator, bool) {
	for i := range obj.PhysicalLocators {
		if obj.PhysicalLocators[i].IsPrimary {
			return &obj.PhysicalLocators[i], true
		}
	}
	return nil, false
}

func findLocatorByTag(obj *models.LogicalObject, tag string) (*models.PhysicalObjectLocator, bool) {
	if obj == nil {
		return nil, false
	}
	for i := range obj.PhysicalLocators {
		if obj.PhysicalLocators[i].LocationTag == tag {
			return &obj.PhysicalLocators[i], true
		}
	}
	return nil, false
}

// SetMultipartID records the cloud-native upload id on a specific physical
// locator (§4.4 SetMultipartId).
func (s *Service) SetMultipartID(ctx context.Context, req SetMultipartIDRequest) error {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}
	defer tx.Rollback(ctx)

	if err := store.SetMultipartID(ctx, tx, req.ID, req.MultipartUploadID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// AppendPart upserts a part on the given locator, and mirrors it onto the
// logical object when the locator is primary (§4.4 AppendPart, P7).
func (s *Service) AppendPart(ctx context.Context, req AppendPartRequest) error {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}
	defer tx.Rollback(ctx)

	loc, err := store.GetLocator(ctx, tx, req.ID)
	if err != nil {
		return err
	}

	if err := store.UpsertMultipartPart(ctx, tx, loc.ID, loc.LogicalObjectID, req.PartNumber, req.ETag, req.Size, loc.IsPrimary); err != nil {
		return fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}
	return tx.Commit(ctx)
}

// ContinueUpload reads back all sibling locators of a pending multipart
// upload (§4.4 ContinueUpload). For upload_part_copy it validates that the
// source and destination region sets match exactly.
func (s *Service) ContinueUpload(ctx context.Context, req ContinueUploadRequest) ([]ContinueUploadResponse, error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}
	defer tx.Rollback(ctx)

	obj, err := store.PendingUploadByUploadID(ctx, tx, req.Bucket, req.Key, req.MultipartUploadID)
	if err != nil {
		return nil, err
	}

	isCopy := req.CopySrcBucket != "" && req.CopySrcKey != ""
	if isCopy {
		srcObj, err := store.LatestObject(ctx, tx, req.CopySrcBucket, req.CopySrcKey)
		if err != nil {
			return nil, models.ErrNotFound
		}
		srcTags := tagSet(srcObj.PhysicalLocators)
		dstTags := tagSet(obj.PhysicalLocators)
		if !sameSet(srcTags, dstTags) {
			return nil, models.ErrNotFound
		}
	}

	resp := make([]ContinueUploadResponse, 0, len(obj.PhysicalLocators))
	for _, l := range obj.PhysicalLocators {
		entry := ContinueUploadResponse{
			LocatorID:         l.ID,
			LocationTag:       l.LocationTag,
			Cloud:             l.Cloud,
			Region:            l.Region,
			Bucket:            l.Bucket,
			Key:               l.Key,
			MultipartUploadID: l.MultipartUploadID,
		}
		if req.DoListParts {
			for _, p := range l.MultipartParts {
				entry.Parts = append(entry.Parts, PartResponse{PartNumber: p.PartNumber, ETag: p.ETag, Size: p.Size})
			}
		}
		resp = append(resp, entry)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return resp, nil
}

func tagSet(locators []models.PhysicalObjectLocator) map[string]struct{} {
	set := make(map[string]struct{}, len(locators))
	for _, l := range locators {
		set[l.LocationTag] = struct{}{}
	}
	return set
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// CompleteUpload transitions a physical locator to ready and, depending on
// the upload's policy, promotes the parent logical object to ready
// (§4.4 CompleteUpload).
func (s *Service) CompleteUpload(ctx context.Context, req CompleteUploadRequest) (err error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanCompleteUpload)
	defer func() {
		telemetry.RecordError(ctx, err)
		span.End()
	}()

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}
	defer tx.Rollback(ctx)

	loc, err := store.GetLocator(ctx, tx, req.ID)
	if err != nil {
		return err
	}
	telemetry.SetAttributes(ctx, telemetry.Bucket(loc.Bucket), telemetry.StorageKey(loc.Key),
		telemetry.LocationTag(loc.LocationTag), telemetry.LogicalID(loc.LogicalObjectID))

	if err := store.CompleteLocator(ctx, tx, loc.ID, req.VersionID); err != nil {
		return err
	}

	promote := req.Policy == models.PolicyWriteLocal || req.Policy == models.PolicyCopyOnRead || loc.IsPrimary
	if promote {
		lastModified := req.LastModified.UTC()
		updates := map[string]any{
			"status":        models.StatusReady,
			"size":          req.Size,
			"etag":          req.ETag,
			"last_modified": lastModified,
		}
		if err := tx.DB().WithContext(ctx).Model(&models.LogicalObject{}).
			Where("id = ?", loc.LogicalObjectID).Updates(updates).Error; err != nil {
			return fmt.Errorf("%w: %v", models.ErrTransientStore, err)
		}
	}

	return tx.Commit(ctx)
}
