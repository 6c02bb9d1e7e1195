package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cloudmesh-io/skymeta/internal/telemetry"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/models"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/store"
)

// LocateObject picks the latest ready logical object (or the exact version
// when versionID is given), then the locator matching the client's region,
// falling back to the primary (§4.6 LocateObject).
func (s *Service) LocateObject(ctx context.Context, req LocateObjectRequest) (resp *LocateObjectResponse, err error) {
	ctx, span := telemetry.StartOperationSpan(ctx, telemetry.SpanLocateObject, req.Bucket, req.Key,
		telemetry.Region(req.ClientFromRegion))
	defer func() {
		telemetry.RecordError(ctx, err)
		span.End()
	}()

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}
	defer tx.Rollback(ctx)

	obj, err := store.ReadyObjectForRead(ctx, tx, req.Bucket, req.Key, req.VersionID)
	if err != nil {
		return nil, err
	}

	if obj.DeleteMarker {
		if req.VersionID == "" {
			return nil, models.ErrNotFound
		}
		return nil, models.ErrDeleteMarker
	}

	loc, ok := selectReadLocator(obj, req.ClientFromRegion)
	if !ok {
		return nil, models.ErrConfigurationError
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	telemetry.SetAttributes(ctx, telemetry.LogicalID(obj.ID), telemetry.LocationTag(loc.LocationTag))

	return &LocateObjectResponse{
		LogicalObjectID: obj.ID,
		VersionID:       versionIDPointer(obj),
		Locator:         locatorRef(loc),
	}, nil
}

// selectReadLocator prefers the locator whose location tag matches the
// client's region, else the unique primary locator, among a logical
// object's ready physical locators.
func selectReadLocator(obj *models.LogicalObject, clientRegion string) (*models.PhysicalObjectLocator, bool) {
	var byRegion, primary *models.PhysicalObjectLocator
	for i := range obj.PhysicalLocators {
		l := &obj.PhysicalLocators[i]
		if l.Status != models.StatusReady {
			continue
		}
		if l.LocationTag == clientRegion {
			byRegion = l
		}
		if l.IsPrimary {
			primary = l
		}
	}
	if byRegion != nil {
		return byRegion, true
	}
	if primary != nil {
		return primary, true
	}
	return nil, false
}

func versionIDPointer(obj *models.LogicalObject) *string {
	v := strconv.FormatUint(obj.ID, 10)
	return &v
}

// HeadObject runs the same selection as LocateObject but returns logical
// metadata without choosing among locators (§4.6 HeadObject).
func (s *Service) HeadObject(ctx context.Context, req LocateObjectRequest) (resp *HeadObjectResponse, err error) {
	ctx, span := telemetry.StartOperationSpan(ctx, telemetry.SpanHeadObject, req.Bucket, req.Key)
	defer func() {
		telemetry.RecordError(ctx, err)
		span.End()
	}()

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}
	defer tx.Rollback(ctx)

	obj, err := store.ReadyObjectForRead(ctx, tx, req.Bucket, req.Key, req.VersionID)
	if err != nil {
		return nil, err
	}

	if obj.DeleteMarker && req.VersionID == "" {
		return nil, models.ErrNotFound
	}
	if obj.DeleteMarker && req.VersionID != "" {
		return nil, models.ErrDeleteMarker
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &HeadObjectResponse{
		LogicalObjectID: obj.ID,
		VersionID:       versionIDPointer(obj),
		Size:            obj.Size,
		ETag:            obj.ETag,
		LastModified:    obj.LastModified,
		DeleteMarker:    obj.DeleteMarker,
	}, nil
}

// StartWarmup creates a new pending physical locator at every requested
// region other than the primary's own, carrying the primary's cloud-native
// version id (§4.6 StartWarmup).
func (s *Service) StartWarmup(ctx context.Context, req StartWarmupRequest) (resp *StartWarmupResponse, err error) {
	ctx, span := telemetry.StartOperationSpan(ctx, telemetry.SpanStartWarmup, req.Bucket, req.Key)
	defer func() {
		telemetry.RecordError(ctx, err)
		span.End()
	}()

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}
	defer tx.Rollback(ctx)

	obj, err := store.ReadyObjectForRead(ctx, tx, req.Bucket, req.Key, req.VersionID)
	if err != nil {
		return nil, err
	}

	primary, ok := primaryLocator(obj)
	if !ok {
		return nil, models.ErrConfigurationError
	}

	now := time.Now().UTC()
	dst := make([]LocatorRef, 0, len(req.WarmupRegions))
	for _, region := range req.WarmupRegions {
		if region == primary.Region {
			continue
		}
		newLoc := &models.PhysicalObjectLocator{
			LogicalObjectID: obj.ID,
			LocationTag:     region,
			Cloud:           primary.Cloud,
			Region:          region,
			Bucket:          primary.Bucket,
			Key:             primary.Key,
			Status:          models.StatusPending,
			IsPrimary:       false,
			LockAcquiredTS:  &now,
			VersionID:       primary.VersionID,
		}
		if err := tx.Add(ctx, newLoc); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
		}
		dst = append(dst, locatorRef(newLoc))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &StartWarmupResponse{
		SrcLocator:  locatorRef(primary),
		DstLocators: dst,
	}, nil
}

// ListObjects returns the latest ready, non-delete-marker object per key
// (§4.6 ListObjects).
func (s *Service) ListObjects(ctx context.Context, req ListObjectsRequest) (out []ObjectResponse, err error) {
	ctx, span := telemetry.StartOperationSpan(ctx, telemetry.SpanListObjects, req.Bucket, req.Prefix)
	defer func() {
		telemetry.RecordError(ctx, err)
		span.End()
	}()

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}
	defer tx.Rollback(ctx)

	objs, err := store.ListObjects(ctx, tx, req.Bucket, req.Prefix, req.StartAfter, req.MaxKeys)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return toObjectResponses(objs), nil
}

// ListObjectsVersioning returns every ready logical object, including
// distinct versions (§4.6 ListObjectsVersioning).
func (s *Service) ListObjectsVersioning(ctx context.Context, req ListObjectsRequest) (out []ObjectResponse, err error) {
	ctx, span := telemetry.StartOperationSpan(ctx, telemetry.SpanListObjectsVersioning, req.Bucket, req.Prefix)
	defer func() {
		telemetry.RecordError(ctx, err)
		span.End()
	}()

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}
	defer tx.Rollback(ctx)

	objs, err := store.ListObjectsVersioning(ctx, tx, req.Bucket, req.Prefix, req.StartAfter, req.MaxKeys)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return toObjectResponses(objs), nil
}

func toObjectResponses(objs []*models.LogicalObject) []ObjectResponse {
	out := make([]ObjectResponse, 0, len(objs))
	for _, o := range objs {
		out = append(out, ObjectResponse{
			Key:          o.Key,
			VersionID:    versionIDPointer(o),
			Size:         o.Size,
			ETag:         o.ETag,
			LastModified: o.LastModified,
		})
	}
	return out
}

// ListMultipartUploads returns all pending logical objects under a prefix
// (§4.6 ListMultipartUploads).
func (s *Service) ListMultipartUploads(ctx context.Context, req ListMultipartUploadsRequest) (out []MultipartResponse, err error) {
	ctx, span := telemetry.StartOperationSpan(ctx, telemetry.SpanListMultipartUploads, req.Bucket, req.Prefix)
	defer func() {
		telemetry.RecordError(ctx, err)
		span.End()
	}()

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}
	defer tx.Rollback(ctx)

	objs, err := store.ListMultipartUploads(ctx, tx, req.Bucket, req.Prefix)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	out = make([]MultipartResponse, 0, len(objs))
	for _, o := range objs {
		uploadID := ""
		if o.MultipartUploadID != nil {
			uploadID = *o.MultipartUploadID
		}
		out = append(out, MultipartResponse{Key: o.Key, UploadID: uploadID})
	}
	return out, nil
}

// ListParts returns the logical parts of the single pending multipart upload
// for (bucket, key, uploadID), optionally filtered by part number
// (§4.6 ListParts).
func (s *Service) ListParts(ctx context.Context, req ListPartsRequest) (out []PartResponse, err error) {
	ctx, span := telemetry.StartOperationSpan(ctx, telemetry.SpanListParts, req.Bucket, req.Key,
		telemetry.UploadID(req.UploadID))
	defer func() {
		telemetry.RecordError(ctx, err)
		span.End()
	}()

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}
	defer tx.Rollback(ctx)

	obj, err := store.PendingUploadByUploadID(ctx, tx, req.Bucket, req.Key, req.UploadID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	out = make([]PartResponse, 0, len(obj.MultipartParts))
	for _, p := range obj.MultipartParts {
		if req.PartNumber != nil && p.PartNumber != *req.PartNumber {
			continue
		}
		out = append(out, PartResponse{PartNumber: p.PartNumber, ETag: p.ETag, Size: p.Size})
	}
	return out, nil
}

// LocateObjectStatus returns, for every logical-object version matching
// (bucket, key[, version_id]), the status of the one physical locator that
// version's region-then-primary tiebreak would pick — the same selection
// locate_object applies to a single version, run across every version so
// callers can poll placement progress without picking a single read target.
func (s *Service) LocateObjectStatus(ctx context.Context, req LocateObjectStatusRequest) (out []ObjectStatus, err error) {
	ctx, span := telemetry.StartOperationSpan(ctx, telemetry.SpanLocateObjectStatus, req.Bucket, req.Key,
		telemetry.Region(req.ClientFromRegion), telemetry.VersionID(req.VersionID))
	defer func() {
		telemetry.RecordError(ctx, err)
		span.End()
	}()

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}
	defer tx.Rollback(ctx)

	objs, err := store.ObjectVersions(ctx, tx, req.Bucket, req.Key, req.VersionID)
	if err != nil {
		return nil, err
	}
	if len(objs) == 0 {
		return nil, models.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	out = make([]ObjectStatus, 0, len(objs))
	for _, obj := range objs {
		loc, ok := selectStatusLocator(obj, req.ClientFromRegion)
		if !ok {
			continue
		}
		out = append(out, ObjectStatus{LocationTag: loc.LocationTag, Status: loc.Status})
	}
	return out, nil
}

// selectStatusLocator applies the same region-then-primary tiebreak as
// selectReadLocator, but across locators of any status rather than only
// ready ones, since locate_object_status reports in-flight placement too.
func selectStatusLocator(obj *models.LogicalObject, clientRegion string) (*models.PhysicalObjectLocator, bool) {
	var byRegion, primary *models.PhysicalObjectLocator
	for i := range obj.PhysicalLocators {
		l := &obj.PhysicalLocators[i]
		if l.LocationTag == clientRegion {
			byRegion = l
		}
		if l.IsPrimary {
			primary = l
		}
	}
	if byRegion != nil {
		return byRegion, true
	}
	if primary != nil {
		return primary, true
	}
	return nil, false
}

func parseVersionID(v string) uint64 {
	id, _ := strconv.ParseUint(v, 10, 64)
	return id
}
