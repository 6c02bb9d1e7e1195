package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/cloudmesh-io/skymeta/pkg/metadata/models"
)

// objectPreloads are the relations eager-loaded on every logical object
// fetch, to avoid N+1 queries when the caller walks physical locators or parts.
var objectPreloads = []string{"PhysicalLocators", "PhysicalLocators.MultipartParts", "MultipartParts"}

// LatestObject returns the LogicalObject with the greatest id for
// (bucket, key), regardless of status. Returns models.ErrNotFound if none
// exists. This is the "existing_object" lookup used by the version policy
// (§4.2) ahead of start_upload and start_delete_objects.
func LatestObject(ctx context.Context, tx *Tx, bucket, key string) (*models.LogicalObject, error) {
	q := tx.DB().WithContext(ctx)
	for _, p := range objectPreloads {
		q = q.Preload(p)
	}
	var obj models.LogicalObject
	err := q.Where("bucket = ? AND key = ?", bucket, key).
		Order("id DESC").
		First(&obj).Error
	if err != nil {
		return nil, convertNotFoundError(err, models.ErrNotFound)
	}
	return &obj, nil
}

// GetObjectByID fetches a single logical object with its locators and parts.
func GetObjectByID(ctx context.Context, tx *Tx, id uint64) (*models.LogicalObject, error) {
	q := tx.DB().WithContext(ctx)
	for _, p := range objectPreloads {
		q = q.Preload(p)
	}
	var obj models.LogicalObject
	if err := q.Where("id = ?", id).First(&obj).Error; err != nil {
		return nil, convertNotFoundError(err, models.ErrNotFound)
	}
	return &obj, nil
}

// ReadyObjectForRead returns the logical object selected by locate_object /
// head_object (§4.6): the latest ready object for (bucket, key), or the
// exact version when versionID is non-empty ("" means latest).
func ReadyObjectForRead(ctx context.Context, tx *Tx, bucket, key, versionID string) (*models.LogicalObject, error) {
	q := tx.DB().WithContext(ctx)
	for _, p := range objectPreloads {
		q = q.Preload(p)
	}
	q = q.Where("bucket = ? AND key = ?", bucket, key)
	if versionID != "" {
		q = q.Where("id = ?", versionID)
	} else {
		q = q.Where("status = ?", models.StatusReady).Order("id DESC")
	}
	var obj models.LogicalObject
	if err := q.First(&obj).Error; err != nil {
		return nil, convertNotFoundError(err, models.ErrNotFound)
	}
	return &obj, nil
}

// DeleteCandidates returns all logical objects matching a key for
// start_delete_objects' traversal (§4.5 step 1), ordered by id DESC so the
// first result is latest. If multipartUploadID is non-nil, results are
// filtered to that upload id and both ready and pending statuses are
// accepted; otherwise only ready objects are returned.
func DeleteCandidates(ctx context.Context, tx *Tx, bucket, key string, multipartUploadID *string) ([]*models.LogicalObject, error) {
	apply := func(q *gorm.DB) *gorm.DB {
		q = q.Where("bucket = ? AND key = ?", bucket, key)
		if multipartUploadID != nil {
			q = q.Where("multipart_upload_id = ?", *multipartUploadID).
				Where("status IN ?", []models.Status{models.StatusReady, models.StatusPending})
		} else {
			q = q.Where("status = ?", models.StatusReady)
		}
		return q.Order("id DESC")
	}
	return listAll[models.LogicalObject](tx.DB(), ctx, apply, objectPreloads...)
}

// ListObjects returns the latest ready, non-delete-marker logical object per
// key under prefix, sorted by key ascending (§4.6 list_objects).
func ListObjects(ctx context.Context, tx *Tx, bucket, prefix, startAfter string, maxKeys int) ([]*models.LogicalObject, error) {
	all, err := latestReadyObjectsByKey(ctx, tx, bucket, prefix, startAfter, true)
	if err != nil {
		return nil, err
	}
	return capList(all, maxKeys), nil
}

// ListObjectsVersioning returns every ready logical object (all versions)
// under prefix, sorted by key ascending then id descending.
func ListObjectsVersioning(ctx context.Context, tx *Tx, bucket, prefix, startAfter string, maxKeys int) ([]*models.LogicalObject, error) {
	apply := func(q *gorm.DB) *gorm.DB {
		q = q.Where("bucket = ? AND status = ?", bucket, models.StatusReady)
		if prefix != "" {
			q = q.Where("key LIKE ?", prefix+"%")
		}
		if startAfter != "" {
			q = q.Where("key > ?", startAfter)
		}
		return q.Order("key ASC, id DESC")
	}
	objs, err := listAll[models.LogicalObject](tx.DB(), ctx, apply, objectPreloads...)
	if err != nil {
		return nil, err
	}
	return capList(objs, maxKeys), nil
}

// latestReadyObjectsByKey collects, per key, the latest ready logical object
// under prefix. The query spans every status, not just ready, so the
// greatest-id row per key is the true greatest id (P4) rather than merely
// the greatest id among ready rows. When excludeDeleteMarkers is true and
// that greatest-id row is a delete marker, the whole key is suppressed —
// including while the marker is still pending, ahead of
// complete_delete_objects promoting it to ready — instead of falling
// through to an older ready version (I1, P4).
func latestReadyObjectsByKey(ctx context.Context, tx *Tx, bucket, prefix, startAfter string, excludeDeleteMarkers bool) ([]*models.LogicalObject, error) {
	apply := func(q *gorm.DB) *gorm.DB {
		q = q.Where("bucket = ?", bucket)
		if prefix != "" {
			q = q.Where("key LIKE ?", prefix+"%")
		}
		if startAfter != "" {
			q = q.Where("key > ?", startAfter)
		}
		return q.Order("key ASC, id DESC")
	}
	objs, err := listAll[models.LogicalObject](tx.DB(), ctx, apply, objectPreloads...)
	if err != nil {
		return nil, err
	}

	firstSeen := make(map[string]bool, len(objs))
	suppressed := make(map[string]bool, len(objs))
	latestByKey := make(map[string]*models.LogicalObject, len(objs))
	order := make([]string, 0, len(objs))
	for _, o := range objs {
		if !firstSeen[o.Key] {
			firstSeen[o.Key] = true
			if excludeDeleteMarkers && o.DeleteMarker {
				suppressed[o.Key] = true
			}
		}
		if suppressed[o.Key] {
			continue
		}
		if _, ok := latestByKey[o.Key]; ok {
			continue
		}
		if excludeDeleteMarkers && o.DeleteMarker {
			continue
		}
		if o.Status != models.StatusReady {
			continue
		}
		latestByKey[o.Key] = o
		order = append(order, o.Key)
	}

	result := make([]*models.LogicalObject, 0, len(order))
	for _, k := range order {
		result = append(result, latestByKey[k])
	}
	return result, nil
}

func capList(objs []*models.LogicalObject, maxKeys int) []*models.LogicalObject {
	if maxKeys > 0 && len(objs) > maxKeys {
		return objs[:maxKeys]
	}
	return objs
}

// ObjectVersions returns every logical object matching (bucket, key),
// regardless of status, or only the one matching versionID when versionID
// is non-empty. Used by locate_object_status, which (unlike locate_object)
// reports placement progress across every version including ones not yet
// ready (§4.6 locate_object_status).
func ObjectVersions(ctx context.Context, tx *Tx, bucket, key, versionID string) ([]*models.LogicalObject, error) {
	apply := func(q *gorm.DB) *gorm.DB {
		q = q.Where("bucket = ? AND key = ?", bucket, key)
		if versionID != "" {
			q = q.Where("id = ?", versionID)
		}
		return q.Order("id DESC")
	}
	return listAll[models.LogicalObject](tx.DB(), ctx, apply, objectPreloads...)
}

// ListMultipartUploads returns every pending logical object under prefix
// (§4.6 list_multipart_uploads).
func ListMultipartUploads(ctx context.Context, tx *Tx, bucket, prefix string) ([]*models.LogicalObject, error) {
	apply := func(q *gorm.DB) *gorm.DB {
		q = q.Where("bucket = ? AND status = ? AND multipart_upload_id IS NOT NULL", bucket, models.StatusPending)
		if prefix != "" {
			q = q.Where("key LIKE ?", prefix+"%")
		}
		return q.Order("key ASC")
	}
	return listAll[models.LogicalObject](tx.DB(), ctx, apply, objectPreloads...)
}

// PendingUploadByUploadID returns the single pending logical multipart
// upload for (bucket, key, uploadID) (§4.6 list_parts, §4.4 continue_upload).
func PendingUploadByUploadID(ctx context.Context, tx *Tx, bucket, key, uploadID string) (*models.LogicalObject, error) {
	q := tx.DB().WithContext(ctx)
	for _, p := range objectPreloads {
		q = q.Preload(p)
	}
	var obj models.LogicalObject
	err := q.Where("bucket = ? AND key = ? AND multipart_upload_id = ? AND status = ?",
		bucket, key, uploadID, models.StatusPending).
		First(&obj).Error
	if err != nil {
		return nil, convertNotFoundError(err, models.ErrNotFound)
	}
	return &obj, nil
}
