package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys for metadata control plane operations, following the same
// key vocabulary as internal/logger's structured log fields so a trace span
// and its surrounding log line can be correlated on the same names.
const (
	AttrBucket      = "storage.bucket"
	AttrKey         = "storage.key"
	AttrLogicalID   = "storage.logical_id"
	AttrVersionID   = "storage.version_id"
	AttrLocationTag = "storage.location_tag"
	AttrRegion      = "storage.region"
	AttrPolicy      = "storage.policy"
	AttrOpType      = "storage.op_type"
	AttrUploadID    = "storage.upload_id"
)

// Span names, one per metadata control plane operation (§6 of the
// operation list: upload, delete, locate, and metrics endpoints).
const (
	SpanStartUpload           = "metadata.start_upload"
	SpanSetMultipartID        = "metadata.set_multipart_id"
	SpanAppendPart            = "metadata.append_part"
	SpanContinueUpload        = "metadata.continue_upload"
	SpanCompleteUpload        = "metadata.complete_upload"
	SpanStartDeleteObjects    = "metadata.start_delete_objects"
	SpanCompleteDeleteObjects = "metadata.complete_delete_objects"
	SpanLocateObject          = "metadata.locate_object"
	SpanHeadObject            = "metadata.head_object"
	SpanStartWarmup           = "metadata.start_warmup"
	SpanListObjects           = "metadata.list_objects"
	SpanListObjectsVersioning = "metadata.list_objects_versioning"
	SpanListMultipartUploads  = "metadata.list_multipart_uploads"
	SpanListParts             = "metadata.list_parts"
	SpanLocateObjectStatus    = "metadata.locate_object_status"
	SpanRecordMetrics         = "metadata.record_metrics"
	SpanListMetrics           = "metadata.list_metrics"
)

// Bucket returns an attribute for the logical bucket name.
func Bucket(name string) attribute.KeyValue {
	return attribute.String(AttrBucket, name)
}

// StorageKey returns an attribute for the object key.
func StorageKey(key string) attribute.KeyValue {
	return attribute.String(AttrKey, key)
}

// LogicalID returns an attribute for a LogicalObject id.
func LogicalID(id uint64) attribute.KeyValue {
	return attribute.Int64(AttrLogicalID, int64(id))
}

// VersionID returns an attribute for a cloud-native version id.
func VersionID(v string) attribute.KeyValue {
	return attribute.String(AttrVersionID, v)
}

// LocationTag returns an attribute for a physical-bucket-locator tag.
func LocationTag(tag string) attribute.KeyValue {
	return attribute.String(AttrLocationTag, tag)
}

// Region returns an attribute for a client-from-region or locator region.
func Region(r string) attribute.KeyValue {
	return attribute.String(AttrRegion, r)
}

// Policy returns an attribute for a placement policy.
func Policy(p string) attribute.KeyValue {
	return attribute.String(AttrPolicy, p)
}

// OpType returns an attribute for a delete-state-machine classification.
func OpType(t string) attribute.KeyValue {
	return attribute.String(AttrOpType, t)
}

// UploadID returns an attribute for a multipart upload id.
func UploadID(id string) attribute.KeyValue {
	return attribute.String(AttrUploadID, id)
}

// StartOperationSpan starts a span for a metadata control plane operation,
// tagging it with the bucket and key it operates on. The caller must call
// span.End() when done.
func StartOperationSpan(ctx context.Context, name, bucket, key string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := append([]attribute.KeyValue{Bucket(bucket), StorageKey(key)}, attrs...)
	return StartSpan(ctx, name, trace.WithAttributes(allAttrs...))
}
