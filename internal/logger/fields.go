package logger

import (
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements for log aggregation and querying.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Request / Operation
	// ========================================================================
	KeyOperation = "operation" // Handler operation: start_upload, complete_upload, locate_object, etc.
	KeyMethod    = "method"    // HTTP method
	KeyPath      = "path"      // HTTP request path
	KeyStatus    = "status"    // HTTP status code
	KeyRequestID = "request_id"

	// ========================================================================
	// Object Identity
	// ========================================================================
	KeyBucket      = "bucket"       // Logical bucket name
	KeyObjectKey   = "key"          // Object key
	KeyLogicalID   = "logical_id"   // LogicalObject.id (also the version id)
	KeyVersionID   = "version_id"   // Cloud-native version id on a physical locator
	KeyLocationTag = "location_tag" // Physical-bucket-locator join key
	KeyRegion      = "region"       // Client-from-region or a locator's region
	KeyPolicy      = "policy"       // Placement policy: push, write_local, copy_on_read
	KeyOpType      = "op_type"      // Delete-state-machine classification: add, replace, delete
	KeyUploadID    = "upload_id"    // Multipart upload id

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeySize       = "size"        // Object size in bytes
	KeyClientIP   = "client_ip"   // Client IP address
)

// ============================================================================
// Field constructors for type safety
// These functions provide type-safe construction of slog.Attr values.
// ============================================================================

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// Operation returns a slog.Attr for the handler operation name
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Status returns a slog.Attr for an HTTP status code
func Status(code int) slog.Attr {
	return slog.Int(KeyStatus, code)
}

// Bucket returns a slog.Attr for the logical bucket name
func Bucket(name string) slog.Attr {
	return slog.String(KeyBucket, name)
}

// ObjectKey returns a slog.Attr for the object key
func ObjectKey(key string) slog.Attr {
	return slog.String(KeyObjectKey, key)
}

// LogicalID returns a slog.Attr for a LogicalObject id
func LogicalID(id uint64) slog.Attr {
	return slog.Uint64(KeyLogicalID, id)
}

// VersionID returns a slog.Attr for a cloud-native version id
func VersionID(v string) slog.Attr {
	return slog.String(KeyVersionID, v)
}

// LocationTag returns a slog.Attr for a physical-bucket-locator tag
func LocationTag(tag string) slog.Attr {
	return slog.String(KeyLocationTag, tag)
}

// Region returns a slog.Attr for a region
func Region(r string) slog.Attr {
	return slog.String(KeyRegion, r)
}

// Policy returns a slog.Attr for a placement policy
func Policy(p string) slog.Attr {
	return slog.String(KeyPolicy, p)
}

// OpType returns a slog.Attr for a delete-state-machine operation classification
func OpType(t string) slog.Attr {
	return slog.String(KeyOpType, t)
}

// UploadID returns a slog.Attr for a multipart upload id
func UploadID(id string) slog.Attr {
	return slog.String(KeyUploadID, id)
}

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Size returns a slog.Attr for an object size in bytes
func Size(s int64) slog.Attr {
	return slog.Int64(KeySize, s)
}

// ClientIP returns a slog.Attr for the client IP address
func ClientIP(addr string) slog.Attr {
	return slog.String(KeyClientIP, addr)
}

// Path returns a slog.Attr for the HTTP request path
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// Method returns a slog.Attr for the HTTP method
func Method(m string) slog.Attr {
	return slog.String(KeyMethod, m)
}

// RequestID returns a slog.Attr for the request id
func RequestID(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}
