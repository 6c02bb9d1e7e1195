package models

import "errors"

// Error kinds from §7. Each handler emits at most one of these; the API
// layer maps them to HTTP status codes.
var (
	// ErrVersioningNotEnabled: caller supplied version_id, or asked for
	// version-specific behavior, on a bucket with unset versioning. 400.
	ErrVersioningNotEnabled = errors.New("versioning not enabled on bucket")

	// ErrLengthMismatch: parallel arrays (ids/multipart_upload_ids/op_type)
	// differ in length. 400.
	ErrLengthMismatch = errors.New("parallel argument arrays have mismatched length")

	// ErrNotFound: target object, logical object, physical locator, or copy
	// source missing. 404.
	ErrNotFound = errors.New("not found")

	// ErrDeleteMarker: the miss is a delete marker the caller was not
	// allowed to see. 405.
	ErrDeleteMarker = errors.New("object is a delete marker")

	// ErrConflict: state transition forbidden from the current state. 409.
	ErrConflict = errors.New("conflicting state transition")

	// ErrConfigurationError: invariant violation on bucket shape, e.g. no
	// single primary physical-bucket-locator. 500.
	ErrConfigurationError = errors.New("bucket configuration invariant violated")

	// ErrTransientStore: commit failed; caller may retry. 500.
	ErrTransientStore = errors.New("transient store error")
)
