// Package policy implements the pure decision functions of the metadata
// control plane: the version policy table (§4.2) and the placement planner
// (§4.3). Nothing here touches the store; every function is a deterministic
// mapping from request + current state to a decision, which keeps the
// S3-compatibility rules unit-testable without a database.
package policy

import (
	"github.com/cloudmesh-io/skymeta/pkg/metadata/models"
)

// VersionAction is the outcome of the version policy decision table.
type VersionAction string

const (
	// ActionCreateNew creates a brand new LogicalObject.
	ActionCreateNew VersionAction = "create_new"
	// ActionReuse reuses the existing LogicalObject, adding locators only.
	ActionReuse VersionAction = "reuse"
)

// VersionDecision is the result of DecideVersion.
type VersionDecision struct {
	Action VersionAction
	// VersionSuspended is the value the (new or reused) object's
	// version_suspended flag should carry going forward.
	VersionSuspended bool
}

// DecideVersion reproduces the canonical S3 version-policy table from §4.2
// exactly. existing is the latest LogicalObject for (bucket, key), or nil if
// none exists.
func DecideVersion(bucketVersioning models.VersioningState, existing *models.LogicalObject, reqPolicy models.Policy, versionID string) (VersionDecision, error) {
	if bucketVersioning == models.VersioningUnset && versionID != "" {
		return VersionDecision{}, models.ErrVersioningNotEnabled
	}

	if existing == nil {
		return VersionDecision{
			Action:           ActionCreateNew,
			VersionSuspended: bucketVersioning == models.VersioningSuspended,
		}, nil
	}

	switch {
	case reqPolicy == models.PolicyCopyOnRead:
		// Reuse the existing logical object; placement adds new physical
		// locators only, it does not mint a new version.
		return VersionDecision{Action: ActionReuse, VersionSuspended: existing.VersionSuspended}, nil

	case bucketVersioning == models.VersioningUnset:
		// Conflict-on-existing-regional-locator is enforced by the caller,
		// which has the locator set available; this function only decides
		// reuse vs. create-new.
		return VersionDecision{Action: ActionReuse, VersionSuspended: false}, nil

	case bucketVersioning == models.VersioningEnabled:
		return VersionDecision{Action: ActionCreateNew, VersionSuspended: false}, nil

	case bucketVersioning == models.VersioningSuspended && !existing.VersionSuspended:
		return VersionDecision{Action: ActionCreateNew, VersionSuspended: true}, nil

	default:
		// Suspended and the existing object is already the null version:
		// overwrite it in place.
		return VersionDecision{Action: ActionReuse, VersionSuspended: true}, nil
	}
}

// CheckVersionedSource validates a copy/pull source reference: if versionID
// is set, the source must exist. Callers pass the lookup result; this just
// centralizes the error mapping (§4.2 existence check).
func CheckVersionedSource(found bool) error {
	if !found {
		return models.ErrNotFound
	}
	return nil
}
