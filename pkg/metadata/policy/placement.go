package policy

import (
	"github.com/cloudmesh-io/skymeta/pkg/metadata/models"
)

// CopySource describes where a server-side copy's source object lives in a
// given region, for the copy-adjustment step of the placement planner.
type CopySource struct {
	LocationTag string
	Bucket      string
	Key         string
}

// Placement is the output of PlanPlacement: the regions to write to, the
// single primary-write region, and (for server-side copies) the aligned
// per-region source bucket/key pairs.
type Placement struct {
	UploadToRegionTags []string
	PrimaryWriteRegion string
	CopySrcBuckets     []string
	CopySrcKeys        []string
}

// PlanPlacement computes §4.3's placement decision. existingPrimaryRegion is
// only consulted for policy=copy_on_read, where it must name the region of
// an already-existing primary distinct from clientRegion. copySources, when
// non-empty, lists every region where a server-side copy's source object
// actually lives; pass nil/empty when the request is not a copy.
func PlanPlacement(bucket *models.LogicalBucket, reqPolicy models.Policy, clientRegion string, existingPrimaryRegion string, copySources []CopySource) (Placement, error) {
	var regionTags []string
	var primary string

	switch reqPolicy {
	case models.PolicyPush:
		p, ok := bucket.Primary()
		if !ok {
			return Placement{}, models.ErrConfigurationError
		}
		regionTags = bucket.WarmupTags()
		primary = p.LocationTag

	case models.PolicyWriteLocal:
		regionTags = []string{clientRegion}
		primary = clientRegion

	case models.PolicyCopyOnRead:
		if existingPrimaryRegion == "" || existingPrimaryRegion == clientRegion {
			return Placement{}, models.ErrConfigurationError
		}
		regionTags = []string{clientRegion}
		primary = existingPrimaryRegion

	default:
		return Placement{}, models.ErrConfigurationError
	}

	placement := Placement{UploadToRegionTags: regionTags, PrimaryWriteRegion: primary}

	if len(copySources) > 0 {
		applyCopyAdjustment(&placement, copySources)
	}

	return placement, nil
}

// applyCopyAdjustment intersects the planned regions with the set of
// regions where the copy source actually lives (§4.3 copy adjustment),
// falling back to the full source region set if the intersection is empty,
// and builds the parallel copy_src_buckets/copy_src_keys arrays aligned with
// the final region tag list.
func applyCopyAdjustment(p *Placement, copySources []CopySource) {
	byTag := make(map[string]CopySource, len(copySources))
	for _, cs := range copySources {
		byTag[cs.LocationTag] = cs
	}

	intersected := make([]string, 0, len(p.UploadToRegionTags))
	for _, tag := range p.UploadToRegionTags {
		if _, ok := byTag[tag]; ok {
			intersected = append(intersected, tag)
		}
	}

	finalTags := intersected
	if len(finalTags) == 0 {
		finalTags = make([]string, 0, len(copySources))
		for _, cs := range copySources {
			finalTags = append(finalTags, cs.LocationTag)
		}
	}

	buckets := make([]string, len(finalTags))
	keys := make([]string, len(finalTags))
	for i, tag := range finalTags {
		if cs, ok := byTag[tag]; ok {
			buckets[i] = cs.Bucket
			keys[i] = cs.Key
		}
	}

	p.UploadToRegionTags = finalTags
	p.CopySrcBuckets = buckets
	p.CopySrcKeys = keys
}
