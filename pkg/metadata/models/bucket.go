package models

import "time"

// VersioningState is the tri-state versioning flag on a LogicalBucket.
// It is deliberately not a nullable bool: Unset changes API semantics (no
// version_id may ever be supplied by a caller) and is not simply "false".
type VersioningState string

const (
	VersioningUnset     VersioningState = "unset"
	VersioningEnabled   VersioningState = "enabled"
	VersioningSuspended VersioningState = "suspended"
)

// LogicalBucket is the top-level namespace for keys, backed by one or more
// PhysicalBucketLocators across clouds/regions.
type LogicalBucket struct {
	Bucket          string          `gorm:"primaryKey;size:255" json:"bucket"`
	Status          string          `gorm:"size:50;default:active" json:"status"`
	VersionEnabled  VersioningState `gorm:"size:20;not null;default:unset" json:"version_enabled"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Locators []PhysicalBucketLocator `gorm:"foreignKey:Bucket;references:Bucket" json:"physical_bucket_locators,omitempty"`
}

// TableName returns the table name for LogicalBucket.
func (LogicalBucket) TableName() string {
	return "logical_buckets"
}

// Primary returns the bucket's single primary locator and whether exactly one exists.
// Zero or more than one primary is a configuration error (§4.3, §9):
// the caller must surface ConfigurationError rather than pick arbitrarily.
func (b *LogicalBucket) Primary() (*PhysicalBucketLocator, bool) {
	var found *PhysicalBucketLocator
	count := 0
	for i := range b.Locators {
		if b.Locators[i].IsPrimary {
			found = &b.Locators[i]
			count++
		}
	}
	if count != 1 {
		return nil, false
	}
	return found, true
}

// LocatorByTag returns the bucket's physical locator with the given location tag.
func (b *LogicalBucket) LocatorByTag(tag string) (*PhysicalBucketLocator, bool) {
	for i := range b.Locators {
		if b.Locators[i].LocationTag == tag {
			return &b.Locators[i], true
		}
	}
	return nil, false
}

// WarmupTags returns the location tags that should receive a push-policy
// upload: the primary plus every locator flagged need_warmup.
func (b *LogicalBucket) WarmupTags() []string {
	tags := make([]string, 0, len(b.Locators))
	for _, l := range b.Locators {
		if l.IsPrimary || l.NeedWarmup {
			tags = append(tags, l.LocationTag)
		}
	}
	return tags
}

// PhysicalBucketLocator is one region/cloud's physical backing for a LogicalBucket.
// LocationTag is the stable join key between buckets and object locators.
type PhysicalBucketLocator struct {
	LocationTag string `gorm:"primaryKey;size:100" json:"location_tag"`
	Bucket      string `gorm:"primaryKey;size:255;index" json:"bucket"`
	Cloud       string `gorm:"size:50;not null" json:"cloud"`
	Region      string `gorm:"size:100;not null" json:"region"`
	PhysicalBucket string `gorm:"size:255;not null;column:physical_bucket" json:"physical_bucket"`
	Prefix      string `gorm:"size:255" json:"prefix"`
	IsPrimary   bool   `gorm:"not null;default:false" json:"is_primary"`
	NeedWarmup  bool   `gorm:"not null;default:false" json:"need_warmup"`
}

// TableName returns the table name for PhysicalBucketLocator.
func (PhysicalBucketLocator) TableName() string {
	return "physical_bucket_locators"
}
