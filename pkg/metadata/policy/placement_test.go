package policy

import (
	"reflect"
	"testing"

	"github.com/cloudmesh-io/skymeta/pkg/metadata/models"
)

func testBucket() *models.LogicalBucket {
	return &models.LogicalBucket{
		Bucket: "b",
		Locators: []models.PhysicalBucketLocator{
			{LocationTag: "us-east-1", Region: "us-east-1", IsPrimary: true},
			{LocationTag: "eu-west-1", Region: "eu-west-1", NeedWarmup: true},
			{LocationTag: "ap-south-1", Region: "ap-south-1"},
		},
	}
}

func TestPlanPlacementPush(t *testing.T) {
	p, err := PlanPlacement(testBucket(), models.PolicyPush, "us-east-1", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.PrimaryWriteRegion != "us-east-1" {
		t.Fatalf("expected us-east-1 primary, got %s", p.PrimaryWriteRegion)
	}
	want := []string{"us-east-1", "eu-west-1"}
	if !reflect.DeepEqual(p.UploadToRegionTags, want) {
		t.Fatalf("expected %v, got %v", want, p.UploadToRegionTags)
	}
}

func TestPlanPlacementPushMultiplePrimariesIsConfigurationError(t *testing.T) {
	b := &models.LogicalBucket{Bucket: "b", Locators: []models.PhysicalBucketLocator{
		{LocationTag: "us-east-1", IsPrimary: true},
		{LocationTag: "eu-west-1", IsPrimary: true},
	}}
	_, err := PlanPlacement(b, models.PolicyPush, "us-east-1", "", nil)
	if err != models.ErrConfigurationError {
		t.Fatalf("expected ErrConfigurationError, got %v", err)
	}
}

func TestPlanPlacementWriteLocal(t *testing.T) {
	p, err := PlanPlacement(testBucket(), models.PolicyWriteLocal, "ap-south-1", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.PrimaryWriteRegion != "ap-south-1" || !reflect.DeepEqual(p.UploadToRegionTags, []string{"ap-south-1"}) {
		t.Fatalf("unexpected placement: %+v", p)
	}
}

func TestPlanPlacementCopyOnRead(t *testing.T) {
	p, err := PlanPlacement(testBucket(), models.PolicyCopyOnRead, "ap-south-1", "us-east-1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.PrimaryWriteRegion != "us-east-1" || !reflect.DeepEqual(p.UploadToRegionTags, []string{"ap-south-1"}) {
		t.Fatalf("unexpected placement: %+v", p)
	}
}

func TestPlanPlacementCopyOnReadSameRegionIsConfigurationError(t *testing.T) {
	_, err := PlanPlacement(testBucket(), models.PolicyCopyOnRead, "us-east-1", "us-east-1", nil)
	if err != models.ErrConfigurationError {
		t.Fatalf("expected ErrConfigurationError, got %v", err)
	}
}

func TestPlanPlacementCopyAdjustmentIntersects(t *testing.T) {
	sources := []CopySource{
		{LocationTag: "eu-west-1", Bucket: "src-bucket", Key: "src-key"},
	}
	p, err := PlanPlacement(testBucket(), models.PolicyPush, "us-east-1", "", sources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(p.UploadToRegionTags, []string{"eu-west-1"}) {
		t.Fatalf("expected intersection to narrow to eu-west-1, got %v", p.UploadToRegionTags)
	}
	if p.CopySrcBuckets[0] != "src-bucket" || p.CopySrcKeys[0] != "src-key" {
		t.Fatalf("expected aligned copy source arrays, got %+v/%+v", p.CopySrcBuckets, p.CopySrcKeys)
	}
}

func TestPlanPlacementCopyAdjustmentFallsBackWhenEmpty(t *testing.T) {
	sources := []CopySource{
		{LocationTag: "me-central-1", Bucket: "src-bucket", Key: "src-key"},
	}
	p, err := PlanPlacement(testBucket(), models.PolicyPush, "us-east-1", "", sources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(p.UploadToRegionTags, []string{"me-central-1"}) {
		t.Fatalf("expected fallback to full source region set, got %v", p.UploadToRegionTags)
	}
}
