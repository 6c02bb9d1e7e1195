//go:build integration

package api_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cloudmesh-io/skymeta/pkg/apiclient"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/api"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/models"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/service"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/store"
)

// newTestServer boots an in-memory sqlite-backed router behind httptest and
// returns a client pointed at it alongside the underlying store, so tests can
// seed state directly through the service layer before exercising the HTTP
// surface through apiclient.
func newTestServer(t *testing.T) (*apiclient.Client, *store.GORMStore) {
	t.Helper()
	s, err := store.New(&store.Config{
		Type:   store.DatabaseTypeSQLite,
		SQLite: store.SQLiteConfig{Path: ":memory:"},
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	srv := httptest.NewServer(api.NewRouter(s))
	t.Cleanup(srv.Close)

	return apiclient.New(srv.URL), s
}

func seedBucket(t *testing.T, s *store.GORMStore, bucket string, versioning models.VersioningState) {
	t.Helper()
	ctx := context.Background()
	tx, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback(ctx)

	b := &models.LogicalBucket{
		Bucket:         bucket,
		VersionEnabled: versioning,
		Locators: []models.PhysicalBucketLocator{
			{LocationTag: "us-east-1", Bucket: bucket, Cloud: "aws", Region: "us-east-1", PhysicalBucket: bucket + "-primary", IsPrimary: true},
		},
	}
	if err := store.CreateBucket(ctx, tx, b); err != nil {
		t.Fatalf("create bucket: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

// uploadReadyObject drives a full start/complete upload cycle through the
// service layer so the HTTP surface has a ready object to read back.
func uploadReadyObject(t *testing.T, s *store.GORMStore, bucket, key string) {
	t.Helper()
	ctx := context.Background()
	svc := service.New(s)

	start, err := svc.StartUpload(ctx, service.StartUploadRequest{
		Bucket: bucket, Key: key, ClientFromRegion: "us-east-1", Policy: models.PolicyWriteLocal,
	})
	if err != nil {
		t.Fatalf("start upload: %v", err)
	}
	if len(start.Locators) == 0 {
		t.Fatalf("expected at least one locator from start upload")
	}

	for _, loc := range start.Locators {
		if err := svc.CompleteUpload(ctx, service.CompleteUploadRequest{
			ID: loc.ID, Size: 42, ETag: "etag-1", LastModified: time.Now(), Policy: models.PolicyWriteLocal,
		}); err != nil {
			t.Fatalf("complete upload: %v", err)
		}
	}
}

func TestLocateAndListObjects(t *testing.T) {
	client, s := newTestServer(t)
	seedBucket(t, s, "widgets", models.VersioningUnset)
	uploadReadyObject(t, s, "widgets", "readme.txt")

	located, err := client.LocateObject(apiclient.LocateObjectRequest{
		Bucket: "widgets", Key: "readme.txt", ClientFromRegion: "us-east-1",
	})
	if err != nil {
		t.Fatalf("locate object: %v", err)
	}
	if located.Locator.LocationTag != "us-east-1" {
		t.Errorf("expected us-east-1 locator, got %q", located.Locator.LocationTag)
	}

	objs, err := client.ListObjects(apiclient.ListObjectsRequest{Bucket: "widgets"})
	if err != nil {
		t.Fatalf("list objects: %v", err)
	}
	if len(objs) != 1 || objs[0].Key != "readme.txt" {
		t.Fatalf("expected exactly one readme.txt entry, got %+v", objs)
	}

	statuses, err := client.LocateObjectStatus(apiclient.LocateObjectRequest{
		Bucket: "widgets", Key: "readme.txt", ClientFromRegion: "us-east-1",
	})
	if err != nil {
		t.Fatalf("locate object status: %v", err)
	}
	if len(statuses) != 1 || statuses[0].Status != string(models.StatusReady) {
		t.Fatalf("expected one ready locator, got %+v", statuses)
	}
}

func TestLocateObjectNotFound(t *testing.T) {
	client, s := newTestServer(t)
	seedBucket(t, s, "widgets", models.VersioningUnset)

	_, err := client.LocateObject(apiclient.LocateObjectRequest{
		Bucket: "widgets", Key: "missing.txt", ClientFromRegion: "us-east-1",
	})
	if err == nil {
		t.Fatal("expected an error for a missing object")
	}
	problem, ok := err.(*apiclient.Problem)
	if !ok {
		t.Fatalf("expected *apiclient.Problem, got %T", err)
	}
	if !problem.IsNotFound() {
		t.Errorf("expected a 404 problem, got status %d", problem.Status)
	}
}

// TestDeleteUnversionedObject drives the full delete state machine through
// the HTTP surface on an unversioned bucket: StartDeleteObjects inserts a
// pending delete marker (OpTypeAdd) and CompleteDeleteObjects promotes it
// using the marker's object id.
func TestDeleteUnversionedObject(t *testing.T) {
	client, s := newTestServer(t)
	seedBucket(t, s, "widgets", models.VersioningUnset)
	uploadReadyObject(t, s, "widgets", "gone.txt")

	start, err := client.StartDeleteObjects(apiclient.StartDeleteObjectsRequest{
		Bucket:            "widgets",
		ObjectIdentifiers: map[string][]string{"gone.txt": nil},
	})
	if err != nil {
		t.Fatalf("start delete objects: %v", err)
	}
	if start.OpType["gone.txt"] != models.OpTypeAdd {
		t.Fatalf("expected add op on an unversioned bucket, got %q", start.OpType["gone.txt"])
	}

	marker := start.DeleteMarkers["gone.txt"]
	if marker.ObjectID == 0 {
		t.Fatal("expected a non-zero object id for the add op")
	}

	if err := client.CompleteDeleteObjects(apiclient.CompleteDeleteObjectsRequest{
		IDs:    []uint64{marker.ObjectID},
		OpType: []models.OpType{models.OpTypeAdd},
	}); err != nil {
		t.Fatalf("complete delete objects: %v", err)
	}

	_, err = client.LocateObject(apiclient.LocateObjectRequest{
		Bucket: "widgets", Key: "gone.txt", ClientFromRegion: "us-east-1",
	})
	if err == nil {
		t.Fatal("expected the deleted object to no longer be locatable")
	}
}

// TestDeleteVersionedObjectInsertsMarker exercises the OpTypeAdd branch: on a
// versioned bucket, deleting a key with no explicit version inserts a new
// delete-marker object whose own id must be promoted via CompleteDeleteObjects.
func TestDeleteVersionedObjectInsertsMarker(t *testing.T) {
	client, s := newTestServer(t)
	seedBucket(t, s, "archive", models.VersioningEnabled)
	uploadReadyObject(t, s, "archive", "report.pdf")

	start, err := client.StartDeleteObjects(apiclient.StartDeleteObjectsRequest{
		Bucket:            "archive",
		ObjectIdentifiers: map[string][]string{"report.pdf": nil},
	})
	if err != nil {
		t.Fatalf("start delete objects: %v", err)
	}
	if start.OpType["report.pdf"] != models.OpTypeAdd {
		t.Fatalf("expected add op on a versioned bucket, got %q", start.OpType["report.pdf"])
	}

	marker := start.DeleteMarkers["report.pdf"]
	if !marker.DeleteMarker || marker.ObjectID == 0 {
		t.Fatalf("expected a populated delete marker, got %+v", marker)
	}
	if marker.VersionID == nil || *marker.VersionID == "" {
		t.Fatal("expected a version id for the new delete marker on a versioned bucket")
	}

	if err := client.CompleteDeleteObjects(apiclient.CompleteDeleteObjectsRequest{
		IDs:    []uint64{marker.ObjectID},
		OpType: []models.OpType{models.OpTypeAdd},
	}); err != nil {
		t.Fatalf("complete delete objects: %v", err)
	}
}

func TestRecordAndListMetrics(t *testing.T) {
	client, _ := newTestServer(t)

	if err := client.RecordMetrics(apiclient.RecordMetricsRequest{
		RequestedRegion: "us-east-1",
		ClientRegion:    "eu-west-1",
		Operation:       "GET",
		Latency:         123.4,
		Timestamp:       time.Now(),
		ObjectSize:      2048,
	}); err != nil {
		t.Fatalf("record metrics: %v", err)
	}

	stats, err := client.ListMetrics("eu-west-1")
	if err != nil {
		t.Fatalf("list metrics: %v", err)
	}
	if stats.Count == 0 || len(stats.Metrics) == 0 {
		t.Fatal("expected at least one statistics row for eu-west-1")
	}
}
