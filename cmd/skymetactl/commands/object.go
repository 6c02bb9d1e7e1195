package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cloudmesh-io/skymeta/internal/cliutil"
	"github.com/cloudmesh-io/skymeta/pkg/apiclient"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/models"
)

var objectCmd = &cobra.Command{
	Use:   "object",
	Short: "Inspect logical objects and their physical locators",
}

var (
	objBucket string
	objKey    string
	objRegion string
	objVer    string
)

func init() {
	locateCmd.Flags().StringVar(&objBucket, "bucket", "", "bucket name")
	locateCmd.Flags().StringVar(&objKey, "key", "", "object key")
	locateCmd.Flags().StringVar(&objRegion, "client-region", "", "client's region tag")
	locateCmd.Flags().StringVar(&objVer, "version", "", "specific version id")
	_ = locateCmd.MarkFlagRequired("bucket")
	_ = locateCmd.MarkFlagRequired("key")
	_ = locateCmd.MarkFlagRequired("client-region")

	listCmd.Flags().StringVar(&objBucket, "bucket", "", "bucket name")
	listCmd.Flags().StringVar(&objPrefix, "prefix", "", "key prefix filter")
	_ = listCmd.MarkFlagRequired("bucket")

	statusCmd.Flags().StringVar(&objBucket, "bucket", "", "bucket name")
	statusCmd.Flags().StringVar(&objKey, "key", "", "object key")
	statusCmd.Flags().StringVar(&objRegion, "client-region", "", "client's region tag")
	_ = statusCmd.MarkFlagRequired("bucket")
	_ = statusCmd.MarkFlagRequired("key")

	deleteCmd.Flags().StringVar(&objBucket, "bucket", "", "bucket name")
	deleteCmd.Flags().StringVar(&objKey, "key", "", "object key")
	deleteCmd.Flags().StringVar(&objVer, "version", "", "specific version id to delete (omit to insert a delete marker)")
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip the confirmation prompt")
	_ = deleteCmd.MarkFlagRequired("bucket")
	_ = deleteCmd.MarkFlagRequired("key")

	objectCmd.AddCommand(locateCmd)
	objectCmd.AddCommand(listCmd)
	objectCmd.AddCommand(statusCmd)
	objectCmd.AddCommand(deleteCmd)
}

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Locate the physical copy of an object closest to a region",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := client().LocateObject(apiclient.LocateObjectRequest{
			Bucket: objBucket, Key: objKey, ClientFromRegion: objRegion, VersionID: objVer,
		})
		if err != nil {
			return err
		}
		return cliutil.PrintOutput(os.Stdout, asJSON, resp, false, "", locatorTable{resp.Locator})
	},
}

var objPrefix string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the latest ready objects in a bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		objs, err := client().ListObjects(apiclient.ListObjectsRequest{Bucket: objBucket, Prefix: objPrefix})
		if err != nil {
			return err
		}
		return cliutil.PrintOutput(os.Stdout, asJSON, objs, len(objs) == 0, "No objects found.", objectTable(objs))
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show per-region placement status for an object",
	RunE: func(cmd *cobra.Command, args []string) error {
		statuses, err := client().LocateObjectStatus(apiclient.LocateObjectRequest{
			Bucket: objBucket, Key: objKey, ClientFromRegion: objRegion,
		})
		if err != nil {
			return err
		}
		return cliutil.PrintOutput(os.Stdout, asJSON, statuses, len(statuses) == 0, "No locators found.", statusTable(statuses))
	},
}

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an object key, or a specific version of it",
	RunE: func(cmd *cobra.Command, args []string) error {
		label := fmt.Sprintf("Delete %s/%s", objBucket, objKey)
		if objVer != "" {
			label = fmt.Sprintf("Delete version %s of %s/%s", objVer, objBucket, objKey)
		}
		ok, err := cliutil.ConfirmWithForce(label, deleteForce)
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("aborted")
			return nil
		}

		identifiers := map[string][]string{}
		if objVer != "" {
			identifiers[objKey] = []string{objVer}
		} else {
			identifiers[objKey] = nil
		}

		resp, err := client().StartDeleteObjects(apiclient.StartDeleteObjectsRequest{
			Bucket:            objBucket,
			ObjectIdentifiers: identifiers,
		})
		if err != nil {
			return err
		}

		op := resp.OpType[objKey]

		// CompleteDeleteObjects keys on LogicalObject IDs, not locator IDs.
		// For an explicit version delete that's the version id the caller
		// already supplied; for a fresh delete marker or an in-place
		// suspended-versioning overwrite it's the object id StartDeleteObjects
		// just created or flipped, carried back in DeleteMarkers[key].ObjectID.
		var id uint64
		switch op {
		case models.OpTypeDelete:
			id, err = strconv.ParseUint(objVer, 10, 64)
			if err != nil {
				return fmt.Errorf("unexpected version id %q in response: %w", objVer, err)
			}
		case models.OpTypeAdd, models.OpTypeReplace:
			marker, ok := resp.DeleteMarkers[objKey]
			if !ok {
				return fmt.Errorf("server response missing delete marker info for %q", objKey)
			}
			id = marker.ObjectID
		default:
			return fmt.Errorf("unrecognized delete op type %q", op)
		}

		return client().CompleteDeleteObjects(apiclient.CompleteDeleteObjectsRequest{
			IDs:    []uint64{id},
			OpType: []models.OpType{op},
		})
	},
}

type locatorTable struct{ l apiclient.LocatorRef }

func (t locatorTable) Headers() []string { return []string{"LOCATION", "CLOUD", "REGION", "BUCKET", "KEY", "PRIMARY"} }
func (t locatorTable) Rows() [][]string {
	return [][]string{{t.l.LocationTag, t.l.Cloud, t.l.Region, t.l.Bucket, t.l.Key, fmt.Sprintf("%v", t.l.IsPrimary)}}
}

type objectTable []apiclient.ObjectResponse

func (t objectTable) Headers() []string { return []string{"KEY", "SIZE", "ETAG", "LAST MODIFIED"} }
func (t objectTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, o := range t {
		size := "-"
		if o.Size != nil {
			size = fmt.Sprintf("%d", *o.Size)
		}
		etag := "-"
		if o.ETag != nil {
			etag = *o.ETag
		}
		lastModified := "-"
		if o.LastModified != nil {
			lastModified = o.LastModified.String()
		}
		rows = append(rows, []string{o.Key, size, etag, lastModified})
	}
	return rows
}

type statusTable []apiclient.ObjectStatus

func (t statusTable) Headers() []string { return []string{"LOCATION", "STATUS"} }
func (t statusTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, s := range t {
		rows = append(rows, []string{s.LocationTag, s.Status})
	}
	return rows
}
