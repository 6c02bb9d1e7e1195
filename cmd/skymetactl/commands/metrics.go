package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cloudmesh-io/skymeta/internal/cliutil"
	"github.com/cloudmesh-io/skymeta/pkg/apiclient"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Record and inspect per-region access metrics",
}

var (
	metricRequestedRegion string
	metricClientRegion    string
	metricOperation       string
	metricLatency         float64
	metricObjectSize      int64
)

func init() {
	recordMetricCmd.Flags().StringVar(&metricRequestedRegion, "requested-region", "", "region the object was requested from")
	recordMetricCmd.Flags().StringVar(&metricClientRegion, "client-region", "", "region the client originated from")
	recordMetricCmd.Flags().StringVar(&metricOperation, "operation", "", "operation type, e.g. get or put")
	recordMetricCmd.Flags().Float64Var(&metricLatency, "latency", 0, "observed latency in milliseconds")
	recordMetricCmd.Flags().Int64Var(&metricObjectSize, "object-size", 0, "object size in bytes")
	_ = recordMetricCmd.MarkFlagRequired("requested-region")
	_ = recordMetricCmd.MarkFlagRequired("client-region")
	_ = recordMetricCmd.MarkFlagRequired("operation")

	listMetricsCmd.Flags().StringVar(&metricClientRegion, "client-region", "", "filter by client region")

	metricsCmd.AddCommand(recordMetricCmd)
	metricsCmd.AddCommand(listMetricsCmd)
}

var recordMetricCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a single access metric sample",
	RunE: func(cmd *cobra.Command, args []string) error {
		return client().RecordMetrics(apiclient.RecordMetricsRequest{
			RequestedRegion: metricRequestedRegion,
			ClientRegion:    metricClientRegion,
			Operation:       metricOperation,
			Latency:         metricLatency,
			Timestamp:       time.Now(),
			ObjectSize:      metricObjectSize,
		})
	},
}

var listMetricsCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded access metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := client().ListMetrics(metricClientRegion)
		if err != nil {
			return err
		}
		return cliutil.PrintOutput(os.Stdout, asJSON, resp, resp.Count == 0, "No metrics recorded.", metricsTable(resp.Metrics))
	},
}

type metricsTable []apiclient.StatisticsObject

func (t metricsTable) Headers() []string {
	return []string{"REQUESTED REGION", "CLIENT REGION", "OPERATION", "LATENCY (ms)", "SIZE", "TIMESTAMP"}
}

func (t metricsTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, m := range t {
		rows = append(rows, []string{
			m.RequestedRegion,
			m.ClientRegion,
			m.Operation,
			fmt.Sprintf("%.2f", m.LatencyMs),
			fmt.Sprintf("%d", m.ObjectSize),
			m.Timestamp.Format(time.RFC3339),
		})
	}
	return rows
}
