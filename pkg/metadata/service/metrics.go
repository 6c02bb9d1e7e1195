package service

import (
	"context"
	"fmt"

	"github.com/cloudmesh-io/skymeta/internal/telemetry"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/models"
	"github.com/cloudmesh-io/skymeta/pkg/metadata/store"
)

// RecordMetrics inserts one append-only statistics row (§4.7 RecordMetrics).
func (s *Service) RecordMetrics(ctx context.Context, req RecordMetricsRequest) (err error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanRecordMetrics)
	telemetry.SetAttributes(ctx, telemetry.Region(req.ClientRegion))
	defer func() {
		telemetry.RecordError(ctx, err)
		span.End()
	}()

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}
	defer tx.Rollback(ctx)

	stat := &models.StatisticsObject{
		RequestedRegion: req.RequestedRegion,
		ClientRegion:    req.ClientRegion,
		Operation:       req.Operation,
		LatencyMs:       req.Latency,
		Timestamp:       req.Timestamp,
		ObjectSize:      req.ObjectSize,
	}
	if err := store.RecordMetrics(ctx, tx, stat); err != nil {
		return fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}
	return tx.Commit(ctx)
}

// ListMetrics returns all rows for a given client region with their count
// (§4.7 ListMetrics).
func (s *Service) ListMetrics(ctx context.Context, req ListMetricsRequest) (resp *ListMetricsResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanListMetrics)
	telemetry.SetAttributes(ctx, telemetry.Region(req.ClientRegion))
	defer func() {
		telemetry.RecordError(ctx, err)
		span.End()
	}()

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}
	defer tx.Rollback(ctx)

	rows, err := store.ListMetrics(ctx, tx, req.ClientRegion)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics := make([]models.StatisticsObject, 0, len(rows))
	for _, r := range rows {
		metrics = append(metrics, *r)
	}
	return &ListMetricsResponse{Count: len(metrics), Metrics: metrics}, nil
}
