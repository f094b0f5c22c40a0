package auditor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dbsmedya/sfaudit/internal/config"
	"github.com/dbsmedya/sfaudit/internal/logger"
	"github.com/dbsmedya/sfaudit/internal/salesforce"
	"github.com/dbsmedya/sfaudit/internal/stats"
	"github.com/dbsmedya/sfaudit/internal/types"
)

// QueryService runs one SOQL query and returns its rows.
type QueryService interface {
	RunQuery(ctx context.Context, soql string) (*salesforce.QueryResult, error)
}

// Executor runs planned queries with bounded parallelism.
type Executor struct {
	queries QueryService
	workers int
	timeout time.Duration
	logger  *logger.Logger
}

// NewExecutor creates an executor over a query service. Worker count and
// per-call timeout come from the audit configuration.
func NewExecutor(queries QueryService, cfg *config.AuditConfig, log *logger.Logger) (*Executor, error) {
	if queries == nil {
		return nil, fmt.Errorf("query service is nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("audit config is nil")
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.CallTimeoutSeconds < 1 {
		return nil, fmt.Errorf("call timeout must be at least 1 second, got %d", cfg.CallTimeoutSeconds)
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Executor{
		queries: queries,
		workers: cfg.Workers,
		timeout: time.Duration(cfg.CallTimeoutSeconds) * time.Second,
		logger:  log,
	}, nil
}

// Execute runs every planned query concurrently, each under its own timeout.
// A failed query is logged and skipped rather than failing the run, so the
// second return is the number of queries that produced no batch. Batches come
// back sorted by descending row count for a deterministic report.
func (e *Executor) Execute(ctx context.Context, queries []PlannedQuery) ([]types.RecordBatch, int) {
	if len(queries) == 0 {
		return nil, 0
	}

	var (
		mu      sync.Mutex
		batches []types.RecordBatch
		failed  int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for _, query := range queries {
		q := query
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, e.timeout)
			defer cancel()

			result, err := e.queries.RunQuery(callCtx, q.SOQL)
			if err != nil {
				e.logger.WithObject(q.Object).WithQuery(q.SOQL).Warnw("Query failed, skipping object", "error", err)
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}

			e.logger.WithObject(q.Object).Debugw("Query completed",
				"total_size", result.TotalSize,
				"records", len(result.Records),
			)
			if result.TotalSize != len(result.Records) {
				e.logger.WithObject(q.Object).Warnw("Result size mismatch, stats may undercount",
					"total_size", result.TotalSize,
					"returned", len(result.Records),
				)
			}

			mu.Lock()
			batches = append(batches, types.RecordBatch{
				Object:    q.Object,
				TotalSize: result.TotalSize,
				Records:   result.Records,
			})
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors, they record failures instead.
	_ = g.Wait()

	stats.SortBatches(batches)
	return batches, failed
}
