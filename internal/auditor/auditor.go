// Package auditor provides the audit orchestration for sfaudit: it selects
// objects, classifies their schemas against the limit policy, plans and runs
// the value queries, and aggregates the results into a usage report.
package auditor

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dbsmedya/sfaudit/internal/config"
	"github.com/dbsmedya/sfaudit/internal/logger"
	"github.com/dbsmedya/sfaudit/internal/salesforce"
	"github.com/dbsmedya/sfaudit/internal/schema"
	"github.com/dbsmedya/sfaudit/internal/stats"
)

// DescribeService retrieves the schema of one object.
type DescribeService interface {
	DescribeObject(ctx context.Context, objectName string) (*salesforce.ObjectDescribe, error)
}

// Service is the slice of the Salesforce client the auditor consumes.
type Service interface {
	DescribeService
	ListingService
	QueryService
}

// Auditor coordinates one audit run from selection through reporting.
type Auditor struct {
	cfg        *config.Config
	service    Service
	classifier *schema.Classifier
	selector   *Selector
	executor   *Executor
	logger     *logger.Logger
}

// NewAuditor creates an auditor with the given configuration and Salesforce
// service. The limit policy is resolved here, so an invalid limit table
// fails construction rather than the run.
func NewAuditor(cfg *config.Config, service Service, log *logger.Logger) (*Auditor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if service == nil {
		return nil, fmt.Errorf("salesforce service is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}

	policy, err := schema.NewLimitPolicy(cfg.Limits)
	if err != nil {
		return nil, fmt.Errorf("failed to build limit policy: %w", err)
	}

	classifier, err := schema.NewClassifier(policy)
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier: %w", err)
	}

	selector, err := NewSelector(service, cfg.Audit.ObjectSuffix, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create selector: %w", err)
	}

	executor, err := NewExecutor(service, &cfg.Audit, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create executor: %w", err)
	}

	return &Auditor{
		cfg:        cfg,
		service:    service,
		classifier: classifier,
		selector:   selector,
		executor:   executor,
		logger:     log,
	}, nil
}

// Plan resolves the selection, describes and classifies every selected
// object, and builds the queries an audit of that selection would run.
// Objects whose describe call fails are logged and left out of the plan.
func (a *Auditor) Plan(ctx context.Context, sel Selection) (*PlanResult, error) {
	// The CLI enforces this too; re-checking keeps library callers honest.
	if sel.FromOrg && len(sel.Objects) > 0 {
		return nil, fmt.Errorf("selection cannot combine an explicit object list with org discovery")
	}
	if !sel.FromOrg && len(sel.Objects) == 0 {
		return nil, fmt.Errorf("selection names no objects and does not request discovery")
	}

	objects := a.selector.SelectObjects(ctx, sel)
	a.logger.Infow("Selected objects for audit", "count", len(objects))

	classified, describeFailures := a.describeAndClassify(ctx, objects)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("plan cancelled: %w", err)
	}

	queries := PlanQueries(classified)
	a.logger.Infow("Planned queries",
		"objects", len(objects),
		"flagged_objects", len(queries),
		"flagged_fields", classified.TotalFields(),
		"describe_failures", describeFailures,
	)

	return &PlanResult{
		Objects:          objects,
		Classified:       classified,
		Queries:          queries,
		DescribeFailures: describeFailures,
	}, nil
}

// describeAndClassify fans the describe calls out with bounded parallelism
// and assembles the classified set in selection order, so concurrency never
// changes the plan.
func (a *Auditor) describeAndClassify(ctx context.Context, objects []string) (*schema.Classified, int) {
	describes := make([]*salesforce.ObjectDescribe, len(objects))
	timeout := time.Duration(a.cfg.Audit.CallTimeoutSeconds) * time.Second

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Audit.Workers)

	for i, objectName := range objects {
		i, objectName := i, objectName
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, timeout)
			defer cancel()

			describe, err := a.service.DescribeObject(callCtx, objectName)
			if err != nil {
				a.logger.WithObject(objectName).Warnw("Describe failed, skipping object", "error", err)
				return nil
			}
			describes[i] = describe
			return nil
		})
	}

	// Workers never return errors, failed slots stay nil.
	_ = g.Wait()

	classified := schema.NewClassified()
	failures := 0
	for i, objectName := range objects {
		if describes[i] == nil {
			failures++
			continue
		}
		flagged := a.classifier.Classify(describes[i].Fields)
		classified.Add(objectName, flagged)
		if len(flagged) > 0 {
			a.logger.WithObject(objectName).Debugw("Flagged oversized fields", "count", len(flagged))
		}
	}
	return classified, failures
}

// Run executes the full audit for the selection and returns its report.
// Failed describes and queries are counted, not fatal; the report covers
// whatever succeeded.
func (a *Auditor) Run(ctx context.Context, sel Selection) (*Result, error) {
	startedAt := time.Now()

	plan, err := a.Plan(ctx, sel)
	if err != nil {
		return nil, err
	}

	batches, queryFailures := a.executor.Execute(ctx, plan.Queries)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("audit cancelled: %w", err)
	}

	aggregator, err := stats.NewAggregator(plan.Classified, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create aggregator: %w", err)
	}
	report := aggregator.Aggregate(batches)

	recordsScanned := 0
	for _, batch := range batches {
		recordsScanned += len(batch.Records)
	}

	result := &Result{
		StartedAt:        startedAt,
		CompletedAt:      time.Now(),
		ObjectsSelected:  len(plan.Objects),
		DescribeFailures: plan.DescribeFailures,
		FlaggedFields:    plan.Classified.TotalFields(),
		QueriesPlanned:   len(plan.Queries),
		QueryFailures:    queryFailures,
		RecordsScanned:   recordsScanned,
		Report:           report,
		Classified:       plan.Classified,
	}
	result.Duration = result.CompletedAt.Sub(result.StartedAt)

	a.logger.Infow("Audit completed",
		"duration", result.Duration,
		"objects", result.ObjectsSelected,
		"flagged_fields", result.FlaggedFields,
		"queries_planned", result.QueriesPlanned,
		"query_failures", result.QueryFailures,
		"records_scanned", result.RecordsScanned,
	)

	return result, nil
}
