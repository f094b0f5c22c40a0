package stats

import (
	"fmt"
	"sort"

	"github.com/dbsmedya/sfaudit/internal/logger"
	"github.com/dbsmedya/sfaudit/internal/schema"
	"github.com/dbsmedya/sfaudit/internal/types"
)

// Aggregator folds record batches into a UsageReport, using the classified
// schema to attach declared limits and subtype labels.
type Aggregator struct {
	classified *schema.Classified
	logger     *logger.Logger
}

// NewAggregator creates an aggregator over a classified schema set.
func NewAggregator(classified *schema.Classified, log *logger.Logger) (*Aggregator, error) {
	if classified == nil {
		return nil, fmt.Errorf("classified schema is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Aggregator{
		classified: classified,
		logger:     log,
	}, nil
}

// Aggregate builds a fresh report from the given batches. Each record is
// tagged with the object its response attributes name, falling back to
// UnknownObject, and every field except the reserved attributes entry
// contributes one observation. The report is returned rather than stored,
// so repeated runs never share state.
func (a *Aggregator) Aggregate(batches []types.RecordBatch) *UsageReport {
	report := NewUsageReport()
	for _, batch := range batches {
		for _, record := range batch.Records {
			a.observeRecord(report, record)
		}
	}
	return report
}

// observeRecord folds one record into the report. Fields the schema flagged
// are walked first, in classification order, then the remaining fields in
// name order. That keeps report ordering independent of Go's map iteration.
func (a *Aggregator) observeRecord(report *UsageReport, record types.Record) {
	tag, ok := record.ObjectType()
	if !ok {
		a.logger.Debugw("Record carries no object attribute, tagging as Unknown")
		tag = UnknownObject
	}

	seen := make(map[string]bool, len(record))
	for _, d := range a.classified.Fields(tag) {
		value, present := record[d.Name]
		if !present {
			continue
		}
		seen[d.Name] = true
		a.observeField(report, tag, d.Name, types.ValueLength(value))
	}

	var rest []string
	for name := range record {
		if name == types.AttributesField || seen[name] {
			continue
		}
		rest = append(rest, name)
	}
	sort.Strings(rest)
	for _, name := range rest {
		a.observeField(report, tag, name, types.ValueLength(record[name]))
	}
}

// observeField creates or updates the stat for one (object, field) pair.
// Declared limit and subtype label come from the classification lookup on
// first sight only; they are schema-derived and constant across records.
func (a *Aggregator) observeField(report *UsageReport, objectName, fieldName string, length int) {
	if stat, ok := report.Get(objectName, fieldName); ok {
		stat.observe(length)
		return
	}

	stat := &FieldUsageStat{
		Object:   objectName,
		Field:    fieldName,
		Longest:  length,
		Shortest: length,
		Count:    1,
	}
	if d, found := a.classified.Find(objectName, fieldName); found {
		stat.DeclaredLimit = d.DeclaredLimit()
		stat.TypeInfo = schema.TypeInfoLabel(d.TypeInfo)
	}
	report.put(objectName, fieldName, stat)
}

// SortBatches orders batches by descending row count, breaking ties by
// object name, so the largest objects lead the report deterministically.
func SortBatches(batches []types.RecordBatch) {
	sort.SliceStable(batches, func(i, j int) bool {
		if batches[i].TotalSize != batches[j].TotalSize {
			return batches[i].TotalSize > batches[j].TotalSize
		}
		return batches[i].Object < batches[j].Object
	})
}
