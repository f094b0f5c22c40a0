// Package stats aggregates observed record values into per-object, per-field
// usage statistics.
package stats

import (
	"github.com/elliotchance/orderedmap/v2"
)

// UnknownObject tags records whose query response carried no usable object
// attribute. Their statistics still accumulate, just without schema context.
const UnknownObject = "Unknown"

// FieldUsageStat accumulates the observed usage of one field under one
// object. Created lazily on first observation, updated by every subsequent
// one, never deleted within a run.
type FieldUsageStat struct {
	Object        string // Object the observations were tagged with
	Field         string // Field API name
	Longest       int    // Longest observed value, in characters
	Shortest      int    // Shortest observed value, in characters
	Count         int    // Number of records the field appeared in
	DeclaredLimit int    // Declared size from the schema, 0 when unclassified
	TypeInfo      string // Subtype label for reporting, empty when none
}

// observe folds one more value length into the stat.
func (s *FieldUsageStat) observe(length int) {
	if length > s.Longest {
		s.Longest = length
	}
	if length < s.Shortest {
		s.Shortest = length
	}
	s.Count++
}

// UsageReport holds aggregated statistics keyed by object, then field, both
// levels in first-observation order. It is the run's terminal artifact;
// emitters treat it as read-only.
type UsageReport struct {
	objects *orderedmap.OrderedMap[string, *orderedmap.OrderedMap[string, *FieldUsageStat]]
}

// NewUsageReport creates an empty report.
func NewUsageReport() *UsageReport {
	return &UsageReport{
		objects: orderedmap.NewOrderedMap[string, *orderedmap.OrderedMap[string, *FieldUsageStat]](),
	}
}

// Objects returns the object names in first-observation order.
func (r *UsageReport) Objects() []string {
	return r.objects.Keys()
}

// Stats returns one object's field statistics in first-observation order.
func (r *UsageReport) Stats(objectName string) []*FieldUsageStat {
	fields, ok := r.objects.Get(objectName)
	if !ok {
		return nil
	}
	out := make([]*FieldUsageStat, 0, fields.Len())
	for el := fields.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Get returns the stat for one (object, field) pair.
func (r *UsageReport) Get(objectName, fieldName string) (*FieldUsageStat, bool) {
	fields, ok := r.objects.Get(objectName)
	if !ok {
		return nil, false
	}
	return fields.Get(fieldName)
}

// Len returns the number of objects in the report.
func (r *UsageReport) Len() int {
	return r.objects.Len()
}

// TotalFields returns the number of (object, field) pairs in the report.
func (r *UsageReport) TotalFields() int {
	total := 0
	for el := r.objects.Front(); el != nil; el = el.Next() {
		total += el.Value.Len()
	}
	return total
}

// Empty reports whether nothing was observed.
func (r *UsageReport) Empty() bool {
	return r.objects.Len() == 0
}

// put stores a freshly created stat under its (object, field) key.
func (r *UsageReport) put(objectName, fieldName string, stat *FieldUsageStat) {
	fields, ok := r.objects.Get(objectName)
	if !ok {
		fields = orderedmap.NewOrderedMap[string, *FieldUsageStat]()
		r.objects.Set(objectName, fields)
	}
	fields.Set(fieldName, stat)
}
