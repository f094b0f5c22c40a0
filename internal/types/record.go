// Package types contains shared types used across multiple packages to avoid import cycles.
package types

// AttributesField is the reserved bookkeeping entry the query service attaches
// to every record. It is never treated as object data.
const AttributesField = "attributes"

// Record is a single row returned by the record-query service, keyed by field
// name. Values keep the loose typing of the wire payload.
type Record map[string]interface{}

// ObjectType returns the object name the query service tagged this record
// with, read from the attributes entry. The second return is false when the
// record carries no usable tag.
func (r Record) ObjectType() (string, bool) {
	attrs, ok := r[AttributesField].(map[string]interface{})
	if !ok {
		return "", false
	}
	name, ok := attrs["type"].(string)
	return name, ok
}

// RecordBatch holds the records one query returned for one object.
type RecordBatch struct {
	Object    string   // Object the query selected from
	TotalSize int      // Row count reported by the query service
	Records   []Record // Returned rows
}
