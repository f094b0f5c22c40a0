package salesforce

import "github.com/dbsmedya/sfaudit/internal/types"

// Field is one field entry from an object describe payload.
type Field struct {
	Name          string `json:"name"`
	Custom        bool   `json:"custom"`
	Type          string `json:"type"`
	Length        int    `json:"length"`
	Precision     int    `json:"precision"`
	ExtraTypeInfo string `json:"extraTypeInfo"`
}

// ObjectDescribe is the schema payload for a single object. The describe
// command prints it bare, without the status envelope.
type ObjectDescribe struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// MetadataItem is one entry in an org metadata listing.
type MetadataItem struct {
	FullName string `json:"fullName"`
}

// metadataEnvelope wraps the org listing the CLI prints with --json.
type metadataEnvelope struct {
	Status int            `json:"status"`
	Result []MetadataItem `json:"result"`
}

// QueryResult carries the rows one SOQL query returned.
type QueryResult struct {
	TotalSize int            `json:"totalSize"`
	Done      bool           `json:"done"`
	Records   []types.Record `json:"records"`
}

// queryEnvelope wraps a query result the CLI prints with --json.
type queryEnvelope struct {
	Status int         `json:"status"`
	Result QueryResult `json:"result"`
}
