package auditor

import (
	"time"

	"github.com/dbsmedya/sfaudit/internal/schema"
	"github.com/dbsmedya/sfaudit/internal/stats"
)

// Selection names the objects an audit run covers. Explicit names are taken
// verbatim; FromOrg discovers custom metadata types from the target org
// instead.
type Selection struct {
	Objects []string
	FromOrg bool
}

// PlannedQuery is one SOQL statement the audit will run, selecting every
// flagged field of one object.
type PlannedQuery struct {
	Object string
	SOQL   string
}

// PlanResult holds the audit plan: which objects were selected, which of
// their fields the schema scan flagged, and the queries that will fetch
// their values.
type PlanResult struct {
	Objects          []string
	Classified       *schema.Classified
	Queries          []PlannedQuery
	DescribeFailures int
}

// Result contains statistics and the usage report of one audit run.
type Result struct {
	StartedAt        time.Time
	CompletedAt      time.Time
	Duration         time.Duration
	ObjectsSelected  int
	DescribeFailures int
	FlaggedFields    int
	QueriesPlanned   int
	QueryFailures    int
	RecordsScanned   int
	Report           *stats.UsageReport
	Classified       *schema.Classified
}
