package auditor

import (
	"github.com/dbsmedya/sfaudit/internal/schema"
	"github.com/dbsmedya/sfaudit/internal/soql"
)

// PlanQueries builds one SOQL statement per classified object, selecting its
// flagged fields in classification order. Objects with no flagged fields are
// skipped; there is nothing to measure on them. An object whose names fail
// SOQL validation is left out rather than queried with a malformed statement.
func PlanQueries(classified *schema.Classified) []PlannedQuery {
	if classified == nil {
		return nil
	}

	var queries []PlannedQuery
	for _, objectName := range classified.Objects() {
		fields := classified.Fields(objectName)
		if len(fields) == 0 {
			continue
		}

		names := make([]string, 0, len(fields))
		for _, d := range fields {
			names = append(names, d.Name)
		}

		stmt, err := soql.SelectQuery(objectName, names)
		if err != nil {
			continue
		}

		queries = append(queries, PlannedQuery{
			Object: objectName,
			SOQL:   stmt,
		})
	}
	return queries
}
