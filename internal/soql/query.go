// Package soql assembles SOQL statements for audit queries.
package soql

import (
	"fmt"
	"regexp"
	"strings"
)

// validNameRegex matches Salesforce API names: a leading letter followed by
// alphanumerics and underscores. The __c and __mdt suffixes on custom names
// fall within this.
var validNameRegex = regexp.MustCompile("^[A-Za-z][A-Za-z0-9_]*$")

// IsValidName checks if a name can appear as an object or field name in a
// SOQL statement. SOQL has no identifier quoting, so a name that fails this
// check cannot be queried at all.
func IsValidName(name string) bool {
	return validNameRegex.MatchString(name)
}

// SelectQuery builds a SELECT statement over the given fields.
// Every name is validated first. Names normally come straight from describe
// output, so a failure here means the CLI response was malformed.
func SelectQuery(object string, fields []string) (string, error) {
	if !IsValidName(object) {
		return "", &InvalidNameError{Name: object}
	}
	if len(fields) == 0 {
		return "", fmt.Errorf("no fields to select from %s", object)
	}
	for _, field := range fields {
		if !IsValidName(field) {
			return "", &InvalidNameError{Name: field}
		}
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(fields, ", "), object), nil
}

// InvalidNameError is returned when a name cannot appear in a SOQL statement.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return "invalid SOQL name: " + e.Name + " (must start with a letter and contain only alphanumeric characters and underscores)"
}
