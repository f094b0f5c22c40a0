// Package schema classifies object field metadata against configured size limits.
package schema

import (
	"fmt"
	"sort"

	"github.com/dbsmedya/sfaudit/internal/config"
)

// LimitKind identifies which declared size attribute of a field a limit
// constrains.
type LimitKind int

const (
	// LengthLimited limits measure the declared character length.
	LengthLimited LimitKind = iota
	// PrecisionLimited limits measure the declared numeric precision.
	PrecisionLimited
)

// String returns the attribute name the kind reads from field metadata.
func (k LimitKind) String() string {
	switch k {
	case LengthLimited:
		return "length"
	case PrecisionLimited:
		return "precision"
	default:
		return "unknown"
	}
}

// FieldLimit is the resolved audit limit for one field type.
type FieldLimit struct {
	Kind      LimitKind
	Threshold int
}

// LimitPolicy maps field type names to their audit limits. Immutable after
// construction.
type LimitPolicy struct {
	limits map[string]FieldLimit
}

// NewLimitPolicy builds a policy from a configured limit table. The string
// attribute names are resolved into LimitKind here, once, so everything
// downstream dispatches on the closed enum.
func NewLimitPolicy(limits map[string]config.LimitConfig) (*LimitPolicy, error) {
	resolved := make(map[string]FieldLimit, len(limits))
	for fieldType, limit := range limits {
		kind, err := parseKind(limit.Attribute)
		if err != nil {
			return nil, fmt.Errorf("limit for type %q: %w", fieldType, err)
		}
		if limit.Threshold <= 0 {
			return nil, fmt.Errorf("limit for type %q: threshold must be positive", fieldType)
		}
		resolved[fieldType] = FieldLimit{Kind: kind, Threshold: limit.Threshold}
	}
	return &LimitPolicy{limits: resolved}, nil
}

// DefaultLimitPolicy returns a policy with the stock thresholds: strings
// longer than 250 characters and doubles with precision over 10.
func DefaultLimitPolicy() *LimitPolicy {
	policy, _ := NewLimitPolicy(config.DefaultConfig().Limits)
	return policy
}

// parseKind converts a configured attribute name to its LimitKind.
func parseKind(attribute string) (LimitKind, error) {
	switch attribute {
	case "length":
		return LengthLimited, nil
	case "precision":
		return PrecisionLimited, nil
	default:
		return 0, fmt.Errorf("unknown size attribute %q", attribute)
	}
}

// ThresholdFor looks up the limit for a field type. The second return is
// false for types not subject to the audit; callers skip those fields.
func (p *LimitPolicy) ThresholdFor(fieldType string) (FieldLimit, bool) {
	limit, ok := p.limits[fieldType]
	return limit, ok
}

// Types returns the field type names the policy covers, sorted.
func (p *LimitPolicy) Types() []string {
	names := make([]string, 0, len(p.limits))
	for name := range p.limits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of field types the policy covers.
func (p *LimitPolicy) Len() int {
	return len(p.limits)
}
