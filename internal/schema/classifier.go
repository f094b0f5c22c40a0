package schema

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/sfaudit/internal/salesforce"
)

// FieldDescriptor describes one custom field whose declared size exceeded its
// type's threshold. Identity is the (object, field name) pair; descriptors
// exist only for flagged fields.
type FieldDescriptor struct {
	Name      string    // Field API name
	Type      string    // Field type as described
	Length    int       // Declared character length
	Precision int       // Declared numeric precision
	Kind      LimitKind // Which of the two sizes the limit measured
	Threshold int       // Threshold the field exceeded
	TypeInfo  string    // Raw subtype code, e.g. "externallookup"
}

// DeclaredLimit returns the declared size the limit kind measures.
func (d FieldDescriptor) DeclaredLimit() int {
	if d.Kind == PrecisionLimited {
		return d.Precision
	}
	return d.Length
}

// Classified holds the flagged field descriptors per object, preserving the
// order objects were classified in and the order fields appeared in each
// describe payload. Built once per run and read-only afterwards.
type Classified struct {
	objects *orderedmap.OrderedMap[string, []FieldDescriptor]
}

// NewClassified creates an empty classified schema set.
func NewClassified() *Classified {
	return &Classified{
		objects: orderedmap.NewOrderedMap[string, []FieldDescriptor](),
	}
}

// Add records the flagged fields for one object. Re-adding an object
// replaces its field list but keeps its original position.
func (c *Classified) Add(objectName string, fields []FieldDescriptor) {
	c.objects.Set(objectName, fields)
}

// Objects returns the object names in insertion order.
func (c *Classified) Objects() []string {
	return c.objects.Keys()
}

// Fields returns the flagged fields for an object, nil when the object was
// never classified.
func (c *Classified) Fields(objectName string) []FieldDescriptor {
	fields, _ := c.objects.Get(objectName)
	return fields
}

// Find locates the descriptor for one field under one object. The flagged
// lists are short, so a linear scan beats carrying a second index.
func (c *Classified) Find(objectName, fieldName string) (FieldDescriptor, bool) {
	fields, ok := c.objects.Get(objectName)
	if !ok {
		return FieldDescriptor{}, false
	}
	for _, d := range fields {
		if d.Name == fieldName {
			return d, true
		}
	}
	return FieldDescriptor{}, false
}

// Len returns the number of classified objects.
func (c *Classified) Len() int {
	return c.objects.Len()
}

// TotalFields returns the number of flagged fields across all objects.
func (c *Classified) TotalFields() int {
	total := 0
	for el := c.objects.Front(); el != nil; el = el.Next() {
		total += len(el.Value)
	}
	return total
}

// Classifier flags oversized custom fields according to a limit policy.
type Classifier struct {
	policy *LimitPolicy
}

// NewClassifier creates a classifier for the given policy.
func NewClassifier(policy *LimitPolicy) (*Classifier, error) {
	if policy == nil {
		return nil, fmt.Errorf("limit policy is nil")
	}
	return &Classifier{policy: policy}, nil
}

// Classify filters one object's fields down to the custom ones whose
// policy-designated size attribute strictly exceeds the threshold. Source
// order is preserved. Fields of types outside the policy, standard fields,
// and fields whose size attribute is absent (zero) are never flagged.
func (c *Classifier) Classify(fields []salesforce.Field) []FieldDescriptor {
	var flagged []FieldDescriptor
	for _, field := range fields {
		if !field.Custom {
			continue
		}
		limit, audited := c.policy.ThresholdFor(field.Type)
		if !audited {
			continue
		}

		declared := field.Length
		if limit.Kind == PrecisionLimited {
			declared = field.Precision
		}
		if declared <= limit.Threshold {
			continue
		}

		flagged = append(flagged, FieldDescriptor{
			Name:      field.Name,
			Type:      field.Type,
			Length:    field.Length,
			Precision: field.Precision,
			Kind:      limit.Kind,
			Threshold: limit.Threshold,
			TypeInfo:  field.ExtraTypeInfo,
		})
	}
	return flagged
}

// TypeInfoLabel maps a raw field subtype code to its report label. Codes
// without a known label map to the empty string.
func TypeInfoLabel(code string) string {
	switch code {
	case "externallookup":
		return "Lookup"
	case "plaintextarea":
		return "TextArea"
	default:
		return ""
	}
}
