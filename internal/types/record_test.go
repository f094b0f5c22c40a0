package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_ObjectType(t *testing.T) {
	tests := []struct {
		name         string
		record       Record
		expectedName string
		expectedOK   bool
	}{
		{
			name: "Tagged record",
			record: Record{
				AttributesField: map[string]interface{}{"type": "Limit_Config__mdt"},
				"Value__c":      "abc",
			},
			expectedName: "Limit_Config__mdt",
			expectedOK:   true,
		},
		{
			name:         "Missing attributes entry",
			record:       Record{"Value__c": "abc"},
			expectedName: "",
			expectedOK:   false,
		},
		{
			name: "Attributes without type member",
			record: Record{
				AttributesField: map[string]interface{}{"url": "/services/data"},
			},
			expectedName: "",
			expectedOK:   false,
		},
		{
			name: "Attributes of unexpected shape",
			record: Record{
				AttributesField: "not-a-map",
			},
			expectedName: "",
			expectedOK:   false,
		},
		{
			name: "Type member of unexpected shape",
			record: Record{
				AttributesField: map[string]interface{}{"type": 42},
			},
			expectedName: "",
			expectedOK:   false,
		},
		{
			name:         "Empty record",
			record:       Record{},
			expectedName: "",
			expectedOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok := tt.record.ObjectType()
			assert.Equal(t, tt.expectedName, name)
			assert.Equal(t, tt.expectedOK, ok)
		})
	}
}

func TestRecordBatch_ZeroValue(t *testing.T) {
	b := RecordBatch{}
	assert.Empty(t, b.Object)
	assert.Zero(t, b.TotalSize)
	assert.Nil(t, b.Records)
}

func TestRecordBatch_WithRecords(t *testing.T) {
	b := RecordBatch{
		Object:    "Feature_Flag__mdt",
		TotalSize: 2,
		Records: []Record{
			{AttributesField: map[string]interface{}{"type": "Feature_Flag__mdt"}, "Key__c": "alpha"},
			{AttributesField: map[string]interface{}{"type": "Feature_Flag__mdt"}, "Key__c": "beta"},
		},
	}

	assert.Equal(t, "Feature_Flag__mdt", b.Object)
	assert.Equal(t, 2, b.TotalSize)
	assert.Len(t, b.Records, 2)

	name, ok := b.Records[0].ObjectType()
	assert.True(t, ok)
	assert.Equal(t, "Feature_Flag__mdt", name)
}
