// Package config provides configuration structures and loading for sfaudit.
package config

// Config represents the complete application configuration.
type Config struct {
	Salesforce SalesforceConfig       `yaml:"salesforce" mapstructure:"salesforce"`
	Limits     map[string]LimitConfig `yaml:"limits" mapstructure:"limits"`
	Audit      AuditConfig            `yaml:"audit" mapstructure:"audit"`
	Output     OutputConfig           `yaml:"output" mapstructure:"output"`
	Logging    LoggingConfig          `yaml:"logging" mapstructure:"logging"`
}

// SalesforceConfig represents how the Salesforce CLI is invoked.
type SalesforceConfig struct {
	Binary    string `yaml:"binary" mapstructure:"binary"`         // CLI executable, resolved via PATH
	TargetOrg string `yaml:"target_org" mapstructure:"target_org"` // --target-org value, empty uses the CLI default org
}

// LimitConfig represents the audit threshold for one field type.
// Fields of that type are flagged when the named size attribute
// exceeds the threshold.
type LimitConfig struct {
	Attribute string `yaml:"attribute" mapstructure:"attribute"` // "length" or "precision"
	Threshold int    `yaml:"threshold" mapstructure:"threshold"`
}

// AuditConfig represents audit run settings.
type AuditConfig struct {
	ObjectSuffix       string `yaml:"object_suffix" mapstructure:"object_suffix"`               // Discovery keeps only objects with this suffix
	Workers            int    `yaml:"workers" mapstructure:"workers"`                           // Concurrent CLI calls
	CallTimeoutSeconds int    `yaml:"call_timeout_seconds" mapstructure:"call_timeout_seconds"` // Per-call deadline
}

// OutputConfig represents report output settings.
type OutputConfig struct {
	CSVFile string `yaml:"csv_file" mapstructure:"csv_file"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values. The limit
// table carries the stock thresholds; config files can extend it with
// additional field types.
func DefaultConfig() *Config {
	return &Config{
		Salesforce: SalesforceConfig{
			Binary: "sf",
		},
		Limits: map[string]LimitConfig{
			"string": {Attribute: "length", Threshold: 250},
			"double": {Attribute: "precision", Threshold: 10},
		},
		Audit: AuditConfig{
			ObjectSuffix:       "__mdt",
			Workers:            4,
			CallTimeoutSeconds: 60,
		},
		Output: OutputConfig{
			CSVFile: "output.csv",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}
