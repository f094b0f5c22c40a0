package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	// Validate salesforce settings
	if err := c.validateSalesforce(); err != nil {
		errors = append(errors, err...)
	}

	// Validate limit table
	if err := c.validateLimits(); err != nil {
		errors = append(errors, err...)
	}

	// Validate audit settings
	if err := c.validateAudit(); err != nil {
		errors = append(errors, err...)
	}

	// Validate output settings
	if err := c.validateOutput(); err != nil {
		errors = append(errors, err...)
	}

	// Validate logging settings
	if err := c.validateLogging(); err != nil {
		errors = append(errors, err...)
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateSalesforce() ValidationErrors {
	var errors ValidationErrors

	if c.Salesforce.Binary == "" {
		errors = append(errors, ValidationError{
			Field:   "salesforce.binary",
			Message: "binary is required",
		})
	}

	return errors
}

func (c *Config) validateLimits() ValidationErrors {
	var errors ValidationErrors

	if len(c.Limits) == 0 {
		errors = append(errors, ValidationError{
			Field:   "limits",
			Message: "at least one field type limit must be defined",
		})
	}

	validAttributes := map[string]bool{"length": true, "precision": true}
	for name, limit := range c.Limits {
		prefix := fmt.Sprintf("limits.%s", name)

		if !validAttributes[limit.Attribute] {
			errors = append(errors, ValidationError{
				Field:   prefix + ".attribute",
				Message: "attribute must be 'length' or 'precision'",
			})
		}

		if limit.Threshold <= 0 {
			errors = append(errors, ValidationError{
				Field:   prefix + ".threshold",
				Message: "threshold must be positive",
			})
		}
	}

	return errors
}

func (c *Config) validateAudit() ValidationErrors {
	var errors ValidationErrors

	if c.Audit.ObjectSuffix == "" {
		errors = append(errors, ValidationError{
			Field:   "audit.object_suffix",
			Message: "object_suffix is required",
		})
	}

	if c.Audit.Workers <= 0 {
		errors = append(errors, ValidationError{
			Field:   "audit.workers",
			Message: "workers must be positive",
		})
	}

	if c.Audit.CallTimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "audit.call_timeout_seconds",
			Message: "call_timeout_seconds must be positive",
		})
	}

	return errors
}

func (c *Config) validateOutput() ValidationErrors {
	var errors ValidationErrors

	if c.Output.CSVFile == "" {
		errors = append(errors, ValidationError{
			Field:   "output.csv_file",
			Message: "csv_file is required",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
