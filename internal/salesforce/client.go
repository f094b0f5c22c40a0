// Package salesforce wraps the Salesforce CLI for describe, metadata listing,
// and SOQL query calls, decoding its JSON payloads into typed results.
package salesforce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dbsmedya/sfaudit/internal/config"
)

// ErrMalformed indicates the CLI produced output that did not decode into the
// expected payload shape. Callers match it with errors.Is.
var ErrMalformed = errors.New("malformed response")

// Client handles Salesforce CLI invocations for a single org.
type Client struct {
	binary string
	org    string
	runner Runner
}

// NewClient creates a new client from configuration.
func NewClient(cfg *config.SalesforceConfig) (*Client, error) {
	return newClient(cfg, execRunner{})
}

// NewClientWithRunner creates a client on a caller-supplied runner.
// Tests use this to stub the CLI.
func NewClientWithRunner(cfg *config.SalesforceConfig, runner Runner) (*Client, error) {
	if runner == nil {
		return nil, fmt.Errorf("runner is nil")
	}
	return newClient(cfg, runner)
}

func newClient(cfg *config.SalesforceConfig, runner Runner) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("salesforce config is nil")
	}

	binary := cfg.Binary
	if binary == "" {
		binary = "sf"
	}

	return &Client{
		binary: binary,
		org:    cfg.TargetOrg,
		runner: runner,
	}, nil
}

// run executes one CLI command, appending the target-org flag when one is
// configured.
func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	if c.org != "" {
		args = append(args, "--target-org", c.org)
	}
	return c.runner.Run(ctx, c.binary, args...)
}

// DescribeObject retrieves the schema of a single object. The describe
// command prints the payload bare, so it is decoded without an envelope.
func (c *Client) DescribeObject(ctx context.Context, objectName string) (*ObjectDescribe, error) {
	out, err := c.run(ctx, "sobject", "describe", "--sobject", objectName)
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", objectName, err)
	}

	var describe ObjectDescribe
	if err := json.Unmarshal(out, &describe); err != nil {
		return nil, fmt.Errorf("describe %s: %w: %v", objectName, ErrMalformed, err)
	}

	return &describe, nil
}

// ListCustomObjects retrieves the full names of every custom object the org
// reports. The listing envelope carries its own status; non-zero means the
// org-side call failed even though the process exited cleanly.
func (c *Client) ListCustomObjects(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "org", "list", "metadata", "--json", "--metadata-type", "CustomObject")
	if err != nil {
		return nil, fmt.Errorf("list metadata: %w", err)
	}

	var envelope metadataEnvelope
	if err := json.Unmarshal(out, &envelope); err != nil {
		return nil, fmt.Errorf("list metadata: %w: %v", ErrMalformed, err)
	}
	if envelope.Status != 0 {
		return nil, fmt.Errorf("list metadata: command reported status %d", envelope.Status)
	}

	names := make([]string, 0, len(envelope.Result))
	for _, item := range envelope.Result {
		names = append(names, item.FullName)
	}
	return names, nil
}

// RunQuery executes one SOQL query and returns its result payload.
func (c *Client) RunQuery(ctx context.Context, soql string) (*QueryResult, error) {
	out, err := c.run(ctx, "data", "query", "--json", "--query", soql)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	var envelope queryEnvelope
	if err := json.Unmarshal(out, &envelope); err != nil {
		return nil, fmt.Errorf("query: %w: %v", ErrMalformed, err)
	}

	return &envelope.Result, nil
}

// Version reports the CLI's own version string. The probe runs without the
// target-org flag; it checks the binary, not the org.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.runner.Run(ctx, c.binary, "--version")
	if err != nil {
		return "", fmt.Errorf("version probe: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Binary returns the configured CLI executable name.
func (c *Client) Binary() string {
	return c.binary
}

// TargetOrg returns the configured org, empty when the CLI default is used.
func (c *Client) TargetOrg() string {
	return c.org
}
