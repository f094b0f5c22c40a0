package auditor

import (
	"context"
	"fmt"
	"strings"

	"github.com/dbsmedya/sfaudit/internal/logger"
)

// ListingService lists the custom objects the target org reports.
type ListingService interface {
	ListCustomObjects(ctx context.Context) ([]string, error)
}

// Selector resolves a Selection into the concrete object names to audit.
type Selector struct {
	listing ListingService
	suffix  string
	logger  *logger.Logger
}

// NewSelector creates a selector that discovers objects through the given
// listing service, keeping only names with the configured suffix.
func NewSelector(listing ListingService, suffix string, log *logger.Logger) (*Selector, error) {
	if listing == nil {
		return nil, fmt.Errorf("listing service is nil")
	}
	if suffix == "" {
		return nil, fmt.Errorf("object suffix is empty")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Selector{
		listing: listing,
		suffix:  suffix,
		logger:  log,
	}, nil
}

// SelectObjects resolves the selection. Explicit names pass through verbatim,
// including ones without the suffix. Discovery failures are logged and yield
// an empty selection so the run can finish with an empty report.
func (s *Selector) SelectObjects(ctx context.Context, sel Selection) []string {
	if !sel.FromOrg {
		return sel.Objects
	}

	names, err := s.listing.ListCustomObjects(ctx)
	if err != nil {
		s.logger.Warnw("Object discovery failed, nothing selected", "error", err)
		return nil
	}

	var selected []string
	for _, name := range names {
		if strings.HasSuffix(name, s.suffix) {
			selected = append(selected, name)
		}
	}

	s.logger.Infow("Discovered objects",
		"listed", len(names),
		"selected", len(selected),
		"suffix", s.suffix,
	)
	return selected
}
