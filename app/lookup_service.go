package app

import (
	"context"
	"strings"

	"resultdesk/domain/result"
	"resultdesk/internal"
	"resultdesk/internal/errors"
	"resultdesk/ports"
)

// Lookup messages shown to students
const (
	MsgEmptyRegistration = "Please enter your registration number."
	MsgResultNotFound    = "Result not found. Please check your registration number or contact school."
)

// LookupService finds a student's record across classes and scores it
type LookupService struct {
	store   ports.ResultStore
	classes []result.ClassLabel
	policy  result.ScoringPolicy
	logger  *internal.Logger
}

// NewLookupService creates a lookup service. classes are searched in order.
func NewLookupService(store ports.ResultStore, classes []result.ClassLabel, policy result.ScoringPolicy, logger *internal.Logger) *LookupService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &LookupService{
		store:   store,
		classes: classes,
		policy:  policy,
		logger:  logger.With("LookupService"),
	}
}

// Lookup returns the marksheet of the first record, in class order, whose
// registration number matches query ignoring case and surrounding spaces
func (s *LookupService) Lookup(ctx context.Context, query string) (*result.Marksheet, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.InvalidInput(MsgEmptyRegistration)
	}

	for _, class := range s.classes {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "lookup cancelled")
		}

		records := s.store.Records(class)
		if len(records) == 0 {
			continue
		}

		roles := result.ClassifyColumns(records[0].Headers())
		if !roles.HasRegistration() {
			s.logger.Debug("Class %s has no registration column, skipping", class)
			continue
		}

		record, ok := result.FindByRegistration(records, roles.RegistrationCol, query)
		if !ok {
			continue
		}

		marksheet := result.BuildMarksheet(record, roles, class, s.policy)
		s.logger.Debug("Found %q in Class %s", query, class)
		return &marksheet, nil
	}

	return nil, errors.NotFound(MsgResultNotFound)
}
