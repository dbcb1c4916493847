package pipeline

import (
	"context"
	"log/slog"

	"github.com/PivtoranisV/event-manager/internal/domain"
)

// AttendeeTransformer implements Transformer using the domain normalization
// functions with optional representative lookup.
type AttendeeTransformer struct {
	lookup domain.RepresentativeLookup
	logger *slog.Logger
}

// NewTransformer creates an AttendeeTransformer. Pass a nil lookup to disable
// the civic service; every letter then carries the fallback guidance.
func NewTransformer(lookup domain.RepresentativeLookup, logger *slog.Logger) *AttendeeTransformer {
	return &AttendeeTransformer{
		lookup: lookup,
		logger: logger,
	}
}

// Transform cleans the contact fields, looks up legislators, and parses the
// registration time. The returned Attendee is populated even when the
// registration time fails to parse, so callers can report the name.
func (t *AttendeeTransformer) Transform(ctx context.Context, rec domain.AttendeeRecord) (domain.Attendee, error) {
	a := domain.Attendee{
		Record:  rec,
		Contact: domain.CleanContact(rec),
	}
	a.Legislators = domain.LookupRepresentatives(ctx, a.Contact.Zipcode, t.lookup, t.logger)

	moment, err := domain.ParseRegistrationTime(rec.RegistrationTime)
	if err != nil {
		return a, err
	}
	a.Registration = moment
	return a, nil
}
