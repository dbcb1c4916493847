package domain

import (
	"context"
	"log/slog"
)

// RepresentativeLookup finds the national legislators for an address.
type RepresentativeLookup interface {
	// LegislatorsByZipcode returns the upper- and lower-chamber legislators
	// at the country level for the given zipcode.
	LegislatorsByZipcode(ctx context.Context, zipcode string) ([]Official, error)
}

// LookupRepresentatives queries lookup for zipcode. It never fails: a nil lookup
// or any lookup error yields the fallback variant (graceful degradation).
func LookupRepresentatives(ctx context.Context, zipcode string, lookup RepresentativeLookup, logger *slog.Logger) RepresentativeList {
	if lookup == nil {
		return FallbackList(ReasonDisabled, nil)
	}

	officials, err := lookup.LegislatorsByZipcode(ctx, zipcode)
	if err != nil {
		reason := ReasonOf(err)
		logger.Warn("representative lookup failed",
			"zipcode", zipcode,
			"reason", reason,
			"error", err,
		)
		return FallbackList(reason, err)
	}
	return FoundOfficials(officials)
}
