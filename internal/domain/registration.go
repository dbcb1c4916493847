package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// RegistrationLayout is the roster's RegDate format, e.g. "11/12/08 10:47".
	RegistrationLayout = "1/2/06 15:04"

	// SummaryLayout formats a registration for the per-record progress line,
	// e.g. "Wednesday, Nov 12 at 10:47 AM".
	SummaryLayout = "Monday, Jan 02 at 03:04 PM"
)

// ParseRegistrationTime parses a RegDate value.
func ParseRegistrationTime(raw string) (RegistrationMoment, error) {
	t, err := time.Parse(RegistrationLayout, strings.TrimSpace(raw))
	if err != nil {
		return RegistrationMoment{}, fmt.Errorf("invalid registration time %q: %w", raw, err)
	}
	return RegistrationMoment{Time: t}, nil
}

// SummaryLine renders the one-line progress message for a processed attendee.
func SummaryLine(a Attendee) string {
	return fmt.Sprintf("%s - %s - %s - Registered on %s",
		a.Record.FirstName,
		a.Contact.Zipcode,
		a.Contact.Phone,
		a.Registration.Time.Format(SummaryLayout),
	)
}
