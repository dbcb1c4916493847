package domain

import (
	"errors"
	"fmt"
	"strings"
)

// FallbackGuidance is shown in place of representatives when the lookup fails.
const FallbackGuidance = "You can find your representatives by visiting www.commoncause.org/take-action/find-elected-officials"

// FallbackReason says why a representative lookup fell back to guidance text.
type FallbackReason string

const (
	ReasonDisabled     FallbackReason = "disabled"
	ReasonTransport    FallbackReason = "transport"
	ReasonUnauthorized FallbackReason = "unauthorized"
	ReasonBadAddress   FallbackReason = "bad_address"
	ReasonQuota        FallbackReason = "quota"
	ReasonService      FallbackReason = "service"
	ReasonDecode       FallbackReason = "decode"
)

// Official is an elected official as returned by the civic information service.
type Official struct {
	Name     string
	Party    string
	Phones   []string
	URLs     []string
	Emails   []string
	PhotoURL string
}

// Fallback describes a failed lookup.
type Fallback struct {
	Reason  FallbackReason
	Message string
	Err     error
}

// RepresentativeList is either a list of officials or a fallback, never both.
type RepresentativeList struct {
	Officials []Official
	Fallback  *Fallback
}

// Found reports whether the lookup succeeded.
func (l RepresentativeList) Found() bool { return l.Fallback == nil }

// Guidance returns the fallback text, or "" when the lookup succeeded.
func (l RepresentativeList) Guidance() string {
	if l.Fallback == nil {
		return ""
	}
	return l.Fallback.Message
}

// Names returns the official names joined with ", ".
func (l RepresentativeList) Names() string {
	names := make([]string, 0, len(l.Officials))
	for _, o := range l.Officials {
		names = append(names, o.Name)
	}
	return strings.Join(names, ", ")
}

// String renders the list the way it is printed on a letter.
func (l RepresentativeList) String() string {
	if !l.Found() {
		return l.Guidance()
	}
	return l.Names()
}

// FoundOfficials wraps a successful lookup result.
func FoundOfficials(officials []Official) RepresentativeList {
	if officials == nil {
		officials = []Official{}
	}
	return RepresentativeList{Officials: officials}
}

// FallbackList builds the fallback variant for the given reason.
func FallbackList(reason FallbackReason, err error) RepresentativeList {
	return RepresentativeList{Fallback: &Fallback{
		Reason:  reason,
		Message: FallbackGuidance,
		Err:     err,
	}}
}

// LookupError is returned by RepresentativeLookup implementations to classify failures.
type LookupError struct {
	Reason FallbackReason
	Err    error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("representative lookup (%s): %v", e.Reason, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// ReasonOf extracts the FallbackReason from err, defaulting to ReasonService.
func ReasonOf(err error) FallbackReason {
	var le *LookupError
	if errors.As(err, &le) && le.Reason != "" {
		return le.Reason
	}
	return ReasonService
}
