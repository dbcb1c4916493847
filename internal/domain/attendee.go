package domain

import "time"

// AttendeeRecord is one roster row as read from the input table.
type AttendeeRecord struct {
	ID               string
	FirstName        string
	HomePhone        string
	Zipcode          string
	RegistrationTime string

	// Line is the 1-based source line (or sheet row) the record came from.
	Line int
}

// CleanedContact holds the display forms of an attendee's contact fields.
type CleanedContact struct {
	Zipcode string
	Phone   string
}

// RegistrationMoment is a successfully parsed registration timestamp.
type RegistrationMoment struct {
	Time time.Time
}

// Hour returns the hour of day, 0-23.
func (m RegistrationMoment) Hour() int { return m.Time.Hour() }

// Weekday returns the day of week, Sunday-first.
func (m RegistrationMoment) Weekday() time.Weekday { return m.Time.Weekday() }

// Attendee is a fully processed record, ready for rendering.
type Attendee struct {
	Record       AttendeeRecord
	Contact      CleanedContact
	Legislators  RepresentativeList
	Registration RegistrationMoment
}
