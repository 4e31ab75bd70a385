package models

import (
	"slices"
	"time"
)

// EventStatus tracks whether an event still accepts registrations.
type EventStatus string

const (
	EventOpen   EventStatus = "open"
	EventClosed EventStatus = "closed"
)

// Organizer identifies who runs an event. OrganizerID is a real foreign
// key to a faculty or external account; the display fields ride along so
// listings do not need a join.
type Organizer struct {
	OrganizerID        string `json:"organizerId"`
	Name               string `json:"name"`
	Type               string `json:"type"`
	VerificationStatus string `json:"verificationStatus"`
	ContactEmail       string `json:"contactEmail"`
}

// Venue describes where an event takes place.
type Venue struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
}

// EventDates groups the schedule of an event.
type EventDates struct {
	StartDate            time.Time `json:"startDate"`
	EndDate              time.Time `json:"endDate"`
	RegistrationDeadline time.Time `json:"registrationDeadline"`
}

// EventFees groups the fee tiers of an event.
type EventFees struct {
	Student      float64 `json:"student"`
	Professional float64 `json:"professional"`
	Currency     string  `json:"currency"`
}

// Event represents a registrable campus event.
type Event struct {
	ID                string      `json:"id"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Type              string      `json:"type"`
	Category          string      `json:"category"`
	Organizer         Organizer   `json:"organizer"`
	Venue             Venue       `json:"venue"`
	Dates             EventDates  `json:"dates"`
	Fees              EventFees   `json:"fees"`
	Tags              []string    `json:"tags"`
	MaxParticipants   int         `json:"maxParticipants"`
	RegistrationCount int         `json:"registrationCount"`
	Status            EventStatus `json:"status"`
	CreatedBy         string      `json:"createdBy"`
	CreatedDate       time.Time   `json:"createdDate"`
}

// Clone returns a deep copy of the event.
func (e Event) Clone() Event {
	c := e
	c.Tags = slices.Clone(e.Tags)
	return c
}

// Full reports whether the event has reached its participant cap.
func (e Event) Full() bool {
	return e.MaxParticipants > 0 && e.RegistrationCount >= e.MaxParticipants
}

// EventPatch carries a partial update; nil fields are left untouched.
// Nested groups (organizer, venue, dates, fees) are replaced wholesale.
type EventPatch struct {
	Title             *string      `json:"title,omitempty"`
	Description       *string      `json:"description,omitempty"`
	Type              *string      `json:"type,omitempty"`
	Category          *string      `json:"category,omitempty"`
	Organizer         *Organizer   `json:"organizer,omitempty"`
	Venue             *Venue       `json:"venue,omitempty"`
	Dates             *EventDates  `json:"dates,omitempty"`
	Fees              *EventFees   `json:"fees,omitempty"`
	Tags              *[]string    `json:"tags,omitempty"`
	MaxParticipants   *int         `json:"maxParticipants,omitempty"`
	RegistrationCount *int         `json:"registrationCount,omitempty"`
	Status            *EventStatus `json:"status,omitempty"`
}

// Apply merges the patch into the event.
func (e *Event) Apply(p EventPatch) {
	setStr(&e.Title, p.Title)
	setStr(&e.Description, p.Description)
	setStr(&e.Type, p.Type)
	setStr(&e.Category, p.Category)
	if p.Organizer != nil {
		e.Organizer = *p.Organizer
	}
	if p.Venue != nil {
		e.Venue = *p.Venue
	}
	if p.Dates != nil {
		e.Dates = *p.Dates
	}
	if p.Fees != nil {
		e.Fees = *p.Fees
	}
	if p.Tags != nil {
		e.Tags = slices.Clone(*p.Tags)
	}
	setInt(&e.MaxParticipants, p.MaxParticipants)
	setInt(&e.RegistrationCount, p.RegistrationCount)
	if p.Status != nil {
		e.Status = *p.Status
	}
}

// PaymentStatus tracks whether a registration fee has been settled.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// AttendanceStatus tracks whether a registrant showed up.
type AttendanceStatus string

const (
	AttendanceRegistered AttendanceStatus = "registered"
	AttendanceAttended   AttendanceStatus = "attended"
	AttendanceAbsent     AttendanceStatus = "absent"
)

// Registration links a student to an event.
type Registration struct {
	ID               string           `json:"id"`
	EventID          string           `json:"eventId"`
	StudentID        string           `json:"studentId"`
	RegistrationDate time.Time        `json:"registrationDate"`
	PaymentStatus    PaymentStatus    `json:"paymentStatus"`
	AttendanceStatus AttendanceStatus `json:"attendanceStatus"`
}

// Clone returns a copy of the registration.
func (r Registration) Clone() Registration {
	return r
}
