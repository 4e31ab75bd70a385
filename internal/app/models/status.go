package models

// Status represents the approval state of an activity or certificate.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the known approval states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
// Re-approval and re-submission are not modeled.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}
