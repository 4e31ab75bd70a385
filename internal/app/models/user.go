package models

import "time"

// Role is the authorization role of an authenticated account.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// User is an authentication principal. Students and faculty accounts link
// back to their profile records via StudentID / FacultyID.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	StudentID    *string   `json:"studentId,omitempty"`
	FacultyID    *string   `json:"facultyId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Clone returns a deep copy of the user.
func (u User) Clone() User {
	c := u
	c.StudentID = clonePtr(u.StudentID)
	c.FacultyID = clonePtr(u.FacultyID)
	return c
}

// Statistics is the aggregate read model over all collections. It is
// recomputed on demand, never stored.
type Statistics struct {
	TotalActivities      int `json:"totalActivities"`
	PendingActivities    int `json:"pendingActivities"`
	ApprovedActivities   int `json:"approvedActivities"`
	RejectedActivities   int `json:"rejectedActivities"`
	TotalCertificates    int `json:"totalCertificates"`
	PendingCertificates  int `json:"pendingCertificates"`
	ApprovedCertificates int `json:"approvedCertificates"`
	RejectedCertificates int `json:"rejectedCertificates"`
	TotalEvents          int `json:"totalEvents"`
	OpenEvents           int `json:"openEvents"`
	TotalStudents        int `json:"totalStudents"`
	TotalFaculty         int `json:"totalFaculty"`
}

// TallyActivities folds an activity list into the statistics.
func (s *Statistics) TallyActivities(activities []Activity) {
	s.TotalActivities = len(activities)
	for _, a := range activities {
		switch a.Status {
		case StatusPending:
			s.PendingActivities++
		case StatusApproved:
			s.ApprovedActivities++
		case StatusRejected:
			s.RejectedActivities++
		}
	}
}

// TallyCertificates folds a certificate list into the statistics.
func (s *Statistics) TallyCertificates(certificates []Certificate) {
	s.TotalCertificates = len(certificates)
	for _, c := range certificates {
		switch c.Status {
		case StatusPending:
			s.PendingCertificates++
		case StatusApproved:
			s.ApprovedCertificates++
		case StatusRejected:
			s.RejectedCertificates++
		}
	}
}

// TallyEvents folds an event list into the statistics.
func (s *Statistics) TallyEvents(events []Event) {
	s.TotalEvents = len(events)
	for _, e := range events {
		if e.Status == EventOpen {
			s.OpenEvents++
		}
	}
}
