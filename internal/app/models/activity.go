package models

import (
	"slices"
	"time"
)

// ActivityType enumerates the kinds of student activities.
type ActivityType string

const (
	ActivityConference    ActivityType = "conference"
	ActivityCertification ActivityType = "certification"
	ActivityInternship    ActivityType = "internship"
	ActivityCompetition   ActivityType = "competition"
	ActivityVolunteering  ActivityType = "volunteering"
	ActivityLeadership    ActivityType = "leadership"
	ActivityWorkshop      ActivityType = "workshop"
)

// Activity represents a student-submitted activity pending faculty review.
type Activity struct {
	ID               string       `json:"id"`
	StudentID        string       `json:"studentId"`
	Title            string       `json:"title"`
	Type             ActivityType `json:"type"`
	Category         string       `json:"category"`
	Description      string       `json:"description"`
	Date             time.Time    `json:"date"`
	Credits          int          `json:"credits"`
	Status           Status       `json:"status"`
	ApprovedBy       *string      `json:"approvedBy"`
	RejectedBy       *string      `json:"rejectedBy"`
	ApprovalDate     *time.Time   `json:"approvalDate"`
	RejectionDate    *time.Time   `json:"rejectionDate"`
	ApprovalComment  *string      `json:"approvalComment"`
	RejectionComment *string      `json:"rejectionComment"`
	Skills           []string     `json:"skills"`
	Evidence         []string     `json:"evidence"`
	CreatedAt        time.Time    `json:"createdAt"`
}

// Clone returns a deep copy of the activity.
func (a Activity) Clone() Activity {
	c := a
	c.ApprovedBy = clonePtr(a.ApprovedBy)
	c.RejectedBy = clonePtr(a.RejectedBy)
	c.ApprovalDate = clonePtr(a.ApprovalDate)
	c.RejectionDate = clonePtr(a.RejectionDate)
	c.ApprovalComment = clonePtr(a.ApprovalComment)
	c.RejectionComment = clonePtr(a.RejectionComment)
	c.Skills = slices.Clone(a.Skills)
	c.Evidence = slices.Clone(a.Evidence)
	return c
}

// ActivityPatch carries a partial update; nil fields are left untouched.
type ActivityPatch struct {
	Title            *string       `json:"title,omitempty"`
	Type             *ActivityType `json:"type,omitempty"`
	Category         *string       `json:"category,omitempty"`
	Description      *string       `json:"description,omitempty"`
	Date             *time.Time    `json:"date,omitempty"`
	Credits          *int          `json:"credits,omitempty"`
	Status           *Status       `json:"status,omitempty"`
	ApprovedBy       *string       `json:"approvedBy,omitempty"`
	RejectedBy       *string       `json:"rejectedBy,omitempty"`
	ApprovalDate     *time.Time    `json:"approvalDate,omitempty"`
	RejectionDate    *time.Time    `json:"rejectionDate,omitempty"`
	ApprovalComment  *string       `json:"approvalComment,omitempty"`
	RejectionComment *string       `json:"rejectionComment,omitempty"`
	Skills           *[]string     `json:"skills,omitempty"`
	Evidence         *[]string     `json:"evidence,omitempty"`
}

// Apply merges the patch into the activity.
func (a *Activity) Apply(p ActivityPatch) {
	setStr(&a.Title, p.Title)
	if p.Type != nil {
		a.Type = *p.Type
	}
	setStr(&a.Category, p.Category)
	setStr(&a.Description, p.Description)
	if p.Date != nil {
		a.Date = *p.Date
	}
	setInt(&a.Credits, p.Credits)
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.ApprovedBy != nil {
		a.ApprovedBy = clonePtr(p.ApprovedBy)
	}
	if p.RejectedBy != nil {
		a.RejectedBy = clonePtr(p.RejectedBy)
	}
	if p.ApprovalDate != nil {
		a.ApprovalDate = clonePtr(p.ApprovalDate)
	}
	if p.RejectionDate != nil {
		a.RejectionDate = clonePtr(p.RejectionDate)
	}
	if p.ApprovalComment != nil {
		a.ApprovalComment = clonePtr(p.ApprovalComment)
	}
	if p.RejectionComment != nil {
		a.RejectionComment = clonePtr(p.RejectionComment)
	}
	if p.Skills != nil {
		a.Skills = slices.Clone(*p.Skills)
	}
	if p.Evidence != nil {
		a.Evidence = slices.Clone(*p.Evidence)
	}
}

// ActivityApproval builds the patch for a pending to approved transition,
// stamped at call time.
func ActivityApproval(approver, comment string) ActivityPatch {
	now := time.Now()
	status := StatusApproved
	return ActivityPatch{
		Status:          &status,
		ApprovedBy:      &approver,
		ApprovalDate:    &now,
		ApprovalComment: &comment,
	}
}

// ActivityRejection builds the patch for a pending to rejected transition,
// stamped at call time.
func ActivityRejection(actor, comment string) ActivityPatch {
	now := time.Now()
	status := StatusRejected
	return ActivityPatch{
		Status:           &status,
		RejectedBy:       &actor,
		RejectionDate:    &now,
		RejectionComment: &comment,
	}
}
