package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusApproved.Valid())
	assert.True(t, StatusRejected.Valid())
	assert.False(t, Status("archived").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
}

func TestNewIDFormat(t *testing.T) {
	id := NewID(PrefixActivity)
	parts := strings.Split(id, "_")
	assert.Equal(t, 3, len(parts))
	assert.Equal(t, PrefixActivity, parts[0])
	assert.Len(t, parts[2], 8)
}

func TestNewIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID(PrefixEvent)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestActivityApprovalPatch(t *testing.T) {
	a := Activity{ID: "ACT001", Status: StatusPending}
	a.Apply(ActivityApproval("Dr. Kumar", "verified"))

	assert.Equal(t, StatusApproved, a.Status)
	if assert.NotNil(t, a.ApprovedBy) {
		assert.Equal(t, "Dr. Kumar", *a.ApprovedBy)
	}
	assert.NotNil(t, a.ApprovalDate)
	assert.Nil(t, a.RejectedBy)
	assert.Nil(t, a.RejectionDate)
}

func TestActivityRejectionPatch(t *testing.T) {
	a := Activity{ID: "ACT001", Status: StatusPending}
	a.Apply(ActivityRejection("Dr. Iyer", "insufficient evidence"))

	assert.Equal(t, StatusRejected, a.Status)
	if assert.NotNil(t, a.RejectedBy) {
		assert.Equal(t, "Dr. Iyer", *a.RejectedBy)
	}
	if assert.NotNil(t, a.RejectionComment) {
		assert.Equal(t, "insufficient evidence", *a.RejectionComment)
	}
	assert.Nil(t, a.ApprovedBy)
}

func TestActivityPatchLeavesUnsetFieldsAlone(t *testing.T) {
	a := Activity{Title: "Hackathon", Credits: 3, Category: "Technical"}

	credits := 5
	a.Apply(ActivityPatch{Credits: &credits})

	assert.Equal(t, "Hackathon", a.Title)
	assert.Equal(t, 5, a.Credits)
	assert.Equal(t, "Technical", a.Category)
}

func TestActivityCloneIsDeep(t *testing.T) {
	by := "Dr. Kumar"
	a := Activity{
		ApprovedBy: &by,
		Skills:     []string{"Go"},
	}
	c := a.Clone()
	*c.ApprovedBy = "someone else"
	c.Skills[0] = "Rust"

	assert.Equal(t, "Dr. Kumar", *a.ApprovedBy)
	assert.Equal(t, "Go", a.Skills[0])
}

func TestEventFull(t *testing.T) {
	assert.True(t, Event{MaxParticipants: 10, RegistrationCount: 10}.Full())
	assert.True(t, Event{MaxParticipants: 10, RegistrationCount: 12}.Full())
	assert.False(t, Event{MaxParticipants: 10, RegistrationCount: 9}.Full())
	// Zero cap means unlimited.
	assert.False(t, Event{MaxParticipants: 0, RegistrationCount: 500}.Full())
}

func TestStatisticsTallies(t *testing.T) {
	var stats Statistics
	stats.TallyActivities([]Activity{
		{Status: StatusPending},
		{Status: StatusPending},
		{Status: StatusApproved},
		{Status: StatusRejected},
	})
	stats.TallyCertificates([]Certificate{
		{Status: StatusApproved},
		{Status: StatusPending},
	})
	stats.TallyEvents([]Event{
		{Status: EventOpen},
		{Status: EventClosed},
		{Status: EventOpen},
	})

	assert.Equal(t, 4, stats.TotalActivities)
	assert.Equal(t, 2, stats.PendingActivities)
	assert.Equal(t, 1, stats.ApprovedActivities)
	assert.Equal(t, 1, stats.RejectedActivities)
	assert.Equal(t, 2, stats.TotalCertificates)
	assert.Equal(t, 1, stats.PendingCertificates)
	assert.Equal(t, 3, stats.TotalEvents)
	assert.Equal(t, 2, stats.OpenEvents)
}
