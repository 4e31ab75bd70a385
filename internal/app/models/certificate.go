package models

import "time"

// Certificate represents an uploaded certificate document pending review.
type Certificate struct {
	ID               string     `json:"id"`
	StudentID        string     `json:"studentId"`
	Title            string     `json:"title"`
	Issuer           string     `json:"issuer"`
	IssueDate        time.Time  `json:"issueDate"`
	UploadDate       time.Time  `json:"uploadDate"`
	FileType         string     `json:"fileType"`
	FileSize         int64      `json:"fileSize"`
	FileURL          string     `json:"fileUrl"`
	VerificationCode *string    `json:"verificationCode"`
	Status           Status     `json:"status"`
	ApprovedBy       *string    `json:"approvedBy"`
	RejectedBy       *string    `json:"rejectedBy"`
	ApprovalDate     *time.Time `json:"approvalDate"`
	RejectionDate    *time.Time `json:"rejectionDate"`
	ApprovalComment  *string    `json:"approvalComment"`
	RejectionComment *string    `json:"rejectionComment"`
}

// Clone returns a deep copy of the certificate.
func (c Certificate) Clone() Certificate {
	cp := c
	cp.VerificationCode = clonePtr(c.VerificationCode)
	cp.ApprovedBy = clonePtr(c.ApprovedBy)
	cp.RejectedBy = clonePtr(c.RejectedBy)
	cp.ApprovalDate = clonePtr(c.ApprovalDate)
	cp.RejectionDate = clonePtr(c.RejectionDate)
	cp.ApprovalComment = clonePtr(c.ApprovalComment)
	cp.RejectionComment = clonePtr(c.RejectionComment)
	return cp
}

// CertificatePatch carries a partial update; nil fields are left untouched.
type CertificatePatch struct {
	Title            *string    `json:"title,omitempty"`
	Issuer           *string    `json:"issuer,omitempty"`
	IssueDate        *time.Time `json:"issueDate,omitempty"`
	FileType         *string    `json:"fileType,omitempty"`
	FileSize         *int64     `json:"fileSize,omitempty"`
	FileURL          *string    `json:"fileUrl,omitempty"`
	VerificationCode *string    `json:"verificationCode,omitempty"`
	Status           *Status    `json:"status,omitempty"`
	ApprovedBy       *string    `json:"approvedBy,omitempty"`
	RejectedBy       *string    `json:"rejectedBy,omitempty"`
	ApprovalDate     *time.Time `json:"approvalDate,omitempty"`
	RejectionDate    *time.Time `json:"rejectionDate,omitempty"`
	ApprovalComment  *string    `json:"approvalComment,omitempty"`
	RejectionComment *string    `json:"rejectionComment,omitempty"`
}

// Apply merges the patch into the certificate.
func (c *Certificate) Apply(p CertificatePatch) {
	setStr(&c.Title, p.Title)
	setStr(&c.Issuer, p.Issuer)
	if p.IssueDate != nil {
		c.IssueDate = *p.IssueDate
	}
	setStr(&c.FileType, p.FileType)
	if p.FileSize != nil {
		c.FileSize = *p.FileSize
	}
	setStr(&c.FileURL, p.FileURL)
	if p.VerificationCode != nil {
		c.VerificationCode = clonePtr(p.VerificationCode)
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.ApprovedBy != nil {
		c.ApprovedBy = clonePtr(p.ApprovedBy)
	}
	if p.RejectedBy != nil {
		c.RejectedBy = clonePtr(p.RejectedBy)
	}
	if p.ApprovalDate != nil {
		c.ApprovalDate = clonePtr(p.ApprovalDate)
	}
	if p.RejectionDate != nil {
		c.RejectionDate = clonePtr(p.RejectionDate)
	}
	if p.ApprovalComment != nil {
		c.ApprovalComment = clonePtr(p.ApprovalComment)
	}
	if p.RejectionComment != nil {
		c.RejectionComment = clonePtr(p.RejectionComment)
	}
}

// CertificateApproval builds the patch for a pending to approved transition.
func CertificateApproval(approver, comment string) CertificatePatch {
	now := time.Now()
	status := StatusApproved
	return CertificatePatch{
		Status:          &status,
		ApprovedBy:      &approver,
		ApprovalDate:    &now,
		ApprovalComment: &comment,
	}
}

// CertificateRejection builds the patch for a pending to rejected transition.
func CertificateRejection(actor, comment string) CertificatePatch {
	now := time.Now()
	status := StatusRejected
	return CertificatePatch{
		Status:           &status,
		RejectedBy:       &actor,
		RejectionDate:    &now,
		RejectionComment: &comment,
	}
}
