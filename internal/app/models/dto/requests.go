package dto

import (
	"time"

	"github.com/campustrack/campustrack/internal/app/models"
)

// LoginRequest is the credentials payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	Role      string  `json:"role" binding:"required,oneof=student faculty admin"`
	StudentID *string `json:"studentId"`
	FacultyID *string `json:"facultyId"`
}

// CreateActivityRequest is the payload for POST /activities.
type CreateActivityRequest struct {
	StudentID   string    `json:"studentId" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Type        string    `json:"type" binding:"required"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Credits     int       `json:"credits" binding:"gte=0"`
	Skills      []string  `json:"skills"`
	Evidence    []string  `json:"evidence"`
}

// ToModel converts the request into a new pending activity.
func (r CreateActivityRequest) ToModel() models.Activity {
	return models.Activity{
		StudentID:   r.StudentID,
		Title:       r.Title,
		Type:        models.ActivityType(r.Type),
		Category:    r.Category,
		Description: r.Description,
		Date:        r.Date,
		Credits:     r.Credits,
		Skills:      r.Skills,
		Evidence:    r.Evidence,
	}
}

// CreateCertificateRequest is the payload for POST /certificates.
type CreateCertificateRequest struct {
	StudentID        string    `json:"studentId" binding:"required"`
	Title            string    `json:"title" binding:"required"`
	Issuer           string    `json:"issuer" binding:"required"`
	IssueDate        time.Time `json:"issueDate"`
	FileType         string    `json:"fileType"`
	FileSize         int64     `json:"fileSize" binding:"gte=0"`
	FileURL          string    `json:"fileUrl"`
	VerificationCode *string   `json:"verificationCode"`
}

// ToModel converts the request into a new pending certificate.
func (r CreateCertificateRequest) ToModel() models.Certificate {
	return models.Certificate{
		StudentID:        r.StudentID,
		Title:            r.Title,
		Issuer:           r.Issuer,
		IssueDate:        r.IssueDate,
		FileType:         r.FileType,
		FileSize:         r.FileSize,
		FileURL:          r.FileURL,
		VerificationCode: r.VerificationCode,
	}
}

// CreateEventRequest is the payload for POST /events.
type CreateEventRequest struct {
	Title           string            `json:"title" binding:"required"`
	Description     string            `json:"description"`
	Type            string            `json:"type"`
	Category        string            `json:"category"`
	Organizer       models.Organizer  `json:"organizer"`
	Venue           models.Venue      `json:"venue"`
	Dates           models.EventDates `json:"dates"`
	Fees            models.EventFees  `json:"fees"`
	Tags            []string          `json:"tags"`
	MaxParticipants int               `json:"maxParticipants" binding:"gte=0"`
}

// ToModel converts the request into a new open event.
func (r CreateEventRequest) ToModel() models.Event {
	return models.Event{
		Title:           r.Title,
		Description:     r.Description,
		Type:            r.Type,
		Category:        r.Category,
		Organizer:       r.Organizer,
		Venue:           r.Venue,
		Dates:           r.Dates,
		Fees:            r.Fees,
		Tags:            r.Tags,
		MaxParticipants: r.MaxParticipants,
	}
}

// CreateStudentRequest is the payload for POST /students.
type CreateStudentRequest struct {
	Name             string  `json:"name" binding:"required"`
	Email            string  `json:"email" binding:"required,email"`
	Department       string  `json:"department"`
	Year             int     `json:"year" binding:"gte=0"`
	RollNumber       string  `json:"rollNumber"`
	GPA              float64 `json:"gpa" binding:"gte=0,lte=10"`
	Attendance       float64 `json:"attendance" binding:"gte=0,lte=100"`
	CompletedCredits int     `json:"completedCredits" binding:"gte=0"`
	TotalCredits     int     `json:"totalCredits" binding:"gte=0"`
	ProfileImage     *string `json:"profileImage"`
}

// ToModel converts the request into a new student record.
func (r CreateStudentRequest) ToModel() models.Student {
	return models.Student{
		Name:             r.Name,
		Email:            r.Email,
		Department:       r.Department,
		Year:             r.Year,
		RollNumber:       r.RollNumber,
		GPA:              r.GPA,
		Attendance:       r.Attendance,
		CompletedCredits: r.CompletedCredits,
		TotalCredits:     r.TotalCredits,
		ProfileImage:     r.ProfileImage,
	}
}

// CreateFacultyRequest is the payload for POST /faculty.
type CreateFacultyRequest struct {
	Name           string   `json:"name" binding:"required"`
	Department     string   `json:"department"`
	Designation    string   `json:"designation"`
	Experience     int      `json:"experience" binding:"gte=0"`
	Specialization []string `json:"specialization"`
}

// ToModel converts the request into a new faculty record.
func (r CreateFacultyRequest) ToModel() models.Faculty {
	return models.Faculty{
		Name:           r.Name,
		Department:     r.Department,
		Designation:    r.Designation,
		Experience:     r.Experience,
		Specialization: r.Specialization,
	}
}

// ReviewRequest is the payload for approval/rejection transitions carried
// inside a generic update.
type ReviewRequest struct {
	Actor   string `json:"actor" binding:"required"`
	Comment string `json:"comment"`
}

// RegisterForEventRequest is the payload for POST /events/:id/register.
type RegisterForEventRequest struct {
	StudentID string `json:"studentId" binding:"required"`
}
