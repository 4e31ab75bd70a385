package models

import "slices"

// Student represents an enrolled student profile.
type Student struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Department       string  `json:"department"`
	Year             int     `json:"year"`
	RollNumber       string  `json:"rollNumber"`
	GPA              float64 `json:"gpa"`
	Attendance       float64 `json:"attendance"`
	CompletedCredits int     `json:"completedCredits"`
	TotalCredits     int     `json:"totalCredits"`
	ProfileImage     *string `json:"profileImage"`
}

// Clone returns a deep copy of the student.
func (s Student) Clone() Student {
	c := s
	c.ProfileImage = clonePtr(s.ProfileImage)
	return c
}

// StudentPatch carries a partial update; nil fields are left untouched.
type StudentPatch struct {
	Name             *string  `json:"name,omitempty"`
	Email            *string  `json:"email,omitempty"`
	Department       *string  `json:"department,omitempty"`
	Year             *int     `json:"year,omitempty"`
	RollNumber       *string  `json:"rollNumber,omitempty"`
	GPA              *float64 `json:"gpa,omitempty"`
	Attendance       *float64 `json:"attendance,omitempty"`
	CompletedCredits *int     `json:"completedCredits,omitempty"`
	TotalCredits     *int     `json:"totalCredits,omitempty"`
	ProfileImage     *string  `json:"profileImage,omitempty"`
}

// Apply merges the patch into the student. The merge is shallow: set
// fields replace the previous value wholesale.
func (s *Student) Apply(p StudentPatch) {
	setStr(&s.Name, p.Name)
	setStr(&s.Email, p.Email)
	setStr(&s.Department, p.Department)
	setInt(&s.Year, p.Year)
	setStr(&s.RollNumber, p.RollNumber)
	setFloat(&s.GPA, p.GPA)
	setFloat(&s.Attendance, p.Attendance)
	setInt(&s.CompletedCredits, p.CompletedCredits)
	setInt(&s.TotalCredits, p.TotalCredits)
	if p.ProfileImage != nil {
		s.ProfileImage = clonePtr(p.ProfileImage)
	}
}

// Faculty represents a faculty member profile.
type Faculty struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Department     string   `json:"department"`
	Designation    string   `json:"designation"`
	Experience     int      `json:"experience"`
	Specialization []string `json:"specialization"`
}

// Clone returns a deep copy of the faculty member.
func (f Faculty) Clone() Faculty {
	c := f
	c.Specialization = slices.Clone(f.Specialization)
	return c
}

// FacultyPatch carries a partial update; nil fields are left untouched.
type FacultyPatch struct {
	Name           *string   `json:"name,omitempty"`
	Department     *string   `json:"department,omitempty"`
	Designation    *string   `json:"designation,omitempty"`
	Experience     *int      `json:"experience,omitempty"`
	Specialization *[]string `json:"specialization,omitempty"`
}

// Apply merges the patch into the faculty member.
func (f *Faculty) Apply(p FacultyPatch) {
	setStr(&f.Name, p.Name)
	setStr(&f.Department, p.Department)
	setStr(&f.Designation, p.Designation)
	setInt(&f.Experience, p.Experience)
	if p.Specialization != nil {
		f.Specialization = slices.Clone(*p.Specialization)
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func setStr(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
