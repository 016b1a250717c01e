package models

import (
	"time"
)

// Round is a single stage of a recruitment drive. Rounds are a
// client-supplied ordered list; the server never reorders or dedups them.
type Round struct {
	Name        string `json:"name" example:"Online Assessment"`
	Description string `json:"description" example:"90 minute aptitude and coding test"`
}

// Drive defines a campus recruitment event based on the 'drives' table
type Drive struct {
	ID                   int64        `json:"id" db:"id" example:"1"`
	CompanyName          string       `json:"companyName" db:"company_name" example:"Acme Corp"`
	CompanyDescription   string       `json:"companyDescription" db:"company_description"`
	JobRole              string       `json:"jobRole" db:"job_role" example:"Software Engineer"`
	JobDescription       string       `json:"jobDescription" db:"job_description"`
	CTC                  string       `json:"ctc" db:"ctc" example:"12 LPA"` // Free-text compensation
	JobType              string       `json:"jobType" db:"job_type" example:"Full-Time"`
	DriveTitle           string       `json:"driveTitle" db:"drive_title"`
	StartDate            time.Time    `json:"startDate" db:"start_date"`
	EndDate              time.Time    `json:"endDate" db:"end_date"`
	RegistrationDeadline time.Time    `json:"registrationDeadline" db:"registration_deadline"`
	NumberOfRounds       int          `json:"numberOfRounds" db:"number_of_rounds"`
	Rounds               []Round      `json:"rounds" db:"rounds"`
	EligibleBranches     []string     `json:"eligibleBranches" db:"eligible_branches"`
	MinCGPA              float64      `json:"minCgpa" db:"min_cgpa" example:"7.5"`
	PassingYear          string       `json:"passingYear" db:"passing_year" example:"2025"`
	BacklogsAllowed      bool         `json:"backlogsAllowed" db:"backlogs_allowed"`
	RegistrationLink     string       `json:"registrationLink" db:"registration_link"`
	CreatedByID          int64        `json:"-" db:"created_by"`
	CreatedBy            *UserSummary `json:"createdBy,omitempty"` // Owner projection, no db tag
	CreatedAt            time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time    `json:"updatedAt" db:"updated_at"`
}
