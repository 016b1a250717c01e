package dto

import (
	"time"

	"github.com/arjun/placementhub/internal/app/models"
	"github.com/arjun/placementhub/internal/pkg/listing"
)

// CreateDriveRequest carries a full drive definition
type CreateDriveRequest struct {
	CompanyName          string          `json:"companyName" binding:"required"`
	CompanyDescription   string          `json:"companyDescription" binding:"required"`
	JobRole              string          `json:"jobRole" binding:"required"`
	JobDescription       string          `json:"jobDescription" binding:"required"`
	CTC                  string          `json:"ctc" binding:"required"`
	JobType              string          `json:"jobType" binding:"required"`
	DriveTitle           string          `json:"driveTitle" binding:"required"`
	StartDate            time.Time       `json:"startDate" binding:"required"`
	EndDate              time.Time       `json:"endDate" binding:"required"`
	RegistrationDeadline time.Time       `json:"registrationDeadline" binding:"required"`
	NumberOfRounds       int             `json:"numberOfRounds" binding:"required"`
	Rounds               []models.Round  `json:"rounds"`
	EligibleBranches     []string        `json:"eligibleBranches" binding:"required"`
	MinCGPA              float64         `json:"minCgpa" binding:"min=0,max=10"`
	PassingYear          string          `json:"passingYear" binding:"required"`
	BacklogsAllowed      bool            `json:"backlogsAllowed"`
	RegistrationLink     string          `json:"registrationLink" binding:"required"`
}

// UpdateDriveRequest carries a partial drive update; nil fields are left
// untouched. Date fields participate in the merged-view invariant check.
type UpdateDriveRequest struct {
	CompanyName          *string         `json:"companyName"`
	CompanyDescription   *string         `json:"companyDescription"`
	JobRole              *string         `json:"jobRole"`
	JobDescription       *string         `json:"jobDescription"`
	CTC                  *string         `json:"ctc"`
	JobType              *string         `json:"jobType"`
	DriveTitle           *string         `json:"driveTitle"`
	StartDate            *time.Time      `json:"startDate"`
	EndDate              *time.Time      `json:"endDate"`
	RegistrationDeadline *time.Time      `json:"registrationDeadline"`
	NumberOfRounds       *int            `json:"numberOfRounds"`
	Rounds               *[]models.Round `json:"rounds"`
	EligibleBranches     *[]string       `json:"eligibleBranches"`
	MinCGPA              *float64        `json:"minCgpa"`
	PassingYear          *string         `json:"passingYear"`
	BacklogsAllowed      *bool           `json:"backlogsAllowed"`
	RegistrationLink     *string         `json:"registrationLink"`
}

// DriveListResponse is a page of drives plus pagination metadata
type DriveListResponse struct {
	Items []models.Drive `json:"items"`
	listing.PageInfo
}
