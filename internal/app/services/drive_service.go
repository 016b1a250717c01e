package services

import (
	"context"
	"time"

	"github.com/arjun/placementhub/internal/app/auth"
	"github.com/arjun/placementhub/internal/app/models"
	"github.com/arjun/placementhub/internal/app/models/dto"
	"github.com/arjun/placementhub/internal/pkg/apperrors"
	"github.com/arjun/placementhub/internal/pkg/listing"
	"github.com/arjun/placementhub/internal/pkg/logger"
)

// DriveStore is the persistence surface the drive service needs.
type DriveStore interface {
	List(ctx context.Context, q listing.Query) ([]models.Drive, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Drive, error)
	Create(ctx context.Context, drive *models.Drive) (int64, error)
	Update(ctx context.Context, drive *models.Drive) error
	Delete(ctx context.Context, id int64) error
}

// DriveService defines recruitment drive operations
type DriveService interface {
	ListDrives(ctx context.Context, q listing.Query) (*dto.DriveListResponse, error)
	GetDrive(ctx context.Context, id int64) (*models.Drive, error)
	CreateDrive(ctx context.Context, actor *auth.Principal, req *dto.CreateDriveRequest) (*models.Drive, error)
	UpdateDrive(ctx context.Context, actor *auth.Principal, id int64, req *dto.UpdateDriveRequest) (*models.Drive, error)
	DeleteDrive(ctx context.Context, actor *auth.Principal, id int64) error
}

type driveService struct {
	drives DriveStore
}

// NewDriveService creates a new DriveService
func NewDriveService(drives DriveStore) DriveService {
	return &driveService{drives: drives}
}

// validateDriveDates enforces the drive timeline ordering. Equal boundary
// dates are allowed.
func validateDriveDates(registrationDeadline, startDate, endDate time.Time) error {
	if registrationDeadline.After(startDate) {
		return apperrors.NewValidationError("Registration deadline must be before or on the start date.")
	}
	if endDate.Before(startDate) {
		return apperrors.NewValidationError("End date must be after or on the start date.")
	}
	return nil
}

func (s *driveService) ListDrives(ctx context.Context, q listing.Query) (*dto.DriveListResponse, error) {
	drives, total, err := s.drives.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &dto.DriveListResponse{
		Items:    drives,
		PageInfo: listing.NewPageInfo(total, q),
	}, nil
}

func (s *driveService) GetDrive(ctx context.Context, id int64) (*models.Drive, error) {
	return s.drives.GetByID(ctx, id)
}

func (s *driveService) CreateDrive(ctx context.Context, actor *auth.Principal, req *dto.CreateDriveRequest) (*models.Drive, error) {
	if err := validateDriveDates(req.RegistrationDeadline, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	if req.MinCGPA < 0 || req.MinCGPA > 10 {
		return nil, apperrors.NewValidationError("Minimum CGPA must be between 0 and 10")
	}

	rounds := req.Rounds
	if rounds == nil {
		rounds = []models.Round{}
	}

	drive := &models.Drive{
		CompanyName:          req.CompanyName,
		CompanyDescription:   req.CompanyDescription,
		JobRole:              req.JobRole,
		JobDescription:       req.JobDescription,
		CTC:                  req.CTC,
		JobType:              req.JobType,
		DriveTitle:           req.DriveTitle,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		RegistrationDeadline: req.RegistrationDeadline,
		NumberOfRounds:       req.NumberOfRounds,
		Rounds:               rounds,
		EligibleBranches:     req.EligibleBranches,
		MinCGPA:              req.MinCGPA,
		PassingYear:          req.PassingYear,
		BacklogsAllowed:      req.BacklogsAllowed,
		RegistrationLink:     req.RegistrationLink,
		CreatedByID:          actor.ID,
	}

	id, err := s.drives.Create(ctx, drive)
	if err != nil {
		return nil, err
	}

	return s.drives.GetByID(ctx, id)
}

// UpdateDrive merges the partial update onto the stored drive, re-validates
// the merged timeline, then persists. Only the owner or an admin may update.
func (s *driveService) UpdateDrive(ctx context.Context, actor *auth.Principal, id int64, req *dto.UpdateDriveRequest) (*models.Drive, error) {
	drive, err := s.drives.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.CanMutate(drive.CreatedByID) {
		return nil, apperrors.NewForbiddenError("You are not allowed to modify this drive")
	}

	if req.CompanyName != nil {
		drive.CompanyName = *req.CompanyName
	}
	if req.CompanyDescription != nil {
		drive.CompanyDescription = *req.CompanyDescription
	}
	if req.JobRole != nil {
		drive.JobRole = *req.JobRole
	}
	if req.JobDescription != nil {
		drive.JobDescription = *req.JobDescription
	}
	if req.CTC != nil {
		drive.CTC = *req.CTC
	}
	if req.JobType != nil {
		drive.JobType = *req.JobType
	}
	if req.DriveTitle != nil {
		drive.DriveTitle = *req.DriveTitle
	}
	if req.StartDate != nil {
		drive.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		drive.EndDate = *req.EndDate
	}
	if req.RegistrationDeadline != nil {
		drive.RegistrationDeadline = *req.RegistrationDeadline
	}
	if req.NumberOfRounds != nil {
		drive.NumberOfRounds = *req.NumberOfRounds
	}
	if req.Rounds != nil {
		drive.Rounds = *req.Rounds
	}
	if req.EligibleBranches != nil {
		drive.EligibleBranches = *req.EligibleBranches
	}
	if req.MinCGPA != nil {
		if *req.MinCGPA < 0 || *req.MinCGPA > 10 {
			return nil, apperrors.NewValidationError("Minimum CGPA must be between 0 and 10")
		}
		drive.MinCGPA = *req.MinCGPA
	}
	if req.PassingYear != nil {
		drive.PassingYear = *req.PassingYear
	}
	if req.BacklogsAllowed != nil {
		drive.BacklogsAllowed = *req.BacklogsAllowed
	}
	if req.RegistrationLink != nil {
		drive.RegistrationLink = *req.RegistrationLink
	}

	// The invariant holds on the merged view, so a partial date change cannot
	// sneak an inconsistent timeline past validation.
	if err := validateDriveDates(drive.RegistrationDeadline, drive.StartDate, drive.EndDate); err != nil {
		return nil, err
	}

	if err := s.drives.Update(ctx, drive); err != nil {
		return nil, err
	}

	return s.drives.GetByID(ctx, id)
}

func (s *driveService) DeleteDrive(ctx context.Context, actor *auth.Principal, id int64) error {
	drive, err := s.drives.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !actor.CanMutate(drive.CreatedByID) {
		return apperrors.NewForbiddenError("You are not allowed to delete this drive")
	}

	if err := s.drives.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("driveID", id).Int64("actorID", actor.ID).Msg("Drive deleted")
	return nil
}
