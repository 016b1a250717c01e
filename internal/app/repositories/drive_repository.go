package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjun/placementhub/internal/app/models"
	"github.com/arjun/placementhub/internal/pkg/apperrors"
	"github.com/arjun/placementhub/internal/pkg/listing"
	"github.com/arjun/placementhub/internal/pkg/logger"
)

// DriveListSpec drives list parsing for GET /drives. Company is matched by
// substring on purpose: clients filter with partial names.
var DriveListSpec = listing.Spec{
	SearchColumns: []string{"d.company_name", "d.job_role"},
	ExactFilters: map[string]string{
		"jobType":     "d.job_type",
		"passingYear": "d.passing_year",
	},
	SubstringFilters: map[string]string{
		"company": "d.company_name",
	},
	SortColumns: map[string]string{
		"startDate":            "d.start_date",
		"endDate":              "d.end_date",
		"registrationDeadline": "d.registration_deadline",
		"companyName":          "d.company_name",
		"createdAt":            "d.created_at",
	},
	DefaultSortColumn: "d.start_date",
	DefaultSortOrder:  "ASC",
	DefaultLimit:      10,
}

const driveColumns = `d.id, d.company_name, d.company_description, d.job_role, d.job_description,
	d.ctc, d.job_type, d.drive_title, d.start_date, d.end_date, d.registration_deadline,
	d.number_of_rounds, d.rounds, d.eligible_branches, d.min_cgpa, d.passing_year,
	d.backlogs_allowed, d.registration_link, d.created_by, d.created_at, d.updated_at,
	u.id, u.name, u.email`

// DriveRepository handles drive database operations
type DriveRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDriveRepository creates a new DriveRepository
func NewDriveRepository(db *pgxpool.Pool) *DriveRepository {
	return &DriveRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanDrive(row pgx.Row) (*models.Drive, error) {
	var d models.Drive
	var roundsJSON []byte
	var owner models.UserSummary

	err := row.Scan(
		&d.ID, &d.CompanyName, &d.CompanyDescription, &d.JobRole, &d.JobDescription,
		&d.CTC, &d.JobType, &d.DriveTitle, &d.StartDate, &d.EndDate, &d.RegistrationDeadline,
		&d.NumberOfRounds, &roundsJSON, &d.EligibleBranches, &d.MinCGPA, &d.PassingYear,
		&d.BacklogsAllowed, &d.RegistrationLink, &d.CreatedByID, &d.CreatedAt, &d.UpdatedAt,
		&owner.ID, &owner.Name, &owner.Email,
	)
	if err != nil {
		return nil, err
	}

	if len(roundsJSON) > 0 {
		if err := json.Unmarshal(roundsJSON, &d.Rounds); err != nil {
			return nil, fmt.Errorf("error decoding drive rounds: %w", err)
		}
	}
	if d.Rounds == nil {
		d.Rounds = []models.Round{}
	}
	if d.EligibleBranches == nil {
		d.EligibleBranches = []string{}
	}
	d.CreatedBy = &owner
	return &d, nil
}

// List returns one page of drives with their owner projection, plus the
// total row count for the same predicate.
func (r *DriveRepository) List(ctx context.Context, q listing.Query) ([]models.Drive, int64, error) {
	where := listing.Where(DriveListSpec, q)

	countBuilder := r.sb.Select("COUNT(*)").From("drives d")
	if where != nil {
		countBuilder = countBuilder.Where(where)
	}
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build drives count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting drives")
		return nil, 0, fmt.Errorf("error counting drives: %w", err)
	}

	pageBuilder := r.sb.Select(driveColumns).
		From("drives d").
		Join("users u ON u.id = d.created_by")
	if where != nil {
		pageBuilder = pageBuilder.Where(where)
	}
	pageSQL, pageArgs, err := listing.OrderAndPage(pageBuilder, q).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build drives page query: %w", err)
	}

	rows, err := r.db.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying drives")
		return nil, 0, fmt.Errorf("error querying drives: %w", err)
	}
	defer rows.Close()

	drives := make([]models.Drive, 0, q.Limit)
	for rows.Next() {
		d, err := scanDrive(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning drive row: %w", err)
		}
		drives = append(drives, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating drive rows: %w", err)
	}

	return drives, total, nil
}

// GetByID retrieves a single drive with its owner projection
func (r *DriveRepository) GetByID(ctx context.Context, id int64) (*models.Drive, error) {
	sql, args, err := r.sb.Select(driveColumns).
		From("drives d").
		Join("users u ON u.id = d.created_by").
		Where(squirrel.Eq{"d.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get drive query: %w", err)
	}

	drive, err := scanDrive(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDriveNotFound
		}
		logger.Error().Err(err).Int64("driveID", id).Msg("Error querying drive")
		return nil, fmt.Errorf("error querying drive ID=%d: %w", id, err)
	}
	return drive, nil
}

// Create inserts a new drive and returns its id
func (r *DriveRepository) Create(ctx context.Context, drive *models.Drive) (int64, error) {
	roundsJSON, err := json.Marshal(drive.Rounds)
	if err != nil {
		return 0, fmt.Errorf("error encoding drive rounds: %w", err)
	}

	sql, args, err := r.sb.Insert("drives").
		Columns("company_name", "company_description", "job_role", "job_description",
			"ctc", "job_type", "drive_title", "start_date", "end_date", "registration_deadline",
			"number_of_rounds", "rounds", "eligible_branches", "min_cgpa", "passing_year",
			"backlogs_allowed", "registration_link", "created_by").
		Values(drive.CompanyName, drive.CompanyDescription, drive.JobRole, drive.JobDescription,
			drive.CTC, drive.JobType, drive.DriveTitle, drive.StartDate, drive.EndDate, drive.RegistrationDeadline,
			drive.NumberOfRounds, roundsJSON, drive.EligibleBranches, drive.MinCGPA, drive.PassingYear,
			drive.BacklogsAllowed, drive.RegistrationLink, drive.CreatedByID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create drive query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("company", drive.CompanyName).Msg("Error inserting drive")
		return 0, fmt.Errorf("error inserting drive: %w", err)
	}

	logger.Info().Int64("driveID", id).Str("company", drive.CompanyName).Msg("Drive created successfully")
	return id, nil
}

// Update persists the full merged drive state
func (r *DriveRepository) Update(ctx context.Context, drive *models.Drive) error {
	roundsJSON, err := json.Marshal(drive.Rounds)
	if err != nil {
		return fmt.Errorf("error encoding drive rounds: %w", err)
	}

	sql, args, err := r.sb.Update("drives").
		SetMap(map[string]interface{}{
			"company_name":          drive.CompanyName,
			"company_description":   drive.CompanyDescription,
			"job_role":              drive.JobRole,
			"job_description":       drive.JobDescription,
			"ctc":                   drive.CTC,
			"job_type":              drive.JobType,
			"drive_title":           drive.DriveTitle,
			"start_date":            drive.StartDate,
			"end_date":              drive.EndDate,
			"registration_deadline": drive.RegistrationDeadline,
			"number_of_rounds":      drive.NumberOfRounds,
			"rounds":                roundsJSON,
			"eligible_branches":     drive.EligibleBranches,
			"min_cgpa":              drive.MinCGPA,
			"passing_year":          drive.PassingYear,
			"backlogs_allowed":      drive.BacklogsAllowed,
			"registration_link":     drive.RegistrationLink,
			"updated_at":            time.Now(),
		}).
		Where(squirrel.Eq{"id": drive.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update drive query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("driveID", drive.ID).Msg("Error updating drive")
		return fmt.Errorf("error updating drive ID=%d: %w", drive.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDriveNotFound
	}
	return nil
}

// Delete removes a drive by id
func (r *DriveRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("drives").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete drive query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("driveID", id).Msg("Error deleting drive")
		return fmt.Errorf("error deleting drive ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDriveNotFound
	}

	logger.Info().Int64("driveID", id).Msg("Drive deleted successfully")
	return nil
}
