package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjun/placementhub/internal/app/auth"
	"github.com/arjun/placementhub/internal/app/models"
	"github.com/arjun/placementhub/internal/app/models/dto"
	"github.com/arjun/placementhub/internal/pkg/apperrors"
	"github.com/arjun/placementhub/internal/pkg/listing"
)

type fakeDriveStore struct {
	drives map[int64]*models.Drive
	nextID int64
}

func newFakeDriveStore() *fakeDriveStore {
	return &fakeDriveStore{drives: make(map[int64]*models.Drive), nextID: 1}
}

func (f *fakeDriveStore) List(ctx context.Context, q listing.Query) ([]models.Drive, int64, error) {
	out := make([]models.Drive, 0, len(f.drives))
	for _, d := range f.drives {
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (f *fakeDriveStore) GetByID(ctx context.Context, id int64) (*models.Drive, error) {
	d, ok := f.drives[id]
	if !ok {
		return nil, apperrors.ErrDriveNotFound
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDriveStore) Create(ctx context.Context, drive *models.Drive) (int64, error) {
	id := f.nextID
	f.nextID++
	copied := *drive
	copied.ID = id
	f.drives[id] = &copied
	return id, nil
}

func (f *fakeDriveStore) Update(ctx context.Context, drive *models.Drive) error {
	if _, ok := f.drives[drive.ID]; !ok {
		return apperrors.ErrDriveNotFound
	}
	copied := *drive
	f.drives[drive.ID] = &copied
	return nil
}

func (f *fakeDriveStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.drives[id]; !ok {
		return apperrors.ErrDriveNotFound
	}
	delete(f.drives, id)
	return nil
}

func day(n int) time.Time {
	return time.Date(2026, time.January, n, 0, 0, 0, 0, time.UTC)
}

func validDriveRequest() *dto.CreateDriveRequest {
	return &dto.CreateDriveRequest{
		CompanyName:          "Acme Corp",
		CompanyDescription:   "Widgets",
		JobRole:              "Software Engineer",
		JobDescription:       "Build things",
		CTC:                  "12 LPA",
		JobType:              "Full-Time",
		DriveTitle:           "Acme 2026 Campus Drive",
		StartDate:            day(10),
		EndDate:              day(12),
		RegistrationDeadline: day(8),
		NumberOfRounds:       2,
		Rounds:               []models.Round{{Name: "OA"}, {Name: "HR"}},
		EligibleBranches:     []string{"CSE", "ECE"},
		MinCGPA:              7.0,
		PassingYear:          "2026",
		RegistrationLink:     "https://example.com/apply",
	}
}

func TestCreateDriveValidTimeline(t *testing.T) {
	store := newFakeDriveStore()
	svc := NewDriveService(store)
	actor := &auth.Principal{ID: 1, Role: "PATIENT"}

	drive, err := svc.CreateDrive(context.Background(), actor, validDriveRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), drive.CreatedByID)
	assert.Equal(t, "Acme Corp", drive.CompanyName)
}

func TestCreateDriveBoundaryDatesAllowed(t *testing.T) {
	store := newFakeDriveStore()
	svc := NewDriveService(store)
	actor := &auth.Principal{ID: 1, Role: "PATIENT"}

	req := validDriveRequest()
	req.RegistrationDeadline = day(10)
	req.StartDate = day(10)
	req.EndDate = day(10)

	_, err := svc.CreateDrive(context.Background(), actor, req)
	assert.NoError(t, err)
}

func TestCreateDriveTimelineViolations(t *testing.T) {
	store := newFakeDriveStore()
	svc := NewDriveService(store)
	actor := &auth.Principal{ID: 1, Role: "PATIENT"}

	req := validDriveRequest()
	req.RegistrationDeadline = day(11)
	_, err := svc.CreateDrive(context.Background(), actor, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "Registration deadline must be before or on the start date.", err.Error())

	req = validDriveRequest()
	req.EndDate = day(9)
	_, err = svc.CreateDrive(context.Background(), actor, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "End date must be after or on the start date.", err.Error())
}

func TestUpdateDriveValidatesMergedTimeline(t *testing.T) {
	store := newFakeDriveStore()
	svc := NewDriveService(store)
	actor := &auth.Principal{ID: 1, Role: "PATIENT"}

	drive, err := svc.CreateDrive(context.Background(), actor, validDriveRequest())
	require.NoError(t, err)

	// Moving only the start date before the stored deadline must fail even
	// though the request by itself looks harmless.
	badStart := day(7)
	_, err = svc.UpdateDrive(context.Background(), actor, drive.ID, &dto.UpdateDriveRequest{StartDate: &badStart})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// Stored drive must be untouched after the failed update
	stored, err := store.GetByID(context.Background(), drive.ID)
	require.NoError(t, err)
	assert.Equal(t, day(10), stored.StartDate)
}

func TestUpdateDriveMergesPartialFields(t *testing.T) {
	store := newFakeDriveStore()
	svc := NewDriveService(store)
	actor := &auth.Principal{ID: 1, Role: "PATIENT"}

	drive, err := svc.CreateDrive(context.Background(), actor, validDriveRequest())
	require.NoError(t, err)

	newCTC := "14 LPA"
	updated, err := svc.UpdateDrive(context.Background(), actor, drive.ID, &dto.UpdateDriveRequest{CTC: &newCTC})
	require.NoError(t, err)

	assert.Equal(t, "14 LPA", updated.CTC)
	assert.Equal(t, "Acme Corp", updated.CompanyName)
	assert.Equal(t, day(10), updated.StartDate)
}

func TestUpdateDriveOwnership(t *testing.T) {
	store := newFakeDriveStore()
	svc := NewDriveService(store)
	owner := &auth.Principal{ID: 1, Role: "PATIENT"}
	stranger := &auth.Principal{ID: 2, Role: "PATIENT"}
	admin := &auth.Principal{ID: 3, Role: "admin"}

	drive, err := svc.CreateDrive(context.Background(), owner, validDriveRequest())
	require.NoError(t, err)

	title := "Renamed"
	_, err = svc.UpdateDrive(context.Background(), stranger, drive.ID, &dto.UpdateDriveRequest{DriveTitle: &title})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.UpdateDrive(context.Background(), admin, drive.ID, &dto.UpdateDriveRequest{DriveTitle: &title})
	assert.NoError(t, err)
}

func TestDeleteDriveOwnership(t *testing.T) {
	store := newFakeDriveStore()
	svc := NewDriveService(store)
	owner := &auth.Principal{ID: 1, Role: "PATIENT"}
	stranger := &auth.Principal{ID: 2, Role: "PATIENT"}

	drive, err := svc.CreateDrive(context.Background(), owner, validDriveRequest())
	require.NoError(t, err)

	err = svc.DeleteDrive(context.Background(), stranger, drive.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = svc.DeleteDrive(context.Background(), owner, drive.ID)
	require.NoError(t, err)

	err = svc.DeleteDrive(context.Background(), owner, drive.ID)
	assert.ErrorIs(t, err, apperrors.ErrDriveNotFound)
}

func TestUpdateDriveCGPABounds(t *testing.T) {
	store := newFakeDriveStore()
	svc := NewDriveService(store)
	actor := &auth.Principal{ID: 1, Role: "PATIENT"}

	drive, err := svc.CreateDrive(context.Background(), actor, validDriveRequest())
	require.NoError(t, err)

	tooHigh := 11.0
	_, err = svc.UpdateDrive(context.Background(), actor, drive.ID, &dto.UpdateDriveRequest{MinCGPA: &tooHigh})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
