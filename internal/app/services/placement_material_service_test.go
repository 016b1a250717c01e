package services

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjun/placementhub/internal/app/auth"
	"github.com/arjun/placementhub/internal/app/models"
	"github.com/arjun/placementhub/internal/app/models/dto"
	"github.com/arjun/placementhub/internal/pkg/apperrors"
	"github.com/arjun/placementhub/internal/pkg/listing"
)

type fakeMaterialStore struct {
	materials map[int64]*models.PlacementMaterial
	upvotes   map[int64]map[int64]bool
	nextID    int64
}

func newFakeMaterialStore() *fakeMaterialStore {
	return &fakeMaterialStore{
		materials: make(map[int64]*models.PlacementMaterial),
		upvotes:   make(map[int64]map[int64]bool),
		nextID:    1,
	}
}

func (f *fakeMaterialStore) List(ctx context.Context, q listing.Query) ([]models.PlacementMaterial, int64, error) {
	out := make([]models.PlacementMaterial, 0, len(f.materials))
	for _, m := range f.materials {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (f *fakeMaterialStore) GetByID(ctx context.Context, id int64) (*models.PlacementMaterial, error) {
	m, ok := f.materials[id]
	if !ok {
		return nil, apperrors.ErrMaterialNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMaterialStore) Create(ctx context.Context, material *models.PlacementMaterial) (int64, error) {
	id := f.nextID
	f.nextID++
	copied := *material
	copied.ID = id
	f.materials[id] = &copied
	return id, nil
}

func (f *fakeMaterialStore) Update(ctx context.Context, material *models.PlacementMaterial) error {
	if _, ok := f.materials[material.ID]; !ok {
		return apperrors.ErrMaterialNotFound
	}
	copied := *material
	f.materials[material.ID] = &copied
	return nil
}

func (f *fakeMaterialStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.materials[id]; !ok {
		return apperrors.ErrMaterialNotFound
	}
	delete(f.materials, id)
	return nil
}

func (f *fakeMaterialStore) ToggleUpvote(ctx context.Context, materialID, userID int64) (int, bool, error) {
	votes, ok := f.upvotes[materialID]
	if !ok {
		votes = make(map[int64]bool)
		f.upvotes[materialID] = votes
	}
	var upvoted bool
	if votes[userID] {
		delete(votes, userID)
	} else {
		votes[userID] = true
		upvoted = true
	}
	return len(votes), upvoted, nil
}

func (f *fakeMaterialStore) IncrementDownloads(ctx context.Context, id int64) (int64, error) {
	m, ok := f.materials[id]
	if !ok {
		return 0, apperrors.ErrMaterialNotFound
	}
	m.Downloads++
	return m.Downloads, nil
}

func validMaterialRequest() *dto.CreateMaterialRequest {
	return &dto.CreateMaterialRequest{
		Title:        "DP patterns cheat sheet",
		Description:  "Common dynamic programming patterns with examples",
		Category:     "DSA & Coding",
		MaterialType: "Link",
		ResourceURL:  "https://example.com/dp-patterns",
		Tags:         []string{"dp", "patterns"},
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"repeated fields", []string{"dp", "graphs"}, []string{"dp", "graphs"}},
		{"comma-joined single field", []string{"dp, graphs ,trees"}, []string{"dp", "graphs", "trees"}},
		{"whitespace and empties dropped", []string{" dp ", "", "  "}, []string{"dp"}},
		{"nil input", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTags(tt.in))
		})
	}
}

func TestCreateMaterialLink(t *testing.T) {
	store := newFakeMaterialStore()
	svc := NewPlacementMaterialService(store, nil)
	actor := &auth.Principal{ID: 1, Role: "PATIENT"}

	m, err := svc.CreateMaterial(context.Background(), actor, validMaterialRequest(), nil)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/dp-patterns", m.ResourceURL)
	assert.Equal(t, int64(1), m.PostedByID)
}

func TestCreateMaterialRequiresURLOrFile(t *testing.T) {
	svc := NewPlacementMaterialService(newFakeMaterialStore(), nil)
	actor := &auth.Principal{ID: 1, Role: "PATIENT"}

	req := validMaterialRequest()
	req.ResourceURL = "   "
	_, err := svc.CreateMaterial(context.Background(), actor, req, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateMaterialLinkRequiresURLEvenWithFile(t *testing.T) {
	svc := NewPlacementMaterialService(newFakeMaterialStore(), nil)
	actor := &auth.Principal{ID: 1, Role: "PATIENT"}

	// An attached file does not stand in for the URL on Link materials
	req := validMaterialRequest()
	req.ResourceURL = ""
	file := &multipart.FileHeader{Filename: "notes.pdf"}
	_, err := svc.CreateMaterial(context.Background(), actor, req, file)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateMaterialRejectsUnknownEnums(t *testing.T) {
	svc := NewPlacementMaterialService(newFakeMaterialStore(), nil)
	actor := &auth.Principal{ID: 1, Role: "PATIENT"}

	req := validMaterialRequest()
	req.Category = "Cooking"
	_, err := svc.CreateMaterial(context.Background(), actor, req, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	req = validMaterialRequest()
	req.MaterialType = "Podcast"
	_, err = svc.CreateMaterial(context.Background(), actor, req, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateMaterialIsOwnerOnly(t *testing.T) {
	store := newFakeMaterialStore()
	svc := NewPlacementMaterialService(store, nil)
	owner := &auth.Principal{ID: 1, Role: "PATIENT"}
	admin := &auth.Principal{ID: 2, Role: "ADMIN"}

	m, err := svc.CreateMaterial(context.Background(), owner, validMaterialRequest(), nil)
	require.NoError(t, err)

	title := "Renamed"
	_, err = svc.UpdateMaterial(context.Background(), admin, m.ID, &dto.UpdateMaterialRequest{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := svc.UpdateMaterial(context.Background(), owner, m.ID, &dto.UpdateMaterialRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "DSA & Coding", updated.Category)
}

func TestDeleteMaterialAllowsAdmin(t *testing.T) {
	store := newFakeMaterialStore()
	svc := NewPlacementMaterialService(store, nil)
	owner := &auth.Principal{ID: 1, Role: "PATIENT"}
	stranger := &auth.Principal{ID: 2, Role: "PATIENT"}
	admin := &auth.Principal{ID: 3, Role: "admin"}

	m, err := svc.CreateMaterial(context.Background(), owner, validMaterialRequest(), nil)
	require.NoError(t, err)

	err = svc.DeleteMaterial(context.Background(), stranger, m.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = svc.DeleteMaterial(context.Background(), admin, m.ID)
	assert.NoError(t, err)
}

func TestRecordDownloadIncrements(t *testing.T) {
	store := newFakeMaterialStore()
	svc := NewPlacementMaterialService(store, nil)
	actor := &auth.Principal{ID: 1, Role: "PATIENT"}

	m, err := svc.CreateMaterial(context.Background(), actor, validMaterialRequest(), nil)
	require.NoError(t, err)

	resp, err := svc.RecordDownload(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Downloads)

	resp, err = svc.RecordDownload(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Downloads)

	_, err = svc.RecordDownload(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrMaterialNotFound)
}

func TestMaterialUpvoteToggle(t *testing.T) {
	store := newFakeMaterialStore()
	svc := NewPlacementMaterialService(store, nil)
	actor := &auth.Principal{ID: 1, Role: "PATIENT"}

	m, err := svc.CreateMaterial(context.Background(), actor, validMaterialRequest(), nil)
	require.NoError(t, err)

	resp, err := svc.ToggleUpvote(context.Background(), actor, m.ID)
	require.NoError(t, err)
	assert.True(t, resp.Upvoted)
	assert.Equal(t, 1, resp.Upvotes)

	resp, err = svc.ToggleUpvote(context.Background(), actor, m.ID)
	require.NoError(t, err)
	assert.False(t, resp.Upvoted)
	assert.Equal(t, 0, resp.Upvotes)
}
