package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/arjun/placementhub/internal/app/auth"
	"github.com/arjun/placementhub/internal/app/models"
	"github.com/arjun/placementhub/internal/app/models/dto"
	"github.com/arjun/placementhub/internal/pkg/apperrors"
	"github.com/arjun/placementhub/internal/pkg/filestorage"
	"github.com/arjun/placementhub/internal/pkg/listing"
	"github.com/arjun/placementhub/internal/pkg/logger"
)

// MaterialStore is the persistence surface the placement material service needs.
type MaterialStore interface {
	List(ctx context.Context, q listing.Query) ([]models.PlacementMaterial, int64, error)
	GetByID(ctx context.Context, id int64) (*models.PlacementMaterial, error)
	Create(ctx context.Context, material *models.PlacementMaterial) (int64, error)
	Update(ctx context.Context, material *models.PlacementMaterial) error
	Delete(ctx context.Context, id int64) error
	ToggleUpvote(ctx context.Context, materialID, userID int64) (int, bool, error)
	IncrementDownloads(ctx context.Context, id int64) (int64, error)
}

// PlacementMaterialService defines placement material operations
type PlacementMaterialService interface {
	ListMaterials(ctx context.Context, q listing.Query) (*dto.MaterialListResponse, error)
	GetMaterial(ctx context.Context, id int64) (*models.PlacementMaterial, error)
	CreateMaterial(ctx context.Context, actor *auth.Principal, req *dto.CreateMaterialRequest, file *multipart.FileHeader) (*models.PlacementMaterial, error)
	UpdateMaterial(ctx context.Context, actor *auth.Principal, id int64, req *dto.UpdateMaterialRequest) (*models.PlacementMaterial, error)
	DeleteMaterial(ctx context.Context, actor *auth.Principal, id int64) error
	ToggleUpvote(ctx context.Context, actor *auth.Principal, id int64) (*dto.UpvoteResponse, error)
	RecordDownload(ctx context.Context, id int64) (*dto.DownloadResponse, error)
}

type placementMaterialService struct {
	materials MaterialStore
	storage   filestorage.FileStorage
}

// NewPlacementMaterialService creates a new PlacementMaterialService
func NewPlacementMaterialService(materials MaterialStore, storage filestorage.FileStorage) PlacementMaterialService {
	return &placementMaterialService{
		materials: materials,
		storage:   storage,
	}
}

// SplitTags accepts tags either as repeated form fields or as a single
// comma-joined string and returns the normalized list.
func SplitTags(tags []string) []string {
	if len(tags) == 1 && strings.Contains(tags[0], ",") {
		tags = strings.Split(tags[0], ",")
	}
	return NormalizeTags(tags)
}

func (s *placementMaterialService) ListMaterials(ctx context.Context, q listing.Query) (*dto.MaterialListResponse, error) {
	materials, total, err := s.materials.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &dto.MaterialListResponse{
		Items:    materials,
		PageInfo: listing.NewPageInfo(total, q),
	}, nil
}

func (s *placementMaterialService) GetMaterial(ctx context.Context, id int64) (*models.PlacementMaterial, error) {
	return s.materials.GetByID(ctx, id)
}

// CreateMaterial validates the post and stores an uploaded file when one
// rides along. Link materials need a resource URL; file materials need the
// file itself.
func (s *placementMaterialService) CreateMaterial(ctx context.Context, actor *auth.Principal, req *dto.CreateMaterialRequest, file *multipart.FileHeader) (*models.PlacementMaterial, error) {
	if !models.IsValidMaterialCategory(req.Category) {
		return nil, apperrors.NewValidationError("Invalid category")
	}
	if !models.IsValidMaterialType(req.MaterialType) {
		return nil, apperrors.NewValidationError("Invalid material type")
	}
	// Link materials must carry their URL up front; an attached file does
	// not substitute for it.
	if req.MaterialType == "Link" && strings.TrimSpace(req.ResourceURL) == "" {
		return nil, apperrors.NewValidationError("Resource URL is required for Link type")
	}

	material := &models.PlacementMaterial{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		MaterialType: req.MaterialType,
		ResourceURL:  strings.TrimSpace(req.ResourceURL),
		Company:      req.Company,
		Tags:         SplitTags(req.Tags),
		PostedByID:   actor.ID,
	}

	switch {
	case file != nil:
		stored, err := s.storage.Store(file, "materials")
		if err != nil {
			return nil, err
		}
		material.ResourceURL = stored.URL
		material.FileName = stored.OriginalName
		material.FileSize = stored.Size
	case material.ResourceURL == "":
		return nil, apperrors.NewValidationError("Either a resource URL or a file is required")
	}

	id, err := s.materials.Create(ctx, material)
	if err != nil {
		return nil, err
	}

	return s.materials.GetByID(ctx, id)
}

// UpdateMaterial merges the partial update and persists. Owner-only, like
// question updates; file contents are immutable once posted.
func (s *placementMaterialService) UpdateMaterial(ctx context.Context, actor *auth.Principal, id int64, req *dto.UpdateMaterialRequest) (*models.PlacementMaterial, error) {
	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsOwner(material.PostedByID) {
		return nil, apperrors.NewForbiddenError("Only the author can update this material")
	}

	if req.Title != nil {
		material.Title = *req.Title
	}
	if req.Description != nil {
		material.Description = *req.Description
	}
	if req.Category != nil {
		if !models.IsValidMaterialCategory(*req.Category) {
			return nil, apperrors.NewValidationError("Invalid category")
		}
		material.Category = *req.Category
	}
	if req.MaterialType != nil {
		if !models.IsValidMaterialType(*req.MaterialType) {
			return nil, apperrors.NewValidationError("Invalid material type")
		}
		material.MaterialType = *req.MaterialType
	}
	if req.ResourceURL != nil {
		material.ResourceURL = strings.TrimSpace(*req.ResourceURL)
	}
	if req.Company != nil {
		material.Company = *req.Company
	}
	if req.Tags != nil {
		material.Tags = SplitTags(*req.Tags)
	}

	if err := s.materials.Update(ctx, material); err != nil {
		return nil, err
	}

	return s.materials.GetByID(ctx, id)
}

// DeleteMaterial removes a material and, for uploads, its stored file.
func (s *placementMaterialService) DeleteMaterial(ctx context.Context, actor *auth.Principal, id int64) error {
	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !actor.CanMutate(material.PostedByID) {
		return apperrors.NewForbiddenError("You are not allowed to delete this material")
	}

	if err := s.materials.Delete(ctx, id); err != nil {
		return err
	}

	if material.FileName != "" && material.ResourceURL != "" {
		if err := s.storage.Delete(material.ResourceURL); err != nil {
			logger.Warn().Err(err).Int64("materialID", id).Msg("Failed to remove stored material file")
		}
	}

	logger.Info().Int64("materialID", id).Int64("actorID", actor.ID).Msg("Placement material deleted")
	return nil
}

func (s *placementMaterialService) ToggleUpvote(ctx context.Context, actor *auth.Principal, id int64) (*dto.UpvoteResponse, error) {
	if _, err := s.materials.GetByID(ctx, id); err != nil {
		return nil, err
	}

	count, upvoted, err := s.materials.ToggleUpvote(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}

	return &dto.UpvoteResponse{Upvotes: count, Upvoted: upvoted}, nil
}

// RecordDownload bumps the download counter and returns the new value. No
// authorization: any authenticated user may download.
func (s *placementMaterialService) RecordDownload(ctx context.Context, id int64) (*dto.DownloadResponse, error) {
	downloads, err := s.materials.IncrementDownloads(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.DownloadResponse{Downloads: downloads}, nil
}
