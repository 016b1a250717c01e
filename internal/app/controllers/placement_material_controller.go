package controllers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjun/placementhub/internal/app/models/dto"
	"github.com/arjun/placementhub/internal/app/repositories"
	"github.com/arjun/placementhub/internal/app/services"
	"github.com/arjun/placementhub/internal/middleware"
	"github.com/arjun/placementhub/internal/pkg/apperrors"
	"github.com/arjun/placementhub/internal/pkg/listing"
)

// PlacementMaterialController handles placement material operations
type PlacementMaterialController struct {
	materialService services.PlacementMaterialService
}

// NewPlacementMaterialController creates a new PlacementMaterialController
func NewPlacementMaterialController(materialService services.PlacementMaterialService) *PlacementMaterialController {
	return &PlacementMaterialController{
		materialService: materialService,
	}
}

// ListMaterials handles retrieving materials with search, filtering and pagination
// @Summary List placement materials
// @Description Retrieves a page of materials. Search spans title, description, company and tags.
// @Tags placement-materials
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Page size (default: 12, max: 100)"
// @Param search query string false "Search term"
// @Param category query string false "Filter by category (exact)"
// @Param materialType query string false "Filter by material type (exact)"
// @Param company query string false "Filter by company (substring)"
// @Param sortBy query string false "Sort field (createdAt, downloads, title)"
// @Param sortOrder query string false "Sort order (ASC, DESC)"
// @Success 200 {object} dto.MaterialListResponse "Materials retrieved successfully"
// @Security BearerAuth
// @Router /placement-materials [get]
func (c *PlacementMaterialController) ListMaterials(ctx *gin.Context) {
	q := listing.ParseQuery(ctx, repositories.MaterialListSpec)

	resp, err := c.materialService.ListMaterials(ctx.Request.Context(), q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetMaterial handles retrieving a single material
// @Summary Get a placement material
// @Tags placement-materials
// @Produce json
// @Param id path int true "Material ID"
// @Success 200 {object} models.PlacementMaterial "Material retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Security BearerAuth
// @Router /placement-materials/{id} [get]
func (c *PlacementMaterialController) GetMaterial(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	material, err := c.materialService.GetMaterial(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, material)
}

// CreateMaterial handles posting a new material, with an optional file upload
// @Summary Create a placement material
// @Description Creates a material from multipart form data. Link materials carry a resource URL; file materials carry the upload itself.
// @Tags placement-materials
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param category formData string true "Category"
// @Param materialType formData string true "Material type (Link, PDF, Notes, Video)"
// @Param resourceUrl formData string false "Resource URL for link materials"
// @Param company formData string false "Company the material targets"
// @Param tags formData string false "Tags, repeated or comma-joined"
// @Param file formData file false "Material file"
// @Success 201 {object} models.PlacementMaterial "Material created successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /placement-materials [post]
func (c *PlacementMaterialController) CreateMaterial(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateMaterialRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid material details: "+err.Error()))
		return
	}

	// The file is optional; link materials have none.
	var file *multipart.FileHeader
	if f, err := ctx.FormFile("file"); err == nil {
		file = f
	}

	material, err := c.materialService.CreateMaterial(ctx.Request.Context(), principal, &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, material)
}

// UpdateMaterial handles a partial material update
// @Summary Update a placement material
// @Description Merges the provided fields onto the stored material. Author only; file contents are immutable.
// @Tags placement-materials
// @Accept json
// @Produce json
// @Param id path int true "Material ID"
// @Param request body dto.UpdateMaterialRequest true "Fields to update"
// @Success 200 {object} models.PlacementMaterial "Material updated successfully"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Security BearerAuth
// @Router /placement-materials/{id} [put]
func (c *PlacementMaterialController) UpdateMaterial(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid material details: "+err.Error()))
		return
	}

	material, err := c.materialService.UpdateMaterial(ctx.Request.Context(), principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, material)
}

// DeleteMaterial handles removing a material
// @Summary Delete a placement material
// @Tags placement-materials
// @Produce json
// @Param id path int true "Material ID"
// @Success 200 {object} dto.MessageResponse "Material deleted successfully"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Security BearerAuth
// @Router /placement-materials/{id} [delete]
func (c *PlacementMaterialController) DeleteMaterial(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.materialService.DeleteMaterial(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Material deleted successfully"))
}

// ToggleUpvote flips the caller's vote on a material
// @Summary Toggle material upvote
// @Tags placement-materials
// @Produce json
// @Param id path int true "Material ID"
// @Success 200 {object} dto.UpvoteResponse "Vote state after the toggle"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Security BearerAuth
// @Router /placement-materials/{id}/upvote [put]
func (c *PlacementMaterialController) ToggleUpvote(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.materialService.ToggleUpvote(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// RecordDownload bumps a material's download counter
// @Summary Record a download
// @Tags placement-materials
// @Produce json
// @Param id path int true "Material ID"
// @Success 200 {object} dto.DownloadResponse "Counter after the increment"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Security BearerAuth
// @Router /placement-materials/{id}/download [put]
func (c *PlacementMaterialController) RecordDownload(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.materialService.RecordDownload(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
