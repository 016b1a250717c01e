package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjun/placementhub/internal/app/models/dto"
	"github.com/arjun/placementhub/internal/app/repositories"
	"github.com/arjun/placementhub/internal/app/services"
	"github.com/arjun/placementhub/internal/middleware"
	"github.com/arjun/placementhub/internal/pkg/apperrors"
	"github.com/arjun/placementhub/internal/pkg/listing"
)

// DriveController handles recruitment drive operations
type DriveController struct {
	driveService services.DriveService
}

// NewDriveController creates a new DriveController
func NewDriveController(driveService services.DriveService) *DriveController {
	return &DriveController{
		driveService: driveService,
	}
}

// ListDrives handles retrieving drives with search, filtering and pagination
// @Summary List recruitment drives
// @Description Retrieves a page of drives. Search spans company name and job role.
// @Tags drives
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Page size (default: 10, max: 100)"
// @Param search query string false "Search term"
// @Param company query string false "Filter by company name (substring)"
// @Param jobType query string false "Filter by job type (exact)"
// @Param passingYear query string false "Filter by passing year (exact)"
// @Param sortBy query string false "Sort field (startDate, endDate, registrationDeadline, companyName, createdAt)"
// @Param sortOrder query string false "Sort order (ASC, DESC)"
// @Success 200 {object} dto.DriveListResponse "Drives retrieved successfully"
// @Security BearerAuth
// @Router /drives [get]
func (c *DriveController) ListDrives(ctx *gin.Context) {
	q := listing.ParseQuery(ctx, repositories.DriveListSpec)

	resp, err := c.driveService.ListDrives(ctx.Request.Context(), q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetDrive handles retrieving a single drive
// @Summary Get a drive
// @Tags drives
// @Produce json
// @Param id path int true "Drive ID"
// @Success 200 {object} models.Drive "Drive retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Security BearerAuth
// @Router /drives/{id} [get]
func (c *DriveController) GetDrive(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	drive, err := c.driveService.GetDrive(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, drive)
}

// CreateDrive handles posting a new drive
// @Summary Create a drive
// @Description Creates a drive owned by the caller. The timeline must satisfy registrationDeadline <= startDate <= endDate.
// @Tags drives
// @Accept json
// @Produce json
// @Param request body dto.CreateDriveRequest true "Drive definition"
// @Success 201 {object} models.Drive "Drive created successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /drives [post]
func (c *DriveController) CreateDrive(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateDriveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid drive details: "+err.Error()))
		return
	}

	drive, err := c.driveService.CreateDrive(ctx.Request.Context(), principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, drive)
}

// UpdateDrive handles a partial drive update
// @Summary Update a drive
// @Description Merges the provided fields onto the stored drive. Owner or admin only.
// @Tags drives
// @Accept json
// @Produce json
// @Param id path int true "Drive ID"
// @Param request body dto.UpdateDriveRequest true "Fields to update"
// @Success 200 {object} models.Drive "Drive updated successfully"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Security BearerAuth
// @Router /drives/{id} [put]
func (c *DriveController) UpdateDrive(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateDriveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid drive details: "+err.Error()))
		return
	}

	drive, err := c.driveService.UpdateDrive(ctx.Request.Context(), principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, drive)
}

// DeleteDrive handles removing a drive
// @Summary Delete a drive
// @Tags drives
// @Produce json
// @Param id path int true "Drive ID"
// @Success 200 {object} dto.MessageResponse "Drive deleted successfully"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Security BearerAuth
// @Router /drives/{id} [delete]
func (c *DriveController) DeleteDrive(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.driveService.DeleteDrive(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Drive deleted successfully"))
}
