package dto

import (
	"github.com/arjun/placementhub/internal/app/models"
	"github.com/arjun/placementhub/internal/pkg/listing"
)

// CreateMaterialRequest carries a new placement material post. It binds from
// multipart form data because uploads ride along on the same request; tags
// may arrive as repeated fields or as a single comma-joined string.
type CreateMaterialRequest struct {
	Title        string   `form:"title" json:"title" binding:"required,max=200"`
	Description  string   `form:"description" json:"description" binding:"required,max=2000"`
	Category     string   `form:"category" json:"category" binding:"required"`
	MaterialType string   `form:"materialType" json:"materialType" binding:"required"`
	ResourceURL  string   `form:"resourceUrl" json:"resourceUrl"`
	Company      string   `form:"company" json:"company"`
	Tags         []string `form:"tags" json:"tags"`
}

// UpdateMaterialRequest carries a partial material update; nil fields are
// left untouched.
type UpdateMaterialRequest struct {
	Title        *string   `json:"title" binding:"omitempty,max=200"`
	Description  *string   `json:"description" binding:"omitempty,max=2000"`
	Category     *string   `json:"category"`
	MaterialType *string   `json:"materialType"`
	ResourceURL  *string   `json:"resourceUrl"`
	Company      *string   `json:"company"`
	Tags         *[]string `json:"tags"`
}

// MaterialListResponse is a page of placement materials plus pagination
// metadata
type MaterialListResponse struct {
	Items []models.PlacementMaterial `json:"items"`
	listing.PageInfo
}

// DownloadResponse reports the counter after an increment
type DownloadResponse struct {
	Downloads int64 `json:"downloads" example:"42"`
}
