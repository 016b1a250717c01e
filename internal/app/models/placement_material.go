package models

import (
	"time"
)

// Categories accepted for placement materials.
var MaterialCategories = []string{
	"Aptitude",
	"DSA & Coding",
	"Core CS (OS/DBMS/CN)",
	"System Design",
	"HR Preparation",
	"Resume Tips",
	"Company Specific",
	"Mock Tests",
	"Other",
}

// Material types accepted for placement materials.
var MaterialTypes = []string{"Link", "PDF", "Notes", "Video"}

// IsValidMaterialCategory reports whether v is a recognized category.
func IsValidMaterialCategory(v string) bool {
	return contains(MaterialCategories, v)
}

// IsValidMaterialType reports whether v is a recognized material type.
func IsValidMaterialType(v string) bool {
	return contains(MaterialTypes, v)
}

// PlacementMaterial defines a peer-shared resource based on the
// 'placement_materials' table
type PlacementMaterial struct {
	ID           int64        `json:"id" db:"id" example:"1"`
	Title        string       `json:"title" db:"title"`
	Description  string       `json:"description" db:"description"`
	Category     string       `json:"category" db:"category" example:"DSA & Coding"`
	MaterialType string       `json:"materialType" db:"material_type" example:"Link"`
	ResourceURL  string       `json:"resourceUrl" db:"resource_url"`
	FileName     string       `json:"fileName" db:"file_name"`
	FileSize     int64        `json:"fileSize" db:"file_size"` // In bytes
	Company      string       `json:"company" db:"company"`    // Optional: company specific material
	Tags         []string     `json:"tags" db:"tags"`
	PostedByID   int64        `json:"-" db:"posted_by"`
	PostedBy     *UserSummary `json:"postedBy,omitempty"`
	Upvotes      []int64      `json:"upvotes"` // User ids, one entry per user
	Downloads    int64        `json:"downloads" db:"downloads"`
	IsVerified   bool         `json:"isVerified" db:"is_verified"` // Admin-settable trust flag
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`
}
