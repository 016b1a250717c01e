package repositories

import (
	"context"
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

// MaterialListSpec drives list parsing for GET /placement-materials.
var MaterialListSpec = listing.Spec{
	SearchColumns:      []string{"m.title", "m.description", "m.company"},
	SearchArrayColumns: []string{"m.tags"},
	ExactFilters: map[string]string{
		"category":     "m.category",
		"materialType": "m.material_type",
	},
	SubstringFilters: map[string]string{
		"company": "m.company",
	},
	SortColumns: map[string]string{
		"createdAt": "m.created_at",
		"downloads": "m.downloads",
		"title":     "m.title",
	},
	DefaultSortColumn: "m.created_at",
	DefaultSortOrder:  "DESC",
	DefaultLimit:      12,
}

const materialColumns = `m.id, m.title, m.description, m.category, m.material_type,
	m.resource_url, m.file_name, m.file_size, m.company, m.tags, m.posted_by,
	m.downloads, m.is_verified, m.created_at, m.updated_at,
	u.id, u.name, u.profile_url,
	ARRAY(SELECT uv.user_id FROM material_upvotes uv WHERE uv.material_id = m.id ORDER BY uv.user_id)`

// PlacementMaterialRepository handles placement material database operations
type PlacementMaterialRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPlacementMaterialRepository creates a new PlacementMaterialRepository
func NewPlacementMaterialRepository(db *pgxpool.Pool) *PlacementMaterialRepository {
	return &PlacementMaterialRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanMaterial(row pgx.Row) (*models.PlacementMaterial, error) {
	var m models.PlacementMaterial
	var owner models.UserSummary
	var profileURL *string

	err := row.Scan(
		&m.ID, &m.Title, &m.Description, &m.Category, &m.MaterialType,
		&m.ResourceURL, &m.FileName, &m.FileSize, &m.Company, &m.Tags, &m.PostedByID,
		&m.Downloads, &m.IsVerified, &m.CreatedAt, &m.UpdatedAt,
		&owner.ID, &owner.Name, &profileURL,
		&m.Upvotes,
	)
	if err != nil {
		return nil, err
	}

	if m.Tags == nil {
		m.Tags = []string{}
	}
	if m.Upvotes == nil {
		m.Upvotes = []int64{}
	}
	if profileURL != nil {
		owner.Profile = *profileURL
	}
	m.PostedBy = &owner
	return &m, nil
}

// List returns one page of materials with their upvote lists, plus the total
// row count for the same predicate.
func (r *PlacementMaterialRepository) List(ctx context.Context, q listing.Query) ([]models.PlacementMaterial, int64, error) {
	where := listing.Where(MaterialListSpec, q)

	countBuilder := r.sb.Select("COUNT(*)").From("placement_materials m")
	if where != nil {
		countBuilder = countBuilder.Where(where)
	}
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build materials count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting placement materials")
		return nil, 0, fmt.Errorf("error counting placement materials: %w", err)
	}

	pageBuilder := r.sb.Select(materialColumns).
		From("placement_materials m").
		Join("users u ON u.id = m.posted_by")
	if where != nil {
		pageBuilder = pageBuilder.Where(where)
	}
	pageSQL, pageArgs, err := listing.OrderAndPage(pageBuilder, q).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build materials page query: %w", err)
	}

	rows, err := r.db.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying placement materials")
		return nil, 0, fmt.Errorf("error querying placement materials: %w", err)
	}
	defer rows.Close()

	materials := make([]models.PlacementMaterial, 0, q.Limit)
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning material row: %w", err)
		}
		materials = append(materials, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating material rows: %w", err)
	}

	return materials, total, nil
}

// GetByID retrieves a single material with its upvote list
func (r *PlacementMaterialRepository) GetByID(ctx context.Context, id int64) (*models.PlacementMaterial, error) {
	sql, args, err := r.sb.Select(materialColumns).
		From("placement_materials m").
		Join("users u ON u.id = m.posted_by").
		Where(squirrel.Eq{"m.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get material query: %w", err)
	}

	material, err := scanMaterial(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMaterialNotFound
		}
		logger.Error().Err(err).Int64("materialID", id).Msg("Error querying placement material")
		return nil, fmt.Errorf("error querying placement material ID=%d: %w", id, err)
	}
	return material, nil
}

// Create inserts a new material and returns its id
func (r *PlacementMaterialRepository) Create(ctx context.Context, material *models.PlacementMaterial) (int64, error) {
	sql, args, err := r.sb.Insert("placement_materials").
		Columns("title", "description", "category", "material_type", "resource_url",
			"file_name", "file_size", "company", "tags", "posted_by").
		Values(material.Title, material.Description, material.Category, material.MaterialType,
			material.ResourceURL, material.FileName, material.FileSize, material.Company,
			material.Tags, material.PostedByID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create material query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("title", material.Title).Msg("Error inserting placement material")
		return 0, fmt.Errorf("error inserting placement material: %w", err)
	}

	logger.Info().Int64("materialID", id).Msg("Placement material created successfully")
	return id, nil
}

// Update persists the full merged material state
func (r *PlacementMaterialRepository) Update(ctx context.Context, material *models.PlacementMaterial) error {
	sql, args, err := r.sb.Update("placement_materials").
		SetMap(map[string]interface{}{
			"title":         material.Title,
			"description":   material.Description,
			"category":      material.Category,
			"material_type": material.MaterialType,
			"resource_url":  material.ResourceURL,
			"company":       material.Company,
			"tags":          material.Tags,
			"updated_at":    time.Now(),
		}).
		Where(squirrel.Eq{"id": material.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update material query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("materialID", material.ID).Msg("Error updating placement material")
		return fmt.Errorf("error updating placement material ID=%d: %w", material.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMaterialNotFound
	}
	return nil
}

// Delete removes a material; upvotes go with it via ON DELETE CASCADE.
func (r *PlacementMaterialRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, "DELETE FROM placement_materials WHERE id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("materialID", id).Msg("Error deleting placement material")
		return fmt.Errorf("error deleting placement material ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMaterialNotFound
	}

	logger.Info().Int64("materialID", id).Msg("Placement material deleted successfully")
	return nil
}

// ToggleUpvote flips the caller's upvote on a material. Same race-safe
// insert-or-delete pattern as question upvotes.
func (r *PlacementMaterialRepository) ToggleUpvote(ctx context.Context, materialID, userID int64) (int, bool, error) {
	cmdTag, err := r.db.Exec(ctx, `
		INSERT INTO material_upvotes (material_id, user_id) VALUES ($1, $2)
		ON CONFLICT (material_id, user_id) DO NOTHING`, materialID, userID)
	if err != nil {
		logger.Error().Err(err).Int64("materialID", materialID).Msg("Error inserting material upvote")
		return 0, false, fmt.Errorf("error toggling material upvote: %w", err)
	}

	upvoted := cmdTag.RowsAffected() == 1
	if !upvoted {
		if _, err := r.db.Exec(ctx,
			"DELETE FROM material_upvotes WHERE material_id = $1 AND user_id = $2",
			materialID, userID); err != nil {
			logger.Error().Err(err).Int64("materialID", materialID).Msg("Error removing material upvote")
			return 0, false, fmt.Errorf("error toggling material upvote: %w", err)
		}
	}

	var count int
	if err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM material_upvotes WHERE material_id = $1", materialID).Scan(&count); err != nil {
		return 0, false, fmt.Errorf("error counting material upvotes: %w", err)
	}
	return count, upvoted, nil
}

// IncrementDownloads bumps the download counter atomically and returns the
// new value.
func (r *PlacementMaterialRepository) IncrementDownloads(ctx context.Context, id int64) (int64, error) {
	var downloads int64
	err := r.db.QueryRow(ctx,
		"UPDATE placement_materials SET downloads = downloads + 1 WHERE id = $1 RETURNING downloads", id).
		Scan(&downloads)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrMaterialNotFound
		}
		logger.Error().Err(err).Int64("materialID", id).Msg("Error incrementing downloads")
		return 0, fmt.Errorf("error incrementing downloads for material ID=%d: %w", id, err)
	}
	return downloads, nil
}
