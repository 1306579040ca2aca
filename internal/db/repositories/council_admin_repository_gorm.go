package repositories

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	"iwannabeavolunteer/portal/internal/constants"
	"iwannabeavolunteer/portal/internal/models/entities"
	gormModels "iwannabeavolunteer/portal/internal/models/gorm"
	"iwannabeavolunteer/portal/internal/providers/supabase"
)

// CouncilAdminGORMRepository talks to the provider's Postgres directly. Errors are reported
// as *supabase.ProviderError so callers treat both backends alike.
type CouncilAdminGORMRepository struct {
	db *gorm.DB
}

var _ CouncilAdminRepository = (*CouncilAdminGORMRepository)(nil)

// NewCouncilAdminGORMRepository creates a new GORM-based council admin repository
func NewCouncilAdminGORMRepository(db *gorm.DB) *CouncilAdminGORMRepository {
	return &CouncilAdminGORMRepository{db: db}
}

func (r *CouncilAdminGORMRepository) FindByUserID(ctx context.Context, userID string) (*entities.CouncilAdmin, error) {
	var rows []gormModels.CouncilAdmin

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Limit(2).
		Find(&rows).Error
	if err != nil {
		return nil, dbError(err)
	}

	switch len(rows) {
	case 1:
		row := rows[0].ToEntity()
		return &row, nil
	case 0:
		return nil, &supabase.ProviderError{
			Status:  http.StatusNotAcceptable,
			Code:    constants.ErrCodeNoRows,
			Message: constants.GetErrorMessage(constants.ErrCodeNoRows),
		}
	default:
		return nil, &supabase.ProviderError{
			Status:  http.StatusNotAcceptable,
			Code:    constants.ErrCodeMultipleRows,
			Message: constants.GetErrorMessage(constants.ErrCodeMultipleRows),
		}
	}
}

func (r *CouncilAdminGORMRepository) ListOrderedByCreatedAtDesc(ctx context.Context) ([]entities.CouncilAdmin, error) {
	var rows []gormModels.CouncilAdmin

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, dbError(err)
	}

	out := make([]entities.CouncilAdmin, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToEntity())
	}
	return out, nil
}

func (r *CouncilAdminGORMRepository) Insert(ctx context.Context, row entities.NewCouncilAdmin) error {
	model := gormModels.CouncilAdmin{
		UserID:    row.UserID,
		CouncilID: row.CouncilID,
		Role:      row.Role,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return dbError(err)
	}
	return nil
}

func (r *CouncilAdminGORMRepository) DeleteByID(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&gormModels.CouncilAdmin{})
	if result.Error != nil {
		return dbError(result.Error)
	}
	if result.RowsAffected == 0 {
		return councilAdminNotFound(id)
	}
	return nil
}

func dbError(err error) *supabase.ProviderError {
	return &supabase.ProviderError{
		Code:    constants.ErrCodeProviderFailed,
		Message: err.Error(),
		Err:     err,
	}
}
