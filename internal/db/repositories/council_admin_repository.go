package repositories

import (
	"context"
	"fmt"
	"net/http"

	"iwannabeavolunteer/portal/internal/constants"
	"iwannabeavolunteer/portal/internal/models/entities"
	"iwannabeavolunteer/portal/internal/providers/supabase"
)

// CouncilAdminRepository reads and writes the council_admins table
type CouncilAdminRepository interface {
	// FindByUserID returns the single row for userID. No row or several rows is an error.
	FindByUserID(ctx context.Context, userID string) (*entities.CouncilAdmin, error)
	// ListOrderedByCreatedAtDesc returns every row, newest first
	ListOrderedByCreatedAtDesc(ctx context.Context) ([]entities.CouncilAdmin, error)
	Insert(ctx context.Context, row entities.NewCouncilAdmin) error
	// DeleteByID removes the row with id. Removing nothing is an error.
	DeleteByID(ctx context.Context, id string) error
}

// CouncilAdminRESTRepository goes through the provider's table API
type CouncilAdminRESTRepository struct {
	client *supabase.Client
}

var _ CouncilAdminRepository = (*CouncilAdminRESTRepository)(nil)

func NewCouncilAdminRESTRepository(client *supabase.Client) *CouncilAdminRESTRepository {
	return &CouncilAdminRESTRepository{client: client}
}

func (r *CouncilAdminRESTRepository) FindByUserID(ctx context.Context, userID string) (*entities.CouncilAdmin, error) {
	return supabase.SelectSingle[entities.CouncilAdmin](ctx, r.client, constants.TableCouncilAdmins, supabase.Query{
		Filters: []supabase.Filter{supabase.Eq("user_id", userID)},
	})
}

func (r *CouncilAdminRESTRepository) ListOrderedByCreatedAtDesc(ctx context.Context) ([]entities.CouncilAdmin, error) {
	rows := []entities.CouncilAdmin{}
	err := r.client.Select(ctx, constants.TableCouncilAdmins, supabase.Query{
		Order: &supabase.Order{Column: "created_at", Ascending: false},
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CouncilAdminRESTRepository) Insert(ctx context.Context, row entities.NewCouncilAdmin) error {
	return r.client.Insert(ctx, constants.TableCouncilAdmins, row)
}

func (r *CouncilAdminRESTRepository) DeleteByID(ctx context.Context, id string) error {
	n, err := r.client.Delete(ctx, constants.TableCouncilAdmins, supabase.Eq("id", id))
	if err != nil {
		return err
	}
	if n == 0 {
		return councilAdminNotFound(id)
	}
	return nil
}

func councilAdminNotFound(id string) *supabase.ProviderError {
	return &supabase.ProviderError{
		Status:  http.StatusNotFound,
		Code:    constants.ErrCodeNotFound,
		Message: fmt.Sprintf("council admin %s not found", id),
	}
}
