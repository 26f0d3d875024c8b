package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/team-management-api/internal/database"
	"github.com/yukikurage/team-management-api/internal/models"
)

// GormInvitationRepository is a GORM implementation of InvitationRepository
type GormInvitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &GormInvitationRepository{db: db}
}

func (r *GormInvitationRepository) List(ctx context.Context) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := r.db.WithContext(ctx).
		Scopes(database.InvitationOrder).
		Preload("Position").
		Preload("InvitedBy").
		Find(&invitations).Error
	return invitations, err
}

func (r *GormInvitationRepository) FindBySlug(ctx context.Context, slug string) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.WithContext(ctx).
		Preload("Position").
		Preload("InvitedBy").
		Where("slug = ?", slug).
		First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *GormInvitationRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return exists(ctx, r.db, &models.Invitation{}, "email", email)
}

func (r *GormInvitationRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return exists(ctx, r.db, &models.Invitation{}, "slug", slug)
}

// Create inserts the invitation and runs onCreated before commit, so a
// failed notification leaves no pending invitation behind. The row stays
// locked while onCreated runs.
func (r *GormInvitationRepository) Create(ctx context.Context, invitation *models.Invitation, onCreated func(*models.Invitation) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(invitation).Error; err != nil {
			return err
		}

		if onCreated == nil {
			return nil
		}
		if err := onCreated(invitation); err != nil {
			return fmt.Errorf("%w: %w", ErrNotifyInvitee, err)
		}
		return nil
	})
}

// Accept consumes the invitation and creates the employee in one transaction.
func (r *GormInvitationRepository) Accept(ctx context.Context, invitation *models.Invitation, employee *models.Employee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Invitation{}).
			Where("id = ? AND is_accepted = ?", invitation.ID, false).
			Update("is_accepted", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvitationAlreadyAccepted
		}

		if err := tx.Omit(clause.Associations).Create(employee).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateEmployee, err)
		}

		invitation.IsAccepted = true
		return nil
	})
}
