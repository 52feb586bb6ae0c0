package repository

import (
	"context"

	"gorm.io/gorm"

	"immigration-crm/internal/model"
)

// InteractionRepository defines data access for Interaction entities.
type InteractionRepository interface {
	Create(ctx context.Context, interaction *model.Interaction) error
	GetByID(ctx context.Context, id string) (*model.Interaction, error)
	ListRows(ctx context.Context, page, limit int) ([]model.InteractionRow, int64, error)
	Delete(ctx context.Context, id string) error
	DeleteByClient(ctx context.Context, clientID string) error
}

type interactionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Create(ctx context.Context, interaction *model.Interaction) error {
	return GetDB(ctx, r.db).Create(interaction).Error
}

func (r *interactionRepository) GetByID(ctx context.Context, id string) (*model.Interaction, error) {
	var interaction model.Interaction
	if err := GetDB(ctx, r.db).First(&interaction, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &interaction, nil
}

func (r *interactionRepository) ListRows(ctx context.Context, page, limit int) ([]model.InteractionRow, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.Model(&model.Interaction{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]model.InteractionRow, 0)
	offset := (page - 1) * limit
	err := db.Table("interactions").
		Select("interactions.*, clients.name AS client_name, users.full_name AS user_name").
		Joins("LEFT JOIN clients ON clients.id = interactions.client_id").
		Joins("LEFT JOIN users ON users.id = interactions.user_id").
		Order("interactions.interaction_date DESC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *interactionRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Interaction{}).Error
}

func (r *interactionRepository) DeleteByClient(ctx context.Context, clientID string) error {
	return GetDB(ctx, r.db).Where("client_id = ?", clientID).Delete(&model.Interaction{}).Error
}
