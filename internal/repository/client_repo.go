package repository

import (
	"context"

	"gorm.io/gorm"

	"immigration-crm/internal/model"
)

// ClientRepository defines data access for Client entities and their
// denormalized list rows.
type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	GetByID(ctx context.Context, id string) (*model.Client, error)
	ListRows(ctx context.Context, page, limit int) ([]model.ClientRow, int64, error)
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, id string) error
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	return GetDB(ctx, r.db).Create(client).Error
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*model.Client, error) {
	var client model.Client
	if err := GetDB(ctx, r.db).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) ListRows(ctx context.Context, page, limit int) ([]model.ClientRow, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.Model(&model.Client{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]model.ClientRow, 0)
	offset := (page - 1) * limit
	err := db.Table("clients").
		Select("clients.*, users.full_name AS created_by_name").
		Joins("LEFT JOIN users ON users.id = clients.created_by").
		Order("clients.created_at DESC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	return GetDB(ctx, r.db).Save(client).Error
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Client{}).Error
}
