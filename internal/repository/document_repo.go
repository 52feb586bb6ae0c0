package repository

import (
	"context"

	"gorm.io/gorm"

	"immigration-crm/internal/model"
)

// DocumentRepository defines data access for Document entities.
type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
	GetByID(ctx context.Context, id string) (*model.Document, error)
	ListRows(ctx context.Context, page, limit int) ([]model.DocumentRow, int64, error)
	ListRowsByCase(ctx context.Context, caseID string) ([]model.DocumentRow, error)
	Update(ctx context.Context, doc *model.Document) error
	Delete(ctx context.Context, id string) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *model.Document) error {
	return GetDB(ctx, r.db).Create(doc).Error
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*model.Document, error) {
	var doc model.Document
	if err := GetDB(ctx, r.db).First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) ListRows(ctx context.Context, page, limit int) ([]model.DocumentRow, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.Model(&model.Document{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]model.DocumentRow, 0)
	offset := (page - 1) * limit
	err := db.Table("documents").
		Select("documents.*, cases.case_number AS case_number, clients.name AS client_name, users.full_name AS uploaded_by_name").
		Joins("LEFT JOIN cases ON cases.id = documents.case_id").
		Joins("LEFT JOIN clients ON clients.id = cases.client_id").
		Joins("LEFT JOIN users ON users.id = documents.uploaded_by").
		Order("documents.created_at DESC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *documentRepository) ListRowsByCase(ctx context.Context, caseID string) ([]model.DocumentRow, error) {
	rows := make([]model.DocumentRow, 0)
	err := GetDB(ctx, r.db).Table("documents").
		Select("documents.*, users.full_name AS uploaded_by_name").
		Joins("LEFT JOIN users ON users.id = documents.uploaded_by").
		Where("documents.case_id = ?", caseID).
		Order("documents.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *documentRepository) Update(ctx context.Context, doc *model.Document) error {
	return GetDB(ctx, r.db).Save(doc).Error
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Document{}).Error
}
