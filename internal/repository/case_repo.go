package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"immigration-crm/internal/model"
)

// CaseRepository defines data access for Case entities including the joined
// detail/list reads and the child-row deletes used by cascades.
type CaseRepository interface {
	Create(ctx context.Context, c *model.Case) error
	GetByID(ctx context.Context, id string) (*model.Case, error)
	GetDetailRow(ctx context.Context, id string) (*model.CaseDetail, error)
	ListRows(ctx context.Context, page, limit int) ([]model.CaseRow, int64, error)
	ListByClient(ctx context.Context, clientID string) ([]model.Case, error)
	ListWithDeadlineBetween(ctx context.Context, from, to time.Time) ([]model.Case, error)
	ListIDsByClient(ctx context.Context, clientID string) ([]string, error)
	Update(ctx context.Context, c *model.Case) error
	Delete(ctx context.Context, id string) error
	DeleteByClient(ctx context.Context, clientID string) error
	DeleteChildren(ctx context.Context, caseIDs []string) error
}

type caseRepository struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) CaseRepository {
	return &caseRepository{db: db}
}

func (r *caseRepository) Create(ctx context.Context, c *model.Case) error {
	return GetDB(ctx, r.db).Create(c).Error
}

func (r *caseRepository) GetByID(ctx context.Context, id string) (*model.Case, error) {
	var c model.Case
	if err := GetDB(ctx, r.db).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepository) GetDetailRow(ctx context.Context, id string) (*model.CaseDetail, error) {
	var detail model.CaseDetail
	err := GetDB(ctx, r.db).Table("cases").
		Select("cases.*, clients.name AS client_name, clients.email AS client_email, users.full_name AS assigned_to_name").
		Joins("LEFT JOIN clients ON clients.id = cases.client_id").
		Joins("LEFT JOIN users ON users.id = cases.assigned_to").
		Where("cases.id = ?", id).
		Take(&detail).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *caseRepository) ListRows(ctx context.Context, page, limit int) ([]model.CaseRow, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.Model(&model.Case{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]model.CaseRow, 0)
	offset := (page - 1) * limit
	err := db.Table("cases").
		Select("cases.*, clients.name AS client_name, users.full_name AS assigned_to_name").
		Joins("LEFT JOIN clients ON clients.id = cases.client_id").
		Joins("LEFT JOIN users ON users.id = cases.assigned_to").
		Order("cases.created_at DESC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *caseRepository) ListByClient(ctx context.Context, clientID string) ([]model.Case, error) {
	var cases []model.Case
	if err := GetDB(ctx, r.db).Where("client_id = ?", clientID).Order("created_at asc").Find(&cases).Error; err != nil {
		return nil, err
	}
	return cases, nil
}

// ListWithDeadlineBetween returns open cases whose deadline falls inside the
// window. Closed cases are excluded so the reminder sweep stays quiet for them.
func (r *caseRepository) ListWithDeadlineBetween(ctx context.Context, from, to time.Time) ([]model.Case, error) {
	var cases []model.Case
	err := GetDB(ctx, r.db).
		Where("deadline IS NOT NULL AND deadline >= ? AND deadline < ?", from, to).
		Where("status <> ?", model.StatusClosed).
		Order("deadline asc").
		Find(&cases).Error
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *caseRepository) ListIDsByClient(ctx context.Context, clientID string) ([]string, error) {
	var ids []string
	err := GetDB(ctx, r.db).Model(&model.Case{}).Where("client_id = ?", clientID).Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *caseRepository) Update(ctx context.Context, c *model.Case) error {
	return GetDB(ctx, r.db).Save(c).Error
}

func (r *caseRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Case{}).Error
}

func (r *caseRepository) DeleteByClient(ctx context.Context, clientID string) error {
	return GetDB(ctx, r.db).Where("client_id = ?", clientID).Delete(&model.Case{}).Error
}

// DeleteChildren removes every note, task and document referencing the given
// cases. Called inside the cascade transaction before the cases themselves go.
func (r *caseRepository) DeleteChildren(ctx context.Context, caseIDs []string) error {
	if len(caseIDs) == 0 {
		return nil
	}
	db := GetDB(ctx, r.db)
	if err := db.Where("case_id IN ?", caseIDs).Delete(&model.CaseNote{}).Error; err != nil {
		return err
	}
	if err := db.Where("case_id IN ?", caseIDs).Delete(&model.Task{}).Error; err != nil {
		return err
	}
	return db.Where("case_id IN ?", caseIDs).Delete(&model.Document{}).Error
}
