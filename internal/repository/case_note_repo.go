package repository

import (
	"context"

	"gorm.io/gorm"

	"immigration-crm/internal/model"
)

// CaseNoteRepository defines data access for CaseNote entities.
type CaseNoteRepository interface {
	Create(ctx context.Context, note *model.CaseNote) error
	GetByID(ctx context.Context, id string) (*model.CaseNote, error)
	GetRow(ctx context.Context, id string) (*model.CaseNoteRow, error)
	ListRowsByCase(ctx context.Context, caseID string) ([]model.CaseNoteRow, error)
	Delete(ctx context.Context, id string) error
}

type caseNoteRepository struct {
	db *gorm.DB
}

func NewCaseNoteRepository(db *gorm.DB) CaseNoteRepository {
	return &caseNoteRepository{db: db}
}

func (r *caseNoteRepository) Create(ctx context.Context, note *model.CaseNote) error {
	return GetDB(ctx, r.db).Create(note).Error
}

func (r *caseNoteRepository) GetByID(ctx context.Context, id string) (*model.CaseNote, error) {
	var note model.CaseNote
	if err := GetDB(ctx, r.db).First(&note, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *caseNoteRepository) GetRow(ctx context.Context, id string) (*model.CaseNoteRow, error) {
	var row model.CaseNoteRow
	err := GetDB(ctx, r.db).Table("case_notes").
		Select("case_notes.*, users.full_name AS user_name, users.role AS user_role").
		Joins("LEFT JOIN users ON users.id = case_notes.user_id").
		Where("case_notes.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListRowsByCase returns a case's notes newest first, each joined with the
// author's name and role.
func (r *caseNoteRepository) ListRowsByCase(ctx context.Context, caseID string) ([]model.CaseNoteRow, error) {
	rows := make([]model.CaseNoteRow, 0)
	err := GetDB(ctx, r.db).Table("case_notes").
		Select("case_notes.*, users.full_name AS user_name, users.role AS user_role").
		Joins("LEFT JOIN users ON users.id = case_notes.user_id").
		Where("case_notes.case_id = ?", caseID).
		Order("case_notes.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *caseNoteRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.CaseNote{}).Error
}
