package repository

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"paper-summary-api/internal/model"
	"paper-summary-api/internal/platform/dbctx"
)

type QARepository struct {
	db *gorm.DB
}

func NewQARepository(db *gorm.DB) *QARepository {
	return &QARepository{db: db}
}

func (r *QARepository) Create(dbc dbctx.Context, qa *model.QAHistory) error {
	if err := dbc.DB(r.db).Omit(clause.Associations).Create(qa).Error; err != nil {
		return fmt.Errorf("create qa history failed: %w", err)
	}
	return nil
}

func (r *QARepository) ListByPaperID(dbc dbctx.Context, paperID uint, limit int) ([]model.QAHistory, error) {
	var list []model.QAHistory
	if err := dbc.DB(r.db).
		Where("paper_id = ?", paperID).
		Order("question_date DESC").
		Order("qa_id DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list qa history failed: %w", err)
	}
	return list, nil
}
