package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"paper-summary-api/internal/model"
	"paper-summary-api/internal/platform/dbctx"
	"paper-summary-api/internal/search"
)

type PaperRepository struct {
	db *gorm.DB
}

func NewPaperRepository(db *gorm.DB) *PaperRepository {
	return &PaperRepository{db: db}
}

func (r *PaperRepository) Create(dbc dbctx.Context, paper *model.Paper) error {
	if err := dbc.DB(r.db).Create(paper).Error; err != nil {
		return fmt.Errorf("create paper failed: %w", translate(err))
	}
	return nil
}

func (r *PaperRepository) GetByID(dbc dbctx.Context, id uint) (*model.Paper, error) {
	var paper model.Paper
	if err := dbc.DB(r.db).Where("paper_id = ?", id).First(&paper).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get paper failed: %w", err)
	}
	return &paper, nil
}

func (r *PaperRepository) GetByFileHash(dbc dbctx.Context, hash string) (*model.Paper, error) {
	var paper model.Paper
	if err := dbc.DB(r.db).Where("file_hash = ?", hash).First(&paper).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get paper by hash failed: %w", err)
	}
	return &paper, nil
}

// List returns papers newest first.
func (r *PaperRepository) List(dbc dbctx.Context, limit, offset int) ([]model.Paper, error) {
	var list []model.Paper
	if err := dbc.DB(r.db).
		Order("upload_date DESC").
		Order("paper_id DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list papers failed: %w", err)
	}
	return list, nil
}

func (r *PaperRepository) Search(dbc dbctx.Context, searchType search.Type, terms []string, limit int) ([]model.Paper, error) {
	var list []model.Paper
	if err := dbc.DB(r.db).
		Scopes(search.Scope(searchType, terms)).
		Order("paper_id ASC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search papers failed: %w", err)
	}
	return list, nil
}
