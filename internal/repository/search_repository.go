package repository

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"paper-summary-api/internal/model"
	"paper-summary-api/internal/platform/dbctx"
)

type SearchRepository struct {
	db *gorm.DB
}

func NewSearchRepository(db *gorm.DB) *SearchRepository {
	return &SearchRepository{db: db}
}

func (r *SearchRepository) CreateHistory(dbc dbctx.Context, history *model.SearchHistory) error {
	if err := dbc.DB(r.db).Create(history).Error; err != nil {
		return fmt.Errorf("create search history failed: %w", err)
	}
	return nil
}

func (r *SearchRepository) UpdateResultCount(dbc dbctx.Context, searchID uint, count int) error {
	if err := dbc.DB(r.db).
		Model(&model.SearchHistory{}).
		Where("search_id = ?", searchID).
		Update("result_count", count).Error; err != nil {
		return fmt.Errorf("update search result count failed: %w", err)
	}
	return nil
}

func (r *SearchRepository) CreateResults(dbc dbctx.Context, results []model.SearchResult) error {
	if len(results) == 0 {
		return nil
	}
	if err := dbc.DB(r.db).Omit(clause.Associations).Create(&results).Error; err != nil {
		return fmt.Errorf("create search results failed: %w", err)
	}
	return nil
}

// ListHistoryBySession returns a session's searches, newest first.
func (r *SearchRepository) ListHistoryBySession(dbc dbctx.Context, session string, limit int) ([]model.SearchHistory, error) {
	var list []model.SearchHistory
	if err := dbc.DB(r.db).
		Where("user_session = ?", session).
		Order("search_date DESC").
		Order("search_id DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list search history failed: %w", err)
	}
	return list, nil
}
