package model

import "time"

type SearchHistory struct {
	ID          uint      `gorm:"column:search_id;primaryKey" json:"search_id"`
	SearchQuery string    `gorm:"type:text;not null" json:"search_query"`
	SearchType  string    `gorm:"size:50;not null" json:"search_type"`
	ResultCount int       `gorm:"not null;default:0" json:"result_count"`
	SearchDate  time.Time `gorm:"index" json:"search_date"`
	UserSession string    `gorm:"size:255;index" json:"user_session"`
	CreatedAt   time.Time `json:"created_at"`
}

func (SearchHistory) TableName() string {
	return "search_history"
}

// SearchResult links a search to one matched paper.
type SearchResult struct {
	ID             uint      `gorm:"column:result_id;primaryKey" json:"result_id"`
	SearchID       uint      `gorm:"not null;index" json:"search_id"`
	PaperID        uint      `gorm:"not null;index" json:"paper_id"`
	RelevanceScore float64   `gorm:"not null" json:"relevance_score"`
	CreatedAt      time.Time `json:"created_at"`

	Search SearchHistory `gorm:"foreignKey:SearchID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Paper  Paper         `gorm:"foreignKey:PaperID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}
