package model

import "time"

type QAHistory struct {
	ID           uint      `gorm:"column:qa_id;primaryKey" json:"qa_id"`
	PaperID      uint      `gorm:"not null;index" json:"paper_id"`
	Question     string    `gorm:"type:text;not null" json:"question"`
	Answer       string    `gorm:"type:text;not null" json:"answer"`
	QuestionDate time.Time `json:"question_date"`
	UserSession  string    `gorm:"size:255;index" json:"user_session"`
	CreatedAt    time.Time `json:"created_at"`

	Paper Paper `gorm:"foreignKey:PaperID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (QAHistory) TableName() string {
	return "qa_history"
}
