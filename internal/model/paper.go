package model

import (
	"time"

	"gorm.io/datatypes"
)

// Paper is an uploaded document and its LLM summary. Rows are never updated.
type Paper struct {
	ID                  uint                        `gorm:"column:paper_id;primaryKey" json:"paper_id"`
	OriginalFilename    string                      `gorm:"size:255;not null" json:"original_filename"`
	Title               string                      `gorm:"type:text;not null" json:"title"`
	Authors             string                      `gorm:"type:text" json:"authors"`
	Abstract            string                      `gorm:"type:text" json:"abstract"`
	SummaryIntroduction string                      `gorm:"type:text" json:"summary_introduction"`
	SummaryMethods      string                      `gorm:"type:text" json:"summary_methods"`
	SummaryResults      string                      `gorm:"type:text" json:"summary_results"`
	SummaryDiscussion   string                      `gorm:"type:text" json:"summary_discussion"`
	SummaryConclusion   string                      `gorm:"type:text" json:"summary_conclusion"`
	Keywords            datatypes.JSONSlice[string] `json:"keywords"`
	UploadDate          time.Time                   `gorm:"autoCreateTime" json:"upload_date"`
	FileSize            int64                       `gorm:"not null" json:"file_size"`
	FileHash            string                      `gorm:"size:64;not null;uniqueIndex" json:"file_hash"`
	CreatedAt           time.Time                   `json:"created_at"`
	UpdatedAt           time.Time                   `json:"updated_at"`
}

// KeywordList returns the keywords as a plain slice, never nil.
func (p *Paper) KeywordList() []string {
	if len(p.Keywords) == 0 {
		return []string{}
	}
	return []string(p.Keywords)
}
