package model

import "time"

const (
	EventPaperUploaded    = "paper.uploaded"
	EventSearchPerformed  = "search.performed"
	EventQuestionAnswered = "question.answered"
)

// Event is a domain notification published after a committed write.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type PaperUploadedPayload struct {
	PaperID          uint   `json:"paper_id"`
	Title            string `json:"title"`
	OriginalFilename string `json:"original_filename"`
	FileHash         string `json:"file_hash"`
	FileSize         int64  `json:"file_size"`
}

type SearchPerformedPayload struct {
	SearchID    uint   `json:"search_id"`
	Query       string `json:"query"`
	SearchType  string `json:"search_type"`
	ResultCount int    `json:"result_count"`
	UserSession string `json:"user_session"`
}

type QuestionAnsweredPayload struct {
	QAID        uint   `json:"qa_id"`
	PaperID     uint   `json:"paper_id"`
	UserSession string `json:"user_session"`
}

// AllModels lists every table for AutoMigrate, parents first.
func AllModels() []any {
	return []any{&Paper{}, &SearchHistory{}, &SearchResult{}, &QAHistory{}}
}
