package app

import (
	"context"

	"paper-summary-api/internal/model"
	"paper-summary-api/internal/platform/dbctx"
	"paper-summary-api/internal/search"
	"paper-summary-api/internal/summary"
)

type PaperStore interface {
	Create(dbc dbctx.Context, paper *model.Paper) error
	GetByID(dbc dbctx.Context, id uint) (*model.Paper, error)
	GetByFileHash(dbc dbctx.Context, hash string) (*model.Paper, error)
	List(dbc dbctx.Context, limit, offset int) ([]model.Paper, error)
	Search(dbc dbctx.Context, searchType search.Type, terms []string, limit int) ([]model.Paper, error)
}

type SearchStore interface {
	CreateHistory(dbc dbctx.Context, history *model.SearchHistory) error
	UpdateResultCount(dbc dbctx.Context, searchID uint, count int) error
	CreateResults(dbc dbctx.Context, results []model.SearchResult) error
	ListHistoryBySession(dbc dbctx.Context, session string, limit int) ([]model.SearchHistory, error)
}

type QAStore interface {
	Create(dbc dbctx.Context, qa *model.QAHistory) error
	ListByPaperID(dbc dbctx.Context, paperID uint, limit int) ([]model.QAHistory, error)
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type DocumentSummarizer interface {
	Summarize(ctx context.Context, filename string, pdf []byte) (summary.Summary, error)
}

type QuestionAnswerer interface {
	Answer(ctx context.Context, paper model.Paper, question string) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event model.Event) error
}
