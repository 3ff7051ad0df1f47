package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"paper-summary-api/internal/model"
	"paper-summary-api/internal/observability"
	"paper-summary-api/internal/platform/dbctx"
	"paper-summary-api/internal/search"
)

const (
	defaultSearchLimit  = 20
	maxSearchLimit      = 100
	defaultHistoryLimit = 20
	maxSessionLen       = 255
)

type SearchService struct {
	papers   PaperStore
	searches SearchStore
	tx       Transactor
	events   eventEmitter
	metrics  *observability.Metrics
	logger   zerolog.Logger
	now      func() time.Time
}

func NewSearchService(
	papers PaperStore,
	searches SearchStore,
	tx Transactor,
	publisher EventPublisher,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *SearchService {
	return &SearchService{
		papers:   papers,
		searches: searches,
		tx:       tx,
		events:   eventEmitter{publisher: publisher, metrics: metrics, logger: logger},
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

type SearchInput struct {
	Query       string
	SearchType  string
	Limit       int
	UserSession string
}

type SearchResultItem struct {
	PaperID        uint      `json:"paper_id"`
	Title          string    `json:"title"`
	Authors        string    `json:"authors"`
	Abstract       string    `json:"abstract"`
	Keywords       []string  `json:"keywords"`
	RelevanceScore float64   `json:"relevance_score"`
	UploadDate     time.Time `json:"upload_date"`
}

type SearchOutput struct {
	SearchID    uint               `json:"search_id"`
	Query       string             `json:"query"`
	SearchType  string             `json:"search_type"`
	UserSession string             `json:"user_session"`
	Results     []SearchResultItem `json:"results"`
	TotalCount  int                `json:"total_count"`
}

// Search records the query, runs the selected strategy and links every match
// to the history row, all in one transaction. The stored search type is the
// strategy that actually ran.
func (s *SearchService) Search(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	session := strings.TrimSpace(input.UserSession)
	if len(session) > maxSessionLen {
		return nil, fmt.Errorf("%w: user_session longer than %d bytes", ErrInvalidInput, maxSessionLen)
	}
	session = sessionOrNew(session)

	query := strings.TrimSpace(input.Query)
	searchType := search.ParseType(input.SearchType)
	terms := search.Terms(query)
	limit := clampLimit(input.Limit, defaultSearchLimit, maxSearchLimit)

	history := &model.SearchHistory{
		SearchQuery: query,
		SearchType:  string(searchType),
		SearchDate:  s.now(),
		UserSession: session,
	}
	var papers []model.Paper
	err := s.tx.WithinTx(ctx, func(dbc dbctx.Context) error {
		if err := s.searches.CreateHistory(dbc, history); err != nil {
			return err
		}
		if len(terms) > 0 {
			found, err := s.papers.Search(dbc, searchType, terms, limit)
			if err != nil {
				return err
			}
			papers = found
		}

		history.ResultCount = len(papers)
		if err := s.searches.UpdateResultCount(dbc, history.ID, history.ResultCount); err != nil {
			return err
		}

		links := make([]model.SearchResult, 0, len(papers))
		for _, p := range papers {
			links = append(links, model.SearchResult{
				SearchID:       history.ID,
				PaperID:        p.ID,
				RelevanceScore: search.RelevanceScore,
			})
		}
		return s.searches.CreateResults(dbc, links)
	})
	if err != nil {
		return nil, err
	}

	items := make([]SearchResultItem, 0, len(papers))
	for i := range papers {
		p := &papers[i]
		items = append(items, SearchResultItem{
			PaperID:        p.ID,
			Title:          p.Title,
			Authors:        p.Authors,
			Abstract:       p.Abstract,
			Keywords:       p.KeywordList(),
			RelevanceScore: search.RelevanceScore,
			UploadDate:     p.UploadDate,
		})
	}

	s.metrics.ObserveSearch(string(searchType), len(items))
	searchLog := observability.WithSearchContext(s.logger, history.ID, string(searchType), session)
	searchLog.Debug().Int("result_count", len(items)).Msg("search completed")
	s.events.emit(ctx, model.EventSearchPerformed, model.SearchPerformedPayload{
		SearchID:    history.ID,
		Query:       query,
		SearchType:  string(searchType),
		ResultCount: len(items),
		UserSession: session,
	})

	return &SearchOutput{
		SearchID:    history.ID,
		Query:       query,
		SearchType:  string(searchType),
		UserSession: session,
		Results:     items,
		TotalCount:  len(items),
	}, nil
}

// History returns a session's most recent searches, newest first.
func (s *SearchService) History(ctx context.Context, session string, limit int) ([]model.SearchHistory, error) {
	session = strings.TrimSpace(session)
	if session == "" {
		return nil, fmt.Errorf("%w: user_session is required", ErrInvalidInput)
	}
	list, err := s.searches.ListHistoryBySession(dbctx.Context{Ctx: ctx}, session, clampLimit(limit, defaultHistoryLimit, maxSearchLimit))
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.SearchHistory{}
	}
	return list, nil
}
