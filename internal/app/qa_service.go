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
)

const maxQuestionLen = 4000

type QAService struct {
	papers   PaperStore
	qa       QAStore
	tx       Transactor
	answerer QuestionAnswerer
	events   eventEmitter
	metrics  *observability.Metrics
	logger   zerolog.Logger
	now      func() time.Time
}

func NewQAService(
	papers PaperStore,
	qa QAStore,
	tx Transactor,
	answerer QuestionAnswerer,
	publisher EventPublisher,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *QAService {
	return &QAService{
		papers:   papers,
		qa:       qa,
		tx:       tx,
		answerer: answerer,
		events:   eventEmitter{publisher: publisher, metrics: metrics, logger: logger},
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

type AskInput struct {
	PaperID     uint
	Question    string
	UserSession string
}

// Ask answers a question from the paper's stored summary and records it.
// The LLM call runs outside the transaction.
func (s *QAService) Ask(ctx context.Context, input AskInput) (*model.QAHistory, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", ErrInvalidInput)
	}
	if len([]rune(question)) > maxQuestionLen {
		return nil, fmt.Errorf("%w: question longer than %d characters", ErrInvalidInput, maxQuestionLen)
	}
	session := strings.TrimSpace(input.UserSession)
	if len(session) > maxSessionLen {
		return nil, fmt.Errorf("%w: user_session longer than %d bytes", ErrInvalidInput, maxSessionLen)
	}
	session = sessionOrNew(session)

	paper, err := s.lookupPaper(ctx, input.PaperID)
	if err != nil {
		return nil, err
	}

	answer, err := s.answerer.Answer(ctx, *paper, question)
	if err != nil {
		s.metrics.ObserveQuestion(err)
		return nil, fmt.Errorf("answer question failed: %w", err)
	}

	record := &model.QAHistory{
		PaperID:      paper.ID,
		Question:     question,
		Answer:       answer,
		QuestionDate: s.now(),
		UserSession:  session,
	}
	if err := s.tx.WithinTx(ctx, func(dbc dbctx.Context) error {
		return s.qa.Create(dbc, record)
	}); err != nil {
		s.metrics.ObserveQuestion(err)
		return nil, err
	}

	s.metrics.ObserveQuestion(nil)
	paperLog := observability.WithPaperID(s.logger, paper.ID)
	paperLog.Debug().Uint("qa_id", record.ID).Msg("question answered")
	s.events.emit(ctx, model.EventQuestionAnswered, model.QuestionAnsweredPayload{
		QAID:        record.ID,
		PaperID:     paper.ID,
		UserSession: session,
	})
	return record, nil
}

// History lists the questions asked about a paper, newest first.
func (s *QAService) History(ctx context.Context, paperID uint, limit int) ([]model.QAHistory, error) {
	if _, err := s.lookupPaper(ctx, paperID); err != nil {
		return nil, err
	}
	list, err := s.qa.ListByPaperID(dbctx.Context{Ctx: ctx}, paperID, clampLimit(limit, defaultHistoryLimit, maxListLimit))
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.QAHistory{}
	}
	return list, nil
}

func (s *QAService) lookupPaper(ctx context.Context, id uint) (*model.Paper, error) {
	if !storableID(id) {
		return nil, ErrPaperNotFound
	}
	paper, err := s.papers.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, err
	}
	if paper == nil {
		return nil, ErrPaperNotFound
	}
	return paper, nil
}
