package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"paper-summary-api/internal/model"
	"paper-summary-api/internal/observability"
	"paper-summary-api/internal/pkg/hashutil"
	"paper-summary-api/internal/platform/dbctx"
	"paper-summary-api/internal/repository"
	"paper-summary-api/internal/summary"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	maxFilenameLen   = 255
)

type PaperService struct {
	papers     PaperStore
	tx         Transactor
	summarizer DocumentSummarizer
	events     eventEmitter
	metrics    *observability.Metrics
	logger     zerolog.Logger

	maxUploadBytes     int64
	precheckDuplicates bool
}

type PaperServiceOptions struct {
	MaxUploadBytes int64
	// PrecheckDuplicates looks the hash up before calling the LLM.
	PrecheckDuplicates bool
}

func NewPaperService(
	papers PaperStore,
	tx Transactor,
	summarizer DocumentSummarizer,
	publisher EventPublisher,
	metrics *observability.Metrics,
	logger zerolog.Logger,
	opts PaperServiceOptions,
) *PaperService {
	return &PaperService{
		papers:             papers,
		tx:                 tx,
		summarizer:         summarizer,
		events:             eventEmitter{publisher: publisher, metrics: metrics, logger: logger},
		metrics:            metrics,
		logger:             logger,
		maxUploadBytes:     opts.MaxUploadBytes,
		precheckDuplicates: opts.PrecheckDuplicates,
	}
}

type UploadInput struct {
	Filename string
	Content  []byte
}

// Upload summarizes a PDF with the LLM and stores the result. The content
// hash is checked inside the insert transaction, after summarization.
func (s *PaperService) Upload(ctx context.Context, input UploadInput) (*model.Paper, error) {
	filename := filepath.Base(strings.TrimSpace(input.Filename))
	if err := s.validateUpload(filename, input.Content); err != nil {
		s.metrics.ObserveUpload(observability.UploadRejected)
		return nil, err
	}

	hash := hashutil.SHA256Hex(input.Content)
	logger := s.logger.With().Str("file_hash", hash).Str("filename", filename).Logger()

	if s.precheckDuplicates {
		existing, err := s.papers.GetByFileHash(dbctx.Context{Ctx: ctx}, hash)
		if err != nil {
			s.metrics.ObserveUpload(observability.UploadFailed)
			return nil, err
		}
		if existing != nil {
			s.metrics.ObserveUpload(observability.UploadDuplicate)
			logger.Info().Uint("paper_id", existing.ID).Msg("duplicate upload rejected before summarization")
			return nil, ErrDuplicatePaper
		}
	}

	sum, err := s.summarizer.Summarize(ctx, filename, input.Content)
	if err != nil {
		s.metrics.ObserveUpload(observability.UploadFailed)
		return nil, fmt.Errorf("summarize paper failed: %w", err)
	}

	paper := newPaper(filename, hash, int64(len(input.Content)), sum)
	err = s.tx.WithinTx(ctx, func(dbc dbctx.Context) error {
		existing, err := s.papers.GetByFileHash(dbc, hash)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDuplicatePaper
		}
		return s.papers.Create(dbc, paper)
	})
	if err != nil {
		if errors.Is(err, ErrDuplicatePaper) || errors.Is(err, repository.ErrDuplicateKey) {
			s.metrics.ObserveUpload(observability.UploadDuplicate)
			logger.Info().Msg("duplicate upload rejected after summarization")
			return nil, ErrDuplicatePaper
		}
		s.metrics.ObserveUpload(observability.UploadFailed)
		return nil, err
	}

	s.metrics.ObserveUpload(observability.UploadCreated)
	paperLog := observability.WithPaperID(logger, paper.ID)
	paperLog.Info().Int64("file_size", paper.FileSize).Msg("paper stored")
	s.events.emit(ctx, model.EventPaperUploaded, model.PaperUploadedPayload{
		PaperID:          paper.ID,
		Title:            paper.Title,
		OriginalFilename: paper.OriginalFilename,
		FileHash:         paper.FileHash,
		FileSize:         paper.FileSize,
	})
	return paper, nil
}

func (s *PaperService) validateUpload(filename string, content []byte) error {
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return fmt.Errorf("%w: filename is required", ErrInvalidInput)
	}
	if len(filename) > maxFilenameLen {
		return fmt.Errorf("%w: filename longer than %d bytes", ErrInvalidInput, maxFilenameLen)
	}
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return ErrNotPDF
	}
	if len(content) == 0 {
		return ErrEmptyFile
	}
	if s.maxUploadBytes > 0 && int64(len(content)) > s.maxUploadBytes {
		return fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, s.maxUploadBytes)
	}
	if !mimetype.Detect(content).Is("application/pdf") {
		return fmt.Errorf("%w: content is not a PDF document", ErrNotPDF)
	}
	return nil
}

func newPaper(filename, hash string, size int64, sum summary.Summary) *model.Paper {
	title := sum.Title
	if title == "" {
		title = strings.TrimSuffix(filename, filepath.Ext(filename))
	}
	keywords := sum.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return &model.Paper{
		OriginalFilename:    filename,
		Title:               title,
		Authors:             sum.Authors,
		Abstract:            sum.Abstract,
		SummaryIntroduction: sum.Introduction,
		SummaryMethods:      sum.Methods,
		SummaryResults:      sum.Results,
		SummaryDiscussion:   sum.Discussion,
		SummaryConclusion:   sum.Conclusion,
		Keywords:            datatypes.JSONSlice[string](keywords),
		FileSize:            size,
		FileHash:            hash,
	}
}

// List returns stored papers, newest first.
func (s *PaperService) List(ctx context.Context, limit, offset int) ([]model.Paper, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", ErrInvalidInput)
	}
	papers, err := s.papers.List(dbctx.Context{Ctx: ctx}, clampLimit(limit, defaultListLimit, maxListLimit), offset)
	if err != nil {
		return nil, err
	}
	if papers == nil {
		papers = []model.Paper{}
	}
	return papers, nil
}

func (s *PaperService) Get(ctx context.Context, id uint) (*model.Paper, error) {
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
