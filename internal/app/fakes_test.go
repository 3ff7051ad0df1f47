package app

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"paper-summary-api/internal/model"
	"paper-summary-api/internal/platform/dbctx"
	"paper-summary-api/internal/repository"
	"paper-summary-api/internal/search"
	"paper-summary-api/internal/summary"
)

var testLogger = zerolog.Nop()

// memPapers is an in-memory PaperStore with a unique file hash.
type memPapers struct {
	mu       sync.Mutex
	nextID   uint
	byID     map[uint]*model.Paper
	searchFn func(searchType search.Type, terms []string, limit int) ([]model.Paper, error)
	getErr   error
}

func newMemPapers() *memPapers {
	return &memPapers{byID: map[uint]*model.Paper{}}
}

func (m *memPapers) Create(_ dbctx.Context, paper *model.Paper) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if p.FileHash == paper.FileHash {
			return errors.Join(repository.ErrDuplicateKey, errors.New("unique index"))
		}
	}
	m.nextID++
	paper.ID = m.nextID
	cp := *paper
	m.byID[paper.ID] = &cp
	return nil
}

func (m *memPapers) GetByID(_ dbctx.Context, id uint) (*model.Paper, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if p, ok := m.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *memPapers) GetByFileHash(_ dbctx.Context, hash string) (*model.Paper, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if p.FileHash == hash {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memPapers) List(_ dbctx.Context, limit, offset int) ([]model.Paper, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Paper
	for id := m.nextID; id > 0; id-- {
		if p, ok := m.byID[id]; ok {
			out = append(out, *p)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memPapers) Search(_ dbctx.Context, searchType search.Type, terms []string, limit int) ([]model.Paper, error) {
	if m.searchFn == nil {
		return nil, nil
	}
	return m.searchFn(searchType, terms, limit)
}

func (m *memPapers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

type memSearches struct {
	histories []*model.SearchHistory
	results   []model.SearchResult
	counts    map[uint]int
	createErr error
}

func newMemSearches() *memSearches {
	return &memSearches{counts: map[uint]int{}}
}

func (m *memSearches) CreateHistory(_ dbctx.Context, h *model.SearchHistory) error {
	if m.createErr != nil {
		return m.createErr
	}
	h.ID = uint(len(m.histories) + 1)
	m.histories = append(m.histories, h)
	return nil
}

func (m *memSearches) UpdateResultCount(_ dbctx.Context, searchID uint, count int) error {
	m.counts[searchID] = count
	return nil
}

func (m *memSearches) CreateResults(_ dbctx.Context, results []model.SearchResult) error {
	m.results = append(m.results, results...)
	return nil
}

func (m *memSearches) ListHistoryBySession(_ dbctx.Context, session string, limit int) ([]model.SearchHistory, error) {
	var out []model.SearchHistory
	for i := len(m.histories) - 1; i >= 0 && len(out) < limit; i-- {
		if m.histories[i].UserSession == session {
			out = append(out, *m.histories[i])
		}
	}
	return out, nil
}

type memQA struct {
	records []model.QAHistory
	err     error
}

func (m *memQA) Create(_ dbctx.Context, qa *model.QAHistory) error {
	if m.err != nil {
		return m.err
	}
	qa.ID = uint(len(m.records) + 1)
	m.records = append(m.records, *qa)
	return nil
}

func (m *memQA) ListByPaperID(_ dbctx.Context, paperID uint, limit int) ([]model.QAHistory, error) {
	var out []model.QAHistory
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		if m.records[i].PaperID == paperID {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

// passTx runs fn directly. It does not roll anything back.
type passTx struct {
	calls int
}

func (t *passTx) WithinTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	t.calls++
	return fn(dbctx.Context{Ctx: ctx})
}

type fakeSummarizer struct {
	calls int
	fn    func(filename string, pdf []byte) (summary.Summary, error)
}

func (f *fakeSummarizer) Summarize(_ context.Context, filename string, pdf []byte) (summary.Summary, error) {
	f.calls++
	if f.fn != nil {
		return f.fn(filename, pdf)
	}
	return summary.Summary{Title: "Deep Learning Survey", Keywords: []string{"deep learning"}}, nil
}

type fakeAnswerer struct {
	answer string
	err    error
	seen   []model.Paper
}

func (f *fakeAnswerer) Answer(_ context.Context, paper model.Paper, _ string) (string, error) {
	f.seen = append(f.seen, paper)
	return f.answer, f.err
}

type recordingPublisher struct {
	events []model.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e model.Event) error {
	p.events = append(p.events, e)
	return p.err
}

func dbcBackground() dbctx.Context {
	return dbctx.Context{Ctx: context.Background()}
}
