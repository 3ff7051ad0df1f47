package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"paper-summary-api/internal/model"
	"paper-summary-api/internal/search"
)

type searchCall struct {
	searchType search.Type
	terms      []string
	limit      int
}

func newSearchFixture() (*SearchService, *memPapers, *memSearches, *recordingPublisher, *[]searchCall) {
	papers := newMemPapers()
	searches := newMemSearches()
	pub := &recordingPublisher{}
	calls := &[]searchCall{}
	papers.searchFn = func(st search.Type, terms []string, limit int) ([]model.Paper, error) {
		*calls = append(*calls, searchCall{searchType: st, terms: terms, limit: limit})
		return []model.Paper{
			{ID: 4, Title: "Deep Learning Survey", Keywords: datatypes.JSONSlice[string]{"deep learning"}},
			{ID: 9, Title: "Learning Deep Features"},
		}, nil
	}
	svc := NewSearchService(papers, searches, &passTx{}, pub, nil, testLogger)
	svc.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc, papers, searches, pub, calls
}

func TestSearchRecordsHistoryAndLinks(t *testing.T) {
	svc, _, searches, pub, calls := newSearchFixture()

	out, err := svc.Search(context.Background(), SearchInput{
		Query:       "  deep   learning ",
		SearchType:  "keyword",
		Limit:       5,
		UserSession: "session-1",
	})
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	assert.Equal(t, search.TypeKeyword, (*calls)[0].searchType)
	assert.Equal(t, []string{"deep", "learning"}, (*calls)[0].terms)
	assert.Equal(t, 5, (*calls)[0].limit)

	assert.Equal(t, "deep   learning", out.Query)
	assert.Equal(t, 2, out.TotalCount)
	assert.Equal(t, "session-1", out.UserSession)
	require.Len(t, out.Results, 2)
	assert.Equal(t, uint(4), out.Results[0].PaperID)
	assert.Equal(t, []string{"deep learning"}, out.Results[0].Keywords)
	assert.Equal(t, []string{}, out.Results[1].Keywords)
	for _, item := range out.Results {
		assert.Equal(t, 1.0, item.RelevanceScore)
	}

	require.Len(t, searches.histories, 1)
	h := searches.histories[0]
	assert.Equal(t, out.SearchID, h.ID)
	assert.Equal(t, "keyword", h.SearchType)
	assert.Equal(t, 2, searches.counts[h.ID])
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), h.SearchDate)

	require.Len(t, searches.results, 2)
	assert.Equal(t, uint(9), searches.results[1].PaperID)
	assert.Equal(t, h.ID, searches.results[1].SearchID)

	require.Len(t, pub.events, 1)
	assert.Equal(t, model.EventSearchPerformed, pub.events[0].Type)
}

func TestSearchUnknownTypeRunsKeywordStrategy(t *testing.T) {
	svcA, _, searchesA, _, callsA := newSearchFixture()
	svcB, _, searchesB, _, callsB := newSearchFixture()

	outA, err := svcA.Search(context.Background(), SearchInput{Query: "deep learning", SearchType: "keyword"})
	require.NoError(t, err)
	outB, err := svcB.Search(context.Background(), SearchInput{Query: "deep learning", SearchType: "vector-magic"})
	require.NoError(t, err)

	assert.Equal(t, *callsA, *callsB)
	assert.Equal(t, outA.Results, outB.Results)
	assert.Equal(t, "keyword", outB.SearchType)
	assert.Equal(t, searchesA.histories[0].SearchType, searchesB.histories[0].SearchType)
}

func TestSearchDefaultsAndLimits(t *testing.T) {
	svc, _, _, _, calls := newSearchFixture()

	out, err := svc.Search(context.Background(), SearchInput{Query: "x"})
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), SearchInput{Query: "x", Limit: 10_000})
	require.NoError(t, err)

	assert.Equal(t, defaultSearchLimit, (*calls)[0].limit)
	assert.Equal(t, maxSearchLimit, (*calls)[1].limit)
	assert.Equal(t, "keyword", out.SearchType)
	assert.NotEmpty(t, out.UserSession, "a session id is generated when none is sent")
}

func TestSearchBlankQueryMatchesNothingButIsRecorded(t *testing.T) {
	svc, _, searches, _, calls := newSearchFixture()

	out, err := svc.Search(context.Background(), SearchInput{Query: "   ", SearchType: "title"})
	require.NoError(t, err)

	assert.Empty(t, *calls)
	assert.Equal(t, 0, out.TotalCount)
	assert.NotNil(t, out.Results)
	require.Len(t, searches.histories, 1)
	assert.Equal(t, 0, searches.counts[searches.histories[0].ID])
	assert.Empty(t, searches.results)
}

func TestSearchFailureReturnsError(t *testing.T) {
	svc, papers, _, pub, _ := newSearchFixture()
	papers.searchFn = func(search.Type, []string, int) ([]model.Paper, error) {
		return nil, errors.New("syntax error")
	}

	_, err := svc.Search(context.Background(), SearchInput{Query: "deep"})
	require.Error(t, err)
	assert.Empty(t, pub.events)
}

func TestSearchRejectsOversizedSession(t *testing.T) {
	svc, _, _, _, _ := newSearchFixture()

	_, err := svc.Search(context.Background(), SearchInput{Query: "deep", UserSession: strings.Repeat("s", maxSessionLen+1)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSearchHistory(t *testing.T) {
	svc, _, _, _, _ := newSearchFixture()
	for _, q := range []string{"first", "second", "third"} {
		_, err := svc.Search(context.Background(), SearchInput{Query: q, UserSession: "s1"})
		require.NoError(t, err)
	}
	_, err := svc.Search(context.Background(), SearchInput{Query: "other", UserSession: "s2"})
	require.NoError(t, err)

	history, err := svc.History(context.Background(), "s1", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "third", history[0].SearchQuery)
	assert.Equal(t, "second", history[1].SearchQuery)

	none, err := svc.History(context.Background(), "nobody", 0)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = svc.History(context.Background(), " ", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
