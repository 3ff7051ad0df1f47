//go:build integration

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"paper-summary-api/internal/model"
	"paper-summary-api/internal/platform/database"
	"paper-summary-api/internal/platform/dbctx"
	"paper-summary-api/internal/platform/mysql"
	"paper-summary-api/internal/platform/postgres"
	"paper-summary-api/internal/search"
)

// openTestDB connects to PAPER_SUMMARY_TEST_DSN using PAPER_SUMMARY_TEST_DRIVER
// (mysql or postgres) and recreates the schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("PAPER_SUMMARY_TEST_DSN")
	if dsn == "" {
		t.Skip("PAPER_SUMMARY_TEST_DSN not set")
	}
	ctx := context.Background()
	pool := database.PoolOptions{MaxOpenConns: 5, MaxIdleConns: 2, ConnMaxLifetime: time.Minute}

	var (
		db  *gorm.DB
		err error
	)
	switch os.Getenv("PAPER_SUMMARY_TEST_DRIVER") {
	case "mysql":
		db, err = mysql.New(ctx, dsn, pool)
	default:
		db, err = postgres.New(ctx, dsn, pool)
	}
	require.NoError(t, err)

	migrator := db.Migrator()
	require.NoError(t, migrator.DropTable(&model.QAHistory{}, &model.SearchResult{}, &model.SearchHistory{}, &model.Paper{}))
	require.NoError(t, db.AutoMigrate(model.AllModels()...))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedPaper(t *testing.T, repo *PaperRepository, title, abstract, hash string, keywords ...string) *model.Paper {
	t.Helper()
	p := &model.Paper{
		OriginalFilename: title + ".pdf",
		Title:            title,
		Abstract:         abstract,
		Keywords:         datatypes.JSONSlice[string](append([]string{}, keywords...)),
		FileHash:         hash,
		FileSize:         100,
	}
	require.NoError(t, repo.Create(dbctx.Context{Ctx: context.Background()}, p))
	return p
}

func searchTitles(t *testing.T, repo *PaperRepository, st search.Type, query string) []string {
	t.Helper()
	papers, err := repo.Search(dbctx.Context{Ctx: context.Background()}, st, search.Terms(query), 20)
	require.NoError(t, err)
	titles := make([]string, 0, len(papers))
	for _, p := range papers {
		titles = append(titles, p.Title)
	}
	return titles
}

func TestSearchSemantics(t *testing.T) {
	db := openTestDB(t)
	repo := NewPaperRepository(db)

	seedPaper(t, repo, "Deep Learning Survey", "An overview of neural networks.", "h1", "neural networks")
	seedPaper(t, repo, "Deep Sea Biology", "Marine life study.", "h2", "Learning")
	seedPaper(t, repo, "Quantum Computing", "Qubits and gates.", "h3", "qubits")

	assert.Equal(t, []string{"Deep Learning Survey", "Deep Sea Biology"}, searchTitles(t, repo, search.TypeTitle, "deep"))
	assert.Empty(t, searchTitles(t, repo, search.TypeTitle, "quantum biology"))
	assert.Equal(t, []string{"Quantum Computing"}, searchTitles(t, repo, search.TypeTitle, "QUANTUM"))

	// keyword membership is case-insensitive and exact per element
	assert.Equal(t, []string{"Deep Learning Survey", "Deep Sea Biology"}, searchTitles(t, repo, search.TypeKeyword, "deep learning"))
	assert.Equal(t, []string{"Quantum Computing"}, searchTitles(t, repo, search.TypeKeyword, "qubits"))
	assert.Empty(t, searchTitles(t, repo, search.TypeKeyword, "deep quantum"))

	assert.Equal(t, []string{"Deep Sea Biology"}, searchTitles(t, repo, search.TypeFullText, "marine deep"))
}

func TestDuplicateHashIsRejected(t *testing.T) {
	db := openTestDB(t)
	repo := NewPaperRepository(db)

	seedPaper(t, repo, "First", "", "same-hash")
	err := repo.Create(dbctx.Context{Ctx: context.Background()}, &model.Paper{
		OriginalFilename: "copy.pdf",
		Title:            "Copy",
		Keywords:         datatypes.JSONSlice[string]{},
		FileHash:         "same-hash",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestSearchHistoryAndResults(t *testing.T) {
	db := openTestDB(t)
	papers := NewPaperRepository(db)
	searches := NewSearchRepository(db)
	tx := NewTransactor(db)
	paper := seedPaper(t, papers, "Graph Networks", "", "g1")

	var searchID uint
	err := tx.WithinTx(context.Background(), func(dbc dbctx.Context) error {
		h := &model.SearchHistory{SearchQuery: "graph", SearchType: "title", UserSession: "s1", SearchDate: time.Now()}
		if err := searches.CreateHistory(dbc, h); err != nil {
			return err
		}
		searchID = h.ID
		if err := searches.UpdateResultCount(dbc, h.ID, 1); err != nil {
			return err
		}
		return searches.CreateResults(dbc, []model.SearchResult{{SearchID: h.ID, PaperID: paper.ID, RelevanceScore: search.RelevanceScore}})
	})
	require.NoError(t, err)

	history, err := searches.ListHistoryBySession(dbctx.Context{Ctx: context.Background()}, "s1", 20)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, searchID, history[0].ID)
	assert.Equal(t, 1, history[0].ResultCount)
}
