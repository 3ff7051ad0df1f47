package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"paper-summary-api/internal/app"
	"paper-summary-api/internal/model"
	"paper-summary-api/internal/transport/http/handler"
)

type stubPapers struct{}

func (stubPapers) Upload(context.Context, app.UploadInput) (*model.Paper, error) {
	return nil, app.ErrNotPDF
}

func (stubPapers) List(context.Context, int, int) ([]model.Paper, error) {
	return []model.Paper{}, nil
}

func (stubPapers) Get(context.Context, uint) (*model.Paper, error) {
	return nil, app.ErrPaperNotFound
}

type stubSearches struct{}

func (stubSearches) Search(_ context.Context, in app.SearchInput) (*app.SearchOutput, error) {
	return &app.SearchOutput{Query: in.Query, Results: []app.SearchResultItem{}}, nil
}

func (stubSearches) History(context.Context, string, int) ([]model.SearchHistory, error) {
	return []model.SearchHistory{}, nil
}

type stubQA struct{}

func (stubQA) Ask(context.Context, app.AskInput) (*model.QAHistory, error) {
	return nil, app.ErrPaperNotFound
}

func (stubQA) History(context.Context, uint, int) ([]model.QAHistory, error) {
	return []model.QAHistory{}, nil
}

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, Handlers{
		Health:   handler.NewHealthHandler("paper-summary-api", "test", "1.0.0", time.Now(), nil),
		Paper:    handler.NewPaperHandler(stubPapers{}, 1<<20),
		Search:   handler.NewSearchHandler(stubSearches{}),
		Question: handler.NewQuestionHandler(stubQA{}),
	})

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/papers", http.StatusOK},
		{http.MethodGet, "/papers/12", http.StatusNotFound},
		{http.MethodGet, "/papers/12/questions", http.StatusOK},
		{http.MethodGet, "/search-history?user_session=s", http.StatusOK},
		{http.MethodPost, "/upload-paper", http.StatusBadRequest},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.want, w.Code, "%s %s", tt.method, tt.path)
	}
}
