package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"paper-summary-api/internal/app"
	"paper-summary-api/internal/model"
	"paper-summary-api/internal/transport/http/response"
)

type SearchService interface {
	Search(ctx context.Context, input app.SearchInput) (*app.SearchOutput, error)
	History(ctx context.Context, session string, limit int) ([]model.SearchHistory, error)
}

type SearchHandler struct {
	searches SearchService
}

type SearchRequest struct {
	Query       string `json:"query"`
	SearchType  string `json:"search_type"`
	Limit       int    `json:"limit" binding:"min=0"`
	UserSession string `json:"user_session"`
}

func NewSearchHandler(searches SearchService) *SearchHandler {
	return &SearchHandler{searches: searches}
}

func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	out, err := h.searches.Search(c.Request.Context(), app.SearchInput{
		Query:       req.Query,
		SearchType:  req.SearchType,
		Limit:       req.Limit,
		UserSession: req.UserSession,
	})
	if err != nil {
		writeServiceError(c, err, "search")
		return
	}
	response.OK(c, out)
}

// History lists recent searches for the user_session query parameter.
func (h *SearchHandler) History(c *gin.Context) {
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid limit")
		return
	}
	list, err := h.searches.History(c.Request.Context(), c.Query("user_session"), limit)
	if err != nil {
		writeServiceError(c, err, "search history")
		return
	}
	response.OK(c, list)
}
