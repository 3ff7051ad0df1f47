package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"paper-summary-api/internal/app"
	"paper-summary-api/internal/model"
	"paper-summary-api/internal/transport/http/response"
)

type QAService interface {
	Ask(ctx context.Context, input app.AskInput) (*model.QAHistory, error)
	History(ctx context.Context, paperID uint, limit int) ([]model.QAHistory, error)
}

type QuestionHandler struct {
	qa QAService
}

type QuestionRequest struct {
	PaperID     uint   `json:"paper_id" binding:"required"`
	Question    string `json:"question" binding:"required"`
	UserSession string `json:"user_session"`
}

func NewQuestionHandler(qa QAService) *QuestionHandler {
	return &QuestionHandler{qa: qa}
}

func (h *QuestionHandler) Ask(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	record, err := h.qa.Ask(c.Request.Context(), app.AskInput{
		PaperID:     req.PaperID,
		Question:    req.Question,
		UserSession: req.UserSession,
	})
	if err != nil {
		writeServiceError(c, err, "answer question")
		return
	}
	response.OK(c, record)
}

func (h *QuestionHandler) History(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		writeIDParamError(c, err)
		return
	}
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid limit")
		return
	}

	list, err := h.qa.History(c.Request.Context(), id, limit)
	if err != nil {
		writeServiceError(c, err, "question history")
		return
	}
	response.OK(c, list)
}
