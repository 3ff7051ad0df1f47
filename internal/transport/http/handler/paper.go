package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"paper-summary-api/internal/app"
	"paper-summary-api/internal/model"
	"paper-summary-api/internal/transport/http/response"
)

type PaperService interface {
	Upload(ctx context.Context, input app.UploadInput) (*model.Paper, error)
	List(ctx context.Context, limit, offset int) ([]model.Paper, error)
	Get(ctx context.Context, id uint) (*model.Paper, error)
}

type PaperHandler struct {
	papers         PaperService
	maxUploadBytes int64
}

func NewPaperHandler(papers PaperService, maxUploadBytes int64) *PaperHandler {
	return &PaperHandler{papers: papers, maxUploadBytes: maxUploadBytes}
}

// Upload accepts a multipart form with a "file" PDF, summarizes and stores it.
func (h *PaperHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file")
		return
	}
	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodeFileTooLarge,
			fmt.Sprintf("file too large (max %d MB)", h.maxUploadBytes>>20))
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}
	defer f.Close()

	var src io.Reader = f
	if h.maxUploadBytes > 0 {
		src = io.LimitReader(f, h.maxUploadBytes+1)
	}
	content, err := io.ReadAll(src)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}

	paper, err := h.papers.Upload(c.Request.Context(), app.UploadInput{
		Filename: file.Filename,
		Content:  content,
	})
	if err != nil {
		writeServiceError(c, err, "paper upload")
		return
	}
	response.OK(c, paper)
}

func (h *PaperHandler) List(c *gin.Context) {
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid limit")
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid offset")
		return
	}

	papers, err := h.papers.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeServiceError(c, err, "list papers")
		return
	}
	response.OK(c, papers)
}

func (h *PaperHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		writeIDParamError(c, err)
		return
	}

	paper, err := h.papers.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "get paper")
		return
	}
	response.OK(c, paper)
}

// parseIDParam reads a positive id that fits a signed 64-bit key.
func parseIDParam(c *gin.Context, key string) (uint, error) {
	u, err := strconv.ParseUint(c.Param(key), 10, 63)
	return uint(u), err
}

// writeIDParamError answers 404 for ids too large to exist and 400 otherwise.
func writeIDParamError(c *gin.Context, err error) {
	if errors.Is(err, strconv.ErrRange) {
		response.Error(c, http.StatusNotFound, response.CodePaperNotFound, app.ErrPaperNotFound.Error())
		return
	}
	response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid paper id")
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
