package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"paper-summary-api/internal/app"
	"paper-summary-api/internal/transport/http/response"
)

// writeServiceError maps app errors to HTTP responses. Unexpected errors are
// attached to the gin context for the request log and hidden from the client.
func writeServiceError(c *gin.Context, err error, operation string) {
	switch {
	case errors.Is(err, app.ErrPaperNotFound):
		response.Error(c, http.StatusNotFound, response.CodePaperNotFound, app.ErrPaperNotFound.Error())
	case errors.Is(err, app.ErrDuplicatePaper):
		response.Error(c, http.StatusConflict, response.CodeDuplicatePaper, app.ErrDuplicatePaper.Error())
	case errors.Is(err, app.ErrNotPDF):
		response.Error(c, http.StatusBadRequest, response.CodeNotPDF, err.Error())
	case errors.Is(err, app.ErrEmptyFile):
		response.Error(c, http.StatusBadRequest, response.CodeEmptyFile, err.Error())
	case errors.Is(err, app.ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodeFileTooLarge, err.Error())
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, operation+" failed")
	}
}
