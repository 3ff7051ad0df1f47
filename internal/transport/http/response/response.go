package response

import "github.com/gin-gonic/gin"

const (
	CodeBadRequest     = 40000
	CodeNotPDF         = 40001
	CodeEmptyFile      = 40002
	CodePaperNotFound  = 40401
	CodeDuplicatePaper = 40901
	CodeFileTooLarge   = 41301
	CodeInternalServer = 50000
	CodeUnavailable    = 50300
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Detail string `json:"detail"`
	Code   int    `json:"code"`
}

// OK writes data as the response body.
func OK(c *gin.Context, data interface{}) {
	c.JSON(200, data)
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorBody{
		Detail: message,
		Code:   code,
	})
}
