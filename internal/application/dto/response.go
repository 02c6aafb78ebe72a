package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/turtacn/supplyrisk/pkg/errors"
)

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details string            `json:"details,omitempty"`
	Code    string            `json:"code,omitempty"`
	Context map[string]string `json:"context,omitempty"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Countries int               `json:"countries"`
	Sectors   int               `json:"sectors"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// NewErrorResponse converts any error into the public error body and status.
func NewErrorResponse(err error) (int, *ErrorResponse) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr.HTTPStatus, &ErrorResponse{
			Error:   appErr.StatusText(),
			Message: appErr.Message,
			Details: appErr.Description,
			Code:    string(appErr.Code),
			Context: appErr.Details,
		}
	}
	return http.StatusInternalServerError, &ErrorResponse{
		Error:   http.StatusText(http.StatusInternalServerError),
		Message: "Failed to complete risk assessment",
		Details: err.Error(),
		Code:    string(apperrors.CodeInternal),
	}
}

// SendError writes err as JSON and aborts the handler chain.
func SendError(c *gin.Context, err error) {
	status, body := NewErrorResponse(err)
	c.AbortWithStatusJSON(status, body)
}
