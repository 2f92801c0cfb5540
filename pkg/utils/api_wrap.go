package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service sentinel errors onto HTTP statuses.
// Anything unrecognized is reported as a 500 without internal detail.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidOtpToken):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrGroupNotFound),
		errors.Is(err, ErrMemberNotFound),
		errors.Is(err, ErrExpenseNotFound),
		errors.Is(err, ErrParticipantNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotGroupAdmin),
		errors.Is(err, ErrNotAuthorizedForGroup),
		errors.Is(err, ErrGroupLimitExceeded),
		errors.Is(err, ErrMemberLimitExceeded),
		errors.Is(err, ErrTrialExpired),
		errors.Is(err, ErrSubscriptionExpired),
		errors.Is(err, ErrSubscriptionBlocked):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrAlreadyVerified),
		errors.Is(err, ErrDuplicateMember),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidDescription),
		errors.Is(err, ErrInvalidShareSum),
		errors.Is(err, ErrAlreadySettled),
		errors.Is(err, ErrSettlementAmountMismatch):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrFeeProcessingFailed):
		log.Printf("Settlement fee error: %v", err)
		RespondError(c, http.StatusInternalServerError, err.Error())
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
