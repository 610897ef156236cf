package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"splittab/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrBillExpired):
		return http.StatusGone, "BILL_EXPIRED", "this bill has expired"
	case errors.Is(err, domain.ErrInvalidBillMode):
		return http.StatusBadRequest, "INVALID_BILL_MODE", "bill mode must be single or multi"
	case errors.Is(err, domain.ErrInvalidSplitType):
		return http.StatusBadRequest, "INVALID_SPLIT_TYPE", "split type must be equal, fixed, percent, or quantity"
	case errors.Is(err, domain.ErrInvalidSplitValue):
		return http.StatusBadRequest, "INVALID_SPLIT_VALUE", "split value is out of range for its type"
	case errors.Is(err, domain.ErrSplitExceedsQuantity):
		return http.StatusBadRequest, "SPLIT_EXCEEDS_QUANTITY", "quantity splits exceed the item quantity"
	case errors.Is(err, domain.ErrInvalidChargeType):
		return http.StatusBadRequest, "INVALID_CHARGE_TYPE", "charge type must be tax, service, or gratuity"
	case errors.Is(err, domain.ErrInvalidDistribution):
		return http.StatusBadRequest, "INVALID_DISTRIBUTION", "distribution must be equal, proportional, custom, or none on a tax/charge item"
	case errors.Is(err, domain.ErrInvalidCustomData):
		return http.StatusBadRequest, "INVALID_CUSTOM_DATA", "custom distribution data must map participant ids to non-negative amounts"
	case errors.Is(err, domain.ErrParticipantNotOnBill):
		return http.StatusBadRequest, "PARTICIPANT_NOT_ON_BILL", "participant does not belong to this bill"
	case errors.Is(err, domain.ErrReceiptNotOnBill):
		return http.StatusBadRequest, "RECEIPT_NOT_ON_BILL", "receipt does not belong to this bill"
	case errors.Is(err, domain.ErrExportUploadFailed):
		return http.StatusInternalServerError, "EXPORT_UPLOAD_FAILED", "export upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
