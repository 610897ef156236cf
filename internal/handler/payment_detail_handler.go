package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"splittab/internal/service"
)

// PaymentDetailHandler handles participant payout account endpoints.
type PaymentDetailHandler struct {
	detailService service.PaymentDetailService
}

// NewPaymentDetailHandler creates a new PaymentDetailHandler.
func NewPaymentDetailHandler(detailService service.PaymentDetailService) *PaymentDetailHandler {
	return &PaymentDetailHandler{detailService: detailService}
}

func billParticipantIDs(c *gin.Context) (billID, participantID uuid.UUID, ok bool) {
	var err error
	billID, err = uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return uuid.Nil, uuid.Nil, false
	}
	participantID, err = uuid.Parse(c.Param("participantId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid participant id")
		return uuid.Nil, uuid.Nil, false
	}
	return billID, participantID, true
}

// Add handles POST /api/v1/bills/:id/participants/:participantId/payment-details
// @Summary Add a payout account for a participant
// @Tags payment-details
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param participantId path string true "Participant ID"
// @Param detail body service.PaymentDetailInput true "Payout account"
// @Success 201 {object} APIResponse{data=domain.PaymentDetail}
// @Failure 404 {object} APIResponse
// @Security EditToken
// @Router /bills/{id}/participants/{participantId}/payment-details [post]
func (h *PaymentDetailHandler) Add(c *gin.Context) {
	billID, participantID, ok := billParticipantIDs(c)
	if !ok {
		return
	}

	var input service.PaymentDetailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	detail, err := h.detailService.Add(c.Request.Context(), billID, participantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, detail)
}

// List handles GET /api/v1/bills/:id/participants/:participantId/payment-details
// @Summary List a participant's payout accounts
// @Tags payment-details
// @Produce json
// @Param id path string true "Bill ID"
// @Param participantId path string true "Participant ID"
// @Success 200 {object} APIResponse{data=[]domain.PaymentDetail}
// @Failure 404 {object} APIResponse
// @Router /bills/{id}/participants/{participantId}/payment-details [get]
func (h *PaymentDetailHandler) List(c *gin.Context) {
	billID, participantID, ok := billParticipantIDs(c)
	if !ok {
		return
	}

	details, err := h.detailService.List(c.Request.Context(), billID, participantID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, details)
}

// SetPrimary handles PUT /api/v1/bills/:id/participants/:participantId/payment-details/:detailId/primary
// @Summary Mark a payout account as primary
// @Tags payment-details
// @Produce json
// @Param id path string true "Bill ID"
// @Param participantId path string true "Participant ID"
// @Param detailId path string true "Payment detail ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security EditToken
// @Router /bills/{id}/participants/{participantId}/payment-details/{detailId}/primary [put]
func (h *PaymentDetailHandler) SetPrimary(c *gin.Context) {
	billID, participantID, ok := billParticipantIDs(c)
	if !ok {
		return
	}
	detailID, err := uuid.Parse(c.Param("detailId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid payment detail id")
		return
	}

	if err := h.detailService.SetPrimary(c.Request.Context(), billID, participantID, detailID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"primary": detailID})
}

// Delete handles DELETE /api/v1/bills/:id/participants/:participantId/payment-details/:detailId
// @Summary Delete a payout account
// @Tags payment-details
// @Produce json
// @Param id path string true "Bill ID"
// @Param participantId path string true "Participant ID"
// @Param detailId path string true "Payment detail ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security EditToken
// @Router /bills/{id}/participants/{participantId}/payment-details/{detailId} [delete]
func (h *PaymentDetailHandler) Delete(c *gin.Context) {
	billID, participantID, ok := billParticipantIDs(c)
	if !ok {
		return
	}
	detailID, err := uuid.Parse(c.Param("detailId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid payment detail id")
		return
	}

	if err := h.detailService.Delete(c.Request.Context(), billID, participantID, detailID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": detailID})
}
