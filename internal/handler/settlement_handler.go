package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"splittab/internal/service"
)

// SettlementHandler handles settlement computation endpoints.
type SettlementHandler struct {
	settlementService service.SettlementService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementService service.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementService: settlementService}
}

// Summary handles GET /api/v1/bills/:id/settlement
// @Summary Get the settlement summary
// @Description Compute per-participant standings plus the raw and optimized transfer lists.
// @Tags settlements
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} APIResponse{data=domain.SettlementSummary}
// @Failure 404 {object} APIResponse
// @Router /bills/{id}/settlement [get]
func (h *SettlementHandler) Summary(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}

	summary, err := h.settlementService.Summary(c.Request.Context(), billID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, summary)
}

// ParticipantBreakdown handles GET /api/v1/bills/:id/settlement/participants/:participantId
// @Summary Get one participant's item-by-item breakdown
// @Tags settlements
// @Produce json
// @Param id path string true "Bill ID"
// @Param participantId path string true "Participant ID"
// @Success 200 {object} APIResponse{data=domain.ParticipantBreakdown}
// @Failure 404 {object} APIResponse
// @Router /bills/{id}/settlement/participants/{participantId} [get]
func (h *SettlementHandler) ParticipantBreakdown(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}
	participantID, err := uuid.Parse(c.Param("participantId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid participant id")
		return
	}

	breakdown, err := h.settlementService.ParticipantBreakdown(c.Request.Context(), billID, participantID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, breakdown)
}

// ReceiptBreakdown handles GET /api/v1/bills/:id/settlement/receipts/:receiptId
// @Summary Get the audit view of one receipt
// @Description Echo each item's raw split configuration and the receipt's payer; no amounts are computed.
// @Tags settlements
// @Produce json
// @Param id path string true "Bill ID"
// @Param receiptId path string true "Receipt ID"
// @Success 200 {object} APIResponse{data=domain.ReceiptBreakdown}
// @Failure 404 {object} APIResponse
// @Router /bills/{id}/settlement/receipts/{receiptId} [get]
func (h *SettlementHandler) ReceiptBreakdown(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}
	receiptID, err := uuid.Parse(c.Param("receiptId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid receipt id")
		return
	}

	breakdown, err := h.settlementService.ReceiptBreakdown(c.Request.Context(), billID, receiptID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, breakdown)
}

// Share handles POST /api/v1/bills/:id/settlement/share
// @Summary Email the settlement summary
// @Tags settlements
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param share body service.ShareSummaryInput true "Recipient"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /bills/{id}/settlement/share [post]
func (h *SettlementHandler) Share(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}

	var input service.ShareSummaryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := h.settlementService.ShareSummary(c.Request.Context(), billID, input); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"sent": true})
}
