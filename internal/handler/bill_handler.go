package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"splittab/internal/service"
)

// BillHandler handles bill lifecycle endpoints.
type BillHandler struct {
	billService service.BillService
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billService service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

type addParticipantRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// Create handles POST /api/v1/bills
// @Summary Create a bill
// @Description Create a bill with its initial participants. The response carries the edit token required for all later mutations.
// @Tags bills
// @Accept json
// @Produce json
// @Param bill body service.CreateBillInput true "Bill to create"
// @Success 201 {object} APIResponse{data=service.CreatedBill}
// @Failure 400 {object} APIResponse
// @Router /bills [post]
func (h *BillHandler) Create(c *gin.Context) {
	var input service.CreateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	created, err := h.billService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, created)
}

// Get handles GET /api/v1/bills/:id
// @Summary Get a bill
// @Description Get the full bill graph: receipts, items, splits, participants, and payments. Expired bills return 410.
// @Tags bills
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} APIResponse{data=domain.BillSnapshot}
// @Failure 404 {object} APIResponse
// @Failure 410 {object} APIResponse
// @Router /bills/{id} [get]
func (h *BillHandler) Get(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}

	snap, err := h.billService.Get(c.Request.Context(), billID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, snap)
}

// Duplicate handles POST /api/v1/bills/:id/duplicate
// @Summary Duplicate a bill
// @Description Deep-copy a bill under fresh identifiers with a new expiry window and edit token.
// @Tags bills
// @Produce json
// @Param id path string true "Bill ID"
// @Success 201 {object} APIResponse{data=service.CreatedBill}
// @Failure 404 {object} APIResponse
// @Router /bills/{id}/duplicate [post]
func (h *BillHandler) Duplicate(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}

	created, err := h.billService.Duplicate(c.Request.Context(), billID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, created)
}

// AddParticipant handles POST /api/v1/bills/:id/participants
// @Summary Add a participant
// @Tags bills
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param participant body addParticipantRequest true "Participant name"
// @Success 201 {object} APIResponse{data=domain.Participant}
// @Failure 404 {object} APIResponse
// @Security EditToken
// @Router /bills/{id}/participants [post]
func (h *BillHandler) AddParticipant(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}

	var req addParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	p, err := h.billService.AddParticipant(c.Request.Context(), billID, req.Name)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, p)
}

// AddPayment handles POST /api/v1/bills/:id/payments
// @Summary Record a payment
// @Description Record a payment by one participant. A receipt-scoped payment replaces any earlier payment on the same receipt.
// @Tags bills
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param payment body service.AddPaymentInput true "Payment"
// @Success 201 {object} APIResponse{data=domain.Payment}
// @Failure 400 {object} APIResponse
// @Security EditToken
// @Router /bills/{id}/payments [post]
func (h *BillHandler) AddPayment(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}

	var input service.AddPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	payment, err := h.billService.AddPayment(c.Request.Context(), billID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, payment)
}
