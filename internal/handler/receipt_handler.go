package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"splittab/internal/service"
)

// ReceiptHandler handles receipt, item, split, and distribution endpoints.
type ReceiptHandler struct {
	receiptService service.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(receiptService service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

type addReceiptRequest struct {
	ImageRef *string `json:"image_ref"`
	OCRData  *string `json:"ocr_data"`
}

type addItemRequest struct {
	service.ItemInput
	Splits []service.SplitInput `json:"splits"`
}

type replaceSplitsRequest struct {
	Splits []service.SplitInput `json:"splits" binding:"required"`
}

// billReceiptIDs parses the :id and :receiptId path params.
func billReceiptIDs(c *gin.Context) (billID, receiptID uuid.UUID, ok bool) {
	var err error
	billID, err = uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return uuid.Nil, uuid.Nil, false
	}
	receiptID, err = uuid.Parse(c.Param("receiptId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid receipt id")
		return uuid.Nil, uuid.Nil, false
	}
	return billID, receiptID, true
}

// AddReceipt handles POST /api/v1/bills/:id/receipts
// @Summary Add a receipt to a bill
// @Tags receipts
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param receipt body addReceiptRequest false "Optional image reference and OCR text"
// @Success 201 {object} APIResponse{data=domain.Receipt}
// @Security EditToken
// @Router /bills/{id}/receipts [post]
func (h *ReceiptHandler) AddReceipt(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill id")
		return
	}

	var req addReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	receipt, err := h.receiptService.AddReceipt(c.Request.Context(), billID, req.ImageRef, req.OCRData)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, receipt)
}

// DeleteReceipt handles DELETE /api/v1/bills/:id/receipts/:receiptId
// @Summary Delete a receipt
// @Tags receipts
// @Produce json
// @Param id path string true "Bill ID"
// @Param receiptId path string true "Receipt ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security EditToken
// @Router /bills/{id}/receipts/{receiptId} [delete]
func (h *ReceiptHandler) DeleteReceipt(c *gin.Context) {
	billID, receiptID, ok := billReceiptIDs(c)
	if !ok {
		return
	}
	if err := h.receiptService.DeleteReceipt(c.Request.Context(), billID, receiptID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": receiptID})
}

// AddItem handles POST /api/v1/bills/:id/receipts/:receiptId/items
// @Summary Add an item to a receipt
// @Description Add an item with its initial splits. Split validation rejects unknown participants, bad values, and quantity overruns.
// @Tags receipts
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param receiptId path string true "Receipt ID"
// @Param item body addItemRequest true "Item with splits"
// @Success 201 {object} APIResponse{data=domain.Item}
// @Failure 400 {object} APIResponse
// @Security EditToken
// @Router /bills/{id}/receipts/{receiptId}/items [post]
func (h *ReceiptHandler) AddItem(c *gin.Context) {
	billID, receiptID, ok := billReceiptIDs(c)
	if !ok {
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	item, err := h.receiptService.AddItem(c.Request.Context(), billID, receiptID, req.ItemInput, req.Splits)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, item)
}

// UpdateItem handles PUT /api/v1/bills/:id/receipts/:receiptId/items/:itemId
// @Summary Update an item
// @Tags receipts
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param receiptId path string true "Receipt ID"
// @Param itemId path string true "Item ID"
// @Param item body service.ItemInput true "Item fields"
// @Success 200 {object} APIResponse{data=domain.Item}
// @Failure 404 {object} APIResponse
// @Security EditToken
// @Router /bills/{id}/receipts/{receiptId}/items/{itemId} [put]
func (h *ReceiptHandler) UpdateItem(c *gin.Context) {
	billID, receiptID, ok := billReceiptIDs(c)
	if !ok {
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid item id")
		return
	}

	var input service.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	item, err := h.receiptService.UpdateItem(c.Request.Context(), billID, receiptID, itemID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, item)
}

// DeleteItem handles DELETE /api/v1/bills/:id/receipts/:receiptId/items/:itemId
// @Summary Delete an item
// @Tags receipts
// @Produce json
// @Param id path string true "Bill ID"
// @Param receiptId path string true "Receipt ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security EditToken
// @Router /bills/{id}/receipts/{receiptId}/items/{itemId} [delete]
func (h *ReceiptHandler) DeleteItem(c *gin.Context) {
	billID, receiptID, ok := billReceiptIDs(c)
	if !ok {
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid item id")
		return
	}

	if err := h.receiptService.DeleteItem(c.Request.Context(), billID, receiptID, itemID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": itemID})
}

// ReplaceSplits handles PUT /api/v1/bills/:id/receipts/:receiptId/items/:itemId/splits
// @Summary Replace an item's splits
// @Description Replace the item's full split assignment. The list is validated as a whole.
// @Tags receipts
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param receiptId path string true "Receipt ID"
// @Param itemId path string true "Item ID"
// @Param splits body replaceSplitsRequest true "New split list"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Security EditToken
// @Router /bills/{id}/receipts/{receiptId}/items/{itemId}/splits [put]
func (h *ReceiptHandler) ReplaceSplits(c *gin.Context) {
	billID, receiptID, ok := billReceiptIDs(c)
	if !ok {
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid item id")
		return
	}

	var req replaceSplitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := h.receiptService.ReplaceSplits(c.Request.Context(), billID, receiptID, itemID, req.Splits); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"item_id": itemID})
}

// SetTaxDistribution handles PUT /api/v1/bills/:id/receipts/:receiptId/items/:itemId/distribution
// @Summary Set a tax/charge item's distribution policy
// @Tags receipts
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param receiptId path string true "Receipt ID"
// @Param itemId path string true "Item ID"
// @Param distribution body service.TaxDistributionInput true "Distribution policy"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Security EditToken
// @Router /bills/{id}/receipts/{receiptId}/items/{itemId}/distribution [put]
func (h *ReceiptHandler) SetTaxDistribution(c *gin.Context) {
	billID, receiptID, ok := billReceiptIDs(c)
	if !ok {
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid item id")
		return
	}

	var input service.TaxDistributionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := h.receiptService.SetTaxDistribution(c.Request.Context(), billID, receiptID, itemID, input); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"item_id": itemID})
}
