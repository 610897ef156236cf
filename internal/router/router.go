package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "splittab/docs"
	"splittab/internal/handler"
	"splittab/internal/middleware"
	"splittab/internal/service"
)

// Setup configures the Gin engine with all routes and middleware. Read routes
// are public; anything that mutates a bill requires its edit token.
func Setup(
	tokens service.TokenService,
	allowedOrigins []string,
	billH *handler.BillHandler,
	receiptH *handler.ReceiptHandler,
	settlementH *handler.SettlementHandler,
	exportH *handler.ExportHandler,
	detailH *handler.PaymentDetailHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	bills := v1.Group("/bills")
	bills.POST("", billH.Create)
	bills.GET("/:id", billH.Get)
	bills.POST("/:id/duplicate", billH.Duplicate)

	// Read-only settlement views
	bills.GET("/:id/settlement", settlementH.Summary)
	bills.GET("/:id/settlement/participants/:participantId", settlementH.ParticipantBreakdown)
	bills.GET("/:id/settlement/receipts/:receiptId", settlementH.ReceiptBreakdown)
	bills.POST("/:id/settlement/share", settlementH.Share)

	// Exports
	bills.GET("/:id/export/csv", exportH.CSV)
	bills.GET("/:id/export/xlsx", exportH.XLSX)
	bills.POST("/:id/export/archive", exportH.Archive)

	// Payout accounts (list is public, mutations need the edit token)
	bills.GET("/:id/participants/:participantId/payment-details", detailH.List)

	// Mutations - require the bill's edit token
	edit := v1.Group("/bills")
	edit.Use(middleware.EditToken(tokens))
	edit.POST("/:id/participants", billH.AddParticipant)
	edit.POST("/:id/payments", billH.AddPayment)
	edit.POST("/:id/receipts", receiptH.AddReceipt)
	edit.DELETE("/:id/receipts/:receiptId", receiptH.DeleteReceipt)
	edit.POST("/:id/receipts/:receiptId/items", receiptH.AddItem)
	edit.PUT("/:id/receipts/:receiptId/items/:itemId", receiptH.UpdateItem)
	edit.DELETE("/:id/receipts/:receiptId/items/:itemId", receiptH.DeleteItem)
	edit.PUT("/:id/receipts/:receiptId/items/:itemId/splits", receiptH.ReplaceSplits)
	edit.PUT("/:id/receipts/:receiptId/items/:itemId/distribution", receiptH.SetTaxDistribution)
	edit.POST("/:id/participants/:participantId/payment-details", detailH.Add)
	edit.PUT("/:id/participants/:participantId/payment-details/:detailId/primary", detailH.SetPrimary)
	edit.DELETE("/:id/participants/:participantId/payment-details/:detailId", detailH.Delete)

	return r
}
