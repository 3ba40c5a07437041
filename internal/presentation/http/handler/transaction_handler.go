package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sangkips/salay-pos/internal/application/service"
	"github.com/sangkips/salay-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/salay-pos/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
	receiptService     *service.ReceiptService
	exportService      *service.ExportService
	log                *zap.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	transactionService *service.TransactionService,
	receiptService *service.ReceiptService,
	exportService *service.ExportService,
	log *zap.Logger,
) *TransactionHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &TransactionHandler{
		transactionService: transactionService,
		receiptService:     receiptService,
		exportService:      exportService,
		log:                log,
	}
}

// Create handles saving a new transaction
// @Summary Create transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay protection key"
// @Success 201 {object} entity.Transaction
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req request.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	h.log.Debug("transaction created", zap.Uint("id", txn.ID), zap.String("clerk", GetClerk(c)))
	response.Created(c, txn)
}

// List handles the history listing
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param date query string false "Business date (YYYY-MM-DD)"
// @Param search query string false "Customer name contains"
// @Success 200 {object} entity.DayListing
// @Router /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	listing, err := h.transactionService.ListTransactions(c.Request.Context(), c.Query("date"), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, listing)
}

// Get handles fetching one transaction
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} entity.Transaction
// @Failure 404 {object} response.ErrorResponse
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, service.MsgTransactionNotFound)
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, txn)
}

// Receipt serves the printable HTML e-receipt
func (h *TransactionHandler) Receipt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, service.MsgTransactionNotFound)
		return
	}

	page, err := h.receiptService.RenderHTML(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// Email sends the e-receipt to the customer
func (h *TransactionHandler) Email(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, service.MsgTransactionNotFound)
		return
	}

	// The body is optional; without it the saved contact is used.
	var req request.EmailReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid e-mail address")
		return
	}

	to, err := h.receiptService.EmailReceipt(c.Request.Context(), id, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{
		"message": "E-receipt sent.",
		"to":      to,
	})
}

// Export downloads the day's transactions as a workbook
// @Summary Export day
// @Tags transactions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param date query string false "Business date (YYYY-MM-DD)"
// @Router /transactions/export [get]
func (h *TransactionHandler) Export(c *gin.Context) {
	data, filename, err := h.exportService.DailyWorkbook(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
