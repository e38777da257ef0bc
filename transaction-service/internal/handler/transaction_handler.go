package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/salesdesk/txbrowser/shared/apperror"
	"github.com/salesdesk/txbrowser/shared/cqrs"
	"github.com/salesdesk/txbrowser/shared/middleware"
	"github.com/salesdesk/txbrowser/shared/models"
	"github.com/sirupsen/logrus"
)

// TransactionQuerier defines the read operations used by TransactionHandler.
type TransactionQuerier interface {
	ListTransactions(context.Context, cqrs.ListTransactionsQuery) (*models.PageResult, error)
	GetTransaction(context.Context, cqrs.GetTransactionQuery) (*models.TransactionRecord, error)
	ListCustomerTransactions(context.Context, cqrs.ListCustomerTransactionsQuery) (*models.PageResult, error)
}

type TransactionHandler struct {
	queries TransactionQuerier
	logger  *logrus.Logger
}

func NewTransactionHandler(queries TransactionQuerier, logger *logrus.Logger) *TransactionHandler {
	return &TransactionHandler{queries: queries, logger: logger}
}

// ListTransactions handles GET /transactions
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	result, err := h.queries.ListTransactions(c.Request.Context(), cqrs.ListTransactionsQuery{
		Params: c.Request.URL.Query(),
	})
	if err != nil {
		h.respondWithQueryError(c, err, "Failed to fetch transactions")
		return
	}
	middleware.RespondWithData(c, http.StatusOK, result, "Transactions fetched successfully")
}

// GetTransaction handles GET /transactions/:id
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	rec, err := h.queries.GetTransaction(c.Request.Context(), cqrs.GetTransactionQuery{
		TransactionID: c.Param("id"),
	})
	if err != nil {
		h.respondWithQueryError(c, err, "Failed to fetch transaction")
		return
	}
	middleware.RespondWithData(c, http.StatusOK, rec, "Transaction fetched successfully")
}

// ListCustomerTransactions handles GET /transactions/customer/:customerId
func (h *TransactionHandler) ListCustomerTransactions(c *gin.Context) {
	result, err := h.queries.ListCustomerTransactions(c.Request.Context(), cqrs.ListCustomerTransactionsQuery{
		CustomerID: c.Param("customerId"),
		Params:     c.Request.URL.Query(),
	})
	if err != nil {
		h.respondWithQueryError(c, err, "Failed to fetch customer transactions")
		return
	}
	middleware.RespondWithData(c, http.StatusOK, result, "Customer transactions fetched successfully")
}

// respondWithQueryError maps the service error kinds to statuses. Storage
// detail is logged but never sent to the client.
func (h *TransactionHandler) respondWithQueryError(c *gin.Context, err error, failureMessage string) {
	var ve *apperror.ValidationError
	switch {
	case errors.As(err, &ve):
		h.logger.WithFields(logrus.Fields{
			"request_id": middleware.GetRequestID(c),
			"param":      ve.Param,
		}).Info(ve.Message)
		middleware.RespondWithValidationError(c, ve)
	case apperror.IsNotFound(err):
		middleware.RespondWithError(c, http.StatusNotFound, "Transaction not found")
	default:
		h.logger.WithError(err).WithField("request_id", middleware.GetRequestID(c)).Error(failureMessage)
		middleware.RespondWithError(c, http.StatusInternalServerError, failureMessage)
	}
}
