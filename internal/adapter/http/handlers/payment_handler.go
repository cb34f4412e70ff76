package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	response "github.com/TenaciousFoxy/payment-history-service/internal/adapter/http/dto/response"
	"github.com/TenaciousFoxy/payment-history-service/internal/usecase"
	"github.com/TenaciousFoxy/payment-history-service/pkg"

	"github.com/gin-gonic/gin"
)

const defaultLatestLimit = 10

// PaymentHandler handles HTTP requests for stored payments.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// FetchAndSave fetches one payment from the source and persists it.
//
// A dedup hit is a success: the response still carries the candidate record.
func (h *PaymentHandler) FetchAndSave(c *gin.Context) {
	log.Printf("[payment][handler] fetch-and-save start")

	saved, err := h.usecase.FetchAndSave(c.Request.Context())
	if err != nil {
		log.Printf("[payment][handler] fetch-and-save failed err=%v", err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] fetch-and-save success transaction_id=%s", saved.TransactionID)

	c.JSON(http.StatusCreated, response.FromPayment(saved))
}

// GetLatest returns the most recent payments, newest first.
func (h *PaymentHandler) GetLatest(c *gin.Context) {
	limitParam := c.DefaultQuery("limit", strconv.Itoa(defaultLatestLimit))
	limit, err := strconv.Atoi(limitParam)
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid limit", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	payments, err := h.usecase.GetLatest(c.Request.Context(), limit)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// GetAll returns every stored payment, unordered.
func (h *PaymentHandler) GetAll(c *gin.Context) {
	payments, err := h.usecase.GetAll(c.Request.Context())
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// GetByID returns one payment by its UUID.
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	p, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(p))
}

// GetByStatus returns payments in the given processing state.
func (h *PaymentHandler) GetByStatus(c *gin.Context) {
	payments, err := h.usecase.GetByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// GetByPayerEmail returns payments made by one payer.
func (h *PaymentHandler) GetByPayerEmail(c *gin.Context) {
	payments, err := h.usecase.GetByPayerEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(payments))
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentID), errors.Is(err, usecase.ErrInvalidLimit),
		errors.Is(err, usecase.ErrInvalidStatus), errors.Is(err, usecase.ErrInvalidPayerEmail):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
