// Package api contains the HTTP handlers and routing for the payment service.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hoyoenuno/hoyo-payments/internal/core/domain"
	"github.com/hoyoenuno/hoyo-payments/internal/core/service"
)

// Handler contains the HTTP handlers for the payment API.
type Handler struct {
	checkout  *service.CheckoutService
	reconcile *service.ReconcileService
	gateway   PaymentLookup
	logger    *slog.Logger
}

// PaymentLookup is the slice of the gateway the webhook handler needs.
type PaymentLookup interface {
	GetPayment(ctx context.Context, paymentID string) (*domain.PaymentInfo, error)
}

// NewHandler creates a new API handler.
func NewHandler(
	checkout *service.CheckoutService,
	reconcile *service.ReconcileService,
	gateway PaymentLookup,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		checkout:  checkout,
		reconcile: reconcile,
		gateway:   gateway,
		logger:    logger,
	}
}

// CreatePreferenceRequest is the JSON body for POST /payment/create_preference.
type CreatePreferenceRequest struct {
	Title         string             `json:"title"`
	Quantity      int                `json:"quantity"`
	Price         float64            `json:"price"`
	Description   string             `json:"description"`
	Cart          []domain.CartEntry `json:"cart"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	CustomerPhone string             `json:"customerPhone"`
	CustomerNotes string             `json:"customerNotes"`
}

// CreatePreferenceResponse is returned when a reservation checkout was
// created.
type CreatePreferenceResponse struct {
	Success             bool   `json:"success"`
	ID                  string `json:"id"`
	CheckoutURL         string `json:"checkout_url"`
	Reference           string `json:"reference"`
	ReservationsCreated int    `json:"reservations_created"`
}

// CreateMembershipRequest is the JSON body for POST /payment/create_membership.
type CreateMembershipRequest struct {
	MembershipType string `json:"membershipType"`
	CustomerName   string `json:"customerName"`
	CustomerEmail  string `json:"customerEmail"`
	CustomerPhone  string `json:"customerPhone"`
	CustomerNotes  string `json:"customerNotes"`
}

// MembershipPayload is the membership echo in the create_membership response.
type MembershipPayload struct {
	ID               string  `json:"id"`
	Type             string  `json:"type"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	MonthlyPrice     float64 `json:"monthly_price"`
	HoursRemaining   int     `json:"hours_remaining"`
	ClassesRemaining int     `json:"classes_remaining"`
	Status           string  `json:"status"`
}

// CreateMembershipResponse is returned when a membership checkout was created.
type CreateMembershipResponse struct {
	Success     bool              `json:"success"`
	ID          string            `json:"id"`
	CheckoutURL string            `json:"checkout_url"`
	Reference   string            `json:"reference"`
	Membership  MembershipPayload `json:"membership"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// CreatePreference handles POST /payment/create_preference.
// Stages the cart as pending reservations and returns the checkout URL.
func (h *Handler) CreatePreference(c *gin.Context) {
	var req CreatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	purchase := domain.ReservationPurchase{
		Title:       req.Title,
		Description: req.Description,
		Cart:        req.Cart,
		Customer: domain.Customer{
			Name:  req.CustomerName,
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
			Notes: req.CustomerNotes,
		},
	}

	result, err := h.checkout.CreateReservationCheckout(c.Request.Context(), purchase)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, CreatePreferenceResponse{
		Success:             true,
		ID:                  result.Session.PreferenceID,
		CheckoutURL:         result.Session.CheckoutURL,
		Reference:           result.Reference.Token,
		ReservationsCreated: result.Staged,
	})
}

// CreateMembership handles POST /payment/create_membership.
// Stages one pending membership and returns the checkout URL.
func (h *Handler) CreateMembership(c *gin.Context) {
	var req CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	purchase := domain.MembershipPurchase{
		TypeCode: req.MembershipType,
		Customer: domain.Customer{
			Name:  req.CustomerName,
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
			Notes: req.CustomerNotes,
		},
	}

	result, err := h.checkout.CreateMembershipCheckout(c.Request.Context(), purchase)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	m := result.Membership
	c.JSON(http.StatusOK, CreateMembershipResponse{
		Success:     true,
		ID:          result.Session.PreferenceID,
		CheckoutURL: result.Session.CheckoutURL,
		Reference:   result.Reference.Token,
		Membership: MembershipPayload{
			ID:               m.ID,
			Type:             m.TypeCode,
			StartDate:        m.StartDate.Format(time.DateOnly),
			EndDate:          m.EndDate.Format(time.DateOnly),
			MonthlyPrice:     m.MonthlyPrice,
			HoursRemaining:   m.HoursRemaining,
			ClassesRemaining: m.ClassesRemaining,
			Status:           m.Status,
		},
	})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "hoyo-payments",
	})
}

// handleServiceError maps domain errors to HTTP responses. Staging and
// checkout failures surface as one generic message so internal detail never
// leaks to the client.
func (h *Handler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		var svcErr *domain.ServiceError
		message := err.Error()
		if errors.As(err, &svcErr) {
			message = svcErr.Message
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "validation failed",
			Message: message,
		})
	case errors.Is(err, domain.ErrMembershipTypeNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Success: false,
			Error:   "membership type not found",
		})
	default:
		h.logger.Error("purchase request failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   "payment processing failed",
		})
	}
}
