// Package service implements the core business logic.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hoyoenuno/hoyo-payments/internal/core/domain"
	"github.com/hoyoenuno/hoyo-payments/internal/core/ports"
)

// CheckoutService stages purchases and creates hosted-checkout sessions for
// them. When the processor call fails after staging, the staged rows are
// rolled back before the error propagates.
type CheckoutService struct {
	gateway      ports.PaymentGateway
	reservations ports.ReservationStore
	memberships  ports.MembershipStore
	catalog      ports.MembershipCatalog
	timeout      time.Duration
	logger       *slog.Logger
}

// NewCheckoutService creates a new checkout service. timeout bounds the
// external processor call.
func NewCheckoutService(
	gateway ports.PaymentGateway,
	reservations ports.ReservationStore,
	memberships ports.MembershipStore,
	catalog ports.MembershipCatalog,
	timeout time.Duration,
	logger *slog.Logger,
) *CheckoutService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutService{
		gateway:      gateway,
		reservations: reservations,
		memberships:  memberships,
		catalog:      catalog,
		timeout:      timeout,
		logger:       logger,
	}
}

// ReservationCheckout is the result of staging a cart and creating its
// checkout session.
type ReservationCheckout struct {
	Reference domain.Reference
	Session   *domain.CheckoutSession
	Staged    int
}

// MembershipCheckout is the result of staging a membership and creating its
// checkout session.
type MembershipCheckout struct {
	Reference  domain.Reference
	Session    *domain.CheckoutSession
	Membership domain.Membership
}

// CreateReservationCheckout validates the purchase, stages one pending row
// per cart entry under a fresh reference token, and asks the processor for a
// checkout URL tagged with that token.
func (s *CheckoutService) CreateReservationCheckout(ctx context.Context, purchase domain.ReservationPurchase) (*ReservationCheckout, error) {
	if err := purchase.Validate(); err != nil {
		return nil, err
	}

	ref := domain.NewReference(domain.KindReservation)
	now := time.Now().UTC()

	rows := make([]domain.Reservation, len(purchase.Cart))
	for i, entry := range purchase.Cart {
		quantity := entry.Quantity
		if quantity < 1 {
			quantity = 1
		}
		rows[i] = domain.Reservation{
			ID:          uuid.NewString(),
			ReferenceID: ref.Token,
			ServiceID:   entry.ServiceID,
			Date:        entry.Date,
			Time:        entry.Time,
			Quantity:    quantity,
			Customer:    purchase.Customer,
			UnitPrice:   entry.UnitPrice,
			TotalPrice:  entry.TotalPrice,
			Status:      domain.ReservationPending,
			PayStatus:   domain.PaymentPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	if err := s.reservations.CreateBatch(ctx, rows); err != nil {
		s.logger.Error("failed to stage reservations",
			"reference", ref.Token, "entries", len(rows), "error", err)
		return nil, domain.NewServiceError(domain.ErrStaging,
			"failed to stage reservations", "STAGING_ERROR")
	}

	description := purchase.Description
	if description == "" {
		description = "Reservation of " + purchase.Title
	}
	session, err := s.createSession(ctx, domain.CheckoutRequest{
		Reference:   ref,
		Title:       purchase.Title,
		Description: description,
		Quantity:    1,
		UnitPrice:   purchase.TotalAmount(),
		Customer:    purchase.Customer,
	})
	if err != nil {
		s.compensate(ctx, ref, s.reservations.DeleteByReference)
		return nil, err
	}

	s.logger.Info("reservation checkout created",
		"reference", ref.Token, "preference_id", session.PreferenceID, "entries", len(rows))

	return &ReservationCheckout{Reference: ref, Session: session, Staged: len(rows)}, nil
}

// CreateMembershipCheckout validates the purchase, resolves the membership
// type against the catalog, stages one pending membership with dates derived
// from the catalog entry at staging time, and creates its checkout session.
func (s *CheckoutService) CreateMembershipCheckout(ctx context.Context, purchase domain.MembershipPurchase) (*MembershipCheckout, error) {
	if err := purchase.Validate(); err != nil {
		return nil, err
	}

	mt, err := s.catalog.FindActiveByCode(ctx, purchase.TypeCode)
	if err != nil {
		return nil, err
	}

	ref := domain.NewReference(domain.KindMembership)
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	membership := domain.Membership{
		ID:               uuid.NewString(),
		ReferenceID:      ref.Token,
		Customer:         purchase.Customer,
		TypeCode:         mt.Code,
		StartDate:        start,
		EndDate:          start.AddDate(0, 0, mt.DurationDays),
		MonthlyPrice:     mt.MonthlyPrice,
		HoursRemaining:   mt.IncludedHours,
		ClassesRemaining: mt.IncludedClasses,
		Status:           domain.MembershipPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.memberships.Create(ctx, membership); err != nil {
		s.logger.Error("failed to stage membership",
			"reference", ref.Token, "type", mt.Code, "error", err)
		return nil, domain.NewServiceError(domain.ErrStaging,
			"failed to stage membership", "STAGING_ERROR")
	}

	session, err := s.createSession(ctx, domain.CheckoutRequest{
		Reference:   ref,
		Title:       mt.Name + " membership",
		Description: "Monthly membership " + mt.Name,
		Quantity:    1,
		UnitPrice:   mt.MonthlyPrice,
		Customer:    purchase.Customer,
	})
	if err != nil {
		s.compensate(ctx, ref, s.memberships.DeleteByReference)
		return nil, err
	}

	s.logger.Info("membership checkout created",
		"reference", ref.Token, "preference_id", session.PreferenceID, "type", mt.Code)

	return &MembershipCheckout{Reference: ref, Session: session, Membership: membership}, nil
}

func (s *CheckoutService) createSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	gwCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	session, err := s.gateway.CreatePreference(gwCtx, req)
	if err != nil {
		s.logger.Error("failed to create checkout preference",
			"reference", req.Reference.Token, "error", err)
		return nil, domain.NewServiceError(domain.ErrCheckoutCreation,
			"failed to create checkout session", "CHECKOUT_ERROR")
	}
	return session, nil
}

// compensate rolls back staged rows after a failed checkout creation. The
// rows are guaranteed still pending: no callback can have fired before a
// checkout URL existed. A failed delete is logged, not retried, and never
// masks the checkout error.
func (s *CheckoutService) compensate(ctx context.Context, ref domain.Reference, deleteAll func(context.Context, string) (int64, error)) {
	deleted, err := deleteAll(context.WithoutCancel(ctx), ref.Token)
	if err != nil {
		s.logger.Error("compensation failed, staged records left behind",
			"reference", ref.Token, "error", err)
		return
	}
	s.logger.Warn("checkout creation failed, staged records rolled back",
		"reference", ref.Token, "deleted", deleted)
}
