// Package ports defines the interfaces (ports) for the booking payment
// service. These are contracts that adapters must implement.
package ports

import (
	"context"

	"github.com/hoyoenuno/hoyo-payments/internal/core/domain"
)

// PaymentGateway defines the interface for interacting with Mercado Pago.
type PaymentGateway interface {
	// CreatePreference creates a Checkout Pro preference for one purchase.
	// The returned session carries the checkout URL for the configured
	// environment.
	CreatePreference(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error)

	// GetPayment retrieves payment details by ID, used when a webhook
	// notification arrives with only a payment id.
	GetPayment(ctx context.Context, paymentID string) (*domain.PaymentInfo, error)
}

// ReservationStore persists staged reservation rows keyed by reference token.
// The transition methods return the number of rows they touched; they must
// apply their status precondition atomically with the update so that
// concurrent duplicate callbacks cannot race a read-then-write.
type ReservationStore interface {
	// CreateBatch stages all rows of one cart atomically: either every row
	// for the token exists afterwards or none do.
	CreateBatch(ctx context.Context, reservations []domain.Reservation) error

	// ConfirmPending marks all still-pending rows for the token as
	// confirmed/paid with the given payment details.
	ConfirmPending(ctx context.Context, token string, pay domain.PaymentDetails) (int64, error)

	// MarkPaymentPending records the payment id on rows that are still
	// pending, leaving their status untouched.
	MarkPaymentPending(ctx context.Context, token string, pay domain.PaymentDetails) (int64, error)

	// DeletePending removes rows for the token only while they are still
	// pending; confirmed rows are never deleted by a failure callback.
	DeletePending(ctx context.Context, token string) (int64, error)

	// DeleteByReference removes every row for the token regardless of
	// status. Used only by compensation, where rows are guaranteed pending.
	DeleteByReference(ctx context.Context, token string) (int64, error)

	// CountByReference reports how many rows exist for the token.
	CountByReference(ctx context.Context, token string) (int64, error)
}

// MembershipStore persists staged membership rows keyed by reference token,
// with the same conditional-update contract as ReservationStore.
type MembershipStore interface {
	Create(ctx context.Context, membership domain.Membership) error
	ActivatePending(ctx context.Context, token string, pay domain.PaymentDetails) (int64, error)
	MarkPaymentPending(ctx context.Context, token string, pay domain.PaymentDetails) (int64, error)
	DeletePending(ctx context.Context, token string) (int64, error)
	DeleteByReference(ctx context.Context, token string) (int64, error)
	CountByReference(ctx context.Context, token string) (int64, error)
}

// MembershipCatalog reads the externally owned membership-type catalog.
type MembershipCatalog interface {
	// FindActiveByCode returns the active catalog entry for the code, or
	// domain.ErrMembershipTypeNotFound.
	FindActiveByCode(ctx context.Context, code string) (*domain.MembershipType, error)
}
