// Package domain contains the core business entities for the booking payment
// service. This is the innermost layer - no external dependencies.
package domain

import "time"

// Reservation statuses.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// Payment statuses on a reservation row.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Membership statuses.
const (
	MembershipPending   = "pending"
	MembershipActive    = "active"
	MembershipCancelled = "cancelled"
)

// Customer is the buyer identity captured at staging time and forwarded to
// the payment processor as payer info.
type Customer struct {
	Name  string
	Email string
	Phone string
	Notes string
}

// CartEntry is one requested slot in a reservation purchase.
type CartEntry struct {
	ServiceID  string  `json:"serviceId"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

// Reservation is one staged (service, date, time) slot. All reservations that
// share a reference token transition together; a cart is never left partially
// confirmed.
type Reservation struct {
	ID          string
	ReferenceID string
	ServiceID   string
	Date        string
	Time        string
	Quantity    int
	Customer    Customer
	UnitPrice   float64
	TotalPrice  float64
	Status      string
	PayStatus   string
	PaymentID   string
	PaymentType string
	ConfirmedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Membership is one staged membership purchase. Start/end dates are computed
// from the catalog entry at staging time; later catalog changes do not affect
// an already-staged membership.
type Membership struct {
	ID               string
	ReferenceID      string
	Customer         Customer
	TypeCode         string
	StartDate        time.Time
	EndDate          time.Time
	MonthlyPrice     float64
	HoursRemaining   int
	ClassesRemaining int
	Status           string
	PaymentID        string
	PaymentType      string
	ActivatedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// MembershipType is a read-only catalog entry. Owned externally; the core
// only reads it when staging a membership.
type MembershipType struct {
	Code            string
	Name            string
	MonthlyPrice    float64
	DurationDays    int
	IncludedHours   int
	IncludedClasses int
	Active          bool
}

// PaymentDetails carries the processor metadata attached to records when a
// callback confirms or re-marks a purchase.
type PaymentDetails struct {
	PaymentID       string
	PaymentType     string
	Status          string
	MerchantOrderID string
}

// CheckoutRequest is what the gateway needs to create a hosted checkout
// session: one aggregate line item for the whole purchase.
type CheckoutRequest struct {
	Reference   Reference
	Title       string
	Description string
	Quantity    int
	UnitPrice   float64
	Customer    Customer
}

// CheckoutSession is the created hosted-checkout session. CheckoutURL is
// already selected for the configured environment.
type CheckoutSession struct {
	PreferenceID string
	CheckoutURL  string
}

// PaymentInfo is the processor's view of a payment, fetched when a webhook
// notification arrives.
type PaymentInfo struct {
	PaymentID         string
	Status            string
	StatusDetail      string
	ExternalReference string
	Amount            float64
	Currency          string
	PaymentMethod     string
	PaymentType       string
	PayerEmail        string
	DateApproved      time.Time
}
