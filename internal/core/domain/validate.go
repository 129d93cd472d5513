package domain

import (
	"fmt"
	"strings"
)

// ReservationPurchase is a validated request to stage and check out a cart of
// reservation slots.
type ReservationPurchase struct {
	Title       string
	Description string
	Cart        []CartEntry
	Customer    Customer
}

// MembershipPurchase is a validated request to stage and check out one
// membership.
type MembershipPurchase struct {
	TypeCode string
	Customer Customer
}

// Validate checks the staging rules for a reservation purchase. A non-nil
// error means nothing may be persisted.
func (p ReservationPurchase) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return NewServiceError(ErrValidation, "title is required", "VALIDATION_ERROR")
	}
	if len(p.Cart) == 0 {
		return NewServiceError(ErrValidation, "cart must contain at least one entry", "VALIDATION_ERROR")
	}
	for i, entry := range p.Cart {
		if strings.TrimSpace(entry.ServiceID) == "" {
			return NewServiceError(ErrValidation,
				fmt.Sprintf("cart entry %d: serviceId is required", i), "VALIDATION_ERROR")
		}
		if strings.TrimSpace(entry.Date) == "" {
			return NewServiceError(ErrValidation,
				fmt.Sprintf("cart entry %d: date is required", i), "VALIDATION_ERROR")
		}
		if strings.TrimSpace(entry.Time) == "" {
			return NewServiceError(ErrValidation,
				fmt.Sprintf("cart entry %d: time is required", i), "VALIDATION_ERROR")
		}
		if entry.UnitPrice <= 0 || entry.TotalPrice <= 0 {
			return NewServiceError(ErrValidation,
				fmt.Sprintf("cart entry %d: price must be greater than zero", i), "VALIDATION_ERROR")
		}
	}
	return p.Customer.validate()
}

// Validate checks the staging rules for a membership purchase. Whether the
// type code names an active catalog entry is checked against the catalog at
// staging time, not here.
func (p MembershipPurchase) Validate() error {
	if strings.TrimSpace(p.TypeCode) == "" {
		return NewServiceError(ErrValidation, "membershipType is required", "VALIDATION_ERROR")
	}
	return p.Customer.validate()
}

func (c Customer) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewServiceError(ErrValidation, "customer name is required", "VALIDATION_ERROR")
	}
	if strings.TrimSpace(c.Email) == "" {
		return NewServiceError(ErrValidation, "customer email is required", "VALIDATION_ERROR")
	}
	if strings.TrimSpace(c.Phone) == "" {
		return NewServiceError(ErrValidation, "customer phone is required", "VALIDATION_ERROR")
	}
	return nil
}

// TotalAmount sums the cart's line totals into the single aggregate amount
// sent to the processor.
func (p ReservationPurchase) TotalAmount() float64 {
	var total float64
	for _, entry := range p.Cart {
		total += entry.TotalPrice
	}
	return total
}
