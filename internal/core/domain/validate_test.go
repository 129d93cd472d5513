package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoyoenuno/hoyo-payments/internal/core/domain"
)

func validReservationPurchase() domain.ReservationPurchase {
	return domain.ReservationPurchase{
		Title: "Golf simulator",
		Cart: []domain.CartEntry{
			{ServiceID: "1", Date: "2025-06-01", Time: "10:00", Quantity: 1, UnitPrice: 500, TotalPrice: 500},
		},
		Customer: domain.Customer{
			Name:  "Ana Torres",
			Email: "ana@example.com",
			Phone: "+52 33 1234 5678",
		},
	}
}

func TestReservationPurchaseValidate(t *testing.T) {
	t.Run("valid purchase passes", func(t *testing.T) {
		require.NoError(t, validReservationPurchase().Validate())
	})

	cases := []struct {
		name   string
		mutate func(*domain.ReservationPurchase)
	}{
		{"blank title", func(p *domain.ReservationPurchase) { p.Title = "   " }},
		{"empty cart", func(p *domain.ReservationPurchase) { p.Cart = nil }},
		{"entry without serviceId", func(p *domain.ReservationPurchase) { p.Cart[0].ServiceID = "" }},
		{"entry without date", func(p *domain.ReservationPurchase) { p.Cart[0].Date = "" }},
		{"entry without time", func(p *domain.ReservationPurchase) { p.Cart[0].Time = "" }},
		{"zero unit price", func(p *domain.ReservationPurchase) { p.Cart[0].UnitPrice = 0 }},
		{"negative total price", func(p *domain.ReservationPurchase) { p.Cart[0].TotalPrice = -1 }},
		{"missing customer name", func(p *domain.ReservationPurchase) { p.Customer.Name = "" }},
		{"missing customer email", func(p *domain.ReservationPurchase) { p.Customer.Email = "" }},
		{"missing customer phone", func(p *domain.ReservationPurchase) { p.Customer.Phone = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validReservationPurchase()
			tc.mutate(&p)
			err := p.Validate()
			assert.True(t, errors.Is(err, domain.ErrValidation))
		})
	}

	t.Run("second entry is validated too", func(t *testing.T) {
		p := validReservationPurchase()
		p.Cart = append(p.Cart, domain.CartEntry{ServiceID: "2", Date: "2025-06-02", UnitPrice: 300, TotalPrice: 300})
		err := p.Validate()
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})
}

func TestMembershipPurchaseValidate(t *testing.T) {
	valid := domain.MembershipPurchase{
		TypeCode: "BOGEY_PASS",
		Customer: domain.Customer{Name: "Ana", Email: "ana@example.com", Phone: "123"},
	}

	t.Run("valid purchase passes", func(t *testing.T) {
		require.NoError(t, valid.Validate())
	})

	t.Run("missing type code", func(t *testing.T) {
		p := valid
		p.TypeCode = ""
		assert.True(t, errors.Is(p.Validate(), domain.ErrValidation))
	})

	t.Run("missing customer email", func(t *testing.T) {
		p := valid
		p.Customer.Email = ""
		assert.True(t, errors.Is(p.Validate(), domain.ErrValidation))
	})
}

func TestTotalAmount(t *testing.T) {
	p := validReservationPurchase()
	p.Cart = append(p.Cart, domain.CartEntry{ServiceID: "2", Date: "d", Time: "t", UnitPrice: 250, TotalPrice: 750})
	assert.Equal(t, 1250.0, p.TotalAmount())
}
