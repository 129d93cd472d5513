package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoyoenuno/hoyo-payments/internal/core/domain"
)

func TestNewReference(t *testing.T) {
	t.Run("reservation tokens carry the reservation prefix", func(t *testing.T) {
		ref := domain.NewReference(domain.KindReservation)
		assert.Equal(t, domain.KindReservation, ref.Kind)
		assert.True(t, strings.HasPrefix(ref.Token, "reservation-"))
	})

	t.Run("membership tokens carry the membership prefix", func(t *testing.T) {
		ref := domain.NewReference(domain.KindMembership)
		assert.Equal(t, domain.KindMembership, ref.Kind)
		assert.True(t, strings.HasPrefix(ref.Token, "membership-"))
	})

	t.Run("tokens are unique across invocations", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			ref := domain.NewReference(domain.KindReservation)
			require.False(t, seen[ref.Token], "token %s issued twice", ref.Token)
			seen[ref.Token] = true
		}
	})
}

func TestParseReference(t *testing.T) {
	t.Run("round trips both kinds", func(t *testing.T) {
		for _, kind := range []domain.PurchaseKind{domain.KindReservation, domain.KindMembership} {
			issued := domain.NewReference(kind)
			parsed, err := domain.ParseReference(issued.Token)
			require.NoError(t, err)
			assert.Equal(t, issued, parsed)
		}
	})

	t.Run("rejects unknown prefixes", func(t *testing.T) {
		for _, token := range []string{"", "order-123", "reservations-123", "RESERVATION-123"} {
			_, err := domain.ParseReference(token)
			assert.True(t, errors.Is(err, domain.ErrValidation), "token %q", token)
		}
	})
}
