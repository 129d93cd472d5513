package domain

import (
	"strings"

	"github.com/google/uuid"
)

// PurchaseKind identifies what a reference token was issued for.
type PurchaseKind string

const (
	KindReservation PurchaseKind = "reservation"
	KindMembership  PurchaseKind = "membership"
)

// Prefix returns the token prefix for this kind.
func (k PurchaseKind) Prefix() string {
	return string(k)
}

// Reference correlates a staged purchase with its payment outcome.
// The kind is decoded once when the token crosses the boundary; everything
// downstream routes on Kind instead of re-inspecting the string.
type Reference struct {
	Kind  PurchaseKind
	Token string
}

// NewReference issues a fresh reference token for one purchase attempt.
// Tokens are never reused.
func NewReference(kind PurchaseKind) Reference {
	return Reference{
		Kind:  kind,
		Token: kind.Prefix() + "-" + uuid.NewString(),
	}
}

// ParseReference decodes an incoming token back into a typed reference.
func ParseReference(token string) (Reference, error) {
	switch {
	case strings.HasPrefix(token, KindReservation.Prefix()+"-"):
		return Reference{Kind: KindReservation, Token: token}, nil
	case strings.HasPrefix(token, KindMembership.Prefix()+"-"):
		return Reference{Kind: KindMembership, Token: token}, nil
	}
	return Reference{}, NewServiceError(ErrValidation,
		"unrecognized reference token: "+token, "INVALID_REFERENCE")
}
