package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoyoenuno/hoyo-payments/internal/core/domain"
	"github.com/hoyoenuno/hoyo-payments/internal/pkg/errs"
)

// MembershipCatalog implements ports.MembershipCatalog on the read-only
// membership_types table.
type MembershipCatalog struct {
	pool *pgxpool.Pool
}

// NewMembershipCatalog creates a new catalog reader.
func NewMembershipCatalog(pool *pgxpool.Pool) *MembershipCatalog {
	return &MembershipCatalog{pool: pool}
}

// FindActiveByCode returns the active catalog entry for the code.
func (c *MembershipCatalog) FindActiveByCode(ctx context.Context, code string) (*domain.MembershipType, error) {
	var mt domain.MembershipType
	err := c.pool.QueryRow(ctx, `
		SELECT code, name, monthly_price, duration_days,
		       included_hours, included_classes, active
		FROM membership_types
		WHERE code = $1 AND active = true`,
		code,
	).Scan(&mt.Code, &mt.Name, &mt.MonthlyPrice, &mt.DurationDays,
		&mt.IncludedHours, &mt.IncludedClasses, &mt.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewServiceError(domain.ErrMembershipTypeNotFound,
			"no active membership type with code "+code, "MEMBERSHIP_TYPE_NOT_FOUND")
	}
	if err != nil {
		return nil, errs.Wrapf(err, "failed to look up membership type %s", code)
	}
	return &mt, nil
}
