package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoyoenuno/hoyo-payments/internal/core/domain"
	"github.com/hoyoenuno/hoyo-payments/internal/pkg/errs"
)

// MembershipStore implements ports.MembershipStore on the memberships table.
type MembershipStore struct {
	pool *pgxpool.Pool
}

// NewMembershipStore creates a new membership store.
func NewMembershipStore(pool *pgxpool.Pool) *MembershipStore {
	return &MembershipStore{pool: pool}
}

// Create stages one pending membership.
func (s *MembershipStore) Create(ctx context.Context, m domain.Membership) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO memberships (
			id, reference_id, customer_name, customer_email, customer_phone, notes,
			type_code, start_date, end_date, monthly_price,
			hours_remaining, classes_remaining, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)`,
		m.ID, m.ReferenceID, m.Customer.Name, m.Customer.Email, m.Customer.Phone, m.Customer.Notes,
		m.TypeCode, m.StartDate, m.EndDate, m.MonthlyPrice,
		m.HoursRemaining, m.ClassesRemaining, m.Status, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return errs.Wrapf(err, "failed to stage membership for reference %s", m.ReferenceID)
	}
	return nil
}

// ActivatePending activates the membership if it is still pending.
func (s *MembershipStore) ActivatePending(ctx context.Context, token string, pay domain.PaymentDetails) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE memberships
		SET status = $1,
		    payment_id = $2,
		    payment_type = $3,
		    activated_at = now(),
		    updated_at = now()
		WHERE reference_id = $4 AND status = $5`,
		domain.MembershipActive, pay.PaymentID, pay.PaymentType,
		token, domain.MembershipPending,
	)
	if err != nil {
		return 0, errs.Wrapf(err, "failed to activate membership for reference %s", token)
	}
	return tag.RowsAffected(), nil
}

// MarkPaymentPending stamps the payment id while the membership is pending.
func (s *MembershipStore) MarkPaymentPending(ctx context.Context, token string, pay domain.PaymentDetails) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE memberships
		SET payment_id = $1,
		    payment_type = $2,
		    updated_at = now()
		WHERE reference_id = $3 AND status = $4`,
		pay.PaymentID, pay.PaymentType, token, domain.MembershipPending,
	)
	if err != nil {
		return 0, errs.Wrapf(err, "failed to mark membership pending for reference %s", token)
	}
	return tag.RowsAffected(), nil
}

// DeletePending removes the membership only while it is still pending.
func (s *MembershipStore) DeletePending(ctx context.Context, token string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM memberships
		WHERE reference_id = $1 AND status = $2`,
		token, domain.MembershipPending,
	)
	if err != nil {
		return 0, errs.Wrapf(err, "failed to delete pending membership for reference %s", token)
	}
	return tag.RowsAffected(), nil
}

// DeleteByReference removes the membership regardless of status.
// Compensation only.
func (s *MembershipStore) DeleteByReference(ctx context.Context, token string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM memberships WHERE reference_id = $1`, token)
	if err != nil {
		return 0, errs.Wrapf(err, "failed to delete membership for reference %s", token)
	}
	return tag.RowsAffected(), nil
}

// CountByReference reports how many rows exist for the token.
func (s *MembershipStore) CountByReference(ctx context.Context, token string) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM memberships WHERE reference_id = $1`, token,
	).Scan(&count)
	if err != nil {
		return 0, errs.Wrapf(err, "failed to count memberships for reference %s", token)
	}
	return count, nil
}
