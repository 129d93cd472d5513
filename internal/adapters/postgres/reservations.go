package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoyoenuno/hoyo-payments/internal/core/domain"
	"github.com/hoyoenuno/hoyo-payments/internal/pkg/errs"
)

// ReservationStore implements ports.ReservationStore on the reservations
// table.
type ReservationStore struct {
	pool *pgxpool.Pool
}

// NewReservationStore creates a new reservation store.
func NewReservationStore(pool *pgxpool.Pool) *ReservationStore {
	return &ReservationStore{pool: pool}
}

const insertReservation = `
INSERT INTO reservations (
	id, reference_id, service_id, date, time, quantity,
	customer_name, customer_email, customer_phone, notes,
	unit_price, total_price, status, payment_status, created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
)`

// CreateBatch stages every row of one cart in a single transaction. If any
// insert fails the transaction rolls back and no row for the token exists.
func (s *ReservationStore) CreateBatch(ctx context.Context, reservations []domain.Reservation) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return errs.Wrap(err, "failed to begin staging transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, r := range reservations {
		_, err := tx.Exec(ctx, insertReservation,
			r.ID, r.ReferenceID, r.ServiceID, r.Date, r.Time, r.Quantity,
			r.Customer.Name, r.Customer.Email, r.Customer.Phone, r.Customer.Notes,
			r.UnitPrice, r.TotalPrice, r.Status, r.PayStatus, r.CreatedAt, r.UpdatedAt,
		)
		if err != nil {
			return errs.Wrapf(err, "failed to stage reservation for reference %s", r.ReferenceID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Wrap(err, "failed to commit staging transaction")
	}
	return nil
}

// ConfirmPending confirms all still-pending rows for the token. The status
// guard makes a second success callback match zero rows.
func (s *ReservationStore) ConfirmPending(ctx context.Context, token string, pay domain.PaymentDetails) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE reservations
		SET status = $1,
		    payment_status = $2,
		    payment_id = $3,
		    payment_type = $4,
		    confirmed_at = now(),
		    updated_at = now()
		WHERE reference_id = $5 AND status = $6`,
		domain.ReservationConfirmed, domain.PaymentPaid,
		pay.PaymentID, pay.PaymentType, token, domain.ReservationPending,
	)
	if err != nil {
		return 0, errs.Wrapf(err, "failed to confirm reservations for reference %s", token)
	}
	return tag.RowsAffected(), nil
}

// MarkPaymentPending stamps the payment id on rows that are still pending.
func (s *ReservationStore) MarkPaymentPending(ctx context.Context, token string, pay domain.PaymentDetails) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE reservations
		SET payment_id = $1,
		    payment_type = $2,
		    updated_at = now()
		WHERE reference_id = $3 AND status = $4`,
		pay.PaymentID, pay.PaymentType, token, domain.ReservationPending,
	)
	if err != nil {
		return 0, errs.Wrapf(err, "failed to mark reservations pending for reference %s", token)
	}
	return tag.RowsAffected(), nil
}

// DeletePending removes rows for the token only while they are still
// pending; a failure callback arriving after confirmation deletes nothing.
func (s *ReservationStore) DeletePending(ctx context.Context, token string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM reservations
		WHERE reference_id = $1 AND status = $2`,
		token, domain.ReservationPending,
	)
	if err != nil {
		return 0, errs.Wrapf(err, "failed to delete pending reservations for reference %s", token)
	}
	return tag.RowsAffected(), nil
}

// DeleteByReference removes every row for the token. Compensation only.
func (s *ReservationStore) DeleteByReference(ctx context.Context, token string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM reservations WHERE reference_id = $1`, token)
	if err != nil {
		return 0, errs.Wrapf(err, "failed to delete reservations for reference %s", token)
	}
	return tag.RowsAffected(), nil
}

// CountByReference reports how many rows exist for the token.
func (s *ReservationStore) CountByReference(ctx context.Context, token string) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM reservations WHERE reference_id = $1`, token,
	).Scan(&count)
	if err != nil {
		return 0, errs.Wrapf(err, "failed to count reservations for reference %s", token)
	}
	return count, nil
}
