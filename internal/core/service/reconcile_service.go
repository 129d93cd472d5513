package service

import (
	"context"
	"log/slog"

	"github.com/hoyoenuno/hoyo-payments/internal/core/domain"
	"github.com/hoyoenuno/hoyo-payments/internal/core/ports"
)

// Event is the payment outcome reported by the processor redirect or webhook.
type Event string

const (
	EventSuccess Event = "success"
	EventFailure Event = "failure"
	EventPending Event = "pending"
)

// ReconcileService applies payment outcomes to the records staged under a
// reference token. Every transition runs as a conditional update keyed on
// the current status, so repeated or out-of-order callbacks settle into
// no-ops instead of racing:
//
//   - success confirms rows still pending; a second success matches nothing
//     and is accepted as already applied.
//   - failure deletes rows only while they are pending; it can never remove
//     a confirmed purchase.
//   - pending stamps the payment id on pending rows and does nothing once
//     the state is terminal.
type ReconcileService struct {
	reservations ports.ReservationStore
	memberships  ports.MembershipStore
	logger       *slog.Logger
}

// NewReconcileService creates a new reconcile service.
func NewReconcileService(
	reservations ports.ReservationStore,
	memberships ports.MembershipStore,
	logger *slog.Logger,
) *ReconcileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconcileService{
		reservations: reservations,
		memberships:  memberships,
		logger:       logger,
	}
}

// transitions is the per-kind slice of store operations the state machine
// drives. Both stores satisfy it; the kind is decided once from the parsed
// reference, never from record content.
type transitions struct {
	settle        func(ctx context.Context, token string, pay domain.PaymentDetails) (int64, error)
	markPending   func(ctx context.Context, token string, pay domain.PaymentDetails) (int64, error)
	deletePending func(ctx context.Context, token string) (int64, error)
	count         func(ctx context.Context, token string) (int64, error)
}

// Apply transitions all records sharing the token according to the event.
// It returns domain.ErrReferenceNotFound when no records exist for the token
// and domain.ErrReconciliation when the store update fails; callers serving
// a browser redirect swallow both and render the terminal page anyway.
func (s *ReconcileService) Apply(ctx context.Context, token string, pay domain.PaymentDetails, event Event) error {
	ref, err := domain.ParseReference(token)
	if err != nil {
		s.logger.Error("callback carried an unparseable reference",
			"token", token, "event", string(event))
		return err
	}

	var t transitions
	switch ref.Kind {
	case domain.KindMembership:
		t = transitions{
			settle:        s.memberships.ActivatePending,
			markPending:   s.memberships.MarkPaymentPending,
			deletePending: s.memberships.DeletePending,
			count:         s.memberships.CountByReference,
		}
	default:
		t = transitions{
			settle:        s.reservations.ConfirmPending,
			markPending:   s.reservations.MarkPaymentPending,
			deletePending: s.reservations.DeletePending,
			count:         s.reservations.CountByReference,
		}
	}

	switch event {
	case EventSuccess:
		return s.apply(ctx, ref, event, func() (int64, error) { return t.settle(ctx, ref.Token, pay) }, t)
	case EventFailure:
		return s.apply(ctx, ref, event, func() (int64, error) { return t.deletePending(ctx, ref.Token) }, t)
	case EventPending:
		return s.apply(ctx, ref, event, func() (int64, error) { return t.markPending(ctx, ref.Token, pay) }, t)
	}
	return domain.NewServiceError(domain.ErrReconciliation,
		"unknown outcome event: "+string(event), "RECONCILE_ERROR")
}

func (s *ReconcileService) apply(ctx context.Context, ref domain.Reference, event Event, transition func() (int64, error), t transitions) error {
	affected, err := transition()
	if err != nil {
		s.logger.Error("reconciliation update failed",
			"reference", ref.Token, "event", string(event), "error", err)
		return domain.NewServiceError(domain.ErrReconciliation,
			"reconciliation update failed", "RECONCILE_ERROR")
	}

	if affected > 0 {
		s.logger.Info("payment outcome applied",
			"reference", ref.Token, "event", string(event), "rows", affected)
		return nil
	}

	// Nothing matched the pending precondition: either the token is unknown
	// or the records already reached a terminal state.
	existing, err := t.count(ctx, ref.Token)
	if err != nil {
		s.logger.Error("reconciliation lookup failed",
			"reference", ref.Token, "event", string(event), "error", err)
		return domain.NewServiceError(domain.ErrReconciliation,
			"reconciliation lookup failed", "RECONCILE_ERROR")
	}
	if existing == 0 && event != EventFailure {
		s.logger.Error("callback for unknown reference token",
			"reference", ref.Token, "event", string(event))
		return domain.NewServiceError(domain.ErrReferenceNotFound,
			"no records for reference "+ref.Token, "REFERENCE_NOT_FOUND")
	}
	if existing == 0 {
		// A repeated failure finds no rows because the first one deleted
		// them. Same terminal state, so accept it.
		s.logger.Info("failure callback repeated, records already removed",
			"reference", ref.Token)
		return nil
	}

	s.logger.Info("callback ignored, records already terminal",
		"reference", ref.Token, "event", string(event), "rows", existing)
	return nil
}
