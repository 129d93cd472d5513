// Package testutil provides in-memory implementations of the store and
// gateway ports for tests. The stores mirror the conditional-update contract
// of the Postgres adapters: every transition checks its status precondition
// under the same lock that applies the update.
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hoyoenuno/hoyo-payments/internal/core/domain"
)

// MemReservationStore is an in-memory ports.ReservationStore.
type MemReservationStore struct {
	mu   sync.Mutex
	rows map[string][]*domain.Reservation

	FailCreate bool
	FailUpdate bool
	FailDelete bool
}

// NewMemReservationStore creates an empty store.
func NewMemReservationStore() *MemReservationStore {
	return &MemReservationStore{rows: map[string][]*domain.Reservation{}}
}

// Rows returns copies of the rows staged under the token.
func (s *MemReservationStore) Rows(token string) []domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Reservation, 0, len(s.rows[token]))
	for _, r := range s.rows[token] {
		out = append(out, *r)
	}
	return out
}

func (s *MemReservationStore) CreateBatch(_ context.Context, reservations []domain.Reservation) error {
	if s.FailCreate {
		return errStore
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range reservations {
		r := reservations[i]
		s.rows[r.ReferenceID] = append(s.rows[r.ReferenceID], &r)
	}
	return nil
}

func (s *MemReservationStore) ConfirmPending(_ context.Context, token string, pay domain.PaymentDetails) (int64, error) {
	if s.FailUpdate {
		return 0, errStore
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	now := time.Now().UTC()
	for _, r := range s.rows[token] {
		if r.Status != domain.ReservationPending {
			continue
		}
		r.Status = domain.ReservationConfirmed
		r.PayStatus = domain.PaymentPaid
		r.PaymentID = pay.PaymentID
		r.PaymentType = pay.PaymentType
		confirmedAt := now
		r.ConfirmedAt = &confirmedAt
		r.UpdatedAt = now
		n++
	}
	return n, nil
}

func (s *MemReservationStore) MarkPaymentPending(_ context.Context, token string, pay domain.PaymentDetails) (int64, error) {
	if s.FailUpdate {
		return 0, errStore
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, r := range s.rows[token] {
		if r.Status != domain.ReservationPending {
			continue
		}
		r.PaymentID = pay.PaymentID
		r.PaymentType = pay.PaymentType
		n++
	}
	return n, nil
}

func (s *MemReservationStore) DeletePending(_ context.Context, token string) (int64, error) {
	if s.FailDelete {
		return 0, errStore
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.rows[token][:0]
	var n int64
	for _, r := range s.rows[token] {
		if r.Status == domain.ReservationPending {
			n++
			continue
		}
		kept = append(kept, r)
	}
	if len(kept) == 0 {
		delete(s.rows, token)
	} else {
		s.rows[token] = kept
	}
	return n, nil
}

func (s *MemReservationStore) DeleteByReference(_ context.Context, token string) (int64, error) {
	if s.FailDelete {
		return 0, errStore
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.rows[token]))
	delete(s.rows, token)
	return n, nil
}

func (s *MemReservationStore) CountByReference(_ context.Context, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.rows[token])), nil
}

// MemMembershipStore is an in-memory ports.MembershipStore.
type MemMembershipStore struct {
	mu   sync.Mutex
	rows map[string]*domain.Membership

	FailCreate bool
	FailUpdate bool
	FailDelete bool
}

// NewMemMembershipStore creates an empty store.
func NewMemMembershipStore() *MemMembershipStore {
	return &MemMembershipStore{rows: map[string]*domain.Membership{}}
}

// Row returns a copy of the membership staged under the token, if any.
func (s *MemMembershipStore) Row(token string) (domain.Membership, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.rows[token]
	if !ok {
		return domain.Membership{}, false
	}
	return *m, true
}

func (s *MemMembershipStore) Create(_ context.Context, m domain.Membership) error {
	if s.FailCreate {
		return errStore
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[m.ReferenceID] = &m
	return nil
}

func (s *MemMembershipStore) ActivatePending(_ context.Context, token string, pay domain.PaymentDetails) (int64, error) {
	if s.FailUpdate {
		return 0, errStore
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.rows[token]
	if !ok || m.Status != domain.MembershipPending {
		return 0, nil
	}
	now := time.Now().UTC()
	m.Status = domain.MembershipActive
	m.PaymentID = pay.PaymentID
	m.PaymentType = pay.PaymentType
	m.ActivatedAt = &now
	m.UpdatedAt = now
	return 1, nil
}

func (s *MemMembershipStore) MarkPaymentPending(_ context.Context, token string, pay domain.PaymentDetails) (int64, error) {
	if s.FailUpdate {
		return 0, errStore
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.rows[token]
	if !ok || m.Status != domain.MembershipPending {
		return 0, nil
	}
	m.PaymentID = pay.PaymentID
	m.PaymentType = pay.PaymentType
	return 1, nil
}

func (s *MemMembershipStore) DeletePending(_ context.Context, token string) (int64, error) {
	if s.FailDelete {
		return 0, errStore
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.rows[token]
	if !ok || m.Status != domain.MembershipPending {
		return 0, nil
	}
	delete(s.rows, token)
	return 1, nil
}

func (s *MemMembershipStore) DeleteByReference(_ context.Context, token string) (int64, error) {
	if s.FailDelete {
		return 0, errStore
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[token]; !ok {
		return 0, nil
	}
	delete(s.rows, token)
	return 1, nil
}

func (s *MemMembershipStore) CountByReference(_ context.Context, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[token]; ok {
		return 1, nil
	}
	return 0, nil
}

// StaticCatalog is a fixed ports.MembershipCatalog.
type StaticCatalog struct {
	Types map[string]domain.MembershipType
}

// NewStaticCatalog creates a catalog with the given entries.
func NewStaticCatalog(types ...domain.MembershipType) *StaticCatalog {
	c := &StaticCatalog{Types: map[string]domain.MembershipType{}}
	for _, mt := range types {
		c.Types[mt.Code] = mt
	}
	return c
}

func (c *StaticCatalog) FindActiveByCode(_ context.Context, code string) (*domain.MembershipType, error) {
	mt, ok := c.Types[code]
	if !ok || !mt.Active {
		return nil, domain.NewServiceError(domain.ErrMembershipTypeNotFound,
			"no active membership type with code "+code, "MEMBERSHIP_TYPE_NOT_FOUND")
	}
	return &mt, nil
}

// FakeGateway is a ports.PaymentGateway that records requests.
type FakeGateway struct {
	mu       sync.Mutex
	Requests []domain.CheckoutRequest

	CreateErr error
	Session   domain.CheckoutSession

	PaymentErr error
	Payment    domain.PaymentInfo
}

func (g *FakeGateway) CreatePreference(_ context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	g.mu.Lock()
	g.Requests = append(g.Requests, req)
	g.mu.Unlock()
	if g.CreateErr != nil {
		return nil, g.CreateErr
	}
	session := g.Session
	if session.PreferenceID == "" {
		session = domain.CheckoutSession{
			PreferenceID: "pref-" + req.Reference.Token,
			CheckoutURL:  "https://checkout.test/" + req.Reference.Token,
		}
	}
	return &session, nil
}

func (g *FakeGateway) GetPayment(_ context.Context, paymentID string) (*domain.PaymentInfo, error) {
	if g.PaymentErr != nil {
		return nil, g.PaymentErr
	}
	info := g.Payment
	if info.PaymentID == "" {
		info.PaymentID = paymentID
	}
	return &info, nil
}

var errStore = errors.New("store unavailable")
