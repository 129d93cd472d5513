package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoyoenuno/hoyo-payments/internal/api"
	"github.com/hoyoenuno/hoyo-payments/internal/core/domain"
	"github.com/hoyoenuno/hoyo-payments/internal/core/service"
	"github.com/hoyoenuno/hoyo-payments/internal/testutil"
)

type apiFixture struct {
	gateway      *testutil.FakeGateway
	reservations *testutil.MemReservationStore
	memberships  *testutil.MemMembershipStore
	router       *gin.Engine
}

func newAPIFixture() *apiFixture {
	f := &apiFixture{
		gateway:      &testutil.FakeGateway{},
		reservations: testutil.NewMemReservationStore(),
		memberships:  testutil.NewMemMembershipStore(),
	}
	catalog := testutil.NewStaticCatalog(domain.MembershipType{
		Code: "BOGEY_PASS", Name: "Bogey Pass", MonthlyPrice: 1200,
		DurationDays: 30, IncludedHours: 10, IncludedClasses: 2, Active: true,
	})
	checkout := service.NewCheckoutService(
		f.gateway, f.reservations, f.memberships, catalog, time.Second, nil,
	)
	reconcile := service.NewReconcileService(f.reservations, f.memberships, nil)
	handler := api.NewHandler(checkout, reconcile, f.gateway, nil)
	f.router = api.SetupRouter(handler, gin.TestMode, nil)
	return f
}

func (f *apiFixture) postJSON(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func preferenceBody() map[string]any {
	return map[string]any{
		"title":       "Golf simulator",
		"quantity":    1,
		"price":       500,
		"description": "One hour session",
		"cart": []map[string]any{
			{"serviceId": "1", "date": "2025-06-01", "time": "10:00", "quantity": 1, "unitPrice": 500, "totalPrice": 500},
		},
		"customerName":  "Ana Torres",
		"customerEmail": "ana@example.com",
		"customerPhone": "+52 33 1234 5678",
		"customerNotes": "window seat",
	}
}

func TestCreatePreference(t *testing.T) {
	t.Run("stages the cart and returns the checkout URL", func(t *testing.T) {
		f := newAPIFixture()

		rec := f.postJSON(t, "/payment/create_preference", preferenceBody())
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.CreatePreferenceResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.ID)
		assert.NotEmpty(t, resp.CheckoutURL)
		assert.Contains(t, resp.Reference, "reservation-")
		assert.Equal(t, 1, resp.ReservationsCreated)

		rows := f.reservations.Rows(resp.Reference)
		require.Len(t, rows, 1)
		assert.Equal(t, domain.ReservationPending, rows[0].Status)
	})

	t.Run("invalid cart is a 400 with nothing persisted", func(t *testing.T) {
		f := newAPIFixture()
		body := preferenceBody()
		body["cart"] = []map[string]any{}

		rec := f.postJSON(t, "/payment/create_preference", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, f.gateway.Requests)
	})

	t.Run("gateway failure is a generic 500", func(t *testing.T) {
		f := newAPIFixture()
		f.gateway.CreateErr = errors.New("mp: invalid credentials")

		rec := f.postJSON(t, "/payment/create_preference", preferenceBody())
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "payment processing failed", resp.Error)
		assert.NotContains(t, rec.Body.String(), "credentials")
	})
}

func TestCreateMembership(t *testing.T) {
	membershipBody := map[string]any{
		"membershipType": "BOGEY_PASS",
		"customerName":   "Ana Torres",
		"customerEmail":  "ana@example.com",
		"customerPhone":  "+52 33 1234 5678",
	}

	t.Run("stages a pending membership and echoes its dates", func(t *testing.T) {
		f := newAPIFixture()

		rec := f.postJSON(t, "/payment/create_membership", membershipBody)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.CreateMembershipResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Contains(t, resp.Reference, "membership-")
		assert.Equal(t, "BOGEY_PASS", resp.Membership.Type)
		assert.Equal(t, domain.MembershipPending, resp.Membership.Status)

		start, err := time.Parse(time.DateOnly, resp.Membership.StartDate)
		require.NoError(t, err)
		end, err := time.Parse(time.DateOnly, resp.Membership.EndDate)
		require.NoError(t, err)
		assert.Equal(t, 30*24*time.Hour, end.Sub(start))
	})

	t.Run("unknown membership type is a 404", func(t *testing.T) {
		f := newAPIFixture()
		body := map[string]any{
			"membershipType": "ALBATROSS_PASS",
			"customerName":   "Ana",
			"customerEmail":  "ana@example.com",
			"customerPhone":  "123",
		}

		rec := f.postJSON(t, "/payment/create_membership", body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing customer data is a 400", func(t *testing.T) {
		f := newAPIFixture()
		body := map[string]any{"membershipType": "BOGEY_PASS"}

		rec := f.postJSON(t, "/payment/create_membership", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealth(t *testing.T) {
	f := newAPIFixture()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
