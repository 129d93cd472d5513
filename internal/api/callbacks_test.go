package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoyoenuno/hoyo-payments/internal/api"
	"github.com/hoyoenuno/hoyo-payments/internal/core/domain"
)

func (f *apiFixture) createReservation(t *testing.T) string {
	t.Helper()
	rec := f.postJSON(t, "/payment/create_preference", preferenceBody())
	require.Equal(t, http.StatusOK, rec.Code)
	var resp api.CreatePreferenceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Reference
}

func (f *apiFixture) redirect(t *testing.T, path, token, paymentID string) *httptest.ResponseRecorder {
	t.Helper()
	query := url.Values{
		"payment_id":         {paymentID},
		"status":             {"approved"},
		"external_reference": {token},
		"payment_type":       {"credit_card"},
		"merchant_order_id":  {"order-1"},
	}
	req := httptest.NewRequest(http.MethodGet, path+"?"+query.Encode(), nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestRedirectCallbacks(t *testing.T) {
	t.Run("success redirect confirms the cart and renders the page", func(t *testing.T) {
		f := newAPIFixture()
		token := f.createReservation(t)

		rec := f.redirect(t, "/payment/success", token, "mp-77")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "mp-77")
		assert.Contains(t, rec.Body.String(), token)

		rows := f.reservations.Rows(token)
		require.Len(t, rows, 1)
		assert.Equal(t, domain.ReservationConfirmed, rows[0].Status)
		assert.Equal(t, domain.PaymentPaid, rows[0].PayStatus)
		assert.Equal(t, "mp-77", rows[0].PaymentID)
	})

	t.Run("failure redirect removes the pending cart", func(t *testing.T) {
		f := newAPIFixture()
		token := f.createReservation(t)

		rec := f.redirect(t, "/payment/failure", token, "mp-77")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, f.reservations.Rows(token))
	})

	t.Run("failure after success keeps the confirmed cart", func(t *testing.T) {
		f := newAPIFixture()
		token := f.createReservation(t)

		f.redirect(t, "/payment/success", token, "mp-77")
		rec := f.redirect(t, "/payment/failure", token, "mp-77")

		require.Equal(t, http.StatusOK, rec.Code)
		rows := f.reservations.Rows(token)
		require.Len(t, rows, 1)
		assert.Equal(t, domain.ReservationConfirmed, rows[0].Status)
	})

	t.Run("unknown token still renders the terminal page", func(t *testing.T) {
		f := newAPIFixture()

		rec := f.redirect(t, "/payment/success", "reservation-does-not-exist", "mp-77")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Payment successful")
	})

	t.Run("pending redirect keeps the cart pending with the payment id", func(t *testing.T) {
		f := newAPIFixture()
		token := f.createReservation(t)

		rec := f.redirect(t, "/payment/pending", token, "mp-77")
		require.Equal(t, http.StatusOK, rec.Code)

		rows := f.reservations.Rows(token)
		require.Len(t, rows, 1)
		assert.Equal(t, domain.ReservationPending, rows[0].Status)
		assert.Equal(t, "mp-77", rows[0].PaymentID)
	})
}

func TestHandleWebhook(t *testing.T) {
	t.Run("approved payment notification confirms the cart", func(t *testing.T) {
		f := newAPIFixture()
		token := f.createReservation(t)
		f.gateway.Payment = domain.PaymentInfo{
			PaymentID:         "314159",
			Status:            "approved",
			ExternalReference: token,
			PaymentType:       "credit_card",
		}

		rec := f.postJSON(t, "/payment/webhook", map[string]any{
			"type": "payment",
			"data": map[string]any{"id": "314159"},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		rows := f.reservations.Rows(token)
		require.Len(t, rows, 1)
		assert.Equal(t, domain.ReservationConfirmed, rows[0].Status)
	})

	t.Run("non-payment notifications are acknowledged and ignored", func(t *testing.T) {
		f := newAPIFixture()

		rec := f.postJSON(t, "/payment/webhook", map[string]any{
			"type": "merchant_order",
			"data": map[string]any{"id": "1"},
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("webhook replay after redirect stays idempotent", func(t *testing.T) {
		f := newAPIFixture()
		token := f.createReservation(t)

		f.redirect(t, "/payment/success", token, "mp-77")

		f.gateway.Payment = domain.PaymentInfo{
			PaymentID:         "mp-77",
			Status:            "approved",
			ExternalReference: token,
			PaymentType:       "credit_card",
		}
		rec := f.postJSON(t, "/payment/webhook", map[string]any{
			"type": "payment",
			"data": map[string]any{"id": "77"},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		rows := f.reservations.Rows(token)
		require.Len(t, rows, 1)
		assert.Equal(t, "mp-77", rows[0].PaymentID)
	})

	t.Run("gateway failure still answers 200", func(t *testing.T) {
		f := newAPIFixture()
		f.gateway.PaymentErr = assertError{}

		rec := f.postJSON(t, "/payment/webhook", map[string]any{
			"type": "payment",
			"data": map[string]any{"id": "314159"},
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "processed_with_error")
	})
}

type assertError struct{}

func (assertError) Error() string { return "gateway unavailable" }
