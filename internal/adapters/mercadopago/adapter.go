// Package mercadopago implements the PaymentGateway interface using the official SDK.
package mercadopago

import (
	"context"
	"strconv"
	"time"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	appconfig "github.com/hoyoenuno/hoyo-payments/config"
	"github.com/hoyoenuno/hoyo-payments/internal/core/domain"
)

const maxTitleLength = 100

// Adapter implements ports.PaymentGateway using the Mercado Pago SDK. The
// SDK clients are constructed once at startup with the credentials for the
// configured environment.
type Adapter struct {
	preferences preference.Client
	payments    payment.Client
	settings    appconfig.PaymentsConfig
}

// NewAdapter creates a new Mercado Pago adapter.
func NewAdapter(settings appconfig.PaymentsConfig) (*Adapter, error) {
	cfg, err := mpconfig.New(settings.AccessToken())
	if err != nil {
		return nil, domain.NewServiceError(domain.ErrPaymentGatewayError,
			"failed to create MP config", "MP_CONFIG_ERROR")
	}
	return &Adapter{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
		settings:    settings,
	}, nil
}

// CreatePreference creates a Checkout Pro preference for one purchase. The
// preference carries a single aggregate line item, the three redirect URLs
// plus the webhook URL, the reference token as external_reference, and
// binary mode so partial settlements are rejected.
func (a *Adapter) CreatePreference(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	baseURL := a.settings.PublicBaseURL()

	title := req.Title
	if len(title) > maxTitleLength {
		title = title[:maxTitleLength]
	}
	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	if quantity > 100 {
		quantity = 100
	}

	prefRequest := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:          req.Reference.Token,
				Title:       title,
				Description: req.Description,
				Quantity:    quantity,
				UnitPrice:   req.UnitPrice,
				CurrencyID:  a.settings.Currency,
			},
		},
		Payer: &preference.PayerRequest{
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
		},
		ExternalReference: req.Reference.Token,
		AutoReturn:        "approved",
		BackURLs: &preference.BackURLsRequest{
			Success: baseURL + "/payment/success",
			Failure: baseURL + "/payment/failure",
			Pending: baseURL + "/payment/pending",
		},
		NotificationURL:     baseURL + "/payment/webhook",
		StatementDescriptor: a.settings.StatementDescriptor,
		BinaryMode:          true,
	}

	result, err := a.preferences.Create(ctx, prefRequest)
	if err != nil {
		return nil, domain.NewServiceError(domain.ErrPaymentGatewayError,
			"failed to create preference: "+err.Error(), "MP_PREFERENCE_ERROR")
	}
	if result == nil || result.ID == "" {
		return nil, domain.NewServiceError(domain.ErrPaymentGatewayError,
			"Mercado Pago returned a preference without an id", "MP_PREFERENCE_ERROR")
	}

	// Sandbox checkout URLs fail for real customers and vice versa; the two
	// environments are never mixed.
	checkoutURL := result.InitPoint
	if a.settings.Environment == appconfig.EnvSandbox {
		checkoutURL = result.SandboxInitPoint
	}
	if checkoutURL == "" {
		return nil, domain.NewServiceError(domain.ErrPaymentGatewayError,
			"Mercado Pago returned no checkout URL for environment "+a.settings.Environment,
			"MP_PREFERENCE_ERROR")
	}

	return &domain.CheckoutSession{
		PreferenceID: result.ID,
		CheckoutURL:  checkoutURL,
	}, nil
}

// GetPayment retrieves payment details from Mercado Pago.
func (a *Adapter) GetPayment(ctx context.Context, paymentID string) (*domain.PaymentInfo, error) {
	id, err := strconv.Atoi(paymentID)
	if err != nil {
		return nil, domain.NewServiceError(domain.ErrValidation,
			"invalid payment ID format", "INVALID_PAYMENT_ID")
	}

	result, err := a.payments.Get(ctx, id)
	if err != nil {
		return nil, domain.NewServiceError(domain.ErrPaymentGatewayError,
			"failed to get payment info: "+err.Error(), "MP_PAYMENT_ERROR")
	}

	dateApproved := result.DateApproved
	if dateApproved.IsZero() {
		dateApproved = time.Now()
	}

	return &domain.PaymentInfo{
		PaymentID:         paymentID,
		Status:            result.Status,
		StatusDetail:      result.StatusDetail,
		ExternalReference: result.ExternalReference,
		Amount:            result.TransactionAmount,
		Currency:          result.CurrencyID,
		PaymentMethod:     result.PaymentMethodID,
		PaymentType:       result.PaymentTypeID,
		PayerEmail:        result.Payer.Email,
		DateApproved:      dateApproved,
	}, nil
}
