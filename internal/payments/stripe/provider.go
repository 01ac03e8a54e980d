package stripe

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	stripeapi "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"

	"checkout-session-service/internal/apperror"
	"checkout-session-service/internal/payments"
	"checkout-session-service/pkg/logger"
	"checkout-session-service/pkg/validator"
)

const defaultTimeout = 30 * time.Second

// Options tunes how the provider reaches the Stripe API.
type Options struct {
	// APIBase overrides https://api.stripe.com, e.g. for a local stub.
	APIBase    string
	HTTPClient *http.Client
}

// Provider implements the payments.Provider interface for Stripe Checkout.
type Provider struct {
	sessions *session.Client
}

// NewProvider constructs a Stripe provider using the supplied secret API key.
// The SDK's automatic retries are disabled: every session is attempted once.
func NewProvider(secretKey string, opts Options) (*Provider, error) {
	key := strings.TrimSpace(secretKey)
	if key == "" {
		return nil, errors.New("stripe secret key is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	cfg := &stripeapi.BackendConfig{
		HTTPClient:        httpClient,
		LeveledLogger:     logger.Logger,
		MaxNetworkRetries: stripeapi.Int64(0),
	}
	if base := strings.TrimRight(strings.TrimSpace(opts.APIBase), "/"); base != "" {
		cfg.URL = stripeapi.String(base)
	}

	return &Provider{
		sessions: &session.Client{
			B:   stripeapi.GetBackendWithConfig(stripeapi.APIBackend, cfg),
			Key: key,
		},
	}, nil
}

// CreateCheckoutSession creates a Stripe Checkout session for the provided purchase parameters.
func (p *Provider) CreateCheckoutSession(ctx context.Context, params payments.CheckoutParams) (*payments.Session, error) {
	if p == nil || p.sessions == nil {
		return nil, errors.New("stripe provider is not configured")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	sessionParams, err := buildSessionParams(params)
	if err != nil {
		return nil, err
	}
	sessionParams.Context = ctx

	created, err := p.sessions.New(sessionParams)
	if err != nil {
		return nil, translateError(err)
	}

	result := &payments.Session{
		ID:            created.ID,
		URL:           created.URL,
		Status:        string(created.Status),
		PaymentStatus: string(created.PaymentStatus),
	}
	if created.LastResponse != nil {
		result.Raw = created.LastResponse.RawJSON
	}
	return result, nil
}

func buildSessionParams(params payments.CheckoutParams) (*stripeapi.CheckoutSessionParams, error) {
	mode := params.Mode
	if mode == "" {
		mode = payments.ModePayment
	}

	out := &stripeapi.CheckoutSessionParams{
		Mode:       stripeapi.String(string(mode)),
		SuccessURL: stripeapi.String(params.SuccessURL),
		CancelURL:  stripeapi.String(params.CancelURL),
	}

	if len(params.PaymentMethodTypes) > 0 {
		out.PaymentMethodTypes = stripeapi.StringSlice(params.PaymentMethodTypes)
	}

	if len(params.AllowedCountries) > 0 {
		out.ShippingAddressCollection = &stripeapi.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripeapi.StringSlice(params.AllowedCountries),
		}
	}

	for _, option := range params.ShippingOptions {
		out.ShippingOptions = append(out.ShippingOptions, &stripeapi.CheckoutSessionShippingOptionParams{
			ShippingRateData: &stripeapi.CheckoutSessionShippingOptionShippingRateDataParams{
				Type:        stripeapi.String("fixed_amount"),
				DisplayName: stripeapi.String(option.DisplayName),
				FixedAmount: &stripeapi.CheckoutSessionShippingOptionShippingRateDataFixedAmountParams{
					Amount:   stripeapi.Int64(option.AmountCents),
					Currency: stripeapi.String(strings.ToLower(option.Currency)),
				},
				DeliveryEstimate: &stripeapi.CheckoutSessionShippingOptionShippingRateDataDeliveryEstimateParams{
					Minimum: &stripeapi.CheckoutSessionShippingOptionShippingRateDataDeliveryEstimateMinimumParams{
						Unit:  stripeapi.String(string(option.Delivery.Unit)),
						Value: stripeapi.Int64(option.Delivery.Minimum),
					},
					Maximum: &stripeapi.CheckoutSessionShippingOptionShippingRateDataDeliveryEstimateMaximumParams{
						Unit:  stripeapi.String(string(option.Delivery.Unit)),
						Value: stripeapi.Int64(option.Delivery.Maximum),
					},
				},
			},
		})
	}

	for _, item := range params.LineItems {
		quantity, err := integerQuantity(item.Quantity)
		if err != nil {
			return nil, err
		}
		out.LineItems = append(out.LineItems, &stripeapi.CheckoutSessionLineItemParams{
			Price:    stripeapi.String(item.Price),
			Quantity: stripeapi.Int64(quantity),
		})
	}

	return out, nil
}

// Stripe only accepts whole quantities; reject the rest the way the API would.
func integerQuantity(q float64) (int64, error) {
	if q != math.Trunc(q) || q >= 1<<63 || q < -(1<<63) {
		msg := fmt.Sprintf("Invalid integer: %s", strconv.FormatFloat(q, 'f', -1, 64))
		return 0, apperror.Provider(http.StatusBadRequest, msg, nil)
	}
	return int64(q), nil
}

// translateError keeps the status and message of API errors; anything else
// (network, decoding) is left untyped so it renders as the generic failure.
func translateError(err error) error {
	var apiErr *stripeapi.Error
	if !errors.As(err, &apiErr) || apiErr == nil {
		return fmt.Errorf("stripe checkout session: %w", err)
	}

	status := apiErr.HTTPStatusCode
	if status == 0 {
		status = http.StatusBadGateway
	}

	message := validator.StripTags(apiErr.Msg)
	if message == "" {
		message = fmt.Sprintf("stripe returned status %d", status)
	}

	return apperror.Provider(status, message, err)
}
