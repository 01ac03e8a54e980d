package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"checkout-session-service/internal/apperror"
	"checkout-session-service/internal/models"
	"checkout-session-service/internal/payments"
	"checkout-session-service/pkg/logger"
)

// ErrCheckoutDisabled is returned when no payment provider is configured.
var ErrCheckoutDisabled = errors.New("checkout provider is not configured")

// Shipping and payment policy applied to every session.
var (
	AllowedCountries = []string{"US", "IN"}

	ShippingOptions = []payments.ShippingOption{
		{
			DisplayName: "Free shipping",
			AmountCents: 0,
			Currency:    "usd",
			Delivery: payments.DeliveryEstimate{
				Unit:    payments.DeliveryUnitBusinessDay,
				Minimum: 5,
				Maximum: 7,
			},
		},
		{
			DisplayName: "Next day",
			AmountCents: 1500,
			Currency:    "usd",
			Delivery: payments.DeliveryEstimate{
				Unit:    payments.DeliveryUnitBusinessDay,
				Minimum: 1,
				Maximum: 1,
			},
		},
	}
)

var (
	metricsOnce         sync.Once
	sessionsTotal       *prometheus.CounterVec
	sessionDurationSecs *prometheus.HistogramVec
)

func initMetrics() {
	metricsOnce.Do(func() {
		sessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkout",
			Subsystem: "provider",
			Name:      "sessions_total",
			Help:      "Checkout session creation attempts by outcome",
		}, []string{"outcome"})

		sessionDurationSecs = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "checkout",
			Subsystem: "provider",
			Name:      "session_duration_seconds",
			Help:      "Duration of checkout session creation calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"})
	})
}

// BuildCheckoutParams maps a validated request onto the provider request,
// adding the fixed payment, shipping and mode settings.
func BuildCheckoutParams(req models.SessionRequest) payments.CheckoutParams {
	lineItems := make([]payments.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		lineItems = append(lineItems, payments.LineItem{
			Price:    item.PriceID,
			Quantity: item.Quantity,
		})
	}

	return payments.CheckoutParams{
		Mode:               payments.ModePayment,
		PaymentMethodTypes: []string{payments.PaymentMethodCard},
		AllowedCountries:   append([]string(nil), AllowedCountries...),
		ShippingOptions:    append([]payments.ShippingOption(nil), ShippingOptions...),
		LineItems:          lineItems,
		SuccessURL:         req.SuccessURL,
		CancelURL:          req.CancelURL,
	}
}

// CheckoutService creates checkout sessions with the payment provider.
type CheckoutService struct {
	provider payments.Provider
}

func NewCheckoutService(provider payments.Provider) *CheckoutService {
	initMetrics()
	return &CheckoutService{provider: provider}
}

// Enabled reports whether the checkout flow is ready for use.
func (s *CheckoutService) Enabled() bool {
	return s != nil && s.provider != nil
}

// CreateSession builds the provider request and calls the provider exactly once.
func (s *CheckoutService) CreateSession(ctx context.Context, req models.SessionRequest) (*payments.Session, error) {
	if !s.Enabled() {
		return nil, ErrCheckoutDisabled
	}

	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.FromContext(ctx)

	params := BuildCheckoutParams(req)
	log.WithField("line_items", len(params.LineItems)).Info("Creating checkout session")

	start := time.Now()
	session, err := s.provider.CreateCheckoutSession(ctx, params)
	if err == nil && session == nil {
		err = errors.New("provider returned no session")
	}
	outcome := "success"
	if err != nil {
		outcome = string(apperror.KindOf(err))
	}
	sessionsTotal.WithLabelValues(outcome).Inc()
	sessionDurationSecs.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		log.WithError(err).Error("Failed to create checkout session with provider")
		return nil, err
	}

	log.WithField("session_id", session.ID).Info("Checkout session ready")
	return session, nil
}
