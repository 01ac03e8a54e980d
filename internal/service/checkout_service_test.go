package service

import (
	"context"
	"errors"
	"testing"

	"checkout-session-service/internal/models"
	"checkout-session-service/internal/payments"
)

type stubProvider struct {
	session *payments.Session
	err     error
	calls   int
	params  payments.CheckoutParams
}

func (s *stubProvider) CreateCheckoutSession(ctx context.Context, params payments.CheckoutParams) (*payments.Session, error) {
	s.calls++
	s.params = params
	return s.session, s.err
}

func sampleRequest() models.SessionRequest {
	return models.SessionRequest{
		SuccessURL: "https://a.test/ok",
		CancelURL:  "https://a.test/cancel",
		Items:      []models.LineItemInput{{PriceID: "price_123", Quantity: 2}},
	}
}

func TestBuildCheckoutParamsAppliesPolicy(t *testing.T) {
	params := BuildCheckoutParams(sampleRequest())

	if params.Mode != payments.ModePayment {
		t.Fatalf("expected payment mode, got %q", params.Mode)
	}
	if len(params.PaymentMethodTypes) != 1 || params.PaymentMethodTypes[0] != "card" {
		t.Fatalf("expected card only, got %v", params.PaymentMethodTypes)
	}
	if len(params.AllowedCountries) != 2 || params.AllowedCountries[0] != "US" || params.AllowedCountries[1] != "IN" {
		t.Fatalf("unexpected allowed countries %v", params.AllowedCountries)
	}
	if params.SuccessURL != "https://a.test/ok" || params.CancelURL != "https://a.test/cancel" {
		t.Fatalf("unexpected redirect urls %q %q", params.SuccessURL, params.CancelURL)
	}

	if len(params.ShippingOptions) != 2 {
		t.Fatalf("expected two shipping options, got %d", len(params.ShippingOptions))
	}
	free, nextDay := params.ShippingOptions[0], params.ShippingOptions[1]
	if free.DisplayName != "Free shipping" || free.AmountCents != 0 || free.Currency != "usd" ||
		free.Delivery.Minimum != 5 || free.Delivery.Maximum != 7 || free.Delivery.Unit != payments.DeliveryUnitBusinessDay {
		t.Fatalf("unexpected free shipping option %+v", free)
	}
	if nextDay.DisplayName != "Next day" || nextDay.AmountCents != 1500 || nextDay.Currency != "usd" ||
		nextDay.Delivery.Minimum != 1 || nextDay.Delivery.Maximum != 1 {
		t.Fatalf("unexpected next day option %+v", nextDay)
	}

	if len(params.LineItems) != 1 || params.LineItems[0] != (payments.LineItem{Price: "price_123", Quantity: 2}) {
		t.Fatalf("unexpected line items %+v", params.LineItems)
	}
}

func TestBuildCheckoutParamsKeepsItemOrder(t *testing.T) {
	req := sampleRequest()
	req.Items = []models.LineItemInput{
		{PriceID: "price_a", Quantity: 1},
		{PriceID: "price_b", Quantity: 3},
		{PriceID: "price_c", Quantity: 0},
	}

	params := BuildCheckoutParams(req)
	if len(params.LineItems) != 3 {
		t.Fatalf("expected 3 line items, got %d", len(params.LineItems))
	}
	for i, item := range req.Items {
		if params.LineItems[i].Price != item.PriceID || params.LineItems[i].Quantity != item.Quantity {
			t.Fatalf("line item %d = %+v, want %+v", i, params.LineItems[i], item)
		}
	}
}

func TestBuildCheckoutParamsDoesNotShareSlices(t *testing.T) {
	params := BuildCheckoutParams(sampleRequest())
	params.AllowedCountries[0] = "FR"
	params.ShippingOptions[0].AmountCents = 99

	if AllowedCountries[0] != "US" || ShippingOptions[0].AmountCents != 0 {
		t.Fatalf("expected package policy to be unaffected by callers")
	}
}

func TestCreateSessionCallsProviderOnce(t *testing.T) {
	provider := &stubProvider{session: &payments.Session{ID: "cs_1"}}
	svc := NewCheckoutService(provider)

	session, err := svc.CreateSession(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	if session.ID != "cs_1" {
		t.Fatalf("unexpected session %+v", session)
	}
	if provider.calls != 1 {
		t.Fatalf("expected one provider call, got %d", provider.calls)
	}
	if len(provider.params.ShippingOptions) != 2 {
		t.Fatalf("expected provider to receive built params")
	}
}

func TestCreateSessionReturnsProviderError(t *testing.T) {
	providerErr := errors.New("connection reset")
	provider := &stubProvider{err: providerErr}
	svc := NewCheckoutService(provider)

	_, err := svc.CreateSession(context.Background(), sampleRequest())
	if !errors.Is(err, providerErr) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("expected exactly one attempt, got %d", provider.calls)
	}
}

func TestCreateSessionRejectsNilSession(t *testing.T) {
	svc := NewCheckoutService(&stubProvider{})

	if _, err := svc.CreateSession(context.Background(), sampleRequest()); err == nil {
		t.Fatalf("expected error when provider returns no session")
	}
}

func TestCreateSessionWithoutProvider(t *testing.T) {
	svc := NewCheckoutService(nil)

	if _, err := svc.CreateSession(context.Background(), sampleRequest()); !errors.Is(err, ErrCheckoutDisabled) {
		t.Fatalf("expected ErrCheckoutDisabled, got %v", err)
	}
}
