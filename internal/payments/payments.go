package payments

import (
	"context"
	"encoding/json"
)

// Mode represents the type of checkout session that should be created.
type Mode string

const (
	// ModePayment processes a one-time payment for goods or services.
	ModePayment Mode = "payment"
)

// PaymentMethodCard is the only payment method offered at checkout.
const PaymentMethodCard = "card"

// DeliveryUnit is the unit of a delivery estimate bound.
type DeliveryUnit string

const (
	DeliveryUnitBusinessDay DeliveryUnit = "business_day"
)

// DeliveryEstimate is an inclusive range of delivery time.
type DeliveryEstimate struct {
	Unit    DeliveryUnit
	Minimum int64
	Maximum int64
}

// ShippingOption is a fixed-amount shipping rate offered at checkout.
type ShippingOption struct {
	DisplayName string
	AmountCents int64
	Currency    string
	Delivery    DeliveryEstimate
}

// LineItem references a price defined at the provider.
type LineItem struct {
	Price    string
	Quantity float64
}

// CheckoutParams encapsulates the parameters needed to create a checkout session.
type CheckoutParams struct {
	Mode               Mode
	PaymentMethodTypes []string
	AllowedCountries   []string
	ShippingOptions    []ShippingOption
	LineItems          []LineItem
	SuccessURL         string
	CancelURL          string
}

// Session represents a checkout session created by a payment provider.
// It marshals to the provider's own JSON when that is available.
type Session struct {
	ID            string
	URL           string
	Status        string
	PaymentStatus string
	Raw           json.RawMessage
}

func (s Session) MarshalJSON() ([]byte, error) {
	if len(s.Raw) > 0 {
		return s.Raw, nil
	}
	return json.Marshal(struct {
		ID            string `json:"id"`
		URL           string `json:"url,omitempty"`
		Status        string `json:"status,omitempty"`
		PaymentStatus string `json:"payment_status,omitempty"`
	}{s.ID, s.URL, s.Status, s.PaymentStatus})
}

// Provider defines the behaviour required to create checkout sessions.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*Session, error)
}
