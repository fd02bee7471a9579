package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/ignatzorin/collabhub-backend/internal/service"
)

// intentCreator часть клиента Stripe, которой пользуется шлюз.
type intentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// StripeGateway создаёт PaymentIntent через Stripe API.
type StripeGateway struct {
	intents  intentCreator
	currency string
}

// NewStripeGateway возвращает nil без секретного ключа, тогда оплата картой отключена.
func NewStripeGateway(secretKey, currency string) *StripeGateway {
	if secretKey == "" {
		return nil
	}
	sc := client.New(secretKey, nil)
	return newStripeGateway(sc.PaymentIntents, currency)
}

func newStripeGateway(intents intentCreator, currency string) *StripeGateway {
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &StripeGateway{intents: intents, currency: currency}
}

// CreatePaymentIntent создаёт намерение оплаты на сумму в центах.
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, req service.PaymentIntentRequest) (*service.PaymentIntent, error) {
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("stripe: сумма должна быть положительной")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountCents),
		Currency: stripe.String(g.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for key, value := range req.Metadata {
		params.AddMetadata(key, value)
	}

	pi, err := g.intents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: не удалось создать payment intent: %w", err)
	}

	return &service.PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
