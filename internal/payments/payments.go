// Package payments answers whether a project's payment has completed.
package payments

import (
	"context"
	"fmt"

	"github.com/kirinyoku/shootplan/internal/domain"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

type Checker interface {
	Paid(ctx context.Context, p domain.Project) (bool, error)
}

// FlagChecker trusts the flag stored on the project.
type FlagChecker struct{}

func (FlagChecker) Paid(_ context.Context, p domain.Project) (bool, error) {
	return p.PaymentCompleted, nil
}

// StripeChecker treats a project as paid when its flag is set or its Stripe
// PaymentIntent has succeeded.
type StripeChecker struct {
	getIntent func(ctx context.Context, id string) (*stripe.PaymentIntent, error)
}

func NewStripeChecker(secretKey string) *StripeChecker {
	stripe.Key = secretKey

	return &StripeChecker{
		getIntent: func(_ context.Context, id string) (*stripe.PaymentIntent, error) {
			return paymentintent.Get(id, nil)
		},
	}
}

func (c *StripeChecker) Paid(ctx context.Context, p domain.Project) (bool, error) {
	const op = "payments.StripeChecker.Paid"

	if p.PaymentCompleted {
		return true, nil
	}
	if p.PaymentIntentID == "" {
		return false, nil
	}

	pi, err := c.getIntent(ctx, p.PaymentIntentID)
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, err)
	}

	return pi.Status == stripe.PaymentIntentStatusSucceeded, nil
}
