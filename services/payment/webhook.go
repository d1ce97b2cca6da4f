package payment

import (
	"context"
	"encoding/json"

	"decorhub/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

const eventCheckoutCompleted = "checkout.session.completed"

// HandleWebhook verifies a signed processor notification and reconciles
// completed checkouts. Other event types are acknowledged and ignored.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) (*ReconcileResult, error) {
	if s.Settings.WebhookSecret == "" {
		return nil, utils.Forbidden("webhooks are not configured")
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.Settings.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, utils.Unauthorized("invalid webhook signature")
	}
	if event.Type != eventCheckoutCompleted {
		s.Logger.Debug("ignoring webhook event", zap.String("type", string(event.Type)))
		return nil, nil
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return nil, utils.Validation("malformed checkout session payload")
	}
	return s.ReconcileSession(ctx, fromStripe(&cs))
}
