package payment

import (
	"context"
	"testing"

	"decorhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"
)

const testWebhookSecret = "whsec_test_secret"

const checkoutCompletedEvent = `{
  "id": "evt_1",
  "object": "event",
  "type": "checkout.session.completed",
  "data": {
    "object": {
      "id": "cs_test_1",
      "object": "checkout.session",
      "payment_status": "paid",
      "payment_intent": "pi_123",
      "amount_total": 50000,
      "currency": "bdt",
      "metadata": {"bookingId": "b-1", "customer": "amina@decorhub.test", "serviceName": "Wedding Stage"}
    }
  }
}`

func sign(payload string, secret string) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: []byte(payload),
		Secret:  secret,
	}).Header
}

func TestHandleWebhook_ReconcilesOnce(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t)
	f.svc.Settings.WebhookSecret = testWebhookSecret

	res, err := f.svc.HandleWebhook(ctx, []byte(checkoutCompletedEvent), sign(checkoutCompletedEvent, testWebhookSecret))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "pi_123", res.TransactionID)
	assert.Equal(t, 500.0, res.Payment.Price)

	// Stripe redelivers; the ledger still holds one entry.
	again, err := f.svc.HandleWebhook(ctx, []byte(checkoutCompletedEvent), sign(checkoutCompletedEvent, testWebhookSecret))
	require.NoError(t, err)
	assert.True(t, again.Duplicate)
	assert.Equal(t, 1, f.store.PaymentCount())
}

func TestHandleWebhook_RejectsBadSignature(t *testing.T) {
	f := newPaymentFixture(t)
	f.svc.Settings.WebhookSecret = testWebhookSecret

	_, err := f.svc.HandleWebhook(context.Background(), []byte(checkoutCompletedEvent), sign(checkoutCompletedEvent, "whsec_other"))
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
	assert.Equal(t, 0, f.store.PaymentCount())
}

func TestHandleWebhook_IgnoresOtherEvents(t *testing.T) {
	f := newPaymentFixture(t)
	f.svc.Settings.WebhookSecret = testWebhookSecret
	payload := `{"id":"evt_2","object":"event","type":"customer.created","data":{"object":{"id":"cus_1"}}}`

	res, err := f.svc.HandleWebhook(context.Background(), []byte(payload), sign(payload, testWebhookSecret))
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestHandleWebhook_RequiresSecret(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.svc.HandleWebhook(context.Background(), []byte(checkoutCompletedEvent), "t=1,v1=00")
	assert.ErrorIs(t, err, utils.ErrForbidden)
}
