package stripe

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79/webhook"
	"github.com/techforge-labs/fulfillment/internal/domain/entity"
	domainErrors "github.com/techforge-labs/fulfillment/internal/domain/errors"
	"go.uber.org/zap"
)

const testWebhookSecret = "whsec_test_secret"

func signPayload(t *testing.T, payload []byte) string {
	t.Helper()
	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, testWebhookSecret)
	return fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig))
}

func completionPayload(metadata string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_1",
				"amount_total": 7900,
				"customer_details": {"email": "buyer@example.com"}%s
			}
		}
	}`, metadata))
}

func TestVerifyEventParsesCompletion(t *testing.T) {
	provider := NewProvider(testWebhookSecret, "https://techforge.dev", zap.NewNop())
	payload := completionPayload(`,
				"metadata": {"plan": "pro", "user_id": "user-1", "ref": "partner42"}`)

	ev, err := provider.VerifyEvent(payload, signPayload(t, payload))

	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", ev.ID, "session id, not event id, keys idempotency")
	assert.True(t, ev.IsCompletion())
	assert.Equal(t, entity.PlanPro, ev.Plan)
	assert.Equal(t, "user-1", ev.UserID)
	assert.Equal(t, "partner42", ev.AffiliateCode)
	assert.Equal(t, int64(7900), ev.AmountTotal)
	assert.Equal(t, "buyer@example.com", ev.Email)
}

func TestVerifyEventInvalidSignature(t *testing.T) {
	provider := NewProvider(testWebhookSecret, "https://techforge.dev", zap.NewNop())
	payload := completionPayload("")

	ev, err := provider.VerifyEvent(payload, "t=1,v1=deadbeef")

	require.Error(t, err)
	assert.Nil(t, ev)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidSignature)
}

func TestVerifyEventTamperedPayload(t *testing.T) {
	provider := NewProvider(testWebhookSecret, "https://techforge.dev", zap.NewNop())
	payload := completionPayload("")
	sig := signPayload(t, payload)

	tampered := append([]byte(nil), payload...)
	tampered[len(tampered)-2] = ' '

	_, err := provider.VerifyEvent(tampered, sig)
	assert.True(t, errors.Is(err, domainErrors.ErrInvalidSignature))
}

func TestVerifyEventCompletionWithoutPlanMetadata(t *testing.T) {
	provider := NewProvider(testWebhookSecret, "https://techforge.dev", zap.NewNop())

	tests := []struct {
		name     string
		metadata string
	}{
		{name: "no metadata at all", metadata: ""},
		{name: "metadata without plan key", metadata: `,
				"metadata": {"user_id": "user-1"}`},
		{name: "unknown plan value", metadata: `,
				"metadata": {"plan": "gold"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := completionPayload(tt.metadata)
			ev, err := provider.VerifyEvent(payload, signPayload(t, payload))

			require.NoError(t, err, "a verified event must never bounce back to the gateway")
			assert.True(t, ev.IsCompletion())
			assert.False(t, ev.HasValidPlan())
		})
	}
}

func TestVerifyEventIgnoresOtherTypes(t *testing.T) {
	provider := NewProvider(testWebhookSecret, "https://techforge.dev", zap.NewNop())
	payload := []byte(`{"id": "evt_2", "type": "invoice.paid", "data": {"object": {}}}`)

	ev, err := provider.VerifyEvent(payload, signPayload(t, payload))

	require.NoError(t, err)
	assert.False(t, ev.IsCompletion())
	assert.Equal(t, "evt_2", ev.ID)
}
