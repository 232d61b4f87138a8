package integration_test

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"testing"
	"time"

	"rooya_backend/internal/models"
	"rooya_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79/webhook"
)

// signPayload builds a valid Stripe-Signature header for the test secret.
func signPayload(payload []byte) string {
	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, "whsec_test_secret")
	return fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig))
}

func checkoutCompletedEvent(sessionID, userID, planID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_%s",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": %q,
				"amount_total": 999,
				"currency": "usd",
				"metadata": {"user_id": %q, "plan_id": %q}
			}
		}
	}`, sessionID, sessionID, userID, planID))
}

func TestWebhook_BadSignature(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	payload := []byte(`{"type":"checkout.session.completed"}`)
	res, _ := ts.SendRawRequest(t, tx, "POST", "/api/v1/payments/webhook", payload, map[string]string{
		"Stripe-Signature": "t=123,v1=deadbeef",
	})

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestWebhook_ActivatesSubscription(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginDreamer(t, ts, tx)
	letterQuota := int64(1000)
	plan := helpers.CreatePlan(t, tx, fmt.Sprintf("Paid-%s", user.ID[:8]), &letterQuota, nil, nil)

	sessionID := fmt.Sprintf("cs_test_%d", time.Now().UnixNano())
	payload := checkoutCompletedEvent(sessionID, user.ID, plan.ID)

	res, bodyStr := ts.SendRawRequest(t, tx, "POST", "/api/v1/payments/webhook", payload, map[string]string{
		"Stripe-Signature": signPayload(payload),
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var payment models.Payment
	require.NoError(t, tx.Where("reference = ?", sessionID).First(&payment).Error)
	assert.Equal(t, models.PaymentStatusSucceeded, payment.Status)
	assert.InDelta(t, 9.99, payment.Amount, 0.001)

	var sub models.UserPlan
	require.NoError(t, tx.Where("user_id = ? AND plan_id = ?", user.ID, plan.ID).First(&sub).Error)
	assert.True(t, sub.IsActive)
	assert.Equal(t, sessionID, sub.PaymentRef)
	assert.Equal(t, int64(0), sub.LettersUsed)
}

func TestWebhook_DuplicateDelivery(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginDreamer(t, ts, tx)
	letterQuota := int64(1000)
	plan := helpers.CreatePlan(t, tx, fmt.Sprintf("Dup-%s", user.ID[:8]), &letterQuota, nil, nil)

	sessionID := fmt.Sprintf("cs_dup_%d", time.Now().UnixNano())
	payload := checkoutCompletedEvent(sessionID, user.ID, plan.ID)

	for i := 0; i < 2; i++ {
		res, bodyStr := ts.SendRawRequest(t, tx, "POST", "/api/v1/payments/webhook", payload, map[string]string{
			"Stripe-Signature": signPayload(payload),
		})
		require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	}

	var payments int64
	tx.Model(&models.Payment{}).Where("reference = ?", sessionID).Count(&payments)
	assert.Equal(t, int64(1), payments, "redelivery must not create a second payment")

	var subs int64
	tx.Model(&models.UserPlan{}).Where("user_id = ? AND plan_id = ?", user.ID, plan.ID).Count(&subs)
	assert.Equal(t, int64(1), subs)
}

func sessionEvent(eventType, sessionID, userID, planID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_%s",
		"type": %q,
		"data": {
			"object": {
				"id": %q,
				"amount_total": 999,
				"currency": "usd",
				"metadata": {"user_id": %q, "plan_id": %q}
			}
		}
	}`, sessionID, eventType, sessionID, userID, planID))
}

func TestWebhook_AsyncPaymentFailureRecorded(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginDreamer(t, ts, tx)
	letterQuota := int64(1000)
	plan := helpers.CreatePlan(t, tx, fmt.Sprintf("Fail-%s", user.ID[:8]), &letterQuota, nil, nil)

	sessionID := fmt.Sprintf("cs_fail_%d", time.Now().UnixNano())
	payload := sessionEvent("checkout.session.async_payment_failed", sessionID, user.ID, plan.ID)

	res, bodyStr := ts.SendRawRequest(t, tx, "POST", "/api/v1/payments/webhook", payload, map[string]string{
		"Stripe-Signature": signPayload(payload),
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var payment models.Payment
	require.NoError(t, tx.Where("reference = ?", sessionID).First(&payment).Error)
	assert.Equal(t, models.PaymentStatusFailed, payment.Status)
	assert.Equal(t, user.ID, payment.UserID)

	// a failed charge never activates a subscription
	var subs int64
	tx.Model(&models.UserPlan{}).Where("user_id = ? AND plan_id = ?", user.ID, plan.ID).Count(&subs)
	assert.Equal(t, int64(0), subs)
}

func TestWebhook_PaymentIntentFailureRecorded(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginDreamer(t, ts, tx)

	intentID := fmt.Sprintf("pi_fail_%d", time.Now().UnixNano())
	payload := []byte(fmt.Sprintf(`{
		"id": "evt_%s",
		"type": "payment_intent.payment_failed",
		"data": {
			"object": {
				"id": %q,
				"amount": 1999,
				"currency": "usd",
				"metadata": {"user_id": %q}
			}
		}
	}`, intentID, intentID, user.ID))

	res, bodyStr := ts.SendRawRequest(t, tx, "POST", "/api/v1/payments/webhook", payload, map[string]string{
		"Stripe-Signature": signPayload(payload),
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var payment models.Payment
	require.NoError(t, tx.Where("reference = ?", intentID).First(&payment).Error)
	assert.Equal(t, models.PaymentStatusFailed, payment.Status)
	assert.InDelta(t, 19.99, payment.Amount, 0.001)
	assert.Nil(t, payment.PlanID)
}

func TestWebhook_AckBody(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	payload := []byte(`{"id": "evt_ack", "type": "customer.created", "data": {"object": {}}}`)
	res, bodyStr := ts.SendRawRequest(t, tx, "POST", "/api/v1/payments/webhook", payload, map[string]string{
		"Stripe-Signature": signPayload(payload),
	})

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"received": true}`, bodyStr)
}

func TestWebhook_UnknownEventAcked(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	payload := []byte(`{"id": "evt_x", "type": "customer.created", "data": {"object": {}}}`)
	res, _ := ts.SendRawRequest(t, tx, "POST", "/api/v1/payments/webhook", payload, map[string]string{
		"Stripe-Signature": signPayload(payload),
	})

	assert.Equal(t, http.StatusOK, res.StatusCode)
}
