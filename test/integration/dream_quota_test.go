package integration_test

import (
	"fmt"
	"net/http"
	"testing"

	"rooya_backend/internal/models"
	"rooya_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDream_NoSubscription(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginDreamer(t, ts, tx)

	body := map[string]interface{}{
		"title":       "Falling",
		"description": "I was falling through clouds",
	}
	res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/dreams", token, body)

	assert.Equal(t, http.StatusPaymentRequired, res.StatusCode)
	assert.Contains(t, bodyStr, "NO_ACTIVE_SUBSCRIPTION")
}

func TestCreateDream_LetterQuota(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginDreamer(t, ts, tx)

	letterQuota := int64(10)
	plan := helpers.CreatePlan(t, tx, fmt.Sprintf("Tiny-%s", user.ID[:8]), &letterQuota, nil, nil)
	helpers.Subscribe(t, tx, user.ID, plan.ID)

	// 7 letters fit into the quota of 10.
	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/dreams", token, map[string]interface{}{
		"title":       "First",
		"description": "seven77",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	// 5 more letters would exceed it; the dream must not be created.
	res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/dreams", token, map[string]interface{}{
		"title":       "Second",
		"description": "five5",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, "QUOTA_EXCEEDED")

	var count int64
	tx.Model(&models.Dream{}).Where("dreamer_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count, "the denied dream must not be persisted")

	// Exactly 3 remaining letters still fit.
	res, _ = ts.SendRequest(t, tx, "POST", "/api/v1/dreams", token, map[string]interface{}{
		"title":       "Third",
		"description": "ttt",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)
}

func TestCreateDream_LettersCountCodePoints(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginDreamer(t, ts, tx)

	letterQuota := int64(10)
	plan := helpers.CreatePlan(t, tx, fmt.Sprintf("Utf-%s", user.ID[:8]), &letterQuota, nil, nil)
	helpers.Subscribe(t, tx, user.ID, plan.ID)

	// 6 Cyrillic letters are 12 bytes but 6 code points; they must fit.
	res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/dreams", token, map[string]interface{}{
		"title":       "Cyrillic",
		"description": "полёты",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
}

func TestCreateDream_MaxDreams(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginDreamer(t, ts, tx)

	maxDreams := 2
	plan := helpers.CreatePlan(t, tx, fmt.Sprintf("Capped-%s", user.ID[:8]), nil, &maxDreams, nil)
	helpers.Subscribe(t, tx, user.ID, plan.ID)

	for i := 0; i < 2; i++ {
		res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/dreams", token, map[string]interface{}{
			"title":       fmt.Sprintf("Dream %d", i),
			"description": "short",
		})
		require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	}

	res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/dreams", token, map[string]interface{}{
		"title":       "One too many",
		"description": "short",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, "MAX_DREAMS_REACHED")
}

func TestCreateDream_AudioQuota(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginDreamer(t, ts, tx)

	audioQuota := 5
	plan := helpers.CreatePlan(t, tx, fmt.Sprintf("Audio-%s", user.ID[:8]), nil, nil, &audioQuota)
	helpers.Subscribe(t, tx, user.ID, plan.ID)

	res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/dreams", token, map[string]interface{}{
		"title":        "Voice note",
		"description":  "recorded",
		"audioMinutes": 6,
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, "AUDIO_QUOTA_EXCEEDED")

	res, bodyStr = ts.SendRequest(t, tx, "POST", "/api/v1/dreams", token, map[string]interface{}{
		"title":        "Voice note",
		"description":  "recorded",
		"audioMinutes": 5,
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
}

func TestSubscriptionStatus(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginDreamer(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/subscription/status", token, nil)
	assert.Equal(t, http.StatusPaymentRequired, res.StatusCode)
	assert.Contains(t, bodyStr, "NO_ACTIVE_SUBSCRIPTION")

	letterQuota := int64(100)
	plan := helpers.CreatePlan(t, tx, fmt.Sprintf("Status-%s", user.ID[:8]), &letterQuota, nil, nil)
	helpers.Subscribe(t, tx, user.ID, plan.ID)

	res, bodyStr = ts.SendRequest(t, tx, "GET", "/api/v1/subscription/status", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, plan.Name)
	assert.Contains(t, bodyStr, "lettersRemaining")
}
