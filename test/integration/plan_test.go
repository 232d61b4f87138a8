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

func TestSelfSubscribe_ActivatesPlan(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginDreamer(t, ts, tx)
	plan := helpers.CreatePlan(t, tx, fmt.Sprintf("Self-%s", user.ID[:8]), nil, nil, nil)

	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/plans/subscribe", token, map[string]interface{}{
		"planId": plan.ID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/subscription/status", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, plan.Name)
}

func TestSelfSubscribe_ReplacesActiveSubscription(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginDreamer(t, ts, tx)
	first := helpers.CreatePlan(t, tx, fmt.Sprintf("Old-%s", user.ID[:8]), nil, nil, nil)
	second := helpers.CreatePlan(t, tx, fmt.Sprintf("New-%s", user.ID[:8]), nil, nil, nil)

	for _, planID := range []string{first.ID, second.ID} {
		res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/plans/subscribe", token, map[string]interface{}{
			"planId": planID,
		})
		require.Equal(t, http.StatusCreated, res.StatusCode)
	}

	var active []models.UserPlan
	require.NoError(t, tx.Where("user_id = ? AND is_active = ?", user.ID, true).Find(&active).Error)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].PlanID)
}

func TestSelfSubscribe_InactivePlanRejected(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginDreamer(t, ts, tx)
	plan := helpers.CreatePlan(t, tx, fmt.Sprintf("Retired-%s", user.ID[:8]), nil, nil, nil)
	require.NoError(t, tx.Model(&models.Plan{}).Where("id = ?", plan.ID).Update("is_active", false).Error)

	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/plans/subscribe", token, map[string]interface{}{
		"planId": plan.ID,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestAdminGrantSubscription(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, admin := helpers.CreateAndLoginAdmin(t, ts, tx)
	_, dreamer := helpers.CreateAndLoginDreamer(t, ts, tx)
	plan := helpers.CreatePlan(t, tx, fmt.Sprintf("Granted-%s", admin.ID[:8]), nil, nil, nil)

	path := fmt.Sprintf("/api/v1/admin/users/%s/subscribe", dreamer.ID)
	res, _ := ts.SendRequest(t, tx, "POST", path, adminToken, map[string]interface{}{
		"planId": plan.ID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var sub models.UserPlan
	require.NoError(t, tx.Where("user_id = ? AND is_active = ?", dreamer.ID, true).First(&sub).Error)
	assert.Equal(t, plan.ID, sub.PlanID)
}
