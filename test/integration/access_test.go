package integration_test

import (
	"net/http"
	"testing"

	"rooya_backend/internal/models"
	"rooya_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignInterpreter_DreamerForbidden(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	dreamerToken, dreamer := helpers.CreateAndLoginDreamer(t, ts, tx)
	_, interpreter := helpers.CreateAndLoginInterpreter(t, ts, tx)
	dream := helpers.CreateDream(t, tx, dreamer.ID, "Flying", "Over the sea")

	res, _ := ts.SendRequest(t, tx, "PATCH", "/api/v1/dreams/"+dream.ID, dreamerToken, map[string]interface{}{
		"interpreter_id": interpreter.ID,
	})

	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestAssignInterpreter_AdminSucceeds(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	_, dreamer := helpers.CreateAndLoginDreamer(t, ts, tx)
	_, interpreter := helpers.CreateAndLoginInterpreter(t, ts, tx)
	dream := helpers.CreateDream(t, tx, dreamer.ID, "Flying", "Over the sea")

	res, bodyStr := ts.SendRequest(t, tx, "PATCH", "/api/v1/dreams/"+dream.ID, adminToken, map[string]interface{}{
		"interpreter_id": interpreter.ID,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var updated models.Dream
	require.NoError(t, tx.First(&updated, "id = ?", dream.ID).Error)
	require.NotNil(t, updated.InterpreterID)
	assert.Equal(t, interpreter.ID, *updated.InterpreterID)
	assert.Equal(t, models.DreamStatusPendingInterpretation, updated.Status)
}

func TestInterpretation_AdminCannotWrite(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	_, dreamer := helpers.CreateAndLoginDreamer(t, ts, tx)
	dream := helpers.CreateDream(t, tx, dreamer.ID, "Maze", "Endless corridors")

	res, _ := ts.SendRequest(t, tx, "PATCH", "/api/v1/dreams/"+dream.ID, adminToken, map[string]interface{}{
		"interpretation": "It means change",
	})

	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestInterpretation_AssignedInterpreterWrites(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	interpToken, interpreter := helpers.CreateAndLoginInterpreter(t, ts, tx)
	_, dreamer := helpers.CreateAndLoginDreamer(t, ts, tx)
	dream := helpers.CreateDream(t, tx, dreamer.ID, "Maze", "Endless corridors")

	// Not assigned yet: forbidden.
	res, _ := ts.SendRequest(t, tx, "PATCH", "/api/v1/dreams/"+dream.ID, interpToken, map[string]interface{}{
		"interpretation": "It means change",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	require.NoError(t, tx.Model(&models.Dream{}).Where("id = ?", dream.ID).
		Update("interpreter_id", interpreter.ID).Error)

	res, bodyStr := ts.SendRequest(t, tx, "PATCH", "/api/v1/dreams/"+dream.ID, interpToken, map[string]interface{}{
		"interpretation": "It means change",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
}

func TestMessaging_ClosedUntilAssignment(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	dreamerToken, dreamer := helpers.CreateAndLoginDreamer(t, ts, tx)
	_, interpreter := helpers.CreateAndLoginInterpreter(t, ts, tx)
	dream := helpers.CreateDream(t, tx, dreamer.ID, "Ocean", "Deep water")

	// No interpreter assigned: both read and write are closed, even for
	// the owner.
	res, _ := ts.SendRequest(t, tx, "GET", "/api/v1/dreams/"+dream.ID+"/messages", dreamerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, "POST", "/api/v1/dreams/"+dream.ID+"/messages", dreamerToken, map[string]interface{}{
		"body": "Hello?",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	require.NoError(t, tx.Model(&models.Dream{}).Where("id = ?", dream.ID).
		Update("interpreter_id", interpreter.ID).Error)

	res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/dreams/"+dream.ID+"/messages", dreamerToken, map[string]interface{}{
		"body": "Hello!",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	res, _ = ts.SendRequest(t, tx, "GET", "/api/v1/dreams/"+dream.ID+"/messages", dreamerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestDreamVisibility_Scoped(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginDreamer(t, ts, tx)
	strangerToken, _ := helpers.CreateAndLoginDreamer(t, ts, tx)
	dream := helpers.CreateDream(t, tx, owner.ID, "Private", "Secret dream")

	res, _ := ts.SendRequest(t, tx, "GET", "/api/v1/dreams/"+dream.ID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, "GET", "/api/v1/dreams/"+dream.ID, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestAdminStats_RoleGated(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	dreamerToken, _ := helpers.CreateAndLoginDreamer(t, ts, tx)
	res, _ := ts.SendRequest(t, tx, "GET", "/api/v1/admin/stats", dreamerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/admin/stats", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "total_users")
}

func TestRoleChange_SuperAdminOnly(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	_, target := helpers.CreateAndLoginDreamer(t, ts, tx)

	// Plain admin may not change roles.
	res, _ := ts.SendRequest(t, tx, "PATCH", "/api/v1/admin/users/"+target.ID+"/role", adminToken, map[string]interface{}{
		"role": "interpreter",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	superToken, _ := helpers.CreateAndLoginUser(t, ts, tx,
		"super@test.com", "password123", "Super Admin", models.RoleSuperAdmin)
	res, bodyStr := ts.SendRequest(t, tx, "PATCH", "/api/v1/admin/users/"+target.ID+"/role", superToken, map[string]interface{}{
		"role": "interpreter",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var profile models.Profile
	require.NoError(t, tx.Where("user_id = ?", target.ID).First(&profile).Error)
	assert.Equal(t, models.RoleInterpreter, profile.Role)
}
