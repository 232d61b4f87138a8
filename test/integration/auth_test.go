package integration_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"rooya_backend/internal/models"
	"rooya_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	registerBody := map[string]interface{}{
		"email":    "newdreamer@test.com",
		"password": "super_password123",
		"fullName": "New Dreamer",
	}

	regRes, regBodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusCreated, regRes.StatusCode)
	assert.Contains(t, regBodyStr, "access_token")
	assert.Contains(t, regBodyStr, "newdreamer@test.com")

	loginBody := map[string]interface{}{
		"email":    "newdreamer@test.com",
		"password": "super_password123",
	}
	logRes, logBodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, logRes.StatusCode)
	assert.Contains(t, logBodyStr, "access_token")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	helpers.CreateUser(t, tx, "duplicate@test.com", "password123", "User One", "dreamer")

	duplicateBody := map[string]interface{}{
		"email":    "duplicate@test.com",
		"password": "password_is_long_enough",
		"fullName": "User Two",
	}
	res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/auth/register", "", duplicateBody)

	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, bodyStr, "ALREADY_EXISTS")
}

func TestRegister_ElevatedRoleRejected(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	body := map[string]interface{}{
		"email":    "wannabe_admin@test.com",
		"password": "password_is_long_enough",
		"fullName": "Wannabe Admin",
		"role":     "admin",
	}
	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/auth/register", "", body)

	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestLogin_BadPassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	helpers.CreateUser(t, tx, "user@test.com", "correct-password", "Test User", "dreamer")

	loginBody := map[string]interface{}{
		"email":    "user@test.com",
		"password": "wrong-password",
	}
	res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/auth/login", "", loginBody)

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, bodyStr, "INVALID_CREDENTIALS")
}

func TestRegister_GrantsActiveTrial(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	trial := &models.Plan{
		Name:         fmt.Sprintf("Trial-%d", time.Now().UnixNano()),
		Price:        0,
		Currency:     "USD",
		DurationDays: 30,
		IsActive:     true,
		IsTrial:      true,
		TrialDays:    7,
	}
	require.NoError(t, tx.Create(trial).Error)

	email := fmt.Sprintf("trial_%d@test.com", time.Now().UnixNano())
	before := time.Now()
	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"email":    email,
		"password": "password_is_long_enough",
		"fullName": "Trial Dreamer",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var user models.User
	require.NoError(t, tx.Where("email = ?", email).First(&user).Error)

	var sub models.UserPlan
	require.NoError(t, tx.Where("user_id = ?", user.ID).First(&sub).Error)
	assert.Equal(t, trial.ID, sub.PlanID)
	assert.True(t, sub.IsActive)
	assert.Equal(t, int64(0), sub.LettersUsed)
	assert.Equal(t, 0, sub.AudioMinutesUsed)

	// window is TrialDays, not the plan's DurationDays
	require.NotNil(t, sub.ExpiresAt)
	expected := before.AddDate(0, 0, 7)
	assert.WithinDuration(t, expected, *sub.ExpiresAt, time.Minute)
}

func TestRegister_NoTrialPlanConfigured(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	email := fmt.Sprintf("notrial_%d@test.com", time.Now().UnixNano())
	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"email":    email,
		"password": "password_is_long_enough",
		"fullName": "No Trial",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var user models.User
	require.NoError(t, tx.Where("email = ?", email).First(&user).Error)

	var subs int64
	tx.Model(&models.UserPlan{}).Where("user_id = ?", user.ID).Count(&subs)
	assert.Equal(t, int64(0), subs)
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	email := fmt.Sprintf("cookie_%d@test.com", time.Now().UnixNano())
	helpers.CreateUser(t, tx, email, "password123", "Cookie User", "dreamer")

	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var token string
	for _, cookie := range res.Cookies() {
		if cookie.Name == "token" {
			token = cookie.Value
			assert.True(t, cookie.HttpOnly)
		}
	}
	require.NotEmpty(t, token, "login must set the session cookie")

	// the cookie alone authenticates, no Authorization header needed
	meRes, meBody := ts.SendRawRequest(t, tx, "GET", "/api/v1/me", nil, map[string]string{
		"Cookie": "token=" + token,
	})
	assert.Equal(t, http.StatusOK, meRes.StatusCode)
	assert.Contains(t, meBody, email)
}

func TestMe_RequiresAuth(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, _ := ts.SendRequest(t, tx, "GET", "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	token, user := helpers.CreateAndLoginDreamer(t, ts, tx)
	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/me", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, user.Email)
}
