package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"rooya_backend/internal/auth"
	"rooya_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// CreateUser creates a user and profile in the given transaction. The
// PasswordHash field carries the raw password in; it is hashed here.
func CreateUser(t *testing.T, tx *gorm.DB, email, password, fullName string, role models.ProfileRole) *models.User {
	hash, err := auth.HashPassword(password)
	require.NoError(t, err, "hashing test password must not fail")

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
	}
	require.NoError(t, tx.Create(user).Error, "creating test user must not fail")

	profile := &models.Profile{
		UserID:   user.ID,
		Role:     role,
		FullName: fullName,
	}
	require.NoError(t, tx.Create(profile).Error, "creating test profile must not fail")

	user.Profile = profile
	return user
}

// CreateAndLoginUser creates a user in the transaction and logs in through
// the API, returning the session token.
func CreateAndLoginUser(t *testing.T, ts *TestServer, tx *gorm.DB, email, password, fullName string, role models.ProfileRole) (string, *models.User) {
	user := CreateUser(t, tx, email, password, fullName, role)

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.StatusCode, "login must succeed, got: "+bodyStr)

	var loginResponse struct {
		Token string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &loginResponse))
	require.NotEmpty(t, loginResponse.Token)

	return loginResponse.Token, user
}

// CreateAndLoginDreamer creates a dreamer with a unique email.
func CreateAndLoginDreamer(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("dreamer_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, tx, email, "password123", "Test Dreamer", models.RoleDreamer)
}

// CreateAndLoginInterpreter creates an interpreter with a unique email.
func CreateAndLoginInterpreter(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("interpreter_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, tx, email, "password123", "Test Interpreter", models.RoleInterpreter)
}

// CreateAndLoginAdmin creates an admin with a unique email.
func CreateAndLoginAdmin(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("admin_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, tx, email, "password123", "Test Admin", models.RoleAdmin)
}

// CreatePlan creates a plan row directly in the transaction.
func CreatePlan(t *testing.T, tx *gorm.DB, name string, letterQuota *int64, maxDreams *int, audioQuota *int) *models.Plan {
	plan := &models.Plan{
		Name:             name,
		Price:            9.99,
		Currency:         "USD",
		DurationDays:     30,
		LetterQuota:      letterQuota,
		MaxDreams:        maxDreams,
		AudioMinuteQuota: audioQuota,
		IsActive:         true,
	}
	require.NoError(t, tx.Create(plan).Error, "creating test plan must not fail")
	return plan
}

// Subscribe binds the user to the plan with a fresh active window.
func Subscribe(t *testing.T, tx *gorm.DB, userID, planID string) *models.UserPlan {
	expires := time.Now().AddDate(0, 0, 30)
	sub := &models.UserPlan{
		UserID:    userID,
		PlanID:    planID,
		StartedAt: time.Now(),
		ExpiresAt: &expires,
		IsActive:  true,
	}
	require.NoError(t, tx.Create(sub).Error, "creating test subscription must not fail")
	return sub
}

// CreateDream inserts a dream row directly, bypassing the quota ledger.
func CreateDream(t *testing.T, tx *gorm.DB, dreamerID, title, description string) *models.Dream {
	dream := &models.Dream{
		DreamerID:   dreamerID,
		Title:       title,
		Description: description,
		Status:      models.DreamStatusNew,
	}
	require.NoError(t, tx.Create(dream).Error, "creating test dream must not fail")
	return dream
}
