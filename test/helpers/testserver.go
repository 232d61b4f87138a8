package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rooya_backend/database"
	"rooya_backend/internal/app"
	"rooya_backend/internal/auth"
	"rooya_backend/internal/config"
	"rooya_backend/internal/logger"
	"rooya_backend/pkg/apperrors"
	"rooya_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestServer drives the full HTTP stack in-process. Requests go straight
// through the router, so a test can hand each request its own database
// transaction and roll everything back afterwards.
type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

// NewTestServer connects to the test database (DATABASE_URL), migrates the
// schema and builds the router exactly as production does.
func NewTestServer(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init("test")
	auth.Init(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)
	apperrors.Debug = true

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database (%s): %v", cfg.Database.DSN, err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get *sql.DB from GORM: %v", err)
	}

	router := app.SetupRouter(cfg, db, sqlDB)

	return &TestServer{
		Router: router,
		DB:     db,
	}
}

func (ts *TestServer) Close() {
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// BeginTransaction opens the transaction a test scopes its writes to.
func (ts *TestServer) BeginTransaction(t *testing.T) *gorm.DB {
	tx := ts.DB.Begin()
	if tx.Error != nil {
		t.Fatalf("failed to begin test transaction: %v", tx.Error)
	}
	return tx
}

func (ts *TestServer) RollbackTransaction(t *testing.T, tx *gorm.DB) {
	if err := tx.Rollback().Error; err != nil && err != gorm.ErrInvalidTransaction {
		t.Logf("rollback failed: %v", err)
	}
}

// SendRequest performs a request against the router with the given
// transaction bound to it; handlers then read and write through that
// transaction instead of the pool. Pass a nil tx to use the pool.
func (ts *TestServer) SendRequest(t *testing.T, tx *gorm.DB, method, path, token string, body interface{}) (*http.Response, string) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tx != nil {
		req = req.WithContext(context.WithValue(req.Context(), contextkeys.DBContextKey, tx))
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)

	res := w.Result()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	res.Body.Close()

	return res, string(resBody)
}

// SendRawRequest is SendRequest for callers that need full control over
// the body and headers, e.g. webhook signature tests.
func (ts *TestServer) SendRawRequest(t *testing.T, tx *gorm.DB, method, path string, body []byte, headers map[string]string) (*http.Response, string) {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if tx != nil {
		req = req.WithContext(context.WithValue(req.Context(), contextkeys.DBContextKey, tx))
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)

	res := w.Result()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	res.Body.Close()

	return res, string(resBody)
}
