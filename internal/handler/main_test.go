package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/config"
	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/database"
	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	testSessionSecret = "test-session-secret"
	testResetSecret   = "test-reset-secret"
	testFrontendURL   = "http://localhost:3000"
)

// fakeMailer captures outgoing reset mail instead of dialing SMTP.
type fakeMailer struct {
	fail bool
	to   []string
	urls []string
}

func (f *fakeMailer) SendPasswordReset(to, resetURL string) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.to = append(f.to, to)
	f.urls = append(f.urls, resetURL)
	return nil
}

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	mailer *fakeMailer
}

// newTestEnv wires a full router against an isolated in-memory database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// a named shared-cache DSN keeps gorm's pooled connections on the
	// same in-memory database while isolating tests from each other
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "open test database")
	require.NoError(t, database.AutoMigrate(db), "migrate test database")

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		Auth: config.AuthConfig{
			SessionSecret: testSessionSecret,
			ResetSecret:   testResetSecret,
		},
		App: config.AppSubConfig{FrontendBaseURL: testFrontendURL},
	}

	mailer := &fakeMailer{}
	r := router.SetupRouter(cfg, db, mailer, zap.NewNop())

	return &testEnv{db: db, router: r, mailer: mailer}
}

// do performs a request with an optional JSON body and bearer token.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates a user and returns a session token.
func (e *testEnv) registerAndLogin(t *testing.T, email, username, password string) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/registerUser", gin.H{
		"email":    email,
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "register %s: %s", username, w.Body.String())

	w = e.do(t, http.MethodPost, "/loginuser", gin.H{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "login %s: %s", username, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
