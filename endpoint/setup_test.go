package endpoint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eppranavaudupa/smartBliendStick/config"
	"github.com/eppranavaudupa/smartBliendStick/middleware"
	"github.com/eppranavaudupa/smartBliendStick/model"
	"github.com/eppranavaudupa/smartBliendStick/notify"
	"github.com/eppranavaudupa/smartBliendStick/util"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fakeSender captures dispatched alert messages for assertions.
type fakeSender struct {
	sent chan string
}

func newFakeSender() *fakeSender {
	return &fakeSender{sent: make(chan string, 4)}
}

func (f *fakeSender) Type() string { return "fake" }

func (f *fakeSender) Send(body string) (string, error) {
	f.sent <- body
	return "FAKE123", nil
}

// testEnv bundles everything an endpoint test needs.
type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	issuer *util.TokenIssuer
	sender *fakeSender
}

// setupTestEnv wires a full router against an in-memory SQLite database, the
// same way main does, with a fake notification sender.
func setupTestEnv(t *testing.T, apiKey string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:endpoint_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.Event{}, &model.User{}, &model.AuditLog{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{
		AppName:   "smartBliendStick",
		AppEnv:    "test",
		APIKey:    apiKey,
		ServerLat: 13.2180,
		ServerLng: 75.0060,
		JWTSecret: "test-secret-123",
	}

	issuer := util.NewTokenIssuer(cfg.JWTSecret)
	sender := newFakeSender()
	dispatcher := notify.NewDispatcher(sender)

	r := gin.New()
	r.POST("/event", SubmitEvent(cfg, db, dispatcher))
	r.GET("/events", middleware.BearerAuth(issuer), ListEvents(db))
	r.POST("/signup", Signup(db))
	r.POST("/login", Login(db, issuer))
	r.GET("/token/validate", ValidateToken(issuer))

	return &testEnv{router: r, db: db, cfg: cfg, issuer: issuer, sender: sender}
}

// doJSON performs a JSON request against the test router.
func (e *testEnv) doJSON(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// signupAndLogin registers a user and returns a valid bearer token.
func (e *testEnv) signupAndLogin(t *testing.T, name, email, password string) string {
	t.Helper()

	w := e.doJSON(t, http.MethodPost, "/signup", map[string]string{
		"name": name, "email": email, "password": password,
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("signup failed: %d %s", w.Code, w.Body.String())
	}

	w = e.doJSON(t, http.MethodPost, "/login", map[string]string{
		"email": email, "password": password,
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("login returned no token: %s", w.Body.String())
	}
	return resp.Token
}
