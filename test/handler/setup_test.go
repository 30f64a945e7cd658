package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"souqd/internal/handler"
	"souqd/internal/middleware"
	"souqd/internal/repo"
	"souqd/internal/service"
	"souqd/internal/session"
	"souqd/internal/store"
)

var testJWTSecret = []byte("test-secret")

func setupServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	users := repo.NewUserRepo(filepath.Join(dir, "data.json"))
	products := repo.NewProductRepo(filepath.Join(dir, "products.json"))

	ttl := 5 * time.Minute
	codes := store.NewCodeStore(ttl)
	tokens := store.NewTokenStore(ttl)
	pending := store.NewPendingChangeStore(ttl)
	sessions := session.NewManager(128, time.Hour)

	authService := service.NewAuthService(users, testJWTSecret, time.Hour)
	verifyService := service.NewVerificationService(users, codes, tokens)
	profileService := service.NewProfileService(users, pending)
	productService := service.NewProductService(users, products)

	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService, sessions),
		Verify:    handler.NewVerificationHandler(verifyService, sessions),
		Account:   handler.NewAccountHandler(profileService, sessions),
		Products:  handler.NewProductHandler(productService, sessions),
		Sessions:  sessions,
		JWTSecret: testJWTSecret,
	}

	engine, err := webapi.NewEngine(
		"/api",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)
	return engine
}

// client replays cookies across requests, acting like one browser.
type client struct {
	t       *testing.T
	h       http.Handler
	cookies []*http.Cookie
	bearer  string
}

func newClient(t *testing.T, h http.Handler) *client {
	return &client{t: t, h: h}
}

func (c *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	resp := httptest.NewRecorder()
	c.h.ServeHTTP(resp, req)
	for _, ck := range resp.Result().Cookies() {
		c.storeCookie(ck)
	}
	return resp
}

func (c *client) storeCookie(ck *http.Cookie) {
	for i, existing := range c.cookies {
		if existing.Name == ck.Name {
			c.cookies[i] = ck
			return
		}
	}
	c.cookies = append(c.cookies, ck)
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}

func register(t *testing.T, c *client, email, pass, name string) {
	t.Helper()
	resp := c.do(http.MethodPost, "/api/storage", map[string]string{"email": email, "pass": pass, "name": name})
	require.Equal(t, http.StatusOK, resp.Code)
}

func login(t *testing.T, c *client, email, pass string) string {
	t.Helper()
	resp := c.do(http.MethodPost, "/api/login", map[string]string{"email": email, "pass": pass})
	require.Equal(t, http.StatusOK, resp.Code)
	body := decode(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}
