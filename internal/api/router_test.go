package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labstack/echo/v4"

	"github.com/cloudmarket/marketplace-api/internal/api/handler"
	"github.com/cloudmarket/marketplace-api/internal/core/service"
	"github.com/cloudmarket/marketplace-api/internal/infrastructure/cache"
	"github.com/cloudmarket/marketplace-api/internal/infrastructure/db/memory"
	"github.com/cloudmarket/marketplace-api/internal/seed"
)

const testSecret = "router-test-secret"

type testServer struct {
	e     *echo.Echo
	store *memory.Store
}

func newTestServer(t *testing.T, readiness map[string]handler.Checker) *testServer {
	t.Helper()
	log := zerolog.Nop()
	store := memory.NewStore()

	f, err := seed.Default()
	require.NoError(t, err)
	f.Products = nil
	f.Offers = nil
	_, err = seed.Run(context.Background(), seed.Repositories{
		Users: store.Users, Products: store.Products, Offers: store.Offers,
	}, f, seed.Options{Clear: true}, log)
	require.NoError(t, err)

	tokens := service.NewTokenService(testSecret)
	audit := service.NopRecorder{}
	ttl := 5 * time.Minute

	e := NewRouter(Deps{
		Log:       log,
		Tokens:    tokens,
		Auth:      service.NewAuthService(store.Users, tokens, log),
		Products:  service.NewProductService(store.Products, cache.NewMemory(nil), ttl, audit, log),
		Offers:    service.NewOfferService(store.Offers, store.Products, cache.NewMemory(nil), ttl, audit, log),
		Users:     service.NewUserService(store.Users, cache.NewMemory(nil), ttl, audit, log),
		Readiness: readiness,
		Registry:  prometheus.NewRegistry(),
		Started:   time.Now(),
	})
	return &testServer{e: e, store: store}
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	rec := s.do(http.MethodPost, "/auth/login", "", `{"email":"`+email+`","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestRouter_LoginCreateAndListProduct(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.login(t, "alice@example.com")

	rec := s.do(http.MethodGet, "/marketplace/products", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode(t, rec)
	assert.Empty(t, page["products"])
	assert.EqualValues(t, 0, page["totalCount"])

	rec = s.do(http.MethodPost, "/marketplace/products", token,
		`{"name":"Test Product","price":49.99,"marketplace":"AWS"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "USD", created["currency"])
	assert.Equal(t, true, created["available"])

	rec = s.do(http.MethodGet, "/marketplace/products", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	page = decode(t, rec)
	products := page["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, id, products[0].(map[string]any)["id"])
	assert.EqualValues(t, 1, page["totalCount"])

	rec = s.do(http.MethodGet, "/marketplace/products/"+id, token, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, "/marketplace/products/"+id, token, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/marketplace/products/"+id, token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "product not found", decode(t, rec)["error"])
}

func TestRouter_OfferLifecycle(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.login(t, "bob@example.com")

	rec := s.do(http.MethodPost, "/marketplace/products", token,
		`{"name":"Compute","price":10,"marketplace":"GCP"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	productID := decode(t, rec)["id"].(string)

	from := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	to := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	rec = s.do(http.MethodPost, "/offers", token,
		`{"title":"Spring","discount":10,"product":"`+productID+`","validFrom":"`+from+`","validTo":"`+to+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	offer := decode(t, rec)
	assert.Equal(t, true, offer["isActive"])

	rec = s.do(http.MethodGet, "/offers?active=true&product="+productID, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode(t, rec)
	require.Len(t, list["offers"], 1)
	details := list["offers"].([]any)[0].(map[string]any)["productDetails"].(map[string]any)
	assert.Equal(t, "Compute", details["name"])

	rec = s.do(http.MethodPost, "/offers", token,
		`{"title":"Backwards","product":"`+productID+`","validFrom":"`+to+`","validTo":"`+from+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_AccessGuard(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{"/marketplace/products", "/offers", "/users/profile"} {
		rec := s.do(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := s.do(http.MethodGet, "/marketplace/products", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := s.login(t, "charlie@example.com")
	rec = s.do(http.MethodGet, "/marketplace/products/not-an-id", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/users/profile", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode(t, rec)
	assert.Equal(t, "charlie@example.com", profile["email"])
	assert.NotContains(t, profile, "passwordHash")
}

func TestRouter_AdminOnlyUserCreation(t *testing.T) {
	s := newTestServer(t, nil)
	body := `{"email":"dana@example.com","password":"password123","name":"Dana"}`

	rec := s.do(http.MethodPost, "/users", s.login(t, "charlie@example.com"), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := s.login(t, "alice@example.com")
	rec = s.do(http.MethodPost, "/users", admin, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "user", decode(t, rec)["role"])

	rec = s.do(http.MethodPost, "/users", admin, body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	s.login(t, "dana@example.com")
}

func TestRouter_InvalidCredentials(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodPost, "/auth/login", "", `{"email":"alice@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials.", decode(t, rec)["error"])

	rec = s.do(http.MethodPost, "/auth/login", "", `{"email":"nobody@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials.", decode(t, rec)["error"])
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t, map[string]handler.Checker{
		"store": func(context.Context) error { return nil },
	})

	rec := s.do(http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])

	rec = s.do(http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome to the Unified Cloud Marketplace Management System API.")

	rec = s.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ReadinessDegraded(t *testing.T) {
	s := newTestServer(t, map[string]handler.Checker{
		"store": func(context.Context) error { return assert.AnError },
	})

	rec := s.do(http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
