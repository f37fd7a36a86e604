package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"fruitshop/m/internal/migrations"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	migrations.Run(db)

	handler := New(db, "test_secret", false)
	server := httptest.NewServer(handler.Router())
	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})
	return server
}

func doJSON(t *testing.T, method, url, token string, payload any) (*http.Response, map[string]any) {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(method, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func registerBoss(t *testing.T, server *httptest.Server) (token, personID string) {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, server.URL+"/auth/register", "", map[string]any{
		"name":     "boss",
		"level":    "boss",
		"email":    "boss@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token = body["token"].(string)
	personID = body["person"].(map[string]any)["id"].(string)
	return token, personID
}

func TestAuthRequired(t *testing.T) {
	server := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, server.URL+"/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	server := newTestServer(t)
	registerBoss(t, server)

	resp, body := doJSON(t, http.MethodPost, server.URL+"/auth/login", "", map[string]any{
		"email":    "boss@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/auth/login", "", map[string]any{
		"email":    "boss@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPurchaseFlowAdjustsInventory(t *testing.T) {
	server := newTestServer(t)
	token, personID := registerBoss(t, server)

	resp, product := doJSON(t, http.MethodPost, server.URL+"/products", token, map[string]any{
		"name":       "apple",
		"unit_price": "30",
		"type":       "fruit",
		"unit_type":  "catty",
		"person_id":  personID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	productID := product["id"].(string)

	resp, purchase := doJSON(t, http.MethodPost, server.URL+"/purchases", token, map[string]any{
		"product_id":     productID,
		"quantity":       5,
		"receiving_date": "2024-05-01 08:00:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	purchaseID := purchase["id"].(string)

	resp, stored := doJSON(t, http.MethodGet, server.URL+"/products/"+productID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 5.0, stored["inventory"])

	resp, _ = doJSON(t, http.MethodDelete, server.URL+"/purchases/"+purchaseID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, stored = doJSON(t, http.MethodGet, server.URL+"/products/"+productID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0.0, stored["inventory"])
}

func TestWastageOverdrawMapsTo422(t *testing.T) {
	server := newTestServer(t)
	token, personID := registerBoss(t, server)

	_, product := doJSON(t, http.MethodPost, server.URL+"/products", token, map[string]any{
		"name":       "pear",
		"unit_price": "20",
		"type":       "fruit",
		"unit_type":  "kilogram",
		"person_id":  personID,
	})
	productID := product["id"].(string)

	resp, wastage := doJSON(t, http.MethodPost, server.URL+"/wastages", token, map[string]any{
		"product_id": productID,
		"quantity":   2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPut, server.URL+"/wastages/"+wastage["id"].(string), token, map[string]any{
		"quantity": 50,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["error"], "pear")
}

func TestUnknownIDMapsTo404(t *testing.T) {
	server := newTestServer(t)
	token, _ := registerBoss(t, server)

	resp, _ := doJSON(t, http.MethodGet, server.URL+"/purchases/missing0000", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
