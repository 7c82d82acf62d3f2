package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roland778ad/devops-capstone-project/internal/models"
	"github.com/Roland778ad/devops-capstone-project/internal/repositories"
	"github.com/Roland778ad/devops-capstone-project/internal/services"
)

const baseURL = "/accounts"

func newTestRouter() *chi.Mux {
	repo := repositories.NewMemoryAccountRepository()
	service := services.NewAccountService(repo)
	return NewRouter(NewAccountHandler(service))
}

// newAccountRequest builds a valid account payload with a unique email,
// independent of any persistence backend.
func newAccountRequest() services.AccountRequest {
	phone := "555-0100"
	date := models.NewDate(2021, 6, 15)
	return services.AccountRequest{
		Name:        "Jane Doe",
		Email:       "jane-" + uuid.NewString() + "@example.com",
		Address:     "1 Main St",
		PhoneNumber: &phone,
		DateJoined:  &date,
	}
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createAccount(t *testing.T, router http.Handler, payload services.AccountRequest) models.Account {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, baseURL, payload)
	require.Equal(t, http.StatusCreated, rec.Code, "could not create test account")

	var account models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	return account
}

func TestIndex(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Account REST API Service", body["name"])
	assert.Equal(t, "1.0", body["version"])
	assert.Equal(t, "/accounts", body["url"])
}

func TestHealth(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
}

func TestCreateAccount(t *testing.T) {
	router := newTestRouter()
	payload := newAccountRequest()

	rec := doJSON(t, router, http.MethodPost, baseURL, payload)

	require.Equal(t, http.StatusCreated, rec.Code)

	var account models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	assert.NotZero(t, account.ID)
	assert.Equal(t, payload.Name, account.Name)
	assert.Equal(t, payload.Email, account.Email)
	assert.Equal(t, payload.Address, account.Address)
	require.NotNil(t, account.PhoneNumber)
	assert.Equal(t, *payload.PhoneNumber, *account.PhoneNumber)
	assert.Equal(t, payload.DateJoined.String(), account.DateJoined.String())

	// Location header must resolve to the new resource
	location := rec.Header().Get("Location")
	require.NotEmpty(t, location)
	assert.Equal(t, fmt.Sprintf("%s/%d", baseURL, account.ID), location)

	read := doJSON(t, router, http.MethodGet, location, nil)
	require.Equal(t, http.StatusOK, read.Code)

	var fetched models.Account
	require.NoError(t, json.Unmarshal(read.Body.Bytes(), &fetched))
	assert.Equal(t, account, fetched)
}

func TestCreateAccountDefaultsDateJoined(t *testing.T) {
	router := newTestRouter()
	payload := newAccountRequest()
	payload.DateJoined = nil

	rec := doJSON(t, router, http.MethodPost, baseURL, payload)

	require.Equal(t, http.StatusCreated, rec.Code)

	var account models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	assert.Equal(t, models.Today().String(), account.DateJoined.String())
}

func TestCreateAccountBadRequest(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, baseURL, map[string]string{"name": "not enough data"})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Bad Request", body["error"])

	// nothing was persisted
	list := doJSON(t, router, http.MethodGet, baseURL, nil)
	assert.Equal(t, "[]", string(bytes.TrimSpace(list.Body.Bytes())))
}

func TestCreateAccountUnsupportedMediaType(t *testing.T) {
	router := newTestRouter()

	payload, err := json.Marshal(newAccountRequest())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, baseURL, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "test/html")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	// nothing was persisted
	list := doJSON(t, router, http.MethodGet, baseURL, nil)
	assert.Equal(t, "[]", string(bytes.TrimSpace(list.Body.Bytes())))
}

func TestGetAccount(t *testing.T) {
	router := newTestRouter()
	account := createAccount(t, router, newAccountRequest())

	rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("%s/%d", baseURL, account.ID), nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var fetched models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, account.Name, fetched.Name)
}

func TestGetAccountNotFound(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, baseURL+"/0", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Not Found", body["error"])
}

func TestListAccounts(t *testing.T) {
	router := newTestRouter()
	for i := 0; i < 5; i++ {
		createAccount(t, router, newAccountRequest())
	}

	rec := doJSON(t, router, http.MethodGet, baseURL, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var accounts []models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accounts))
	assert.Len(t, accounts, 5)
}

func TestUpdateAccount(t *testing.T) {
	router := newTestRouter()
	account := createAccount(t, router, newAccountRequest())

	payload := newAccountRequest()
	payload.Name = "Something Known"

	rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("%s/%d", baseURL, account.ID), payload)

	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Something Known", updated.Name)

	read := doJSON(t, router, http.MethodGet, fmt.Sprintf("%s/%d", baseURL, account.ID), nil)
	require.Equal(t, http.StatusOK, read.Code)

	var fetched models.Account
	require.NoError(t, json.Unmarshal(read.Body.Bytes(), &fetched))
	assert.Equal(t, "Something Known", fetched.Name)
}

func TestUpdateAccountIgnoresPayloadID(t *testing.T) {
	router := newTestRouter()
	account := createAccount(t, router, newAccountRequest())

	payload := map[string]any{
		"id":      account.ID + 100,
		"name":    "Renamed",
		"email":   account.Email,
		"address": account.Address,
	}

	rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("%s/%d", baseURL, account.ID), payload)

	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, account.ID, updated.ID, "path id is authoritative")
}

func TestUpdateAccountNotFound(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPut, baseURL+"/0", newAccountRequest())

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAccount(t *testing.T) {
	router := newTestRouter()
	account := createAccount(t, router, newAccountRequest())

	rec := doJSON(t, router, http.MethodDelete, fmt.Sprintf("%s/%d", baseURL, account.ID), nil)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	read := doJSON(t, router, http.MethodGet, fmt.Sprintf("%s/%d", baseURL, account.ID), nil)
	assert.Equal(t, http.StatusNotFound, read.Code)
}

func TestDeleteAccountIdempotent(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodDelete, baseURL+"/0", nil)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodDelete, baseURL, nil)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Method Not Allowed", body["error"])
}

func TestUnknownRouteNotFound(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/no-such-route", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSecurityHeadersOnEveryResponse(t *testing.T) {
	router := newTestRouter()
	account := createAccount(t, router, newAccountRequest())

	requests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/"},
		{http.MethodGet, "/health"},
		{http.MethodGet, baseURL},
		{http.MethodGet, fmt.Sprintf("%s/%d", baseURL, account.ID)},
		{http.MethodGet, baseURL + "/0"},   // 404
		{http.MethodDelete, baseURL},       // 405
		{http.MethodGet, "/no-such-route"}, // 404
		{http.MethodPost, baseURL},         // 415, no content type
	}

	for _, tc := range requests {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		headers := rec.Header()
		assert.Equal(t, "SAMEORIGIN", headers.Get("X-Frame-Options"), "%s %s", tc.method, tc.path)
		assert.Equal(t, "nosniff", headers.Get("X-Content-Type-Options"), "%s %s", tc.method, tc.path)
		assert.Equal(t, "default-src 'self'; object-src 'none'", headers.Get("Content-Security-Policy"), "%s %s", tc.method, tc.path)
		assert.Equal(t, "strict-origin-when-cross-origin", headers.Get("Referrer-Policy"), "%s %s", tc.method, tc.path)
	}
}
