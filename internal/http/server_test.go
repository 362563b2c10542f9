package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paytrack/internal/core"
	"paytrack/internal/profile"
	"paytrack/internal/service"
	"paytrack/internal/storage"
	"paytrack/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	files := storage.NewFileRepository(t.TempDir())
	svc := service.NewPaymentService(store.New(), files, nil)
	return NewServer(":0", svc, profile.NewRegistry())
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func paymentBody() map[string]any {
	return map[string]any{
		"profileId":   "personal",
		"amount":      120.50,
		"category":    "Insurance",
		"description": "car insurance",
		"date":        "2025-03-15T00:00:00Z",
		"isPaid":      true,
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rr := doJSON(t, srv, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestCreateAndListPayments(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/payments", paymentBody())
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created core.Payment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "personal", created.ProfileID)
	assert.Equal(t, 120.50, created.Amount)

	rr = doJSON(t, srv, http.MethodGet, "/api/payments", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var listed []core.Payment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.True(t, listed[0].Date.Equal(core.NewDate(2025, 3, 15).Time))
}

func TestListEmptyReturnsArray(t *testing.T) {
	srv := newTestServer(t)
	rr := doJSON(t, srv, http.MethodGet, "/api/payments", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestCreatePaymentRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/payments", bytes.NewBufferString("{broken"))
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	body := paymentBody()
	body["category"] = "Groceries"
	rr = doJSON(t, srv, http.MethodPost, "/api/payments", body)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid category")
}

func TestUpdatePayment(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/payments", paymentBody())
	require.Equal(t, http.StatusCreated, rr.Code)
	var created core.Payment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	body := paymentBody()
	body["amount"] = 99.0
	body["isPaid"] = false
	body["dueDate"] = "2025-04-01T00:00:00Z"
	rr = doJSON(t, srv, http.MethodPut, "/api/payments/"+created.ID, body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var updated core.Payment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 99.0, updated.Amount)
	assert.False(t, updated.IsPaid)
	require.NotNil(t, updated.DueDate)

	// Unknown id yields 404 and leaves the stored record untouched.
	rr = doJSON(t, srv, http.MethodPut, "/api/payments/nope", body)
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, srv, http.MethodGet, "/api/payments", nil)
	var listed []core.Payment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, 99.0, listed[0].Amount)
}

func TestDeletePayment(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodPost, "/api/payments", paymentBody())
	require.Equal(t, http.StatusCreated, rr.Code)
	var created core.Payment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = doJSON(t, srv, http.MethodDelete, "/api/payments/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true}`, rr.Body.String())

	rr = doJSON(t, srv, http.MethodDelete, "/api/payments/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestClearPayments(t *testing.T) {
	srv := newTestServer(t)

	for i := 0; i < 3; i++ {
		rr := doJSON(t, srv, http.MethodPost, "/api/payments", paymentBody())
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := doJSON(t, srv, http.MethodPost, "/api/payments/clear", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true}`, rr.Body.String())

	rr = doJSON(t, srv, http.MethodGet, "/api/payments", nil)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestSummary(t *testing.T) {
	srv := newTestServer(t)

	mk := func(profileID string, amount float64, paid bool, date string) {
		body := paymentBody()
		body["profileId"] = profileID
		body["amount"] = amount
		body["isPaid"] = paid
		body["date"] = date
		rr := doJSON(t, srv, http.MethodPost, "/api/payments", body)
		require.Equal(t, http.StatusCreated, rr.Code)
	}
	mk("a", 100, true, "2024-03-15T00:00:00Z")
	mk("b", 50, false, "2024-03-20T00:00:00Z")
	mk("a", 25, false, "2024-04-02T00:00:00Z")

	var sum service.Summary
	rr := doJSON(t, srv, http.MethodGet, "/api/payments/summary", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sum))
	assert.Equal(t, 100.0, sum.TotalPaid)
	assert.Equal(t, 75.0, sum.TotalDue)

	rr = doJSON(t, srv, http.MethodGet, "/api/payments/summary?profileId=a", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sum))
	assert.Equal(t, 100.0, sum.TotalPaid)
	assert.Equal(t, 25.0, sum.TotalDue)

	rr = doJSON(t, srv, http.MethodGet, "/api/payments/summary?month=2024-03", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sum))
	assert.Equal(t, 100.0, sum.TotalPaid)
	assert.Equal(t, 50.0, sum.TotalDue)

	rr = doJSON(t, srv, http.MethodGet, "/api/payments/summary?month=March", nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProfileEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, http.MethodGet, "/api/profiles", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var profiles []core.Profile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &profiles))
	require.Len(t, profiles, 2)

	// Add a new default profile; exactly one default must remain.
	rr = doJSON(t, srv, http.MethodPost, "/api/profiles", map[string]any{
		"name":      "Side Gig",
		"type":      "business",
		"currency":  "EUR",
		"isDefault": true,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created core.Profile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = doJSON(t, srv, http.MethodGet, "/api/profiles", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &profiles))
	defaults := 0
	for _, p := range profiles {
		if p.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)

	// Update.
	rr = doJSON(t, srv, http.MethodPut, "/api/profiles/"+created.ID, map[string]any{
		"name":     "Renamed",
		"type":     "business",
		"currency": "EUR",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, srv, http.MethodPut, "/api/profiles/missing", map[string]any{
		"name": "x", "type": "personal", "currency": "RON",
	})
	require.Equal(t, http.StatusNotFound, rr.Code)

	// Delete down to one profile, then refuse the last.
	rr = doJSON(t, srv, http.MethodDelete, "/api/profiles/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = doJSON(t, srv, http.MethodDelete, "/api/profiles/business", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = doJSON(t, srv, http.MethodDelete, "/api/profiles/personal", nil)
	require.Equal(t, http.StatusConflict, rr.Code)
}

func TestProfileValidation(t *testing.T) {
	srv := newTestServer(t)
	rr := doJSON(t, srv, http.MethodPost, "/api/profiles", map[string]any{
		"name": "", "type": "personal", "currency": "RON",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, srv, http.MethodPost, "/api/profiles", map[string]any{
		"name": "X", "type": "corporate", "currency": "RON",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)
	rr := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "given-id")
	rr2 := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr2, req)
	assert.Equal(t, "given-id", rr2.Header().Get("X-Request-ID"))
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t)
	rr := doJSON(t, srv, http.MethodGet, "/api/payments", nil)
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
}
