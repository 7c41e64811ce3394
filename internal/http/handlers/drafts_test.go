package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"seaferry/internal/cache"
	"seaferry/internal/domain"
	"seaferry/internal/http/middleware"
)

func newDraftRouter(userID int64) (*gin.Engine, *API) {
	gin.SetMode(gin.TestMode)
	a := &API{Drafts: cache.NewMemoryDraftStore()}

	r := gin.New()
	authed := r.Group("/api/bookings", func(c *gin.Context) {
		// Handler tests inject the context the auth middleware would set.
		middleware.SetRequestContext(c, domain.RequestContext{UserID: domain.ID(userID), Role: "customer"})
	})
	authed.PUT("/draft", a.SaveDraft)
	authed.GET("/draft", a.GetDraft)
	authed.DELETE("/draft", a.ClearDraft)
	return r, a
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDraftEndpoints(t *testing.T) {
	r, _ := newDraftRouter(42)

	// No draft yet.
	w := doJSON(r, http.MethodGet, "/api/bookings/draft?route_id=7", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, body %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["restored"] != false || resp["exists"] != false {
		t.Fatalf("initial get = %v", resp)
	}

	// Save a draft for route 7.
	w = doJSON(r, http.MethodPut, "/api/bookings/draft", map[string]any{
		"route_id":       7,
		"travel_date":    "2026-09-10",
		"departure_time": "08:30",
		"passengers":     2,
		"payment_method": "card",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d, body %s", w.Code, w.Body.String())
	}

	// Same route restores it.
	w = doJSON(r, http.MethodGet, "/api/bookings/draft?route_id=7", nil)
	resp = map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["restored"] != true {
		t.Fatalf("matching route get = %v", resp)
	}
	draft, ok := resp["draft"].(map[string]any)
	if !ok || draft["passengers"].(float64) != 2 {
		t.Fatalf("draft payload = %v", resp["draft"])
	}

	// A different route withholds the draft but reports it exists.
	w = doJSON(r, http.MethodGet, "/api/bookings/draft?route_id=8", nil)
	resp = map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["restored"] != false || resp["exists"] != true {
		t.Fatalf("mismatched route get = %v", resp)
	}

	// Clear, then nothing remains.
	if w = doJSON(r, http.MethodDelete, "/api/bookings/draft", nil); w.Code != http.StatusOK {
		t.Fatalf("clear status = %d", w.Code)
	}
	w = doJSON(r, http.MethodGet, "/api/bookings/draft?route_id=7", nil)
	resp = map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["restored"] != false || resp["exists"] != false {
		t.Fatalf("after clear get = %v", resp)
	}
}

func TestSaveDraftRejectsBadPayload(t *testing.T) {
	r, _ := newDraftRouter(42)

	// Missing route id fails validation.
	w := doJSON(r, http.MethodPut, "/api/bookings/draft", map[string]any{"passengers": 2})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
