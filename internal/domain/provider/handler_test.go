package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newHandlerFixture() (*Handler, *Service) {
	svc := NewService(NewRepoMem())
	return NewHandler(svc), svc
}

func newJSONContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_Create(t *testing.T) {
	h, _ := newHandlerFixture()
	c, rec := newJSONContext(http.MethodPost, "/api/v1/providers",
		`{"name":"City Medical Group","network_status":"in-network","specialty":"cardiology"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var p Provider
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected id in response")
	}
	if p.Specialty == nil || *p.Specialty != "cardiology" {
		t.Errorf("unexpected specialty: %v", p.Specialty)
	}
}

func TestHandler_GetStats(t *testing.T) {
	h, svc := newHandlerFixture()
	p := newTestProvider()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := svc.RecordClaim(context.Background(), p.ID, 5400); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	c, rec := newJSONContext(http.MethodGet, "/api/v1/providers/"+p.ID.String()+"/stats", "")
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.GetStats(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var stats Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if stats.ClaimCount != 1 || stats.TotalSubmitted != 5400 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestHandler_GetStats_UnknownProvider(t *testing.T) {
	h, _ := newHandlerFixture()
	c, _ := newJSONContext(http.MethodGet, "/api/v1/providers/"+uuid.NewString()+"/stats", "")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.GetStats(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
}

func TestHandler_Update_PartialBody(t *testing.T) {
	h, svc := newHandlerFixture()
	p := newTestProvider()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	c, rec := newJSONContext(http.MethodPut, "/api/v1/providers/"+p.ID.String(), `{"network_status":"out-of-network"}`)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got, err := svc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.NetworkStatus != OutOfNetwork {
		t.Errorf("network_status = %q, want out-of-network", got.NetworkStatus)
	}
	if got.Name != "City Medical Group" {
		t.Errorf("partial update clobbered name: %q", got.Name)
	}
}

func TestHandler_Delete_NotFound(t *testing.T) {
	h, _ := newHandlerFixture()
	c, _ := newJSONContext(http.MethodDelete, "/api/v1/providers/"+uuid.NewString(), "")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.Delete(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
}
