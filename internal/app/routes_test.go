package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/customer-directory/internal/domain"
	"github.com/simp-lee/customer-directory/internal/module/customer"
)

type stubModule struct {
	registered bool
}

func (m *stubModule) RegisterRoutes(api *gin.RouterGroup) {
	m.registered = true
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
}

func testRepository() domain.CustomerRepository {
	return customer.NewSnapshotRepository([]domain.Customer{
		{ID: "C001", FullName: "Alice Johnson", Email: "alice@example.com", RegistrationDate: "2023-01-15"},
		{ID: "C002", FullName: "Bob Smith", Email: "bob@example.com", RegistrationDate: "2023-03-20"},
	})
}

func TestRegisterRoutes_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		router  *gin.Engine
		deps    *RouteDeps
		wantErr string
	}{
		{
			name:    "nil router",
			router:  nil,
			deps:    &RouteDeps{Modules: []Module{&stubModule{}}},
			wantErr: "router is nil",
		},
		{
			name:    "nil deps",
			router:  gin.New(),
			deps:    nil,
			wantErr: "route dependencies are nil",
		},
		{
			name:    "no modules",
			router:  gin.New(),
			deps:    &RouteDeps{},
			wantErr: "at least one module is required",
		},
		{
			name:    "nil module entry",
			router:  gin.New(),
			deps:    &RouteDeps{Modules: []Module{nil}},
			wantErr: "module at index 0 is nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RegisterRoutes(tt.router, tt.deps)
			if err == nil {
				t.Fatalf("RegisterRoutes() error = nil, want %q", tt.wantErr)
			}
			if err.Error() != tt.wantErr {
				t.Fatalf("RegisterRoutes() error = %q, want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestRegisterRoutes_MountsModulesUnderAPIPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mod := &stubModule{}

	if err := RegisterRoutes(r, &RouteDeps{
		Modules:    []Module{mod},
		Repository: testRepository(),
	}); err != nil {
		t.Fatalf("RegisterRoutes() error = %v", err)
	}
	if !mod.registered {
		t.Fatal("module RegisterRoutes was not called")
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	if err := RegisterRoutes(r, &RouteDeps{
		Modules:    []Module{&stubModule{}},
		Repository: testRepository(),
	}); err != nil {
		t.Fatalf("RegisterRoutes() error = %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
		Customers  int               `json:"customers"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json decode error: %v", err)
	}
	if resp.Status != "ok" {
		t.Fatalf("status = %q, want %q", resp.Status, "ok")
	}
	if resp.Components["snapshot"] != "ok" {
		t.Fatalf("snapshot component = %q, want %q", resp.Components["snapshot"], "ok")
	}
	if resp.Customers != 2 {
		t.Fatalf("customers = %d, want 2", resp.Customers)
	}
}

func TestHealthEndpoint_NilRepository(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	if err := RegisterRoutes(r, &RouteDeps{
		Modules: []Module{&stubModule{}},
	}); err != nil {
		t.Fatalf("RegisterRoutes() error = %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}

	var resp struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json decode error: %v", err)
	}
	if resp.Status != "degraded" {
		t.Fatalf("status = %q, want %q", resp.Status, "degraded")
	}
	if resp.Components["snapshot"] != "error" {
		t.Fatalf("snapshot component = %q, want %q", resp.Components["snapshot"], "error")
	}
}

func TestNoRoute_ReturnsJSONNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	if err := RegisterRoutes(r, &RouteDeps{
		Modules:    []Module{&stubModule{}},
		Repository: testRepository(),
	}); err != nil {
		t.Fatalf("RegisterRoutes() error = %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json decode error: %v", err)
	}
	if resp["error"] != "Resource not found" {
		t.Fatalf("error = %v, want %q", resp["error"], "Resource not found")
	}
	if len(resp) != 1 {
		t.Fatalf("response field count = %d, want 1", len(resp))
	}
}
