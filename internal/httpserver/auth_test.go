package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domain"
	authsvc "library-backend/internal/service/auth"
)

func TestLoginCustomerHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &stubAuthSvc{customer: &domain.Customer{SSN: "1", Email: "anna@example.com", IsActive: true}}
	router := buildRouter(logDiscard(), nil, testDeps(auth))

	body := `{"email":"anna@example.com","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/customer/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"token":"token-123"`) {
		t.Fatalf("expected token in body: %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "passwordHash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestLoginCustomerHandler_BadCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &stubAuthSvc{loginErr: authsvc.ErrInvalidCredentials}
	router := buildRouter(logDiscard(), nil, testDeps(auth))

	body := `{"email":"anna@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/customer/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok":false`) {
		t.Fatalf("expected error envelope: %s", rec.Body.String())
	}
}

func TestLoginCustomerHandler_UnknownField(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := buildRouter(logDiscard(), nil, testDeps(&stubAuthSvc{}))

	body := `{"email":"anna@example.com","password":"secret","remember":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/customer/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}
}

func TestLoginLibrarianHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &stubAuthSvc{librarian: &domain.Librarian{SSN: "10", Email: "staff@library.local"}}
	router := buildRouter(logDiscard(), nil, testDeps(auth))

	body := `{"email":"staff@library.local","password":"hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/librarian/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"token":"token-456"`) {
		t.Fatalf("expected token in body: %s", rec.Body.String())
	}
}

func TestLogoutHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &stubAuthSvc{actor: domain.Actor{SSN: "1", Role: domain.RoleCustomer}}
	router := buildRouter(logDiscard(), nil, testDeps(auth))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer token-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}
