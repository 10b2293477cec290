package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"budgetbuddy/internal/auth"
	apperrors "budgetbuddy/internal/errors"
	"budgetbuddy/internal/logger"
	"budgetbuddy/internal/middleware"
	"budgetbuddy/internal/models"
	"budgetbuddy/internal/services"
	"budgetbuddy/internal/validator"
)

// --- mock auth service ---

type mockAuthService struct {
	registerFn func(ctx context.Context, name *string, email, password string) (*services.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*services.AuthResult, error)
	getUserFn  func(ctx context.Context, id uint) (*models.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, name *string, email, password string) (*services.AuthResult, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, name, email, password)
	}
	return &services.AuthResult{User: &models.User{Base: models.Base{ID: 1}, Email: email}, Token: "token"}, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*services.AuthResult, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return &services.AuthResult{User: &models.User{Base: models.Base{ID: 1}, Email: email}, Token: "token"}, nil
}

func (m *mockAuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, id)
	}
	return &models.User{Base: models.Base{ID: id}}, nil
}

// verify interface compliance
var _ services.AuthServicer = (*mockAuthService)(nil)

// --- mock audit service ---

type mockAuditService struct {
	entries []services.AuditEntry
}

func (m *mockAuditService) Log(_ context.Context, entry services.AuditEntry) {
	m.entries = append(m.entries, entry)
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.GET("/auth/me", injectIdentity(1), handler.Me)
	return r
}

func injectIdentity(uid uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := auth.Identity{ID: uid, Email: "user@test.com"}
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), identity))
		c.Set(middleware.IdentityKey, identity)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	if result["code"] != code {
		t.Errorf("expected error code %q, got %v", code, result["code"])
	}
	if msg, _ := result["message"].(string); msg == "" {
		t.Errorf("expected error message, got: %v", result)
	}
}

// --- tests ---

func TestAuthHandler_Register(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		authSvc := &mockAuthService{
			registerFn: func(_ context.Context, name *string, email, _ string) (*services.AuthResult, error) {
				return &services.AuthResult{
					User:  &models.User{Base: models.Base{ID: 1}, Name: name, Email: email, PasswordHash: "$2a$10$secret"},
					Token: "signed-token",
				}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupAuthRouter(NewAuthHandler(authSvc, audit))

		rec := doRequest(r, "POST", "/auth/register", `{"email":"a@x.com","password":"hunter2"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if strings.Contains(rec.Body.String(), "secret") || strings.Contains(rec.Body.String(), "hunter2") {
			t.Errorf("response leaks credentials: %s", rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["token"] != "signed-token" {
			t.Errorf("expected token, got %v", result["token"])
		}
		user := result["user"].(map[string]interface{})
		if user["email"] != "a@x.com" || user["id"] != float64(1) {
			t.Errorf("unexpected user %v", user)
		}
		if len(audit.entries) != 1 || audit.entries[0].Action != services.ActionRegister {
			t.Errorf("expected one REGISTER audit entry, got %+v", audit.entries)
		}
	})

	t.Run("returns 400 on missing password", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/register", `{"email":"a@x.com"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "VALIDATION_ERROR")
	})

	t.Run("returns 400 on malformed JSON", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/register", `{"email":`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 on duplicate email", func(t *testing.T) {
		authSvc := &mockAuthService{
			registerFn: func(context.Context, *string, string, string) (*services.AuthResult, error) {
				return nil, apperrors.ErrEmailTaken
			},
		}
		audit := &mockAuditService{}
		r := setupAuthRouter(NewAuthHandler(authSvc, audit))

		rec := doRequest(r, "POST", "/auth/register", `{"email":"a@x.com","password":"hunter2"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "EMAIL_TAKEN")
		if len(audit.entries) != 0 {
			t.Error("failed registration must not be audited")
		}
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/login", `{"email":"a@x.com","password":"hunter2"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["token"] != "token" {
			t.Errorf("expected token, got %v", result["token"])
		}
	})

	t.Run("returns 401 on invalid credentials", func(t *testing.T) {
		authSvc := &mockAuthService{
			loginFn: func(context.Context, string, string) (*services.AuthResult, error) {
				return nil, apperrors.ErrInvalidCredentials
			},
		}
		r := setupAuthRouter(NewAuthHandler(authSvc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/login", `{"email":"a@x.com","password":"wrong"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "INVALID_CREDENTIALS")
		if result["message"] != "Invalid email or password" {
			t.Errorf("unexpected message %v", result["message"])
		}
	})

	t.Run("returns 400 on missing fields", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/login", `{"email":"a@x.com"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "VALIDATION_ERROR")
	})

	t.Run("returns 500 without leaking internals", func(t *testing.T) {
		authSvc := &mockAuthService{
			loginFn: func(context.Context, string, string) (*services.AuthResult, error) {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, context.DeadlineExceeded)
			},
		}
		r := setupAuthRouter(NewAuthHandler(authSvc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/login", `{"email":"a@x.com","password":"hunter2"}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if strings.Contains(rec.Body.String(), "deadline") {
			t.Errorf("internal error leaked: %s", rec.Body.String())
		}
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("returns stored user", func(t *testing.T) {
		name := "Alice"
		var gotID uint
		svc := &mockAuthService{
			getUserFn: func(_ context.Context, id uint) (*models.User, error) {
				gotID = id
				return &models.User{Base: models.Base{ID: id}, Name: &name, Email: "user@test.com"}, nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/auth/me", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotID != 1 {
			t.Errorf("GetUser called with %d, want 1", gotID)
		}
		user := parseJSON(t, rec)["user"].(map[string]interface{})
		if user["id"] != float64(1) || user["email"] != "user@test.com" || user["name"] != "Alice" {
			t.Errorf("unexpected user %v", user)
		}
	})

	t.Run("returns 404 when user is gone", func(t *testing.T) {
		svc := &mockAuthService{
			getUserFn: func(context.Context, uint) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		r := setupAuthRouter(NewAuthHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/auth/me", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "USER_NOT_FOUND")
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewAuthHandler(&mockAuthService{}, &mockAuditService{})
		r := gin.New()
		r.GET("/auth/me", handler.Me)

		rec := doRequest(r, "GET", "/auth/me", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
