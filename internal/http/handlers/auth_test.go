package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/platform/apierr"
	"github.com/ngocanhdo/engkids-backend/internal/services"
)

type fakeAuthService struct {
	checkResult *services.AuthResult
	pinErr      error
	pinResult   *services.AuthResult
}

func (f *fakeAuthService) RegisterUser(context.Context, string, string, string, string) (*types.User, error) {
	return nil, nil
}
func (f *fakeAuthService) CheckAuth(context.Context, string, string) (*services.AuthResult, error) {
	return f.checkResult, nil
}
func (f *fakeAuthService) LoginWithEmail(context.Context, string, string, string) (*services.AuthResult, error) {
	return nil, nil
}
func (f *fakeAuthService) LoginWithPin(context.Context, string, string) (*services.AuthResult, error) {
	return f.pinResult, f.pinErr
}
func (f *fakeAuthService) QuickLogin(context.Context, string, string, string) (*services.AuthResult, error) {
	return nil, nil
}
func (f *fakeAuthService) DemoLogin(context.Context, string, string) (*services.AuthResult, error) {
	return nil, nil
}
func (f *fakeAuthService) Logout(context.Context, string, string) (string, error) {
	return "/login", nil
}
func (f *fakeAuthService) GetAccessTTL() time.Duration { return time.Hour }

func TestLoginPinRendersInvalidPinEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fake := &fakeAuthService{
		pinErr: apierr.New(http.StatusUnauthorized, apierr.CodeInvalidPin, errors.New("Mã PIN không đúng")),
	}
	ah := NewAuthHandler(fake)

	r := gin.New()
	r.POST("/api/auth/login/pin", ah.LoginPin)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login/pin", strings.NewReader(`{"pin":"0000"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 got %d", rec.Code)
	}
	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if envelope.Error.Code != "invalid_pin" {
		t.Fatalf("want code=invalid_pin got %q", envelope.Error.Code)
	}
	if envelope.Error.Message != "Mã PIN không đúng" {
		t.Fatalf("unexpected message: %q", envelope.Error.Message)
	}
}

func TestCheckAuthMintsSessionCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fake := &fakeAuthService{
		checkResult: &services.AuthResult{Authenticated: false, Route: "/login"},
	}
	ah := NewAuthHandler(fake)

	r := gin.New()
	r.GET("/api/auth/check", ah.CheckAuth)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200 got %d", rec.Code)
	}
	var res services.AuthResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if res.Authenticated || res.Route != "/login" {
		t.Fatalf("unexpected resolver result: %+v", res)
	}

	cookieSet := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "engkids_sid" && c.Value != "" {
			cookieSet = true
		}
	}
	if !cookieSet {
		t.Fatal("first contact must mint a session cookie")
	}
}
