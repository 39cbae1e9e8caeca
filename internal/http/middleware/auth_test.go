package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/platform/ctxutil"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
	"github.com/ngocanhdo/engkids-backend/internal/services"
)

// fakeAuthService resolves every request to a fixed result.
type fakeAuthService struct {
	result *services.AuthResult

	lastSID   string
	lastToken string
}

func (f *fakeAuthService) RegisterUser(context.Context, string, string, string, string) (*types.User, error) {
	return nil, nil
}
func (f *fakeAuthService) CheckAuth(_ context.Context, sid, token string) (*services.AuthResult, error) {
	f.lastSID = sid
	f.lastToken = token
	return f.result, nil
}
func (f *fakeAuthService) LoginWithEmail(context.Context, string, string, string) (*services.AuthResult, error) {
	return nil, nil
}
func (f *fakeAuthService) LoginWithPin(context.Context, string, string) (*services.AuthResult, error) {
	return nil, nil
}
func (f *fakeAuthService) QuickLogin(context.Context, string, string, string) (*services.AuthResult, error) {
	return nil, nil
}
func (f *fakeAuthService) DemoLogin(context.Context, string, string) (*services.AuthResult, error) {
	return nil, nil
}
func (f *fakeAuthService) Logout(context.Context, string, string) (string, error) { return "", nil }
func (f *fakeAuthService) GetAccessTTL() time.Duration                            { return time.Hour }

func TestRequireAuthRejectsUnresolved(t *testing.T) {
	fake := &fakeAuthService{result: &services.AuthResult{Authenticated: false, Route: "/login"}}
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(logger.Noop(), fake)

	r := gin.New()
	r.GET("/probe", am.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
}

func TestRequireAuthAttachesPrincipal(t *testing.T) {
	studentID := uuid.New()
	fake := &fakeAuthService{result: &services.AuthResult{
		Authenticated: true,
		Principal:     types.Principal{ID: studentID, DisplayName: "Minh", Role: types.RoleStudent},
		Route:         "/student",
	}}
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(logger.Noop(), fake)

	var seen types.Principal
	r := gin.New()
	r.GET("/probe", am.RequireAuth(), func(c *gin.Context) {
		p, ok := ctxutil.GetPrincipal(c.Request.Context())
		require.True(t, ok, "principal must be attached")
		seen = p
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Session-ID", "sid-1")
	req.Header.Set("Authorization", "Bearer tok-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, studentID, seen.ID)
	assert.Equal(t, "sid-1", fake.lastSID)
	assert.Equal(t, "tok-1", fake.lastToken)
}

func TestRequireRole(t *testing.T) {
	fake := &fakeAuthService{result: &services.AuthResult{
		Authenticated: true,
		Principal:     types.Principal{ID: uuid.New(), Role: types.RoleTeacher},
	}}
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(logger.Noop(), fake)

	r := gin.New()
	admin := r.Group("/admin", am.RequireAuth(), am.RequireRole(types.RoleAdmin))
	admin.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })
	editor := r.Group("/editor", am.RequireAuth(), am.RequireRole(types.RoleAdmin, types.RoleTeacher))
	editor.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/probe", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code, "teacher must not reach admin routes")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/editor/probe", nil))
	assert.Equal(t, http.StatusOK, rec.Code, "teacher may use the editor")
}

func TestExtractTokenPrefersQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/probe?token=q-token", nil)
	c.Request.Header.Set("Authorization", "Bearer h-token")

	assert.Equal(t, "q-token", ExtractToken(c))

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/probe", nil)
	c.Request.Header.Set("Authorization", "Bearer h-token")
	assert.Equal(t, "h-token", ExtractToken(c))
}
