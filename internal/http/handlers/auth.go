package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ngocanhdo/engkids-backend/internal/http/middleware"
	"github.com/ngocanhdo/engkids-backend/internal/http/response"
	"github.com/ngocanhdo/engkids-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// sessionCookieMaxAge matches the default Redis session TTL (30 days).
const sessionCookieMaxAge = 30 * 24 * 3600

// ensureSessionID returns the caller's session id, minting one and setting
// the cookie when the browser arrives without it.
func ensureSessionID(c *gin.Context) string {
	if sid := middleware.ExtractSessionID(c); sid != "" {
		return sid
	}
	sid := uuid.NewString()
	c.SetCookie(middleware.SessionCookie, sid, sessionCookieMaxAge, "/", "", false, true)
	return sid
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"display_name"`
		Role        string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := ah.authService.RegisterUser(c.Request.Context(), req.Email, req.Password, req.DisplayName, req.Role)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true, "user": user})
}

// CheckAuth is the single entry the frontend calls on every page load: it
// resolves whoever is active and tells the client where to route them.
func (ah *AuthHandler) CheckAuth(c *gin.Context) {
	sid := ensureSessionID(c)
	token := middleware.ExtractToken(c)
	res, err := ah.authService.CheckAuth(c.Request.Context(), sid, token)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (ah *AuthHandler) LoginEmail(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	sid := ensureSessionID(c)
	res, err := ah.authService.LoginWithEmail(c.Request.Context(), sid, req.Email, req.Password)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	expiresIn := int(ah.authService.GetAccessTTL().Seconds())
	response.RespondOK(c, gin.H{
		"authenticated": true,
		"principal":     res.Principal,
		"route":         res.Route,
		"access_token":  res.AccessToken,
		"refresh_token": res.RefreshToken,
		"expires_in":    expiresIn,
		"session_id":    sid,
	})
}

func (ah *AuthHandler) LoginPin(c *gin.Context) {
	var req struct {
		Pin string `json:"pin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	sid := ensureSessionID(c)
	res, err := ah.authService.LoginWithPin(c.Request.Context(), sid, req.Pin)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (ah *AuthHandler) QuickLogin(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		ClassName string `json:"class_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	sid := ensureSessionID(c)
	res, err := ah.authService.QuickLogin(c.Request.Context(), sid, req.Name, req.ClassName)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (ah *AuthHandler) DemoLogin(c *gin.Context) {
	var req struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	sid := ensureSessionID(c)
	res, err := ah.authService.DemoLogin(c.Request.Context(), sid, req.Role)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	sid := middleware.ExtractSessionID(c)
	token := middleware.ExtractToken(c)
	route, err := ah.authService.Logout(c.Request.Context(), sid, token)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true, "route": route})
}
