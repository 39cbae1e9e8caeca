package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	redisclient "github.com/ngocanhdo/engkids-backend/internal/clients/redis"
	"github.com/ngocanhdo/engkids-backend/internal/data/repos"
	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/domain/auth"
	"github.com/ngocanhdo/engkids-backend/internal/platform/apierr"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

// Localized messages shown to the user. Internal detail goes to the log, the
// client only ever sees these.
const (
	MsgInvalidCredentials = "Email hoặc mật khẩu không đúng"
	MsgInvalidPin         = "Mã PIN không đúng"
	MsgNameRequired       = "Vui lòng nhập tên"
	MsgGenericRetry       = "Có lỗi xảy ra, vui lòng thử lại"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthResult is the normalized outcome of every resolver operation: the
// active principal plus the dashboard route the client should land on.
type AuthResult struct {
	Authenticated bool            `json:"authenticated"`
	Principal     types.Principal `json:"principal"`
	Route         string          `json:"route"`
	AccessToken   string          `json:"access_token,omitempty"`
	RefreshToken  string          `json:"refresh_token,omitempty"`
}

type AuthService interface {
	RegisterUser(ctx context.Context, email, password, displayName, role string) (*types.User, error)
	CheckAuth(ctx context.Context, sid, accessToken string) (*AuthResult, error)
	LoginWithEmail(ctx context.Context, sid, email, password string) (*AuthResult, error)
	LoginWithPin(ctx context.Context, sid, pin string) (*AuthResult, error)
	QuickLogin(ctx context.Context, sid, name, className string) (*AuthResult, error)
	DemoLogin(ctx context.Context, sid, role string) (*AuthResult, error)
	Logout(ctx context.Context, sid, accessToken string) (string, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	studentRepo   repos.StudentRepo
	sessions      redisclient.SessionStore
	avatarService AvatarService
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	studentRepo repos.StudentRepo,
	sessions redisclient.SessionStore,
	avatarService AvatarService,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           baseLog.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		studentRepo:   studentRepo,
		sessions:      sessions,
		avatarService: avatarService,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// RegisterUser creates an email-authenticated account (admin, teacher or
// parent) with a generated initials avatar.
func (as *authService) RegisterUser(ctx context.Context, email, password, displayName, role string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	displayName = strings.TrimSpace(displayName)
	if email == "" || !strings.Contains(email, "@") {
		return nil, apierr.Validation("Email không hợp lệ")
	}
	if len(password) < 8 {
		return nil, apierr.Validation("Mật khẩu phải có ít nhất 8 ký tự")
	}
	if displayName == "" {
		return nil, apierr.Validation(MsgNameRequired)
	}
	r, ok := auth.ParseRole(strings.ToLower(strings.TrimSpace(role)))
	if !ok || r == types.RoleStudent || r == types.RoleGuest {
		return nil, apierr.Validation("Vai trò không hợp lệ")
	}

	existing, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		as.log.Error("email uniqueness check failed", "error", err)
		return nil, apierr.Internal(errors.New(MsgGenericRetry))
	}
	if len(existing) > 0 {
		return nil, apierr.Validation("Email đã được đăng ký")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		as.log.Error("password hash failed", "error", err)
		return nil, apierr.Internal(errors.New(MsgGenericRetry))
	}

	user := &types.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Role:         string(r),
	}
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if aErr := as.avatarService.CreateUserAvatar(ctx, user); aErr != nil {
			as.log.Warn("user avatar generation failed (ignored)", "error", aErr)
		}
		_, cErr := as.userRepo.Create(ctx, tx, []*types.User{user})
		return cErr
	})
	if err != nil {
		as.log.Error("user create failed", "error", err)
		return nil, apierr.Internal(errors.New(MsgGenericRetry))
	}
	return user, nil
}

// CheckAuth resolves the active principal without side effects. Email roles
// are server-validated through the access token first; when the token is
// absent or stale it falls back to the student principal persisted in the
// session store. Repeated calls converge on the same result.
func (as *authService) CheckAuth(ctx context.Context, sid, accessToken string) (*AuthResult, error) {
	if accessToken != "" {
		if p, ok := as.principalFromToken(ctx, accessToken); ok {
			return resolved(p), nil
		}
	}

	if sid != "" {
		p, ok, err := as.loadSessionPrincipal(ctx, sid, redisclient.KeyCurrentStudent)
		if err != nil {
			as.log.Error("session lookup failed", "error", err)
			return nil, apierr.Internal(errors.New(MsgGenericRetry))
		}
		if ok {
			return resolved(p), nil
		}
	}

	return &AuthResult{Route: auth.RouteLogin}, nil
}

func (as *authService) LoginWithEmail(ctx context.Context, sid, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apierr.New(http.StatusUnauthorized, apierr.CodeInvalidCredentials, errors.New(MsgInvalidCredentials))
	}

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		as.log.Error("email lookup failed", "error", err)
		return nil, apierr.Internal(errors.New(MsgGenericRetry))
	}
	if len(users) == 0 {
		return nil, apierr.New(http.StatusUnauthorized, apierr.CodeInvalidCredentials, errors.New(MsgInvalidCredentials))
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apierr.New(http.StatusUnauthorized, apierr.CodeInvalidCredentials, errors.New(MsgInvalidCredentials))
	}

	role, ok := auth.ParseRole(user.Role)
	if !ok {
		as.log.Error("user row carries unknown role", "user_id", user.ID.String(), "role", user.Role)
		return nil, apierr.Internal(errors.New(MsgGenericRetry))
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.userTokenRepo.DeleteByUserIDs(ctx, tx, []uuid.UUID{user.ID}); err != nil {
			return fmt.Errorf("revoke previous tokens: %w", err)
		}
		tok, genErr := as.generateAccessToken(user.ID, role)
		if genErr != nil {
			return fmt.Errorf("generate access token: %w", genErr)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		row := &types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		_, cErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{row})
		return cErr
	})
	if err != nil {
		as.log.Error("email login transaction failed", "error", err)
		return nil, apierr.Internal(errors.New(MsgGenericRetry))
	}

	p := types.Principal{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Role:        role,
		Email:       user.Email,
		AvatarURL:   user.AvatarURL,
	}
	as.persistPrincipal(ctx, sid, p)

	res := resolved(p)
	res.AccessToken = accessToken
	res.RefreshToken = refreshToken
	return res, nil
}

// LoginWithPin is an exact match against the student table. It never
// partially authenticates: a miss changes nothing about the session.
func (as *authService) LoginWithPin(ctx context.Context, sid, pin string) (*AuthResult, error) {
	pin = strings.TrimSpace(pin)
	if !pinPattern.MatchString(pin) {
		return nil, apierr.New(http.StatusUnauthorized, apierr.CodeInvalidPin, errors.New(MsgInvalidPin))
	}

	student, err := as.studentRepo.GetByPin(ctx, nil, pin)
	if err != nil {
		as.log.Error("pin lookup failed", "error", err)
		return nil, apierr.Internal(errors.New(MsgGenericRetry))
	}
	if student == nil {
		return nil, apierr.New(http.StatusUnauthorized, apierr.CodeInvalidPin, errors.New(MsgInvalidPin))
	}

	p := student.Principal()
	as.persistPrincipal(ctx, sid, p)
	if sid != "" {
		if err := as.sessions.Set(ctx, sid, redisclient.KeyStudentPin, pin); err != nil {
			as.log.Warn("could not persist student pin", "error", err)
		}
	}
	return resolved(p), nil
}

// QuickLogin resolves a student by fuzzy name match. A hit authenticates the
// registered student; a miss synthesizes a guest principal so the child can
// start playing without an account.
func (as *authService) QuickLogin(ctx context.Context, sid, name, className string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.Validation(MsgNameRequired)
	}

	matches, err := as.studentRepo.SearchByName(ctx, nil, name, className)
	if err != nil {
		as.log.Error("quick login search failed", "error", err)
		return nil, apierr.Internal(errors.New(MsgGenericRetry))
	}

	var p types.Principal
	if len(matches) > 0 {
		p = matches[0].Principal()
	} else {
		p = auth.GuestPrincipal(name, className)
		if url, aErr := as.avatarService.UploadGuestAvatar(ctx, name); aErr != nil {
			as.log.Warn("guest avatar generation failed (ignored)", "error", aErr)
		} else {
			p.AvatarURL = url
		}
	}

	as.persistPrincipal(ctx, sid, p)
	return resolved(p), nil
}

// DemoLogin issues a canned per-role profile without touching credentials.
// It exists so the team can reach every dashboard when the auth provider or
// database is down.
func (as *authService) DemoLogin(ctx context.Context, sid, role string) (*AuthResult, error) {
	r, ok := auth.ParseRole(strings.ToLower(strings.TrimSpace(role)))
	if !ok {
		return nil, apierr.Validation("Vai trò không hợp lệ")
	}

	p := types.Principal{
		ID:          uuid.New(),
		DisplayName: demoDisplayName(r),
		Role:        r,
		Guest:       r == types.RoleGuest,
	}
	if r == types.RoleAdmin || r == types.RoleTeacher || r == types.RoleParent {
		p.Email = fmt.Sprintf("demo-%s@engkids.vn", string(r))
	}

	as.persistPrincipal(ctx, sid, p)
	return resolved(p), nil
}

// Logout clears every role-scoped session key, not just the active role's,
// and revokes the server-side token row when one is presented.
func (as *authService) Logout(ctx context.Context, sid, accessToken string) (string, error) {
	if sid != "" {
		if err := as.sessions.Remove(ctx, sid, redisclient.RoleKeys()...); err != nil {
			as.log.Error("session clear failed", "error", err)
			return "", apierr.Internal(errors.New(MsgGenericRetry))
		}
	}

	if accessToken != "" {
		tokens, err := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{accessToken})
		if err != nil {
			as.log.Warn("token lookup during logout failed (ignored)", "error", err)
		} else if len(tokens) > 0 {
			ids := make([]uuid.UUID, 0, len(tokens))
			for _, t := range tokens {
				ids = append(ids, t.ID)
			}
			if err := as.userTokenRepo.DeleteByIDs(ctx, nil, ids); err != nil {
				as.log.Warn("token revoke during logout failed (ignored)", "error", err)
			}
		}
	}

	return auth.RouteLogin, nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) generateAccessToken(userID uuid.UUID, role types.Role) (string, error) {
	claims := JWTClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

// principalFromToken validates the JWT signature, then checks the token row
// still exists so a server-side revoke wins over an unexpired JWT.
func (as *authService) principalFromToken(ctx context.Context, tokenString string) (types.Principal, bool) {
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return types.Principal{}, false
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok {
		return types.Principal{}, false
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return types.Principal{}, false
	}

	rows, err := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
	if err != nil || len(rows) == 0 {
		return types.Principal{}, false
	}

	users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil || len(users) == 0 {
		return types.Principal{}, false
	}
	user := users[0]
	role, ok := auth.ParseRole(user.Role)
	if !ok {
		return types.Principal{}, false
	}
	return types.Principal{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Role:        role,
		Email:       user.Email,
		AvatarURL:   user.AvatarURL,
	}, true
}

// persistPrincipal mirrors the principal into its role-scoped session entry.
// Session writes are best effort: losing them degrades to a re-login, never
// to a failed request.
func (as *authService) persistPrincipal(ctx context.Context, sid string, p types.Principal) {
	if sid == "" {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		as.log.Warn("could not marshal principal", "error", err)
		return
	}
	if err := as.sessions.Set(ctx, sid, roleSessionKey(p.Role), string(raw)); err != nil {
		as.log.Warn("could not persist principal", "error", err)
		return
	}
	if p.Role == types.RoleStudent || p.Role == types.RoleGuest {
		guestFlag := "false"
		if p.Guest {
			guestFlag = "true"
		}
		if err := as.sessions.Set(ctx, sid, redisclient.KeyIsGuest, guestFlag); err != nil {
			as.log.Warn("could not persist guest flag", "error", err)
		}
	}
}

func (as *authService) loadSessionPrincipal(ctx context.Context, sid, key string) (types.Principal, bool, error) {
	raw, ok, err := as.sessions.Get(ctx, sid, key)
	if err != nil || !ok {
		return types.Principal{}, false, err
	}
	var p types.Principal
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		as.log.Warn("corrupt session principal, ignoring", "key", key, "error", err)
		return types.Principal{}, false, nil
	}
	return p, true, nil
}

func roleSessionKey(r types.Role) string {
	switch r {
	case types.RoleAdmin:
		return redisclient.KeyCurrentAdmin
	case types.RoleTeacher:
		return redisclient.KeyCurrentTeacher
	case types.RoleParent:
		return redisclient.KeyCurrentParent
	default:
		return redisclient.KeyCurrentStudent
	}
}

func resolved(p types.Principal) *AuthResult {
	return &AuthResult{
		Authenticated: true,
		Principal:     p,
		Route:         auth.DashboardRoute(p.Role),
	}
}

func demoDisplayName(r types.Role) string {
	switch r {
	case types.RoleAdmin:
		return "Quản trị viên demo"
	case types.RoleTeacher:
		return "Giáo viên demo"
	case types.RoleParent:
		return "Phụ huynh demo"
	default:
		return "Học sinh demo"
	}
}
