package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	redisclient "github.com/ngocanhdo/engkids-backend/internal/clients/redis"
	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/platform/apierr"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

type fakeStudentRepo struct {
	byPin  map[string]*types.Student
	byName []*types.Student
}

func (f *fakeStudentRepo) Create(context.Context, *gorm.DB, []*types.Student) ([]*types.Student, error) {
	return nil, nil
}
func (f *fakeStudentRepo) GetByIDs(context.Context, *gorm.DB, []uuid.UUID) ([]*types.Student, error) {
	return nil, nil
}
func (f *fakeStudentRepo) GetByPin(_ context.Context, _ *gorm.DB, pin string) (*types.Student, error) {
	return f.byPin[pin], nil
}
func (f *fakeStudentRepo) SearchByName(context.Context, *gorm.DB, string, string) ([]*types.Student, error) {
	return f.byName, nil
}
func (f *fakeStudentRepo) List(context.Context, *gorm.DB) ([]*types.Student, error) { return nil, nil }
func (f *fakeStudentRepo) UpdateFields(context.Context, *gorm.DB, uuid.UUID, map[string]interface{}) error {
	return nil
}
func (f *fakeStudentRepo) DeleteByIDs(context.Context, *gorm.DB, []uuid.UUID) error { return nil }

type fakeSessionStore struct {
	values  map[string]string
	removed []string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{values: make(map[string]string)}
}

func (f *fakeSessionStore) Get(_ context.Context, sid, key string) (string, bool, error) {
	v, ok := f.values[sid+":"+key]
	return v, ok, nil
}
func (f *fakeSessionStore) Set(_ context.Context, sid, key, value string) error {
	f.values[sid+":"+key] = value
	return nil
}
func (f *fakeSessionStore) Remove(_ context.Context, sid string, keys ...string) error {
	for _, k := range keys {
		delete(f.values, sid+":"+k)
		f.removed = append(f.removed, k)
	}
	return nil
}
func (f *fakeSessionStore) Close() error { return nil }

type fakeAvatarService struct {
	guestUploads int
}

func (f *fakeAvatarService) CreateStudentAvatar(context.Context, *types.Student) error { return nil }
func (f *fakeAvatarService) CreateUserAvatar(context.Context, *types.User) error       { return nil }
func (f *fakeAvatarService) GenerateInitialsPNG(string) (bytes.Buffer, error) {
	return bytes.Buffer{}, nil
}
func (f *fakeAvatarService) UploadGuestAvatar(context.Context, string) (string, error) {
	f.guestUploads++
	return "/media/avatars/guest/test.png", nil
}

func newTestAuth(students *fakeStudentRepo, sessions *fakeSessionStore, avatars AvatarService) AuthService {
	return NewAuthService(nil, logger.Noop(), nil, nil, students, sessions, avatars, "test-secret", 0, 0)
}

func TestLoginWithPinMiss(t *testing.T) {
	svc := newTestAuth(&fakeStudentRepo{byPin: map[string]*types.Student{}}, newFakeSessionStore(), &fakeAvatarService{})

	_, err := svc.LoginWithPin(context.Background(), "sid-1", "9999")
	if err == nil {
		t.Fatal("unknown pin must fail")
	}
	ae := apierr.From(err)
	if ae.Code != apierr.CodeInvalidPin {
		t.Fatalf("want code=%q got=%q", apierr.CodeInvalidPin, ae.Code)
	}
	if ae.Error() != "Mã PIN không đúng" {
		t.Fatalf("unexpected message: %q", ae.Error())
	}
}

func TestLoginWithPinMatch(t *testing.T) {
	student := &types.Student{ID: uuid.New(), Name: "Minh", ClassName: "Lớp 1A", Score: 10, Stars: 2}
	sessions := newFakeSessionStore()
	svc := newTestAuth(&fakeStudentRepo{byPin: map[string]*types.Student{"1234": student}}, sessions, &fakeAvatarService{})

	res, err := svc.LoginWithPin(context.Background(), "sid-1", "1234")
	if err != nil {
		t.Fatalf("LoginWithPin: %v", err)
	}
	if !res.Authenticated || res.Principal.ID != student.ID {
		t.Fatalf("want authenticated principal %s, got %+v", student.ID, res)
	}
	if res.Route != "/student" {
		t.Fatalf("want route /student got %q", res.Route)
	}
	if _, ok := sessions.values["sid-1:"+redisclient.KeyCurrentStudent]; !ok {
		t.Fatal("principal must be persisted under current_student")
	}
	if pin := sessions.values["sid-1:"+redisclient.KeyStudentPin]; pin != "1234" {
		t.Fatalf("want persisted pin 1234 got %q", pin)
	}
}

func TestQuickLoginMatchKeepsRegisteredIdentity(t *testing.T) {
	student := &types.Student{ID: uuid.New(), Name: "Lan", ClassName: "Lớp 1A", Score: 50, Stars: 5}
	sessions := newFakeSessionStore()
	avatars := &fakeAvatarService{}
	svc := newTestAuth(&fakeStudentRepo{byName: []*types.Student{student}}, sessions, avatars)

	res, err := svc.QuickLogin(context.Background(), "sid-1", "lan", "")
	if err != nil {
		t.Fatalf("QuickLogin: %v", err)
	}
	if res.Principal.ID != student.ID || res.Principal.Guest {
		t.Fatalf("match must keep the registered identity, got %+v", res.Principal)
	}
	if res.Principal.Score != 50 {
		t.Fatalf("registered score must survive, got %d", res.Principal.Score)
	}
	if avatars.guestUploads != 0 {
		t.Fatal("no guest avatar for a registered match")
	}
	if sessions.values["sid-1:"+redisclient.KeyIsGuest] != "false" {
		t.Fatalf("is_guest must be false, got %q", sessions.values["sid-1:"+redisclient.KeyIsGuest])
	}
}

func TestQuickLoginMissSynthesizesGuest(t *testing.T) {
	sessions := newFakeSessionStore()
	avatars := &fakeAvatarService{}
	svc := newTestAuth(&fakeStudentRepo{}, sessions, avatars)

	res, err := svc.QuickLogin(context.Background(), "sid-1", "Tí", "Lớp 1B")
	if err != nil {
		t.Fatalf("QuickLogin: %v", err)
	}
	p := res.Principal
	if !p.Guest || p.ID != uuid.Nil {
		t.Fatalf("miss must synthesize a guest with uuid.Nil id, got %+v", p)
	}
	if p.Score != 0 || p.Stars != 0 {
		t.Fatalf("guest starts with zero score and stars, got %d/%d", p.Score, p.Stars)
	}
	if p.Role != types.RoleGuest {
		t.Fatalf("want role guest got %q", p.Role)
	}
	if res.Route != "/student" {
		t.Fatalf("guests land on the student home, got %q", res.Route)
	}
	if avatars.guestUploads != 1 {
		t.Fatalf("want 1 guest avatar upload got %d", avatars.guestUploads)
	}
	if sessions.values["sid-1:"+redisclient.KeyIsGuest] != "true" {
		t.Fatalf("is_guest must be true, got %q", sessions.values["sid-1:"+redisclient.KeyIsGuest])
	}
}

func TestQuickLoginRequiresName(t *testing.T) {
	svc := newTestAuth(&fakeStudentRepo{}, newFakeSessionStore(), &fakeAvatarService{})
	_, err := svc.QuickLogin(context.Background(), "sid-1", "   ", "")
	if apierr.From(err).Code != apierr.CodeValidationFailed {
		t.Fatalf("blank name must fail validation, got %v", err)
	}
}

func TestLogoutClearsEveryRoleKey(t *testing.T) {
	sessions := newFakeSessionStore()
	svc := newTestAuth(&fakeStudentRepo{}, sessions, &fakeAvatarService{})

	sessions.values["sid-1:"+redisclient.KeyCurrentStudent] = "{}"
	sessions.values["sid-1:"+redisclient.KeyCurrentAdmin] = "{}"
	sessions.values["sid-1:"+redisclient.KeyStudentPin] = "1234"

	route, err := svc.Logout(context.Background(), "sid-1", "")
	if err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if route != "/login" {
		t.Fatalf("want /login got %q", route)
	}
	if len(sessions.values) != 0 {
		t.Fatalf("all session keys must be gone, remaining %v", sessions.values)
	}
	want := map[string]bool{}
	for _, k := range redisclient.RoleKeys() {
		want[k] = true
	}
	for _, k := range sessions.removed {
		delete(want, k)
	}
	if len(want) != 0 {
		t.Fatalf("logout skipped role keys: %v", want)
	}
}

func TestCheckAuthFallsBackToSessionStudent(t *testing.T) {
	sessions := newFakeSessionStore()
	svc := newTestAuth(&fakeStudentRepo{}, sessions, &fakeAvatarService{})

	studentID := uuid.New()
	sessions.values["sid-1:"+redisclient.KeyCurrentStudent] = `{"id":"` + studentID.String() + `","display_name":"Minh","role":"student"}`

	res, err := svc.CheckAuth(context.Background(), "sid-1", "")
	if err != nil {
		t.Fatalf("CheckAuth: %v", err)
	}
	if !res.Authenticated || res.Principal.ID != studentID {
		t.Fatalf("want persisted student principal, got %+v", res)
	}
	if res.Route != "/student" {
		t.Fatalf("want route /student got %q", res.Route)
	}

	// repeated calls converge
	again, err := svc.CheckAuth(context.Background(), "sid-1", "")
	if err != nil {
		t.Fatalf("CheckAuth again: %v", err)
	}
	if again.Principal.ID != res.Principal.ID {
		t.Fatal("CheckAuth must be idempotent")
	}
}

func TestCheckAuthUnauthenticated(t *testing.T) {
	svc := newTestAuth(&fakeStudentRepo{}, newFakeSessionStore(), &fakeAvatarService{})

	res, err := svc.CheckAuth(context.Background(), "sid-1", "")
	if err != nil {
		t.Fatalf("CheckAuth: %v", err)
	}
	if res.Authenticated {
		t.Fatal("empty session must resolve unauthenticated")
	}
	if res.Route != "/login" {
		t.Fatalf("want /login got %q", res.Route)
	}
}
