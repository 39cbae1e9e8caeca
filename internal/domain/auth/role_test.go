package auth

import "testing"

func TestDashboardRouteIsTotal(t *testing.T) {
	cases := []struct {
		role Role
		want string
	}{
		{RoleAdmin, "/admin"},
		{RoleTeacher, "/teacher"},
		{RoleParent, "/parent"},
		{RoleStudent, "/student"},
		{RoleGuest, "/student"},
		{Role("superuser"), "/login"},
		{Role(""), "/login"},
	}
	for _, tc := range cases {
		if got := DashboardRoute(tc.role); got != tc.want {
			t.Fatalf("DashboardRoute(%q): want=%q got=%q", tc.role, tc.want, got)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "teacher", "parent", "student", "guest"} {
		r, ok := ParseRole(valid)
		if !ok || string(r) != valid {
			t.Fatalf("ParseRole(%q): want ok, got %q %v", valid, r, ok)
		}
	}
	for _, invalid := range []string{"", "Admin", "root", "students"} {
		if _, ok := ParseRole(invalid); ok {
			t.Fatalf("ParseRole(%q) must reject", invalid)
		}
	}
}

func TestGuestPrincipal(t *testing.T) {
	p := GuestPrincipal("Tí", "Lớp 1B")
	if !p.Guest {
		t.Fatal("guest flag must be set")
	}
	if p.Registered() {
		t.Fatal("guest must not count as registered")
	}
	if p.Score != 0 || p.Stars != 0 {
		t.Fatalf("guest starts from zero, got %d/%d", p.Score, p.Stars)
	}
}
