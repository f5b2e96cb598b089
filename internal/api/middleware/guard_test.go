package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mouvement-ensemble/membership-portal/internal/core/domain"
	"github.com/mouvement-ensemble/membership-portal/internal/core/ports"
)

func guardContext(t *testing.T, target string, session *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if session != nil {
		c.Set(ctxSessionIDKey, session.ID)
		c.Set(ctxSessionKey, *session)
	}
	return c, rec
}

func mustNotReachNext(t *testing.T) echo.HandlerFunc {
	return func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	}
}

func renderOK(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true
		return c.NoContent(http.StatusOK)
	}
}

func TestPrivateGuard_NoSessionRedirectsToLogin(t *testing.T) {
	for _, target := range []string{"/member", "/member/card", "/member/profile"} {
		c, rec := guardContext(t, target, nil)

		if err := PrivateGuard()(mustNotReachNext(t))(c); err != nil {
			t.Fatalf("guard returned error: %v", err)
		}
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("%s: expected 303, got %d", target, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != ports.PathLogin {
			t.Fatalf("%s: expected redirect to %s, got %s", target, ports.PathLogin, loc)
		}
	}
}

func TestPrivateGuard_SessionRenders(t *testing.T) {
	session := &domain.Session{ID: "s-1", Token: "tok", Member: domain.Member{ID: "m-1", Role: domain.RoleMember}}
	c, rec := guardContext(t, "/member", session)

	called := false
	if err := PrivateGuard()(renderOK(&called))(c); err != nil {
		t.Fatalf("guard returned error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected render, got called=%v code=%d", called, rec.Code)
	}
}

func TestPrivateGuard_AdminSessionRendersWithoutRoleCheck(t *testing.T) {
	// An admin navigating a member-only page renders normally; PrivateGuard
	// checks presence, not role.
	session := &domain.Session{ID: "s-1", Token: "tok", Member: domain.Member{ID: "a-1", Role: domain.RoleAdmin}}
	c, rec := guardContext(t, "/member/card", session)

	called := false
	if err := PrivateGuard()(renderOK(&called))(c); err != nil {
		t.Fatalf("guard returned error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected render for admin, got called=%v code=%d", called, rec.Code)
	}
}

func TestAdminGuard_NoSessionRedirectsToLogin(t *testing.T) {
	c, rec := guardContext(t, "/admin", nil)

	if err := AdminGuard()(mustNotReachNext(t))(c); err != nil {
		t.Fatalf("guard returned error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != ports.PathLogin {
		t.Fatalf("expected 303 to %s, got %d %s", ports.PathLogin, rec.Code, rec.Header().Get("Location"))
	}
}

func TestAdminGuard_MemberRedirectedToMemberArea(t *testing.T) {
	session := &domain.Session{ID: "s-1", Token: "tok", Member: domain.Member{ID: "m-1", Role: domain.RoleMember}}
	c, rec := guardContext(t, "/admin", session)

	if err := AdminGuard()(mustNotReachNext(t))(c); err != nil {
		t.Fatalf("guard returned error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	// A session exists, so the member area is the target, never the login
	// page.
	if loc := rec.Header().Get("Location"); loc != ports.PathMemberArea {
		t.Fatalf("expected redirect to %s, got %s", ports.PathMemberArea, loc)
	}

	var notice *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == NoticeCookie {
			notice = cookie
		}
	}
	if notice == nil || notice.Value == "" {
		t.Fatalf("expected a one-time notice cookie")
	}
}

func TestAdminGuard_AdminRenders(t *testing.T) {
	session := &domain.Session{ID: "s-1", Token: "tok", Member: domain.Member{ID: "a-1", Role: domain.RoleAdmin}}
	c, rec := guardContext(t, "/admin", session)

	called := false
	if err := AdminGuard()(renderOK(&called))(c); err != nil {
		t.Fatalf("guard returned error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected render, got called=%v code=%d", called, rec.Code)
	}
}
