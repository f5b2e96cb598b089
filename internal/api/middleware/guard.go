package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mouvement-ensemble/membership-portal/internal/api/metrics"
	"github.com/mouvement-ensemble/membership-portal/internal/core/ports"
)

// NoticeCookie carries a one-time, user-facing notice set when a guard
// redirects a member away from the admin area. The client displays it once
// and deletes it.
const NoticeCookie = "mp_notice"

const noticeAdminOnly = "admin_area_requires_admin_role"

// PrivateGuard denies unauthenticated navigation: without a session the
// request is redirected to the login view. Role is not checked. Guards fail
// closed: any doubt about the session means a redirect, never a render.
func PrivateGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := SessionFromContext(c); !ok {
				metrics.GuardDenialsTotal.WithLabelValues("private", "no_session").Inc()
				return c.Redirect(http.StatusSeeOther, ports.PathLogin)
			}
			return next(c)
		}
	}
}

// AdminGuard additionally requires the admin role. A logged-in member with
// the wrong role is sent to the member area with a one-time notice; a
// session exists, so the login page would be the wrong destination.
func AdminGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := SessionFromContext(c)
			if !ok {
				metrics.GuardDenialsTotal.WithLabelValues("admin", "no_session").Inc()
				return c.Redirect(http.StatusSeeOther, ports.PathLogin)
			}
			if !session.Member.IsAdmin() {
				metrics.GuardDenialsTotal.WithLabelValues("admin", "wrong_role").Inc()
				c.SetCookie(&http.Cookie{
					Name:     NoticeCookie,
					Value:    noticeAdminOnly,
					Path:     "/",
					MaxAge:   60,
					SameSite: http.SameSiteLaxMode,
				})
				return c.Redirect(http.StatusSeeOther, ports.PathMemberArea)
			}
			return next(c)
		}
	}
}
