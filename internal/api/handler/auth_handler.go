package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mouvement-ensemble/membership-portal/internal/api/metrics"
	"github.com/mouvement-ensemble/membership-portal/internal/api/middleware"
	"github.com/mouvement-ensemble/membership-portal/internal/core/domain"
	"github.com/mouvement-ensemble/membership-portal/internal/core/ports"
)

// CookieConfig carries what the auth handler needs to mint session cookies.
type CookieConfig struct {
	Secret string
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	auth   ports.AuthService
	cookie CookieConfig
}

func NewAuthHandler(auth ports.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{auth: auth, cookie: cookie}
}

type loginRequest struct {
	LoginType string `json:"login_type" validate:"required,oneof=email phone"`
	Email     string `json:"email" validate:"required_if=LoginType email,omitempty,email"`
	PhoneCode string `json:"code_telephone" validate:"required_if=LoginType phone,omitempty,dialcode"`
	Phone     string `json:"telephone" validate:"required_if=LoginType phone"`
	Password  string `json:"password" validate:"required"`
}

// credentials maps the wire discriminator onto the login union.
func (r loginRequest) credentials() domain.LoginCredentials {
	if r.LoginType == "phone" {
		return domain.PhoneLogin{DialCode: r.PhoneCode, Number: r.Phone, Password: r.Password}
	}
	return domain.EmailLogin{Email: r.Email, Password: r.Password}
}

type loginResponse struct {
	Member     domain.Member        `json:"member"`
	Status     domain.ProfileStatus `json:"profile_status"`
	RedirectTo string               `json:"redirect_to"`
}

type registerRequest struct {
	Surname    string `json:"nom" validate:"required"`
	GivenName  string `json:"prenom" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	PhoneCode  string `json:"code_telephone" validate:"required,dialcode"`
	Phone      string `json:"telephone" validate:"required"`
	Password   string `json:"password" validate:"required,min=8"`
	Country    string `json:"pays" validate:"required"`
	Department string `json:"departement"`
	Commune    string `json:"commune"`
	City       string `json:"city"`
}

// Login authenticates a member and opens a session.
//
// @Summary      Log in with email or phone credentials
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues(req.LoginType, "invalid_input").Inc()
		return err
	}

	result, err := h.auth.Login(c.Request().Context(), req.credentials())
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(req.LoginType, loginFailureLabel(err)).Inc()
		return err
	}

	c.SetCookie(middleware.NewSessionCookie(h.cookie.Secret, result.SessionID, h.cookie.TTL, h.cookie.Secure))
	metrics.LoginsTotal.WithLabelValues(req.LoginType, "success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Member:     result.Member,
		Status:     result.Status,
		RedirectTo: result.RedirectTo,
	})
}

func loginFailureLabel(err error) string {
	if errors.Is(err, domain.ErrLoginInFlight) {
		return "locked"
	}
	if kind, ok := domain.AuthErrorKind(err); ok {
		return kind.String()
	}
	return "error"
}

// Register forwards a registration to the member API.
//
// @Summary      Register a new member
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Member registration details"
// @Success      201   {object}  domain.Member
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	member, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Surname:    req.Surname,
		GivenName:  req.GivenName,
		Email:      req.Email,
		PhoneCode:  req.PhoneCode,
		Phone:      req.Phone,
		Password:   req.Password,
		Country:    req.Country,
		Department: req.Department,
		Commune:    req.Commune,
		City:       req.City,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, member)
}

// Logout closes the session and expires the cookie. Logging out without a
// session is not an error.
//
// @Summary      Log out
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if sid, ok := middleware.SessionIDFromContext(c); ok {
		if err := h.auth.Logout(c.Request().Context(), sid); err != nil {
			return err
		}
	}
	c.SetCookie(middleware.ExpiredSessionCookie(h.cookie.Secure))
	return c.NoContent(http.StatusNoContent)
}
