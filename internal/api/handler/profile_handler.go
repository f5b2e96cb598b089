package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mouvement-ensemble/membership-portal/internal/api/middleware"
	"github.com/mouvement-ensemble/membership-portal/internal/core/domain"
	"github.com/mouvement-ensemble/membership-portal/internal/core/ports"
)

// ProfileHandler serves the member area: dashboard snapshot, profile reads,
// and the two profile write paths.
type ProfileHandler struct {
	auth ports.AuthService
}

func NewProfileHandler(auth ports.AuthService) *ProfileHandler {
	return &ProfileHandler{auth: auth}
}

type profileResponse struct {
	Member domain.Member        `json:"member"`
	Status domain.ProfileStatus `json:"profile_status"`
}

type profileUpdateRequest struct {
	PhoneCode          string `json:"code_telephone" validate:"omitempty,dialcode"`
	Phone              string `json:"telephone"`
	CityOfResidence    string `json:"ville"`
	CityOfMobilization string `json:"ville_mobilisation"`
	Section            string `json:"section"`
	Interests          string `json:"centres_interet_competences"`
}

type completeProfileRequest struct {
	CityOfResidence    string `json:"ville" validate:"required"`
	CityOfMobilization string `json:"ville_mobilisation" validate:"required"`
	Section            string `json:"section" validate:"required"`
	Interests          string `json:"centres_interet_competences" validate:"required"`
}

// Dashboard returns the cached session snapshot without an upstream call.
//
// @Summary      Member dashboard data
// @Tags         member
// @Produce      json
// @Success      200  {object}  profileResponse
// @Router       /member [get]
func (h *ProfileHandler) Dashboard(c echo.Context) error {
	session, _ := middleware.SessionFromContext(c)
	return c.JSON(http.StatusOK, profileResponse{
		Member: session.Member,
		Status: domain.Completeness(session.Member),
	})
}

// Get fetches a fresh profile from the member API and recomputes the
// completion status. A stale upstream token forces a logout.
//
// @Summary      Current member profile
// @Tags         member
// @Produce      json
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /member/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	sid, _ := middleware.SessionIDFromContext(c)
	result, err := h.auth.Profile(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{Member: result.Member, Status: result.Status})
}

// Update submits profile changes.
//
// @Summary      Update member profile
// @Tags         member
// @Accept       json
// @Produce      json
// @Param        body  body      profileUpdateRequest  true  "Profile fields"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /member/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	var req profileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sid, _ := middleware.SessionIDFromContext(c)
	result, err := h.auth.UpdateProfile(c.Request().Context(), sid, ports.ProfileUpdateInput{
		PhoneCode:          req.PhoneCode,
		Phone:              req.Phone,
		CityOfResidence:    req.CityOfResidence,
		CityOfMobilization: req.CityOfMobilization,
		Section:            req.Section,
		Interests:          req.Interests,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{Member: result.Member, Status: result.Status})
}

// Complete submits the four post-onboarding fields in one call. All four are
// required here; partial progress goes through Update instead.
//
// @Summary      Complete the member profile
// @Tags         member
// @Accept       json
// @Produce      json
// @Param        body  body      completeProfileRequest  true  "Post-onboarding fields"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /member/profile/complete [post]
func (h *ProfileHandler) Complete(c echo.Context) error {
	var req completeProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sid, _ := middleware.SessionIDFromContext(c)
	result, err := h.auth.CompleteProfile(c.Request().Context(), sid, ports.ProfileUpdateInput{
		CityOfResidence:    req.CityOfResidence,
		CityOfMobilization: req.CityOfMobilization,
		Section:            req.Section,
		Interests:          req.Interests,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{Member: result.Member, Status: result.Status})
}
