package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medibook/appointment-system/internal/api/metrics"
	"github.com/medibook/appointment-system/internal/core/domain"
	"github.com/medibook/appointment-system/internal/core/ports"
	"github.com/medibook/appointment-system/internal/core/session"
)

// AuthHandler handles login, logout and session retrieval.
type AuthHandler struct {
	authService ports.AuthService
	sessions    *session.Manager
}

func NewAuthHandler(authService ports.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Initials  string `json:"initials"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Session sessionResponse `json:"session"`
}

// Login authenticates a user and returns a JWT plus the session projection.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	// Persist the session so it survives process restarts on the client side.
	if err := h.sessions.For(result.Session.UserID).Login(c.Request().Context(), result.Session); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token:   result.Token,
		Session: toSessionResponse(result.Session),
	})
}

// Logout clears the authenticated user's persisted session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	userID := claimUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	if err := h.sessions.For(userID).Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session returns the authenticated user's persisted session, hydrating it
// from the cache on first access.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	userID := claimUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	store := h.sessions.For(userID)
	store.Hydrate(c.Request().Context())

	sess, ok := store.Current()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no active session")
	}
	return c.JSON(http.StatusOK, toSessionResponse(*sess))
}

func toSessionResponse(sess domain.Session) sessionResponse {
	return sessionResponse{
		UserID:    sess.UserID,
		Name:      sess.Name,
		Email:     sess.Email,
		Role:      sess.RoleName,
		AvatarURL: sess.AvatarURL,
		Initials:  sess.Initials,
	}
}
