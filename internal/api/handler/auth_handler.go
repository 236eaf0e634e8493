package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gunceapp/diary-api/internal/core/ports"
)

const refreshCookieName = "refresh_token"

// CookieConfig controls the refresh-token cookie attributes. Secure and
// strict same-site are relaxed outside production so local frontends on a
// different origin can complete the flow.
type CookieConfig struct {
	Secure bool
	TTL    time.Duration
}

// AuthHandler translates the HTTP auth surface into AuthService calls and
// owns the refresh-cookie lifecycle.
type AuthHandler struct {
	authService ports.AuthService
	cookies     CookieConfig
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, cookies CookieConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies, log: log}
}

// Register creates a local account and signs it in.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Meta:     clientMeta(c),
	})
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, result.RefreshToken)
	return c.JSON(http.StatusCreated, authResponse{
		AccessToken: result.AccessToken,
		User:        result.User,
	})
}

// Login authenticates with email and password.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Meta:     clientMeta(c),
	})
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, result.RefreshToken)
	return c.JSON(http.StatusOK, authResponse{
		AccessToken: result.AccessToken,
		User:        result.User,
	})
}

// GoogleLogin signs in with a verified Google identity, linking or creating
// an account as needed.
//
// @Summary      Login with a Google identity
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      googleLoginRequest  true  "Verified external identity"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/google [post]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req googleLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.GoogleLogin(c.Request().Context(), ports.GoogleLoginInput{
		ProviderID:    req.ProviderID,
		Email:         req.Email,
		Name:          req.Name,
		AvatarURL:     req.AvatarURL,
		EmailVerified: req.EmailVerified,
		Meta:          clientMeta(c),
	})
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, result.RefreshToken)
	return c.JSON(http.StatusOK, authResponse{
		AccessToken: result.AccessToken,
		User:        result.User,
	})
}

// Refresh exchanges the refresh cookie for a new access token.
//
// @Summary      Refresh the access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	result, err := h.authService.Refresh(c.Request().Context(), ports.RefreshInput{
		Token: cookie.Value,
		Meta:  clientMeta(c),
	})
	if err != nil {
		return err
	}

	// Rotation mode returns a replacement refresh token.
	if result.RefreshToken != "" {
		h.setRefreshCookie(c, result.RefreshToken)
	}
	return c.JSON(http.StatusOK, authResponse{AccessToken: result.AccessToken})
}

// Logout revokes the session behind the refresh cookie. It never fails
// visibly: an absent or unknown token still clears the cookie and returns 200.
//
// @Summary      Logout the current device
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(refreshCookieName); err == nil && cookie.Value != "" {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			h.log.Error().Err(err).Msg("logout failed")
		}
	}

	h.clearRefreshCookie(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// LogoutAll revokes every session of the authenticated user.
//
// @Summary      Logout all devices
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.authService.LogoutAll(c.Request().Context(), userID); err != nil {
		return err
	}

	h.clearRefreshCookie(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out everywhere"})
}

// ChangePassword rotates the password and revokes every existing session.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Old and new passwords"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ChangePassword(c.Request().Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password changed"})
}

// Me returns the authenticated user's profile.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, token string) {
	sameSite := http.SameSiteLaxMode
	if h.cookies.Secure {
		sameSite = http.SameSiteStrictMode
	}
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookies.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: sameSite,
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
	})
}
