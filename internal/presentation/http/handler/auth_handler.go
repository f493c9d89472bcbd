package handler

import (
	"net/http"
	"net/url"

	"github.com/aquaflow/sachet-api/internal/application/service"
	"github.com/aquaflow/sachet-api/internal/presentation/http/dto/request"
	"github.com/aquaflow/sachet-api/internal/presentation/http/dto/response"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/aquaflow/sachet-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

const oauthStateCookie = "oauth_state"

// GoogleRedirects builds the browser redirects of the Google sign-in flow.
type GoogleRedirects interface {
	AuthURL(state string) string
	SuccessURL() string
	FailureURL() string
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
	google      GoogleRedirects
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, google GoogleRedirects) *AuthHandler {
	return &AuthHandler{authService: authService, google: google}
}

func tokenPayload(output *service.LoginOutput) gin.H {
	return gin.H{
		"user":         output.User,
		"accessToken":  output.AccessToken,
		"refreshToken": output.RefreshToken,
		"expiresIn":    output.ExpiresIn,
		"tokenType":    "Bearer",
	}
}

// Login handles user login
// @Summary Login
// @Description Authenticate with an email address or phone number
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Failure 429 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", tokenPayload(output))
}

// RefreshToken handles token refresh
// @Summary Refresh Token
// @Description Refresh access token using refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed successfully", tokenPayload(output))
}

// Logout handles user logout
// @Summary Logout
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// Tokens are stateless; the client discards them.
	response.OK(c, "Logged out successfully", nil)
}

// GetProfile handles fetching current user profile
// @Summary Get Profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", gin.H{"user": user})
}

// UpdateProfile handles updating the caller's name and phone
// @Summary Update Profile
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}

	var req request.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), &service.UpdateProfileInput{
		UserID: userID,
		Name:   req.Name,
		Phone:  req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile updated successfully", gin.H{"user": user})
}

// ChangePassword handles password change
// @Summary Change Password
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.ChangePasswordRequest true "Password change data"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /profile/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}

	var req request.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), &service.ChangePasswordInput{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Password changed successfully", nil)
}

// ForgotPassword handles forgot password request
// @Summary Forgot Password
// @Description Send a password recovery email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.ForgotPasswordRequest true "Forgot password request"
// @Success 200 {object} response.APIResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req request.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}

	// Same answer for unknown addresses.
	response.OK(c, "If the email exists, a reset link has been sent", nil)
}

// ResetPassword handles password reset
// @Summary Reset Password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.ResetPasswordRequest true "Reset password request"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req request.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Password reset successfully", nil)
}

// GoogleStart redirects the browser to Google's consent screen.
// @Summary Google Sign-In
// @Tags auth
// @Success 307
// @Router /auth/google [get]
func (h *AuthHandler) GoogleStart(c *gin.Context) {
	if !h.authService.GoogleEnabled() {
		response.Error(c, apperror.NewBadRequestError("Google sign-in is not configured"))
		return
	}

	state, err := utils.NewOpaqueToken()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusTemporaryRedirect, h.google.AuthURL(state))
}

// GoogleCallback completes Google sign-in. With a configured success URL
// the tokens travel in its fragment; otherwise they are returned as JSON.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state, _ := c.Cookie(oauthStateCookie)
	c.SetCookie(oauthStateCookie, "", -1, "/", "", c.Request.TLS != nil, true)

	if state == "" || c.Query("state") != state {
		h.googleFailure(c, apperror.NewBadRequestError("Invalid OAuth state"))
		return
	}
	if reason := c.Query("error"); reason != "" {
		h.googleFailure(c, apperror.NewBadRequestError("Google sign-in was cancelled"))
		return
	}

	output, err := h.authService.GoogleLogin(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.googleFailure(c, err)
		return
	}

	target := h.google.SuccessURL()
	if target == "" {
		response.OK(c, "Login successful", tokenPayload(output))
		return
	}
	fragment := url.Values{}
	fragment.Set("accessToken", output.AccessToken)
	fragment.Set("refreshToken", output.RefreshToken)
	c.Redirect(http.StatusFound, target+"#"+fragment.Encode())
}

func (h *AuthHandler) googleFailure(c *gin.Context, err error) {
	target := h.google.FailureURL()
	if target == "" {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, target+"?error="+url.QueryEscape(apperror.GetAppError(err).Message))
}
