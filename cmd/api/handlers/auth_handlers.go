package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"car-blog/cmd/api/auth"
	"car-blog/cmd/api/dto"
	"car-blog/cmd/api/services"
	"car-blog/internal/logger"
)

// SignupHandler godoc
// @Summary      Sign up
// @Description  Creates a regular account. Passwords are stored as bcrypt hashes.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SignupRequest  true  "Account"
// @Success      201   {object}  dto.Envelope{data=dto.UserProfileDTO}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /auth/signup [post]
func SignupHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.SignupRequest
		if err := c.ShouldBind(&req); err != nil {
			respondError(c, bindError(err))
			return
		}

		profile, err := authSvc.Signup(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		logger.InfoWithFields("user signed up", logger.Fields{
			"user_id":    profile.ID,
			"request_id": c.Request.Header.Get("X-Request-Id"),
		})
		c.JSON(http.StatusCreated, dto.OK("User registered successfully", profile))
	}
}

// LoginHandler godoc
// @Summary      Log in
// @Description  Verifies the credentials and sets the httpOnly "token" cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.Envelope{data=dto.UserProfileDTO}
// @Failure      400   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Router       /auth/login [post]
func LoginHandler(authSvc *services.AuthService, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.LoginRequest
		if err := c.ShouldBind(&req); err != nil {
			respondError(c, bindError(err))
			return
		}

		token, profile, err := authSvc.Login(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}

		auth.SetTokenCookie(c, token, authSvc.TokenTTL(), cookieSecure)
		c.JSON(http.StatusOK, dto.OK("Login successful", profile))
	}
}

// LogoutHandler godoc
// @Summary      Log out
// @Description  Clears the "token" cookie.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /auth/logout [post]
func LogoutHandler(cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.ClearTokenCookie(c, cookieSecure)
		c.JSON(http.StatusOK, dto.OK("Logged out successfully", nil))
	}
}

// ProfileHandler godoc
// @Summary      Current user profile
// @Description  Resolves the "token" cookie (or bearer header) to the account. The password hash is never returned.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.UserProfileDTO}
// @Failure      401  {object}  dto.Envelope
// @Router       /auth/profile [get]
func ProfileHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := authSvc.Profile(c.Request.Context(), tokenFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK("Profile fetched successfully", profile))
	}
}
