package handlers

import (
	"errors"
	"net/http"
	"os"

	"github.com/emretknc/driveaway/internal/auth"
	"github.com/emretknc/driveaway/internal/models"
	"github.com/emretknc/driveaway/internal/services"
	"github.com/gin-gonic/gin"
)

const sessionCookie = "session_token"

func sessionCookieMaxAge() int {
	return int(auth.SessionTTL.Seconds())
}

func Register(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		user, err := u.Register(c.Request.Context(), input)
		if err != nil {
			if errors.Is(err, models.ErrUserExists) {
				c.JSON(http.StatusConflict, models.ErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(user, "Account created successfully"))
	}
}

func Login(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		user, token, err := u.Authenticate(c.Request.Context(), body.Email, body.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse(services.ErrInvalidCredentials.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("authentication failed"))
			return
		}

		isProduction := os.Getenv("GIN_MODE") == "release"
		c.SetCookie(sessionCookie, token, sessionCookieMaxAge(), "/", "", isProduction, true)

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"token": token,
			"user":  user,
		}, "Logged in successfully"))
	}
}

func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		isProduction := os.Getenv("GIN_MODE") == "release"
		c.SetCookie(sessionCookie, "", -1, "/", "", isProduction, true)

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Logged out successfully"))
	}
}

// Session echoes the identity embedded in the token. The values reflect the
// moment of login, not the current user record.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"user_id":           claims.UserID,
			"name":              claims.Name,
			"is_admin":          claims.IsAdmin,
			"is_email_verified": claims.IsEmailVerified,
			"expires_at":        claims.ExpiresAt,
		}, ""))
	}
}

// currentClaims pulls the session claims the auth middleware stored. Writes
// the error response itself when they are missing or malformed.
func currentClaims(c *gin.Context) (*auth.SessionClaims, bool) {
	value, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return nil, false
	}
	claims, ok := value.(*auth.SessionClaims)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid session claims"))
		return nil, false
	}
	return claims, true
}
