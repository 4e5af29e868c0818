package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"linguacademy/internal/domain"
	"linguacademy/internal/transport/http/response"
)

const UserIDKey = "userId"

type TokenValidator interface {
	Validate(token string) (domain.User, error)
}

// Authenticate resolves an optional bearer token. Requests without one continue
// as guests; a malformed or invalid token is rejected.
func Authenticate(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.AbortError(c, http.StatusUnauthorized, response.CodeUnauthorized,
				errors.New("invalid authorization header format"))
			return
		}

		user, err := tokens.Validate(parts[1])
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, response.CodeUnauthorized,
				errors.New("invalid or expired token"))
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Request = c.Request.WithContext(domain.WithUser(c.Request.Context(), user))
		c.Next()
	}
}

// RequireUser rejects guests. It must run after Authenticate.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := domain.UserFromContext(c.Request.Context()); !ok {
			response.AbortError(c, http.StatusUnauthorized, response.CodeUnauthorized, domain.ErrNotAuthenticated)
			return
		}
		c.Next()
	}
}
