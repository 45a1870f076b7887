package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/enum"
	"github.com/lukusafi/laundry-api/internal/domain/repository"
	"github.com/lukusafi/laundry-api/internal/presentation/http/dto/response"
	"github.com/lukusafi/laundry-api/pkg/utils"
)

const (
	sessionKey = "session"
	userIDKey  = "user_id"
)

// Session is the authenticated caller, resolved once per request
type Session struct {
	UserID uuid.UUID     `json:"id"`
	Email  string        `json:"email"`
	Name   string        `json:"name"`
	Role   enum.UserRole `json:"role"`
}

// IsOwner reports whether the caller has full access
func (s *Session) IsOwner() bool {
	return s.Role == enum.UserRoleOwner
}

// AuthMiddleware validates the bearer token and loads the caller's current role
func AuthMiddleware(jwtManager *utils.JWTManager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if user == nil {
			response.Unauthorized(c, "Account no longer exists")
			c.Abort()
			return
		}

		c.Set(sessionKey, &Session{
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.Name,
			Role:   user.Role,
		})
		c.Set(userIDKey, user.ID)

		c.Next()
	}
}

// GetSession returns the caller set by AuthMiddleware
func GetSession(c *gin.Context) (*Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok
}

// RequireRole rejects callers whose role is not listed
func RequireRole(roles ...enum.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		for _, role := range roles {
			if session.Role == role {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "You do not have permission to perform this action")
		c.Abort()
	}
}
