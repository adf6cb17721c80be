package middleware

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"hris-core/internal/shared/apperror"
	"hris-core/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	authMu     sync.RWMutex
	authSecret []byte
)

// ConfigureAuth sets the HMAC secret used to verify access tokens. Until it
// is called the JWT_SECRET environment variable is used.
func ConfigureAuth(secret string) {
	authMu.Lock()
	defer authMu.Unlock()
	authSecret = []byte(secret)
}

func jwtSecret() []byte {
	authMu.RLock()
	defer authMu.RUnlock()
	if len(authSecret) > 0 {
		return authSecret
	}
	return []byte(os.Getenv("JWT_SECRET"))
}

func abortWith(c *gin.Context, appErr *apperror.AppError) {
	response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, appErr.Details)
	c.Abort()
}

// AuthMiddleware verifies the bearer token (or access_token cookie) and puts
// user_id, employee_id and role on the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return jwtSecret(), nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, apperror.ErrTokenExpired)
				return
			}
			abortWith(c, apperror.ErrInvalidToken)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, apperror.ErrInvalidToken)
			return
		}

		userID, _ := claims["user_id"].(string)
		employeeID, _ := claims["employee_id"].(string)
		if userID == "" || employeeID == "" {
			abortWith(c, apperror.ErrInvalidToken)
			return
		}

		role, _ := claims["role"].(string)

		c.Set("user_id", userID)
		c.Set("user_id_validated", userID)
		c.Set("employee_id", employeeID)
		c.Set("role", strings.ToUpper(strings.TrimSpace(role)))

		c.Next()
	}
}

// RoleMiddleware allows only the listed roles through. Comparison ignores case.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := strings.ToUpper(c.GetString("role"))
		for _, allowed := range allowedRoles {
			if role != "" && role == strings.ToUpper(allowed) {
				c.Next()
				return
			}
		}
		abortWith(c, apperror.ErrForbidden)
	}
}
