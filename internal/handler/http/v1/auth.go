package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/silentvoice/anonymous_reporting_system/internal/service"
	"github.com/sirupsen/logrus"
)

// adminContextKey - ключ, под которым личность администратора кладётся
// в контекст запроса для нижестоящих хэндлеров
const adminContextKey = "admin"

// AdminAuthMiddleware - middleware для аутентификации администратора
// по bearer-токену сессии
func AdminAuthMiddleware(authService service.AuthService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if token == "" {
			log.Warn("Bearer token missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		identity, err := authService.Verify(token)
		if err != nil {
			log.WithError(err).Warn("Invalid bearer token provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(adminContextKey, identity)
		c.Next()
	}
}

// AdminFromContext достаёт проверенную личность администратора из контекста
func AdminFromContext(c *gin.Context) (*service.Identity, bool) {
	value, exists := c.Get(adminContextKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*service.Identity)
	return identity, ok
}
