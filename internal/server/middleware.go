package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"orders-backend/internal/metrics"
)

// Auth requires a valid HS256 bearer token on every request. Intended
// for service-to-service calls; enabled only when a secret is set.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "Unauthorized", "message": "bearer token required"},
			})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "Unauthorized", "message": "invalid token"},
			})
			return
		}
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if caller, ok := claims["sub"].(string); ok {
				c.Set("caller", caller)
			}
		}
		c.Next()
	}
}

func Metrics(m *metrics.ServerMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		m.Requests.WithLabelValues(handler, strconv.Itoa(c.Writer.Status())).Inc()
		m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
	}
}
