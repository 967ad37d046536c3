package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/server/auth"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// Gate authenticates the request with a and aborts on failure. On success the
// principal is stored in the gin context and in the request context.
func Gate(a auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.Authenticate(c.Request.Context(), c.Request)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(principalKey, user)
		c.Request = c.Request.WithContext(auth.ContextWithPrincipal(c.Request.Context(), user))
		c.Next()
	}
}

// OwnershipGuard lets the request through only when the authenticated
// principal is the user named by the route parameter param.
func OwnershipGuard(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.CheckOwnership(principal(c), c.Param(param)); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}

func principal(c *gin.Context) *models.User {
	if v, ok := c.Get(principalKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	u, _ := auth.PrincipalFromContext(c.Request.Context())
	return u
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			s.logger.Error(c.Request.Context(), "request", args...)
			return
		}
		s.logger.Info(c.Request.Context(), "request", args...)
	}
}
