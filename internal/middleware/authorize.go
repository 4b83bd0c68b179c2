package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/landhub/backoffice/internal/service"
	"github.com/landhub/backoffice/pkg/response"
)

// RequirePosition allows only staff holding one of the listed positions.
// The Config module routes use this with manager and admin.
func RequirePosition(positions ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(positions))
	for _, p := range positions {
		allowed[p] = struct{}{}
	}

	return func(c *gin.Context) {
		position := Position(c)
		if position == "" {
			response.Error(c, response.CodeInvalidToken)
			c.Abort()
			return
		}

		if _, ok := allowed[position]; !ok {
			response.ErrorWithMsg(c, response.CodeForbidden, "position not allowed for this operation")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePermission consults the permission matrix for the caller's position.
// Admin always passes inside the engine.
func RequirePermission(permissionService service.PermissionService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		position := Position(c)
		if position == "" {
			response.Error(c, response.CodeInvalidToken)
			c.Abort()
			return
		}

		granted, err := permissionService.HasPermission(c.Request.Context(), position, resource, action)
		if err != nil {
			response.Error(c, response.CodeServerError)
			c.Abort()
			return
		}

		if !granted {
			response.ErrorWithMsg(c, response.CodeForbidden, "permission denied")
			c.Abort()
			return
		}
		c.Next()
	}
}
