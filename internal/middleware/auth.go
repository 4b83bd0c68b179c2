package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/landhub/backoffice/internal/service"
	"github.com/landhub/backoffice/pkg/response"
)

// Context keys set by JWTAuth.
const (
	CtxStaffID  = "staff_id"
	CtxUsername = "username"
	CtxPosition = "position"
)

// JWTAuth validates the bearer token and puts the staff identity into the
// request context. Everything behind it can trust staff_id and position.
func JWTAuth(tokenService service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.ErrorWithMsg(c, response.CodeInvalidToken, "missing bearer token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.ErrorWithMsg(c, response.CodeInvalidToken, "malformed authorization header")
			c.Abort()
			return
		}

		claims, err := tokenService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				response.ErrorWithMsg(c, response.CodeInvalidToken, "token expired")
			} else {
				response.Error(c, response.CodeInvalidToken)
			}
			c.Abort()
			return
		}

		if claims.Type != "access" {
			response.ErrorWithMsg(c, response.CodeInvalidToken, "wrong token type")
			c.Abort()
			return
		}

		c.Set(CtxStaffID, claims.StaffID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxPosition, claims.Position)

		c.Next()
	}
}

// StaffID returns the authenticated staff id from the context.
func StaffID(c *gin.Context) string {
	return c.GetString(CtxStaffID)
}

// Position returns the authenticated staff position from the context.
func Position(c *gin.Context) string {
	return c.GetString(CtxPosition)
}
