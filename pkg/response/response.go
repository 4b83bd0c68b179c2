package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the standard envelope for every API reply.
// Field order: code -> msg -> data.
type Response struct {
	Code int         `json:"code"` // business status code, 0 means success
	Msg  string      `json:"msg"`  // human readable message
	Data interface{} `json:"data"` // payload
}

// Business status codes.
const (
	CodeSuccess = 0

	// Validation errors 10xxx
	CodeInvalidRequest     = 10001 // malformed request body or params
	CodeInvalidPosition    = 10002 // unknown staff position
	CodeInvalidResource    = 10003 // unknown protected resource
	CodeInvalidPermission  = 10004 // unknown permission action
	CodeInvalidCatalogType = 10005 // unknown catalog type
	CodeValueRequired      = 10006 // empty catalog value after trim
	CodeValueTooLong       = 10007 // catalog value exceeds the length limit
	CodeReorderMismatch    = 10008 // reorder id set does not match active items

	// Authentication errors 20xxx
	CodeInvalidCredentials = 20001 // wrong username or password
	CodeInvalidToken       = 20002 // token missing, malformed or expired
	CodeAccountLocked      = 20003 // account locked after failed logins
	CodeAccountDisabled    = 20004 // account disabled by an administrator
	CodeForbidden          = 20005 // caller lacks the required permission

	// Not found 40xxx
	CodeStaffNotFound    = 40001
	CodeCatalogNotFound  = 40002
	CodePropertyNotFound = 40003

	// Conflicts 50xxx
	CodeDuplicateValue = 50001 // catalog value already active for the type
	CodeUsernameExists = 50002

	// Server errors 90xxx
	CodeServerError = 90001
	CodeUnavailable = 90002
)

var codeMessages = map[int]string{
	CodeSuccess:            "ok",
	CodeInvalidRequest:     "invalid request",
	CodeInvalidPosition:    "invalid position",
	CodeInvalidResource:    "invalid resource",
	CodeInvalidPermission:  "invalid permission",
	CodeInvalidCatalogType: "invalid catalog type",
	CodeValueRequired:      "value is required",
	CodeValueTooLong:       "value is too long",
	CodeReorderMismatch:    "reorder ids do not match the active items",
	CodeInvalidCredentials: "wrong username or password",
	CodeInvalidToken:       "invalid or expired token",
	CodeAccountLocked:      "account is locked, try again later",
	CodeAccountDisabled:    "account is disabled",
	CodeForbidden:          "permission denied",
	CodeStaffNotFound:      "staff not found",
	CodeCatalogNotFound:    "catalog item not found",
	CodePropertyNotFound:   "property not found",
	CodeDuplicateValue:     "value already exists",
	CodeUsernameExists:     "username already taken",
	CodeServerError:        "internal server error",
	CodeUnavailable:        "service temporarily unavailable",
}

// Success writes a 200 reply with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: CodeSuccess,
		Msg:  codeMessages[CodeSuccess],
		Data: data,
	})
}

// SuccessWithMsg writes a 200 reply with a custom message.
func SuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: CodeSuccess,
		Msg:  msg,
		Data: data,
	})
}

// Error writes an error reply using the code's default message.
func Error(c *gin.Context, code int) {
	msg, ok := codeMessages[code]
	if !ok {
		msg = "unknown error"
	}
	c.JSON(codeToHTTPStatus(code), Response{
		Code: code,
		Msg:  msg,
		Data: nil,
	})
}

// ErrorWithMsg writes an error reply with a custom message.
func ErrorWithMsg(c *gin.Context, code int, msg string) {
	c.JSON(codeToHTTPStatus(code), Response{
		Code: code,
		Msg:  msg,
		Data: nil,
	})
}

// codeToHTTPStatus maps a business code to an HTTP status.
func codeToHTTPStatus(code int) int {
	switch {
	case code == CodeSuccess:
		return http.StatusOK
	case code >= 10000 && code < 20000:
		return http.StatusBadRequest
	case code >= 20000 && code < 30000:
		if code == CodeForbidden {
			return http.StatusForbidden
		}
		return http.StatusUnauthorized
	case code >= 40000 && code < 50000:
		return http.StatusNotFound
	case code >= 50000 && code < 60000:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
