package ui

import (
	"net/http"

	"resultdesk/internal/errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const adminSessionKey = "admin"

// requireAdmin rejects requests without an admin session
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAdmin(c) {
			s.respondError(c, errors.Unauthorized("Admin login required."))
			return
		}
		c.Next()
	}
}

func isAdmin(c *gin.Context) bool {
	admin, ok := sessions.Default(c).Get(adminSessionKey).(bool)
	return ok && admin
}

// statusForCode maps application error codes to HTTP statuses
func statusForCode(code string) int {
	switch code {
	case errors.CodeInvalidInput, errors.CodeReadError, errors.CodeParseError, errors.CodeEmptyFile:
		return http.StatusBadRequest
	case errors.CodeUnauthorized:
		return http.StatusUnauthorized
	case errors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error", "code"} and aborts the request
func (s *Server) respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := statusForCode(code)
	if status == http.StatusInternalServerError {
		s.logger.Error("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		if code == "UNKNOWN" {
			code = errors.CodeInternalError
		}
	}
	c.AbortWithStatusJSON(status, gin.H{"error": errors.UserMessage(err), "code": code})
}
