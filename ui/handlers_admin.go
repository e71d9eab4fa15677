package ui

import (
	stderrors "errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"resultdesk/app"
	"resultdesk/domain/result"
	"resultdesk/internal/errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for form fields and part headers on top of
// the file size limit
const multipartOverhead = 1 << 20

const defaultUploadHistory = 20

type loginRequest struct {
	Passkey string `json:"passkey" form:"passkey"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		s.logger.Debug("Login request could not be bound: %v", err)
	}

	if err := s.deps.Gate.Verify(req.Passkey); err != nil {
		s.logger.Info("Rejected admin login from %s", c.ClientIP())
		s.respondError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(adminSessionKey, true)
	if err := session.Save(); err != nil {
		s.respondError(c, errors.Wrap(err, "Could not start admin session."))
		return
	}
	s.logger.Info("Admin logged in from %s", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"admin": true})
}

func (s *Server) handleLogout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		s.respondError(c, errors.Wrap(err, "Could not end admin session."))
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": false})
}

func (s *Server) handleSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"admin": isAdmin(c)})
}

// handleUpload accepts multipart fields "class" and "file"
func (s *Server) handleUpload(c *gin.Context) {
	if s.deps.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.deps.MaxUploadBytes+multipartOverhead)
	}

	req := app.UploadRequest{Class: result.ClassLabel(c.PostForm("class"))}

	file, header, err := c.Request.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		req.Filename = header.Filename
		req.Content = file
	case stderrors.Is(err, http.ErrMissingFile):
		// the service reports the missing file after validating the class
	default:
		s.respondError(c, s.formError(err))
		return
	}

	summary, err := s.deps.Ingestion.Ingest(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": summary.Message(),
		"upload":  summary,
	})
}

func (s *Server) formError(err error) error {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return errors.InvalidInput(fmt.Sprintf("File is too large. The limit is %d MB.", s.deps.MaxUploadBytes>>20))
	}
	if stderrors.Is(err, multipart.ErrMessageTooLarge) {
		return errors.InvalidInput("The upload form is too large.")
	}
	return errors.ReadError(err)
}

func (s *Server) handleClasses(c *gin.Context) {
	summaries, err := s.deps.Summaries.Summaries(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"classes": summaries})
}

func (s *Server) handleUploads(c *gin.Context) {
	limit := defaultUploadHistory
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.respondError(c, errors.InvalidInput("limit must be a positive number"))
			return
		}
		limit = n
	}

	events, err := s.deps.Ingestion.RecentUploads(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"uploads":       events,
		"audit_enabled": s.deps.Ingestion.AuditEnabled(),
	})
}
