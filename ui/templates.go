package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"resultdesk/domain/result"

	"github.com/gin-gonic/gin"
)

func (s *Server) parseTemplates() error {
	funcMap := template.FuncMap{
		"formatNumber": result.FormatNumber,
		"lower":        strings.ToLower,
	}

	files, err := fs.Glob(s.assets, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to glob templates: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no templates found")
	}

	s.templates = template.New("").Funcs(funcMap)
	for _, file := range files {
		content, err := fs.ReadFile(s.assets, file)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", file, err)
		}
		name := strings.TrimPrefix(file, "templates/")
		if _, err := s.templates.New(name).Parse(string(content)); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", file, err)
		}
	}
	s.logger.Debug("Parsed %d templates", len(files))
	return nil
}

// renderTemplate renders into a buffer first so a failing template never
// produces a half-written page
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("Template error for %s: %v", templateName, err)
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed"})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		s.logger.Warn("Error writing template response: %v", err)
	}
}
