package ui

import (
	"net/http"

	"resultdesk/domain/result"
	"resultdesk/internal/errors"

	"github.com/gin-gonic/gin"
)

// marksheetView adds the display strings the page and the API both show
type marksheetView struct {
	result.Marksheet
	TotalText      string `json:"total_text"`
	PercentageText string `json:"percentage_text"`
}

func newMarksheetView(m *result.Marksheet) marksheetView {
	return marksheetView{
		Marksheet:      *m,
		TotalText:      m.TotalText(),
		PercentageText: m.PercentageText(),
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, "index.html", gin.H{
		"Classes":     s.deps.Classes,
		"MaxUploadMB": s.deps.MaxUploadBytes >> 20,
		"IsAdmin":     isAdmin(c),
	})
}

// handleLookup serves GET /api/results?reg_no=
func (s *Server) handleLookup(c *gin.Context) {
	marksheet, err := s.deps.Lookup.Lookup(c.Request.Context(), c.Query("reg_no"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marksheet": newMarksheetView(marksheet)})
}

// handleMarksheetPage renders the printable marksheet for GET /results?reg_no=
func (s *Server) handleMarksheetPage(c *gin.Context) {
	regNo := c.Query("reg_no")
	marksheet, err := s.deps.Lookup.Lookup(c.Request.Context(), regNo)
	if err != nil {
		status := statusForCode(errors.GetCode(err))
		if status == http.StatusInternalServerError {
			s.logger.Error("Marksheet page for %q failed: %v", regNo, err)
		}
		s.renderTemplate(c, status, "marksheet.html", gin.H{
			"RegNo": regNo,
			"Error": errors.UserMessage(err),
		})
		return
	}

	s.renderTemplate(c, http.StatusOK, "marksheet.html", gin.H{
		"RegNo":     regNo,
		"Marksheet": newMarksheetView(marksheet),
	})
}
