package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/maturity-backend/internal/domain/survey"
	"github.com/yungbote/maturity-backend/internal/http/response"
	"github.com/yungbote/maturity-backend/internal/services"
)

type AnalysisHandler struct {
	svc services.AnalysisService
}

func NewAnalysisHandler(svc services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{svc: svc}
}

// GET /api/stats/global
func (h *AnalysisHandler) GlobalStats(c *gin.Context) {
	out, err := h.svc.GlobalStats(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/stats/by-group?group_by=groupe|ca|effectif|effectif_dsi
func (h *AnalysisHandler) StatsByGroup(c *gin.Context) {
	dim, ok := survey.ParseDimension(c.Query("group_by"))
	if !ok {
		dim = survey.DimensionGroup
	}
	out, err := h.svc.StatsByGroup(c.Request.Context(), dim)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/correlations
//
// Too few usable axes is a 200 with a top-level "error" string.
func (h *AnalysisHandler) Correlations(c *gin.Context) {
	out, err := h.svc.Correlations(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	if out.Insufficient {
		c.JSON(http.StatusOK, gin.H{"error": out.Reason})
		return
	}
	response.RespondOK(c, out)
}

// GET /api/strengths-weaknesses
func (h *AnalysisHandler) StrengthsWeaknesses(c *gin.Context) {
	out, err := h.svc.StrengthsWeaknesses(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/filters
func (h *AnalysisHandler) FilterOptions(c *gin.Context) {
	out, err := h.svc.FilterOptions(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/axes
func (h *AnalysisHandler) Axes(c *gin.Context) {
	response.RespondOK(c, gin.H{"axes": h.svc.Axes()})
}

// POST /api/admin/cache/reset
func (h *AnalysisHandler) ResetCache(c *gin.Context) {
	h.svc.ResetCache()
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
