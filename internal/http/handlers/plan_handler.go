// README: Plan generation and recommendation handlers.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripcraft/internal/modules/planning"
)

// OutcomeHeader tells operators which recovery path produced a plan.
const OutcomeHeader = "X-Plan-Outcome"

type PlanService interface {
	GeneratePlan(ctx context.Context, req planning.TripRequest) (planning.Result, error)
	Recommend(ctx context.Context, prompt string) ([]any, error)
}

type PlanHandler struct {
	plans PlanService
}

func NewPlanHandler(svc PlanService) *PlanHandler {
	return &PlanHandler{plans: svc}
}

// Create handles POST /plans.
func (h *PlanHandler) Create(c *gin.Context) {
	var req planning.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	res, err := h.plans.GeneratePlan(c.Request.Context(), req)
	if err != nil {
		writePlanningError(c, err, "failed to generate travel plan")
		return
	}
	c.Header(OutcomeHeader, string(res.Outcome))
	writeJSON(c, http.StatusOK, res.Plan)
}

type recommendReq struct {
	Prompt string `json:"prompt"`
}

// Recommend handles POST /api/ai-recommendations.
func (h *PlanHandler) Recommend(c *gin.Context) {
	var req recommendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	items, err := h.plans.Recommend(c.Request.Context(), req.Prompt)
	if err != nil {
		writePlanningError(c, err, "failed to get recommendations")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"recommendations": items})
}

// Schema handles GET /plans/schema and serves the JSON template the model is asked to fill.
func (h *PlanHandler) Schema(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(planning.Template()))
}
