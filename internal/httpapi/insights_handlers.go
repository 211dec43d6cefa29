package httpapi

import (
	"fmt"
	"net/http"

	"github.com/RecoveryAshes/LinkScope/internal/core"
	"github.com/RecoveryAshes/LinkScope/internal/insights"
)

// InsightsHandler 洞察、招聘预测与互动分析接口
type InsightsHandler struct {
	Service Service
}

// Get GET /api/insights/{name}?competitors=a,b
func (h InsightsHandler) Get(w http.ResponseWriter, r *http.Request) {
	name, err := companyName(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	competitors := listQuery(r, "competitors")
	if len(competitors) > core.MaxCompetitors {
		badRequest(w, r, fmt.Sprintf("竞品最多%d个", core.MaxCompetitors))
		return
	}
	_, insight, err := h.Service.Insights(r.Context(), name, competitors)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, insight)
}

// HiringPredictions GET /api/insights/{name}/hiring-predictions
func (h InsightsHandler) HiringPredictions(w http.ResponseWriter, r *http.Request) {
	name, err := companyName(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	b, insight, err := h.Service.Insights(r.Context(), name, nil)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"company_name":  name,
		"provenance":    b.Provenance,
		"predictions":   insight.HiringPrediction,
		"hiring_trends": insight.HiringTrends,
		"skill_demand":  insights.SkillDemand(b.Jobs),
	})
}

// Engagement GET /api/insights/{name}/engagement
func (h InsightsHandler) Engagement(w http.ResponseWriter, r *http.Request) {
	name, err := companyName(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	b, insight, err := h.Service.Insights(r.Context(), name, nil)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"company_name":   name,
		"provenance":     b.Provenance,
		"engagement":     insight.Engagement,
		"posts_analyzed": len(b.Posts),
		"follower_count": b.Company.FollowerCount,
	})
}
