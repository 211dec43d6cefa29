package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/core"
	"github.com/RecoveryAshes/LinkScope/internal/insights"
	"github.com/RecoveryAshes/LinkScope/internal/models"
	"github.com/RecoveryAshes/LinkScope/internal/utils"
)

// CompaniesHandler 公司分析、查询、导出与对比接口
type CompaniesHandler struct {
	Service Service
}

type analyzeRequest struct {
	CompanyName  string   `json:"company_name"`
	Competitors  []string `json:"competitors,omitempty"`
	ForceRefresh bool     `json:"force_refresh,omitempty"`
}

type analyzeResponse struct {
	CompanyName string               `json:"company_name"`
	SessionID   string               `json:"session_id,omitempty"`
	Provenance  models.Provenance    `json:"provenance"`
	Cached      bool                 `json:"cached"`
	ScrapedAt   time.Time            `json:"scraped_at"`
	Stats       models.ScrapeStats   `json:"stats"`
	Data        *models.ResultBundle `json:"data"`
	Insights    *models.Insight      `json:"insights,omitempty"`
}

type compareRequest struct {
	Companies []string `json:"companies"`
}

// Analyze POST /api/companies/analyze
func (h CompaniesHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	if err := models.ValidateCompanyName(req.CompanyName); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if len(req.Competitors) > core.MaxCompetitors {
		badRequest(w, r, fmt.Sprintf("竞品最多%d个", core.MaxCompetitors))
		return
	}

	res, err := h.Service.Analyze(r.Context(), req.CompanyName, req.ForceRefresh)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := analyzeResponse{
		CompanyName: req.CompanyName,
		Provenance:  res.Bundle.Provenance,
		Cached:      res.Cached,
		ScrapedAt:   res.Bundle.ScrapedAt,
		Stats:       models.StatsFromBundle(res.Bundle),
		Data:        res.Bundle,
	}
	if res.Session != nil {
		resp.SessionID = res.Session.ID
	}
	if len(req.Competitors) > 0 {
		insight, err := h.Service.InsightsFor(r.Context(), res.Bundle, req.Competitors)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		resp.Insights = &insight
	}
	WriteJSON(w, http.StatusOK, resp)
}

// BasicInfo GET /api/companies/{name}/basic-info
func (h CompaniesHandler) BasicInfo(w http.ResponseWriter, r *http.Request) {
	name, err := companyName(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	res, err := h.Service.Analyze(r.Context(), name, false)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"company":    res.Bundle.Company,
		"provenance": res.Bundle.Provenance,
		"scraped_at": res.Bundle.ScrapedAt,
	})
}

// Posts GET /api/companies/{name}/posts?limit=10
func (h CompaniesHandler) Posts(w http.ResponseWriter, r *http.Request) {
	name, err := companyName(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	limit, err := intQuery(r, "limit", 10, 1, 50)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	posts, err := h.Service.Posts(r.Context(), name, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"company_name": name,
		"posts":        posts,
		"total":        len(posts),
	})
}

// Jobs GET /api/companies/{name}/jobs?department=Engineering
func (h CompaniesHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	name, err := companyName(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	dept, err := parseDepartment(r.URL.Query().Get("department"))
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	jobs, err := h.Service.Jobs(r.Context(), name, dept)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"company_name": name,
		"department":   dept,
		"jobs":         jobs,
		"total":        len(jobs),
	})
}

// Export GET /api/companies/{name}/export?format=json
func (h CompaniesHandler) Export(w http.ResponseWriter, r *http.Request) {
	name, err := companyName(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	raw := r.URL.Query().Get("format")
	if raw == "" {
		raw = string(insights.FormatJSON)
	}
	format, err := insights.ParseFormat(raw)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}

	b, insight, err := h.Service.Insights(r.Context(), name, nil)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// 先写入缓冲区, 导出失败时还能返回JSON错误
	var buf bytes.Buffer
	if err := insights.Export(&buf, format, b, insight); err != nil {
		writeServiceError(w, r, err)
		return
	}
	filename := utils.SafeFileName(name) + "_insights" + format.Extension()
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// Compare POST /api/companies/compare
func (h CompaniesHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	names := make([]string, 0, len(req.Companies))
	for _, n := range req.Companies {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) < core.MinCompare || len(names) > core.MaxCompare {
		badRequest(w, r, fmt.Sprintf("对比需要%d-%d家公司", core.MinCompare, core.MaxCompare))
		return
	}

	cmp, err := h.Service.Compare(r.Context(), names)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, cmp)
}
