package core

import (
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/models"
)

// stageCached 命中缓存时报告中的阶段
const stageCached = "cached"

// NewScrapeReport 由分析结果生成抓取报告
func NewScrapeReport(res *AnalyzeResult, cfg models.ScrapeConfig, end time.Time) *models.ScrapeReport {
	b := res.Bundle
	report := &models.ScrapeReport{
		CompanyName: b.Company.Name,
		Provenance:  b.Provenance,
		FinalStage:  stageCached,
		StartTime:   end,
		EndTime:     end,
		Stats:       models.StatsFromBundle(b),
		Config:      cfg,
	}
	if res.Session != nil {
		report.SessionID = res.Session.ID
		report.StartTime = res.Session.StartedAt
	}
	if run := res.Run; run != nil {
		report.FinalStage = string(run.Stage)
		report.FailedStage = string(run.FailedStage)
		if run.Err != nil {
			report.Error = run.Err.Error()
		}
		if res.Session == nil {
			report.StartTime = end.Add(-run.Duration)
		}
	}
	report.Duration = report.EndTime.Sub(report.StartTime).Seconds()
	return report
}
