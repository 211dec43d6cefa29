package crawlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/RecoveryAshes/LinkScope/internal/models"
	"github.com/rs/zerolog/log"
)

// ScrapeCompany 抓取公司主页
// 名称缺失时使用搜索关键字,其余缺失字段使用默认值
func (s *Scraper) ScrapeCompany(ctx context.Context, companyURL, name string) (models.CompanyRecord, error) {
	if err := s.visit(ctx, companyURL, companyContainer); err != nil {
		return models.CompanyRecord{}, err
	}

	rec := models.NewCompanyRecord(Extract(s.page, "name", companyNameCandidates, name))
	rec.LinkedInURL = companyURL
	rec.Industry = Extract(s.page, "industry", companyIndustryCandidates, models.UnknownValue)
	rec.Size = Extract(s.page, "size", companySizeCandidates, models.UnknownValue)
	rec.Headquarters = Extract(s.page, "headquarters", companyHQCandidates, models.UnknownValue)
	rec.Website = Extract(s.page, "website", companyWebsiteCandidates, "")
	rec.Description = Extract(s.page, "description", companyDescriptionCandidates, "")
	rec.FollowerCount = ExtractCount(s.page, "follower_count", companyFollowerCandidates)
	if rec.Size != models.UnknownValue {
		rec.EmployeeCount = ParseCount(rec.Size)
	}
	if founded, err := strconv.Atoi(strings.TrimSpace(Extract(s.page, "founded", companyFoundedCandidates, ""))); err == nil {
		rec.Founded = founded
	}

	log.Info().Str("company", rec.Name).Str("industry", rec.Industry).Int("followers", rec.FollowerCount).Msg("🏢 公司主页抓取完成")
	return rec, nil
}
