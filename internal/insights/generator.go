package insights

import (
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/models"
	"github.com/rs/zerolog/log"
)

// Generate 生成公司的综合洞察
// competitors 为已计算好的竞品数据,可以为空
func Generate(b *models.ResultBundle, competitors []models.CompetitorData, now time.Time) models.Insight {
	log.Debug().
		Str("company", b.Company.Name).
		Int("competitors", len(competitors)).
		Msg("📊 生成洞察")

	if competitors == nil {
		competitors = []models.CompetitorData{}
	}
	return models.Insight{
		CompanyName:          b.Company.Name,
		Provenance:           b.Provenance,
		KeyMetrics:           KeyMetrics(b),
		HiringTrends:         HiringTrends(b.Jobs),
		LeadershipChanges:    LeadershipChanges(b.Employees, now),
		BranchExpansions:     BranchExpansions(b.Posts, b.Jobs),
		SkillsTrends:         SkillTrends(b.Jobs),
		Engagement:           EngagementMetrics(b.Posts),
		HiringPrediction:     HiringPredictions(b.Jobs),
		MarketIntelligence:   MarketIntelligence(b),
		CompetitorComparison: competitors,
		GeneratedAt:          now,
	}
}
