package insights

import (
	"slices"
	"strings"
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/models"
)

const (
	// maxCompetitors 行业竞品列表长度
	maxCompetitors = 5
	// maxHotspots 招聘热点城市数
	maxHotspots = 5
	// maxStrengths 竞品优势条数
	maxStrengths = 3
	// maxMilestones 竞品里程碑条数
	maxMilestones = 3
)

// competitorsByIndustry 行业到代表性公司的映射,键为小写下划线形式
var competitorsByIndustry = map[string][]string{
	"technology":           {"Microsoft", "Google", "Amazon", "Apple", "Meta", "Salesforce", "Oracle"},
	"software_development": {"GitHub", "Atlassian", "JetBrains", "Docker", "MongoDB", "Redis"},
	"finance":              {"JPMorgan Chase", "Goldman Sachs", "Wells Fargo", "Bank of America", "Citi"},
	"healthcare":           {"UnitedHealth", "Anthem", "Aetna", "Humana", "Kaiser Permanente"},
	"consulting":           {"McKinsey", "Deloitte", "PwC", "EY", "Accenture", "Bain & Company"},
}

var (
	keyTrends = []string{
		"Increased adoption of AI/ML technologies",
		"Shift towards remote work solutions",
		"Growing demand for cloud infrastructure",
		"Focus on cybersecurity and data privacy",
		"Rise of low-code/no-code platforms",
	}
	defaultHotspots = []string{"San Francisco", "New York", "Austin", "Seattle", "Remote"}
	skillGaps       = []string{"AI/ML Engineers", "Cloud Architects", "Cybersecurity Specialists"}
)

// SearchCompetitors 行业内的代表性公司,未知行业按 technology 处理
func SearchCompetitors(industry string) []string {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(industry)), " ", "_")
	list, ok := competitorsByIndustry[key]
	if !ok {
		list = competitorsByIndustry["technology"]
	}
	return slices.Clone(list[:min(len(list), maxCompetitors)])
}

// CompetitorFromBundle 从结果包计算竞品对比数据
func CompetitorFromBundle(b *models.ResultBundle, now time.Time) models.CompetitorData {
	employeeCount := b.Company.EmployeeCount
	if employeeCount == 0 {
		employeeCount = len(b.Employees)
	}

	marketActivity := 0
	milestones := make([]string, 0, maxMilestones)
	for _, p := range b.Posts {
		if p.Type != models.PostTypeGeneral {
			marketActivity++
		}
		if p.Type == models.PostTypeMilestone && len(milestones) < maxMilestones {
			milestones = append(milestones, truncate(p.Content, 120))
		}
	}

	strengths := make([]string, 0, maxStrengths)
	for _, sc := range SkillDemand(b.Jobs) {
		if len(strengths) == maxStrengths {
			break
		}
		strengths = append(strengths, sc.Skill)
	}

	return models.CompetitorData{
		Name:              b.Company.Name,
		Provenance:        b.Provenance,
		HiringActivity:    len(b.Jobs),
		LeadershipChanges: len(LeadershipChanges(b.Employees, now)),
		MarketActivity:    marketActivity,
		EmployeeCount:     employeeCount,
		RecentExpansions:  len(BranchExpansions(b.Posts, b.Jobs)),
		SocialEngagement:  KeyMetrics(b).AvgPostEngagement,
		KeyStrengths:      strengths,
		RecentMilestones:  milestones,
	}
}

// Compare 汇总多家公司的对比数据,并列时取靠前的公司
func Compare(data []models.CompetitorData) models.Comparison {
	c := models.Comparison{
		Companies: make([]string, 0, len(data)),
		Data:      data,
	}
	if c.Data == nil {
		c.Data = []models.CompetitorData{}
	}
	for _, d := range data {
		c.Companies = append(c.Companies, d.Name)
	}
	if len(data) == 0 {
		return c
	}

	c.Summary = models.ComparisonSummary{
		HighestHiringActivity: leader(data, func(d models.CompetitorData) int { return d.HiringActivity }),
		MostLeadershipChanges: leader(data, func(d models.CompetitorData) int { return d.LeadershipChanges }),
		HighestMarketActivity: leader(data, func(d models.CompetitorData) int { return d.MarketActivity }),
	}
	return c
}

func leader(data []models.CompetitorData, metric func(models.CompetitorData) int) string {
	best := 0
	for i := 1; i < len(data); i++ {
		if metric(data[i]) > metric(data[best]) {
			best = i
		}
	}
	return data[best].Name
}

// MarketIntelligence 行业情报,热点城市来自职位地点
func MarketIntelligence(b *models.ResultBundle) models.MarketIntelligence {
	competitors := make([]string, 0, maxCompetitors)
	for _, name := range SearchCompetitors(b.Company.Industry) {
		if !strings.EqualFold(name, b.Company.Name) {
			competitors = append(competitors, name)
		}
	}

	var locations []string
	for _, j := range b.Jobs {
		locations = append(locations, j.Location)
	}
	hotspots := topN(locations, maxHotspots)
	if len(hotspots) == 0 {
		hotspots = slices.Clone(defaultHotspots)
	}

	return models.MarketIntelligence{
		Industry:       b.Company.Industry,
		KeyTrends:      slices.Clone(keyTrends),
		TopCompetitors: competitors,
		HiringHotspots: hotspots,
		SkillGaps:      slices.Clone(skillGaps),
	}
}
