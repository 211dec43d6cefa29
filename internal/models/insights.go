package models

import "time"

// TrendDirection 趋势方向
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// ChangeType 人事变动类型
type ChangeType string

const (
	ChangeHire      ChangeType = "hire"
	ChangePromotion ChangeType = "promotion"
	ChangeDeparture ChangeType = "departure"
)

// ExpansionType 扩张类型
type ExpansionType string

const (
	ExpansionOffice   ExpansionType = "office"
	ExpansionBranch   ExpansionType = "branch"
	ExpansionFacility ExpansionType = "facility"
)

// HiringTrend 部门招聘趋势
type HiringTrend struct {
	Department Department     `json:"department" yaml:"department"`
	Count      int            `json:"count" yaml:"count"`
	Trend      TrendDirection `json:"trend" yaml:"trend"`
	KeyRoles   []string       `json:"key_roles" yaml:"key_roles"`
	GrowthRate float64        `json:"growth_rate" yaml:"growth_rate"`
}

// LeadershipChange 领导层变动
type LeadershipChange struct {
	Name         string     `json:"name" yaml:"name"`
	PreviousRole string     `json:"previous_role,omitempty" yaml:"previous_role,omitempty"`
	NewRole      string     `json:"new_role" yaml:"new_role"`
	Date         time.Time  `json:"date" yaml:"date"`
	Type         ChangeType `json:"type" yaml:"type"`
	Department   Department `json:"department,omitempty" yaml:"department,omitempty"`
}

// BranchExpansion 分支机构扩张
type BranchExpansion struct {
	Location      string        `json:"location" yaml:"location"`
	Date          time.Time     `json:"date" yaml:"date"`
	Type          ExpansionType `json:"type" yaml:"type"`
	Details       string        `json:"details" yaml:"details"`
	EmployeeCount int           `json:"employee_count,omitempty" yaml:"employee_count,omitempty"`
}

// SkillTrend 技能需求
type SkillTrend struct {
	Skill        string   `json:"skill" yaml:"skill"`
	Demand       int      `json:"demand" yaml:"demand"` // 百分比
	Count        int      `json:"count" yaml:"count"`
	RelatedRoles []string `json:"related_roles" yaml:"related_roles"`
}

// CompetitorData 竞品对比数据
type CompetitorData struct {
	Name              string     `json:"name" yaml:"name"`
	Provenance        Provenance `json:"provenance" yaml:"provenance"`
	HiringActivity    int        `json:"hiring_activity" yaml:"hiring_activity"`
	LeadershipChanges int        `json:"leadership_changes" yaml:"leadership_changes"`
	MarketActivity    int        `json:"market_activity" yaml:"market_activity"`
	EmployeeCount     int        `json:"employee_count" yaml:"employee_count"`
	RecentExpansions  int        `json:"recent_expansions" yaml:"recent_expansions"`
	SocialEngagement  int        `json:"social_engagement" yaml:"social_engagement"`
	KeyStrengths      []string   `json:"key_strengths" yaml:"key_strengths"`
	RecentMilestones  []string   `json:"recent_milestones" yaml:"recent_milestones"`
}

// ComparisonSummary 对比摘要
type ComparisonSummary struct {
	HighestHiringActivity string `json:"highest_hiring_activity" yaml:"highest_hiring_activity"`
	MostLeadershipChanges string `json:"most_leadership_changes" yaml:"most_leadership_changes"`
	HighestMarketActivity string `json:"highest_market_activity" yaml:"highest_market_activity"`
}

// Comparison 多公司对比结果
type Comparison struct {
	Companies []string          `json:"companies" yaml:"companies"`
	Data      []CompetitorData  `json:"data" yaml:"data"`
	Summary   ComparisonSummary `json:"summary" yaml:"summary"`
}

// KeyMetrics 关键指标
type KeyMetrics struct {
	TotalEmployees     int                `json:"total_employees" yaml:"total_employees"`
	RecentHires        int                `json:"recent_hires" yaml:"recent_hires"`
	JobOpenings        int                `json:"job_openings" yaml:"job_openings"`
	DepartmentsHiring  int                `json:"departments_hiring" yaml:"departments_hiring"`
	AvgPostEngagement  int                `json:"avg_post_engagement" yaml:"avg_post_engagement"`
	HiringByDepartment map[Department]int `json:"hiring_by_department" yaml:"hiring_by_department"`
}

// EngagementMetrics 社交互动指标
type EngagementMetrics struct {
	TotalEngagement   int                  `json:"total_engagement" yaml:"total_engagement"`
	AverageEngagement float64              `json:"average_engagement" yaml:"average_engagement"`
	EngagementByType  map[PostType]float64 `json:"engagement_by_type" yaml:"engagement_by_type"`
	MostEngagingType  PostType             `json:"most_engaging_type,omitempty" yaml:"most_engaging_type,omitempty"`
}

// DepartmentDemand 部门需求
type DepartmentDemand struct {
	Department Department `json:"department" yaml:"department"`
	Openings   int        `json:"openings" yaml:"openings"`
}

// HiringPrediction 招聘预测
type HiringPrediction struct {
	CurrentOpenings       int                `json:"current_openings" yaml:"current_openings"`
	NextQuarterHiring     int                `json:"next_quarter_hiring" yaml:"next_quarter_hiring"`
	HighDemandDepartments []DepartmentDemand `json:"high_demand_departments" yaml:"high_demand_departments"`
	RecommendedFocusAreas []string           `json:"recommended_focus_areas" yaml:"recommended_focus_areas"`
}

// MarketIntelligence 市场情报
type MarketIntelligence struct {
	Industry       string   `json:"industry" yaml:"industry"`
	KeyTrends      []string `json:"key_trends" yaml:"key_trends"`
	TopCompetitors []string `json:"top_competitors" yaml:"top_competitors"`
	HiringHotspots []string `json:"hiring_hotspots" yaml:"hiring_hotspots"`
	SkillGaps      []string `json:"skill_gaps" yaml:"skill_gaps"`
}

// Insight 综合洞察
type Insight struct {
	CompanyName          string             `json:"company_name" yaml:"company_name"`
	Provenance           Provenance         `json:"provenance" yaml:"provenance"`
	KeyMetrics           KeyMetrics         `json:"key_metrics" yaml:"key_metrics"`
	HiringTrends         []HiringTrend      `json:"hiring_trends" yaml:"hiring_trends"`
	LeadershipChanges    []LeadershipChange `json:"leadership_changes" yaml:"leadership_changes"`
	BranchExpansions     []BranchExpansion  `json:"branch_expansions" yaml:"branch_expansions"`
	SkillsTrends         []SkillTrend       `json:"skills_trends" yaml:"skills_trends"`
	Engagement           EngagementMetrics  `json:"engagement" yaml:"engagement"`
	HiringPrediction     HiringPrediction   `json:"hiring_prediction" yaml:"hiring_prediction"`
	MarketIntelligence   MarketIntelligence `json:"market_intelligence" yaml:"market_intelligence"`
	CompetitorComparison []CompetitorData   `json:"competitor_comparison" yaml:"competitor_comparison"`
	GeneratedAt          time.Time          `json:"generated_at" yaml:"generated_at"`
}
