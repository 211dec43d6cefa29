// Package insights 从结果包计算招聘、技能、互动和竞品等聚合指标
//
// 所有函数都是纯函数,相同输入得到相同输出,排序在计数相同时保持固定顺序
package insights

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/models"
)

const (
	// trendUpThreshold 部门职位数超过该值视为上升趋势
	trendUpThreshold = 3
	// trendUpGrowth 上升趋势的增长率(%)
	trendUpGrowth = 15.0
	// maxKeyRoles 每个部门列出的关键职位数
	maxKeyRoles = 3
	// maxLeadershipChanges 领导层变动条数
	maxLeadershipChanges = 3
	// maxHighDemandDepartments 高需求部门数
	maxHighDemandDepartments = 3
)

// expansionKeywords 扩张类动态的关键字
var expansionKeywords = []string{"opening", "new office", "expansion", "branch", "location"}

// recommendedFocusAreas 招聘预测的建议方向
var recommendedFocusAreas = []string{
	"Engineering talent acquisition",
	"Remote work capabilities",
	"Diversity and inclusion initiatives",
}

// KeyMetrics 关键指标
func KeyMetrics(b *models.ResultBundle) models.KeyMetrics {
	m := models.KeyMetrics{
		TotalEmployees:     len(b.Employees),
		JobOpenings:        len(b.Jobs),
		HiringByDepartment: make(map[models.Department]int),
	}
	for _, e := range b.Employees {
		if isRecentHire(e.Tenure) {
			m.RecentHires++
		}
	}
	for _, j := range b.Jobs {
		m.HiringByDepartment[j.Department]++
	}
	m.DepartmentsHiring = len(m.HiringByDepartment)
	if len(b.Posts) > 0 {
		total := 0
		for _, p := range b.Posts {
			total += p.Engagement
		}
		m.AvgPostEngagement = total / len(b.Posts)
	}
	return m
}

// isRecentHire 任职不足一年或恰好一年
func isRecentHire(tenure string) bool {
	t := strings.ToLower(strings.TrimSpace(tenure))
	return strings.Contains(t, "month") || t == "1 year"
}

// departmentCount 部门计数
type departmentCount struct {
	dept  models.Department
	count int
}

// countByDepartment 按计数倒序,计数相同按部门枚举顺序
func countByDepartment(jobs []models.JobRecord) []departmentCount {
	counts := make(map[models.Department]int)
	for _, j := range jobs {
		counts[j.Department]++
	}
	out := make([]departmentCount, 0, len(counts))
	for _, d := range models.AllDepartments {
		if n := counts[d]; n > 0 {
			out = append(out, departmentCount{d, n})
		}
	}
	slices.SortStableFunc(out, func(a, b departmentCount) int {
		return cmp.Compare(b.count, a.count)
	})
	return out
}

// HiringTrends 各部门招聘趋势
func HiringTrends(jobs []models.JobRecord) []models.HiringTrend {
	trends := make([]models.HiringTrend, 0)
	for _, dc := range countByDepartment(jobs) {
		trend := models.HiringTrend{
			Department: dc.dept,
			Count:      dc.count,
			Trend:      models.TrendStable,
			KeyRoles:   keyRoles(jobs, dc.dept),
		}
		if dc.count > trendUpThreshold {
			trend.Trend = models.TrendUp
			trend.GrowthRate = trendUpGrowth
		}
		trends = append(trends, trend)
	}
	return trends
}

// keyRoles 部门内出现最多的职位名称
func keyRoles(jobs []models.JobRecord, dept models.Department) []string {
	var titles []string
	for _, j := range jobs {
		if j.Department == dept {
			titles = append(titles, j.Title)
		}
	}
	return topN(titles, maxKeyRoles)
}

// LeadershipChanges 经理及以上员工中的前几位视为近期变动
// 第一位记为晋升,其余记为新聘
func LeadershipChanges(employees []models.EmployeeRecord, now time.Time) []models.LeadershipChange {
	changes := make([]models.LeadershipChange, 0, maxLeadershipChanges)
	for _, e := range employees {
		if !e.Level.IsLeadership() {
			continue
		}
		i := len(changes)
		change := models.LeadershipChange{
			Name:       e.Name,
			NewRole:    e.Title,
			Date:       now.AddDate(0, 0, -(i*10 + 5)),
			Type:       models.ChangeHire,
			Department: e.Department,
		}
		if i == 0 {
			change.Type = models.ChangePromotion
			change.PreviousRole = "Senior Manager"
		}
		changes = append(changes, change)
		if len(changes) == maxLeadershipChanges {
			break
		}
	}
	return changes
}

// BranchExpansions 从扩张类动态推断新办公地点
// 地点取职位中出现最多的非远程地点
func BranchExpansions(posts []models.PostRecord, jobs []models.JobRecord) []models.BranchExpansion {
	expansions := make([]models.BranchExpansion, 0)

	var post *models.PostRecord
	for i := range posts {
		if mentionsExpansion(posts[i].Content) {
			post = &posts[i]
			break
		}
	}
	if post == nil {
		return expansions
	}

	var locations []string
	for _, j := range jobs {
		if loc := strings.TrimSpace(j.Location); loc != "" && !isRemote(loc) {
			locations = append(locations, loc)
		}
	}
	location := models.UnknownValue
	headcount := 0
	if top := topN(locations, 1); len(top) == 1 {
		location = top[0]
		for _, l := range locations {
			if l == location {
				headcount++
			}
		}
	}

	return append(expansions, models.BranchExpansion{
		Location:      location,
		Date:          post.Date,
		Type:          models.ExpansionOffice,
		Details:       truncate(post.Content, 160),
		EmployeeCount: headcount,
	})
}

func mentionsExpansion(content string) bool {
	lower := strings.ToLower(content)
	for _, kw := range expansionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isRemote(location string) bool {
	l := strings.ToLower(location)
	return strings.Contains(l, "remote") || l == "hybrid"
}

// EngagementMetrics 动态互动指标
func EngagementMetrics(posts []models.PostRecord) models.EngagementMetrics {
	m := models.EngagementMetrics{EngagementByType: make(map[models.PostType]float64)}
	if len(posts) == 0 {
		return m
	}

	sums := make(map[models.PostType]int)
	counts := make(map[models.PostType]int)
	for _, p := range posts {
		m.TotalEngagement += p.Engagement
		sums[p.Type] += p.Engagement
		counts[p.Type]++
	}
	m.AverageEngagement = float64(m.TotalEngagement) / float64(len(posts))

	best := -1.0
	for _, t := range models.AllPostTypes {
		if counts[t] == 0 {
			continue
		}
		avg := float64(sums[t]) / float64(counts[t])
		m.EngagementByType[t] = avg
		if avg > best {
			best = avg
			m.MostEngagingType = t
		}
	}
	return m
}

// HiringPredictions 按当前职位数预测下季度招聘
func HiringPredictions(jobs []models.JobRecord) models.HiringPrediction {
	p := models.HiringPrediction{
		CurrentOpenings:       len(jobs),
		NextQuarterHiring:     len(jobs) * 12 / 10,
		HighDemandDepartments: make([]models.DepartmentDemand, 0, maxHighDemandDepartments),
		RecommendedFocusAreas: slices.Clone(recommendedFocusAreas),
	}
	for _, dc := range countByDepartment(jobs) {
		if len(p.HighDemandDepartments) == maxHighDemandDepartments {
			break
		}
		p.HighDemandDepartments = append(p.HighDemandDepartments, models.DepartmentDemand{
			Department: dc.dept,
			Openings:   dc.count,
		})
	}
	return p
}

// DepartmentBreakdown 员工按部门的人数
type DepartmentBreakdown struct {
	Departments      []models.Department       `json:"departments" yaml:"departments"`
	DepartmentCounts map[models.Department]int `json:"department_counts" yaml:"department_counts"`
}

// Departments 员工部门分布,部门按枚举顺序
func Departments(employees []models.EmployeeRecord) DepartmentBreakdown {
	d := DepartmentBreakdown{
		Departments:      make([]models.Department, 0),
		DepartmentCounts: make(map[models.Department]int),
	}
	for _, e := range employees {
		d.DepartmentCounts[e.Department]++
	}
	for _, dept := range models.AllDepartments {
		if d.DepartmentCounts[dept] > 0 {
			d.Departments = append(d.Departments, dept)
		}
	}
	return d
}

// topN 出现次数最多的前n项,次数相同按首次出现顺序
func topN(items []string, n int) []string {
	counts := countItems(items)
	out := make([]string, 0, min(n, len(counts)))
	for _, c := range counts {
		if len(out) == n {
			break
		}
		out = append(out, c.Skill)
	}
	return out
}

func truncate(s string, maxRunes int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= maxRunes {
		return s
	}
	return string(r[:maxRunes-3]) + "..."
}
