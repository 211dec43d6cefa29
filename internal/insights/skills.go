package insights

import (
	"cmp"
	"slices"
	"strings"

	"github.com/RecoveryAshes/LinkScope/internal/models"
)

// maxSkillTrends 技能需求条数
const maxSkillTrends = 10

// relatedRoles 技能常见的关联职位
var relatedRoles = map[string][]string{
	"Python":             {"Data Scientist", "Backend Developer", "DevOps Engineer"},
	"JavaScript":         {"Frontend Developer", "Full Stack Developer", "Web Developer"},
	"React":              {"Frontend Developer", "UI Developer", "Full Stack Developer"},
	"AWS":                {"Cloud Engineer", "DevOps Engineer", "Solutions Architect"},
	"Machine Learning":   {"Data Scientist", "ML Engineer", "AI Researcher"},
	"Leadership":         {"Manager", "Director", "Team Lead"},
	"Product Management": {"Product Manager", "Product Owner", "Strategy Manager"},
}

var defaultRelatedRoles = []string{"Software Engineer", "Analyst"}

// SkillCount 技能出现次数
type SkillCount struct {
	Skill string `json:"skill" yaml:"skill"`
	Count int    `json:"count" yaml:"count"`
}

// countItems 计数并按次数倒序,次数相同按名称排序
func countItems(items []string) []SkillCount {
	counts := make(map[string]int)
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			counts[it]++
		}
	}
	out := make([]SkillCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, SkillCount{Skill: k, Count: v})
	}
	slices.SortFunc(out, func(a, b SkillCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Skill, b.Skill)
	})
	return out
}

// SkillDemand 职位要求中出现最多的技能
func SkillDemand(jobs []models.JobRecord) []SkillCount {
	var all []string
	for _, j := range jobs {
		all = append(all, j.Requirements...)
	}
	counts := countItems(all)
	return counts[:min(len(counts), maxSkillTrends)]
}

// SkillTrends 技能需求占比,占比为出现该技能的职位比例
func SkillTrends(jobs []models.JobRecord) []models.SkillTrend {
	trends := make([]models.SkillTrend, 0, maxSkillTrends)
	if len(jobs) == 0 {
		return trends
	}
	for _, sc := range SkillDemand(jobs) {
		trends = append(trends, models.SkillTrend{
			Skill:        sc.Skill,
			Demand:       min(100, sc.Count*100/len(jobs)),
			Count:        sc.Count,
			RelatedRoles: RelatedRoles(sc.Skill),
		})
	}
	return trends
}

// RelatedRoles 技能的关联职位,未收录的技能返回通用职位
func RelatedRoles(skill string) []string {
	if roles, ok := relatedRoles[skill]; ok {
		return slices.Clone(roles)
	}
	return slices.Clone(defaultRelatedRoles)
}

// EmployeeSkills 员工技能统计
type EmployeeSkills struct {
	TopSkills         []SkillCount `json:"top_skills" yaml:"top_skills"`
	TotalUniqueSkills int          `json:"total_unique_skills" yaml:"total_unique_skills"`
	EmployeesAnalyzed int          `json:"total_employees_analyzed" yaml:"total_employees_analyzed"`
}

// Skills 员工中最常见的 n 项技能
func Skills(employees []models.EmployeeRecord, n int) EmployeeSkills {
	var all []string
	for _, e := range employees {
		all = append(all, e.Skills...)
	}
	counts := countItems(all)
	if n < 0 {
		n = 0
	}
	return EmployeeSkills{
		TopSkills:         counts[:min(len(counts), n)],
		TotalUniqueSkills: len(counts),
		EmployeesAnalyzed: len(employees),
	}
}
