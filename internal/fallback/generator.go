// Package fallback 在真实抓取不可用时生成结构完整的合成数据
package fallback

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Generator 合成数据生成器
// 每次 Generate 使用独立的随机源,调用之间不共享状态
type Generator struct {
	newRand func() *rand.Rand
	now     func() time.Time
}

// New 使用随机种子的生成器
func New() *Generator {
	return &Generator{
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
		now: time.Now,
	}
}

// NewSeeded 固定种子的生成器,相同种子产生相同的数据分布
func NewSeeded(seed1, seed2 uint64) *Generator {
	g := New()
	g.newRand = func() *rand.Rand {
		return rand.New(rand.NewPCG(seed1, seed2))
	}
	return g
}

// Generate 生成公司的完整结果包,数据来源标记为 fallback
func (g *Generator) Generate(name string) *models.ResultBundle {
	r := g.newRand()
	now := g.now()
	display := cases.Title(language.English, cases.NoLower).String(name)
	slug := strings.ToLower(strings.ReplaceAll(name, " ", ""))

	company := g.company(r, name, display, slug)

	posts := make([]models.PostRecord, 0, 15)
	for i := range between(r, 5, 15) {
		postType := pick(r, models.AllPostTypes)
		posts = append(posts, models.PostRecord{
			ID:         models.NewID(),
			Content:    postContent(display, postType),
			Date:       now.AddDate(0, 0, -between(r, 1, 30)),
			Engagement: between(r, 50, 500),
			Type:       postType,
			URL:        fmt.Sprintf("https://linkedin.com/company/%s/posts/%d", slug, i+1),
			Author:     name + " HR Team",
		})
	}

	jobs := make([]models.JobRecord, 0, 25)
	for range between(r, 8, 25) {
		dept := pick(r, jobDepartments)
		title := pick(r, jobTitles[dept])
		low := between(r, 80, 200)
		high := between(r, max(low, 120), 300)
		jobs = append(jobs, models.JobRecord{
			ID:             models.NewID(),
			Title:          title,
			Location:       pick(r, jobLocations),
			Department:     dept,
			DatePosted:     now.AddDate(0, 0, -between(r, 1, 15)),
			Requirements:   requirements(r, title),
			Description:    fmt.Sprintf("We are looking for a talented %s to join our %s team. This role offers exciting opportunities to work on cutting-edge projects.", title, dept),
			Salary:         fmt.Sprintf("$%dK - $%dK", low, high),
			EmploymentType: "full-time",
		})
	}

	employees := make([]models.EmployeeRecord, 0, 50)
	for range between(r, 15, 50) {
		employees = append(employees, employee(r))
	}

	return models.NewResultBundle(company, posts, jobs, employees, models.ProvenanceFallback)
}

func (g *Generator) company(r *rand.Rand, name, display, slug string) models.CompanyRecord {
	rec := models.NewCompanyRecord(name)
	rec.Industry = pick(r, industries)
	rec.Size = pick(r, sizes)
	rec.Headquarters = pick(r, headquarters)
	rec.Founded = between(r, 1990, 2015)
	rec.Website = "https://www." + slug + ".com"
	rec.Description = display + " is a leading technology company specializing in innovative solutions for modern businesses. We focus on delivering high-quality products and services that drive digital transformation."
	rec.EmployeeCount = between(r, 500, 5000)
	rec.FollowerCount = between(r, 10_000, 100_000)
	return rec
}

func employee(r *rand.Rand) models.EmployeeRecord {
	dept := pick(r, jobDepartments)
	level := pick(r, models.AllSeniorityLevels)

	n := between(r, 4, 8)
	skills := make([]string, n)
	for i, idx := range r.Perm(len(skillPool))[:n] {
		skills[i] = skillPool[idx]
	}

	return models.EmployeeRecord{
		ID:         models.NewID(),
		Name:       pick(r, firstNames) + " " + pick(r, lastNames),
		Title:      employeeTitle(dept, level),
		Department: dept,
		Level:      level,
		Location:   pick(r, headquarters),
		Skills:     skills,
		Tenure:     pick(r, tenures),
	}
}

// employeeTitle 由部门和职级组合职位名称
func employeeTitle(dept models.Department, level models.SeniorityLevel) string {
	switch level {
	case models.LevelManager, models.LevelDirector:
		return fmt.Sprintf("%s %s", dept, levelTitles[level])
	case models.LevelVP:
		return fmt.Sprintf("VP of %s", dept)
	case models.LevelCLevel:
		return fmt.Sprintf("Chief %s Officer", dept)
	default:
		return fmt.Sprintf("%s %s Specialist", levelTitles[level], dept)
	}
}

// requirements 按职位名称组合基础要求与技术技能
func requirements(r *rand.Rand, title string) []string {
	lower := strings.ToLower(title)

	reqs := baseRequirements[len(baseRequirements)-1].reqs
	for _, b := range baseRequirements {
		if strings.Contains(lower, b.key) {
			reqs = b.reqs
			break
		}
	}
	out := append([]string(nil), reqs...)

	for _, t := range techSkills {
		if strings.Contains(lower, strings.ToLower(t.role)) {
			n := min(between(r, 2, 4), len(t.skills))
			for _, idx := range r.Perm(len(t.skills))[:n] {
				out = append(out, t.skills[idx])
			}
			break
		}
	}
	return models.BoundRequirements(out)
}

func postContent(display string, t models.PostType) string {
	switch t {
	case models.PostTypeHiring:
		return fmt.Sprintf("Exciting news! %s is expanding our team. We're hiring talented professionals in Engineering, Product, and Sales. Join us in building the future of technology! #Hiring #TechJobs #Innovation", display)
	case models.PostTypeExpansion:
		return "🎉 We're thrilled to announce the opening of our new office in Austin, TX! This expansion reflects our commitment to growth and bringing our services closer to our customers. #Expansion #Growth #Austin"
	case models.PostTypeMilestone:
		return fmt.Sprintf("Celebrating a major milestone! %s has just reached 1 million users and $50M in annual revenue. Thank you to our amazing team and customers who made this possible! #Milestone #Growth #Grateful", display)
	default:
		return fmt.Sprintf("At %s, we believe in innovation and excellence. Our team continues to push boundaries and deliver exceptional solutions for our clients. #Innovation #TeamWork #Excellence", display)
	}
}

// between 返回 [lo, hi] 闭区间内的随机整数
func between(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

func pick[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}
