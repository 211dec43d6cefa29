package fallback

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/RecoveryAshes/LinkScope/internal/models"
)

func TestGenerate_数量与结构(t *testing.T) {
	g := New()
	for i := 0; i < 20; i++ {
		b := g.Generate("Acme")

		if err := b.Validate(); err != nil {
			t.Fatalf("合成结果包未通过校验: %v", err)
		}
		if b.Company.Name != "Acme" {
			t.Errorf("公司名称 = %q", b.Company.Name)
		}
		if b.Provenance != models.ProvenanceFallback {
			t.Errorf("数据来源 = %q", b.Provenance)
		}
		if n := len(b.Posts); n < 5 || n > 15 {
			t.Errorf("动态数 %d 超出 [5,15]", n)
		}
		if n := len(b.Jobs); n < 8 || n > 25 {
			t.Errorf("职位数 %d 超出 [8,25]", n)
		}
		if n := len(b.Employees); n < 15 || n > 50 {
			t.Errorf("员工数 %d 超出 [15,50]", n)
		}
	}
}

func TestGenerate_字段范围(t *testing.T) {
	g := New()
	b := g.Generate("Open AI")
	now := g.now()

	c := b.Company
	if c.Website != "https://www.openai.com" {
		t.Errorf("官网 = %q", c.Website)
	}
	if c.Founded < 1990 || c.Founded > 2015 {
		t.Errorf("成立年份 %d 超出范围", c.Founded)
	}
	if c.EmployeeCount < 500 || c.EmployeeCount > 5000 || c.FollowerCount < 10000 || c.FollowerCount > 100000 {
		t.Errorf("数值超出范围: %+v", c)
	}

	for _, p := range b.Posts {
		if p.Engagement < 50 || p.Engagement > 500 {
			t.Errorf("互动数 %d 超出范围", p.Engagement)
		}
		if p.Author != "Open AI HR Team" {
			t.Errorf("作者 = %q", p.Author)
		}
		if age := now.Sub(p.Date).Hours() / 24; age < 0.9 || age > 30.1 {
			t.Errorf("发布时间距今 %.1f 天", age)
		}
	}

	for _, j := range b.Jobs {
		if j.Department == models.DeptManagement {
			t.Errorf("职位不应属于 Management: %+v", j)
		}
		if len(j.Requirements) == 0 || len(j.Requirements) > models.MaxRequirements {
			t.Errorf("技能要求数量异常: %v", j.Requirements)
		}
		if j.EmploymentType != "full-time" || !strings.HasPrefix(j.Salary, "$") {
			t.Errorf("职位字段异常: %+v", j)
		}
	}

	for _, e := range b.Employees {
		if n := len(e.Skills); n < 4 || n > 8 {
			t.Errorf("员工技能数 %d 超出 [4,8]", n)
		}
		if e.Tenure == "" || e.Title == "" {
			t.Errorf("员工字段为空: %+v", e)
		}
	}
}

func TestGenerate_调用之间独立随机(t *testing.T) {
	g := New()
	first := g.Generate("Acme")

	// 20次全部相同的概率可以忽略
	for i := 0; i < 20; i++ {
		b := g.Generate("Acme")
		if len(b.Posts) != len(first.Posts) || len(b.Jobs) != len(first.Jobs) || len(b.Employees) != len(first.Employees) ||
			b.Company.Industry != first.Company.Industry || b.Company.FollowerCount != first.Company.FollowerCount {
			return
		}
	}
	t.Error("多次生成结果完全相同,随机源可能被共享")
}

func TestNewSeeded_可复现(t *testing.T) {
	a := NewSeeded(1, 2).Generate("Acme")
	b := NewSeeded(1, 2).Generate("Acme")

	if len(a.Posts) != len(b.Posts) || len(a.Jobs) != len(b.Jobs) || len(a.Employees) != len(b.Employees) {
		t.Fatal("相同种子应生成相同数量的记录")
	}
	if a.Company != b.Company {
		t.Errorf("相同种子应生成相同的公司信息:\n%+v\n%+v", a.Company, b.Company)
	}
	for i := range a.Jobs {
		if a.Jobs[i].Title != b.Jobs[i].Title {
			t.Errorf("第%d个职位不同: %q vs %q", i, a.Jobs[i].Title, b.Jobs[i].Title)
		}
	}
}

func TestEmployeeTitle(t *testing.T) {
	tests := []struct {
		dept     models.Department
		level    models.SeniorityLevel
		expected string
	}{
		{models.DeptSales, models.LevelEntry, "Junior Sales Specialist"},
		{models.DeptSales, models.LevelLead, "Lead Sales Specialist"},
		{models.DeptHR, models.LevelManager, "HR Manager"},
		{models.DeptFinance, models.LevelDirector, "Finance Director"},
		{models.DeptProduct, models.LevelVP, "VP of Product"},
		{models.DeptEngineering, models.LevelCLevel, "Chief Engineering Officer"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := employeeTitle(tt.dept, tt.level); got != tt.expected {
				t.Errorf("employeeTitle() = %q, 期望 %q", got, tt.expected)
			}
		})
	}
}

func TestRequirements(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))

	got := requirements(r, "DevOps Engineer")
	if got[0] != "5+ years experience" {
		t.Errorf("engineer 基础要求应排在前面: %v", got)
	}
	if len(got) < 5 || len(got) > 7 {
		t.Errorf("应包含3项基础要求和2-4项技术技能, 实际 %v", got)
	}

	got = requirements(r, "People Operations")
	if strings.Join(got, "|") != "3+ years experience|Strong coding skills|Agile experience" {
		t.Errorf("无匹配时应使用默认要求: %v", got)
	}
}

func TestGenerate_展示名(t *testing.T) {
	b := NewSeeded(3, 4).Generate("acme corp")
	if b.Company.Name != "acme corp" {
		t.Errorf("公司名称应保持原样: %q", b.Company.Name)
	}
	if !strings.HasPrefix(b.Company.Description, "Acme Corp ") {
		t.Errorf("简介应使用首字母大写的展示名: %q", b.Company.Description)
	}
}
