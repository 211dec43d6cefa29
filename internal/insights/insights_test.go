package insights

import (
	"testing"
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/fallback"
	"github.com/RecoveryAshes/LinkScope/internal/models"
)

var testNow = time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)

func job(title string, dept models.Department, location string, reqs ...string) models.JobRecord {
	return models.JobRecord{Title: title, Department: dept, Location: location, DatePosted: testNow, Requirements: reqs}
}

func testBundle() *models.ResultBundle {
	company := models.NewCompanyRecord("Acme")
	company.Industry = "Finance"
	company.EmployeeCount = 900

	posts := []models.PostRecord{
		{Content: "We are opening a new office in Austin!", Date: testNow.AddDate(0, 0, -2), Engagement: 300, Type: models.PostTypeExpansion},
		{Content: "Join our team, we are hiring", Date: testNow.AddDate(0, 0, -4), Engagement: 100, Type: models.PostTypeHiring},
		{Content: "Happy friday", Date: testNow.AddDate(0, 0, -6), Engagement: 51, Type: models.PostTypeGeneral},
		{Content: "We reached 1 million users", Date: testNow.AddDate(0, 0, -8), Engagement: 200, Type: models.PostTypeMilestone},
	}
	jobs := []models.JobRecord{
		job("Backend Engineer", models.DeptEngineering, "Austin, TX", "Go", "SQL"),
		job("Backend Engineer", models.DeptEngineering, "Austin, TX", "Go", "AWS"),
		job("Frontend Engineer", models.DeptEngineering, "Remote", "React", "Go"),
		job("Data Engineer", models.DeptEngineering, "New York, NY", "Python", "SQL"),
		job("Account Executive", models.DeptSales, "New York, NY", "Communication"),
		job("Recruiter", models.DeptHR, "Austin, TX"),
	}
	employees := []models.EmployeeRecord{
		{Name: "Ann", Title: "Software Engineer", Department: models.DeptEngineering, Level: models.LevelEntry, Tenure: "6 months", Skills: []string{"Go", "SQL"}},
		{Name: "Ben", Title: "Engineering Manager", Department: models.DeptEngineering, Level: models.LevelManager, Tenure: "3 years", Skills: []string{"Leadership", "Go"}},
		{Name: "Cat", Title: "VP Sales", Department: models.DeptSales, Level: models.LevelVP, Tenure: "1 year", Skills: []string{"Sales"}},
		{Name: "Dan", Title: "Senior Engineer", Department: models.DeptEngineering, Level: models.LevelSenior, Tenure: "2 years", Skills: []string{"Go"}},
		{Name: "Eve", Title: "Director of People", Department: models.DeptHR, Level: models.LevelDirector, Tenure: "5+ years", Skills: []string{}},
		{Name: "Fay", Title: "CFO", Department: models.DeptFinance, Level: models.LevelCLevel, Tenure: "11 months", Skills: []string{}},
	}
	return models.NewResultBundle(company, posts, jobs, employees, models.ProvenanceReal)
}

func TestKeyMetrics(t *testing.T) {
	m := KeyMetrics(testBundle())

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"员工样本数", m.TotalEmployees, 6},
		{"近期入职", m.RecentHires, 3}, // 6 months, 1 year, 11 months
		{"开放职位", m.JobOpenings, 6},
		{"招聘部门数", m.DepartmentsHiring, 3},
		{"平均互动取整", m.AvgPostEngagement, 162}, // 651 / 4
		{"工程部门职位", m.HiringByDepartment[models.DeptEngineering], 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
		})
	}

	empty := KeyMetrics(models.NewResultBundle(models.NewCompanyRecord("Empty"), nil, nil, nil, models.ProvenanceReal))
	if empty.AvgPostEngagement != 0 || empty.HiringByDepartment == nil {
		t.Errorf("空结果包指标异常: %+v", empty)
	}
}

func TestHiringTrends(t *testing.T) {
	trends := HiringTrends(testBundle().Jobs)
	if len(trends) != 3 {
		t.Fatalf("趋势数 = %d, 期望 3", len(trends))
	}

	eng := trends[0]
	if eng.Department != models.DeptEngineering || eng.Count != 4 {
		t.Errorf("第一个趋势 = %+v, 期望 Engineering/4", eng)
	}
	if eng.Trend != models.TrendUp || eng.GrowthRate != 15.0 {
		t.Errorf("职位数超过3应为上升趋势: %+v", eng)
	}
	wantRoles := []string{"Backend Engineer", "Data Engineer", "Frontend Engineer"}
	if len(eng.KeyRoles) != len(wantRoles) {
		t.Fatalf("关键职位 = %v", eng.KeyRoles)
	}
	for i, r := range wantRoles {
		if eng.KeyRoles[i] != r {
			t.Errorf("关键职位[%d] = %q, 期望 %q", i, eng.KeyRoles[i], r)
		}
	}

	// 计数相同按部门枚举顺序: Sales 在 HR 之前
	if trends[1].Department != models.DeptSales || trends[2].Department != models.DeptHR {
		t.Errorf("并列部门顺序 = %s, %s", trends[1].Department, trends[2].Department)
	}
	if trends[1].Trend != models.TrendStable || trends[1].GrowthRate != 0 {
		t.Errorf("职位数不超过3应为平稳: %+v", trends[1])
	}

	if got := HiringTrends(nil); got == nil || len(got) != 0 {
		t.Errorf("无职位时应返回空列表, got %v", got)
	}
}

func TestLeadershipChanges(t *testing.T) {
	changes := LeadershipChanges(testBundle().Employees, testNow)
	if len(changes) != 3 {
		t.Fatalf("变动数 = %d, 期望 3", len(changes))
	}

	tests := []struct {
		name     string
		change   models.LeadershipChange
		person   string
		kind     models.ChangeType
		previous string
		daysAgo  int
	}{
		{"第一位为晋升", changes[0], "Ben", models.ChangePromotion, "Senior Manager", 5},
		{"第二位为新聘", changes[1], "Cat", models.ChangeHire, "", 15},
		{"第三位为新聘", changes[2], "Eve", models.ChangeHire, "", 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.change
			if c.Name != tt.person || c.Type != tt.kind || c.PreviousRole != tt.previous {
				t.Errorf("变动 = %+v", c)
			}
			if want := testNow.AddDate(0, 0, -tt.daysAgo); !c.Date.Equal(want) {
				t.Errorf("日期 = %v, 期望 %v", c.Date, want)
			}
		})
	}
}

func TestBranchExpansions(t *testing.T) {
	b := testBundle()

	expansions := BranchExpansions(b.Posts, b.Jobs)
	if len(expansions) != 1 {
		t.Fatalf("扩张数 = %d, 期望 1", len(expansions))
	}
	e := expansions[0]
	if e.Location != "Austin, TX" || e.EmployeeCount != 3 {
		t.Errorf("扩张地点 = %q (%d), 期望 Austin, TX (3)", e.Location, e.EmployeeCount)
	}
	if e.Type != models.ExpansionOffice || !e.Date.Equal(b.Posts[0].Date) {
		t.Errorf("扩张 = %+v", e)
	}

	t.Run("没有扩张动态", func(t *testing.T) {
		got := BranchExpansions(b.Posts[1:2], b.Jobs)
		if got == nil || len(got) != 0 {
			t.Errorf("期望空列表, got %v", got)
		}
	})

	t.Run("只有远程职位", func(t *testing.T) {
		remote := []models.JobRecord{job("SRE", models.DeptEngineering, "Remote")}
		got := BranchExpansions(b.Posts, remote)
		if len(got) != 1 || got[0].Location != models.UnknownValue {
			t.Errorf("期望地点为 Unknown, got %+v", got)
		}
	})
}

func TestSkillTrends(t *testing.T) {
	jobs := testBundle().Jobs

	demand := SkillDemand(jobs)
	if len(demand) == 0 || demand[0].Skill != "Go" || demand[0].Count != 3 {
		t.Fatalf("最高需求技能 = %+v, 期望 Go/3", demand)
	}
	if demand[1].Skill != "SQL" {
		t.Errorf("第二技能 = %q, 期望 SQL", demand[1].Skill)
	}

	trends := SkillTrends(jobs)
	if len(trends) != len(demand) {
		t.Fatalf("趋势数 = %d, 需求数 = %d", len(trends), len(demand))
	}
	if trends[0].Demand != 50 { // 3/6
		t.Errorf("Go 需求占比 = %d, 期望 50", trends[0].Demand)
	}
	for _, tr := range trends {
		if tr.Demand < 0 || tr.Demand > 100 || len(tr.RelatedRoles) == 0 {
			t.Errorf("技能趋势异常: %+v", tr)
		}
	}

	if got := SkillTrends(nil); len(got) != 0 {
		t.Errorf("无职位时应为空, got %v", got)
	}

	t.Run("最多10项", func(t *testing.T) {
		var reqs []string
		for i := 0; i < 15; i++ {
			reqs = append(reqs, string(rune('A'+i)))
		}
		many := []models.JobRecord{{Title: "X", Department: models.DeptOperations, Requirements: reqs}}
		if got := SkillDemand(many); len(got) != 10 {
			t.Errorf("技能数 = %d, 期望 10", len(got))
		}
	})
}

func TestRelatedRoles(t *testing.T) {
	tests := []struct {
		skill string
		want  string
	}{
		{"Python", "Data Scientist"},
		{"AWS", "Cloud Engineer"},
		{"Cobol", "Software Engineer"},
	}
	for _, tt := range tests {
		t.Run(tt.skill, func(t *testing.T) {
			roles := RelatedRoles(tt.skill)
			if len(roles) == 0 || roles[0] != tt.want {
				t.Errorf("RelatedRoles(%q) = %v", tt.skill, roles)
			}
		})
	}

	// 返回副本,修改不影响后续调用
	RelatedRoles("Cobol")[0] = "changed"
	if RelatedRoles("Cobol")[0] != "Software Engineer" {
		t.Error("RelatedRoles 返回了共享切片")
	}
}

func TestEngagementMetrics(t *testing.T) {
	m := EngagementMetrics(testBundle().Posts)
	if m.TotalEngagement != 651 {
		t.Errorf("总互动 = %d, 期望 651", m.TotalEngagement)
	}
	if m.AverageEngagement != 162.75 {
		t.Errorf("平均互动 = %v, 期望 162.75", m.AverageEngagement)
	}
	if m.MostEngagingType != models.PostTypeExpansion {
		t.Errorf("最高互动类型 = %q", m.MostEngagingType)
	}
	if len(m.EngagementByType) != 4 || m.EngagementByType[models.PostTypeGeneral] != 51 {
		t.Errorf("分类型互动 = %v", m.EngagementByType)
	}

	empty := EngagementMetrics(nil)
	if empty.TotalEngagement != 0 || empty.MostEngagingType != "" || empty.EngagementByType == nil {
		t.Errorf("空动态指标 = %+v", empty)
	}
}

func TestHiringPredictions(t *testing.T) {
	p := HiringPredictions(testBundle().Jobs)
	if p.CurrentOpenings != 6 || p.NextQuarterHiring != 7 {
		t.Errorf("预测 = %d -> %d, 期望 6 -> 7", p.CurrentOpenings, p.NextQuarterHiring)
	}
	if len(p.HighDemandDepartments) != 3 || p.HighDemandDepartments[0].Department != models.DeptEngineering {
		t.Errorf("高需求部门 = %+v", p.HighDemandDepartments)
	}
	if len(p.RecommendedFocusAreas) == 0 {
		t.Error("缺少建议方向")
	}

	empty := HiringPredictions(nil)
	if empty.NextQuarterHiring != 0 || empty.HighDemandDepartments == nil {
		t.Errorf("无职位预测 = %+v", empty)
	}
}

func TestDepartmentsAndSkills(t *testing.T) {
	employees := testBundle().Employees

	d := Departments(employees)
	want := []models.Department{models.DeptEngineering, models.DeptSales, models.DeptHR, models.DeptFinance}
	if len(d.Departments) != len(want) {
		t.Fatalf("部门 = %v", d.Departments)
	}
	for i := range want {
		if d.Departments[i] != want[i] {
			t.Errorf("部门[%d] = %s, 期望 %s", i, d.Departments[i], want[i])
		}
	}
	if d.DepartmentCounts[models.DeptEngineering] != 3 {
		t.Errorf("工程部门人数 = %d", d.DepartmentCounts[models.DeptEngineering])
	}

	s := Skills(employees, 2)
	if len(s.TopSkills) != 2 || s.TopSkills[0].Skill != "Go" || s.TopSkills[0].Count != 3 {
		t.Errorf("员工技能 = %+v", s.TopSkills)
	}
	if s.TotalUniqueSkills != 4 || s.EmployeesAnalyzed != 6 {
		t.Errorf("技能统计 = %d/%d", s.TotalUniqueSkills, s.EmployeesAnalyzed)
	}
	if got := Skills(employees, -1); len(got.TopSkills) != 0 {
		t.Errorf("负数 n 应返回空列表")
	}
}

func TestSearchCompetitors(t *testing.T) {
	tests := []struct {
		industry string
		first    string
	}{
		{"Finance", "JPMorgan Chase"},
		{"Software Development", "GitHub"},
		{"  consulting ", "McKinsey"},
		{"Unknown", "Microsoft"},
		{"", "Microsoft"},
	}
	for _, tt := range tests {
		t.Run(tt.industry, func(t *testing.T) {
			got := SearchCompetitors(tt.industry)
			if len(got) == 0 || len(got) > 5 || got[0] != tt.first {
				t.Errorf("SearchCompetitors(%q) = %v", tt.industry, got)
			}
		})
	}
}

func TestCompetitorFromBundle(t *testing.T) {
	d := CompetitorFromBundle(testBundle(), testNow)

	if d.Name != "Acme" || d.Provenance != models.ProvenanceReal {
		t.Errorf("竞品 = %s/%s", d.Name, d.Provenance)
	}
	if d.HiringActivity != 6 || d.LeadershipChanges != 3 || d.MarketActivity != 3 {
		t.Errorf("活跃度 = %d/%d/%d, 期望 6/3/3", d.HiringActivity, d.LeadershipChanges, d.MarketActivity)
	}
	if d.EmployeeCount != 900 || d.RecentExpansions != 1 || d.SocialEngagement != 162 {
		t.Errorf("计数 = %d/%d/%d", d.EmployeeCount, d.RecentExpansions, d.SocialEngagement)
	}
	if len(d.KeyStrengths) != 3 || d.KeyStrengths[0] != "Go" {
		t.Errorf("优势 = %v", d.KeyStrengths)
	}
	if len(d.RecentMilestones) != 1 {
		t.Errorf("里程碑 = %v", d.RecentMilestones)
	}

	// 公司员工数未知时使用样本数
	b := testBundle()
	b.Company.EmployeeCount = 0
	if got := CompetitorFromBundle(b, testNow).EmployeeCount; got != 6 {
		t.Errorf("员工数 = %d, 期望 6", got)
	}
}

func TestCompare(t *testing.T) {
	data := []models.CompetitorData{
		{Name: "A", HiringActivity: 10, LeadershipChanges: 3, MarketActivity: 2},
		{Name: "B", HiringActivity: 20, LeadershipChanges: 3, MarketActivity: 1},
		{Name: "C", HiringActivity: 5, LeadershipChanges: 1, MarketActivity: 9},
	}
	c := Compare(data)

	if len(c.Companies) != 3 || c.Companies[2] != "C" {
		t.Errorf("公司列表 = %v", c.Companies)
	}
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"招聘最活跃", c.Summary.HighestHiringActivity, "B"},
		{"领导层变动最多取靠前", c.Summary.MostLeadershipChanges, "A"},
		{"市场最活跃", c.Summary.HighestMarketActivity, "C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}

	empty := Compare(nil)
	if empty.Data == nil || empty.Companies == nil || empty.Summary.HighestHiringActivity != "" {
		t.Errorf("空对比 = %+v", empty)
	}
}

func TestMarketIntelligence(t *testing.T) {
	b := testBundle()
	mi := MarketIntelligence(b)

	if mi.Industry != "Finance" || len(mi.KeyTrends) == 0 || len(mi.SkillGaps) == 0 {
		t.Errorf("情报 = %+v", mi)
	}
	if len(mi.HiringHotspots) == 0 || mi.HiringHotspots[0] != "Austin, TX" {
		t.Errorf("热点城市 = %v", mi.HiringHotspots)
	}

	// 公司自身不出现在竞品列表中
	b.Company.Name = "Citi"
	for _, name := range MarketIntelligence(b).TopCompetitors {
		if name == "Citi" {
			t.Error("竞品列表包含公司自身")
		}
	}

	noJobs := models.NewResultBundle(models.NewCompanyRecord("X"), nil, nil, nil, models.ProvenanceReal)
	if got := MarketIntelligence(noJobs).HiringHotspots; len(got) != 5 {
		t.Errorf("无职位时热点城市 = %v", got)
	}
}

func TestGenerate(t *testing.T) {
	t.Run("真实数据", func(t *testing.T) {
		b := testBundle()
		in := Generate(b, nil, testNow)
		if in.CompanyName != "Acme" || in.Provenance != models.ProvenanceReal {
			t.Errorf("洞察 = %s/%s", in.CompanyName, in.Provenance)
		}
		if in.CompetitorComparison == nil {
			t.Error("竞品对比不应为nil")
		}
		if !in.GeneratedAt.Equal(testNow) {
			t.Errorf("生成时间 = %v", in.GeneratedAt)
		}
	})

	t.Run("合成数据所有列表非nil", func(t *testing.T) {
		b := fallback.NewSeeded(7, 11).Generate("Globex")
		in := Generate(b, []models.CompetitorData{CompetitorFromBundle(b, testNow)}, testNow)
		if in.Provenance != models.ProvenanceFallback {
			t.Errorf("来源 = %s", in.Provenance)
		}
		if in.HiringTrends == nil || in.LeadershipChanges == nil || in.BranchExpansions == nil || in.SkillsTrends == nil {
			t.Error("洞察列表字段不应为nil")
		}
		if in.KeyMetrics.JobOpenings != len(b.Jobs) {
			t.Errorf("职位数 = %d, 期望 %d", in.KeyMetrics.JobOpenings, len(b.Jobs))
		}
		if len(in.CompetitorComparison) != 1 {
			t.Errorf("竞品数 = %d", len(in.CompetitorComparison))
		}
	})
}
