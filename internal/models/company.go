package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// UnknownValue 未能抓取到的文本字段统一使用的默认值
const UnknownValue = "Unknown"

// MaxRequirements 单个职位保留的技能要求上限
const MaxRequirements = 10

// PostType 公司动态类型
type PostType string

const (
	PostTypeHiring    PostType = "hiring"    // 招聘
	PostTypeExpansion PostType = "expansion" // 扩张
	PostTypeMilestone PostType = "milestone" // 里程碑
	PostTypeGeneral   PostType = "general"   // 其他
)

// AllPostTypes 全部动态类型,顺序即分类优先级
var AllPostTypes = []PostType{PostTypeHiring, PostTypeExpansion, PostTypeMilestone, PostTypeGeneral}

// Valid 是否属于封闭枚举
func (t PostType) Valid() bool {
	for _, v := range AllPostTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Department 部门
type Department string

const (
	DeptEngineering Department = "Engineering"
	DeptProduct     Department = "Product"
	DeptSales       Department = "Sales"
	DeptMarketing   Department = "Marketing"
	DeptHR          Department = "HR"
	DeptFinance     Department = "Finance"
	DeptManagement  Department = "Management"
	DeptOperations  Department = "Operations" // 无法归类时的默认部门
)

// AllDepartments 全部部门
var AllDepartments = []Department{
	DeptEngineering, DeptProduct, DeptSales, DeptMarketing,
	DeptHR, DeptFinance, DeptManagement, DeptOperations,
}

// Valid 是否属于封闭枚举
func (d Department) Valid() bool {
	for _, v := range AllDepartments {
		if d == v {
			return true
		}
	}
	return false
}

// SeniorityLevel 职级
type SeniorityLevel string

const (
	LevelEntry    SeniorityLevel = "entry" // 无法归类时的默认职级
	LevelJunior   SeniorityLevel = "junior"
	LevelSenior   SeniorityLevel = "senior"
	LevelLead     SeniorityLevel = "lead"
	LevelManager  SeniorityLevel = "manager"
	LevelDirector SeniorityLevel = "director"
	LevelVP       SeniorityLevel = "vp"
	LevelCLevel   SeniorityLevel = "c_level"
)

// AllSeniorityLevels 全部职级
var AllSeniorityLevels = []SeniorityLevel{
	LevelEntry, LevelJunior, LevelSenior, LevelLead,
	LevelManager, LevelDirector, LevelVP, LevelCLevel,
}

// Valid 是否属于封闭枚举
func (l SeniorityLevel) Valid() bool {
	for _, v := range AllSeniorityLevels {
		if l == v {
			return true
		}
	}
	return false
}

// IsLeadership 是否为经理及以上职级
func (l SeniorityLevel) IsLeadership() bool {
	switch l {
	case LevelManager, LevelDirector, LevelVP, LevelCLevel:
		return true
	}
	return false
}

// Provenance 数据来源
type Provenance string

const (
	ProvenanceReal     Provenance = "real"     // 真实抓取
	ProvenanceFallback Provenance = "fallback" // 合成数据
)

// CompanyRecord 公司基本信息
type CompanyRecord struct {
	Name          string `json:"name" yaml:"name"`
	Industry      string `json:"industry" yaml:"industry"`
	Size          string `json:"size" yaml:"size"`
	Headquarters  string `json:"headquarters" yaml:"headquarters"`
	Founded       int    `json:"founded,omitempty" yaml:"founded,omitempty"`
	Website       string `json:"website" yaml:"website"`
	Description   string `json:"description" yaml:"description"`
	EmployeeCount int    `json:"employee_count" yaml:"employee_count"`
	FollowerCount int    `json:"follower_count" yaml:"follower_count"`
	LinkedInURL   string `json:"linkedin_url,omitempty" yaml:"linkedin_url,omitempty"`
}

// NewCompanyRecord 创建公司记录,未知字段填充默认值
func NewCompanyRecord(name string) CompanyRecord {
	return CompanyRecord{
		Name:         name,
		Industry:     UnknownValue,
		Size:         UnknownValue,
		Headquarters: UnknownValue,
		Website:      "",
		Description:  "",
	}
}

// PostRecord 公司动态
type PostRecord struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	Date       time.Time `json:"date"`
	Engagement int       `json:"engagement"`
	Type       PostType  `json:"type"`
	URL        string    `json:"url,omitempty"`
	Author     string    `json:"author,omitempty"`
}

// JobRecord 职位
type JobRecord struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Location       string     `json:"location"`
	Department     Department `json:"department"`
	DatePosted     time.Time  `json:"date_posted"`
	Requirements   []string   `json:"requirements"`
	Description    string     `json:"description,omitempty"`
	Salary         string     `json:"salary_range,omitempty"`
	EmploymentType string     `json:"employment_type,omitempty"`
	URL            string     `json:"url,omitempty"`
}

// EmployeeRecord 员工档案
type EmployeeRecord struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Title      string         `json:"title"`
	Department Department     `json:"department"`
	Level      SeniorityLevel `json:"level"`
	Location   string         `json:"location"`
	Skills     []string       `json:"skills"`
	Tenure     string         `json:"tenure,omitempty"`
	Education  string         `json:"education,omitempty"`
	ProfileURL string         `json:"profile_url,omitempty"`
}

// ResultBundle 一次抓取的完整结果,要么全部真实,要么全部合成
type ResultBundle struct {
	Company    CompanyRecord    `json:"company"`
	Posts      []PostRecord     `json:"recent_posts"`
	Jobs       []JobRecord      `json:"job_postings"`
	Employees  []EmployeeRecord `json:"employees"`
	Provenance Provenance       `json:"provenance"`
	ScrapedAt  time.Time        `json:"scraped_at"`
}

// NewResultBundle 组装结果包,所有列表字段保证非nil
func NewResultBundle(company CompanyRecord, posts []PostRecord, jobs []JobRecord, employees []EmployeeRecord, provenance Provenance) *ResultBundle {
	b := &ResultBundle{
		Company:    company,
		Posts:      posts,
		Jobs:       jobs,
		Employees:  employees,
		Provenance: provenance,
		ScrapedAt:  time.Now(),
	}
	b.normalize()
	return b
}

func (b *ResultBundle) normalize() {
	if b.Posts == nil {
		b.Posts = []PostRecord{}
	}
	if b.Jobs == nil {
		b.Jobs = []JobRecord{}
	}
	if b.Employees == nil {
		b.Employees = []EmployeeRecord{}
	}
	for i := range b.Jobs {
		b.Jobs[i].Requirements = BoundRequirements(b.Jobs[i].Requirements)
		if !b.Jobs[i].Department.Valid() {
			b.Jobs[i].Department = DeptOperations
		}
	}
	for i := range b.Employees {
		if b.Employees[i].Skills == nil {
			b.Employees[i].Skills = []string{}
		}
		if !b.Employees[i].Department.Valid() {
			b.Employees[i].Department = DeptOperations
		}
		if !b.Employees[i].Level.Valid() {
			b.Employees[i].Level = LevelEntry
		}
	}
	for i := range b.Posts {
		if !b.Posts[i].Type.Valid() {
			b.Posts[i].Type = PostTypeGeneral
		}
		if b.Posts[i].Engagement < 0 {
			b.Posts[i].Engagement = 0
		}
	}
}

// Validate 校验结果包结构完整性
func (b *ResultBundle) Validate() error {
	if b == nil {
		return fmt.Errorf("结果包为空")
	}
	if strings.TrimSpace(b.Company.Name) == "" {
		return fmt.Errorf("公司名称不能为空")
	}
	if b.Posts == nil || b.Jobs == nil || b.Employees == nil {
		return fmt.Errorf("列表字段不能为nil")
	}
	if b.Provenance != ProvenanceReal && b.Provenance != ProvenanceFallback {
		return fmt.Errorf("无效的数据来源: %q", b.Provenance)
	}
	for i, p := range b.Posts {
		if !p.Type.Valid() {
			return fmt.Errorf("第%d条动态类型无效: %q", i+1, p.Type)
		}
		if p.Engagement < 0 {
			return fmt.Errorf("第%d条动态互动数为负", i+1)
		}
	}
	for i, j := range b.Jobs {
		if !j.Department.Valid() {
			return fmt.Errorf("第%d个职位部门无效: %q", i+1, j.Department)
		}
		if j.Requirements == nil || len(j.Requirements) > MaxRequirements {
			return fmt.Errorf("第%d个职位技能要求不合法", i+1)
		}
	}
	for i, e := range b.Employees {
		if !e.Department.Valid() {
			return fmt.Errorf("第%d个员工部门无效: %q", i+1, e.Department)
		}
		if !e.Level.Valid() {
			return fmt.Errorf("第%d个员工职级无效: %q", i+1, e.Level)
		}
		if e.Skills == nil {
			return fmt.Errorf("第%d个员工技能列表为nil", i+1)
		}
	}
	return nil
}

// ToJSON 序列化为JSON
func (b *ResultBundle) ToJSON() ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// FromJSON 从JSON反序列化
func (b *ResultBundle) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, b); err != nil {
		return err
	}
	b.normalize()
	return nil
}

// BoundRequirements 去重并截断技能要求,保留原有顺序
func BoundRequirements(reqs []string) []string {
	out := make([]string, 0, len(reqs))
	seen := make(map[string]bool, len(reqs))
	for _, r := range reqs {
		r = strings.TrimSpace(r)
		key := strings.ToLower(r)
		if r == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
		if len(out) == MaxRequirements {
			break
		}
	}
	return out
}
