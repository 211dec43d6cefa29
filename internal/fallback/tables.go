package fallback

import "github.com/RecoveryAshes/LinkScope/internal/models"

var (
	industries   = []string{"Software Development", "Technology", "Finance", "Healthcare", "Consulting"}
	sizes        = []string{"1001-5000 employees", "501-1000 employees", "201-500 employees"}
	headquarters = []string{"San Francisco, CA", "New York, NY", "Seattle, WA", "Austin, TX", "Boston, MA"}
	jobLocations = []string{"San Francisco, CA", "Remote", "New York, NY", "Austin, TX", "Hybrid"}
	tenures      = []string{"6 months", "1 year", "2 years", "3 years", "5+ years"}
	firstNames   = []string{"Sarah", "Michael", "Jennifer", "David", "Lisa", "John", "Emily", "Robert", "Jessica", "William"}
	lastNames    = []string{"Johnson", "Smith", "Brown", "Davis", "Wilson", "Garcia", "Martinez", "Anderson", "Taylor", "Thomas"}
)

// 招聘部门,合成数据不生成 Management
var jobDepartments = []models.Department{
	models.DeptEngineering, models.DeptProduct, models.DeptSales, models.DeptMarketing,
	models.DeptOperations, models.DeptHR, models.DeptFinance,
}

var jobTitles = map[models.Department][]string{
	models.DeptEngineering: {"Senior Software Engineer", "Frontend Developer", "Backend Developer", "DevOps Engineer", "Data Engineer"},
	models.DeptProduct:     {"Product Manager", "UX Designer", "Product Analyst", "UI/UX Designer"},
	models.DeptSales:       {"Account Executive", "Sales Development Rep", "Sales Manager", "Business Development"},
	models.DeptMarketing:   {"Marketing Manager", "Content Manager", "Digital Marketer", "Growth Manager"},
	models.DeptOperations:  {"Operations Manager", "Business Analyst", "Project Manager"},
	models.DeptHR:          {"HR Manager", "Recruiter", "People Operations"},
	models.DeptFinance:     {"Financial Analyst", "Accounting Manager", "Finance Manager"},
}

var levelTitles = map[models.SeniorityLevel]string{
	models.LevelEntry:    "Junior",
	models.LevelJunior:   "Junior",
	models.LevelSenior:   "Senior",
	models.LevelLead:     "Lead",
	models.LevelManager:  "Manager",
	models.LevelDirector: "Director",
	models.LevelVP:       "VP",
	models.LevelCLevel:   "Chief",
}

// 按关键字匹配的基础要求,顺序即优先级,最后一项为默认
var baseRequirements = []struct {
	key  string
	reqs []string
}{
	{"engineer", []string{"5+ years experience", "Bachelor's degree", "Strong problem-solving skills"}},
	{"senior", []string{"7+ years experience", "Leadership experience", "Mentoring skills"}},
	{"manager", []string{"Management experience", "Strategic thinking", "Team leadership"}},
	{"designer", []string{"Design portfolio", "UX/UI skills", "Creative thinking"}},
	{"analyst", []string{"Data analysis skills", "Excel/SQL proficiency", "Analytical mindset"}},
	{"developer", []string{"3+ years experience", "Strong coding skills", "Agile experience"}},
}

var techSkills = []struct {
	role   string
	skills []string
}{
	{"Software Engineer", []string{"Python", "JavaScript", "React", "Node.js", "AWS"}},
	{"Frontend Developer", []string{"React", "JavaScript", "HTML/CSS", "TypeScript", "Vue.js"}},
	{"Backend Developer", []string{"Python", "Java", "SQL", "REST APIs", "Docker"}},
	{"DevOps Engineer", []string{"AWS", "Docker", "Kubernetes", "CI/CD", "Linux"}},
	{"Data Engineer", []string{"Python", "SQL", "Apache Spark", "ETL", "Data Warehousing"}},
	{"Product Manager", []string{"Product strategy", "Agile", "Data analysis", "User research"}},
	{"UX Designer", []string{"Figma", "User research", "Prototyping", "Design systems"}},
	{"Sales", []string{"CRM experience", "B2B sales", "Communication skills", "Relationship building"}},
}

var skillPool = []string{
	"Python", "JavaScript", "React", "Node.js", "AWS", "Docker", "Kubernetes",
	"Machine Learning", "Data Analysis", "SQL", "Project Management", "Agile",
	"Leadership", "Communication", "Problem Solving", "Team Collaboration",
	"Strategic Planning", "UX Design", "Product Management", "Sales", "Marketing",
}
