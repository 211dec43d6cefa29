package crawlers

import (
	"strings"
	"unicode"

	"github.com/RecoveryAshes/LinkScope/internal/models"
)

// keywordRule 一条分类规则,命中任一关键字即归入该类别
type keywordRule[T any] struct {
	value    T
	keywords []string
}

// 规则顺序即优先级,先命中者胜出
var postRules = []keywordRule[models.PostType]{
	{models.PostTypeHiring, []string{"hiring", "hire", "job", "jobs", "career", "careers", "position", "positions", "open", "recruiting"}},
	{models.PostTypeExpansion, []string{"expansion", "new office", "growing", "expand", "opening"}},
	{models.PostTypeMilestone, []string{"milestone", "achievement", "celebration", "anniversary", "reached"}},
}

var departmentRules = []keywordRule[models.Department]{
	{models.DeptEngineering, []string{"engineer", "engineers", "engineering", "developer", "developers", "devops", "software", "programming", "programmer"}},
	{models.DeptProduct, []string{"product", "ux", "ui", "design", "designer", "designers"}},
	{models.DeptSales, []string{"sales", "account", "accounts", "business development", "revenue"}},
	{models.DeptMarketing, []string{"marketing", "growth", "content", "brand", "branding"}},
	{models.DeptHR, []string{"hr", "human resources", "recruiter", "recruiters", "talent"}},
	{models.DeptFinance, []string{"finance", "accounting", "accountant", "financial", "controller"}},
	{models.DeptManagement, []string{"manager", "managers", "management", "director", "vp", "chief", "executive"}},
}

// lead 归入 manager,没有关键字映射到 LevelLead
var levelRules = []keywordRule[models.SeniorityLevel]{
	{models.LevelCLevel, []string{"ceo", "cto", "cfo", "coo", "chief", "president"}},
	{models.LevelVP, []string{"vp", "vice president"}},
	{models.LevelDirector, []string{"director", "head of"}},
	{models.LevelManager, []string{"manager", "lead", "supervisor"}},
	{models.LevelSenior, []string{"senior", "sr", "principal"}},
	{models.LevelJunior, []string{"junior", "jr", "associate"}},
}

// ClassifyPost 按内容判断动态类型
func ClassifyPost(content string) models.PostType {
	return classify(content, postRules, models.PostTypeGeneral)
}

// ClassifyDepartment 按职位名称判断部门
func ClassifyDepartment(title string) models.Department {
	return classify(title, departmentRules, models.DeptOperations)
}

// ClassifyLevel 按职位名称判断职级
// "vice president" 先折叠为 vp,避免被 c_level 的 president 抢先命中
func ClassifyLevel(title string) models.SeniorityLevel {
	norm := strings.ReplaceAll(normalizeWords(title), " vice president ", " vp ")
	return match(norm, levelRules, models.LevelEntry)
}

func classify[T any](text string, rules []keywordRule[T], def T) T {
	return match(normalizeWords(text), rules, def)
}

func match[T any](norm string, rules []keywordRule[T], def T) T {
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(norm, " "+kw+" ") {
				return r.value
			}
		}
	}
	return def
}

// normalizeWords 小写化并把非字母数字替换为空格,首尾补空格便于整词匹配
//
//	"Vice-President, Sales" -> " vice president sales "
func normalizeWords(text string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, strings.ToLower(text))
	return " " + strings.Join(strings.Fields(mapped), " ") + " "
}

// skillVocabulary 技能词表,展示名即匹配词
var skillVocabulary = []string{
	"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Go", "Rust", "Swift", "Kotlin",
	"React", "Angular", "Vue", "Node.js", "Express", "Django", "Flask", "Spring", "Laravel",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins", "Git", "GitHub", "GitLab",
	"SQL", "MySQL", "PostgreSQL", "MongoDB", "Redis", "Elasticsearch", "Kafka",
	"Machine Learning", "AI", "Data Science", "Deep Learning", "NLP", "Computer Vision",
	"Agile", "Scrum", "DevOps", "CI/CD", "Microservices", "REST", "GraphQL", "API",
}

// ExtractSkills 从文本中识别技能词表中的技能,按词表顺序返回,最多10项
func ExtractSkills(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	lower := strings.ToLower(text)
	found := make([]string, 0, 4)
	for _, skill := range skillVocabulary {
		if containsToken(lower, strings.ToLower(skill)) {
			found = append(found, skill)
		}
	}
	return models.BoundRequirements(found)
}

// containsToken 判断token在文本中独立出现,两侧不能紧邻字母或数字
// 用于 "c++"、"node.js" 这类含符号的技能
func containsToken(text, token string) bool {
	for start := 0; start < len(text); {
		i := strings.Index(text[start:], token)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(token)
		if !isWordByte(text, i-1) && !isWordByte(text, end) {
			return true
		}
		start = i + 1
	}
	return false
}

func isWordByte(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return false
	}
	c := s[i]
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}
