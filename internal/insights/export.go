package insights

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/models"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"gopkg.in/yaml.v3"
)

// Format 导出格式
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatYAML     Format = "yaml"
)

// ErrUnsupportedFormat 不支持的导出格式
var ErrUnsupportedFormat = errors.New("不支持的导出格式")

// ParseFormat 解析导出格式,md/yml 为别名
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q (支持: json, csv, markdown, yaml)", ErrUnsupportedFormat, s)
}

// ContentType HTTP响应类型
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatYAML:
		return "application/yaml"
	default:
		return "application/json"
	}
}

// Extension 文件扩展名
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatYAML:
		return ".yaml"
	case FormatCSV:
		return ".csv"
	default:
		return ".json"
	}
}

// Report 导出内容: 公司信息和洞察
type Report struct {
	Company models.CompanyRecord `json:"company" yaml:"company"`
	Insight models.Insight       `json:"insights" yaml:"insights"`
}

// Export 按格式导出, CSV 只包含职位表
func Export(w io.Writer, format Format, b *models.ResultBundle, insight models.Insight) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, Report{Company: b.Company, Insight: insight})
	case FormatYAML:
		return WriteYAML(w, Report{Company: b.Company, Insight: insight})
	case FormatCSV:
		return WriteCSV(w, b.Jobs)
	case FormatMarkdown:
		return WriteMarkdown(w, b, insight)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// WriteJSON 缩进JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML YAML格式
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("生成YAML失败: %w", err)
	}
	return enc.Close()
}

var csvHeader = []string{
	"title", "department", "location", "date_posted",
	"employment_type", "salary_range", "requirements", "url",
}

// WriteCSV 职位表, 技能要求以 "; " 连接
func WriteCSV(w io.Writer, jobs []models.JobRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, j := range jobs {
		row := []string{
			j.Title,
			string(j.Department),
			j.Location,
			j.DatePosted.Format(time.DateOnly),
			j.EmploymentType,
			j.Salary,
			strings.Join(j.Requirements, "; "),
			j.URL,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMarkdown 生成Markdown报告,部门招聘分布使用 mermaid 饼图
func WriteMarkdown(w io.Writer, b *models.ResultBundle, insight models.Insight) error {
	md := markdown.NewMarkdown(w)

	md.H1(b.Company.Name + " 公司洞察报告")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"属性", "值"},
		Rows: [][]string{
			{"行业", cell(b.Company.Industry)},
			{"规模", cell(b.Company.Size)},
			{"总部", cell(b.Company.Headquarters)},
			{"官网", cell(b.Company.Website)},
			{"员工数", strconv.Itoa(b.Company.EmployeeCount)},
			{"关注者", strconv.Itoa(b.Company.FollowerCount)},
			{"数据来源", string(b.Provenance)},
			{"生成时间", insight.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")
	if b.Provenance == models.ProvenanceFallback {
		md.Warningf("%s 的数据为合成数据,仅供演示,不代表真实情况", b.Company.Name)
		md.PlainText("")
	}

	writeKeyMetrics(md, insight.KeyMetrics)
	writeHiringTrends(md, insight)
	writeSkills(md, insight.SkillsTrends)
	writeLeadership(md, insight.LeadershipChanges)
	writePrediction(md, insight.HiringPrediction)
	writeCompetitors(md, insight.CompetitorComparison)

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by LinkScope at %s*", insight.GeneratedAt.Format(time.RFC3339))

	return md.Build()
}

func writeKeyMetrics(md *markdown.Markdown, m models.KeyMetrics) {
	md.H2("关键指标")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"指标", "数值"},
		Rows: [][]string{
			{"员工样本数", strconv.Itoa(m.TotalEmployees)},
			{"近期入职", strconv.Itoa(m.RecentHires)},
			{"开放职位", strconv.Itoa(m.JobOpenings)},
			{"招聘部门数", strconv.Itoa(m.DepartmentsHiring)},
			{"平均互动数", strconv.Itoa(m.AvgPostEngagement)},
		},
	})
	md.PlainText("")
}

func writeHiringTrends(md *markdown.Markdown, insight models.Insight) {
	md.H2("招聘趋势")
	md.PlainText("")
	if len(insight.HiringTrends) == 0 {
		md.PlainText("暂无开放职位")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(insight.HiringTrends))
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Openings by Department"),
		piechart.WithShowData(true),
	)
	for _, t := range insight.HiringTrends {
		rows = append(rows, []string{
			string(t.Department),
			strconv.Itoa(t.Count),
			string(t.Trend),
			cell(strings.Join(t.KeyRoles, ", ")),
		})
		chart.LabelAndIntValue(string(t.Department), uint64(t.Count))
	}
	md.Table(markdown.TableSet{
		Header: []string{"部门", "职位数", "趋势", "关键职位"},
		Rows:   rows,
	})
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func writeSkills(md *markdown.Markdown, trends []models.SkillTrend) {
	md.H2("技能需求")
	md.PlainText("")
	if len(trends) == 0 {
		md.PlainText("暂无技能数据")
		md.PlainText("")
		return
	}
	rows := make([][]string, 0, len(trends))
	for _, t := range trends {
		rows = append(rows, []string{
			cell(t.Skill),
			strconv.Itoa(t.Demand) + "%",
			strconv.Itoa(t.Count),
			cell(strings.Join(t.RelatedRoles, ", ")),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"技能", "需求占比", "职位数", "关联职位"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeLeadership(md *markdown.Markdown, changes []models.LeadershipChange) {
	if len(changes) == 0 {
		return
	}
	md.H2("领导层变动")
	md.PlainText("")
	rows := make([][]string, 0, len(changes))
	for _, c := range changes {
		prev := c.PreviousRole
		if prev == "" {
			prev = "-"
		}
		rows = append(rows, []string{
			cell(c.Name),
			cell(prev),
			cell(c.NewRole),
			string(c.Type),
			c.Date.Format(time.DateOnly),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"姓名", "原职位", "新职位", "类型", "日期"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writePrediction(md *markdown.Markdown, p models.HiringPrediction) {
	md.H2("招聘预测")
	md.PlainText("")
	items := []string{
		fmt.Sprintf("当前开放职位: %d", p.CurrentOpenings),
		fmt.Sprintf("下季度预计招聘: %d", p.NextQuarterHiring),
	}
	for _, d := range p.HighDemandDepartments {
		items = append(items, fmt.Sprintf("高需求部门 %s: %d 个职位", d.Department, d.Openings))
	}
	md.BulletList(items...)
	md.PlainText("")
	if len(p.RecommendedFocusAreas) > 0 {
		md.Note("建议关注: " + strings.Join(p.RecommendedFocusAreas, ", "))
		md.PlainText("")
	}
}

func writeCompetitors(md *markdown.Markdown, data []models.CompetitorData) {
	if len(data) == 0 {
		return
	}
	md.H2("竞品对比")
	md.PlainText("")
	rows := make([][]string, 0, len(data))
	for _, d := range data {
		rows = append(rows, []string{
			cell(d.Name),
			string(d.Provenance),
			strconv.Itoa(d.HiringActivity),
			strconv.Itoa(d.LeadershipChanges),
			strconv.Itoa(d.MarketActivity),
			strconv.Itoa(d.EmployeeCount),
			strconv.Itoa(d.SocialEngagement),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"公司", "来源", "招聘活跃度", "领导层变动", "市场活跃度", "员工数", "平均互动"},
		Rows:   rows,
	})
	md.PlainText("")
}

// cell 表格单元格: 转义竖线并截断
func cell(s string) string {
	s = strings.ReplaceAll(truncate(s, 80), "|", `\|`)
	if s == "" {
		return "-"
	}
	return s
}
