package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RecoveryAshes/LinkScope/internal/models"
	"github.com/schollz/progressbar/v3"
)

// Reporter 报告生成器
// 输出目录结构: <outputDir>/<company>/reports/
type Reporter struct {
	outputDir string
	company   string
}

// NewReporter 创建报告生成器
func NewReporter(outputDir string, company string) *Reporter {
	return &Reporter{
		outputDir: outputDir,
		company:   company,
	}
}

// ReportsDir 报告目录
func (r *Reporter) ReportsDir() string {
	return filepath.Join(r.outputDir, SafeFileName(r.company), "reports")
}

// GenerateReport 生成抓取报告和完整结果包
func (r *Reporter) GenerateReport(report *models.ScrapeReport, bundle *models.ResultBundle) error {
	reportsDir := r.ReportsDir()
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return fmt.Errorf("创建报告目录失败: %w", err)
	}

	if err := r.saveJSONReport(reportsDir, "scrape_report.json", report); err != nil {
		return err
	}
	if bundle != nil {
		if err := r.saveJSONReport(reportsDir, "bundle.json", bundle); err != nil {
			return err
		}
	}

	Infof("✅ 报告已生成: %s", reportsDir)
	return nil
}

// saveJSONReport 保存JSON报告
func (r *Reporter) saveJSONReport(dir string, filename string, data any) error {
	path := filepath.Join(dir, filename)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化JSON失败: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("写入报告文件失败: %w", err)
	}

	Debugf("保存报告: %s", path)
	return nil
}

// NewProgressBar 创建进度条
func NewProgressBar(max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
