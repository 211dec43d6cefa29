package core

import (
	"context"
	"fmt"
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/models"
	"github.com/RecoveryAshes/LinkScope/internal/utils"
)

// Analyzer 分析单个公司
type Analyzer interface {
	Analyze(ctx context.Context, name string, force bool) (*AnalyzeResult, error)
}

// BatchOptions 批量分析参数
type BatchOptions struct {
	OutputDir       string // 为空时不写报告
	BatchDelay      time.Duration
	ContinueOnError bool
	Force           bool
	Progress        bool
	Scrape          models.ScrapeConfig
}

// BatchRunner 批量分析器
type BatchRunner struct {
	analyzer Analyzer
	opts     BatchOptions
}

// BatchResult 单个公司的结果
type BatchResult struct {
	Company     string
	Success     bool
	Error       error
	Provenance  models.Provenance
	Cached      bool
	Stats       models.ScrapeStats
	ProcessedAt time.Time
	Duration    float64
}

// BatchSummary 批量分析摘要
type BatchSummary struct {
	TotalCompanies int
	SuccessCount   int
	FailCount      int
	FallbackCount  int
	CachedCount    int
	TotalDuration  float64
	Results        []BatchResult
}

// NewBatchRunner 创建批量分析器
func NewBatchRunner(analyzer Analyzer, opts BatchOptions) *BatchRunner {
	return &BatchRunner{analyzer: analyzer, opts: opts}
}

// RunFile 从公司列表文件批量分析
func (br *BatchRunner) RunFile(ctx context.Context, path string) (*BatchSummary, error) {
	names, err := utils.ReadCompaniesFromFile(path)
	if err != nil {
		return nil, err
	}
	return br.Run(ctx, names)
}

// Run 依次分析公司列表
// 上下文取消时返回已完成部分的摘要和取消原因
func (br *BatchRunner) Run(ctx context.Context, names []string) (*BatchSummary, error) {
	utils.Infof("🚀 开始批量分析: %d个公司", len(names))

	summary := &BatchSummary{
		TotalCompanies: len(names),
		Results:        make([]BatchResult, 0, len(names)),
	}
	startTime := time.Now()

	var progress interface{ Add(int) error }
	if br.opts.Progress {
		bar := utils.NewProgressBar(len(names), "批量分析")
		defer bar.Finish()
		progress = bar
	}

	var runErr error
	for i, name := range names {
		utils.Infof("==================== [%d/%d] ====================", i+1, len(names))
		utils.Infof("目标公司: %s", name)

		result := br.analyzeOne(ctx, name)
		summary.Results = append(summary.Results, result)
		if progress != nil {
			_ = progress.Add(1)
		}

		if result.Success {
			summary.SuccessCount++
			if result.Cached {
				summary.CachedCount++
			}
			if result.Provenance == models.ProvenanceFallback {
				summary.FallbackCount++
			}
		} else {
			summary.FailCount++
			utils.Errorf("❌ 分析失败: %v", result.Error)

			if !br.opts.ContinueOnError {
				utils.Warn("批量分析中止 (--continue-on-error=false)")
				break
			}
		}

		// 最后一个公司不需要延迟
		if i < len(names)-1 && br.opts.BatchDelay > 0 {
			utils.Debugf("等待 %.0f 秒后处理下一个公司...", br.opts.BatchDelay.Seconds())
			if err := sleep(ctx, br.opts.BatchDelay); err != nil {
				runErr = err
				break
			}
		}
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
	}

	summary.TotalDuration = time.Since(startTime).Seconds()
	br.printSummary(summary)
	return summary, runErr
}

// analyzeOne 分析单个公司并按需写报告
func (br *BatchRunner) analyzeOne(ctx context.Context, name string) BatchResult {
	result := BatchResult{
		Company:     name,
		ProcessedAt: time.Now(),
	}
	startTime := time.Now()

	res, err := br.analyzer.Analyze(ctx, name, br.opts.Force)
	if err != nil {
		result.Error = fmt.Errorf("分析失败: %w", err)
		result.Duration = time.Since(startTime).Seconds()
		return result
	}

	if br.opts.OutputDir != "" {
		report := NewScrapeReport(res, br.opts.Scrape, time.Now())
		if err := utils.NewReporter(br.opts.OutputDir, name).GenerateReport(report, res.Bundle); err != nil {
			result.Error = fmt.Errorf("生成报告失败: %w", err)
			result.Duration = time.Since(startTime).Seconds()
			return result
		}
	}

	result.Success = true
	result.Provenance = res.Bundle.Provenance
	result.Cached = res.Cached
	result.Stats = models.StatsFromBundle(res.Bundle)
	result.Duration = time.Since(startTime).Seconds()
	return result
}

// printSummary 打印批量分析摘要
func (br *BatchRunner) printSummary(summary *BatchSummary) {
	utils.Info("==================================================")
	utils.Info("📊 批量分析摘要")
	utils.Info("==================================================")
	utils.Infof("总公司数: %d", summary.TotalCompanies)
	utils.Infof("✅ 成功: %d", summary.SuccessCount)
	utils.Infof("❌ 失败: %d", summary.FailCount)
	utils.Infof("🧪 合成数据: %d", summary.FallbackCount)
	utils.Infof("📦 使用缓存: %d", summary.CachedCount)
	utils.Infof("⏱️  总耗时: %.2f秒", summary.TotalDuration)
	utils.Info("==================================================")

	if summary.FailCount > 0 {
		utils.Warn("失败的公司:")
		for _, result := range summary.Results {
			if !result.Success {
				utils.Warnf("  - %s: %v", result.Company, result.Error)
			}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
