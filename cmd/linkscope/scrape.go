package main

import (
	"fmt"
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/core"
	"github.com/RecoveryAshes/LinkScope/internal/utils"
	"github.com/spf13/cobra"
)

// scrape/batch 参数
var (
	outputDir       string
	noStore         bool
	forceRefresh    bool
	companyFile     string
	batchDelay      int
	continueOnError bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <company>",
	Short: "抓取单个公司",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := ValidateCompany(name); err != nil {
			return err
		}
		out := resolveOutputDir(cmd)

		ctx, stop := signalContext()
		defer stop()

		var res *core.AnalyzeResult
		if noStore {
			orch, err := newOrchestrator(appConfig)
			if err != nil {
				return err
			}
			run := orch.Run(ctx, name)
			res = &core.AnalyzeResult{Bundle: run.Bundle, Run: run}
		} else {
			svc, st, err := openService(appConfig)
			if err != nil {
				return err
			}
			defer st.Close()

			res, err = svc.Analyze(ctx, name, forceRefresh)
			if err != nil {
				return fmt.Errorf("分析失败: %w", err)
			}
		}

		printStats(res)

		report := core.NewScrapeReport(res, appConfig.Scrape, time.Now())
		reporter := utils.NewReporter(out, name)
		if err := reporter.GenerateReport(report, res.Bundle); err != nil {
			return fmt.Errorf("生成报告失败: %w", err)
		}
		utils.Infof("📄 报告已保存: %s", reporter.ReportsDir())
		utils.Info("✨ 抓取任务完成!")
		return nil
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "批量抓取公司列表",
	Long: `从文件读取公司列表并依次抓取, 每行一个公司名称, # 开头的行为注释

示例:
  linkscope batch -f companies.txt --batch-delay 5 --continue-on-error`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ValidateBatchFlags(companyFile, batchDelay); err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		svc, st, err := openService(appConfig)
		if err != nil {
			return err
		}
		defer st.Close()

		runner := core.NewBatchRunner(svc, core.BatchOptions{
			OutputDir:       resolveOutputDir(cmd),
			BatchDelay:      time.Duration(batchDelay) * time.Second,
			ContinueOnError: continueOnError,
			Force:           forceRefresh,
			Progress:        true,
			Scrape:          appConfig.Scrape,
		})
		if _, err := runner.RunFile(ctx, companyFile); err != nil {
			return fmt.Errorf("批量抓取失败: %w", err)
		}

		utils.Info("✨ 批量抓取任务完成!")
		return nil
	},
}

// resolveOutputDir 未指定 --output 时使用配置中的目录
func resolveOutputDir(cmd *cobra.Command) string {
	if cmd.Flags().Changed("output") || appConfig == nil {
		return outputDir
	}
	return appConfig.Output.BaseDir
}

func init() {
	scrapeCmd.Flags().StringVarP(&outputDir, "output", "o", "output", "输出目录")
	scrapeCmd.Flags().BoolVar(&noStore, "no-store", false, "不读写数据库,直接抓取")
	scrapeCmd.Flags().BoolVar(&forceRefresh, "force", false, "忽略缓存重新抓取")

	batchCmd.Flags().StringVarP(&companyFile, "file", "f", "", "公司列表文件 (必需)")
	batchCmd.Flags().StringVarP(&outputDir, "output", "o", "output", "输出目录")
	batchCmd.Flags().IntVar(&batchDelay, "batch-delay", 3, "公司之间的延迟(秒)")
	batchCmd.Flags().BoolVar(&continueOnError, "continue-on-error", true, "遇到错误继续处理")
	batchCmd.Flags().BoolVar(&forceRefresh, "force", false, "忽略缓存重新抓取")
	_ = batchCmd.MarkFlagRequired("file")
}
