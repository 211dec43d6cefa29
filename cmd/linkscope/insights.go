package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/RecoveryAshes/LinkScope/internal/insights"
	"github.com/RecoveryAshes/LinkScope/internal/utils"
	"github.com/spf13/cobra"
)

// insights 参数
var (
	competitors  []string
	exportFormat string
	exportFile   string
)

var insightsCmd = &cobra.Command{
	Use:   "insights <company>",
	Short: "生成公司洞察",
	Long: `生成招聘趋势、人员变动、技能需求等洞察, 可附带竞品对比

示例:
  linkscope insights "Acme Corp" --competitors Globex,Initech
  linkscope insights "Acme Corp" --format csv --out acme_jobs.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		format, err := ValidateInsightsFlags(name, competitors, exportFormat)
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		svc, st, err := openService(appConfig)
		if err != nil {
			return err
		}
		defer st.Close()

		b, insight, err := svc.Insights(ctx, name, competitors)
		if err != nil {
			return fmt.Errorf("生成洞察失败: %w", err)
		}

		var w io.Writer = os.Stdout
		if exportFile != "" {
			if dir := filepath.Dir(exportFile); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("创建输出目录失败: %w", err)
				}
			}
			f, err := os.Create(exportFile)
			if err != nil {
				return fmt.Errorf("创建输出文件失败: %w", err)
			}
			defer f.Close()
			w = f
		}

		if err := insights.Export(w, format, b, insight); err != nil {
			return fmt.Errorf("导出失败: %w", err)
		}
		if exportFile != "" {
			utils.Infof("📄 洞察已导出: %s", exportFile)
		}
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <company> <company> [company...]",
	Short: "对比2-5家公司",
	Args:  cobra.RangeArgs(2, 5),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ValidateCompareArgs(args); err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		svc, st, err := openService(appConfig)
		if err != nil {
			return err
		}
		defer st.Close()

		cmp, err := svc.Compare(ctx, args)
		if err != nil {
			return fmt.Errorf("对比失败: %w", err)
		}

		fmt.Println("\n==================================================")
		fmt.Println("📊 公司对比")
		fmt.Println("==================================================")
		for _, d := range cmp.Data {
			fmt.Printf("🏢 %s\n", d.Name)
			fmt.Printf("   招聘活跃度: %d  人员变动: %d  市场活动: %d  员工数: %d\n",
				d.HiringActivity, d.LeadershipChanges, d.MarketActivity, d.EmployeeCount)
		}
		fmt.Println("--------------------------------------------------")
		fmt.Printf("💼 招聘最活跃: %s\n", cmp.Summary.HighestHiringActivity)
		fmt.Printf("🔄 人员变动最多: %s\n", cmp.Summary.MostLeadershipChanges)
		fmt.Printf("📣 市场活动最多: %s\n", cmp.Summary.HighestMarketActivity)
		fmt.Println("==================================================")
		return nil
	},
}

func init() {
	insightsCmd.Flags().StringSliceVar(&competitors, "competitors", nil, "竞品公司,逗号分隔 (最多5个)")
	insightsCmd.Flags().StringVar(&exportFormat, "format", "json", "输出格式 (json|csv|markdown|yaml)")
	insightsCmd.Flags().StringVar(&exportFile, "out", "", "输出文件, 为空时写到标准输出")
}
