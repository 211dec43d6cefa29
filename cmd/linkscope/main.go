package main

import (
	"fmt"
	"os"

	"github.com/RecoveryAshes/LinkScope/internal/config"
	"github.com/RecoveryAshes/LinkScope/internal/utils"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// 全局参数
var (
	configFile string
	verbose    bool
	logLevel   string
	headers    []string // 自定义HTTP请求头

	// appConfig 由 PersistentPreRunE 加载
	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "linkscope",
	Short: "LinkedIn公司情报抓取和分析工具",
	Long: `LinkScope - LinkedIn公司情报抓取和分析工具

抓取公司主页、动态、职位和员工信息,生成招聘趋势、人员变动和竞品对比等洞察:
  • 浏览器自动化登录和抓取,失败时生成合成数据
  • SQLite 缓存和抓取会话记录
  • 批量处理公司列表
  • JSON/CSV/Markdown/YAML 导出
  • HTTP API 服务

示例:
  linkscope scrape "Acme Corp"
  linkscope batch -f companies.txt --batch-delay 5
  linkscope insights "Acme Corp" --competitors Globex,Initech --format markdown
  linkscope serve --addr :8000
  linkscope scrape "Acme Corp" -H "Accept-Language: zh-CN"

版本: ` + Version + `
构建时间: ` + BuildTime,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// config init 在配置文件生成前运行
		if cmd.Annotations[skipConfigAnnotation] == "true" {
			return initLogger(nil)
		}

		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		appConfig = cfg
		return initLogger(cfg)
	},
}

const skipConfigAnnotation = "skip-config"

// initLogger 初始化日志, 命令行参数覆盖配置文件
func initLogger(cfg *config.Config) error {
	logConfig := utils.DefaultLogConfig()
	if cfg != nil {
		logConfig = cfg.Logging.LogConfig()
	}
	// 标准输出留给导出内容
	logConfig.Console = os.Stderr
	if verbose && logLevel == "" {
		logConfig.Level = "debug"
	}
	if logLevel != "" {
		logConfig.Level = logLevel
	}

	if err := utils.InitLogger(logConfig); err != nil {
		return fmt.Errorf("初始化日志系统失败: %w", err)
	}
	if verbose {
		utils.Info("详细模式已启用")
	}
	if cfg != nil && cfg.File != "" {
		utils.Debugf("使用配置文件: %s", cfg.File)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Annotations: map[string]string{
		skipConfigAnnotation: "true",
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("LinkScope %s\n", Version)
		fmt.Printf("构建时间: %s\n", BuildTime)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "配置文件路径")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "详细输出模式")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "日志级别 (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().StringArrayVarP(&headers, "header", "H", []string{}, "自定义HTTP头部,格式: 'Name: Value',可多次指定")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(credentialsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
