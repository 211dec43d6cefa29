package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/RecoveryAshes/LinkScope/internal/config"
	"github.com/RecoveryAshes/LinkScope/internal/crawlers"
	"github.com/go-rod/rod/lib/launcher"
)

func main() {
	fmt.Println("==============================================")
	fmt.Println("  LinkScope 环境验证")
	fmt.Println("==============================================")
	fmt.Println()

	allOK := true

	fmt.Printf("✅ Go版本: %s\n", runtime.Version())
	fmt.Printf("✅ 操作系统: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	// 浏览器: 找不到时 rod 会在首次启动时自动下载
	if path, ok := launcher.LookPath(); ok {
		fmt.Printf("✅ Chromium: %s\n", path)
	} else {
		fmt.Println("⚠️  未找到本地Chromium - 首次抓取时会自动下载")
	}

	// 配置
	fmt.Println()
	fmt.Println("检查配置...")
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Printf("❌ 配置加载失败: %v\n", err)
		os.Exit(1)
	}
	if cfg.File != "" {
		fmt.Printf("✅ 配置文件: %s\n", cfg.File)
	} else {
		fmt.Printf("⚠️  未找到配置文件 - 运行 'linkscope config init' 生成 %s\n", config.DefaultConfigFile())
	}

	creds := cfg.ResolveCredentials()
	if creds.Present() {
		fmt.Printf("✅ 登录凭据: %s\n", creds.Email)
	} else {
		fmt.Println("⚠️  未配置登录凭据 - 抓取将使用合成数据")
		fmt.Println("   配置方法: 设置 LINKEDIN_EMAIL 后运行 'linkscope credentials set'")
	}

	// 数据库目录
	dbDir := filepath.Dir(cfg.Storage.Path)
	if err := os.MkdirAll(dbDir, 0750); err != nil {
		fmt.Printf("❌ 数据库目录不可写: %s (%v)\n", dbDir, err)
		allOK = false
	} else {
		fmt.Printf("✅ 数据库: %s\n", cfg.Storage.Path)
	}

	// 系统资源
	fmt.Println()
	fmt.Println("检查系统资源...")
	monitor := crawlers.NewResourceMonitor(crawlers.ResourceMonitorConfig{
		MinFreeMemoryMB:  cfg.Scrape.MinFreeMemoryMB,
		CPULoadThreshold: cfg.Scrape.CPULoadThreshold,
	})
	if ok, reason := monitor.CheckAvailability(); ok {
		fmt.Println("✅ 资源充足,可以启动浏览器")
	} else {
		fmt.Printf("⚠️  %s\n", reason)
	}

	fmt.Println()
	fmt.Println("==============================================")
	if allOK {
		fmt.Println("✅ 环境验证通过!")
		fmt.Println()
		fmt.Println("下一步:")
		fmt.Println("  1. 运行 'go build -o linkscope ./cmd/linkscope' 构建项目")
		fmt.Println("  2. 运行 './linkscope config check' 检查配置")
		fmt.Println("  3. 运行 './linkscope scrape \"Company Name\"' 开始抓取")
		os.Exit(0)
	}
	fmt.Println("❌ 环境验证失败,请解决上述问题。")
	os.Exit(1)
}
