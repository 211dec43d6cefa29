package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/config"
	"github.com/RecoveryAshes/LinkScope/internal/core"
	"github.com/RecoveryAshes/LinkScope/internal/crawlers"
	"github.com/RecoveryAshes/LinkScope/internal/store"
	"github.com/RecoveryAshes/LinkScope/internal/utils"
)

// signalContext Ctrl+C 时取消, 正在进行的抓取会关闭浏览器后退出
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			utils.Warnf("收到中断信号: %v, 正在优雅关闭...", sig)
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

// newOrchestrator 按配置和命令行头部组装编排器
func newOrchestrator(cfg *config.Config) (*core.Orchestrator, error) {
	hm, err := core.NewHeaderManager(cfg.Headers, headers)
	if err != nil {
		return nil, fmt.Errorf("创建HTTP头部管理器失败: %w", err)
	}
	browser, err := hm.BrowserOptions(cfg.Scrape)
	if err != nil {
		return nil, err
	}

	pacer := crawlers.NewPacer(cfg.Scrape.Delay(), cfg.Scrape.MaxRequestsPerMinute)

	var enricher *crawlers.WebsiteEnricher
	if cfg.Scrape.EnrichWebsite {
		opts, err := hm.CollyOptions(cfg.Scrape)
		if err != nil {
			return nil, err
		}
		enricher = crawlers.NewWebsiteEnricher(crawlers.NewCollyLoader(opts), pacer)
	}

	return core.NewOrchestrator(core.OrchestratorConfig{
		Pacer:       pacer,
		Scrape:      cfg.Scrape,
		Credentials: cfg.ResolveCredentials(),
		Browser:     browser,
		Enricher:    enricher,
	}), nil
}

// openService 打开数据库并创建服务, 调用方负责关闭 store
func openService(cfg *config.Config) (*core.Service, *store.Store, error) {
	orch, err := newOrchestrator(cfg)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return nil, nil, err
	}
	svc := core.NewService(orch, st, serviceConfig(cfg))
	return svc, st, nil
}

func serviceConfig(cfg *config.Config) core.ServiceConfig {
	return core.ServiceConfig{
		CacheTTL:      time.Duration(cfg.Storage.CacheTTLHours) * time.Hour,
		Timeout:       time.Duration(cfg.Scrape.Timeout) * time.Second,
		MaxConcurrent: cfg.Server.MaxConcurrentScrapes,
	}
}

// printStats 打印单个公司的抓取统计
func printStats(res *core.AnalyzeResult) {
	b := res.Bundle
	fmt.Println("\n==================================================")
	fmt.Printf("📊 %s\n", b.Company.Name)
	fmt.Println("==================================================")
	fmt.Printf("📌 数据来源: %s", b.Provenance)
	if res.Cached {
		fmt.Print(" (缓存)")
	}
	fmt.Println()
	if res.Run != nil && res.Run.FailedStage != "" {
		fmt.Printf("⚠️  失败阶段: %s\n", res.Run.FailedStage)
	}
	fmt.Printf("🏢 行业: %s\n", b.Company.Industry)
	fmt.Printf("👥 员工数: %d\n", b.Company.EmployeeCount)
	fmt.Printf("⭐ 关注者: %d\n", b.Company.FollowerCount)
	fmt.Printf("📰 动态: %d\n", len(b.Posts))
	fmt.Printf("💼 职位: %d\n", len(b.Jobs))
	fmt.Printf("🧑 员工: %d\n", len(b.Employees))
	if res.Run != nil {
		fmt.Printf("⏱️  耗时: %.2f秒\n", res.Run.Duration.Seconds())
	}
	fmt.Println("==================================================")
}
