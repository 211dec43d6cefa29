package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/crawlers"
	"github.com/RecoveryAshes/LinkScope/internal/fallback"
	"github.com/RecoveryAshes/LinkScope/internal/models"
	"github.com/rs/zerolog/log"
)

// Stage 编排阶段
type Stage string

const (
	StageIdle                Stage = "idle"
	StageSessionEstablishing Stage = "session_establishing"
	StageSearching           Stage = "searching"
	StageScrapingCompany     Stage = "scraping_company"
	StageScrapingPosts       Stage = "scraping_posts"
	StageScrapingJobs        Stage = "scraping_jobs"
	StageScrapingEmployees   Stage = "scraping_employees"
	StageAssembled           Stage = "assembled"
	StageFallbackAssembled   Stage = "fallback_assembled"
)

// StageError 某个阶段的失败
type StageError struct {
	Stage Stage
	Err   error
}

// Error 实现error接口
func (e *StageError) Error() string {
	return fmt.Sprintf("阶段 %s 失败: %v", e.Stage, e.Err)
}

// Unwrap 支持errors.Is/As
func (e *StageError) Unwrap() error {
	return e.Err
}

// RunResult 一次编排运行的结果
// Bundle 总是非空,失败时为合成数据
type RunResult struct {
	Bundle      *models.ResultBundle
	Stage       Stage
	FailedStage Stage
	Err         error
	Duration    time.Duration
}

// Fallback 是否使用了合成数据
func (r *RunResult) Fallback() bool {
	return r.Stage == StageFallbackAssembled
}

// OrchestratorConfig 编排器依赖
type OrchestratorConfig struct {
	Launcher    crawlers.BrowserLauncher
	Pacer       *crawlers.Pacer
	Scrape      models.ScrapeConfig
	Credentials models.Credentials
	Browser     crawlers.BrowserOptions
	// Enricher 官网补全,nil 表示不补全
	Enricher *crawlers.WebsiteEnricher
	// Fallback nil 时使用随机种子的生成器
	Fallback *fallback.Generator
}

// Orchestrator 串联 会话 → 搜索 → 公司 → 动态 → 职位 → 员工
// 任何阶段失败都转为合成数据
type Orchestrator struct {
	launcher crawlers.BrowserLauncher
	pacer    *crawlers.Pacer
	cfg      models.ScrapeConfig
	creds    models.Credentials
	opts     crawlers.BrowserOptions
	enricher *crawlers.WebsiteEnricher
	fallback *fallback.Generator
}

// NewOrchestrator 创建编排器
func NewOrchestrator(c OrchestratorConfig) *Orchestrator {
	gen := c.Fallback
	if gen == nil {
		gen = fallback.New()
	}
	launcher := c.Launcher
	if launcher == nil {
		launcher = crawlers.RodLauncher{}
	}
	return &Orchestrator{
		launcher: launcher,
		pacer:    c.Pacer,
		cfg:      c.Scrape,
		creds:    c.Credentials,
		opts:     c.Browser,
		enricher: c.Enricher,
		fallback: gen,
	}
}

// Scrape 抓取公司数据,总是返回结果包
// 只有合成数据本身校验失败时才返回错误
func (o *Orchestrator) Scrape(ctx context.Context, name string) (*models.ResultBundle, error) {
	res := o.Run(ctx, name)
	if err := res.Bundle.Validate(); err != nil {
		return res.Bundle, fmt.Errorf("结果包校验失败: %w", err)
	}
	return res.Bundle, nil
}

// Run 执行一次完整编排
func (o *Orchestrator) Run(ctx context.Context, name string) *RunResult {
	start := time.Now()
	res := &RunResult{Stage: StageIdle}

	bundle, err := o.scrape(ctx, name, res)
	if err != nil {
		res.Err = err
		res.FailedStage = res.Stage
		o.logFailure(name, res)
		bundle = o.fallback.Generate(name)
		res.Stage = StageFallbackAssembled
	} else {
		res.Stage = StageAssembled
		log.Info().
			Str("company", name).
			Int("posts", len(bundle.Posts)).
			Int("jobs", len(bundle.Jobs)).
			Int("employees", len(bundle.Employees)).
			Msg("✅ 抓取完成")
	}

	res.Bundle = bundle
	res.Duration = time.Since(start)
	return res
}

// scrape 顺序执行各阶段,res.Stage 记录当前阶段
func (o *Orchestrator) scrape(ctx context.Context, name string, res *RunResult) (*models.ResultBundle, error) {
	fail := func(err error) error {
		return &StageError{Stage: res.Stage, Err: err}
	}

	session := crawlers.NewSession(o.launcher, o.pacer, o.cfg, o.opts)
	defer func() {
		if err := session.Close(); err != nil {
			log.Debug().Err(err).Msg("关闭会话失败")
		}
	}()

	res.Stage = StageSessionEstablishing
	if err := session.Login(ctx, o.creds); err != nil {
		return nil, fail(err)
	}
	page, err := session.Page()
	if err != nil {
		return nil, fail(err)
	}
	scraper := crawlers.NewScraper(page, o.pacer, o.cfg)

	res.Stage = StageSearching
	companyURL, err := scraper.SearchCompany(ctx, name)
	if err != nil {
		return nil, fail(err)
	}

	res.Stage = StageScrapingCompany
	company, err := scraper.ScrapeCompany(ctx, companyURL, name)
	if err != nil {
		return nil, fail(err)
	}
	if o.enricher != nil {
		o.enricher.Enrich(ctx, &company)
	}

	res.Stage = StageScrapingPosts
	posts, err := scraper.ScrapePosts(ctx, companyURL)
	if err != nil {
		return nil, fail(err)
	}

	res.Stage = StageScrapingJobs
	jobs, err := scraper.ScrapeJobs(ctx, companyURL)
	if err != nil {
		return nil, fail(err)
	}

	res.Stage = StageScrapingEmployees
	employees, err := scraper.ScrapeEmployees(ctx, companyURL)
	if err != nil {
		return nil, fail(err)
	}

	bundle := models.NewResultBundle(company, posts, jobs, employees, models.ProvenanceReal)
	if err := bundle.Validate(); err != nil {
		return nil, fail(err)
	}
	return bundle, nil
}

// logFailure 未配置凭据是预期情况,只记 info
func (o *Orchestrator) logFailure(name string, res *RunResult) {
	if errors.Is(res.Err, crawlers.ErrCredentialsMissing) {
		log.Info().Str("company", name).Msg("ℹ️  未配置凭据,使用合成数据")
		return
	}
	log.Warn().
		Err(res.Err).
		Str("company", name).
		Str("stage", string(res.FailedStage)).
		Msg("⚠️  抓取失败,使用合成数据")
}
