package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/insights"
	"github.com/RecoveryAshes/LinkScope/internal/models"
	"github.com/RecoveryAshes/LinkScope/internal/store"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	// MaxCompetitors 洞察附带的竞品上限
	MaxCompetitors = 5
	// MinCompare 对比的最少公司数
	MinCompare = 2
	// MaxCompare 对比的最多公司数
	MaxCompare = 5
)

// ErrInvalidArgument 参数不合法
var ErrInvalidArgument = errors.New("参数不合法")

// Runner 执行一次编排运行
type Runner interface {
	Run(ctx context.Context, name string) *RunResult
}

// ServiceConfig 服务层参数
type ServiceConfig struct {
	// CacheTTL 缓存有效期,0 表示不使用缓存
	CacheTTL time.Duration
	// Timeout 单次抓取超时,0 表示不限制
	Timeout time.Duration
	// MaxConcurrent 对比时并发抓取数
	MaxConcurrent int
	// Limits 读取缓存结果包的上限
	Limits store.Limits
}

// AnalyzeResult 分析结果
// 命中缓存时 Session 和 Run 为空
type AnalyzeResult struct {
	Bundle  *models.ResultBundle
	Session *models.ScrapeSession
	Run     *RunResult
	Cached  bool
}

// Service 在编排器之上提供缓存、持久化和并发控制
type Service struct {
	runner Runner
	store  *store.Store
	cfg    ServiceConfig
	group  singleflight.Group
	now    func() time.Time
}

// NewService 创建服务
func NewService(runner Runner, st *store.Store, cfg ServiceConfig) *Service {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}
	if cfg.Limits == (store.Limits{}) {
		cfg.Limits = store.DefaultLimits
	}
	return &Service{
		runner: runner,
		store:  st,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Analyze 获取公司数据
// 同一公司的并发请求只执行一次,未过期的缓存直接返回,force 跳过缓存
func (s *Service) Analyze(ctx context.Context, name string, force bool) (*AnalyzeResult, error) {
	if err := models.ValidateCompanyName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	v, err, shared := s.group.Do(store.NameKey(name), func() (any, error) {
		return s.analyze(ctx, name, force)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Debug().Str("company", name).Msg("合并了并发的分析请求")
	}
	return v.(*AnalyzeResult), nil
}

func (s *Service) analyze(ctx context.Context, name string, force bool) (*AnalyzeResult, error) {
	if !force {
		if b, ok := s.cached(ctx, name); ok {
			log.Info().Str("company", name).Str("provenance", string(b.Provenance)).Msg("📦 使用缓存数据")
			return &AnalyzeResult{Bundle: b, Cached: true}, nil
		}
	}

	sess, err := models.NewScrapeSession(name)
	if err != nil {
		return nil, err
	}
	sess.Status = models.TaskStatusRunning
	if err := s.store.CreateSession(ctx, sess); err != nil {
		return nil, err
	}

	runCtx, cancel := s.withTimeout(ctx)
	res := s.runner.Run(runCtx, name)
	cancel()

	// 缓存按查询名称索引,改名时复制结果包
	bundle := res.Bundle
	if store.NameKey(bundle.Company.Name) != store.NameKey(name) {
		log.Debug().Str("query", name).Str("scraped", bundle.Company.Name).Msg("公司名称与查询不一致,按查询名称保存")
		renamed := *bundle
		renamed.Company.Name = name
		bundle = &renamed
	}

	if err := s.persist(ctx, sess, bundle); err != nil {
		sess.Fail(err)
		if ferr := s.store.FinishSession(context.WithoutCancel(ctx), sess); ferr != nil {
			log.Error().Err(ferr).Str("session", sess.ID).Msg("更新会话状态失败")
		}
		return nil, err
	}

	sess.Complete(bundle)
	if err := s.store.FinishSession(ctx, sess); err != nil {
		return nil, err
	}

	log.Info().
		Str("company", name).
		Str("session", sess.ID).
		Str("provenance", string(bundle.Provenance)).
		Dur("duration", res.Duration).
		Msg("💾 分析结果已保存")
	return &AnalyzeResult{Bundle: bundle, Session: sess, Run: res}, nil
}

// persist 保存结果包和原始数据
func (s *Service) persist(ctx context.Context, sess *models.ScrapeSession, b *models.ResultBundle) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("结果包校验失败: %w", err)
	}
	if err := s.store.SaveBundle(ctx, b); err != nil {
		return err
	}
	return s.store.SaveRawData(ctx, sess.ID, "bundle", b)
}

// cached 未过期的缓存结果包
func (s *Service) cached(ctx context.Context, name string) (*models.ResultBundle, bool) {
	if s.cfg.CacheTTL <= 0 {
		return nil, false
	}
	updated, err := s.store.CompanyUpdatedAt(ctx, name)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Warn().Err(err).Str("company", name).Msg("读取缓存时间失败")
		}
		return nil, false
	}
	if s.now().Sub(updated) >= s.cfg.CacheTTL {
		return nil, false
	}
	b, err := s.store.LoadBundle(ctx, name, s.cfg.Limits)
	if err != nil {
		log.Warn().Err(err).Str("company", name).Msg("读取缓存失败")
		return nil, false
	}
	return b, true
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.Timeout)
}

// Bundle 读取已保存的结果包,不触发抓取
func (s *Service) Bundle(ctx context.Context, name string) (*models.ResultBundle, error) {
	return s.store.LoadBundle(ctx, name, s.cfg.Limits)
}

// Posts 公司动态,必要时先抓取
func (s *Service) Posts(ctx context.Context, name string, limit int) ([]models.PostRecord, error) {
	if _, err := s.Analyze(ctx, name, false); err != nil {
		return nil, err
	}
	return s.store.ListPosts(ctx, name, limit)
}

// Jobs 公司职位,department 为空时返回全部
func (s *Service) Jobs(ctx context.Context, name string, department models.Department) ([]models.JobRecord, error) {
	if _, err := s.Analyze(ctx, name, false); err != nil {
		return nil, err
	}
	return s.store.ListJobs(ctx, name, department)
}

// Employees 公司员工,可按部门和级别过滤
func (s *Service) Employees(ctx context.Context, name string, department models.Department, level models.SeniorityLevel, limit int) ([]models.EmployeeRecord, error) {
	if _, err := s.Analyze(ctx, name, false); err != nil {
		return nil, err
	}
	return s.store.ListEmployees(ctx, name, department, level, limit)
}

// Insights 生成公司洞察,competitors 最多5个
func (s *Service) Insights(ctx context.Context, name string, competitors []string) (*models.ResultBundle, models.Insight, error) {
	if len(competitors) > MaxCompetitors {
		return nil, models.Insight{}, fmt.Errorf("%w: 竞品最多%d个", ErrInvalidArgument, MaxCompetitors)
	}

	res, err := s.Analyze(ctx, name, false)
	if err != nil {
		return nil, models.Insight{}, err
	}
	insight, err := s.InsightsFor(ctx, res.Bundle, competitors)
	if err != nil {
		return nil, models.Insight{}, err
	}
	return res.Bundle, insight, nil
}

// InsightsFor 基于已有结果包生成洞察
func (s *Service) InsightsFor(ctx context.Context, b *models.ResultBundle, competitors []string) (models.Insight, error) {
	if len(competitors) > MaxCompetitors {
		return models.Insight{}, fmt.Errorf("%w: 竞品最多%d个", ErrInvalidArgument, MaxCompetitors)
	}
	var data []models.CompetitorData
	if len(competitors) > 0 {
		var err error
		data, err = s.competitorData(ctx, competitors)
		if err != nil {
			return models.Insight{}, err
		}
	}
	return insights.Generate(b, data, s.now()), nil
}

// Compare 对比2-5家公司
func (s *Service) Compare(ctx context.Context, names []string) (models.Comparison, error) {
	if len(names) < MinCompare || len(names) > MaxCompare {
		return models.Comparison{}, fmt.Errorf("%w: 对比需要%d-%d家公司", ErrInvalidArgument, MinCompare, MaxCompare)
	}
	data, err := s.competitorData(ctx, names)
	if err != nil {
		return models.Comparison{}, err
	}
	return insights.Compare(data), nil
}

// competitorData 并发分析多家公司,结果顺序与 names 一致
func (s *Service) competitorData(ctx context.Context, names []string) ([]models.CompetitorData, error) {
	data := make([]models.CompetitorData, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrent)
	for i, name := range names {
		g.Go(func() error {
			res, err := s.Analyze(gctx, name, false)
			if err != nil {
				return fmt.Errorf("分析 %s 失败: %w", name, err)
			}
			data[i] = insights.CompetitorFromBundle(res.Bundle, s.now())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// Sessions 最近的抓取会话
func (s *Service) Sessions(ctx context.Context, limit int) ([]models.ScrapeSession, error) {
	return s.store.RecentSessions(ctx, limit)
}

// SessionData 会话详情及原始数据
func (s *Service) SessionData(ctx context.Context, id string) (*store.SessionDetail, error) {
	return s.store.SessionData(ctx, id)
}
