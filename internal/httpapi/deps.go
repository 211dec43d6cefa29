package httpapi

import (
	"context"

	"github.com/RecoveryAshes/LinkScope/internal/core"
	"github.com/RecoveryAshes/LinkScope/internal/models"
	"github.com/RecoveryAshes/LinkScope/internal/store"
)

// Service 处理器依赖的服务层接口, *core.Service 实现了它
type Service interface {
	Analyze(ctx context.Context, name string, force bool) (*core.AnalyzeResult, error)
	Posts(ctx context.Context, name string, limit int) ([]models.PostRecord, error)
	Jobs(ctx context.Context, name string, department models.Department) ([]models.JobRecord, error)
	Employees(ctx context.Context, name string, department models.Department, level models.SeniorityLevel, limit int) ([]models.EmployeeRecord, error)
	Insights(ctx context.Context, name string, competitors []string) (*models.ResultBundle, models.Insight, error)
	InsightsFor(ctx context.Context, b *models.ResultBundle, competitors []string) (models.Insight, error)
	Compare(ctx context.Context, names []string) (models.Comparison, error)
	Sessions(ctx context.Context, limit int) ([]models.ScrapeSession, error)
	SessionData(ctx context.Context, id string) (*store.SessionDetail, error)
}

// Deps 路由依赖
type Deps struct {
	Service Service
	// Version 健康检查返回的版本号
	Version string
}

var _ Service = (*core.Service)(nil)
