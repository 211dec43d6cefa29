package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TaskStatus 抓取会话状态
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"   // 待执行
	TaskStatusRunning   TaskStatus = "running"   // 执行中
	TaskStatusCompleted TaskStatus = "completed" // 已完成
	TaskStatusFailed    TaskStatus = "failed"    // 失败
)

// ScrapeConfig 抓取配置
type ScrapeConfig struct {
	RequestDelay         float64  `json:"request_delay" mapstructure:"request_delay"`                     // 两次请求最小间隔(秒) (默认:3)
	MaxRequestsPerMinute int      `json:"max_requests_per_minute" mapstructure:"max_requests_per_minute"` // 每分钟请求上限,0表示不限制
	PostLimit            int      `json:"post_limit" mapstructure:"post_limit"`                           // 动态上限 (默认:10)
	JobLimit             int      `json:"job_limit" mapstructure:"job_limit"`                             // 职位上限 (默认:20)
	EmployeeLimit        int      `json:"employee_limit" mapstructure:"employee_limit"`                   // 员工上限 (默认:50)
	MaxRevealRounds      int      `json:"max_reveal_rounds" mapstructure:"max_reveal_rounds"`             // 列表页最多滚动轮数 (默认:8)
	WaitTime             int      `json:"wait_time" mapstructure:"wait_time"`                             // 等待页面元素超时(秒) (默认:10)
	SettleTime           float64  `json:"settle_time" mapstructure:"settle_time"`                         // 导航/滚动后的稳定等待(秒) (默认:2)
	Headless             bool     `json:"headless" mapstructure:"headless"`                               // 无头模式 (默认:true)
	ProxyURL             string   `json:"proxy_url,omitempty" mapstructure:"proxy_url"`                   // 出站代理
	UserAgents           []string `json:"user_agents,omitempty" mapstructure:"user_agents"`               // 轮换的User-Agent列表
	EnrichWebsite        bool     `json:"enrich_website" mapstructure:"enrich_website"`                   // 访问公司官网补全简介
	MinFreeMemoryMB      int      `json:"min_free_memory_mb" mapstructure:"min_free_memory_mb"`           // 启动浏览器所需最小可用内存
	CPULoadThreshold     int      `json:"cpu_load_threshold" mapstructure:"cpu_load_threshold"`           // CPU负载阈值(%)
	Timeout              int      `json:"timeout" mapstructure:"timeout"`                                 // 单次抓取总超时(秒) (默认:300)
}

// DefaultScrapeConfig 默认抓取配置
func DefaultScrapeConfig() ScrapeConfig {
	return ScrapeConfig{
		RequestDelay:     3,
		PostLimit:        10,
		JobLimit:         20,
		EmployeeLimit:    50,
		MaxRevealRounds:  8,
		WaitTime:         10,
		SettleTime:       2,
		Headless:         true,
		EnrichWebsite:    true,
		MinFreeMemoryMB:  512,
		CPULoadThreshold: 95,
		Timeout:          300,
	}
}

// Validate 验证配置
func (c *ScrapeConfig) Validate() error {
	if c.RequestDelay < 0 || c.RequestDelay > 120 {
		return fmt.Errorf("请求间隔必须在0-120秒之间")
	}
	if c.MaxRequestsPerMinute < 0 {
		return fmt.Errorf("每分钟请求上限不能为负数")
	}
	if c.PostLimit < 0 || c.PostLimit > 100 {
		return fmt.Errorf("动态上限必须在0-100之间")
	}
	if c.JobLimit < 0 || c.JobLimit > 200 {
		return fmt.Errorf("职位上限必须在0-200之间")
	}
	if c.EmployeeLimit < 0 || c.EmployeeLimit > 500 {
		return fmt.Errorf("员工上限必须在0-500之间")
	}
	if c.MaxRevealRounds < 1 || c.MaxRevealRounds > 50 {
		return fmt.Errorf("滚动轮数必须在1-50之间")
	}
	if c.WaitTime < 1 || c.WaitTime > 120 {
		return fmt.Errorf("等待时间必须在1-120秒之间")
	}
	if c.SettleTime < 0 || c.SettleTime > 30 {
		return fmt.Errorf("稳定等待必须在0-30秒之间")
	}
	if c.CPULoadThreshold < 0 || c.CPULoadThreshold > 100 {
		return fmt.Errorf("CPU负载阈值必须在0-100之间")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("抓取超时不能为负数")
	}
	if c.ProxyURL != "" {
		if err := ValidateURL(c.ProxyURL); err != nil {
			return fmt.Errorf("代理地址无效: %w", err)
		}
	}
	return nil
}

// Delay 请求间隔
func (c ScrapeConfig) Delay() time.Duration {
	return time.Duration(c.RequestDelay * float64(time.Second))
}

// Settle 稳定等待时长
func (c ScrapeConfig) Settle() time.Duration {
	return time.Duration(c.SettleTime * float64(time.Second))
}

// ElementTimeout 元素等待超时
func (c ScrapeConfig) ElementTimeout() time.Duration {
	return time.Duration(c.WaitTime) * time.Second
}

// Credentials 登录凭据
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"-"`
}

// Present 凭据是否齐全
func (c Credentials) Present() bool {
	return strings.TrimSpace(c.Email) != "" && c.Password != ""
}

// ScrapeSession 一次抓取会话的持久化记录
type ScrapeSession struct {
	ID            string     `json:"id"`
	CompanyName   string     `json:"company_name"`
	Status        TaskStatus `json:"status"`
	Provenance    Provenance `json:"provenance,omitempty"`
	Error         string     `json:"error,omitempty"`
	PostCount     int        `json:"post_count"`
	JobCount      int        `json:"job_count"`
	EmployeeCount int        `json:"employee_count"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// NewScrapeSession 创建抓取会话
func NewScrapeSession(companyName string) (*ScrapeSession, error) {
	if strings.TrimSpace(companyName) == "" {
		return nil, fmt.Errorf("公司名称不能为空")
	}
	return &ScrapeSession{
		ID:          generateID(),
		CompanyName: companyName,
		Status:      TaskStatusPending,
		StartedAt:   time.Now(),
	}, nil
}

// Complete 以结果包完成会话
func (s *ScrapeSession) Complete(bundle *ResultBundle) {
	now := time.Now()
	s.Status = TaskStatusCompleted
	s.CompletedAt = &now
	if bundle != nil {
		s.Provenance = bundle.Provenance
		s.PostCount = len(bundle.Posts)
		s.JobCount = len(bundle.Jobs)
		s.EmployeeCount = len(bundle.Employees)
	}
}

// Fail 标记会话失败
func (s *ScrapeSession) Fail(err error) {
	now := time.Now()
	s.Status = TaskStatusFailed
	s.CompletedAt = &now
	if err != nil {
		s.Error = err.Error()
	}
}

// ToJSON 序列化为JSON
func (s *ScrapeSession) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
