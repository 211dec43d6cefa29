package core

import (
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/crawlers"
	"github.com/RecoveryAshes/LinkScope/internal/models"
	"github.com/RecoveryAshes/LinkScope/internal/utils"
)

const (
	// DefaultUserAgent 默认User-Agent
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36"
)

// browserManagedHeaders 浏览器自行设置的头部,不作为额外头部下发
var browserManagedHeaders = []string{"User-Agent", "Accept", "Accept-Encoding"}

// HeaderManager 管理出站请求头部
// 实现 HeaderProvider 接口
type HeaderManager struct {
	// defaults 系统默认头部 (硬编码)
	defaults http.Header

	// config 配置文件 headers 段
	config http.Header

	// cli 从命令行参数解析的头部
	cli http.Header

	// validator 头部验证器
	validator *utils.HeaderValidator

	// redactor 头部脱敏器
	redactor *utils.HeaderRedactor
}

// NewHeaderManager 创建头部管理器
// 参数:
//   - configHeaders: 配置文件 headers 段
//   - cliHeaders: 命令行传递的头部字符串列表
//
// 返回:
//   - *HeaderManager: 头部管理器实例
//   - error: 如果命令行参数解析失败
func NewHeaderManager(configHeaders map[string]string, cliHeaders []string) (*HeaderManager, error) {
	hm := &HeaderManager{
		defaults:  getDefaultHeaders(),
		config:    make(http.Header),
		cli:       make(http.Header),
		validator: utils.NewHeaderValidator(),
		redactor:  utils.NewHeaderRedactor(),
	}

	for name, value := range configHeaders {
		hm.config.Set(name, value)
	}
	if len(hm.config) > 0 {
		utils.Debugf("加载了%d个配置文件头部: %s", len(hm.config), hm.redactor.RedactToString(hm.config))
	}

	// 解析命令行头部
	if len(cliHeaders) > 0 {
		parsed, err := models.CliHeaders(cliHeaders).Parse()
		if err != nil {
			return nil, err
		}
		hm.cli = parsed
	}

	return hm, nil
}

// getDefaultHeaders 返回系统默认头部
func getDefaultHeaders() http.Header {
	return http.Header{
		"User-Agent":      []string{DefaultUserAgent},
		"Accept":          []string{"text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"},
		"Accept-Language": []string{"en-US,en;q=0.9"},
		"Accept-Encoding": []string{"gzip, deflate, br"},
	}
}

// Validate 验证所有头部的合法性
// 验证顺序: 默认 → 配置 → 命令行
func (hm *HeaderManager) Validate() error {
	if err := hm.validator.Validate(hm.defaults); err != nil {
		utils.Errorf("默认头部验证失败: %v", err)
		return err
	}

	if err := hm.validator.Validate(hm.config); err != nil {
		utils.Errorf("配置文件头部验证失败: %v", err)
		return err
	}

	if err := hm.validator.Validate(hm.cli); err != nil {
		utils.Errorf("命令行头部验证失败: %v", err)
		return err
	}

	utils.Debugf("所有HTTP头部验证通过")
	return nil
}

// ValidateAll 汇总合并后头部的全部错误
func (hm *HeaderManager) ValidateAll() error {
	return hm.validator.ValidateAll(hm.GetMergedHeaders())
}

// GetMergedHeaders 按优先级合并头部 (default < config < cli)
func (hm *HeaderManager) GetMergedHeaders() http.Header {
	result := make(http.Header)
	for _, layer := range []http.Header{hm.defaults, hm.config, hm.cli} {
		for name, values := range layer {
			result[name] = values
		}
	}
	return result
}

// GetSafeHeaders 返回脱敏后的头部 (用于日志)
func (hm *HeaderManager) GetSafeHeaders() map[string]string {
	return hm.redactor.Redact(hm.GetMergedHeaders())
}

// GetHeaders 实现 HeaderProvider 接口
// 返回验证后的合并头部
func (hm *HeaderManager) GetHeaders() (http.Header, error) {
	if err := hm.Validate(); err != nil {
		return nil, err
	}
	return hm.GetMergedHeaders(), nil
}

// userAgentOverridden 配置或命令行是否显式指定了User-Agent
func (hm *HeaderManager) userAgentOverridden() bool {
	return hm.config.Get("User-Agent") != "" || hm.cli.Get("User-Agent") != ""
}

// userAgent 显式指定的User-Agent优先,其次从轮换列表中随机选择
func (hm *HeaderManager) userAgent(merged http.Header, agents []string) string {
	if !hm.userAgentOverridden() && len(agents) > 0 {
		return agents[rand.IntN(len(agents))]
	}
	return merged.Get("User-Agent")
}

// BrowserOptions 浏览器启动参数
// User-Agent 通过覆盖设置,其余非浏览器管理的头部作为额外头部
func (hm *HeaderManager) BrowserOptions(cfg models.ScrapeConfig) (crawlers.BrowserOptions, error) {
	merged, err := hm.GetHeaders()
	if err != nil {
		return crawlers.BrowserOptions{}, err
	}

	extra := make(map[string]string, len(merged))
	for name := range merged {
		extra[name] = merged.Get(name)
	}
	for _, name := range browserManagedHeaders {
		delete(extra, http.CanonicalHeaderKey(name))
	}

	return crawlers.BrowserOptions{
		Headless:  cfg.Headless,
		ProxyURL:  cfg.ProxyURL,
		UserAgent: hm.userAgent(merged, cfg.UserAgents),
		Headers:   extra,
	}, nil
}

// CollyOptions 官网抓取参数,下发全部合并头部
func (hm *HeaderManager) CollyOptions(cfg models.ScrapeConfig) (crawlers.CollyOptions, error) {
	merged, err := hm.GetHeaders()
	if err != nil {
		return crawlers.CollyOptions{}, err
	}

	headers := make(map[string]string, len(merged))
	for name := range merged {
		headers[name] = merged.Get(name)
	}
	ua := hm.userAgent(merged, cfg.UserAgents)
	headers["User-Agent"] = ua

	return crawlers.CollyOptions{
		UserAgent: ua,
		Headers:   headers,
		Delay:     cfg.Delay(),
		Timeout:   time.Duration(cfg.WaitTime) * 3 * time.Second,
	}, nil
}
